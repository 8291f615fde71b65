package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChunkRow — сохранённые IFIX-записи одного чанка.
type ChunkRow struct {
	MapNum    int
	CX, CY    int
	V2        bool
	Records   []byte
	UpdatedAt time.Time
}

// ChunkRepository хранит IFIX-записи чанков в PostgreSQL.
type ChunkRepository struct {
	db *pgxpool.Pool
}

// NewChunkRepository создаёт новый ChunkRepository.
func NewChunkRepository(db *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// Load возвращает записи чанка (cx, cy) карты mapNum.
// Возвращает nil, nil если чанк не сохранялся.
func (r *ChunkRepository) Load(ctx context.Context, mapNum, cx, cy int) (*ChunkRow, error) {
	row := ChunkRow{MapNum: mapNum, CX: cx, CY: cy}
	err := r.db.QueryRow(ctx,
		`SELECT v2, records, updated_at FROM chunk_fixtures
		 WHERE map_num = $1 AND cx = $2 AND cy = $3`,
		mapNum, cx, cy,
	).Scan(&row.V2, &row.Records, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading chunk (%d, %d) of map %d: %w", cx, cy, mapNum, err)
	}
	return &row, nil
}

// LoadMap возвращает все сохранённые чанки карты, упорядоченные по (cy, cx).
func (r *ChunkRepository) LoadMap(ctx context.Context, mapNum int) ([]ChunkRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cx, cy, v2, records, updated_at FROM chunk_fixtures
		 WHERE map_num = $1 ORDER BY cy, cx`,
		mapNum,
	)
	if err != nil {
		return nil, fmt.Errorf("querying chunks of map %d: %w", mapNum, err)
	}
	defer rows.Close()

	var out []ChunkRow
	for rows.Next() {
		row := ChunkRow{MapNum: mapNum}
		if err := rows.Scan(&row.CX, &row.CY, &row.V2, &row.Records, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks of map %d: %w", mapNum, err)
	}
	return out, nil
}

// Save сохраняет записи чанка (upsert).
func (r *ChunkRepository) Save(ctx context.Context, row ChunkRow) error {
	if _, err := r.db.Exec(ctx, upsertChunk, row.MapNum, row.CX, row.CY, row.V2, row.Records); err != nil {
		return fmt.Errorf("saving chunk (%d, %d) of map %d: %w", row.CX, row.CY, row.MapNum, err)
	}
	return nil
}

// SaveAllTx сохраняет пачку чанков в рамках транзакции.
func (r *ChunkRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, rows []ChunkRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(upsertChunk, row.MapNum, row.CX, row.CY, row.V2, row.Records)
	}
	br := tx.SendBatch(ctx, batch)
	for _, row := range rows {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving chunk (%d, %d) of map %d: %w", row.CX, row.CY, row.MapNum, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close chunk batch: %w", err)
	}
	return nil
}

// Delete удаляет сохранённый чанк. Отсутствие строки не ошибка.
func (r *ChunkRepository) Delete(ctx context.Context, mapNum, cx, cy int) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM chunk_fixtures WHERE map_num = $1 AND cx = $2 AND cy = $3`,
		mapNum, cx, cy,
	); err != nil {
		return fmt.Errorf("deleting chunk (%d, %d) of map %d: %w", cx, cy, mapNum, err)
	}
	return nil
}

// Maps возвращает номера карт, у которых есть сохранённые чанки.
func (r *ChunkRepository) Maps(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT map_num FROM chunk_fixtures ORDER BY map_num`)
	if err != nil {
		return nil, fmt.Errorf("querying map numbers: %w", err)
	}
	nums, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collecting map numbers: %w", err)
	}
	return nums, nil
}

const upsertChunk = `INSERT INTO chunk_fixtures (map_num, cx, cy, v2, records, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (map_num, cx, cy) DO UPDATE SET
	 v2 = EXCLUDED.v2, records = EXCLUDED.records, updated_at = now()`
