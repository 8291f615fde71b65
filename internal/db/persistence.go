package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/isoworld/internal/model"
	"github.com/udisondev/isoworld/internal/world"
)

// FixtureStore синхронизирует фиксированные объекты карт с БД.
// Вызывается из игрового потока: карта не блокируется.
type FixtureStore struct {
	pool   *pgxpool.Pool
	chunks *ChunkRepository
	v2     bool
}

// NewFixtureStore создаёт store. v2 выбирает расширенный формат записей
// для новых сохранений.
func NewFixtureStore(pool *pgxpool.Pool, chunks *ChunkRepository, v2 bool) *FixtureStore {
	return &FixtureStore{pool: pool, chunks: chunks, v2: v2}
}

// SaveModified writes every chunk of m whose fixed objects changed in a
// single transaction and clears their modified flags on commit.
// Returns the number of chunks written.
func (s *FixtureStore) SaveModified(ctx context.Context, m *world.Map) (int, error) {
	modified := m.IfixModified()
	if len(modified) == 0 {
		return 0, nil
	}

	rows := make([]ChunkRow, 0, len(modified))
	for _, c := range modified {
		rows = append(rows, ChunkRow{
			MapNum:  m.Num(),
			CX:      c[0],
			CY:      c[1],
			V2:      s.v2,
			Records: m.ChunkAt(c[0], c[1]).EncodeIfix(s.v2),
		})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction for map %d: %w", m.Num(), err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "map", m.Num(), "error", err)
		}
	}()

	if err := s.chunks.SaveAllTx(ctx, tx, rows); err != nil {
		return 0, fmt.Errorf("saving fixtures of map %d: %w", m.Num(), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit fixtures of map %d: %w", m.Num(), err)
	}

	for _, c := range modified {
		m.ClearIfixModified(c[0], c[1])
	}
	slog.Debug("fixtures saved", "map", m.Num(), "chunks", len(rows))
	return len(rows), nil
}

// LoadMap places every stored fixed object of m. Returns the number of
// objects added.
func (s *FixtureStore) LoadMap(ctx context.Context, env *model.Env, ids *world.ObjectIDGenerator, m *world.Map) (int, error) {
	rows, err := s.chunks.LoadMap(ctx, m.Num())
	if err != nil {
		return 0, err
	}

	total := 0
	for _, row := range rows {
		n, err := m.LoadIfix(env, ids, row.CX, row.CY, row.Records, row.V2)
		if err != nil {
			return total, fmt.Errorf("loading fixtures of map %d: %w", m.Num(), err)
		}
		total += n
	}
	slog.Info("fixtures loaded", "map", m.Num(), "chunks", len(rows), "objects", total)
	return total, nil
}
