package world

import "github.com/udisondev/isoworld/internal/game/geo"

// Grid constants. A map is NumChunks×NumChunks chunks and wraps in X/Y.
const (
	// ChunkShift - shift by N bits for 2^N tiles per chunk (2^4 = 16)
	ChunkShift = 4

	NumChunks = geo.NumChunks
	NumTiles  = geo.NumTiles

	// ChunkCount is the number of chunks per map.
	ChunkCount = NumChunks * NumChunks
)

// TileToChunk converts a tile coordinate (any integer) to a chunk index.
func TileToChunk(tx, ty int) (cx, cy int) {
	return geo.Wrap(tx) >> ChunkShift, geo.Wrap(ty) >> ChunkShift
}

// IsValidChunk checks if chunk index is within valid bounds.
func IsValidChunk(cx, cy int) bool {
	return cx >= 0 && cx < NumChunks && cy >= 0 && cy < NumChunks
}

// ChunkIndex returns the flat index of chunk (cx, cy).
func ChunkIndex(cx, cy int) int {
	return cy*NumChunks + cx
}

// WrapChunk folds a chunk index into [0, NumChunks).
func WrapChunk(c int) int {
	c %= NumChunks
	if c < 0 {
		c += NumChunks
	}
	return c
}
