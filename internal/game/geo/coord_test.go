package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     int
	}{
		{"same", 10, 10, 0},
		{"forward", 10, 15, 5},
		{"backward", 15, 10, -5},
		{"wrap forward", NumTiles - 2, 3, 5},
		{"wrap backward", 3, NumTiles - 2, -5},
		{"unnormalized input", -1, 1, 2},
		{"half grid", 0, NumTiles / 2, NumTiles / 2},
		{"half grid reversed", NumTiles / 2, 0, -NumTiles / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delta(tt.from, tt.to))
		})
	}
}

func TestDelta_Antisymmetric(t *testing.T) {
	// Шаг подобран так, чтобы покрыть края сетки и середину.
	for a := 0; a < NumTiles; a += 97 {
		for b := 0; b < NumTiles; b += 89 {
			d := Delta(a, b)
			assert.Equal(t, -d, Delta(b, a), "a=%d b=%d", a, b)
			assert.LessOrEqual(t, abs(d), NumTiles/2, "a=%d b=%d", a, b)
		}
	}
	assert.Equal(t, -Delta(0, NumTiles/2), Delta(NumTiles/2, 0))
	assert.Equal(t, -Delta(NumTiles-1, NumTiles/2-1), Delta(NumTiles/2-1, NumTiles-1))
}

func TestCoord_Distance(t *testing.T) {
	a := NewCoord(10, 10, 0)

	assert.Equal(t, 0, a.Distance(a))
	assert.Equal(t, 5, a.Distance(NewCoord(15, 12, 0)))
	assert.Equal(t, 7, a.Distance(NewCoord(10, 10, 7)))
	assert.Equal(t, 12, a.Distance(NewCoord(NumTiles-2, 10, 0)), "wraps across X=0")

	b := NewCoord(NumTiles-3, 40, 2)
	assert.Equal(t, a.Distance(b), b.Distance(a))
}

func TestCoord_Neighbor(t *testing.T) {
	c := NewCoord(0, 0, 3)

	assert.Equal(t, NewCoord(0, NumTiles-1, 3), c.Neighbor(North))
	assert.Equal(t, NewCoord(1, 0, 3), c.Neighbor(East))
	assert.Equal(t, NewCoord(1, 1, 3), c.Neighbor(SouthEast))
	assert.Equal(t, NewCoord(NumTiles-1, NumTiles-1, 3), c.Neighbor(NorthWest))
}

func TestCoord_ChunkXY(t *testing.T) {
	cx, cy := NewCoord(33, 47, 0).ChunkXY()
	assert.Equal(t, 2, cx)
	assert.Equal(t, 2, cy)

	cx, cy = NewCoord(-1, NumTiles, 0).ChunkXY()
	assert.Equal(t, NumChunks-1, cx)
	assert.Equal(t, 0, cy)
}

func TestInvalid(t *testing.T) {
	assert.True(t, Invalid.IsInvalid())
	assert.False(t, NewCoord(1, 2, 3).IsInvalid())
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		name   string
		dy, dx int
		want   Direction
	}{
		{"north", 5, 0, North},
		{"south", -5, 0, South},
		{"east", 0, 5, East},
		{"west", 0, -5, West},
		{"north-east", 5, 5, NorthEast},
		{"south-west", -5, -5, SouthWest},
		{"south-east", -5, 5, SouthEast},
		{"north-west", 5, -5, NorthWest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionOf(tt.dy, tt.dx))
		})
	}
}

func TestRect_HasTile_Wraps(t *testing.T) {
	r := Rect{X: NumTiles - 2, Y: 0, W: 4, H: 1}

	assert.True(t, r.HasTile(NumTiles-1, 0))
	assert.True(t, r.HasTile(1, 0))
	assert.False(t, r.HasTile(2, 0))
	assert.False(t, r.HasTile(0, 1))
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, a.Intersects(Rect{X: 9, Y: 9, W: 5, H: 5}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, W: 5, H: 5}))
	assert.False(t, a.Intersects(Rect{X: 0, Y: -5, W: 5, H: 5}))
}

func TestRect_OverlapsTiles(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"inside", Rect{X: 10, Y: 10, W: 4, H: 4}, Rect{X: 11, Y: 11, W: 1, H: 1}, true},
		{"starts before", Rect{X: 10, Y: 10, W: 4, H: 4}, Rect{X: 7, Y: 7, W: 4, H: 4}, true},
		{"touching edge", Rect{X: 10, Y: 10, W: 4, H: 4}, Rect{X: 6, Y: 10, W: 4, H: 1}, false},
		{"across the seam", Rect{X: NumTiles - 4, Y: 0, W: 3, H: 1}, Rect{X: NumTiles - 2, Y: 0, W: 4, H: 1}, true},
		{"wrapped rect reaches zero", Rect{X: NumTiles - 1, Y: 0, W: 2, H: 1}, Rect{X: 0, Y: 0, W: 1, H: 1}, true},
		{"y apart", Rect{X: 0, Y: 0, W: 4, H: 4}, Rect{X: 0, Y: 4, W: 4, H: 4}, false},
		{"empty", Rect{X: 0, Y: 0, W: 0, H: 4}, Rect{X: 0, Y: 0, W: 4, H: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.OverlapsTiles(tt.b))
			assert.Equal(t, tt.want, tt.b.OverlapsTiles(tt.a))
		})
	}
}

func TestBlock_Contains(t *testing.T) {
	b := Block{X: 5, Y: 5, Z: 2, W: 2, D: 3, H: 4}

	assert.True(t, b.Contains(NewCoord(6, 7, 5)))
	assert.False(t, b.Contains(NewCoord(6, 7, 6)), "above top")
	assert.False(t, b.Contains(NewCoord(6, 7, 1)), "below bottom")
	assert.False(t, b.Contains(NewCoord(7, 7, 3)), "outside footprint")
}
