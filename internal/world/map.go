package world

import (
	"maps"
	"slices"

	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// Map is one chunked toroidal map. Chunks are allocated on first use.
//
// Not safe for concurrent use: owned by the game thread.
type Map struct {
	num     int
	chunks  []*Chunk // flat [NumChunks*NumChunks], nil until used
	objects map[uint32]*model.Object

	// ifixModified holds chunks whose fixed-object records changed.
	ifixModified map[int]struct{}
}

// NewMap creates an empty map.
func NewMap(num int) *Map {
	return &Map{
		num:          num,
		chunks:       make([]*Chunk, ChunkCount),
		objects:      make(map[uint32]*model.Object),
		ifixModified: make(map[int]struct{}),
	}
}

// Num returns the map number.
func (m *Map) Num() int { return m.num }

// Chunk returns the chunk at (cx, cy), or nil if out of range.
func (m *Map) Chunk(cx, cy int) model.Chunk {
	c := m.ChunkAt(cx, cy)
	if c == nil {
		return nil
	}
	return c
}

// ChunkAt returns the chunk at (cx, cy), creating it on first use.
// Returns nil if out of range.
func (m *Map) ChunkAt(cx, cy int) *Chunk {
	if !IsValidChunk(cx, cy) {
		return nil
	}
	i := ChunkIndex(cx, cy)
	if m.chunks[i] == nil {
		m.chunks[i] = NewChunk(m, cx, cy)
	}
	return m.chunks[i]
}

// peekChunk returns the chunk at (cx, cy) without allocating it.
func (m *Map) peekChunk(cx, cy int) *Chunk {
	return m.chunks[ChunkIndex(WrapChunk(cx), WrapChunk(cy))]
}

// Place puts obj at absolute tile t on this map. Returns false for an
// off-grid tile.
func (m *Map) Place(obj *model.Object, t geo.Coord) bool {
	if t.TX < 0 || t.TY < 0 {
		return false
	}
	c := m.ChunkAt(t.TX/geo.TilesPerChunk, t.TY/geo.TilesPerChunk)
	if c == nil {
		return false
	}
	obj.SetLift(t.TZ)
	obj.SetChunkTile(t.TX%geo.TilesPerChunk, t.TY%geo.TilesPerChunk)
	c.Add(obj)
	return true
}

func (m *Map) track(obj *model.Object) {
	m.objects[obj.ID()] = obj
}

func (m *Map) untrack(obj *model.Object) {
	delete(m.objects, obj.ID())
}

// Object returns an object on this map by ID.
func (m *Map) Object(id uint32) (*model.Object, bool) {
	obj, ok := m.objects[id]
	return obj, ok
}

// ObjectCount returns total number of objects on the map.
func (m *Map) ObjectCount() int {
	return len(m.objects)
}

// coveringChunks calls fn for the chunk holding t and the chunks east and
// south of it, which may hold objects whose footprint reaches back onto t.
func (m *Map) coveringChunks(t geo.Coord, fn func(*Chunk) bool) {
	cx, cy := TileToChunk(t.TX, t.TY)
	for dy := range 2 {
		for dx := range 2 {
			c := m.peekChunk(cx+dx, cy+dy)
			if c == nil {
				continue
			}
			if !fn(c) {
				return
			}
		}
	}
}

// FindDoor returns the door occupying t, or nil.
func (m *Map) FindDoor(t geo.Coord) *model.Object {
	t = t.Fix()
	var door *model.Object
	m.coveringChunks(t, func(c *Chunk) bool {
		door = c.FindDoor(t)
		return door == nil
	})
	return door
}

// FindBlocking returns the object blocking t, or nil.
func (m *Map) FindBlocking(t geo.Coord) *model.Object {
	t = t.Fix()
	var obj *model.Object
	m.coveringChunks(t, func(c *Chunk) bool {
		obj = c.FindBlocking(t)
		return obj == nil
	})
	return obj
}

// IsTileOccupied reports whether a solid object blocks t.
func (m *Map) IsTileOccupied(t geo.Coord) bool {
	return m.FindBlocking(t) != nil
}

// SetIfixModified marks the fixed-object record of chunk (cx, cy) dirty.
func (m *Map) SetIfixModified(cx, cy int) {
	if IsValidChunk(cx, cy) {
		m.ifixModified[ChunkIndex(cx, cy)] = struct{}{}
	}
}

// IfixModified returns the chunks with dirty fixed-object records,
// sorted by index.
func (m *Map) IfixModified() [][2]int {
	idx := slices.Sorted(maps.Keys(m.ifixModified))
	out := make([][2]int, len(idx))
	for i, v := range idx {
		out[i] = [2]int{v % NumChunks, v / NumChunks}
	}
	return out
}

// ClearIfixModified forgets dirty state of chunk (cx, cy).
func (m *Map) ClearIfixModified(cx, cy int) {
	delete(m.ifixModified, ChunkIndex(cx, cy))
}
