package world

import (
	"slices"

	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// Chunk represents a single 16×16 tile cell of a map.
// Objects are registered in the chunk holding their anchor tile.
type Chunk struct {
	cx, cy int
	m      *Map

	objects []*model.Object

	// version is incremented on Add/Remove.
	version uint64
}

// NewChunk creates an empty chunk of m.
func NewChunk(m *Map, cx, cy int) *Chunk {
	return &Chunk{cx: cx, cy: cy, m: m}
}

// CX returns chunk X index.
func (c *Chunk) CX() int { return c.cx }

// CY returns chunk Y index.
func (c *Chunk) CY() int { return c.cy }

// Map returns the map owning the chunk.
func (c *Chunk) Map() model.Map { return c.m }

// Version returns current chunk version (incremented on Add/Remove).
func (c *Chunk) Version() uint64 { return c.version }

// Add registers obj in the chunk and points obj at it.
func (c *Chunk) Add(obj *model.Object) {
	if obj.Chunk() != nil {
		obj.Chunk().Remove(obj)
	}
	c.objects = append(c.objects, obj)
	obj.SetChunk(c)
	c.version++
	c.m.track(obj)
}

// Remove unregisters obj. No-op if obj is not here.
func (c *Chunk) Remove(obj *model.Object) {
	i := slices.Index(c.objects, obj)
	if i < 0 {
		return
	}
	c.objects = slices.Delete(c.objects, i, i+1)
	obj.SetChunk(nil)
	c.version++
	c.m.untrack(obj)
}

// Objects returns the objects in the chunk.
// IMPORTANT: Returned slice is owned by the chunk, DO NOT modify.
func (c *Chunk) Objects() []*model.Object { return c.objects }

// Len returns the number of objects in the chunk.
func (c *Chunk) Len() int { return len(c.objects) }

// FindDoor returns a door anchored in this chunk whose volume contains t.
func (c *Chunk) FindDoor(t geo.Coord) *model.Object {
	for _, obj := range c.objects {
		if obj.Info().Door && obj.Block().Contains(t) {
			return obj
		}
	}
	return nil
}

// FindBlocking returns an object anchored in this chunk that blocks t.
func (c *Chunk) FindBlocking(t geo.Coord) *model.Object {
	for _, obj := range c.objects {
		if obj.Blocks(t) {
			return obj
		}
	}
	return nil
}
