package world

import (
	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// FindNearby appends to out every object anchored within radius tiles of
// center (a wrapped square) that matches shape, quality, frame and mask.
//
// model.AnyShape/AnyQuality/AnyFrame are wildcards. Mask bits:
// 4|8 only NPCs, 0x10 also eggs and barges, 0x20 also invisible objects,
// 0x80 also transparent shapes.
func (m *Map) FindNearby(out []*model.Object, center geo.Coord, shape, radius, mask, quality, frame int) []*model.Object {
	if radius < 0 || center.IsInvalid() {
		return out
	}
	// A given shape overrides the plain NPC bit.
	if shape >= 0 && mask == 4 {
		mask = 0
	}
	side := 1 + 2*radius
	bounds := geo.Rect{
		X: geo.Wrap(center.TX - radius),
		Y: geo.Wrap(center.TY - radius),
		W: min(side, NumTiles),
		H: min(side, NumTiles),
	}

	m.forEachChunkIn(bounds, func(c *Chunk) {
		for _, obj := range c.objects {
			t := obj.Tile()
			if !bounds.HasTile(t.TX, t.TY) {
				continue
			}
			if shape >= 0 && obj.Shape() != shape {
				continue
			}
			if quality != model.AnyQuality && obj.Quality() != quality {
				continue
			}
			if frame != model.AnyFrame && obj.Frame() != frame {
				continue
			}
			if !checkMask(obj, mask) {
				continue
			}
			out = append(out, obj)
		}
	})
	return out
}

// ObjectsIn appends every object whose paint area overlaps the tile rect r,
// including objects anchored past r that reach back into it.
// r may start off the grid; it is wrapped first.
func (m *Map) ObjectsIn(out []*model.Object, r geo.Rect) []*model.Object {
	if r.W <= 0 || r.H <= 0 {
		return out
	}
	r = geo.Rect{X: geo.Wrap(r.X), Y: geo.Wrap(r.Y), W: min(r.W, NumTiles), H: min(r.H, NumTiles)}
	// Paint areas span at most one chunk back from the anchor.
	search := geo.Rect{
		X: r.X, Y: r.Y,
		W: min(r.W+geo.TilesPerChunk, NumTiles),
		H: min(r.H+geo.TilesPerChunk, NumTiles),
	}
	m.forEachChunkIn(search, func(c *Chunk) {
		for _, obj := range c.objects {
			if obj.PaintArea().OverlapsTiles(r) {
				out = append(out, obj)
			}
		}
	})
	return out
}

// forEachChunkIn visits each allocated chunk intersecting the tile rect r
// exactly once.
func (m *Map) forEachChunkIn(r geo.Rect, fn func(*Chunk)) {
	cx0 := r.X >> ChunkShift
	cy0 := r.Y >> ChunkShift
	ncx := min(((r.X&(geo.TilesPerChunk-1))+r.W+geo.TilesPerChunk-1)>>ChunkShift, NumChunks)
	ncy := min(((r.Y&(geo.TilesPerChunk-1))+r.H+geo.TilesPerChunk-1)>>ChunkShift, NumChunks)
	for dy := range ncy {
		for dx := range ncx {
			if c := m.peekChunk(cx0+dx, cy0+dy); c != nil {
				fn(c)
			}
		}
	}
}

func checkMask(obj *model.Object, mask int) bool {
	info := obj.Info()
	if mask&model.MaskNPC != 0 && !info.IsNPC() {
		return false
	}
	if (info.Class == data.ClassHatchable || info.Class == data.ClassBarge) &&
		mask&model.MaskEggs == 0 {
		return false
	}
	if info.Transparent && mask&model.MaskTransparent == 0 {
		return false
	}
	if obj.Invisible() && mask&model.MaskInvisible == 0 {
		return false
	}
	return true
}
