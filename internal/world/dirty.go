package world

import (
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// DirtyRegions collects tile areas that need a repaint between two
// frames. Implements model.DirtyTracker.
//
// The draw pass calls Drain once per tick.
type DirtyRegions struct {
	rects []geo.Rect
	marks int
}

// NewDirtyRegions creates an empty tracker.
func NewDirtyRegions() *DirtyRegions {
	return &DirtyRegions{rects: make([]geo.Rect, 0, 32)}
}

// MarkDirty records the paint area of obj, or of its outermost owner for
// contained objects. Objects not on a map are ignored.
func (d *DirtyRegions) MarkDirty(obj *model.Object) {
	top := obj.Outermost()
	if top.Chunk() == nil {
		return
	}
	d.marks++
	r := top.PaintArea()
	for i, have := range d.rects {
		if have.Intersects(r) {
			d.rects[i] = union(have, r)
			return
		}
	}
	d.rects = append(d.rects, r)
}

// Marks returns the number of MarkDirty calls that recorded an area since
// the last Drain.
func (d *DirtyRegions) Marks() int { return d.marks }

// Drain returns the collected areas and resets the tracker.
func (d *DirtyRegions) Drain() []geo.Rect {
	out := d.rects
	d.rects = make([]geo.Rect, 0, cap(out))
	d.marks = 0
	return out
}

func union(a, b geo.Rect) geo.Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
	return geo.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
