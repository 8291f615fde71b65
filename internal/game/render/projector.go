package render

import (
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// Default projection constants.
const (
	TileSize   = 8 // pixels per tile
	LiftPixels = 4 // pixels per lift
)

// Projector maps an object to its on-screen bounding rectangle.
type Projector interface {
	ShapeRect(obj *model.Object) geo.Rect
}

// IsoProjector projects boxes the classic way: every lift shifts the
// picture up and left by LiftPixels. The view scrolls with ScrollTX/ScrollTY
// (top-left tile), wrapping at the grid edge.
type IsoProjector struct {
	ScrollTX, ScrollTY int
	TileSize           int
	LiftPixels         int
}

// NewIsoProjector creates a projector with the default pixel sizes.
func NewIsoProjector(scrollTX, scrollTY int) IsoProjector {
	return IsoProjector{
		ScrollTX:   scrollTX,
		ScrollTY:   scrollTY,
		TileSize:   TileSize,
		LiftPixels: LiftPixels,
	}
}

// ShapeRect returns the screen rectangle of obj. The bottom-right pixel is
// the object's anchor tile; the box grows left by its width and depth and
// up by its height.
func (p IsoProjector) ShapeRect(obj *model.Object) geo.Rect {
	info := obj.Info()
	frame := obj.Frame()
	return p.BoxRect(obj.Tile(), info.XTiles(frame), info.YTiles(frame), info.Height())
}

// BoxRect returns the screen rectangle of a box anchored at t.
func (p IsoProjector) BoxRect(t geo.Coord, xs, ys, zs int) geo.Rect {
	right := (geo.Delta(p.ScrollTX, t.TX)+1)*p.TileSize - 1 - t.TZ*p.LiftPixels
	bottom := (geo.Delta(p.ScrollTY, t.TY)+1)*p.TileSize - 1 - t.TZ*p.LiftPixels
	w := xs*p.TileSize + zs*p.LiftPixels
	h := ys*p.TileSize + zs*p.LiftPixels
	return geo.Rect{X: right - w + 1, Y: bottom - h + 1, W: w, H: h}
}
