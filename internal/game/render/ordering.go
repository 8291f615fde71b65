package render

import (
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// Order is the paint relation between two objects.
type Order int

const (
	// Before means the first object is painted before the second.
	Before Order = -1
	// DontCare means the pair does not compete for paint order.
	DontCare Order = 0
	// After means the first object is painted after the second.
	After Order = 1
)

// String returns human-readable order name.
func (o Order) String() string {
	switch o {
	case Before:
		return "Before"
	case After:
		return "After"
	default:
		return "DontCare"
	}
}

// OrderingInfo — 3D-габариты объекта в тайлах плюс его прямоугольник на экране.
// Тайл-якорь объекта: ближний нижний правый угол, диапазоны тянутся от него
// назад (влево, вдаль) и вверх.
type OrderingInfo struct {
	Area geo.Rect

	TX, TY, TZ int
	XS, YS, ZS int

	XLeft, XRight int
	YFar, YNear   int
	ZBot, ZTop    int

	Occludes bool
}

// NewOrderingInfo builds ordering info for a box anchored at t with
// size xs×ys×zs. A flat box (zs == 0) sits one lift below its anchor so it
// overlaps whatever it lies on.
func NewOrderingInfo(area geo.Rect, t geo.Coord, xs, ys, zs int, occludes bool) OrderingInfo {
	inf := OrderingInfo{
		Area: area,
		TX:   t.TX, TY: t.TY, TZ: t.TZ,
		XS: xs, YS: ys, ZS: zs,
		XLeft:    t.TX - xs + 1,
		XRight:   t.TX,
		YFar:     t.TY - ys + 1,
		YNear:    t.TY,
		ZBot:     t.TZ,
		ZTop:     t.TZ + zs - 1,
		Occludes: occludes,
	}
	if zs == 0 {
		inf.ZBot--
	}
	return inf
}

// ObjectOrdering returns the ordering info of a placed object.
func ObjectOrdering(obj *model.Object, area geo.Rect) OrderingInfo {
	info := obj.Info()
	frame := obj.Frame()
	return NewOrderingInfo(area, obj.Tile(),
		info.XTiles(frame), info.YTiles(frame), info.Height(), info.Occludes)
}

// CompareRanges compares [from1, to1] with [from2, to2].
// Disjoint ranges give a definite sign. Overlapping ranges are ordered by
// start; equal starts put the longer range first.
func CompareRanges(from1, to1, from2, to2 int) (cmp int, overlap bool) {
	switch {
	case to1 < from2:
		return -1, false
	case to2 < from1:
		return 1, false
	case from1 < from2:
		return -1, true
	case from1 > from2:
		return 1, true
	case to1 < to2:
		return 1, true
	case to1 > to2:
		return -1, true
	default:
		return 0, true
	}
}

// Compare decides which of two objects is painted first.
//
// The relation is antisymmetric but not transitive: three objects can form
// a cycle. Callers must sort with something that tolerates that (see
// PaintOrder).
func Compare(inf1, inf2 OrderingInfo) Order {
	if !inf1.Area.Intersects(inf2.Area) {
		return DontCare
	}

	// X/Y wrap: move inf2 next to inf1 before comparing ranges.
	dx := inf1.XRight + geo.Delta(inf1.XRight, inf2.XRight) - inf2.XRight
	dy := inf1.YNear + geo.Delta(inf1.YNear, inf2.YNear) - inf2.YNear
	xcmp, xover := CompareRanges(inf1.XLeft, inf1.XRight, inf2.XLeft+dx, inf2.XRight+dx)
	ycmp, yover := CompareRanges(inf1.YFar, inf1.YNear, inf2.YFar+dy, inf2.YNear+dy)
	zcmp, zover := CompareRanges(inf1.ZBot, inf1.ZTop, inf2.ZBot, inf2.ZTop)

	if xcmp == 0 && ycmp == 0 && zcmp == 0 {
		// Same space: the larger picture goes on top.
		switch {
		case inf1.Area.W < inf2.Area.W && inf1.Area.H < inf2.Area.H:
			return Before
		case inf1.Area.W > inf2.Area.W && inf1.Area.H > inf2.Area.H:
			return After
		default:
			return DontCare
		}
	}

	if xover && yover && zover {
		// Flat objects are painted first.
		if inf1.ZS == 0 {
			if inf2.ZS == 0 {
				return DontCare
			}
			return Before
		} else if inf2.ZS == 0 {
			return After
		}
	}

	if xcmp >= 0 && ycmp >= 0 && zcmp >= 0 {
		return After
	}
	if xcmp <= 0 && ycmp <= 0 && zcmp <= 0 {
		return Before
	}

	switch {
	case yover:
		switch {
		case xover:
			return Order(zcmp)
		case zover:
			return Order(xcmp)
		case zcmp == 0:
			return Order(xcmp)
		case xcmp == zcmp:
			return Order(xcmp)
		// A floor between the two (roof over a statue).
		case inf1.ZTop/5 < inf2.ZBot/5 && inf2.Occludes:
			return Before
		case inf2.ZTop/5 < inf1.ZBot/5 && inf1.Occludes:
			return After
		default:
			return DontCare
		}

	case xover:
		if zover || zcmp == 0 || ycmp == zcmp {
			return Order(ycmp)
		}
		return DontCare

	case xcmp == -1:
		if ycmp != -1 {
			return DontCare
		}
		switch {
		case zover || zcmp <= 0:
			return Before
		// Mirror of the floor case below.
		case inf2.ZTop/5 < inf1.ZBot/5:
			return After
		default:
			return DontCare
		}

	case ycmp == 1:
		switch {
		case zover || zcmp >= 0:
			return After
		case inf1.ZTop/5 < inf2.ZBot/5:
			return Before
		default:
			return DontCare
		}
	}
	return DontCare
}

// Less reports whether a is painted before b. ok is false when the pair
// does not compete for paint order.
func Less(p Projector, a, b *model.Object) (less, ok bool) {
	switch Compare(ObjectOrdering(a, p.ShapeRect(a)), ObjectOrdering(b, p.ShapeRect(b))) {
	case Before:
		return true, true
	case After:
		return false, true
	default:
		return false, false
	}
}
