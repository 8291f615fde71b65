package model

import "github.com/udisondev/isoworld/internal/game/geo"

// rotate maps a direction to the frame bits facing it (bit 4 = S, bit 5 = reflect).
var rotate = [8]int{0, 0, 48, 48, 16, 16, 32, 32}

// Footprint returns the absolute tile rectangle the object covers.
// The anchor tile is the lower-right (near) corner.
func (o *Object) Footprint() geo.Rect {
	info := o.Info()
	xs, ys := info.XTiles(o.frame), info.YTiles(o.frame)
	t := o.Tile()
	return geo.Rect{
		X: geo.Wrap(t.TX - xs + 1),
		Y: geo.Wrap(t.TY - ys + 1),
		W: xs,
		H: ys,
	}
}

// PaintArea returns the tiles the object's picture covers: the footprint
// widened up-left by one tile per 4 lifts of lift plus height.
func (o *Object) PaintArea() geo.Rect {
	r := o.Footprint()
	shift := (o.lift + o.Info().Height()) / 4
	r.X = geo.Wrap(r.X - shift)
	r.Y = geo.Wrap(r.Y - shift)
	r.W += shift
	r.H += shift
	return r
}

// Block returns the 3D tile volume the object covers.
func (o *Object) Block() geo.Block {
	foot := o.Footprint()
	return geo.Block{
		X: foot.X, Y: foot.Y, Z: o.lift,
		W: foot.W, D: foot.H, H: o.Info().Height(),
	}
}

// Blocks reports whether the object is a solid obstacle occupying t.
func (o *Object) Blocks(t geo.Coord) bool {
	if o.chunk == nil {
		return false
	}
	info := o.Info()
	if info.Height() == 0 || !info.Solid {
		return false
	}
	return o.Block().Contains(t)
}

// deltaWrapCheck moves the coordinate that is "ahead" in wrap direction
// back by its size so that touching objects measure 0 apart.
func deltaWrapCheck(dir, size1, size2 int, c1, c2 *int) {
	switch {
	case dir > 0:
		*c2 = geo.Wrap(*c2 - size2)
	case dir < 0:
		*c1 = geo.Wrap(*c1 - size1)
	}
}

// deltaCheck clamps lifts toward each other by the heights (no wrap on z).
func deltaCheck(delta, size1, size2 int, c1, c2 *int) {
	switch {
	case delta < 0:
		if *c1+size1 > *c2 {
			*c1 = *c2
		} else {
			*c1 += size1
		}
	case delta > 0:
		if *c2+size2 > *c1 {
			*c2 = *c1
		} else {
			*c2 += size2
		}
	}
}

// DistanceTo returns the distance to other in tiles, taking both 3D
// sizes into account.
func (o *Object) DistanceTo(other *Object) int {
	t1, t2 := o.Tile(), other.Tile()
	info1, info2 := o.Info(), other.Info()
	return sizedDistance(t1, t2,
		info1.XTiles(o.frame)-1, info1.YTiles(o.frame)-1, info1.Height(),
		info2.XTiles(other.frame)-1, info2.YTiles(other.frame)-1, info2.Height())
}

// DistanceToTile returns the distance to t in tiles, taking the object's
// 3D size into account.
func (o *Object) DistanceToTile(t geo.Coord) int {
	info := o.Info()
	return sizedDistance(o.Tile(), t,
		info.XTiles(o.frame)-1, info.YTiles(o.frame)-1, info.Height(),
		0, 0, 0)
}

func sizedDistance(t1, t2 geo.Coord, xs1, ys1, zs1, xs2, ys2, zs2 int) int {
	dx := geo.Delta(t1.TX, t2.TX)
	dy := geo.Delta(t1.TY, t2.TY)
	dz := t1.TZ - t2.TZ
	deltaWrapCheck(dx, xs1, xs2, &t1.TX, &t2.TX)
	deltaWrapCheck(dy, ys1, ys2, &t1.TY, &t2.TY)
	deltaCheck(dz, zs1, zs2, &t1.TZ, &t2.TZ)
	return t1.Distance(t2)
}

// IsClosedDoor reports whether the object is a door with occupied tiles
// on both sides along its longer axis.
func (o *Object) IsClosedDoor() bool {
	info := o.Info()
	if !info.Door {
		return false
	}
	m := o.Map()
	if m == nil {
		return false
	}
	xs, ys := info.XTiles(o.frame), info.YTiles(o.frame)
	door := o.Tile()
	var before, after geo.Coord
	if xs > ys {
		before = door.Add(geo.NewCoord(-xs, 0, 0))
		after = door.Add(geo.NewCoord(1, 0, 0))
	} else {
		before = door.Add(geo.NewCoord(0, -ys, 0))
		after = door.Add(geo.NewCoord(0, 1, 0))
	}
	return m.IsTileOccupied(before.Fix()) && m.IsTileOccupied(after.Fix())
}

// CenterTile returns the tile at the middle of the footprint, 3/4 up.
func (o *Object) CenterTile() geo.Coord {
	if o.chunk == nil {
		return geo.Invalid
	}
	info := o.Info()
	dx := (info.XTiles(o.frame) - 1) >> 1
	dy := (info.YTiles(o.frame) - 1) >> 1
	dz := info.Height() * 3 / 4
	t := o.Tile()
	return geo.NewCoord(t.TX-dx, t.TY-dy, t.TZ+dz)
}

// MissileTile returns the tile a missile launched by the object starts from.
func (o *Object) MissileTile() geo.Coord {
	if o.chunk == nil {
		return geo.Invalid
	}
	info := o.Info()
	dx := info.XTiles(o.frame) - 1
	dy := info.YTiles(o.frame) - 1
	dz := info.Height() * 3 / 4
	t := o.Tile()
	return geo.NewCoord(t.TX-dx/2, t.TY-dy/2, t.TZ+dz)
}

// DirectionTo returns the compass direction from this object's center to
// the other's.
func (o *Object) DirectionTo(other *Object) geo.Direction {
	return o.DirectionToTile(other.CenterTile())
}

// DirectionToTile returns the compass direction from the object's center to t.
func (o *Object) DirectionToTile(t geo.Coord) geo.Direction {
	c := o.CenterTile()
	// Screen Y grows southwards.
	return geo.DirectionOf(geo.Delta(t.TY, c.TY), geo.Delta(c.TX, t.TX))
}

// FacingDirection returns the direction to face other: straight across
// when the object is beside or in line with other's footprint, else the
// center-to-center direction.
func (o *Object) FacingDirection(other *Object) geo.Direction {
	t := o.Tile()
	r := other.Footprint()
	inRows := t.TY >= r.Y && t.TY < r.Y+r.H
	inCols := t.TX >= r.X && t.TX < r.X+r.W
	switch {
	case inRows && r.X+r.W <= t.TX:
		return geo.West
	case inRows && t.TX < r.X:
		return geo.East
	case inCols && r.Y+r.H <= t.TY:
		return geo.North
	case inCols && t.TY < r.Y:
		return geo.South
	default:
		return o.DirectionTo(other)
	}
}

// DirFacing returns the direction encoded in the frame's rotation bits.
func (o *Object) DirFacing() geo.Direction {
	switch o.frame & (16 | 32) {
	case 0:
		return geo.North
	case 48:
		return geo.East
	case 16:
		return geo.South
	default:
		return geo.West
	}
}

// RotatedFrame returns the frame after rotating quads × 90° clockwise.
func (o *Object) RotatedFrame(quads int) int {
	dir := (int(o.DirFacing()) + 2*quads) & 7
	return (o.frame &^ (16 | 32)) | rotate[dir]
}

// SwapPositions exchanges the positions of two objects with the same
// footprint size. Returns false if the sizes differ.
func (o *Object) SwapPositions(other *Object) bool {
	info1, info2 := o.Info(), other.Info()
	if info1.XTiles(o.frame) != info2.XTiles(other.frame) ||
		info1.YTiles(o.frame) != info2.YTiles(other.frame) {
		return false
	}
	p1, p2 := o.Tile(), other.Tile()
	m1, m2 := o.MapNum(), other.MapNum()
	o.RemoveThis(true)
	other.RemoveThis(true)
	o.Move(p2, m2)
	other.Move(p1, m1)
	return true
}

