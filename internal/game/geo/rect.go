package geo

// Rect is an axis-aligned rectangle. Used both for screen pixels and for
// absolute tile footprints (X/Y normalized into the grid).
type Rect struct {
	X, Y int
	W, H int
}

// Intersects reports whether r and o share at least one point (no wrapping).
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// HasPoint reports whether (x, y) lies inside r (no wrapping).
func (r Rect) HasPoint(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// HasTile reports whether tile (tx, ty) lies inside the tile rectangle r,
// taking grid wraparound into account.
func (r Rect) HasTile(tx, ty int) bool {
	dx := Wrap(tx - r.X)
	dy := Wrap(ty - r.Y)
	return dx < r.W && dy < r.H
}

// OverlapsTiles reports whether tile rects r and o share a tile, taking
// grid wraparound into account.
func (r Rect) OverlapsTiles(o Rect) bool {
	return spanOverlaps(r.X, r.W, o.X, o.W) && spanOverlaps(r.Y, r.H, o.Y, o.H)
}

// spanOverlaps checks [a, a+aw) against [b, b+bw) on the wrapping axis.
func spanOverlaps(a, aw, b, bw int) bool {
	if aw <= 0 || bw <= 0 {
		return false
	}
	d := Wrap(b - a)
	return d < aw || d+bw > NumTiles
}

// Block is a 3D tile volume: footprint plus lift range [Z, Z+H).
type Block struct {
	X, Y, Z int
	W, D, H int
}

// Footprint returns the X/Y part of the volume.
func (b Block) Footprint() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.D}
}

// Contains reports whether tile t lies inside the volume (wrap-aware in X/Y).
func (b Block) Contains(t Coord) bool {
	if t.TZ < b.Z || t.TZ >= b.Z+b.H {
		return false
	}
	return b.Footprint().HasTile(t.TX, t.TY)
}
