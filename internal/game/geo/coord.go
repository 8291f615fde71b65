package geo

// Coord is an absolute tile position. TX/TY wrap at NumTiles, TZ is the lift.
// Value type, передаётся по значению.
type Coord struct {
	TX int
	TY int
	TZ int
}

// Invalid is the position reported for objects that are not on any map.
var Invalid = Coord{TX: InvalidChunk * TilesPerChunk, TY: InvalidChunk * TilesPerChunk}

// NewCoord создаёт Coord с указанными координатами.
func NewCoord(tx, ty, tz int) Coord {
	return Coord{TX: tx, TY: ty, TZ: tz}
}

// IsInvalid reports whether c is the off-map sentinel.
func (c Coord) IsInvalid() bool {
	return c == Invalid
}

// Add returns c offset by o (no wrapping).
func (c Coord) Add(o Coord) Coord {
	return Coord{TX: c.TX + o.TX, TY: c.TY + o.TY, TZ: c.TZ + o.TZ}
}

// Fix returns c with X and Y wrapped into [0, NumTiles).
func (c Coord) Fix() Coord {
	c.TX = Wrap(c.TX)
	c.TY = Wrap(c.TY)
	return c
}

// Neighbor returns the adjacent tile in direction dir, wrapped.
func (c Coord) Neighbor(dir Direction) Coord {
	i := int(dir&7) * 2
	return Coord{
		TX: Wrap(c.TX + int(Neighbors[i])),
		TY: Wrap(c.TY + int(Neighbors[i+1])),
		TZ: c.TZ,
	}
}

// ChunkXY returns the chunk indices containing c.
func (c Coord) ChunkXY() (int, int) {
	f := c.Fix()
	return f.TX / TilesPerChunk, f.TY / TilesPerChunk
}

// Distance returns the wraparound-aware Chebyshev distance to o in tiles.
// Symmetric and monotonic in each axis delta; suitable for ranking.
func (c Coord) Distance(o Coord) int {
	dx := abs(Delta(c.TX, o.TX))
	dy := abs(Delta(c.TY, o.TY))
	dz := abs(o.TZ - c.TZ)
	return max(dx, dy, dz)
}

// Wrap folds v into [0, NumTiles).
func Wrap(v int) int {
	v %= NumTiles
	if v < 0 {
		v += NumTiles
	}
	return v
}

// Delta returns the shortest signed difference to-from on the wrapping axis.
// The result is in [-NumTiles/2, NumTiles/2]; at exactly half the grid the
// sign follows the unwrapped order of the normalized inputs, so
// Delta(a, b) == -Delta(b, a) always holds.
func Delta(from, to int) int {
	diff := Wrap(to) - Wrap(from)
	switch {
	case diff > NumTiles/2:
		return diff - NumTiles
	case diff < -NumTiles/2:
		return diff + NumTiles
	default:
		return diff
	}
}

// DirectionOf returns the compass direction for a cartesian delta
// (deltaY grows northwards).
func DirectionOf(deltaY, deltaX int) Direction {
	if deltaX == 0 {
		if deltaY > 0 {
			return North
		}
		return South
	}
	dydx := (1024 * deltaY) / deltaX // 1024*tan
	if dydx >= 0 {
		if deltaX > 0 {
			switch {
			case dydx <= 424:
				return East
			case dydx <= 2472:
				return NorthEast
			default:
				return North
			}
		}
		switch {
		case dydx <= 424:
			return West
		case dydx <= 2472:
			return SouthWest
		default:
			return South
		}
	}
	if deltaX > 0 {
		switch {
		case dydx >= -424:
			return East
		case dydx >= -2472:
			return SouthEast
		default:
			return South
		}
	}
	switch {
	case dydx >= -424:
		return West
	case dydx >= -2472:
		return NorthWest
	default:
		return North
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
