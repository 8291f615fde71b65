package geo

// Map grid dimensions.
// A map is NumSchunks×NumSchunks superchunks, each ChunksPerSchunk×ChunksPerSchunk
// chunks of TilesPerChunk×TilesPerChunk tiles. X and Y wrap at NumTiles.
const (
	TilesPerChunk   = 16
	ChunksPerSchunk = 16
	NumSchunks      = 12
	NumChunks       = NumSchunks * ChunksPerSchunk // 192
	NumTiles        = NumChunks * TilesPerChunk    // 3072
	TilesPerSchunk  = ChunksPerSchunk * TilesPerChunk
)

// InvalidChunk is reported as chunk X/Y for objects that are not on a map.
const InvalidChunk = 255

// Direction is one of the 8 compass directions, clockwise from north.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// String returns human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// Neighbors holds (dx, dy) offsets to each neighbor, indexed by 2*dir.
var Neighbors = [16]int16{0, -1, 1, -1, 1, 0, 1, 1, 0, 1, -1, 1, -1, 0, -1, -1}
