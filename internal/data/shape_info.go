package data

// ShapeClass — категория shape, определяет смысл quality byte объекта.
type ShapeClass uint8

const (
	ClassUnusable     ShapeClass = 0 // trees
	ClassQuality      ShapeClass = 2
	ClassQuantity     ShapeClass = 3 // coins, arrows
	ClassHasHP        ShapeClass = 4 // breakable items
	ClassQualityFlags ShapeClass = 5
	ClassContainer    ShapeClass = 6
	ClassHatchable    ShapeClass = 7 // eggs, traps, moongates
	ClassSpellbook    ShapeClass = 8
	ClassBarge        ShapeClass = 9
	ClassVirtueStone  ShapeClass = 11
	ClassMonster      ShapeClass = 12
	ClassHuman        ShapeClass = 13
	ClassBuilding     ShapeClass = 14 // roof, window, mountain
)

// String returns human-readable shape class name.
func (c ShapeClass) String() string {
	switch c {
	case ClassUnusable:
		return "Unusable"
	case ClassQuality:
		return "Quality"
	case ClassQuantity:
		return "Quantity"
	case ClassHasHP:
		return "HasHP"
	case ClassQualityFlags:
		return "QualityFlags"
	case ClassContainer:
		return "Container"
	case ClassHatchable:
		return "Hatchable"
	case ClassSpellbook:
		return "Spellbook"
	case ClassBarge:
		return "Barge"
	case ClassVirtueStone:
		return "VirtueStone"
	case ClassMonster:
		return "Monster"
	case ClassHuman:
		return "Human"
	case ClassBuilding:
		return "Building"
	default:
		return "Unknown"
	}
}

// ReadyType is the equipment spot a shape is worn in.
type ReadyType uint8

const (
	ReadyTripleBolts ReadyType = 19
	ReadyNone        ReadyType = 0xff
)

// ReflectBit is the frame bit that swaps the X/Y footprint.
const ReflectBit = 32

// FrameHP overrides effective hit points for a frame/quality (-1 = any).
type FrameHP struct {
	Frame   int `yaml:"frame"`
	Quality int `yaml:"quality"`
	HP      int `yaml:"hp"`
}

// FrameUsecode binds a frame/quality (-1 = any) to a usecode function,
// either by name (preferred) or by number (-1 = none).
type FrameUsecode struct {
	Frame   int    `yaml:"frame"`
	Quality int    `yaml:"quality"`
	Name    string `yaml:"name"`
	ID      int    `yaml:"id"`
}

// FrameName overrides the display name for a frame/quality (-1 = any).
type FrameName struct {
	Frame   int    `yaml:"frame"`
	Quality int    `yaml:"quality"`
	Name    string `yaml:"name"`
}

// ShapeInfo — статические метаданные shape (read-only после загрузки).
type ShapeInfo struct {
	Shape int    `yaml:"shape"`
	Name  string `yaml:"name"`

	// Dims is the 3D footprint in tiles: x, y, height.
	Dims   [3]int     `yaml:"dims"`
	Weight int        `yaml:"weight"` // 1/10 stones
	Volume int        `yaml:"volume"`
	Class  ShapeClass `yaml:"class"`
	Ready  ReadyType  `yaml:"ready"`

	Solid            bool `yaml:"solid"`
	Door             bool `yaml:"door"`
	Transparent      bool `yaml:"transparent"`
	Occludes         bool `yaml:"occludes"`
	Lightweight      bool `yaml:"lightweight"`
	QuantityFrames   bool `yaml:"quantity_frames"`
	Locked           bool `yaml:"locked"`
	Explosive        bool `yaml:"explosive"`
	Extradimensional bool `yaml:"extradimensional"`

	Weapon *WeaponInfo `yaml:"weapon"`
	Ammo   *AmmoInfo   `yaml:"ammo"`
	Armor  *ArmorInfo  `yaml:"armor"`

	HitPoints []FrameHP      `yaml:"hit_points"`
	Usecodes  []FrameUsecode `yaml:"usecodes"`
	Names     []FrameName    `yaml:"names"`
}

// XTiles returns the footprint width for a frame (reflected frames swap x/y).
func (s *ShapeInfo) XTiles(frame int) int {
	return s.Dims[(frame>>5)&1]
}

// YTiles returns the footprint depth for a frame.
func (s *ShapeInfo) YTiles(frame int) int {
	return s.Dims[1^((frame>>5)&1)]
}

// Height returns the height in lifts.
func (s *ShapeInfo) Height() int {
	return s.Dims[2]
}

// HasQuantity reports whether instances are stack counts.
func (s *ShapeInfo) HasQuantity() bool {
	return s.Class == ClassQuantity
}

// HasQualityFlags reports whether quality is a set of flags.
func (s *ShapeInfo) HasQualityFlags() bool {
	return s.Class == ClassQualityFlags
}

// HasQuality reports whether quality is a plain value for this class.
func (s *ShapeInfo) HasQuality() bool {
	switch s.Class {
	case ClassQuality, ClassContainer, ClassHatchable, ClassVirtueStone, ClassMonster, ClassHuman:
		return true
	default:
		return false
	}
}

// HasHitPoints reports whether quality stores hit points.
// Containers have hit points too (resistance).
func (s *ShapeInfo) HasHitPoints() bool {
	return s.Class == ClassHasHP || s.Class == ClassContainer
}

// IsNPC reports whether the shape is a monster or human.
func (s *ShapeInfo) IsNPC() bool {
	return s.Class == ClassHuman || s.Class == ClassMonster
}

// EffectiveHPs returns the frame/quality hit point override, or 0.
func (s *ShapeInfo) EffectiveHPs(frame, quality int) int {
	i := searchFrameQuality(len(s.HitPoints), frame, quality, func(i int) (int, int) {
		return s.HitPoints[i].Frame, s.HitPoints[i].Quality
	})
	if i < 0 {
		return 0
	}
	return s.HitPoints[i].HP
}

// FrameUsecode returns the frame/quality usecode binding, or nil.
func (s *ShapeInfo) FrameUsecode(frame, quality int) *FrameUsecode {
	i := searchFrameQuality(len(s.Usecodes), frame, quality, func(i int) (int, int) {
		return s.Usecodes[i].Frame, s.Usecodes[i].Quality
	})
	if i < 0 {
		return nil
	}
	return &s.Usecodes[i]
}

// FrameName returns the frame/quality name override, falling back to Name.
func (s *ShapeInfo) FrameName(frame, quality int) string {
	i := searchFrameQuality(len(s.Names), frame, quality, func(i int) (int, int) {
		return s.Names[i].Frame, s.Names[i].Quality
	})
	if i < 0 {
		return s.Name
	}
	return s.Names[i].Name
}

// searchFrameQuality finds the best entry: exact, then any quality,
// then any frame, then full wildcard. Returns -1 if none match.
func searchFrameQuality(n, frame, quality int, key func(int) (int, int)) int {
	candidates := [4][2]int{
		{frame, quality},
		{frame, -1},
		{-1, quality},
		{-1, -1},
	}
	for _, c := range candidates {
		for i := range n {
			f, q := key(i)
			if f == c[0] && q == c[1] {
				return i
			}
		}
	}
	return -1
}

// ShapeWeight returns the weight of quantity items in 1/10 stones.
// 0 means infinite.
func ShapeWeight(info *ShapeInfo, quantity int) int {
	wt := quantity * info.Weight
	if info.Lightweight {
		// reagents, coins
		wt /= 10
		if wt <= 0 {
			wt = 1
		}
	}
	if info.HasQuantity() && wt <= 0 {
		wt = 1
	}
	return wt
}
