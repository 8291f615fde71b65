package model

import (
	"fmt"

	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/geo"
)

// MaxQuantity is the largest stack a quantity shape can hold.
const MaxQuantity = 100

// ObjectFlags — битовые флаги объекта.
type ObjectFlags uint8

const (
	FlagInvisible ObjectFlags = 1 << iota
	FlagOkayToTake
	// FlagIfix marks objects stored in a chunk's fixed-object record.
	FlagIfix
)

// Object — игровой объект мира: shape/frame, quality byte, позиция, владелец.
// Объект находится либо в chunk карты, либо в контейнере (owner), но не в обоих.
//
// Не потокобезопасен: все мутации выполняются из игрового потока.
type Object struct {
	id      uint32
	shape   int
	frame   int
	quality int

	// Chunk-relative tile (0..15) on a map, or container-space position.
	tx, ty int
	lift   int

	chunk      Chunk
	owner      *Object
	contents   []*Object
	volumeUsed int

	flags ObjectFlags
	name  string

	Data any // actor reference for NPCs

	env *Env
}

// NewObject creates a detached object.
func NewObject(env *Env, id uint32, shape, frame, quality int) *Object {
	return &Object{
		id:      id,
		shape:   shape,
		frame:   frame,
		quality: quality,
		env:     env,
	}
}

// ID возвращает уникальный ID объекта (immutable после создания).
func (o *Object) ID() uint32 { return o.id }

// Env returns the object's environment.
func (o *Object) Env() *Env { return o.env }

// Shape returns the shape number.
func (o *Object) Shape() int { return o.shape }

// Frame returns the frame number.
func (o *Object) Frame() int { return o.frame }

// Quality returns the raw quality byte.
// Prefer the per-class accessors (Quantity, ObjHP, QualityFlags).
func (o *Object) Quality() int { return o.quality }

// SetQuality stores the raw quality byte.
func (o *Object) SetQuality(q int) { o.quality = q & 0xff }

// SetShape changes shape and frame without repainting.
func (o *Object) SetShape(shape, frame int) {
	o.shape = shape
	o.frame = frame
}

// SetFrame changes the frame without repainting. See ChangeFrame.
func (o *Object) SetFrame(frame int) { o.frame = frame }

// Lift returns the vertical tile position.
func (o *Object) Lift() int { return o.lift }

// SetLift sets the vertical tile position.
func (o *Object) SetLift(lift int) { o.lift = lift }

// TX returns the chunk-relative tile X.
func (o *Object) TX() int { return o.tx }

// TY returns the chunk-relative tile Y.
func (o *Object) TY() int { return o.ty }

// SetChunkTile sets the position inside the current chunk or container.
func (o *Object) SetChunkTile(tx, ty int) {
	o.tx = tx
	o.ty = ty
}

// Chunk returns the chunk the object is in, or nil.
func (o *Object) Chunk() Chunk { return o.chunk }

// SetChunk is called by the spatial store when the object is added to
// or removed from a chunk.
func (o *Object) SetChunk(c Chunk) { o.chunk = c }

// Owner returns the containing object, or nil.
func (o *Object) Owner() *Object { return o.owner }

// Flags returns the object flags.
func (o *Object) Flags() ObjectFlags { return o.flags }

// HasFlag reports whether all bits of f are set.
func (o *Object) HasFlag(f ObjectFlags) bool { return o.flags&f == f }

// SetFlag sets the bits of f.
func (o *Object) SetFlag(f ObjectFlags) { o.flags |= f }

// ClearFlag clears the bits of f.
func (o *Object) ClearFlag(f ObjectFlags) { o.flags &^= f }

// Invisible reports whether the object is invisible.
func (o *Object) Invisible() bool { return o.HasFlag(FlagInvisible) }

// OkayToTake reports whether taking the object is not theft.
func (o *Object) OkayToTake() bool { return o.HasFlag(FlagOkayToTake) }

// Info returns the object's shape metadata.
func (o *Object) Info() *data.ShapeInfo {
	return o.env.Shapes.Info(o.shape)
}

// Name returns the name override, or the frame/quality name of the shape.
func (o *Object) Name() string {
	if o.name != "" {
		return o.name
	}
	info := o.Info()
	return info.FrameName(o.frame, o.qualityKey(info))
}

// SetName sets a name override.
func (o *Object) SetName(name string) { o.name = name }

// String implements fmt.Stringer for logging.
func (o *Object) String() string {
	return fmt.Sprintf("%s#%d(shape=%d frame=%d)", o.Name(), o.id, o.shape, o.frame)
}

// qualityKey is the quality used for frame/quality overrides: -1 unless
// the class treats quality as a plain value.
func (o *Object) qualityKey(info *data.ShapeInfo) int {
	if info.HasQuality() {
		return o.quality
	}
	return -1
}

// Quantity returns the stack count: low 7 bits of quality (0 reads as 1)
// for quantity shapes, 1 for everything else.
func (o *Object) Quantity() int {
	if !o.Info().HasQuantity() {
		return 1
	}
	if q := o.quality & 0x7f; q != 0 {
		return q
	}
	return 1
}

// ObjHP returns the hit points stored in quality, or 0 if the class
// has no durability.
func (o *Object) ObjHP() int {
	if o.Info().HasHitPoints() {
		return o.quality
	}
	return 0
}

// SetObjHP stores hit points. Ignored for classes without durability.
func (o *Object) SetObjHP(hp int) {
	if o.Info().HasHitPoints() {
		o.SetQuality(hp)
	}
}

// EffectiveObjHP returns ObjHP, or the shape's frame/quality hit point
// override if the object itself has none.
func (o *Object) EffectiveObjHP() int {
	if hp := o.ObjHP(); hp != 0 {
		return hp
	}
	info := o.Info()
	return info.EffectiveHPs(o.frame, o.qualityKey(info))
}

// QualityFlags returns quality as a flag set for quality-flag classes, else 0.
func (o *Object) QualityFlags() int {
	if o.Info().HasQualityFlags() {
		return o.quality
	}
	return 0
}

// Map returns the map the object is on, or nil.
func (o *Object) Map() Map {
	if o.chunk == nil {
		return nil
	}
	return o.chunk.Map()
}

// MapNum returns the number of the map the object is on, or -1.
func (o *Object) MapNum() int {
	if m := o.Map(); m != nil {
		return m.Num()
	}
	return -1
}

// CX returns the chunk X, or geo.InvalidChunk.
func (o *Object) CX() int {
	if o.chunk == nil {
		return geo.InvalidChunk
	}
	return o.chunk.CX()
}

// CY returns the chunk Y, or geo.InvalidChunk.
func (o *Object) CY() int {
	if o.chunk == nil {
		return geo.InvalidChunk
	}
	return o.chunk.CY()
}

// Tile returns the absolute tile, or geo.Invalid if the object is not on
// a map.
func (o *Object) Tile() geo.Coord {
	if o.chunk == nil {
		return geo.Invalid
	}
	return geo.Coord{
		TX: o.chunk.CX()*geo.TilesPerChunk + o.tx,
		TY: o.chunk.CY()*geo.TilesPerChunk + o.ty,
		TZ: o.lift,
	}
}

// Volume returns the volume the object takes inside a container.
// Quantity does not scale it.
func (o *Object) Volume() int {
	return o.Info().Volume
}

// Weight returns the weight in 1/10 stones, 0 meaning infinite.
func (o *Object) Weight() int {
	w := data.ShapeWeight(o.Info(), o.Quantity())
	for _, c := range o.contents {
		w += c.Weight()
	}
	return w
}

// MaxWeight returns the carrying limit inherited from the owner chain,
// or 0 if there is no limit. Extradimensional containers stop the walk.
func (o *Object) MaxWeight() int {
	own := o.owner
	if own == nil {
		return 0
	}
	if own.Info().Extradimensional {
		return 0
	}
	if w, ok := own.Data.(interface{ MaxWeight() int }); ok {
		return w.MaxWeight()
	}
	return own.MaxWeight()
}
