package model

import (
	"log/slog"
	"math/rand/v2"
	"time"
	"weak"

	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/geo"
)

// Nearby query wildcards.
const (
	AnyShape   = -359
	AnyQuality = -359
	AnyFrame   = -359
)

// Nearby query type mask bits.
const (
	MaskNPC         = 4 | 8
	MaskEggs        = 0x10
	MaskInvisible   = 0x20
	MaskTransparent = 0x80
	MaskAnything    = 0xb0
)

// ShapeTable resolves static shape metadata. Info never returns nil.
type ShapeTable interface {
	Info(shape int) *data.ShapeInfo
}

// Chunk is one 16×16 tile cell of a map.
type Chunk interface {
	CX() int
	CY() int
	Map() Map
	Add(obj *Object)
	Remove(obj *Object)
}

// Map is a chunked toroidal spatial store.
type Map interface {
	Num() int
	// Chunk returns nil for out-of-range chunk coordinates.
	Chunk(cx, cy int) Chunk
	FindDoor(t geo.Coord) *Object
	IsTileOccupied(t geo.Coord) bool
	// FindNearby appends matches around center to out.
	FindNearby(out []*Object, center geo.Coord, shape, radius, mask, quality, frame int) []*Object
	// SetIfixModified marks the fixed-object record of a chunk as dirty.
	SetIfixModified(cx, cy int)
}

// MapSet resolves maps by number.
type MapSet interface {
	Map(num int) Map
	Current() Map
}

// DirtyTracker collects screen regions that need a repaint.
type DirtyTracker interface {
	MarkDirty(obj *Object)
}

// Scripts is the usecode machine.
type Scripts interface {
	Call(fn int, obj *Object, event Event) bool
	Exists(fn int) bool
	// FindFunction returns -1 if name is unknown.
	FindFunction(name string) int
	ShapeFunction(shape int) int
}

// Effects is the audio/visual effects manager.
type Effects interface {
	PlaySound(obj *Object, sfx int)
	Explode(at geo.Coord, source *Object, delay, weapon, ammo int, attacker *Object)
	RemoveText(obj *Object)
}

// Editor is the live-edit link. Edit reports whether the object was
// handed to the external editor.
type Editor interface {
	Edit(obj *Object) bool
}

// Env — окружение объектов: коллабораторы, общие для всех объектов мира.
// Используется только из игрового потока.
type Env struct {
	Shapes  ShapeTable
	Maps    MapSet
	Dirty   DirtyTracker
	Scripts Scripts
	Effects Effects
	Editor  Editor
	Deps    *Dependencies
	Log     *slog.Logger
	Rand    *rand.Rand

	editing weak.Pointer[Object]
}

// NewEnv creates an environment with no-op collaborators.
// Callers replace the fields they need.
func NewEnv(shapes ShapeTable) *Env {
	seed := uint64(time.Now().UnixNano())
	return &Env{
		Shapes:  shapes,
		Dirty:   nopDirty{},
		Scripts: nopScripts{},
		Effects: nopEffects{},
		Deps:    NewDependencies(),
		Log:     slog.Default(),
		Rand:    rand.New(rand.NewPCG(seed, seed>>32|1)),
	}
}

// SetEditing records obj as the object open in the external editor.
// The slot never keeps obj alive.
func (e *Env) SetEditing(obj *Object) {
	if obj == nil {
		e.editing = weak.Pointer[Object]{}
		return
	}
	e.editing = weak.Make(obj)
}

// Editing returns the object open in the external editor, or nil.
func (e *Env) Editing() *Object {
	return e.editing.Value()
}

// RandN returns a uniform value in [0, n). n must be > 0.
func (e *Env) RandN(n int) int {
	return e.Rand.IntN(n)
}

type nopDirty struct{}

func (nopDirty) MarkDirty(*Object) {}

type nopScripts struct{}

func (nopScripts) Call(int, *Object, Event) bool { return false }
func (nopScripts) Exists(int) bool { return false }
func (nopScripts) FindFunction(string) int { return -1 }
func (nopScripts) ShapeFunction(int) int { return -1 }

type nopEffects struct{}

func (nopEffects) PlaySound(*Object, int) {}
func (nopEffects) Explode(geo.Coord, *Object, int, int, int, *Object) {}
func (nopEffects) RemoveText(*Object) {}
