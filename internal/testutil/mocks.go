package testutil

import (
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// Call — запись вызова usecode.
type Call struct {
	Fn    int
	Obj   *model.Object
	Event model.Event
}

// Sound — запись проигранного звука.
type Sound struct {
	Obj *model.Object
	Sfx int
}

// Explosion — запись созданного взрыва.
type Explosion struct {
	At       geo.Coord
	Source   *model.Object
	Delay    int
	Weapon   int
	Ammo     int
	Attacker *model.Object
}

// Recorder — in-memory имплементация коллабораторов model.Env для unit тестов:
// DirtyTracker, Scripts и Effects. Все вызовы записываются по порядку.
type Recorder struct {
	Dirty      []*model.Object
	Calls      []Call
	Sounds     []Sound
	Explosions []Explosion
	Texts      []*model.Object

	// Functions maps usecode names to function numbers.
	Functions map[string]int
	// OnCall, if set, runs for every usecode call.
	OnCall func(Call)
}

// NewRecorder создаёт пустой Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Functions: make(map[string]int)}
}

// Install wires r into env as its dirty tracker, scripts and effects.
func (r *Recorder) Install(env *model.Env) {
	env.Dirty = r
	env.Scripts = r
	env.Effects = r
}

func (r *Recorder) MarkDirty(obj *model.Object) { r.Dirty = append(r.Dirty, obj) }

func (r *Recorder) Call(fn int, obj *model.Object, ev model.Event) bool {
	c := Call{Fn: fn, Obj: obj, Event: ev}
	r.Calls = append(r.Calls, c)
	if r.OnCall != nil {
		r.OnCall(c)
	}
	return true
}

func (r *Recorder) Exists(fn int) bool { return fn >= 0 }

func (r *Recorder) FindFunction(name string) int {
	if fn, ok := r.Functions[name]; ok {
		return fn
	}
	return -1
}

func (r *Recorder) ShapeFunction(shape int) int { return shape }

func (r *Recorder) PlaySound(obj *model.Object, sfx int) {
	r.Sounds = append(r.Sounds, Sound{Obj: obj, Sfx: sfx})
}

func (r *Recorder) Explode(at geo.Coord, source *model.Object, delay, weapon, ammo int, attacker *model.Object) {
	r.Explosions = append(r.Explosions, Explosion{
		At: at, Source: source, Delay: delay,
		Weapon: weapon, Ammo: ammo, Attacker: attacker,
	})
}

func (r *Recorder) RemoveText(obj *model.Object) { r.Texts = append(r.Texts, obj) }

// DestroyOnUsecode makes the destroy-objects usecode remove its object
// from the world, like the real script does.
func (r *Recorder) DestroyOnUsecode() {
	r.OnCall = func(c Call) {
		if c.Fn == model.DestroyObjectsUsecode && c.Obj != nil {
			c.Obj.RemoveThis(false)
		}
	}
}
