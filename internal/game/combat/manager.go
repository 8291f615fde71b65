package combat

import (
	"context"
	"log/slog"

	"github.com/udisondev/isoworld/internal/model"
)

// HitResult описывает исход одной атаки по объекту (для наблюдения в тестах).
type HitResult struct {
	TargetID  uint32
	Attacker  string
	Hits      int
	HPBefore  int
	HPAfter   int
	Exploded  bool
	Destroyed bool
}

// Manager resolves attacks on world objects.
// Не потокобезопасен: вызывается из игрового потока, как и model.
type Manager struct {
	env   *model.Env
	trace bool

	// hitObserver — callback для наблюдения за результатами атак (nil в production).
	hitObserver func(HitResult)
}

// NewManager creates a combat manager. With trace every attack is logged
// at info level instead of debug.
func NewManager(env *model.Env, trace bool) *Manager {
	return &Manager{env: env, trace: trace}
}

// SetHitObserver sets callback for observing attack results (for tests).
func (m *Manager) SetHitObserver(fn func(HitResult)) {
	m.hitObserver = fn
}

// Attacked handles target being hit by attacker (nil for traps) with
// weaponShape (-1 for the readied weapon) and ammoShape (-1 for none).
// Returns target, or nil if the hit destroyed it.
func (m *Manager) Attacked(target, attacker *model.Object, weaponShape, ammoShape int, explosion bool) *model.Object {
	if target.Shape() == ShapeArcheryTarget && ammoShape == ShapeArrow {
		frame := target.Frame()
		switch {
		case frame == 0:
			target.ChangeFrame(3*m.env.RandN(8) + 1)
		case frame%3 != 0:
			target.ChangeFrame(frame + 1)
		}
	}

	placed := target.Chunk() != nil || target.Owner() != nil
	oldHP := target.EffectiveObjHP()
	delta := m.FigureHitPoints(target, attacker, weaponShape, ammoShape, explosion)
	newHP := target.EffectiveObjHP()
	destroyed := placed && target.Chunk() == nil && target.Owner() == nil

	res := HitResult{
		TargetID:  target.ID(),
		Attacker:  "<trap>",
		Hits:      delta,
		HPBefore:  oldHP,
		HPAfter:   newHP,
		Exploded:  delta < 0,
		Destroyed: destroyed,
	}
	if attacker != nil {
		res.Attacker = attacker.Name()
	}
	m.logHit(target, res)
	if m.hitObserver != nil {
		m.hitObserver(res)
	}

	if destroyed {
		return nil
	}
	return target
}

func (m *Manager) logHit(target *model.Object, res HitResult) {
	level := slog.LevelDebug
	if m.trace {
		level = slog.LevelInfo
	}
	log := m.env.Log.With("attacker", res.Attacker, "target", target.Name())

	switch {
	case res.Destroyed:
		log.Log(context.Background(), level, "attack destroyed target")
	case res.Hits == 0 || (res.Hits > 0 && res.HPBefore == res.HPAfter):
		log.Log(context.Background(), level, "attack had no effect")
	case res.Exploded:
		log.Log(context.Background(), level, "attack caused an explosion")
	default:
		log.Log(context.Background(), level, "attack hit",
			"hits", res.Hits,
			"hp_left", res.HPAfter)
	}
}

// PlayHitSFX plays the sound of weapon hitting target. Weapons without
// damage make no sound.
func (m *Manager) PlayHitSFX(target *model.Object, weapon int, ranged bool) {
	if weapon < 0 {
		return
	}
	winf := m.env.Shapes.Info(weapon).Weapon
	if winf == nil || winf.Damage == 0 {
		return
	}
	sfx := SfxHit
	switch {
	case ranged:
		sfx = SfxMissileHit
	case weapon == ShapeGlassSword:
		sfx = SfxGlassSword
	}
	m.env.Effects.PlaySound(target, sfx)
}
