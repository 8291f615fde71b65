package combat

import (
	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// InstantKill is the weapon bonus that always deals exactly that much damage.
const InstantKill = 127

// Sound effects played by combat.
const (
	SfxMissileHit = 1
	SfxHit        = 4
	SfxClang      = 5
	SfxGlassSword = 37
)

// Shapes with special combat handling.
const (
	ShapeGlassSword    = 604
	ShapeArcheryTarget = 735
	ShapeArrow         = 722
)

// Actor is implemented by the Data of objects that fight (NPCs, the avatar).
type Actor interface {
	// ReadiedWeapon returns the shape of the weapon in hand, or -1.
	ReadiedWeapon() int
	Strength() int
}

// asActor returns obj's Actor data, or nil.
func asActor(obj *model.Object) Actor {
	if obj == nil {
		return nil
	}
	a, _ := obj.Data.(Actor)
	return a
}

// ApplyDamage rolls damage for an attack of strength str with weapon bonus
// wpoints and applies it to target. Returns the hits taken.
//
// Strength contributes 1+rand(str/3) unless the damage is lightning; the
// weapon adds 1+rand(wpoints). A miss (0 damage) plays the clang sound.
func (m *Manager) ApplyDamage(target, attacker *model.Object, str, wpoints int, typ data.DamageType) int {
	damage := 0
	if wpoints == InstantKill {
		damage = InstantKill
	} else {
		if typ != data.DamageLightning && str > 0 {
			if base := str / 3; base > 0 {
				damage = 1 + m.env.RandN(base)
			}
		}
		if wpoints > 0 {
			damage += 1 + m.env.RandN(wpoints)
		}
	}

	if damage <= 0 {
		m.env.Effects.PlaySound(target, SfxClang)
		return 0
	}
	return m.ReduceHealth(target, damage, typ, attacker)
}

// ReduceHealth takes delta hit points from target. Returns the hits taken:
// 0 if the object is indestructible or immune to typ.
//
// An explosive object hit by fire, or by a killing blow, becomes
// indestructible and blows up instead; the explosion destroys it later.
// A killing blow on anything else runs the destroy-objects usecode.
func (m *Manager) ReduceHealth(target *model.Object, delta int, typ data.DamageType, attacker *model.Object) int {
	hp := target.EffectiveObjHP()
	if hp == 0 || typ == data.DamageLightning || typ == data.DamageEthereal {
		return 0
	}

	info := target.Info()
	if info.Explosive && (typ == data.DamageFire || delta >= hp) {
		target.SetQuality(1)
		at := target.Tile().Add(geo.NewCoord(0, 0, info.Height()/2))
		m.env.Effects.Explode(at, target, 0, target.Shape(), -1, attacker)
		return delta
	}

	if delta < hp {
		target.SetObjHP(hp - delta)
		return delta
	}
	m.env.Effects.RemoveText(target)
	m.env.Scripts.Call(model.DestroyObjectsUsecode, target, model.EventWeapon)
	return delta
}

// FigureHitPoints resolves a hit on target with weaponShape (-1 for the
// attacker's readied weapon) and ammoShape (-1 for none).
//
// Returns the hits taken, or -1 if the hit set off an explosion instead.
// explosion is true when the hit itself comes from an explosion; those
// never explode again. The weapon's usecode runs last, even if target was
// destroyed.
func (m *Manager) FigureHitPoints(target, attacker *model.Object, weaponShape, ammoShape int, explosion bool) int {
	var (
		winf *data.WeaponInfo
		ainf *data.AmmoInfo
	)
	if weaponShape >= 0 {
		winf = m.env.Shapes.Info(weaponShape).Weapon
	}
	if ammoShape >= 0 {
		ainf = m.env.Shapes.Info(ammoShape).Ammo
	}
	if winf == nil && weaponShape < 0 {
		if a := asActor(attacker); a != nil {
			if readied := a.ReadiedWeapon(); readied >= 0 {
				winf = m.env.Shapes.Info(readied).Weapon
			}
		}
	}

	var (
		wpoints  = 1
		usefun   = -1
		typ      = data.DamageNormal
		explodes bool
	)
	if winf != nil {
		wpoints = winf.Damage
		usefun = winf.Usecode
		typ = winf.DamageType
		explodes = winf.Explodes
	}
	if ainf != nil {
		wpoints += ainf.Damage
		if ainf.DamageType != data.DamageNormal {
			typ = ainf.DamageType
		}
		explodes = explodes || ainf.Explodes
	}

	if explodes && !explosion {
		at := target.Tile().Add(geo.NewCoord(0, 0, target.Info().Height()/2))
		m.env.Effects.Explode(at, nil, 0, weaponShape, ammoShape, attacker)
		return -1
	}

	delta := 0
	str := 0
	if a := asActor(attacker); a != nil {
		str = a.Strength()
	}
	if winf != nil && winf.Powers&data.PowerNoDamage == 0 {
		delta = m.ApplyDamage(target, attacker, str, wpoints, typ)
	}

	if usefun >= 0 {
		m.env.Scripts.Call(usefun, target, model.EventWeapon)
	}
	return delta
}
