package combat

import (
	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/model"
)

// MaxThrowRange is the reach of thrown weapons.
const MaxThrowRange = 31

// EffectiveRange returns the maximum range of winf (nil for bare hands).
// A negative reach means the weapon's own range.
func EffectiveRange(winf *data.WeaponInfo, reach int) int {
	if reach < 0 {
		if winf == nil {
			return 3
		}
		reach = winf.Range
	}
	uses := data.UsesMelee
	if winf != nil {
		uses = winf.Uses
	}
	if uses == data.UsesMelee || uses == data.UsesRanged {
		return reach
	}
	return MaxThrowRange
}

// WeaponAmmo returns how much ammo of family one shot of weapon needs.
// family -1 means no ammo family; proj is the projectile shape, -1 for
// none. Triple crossbows use three bolts per shot.
func WeaponAmmo(shapes model.ShapeTable, weapon, family, proj int, ranged bool) int {
	if weapon < 0 {
		return 0
	}
	winf := shapes.Info(weapon).Weapon
	if winf == nil {
		return 0
	}

	need := 0
	switch {
	case family == -1 || !ranged:
		if winf.Uses == data.UsesMelee && winf.Charges {
			need = 1
		}
	default:
		need = 1
	}
	if need > 0 && family >= 0 && proj >= 0 &&
		winf.Projectile >= 0 && shapes.Info(winf.Projectile).Ready == data.ReadyTripleBolts {
		need = 3
	}
	return need
}
