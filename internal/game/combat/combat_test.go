package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/combat"
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
	"github.com/udisondev/isoworld/internal/testutil"
)

const (
	shapeRock          = 300
	shapeBarrel        = 400
	shapeKeg           = 704
	shapeSword         = 599
	shapeGlassSword    = 604
	shapeWand          = 650
	shapeStaff         = 630
	shapeCrossbow      = 597
	shapeTripleBow     = 647
	shapeThrowingKnife = 592
	shapeBolt          = 723
	shapeFireBolt      = 724
	shapeBurstBolt     = 725
	shapeArrow         = 722
	shapeTarget        = 735
	shapeFighter       = 721
)

func weapon(damage int) *data.WeaponInfo {
	return &data.WeaponInfo{Damage: damage, Usecode: -1, Projectile: -1, AmmoFamily: -1}
}

func shapes() []*data.ShapeInfo {
	wand := weapon(1)
	wand.Powers = data.PowerNoDamage
	wand.Usecode = 0x900

	staff := weapon(3)
	staff.Charges = true

	crossbow := weapon(2)
	crossbow.Uses = data.UsesRanged
	crossbow.Range = 12
	crossbow.AmmoFamily = shapeBolt
	crossbow.Projectile = shapeBolt

	triple := weapon(4)
	triple.Uses = data.UsesRanged
	triple.AmmoFamily = shapeBolt
	triple.Projectile = shapeBurstBolt

	knife := weapon(2)
	knife.Uses = data.UsesGoodThrown
	knife.Range = 10

	return []*data.ShapeInfo{
		{Shape: shapeRock, Dims: [3]int{1, 1, 1}, Class: data.ClassUnusable},
		{Shape: shapeBarrel, Dims: [3]int{1, 1, 2}, Class: data.ClassHasHP},
		{Shape: shapeKeg, Dims: [3]int{1, 1, 2}, Class: data.ClassHasHP, Explosive: true},
		{Shape: shapeSword, Dims: [3]int{1, 1, 0}, Weapon: weapon(1)},
		{Shape: shapeGlassSword, Dims: [3]int{1, 1, 0}, Weapon: weapon(combat.InstantKill)},
		{Shape: shapeWand, Dims: [3]int{1, 1, 0}, Weapon: wand},
		{Shape: shapeStaff, Dims: [3]int{1, 1, 0}, Weapon: staff},
		{Shape: shapeCrossbow, Dims: [3]int{1, 1, 0}, Weapon: crossbow},
		{Shape: shapeTripleBow, Dims: [3]int{1, 1, 0}, Weapon: triple},
		{Shape: shapeThrowingKnife, Dims: [3]int{1, 1, 0}, Weapon: knife},
		{Shape: shapeBolt, Dims: [3]int{1, 1, 0}, Class: data.ClassQuantity, Ammo: &data.AmmoInfo{Family: shapeBolt}},
		{Shape: shapeFireBolt, Dims: [3]int{1, 1, 0}, Class: data.ClassQuantity,
			Ammo: &data.AmmoInfo{Family: shapeBolt, Damage: 1, DamageType: data.DamageFire}},
		{Shape: shapeBurstBolt, Dims: [3]int{1, 1, 0}, Class: data.ClassQuantity, Ready: data.ReadyTripleBolts,
			Ammo: &data.AmmoInfo{Family: shapeBolt, Explodes: true}},
		{Shape: shapeArrow, Dims: [3]int{1, 1, 0}, Class: data.ClassQuantity, Ammo: &data.AmmoInfo{Family: shapeArrow}},
		{Shape: shapeTarget, Dims: [3]int{1, 1, 3}, Class: data.ClassUnusable},
		{Shape: shapeFighter, Dims: [3]int{1, 1, 4}, Class: data.ClassHuman},
	}
}

// fighter is the Data of attacking NPCs.
type fighter struct {
	weapon   int
	strength int
}

func (f fighter) ReadiedWeapon() int { return f.weapon }
func (f fighter) Strength() int      { return f.strength }

type fixture struct {
	tw  *testutil.TestWorld
	mgr *combat.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tw := testutil.NewTestWorld(t, shapes()...)
	return &fixture{tw: tw, mgr: combat.NewManager(tw.Env, false)}
}

func (f *fixture) place(t *testing.T, shape, hp int) *model.Object {
	t.Helper()
	return f.tw.Place(t, shape, 0, hp, geo.NewCoord(10, 10, 0))
}

func (f *fixture) attacker(readied, strength int) *model.Object {
	obj := f.tw.NewObject(shapeFighter, 0, 0)
	obj.Data = fighter{weapon: readied, strength: strength}
	return obj
}

func TestApplyDamage(t *testing.T) {
	t.Run("instant kill value", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 200)

		hits := f.mgr.ApplyDamage(barrel, nil, 0, combat.InstantKill, data.DamageNormal)

		assert.Equal(t, 127, hits)
		assert.Equal(t, 73, barrel.ObjHP())
	})

	t.Run("minimal rolls", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		// str/3 == 1 and wpoints == 1: both rolls are exactly 1.
		hits := f.mgr.ApplyDamage(barrel, nil, 3, 1, data.DamageNormal)

		assert.Equal(t, 2, hits)
		assert.Equal(t, 8, barrel.ObjHP())
	})

	t.Run("weak hit clangs", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		hits := f.mgr.ApplyDamage(barrel, nil, 2, 0, data.DamageNormal)

		assert.Equal(t, 0, hits)
		assert.Equal(t, 10, barrel.ObjHP())
		require.Len(t, f.tw.Rec.Sounds, 1)
		assert.Equal(t, combat.SfxClang, f.tw.Rec.Sounds[0].Sfx)
		assert.Same(t, barrel, f.tw.Rec.Sounds[0].Obj)
	})

	t.Run("lightning ignores strength", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		hits := f.mgr.ApplyDamage(barrel, nil, 30, 0, data.DamageLightning)

		assert.Equal(t, 0, hits)
		require.Len(t, f.tw.Rec.Sounds, 1)
		assert.Equal(t, combat.SfxClang, f.tw.Rec.Sounds[0].Sfx)
	})

	t.Run("rolls stay in range", func(t *testing.T) {
		f := newFixture(t)
		for range 50 {
			barrel := f.place(t, shapeBarrel, 100)
			hits := f.mgr.ApplyDamage(barrel, nil, 30, 10, data.DamageNormal)
			assert.GreaterOrEqual(t, hits, 2)
			assert.LessOrEqual(t, hits, 20)
			assert.Equal(t, 100-hits, barrel.ObjHP())
		}
	})
}

func TestReduceHealth(t *testing.T) {
	t.Run("indestructible takes nothing", func(t *testing.T) {
		f := newFixture(t)
		rock := f.place(t, shapeRock, 50)

		assert.Equal(t, 0, f.mgr.ReduceHealth(rock, 20, data.DamageNormal, nil))
		assert.Equal(t, 0, f.mgr.ReduceHealth(rock, 20, data.DamageFire, nil))
		assert.Equal(t, 50, rock.Quality())
		assert.Empty(t, f.tw.Rec.Calls)
		assert.Empty(t, f.tw.Rec.Explosions)
	})

	t.Run("immune damage types", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		assert.Equal(t, 0, f.mgr.ReduceHealth(barrel, 20, data.DamageLightning, nil))
		assert.Equal(t, 0, f.mgr.ReduceHealth(barrel, 20, data.DamageEthereal, nil))
		assert.Equal(t, 10, barrel.ObjHP())
	})

	t.Run("partial damage", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		assert.Equal(t, 4, f.mgr.ReduceHealth(barrel, 4, data.DamageNormal, nil))
		assert.Equal(t, 6, barrel.ObjHP())
		assert.Empty(t, f.tw.Rec.Calls)
	})

	t.Run("killing blow runs destroy usecode", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 5)

		assert.Equal(t, 5, f.mgr.ReduceHealth(barrel, 5, data.DamageNormal, nil))

		assert.Equal(t, []*model.Object{barrel}, f.tw.Rec.Texts)
		require.Len(t, f.tw.Rec.Calls, 1)
		assert.Equal(t, model.DestroyObjectsUsecode, f.tw.Rec.Calls[0].Fn)
		assert.Equal(t, model.EventWeapon, f.tw.Rec.Calls[0].Event)
		assert.Empty(t, f.tw.Rec.Explosions)
	})

	t.Run("explosive chain reaction", func(t *testing.T) {
		f := newFixture(t)
		keg := f.place(t, shapeKeg, 10)
		attacker := f.attacker(-1, 0)

		hits := f.mgr.ReduceHealth(keg, 15, data.DamageFire, attacker)

		assert.Equal(t, 15, hits)
		assert.Equal(t, 1, keg.Quality(), "made indestructible")
		require.Len(t, f.tw.Rec.Explosions, 1)
		ex := f.tw.Rec.Explosions[0]
		assert.Equal(t, geo.NewCoord(10, 10, 1), ex.At, "mid-height")
		assert.Same(t, keg, ex.Source)
		assert.Equal(t, shapeKeg, ex.Weapon)
		assert.Equal(t, -1, ex.Ammo)
		assert.Same(t, attacker, ex.Attacker)
		assert.Empty(t, f.tw.Rec.Calls, "explosion destroys it, not the hit")
	})

	t.Run("explosive lights on any fire", func(t *testing.T) {
		f := newFixture(t)
		keg := f.place(t, shapeKeg, 10)

		assert.Equal(t, 3, f.mgr.ReduceHealth(keg, 3, data.DamageFire, nil))
		assert.Len(t, f.tw.Rec.Explosions, 1)
	})

	t.Run("explosive survives a light hit", func(t *testing.T) {
		f := newFixture(t)
		keg := f.place(t, shapeKeg, 10)

		assert.Equal(t, 3, f.mgr.ReduceHealth(keg, 3, data.DamageNormal, nil))
		assert.Equal(t, 7, keg.ObjHP())
		assert.Empty(t, f.tw.Rec.Explosions)
	})
}

func TestFigureHitPoints(t *testing.T) {
	t.Run("explicit weapon uses attacker strength", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		hits := f.mgr.FigureHitPoints(barrel, f.attacker(-1, 3), shapeSword, -1, false)

		assert.Equal(t, 2, hits)
		assert.Equal(t, 8, barrel.ObjHP())
	})

	t.Run("readied weapon", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		hits := f.mgr.FigureHitPoints(barrel, f.attacker(shapeSword, 3), -1, -1, false)

		assert.Equal(t, 2, hits)
	})

	t.Run("bare hands do nothing to objects", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		hits := f.mgr.FigureHitPoints(barrel, f.attacker(-1, 30), -1, -1, false)

		assert.Equal(t, 0, hits)
		assert.Equal(t, 10, barrel.ObjHP())
		assert.Empty(t, f.tw.Rec.Sounds)
	})

	t.Run("no-damage weapon still runs its usecode", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)

		hits := f.mgr.FigureHitPoints(barrel, f.attacker(-1, 30), shapeWand, -1, false)

		assert.Equal(t, 0, hits)
		assert.Equal(t, 10, barrel.ObjHP())
		require.Len(t, f.tw.Rec.Calls, 1)
		assert.Equal(t, 0x900, f.tw.Rec.Calls[0].Fn)
		assert.Equal(t, model.EventWeapon, f.tw.Rec.Calls[0].Event)
	})

	t.Run("exploding ammo", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)
		attacker := f.attacker(-1, 3)

		hits := f.mgr.FigureHitPoints(barrel, attacker, shapeCrossbow, shapeBurstBolt, false)

		assert.Equal(t, -1, hits)
		assert.Equal(t, 10, barrel.ObjHP())
		require.Len(t, f.tw.Rec.Explosions, 1)
		ex := f.tw.Rec.Explosions[0]
		assert.Equal(t, geo.NewCoord(10, 10, 1), ex.At)
		assert.Nil(t, ex.Source)
		assert.Equal(t, shapeCrossbow, ex.Weapon)
		assert.Equal(t, shapeBurstBolt, ex.Ammo)
		assert.Same(t, attacker, ex.Attacker)
	})

	t.Run("explosions do not explode again", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 50)

		hits := f.mgr.FigureHitPoints(barrel, f.attacker(-1, 3), shapeCrossbow, shapeBurstBolt, true)

		assert.Positive(t, hits)
		assert.Empty(t, f.tw.Rec.Explosions)
		assert.Equal(t, 50-hits, barrel.ObjHP())
	})

	t.Run("ammo damage type replaces weapon type", func(t *testing.T) {
		f := newFixture(t)
		keg := f.place(t, shapeKeg, 50)

		hits := f.mgr.FigureHitPoints(keg, f.attacker(-1, 0), shapeCrossbow, shapeFireBolt, false)

		assert.Positive(t, hits)
		assert.Len(t, f.tw.Rec.Explosions, 1, "fire sets off the keg")
		assert.Equal(t, 1, keg.Quality())
	})

	t.Run("usecode fires after destruction", func(t *testing.T) {
		f := newFixture(t)
		f.tw.Rec.DestroyOnUsecode()
		barrel := f.place(t, shapeBarrel, 5)
		glass := f.tw.Env.Shapes.Info(shapeGlassSword).Weapon
		glass.Usecode = 0x901

		hits := f.mgr.FigureHitPoints(barrel, nil, shapeGlassSword, -1, false)

		assert.Equal(t, combat.InstantKill, hits)
		require.Len(t, f.tw.Rec.Calls, 2)
		assert.Equal(t, model.DestroyObjectsUsecode, f.tw.Rec.Calls[0].Fn)
		assert.Equal(t, 0x901, f.tw.Rec.Calls[1].Fn)
		assert.Nil(t, barrel.Chunk())
	})
}

func TestAttacked(t *testing.T) {
	t.Run("survives", func(t *testing.T) {
		f := newFixture(t)
		barrel := f.place(t, shapeBarrel, 10)
		var got []combat.HitResult
		f.mgr.SetHitObserver(func(r combat.HitResult) { got = append(got, r) })

		assert.Same(t, barrel, f.mgr.Attacked(barrel, f.attacker(-1, 3), shapeSword, -1, false))

		require.Len(t, got, 1)
		assert.Equal(t, barrel.ID(), got[0].TargetID)
		assert.Equal(t, 2, got[0].Hits)
		assert.Equal(t, 10, got[0].HPBefore)
		assert.Equal(t, 8, got[0].HPAfter)
		assert.False(t, got[0].Destroyed)
	})

	t.Run("destroyed", func(t *testing.T) {
		f := newFixture(t)
		f.tw.Rec.DestroyOnUsecode()
		barrel := f.place(t, shapeBarrel, 5)
		var got []combat.HitResult
		f.mgr.SetHitObserver(func(r combat.HitResult) { got = append(got, r) })

		assert.Nil(t, f.mgr.Attacked(barrel, nil, shapeGlassSword, -1, false))

		require.Len(t, got, 1)
		assert.True(t, got[0].Destroyed)
		assert.Equal(t, "<trap>", got[0].Attacker)
	})
}

func TestAttacked_ExplosionTrace(t *testing.T) {
	tw := testutil.NewTestWorld(t, shapes()...)
	mgr := combat.NewManager(tw.Env, true)
	barrel := tw.Place(t, shapeBarrel, 0, 10, geo.NewCoord(3, 3, 0))
	var got []combat.HitResult
	mgr.SetHitObserver(func(r combat.HitResult) { got = append(got, r) })

	assert.Same(t, barrel, mgr.Attacked(barrel, nil, shapeCrossbow, shapeBurstBolt, false))

	require.Len(t, got, 1)
	assert.True(t, got[0].Exploded)
	assert.Equal(t, -1, got[0].Hits)
}

func TestAttacked_ArcheryTarget(t *testing.T) {
	tests := []struct {
		name  string
		frame int
		ammo  int
		check func(t *testing.T, frame int)
	}{
		{"first arrow picks a ring", 0, shapeArrow, func(t *testing.T, frame int) {
			assert.Equal(t, 1, frame%3)
			assert.Less(t, frame, 24)
		}},
		{"next arrow", 1, shapeArrow, func(t *testing.T, frame int) { assert.Equal(t, 2, frame) }},
		{"full ring stays", 3, shapeArrow, func(t *testing.T, frame int) { assert.Equal(t, 3, frame) }},
		{"bolts do not count", 1, shapeBolt, func(t *testing.T, frame int) { assert.Equal(t, 1, frame) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			target := f.tw.Place(t, shapeTarget, tt.frame, 0, geo.NewCoord(5, 5, 0))

			assert.Same(t, target, f.mgr.Attacked(target, nil, -1, tt.ammo, false))

			tt.check(t, target.Frame())
		})
	}
}

func TestPlayHitSFX(t *testing.T) {
	tests := []struct {
		name   string
		weapon int
		ranged bool
		want   []int
	}{
		{"bare hands", -1, false, nil},
		{"melee", shapeSword, false, []int{combat.SfxHit}},
		{"ranged", shapeCrossbow, true, []int{combat.SfxMissileHit}},
		{"glass sword", shapeGlassSword, false, []int{combat.SfxGlassSword}},
		{"not a weapon", shapeRock, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			target := f.place(t, shapeBarrel, 10)

			f.mgr.PlayHitSFX(target, tt.weapon, tt.ranged)

			var got []int
			for _, s := range f.tw.Rec.Sounds {
				got = append(got, s.Sfx)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveRange(t *testing.T) {
	table := data.NewShapeTable(shapes()...)
	tests := []struct {
		name   string
		weapon *data.WeaponInfo
		reach  int
		want   int
	}{
		{"bare hands", nil, -1, 3},
		{"bare hands with reach", nil, 5, 5},
		{"melee weapon", table.Info(shapeSword).Weapon, -1, 0},
		{"ranged weapon", table.Info(shapeCrossbow).Weapon, -1, 12},
		{"ranged with reach", table.Info(shapeCrossbow).Weapon, 4, 4},
		{"thrown", table.Info(shapeThrowingKnife).Weapon, -1, combat.MaxThrowRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combat.EffectiveRange(tt.weapon, tt.reach))
		})
	}
}

func TestWeaponAmmo(t *testing.T) {
	table := data.NewShapeTable(shapes()...)
	tests := []struct {
		name   string
		weapon int
		family int
		proj   int
		ranged bool
		want   int
	}{
		{"bare hands", -1, -1, -1, false, 0},
		{"not a weapon", shapeRock, -1, -1, false, 0},
		{"melee", shapeSword, -1, -1, false, 0},
		{"charged melee", shapeStaff, -1, -1, false, 1},
		{"crossbow", shapeCrossbow, shapeBolt, shapeBolt, true, 1},
		{"crossbow used in melee", shapeCrossbow, shapeBolt, shapeBolt, false, 0},
		{"triple crossbow", shapeTripleBow, shapeBolt, shapeBurstBolt, true, 3},
		{"triple crossbow without projectile", shapeTripleBow, shapeBolt, -1, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combat.WeaponAmmo(table, tt.weapon, tt.family, tt.proj, tt.ranged))
		})
	}
}
