package data

import "gopkg.in/yaml.v3"

// DamageType — тип урона оружия/снаряда.
type DamageType int

const (
	DamageNormal DamageType = iota
	DamageFire
	DamageMagic
	DamageLightning
	DamageEthereal
	DamageSonic
)

// String returns human-readable damage type name.
func (d DamageType) String() string {
	switch d {
	case DamageNormal:
		return "Normal"
	case DamageFire:
		return "Fire"
	case DamageMagic:
		return "Magic"
	case DamageLightning:
		return "Lightning"
	case DamageEthereal:
		return "Ethereal"
	case DamageSonic:
		return "Sonic"
	default:
		return "Unknown"
	}
}

// WeaponPowers is a bitmask of special weapon effects.
type WeaponPowers uint8

const (
	PowerSleep WeaponPowers = 1 << iota
	PowerCharm
	PowerCurse
	PowerPoison
	PowerParalyze
	PowerMagebane
	PowerUnknown
	PowerNoDamage // status-effect only weapons
)

// WeaponUses describes how a weapon is used.
type WeaponUses int

const (
	UsesMelee WeaponUses = iota
	UsesPoorThrown
	UsesGoodThrown
	UsesRanged
)

// WeaponInfo — параметры оружия.
type WeaponInfo struct {
	Damage     int          `yaml:"damage"`
	DamageType DamageType   `yaml:"damage_type"`
	Powers     WeaponPowers `yaml:"powers"`
	Explodes   bool         `yaml:"explodes"`
	Usecode    int          `yaml:"usecode"` // -1 = none
	Range      int          `yaml:"range"`
	Uses       WeaponUses   `yaml:"uses"`
	Projectile int          `yaml:"projectile"` // -1 = none
	AmmoFamily int          `yaml:"ammo"`       // -1 = none
	Charges    bool         `yaml:"charges"`
}

// UnmarshalYAML fills -1 defaults for optional references before decoding.
func (w *WeaponInfo) UnmarshalYAML(node *yaml.Node) error {
	type plain WeaponInfo
	v := plain{Usecode: -1, Projectile: -1, AmmoFamily: -1}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*w = WeaponInfo(v)
	return nil
}

// AmmoInfo — параметры снаряда.
type AmmoInfo struct {
	Family     int        `yaml:"family"`
	Damage     int        `yaml:"damage"`
	DamageType DamageType `yaml:"damage_type"`
	Explodes   bool       `yaml:"explodes"`
}

// ArmorInfo — параметры брони.
type ArmorInfo struct {
	Value      int   `yaml:"value"`
	Immunities uint8 `yaml:"immunities"`
}
