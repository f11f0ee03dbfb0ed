// Package stats derives secondary combat stats from primary stats and
// equipment bonuses.
//
// Every formula is integer arithmetic; fractions are model.Rate basis points
// and every division floors, so the same primaries resolve to the same
// numbers on every platform.
package stats

import "github.com/udisondev/battlecore/internal/model"

// Soft-cap denominators: stat/(stat+C).
const (
	defenseSoftCap    = 200
	evasionSoftCap    = 250
	resistanceSoftCap = 150
	gutsSoftCap       = 200
)

// Caps on derived values.
const (
	MaxCritChance = model.Rate(7500)  // 75%
	MaxCritDamage = model.Rate(30000) // 3.0x

	// MaxSoftCapped bounds stat/(stat+C) values: they approach 100% but
	// never reach it.
	MaxSoftCapped = model.RateOne - 1
)

const (
	baseHitRate    = model.Rate(9200) // 92%
	hitPerPoint    = 30               // +0.3% per speed/accuracy point
	baseCritChance = model.Rate(800)  // 8%
	critPerDex     = 50               // +0.5% per dexterity point
	baseCritDamage = model.Rate(15000)
	critDmgPerStat = 50 // +0.005x per strength/accuracy point
)

// Resolve computes derived stats. It fails only with *model.ConfigError when
// the primaries are out of range or the equipment carries negative bonuses.
func Resolve(p model.Primary, eq model.Equipment) (model.Derived, error) {
	if err := p.Validate(); err != nil {
		return model.Derived{}, err
	}
	if err := eq.Validate(); err != nil {
		return model.Derived{}, err
	}
	return resolve(p, eq), nil
}

func resolve(p model.Primary, eq model.Equipment) model.Derived {
	return model.Derived{
		MaxHP:       50 + p.Willpower*12 + eq.HP,
		MaxChakra:   30 + p.Chakra*10 + eq.Chakra,
		HPRegen:     2 + p.Willpower*3/10 + eq.HPRegen,
		ChakraRegen: 3 + (p.Chakra*2+p.Calmness*2)/10 + eq.ChakraRegen,

		PhysicalAtk:  10 + p.Strength*2 + eq.PhysicalAtk,
		ElementalAtk: 10 + p.Spirit*2 + eq.ElementalAtk,
		MentalAtk:    10 + p.Intelligence*2 + eq.MentalAtk,

		PhysicalDefFlat:     p.Strength*3/10 + eq.PhysicalDef,
		PhysicalDefPercent:  model.SoftCap(p.Strength, defenseSoftCap),
		ElementalDefFlat:    p.Spirit*3/10 + eq.ElementalDef,
		ElementalDefPercent: model.SoftCap(p.Spirit, defenseSoftCap),
		MentalDefFlat:       p.Calmness*3/10 + eq.MentalDef,
		MentalDefPercent:    model.SoftCap(p.Calmness, defenseSoftCap),

		MeleeHitRate:  baseHitRate + model.Rate(p.Speed*hitPerPoint),
		RangedHitRate: baseHitRate + model.Rate(p.Accuracy*hitPerPoint),
		Evasion:       model.SoftCap(p.Speed, evasionSoftCap),

		CritChance:       CritChance(p.Dexterity, eq.Crit),
		CritDamageMelee:  critDamage(p.Strength),
		CritDamageRanged: critDamage(p.Accuracy),

		Initiative:       p.Speed*2 + p.Dexterity,
		StatusResistance: model.SoftCap(p.Calmness, resistanceSoftCap),
		GutsChance:       GutsChance(p.Willpower),
	}
}

// CritChance is min(75%, 8% + dex×0.5% + equipment crit).
func CritChance(dexterity int, equipment model.Rate) model.Rate {
	return min(MaxCritChance, baseCritChance+model.Rate(dexterity*critPerDex)+equipment)
}

// GutsChance is willpower/(willpower+200).
func GutsChance(willpower int) model.Rate {
	return model.SoftCap(willpower, gutsSoftCap)
}

func critDamage(stat int) model.Rate {
	return min(MaxCritDamage, baseCritDamage+model.Rate(stat*critDmgPerStat))
}

// Cap clamps d back into the ranges Resolve produces. Stat modifiers are
// applied after resolution and go through Cap afterwards.
func Cap(d model.Derived) model.Derived {
	d.CritChance = min(d.CritChance, MaxCritChance)
	d.CritDamageMelee = min(d.CritDamageMelee, MaxCritDamage)
	d.CritDamageRanged = min(d.CritDamageRanged, MaxCritDamage)

	d.PhysicalDefPercent = min(d.PhysicalDefPercent, MaxSoftCapped)
	d.ElementalDefPercent = min(d.ElementalDefPercent, MaxSoftCapped)
	d.MentalDefPercent = min(d.MentalDefPercent, MaxSoftCapped)
	d.Evasion = min(d.Evasion, MaxSoftCapped)
	d.StatusResistance = min(d.StatusResistance, MaxSoftCapped)
	d.GutsChance = min(d.GutsChance, MaxSoftCapped)
	return d
}
