package model

import "fmt"

// Valid range of every primary stat.
const (
	MinPrimary = 1
	MaxPrimary = 999
)

// Primary holds the nine primary stats of a combatant.
type Primary struct {
	// Body
	Willpower int `yaml:"willpower"`
	Chakra    int `yaml:"chakra"`
	Strength  int `yaml:"strength"`
	// Mind
	Spirit       int `yaml:"spirit"`
	Intelligence int `yaml:"intelligence"`
	Calmness     int `yaml:"calmness"`
	// Technique
	Speed     int `yaml:"speed"`
	Accuracy  int `yaml:"accuracy"`
	Dexterity int `yaml:"dexterity"`
}

// Fields returns the primaries in declaration order, paired with content keys.
func (p *Primary) Fields() []PrimaryField {
	return []PrimaryField{
		{"willpower", &p.Willpower},
		{"chakra", &p.Chakra},
		{"strength", &p.Strength},
		{"spirit", &p.Spirit},
		{"intelligence", &p.Intelligence},
		{"calmness", &p.Calmness},
		{"speed", &p.Speed},
		{"accuracy", &p.Accuracy},
		{"dexterity", &p.Dexterity},
	}
}

// PrimaryField is a named pointer into a Primary.
type PrimaryField struct {
	Name  string
	Value *int
}

// Validate checks every primary against [MinPrimary, MaxPrimary].
func (p Primary) Validate() error {
	if err := p.validate(); err != nil {
		return err
	}
	return nil
}

func (p Primary) validate() *ConfigError {
	for _, f := range p.Fields() {
		if *f.Value < MinPrimary || *f.Value > MaxPrimary {
			return &ConfigError{
				Field:  f.Name,
				Value:  *f.Value,
				Reason: fmt.Sprintf("must be in [%d, %d]", MinPrimary, MaxPrimary),
			}
		}
	}
	return nil
}

// Equipment is the flat bonus block supplied by the equipment provider.
type Equipment struct {
	HP           int  `yaml:"hp"`
	Chakra       int  `yaml:"chakra"`
	HPRegen      int  `yaml:"hp_regen"`
	ChakraRegen  int  `yaml:"chakra_regen"`
	PhysicalAtk  int  `yaml:"physical_atk"`
	ElementalAtk int  `yaml:"elemental_atk"`
	MentalAtk    int  `yaml:"mental_atk"`
	PhysicalDef  int  `yaml:"physical_def"`
	ElementalDef int  `yaml:"elemental_def"`
	MentalDef    int  `yaml:"mental_def"`
	Crit         Rate `yaml:"-"`
}

// Validate rejects negative bonuses.
func (e Equipment) Validate() error {
	if err := e.validate(); err != nil {
		return err
	}
	return nil
}

func (e Equipment) validate() *ConfigError {
	flats := []struct {
		name string
		v    int
	}{
		{"hp", e.HP}, {"chakra", e.Chakra}, {"hp_regen", e.HPRegen}, {"chakra_regen", e.ChakraRegen},
		{"physical_atk", e.PhysicalAtk}, {"elemental_atk", e.ElementalAtk}, {"mental_atk", e.MentalAtk},
		{"physical_def", e.PhysicalDef}, {"elemental_def", e.ElementalDef}, {"mental_def", e.MentalDef},
	}
	for _, f := range flats {
		if f.v < 0 {
			return &ConfigError{Entity: "equipment", Field: f.name, Value: f.v, Reason: "must not be negative"}
		}
	}
	if e.Crit < 0 {
		return &ConfigError{Entity: "equipment", Field: "crit", Value: e.Crit, Reason: "must not be negative"}
	}
	return nil
}

// MaxPercentDefense is the hard cap on every percent defense. Bleed and burn
// ticks and the damage pipeline both clamp to it.
const MaxPercentDefense = Rate(7500)

// Derived holds the secondary combat stats. Percent-like values are Rates.
type Derived struct {
	MaxHP       int
	MaxChakra   int
	HPRegen     int
	ChakraRegen int

	PhysicalAtk  int
	ElementalAtk int
	MentalAtk    int

	PhysicalDefFlat     int
	PhysicalDefPercent  Rate
	ElementalDefFlat    int
	ElementalDefPercent Rate
	MentalDefFlat       int
	MentalDefPercent    Rate

	MeleeHitRate  Rate
	RangedHitRate Rate
	Evasion       Rate

	CritChance       Rate
	CritDamageMelee  Rate
	CritDamageRanged Rate

	Initiative       int
	StatusResistance Rate
	GutsChance       Rate
}

// Stat addresses one derived stat.
type Stat uint8

const (
	StatMaxHP Stat = iota
	StatMaxChakra
	StatHPRegen
	StatChakraRegen
	StatPhysicalAtk
	StatElementalAtk
	StatMentalAtk
	StatPhysicalDefFlat
	StatPhysicalDefPercent
	StatElementalDefFlat
	StatElementalDefPercent
	StatMentalDefFlat
	StatMentalDefPercent
	StatMeleeHitRate
	StatRangedHitRate
	StatEvasion
	StatCritChance
	StatCritDamageMelee
	StatCritDamageRanged
	StatInitiative
	StatStatusResistance
	StatGutsChance
	statCount
)

type statField struct {
	key      string
	scalable bool // may feed a skill's damage
	get      func(*Derived) int64
	set      func(*Derived, int64)
}

func flat(key string, scalable bool, f func(*Derived) *int) statField {
	return statField{
		key:      key,
		scalable: scalable,
		get:      func(d *Derived) int64 { return int64(*f(d)) },
		set:      func(d *Derived, v int64) { *f(d) = int(v) },
	}
}

func rate(key string, f func(*Derived) *Rate) statField {
	return statField{
		key: key,
		get: func(d *Derived) int64 { return int64(*f(d)) },
		set: func(d *Derived, v int64) { *f(d) = Rate(v) },
	}
}

var statTable = [statCount]statField{
	StatMaxHP:               flat("max_hp", true, func(d *Derived) *int { return &d.MaxHP }),
	StatMaxChakra:           flat("max_chakra", true, func(d *Derived) *int { return &d.MaxChakra }),
	StatHPRegen:             flat("hp_regen", false, func(d *Derived) *int { return &d.HPRegen }),
	StatChakraRegen:         flat("chakra_regen", false, func(d *Derived) *int { return &d.ChakraRegen }),
	StatPhysicalAtk:         flat("physical_atk", true, func(d *Derived) *int { return &d.PhysicalAtk }),
	StatElementalAtk:        flat("elemental_atk", true, func(d *Derived) *int { return &d.ElementalAtk }),
	StatMentalAtk:           flat("mental_atk", true, func(d *Derived) *int { return &d.MentalAtk }),
	StatPhysicalDefFlat:     flat("physical_def_flat", false, func(d *Derived) *int { return &d.PhysicalDefFlat }),
	StatPhysicalDefPercent:  rate("physical_def_percent", func(d *Derived) *Rate { return &d.PhysicalDefPercent }),
	StatElementalDefFlat:    flat("elemental_def_flat", false, func(d *Derived) *int { return &d.ElementalDefFlat }),
	StatElementalDefPercent: rate("elemental_def_percent", func(d *Derived) *Rate { return &d.ElementalDefPercent }),
	StatMentalDefFlat:       flat("mental_def_flat", false, func(d *Derived) *int { return &d.MentalDefFlat }),
	StatMentalDefPercent:    rate("mental_def_percent", func(d *Derived) *Rate { return &d.MentalDefPercent }),
	StatMeleeHitRate:        rate("melee_hit_rate", func(d *Derived) *Rate { return &d.MeleeHitRate }),
	StatRangedHitRate:       rate("ranged_hit_rate", func(d *Derived) *Rate { return &d.RangedHitRate }),
	StatEvasion:             rate("evasion", func(d *Derived) *Rate { return &d.Evasion }),
	StatCritChance:          rate("crit_chance", func(d *Derived) *Rate { return &d.CritChance }),
	StatCritDamageMelee:     rate("crit_damage_melee", func(d *Derived) *Rate { return &d.CritDamageMelee }),
	StatCritDamageRanged:    rate("crit_damage_ranged", func(d *Derived) *Rate { return &d.CritDamageRanged }),
	StatInitiative:          flat("initiative", true, func(d *Derived) *int { return &d.Initiative }),
	StatStatusResistance:    rate("status_resistance", func(d *Derived) *Rate { return &d.StatusResistance }),
	StatGutsChance:          rate("guts_chance", func(d *Derived) *Rate { return &d.GutsChance }),
}

func (s Stat) String() string {
	if s >= statCount {
		return "unknown"
	}
	return statTable[s].key
}

// Scalable reports whether the stat can be a skill's scaling stat.
func (s Stat) Scalable() bool {
	return s < statCount && statTable[s].scalable
}

// ParseStat resolves a content key such as "physical_atk".
func ParseStat(s string) (Stat, error) {
	for i := range statTable {
		if statTable[i].key == s {
			return Stat(i), nil
		}
	}
	return 0, unknownKey("stat", s)
}

// Get returns the raw value of the stat (basis points for Rate stats).
func (d Derived) Get(s Stat) int64 {
	return statTable[s].get(&d)
}

// With returns a copy of d with the stat replaced.
func (d Derived) With(s Stat, v int64) Derived {
	statTable[s].set(&d, v)
	return d
}

// Scaled returns a copy of d with the stat changed by bonus (relative):
// v + floor(v × bonus). The result never drops below zero.
func (d Derived) Scaled(s Stat, bonus Rate) Derived {
	v := d.Get(s)
	v += FloorDiv(v*int64(bonus), int64(RateOne))
	return d.With(s, max(v, 0))
}
