package model

// MaxCritBonus bounds a skill's flat crit bonus.
const MaxCritBonus = 10000

// Skill is an immutable action definition from the content database.
type Skill struct {
	ID           string
	Name         string
	ScalingStat  Stat
	DamageMult   Rate // 0 for support skills
	AttackMethod AttackMethod
	Element      Element
	DamageType   DamageType
	Property     Property
	Penetration  Rate // 0..RateOne
	CritBonus    Rate // added to crit chance
	ChakraCost   int
	Cooldown     int // cycles

	// Toggle skills switch a sustained stance on/off instead of attacking;
	// UpkeepCost chakra is paid every upkeep phase while on.
	Toggle     bool
	UpkeepCost int

	Effects []EffectSpec
}

// IsSupport reports a skill that deals no damage and only applies effects.
func (s *Skill) IsSupport() bool {
	return s.DamageMult == 0
}

// EffectSpec describes an effect a skill applies on a landed hit.
type EffectSpec struct {
	Kind     EffectKind
	Value    int64 // Rate for curse/reflection/stat modifier, flat for shield and DoT
	Duration int
	Chance   Rate
	Stat     Stat // StatModifier only
	Target   EffectTarget
}

// Receiver resolves TargetDefault by kind.
func (e EffectSpec) Receiver() EffectTarget {
	if e.Target != TargetDefault {
		return e.Target
	}
	if e.Kind.Beneficial() {
		return TargetSelf
	}
	return TargetEnemy
}

// Validate checks ranges that cannot be expressed by the enum types alone.
func (s *Skill) Validate() error {
	entity := "skill " + s.ID
	switch {
	case s.ID == "":
		return &ConfigError{Entity: "skill", Field: "id", Value: s.ID, Reason: "must not be empty"}
	case !s.ScalingStat.Scalable():
		return &ConfigError{Entity: entity, Field: "scaling_stat", Value: s.ScalingStat.String(), Reason: "not a scaling stat"}
	case s.AttackMethod >= attackMethodCount:
		return &ConfigError{Entity: entity, Field: "attack_method", Value: s.AttackMethod, Reason: "unknown attack method"}
	case s.Element >= elementCount:
		return &ConfigError{Entity: entity, Field: "element", Value: s.Element, Reason: "unknown element"}
	case s.DamageType >= damageTypeCount:
		return &ConfigError{Entity: entity, Field: "damage_type", Value: s.DamageType, Reason: "unknown damage type"}
	case s.Property >= propertyCount:
		return &ConfigError{Entity: entity, Field: "property", Value: s.Property, Reason: "unknown property"}
	case s.DamageMult < 0:
		return &ConfigError{Entity: entity, Field: "damage_mult", Value: s.DamageMult.Float(), Reason: "must not be negative"}
	case s.Penetration < 0 || s.Penetration > RateOne:
		return &ConfigError{Entity: entity, Field: "penetration", Value: s.Penetration.Float(), Reason: "must be in [0, 1]"}
	case s.CritBonus < 0 || s.CritBonus > MaxCritBonus:
		return &ConfigError{Entity: entity, Field: "crit_bonus", Value: s.CritBonus.Float(), Reason: "must be in [0, 100]"}
	case s.ChakraCost < 0:
		return &ConfigError{Entity: entity, Field: "chakra_cost", Value: s.ChakraCost, Reason: "must not be negative"}
	case s.Cooldown < 0:
		return &ConfigError{Entity: entity, Field: "cooldown", Value: s.Cooldown, Reason: "must not be negative"}
	case s.UpkeepCost < 0:
		return &ConfigError{Entity: entity, Field: "upkeep_cost", Value: s.UpkeepCost, Reason: "must not be negative"}
	case s.UpkeepCost > 0 && !s.Toggle:
		return &ConfigError{Entity: entity, Field: "upkeep_cost", Value: s.UpkeepCost, Reason: "only toggle skills have upkeep"}
	}
	for _, e := range s.Effects {
		if err := e.validate(); err != nil {
			return err.In(entity)
		}
	}
	return nil
}

func (e EffectSpec) validate() *ConfigError {
	switch {
	case e.Kind >= effectKindCount:
		return &ConfigError{Field: "effect", Value: e.Kind, Reason: "unknown kind"}
	case e.Target > TargetEnemy:
		return &ConfigError{Field: "target", Value: e.Target, Reason: "unknown target"}
	case e.Duration <= 0:
		return &ConfigError{Field: "duration", Value: e.Duration, Reason: "must be positive"}
	case e.Chance < 0 || e.Chance > RateOne:
		return &ConfigError{Field: "chance", Value: e.Chance.Float(), Reason: "must be in [0, 1]"}
	case e.Kind.IsDot() && e.Value <= 0:
		return &ConfigError{Field: "value", Value: e.Value, Reason: "damage over time needs positive base damage"}
	case e.Kind == EffectShield && e.Value <= 0:
		return &ConfigError{Field: "value", Value: e.Value, Reason: "shield needs positive capacity"}
	case e.Kind == EffectStatModifier && e.Stat >= statCount:
		return &ConfigError{Field: "stat", Value: e.Stat, Reason: "unknown stat"}
	}
	return nil
}
