package model

import "strings"

// Element of a skill or a combatant's affinity.
type Element uint8

const (
	ElementFire Element = iota
	ElementWind
	ElementLightning
	ElementEarth
	ElementWater
	ElementPhysical
	ElementMental
	elementCount
)

var elementNames = [elementCount]string{
	ElementFire:      "FIRE",
	ElementWind:      "WIND",
	ElementLightning: "LIGHTNING",
	ElementEarth:     "EARTH",
	ElementWater:     "WATER",
	ElementPhysical:  "PHYSICAL",
	ElementMental:    "MENTAL",
}

func (e Element) String() string { return enumName(elementNames[:], int(e)) }

// Cyclic reports whether the element takes part in the five-element cycle.
func (e Element) Cyclic() bool { return e <= ElementWater }

// ParseElement resolves a content key such as "fire".
func ParseElement(s string) (Element, error) {
	i, ok := parseEnum(elementNames[:], s)
	if !ok {
		return 0, unknownKey("element", s)
	}
	return Element(i), nil
}

// DamageType selects which defense pair mitigates a hit.
type DamageType uint8

const (
	DamageTrue DamageType = iota
	DamagePhysical
	DamageElemental
	DamageMental
	damageTypeCount
)

var damageTypeNames = [damageTypeCount]string{
	DamageTrue:      "TRUE",
	DamagePhysical:  "PHYSICAL",
	DamageElemental: "ELEMENTAL",
	DamageMental:    "MENTAL",
}

func (d DamageType) String() string { return enumName(damageTypeNames[:], int(d)) }

func ParseDamageType(s string) (DamageType, error) {
	i, ok := parseEnum(damageTypeNames[:], s)
	if !ok {
		return 0, unknownKey("damage_type", s)
	}
	return DamageType(i), nil
}

// Property changes how defense is applied.
type Property uint8

const (
	PropertyNormal Property = iota
	PropertyPiercing
	PropertyArmorBreak
	propertyCount
)

var propertyNames = [propertyCount]string{
	PropertyNormal:     "NORMAL",
	PropertyPiercing:   "PIERCING",
	PropertyArmorBreak: "ARMOR_BREAK",
}

func (p Property) String() string { return enumName(propertyNames[:], int(p)) }

func ParseProperty(s string) (Property, error) {
	i, ok := parseEnum(propertyNames[:], s)
	if !ok {
		return 0, unknownKey("property", s)
	}
	return Property(i), nil
}

// AttackMethod decides hit formula and crit multiplier.
type AttackMethod uint8

const (
	AttackAuto AttackMethod = iota
	AttackMelee
	AttackRanged
	attackMethodCount
)

var attackMethodNames = [attackMethodCount]string{
	AttackAuto:   "AUTO",
	AttackMelee:  "MELEE",
	AttackRanged: "RANGED",
}

func (a AttackMethod) String() string { return enumName(attackMethodNames[:], int(a)) }

func ParseAttackMethod(s string) (AttackMethod, error) {
	i, ok := parseEnum(attackMethodNames[:], s)
	if !ok {
		return 0, unknownKey("attack_method", s)
	}
	return AttackMethod(i), nil
}

// EffectKind is the kind of a timed buff or debuff.
type EffectKind uint8

const (
	EffectInvulnerability EffectKind = iota
	EffectReflection
	EffectCurse
	EffectShield
	EffectStun
	EffectConfusion
	EffectBleed
	EffectBurn
	EffectPoison
	EffectStatModifier
	effectKindCount
)

var effectKindNames = [effectKindCount]string{
	EffectInvulnerability: "INVULNERABILITY",
	EffectReflection:      "REFLECTION",
	EffectCurse:           "CURSE",
	EffectShield:          "SHIELD",
	EffectStun:            "STUN",
	EffectConfusion:       "CONFUSION",
	EffectBleed:           "BLEED",
	EffectBurn:            "BURN",
	EffectPoison:          "POISON",
	EffectStatModifier:    "STAT_MODIFIER",
}

func (k EffectKind) String() string { return enumName(effectKindNames[:], int(k)) }

// IsDot reports damage-over-time kinds.
func (k EffectKind) IsDot() bool {
	return k == EffectBleed || k == EffectBurn || k == EffectPoison
}

// RateValued reports kinds whose Value is a Rate rather than a flat amount.
func (k EffectKind) RateValued() bool {
	return k == EffectReflection || k == EffectCurse || k == EffectStatModifier
}

// Beneficial reports kinds that protect their owner. Beneficial effects go on
// the caster by default, the rest on the enemy.
func (k EffectKind) Beneficial() bool {
	return k == EffectInvulnerability || k == EffectReflection || k == EffectShield
}

func ParseEffectKind(s string) (EffectKind, error) {
	i, ok := parseEnum(effectKindNames[:], s)
	if !ok {
		return 0, unknownKey("effect", s)
	}
	return EffectKind(i), nil
}

// EffectTarget picks who receives an effect.
type EffectTarget uint8

const (
	TargetDefault EffectTarget = iota
	TargetSelf
	TargetEnemy
)

func ParseEffectTarget(s string) (EffectTarget, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return TargetDefault, nil
	case "SELF":
		return TargetSelf, nil
	case "ENEMY":
		return TargetEnemy, nil
	}
	return 0, unknownKey("target", s)
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "UNKNOWN"
	}
	return names[i]
}

func parseEnum(names []string, s string) (int, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return i, true
		}
	}
	return 0, false
}
