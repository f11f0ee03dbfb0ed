// Package combat resolves a single combat action: the five-stage damage
// pipeline and the buff-priority mitigation applied to its result.
//
// Everything here is a pure function of its inputs and the rolls drawn from
// the supplied rng.Source.
package combat

import (
	"github.com/udisondev/battlecore/internal/game/rng"
	"github.com/udisondev/battlecore/internal/model"
)

// Hit and crit bounds.
const (
	MinHitChance     = model.Rate(3000) // 30%
	MaxHitChance     = model.Rate(9800) // 98%
	MaxCritChance    = model.Rate(9500) // 95%, after skill and element bonuses
	ElementCritBonus = model.Rate(1000)

	// defender speed lowers hit chance by 0.5% per point
	dodgePerSpeed = 50

	// flat defense never removes more than 60% of the current damage
	maxFlatShare = model.Rate(6000)
)

// RollsPerAction is the number of draws Resolve takes from the source,
// whatever the outcome.
const RollsPerAction = 3

// Fighter is the read-only view of a combatant the pipeline needs.
type Fighter interface {
	Stats() model.Derived
	Primary() model.Primary
	Element() model.Element
}

// DamageResult is the outcome of one resolved action.
type DamageResult struct {
	Hit               bool
	Evaded            bool
	IsCrit            bool
	FinalDamage       int
	Reflected         int
	ElementMultiplier model.Rate
}

// Landed reports whether the action connected.
func (r DamageResult) Landed() bool { return r.Hit && !r.Evaded }

// WithMitigation returns a copy carrying the mitigated damage and reflection.
func (r DamageResult) WithMitigation(m Mitigation) DamageResult {
	r.FinalDamage = m.FinalDamage
	r.Reflected = m.Reflected
	return r
}

// Halved returns a copy with damage halved, keeping a landed hit at least 1.
// Used when a confused actor hits itself.
func (r DamageResult) Halved() DamageResult {
	if r.Landed() {
		r.FinalDamage = max(1, r.FinalDamage/2)
	}
	return r
}

type pipelineState struct {
	atk, def model.Derived
	defSpeed int
	defElem  model.Element
	skill    *model.Skill

	hitRoll, evadeRoll, critRoll model.Rate

	damage int
	result DamageResult
	done   bool
}

type stage func(*pipelineState)

// stages run in order; a stage may end the action by setting done.
var stages = []stage{
	hitStage,
	baseDamageStage,
	elementStage,
	critStage,
	defenseStage,
}

// Resolve runs the damage pipeline for skill from attacker against defender.
// Exactly RollsPerAction rolls are drawn (hit, evasion, crit) before any
// stage runs, so the stream position never depends on the outcome.
func Resolve(attacker, defender Fighter, skill *model.Skill, src rng.Source) DamageResult {
	s := pipelineState{
		atk:       attacker.Stats(),
		def:       defender.Stats(),
		defSpeed:  defender.Primary().Speed,
		defElem:   defender.Element(),
		skill:     skill,
		hitRoll:   rng.Draw(src),
		evadeRoll: rng.Draw(src),
		critRoll:  rng.Draw(src),
		result:    DamageResult{ElementMultiplier: MultiplierNeutral},
	}
	for _, st := range stages {
		st(&s)
		if s.done {
			break
		}
	}
	return s.result
}

// HitChance is the chance a MELEE or RANGED skill connects before evasion.
// AUTO skills always hit.
func HitChance(atk model.Derived, method model.AttackMethod, defenderSpeed int) model.Rate {
	var rate model.Rate
	switch method {
	case model.AttackAuto:
		return model.RateOne
	case model.AttackRanged:
		rate = atk.RangedHitRate
	default:
		rate = atk.MeleeHitRate
	}
	rate -= model.Rate(defenderSpeed * dodgePerSpeed)
	return rate.Clamp(MinHitChance, MaxHitChance)
}

func hitStage(s *pipelineState) {
	if s.skill.AttackMethod == model.AttackAuto {
		s.result.Hit = true
		return
	}
	if s.hitRoll >= HitChance(s.atk, s.skill.AttackMethod, s.defSpeed) {
		s.done = true
		return
	}
	s.result.Hit = true
	if s.evadeRoll < s.def.Evasion {
		s.result.Evaded = true
		s.done = true
	}
}

func baseDamageStage(s *pipelineState) {
	v := s.atk.Get(s.skill.ScalingStat)
	s.damage = int(model.FloorDiv(v*int64(s.skill.DamageMult), int64(model.RateOne)))
}

func elementStage(s *pipelineState) {
	m := ElementMultiplier(s.skill.Element, s.defElem)
	s.result.ElementMultiplier = m
	s.damage = m.Apply(s.damage)
}

// EffectiveCrit is min(95%, critChance + skill bonus + 10% on advantage).
func EffectiveCrit(critChance, skillBonus, multiplier model.Rate) model.Rate {
	c := critChance + skillBonus
	if multiplier > MultiplierNeutral {
		c += ElementCritBonus
	}
	return min(c, MaxCritChance)
}

func critStage(s *pipelineState) {
	if s.critRoll >= EffectiveCrit(s.atk.CritChance, s.skill.CritBonus, s.result.ElementMultiplier) {
		return
	}
	s.result.IsCrit = true
	mult := s.atk.CritDamageMelee
	if s.skill.AttackMethod == model.AttackRanged {
		mult = s.atk.CritDamageRanged
	}
	s.damage = mult.Apply(s.damage)
}

func defenseStage(s *pipelineState) {
	flat, pct := defensePair(s.def, s.skill.DamageType)
	pct = min(pct, model.MaxPercentDefense).Mul(model.RateOne - s.skill.Penetration)
	d := applyDefense[s.skill.Property](s.damage, flat, pct)
	s.result.FinalDamage = max(1, d)
}

func defensePair(d model.Derived, t model.DamageType) (int, model.Rate) {
	switch t {
	case model.DamagePhysical:
		return d.PhysicalDefFlat, d.PhysicalDefPercent
	case model.DamageElemental:
		return d.ElementalDefFlat, d.ElementalDefPercent
	case model.DamageMental:
		return d.MentalDefFlat, d.MentalDefPercent
	default:
		return 0, 0
	}
}

var applyDefense = [...]func(damage, flat int, pct model.Rate) int{
	model.PropertyNormal: func(damage, flat int, pct model.Rate) int {
		return reducePercent(reduceFlat(damage, flat), pct)
	},
	model.PropertyPiercing: func(damage, _ int, pct model.Rate) int {
		return reducePercent(damage, pct)
	},
	model.PropertyArmorBreak: func(damage, flat int, _ model.Rate) int {
		return reduceFlat(damage, flat)
	},
}

// ApplyDefense runs the defense stage alone on an already computed damage
// value.
func ApplyDefense(damage, flat int, pct model.Rate, prop model.Property) int {
	return max(1, applyDefense[prop](damage, flat, min(pct, model.MaxPercentDefense)))
}

func reduceFlat(damage, flat int) int {
	return damage - min(max(flat, 0), maxFlatShare.Apply(damage))
}

func reducePercent(damage int, pct model.Rate) int {
	return damage - pct.Apply(damage)
}
