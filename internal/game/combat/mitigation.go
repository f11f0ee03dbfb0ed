package combat

import "github.com/udisondev/battlecore/internal/model"

// BuffReader is the part of a defender's effect list mitigation consults.
type BuffReader interface {
	Has(kind model.EffectKind) bool
	Sum(kind model.EffectKind) int64
	Shields() []int
}

// Mitigation is the outcome of running incoming damage through the
// defender's buffs. Absorbed holds the amount taken by each shield, indexed
// like BuffReader.Shields; the caller commits it to the effect list.
type Mitigation struct {
	FinalDamage int
	Reflected   int
	Absorbed    []int
}

type mitigationState struct {
	buffs BuffReader
	out   Mitigation
	done  bool
}

type mitigationStep func(*mitigationState)

// mitigationSteps is the fixed priority order. Reflection must read the
// damage before curse amplifies it.
var mitigationSteps = []mitigationStep{
	invulnerabilityStep,
	reflectionStep,
	curseStep,
	shieldStep,
}

// Mitigate applies the defender's buffs to damage in priority order.
func Mitigate(damage int, buffs BuffReader) Mitigation {
	s := mitigationState{buffs: buffs, out: Mitigation{FinalDamage: max(damage, 0)}}
	for _, step := range mitigationSteps {
		if s.done || s.out.FinalDamage == 0 {
			break
		}
		step(&s)
	}
	return s.out
}

func invulnerabilityStep(s *mitigationState) {
	if !s.buffs.Has(model.EffectInvulnerability) {
		return
	}
	s.out.FinalDamage = 0
	s.out.Reflected = 0
	s.done = true
}

func reflectionStep(s *mitigationState) {
	if r := model.Rate(s.buffs.Sum(model.EffectReflection)); r > 0 {
		s.out.Reflected = r.Apply(s.out.FinalDamage)
	}
}

func curseStep(s *mitigationState) {
	if c := model.Rate(s.buffs.Sum(model.EffectCurse)); c > 0 {
		s.out.FinalDamage += c.Apply(s.out.FinalDamage)
	}
}

func shieldStep(s *mitigationState) {
	shields := s.buffs.Shields()
	if len(shields) == 0 {
		return
	}
	s.out.Absorbed = make([]int, len(shields))
	for i, capacity := range shields {
		take := min(capacity, s.out.FinalDamage)
		s.out.Absorbed[i] = take
		s.out.FinalDamage -= take
		if s.out.FinalDamage == 0 {
			break
		}
	}
}
