package effect

import (
	"github.com/udisondev/battlecore/internal/model"
)

// DotHit is one damage-over-time tick.
type DotHit struct {
	Buff   Buff
	Damage int
}

// DotDamage computes one tick of a damage-over-time effect against the
// owner's defenses.
//
// Bleed uses physical defense and Burn elemental defense, each at half
// strength: max(1, floor(base - flat×0.5 - base×pct×0.5)).
// Poison is true damage: max(1, base).
func DotDamage(kind model.EffectKind, base int, def model.Derived) int {
	var flatDef int
	var pct model.Rate
	switch kind {
	case model.EffectBleed:
		flatDef, pct = def.PhysicalDefFlat, def.PhysicalDefPercent
	case model.EffectBurn:
		flatDef, pct = def.ElementalDefFlat, def.ElementalDefPercent
	case model.EffectPoison:
		return max(1, base)
	default:
		return 0
	}
	pct = min(pct, model.MaxPercentDefense)

	// 2×(base - flat/2 - base×pct/2) in basis points, halved by the division.
	one := int64(model.RateOne)
	v := int64(base)*2*one - int64(flatDef)*one - int64(base)*int64(pct)
	return max(1, int(model.FloorDiv(v, 2*one)))
}

// TickDots computes the damage of every active DoT on the list. Damage is
// not applied here; the scheduler applies it to the owner.
func (l *List) TickDots(def model.Derived) []DotHit {
	dots := l.Dots()
	hits := make([]DotHit, 0, len(dots))
	for _, b := range dots {
		hits = append(hits, DotHit{Buff: b, Damage: DotDamage(b.Kind, int(b.Value), def)})
	}
	return hits
}
