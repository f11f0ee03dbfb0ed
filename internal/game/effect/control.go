package effect

import (
	"github.com/udisondev/battlecore/internal/game/rng"
	"github.com/udisondev/battlecore/internal/model"
)

// ConfusionChance is the chance a confused combatant hits itself.
const ConfusionChance = model.Rate(5000)

// Stunned reports whether the owner skips its action phase. No roll is drawn.
func Stunned(l *List) bool {
	return l.Has(model.EffectStun)
}

// Confused draws one roll when the owner is confused and reports whether the
// action is redirected at the owner. Draws nothing when not confused.
func Confused(l *List, src rng.Source) bool {
	if !l.Has(model.EffectConfusion) {
		return false
	}
	return rng.Roll(src, ConfusionChance)
}

// Resisted draws one roll for a hostile effect: it lands when the roll is
// under chance × (1 - resistance).
func Resisted(chance, resistance model.Rate, src rng.Source) bool {
	landing := chance.Mul(model.RateOne - resistance.Clamp(0, model.RateOne))
	return !rng.Roll(src, landing)
}

// FromSpec builds a Buff from a skill's effect spec.
func FromSpec(spec model.EffectSpec, sourceID string) Buff {
	return Buff{
		Kind:      spec.Kind,
		Value:     spec.Value,
		Remaining: spec.Duration,
		SourceID:  sourceID,
		Stat:      spec.Stat,
	}
}
