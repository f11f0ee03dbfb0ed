package combat

import "github.com/udisondev/battlecore/internal/model"

// Element multipliers.
const (
	MultiplierAdvantage    = model.Rate(15000)
	MultiplierNeutral      = model.RateOne
	MultiplierDisadvantage = model.Rate(5000)
)

// beats[e] is the element e is super-effective against.
// Fire → Wind → Lightning → Earth → Water → Fire.
var beats = [...]model.Element{
	model.ElementFire:      model.ElementWind,
	model.ElementWind:      model.ElementLightning,
	model.ElementLightning: model.ElementEarth,
	model.ElementEarth:     model.ElementWater,
	model.ElementWater:     model.ElementFire,
}

// ElementMultiplier returns the damage multiplier of an attack element
// against a defender affinity. Physical and Mental are neutral with
// everything.
func ElementMultiplier(attack, defend model.Element) model.Rate {
	if !attack.Cyclic() || !defend.Cyclic() {
		return MultiplierNeutral
	}
	switch {
	case beats[attack] == defend:
		return MultiplierAdvantage
	case beats[defend] == attack:
		return MultiplierDisadvantage
	default:
		return MultiplierNeutral
	}
}
