package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/battlecore/internal/model"
)

var allElements = []model.Element{
	model.ElementFire, model.ElementWind, model.ElementLightning,
	model.ElementEarth, model.ElementWater, model.ElementPhysical, model.ElementMental,
}

func TestElementMultiplier_Cycle(t *testing.T) {
	cycle := []model.Element{
		model.ElementFire, model.ElementWind, model.ElementLightning,
		model.ElementEarth, model.ElementWater,
	}
	for i, e := range cycle {
		next := cycle[(i+1)%len(cycle)]
		assert.Equal(t, MultiplierAdvantage, ElementMultiplier(e, next), "%s vs %s", e, next)
		assert.Equal(t, MultiplierDisadvantage, ElementMultiplier(next, e), "%s vs %s", next, e)
	}
}

func TestElementMultiplier_Symmetric(t *testing.T) {
	for _, a := range allElements {
		for _, b := range allElements {
			switch ElementMultiplier(a, b) {
			case MultiplierAdvantage:
				assert.Equal(t, MultiplierDisadvantage, ElementMultiplier(b, a), "%s vs %s", b, a)
			case MultiplierDisadvantage:
				assert.Equal(t, MultiplierAdvantage, ElementMultiplier(b, a), "%s vs %s", b, a)
			default:
				assert.Equal(t, MultiplierNeutral, ElementMultiplier(b, a), "%s vs %s", b, a)
			}
		}
	}
}

func TestElementMultiplier_NeutralAffinities(t *testing.T) {
	for _, e := range allElements {
		for _, n := range []model.Element{model.ElementPhysical, model.ElementMental} {
			assert.Equal(t, MultiplierNeutral, ElementMultiplier(n, e))
			assert.Equal(t, MultiplierNeutral, ElementMultiplier(e, n))
		}
	}
	assert.Equal(t, MultiplierNeutral, ElementMultiplier(model.ElementFire, model.ElementFire))
}
