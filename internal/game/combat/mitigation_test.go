package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/battlecore/internal/game/effect"
	"github.com/udisondev/battlecore/internal/model"
)

func buffs(bs ...effect.Buff) *effect.List {
	l := effect.NewList()
	for i, b := range bs {
		if b.Remaining == 0 {
			b.Remaining = 2
		}
		if b.SourceID == "" {
			b.SourceID = string(rune('a' + i))
		}
		l.Add(b)
	}
	return l
}

func TestMitigate_NoBuffs(t *testing.T) {
	m := Mitigate(68, effect.NewList())
	assert.Equal(t, Mitigation{FinalDamage: 68}, m)
}

func TestMitigate_InvulnerabilityOverridesEverything(t *testing.T) {
	l := buffs(
		effect.Buff{Kind: model.EffectInvulnerability},
		effect.Buff{Kind: model.EffectReflection, Value: 5000},
		effect.Buff{Kind: model.EffectCurse, Value: 5000},
		effect.Buff{Kind: model.EffectShield, Value: 30},
	)

	m := Mitigate(500, l)

	assert.Zero(t, m.FinalDamage)
	assert.Zero(t, m.Reflected)
	assert.Nil(t, m.Absorbed, "shields untouched")
}

func TestMitigate_ReflectionUsesPreCurseDamage(t *testing.T) {
	l := buffs(
		effect.Buff{Kind: model.EffectCurse, Value: 5000},
		effect.Buff{Kind: model.EffectReflection, Value: 3000},
	)

	m := Mitigate(100, l)

	assert.Equal(t, 30, m.Reflected, "30% of 100, not of the cursed 150")
	assert.Equal(t, 150, m.FinalDamage)
}

func TestMitigate_Shields(t *testing.T) {
	t.Run("partial absorption", func(t *testing.T) {
		l := buffs(effect.Buff{Kind: model.EffectShield, Value: 30})

		m := Mitigate(50, l)

		assert.Equal(t, 20, m.FinalDamage)
		assert.Equal(t, []int{30}, m.Absorbed)
	})

	t.Run("full absorption across shields", func(t *testing.T) {
		l := buffs(
			effect.Buff{Kind: model.EffectShield, Value: 30},
			effect.Buff{Kind: model.EffectShield, Value: 40},
		)

		m := Mitigate(50, l)

		assert.Zero(t, m.FinalDamage)
		assert.Equal(t, []int{30, 20}, m.Absorbed)

		l.DrainShields(m.Absorbed)
		assert.Equal(t, []int{20}, l.Shields())
	})

	t.Run("shield absorbs cursed damage", func(t *testing.T) {
		l := buffs(
			effect.Buff{Kind: model.EffectCurse, Value: 10000},
			effect.Buff{Kind: model.EffectShield, Value: 100},
		)

		m := Mitigate(60, l)

		assert.Equal(t, 20, m.FinalDamage)
		assert.Equal(t, []int{100}, m.Absorbed)
	})
}

func TestMitigate_ZeroDamageSkipsSteps(t *testing.T) {
	l := buffs(effect.Buff{Kind: model.EffectShield, Value: 30})

	m := Mitigate(0, l)

	assert.Equal(t, Mitigation{}, m)
}

func TestDamageResult_WithMitigation(t *testing.T) {
	r := DamageResult{Hit: true, FinalDamage: 100, ElementMultiplier: MultiplierNeutral}

	got := r.WithMitigation(Mitigation{FinalDamage: 150, Reflected: 30})

	assert.Equal(t, 150, got.FinalDamage)
	assert.Equal(t, 30, got.Reflected)
	assert.Equal(t, 100, r.FinalDamage)
}
