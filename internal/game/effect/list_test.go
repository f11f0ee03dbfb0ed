package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/game/stats"
	"github.com/udisondev/battlecore/internal/model"
)

func buff(kind model.EffectKind, value int64, remaining int) Buff {
	return Buff{Kind: kind, Value: value, Remaining: remaining, SourceID: "caster"}
}

func TestAdd_SameSourceRefreshes(t *testing.T) {
	l := NewList()
	l.Add(buff(model.EffectCurse, 2000, 1))
	l.Add(buff(model.EffectCurse, 1000, 3))

	snap := l.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 3, snap[0].Remaining, "duration refreshed")
	assert.Equal(t, int64(2000), snap[0].Value, "stronger value kept")
}

func TestAdd_DifferentSourcesStack(t *testing.T) {
	l := NewList()
	l.Add(buff(model.EffectBleed, 10, 2))
	other := buff(model.EffectBleed, 5, 2)
	other.SourceID = "other"
	l.Add(other)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, int64(15), l.Sum(model.EffectBleed))
}

func TestAdd_NegativeModifierKeepsLargerMagnitude(t *testing.T) {
	l := NewList()
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatEvasion, Value: -1000, Remaining: 2, SourceID: "x"})
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatEvasion, Value: -3000, Remaining: 2, SourceID: "x"})

	assert.Equal(t, model.Rate(-3000), l.StatBonus(model.StatEvasion))
}

func TestAdd_ShieldsNeverMerge(t *testing.T) {
	l := NewList()
	l.Add(buff(model.EffectShield, 30, 2))
	l.Add(buff(model.EffectShield, 20, 2))

	assert.Equal(t, []int{30, 20}, l.Shields())
}

func TestAdd_LimitDropsOldest(t *testing.T) {
	l := NewList()
	for i := range maxEffects + 1 {
		b := buff(model.EffectShield, int64(i+1), 5)
		l.Add(b)
	}
	shields := l.Shields()
	require.Len(t, shields, maxEffects)
	assert.Equal(t, 2, shields[0], "first shield evicted")
}

func TestTick_DecrementsAndPrunes(t *testing.T) {
	l := NewList()
	l.Add(buff(model.EffectStun, 0, 1))
	l.Add(buff(model.EffectReflection, 3000, 2))

	expired := l.Tick()
	require.Len(t, expired, 1)
	assert.Equal(t, model.EffectStun, expired[0].Kind)
	assert.False(t, l.Has(model.EffectStun), "expired effect pruned before next read")
	assert.True(t, l.Has(model.EffectReflection))

	l.Tick()
	assert.Equal(t, 0, l.Len())
}

func TestDrainShields(t *testing.T) {
	l := NewList()
	l.Add(buff(model.EffectShield, 30, 3))
	l.Add(buff(model.EffectCurse, 1000, 3))
	l.Add(buff(model.EffectShield, 50, 3))

	l.DrainShields([]int{30, 10})

	assert.Equal(t, []int{40}, l.Shields(), "first shield consumed and removed")
	assert.True(t, l.Has(model.EffectCurse), "non-shield effects untouched")
}

func TestRemove(t *testing.T) {
	l := NewList()
	l.Add(buff(model.EffectPoison, 4, 3))
	l.Add(buff(model.EffectBurn, 4, 3))

	l.Remove(model.EffectPoison)

	assert.False(t, l.Has(model.EffectPoison))
	assert.True(t, l.Has(model.EffectBurn))
}

func TestApplyModifiers(t *testing.T) {
	l := NewList()
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatPhysicalAtk, Value: 2000, Remaining: 2, SourceID: "a"})
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatPhysicalAtk, Value: 500, Remaining: 2, SourceID: "b"})
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatEvasion, Value: -5000, Remaining: 2, SourceID: "a"})

	d := l.ApplyModifiers(model.Derived{PhysicalAtk: 100, Evasion: 1000})

	assert.Equal(t, 125, d.PhysicalAtk, "bonuses on one stat sum before applying")
	assert.Equal(t, model.Rate(500), d.Evasion)
}

func TestApplyModifiers_ClampsToCaps(t *testing.T) {
	base := model.Derived{CritChance: 3300, Evasion: 1666, GutsChance: 2000, CritDamageMelee: 17500}
	l := NewList()
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatCritChance, Value: 20000, Remaining: 2, SourceID: "a"})
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatEvasion, Value: 100000, Remaining: 2, SourceID: "a"})
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatGutsChance, Value: 100000, Remaining: 2, SourceID: "a"})
	l.Add(Buff{Kind: model.EffectStatModifier, Stat: model.StatCritDamageMelee, Value: 10000, Remaining: 2, SourceID: "a"})

	d := l.ApplyModifiers(base)

	assert.Equal(t, stats.MaxCritChance, d.CritChance)
	assert.Equal(t, stats.MaxCritDamage, d.CritDamageMelee)
	assert.Less(t, d.Evasion, model.RateOne, "evasion never reaches 100%")
	assert.Less(t, d.GutsChance, model.RateOne)
}
