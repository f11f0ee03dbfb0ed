package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSkill() Skill {
	return Skill{
		ID:           "fireball",
		ScalingStat:  StatElementalAtk,
		DamageMult:   Pct(150),
		AttackMethod: AttackRanged,
		Element:      ElementFire,
		DamageType:   DamageElemental,
		Effects: []EffectSpec{
			{Kind: EffectBurn, Value: 12, Duration: 2, Chance: RateOne},
		},
	}
}

func TestSkill_Validate(t *testing.T) {
	s := validSkill()
	require.NoError(t, s.Validate())
	assert.False(t, s.IsSupport())

	tests := []struct {
		name  string
		mut   func(*Skill)
		field string
	}{
		{"empty id", func(s *Skill) { s.ID = "" }, "id"},
		{"not scalable", func(s *Skill) { s.ScalingStat = StatEvasion }, "scaling_stat"},
		{"negative mult", func(s *Skill) { s.DamageMult = -1 }, "damage_mult"},
		{"penetration above one", func(s *Skill) { s.Penetration = RateOne + 1 }, "penetration"},
		{"crit bonus", func(s *Skill) { s.CritBonus = MaxCritBonus + 1 }, "crit_bonus"},
		{"negative cost", func(s *Skill) { s.ChakraCost = -5 }, "chakra_cost"},
		{"negative cooldown", func(s *Skill) { s.Cooldown = -1 }, "cooldown"},
		{"upkeep without toggle", func(s *Skill) { s.UpkeepCost = 3 }, "upkeep_cost"},
		{"zero duration", func(s *Skill) { s.Effects[0].Duration = 0 }, "duration"},
		{"chance above one", func(s *Skill) { s.Effects[0].Chance = RateOne + 1 }, "chance"},
		{"dot without damage", func(s *Skill) { s.Effects[0].Value = 0 }, "value"},
		{"empty shield", func(s *Skill) { s.Effects[0] = EffectSpec{Kind: EffectShield, Duration: 1} }, "value"},
		{"unknown kind", func(s *Skill) { s.Effects[0].Kind = effectKindCount }, "effect"},
		{"unknown attack method", func(s *Skill) { s.AttackMethod = attackMethodCount }, "attack_method"},
		{"unknown element", func(s *Skill) { s.Element = Element(9) }, "element"},
		{"unknown damage type", func(s *Skill) { s.DamageType = damageTypeCount }, "damage_type"},
		{"unknown property", func(s *Skill) { s.Property = Property(7) }, "property"},
		{"unknown target", func(s *Skill) { s.Effects[0].Target = TargetEnemy + 1 }, "target"},
		{"unknown scaling stat", func(s *Skill) { s.ScalingStat = statCount }, "scaling_stat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSkill()
			s.Effects = append([]EffectSpec(nil), s.Effects...)
			tt.mut(&s)

			var cfgErr *ConfigError
			require.True(t, errors.As(s.Validate(), &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestSkill_ToggleUpkeep(t *testing.T) {
	s := Skill{ID: "stance", ScalingStat: StatPhysicalAtk, Toggle: true, UpkeepCost: 4}
	assert.NoError(t, s.Validate())
	assert.True(t, s.IsSupport())
}

func TestCharacterSheet_Validate(t *testing.T) {
	p := Primary{Willpower: 50, Chakra: 50, Strength: 50, Spirit: 50, Intelligence: 50,
		Calmness: 50, Speed: 50, Accuracy: 50, Dexterity: 50}
	sheet := CharacterSheet{ID: "hero", Element: ElementFire, Primary: p}
	require.NoError(t, sheet.Validate())

	var cfgErr *ConfigError

	bad := sheet
	bad.Primary.Speed = 0
	require.True(t, errors.As(bad.Validate(), &cfgErr))
	assert.Equal(t, "speed", cfgErr.Field)
	assert.Equal(t, "combatant hero", cfgErr.Entity)

	bad = sheet
	bad.Primary.Dexterity = MaxPrimary + 1
	require.True(t, errors.As(bad.Validate(), &cfgErr))
	assert.Equal(t, "dexterity", cfgErr.Field)

	bad = sheet
	bad.Equipment.MentalDef = -1
	require.True(t, errors.As(bad.Validate(), &cfgErr))
	assert.Equal(t, "mental_def", cfgErr.Field)

	bad = sheet
	bad.ID = ""
	require.True(t, errors.As(bad.Validate(), &cfgErr))
	assert.Equal(t, "id", cfgErr.Field)

	bad = sheet
	bad.Element = elementCount
	require.True(t, errors.As(bad.Validate(), &cfgErr))
	assert.Equal(t, "element", cfgErr.Field)
}

func TestDerived_Scaled(t *testing.T) {
	d := Derived{PhysicalAtk: 110, Evasion: 1666}

	assert.Equal(t, 137, d.Scaled(StatPhysicalAtk, Pct(25)).PhysicalAtk)
	assert.Equal(t, 0, d.Scaled(StatPhysicalAtk, Pct(-150)).PhysicalAtk, "never negative")
	assert.Equal(t, Rate(833), d.Scaled(StatEvasion, Pct(-50)).Evasion)
	assert.Equal(t, int64(110), d.Get(StatPhysicalAtk), "Scaled copies")
}
