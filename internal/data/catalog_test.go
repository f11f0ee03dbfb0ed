package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/game/battle"
	"github.com/udisondev/battlecore/internal/model"
)

const primary50 = `{willpower: 50, chakra: 50, strength: 50, spirit: 50, intelligence: 50, calmness: 50, speed: 50, accuracy: 50, dexterity: 50}`

const sampleCatalog = `
skills:
  - id: fireball
    name: Fireball
    scaling_stat: elemental_atk
    damage_mult: 1.2
    attack_method: ranged
    element: fire
    damage_type: elemental
    chakra_cost: 20
    cooldown: 2
    effects:
      - kind: burn
        value: 10
        duration: 2
        chance: 0.5
  - id: strike
    damage_mult: 1
  - id: mirror
    chakra_cost: 10
    effects:
      - kind: reflection
        value: 0.3
        duration: 2
  - id: war_cry
    toggle: true
    upkeep_cost: 4
    effects:
      - kind: stat_modifier
        stat: physical_atk
        value: 0.15
        duration: 2
combatants:
  - id: hero
    name: Hero
    element: fire
    primary: ` + primary50 + `
    equipment: {physical_atk: 12, crit: 0.05}
    skills: [fireball, strike, mirror]
  - id: ogre
    element: earth
    primary: ` + primary50 + `
    skills: [strike, war_cry]
    enemy: {floor: 3, difficulty: 120}
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"fireball", "strike", "mirror", "war_cry"}, c.Skills())
	assert.Equal(t, []string{"hero", "ogre"}, c.Combatants())
	assert.Equal(t, []string{"ogre"}, c.Enemies())

	fb, ok := c.Skill("fireball")
	require.True(t, ok)
	assert.Equal(t, model.StatElementalAtk, fb.ScalingStat)
	assert.Equal(t, model.Rate(12000), fb.DamageMult)
	assert.Equal(t, model.AttackRanged, fb.AttackMethod)
	assert.Equal(t, model.ElementFire, fb.Element)
	assert.Equal(t, model.DamageElemental, fb.DamageType)
	require.Len(t, fb.Effects, 1)
	assert.Equal(t, model.EffectSpec{Kind: model.EffectBurn, Value: 10, Duration: 2, Chance: 5000}, fb.Effects[0])

	strike, _ := c.Skill("strike")
	assert.Equal(t, "strike", strike.Name, "name defaults to id")
	assert.Equal(t, model.StatPhysicalAtk, strike.ScalingStat)
	assert.Equal(t, model.AttackMelee, strike.AttackMethod)
	assert.Equal(t, model.PropertyNormal, strike.Property)

	mirror, _ := c.Skill("mirror")
	assert.True(t, mirror.IsSupport())
	assert.Equal(t, int64(3000), mirror.Effects[0].Value, "reflection value is a ratio")
	assert.Equal(t, model.RateOne, mirror.Effects[0].Chance, "chance defaults to 1")

	cry, _ := c.Skill("war_cry")
	assert.True(t, cry.Toggle)
	assert.Equal(t, model.StatPhysicalAtk, cry.Effects[0].Stat)

	hero, err := c.Sheet("hero")
	require.NoError(t, err)
	assert.Equal(t, "Hero", hero.Name)
	assert.Equal(t, 12, hero.Equipment.PhysicalAtk)
	assert.Equal(t, model.Rate(500), hero.Equipment.Crit)
	assert.Equal(t, 50, hero.Primary.Dexterity)

	ogre, sc, err := c.Enemy("ogre")
	require.NoError(t, err)
	assert.Equal(t, model.ElementEarth, ogre.Element)
	assert.Equal(t, &battle.EnemyScaling{Floor: 3, Difficulty: 120}, sc)

	_, sc, err = c.Enemy("hero")
	require.NoError(t, err)
	assert.Nil(t, sc)
}

func TestCatalog_SheetIsCopy(t *testing.T) {
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	a, _ := c.Sheet("hero")
	a.Skills[0] = "nuke"
	b, _ := c.Sheet("hero")
	assert.Equal(t, "fireball", b.Skills[0])
}

func TestCatalog_UnknownSheet(t *testing.T) {
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	_, err = c.Sheet("dragon")
	assert.ErrorIs(t, err, ErrUnknownSheet)
	_, _, err = c.Enemy("dragon")
	assert.ErrorIs(t, err, ErrUnknownSheet)
}

func TestCatalog_SatisfiesSkillBook(t *testing.T) {
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	hero, _ := c.Sheet("hero")
	ogre, sc, _ := c.Enemy("ogre")
	s, err := battle.NewSession(battle.SessionConfig{Player: hero, Enemy: ogre, Scaling: sc, Skills: c, Seed: 1})
	require.NoError(t, err)
	assert.Greater(t, s.Enemy().Primary().Strength, 50, "floor 3 difficulty 120 scales up")
}

func TestParseCatalog_Errors(t *testing.T) {
	sheet := func(extra string) string {
		return "combatants:\n  - id: x\n    primary: " + primary50 + "\n" + extra
	}
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown yaml key", "skills:\n  - id: a\n    damage: 3\n", "yaml"},
		{"unknown element", "skills:\n  - id: a\n    element: ice\n", "element"},
		{"unknown stat", "skills:\n  - id: a\n    scaling_stat: luck\n", "stat"},
		{"unknown effect kind", "skills:\n  - id: a\n    effects:\n      - {kind: freeze, duration: 1}\n", "effect"},
		{"unknown target", "skills:\n  - id: a\n    effects:\n      - {kind: stun, duration: 1, target: ally}\n", "target"},
		{"non-scaling stat", "skills:\n  - id: a\n    scaling_stat: evasion\n", "scaling_stat"},
		{"penetration out of range", "skills:\n  - id: a\n    penetration: 1.5\n", "penetration"},
		{"zero duration", "skills:\n  - id: a\n    effects:\n      - {kind: stun}\n", "duration"},
		{"chance above one", "skills:\n  - id: a\n    effects:\n      - {kind: stun, duration: 1, chance: 2}\n", "chance"},
		{"upkeep without toggle", "skills:\n  - id: a\n    upkeep_cost: 3\n", "upkeep_cost"},
		{"duplicate skill", "skills:\n  - id: a\n  - id: a\n", "id"},
		{"empty skill id", "skills:\n  - name: nameless\n", "id"},
		{"primary out of range", "combatants:\n  - id: x\n    primary: {willpower: 1000}\n", "willpower"},
		{"primary missing", "combatants:\n  - id: x\n", "willpower"},
		{"negative equipment", sheet("    equipment: {hp: -1}\n"), "hp"},
		{"unknown skill reference", sheet("    skills: [meteor]\n"), "skills"},
		{"negative floor", sheet("    enemy: {floor: -1}\n"), "enemy"},
		{"duplicate combatant", sheet("  - id: x\n    primary: " + primary50 + "\n"), "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))

			var cfgErr *model.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field, "error: %v", err)
		})
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	c, err := ParseCatalog(nil)
	require.NoError(t, err)
	assert.Empty(t, c.Skills())
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, c.Skills(), 4)

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing.yaml"))
}

func TestLoadCatalog_Shipped(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("..", "..", "config", "catalog.yaml"))
	require.NoError(t, err)

	for _, id := range c.Combatants() {
		s, err := c.Sheet(id)
		require.NoError(t, err)
		for _, sk := range s.Skills {
			_, ok := c.Skill(sk)
			assert.True(t, ok, "%s references %s", id, sk)
		}
	}
	assert.NotEmpty(t, c.Enemies())
}
