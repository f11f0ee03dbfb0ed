package testutil

import (
	"github.com/udisondev/battlecore/internal/model"
)

// Flat возвращает первичные статы, где каждое значение равно v.
func Flat(v int) model.Primary {
	return model.Primary{
		Willpower: v, Chakra: v, Strength: v,
		Spirit: v, Intelligence: v, Calmness: v,
		Speed: v, Accuracy: v, Dexterity: v,
	}
}

// Sheet создаёт валидный лист персонажа с плоскими статами.
func Sheet(id string, element model.Element, v int, skills ...string) model.CharacterSheet {
	return model.CharacterSheet{
		ID:      id,
		Name:    id,
		Element: element,
		Primary: Flat(v),
		Skills:  skills,
	}
}

// Skill ids used by Skills.
const (
	SkillStrike   = "strike"
	SkillFireball = "fireball"
	SkillPierce   = "pierce"
	SkillStun     = "stun_blow"
	SkillPoison   = "poison_dart"
	SkillBarrier  = "barrier"
	SkillMirror   = "mirror"
	SkillCurse    = "curse"
	SkillConfuse  = "confuse"
	SkillStance   = "iron_stance"
	SkillNuke     = "nuke"
)

// Skills возвращает свежий набор тестовых скиллов (каждый вызов: новые
// указатели, тесты могут их мутировать).
func Skills() map[string]*model.Skill {
	always := model.RateOne
	list := []*model.Skill{
		{
			ID: SkillStrike, Name: "Strike",
			ScalingStat: model.StatPhysicalAtk, DamageMult: model.RateOne,
			AttackMethod: model.AttackMelee, Element: model.ElementPhysical,
			DamageType: model.DamagePhysical, Property: model.PropertyNormal,
		},
		{
			ID: SkillFireball, Name: "Fireball",
			ScalingStat: model.StatElementalAtk, DamageMult: model.Pct(120),
			AttackMethod: model.AttackRanged, Element: model.ElementFire,
			DamageType: model.DamageElemental, Property: model.PropertyNormal,
			ChakraCost: 20, Cooldown: 2,
			Effects: []model.EffectSpec{
				{Kind: model.EffectBurn, Value: 10, Duration: 2, Chance: model.Pct(50)},
			},
		},
		{
			ID: SkillPierce, Name: "Pierce",
			ScalingStat: model.StatPhysicalAtk, DamageMult: model.RateOne,
			AttackMethod: model.AttackMelee, Element: model.ElementPhysical,
			DamageType: model.DamagePhysical, Property: model.PropertyPiercing,
			Penetration: model.Pct(25), ChakraCost: 10,
		},
		{
			ID: SkillStun, Name: "Stun Blow",
			ScalingStat: model.StatPhysicalAtk, DamageMult: model.Pct(50),
			AttackMethod: model.AttackAuto, Element: model.ElementPhysical,
			DamageType: model.DamagePhysical, Property: model.PropertyNormal,
			ChakraCost: 15, Cooldown: 3,
			Effects: []model.EffectSpec{
				{Kind: model.EffectStun, Duration: 1, Chance: always},
			},
		},
		{
			ID: SkillPoison, Name: "Poison Dart",
			ScalingStat: model.StatPhysicalAtk, DamageMult: model.Pct(30),
			AttackMethod: model.AttackAuto, Element: model.ElementPhysical,
			DamageType: model.DamagePhysical, Property: model.PropertyNormal,
			ChakraCost: 5,
			Effects: []model.EffectSpec{
				{Kind: model.EffectPoison, Value: 12, Duration: 3, Chance: always},
			},
		},
		{
			ID: SkillBarrier, Name: "Barrier",
			ChakraCost: 10, Cooldown: 3,
			Effects: []model.EffectSpec{
				{Kind: model.EffectShield, Value: 100, Duration: 2, Chance: always},
			},
		},
		{
			ID: SkillMirror, Name: "Mirror",
			ChakraCost: 10,
			Effects: []model.EffectSpec{
				{Kind: model.EffectReflection, Value: int64(model.Pct(30)), Duration: 2, Chance: always},
			},
		},
		{
			ID: SkillCurse, Name: "Curse",
			ChakraCost: 10,
			Effects: []model.EffectSpec{
				{Kind: model.EffectCurse, Value: int64(model.Pct(50)), Duration: 2, Chance: always},
			},
		},
		{
			ID: SkillConfuse, Name: "Confuse",
			ChakraCost: 10,
			Effects: []model.EffectSpec{
				{Kind: model.EffectConfusion, Duration: 2, Chance: always},
			},
		},
		{
			ID: SkillStance, Name: "Iron Stance",
			Toggle: true, ChakraCost: 10, UpkeepCost: 5,
			Effects: []model.EffectSpec{
				{Kind: model.EffectStatModifier, Stat: model.StatPhysicalDefFlat, Value: int64(model.Pct(50)), Duration: 2, Chance: always, Target: model.TargetSelf},
			},
		},
		{
			ID: SkillNuke, Name: "Nuke",
			ScalingStat: model.StatPhysicalAtk, DamageMult: model.Pct(10000),
			AttackMethod: model.AttackAuto, Element: model.ElementPhysical,
			DamageType: model.DamageTrue, Property: model.PropertyNormal,
		},
	}
	out := make(map[string]*model.Skill, len(list))
	for _, s := range list {
		out[s.ID] = s
	}
	return out
}
