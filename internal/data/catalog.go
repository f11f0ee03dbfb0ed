// Package data loads the content database: skill definitions and character
// sheets, read once at startup from a YAML catalog.
package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/battlecore/internal/game/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// ErrUnknownSheet is returned for a combatant id not in the catalog.
var ErrUnknownSheet = errors.New("unknown character sheet")

// Catalog is the immutable content database. Safe for concurrent reads.
type Catalog struct {
	skills     map[string]*model.Skill
	skillIDs   []string
	sheets     map[string]model.CharacterSheet
	scaling    map[string]battle.EnemyScaling
	sheetOrder []string
}

type catalogFile struct {
	Skills     []skillDef     `yaml:"skills"`
	Combatants []combatantDef `yaml:"combatants"`
}

type skillDef struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	ScalingStat  string      `yaml:"scaling_stat"`
	DamageMult   float64     `yaml:"damage_mult"`
	AttackMethod string      `yaml:"attack_method"`
	Element      string      `yaml:"element"`
	DamageType   string      `yaml:"damage_type"`
	Property     string      `yaml:"property"`
	Penetration  float64     `yaml:"penetration"`
	CritBonus    float64     `yaml:"crit_bonus"`
	ChakraCost   int         `yaml:"chakra_cost"`
	Cooldown     int         `yaml:"cooldown"`
	Toggle       bool        `yaml:"toggle"`
	UpkeepCost   int         `yaml:"upkeep_cost"`
	Effects      []effectDef `yaml:"effects"`
}

type effectDef struct {
	Kind     string   `yaml:"kind"`
	Value    float64  `yaml:"value"` // ratio for curse/reflection/stat_modifier
	Duration int      `yaml:"duration"`
	Chance   *float64 `yaml:"chance"` // 1.0 when omitted
	Stat     string   `yaml:"stat"`
	Target   string   `yaml:"target"`
}

type combatantDef struct {
	ID        string           `yaml:"id"`
	Name      string           `yaml:"name"`
	Element   string           `yaml:"element"`
	Primary   model.Primary    `yaml:"primary"`
	Equipment equipmentDef     `yaml:"equipment"`
	Skills    []string         `yaml:"skills"`
	Enemy     *enemyScalingDef `yaml:"enemy"`
}

type equipmentDef struct {
	model.Equipment `yaml:",inline"`
	Crit            float64 `yaml:"crit"`
}

type enemyScalingDef struct {
	Floor      int `yaml:"floor"`
	Difficulty int `yaml:"difficulty"`
}

// LoadCatalog reads and parses the catalog at path.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	slog.Info("catalog loaded", "path", path, "skills", len(c.skills), "combatants", len(c.sheets))
	return c, nil
}

// ParseCatalog parses a YAML catalog. Malformed content fails with
// *model.ConfigError: unknown keys, out-of-range values, duplicate ids and
// references to undefined skills.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &model.ConfigError{Entity: "catalog", Field: "yaml", Reason: err.Error()}
	}

	c := &Catalog{
		skills:  make(map[string]*model.Skill, len(f.Skills)),
		sheets:  make(map[string]model.CharacterSheet, len(f.Combatants)),
		scaling: make(map[string]battle.EnemyScaling),
	}

	for _, def := range f.Skills {
		if _, dup := c.skills[def.ID]; dup {
			return nil, &model.ConfigError{Entity: "skill", Field: "id", Value: def.ID, Reason: "duplicate id"}
		}
		sk, err := def.build()
		if err != nil {
			return nil, err
		}
		c.skills[sk.ID] = sk
		c.skillIDs = append(c.skillIDs, sk.ID)
	}

	for _, def := range f.Combatants {
		if _, dup := c.sheets[def.ID]; dup {
			return nil, &model.ConfigError{Entity: "combatant", Field: "id", Value: def.ID, Reason: "duplicate id"}
		}
		sheet, err := def.build()
		if err != nil {
			return nil, err
		}
		for _, id := range sheet.Skills {
			if _, ok := c.skills[id]; !ok {
				return nil, &model.ConfigError{Entity: "combatant " + sheet.ID, Field: "skills", Value: id, Reason: "unknown skill"}
			}
		}
		c.sheets[sheet.ID] = sheet
		c.sheetOrder = append(c.sheetOrder, sheet.ID)
		if def.Enemy != nil {
			if def.Enemy.Floor < 0 || def.Enemy.Difficulty < 0 {
				return nil, &model.ConfigError{Entity: "combatant " + sheet.ID, Field: "enemy", Value: *def.Enemy, Reason: "floor and difficulty must not be negative"}
			}
			c.scaling[sheet.ID] = battle.EnemyScaling{Floor: def.Enemy.Floor, Difficulty: def.Enemy.Difficulty}
		}
	}
	return c, nil
}

func (d skillDef) build() (*model.Skill, error) {
	entity := "skill " + d.ID
	sk := &model.Skill{
		ID:          d.ID,
		Name:        d.Name,
		DamageMult:  model.RateFromFloat(d.DamageMult),
		Penetration: model.RateFromFloat(d.Penetration),
		CritBonus:   model.RateFromFloat(d.CritBonus),
		ChakraCost:  d.ChakraCost,
		Cooldown:    d.Cooldown,
		Toggle:      d.Toggle,
		UpkeepCost:  d.UpkeepCost,
	}
	if sk.Name == "" {
		sk.Name = sk.ID
	}

	var err error
	if sk.ScalingStat, err = model.ParseStat(or(d.ScalingStat, "physical_atk")); err != nil {
		return nil, attribute(entity, err)
	}
	if sk.AttackMethod, err = model.ParseAttackMethod(or(d.AttackMethod, "melee")); err != nil {
		return nil, attribute(entity, err)
	}
	if sk.Element, err = model.ParseElement(or(d.Element, "physical")); err != nil {
		return nil, attribute(entity, err)
	}
	if sk.DamageType, err = model.ParseDamageType(or(d.DamageType, "physical")); err != nil {
		return nil, attribute(entity, err)
	}
	if sk.Property, err = model.ParseProperty(or(d.Property, "normal")); err != nil {
		return nil, attribute(entity, err)
	}

	for _, e := range d.Effects {
		spec, err := e.build()
		if err != nil {
			return nil, attribute(entity, err)
		}
		sk.Effects = append(sk.Effects, spec)
	}

	if err := sk.Validate(); err != nil {
		return nil, err
	}
	return sk, nil
}

func (d effectDef) build() (model.EffectSpec, error) {
	kind, err := model.ParseEffectKind(d.Kind)
	if err != nil {
		return model.EffectSpec{}, err
	}
	spec := model.EffectSpec{Kind: kind, Duration: d.Duration, Chance: model.RateOne}
	if d.Chance != nil {
		spec.Chance = model.RateFromFloat(*d.Chance)
	}
	if kind.RateValued() {
		spec.Value = int64(model.RateFromFloat(d.Value))
	} else {
		spec.Value = int64(d.Value)
	}
	if spec.Target, err = model.ParseEffectTarget(d.Target); err != nil {
		return model.EffectSpec{}, err
	}
	if kind == model.EffectStatModifier {
		if spec.Stat, err = model.ParseStat(d.Stat); err != nil {
			return model.EffectSpec{}, err
		}
	}
	return spec, nil
}

func (d combatantDef) build() (model.CharacterSheet, error) {
	entity := "combatant " + d.ID
	el, err := model.ParseElement(or(d.Element, "physical"))
	if err != nil {
		return model.CharacterSheet{}, attribute(entity, err)
	}
	eq := d.Equipment.Equipment
	eq.Crit = model.RateFromFloat(d.Equipment.Crit)

	sheet := model.CharacterSheet{
		ID:        d.ID,
		Name:      or(d.Name, d.ID),
		Element:   el,
		Primary:   d.Primary,
		Equipment: eq,
		Skills:    slices.Clone(d.Skills),
	}
	if err := sheet.Validate(); err != nil {
		return model.CharacterSheet{}, err
	}
	return sheet, nil
}

// Skill returns the skill definition for id. Satisfies battle.SkillBook.
func (c *Catalog) Skill(id string) (*model.Skill, bool) {
	sk, ok := c.skills[id]
	return sk, ok
}

// Skills returns every skill id in catalog order.
func (c *Catalog) Skills() []string { return slices.Clone(c.skillIDs) }

// Combatants returns every combatant id in catalog order.
func (c *Catalog) Combatants() []string { return slices.Clone(c.sheetOrder) }

// Sheet returns the character sheet for id.
func (c *Catalog) Sheet(id string) (model.CharacterSheet, error) {
	s, ok := c.sheets[id]
	if !ok {
		return model.CharacterSheet{}, fmt.Errorf("%w %q", ErrUnknownSheet, id)
	}
	s.Skills = slices.Clone(s.Skills)
	return s, nil
}

// Enemy returns the sheet for id with its floor/difficulty scaling. The
// scaling is nil for combatants declared without an enemy block.
func (c *Catalog) Enemy(id string) (model.CharacterSheet, *battle.EnemyScaling, error) {
	s, err := c.Sheet(id)
	if err != nil {
		return model.CharacterSheet{}, nil, err
	}
	sc, ok := c.scaling[id]
	if !ok {
		return s, nil, nil
	}
	return s, &sc, nil
}

// Enemies returns the ids of combatants declared with an enemy block, in
// catalog order.
func (c *Catalog) Enemies() []string {
	var out []string
	for _, id := range c.sheetOrder {
		if _, ok := c.scaling[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func attribute(entity string, err error) error {
	var ce *model.ConfigError
	if errors.As(err, &ce) {
		return ce.In(entity)
	}
	return &model.ConfigError{Entity: entity, Reason: err.Error()}
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
