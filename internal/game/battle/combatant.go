package battle

import (
	"slices"

	"github.com/udisondev/battlecore/internal/game/effect"
	"github.com/udisondev/battlecore/internal/game/scaling"
	"github.com/udisondev/battlecore/internal/game/stats"
	"github.com/udisondev/battlecore/internal/model"
)

// Combatant is one side of a battle session.
//
// Primary and derived stats are fixed at construction; only HP, chakra,
// effects, cooldowns, toggles and the per-turn flags change. A Combatant
// belongs to exactly one session and is never shared.
type Combatant struct {
	id      string
	name    string
	element model.Element
	primary model.Primary
	base    model.Derived
	skills  []string

	hp     int
	chakra int

	effects   *effect.List
	cooldowns map[string]int
	fresh     map[string]bool // cooldowns set this cycle, first reduced next cycle
	toggles   map[string]bool

	isFirstTurn      bool
	gutsUsedThisTurn bool
}

// NewCombatant validates sheet and resolves its derived stats. Fails with
// *model.ConfigError on malformed input.
func NewCombatant(sheet model.CharacterSheet) (*Combatant, error) {
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	d, err := stats.Resolve(sheet.Primary, sheet.Equipment)
	if err != nil {
		return nil, err
	}
	name := sheet.Name
	if name == "" {
		name = sheet.ID
	}
	return &Combatant{
		id:          sheet.ID,
		name:        name,
		element:     sheet.Element,
		primary:     sheet.Primary,
		base:        d,
		skills:      slices.Clone(sheet.Skills),
		hp:          d.MaxHP,
		chakra:      d.MaxChakra,
		effects:     effect.NewList(),
		cooldowns:   make(map[string]int),
		fresh:       make(map[string]bool),
		toggles:     make(map[string]bool),
		isFirstTurn: true,
	}, nil
}

// NewEnemy scales the sheet's primaries for floor and difficulty before
// building the combatant.
func NewEnemy(sheet model.CharacterSheet, floor, difficulty int) (*Combatant, error) {
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	sheet.Primary = scaling.Apply(sheet.Primary, floor, difficulty)
	return NewCombatant(sheet)
}

func (c *Combatant) ID() string             { return c.id }
func (c *Combatant) Name() string           { return c.name }
func (c *Combatant) Element() model.Element { return c.element }
func (c *Combatant) Primary() model.Primary { return c.primary }

// Base returns the derived stats without active modifiers.
func (c *Combatant) Base() model.Derived { return c.base }

// Stats returns the derived stats with active stat modifiers applied.
func (c *Combatant) Stats() model.Derived {
	return c.effects.ApplyModifiers(c.base)
}

func (c *Combatant) HP() int               { return c.hp }
func (c *Combatant) Chakra() int           { return c.chakra }
func (c *Combatant) Alive() bool           { return c.hp > 0 }
func (c *Combatant) Effects() *effect.List { return c.effects }

// Knows reports whether the combatant may use skill id. A sheet without a
// skill list may use any catalog skill.
func (c *Combatant) Knows(id string) bool {
	return len(c.skills) == 0 || slices.Contains(c.skills, id)
}

// MaxHP returns the current HP ceiling, including modifiers.
func (c *Combatant) MaxHP() int { return c.Stats().MaxHP }

// MaxChakra returns the current chakra ceiling, including modifiers.
func (c *Combatant) MaxChakra() int { return c.Stats().MaxChakra }

// Damage lowers HP by n. HP does not go below 0.
func (c *Combatant) Damage(n int) {
	c.hp = max(c.hp-max(n, 0), 0)
}

// Heal raises HP by n up to MaxHP and returns the amount restored.
func (c *Combatant) Heal(n int) int {
	before := c.hp
	c.hp = min(c.hp+max(n, 0), max(c.MaxHP(), c.hp))
	return c.hp - before
}

// RestoreChakra raises chakra by n up to MaxChakra and returns the amount
// restored.
func (c *Combatant) RestoreChakra(n int) int {
	before := c.chakra
	c.chakra = min(c.chakra+max(n, 0), max(c.MaxChakra(), c.chakra))
	return c.chakra - before
}

// SpendChakra pays n chakra. Returns false and pays nothing if short.
func (c *Combatant) SpendChakra(n int) bool {
	if n > c.chakra {
		return false
	}
	c.chakra -= n
	return true
}

// Cooldown returns the number of upcoming cycles in which skill id is still
// blocked. A skill with Cooldown N used in cycle c is usable again in c+N+1.
func (c *Combatant) Cooldown(id string) int { return c.cooldowns[id] }

func (c *Combatant) setCooldown(id string, cycles int) {
	if cycles > 0 {
		c.cooldowns[id] = cycles
		c.fresh[id] = true
	}
}

func (c *Combatant) reduceCooldowns() {
	defer clear(c.fresh)
	for id, left := range c.cooldowns {
		if c.fresh[id] {
			continue
		}
		if left <= 1 {
			delete(c.cooldowns, id)
			continue
		}
		c.cooldowns[id] = left - 1
	}
}

// Toggled reports whether toggle skill id is switched on.
func (c *Combatant) Toggled(id string) bool { return c.toggles[id] }

// activeToggles returns the ids of toggles switched on, sorted so upkeep is
// paid in a stable order.
func (c *Combatant) activeToggles() []string {
	ids := make([]string, 0, len(c.toggles))
	for id, on := range c.toggles {
		if on {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (c *Combatant) setToggle(id string, on bool) {
	if on {
		c.toggles[id] = true
		return
	}
	delete(c.toggles, id)
}

// Snapshot returns the externally visible state of the combatant.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		ID:        c.id,
		HP:        c.hp,
		MaxHP:     c.MaxHP(),
		Chakra:    c.chakra,
		MaxChakra: c.MaxChakra(),
	}
}
