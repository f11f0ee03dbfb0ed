package arena

import (
	"github.com/udisondev/battlecore/internal/game/battle"
)

// Rotation is a fixed skill cycle for each side.
//
// On cycle n a side starts looking at entry (n-1) mod len and takes the
// first skill it knows and can use: off cooldown, affordable, and for
// toggles not already on. A side with nothing usable (or an empty list) idles.
type Rotation struct {
	Player []string
	Enemy  []string
	Skills battle.SkillBook
}

func (r Rotation) Next(s *battle.Session) battle.Intent {
	n := s.Cycle()
	return battle.Intent{
		PlayerSkill: r.pick(r.Player, s.Player(), n),
		EnemySkill:  r.pick(r.Enemy, s.Enemy(), n),
	}
}

func (r Rotation) pick(list []string, c *battle.Combatant, n int) string {
	for i := range list {
		id := list[(n+i)%len(list)]
		if r.usable(c, id) {
			return id
		}
	}
	return ""
}

func (r Rotation) usable(c *battle.Combatant, id string) bool {
	if !c.Knows(id) || c.Cooldown(id) > 0 {
		return false
	}
	sk, ok := r.Skills.Skill(id)
	if !ok || sk == nil {
		return false
	}
	if sk.Toggle && c.Toggled(id) {
		return false
	}
	return c.Chakra() >= sk.ChakraCost
}
