package effect

import (
	"github.com/udisondev/battlecore/internal/game/stats"
	"github.com/udisondev/battlecore/internal/model"
)

// StatBonus returns the summed relative bonus of active stat modifiers on
// stat (2000 == +20%, negative values are debuffs).
func (l *List) StatBonus(stat model.Stat) model.Rate {
	var total model.Rate
	for _, b := range l.buffs {
		if b.Kind == model.EffectStatModifier && b.Stat == stat && b.Active() {
			total += model.Rate(b.Value)
		}
	}
	return total
}

// ApplyModifiers returns d with every active stat modifier applied. Bonuses on
// the same stat are summed before being applied once; the result is clamped
// to the caps of stats.Cap.
func (l *List) ApplyModifiers(d model.Derived) model.Derived {
	seen := make(map[model.Stat]bool, 4)
	for _, b := range l.buffs {
		if b.Kind != model.EffectStatModifier || !b.Active() || seen[b.Stat] {
			continue
		}
		seen[b.Stat] = true
		d = d.Scaled(b.Stat, l.StatBonus(b.Stat))
	}
	return stats.Cap(d)
}
