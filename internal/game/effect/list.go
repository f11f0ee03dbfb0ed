// Package effect owns the buff/debuff lifecycle of a combatant: stacking,
// duration countdown, damage over time, crowd control and stat modifiers.
package effect

import (
	"log/slog"

	"github.com/udisondev/battlecore/internal/model"
)

const maxEffects = 32

// Buff is one timed modifier attached to a combatant.
type Buff struct {
	ID        uint64
	Kind      model.EffectKind
	Value     int64 // Rate for curse/reflection/stat modifier, flat for shield and DoT
	Remaining int   // full turn cycles left
	SourceID  string
	Stat      model.Stat // StatModifier only
}

// Active reports whether the buff still has duration left.
func (b Buff) Active() bool { return b.Remaining > 0 }

// List tracks the active effects of one combatant.
//
// Not safe for concurrent use: a List is owned by a Combatant, which is owned
// by exactly one session.
type List struct {
	buffs  []Buff
	nextID uint64
}

// NewList creates an empty List.
func NewList() *List {
	return &List{buffs: make([]Buff, 0, 8)}
}

// Add attaches b and returns the stored buff.
//
// Stacking: an existing buff of the same kind from the same source (and the
// same stat for modifiers) is refreshed to the new duration and keeps the
// value of larger magnitude. Shields never merge; each absorbs separately in
// the order applied. When the list is full the oldest effect is dropped.
func (l *List) Add(b Buff) Buff {
	if b.Kind != model.EffectShield {
		for i := range l.buffs {
			ex := &l.buffs[i]
			if ex.Kind == b.Kind && ex.SourceID == b.SourceID && ex.Stat == b.Stat && ex.Active() {
				ex.Remaining = b.Remaining
				ex.Value = stronger(ex.Value, b.Value)
				slog.Debug("effect refreshed", "kind", ex.Kind, "source", ex.SourceID, "remaining", ex.Remaining)
				return *ex
			}
		}
	}

	if len(l.buffs) >= maxEffects {
		slog.Debug("effect limit reached, removed oldest", "kind", l.buffs[0].Kind)
		l.buffs = append(l.buffs[:0], l.buffs[1:]...)
	}

	l.nextID++
	b.ID = l.nextID
	l.buffs = append(l.buffs, b)
	slog.Debug("effect applied", "kind", b.Kind, "value", b.Value, "remaining", b.Remaining, "source", b.SourceID)
	return b
}

// Has reports whether an active effect of kind is present.
func (l *List) Has(kind model.EffectKind) bool {
	for _, b := range l.buffs {
		if b.Kind == kind && b.Active() {
			return true
		}
	}
	return false
}

// Sum totals the values of active effects of kind.
func (l *List) Sum(kind model.EffectKind) int64 {
	var total int64
	for _, b := range l.buffs {
		if b.Kind == kind && b.Active() {
			total += b.Value
		}
	}
	return total
}

// Shields returns the remaining capacity of active shields, oldest first.
func (l *List) Shields() []int {
	var out []int
	for _, b := range l.buffs {
		if b.Kind == model.EffectShield && b.Active() {
			out = append(out, int(b.Value))
		}
	}
	return out
}

// DrainShields reduces shields by the absorbed amounts, indexed like
// Shields(). Shields consumed to zero are removed.
func (l *List) DrainShields(absorbed []int) {
	i := 0
	n := 0
	for _, b := range l.buffs {
		if b.Kind == model.EffectShield && b.Active() {
			if i < len(absorbed) {
				b.Value -= int64(absorbed[i])
			}
			i++
			if b.Value <= 0 {
				slog.Debug("shield broken", "source", b.SourceID)
				continue
			}
		}
		l.buffs[n] = b
		n++
	}
	l.buffs = l.buffs[:n]
}

// Dots returns active damage-over-time effects in application order.
func (l *List) Dots() []Buff {
	var out []Buff
	for _, b := range l.buffs {
		if b.Kind.IsDot() && b.Active() {
			out = append(out, b)
		}
	}
	return out
}

// Tick decrements every effect once and prunes the ones reaching zero.
// Returns the expired effects.
func (l *List) Tick() []Buff {
	var expired []Buff
	n := 0
	for _, b := range l.buffs {
		b.Remaining--
		if !b.Active() {
			expired = append(expired, b)
			slog.Debug("effect expired", "kind", b.Kind, "source", b.SourceID)
			continue
		}
		l.buffs[n] = b
		n++
	}
	l.buffs = l.buffs[:n]
	return expired
}

// Remove drops every effect of kind.
func (l *List) Remove(kind model.EffectKind) {
	n := 0
	for _, b := range l.buffs {
		if b.Kind != kind {
			l.buffs[n] = b
			n++
		}
	}
	l.buffs = l.buffs[:n]
}

// Snapshot returns a copy of the active effects.
func (l *List) Snapshot() []Buff {
	out := make([]Buff, 0, len(l.buffs))
	for _, b := range l.buffs {
		if b.Active() {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of active effects.
func (l *List) Len() int {
	n := 0
	for _, b := range l.buffs {
		if b.Active() {
			n++
		}
	}
	return n
}

func stronger(a, b int64) int64 {
	if abs(b) > abs(a) {
		return b
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
