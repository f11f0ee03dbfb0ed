package battle

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/battlecore/internal/game/combat"
)

// Event names what a log entry records.
type Event string

const (
	EventAttack    Event = "attack"
	EventSupport   Event = "support"
	EventSelfHit   Event = "self_hit"
	EventSkipped   Event = "skipped"
	EventIdle      Event = "idle"
	EventStunned   Event = "stunned"
	EventConfused  Event = "confused"
	EventEffect    Event = "effect"
	EventResisted  Event = "resisted"
	EventExpired   Event = "expired"
	EventDot       Event = "dot"
	EventRegen     Event = "regen"
	EventChakra    Event = "chakra"
	EventUpkeep    Event = "upkeep"
	EventToggleOn  Event = "toggle_on"
	EventToggleOff Event = "toggle_off"
	EventHazard    Event = "hazard"
	EventGuts      Event = "guts"
	EventDeath     Event = "death"
	EventAborted   Event = "aborted"
)

// LogEntry is one record of the turn log.
type LogEntry struct {
	Seq      int
	Cycle    int
	Phase    Phase
	ActorID  string
	TargetID string
	SkillID  string
	Event    Event
	Detail   string // effect kind, skip reason
	Amount   int    // heal, chakra, DoT and hazard amounts
	Result   combat.DamageResult
}

// TurnLog is the append-only record of a session.
type TurnLog struct {
	entries []LogEntry
}

func (l *TurnLog) append(e LogEntry) LogEntry {
	e.Seq = len(l.entries) + 1
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of the log.
func (l *TurnLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *TurnLog) Len() int { return len(l.entries) }

// Digest returns the BLAKE2b-256 hash of the canonical encoding of every
// entry. Equal seeds and intents produce equal digests.
func (l *TurnLog) Digest() [32]byte {
	return Digest(l.entries)
}

// Digest hashes entries the way TurnLog.Digest does, for logs loaded from
// storage.
func Digest(entries []LogEntry) [32]byte {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes
	buf := make([]byte, 0, 128)
	for _, e := range entries {
		buf = appendEntry(buf[:0], e)
		h.Write(buf)
	}
	var sum [32]byte
	h.Sum(sum[:0])
	return sum
}

func appendEntry(b []byte, e LogEntry) []byte {
	b = binary.BigEndian.AppendUint64(b, uint64(e.Seq))
	b = binary.BigEndian.AppendUint64(b, uint64(e.Cycle))
	b = appendString(b, string(e.Phase))
	b = appendString(b, e.ActorID)
	b = appendString(b, e.TargetID)
	b = appendString(b, e.SkillID)
	b = appendString(b, string(e.Event))
	b = appendString(b, e.Detail)
	b = binary.BigEndian.AppendUint64(b, uint64(int64(e.Amount)))

	r := e.Result
	b = append(b, flags(r.Hit, r.Evaded, r.IsCrit))
	b = binary.BigEndian.AppendUint64(b, uint64(int64(r.FinalDamage)))
	b = binary.BigEndian.AppendUint64(b, uint64(int64(r.Reflected)))
	b = binary.BigEndian.AppendUint64(b, uint64(int64(r.ElementMultiplier)))
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

func flags(bits ...bool) byte {
	var f byte
	for i, v := range bits {
		if v {
			f |= 1 << i
		}
	}
	return f
}
