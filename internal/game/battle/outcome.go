package battle

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ErrDigestMismatch means a replayed log does not match the recorded one.
var ErrDigestMismatch = errors.New("turn log digest mismatch")

// Snapshot is a combatant's state at the end of a session.
type Snapshot struct {
	ID        string
	HP        int
	MaxHP     int
	Chakra    int
	MaxChakra int
}

// Outcome is what a session hands to external persistence and reward
// systems.
type Outcome struct {
	SessionID uuid.UUID
	Seed      uint64
	State     State
	Cycles    int
	Player    Snapshot
	Enemy     Snapshot
	Intents   []Intent
	Log       []LogEntry
	Digest    [32]byte
	Draws     uint64
}

// Outcome returns the current result of the session. It may be called on a
// session still in progress.
func (s *Session) Outcome() Outcome {
	return Outcome{
		SessionID: s.id,
		Seed:      s.seed,
		State:     s.state,
		Cycles:    s.cycle,
		Player:    s.player.Snapshot(),
		Enemy:     s.enemy.Snapshot(),
		Intents:   slices.Clone(s.intents),
		Log:       s.log.Entries(),
		Digest:    s.log.Digest(),
		Draws:     s.stream.Draws(),
	}
}

// Replay re-runs a session from cfg (the same seed) and its intent log.
// It stops early if the replayed session ends before the intents run out.
func Replay(ctx context.Context, cfg SessionConfig, intents []Intent) (Outcome, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return Outcome{}, fmt.Errorf("replay: %w", err)
	}
	for i, in := range intents {
		if s.state.Terminal() {
			break
		}
		if _, err := s.RunCycle(ctx, in); err != nil {
			return s.Outcome(), fmt.Errorf("replay cycle %d: %w", i+1, err)
		}
	}
	return s.Outcome(), nil
}

// Verify replays a recorded outcome and checks that it reproduces the same
// turn log. cfg must carry the sheets and skills the session started with;
// its seed and id are taken from rec.
//
// An aborted session is verified up to the abort. If it was cancelled in the
// middle of a cycle, that partial cycle is not checked.
func Verify(ctx context.Context, cfg SessionConfig, rec Outcome) error {
	if Digest(rec.Log) != rec.Digest {
		return fmt.Errorf("recorded log of %s: %w", rec.SessionID, ErrDigestMismatch)
	}

	intents := rec.Intents
	want := rec.Log
	if rec.State == StateAborted && len(want) > 0 {
		last := want[len(want)-1]
		want = want[:len(want)-1]
		if last.Phase != "" && len(intents) > 0 {
			intents = intents[:len(intents)-1]
			want = slices.DeleteFunc(slices.Clone(want), func(e LogEntry) bool { return e.Cycle >= last.Cycle })
		}
	}

	cfg.ID = rec.SessionID
	cfg.Seed = rec.Seed
	got, err := Replay(ctx, cfg, intents)
	if err != nil {
		return err
	}
	if got.Digest != Digest(want) {
		return fmt.Errorf("replay of %s: %w", rec.SessionID, ErrDigestMismatch)
	}
	return nil
}
