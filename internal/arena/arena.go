// Package arena runs many independent battle sessions concurrently.
//
// Every session is created, driven and discarded inside one goroutine; the
// only shared state is the pre-sized result slice, written by index.
package arena

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlecore/internal/game/battle"
)

// DefaultMaxCycles bounds a session when Runner.MaxCycles is not set.
const DefaultMaxCycles = 200

// IntentSource picks the intent for the next cycle of s. It is called from
// the goroutine driving s only.
type IntentSource interface {
	Next(s *battle.Session) battle.Intent
}

// IntentFunc adapts a function to IntentSource.
type IntentFunc func(s *battle.Session) battle.Intent

func (f IntentFunc) Next(s *battle.Session) battle.Intent { return f(s) }

// Match is one session to run.
type Match struct {
	Config  battle.SessionConfig
	Intents IntentSource
}

// ResultSink receives each finished outcome. Implementations must be safe
// for concurrent use.
type ResultSink interface {
	SaveOutcome(ctx context.Context, out battle.Outcome) error
}

// Runner runs matches on a bounded number of goroutines.
type Runner struct {
	Workers   int // <= 0: one
	MaxCycles int // <= 0: DefaultMaxCycles
	Sink      ResultSink
}

// Run plays every match and returns the outcomes in match order. The first
// error (a bad session config, an intent naming an unknown skill, a sink
// failure or ctx cancellation) cancels the remaining matches; outcomes
// already produced are still returned.
func (r *Runner) Run(ctx context.Context, matches []Match) ([]battle.Outcome, error) {
	results := make([]battle.Outcome, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i, m := range matches {
		g.Go(func() error {
			out, err := r.play(gctx, m)
			results[i] = out
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			if r.Sink == nil {
				return nil
			}
			if err := r.Sink.SaveOutcome(gctx, out); err != nil {
				return fmt.Errorf("saving outcome %s: %w", out.SessionID, err)
			}
			return nil
		})
	}
	err := g.Wait()

	var st Stats
	for _, out := range results {
		st.Add(out)
	}
	slog.Info("arena finished",
		"matches", len(matches),
		"victories", st.Victories,
		"defeats", st.Defeats,
		"aborted", st.Aborted,
		"avg_cycles", st.AvgCycles())

	if err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) play(ctx context.Context, m Match) (battle.Outcome, error) {
	s, err := battle.NewSession(m.Config)
	if err != nil {
		return battle.Outcome{}, err
	}
	limit := r.MaxCycles
	if limit <= 0 {
		limit = DefaultMaxCycles
	}

	for !s.State().Terminal() {
		if s.Cycle() >= limit {
			s.Abort("max cycles reached")
			break
		}
		if _, err := s.RunCycle(ctx, m.Intents.Next(s)); err != nil {
			return s.Outcome(), err
		}
	}
	return s.Outcome(), nil
}

// Stats aggregates terminal states over a batch of outcomes.
type Stats struct {
	Victories int
	Defeats   int
	Aborted   int
	Cycles    int
	Sessions  int
}

// Add counts out. Outcomes of sessions that never started are ignored.
func (s *Stats) Add(out battle.Outcome) {
	if out.Cycles == 0 && !out.State.Terminal() {
		return
	}
	s.Sessions++
	s.Cycles += out.Cycles
	switch out.State {
	case battle.StateVictory:
		s.Victories++
	case battle.StateDefeat:
		s.Defeats++
	case battle.StateAborted:
		s.Aborted++
	}
}

// AvgCycles is the mean session length, 0 for an empty batch.
func (s Stats) AvgCycles() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Sessions)
}
