package rng

import "fmt"

// Scripted replays a fixed list of values, one per draw. Values are taken
// modulo n so scripts can be written directly in basis points.
type Scripted struct {
	values []int
	pos    int
}

// NewScripted returns a source drawing values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

// IntN returns the next scripted value. It panics when the script runs out,
// which in a test means the code drew more rolls than expected.
func (s *Scripted) IntN(n int) int {
	if s.pos >= len(s.values) {
		panic(fmt.Sprintf("rng: scripted source exhausted after %d draws", s.pos))
	}
	v := s.values[s.pos]
	s.pos++
	return v % n
}

// Used returns how many values have been drawn.
func (s *Scripted) Used() int { return s.pos }

// Remaining returns how many values are left.
func (s *Scripted) Remaining() int { return len(s.values) - s.pos }
