// Package rng provides the seeded random source used for every hit, crit,
// status and guts roll of a battle session.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/battlecore/internal/model"
)

// Source is the subset of a random generator the engine draws from.
type Source interface {
	IntN(n int) int
}

// Stream is a PCG generator seeded once per session. It counts draws so a
// replay can be checked for the same stream position.
//
// Not safe for concurrent use: a stream belongs to exactly one session.
type Stream struct {
	seed  uint64
	r     *rand.Rand
	draws uint64
}

// New returns a stream for seed. Equal seeds yield equal sequences.
func New(seed uint64) *Stream {
	return &Stream{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// IntN returns a uniform int in [0, n).
func (s *Stream) IntN(n int) int {
	s.draws++
	return s.r.IntN(n)
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 { return s.seed }

// Draws returns how many values have been drawn.
func (s *Stream) Draws() uint64 { return s.draws }

// Scale of a roll: a roll is a uniform value in [0, 100%) at basis-point
// resolution.
const Scale = int(model.RateOne)

// Draw consumes one roll.
func Draw(src Source) model.Rate {
	return model.Rate(src.IntN(Scale))
}

// Roll consumes one roll and reports whether it landed under chance.
func Roll(src Source, chance model.Rate) bool {
	return Draw(src) < chance
}

// NewSeed returns a high-entropy seed for initiators that do not supply one.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
