// Package scaling computes enemy stat scaling from dungeon floor and
// difficulty.
package scaling

import "github.com/udisondev/battlecore/internal/model"

const (
	perFloor       = model.Rate(800) // +8% per floor
	baseDifficulty = model.Rate(5000)
	perDifficulty  = model.Rate(50) // difficulty/200
)

// Factor returns (1 + floor×0.08) × (0.50 + difficulty/200).
// Negative inputs are treated as 0.
func Factor(floor, difficulty int) model.Rate {
	floor = max(floor, 0)
	difficulty = max(difficulty, 0)
	f := model.RateOne + model.Rate(floor)*perFloor
	d := baseDifficulty + model.Rate(difficulty)*perDifficulty
	return f.Mul(d)
}

// Apply scales every primary stat by Factor, flooring and clamping the
// result into the valid primary range.
func Apply(p model.Primary, floor, difficulty int) model.Primary {
	factor := Factor(floor, difficulty)
	for _, f := range p.Fields() {
		*f.Value = min(max(factor.Apply(*f.Value), model.MinPrimary), model.MaxPrimary)
	}
	return p
}
