package model

import "math"

// Rate is a fixed-point fraction in basis points: RateOne (10000) == 1.0 == 100%.
// All combat math runs on Rate so that results never depend on float rounding.
type Rate int64

// RateOne is the basis-point scale of Rate.
const RateOne Rate = 10000

// Pct returns a Rate for a whole percent value (Pct(75) == 0.75).
func Pct(p int64) Rate {
	return Rate(p * 100)
}

// RateFromFloat converts a float ratio (1.5 → 15000) rounding to the nearest
// basis point. Only used at load time; runtime math never touches floats.
func RateFromFloat(f float64) Rate {
	return Rate(math.Round(f * float64(RateOne)))
}

// Float returns the ratio as float64 (display and logs only).
func (r Rate) Float() float64 {
	return float64(r) / float64(RateOne)
}

// Apply returns floor(v × r).
func (r Rate) Apply(v int) int {
	return int(FloorDiv(int64(v)*int64(r), int64(RateOne)))
}

// Mul returns floor(r × o) as a Rate.
func (r Rate) Mul(o Rate) Rate {
	return Rate(FloorDiv(int64(r)*int64(o), int64(RateOne)))
}

// Clamp bounds r into [lo, hi].
func (r Rate) Clamp(lo, hi Rate) Rate {
	return min(max(r, lo), hi)
}

// SoftCap returns stat/(stat+c) as a Rate. For stat >= 0 and c > 0 the result
// stays strictly below RateOne.
func SoftCap(stat, c int) Rate {
	return Rate(FloorDiv(int64(stat)*int64(RateOne), int64(stat+c)))
}

// FloorDiv is integer division rounding toward negative infinity.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
