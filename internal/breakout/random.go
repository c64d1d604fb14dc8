package breakout

import "math/rand/v2"

// RandomSource supplies uniform draws in [0, 1).
// Launch angles and powerup rolls consume exactly one draw each.
type RandomSource interface {
	Float64() float64
}

// NewRandom returns a seeded PCG source. Equal seeds give equal sequences.
func NewRandom(seed int64) RandomSource {
	s := uint64(seed) //#nosec G115 -- seed bits are reinterpreted, not converted
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
