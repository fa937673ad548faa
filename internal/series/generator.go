// Package series reconstructs deterministic pseudo-random price series
// from summary percent-change statistics. The generated points are
// endpoint-exact and bit-for-bit reproducible for fixed inputs, so
// repeated chart renders never jitter between refreshes.
package series

import "math"

// fallbackSeed replaces a zero seed, which would lock xorshift64* in an
// all-zero state.
const fallbackSeed uint64 = 0x9E3779B97F4A7C15

// rng is a xorshift64* generator. State is local to one Generate call.
type rng struct {
	state uint64
}

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = fallbackSeed
	}
	return &rng{state: seed}
}

func (r *rng) next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 2685821657736338717
}

// float64 returns a uniform draw in [0, 1).
func (r *rng) float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Harmonic mix weights. Three frequencies give the interior organic
// motion; the noise term breaks up the periodicity.
const (
	weightSlow  = 0.55 // 2 cycles across the range
	weightMid   = 0.30 // 5 cycles
	weightFast  = 0.15 // 11 cycles
	weightNoise = 0.20
)

// Generate reconstructs a series of count points running from start to
// end. The baseline is log-linear (geometric compounding consistent with
// a percent-change input); a seeded wiggle rides on top, tapered to zero
// at both endpoints so series[0] and series[count-1] hold exactly.
//
// Degraded inputs never panic: count < 2 or start <= 0 yields nil, and a
// non-finite or non-positive end/start ratio yields just {start, end}.
func Generate(start, end float64, count int, seed uint64, wiggleScale float64) []float64 {
	if count < 2 || start <= 0 {
		return nil
	}

	ratio := end / start
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return []float64{start, end}
	}

	r := newRNG(seed)
	phase1 := r.float64() * 2 * math.Pi
	phase2 := r.float64() * 2 * math.Pi
	phase3 := r.float64() * 2 * math.Pi

	out := make([]float64, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		base := start * math.Pow(ratio, t)

		w1 := math.Sin(2*math.Pi*2*t + phase1)
		w2 := math.Sin(2*math.Pi*5*t + phase2)
		w3 := math.Sin(2*math.Pi*11*t + phase3)
		noise := (r.float64() - 0.5) * 0.5
		wiggle := weightSlow*w1 + weightMid*w2 + weightFast*w3 + weightNoise*noise

		taper := 4 * t * (1 - t)
		out[i] = base * (1 + wiggleScale*taper*wiggle)
	}

	// Overwrite any floating-point drift at the boundaries.
	out[0] = start
	out[count-1] = end

	return out
}
