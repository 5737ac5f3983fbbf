package mtwist

import (
	"math"
)

const (
	n32 = 624
	m32 = 397

	upperMask32 uint32 = 0x80000000 // most significant w-r bits, r = 31
	lowerMask32 uint32 = 0x7fffffff // least significant r bits

	a32 uint32 = 0x9908b0df // twist matrix

	// tempering shifts and masks
	u32 = 11
	d32 = 0xffffffff
	s32 = 7
	b32 = 0x9d2c5680
	t32 = 15
	c32 = 0xefc60000
	l32 = 18

	f32 uint32 = 0x6c078965 // seeding multiplier (1812433253)

	max32 int32 = math.MaxInt32

	// floatChunks is the number of equally spaced values Nextf can return. 2^24 fills the
	// mantissa of a float32 exactly, for both word widths.
	floatChunks = 1 << 24
)

// MT32 is a Deterministic Pseudo-Random Number Generator based on the 32-bit Mersenne Twister
// MT19937 (see https://en.wikipedia.org/wiki/Mersenne_Twister).
// This random number generator is deterministic in the sequence of numbers it generates. It has a period of 2^19937-1.
// Two generators created with the same seed produce identical streams for identical call sequences.
// This random number generator is not deterministic in its runtime: every 624th word costs a full twist of the state,
// and the bounded functions may reject draws.
// This random number generator is not cryptographically secure. Observing 624 consecutive words reveals the state.
// This random number generator is not thread-safe. Use one instance per goroutine or guard it with a mutex.
// This random number generator has a memory footprint of about 2.5 KB.
//
// The zero value is not usable; create generators with New32 or call Seed before the first read.
type MT32 struct {
	words  [n32]uint32
	index  int
	seeded bool
	twists uint64 // for debugging purposes
}

// New32 returns a generator seeded with seed. Every int32 is a legal seed, including zero
// and negative values, which are taken as raw bit patterns.
func New32(seed int32) *MT32 {
	g := &MT32{}
	g.Seed(seed)
	return g
}

// Seed resets the generator to the start of the stream defined by seed.
// The state is mixed by a twist on the first read after seeding.
func (g *MT32) Seed(seed int32) {
	g.words[0] = uint32(seed)
	for i := 1; i < n32; i++ {
		prev := g.words[i-1]
		g.words[i] = f32*(prev^prev>>30) + uint32(i)
	}
	g.index = n32
	g.seeded = true
}

// twist regenerates all words in place, in ascending order. For i >= n-m the recurrence
// reads words that were already rewritten in this pass; MT19937 is defined that way.
func (g *MT32) twist() {
	for i := 0; i < n32; i++ {
		y := (g.words[i] & upperMask32) + (g.words[(i+1)%n32] & lowerMask32)
		g.words[i] = g.words[(i+m32)%n32] ^ y>>1
		if y&1 != 0 {
			g.words[i] ^= a32
		}
	}
	g.index = 0
	g.twists++
}

// Twists returns how many times the state has been regenerated since the generator was created.
func (g *MT32) Twists() uint64 {
	return g.twists
}

// Uint32 returns the next tempered 32-bit word of the sequence.
// It panics with ErrUnseeded if the generator was never seeded.
func (g *MT32) Uint32() uint32 {
	if !g.seeded {
		panic(ErrUnseeded)
	}
	if g.index >= n32 {
		g.twist()
	}

	y := g.words[g.index]
	y ^= y >> u32 & d32
	y ^= y << s32 & b32
	y ^= y << t32 & c32
	y ^= y >> l32

	g.index++
	return y
}

// Next returns a uniformly distributed pseudo-random number in the half-open interval [0,n).
// It compensates for modulo bias by rejection sampling: a draw x in [0, 2^31-1] is discarded
// while x >= MaxInt32 - MaxInt32%n. The expected number of draws is close to one, as a draw is
// rejected with a probability below n/2^31. The loop has no upper bound on its iterations.
// Next(1) always consumes exactly one word and returns 0.
// It panics with an error wrapping ErrInvalidArgument if n <= 0.
func (g *MT32) Next(n int32) int32 {
	if n <= 0 {
		panic(invalidArgument("Next: divisor %d is not positive", n))
	}
	if n == 1 {
		// the limit is MaxInt32 here, so the loop would reject the draw MaxInt32
		g.Uint32()
		return 0
	}
	limit := max32 - max32%n
	for {
		x := int32(g.Uint32() >> 1)
		if x < limit {
			return x % n
		}
	}
}

// Nextf returns a uniformly distributed float32 in [0.0, 1.0) with a resolution of 2^-24.
// This function will never return 1.0.
func (g *MT32) Nextf() float32 {
	i := g.Next(floatChunks)
	return float32(i) / floatChunks
}

// Range returns a uniformly distributed int32 in the half-open interval [lo,hi).
// It panics with an error wrapping ErrInvalidArgument if hi <= lo or if hi-lo does not fit
// into an int32.
func (g *MT32) Range(lo, hi int32) int32 {
	n := hi - lo
	if hi <= lo || n <= 0 {
		panic(invalidArgument("Range: [%d, %d) is empty or wider than MaxInt32", lo, hi))
	}
	return g.Next(n) + lo
}

// Rangef returns a uniformly distributed float32 in the half-open interval [lo,hi), computed as
// Nextf()*(hi-lo)+lo.
// It panics with an error wrapping ErrInvalidArgument unless hi > lo and hi-lo is finite.
func (g *MT32) Rangef(lo, hi float32) float32 {
	checkRangef(lo, hi)
	return rescale(g.Nextf(), lo, hi)
}

func checkRangef(lo, hi float32) {
	if !(hi > lo) || math.IsInf(float64(hi-lo), 0) {
		panic(invalidArgument("Rangef: [%g, %g) is empty or not finite", lo, hi))
	}
}

// rescale maps f from [0,1) to [lo,hi). Rounding may land on hi for wide spans; such
// results are moved to the largest float32 below hi.
func rescale(f, lo, hi float32) float32 {
	r := f*(hi-lo) + lo
	if r >= hi {
		r = math.Nextafter32(hi, lo)
	}
	return r
}
