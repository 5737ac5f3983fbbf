package mtwist

import (
	"math"
)

const (
	n64 = 312
	m64 = 156

	upperMask64 uint64 = 0xffffffff80000000 // 33 most significant bits
	lowerMask64 uint64 = 0x000000007fffffff // 31 least significant bits

	a64 uint64 = 0xb5026f5aa96619e9

	u64 = 29
	d64 = 0x5555555555555555
	s64 = 17
	b64 = 0x71d67fffeda60000
	t64 = 37
	c64 = 0xfff7eee000000000
	l64 = 43

	f64 uint64 = 0x5851f42d4c957f2d // 6364136223846793005

	max64 int64 = math.MaxInt64
)

// MT64 is a Deterministic Pseudo-Random Number Generator based on the 64-bit Mersenne Twister
// MT19937-64 (see http://www.math.sci.hiroshima-u.ac.jp/~m-mat/MT/emt64.html).
// It behaves like MT32 with 64-bit words: same period of 2^19937-1, same determinism guarantees,
// not cryptographically secure, not thread-safe. Its state is 312 words (about 2.5 KB).
//
// The zero value is not usable; create generators with New64 or call Seed before the first read.
type MT64 struct {
	words  [n64]uint64
	index  int
	seeded bool
	twists uint64 // for debugging purposes
}

// New64 returns a generator seeded with seed. Every int64 is a legal seed.
func New64(seed int64) *MT64 {
	g := &MT64{}
	g.Seed(seed)
	return g
}

// Seed resets the generator to the start of the stream defined by seed.
// Together with Uint64 and Int63 this makes *MT64 a math/rand.Source64.
func (g *MT64) Seed(seed int64) {
	g.words[0] = uint64(seed)
	for i := 1; i < n64; i++ {
		prev := g.words[i-1]
		g.words[i] = f64*(prev^prev>>62) + uint64(i)
	}
	g.index = n64
	g.seeded = true
}

func (g *MT64) twist() {
	for i := 0; i < n64; i++ {
		y := (g.words[i] & upperMask64) + (g.words[(i+1)%n64] & lowerMask64)
		g.words[i] = g.words[(i+m64)%n64] ^ y>>1
		if y&1 != 0 {
			g.words[i] ^= a64
		}
	}
	g.index = 0
	g.twists++
}

// Twists returns how many times the state has been regenerated since the generator was created.
func (g *MT64) Twists() uint64 {
	return g.twists
}

// Uint64 returns the next tempered 64-bit word of the sequence.
// It panics with ErrUnseeded if the generator was never seeded.
func (g *MT64) Uint64() uint64 {
	if !g.seeded {
		panic(ErrUnseeded)
	}
	if g.index >= n64 {
		g.twist()
	}

	y := g.words[g.index]
	y ^= y >> u64 & d64
	y ^= y << s64 & b64
	y ^= y << t64 & c64
	y ^= y >> l64

	g.index++
	return y
}

// Next returns a uniformly distributed pseudo-random number in the half-open interval [0,n).
// Draws x in [0, 2^63-1] are rejected while x >= MaxInt64 - MaxInt64%n, which removes the
// modulo bias. A draw is rejected with a probability below n/2^63; the loop is unbounded.
// Next(1) always consumes exactly one word and returns 0.
// It panics with an error wrapping ErrInvalidArgument if n <= 0.
func (g *MT64) Next(n int64) int64 {
	if n <= 0 {
		panic(invalidArgument("Next: divisor %d is not positive", n))
	}
	if n == 1 {
		g.Uint64()
		return 0
	}
	limit := max64 - max64%n
	for {
		x := int64(g.Uint64() >> 1)
		if x < limit {
			return x % n
		}
	}
}

// Nextf returns a uniformly distributed float32 in [0.0, 1.0) with a resolution of 2^-24.
func (g *MT64) Nextf() float32 {
	i := g.Next(floatChunks)
	return float32(i) / floatChunks
}

// Range returns a uniformly distributed int64 in the half-open interval [lo,hi).
// It panics with an error wrapping ErrInvalidArgument if hi <= lo or if hi-lo overflows.
func (g *MT64) Range(lo, hi int64) int64 {
	n := hi - lo
	if hi <= lo || n <= 0 {
		panic(invalidArgument("Range: [%d, %d) is empty or wider than MaxInt64", lo, hi))
	}
	return g.Next(n) + lo
}

// Rangef returns a uniformly distributed float32 in the half-open interval [lo,hi).
// It panics with an error wrapping ErrInvalidArgument unless hi > lo and hi-lo is finite.
func (g *MT64) Rangef(lo, hi float32) float32 {
	checkRangef(lo, hi)
	return rescale(g.Nextf(), lo, hi)
}
