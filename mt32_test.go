package mtwist

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference values from init_genrand() of the MT19937 reference implementation
// (http://www.math.sci.hiroshima-u.ac.jp/~m-mat/MT/MT2002/emt19937ar.html).
func TestMT32_ReferenceVectorSeed1(t *testing.T) {
	want := []uint32{
		1791095845, 4282876139, 3093770124, 4005303368, 491263,
		550290313, 1298508491, 4290846341, 630311759, 1013994432,
	}
	g := New32(1)
	for i, w := range want {
		got := g.Uint32()
		assert.Equal(t, w, got, "incorrect value #%d", i)
	}
}

func TestMT32_ReferenceVectorDefaultSeed(t *testing.T) {
	g := New32(5489)
	assert.Equal(t, uint32(3499211612), g.Uint32())
	assert.Equal(t, uint32(581869302), g.Uint32())
	assert.Equal(t, uint32(3890346734), g.Uint32())

	// 10000th value as per https://en.cppreference.com/w/cpp/numeric/random/mersenne_twister_engine
	for i := 3; i < 9999; i++ {
		_ = g.Uint32()
	}
	assert.Equal(t, uint32(4123659995), g.Uint32())
}

func TestMT32_NegativeSeedIsBitPattern(t *testing.T) {
	g := New32(-1)
	assert.Equal(t, []uint32{419326371, 479346978, 3918654476}, []uint32{g.Uint32(), g.Uint32(), g.Uint32()})

	h := New32(int32(math.MinInt32))
	assert.NotPanics(t, func() { _ = h.Uint32() })
}

func TestMT32_TwistBoundary(t *testing.T) {
	g := New32(5489)
	assert.Equal(t, uint64(0), g.Twists(), "seeding must not twist")
	assert.Equal(t, n32, g.index)

	var last uint32
	for range n32 {
		last = g.Uint32()
	}
	assert.Equal(t, uint64(1), g.Twists(), "exactly one twist after N reads")
	assert.Equal(t, n32, g.index)
	assert.Equal(t, uint32(4020325887), last)

	first := g.Uint32()
	assert.Equal(t, uint64(2), g.Twists(), "read N+1 twists again")
	assert.Equal(t, 1, g.index)
	assert.Equal(t, uint32(4178893912), first)
}

func TestMT32_Reseed(t *testing.T) {
	g := New32(1)
	for range 1000 {
		_ = g.Uint32()
	}
	g.Seed(1)
	assert.Equal(t, uint32(1791095845), g.Uint32())
}

func TestMT32_Unseeded(t *testing.T) {
	var g MT32
	assert.PanicsWithValue(t, ErrUnseeded, func() { _ = g.Uint32() })
	assert.PanicsWithValue(t, ErrUnseeded, func() { _ = g.Next(10) })
	assert.PanicsWithValue(t, ErrUnseeded, func() { _ = g.Nextf() })

	g.Seed(5489)
	assert.Equal(t, uint32(3499211612), g.Uint32())
}

func TestMT32_Determinism(t *testing.T) {
	g1 := New32(0x12345678)
	g2 := New32(0x12345678) // two different instances with the same seed
	const limit = 1_000_000
	for i := range limit {
		v1 := g1.Uint32()
		v2 := g2.Uint32()
		if v1 != v2 {
			t.Fatalf("out of sync: values not equal in round %d", i)
		}
	}
	_ = g2.Uint32() // skip one value to get both generators out of sync
	equal := 0
	for range limit {
		if g1.Uint32() == g2.Uint32() {
			equal++
		}
	}
	assert.Less(t, equal, 10, "out-of-sync streams should almost never agree")
	_ = g1.Uint32() // back in sync
	for i := range limit {
		if g1.Next(1000) != g2.Next(1000) {
			t.Fatalf("out of sync: Next not equal in round %d", i)
		}
	}
}

func TestMT32_NextReference(t *testing.T) {
	g := New32(5489)
	got := make([]int32, 10)
	for i := range got {
		got[i] = g.Next(10)
	}
	assert.Equal(t, []int32{6, 1, 7, 2, 2, 5, 4, 2, 9, 1}, got)
}

func TestMT32_NextRange(t *testing.T) {
	cases := []int32{1, 2, 3, 7, 10, 64, 1000, 1 << 24, math.MaxInt32 / 2, math.MaxInt32 - 1, math.MaxInt32}
	for _, n := range cases {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			g := New32(int32(n))
			for range 100_000 {
				v := g.Next(n)
				if v < 0 || v >= n {
					t.Fatalf("Next(%d) out of range: %d", n, v)
				}
			}
		})
	}
}

func TestMT32_NextOneIsZero(t *testing.T) {
	g := New32(7)
	for range 1000 {
		require.Equal(t, int32(0), g.Next(1))
	}
}

func TestMT32_NextOneConsumesOneWord(t *testing.T) {
	g := New32(1)
	g.Uint32() // forces the first twist
	// 0x12dd9bb3 tempers to 0xffffffff, the only word whose draw equals MaxInt32
	g.words[n32-1] = 0x12dd9bb3
	g.index = n32 - 1
	require.Equal(t, int32(0), g.Next(1))
	assert.Equal(t, n32, g.index)
	assert.Equal(t, uint64(1), g.Twists())

	g.index = n32 - 1
	require.Equal(t, uint32(0xffffffff), g.Uint32())
}

func TestMT32_NextUniformity(t *testing.T) {
	const n = 7
	const samples = 1_000_000
	g := New32(0x5eed)
	counts := make([]uint64, n)
	for range samples {
		counts[g.Next(n)]++
	}
	stat, df, err := ChiSquare(counts)
	require.NoError(t, err)
	assert.Equal(t, n-1, df)
	assert.Less(t, stat, ChiSquareCritical999(df), "counts %v are not uniform", counts)
}

func TestMT32_NextInvalidDivisor(t *testing.T) {
	g := New32(1)
	for _, n := range []int32{0, -1, math.MinInt32} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "Next(%d) should panic", n)
				err, ok := r.(error)
				require.True(t, ok, "panic value should be an error, got %T", r)
				assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
			}()
			_ = g.Next(n)
		}()
	}
}

func TestMT32_NextfBounds(t *testing.T) {
	g := New32(0x1234)
	var sum float64
	const samples = 1_000_000
	for range samples {
		x := g.Nextf()
		if x < 0 || x >= 1 || math.IsNaN(float64(x)) {
			t.Fatalf("Nextf out of range: %v", x)
		}
		sum += float64(x)
	}
	mean := sum / samples
	assert.InDelta(t, 0.5, mean, 0.01)
}

func TestMT32_NextfReference(t *testing.T) {
	g := New32(5489)
	assert.Equal(t, float32(0.2846325635910034), g.Nextf())
	assert.Equal(t, float32(0.3410565257072449), g.Nextf())
	assert.Equal(t, float32(0.9413675665855408), g.Nextf())
}

func TestMT32_RangeAffineLaw(t *testing.T) {
	cases := []struct{ lo, hi int32 }{
		{-5, 5},
		{0, 1},
		{100, 107},
		{math.MinInt32, -1},
		{-1000, math.MaxInt32 - 1000},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("[%d,%d)", c.lo, c.hi), func(t *testing.T) {
			g1 := New32(99)
			g2 := New32(99)
			for range 10_000 {
				r := g1.Range(c.lo, c.hi)
				require.True(t, r >= c.lo && r < c.hi, "Range out of bounds: %d", r)
				require.Equal(t, g2.Next(c.hi-c.lo), r-c.lo)
			}
		})
	}

	g := New32(5489)
	got := make([]int32, 10)
	for i := range got {
		got[i] = g.Range(-5, 5)
	}
	assert.Equal(t, []int32{1, -4, 2, -3, -3, 0, -1, -3, 4, -4}, got)
}

func TestMT32_RangeInvalid(t *testing.T) {
	g := New32(1)
	cases := []struct{ lo, hi int32 }{
		{5, 5},
		{6, 5},
		{math.MinInt32, math.MaxInt32}, // span does not fit into an int32
		{-1, math.MaxInt32},
	}
	for _, c := range cases {
		assert.Panics(t, func() { _ = g.Range(c.lo, c.hi) }, "Range(%d, %d)", c.lo, c.hi)
	}
}

func TestMT32_Rangef(t *testing.T) {
	g := New32(42)
	for range 100_000 {
		x := g.Rangef(-2.5, 7.5)
		if x < -2.5 || x >= 7.5 {
			t.Fatalf("Rangef out of range: %v", x)
		}
	}
	for range 100_000 {
		x := g.Rangef(1, math.Nextafter32(1, 2))
		require.Equal(t, float32(1), x)
	}
	for range 100_000 {
		x := g.Rangef(-math.MaxFloat32/2, math.MaxFloat32/2)
		require.Less(t, x, float32(math.MaxFloat32/2))
	}

	nan := float32(math.NaN())
	assert.Panics(t, func() { _ = g.Rangef(1, 1) })
	assert.Panics(t, func() { _ = g.Rangef(2, 1) })
	assert.Panics(t, func() { _ = g.Rangef(nan, 1) })
	assert.Panics(t, func() { _ = g.Rangef(-math.MaxFloat32, math.MaxFloat32) })
}

func BenchmarkMT32_Uint32(b *testing.B) {
	g := New32(5489)
	for b.Loop() {
		g.Uint32()
	}
}

func BenchmarkMT32_Next(b *testing.B) {
	g := New32(5489)
	for b.Loop() {
		g.Next(1000)
	}
}

func BenchmarkMT32_Seed(b *testing.B) {
	g := New32(5489)
	for b.Loop() {
		g.Seed(12341324)
	}
}
