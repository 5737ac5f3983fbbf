package mtwist

import (
	"math"
)

const calibrationRounds = 1_000_000

var (
	// precision caches ClockPrecision in nanoseconds; -1 means not yet measured.
	precision = int64(-1)
)

// ClockPrecision returns the smallest non-zero difference between two consecutive Now() calls
// in nanoseconds. Expect 100ns on Windows and between 20ns and 100ns on Linux and macOS.
// The first call measures it; later calls return the cached value.
func ClockPrecision() int64 {
	if precision == int64(-1) {
		precision = calibrate()
	}
	return precision
}

func calibrate() int64 {
	minDiff := int64(math.MaxInt64)
	for range calibrationRounds {
		t1 := Now()
		t2 := Now()
		diff := Elapsed(t1, t2)
		if diff > 0 && diff < minDiff {
			minDiff = diff
		}
	}
	return minDiff
}

// TimeBatch runs fn batch times and returns the elapsed nanoseconds.
func TimeBatch(batch int, fn func()) int64 {
	start := Now()
	for range batch {
		fn()
	}
	return Elapsed(start, Now())
}
