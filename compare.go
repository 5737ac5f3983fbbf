package mtwist

import (
	"fmt"
	"math"
	"slices"
)

type RTcomparisonResult struct {
	RelativeSpeedupSampleAvsSampleB float64
	Confidence                      float64
}

const MinimumDataPoints = 11

// CompareRuntimes compares two samples of runtimes (in float64, e.g., nanoseconds per batch)
// and computes the confidence that sample A is faster than sample B by at least
// the specified relative speedups. The reps parameter sets the number of bootstrap
// repetitions (higher values yield more precise results but take longer to compute).
// Resampling is driven by an MT64 seeded with seed, so identical inputs give identical results.
// If there are not enough data points in either sample, an error is returned.
func CompareRuntimes(sampleA, sampleB []float64, relativeSpeedupsToTest []float64, reps uint64, seed int64) (result []RTcomparisonResult, err error) {
	if len(sampleA) < MinimumDataPoints || len(sampleB) < MinimumDataPoints {
		return []RTcomparisonResult{}, fmt.Errorf("not enough data points: need at least %d runtimes for each of A and B, got %d and %d",
			MinimumDataPoints, len(sampleA), len(sampleB))
	}
	if len(relativeSpeedupsToTest) == 0 {
		relativeSpeedupsToTest = []float64{0.0}
	}
	thresholds := slices.Clone(relativeSpeedupsToTest)
	slices.Sort(thresholds)

	conf := BootstrapConfidence(sampleA, sampleB, thresholds, reps, seed)

	for _, t := range thresholds {
		result = append(result, RTcomparisonResult{
			RelativeSpeedupSampleAvsSampleB: t,
			Confidence:                      conf[t],
		})
	}
	return result, nil
}

// bootstrapSample returns a bootstrap sample (sampling with replacement) drawn from xs.
// The returned slice has the same length as xs. Indices come from rng.Next, so there is
// no modulo bias when len(xs) is not a power of two. The input slice is not modified.
func bootstrapSample(xs []float64, rng *MT64) []float64 {
	n := len(xs)
	sample := make([]float64, n)
	for i := range n {
		sample[i] = xs[rng.Next(int64(n))]
	}
	return sample
}

// BootstrapConfidence estimates the probability (confidence) that the relative speedup of A over B
// meets or exceeds each requested threshold using bootstrap resampling.
//
// Each of the reps replicates draws a bootstrap sample from A and from B, computes their medians
// and evaluates
//
//	delta = 1 - median(A_sample)/median(B_sample)
//
// A positive delta indicates A is faster than B by that relative amount. The result maps each
// threshold to the fraction of replicates with delta >= threshold.
//
// Edge cases:
//   - If reps is zero every threshold maps to math.NaN().
//   - A replicate with a NaN median (e.g. an empty sample) counts for no threshold.
//   - If both medians are equal (including zero or the same infinity) delta is 0.
//   - A median(B) that is zero or tiny is replaced by a scale-aware epsilon so delta stays finite.
//
// All replicates share one MT64 seeded with seed.
func BootstrapConfidence(A, B []float64, thresholds []float64, reps uint64, seed int64) (confidenceForThreshold map[float64]float64) {
	confidenceForThreshold = make(map[float64]float64, len(thresholds))

	if reps == 0 {
		for _, threshold := range thresholds {
			confidenceForThreshold[threshold] = math.NaN()
		}
		return confidenceForThreshold
	}

	rng := New64(seed)
	counts := make(map[float64]uint64, len(thresholds))

	for range reps {
		medA := quickMedian(bootstrapSample(A, rng), rng)
		medB := quickMedian(bootstrapSample(B, rng), rng)

		var delta float64
		switch {
		case math.IsNaN(medA) || math.IsNaN(medB):
			delta = math.NaN()
		case medA == medB:
			delta = 0.0
		default:
			eps := math.Max(math.Abs(medB)*1e-12, math.SmallestNonzeroFloat64)
			denom := medB
			if math.Abs(medB) < eps {
				denom = eps
			}
			delta = 1.0 - medA/denom
		}

		for _, threshold := range thresholds {
			if delta >= threshold {
				counts[threshold]++
			}
		}
	}

	for _, threshold := range thresholds {
		confidenceForThreshold[threshold] = float64(counts[threshold]) / float64(reps)
	}
	return confidenceForThreshold
}

// F2T converts a "times faster" factor into the relative speedup threshold used by
// CompareRuntimes: 2.0 (twice as fast) becomes 0.5, 1.0 becomes 0.0 and 0.5 (half as fast)
// becomes -1.0. Non-positive and NaN factors yield NaN.
func F2T(timesFaster float64) float64 {
	if !(timesFaster > 0) {
		return math.NaN()
	}
	return 1.0 - 1.0/timesFaster
}
