package mtwist

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// pivotSeed seeds the generator QuickMedian uses to choose pivots.
const pivotSeed int64 = 5489

// Median returns the median of data without modifying it. For an even count it is the mean of
// the two middle values; for empty input it is 0.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := slices.Sorted(slices.Values(data))
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Statistics returns the population mean, variance and standard deviation of data.
// For empty input it returns (0, -1, -1).
func Statistics(data []float64) (mean, variance, stddev float64) {
	if len(data) == 0 {
		return 0, -1, -1
	}
	mean, variance = stat.PopMeanVariance(data, nil)
	return mean, variance, math.Sqrt(variance)
}

func FloatsEqualWithTolerance(f1, f2, tolerancePercentage float64) bool {
	absTol1 := math.Abs(f1 * tolerancePercentage / 100)
	if f1-absTol1 <= f2 && f1+absTol1 >= f2 {
		return true
	}
	absTol2 := math.Abs(f2 * tolerancePercentage / 100)
	return f2-absTol2 <= f1 && f2+absTol2 >= f1
}

// partition rearranges xs[low..high] around xs[high] and returns the pivot's final index
func partition(xs []float64, low, high int) int {
	pivot := xs[high]
	i := low
	for j := low; j < high; j++ {
		if xs[j] < pivot {
			xs[i], xs[j] = xs[j], xs[i]
			i++
		}
	}
	xs[i], xs[high] = xs[high], xs[i]
	return i
}

// quickselect finds the k-th smallest element (0-based index) in expected O(n) time.
// Pivots are drawn from rng without modulo bias.
// see https://en.wikipedia.org/wiki/Quickselect
func quickselect(xs []float64, k int, rng *MT64) float64 {
	low, high := 0, len(xs)-1
	for low < high {
		pivotIndex := low + int(rng.Next(int64(high-low+1)))
		xs[pivotIndex], xs[high] = xs[high], xs[pivotIndex]
		p := partition(xs, low, high)
		switch {
		case p == k:
			return xs[p]
		case p < k:
			low = p + 1
		default:
			high = p - 1
		}
	}
	return xs[k]
}

// QuickMedian returns the median in expected O(n) time.
// In case of an odd number of elements, it returns the middle one.
// In case of an even number of elements, it returns the higher of the two middle ones.
// For empty input it returns NaN.
// Note: This function modifies the input slice. To avoid this, pass a copy of the slice.
func QuickMedian(xs []float64) float64 {
	return quickMedian(xs, New64(pivotSeed))
}

func quickMedian(xs []float64, rng *MT64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return quickselect(xs, len(xs)/2, rng)
}

// ChiSquare returns Pearson's chi-squared statistic of observed bucket counts against a
// uniform distribution over the buckets, together with the degrees of freedom.
// It needs at least two buckets and at least one observation.
func ChiSquare(observed []uint64) (chi2 float64, df int, err error) {
	if len(observed) < 2 {
		return 0, 0, fmt.Errorf("chi-squared needs at least 2 buckets, got %d", len(observed))
	}
	var total uint64
	obs := make([]float64, len(observed))
	for i, o := range observed {
		total += o
		obs[i] = float64(o)
	}
	if total == 0 {
		return 0, 0, fmt.Errorf("chi-squared needs at least one observation")
	}
	exp := make([]float64, len(observed))
	for i := range exp {
		exp[i] = float64(total) / float64(len(observed))
	}
	return stat.ChiSquare(obs, exp), len(observed) - 1, nil
}

// ChiSquareCritical999 returns the 0.999 quantile of the chi-squared distribution with df
// degrees of freedom. A uniform source exceeds it in 0.1% of the runs.
func ChiSquareCritical999(df int) float64 {
	return distuv.ChiSquared{K: float64(df)}.Quantile(0.999)
}
