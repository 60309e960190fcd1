package core

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// pearson computes the Pearson correlation and its two-sided p-value over
// paired samples, dropping any pair where either side is NaN.
// Returns NaN for both when fewer than two pairs remain or either side has
// zero variance. n is the number of pairs actually used.
func pearson(x, y []float64) (r, p float64, n int) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	n = len(xs)
	if n < 2 {
		return math.NaN(), math.NaN(), n
	}

	r = stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// Zero variance in either segment.
		return math.NaN(), math.NaN(), n
	}
	// Guard against rounding drift outside [-1, 1].
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	p = pearsonPValue(r, n)
	return r, p, n
}

// pearsonPValue computes the two-sided p-value for the null hypothesis r=0
// via the t transform with n-2 degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if n < 3 {
		// With two points the correlation is always +-1; there is no
		// evidence against the null.
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// tTestInd is the independent two-sample t-test with pooled variance.
// Returns NaN for both values when either sample is empty, there are not
// enough degrees of freedom, or the pooled variance is zero.
func tTestInd(a, b []float64) (t, p float64) {
	na, nb := len(a), len(b)
	if na == 0 || nb == 0 || na+nb < 3 {
		return math.NaN(), math.NaN()
	}

	meanA := stat.Mean(a, nil)
	meanB := stat.Mean(b, nil)
	varA := sampleVariance(a, meanA)
	varB := sampleVariance(b, meanB)

	df := float64(na + nb - 2)
	pooled := (float64(na-1)*varA + float64(nb-1)*varB) / df
	if pooled <= 0 {
		return math.NaN(), math.NaN()
	}

	t = (meanA - meanB) / math.Sqrt(pooled*(1/float64(na)+1/float64(nb)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))
	return t, p
}

// sampleVariance is the unbiased (n-1 divisor) variance around a known mean.
// Single-element samples contribute zero variance to the pool.
func sampleVariance(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(vals)-1)
}

// meanStd returns the mean and population standard deviation of a group.
// Both are NaN for an empty group.
func meanStd(vals []float64) (mean, std float64) {
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	mean = stat.Mean(vals, nil)
	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return mean, math.Sqrt(sum / float64(len(vals)))
}
