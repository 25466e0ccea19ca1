package indicators

import "math"

// Stochastic is the %K and %D series.
type Stochastic struct {
	PercentK []float64
	PercentD []float64
}

// ComputeStochastic computes the Stochastic Oscillator: %K over a window
// of kPeriod bars, %D as a dPeriod-bar SMA of %K.
func ComputeStochastic(highs, lows, closes []float64, kPeriod, dPeriod int) Stochastic {
	k := make([]float64, len(closes))
	for i := range closes {
		if i < kPeriod-1 {
			k[i] = math.NaN()
			continue
		}
		hi := highs[i-kPeriod+1]
		lo := lows[i-kPeriod+1]
		for _, v := range highs[i-kPeriod+1 : i+1] {
			if v > hi {
				hi = v
			}
		}
		for _, v := range lows[i-kPeriod+1 : i+1] {
			if v < lo {
				lo = v
			}
		}
		if hi == lo {
			k[i] = 50
			continue
		}
		k[i] = 100 * (closes[i] - lo) / (hi - lo)
	}
	d := SMA(replaceNaNWithZero(k), dPeriod)
	for i := range d {
		if math.IsNaN(k[i]) {
			d[i] = math.NaN()
		}
	}
	return Stochastic{PercentK: k, PercentD: d}
}
