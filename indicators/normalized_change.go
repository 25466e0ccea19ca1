package indicators

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizedChange scales the n-bar percent change of values into
// [-100, 100] using a min-max normalization over the whole series. It is
// applied to volume-flow indicators (OBV, Accumulation/Distribution)
// before they feed a fuzzy input, since those series have no natural
// bound.
func NormalizedChange(values []float64, n int) []float64 {
	pctChange := make([]float64, len(values))
	for i := range values {
		if i < n || values[i-n] == 0 {
			pctChange[i] = math.NaN()
			continue
		}
		pctChange[i] = (values[i] - values[i-n]) / math.Abs(values[i-n])
	}

	finite := make([]float64, 0, len(pctChange))
	for _, v := range pctChange {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		out := make([]float64, len(values))
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	lo := floats.Min(finite)
	hi := floats.Max(finite)
	spread := hi - lo

	out := make([]float64, len(values))
	for i, v := range pctChange {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		if spread == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v-lo)/spread*200 - 100
	}
	return out
}
