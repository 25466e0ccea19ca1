package indicators

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MACD is the moving-average-convergence-divergence line, its signal line,
// and the histogram (macd - signal).
type MACD struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// ComputeMACD computes MACD with the conventional fast/slow/signal window
// triple (12, 26, 9).
func ComputeMACD(closes []float64, fast, slow, signal int) MACD {
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		if math.IsNaN(fastEMA[i]) || math.IsNaN(slowEMA[i]) {
			line[i] = math.NaN()
			continue
		}
		line[i] = fastEMA[i] - slowEMA[i]
	}

	sig := EMA(cleanNaN(line), signal)
	hist := make([]float64, len(closes))
	for i := range closes {
		if math.IsNaN(line[i]) || math.IsNaN(sig[i]) {
			hist[i] = math.NaN()
			continue
		}
		hist[i] = line[i] - sig[i]
	}
	return MACD{Line: line, Signal: sig, Histogram: hist}
}

// cleanNaN substitutes 0 for NaN so a downstream EMA's warm-up window is
// not poisoned by the MACD line's own warm-up NaNs. The signal-line EMA is
// therefore seeded from those zeros: it is 0, not NaN, on bars where only
// the MACD line is still warming up, and the histogram stays NaN wherever
// the MACD line is NaN.
func cleanNaN(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = 0
		}
	}
	return out
}

// Transformed min-max normalizes the MACD line into [0, 1] over the whole
// series, matching the only normalization the original implementation
// actually performs before fuzzifying MACD.
func (m MACD) Transformed() []float64 {
	finite := make([]float64, 0, len(m.Line))
	for _, v := range m.Line {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	out := make([]float64, len(m.Line))
	if len(finite) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	lo := floats.Min(finite)
	hi := floats.Max(finite)
	spread := hi - lo
	for i, v := range m.Line {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		if spread == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / spread
	}
	return out
}
