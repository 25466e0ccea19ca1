package indicators

import "math"

// AroonResult is the Aroon-Up and Aroon-Down series.
type AroonResult struct {
	Up   []float64
	Down []float64
}

// Aroon computes Aroon-Up/Down over a window of n bars:
// 100 * (n - bars since the most recent high/low) / n, so a high or low on
// the current bar reads 100.
func Aroon(highs, lows []float64, n int) AroonResult {
	up := make([]float64, len(highs))
	down := make([]float64, len(lows))
	for i := range highs {
		if i < n {
			up[i] = math.NaN()
			down[i] = math.NaN()
			continue
		}
		window := highs[i-n : i+1]
		hiIdx := 0
		hi := window[0]
		for j, v := range window {
			if v >= hi {
				hi = v
				hiIdx = j
			}
		}
		lowWindow := lows[i-n : i+1]
		loIdx := 0
		lo := lowWindow[0]
		for j, v := range lowWindow {
			if v <= lo {
				lo = v
				loIdx = j
			}
		}
		up[i] = 100 * float64(hiIdx) / float64(n)
		down[i] = 100 * float64(loIdx) / float64(n)
	}
	return AroonResult{Up: up, Down: down}
}
