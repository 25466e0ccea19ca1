package indicators

import "math"

// BollingerBands is the per-bar middle/upper/lower band triple.
type BollingerBands struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// Bollinger computes Bollinger Bands: an n-bar SMA middle band, with upper
// and lower bands k standard deviations away.
func Bollinger(closes []float64, n int, k float64) BollingerBands {
	mid := SMA(closes, n)
	dev := StDev(closes, n)

	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	for i := range closes {
		if math.IsNaN(mid[i]) || math.IsNaN(dev[i]) {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		upper[i] = mid[i] + k*dev[i]
		lower[i] = mid[i] - k*dev[i]
	}
	return BollingerBands{Middle: mid, Upper: upper, Lower: lower}
}

// PercentB is the percent distance of a close from the middle band,
// scaled by the distance to whichever band it's on the same side of: the
// upper-band distance above the middle, the lower-band distance below it.
// Unlike the textbook %b (which runs 0..1 between the bands), this is
// signed and roughly symmetric around 0, which is what the fuzzy rule
// base's "bb" terms are written against.
func (b BollingerBands) PercentB(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i, c := range closes {
		mid := b.Middle[i]
		if math.IsNaN(mid) {
			out[i] = math.NaN()
			continue
		}
		var scale float64
		if c > mid {
			scale = b.Upper[i] - mid
		} else {
			scale = mid - b.Lower[i]
		}
		if scale == 0 {
			out[i] = 0
			continue
		}
		out[i] = ((c - mid) / scale) * 100
	}
	return out
}
