package indicators

// OBV computes On-Balance Volume: a running sum of signed volume, where
// volume is added on an up close, subtracted on a down close, and ignored
// on an unchanged close.
func OBV(closes, volumes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			out[i] = volumes[i]
			continue
		}
		switch sign(closes[i] - closes[i-1]) {
		case 1:
			out[i] = out[i-1] + volumes[i]
		case -1:
			out[i] = out[i-1] - volumes[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// AccumDist computes the Accumulation/Distribution line: a running sum of
// the Close Location Value weighted by volume.
func AccumDist(highs, lows, closes, volumes []float64) []float64 {
	mfv := make([]float64, len(closes))
	for i := range closes {
		hl := highs[i] - lows[i]
		if hl == 0 {
			mfv[i] = 0
			continue
		}
		clv := ((closes[i] - lows[i]) - (highs[i] - closes[i])) / hl
		mfv[i] = clv * volumes[i]
	}
	return Cum(mfv)
}
