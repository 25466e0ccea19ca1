package optimize

import "github.com/zigfinance/fuzzytrader/fuzzy"

// Flatten walks presets in order — variable, then term, then shape
// parameter — and concatenates every parameter value into one particle
// position. Unflatten must walk in exactly this order to invert it.
func Flatten(presets []fuzzy.VariablePreset) []float64 {
	var out []float64
	for _, vp := range presets {
		for _, term := range vp.Terms {
			for _, p := range term.Shape.Params() {
				out = append(out, p.Value)
			}
		}
	}
	return out
}

// Unflatten rebuilds a copy of presets with every shape parameter
// overwritten from particlePos, walked in the same variable/term/param
// order Flatten used. It never mutates presets.
func Unflatten(presets []fuzzy.VariablePreset, particlePos []float64) []fuzzy.VariablePreset {
	out := make([]fuzzy.VariablePreset, len(presets))
	i := 0
	for vi, vp := range presets {
		clone := vp.Clone()
		for ti, term := range clone.Terms {
			shape := term.Shape
			for _, p := range shape.Params() {
				shape.SetParam(p.Name, particlePos[i])
				i++
			}
			clone.Terms[ti].Shape = shape
		}
		out[vi] = clone
	}
	return out
}
