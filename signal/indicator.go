package signal

import (
	"fmt"

	"github.com/zigfinance/fuzzytrader/fuzzy"
	"github.com/zigfinance/fuzzytrader/market"
)

// ComputeFuzzyOutput runs engine.Inference once per bar, feeding it the
// aligned per-variable input series assembled by Assemble, and returns the
// per-bar output vector. The result's outer index is bar index (matching
// bars), its inner index is engine.Outputs() order.
func ComputeFuzzyOutput(engine *fuzzy.Engine, inputs [][]market.OptFloat) ([][]float64, error) {
	if len(inputs) != len(engine.Inputs()) {
		return nil, fmt.Errorf("signal: engine expects %d inputs, got %d series", len(engine.Inputs()), len(inputs))
	}
	if len(inputs) == 0 {
		return nil, nil
	}
	n := len(inputs[0])
	for _, series := range inputs {
		if len(series) != n {
			return nil, fmt.Errorf("signal: input series length mismatch")
		}
	}

	out := make([][]float64, n)
	row := make([]market.OptFloat, len(inputs))
	for bar := 0; bar < n; bar++ {
		for v := range inputs {
			row[v] = inputs[v][bar]
		}
		result, err := engine.Inference(row)
		if err != nil {
			return nil, fmt.Errorf("signal: inference at bar %d: %w", bar, err)
		}
		out[bar] = result
	}
	return out, nil
}
