package optimize

import "github.com/zigfinance/fuzzytrader/fuzzy"

// BuildEngine constructs a fuzzy.Engine from a preset list (the first
// numInputs entries become AddInput variables, the rest AddOutput) and a
// rule set. It is called once per particle position evaluated during
// training, so presets here are normally the result of Unflatten.
func BuildEngine(presets []fuzzy.VariablePreset, numInputs int, rules []fuzzy.Rule) (*fuzzy.Engine, error) {
	e := fuzzy.NewEngine()
	for i, vp := range presets {
		v, err := vp.Build()
		if err != nil {
			return nil, err
		}
		if i < numInputs {
			e.AddInput(v)
		} else {
			e.AddOutput(v)
		}
	}
	for _, r := range rules {
		if err := e.AddRule(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}
