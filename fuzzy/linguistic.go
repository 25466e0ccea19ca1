package fuzzy

import "fmt"

// LinguisticVariable names a bounded universe (e.g. "rsi" over [0, 100])
// and the named fuzzy terms ("oversold", "neutral", "overbought") defined
// on it. Term order is preserved in declaration order — not map iteration
// order — since the optimizer's particle encoding walks variables, then
// shapes, then parameters, and that walk must be stable across runs for
// the determinism invariant reports depend on.
type LinguisticVariable struct {
	Name   string
	Lo, Hi float64

	order []string
	sets  map[string]FuzzySet
}

// NewLinguisticVariable creates an empty variable over [lo, hi].
func NewLinguisticVariable(name string, lo, hi float64) *LinguisticVariable {
	return &LinguisticVariable{
		Name: name, Lo: lo, Hi: hi,
		sets: make(map[string]FuzzySet),
	}
}

// AddTerm defines a named fuzzy term on this variable using shape as its
// membership function.
func (v *LinguisticVariable) AddTerm(name string, shape Shape) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("fuzzy: add term %q to %q: %w", name, v.Name, err)
	}
	set, err := FromShape(v.Lo, v.Hi, shape)
	if err != nil {
		return fmt.Errorf("fuzzy: add term %q to %q: %w", name, v.Name, err)
	}
	if _, exists := v.sets[name]; !exists {
		v.order = append(v.order, name)
	}
	v.sets[name] = set
	return nil
}

// Term looks up a named fuzzy term.
func (v *LinguisticVariable) Term(name string) (FuzzySet, bool) {
	s, ok := v.sets[name]
	return s, ok
}

// Terms returns term names in declaration order.
func (v *LinguisticVariable) Terms() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}
