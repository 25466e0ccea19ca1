package fuzzy

// TermPreset is one named fuzzy term and the shape that defines it, as
// stored in a saved linguistic-variable preset.
type TermPreset struct {
	Name  string
	Shape Shape
}

// VariablePreset is the persisted description of one linguistic variable:
// its universe and its terms in declaration order. It is the PSO
// optimizer's unit of work — Flatten/Unflatten walk a slice of these to
// encode and decode a particle position — and is distinct from
// LinguisticVariable, which is the runtime form an Engine evaluates
// against.
type VariablePreset struct {
	Name  string
	Lo, Hi float64
	Terms []TermPreset
}

// Build constructs the runtime LinguisticVariable this preset describes.
func (vp VariablePreset) Build() (*LinguisticVariable, error) {
	v := NewLinguisticVariable(vp.Name, vp.Lo, vp.Hi)
	for _, t := range vp.Terms {
		if err := v.AddTerm(t.Name, t.Shape); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Clone returns a deep copy, so callers can rewrite a copy's shape
// parameters without mutating the original preset.
func (vp VariablePreset) Clone() VariablePreset {
	terms := make([]TermPreset, len(vp.Terms))
	copy(terms, vp.Terms)
	return VariablePreset{Name: vp.Name, Lo: vp.Lo, Hi: vp.Hi, Terms: terms}
}
