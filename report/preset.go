// Package report defines the wire-format DTOs a backtest or training run
// is persisted as, and the Sink interface that writes them somewhere
// durable.
package report

// ShapeDTO is one named term's membership-function shape as persisted in
// a linguistic-variable preset. Parameters carries whatever keys Shape.Params
// produces for that shape's kind ("center"/"height"/"width" for a triangle,
// "a".."e" for a trapezoid).
type ShapeDTO struct {
	ShapeType  string             `json:"shapeType"`
	Parameters map[string]float64 `json:"parameters"`
}

// LinguisticVarDTO is one persisted linguistic variable: its universe,
// input/output role, and named terms.
type LinguisticVarDTO struct {
	UpperBoundary float64             `json:"upperBoundary"`
	LowerBoundary float64             `json:"lowerBoundary"`
	Shapes        map[string]ShapeDTO `json:"shapes"`
	Kind          string              `json:"kind"` // "input" or "output"
}

// PresetDTO is a complete saved fuzzy preset: every linguistic variable by
// name, keyed the way the settings collection stores them.
type PresetDTO struct {
	Username            string                      `json:"username"`
	Preset              string                      `json:"preset"`
	LinguisticVariables map[string]LinguisticVarDTO `json:"linguisticVariables"`
}

// FuzzyRuleDTO is one persisted rule: a term name per input/output
// variable it mentions, keyed by variable name (a variable absent from the
// map is a wildcard), scoped to a preset.
type FuzzyRuleDTO struct {
	Input    map[string]string `json:"input"`
	Output   map[string]string `json:"output"`
	Username string            `json:"username"`
	Valid    bool              `json:"valid"`
	Preset   string            `json:"preset"`
}
