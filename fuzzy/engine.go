package fuzzy

import (
	"errors"
	"fmt"

	"github.com/zigfinance/fuzzytrader/market"
)

// ErrNoValidRule is returned by Inference when no rule in the engine is
// marked valid (see IsValid).
var ErrNoValidRule = errors.New("fuzzy: engine has no valid rule")

// ErrUnknownVariable is returned when a rule names a variable that isn't
// registered on the engine via AddInput/AddOutput.
var ErrUnknownVariable = errors.New("fuzzy: unknown variable")

// ErrUnknownTerm is returned when a rule names a term that does not exist
// on the variable it's keyed under.
var ErrUnknownTerm = errors.New("fuzzy: unknown term")

// DefuzzResolution is the default step size used to discretize an output
// variable's universe during centroid defuzzification.
const DefuzzResolution = 0.1

// Engine is a Mamdani fuzzy inference system: a builder-style accumulation
// of input/output linguistic variables and a rule base, evaluated bar by
// bar via Inference.
type Engine struct {
	inputs  []*LinguisticVariable
	outputs []*LinguisticVariable
	rules   []Rule
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// AddInput registers an input (antecedent) linguistic variable and returns
// the engine so calls can be chained, mirroring the builder style the
// reference implementation uses.
func (e *Engine) AddInput(v *LinguisticVariable) *Engine {
	e.inputs = append(e.inputs, v)
	return e
}

// AddOutput registers an output (consequent) linguistic variable.
func (e *Engine) AddOutput(v *LinguisticVariable) *Engine {
	e.outputs = append(e.outputs, v)
	return e
}

func (e *Engine) input(name string) *LinguisticVariable {
	for _, v := range e.inputs {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (e *Engine) output(name string) *LinguisticVariable {
	for _, v := range e.outputs {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// AddRule appends a rule after validating that every variable name it
// mentions is registered on the engine and, for each, that the named term
// exists on that variable.
func (e *Engine) AddRule(r Rule) error {
	for name, term := range r.Antecedent {
		v := e.input(name)
		if v == nil {
			return fmt.Errorf("%w: input %q", ErrUnknownVariable, name)
		}
		if _, ok := v.Term(term); !ok {
			return fmt.Errorf("%w: input %q term %q", ErrUnknownTerm, name, term)
		}
	}
	for name, term := range r.Consequent {
		v := e.output(name)
		if v == nil {
			return fmt.Errorf("%w: output %q", ErrUnknownVariable, name)
		}
		if _, ok := v.Term(term); !ok {
			return fmt.Errorf("%w: output %q term %q", ErrUnknownTerm, name, term)
		}
	}
	e.rules = append(e.rules, r)
	return nil
}

// Inputs returns the registered input variables in declaration order.
func (e *Engine) Inputs() []*LinguisticVariable { return e.inputs }

// Outputs returns the registered output variables in declaration order.
func (e *Engine) Outputs() []*LinguisticVariable { return e.outputs }

// Rules returns the rule base.
func (e *Engine) Rules() []Rule { return e.rules }

// IsValid reports whether the engine has at least one rule marked valid —
// the minimum an inference run needs to produce a non-empty output.
func (e *Engine) IsValid() bool {
	for _, r := range e.rules {
		if r.Valid {
			return true
		}
	}
	return false
}

// Inference runs one bar's worth of input values through the rule base and
// returns a crisp output value per output variable, in output-declaration
// order. inputs must have one entry per input variable, in input-
// declaration order; an OptFloat with Valid=false means that input hasn't
// warmed up yet, so any rule clause that isn't a wildcard on that variable
// contributes a firing strength of 0.
func (e *Engine) Inference(inputs []market.OptFloat) ([]float64, error) {
	if len(inputs) != len(e.inputs) {
		return nil, fmt.Errorf("fuzzy: expected %d inputs, got %d", len(e.inputs), len(inputs))
	}
	if !e.IsValid() {
		return nil, ErrNoValidRule
	}

	aggregated := make([]*FuzzySet, len(e.outputs))

	for _, rule := range e.rules {
		if !rule.Valid {
			continue
		}
		strength := 1.0
		for i, v := range e.inputs {
			termName, ok := rule.Antecedent[v.Name]
			if !ok {
				continue
			}
			if !inputs[i].Valid {
				strength = 0
				break
			}
			term, ok := v.Term(termName)
			if !ok {
				strength = 0
				break
			}
			degree := term.DegreeOf(inputs[i].Value)
			if degree < strength {
				strength = degree
			}
		}
		if strength <= 0 {
			continue
		}
		for i, v := range e.outputs {
			termName, ok := rule.Consequent[v.Name]
			if !ok {
				continue
			}
			term, ok := v.Term(termName)
			if !ok {
				continue
			}
			clipped := term.Min(strength)
			if aggregated[i] == nil {
				aggregated[i] = &clipped
				continue
			}
			union, err := aggregated[i].StdUnion(clipped)
			if err != nil {
				return nil, err
			}
			aggregated[i] = &union
		}
	}

	out := make([]float64, len(e.outputs))
	for i, agg := range aggregated {
		if agg == nil {
			out[i] = 0
			continue
		}
		out[i] = agg.CentroidDefuzz(DefuzzResolution)
	}
	return out, nil
}
