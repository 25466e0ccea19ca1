package report

import (
	"fmt"
	"sort"

	"github.com/zigfinance/fuzzytrader/fuzzy"
)

// FromPresets converts an ordered preset list (inputs then outputs, as
// optimize.Config.Presets expects) into the map-keyed wire form a saved
// settings document uses.
func FromPresets(username, preset string, presets []fuzzy.VariablePreset, numInputs int) PresetDTO {
	vars := make(map[string]LinguisticVarDTO, len(presets))
	for i, vp := range presets {
		kind := "input"
		if i >= numInputs {
			kind = "output"
		}
		shapes := make(map[string]ShapeDTO, len(vp.Terms))
		for _, term := range vp.Terms {
			params := make(map[string]float64)
			for _, p := range term.Shape.Params() {
				params[p.Name] = p.Value
			}
			shapes[term.Name] = ShapeDTO{ShapeType: shapeTypeName(term.Shape), Parameters: params}
		}
		vars[vp.Name] = LinguisticVarDTO{
			UpperBoundary: vp.Hi,
			LowerBoundary: vp.Lo,
			Shapes:        shapes,
			Kind:          kind,
		}
	}
	return PresetDTO{Username: username, Preset: preset, LinguisticVariables: vars}
}

func shapeTypeName(s fuzzy.Shape) string {
	switch s.Kind {
	case fuzzy.ShapeTriangle:
		return "triangle"
	case fuzzy.ShapeTrapezoid:
		return "trapezoid"
	default:
		return "zero"
	}
}

// FromRules converts rules into their persisted name-keyed wire form. A
// variable a rule doesn't mention (the wildcard case) simply has no entry
// in the DTO's map, same as in fuzzy.Rule itself.
func FromRules(username, preset string, rules []fuzzy.Rule) []FuzzyRuleDTO {
	out := make([]FuzzyRuleDTO, len(rules))
	for i, r := range rules {
		out[i] = FuzzyRuleDTO{
			Input:    copyTerms(r.Antecedent),
			Output:   copyTerms(r.Consequent),
			Username: username,
			Valid:    r.Valid,
			Preset:   preset,
		}
	}
	return out
}

func copyTerms(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ToPresets decodes a persisted preset back into the ordered
// variable/term form optimize.Config and BuildEngine expect: inputs first,
// then outputs, each walked in alphabetical name order. Alphabetical order
// is the persisted order too — a saved preset's linguistic_variables and
// shapes maps are both written and read as sorted maps, mirroring
// BTreeMap's iteration order in the settings model this format is
// grounded on — so decode order always matches the order the preset was
// saved in.
func ToPresets(dto PresetDTO) (presets []fuzzy.VariablePreset, numInputs int, err error) {
	names := make([]string, 0, len(dto.LinguisticVariables))
	for name := range dto.LinguisticVariables {
		names = append(names, name)
	}
	sort.Strings(names)

	var inputs, outputs []fuzzy.VariablePreset
	for _, name := range names {
		v := dto.LinguisticVariables[name]
		vp, err := toVariablePreset(name, v)
		if err != nil {
			return nil, 0, err
		}
		switch v.Kind {
		case "input":
			inputs = append(inputs, vp)
		case "output":
			outputs = append(outputs, vp)
		default:
			return nil, 0, fmt.Errorf("report: linguistic variable %q has unknown kind %q", name, v.Kind)
		}
	}

	out := make([]fuzzy.VariablePreset, 0, len(inputs)+len(outputs))
	out = append(out, inputs...)
	out = append(out, outputs...)
	return out, len(inputs), nil
}

func toVariablePreset(name string, v LinguisticVarDTO) (fuzzy.VariablePreset, error) {
	termNames := make([]string, 0, len(v.Shapes))
	for t := range v.Shapes {
		termNames = append(termNames, t)
	}
	sort.Strings(termNames)

	terms := make([]fuzzy.TermPreset, len(termNames))
	for i, t := range termNames {
		shape, err := toShape(v.Shapes[t])
		if err != nil {
			return fuzzy.VariablePreset{}, fmt.Errorf("report: variable %q term %q: %w", name, t, err)
		}
		terms[i] = fuzzy.TermPreset{Name: t, Shape: shape}
	}
	return fuzzy.VariablePreset{Name: name, Lo: v.LowerBoundary, Hi: v.UpperBoundary, Terms: terms}, nil
}

func toShape(dto ShapeDTO) (fuzzy.Shape, error) {
	switch dto.ShapeType {
	case "triangle":
		return fuzzy.Triangle(dto.Parameters["center"], dto.Parameters["height"], dto.Parameters["width"]), nil
	case "trapezoid":
		return fuzzy.Trapezoid(dto.Parameters["a"], dto.Parameters["b"], dto.Parameters["c"], dto.Parameters["d"], dto.Parameters["e"]), nil
	case "zero":
		return fuzzy.Zero(), nil
	default:
		return fuzzy.Shape{}, fmt.Errorf("report: unknown shape type %q", dto.ShapeType)
	}
}

// ToRules decodes persisted rules back into their name-keyed fuzzy.Rule
// form.
func ToRules(dtos []FuzzyRuleDTO) []fuzzy.Rule {
	out := make([]fuzzy.Rule, len(dtos))
	for i, d := range dtos {
		out[i] = fuzzy.Rule{
			Antecedent: copyTerms(d.Input),
			Consequent: copyTerms(d.Output),
			Valid:      d.Valid,
		}
	}
	return out
}
