package optimize

import (
	"reflect"
	"testing"

	"github.com/zigfinance/fuzzytrader/fuzzy"
)

func samplePresets() []fuzzy.VariablePreset {
	return []fuzzy.VariablePreset{
		{
			Name: "rsi", Lo: 0, Hi: 100,
			Terms: []fuzzy.TermPreset{
				{Name: "low", Shape: fuzzy.Triangle(20, 0.8, 25)},
				{Name: "high", Shape: fuzzy.Trapezoid(50, 70, 90, 100, 1)},
			},
		},
		{
			Name: "signal", Lo: 0, Hi: 100,
			Terms: []fuzzy.TermPreset{
				{Name: "weak", Shape: fuzzy.Triangle(10, 1, 10)},
			},
		},
	}
}

func TestFlattenWalksVariableTermParamOrder(t *testing.T) {
	got := Flatten(samplePresets())
	want := []float64{
		20, 0.8, 25, // rsi/low triangle: center, height, width
		50, 70, 90, 100, 1, // rsi/high trapezoid: a, b, c, d, e
		10, 1, 10, // signal/weak triangle
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestUnflattenInvertsFlatten(t *testing.T) {
	presets := samplePresets()
	pos := Flatten(presets)
	out := Unflatten(presets, pos)
	if !reflect.DeepEqual(Flatten(out), pos) {
		t.Fatalf("round-trip mismatch: got %v, want %v", Flatten(out), pos)
	}
}

func TestUnflattenClampsOnlyTriangleHeight(t *testing.T) {
	presets := samplePresets()
	pos := Flatten(presets)
	// bump rsi/low's height (index 1) and rsi/high's "e" plateau (index 7)
	// both past 1.0 — only the triangle's height should clamp.
	pos[1] = 5.0
	pos[7] = 5.0

	out := Unflatten(presets, pos)
	if out[0].Terms[0].Shape.Height != 1.0 {
		t.Fatalf("triangle height = %v, want clamped to 1.0", out[0].Terms[0].Shape.Height)
	}
	if out[0].Terms[1].Shape.E != 5.0 {
		t.Fatalf("trapezoid e = %v, want unclamped 5.0", out[0].Terms[1].Shape.E)
	}
}

func TestUnflattenDoesNotMutateInput(t *testing.T) {
	presets := samplePresets()
	pos := Flatten(presets)
	pos[0] = 999
	_ = Unflatten(presets, pos)
	if presets[0].Terms[0].Shape.Center != 20 {
		t.Fatalf("Unflatten mutated the original presets: center = %v", presets[0].Terms[0].Shape.Center)
	}
}
