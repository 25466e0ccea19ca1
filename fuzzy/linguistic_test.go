package fuzzy

import "testing"

func TestLinguisticVariableTermLookup(t *testing.T) {
	v := NewLinguisticVariable("rsi", 0, 10)
	if err := v.AddTerm("normal", Triangle(5, 0.8, 3)); err != nil {
		t.Fatal(err)
	}
	if err := v.AddTerm("weak", Triangle(3, 0.8, 1.5)); err != nil {
		t.Fatal(err)
	}

	normal, ok := v.Term("normal")
	if !ok {
		t.Fatal("expected normal term to exist")
	}
	if got := normal.DegreeOf(5); got != 0.8 {
		t.Fatalf("normal.DegreeOf(5) = %v, want 0.8", got)
	}

	weak, ok := v.Term("weak")
	if !ok {
		t.Fatal("expected weak term to exist")
	}
	if got := weak.DegreeOf(3); got != 0.8 {
		t.Fatalf("weak.DegreeOf(3) = %v, want 0.8", got)
	}

	if _, ok := v.Term("strong"); ok {
		t.Fatal("expected strong term to be absent")
	}
}

func TestLinguisticVariablePreservesDeclarationOrder(t *testing.T) {
	v := NewLinguisticVariable("rsi", 0, 100)
	names := []string{"oversold", "neutral", "overbought"}
	for _, n := range names {
		if err := v.AddTerm(n, Zero()); err != nil {
			t.Fatal(err)
		}
	}
	got := v.Terms()
	if len(got) != len(names) {
		t.Fatalf("Terms() len = %d, want %d", len(got), len(names))
	}
	for i, n := range names {
		if got[i] != n {
			t.Fatalf("Terms()[%d] = %q, want %q", i, got[i], n)
		}
	}
}
