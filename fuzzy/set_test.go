package fuzzy

import (
	"math"
	"testing"
)

func TestNewFuzzySetRejectsInvertedUniverse(t *testing.T) {
	if _, err := NewFuzzySet(10, 0, Triangle(5, 0.8, 3).At); err == nil {
		t.Fatal("expected error for inverted universe")
	}
}

func TestDegreeOf(t *testing.T) {
	s, err := FromShape(0, 10, Triangle(5, 0.8, 3))
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, want float64
	}{
		{11, 0}, {5, 0.8}, {3.5, 0.4}, {0, 0}, {-1, 0},
	}
	for _, c := range cases {
		if got := s.DegreeOf(c.x); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("DegreeOf(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestDegreeOfShapeExceedsUniverse(t *testing.T) {
	s, err := FromShape(0, 10, Triangle(5, 0.8, 20))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.DegreeOf(11); got != 0 {
		t.Fatalf("DegreeOf(11) = %v, want 0 (outside universe)", got)
	}
	if got := s.DegreeOf(-1); got != 0 {
		t.Fatalf("DegreeOf(-1) = %v, want 0 (outside universe)", got)
	}
}

func TestMinClipsDegree(t *testing.T) {
	s, _ := FromShape(0, 10, Triangle(5, 0.8, 3))
	clipped := s.Min(0.5)
	if got := s.DegreeOf(5); got != 0.8 {
		t.Fatalf("original DegreeOf(5) = %v, want 0.8", got)
	}
	if got := clipped.DegreeOf(5); got != 0.5 {
		t.Fatalf("clipped DegreeOf(5) = %v, want 0.5", got)
	}
}

func TestChainedUnion(t *testing.T) {
	s1, _ := FromShape(0, 10, Triangle(5, 0.8, 3))
	s2 := s1.Min(0.5)
	s3 := s2.Min(0.2)

	sets := []FuzzySet{s1, s2, s3}
	var acc *FuzzySet
	for _, s := range sets {
		if acc == nil {
			cur := s
			acc = &cur
			continue
		}
		u, err := s.StdUnion(*acc)
		if err != nil {
			t.Fatal(err)
		}
		acc = &u
	}
	if got := acc.DegreeOf(5); got != 0.8 {
		t.Fatalf("union DegreeOf(5) = %v, want 0.8", got)
	}
}

func TestCentroidDefuzzOfSymmetricTriangleIsPeak(t *testing.T) {
	s, _ := FromShape(0, 10, Triangle(5, 0.8, 3))
	got := s.CentroidDefuzz(0.01)
	if math.Abs(got-5) > 1e-6 {
		t.Fatalf("centroid = %v, want ~5", got)
	}
}

func TestStdUnionRejectsUniverseMismatch(t *testing.T) {
	s1, _ := FromShape(0, 10, Triangle(5, 0.8, 3))
	s2, _ := FromShape(0, 20, Triangle(5, 0.8, 3))
	if _, err := s1.StdUnion(s2); err != ErrUniverseMismatch {
		t.Fatalf("expected ErrUniverseMismatch, got %v", err)
	}
}
