package fuzzy

import (
	"errors"
	"testing"
)

func TestTrapezoidValidateRejectsOutOfOrderCorners(t *testing.T) {
	s := Trapezoid(5, 2, 8, 10, 1)
	if err := s.Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("Validate() = %v, want ErrInvalidShape", err)
	}
}

func TestTrapezoidValidateAcceptsOrderedCorners(t *testing.T) {
	s := Trapezoid(1, 2, 3, 4, 1)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestAddTermRejectsInvalidTrapezoid(t *testing.T) {
	v := NewLinguisticVariable("rsi", 0, 100)
	if err := v.AddTerm("bad", Trapezoid(50, 10, 80, 90, 1)); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("AddTerm() = %v, want ErrInvalidShape", err)
	}
}

func TestTrapezoidValidateRejectsOutOfRangeHeight(t *testing.T) {
	s := Trapezoid(1, 2, 3, 4, 1.5)
	if err := s.Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("Validate() = %v, want ErrInvalidShape", err)
	}
}

func TestTriangleValidateAcceptsInRangeParams(t *testing.T) {
	s := Triangle(50, 0.8, 20)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestTriangleValidateRejectsOutOfRangeHeight(t *testing.T) {
	s := Triangle(50, 2.5, 20)
	if err := s.Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("Validate() = %v, want ErrInvalidShape", err)
	}
}

func TestTriangleValidateRejectsNonPositiveWidth(t *testing.T) {
	s := Triangle(50, 1, -3)
	if err := s.Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("Validate() = %v, want ErrInvalidShape", err)
	}
	if err := Triangle(50, 1, 0).Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("Validate() with zero width = %v, want ErrInvalidShape", err)
	}
}
