package fuzzy

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidUniverse is returned when a FuzzySet's universe bounds are
// inverted (hi < lo).
var ErrInvalidUniverse = errors.New("fuzzy: universe end must not be less than start")

// ErrUniverseMismatch is returned when combining two FuzzySets whose
// universes differ.
var ErrUniverseMismatch = errors.New("fuzzy: universe mismatch")

// MembershipFunc maps a crisp input value to a [0, 1] membership degree.
type MembershipFunc func(x float64) float64

// FuzzySet is a membership function defined over a bounded universe.
type FuzzySet struct {
	Lo, Hi float64
	mf     MembershipFunc
}

// NewFuzzySet builds a FuzzySet over [lo, hi].
func NewFuzzySet(lo, hi float64, mf MembershipFunc) (FuzzySet, error) {
	if hi < lo {
		return FuzzySet{}, ErrInvalidUniverse
	}
	return FuzzySet{Lo: lo, Hi: hi, mf: mf}, nil
}

// FromShape builds a FuzzySet over [lo, hi] whose membership function is
// the given Shape.
func FromShape(lo, hi float64, shape Shape) (FuzzySet, error) {
	return NewFuzzySet(lo, hi, shape.At)
}

func (s FuzzySet) sameUniverse(other FuzzySet) bool {
	return s.Lo == other.Lo && s.Hi == other.Hi
}

// DegreeOf returns the clamped-to-[0,1] membership degree of input, or 0
// if input falls outside the set's universe.
func (s FuzzySet) DegreeOf(input float64) float64 {
	if input < s.Lo || input > s.Hi {
		return 0
	}
	return math.Min(1, math.Max(0, s.mf(input)))
}

// Min returns a new FuzzySet whose membership function is capped at
// input — the Mamdani clipping step applied to a rule's consequent set
// once the rule's firing strength is known.
func (s FuzzySet) Min(input float64) FuzzySet {
	mf := s.mf
	return FuzzySet{Lo: s.Lo, Hi: s.Hi, mf: func(x float64) float64 {
		return math.Min(input, mf(x))
	}}
}

// StdUnion returns the pointwise-max union of s and other. Both sets must
// share a universe.
func (s FuzzySet) StdUnion(other FuzzySet) (FuzzySet, error) {
	if !s.sameUniverse(other) {
		return FuzzySet{}, ErrUniverseMismatch
	}
	a, b := s.mf, other.mf
	return FuzzySet{Lo: s.Lo, Hi: s.Hi, mf: func(x float64) float64 {
		return math.Max(a(x), b(x))
	}}, nil
}

// StdIntersect returns the pointwise-min intersection of s and other. Both
// sets must share a universe.
func (s FuzzySet) StdIntersect(other FuzzySet) (FuzzySet, error) {
	if !s.sameUniverse(other) {
		return FuzzySet{}, ErrUniverseMismatch
	}
	a, b := s.mf, other.mf
	return FuzzySet{Lo: s.Lo, Hi: s.Hi, mf: func(x float64) float64 {
		return math.Min(a(x), b(x))
	}}, nil
}

// CentroidDefuzz computes the centroid of s over its universe, discretized
// at the given resolution: sum(mf(x)*x) / sum(mf(x)). Returns 0 when the
// set has no support (mf is 0 everywhere on the universe).
func (s FuzzySet) CentroidDefuzz(resolution float64) float64 {
	if resolution <= 0 {
		resolution = 0.01
	}
	n := int((s.Hi-s.Lo)/resolution) + 1
	xs := make([]float64, n)
	weights := make([]float64, n)
	for i := range xs {
		x := s.Lo + float64(i)*resolution
		xs[i] = x
		weights[i] = s.mf(x)
	}

	mfSum := floats.Sum(weights)
	if mfSum == 0 {
		return 0
	}
	return floats.Dot(weights, xs) / mfSum
}
