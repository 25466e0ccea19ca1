package fuzzy

import (
	"errors"
	"math"
)

// ErrInvalidShape is returned when a shape's parameters are internally
// inconsistent, e.g. a trapezoid whose corners aren't in a <= b <= c <= d
// order.
var ErrInvalidShape = errors.New("fuzzy: invalid shape parameters")

// ShapeKind identifies which membership function a Shape evaluates.
type ShapeKind int

const (
	ShapeTriangle ShapeKind = iota
	ShapeTrapezoid
	ShapeZero
)

// Shape is a membership function expressed as a small tagged struct rather
// than a closure, so its parameters can be walked and rewritten in place by
// the optimizer (see optimize.Flatten/Unflatten).
type Shape struct {
	Kind ShapeKind

	// Triangle: peaks at Center with Height, tapering to 0 at Center±Width.
	Center float64
	Height float64
	Width  float64

	// Trapezoid: rises from A to B, plateaus at E from B to C, falls to 0
	// between C and D.
	A, B, C, D, E float64
}

// Triangle builds a triangular membership function.
func Triangle(center, height, width float64) Shape {
	return Shape{Kind: ShapeTriangle, Center: center, Height: height, Width: width}
}

// Trapezoid builds a trapezoidal membership function.
func Trapezoid(a, b, c, d, e float64) Shape {
	return Shape{Kind: ShapeTrapezoid, A: a, B: b, C: c, D: d, E: e}
}

// Validate reports ErrInvalidShape if the shape's parameters are
// internally inconsistent: a triangle's height must lie in [0, 1] and its
// width must be positive; a trapezoid's corners must satisfy
// a <= b <= c <= d and its plateau height must lie in [0, 1].
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeTriangle:
		if !(0 <= s.Height && s.Height <= 1) || s.Width <= 0 {
			return ErrInvalidShape
		}
	case ShapeTrapezoid:
		if !(s.A <= s.B && s.B <= s.C && s.C <= s.D) || !(0 <= s.E && s.E <= 1) {
			return ErrInvalidShape
		}
	}
	return nil
}

// Zero builds the always-zero membership function, used as a neutral
// placeholder term.
func Zero() Shape {
	return Shape{Kind: ShapeZero}
}

// At evaluates the membership function at x.
func (s Shape) At(x float64) float64 {
	switch s.Kind {
	case ShapeTriangle:
		if s.Width == 0 {
			if x == s.Center {
				return s.Height
			}
			return 0
		}
		if s.Center-s.Width <= x && x <= s.Center+s.Width {
			return s.Height * (1 - math.Abs(x-s.Center)/s.Width)
		}
		return 0
	case ShapeTrapezoid:
		switch {
		case x >= s.A && x < s.B:
			if s.B == s.A {
				return s.E
			}
			return (x - s.A) * s.E / (s.B - s.A)
		case x >= s.B && x <= s.C:
			return s.E
		case x > s.C && x <= s.D:
			if s.D == s.C {
				return 0
			}
			return s.E * (1 - math.Abs(x-s.C)/(s.D-s.C))
		default:
			return 0
		}
	default:
		return 0
	}
}

// ShapeParam is a single named parameter of a Shape, in declaration order.
// The optimizer walks these to flatten a linguistic variable into a PSO
// particle position and back.
type ShapeParam struct {
	Name  string
	Value float64
}

// Params returns this shape's parameters in a fixed declaration order.
func (s Shape) Params() []ShapeParam {
	switch s.Kind {
	case ShapeTriangle:
		return []ShapeParam{
			{"center", s.Center},
			{"height", s.Height},
			{"width", s.Width},
		}
	case ShapeTrapezoid:
		return []ShapeParam{
			{"a", s.A}, {"b", s.B}, {"c", s.C}, {"d", s.D}, {"e", s.E},
		}
	default:
		return nil
	}
}

// SetParam rewrites one of the shape's parameters by name. Only the
// triangle's "height" parameter is clamped to [0, 1] — that mirrors the
// single hard-coded constraint the optimizer's particle decoder applies;
// the trapezoid's plateau height ("e") has no such constraint.
func (s *Shape) SetParam(name string, v float64) {
	switch s.Kind {
	case ShapeTriangle:
		switch name {
		case "center":
			s.Center = v
		case "height":
			s.Height = math.Min(1, math.Max(0, v))
		case "width":
			s.Width = v
		}
	case ShapeTrapezoid:
		switch name {
		case "a":
			s.A = v
		case "b":
			s.B = v
		case "c":
			s.C = v
		case "d":
			s.D = v
		case "e":
			s.E = v
		}
	}
}
