package optimize

import (
	"reflect"
	"testing"

	"golang.org/x/exp/rand"
)

// TestUpdateVelocityAndMove is grounded directly on the reference swarm's
// own unit test: starting position [1,1] (deterministic here because
// NewParticle's position draw collapses to a point when startPos's min
// and max coincide), speed forced to [0.5, 0.5], one update against
// groupBest [0.5, 1.0] with rho1=rho2=1.0 must yield speed [0, 0.5] and
// position [1.0, 1.5].
func TestUpdateVelocityAndMove(t *testing.T) {
	src := rand.NewSource(1)
	p := NewParticle([]float64{1.0, 1.0}, src)
	if !reflect.DeepEqual(p.Position, []float64{1.0, 1.0}) {
		t.Fatalf("position = %v, want [1 1]", p.Position)
	}

	p.Velocity = []float64{0.5, 0.5}
	groupBest := []float64{0.5, 1.0}

	p.UpdateVelocity(groupBest, 1.0, 1.0, nil)
	p.Move()

	if !reflect.DeepEqual(p.Velocity, []float64{0.0, 0.5}) {
		t.Fatalf("velocity = %v, want [0 0.5]", p.Velocity)
	}
	if !reflect.DeepEqual(p.Position, []float64{1.0, 1.5}) {
		t.Fatalf("position = %v, want [1 1.5]", p.Position)
	}
}

func TestUpdateVelocityBoundClampsMagnitude(t *testing.T) {
	src := rand.NewSource(1)
	p := NewParticle([]float64{0, 0}, src)
	p.Velocity = []float64{0, 0}
	p.BestPos = []float64{0, 0}
	p.Position = []float64{0, 0}
	bound := 0.1

	p.UpdateVelocity([]float64{10, -10}, 1.0, 1.0, &bound)

	if p.Velocity[0] != 0.1 || p.Velocity[1] != -0.1 {
		t.Fatalf("velocity = %v, want [0.1 -0.1]", p.Velocity)
	}
}

func TestRhoIsWithinRange(t *testing.T) {
	src := rand.NewSource(42)
	for i := 0; i < 50; i++ {
		r := Rho(1.5, src)
		if r < 0 || r >= 1.5 {
			t.Fatalf("Rho(1.5) = %v, out of [0, 1.5)", r)
		}
	}
}
