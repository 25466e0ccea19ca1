// Package optimize implements particle-swarm optimization over a fuzzy
// engine's membership-function parameters, validated by k-fold
// walk-forward training.
package optimize

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// maxFloat seeds a particle's personal-best score before it has ever been
// evaluated, so any real objective value immediately improves on it.
const maxFloat = 1.797693134862315708145274237317043567981e+308

// Particle is a single PSO candidate: its current position and velocity
// in parameter space, and the best position/score it has individually
// found so far.
type Particle struct {
	Position []float64
	Velocity []float64
	BestPos  []float64
	BestF    float64
}

// NewParticle seeds a particle at startPos with a random velocity and a
// position drawn uniformly between the min and max of startPos's own
// coordinates — matching the reference swarm's bootstrap, which has no
// notion of per-coordinate bounds beyond the starting preset's own
// spread.
func NewParticle(startPos []float64, src rand.Source) *Particle {
	n := len(startPos)
	speedDist := distuv.Uniform{Min: -1, Max: 1, Src: src}
	velocity := make([]float64, n)
	for i := range velocity {
		velocity[i] = speedDist.Rand()
	}

	lo, hi := startPos[0], startPos[0]
	for _, v := range startPos {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	posDist := distuv.Uniform{Min: lo, Max: hi, Src: src}
	position := make([]float64, n)
	for i := range position {
		position[i] = posDist.Rand()
	}

	return &Particle{
		Position: position,
		Velocity: velocity,
		BestPos:  append([]float64(nil), position...),
		BestF:    maxFloat,
	}
}

// UpdateVelocity applies the PSO velocity rule with inertia weight 1,
// cognitive term rho1 toward the particle's own best, and social term
// rho2 toward groupBest. bound, when non-nil, clamps each resulting
// coordinate's magnitude — an opt-in extension absent from the reference
// swarm, which never clamps velocity.
func (p *Particle) UpdateVelocity(groupBest []float64, rho1, rho2 float64, bound *float64) {
	const w = 1.0
	for i := range p.Velocity {
		v := w*p.Velocity[i] + rho1*(p.BestPos[i]-p.Position[i]) + rho2*(groupBest[i]-p.Position[i])
		if bound != nil {
			if v > *bound {
				v = *bound
			}
			if v < -*bound {
				v = -*bound
			}
		}
		p.Velocity[i] = v
	}
}

// Move advances the particle's position by its current velocity.
func (p *Particle) Move() {
	for i := range p.Position {
		p.Position[i] += p.Velocity[i]
	}
}

// Rho draws one PSO update coefficient uniformly from [0, c) — c is 1.0
// for the cognitive term, 1.5 for the social term, redrawn every
// particle/epoch per the reference swarm's gen_rho.
func Rho(c float64, src rand.Source) float64 {
	return distuv.Uniform{Min: 0, Max: c, Src: src}.Rand()
}
