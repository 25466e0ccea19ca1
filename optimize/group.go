package optimize

import "golang.org/x/exp/rand"

// Group is one local-best neighborhood of particles sharing a single
// lbest position. The reference swarm only ever runs a single group, but
// the type stays general so a future multi-group topology doesn't need a
// new data model.
type Group struct {
	Particles []*Particle
	LBestF    float64
	LBestPos  []float64
}

// NewGroups builds groupCount groups of groupSize particles each. Every
// particle in every group starts from the same randomly-drawn bootstrap
// position and velocity — a single Particle is sampled once from startPos
// and then copied — matching the reference swarm's construction, which
// samples one Individual and clones it across the whole population rather
// than drawing each particle independently.
func NewGroups(startPos []float64, groupCount, groupSize int, src rand.Source) []*Group {
	seed := NewParticle(startPos, src)

	groups := make([]*Group, groupCount)
	for g := 0; g < groupCount; g++ {
		particles := make([]*Particle, groupSize)
		for i := range particles {
			particles[i] = cloneParticle(seed)
		}
		groups[g] = &Group{
			Particles: particles,
			LBestF:    maxFloat,
			LBestPos:  append([]float64(nil), seed.Position...),
		}
	}
	return groups
}

func cloneParticle(p *Particle) *Particle {
	return &Particle{
		Position: append([]float64(nil), p.Position...),
		Velocity: append([]float64(nil), p.Velocity...),
		BestPos:  append([]float64(nil), p.BestPos...),
		BestF:    p.BestF,
	}
}
