package systems

import (
	"image/color"
	"math/rand"

	"github.com/decker502/cavestrike/pkg/entities"
)

// ParticleSystem owns every live explosion particle.
//
// Particles are visual-only: they never collide and never affect
// scoring, so this system keeps running even while the rest of the
// simulation is frozen (pause, stage transition, terminal screens).
type ParticleSystem struct {
	rng       *rand.Rand
	particles []*entities.Particle
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{rng: rng}
}

// SpawnBurst scatters count particles from (x, y) in the given color.
func (ps *ParticleSystem) SpawnBurst(x, y float64, count int, clr color.RGBA) {
	ps.particles = append(ps.particles, entities.NewExplosionBurst(ps.rng, x, y, count, clr)...)
}

// Update advances all particles one frame and drops the expired ones.
func (ps *ParticleSystem) Update() {
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		p.Update()
		if p.Active {
			kept = append(kept, p)
		}
	}
	// Clear the tail so dropped particles can be collected.
	for i := len(kept); i < len(ps.particles); i++ {
		ps.particles[i] = nil
	}
	ps.particles = kept
}

// Particles returns the live particle list for rendering.
func (ps *ParticleSystem) Particles() []*entities.Particle {
	return ps.particles
}

// Count returns the number of live particles.
func (ps *ParticleSystem) Count() int {
	return len(ps.particles)
}

// Reset drops all particles. Used when a fresh run starts.
func (ps *ParticleSystem) Reset() {
	ps.particles = nil
}
