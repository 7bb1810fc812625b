package entities

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/cavestrike/pkg/config"
)

// Particle is a purely visual entity spawned in bursts by destructions.
// Particles have no gameplay effect and never participate in collision.
type Particle struct {
	Object

	VX    float64
	VY    float64
	Color color.RGBA
	Life  int // remaining frames; the particle deactivates at 0
	Total int // initial lifetime, kept for render-side fading
}

// Update advances the particle by one frame.
// A slight downward pull makes bursts settle instead of expanding forever.
func (p *Particle) Update() {
	if !p.Active {
		return
	}

	p.X += p.VX
	p.Y += p.VY
	p.VY += 0.05

	p.Life--
	if p.Life <= 0 {
		p.Deactivate()
	}
}

// NewExplosionBurst creates count particles scattering from (x, y).
// Directions are uniform around the circle with randomized speed and lifetime.
func NewExplosionBurst(rng *rand.Rand, x, y float64, count int, clr color.RGBA) []*Particle {
	burst := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 0.5 + rng.Float64()*2.5
		life := config.ParticleMinLife + rng.Intn(config.ParticleMaxLife-config.ParticleMinLife+1)

		burst = append(burst, &Particle{
			Object: Object{
				X:      x,
				Y:      y,
				Width:  3,
				Height: 3,
				Active: true,
			},
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Color: clr,
			Life:  life,
			Total: life,
		})
	}
	return burst
}
