package entities

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/decker502/cavestrike/pkg/config"
)

// TestNewExplosionBurst checks burst size and per-particle initialization.
func TestNewExplosionBurst(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clr := color.RGBA{R: 255, G: 100, B: 50, A: 255}

	burst := NewExplosionBurst(rng, 300, 150, 12, clr)

	if len(burst) != 12 {
		t.Fatalf("Expected 12 particles, got %d", len(burst))
	}

	for i, p := range burst {
		if !p.Active {
			t.Errorf("Particle %d: Expected active", i)
		}
		if p.X != 300 || p.Y != 150 {
			t.Errorf("Particle %d: Expected origin (300, 150), got (%v, %v)", i, p.X, p.Y)
		}
		if p.Color != clr {
			t.Errorf("Particle %d: Expected burst color, got %v", i, p.Color)
		}
		if p.Life < config.ParticleMinLife || p.Life > config.ParticleMaxLife {
			t.Errorf("Particle %d: Expected life in [%d, %d], got %d",
				i, config.ParticleMinLife, config.ParticleMaxLife, p.Life)
		}
		if p.Total != p.Life {
			t.Errorf("Particle %d: Expected Total to match initial Life, got %d vs %d", i, p.Total, p.Life)
		}
		if p.VX == 0 && p.VY == 0 {
			t.Errorf("Particle %d: Expected nonzero velocity", i)
		}
	}
}

// TestParticleExpiry checks that a particle dies exactly when its life runs out.
func TestParticleExpiry(t *testing.T) {
	p := &Particle{
		Object: Object{X: 0, Y: 0, Width: 3, Height: 3, Active: true},
		VX:     1,
		Life:   5,
		Total:  5,
	}

	for i := 0; i < 4; i++ {
		p.Update()
		if !p.Active {
			t.Fatalf("Expected particle alive at life %d", p.Life)
		}
	}

	p.Update()
	if p.Active {
		t.Error("Expected particle to deactivate at zero life")
	}
}

// TestParticleMotion checks drift plus the downward settle pull.
func TestParticleMotion(t *testing.T) {
	p := &Particle{
		Object: Object{X: 100, Y: 100, Width: 3, Height: 3, Active: true},
		VX:     2,
		VY:     -1,
		Life:   30,
	}

	p.Update()
	if p.X != 102 {
		t.Errorf("Expected X 102, got %v", p.X)
	}
	if p.Y != 99 {
		t.Errorf("Expected Y 99, got %v", p.Y)
	}
	// Gravity is applied after the position step.
	if p.VY != -0.95 {
		t.Errorf("Expected VY -0.95, got %v", p.VY)
	}
}
