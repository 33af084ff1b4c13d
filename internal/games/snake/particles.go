package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Particle is a short-lived decorative dot thrown out when food is eaten.
// Positions and velocities are in canvas pixels.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Alpha  float64
	Color  string
}

// ParticleConfig controls the food burst effect.
type ParticleConfig struct {
	Enabled bool
	Count   int     // Particles per burst
	Spread  float64 // Velocity components are uniform in [-Spread/2, Spread/2)
	Decay   float64 // Alpha lost per tick
	Color   string
}

// Particles is the live particle set.
// It has its own RNG so bursts never shift the food placement sequence.
type Particles struct {
	cfg  ParticleConfig
	rng  *rand.Rand
	live []Particle
}

// NewParticles creates an empty particle set.
func NewParticles(cfg ParticleConfig, seed int64) *Particles {
	return &Particles{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Spawn adds a burst at the pixel center of origin.
func (p *Particles) Spawn(origin core.Cell, grid core.Grid) {
	if !p.cfg.Enabled {
		return
	}
	cx, cy := grid.CellCenter(origin)
	for range p.cfg.Count {
		p.live = append(p.live, Particle{
			X:     cx,
			Y:     cy,
			VX:    (p.rng.Float64() - 0.5) * p.cfg.Spread,
			VY:    (p.rng.Float64() - 0.5) * p.cfg.Spread,
			Alpha: 1,
			Color: p.cfg.Color,
		})
	}
}

// Advance moves every particle one tick and drops the faded ones.
func (p *Particles) Advance() {
	kept := p.live[:0]
	for _, pt := range p.live {
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.Alpha -= p.cfg.Decay
		if pt.Alpha > 0 {
			kept = append(kept, pt)
		}
	}
	clear(p.live[len(kept):])
	p.live = kept
}

// Clear removes all particles.
func (p *Particles) Clear() {
	p.live = nil
}

// Len returns the number of live particles.
func (p *Particles) Len() int {
	return len(p.live)
}

// Snapshot returns a copy of the live particles.
func (p *Particles) Snapshot() []Particle {
	if len(p.live) == 0 {
		return nil
	}
	out := make([]Particle, len(p.live))
	copy(out, p.live)
	return out
}
