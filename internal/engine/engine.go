package engine

import (
	"math"
	"math/rand"

	"github.com/san-kum/aura/internal/phase"
)

const (
	// DefaultCount is the particle population; the blob reads as a single
	// organism with a small population, and the post filter fuses the discs.
	DefaultCount = 14

	// SmoothRate is the per-frame relaxation rate toward the phase preset.
	SmoothRate = 0.04

	damping       = 0.92
	bounceDamping = 0.5
	boundInset    = 12.0

	nearCenterRadius = 80.0
	separationGain   = 0.08

	wanderAmp   = 0.05
	wanderFreqA = 0.9
	wanderFreqB = 1.3

	spawnSpread   = 30.0
	minBaseRadius = 9.0
	maxBaseRadius = 16.0

	pulseFreqA = 4.2
	pulseFreqB = 6.9
	pulseMixA  = 0.5
	pulseMixB  = 0.35

	breatheAmp  = 0.12
	breatheFreq = 1.8
)

// Particle is one simulated point mass. BaseRadius and PhaseOffset are fixed
// at creation; PhaseOffset desynchronizes the per-particle oscillators so the
// blob does not pulse in unison.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	BaseRadius  float64
	PhaseOffset float64
}

// Engine owns the particle store and the active parameter vector. No other
// component mutates either.
type Engine struct {
	params    phase.Params
	particles []Particle
	count     int
	width     float64
	height    float64
	elapsed   float64
	rate      float64
	bounces   int
	rng       *rand.Rand
}

// New creates an engine with no surface yet; the first Resize call
// initializes the particle store.
func New(count int, seed int64) *Engine {
	if count <= 0 {
		count = DefaultCount
	}
	return &Engine{
		params: phase.PresetFor("idle"),
		count:  count,
		rate:   SmoothRate,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Resize records the current surface dimensions and reinitializes the
// particle store if they changed. Returns true when a reinit happened.
// A non-positive surface is treated as "nothing to render": the store is
// left empty and the next Resize with real dimensions recovers.
func (e *Engine) Resize(width, height float64) bool {
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	if width <= 0 || height <= 0 {
		e.particles = nil
		return true
	}
	e.particles = make([]Particle, e.count)
	cx, cy := width/2, height/2
	for i := range e.particles {
		e.particles[i] = Particle{
			X:           cx + (e.rng.Float64()*2-1)*spawnSpread,
			Y:           cy + (e.rng.Float64()*2-1)*spawnSpread,
			BaseRadius:  minBaseRadius + e.rng.Float64()*(maxBaseRadius-minBaseRadius),
			PhaseOffset: e.rng.Float64() * 2 * math.Pi,
		}
	}
	return true
}

// Step advances the animation by one frame: relax the active parameters
// toward target, then accumulate forces, damp, integrate, and contain every
// particle. dt is the frame interval in seconds and only drives the
// oscillator clocks; the smoother rate is per-frame by design.
func (e *Engine) Step(target phase.Params, dt float64) {
	e.params = e.params.Approach(target, e.rate)
	if len(e.particles) == 0 {
		return
	}
	e.elapsed += dt

	pr := e.params
	cx, cy := e.width/2, e.height/2

	for i := range e.particles {
		p := &e.particles[i]
		dx, dy := cx-p.X, cy-p.Y

		p.VX += dx * pr.Cohesion
		p.VY += dy * pr.Cohesion

		if math.Hypot(dx, dy) < nearCenterRadius {
			p.VX -= dx * separationGain * pr.Separation
			p.VY -= dy * separationGain * pr.Separation
		}

		// Perpendicular of the center offset; rotation direction is fixed.
		p.VX += -dy * pr.Swirl
		p.VY += dx * pr.Swirl

		p.VX += wanderAmp * math.Sin(e.elapsed*wanderFreqA+p.PhaseOffset)
		p.VY += wanderAmp * math.Cos(e.elapsed*wanderFreqB+p.PhaseOffset*1.7)

		if pr.Chaos > 0 {
			p.VX += (e.rng.Float64()*2 - 1) * pr.Chaos
			p.VY += (e.rng.Float64()*2 - 1) * pr.Chaos
		}

		p.VX *= damping
		p.VY *= damping

		p.X += p.VX * pr.Speed
		p.Y += p.VY * pr.Speed

		e.contain(p)
	}
}

func (e *Engine) contain(p *Particle) {
	if p.X < boundInset {
		p.X = boundInset
		p.VX = -p.VX * bounceDamping
		e.bounces++
	} else if p.X > e.width-boundInset {
		p.X = e.width - boundInset
		p.VX = -p.VX * bounceDamping
		e.bounces++
	}
	if p.Y < boundInset {
		p.Y = boundInset
		p.VY = -p.VY * bounceDamping
		e.bounces++
	} else if p.Y > e.height-boundInset {
		p.Y = e.height - boundInset
		p.VY = -p.VY * bounceDamping
		e.bounces++
	}
}

// pulseFactor is shared by all particles: two summed sine waves scaled by
// the active pulse magnitude.
func (e *Engine) pulseFactor() float64 {
	return 1 + e.params.Pulse*(pulseMixA*math.Sin(e.elapsed*pulseFreqA)+
		pulseMixB*math.Sin(e.elapsed*pulseFreqB))
}

// Radius returns the rendered disc radius of particle i this frame, floored
// at zero.
func (e *Engine) Radius(i int) float64 {
	p := e.particles[i]
	breathe := 1 + breatheAmp*math.Sin(e.elapsed*breatheFreq+p.PhaseOffset)
	r := p.BaseRadius * e.params.RadiusScale * e.pulseFactor() * breathe
	if r < 0 {
		return 0
	}
	return r
}

// Particles exposes the store for rendering. Callers must not mutate it.
func (e *Engine) Particles() []Particle { return e.particles }

// Params returns the active parameter vector.
func (e *Engine) Params() phase.Params { return e.params }

// Size returns the last recorded surface dimensions.
func (e *Engine) Size() (float64, float64) { return e.width, e.height }

// Bounces counts boundary hits since creation; useful for tuning and shown
// in the debug overlay.
func (e *Engine) Bounces() int { return e.bounces }

// Elapsed is the oscillator clock in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// MeanRadius averages the current rendered radii.
func (e *Engine) MeanRadius() float64 {
	if len(e.particles) == 0 {
		return 0
	}
	sum := 0.0
	for i := range e.particles {
		sum += e.Radius(i)
	}
	return sum / float64(len(e.particles))
}

// Spread averages particle distance from the surface center.
func (e *Engine) Spread() float64 {
	if len(e.particles) == 0 {
		return 0
	}
	cx, cy := e.width/2, e.height/2
	sum := 0.0
	for _, p := range e.particles {
		sum += math.Hypot(p.X-cx, p.Y-cy)
	}
	return sum / float64(len(e.particles))
}
