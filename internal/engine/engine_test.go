package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/aura/internal/engine"
	"github.com/san-kum/aura/internal/phase"
)

const frameDt = 1.0 / 60.0

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		e = engine.New(engine.DefaultCount, 42)
		e.Resize(480, 360)
	})

	Describe("particle store initialization", func() {
		It("creates exactly count particles", func() {
			Expect(e.Particles()).To(HaveLen(engine.DefaultCount))
		})

		It("places all particles inside the surface with zero velocity", func() {
			w, h := e.Size()
			for _, p := range e.Particles() {
				Expect(p.X).To(BeNumerically(">", 0))
				Expect(p.X).To(BeNumerically("<", w))
				Expect(p.Y).To(BeNumerically(">", 0))
				Expect(p.Y).To(BeNumerically("<", h))
				Expect(p.VX).To(BeZero())
				Expect(p.VY).To(BeZero())
			}
		})

		It("gives every particle a bounded base radius and a phase offset", func() {
			for _, p := range e.Particles() {
				Expect(p.BaseRadius).To(BeNumerically(">", 0))
				Expect(p.PhaseOffset).To(BeNumerically(">=", 0))
				Expect(p.PhaseOffset).To(BeNumerically("<", 2*math.Pi))
			}
		})

		It("does not reinitialize while the size is unchanged", func() {
			Expect(e.Resize(480, 360)).To(BeFalse())
		})
	})

	Describe("parameter smoothing", func() {
		It("keeps each field strictly between its previous value and the target", func() {
			target := phase.PresetFor("decision")
			prev := e.Params()
			for frame := 0; frame < 300; frame++ {
				e.Step(target, frameDt)
				next := e.Params()
				for i, v := range next.Fields() {
					lo := math.Min(prev.Fields()[i], target.Fields()[i])
					hi := math.Max(prev.Fields()[i], target.Fields()[i])
					Expect(v).To(BeNumerically(">=", lo-1e-12))
					Expect(v).To(BeNumerically("<=", hi+1e-12))
				}
				prev = next
			}
		})

		It("raises the pulse magnitude monotonically after an idle to decision switch", func() {
			target := phase.PresetFor("decision")
			last := e.Params().Pulse
			for frame := 0; frame < 500; frame++ {
				e.Step(target, frameDt)
				pulse := e.Params().Pulse
				Expect(pulse).To(BeNumerically(">", last))
				Expect(pulse).To(BeNumerically("<", target.Pulse))
				last = pulse
			}
		})
	})

	Describe("sustained idle", func() {
		It("settles near the idle preset without touching the boundary", func() {
			idle := phase.PresetFor("idle")
			for frame := 0; frame < 1000; frame++ {
				e.Step(idle, frameDt)
			}
			p := e.Params()
			Expect(p.Cohesion).To(BeNumerically("~", 0.006, 1e-4))
			Expect(p.Separation).To(BeNumerically("~", 0.03, 1e-3))
			Expect(p.Swirl).To(BeNumerically("~", 0.001, 1e-4))
			Expect(e.Bounces()).To(BeZero())
		})
	})

	Describe("boundary containment", func() {
		It("never lets a particle end a step outside the inset bounds", func() {
			violent := phase.Params{
				Speed: 5, Cohesion: 0.002, Separation: 1.5,
				Chaos: 8, Pulse: 0, RadiusScale: 1, Swirl: 0.05,
			}
			w, h := e.Size()
			for frame := 0; frame < 600; frame++ {
				e.Step(violent, frameDt)
				for _, p := range e.Particles() {
					Expect(p.X).To(BeNumerically(">=", 12))
					Expect(p.X).To(BeNumerically("<=", w-12))
					Expect(p.Y).To(BeNumerically(">=", 12))
					Expect(p.Y).To(BeNumerically("<=", h-12))
				}
			}
		})
	})

	Describe("radius modulation", func() {
		It("never renders a negative radius, even with extreme pulse values", func() {
			extreme := phase.Params{Speed: 1, RadiusScale: 1, Pulse: 50}
			for frame := 0; frame < 600; frame++ {
				e.Step(extreme, frameDt)
				for i := range e.Particles() {
					Expect(e.Radius(i)).To(BeNumerically(">=", 0))
				}
			}
		})

		It("tracks the active radius scale", func() {
			memory := phase.PresetFor("memory")
			for frame := 0; frame < 1000; frame++ {
				e.Step(memory, frameDt)
			}
			// Pulse is zero in memory, so only breathing (±12%) modulates the
			// shrunken base radii.
			for i, p := range e.Particles() {
				Expect(e.Radius(i)).To(BeNumerically("<", p.BaseRadius))
			}
		})
	})

	Describe("surface resize", func() {
		It("keeps the population constant and respawns inside the new bounds", func() {
			idle := phase.PresetFor("idle")
			for frame := 0; frame < 120; frame++ {
				e.Step(idle, frameDt)
			}
			Expect(e.Resize(200, 150)).To(BeTrue())
			Expect(e.Particles()).To(HaveLen(engine.DefaultCount))
			e.Step(idle, frameDt)
			for _, p := range e.Particles() {
				Expect(p.X).To(BeNumerically(">=", 12))
				Expect(p.X).To(BeNumerically("<=", 188))
				Expect(p.Y).To(BeNumerically(">=", 12))
				Expect(p.Y).To(BeNumerically("<=", 138))
			}
		})

		It("survives losing the surface entirely", func() {
			Expect(e.Resize(0, 0)).To(BeTrue())
			Expect(e.Particles()).To(BeEmpty())
			e.Step(phase.PresetFor("thinking"), frameDt)
			Expect(e.Resize(480, 360)).To(BeTrue())
			Expect(e.Particles()).To(HaveLen(engine.DefaultCount))
		})
	})
})
