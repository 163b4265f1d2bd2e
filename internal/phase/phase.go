package phase

// Phase is the companion's current cognitive/activity mode, as reported by
// the backend over its state channel.
type Phase string

const (
	Idle     Phase = "idle"
	Thinking Phase = "thinking"
	Memory   Phase = "memory"
	Decision Phase = "decision"
	Profile  Phase = "profile"
)

// Names lists the recognized phases in a stable order.
func Names() []Phase {
	return []Phase{Idle, Thinking, Memory, Decision, Profile}
}

// Params is one configuration of the blob's motion model. The values are
// relative tuning knobs, not physical units.
type Params struct {
	Speed       float64
	Cohesion    float64
	Separation  float64
	Chaos       float64
	Pulse       float64
	RadiusScale float64
	Swirl       float64
}

// Approach relaxes each field toward target by a fixed rate. The result is a
// convex combination, so a field never overshoots its target and never
// diverges.
func (p Params) Approach(target Params, rate float64) Params {
	lerp := func(a, b float64) float64 { return a*(1-rate) + b*rate }
	return Params{
		Speed:       lerp(p.Speed, target.Speed),
		Cohesion:    lerp(p.Cohesion, target.Cohesion),
		Separation:  lerp(p.Separation, target.Separation),
		Chaos:       lerp(p.Chaos, target.Chaos),
		Pulse:       lerp(p.Pulse, target.Pulse),
		RadiusScale: lerp(p.RadiusScale, target.RadiusScale),
		Swirl:       lerp(p.Swirl, target.Swirl),
	}
}

// Fields returns the parameter vector in the order used by trace headers.
func (p Params) Fields() []float64 {
	return []float64{p.Speed, p.Cohesion, p.Separation, p.Chaos, p.Pulse, p.RadiusScale, p.Swirl}
}

// FieldNames matches the order of Fields.
func FieldNames() []string {
	return []string{"speed", "cohesion", "separation", "chaos", "pulse", "radius_scale", "swirl"}
}

var presets = map[Phase]Params{
	Idle: {
		Speed:       0.4,
		Cohesion:    0.006,
		Separation:  0.03,
		Chaos:       0,
		Pulse:       0,
		RadiusScale: 1.0,
		Swirl:       0.001,
	},
	Thinking: {
		Speed:       1.2,
		Cohesion:    0.008,
		Separation:  0.3,
		Chaos:       0.9,
		Pulse:       0,
		RadiusScale: 1.0,
		Swirl:       0.01,
	},
	Memory: {
		Speed:       1.0,
		Cohesion:    0.045,
		Separation:  0,
		Chaos:       0,
		Pulse:       0,
		RadiusScale: 0.8,
		Swirl:       0,
	},
	Decision: {
		Speed:       0.8,
		Cohesion:    0.01,
		Separation:  0,
		Chaos:       0,
		Pulse:       0.5,
		RadiusScale: 1.0,
		Swirl:       0,
	},
	Profile: {
		Speed:       1.0,
		Cohesion:    0.008,
		Separation:  0.15,
		Chaos:       0,
		Pulse:       0,
		RadiusScale: 1.25,
		Swirl:       0.008,
	},
}

// PresetFor resolves a phase label to its target parameter vector. Labels
// outside the recognized set fall back to the idle preset, so the lookup
// never fails.
func PresetFor(name string) Params {
	if p, ok := presets[Phase(name)]; ok {
		return p
	}
	return presets[Idle]
}
