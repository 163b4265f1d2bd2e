package phase

import (
	"math"
	"testing"
)

func TestPresetFor_Fallback(t *testing.T) {
	idle := PresetFor("idle")
	for _, name := range []string{"", "unknown", "IDLE", "think", "sleeping"} {
		got := PresetFor(name)
		if got != idle {
			t.Errorf("PresetFor(%q) = %+v, want idle preset", name, got)
		}
	}
}

func TestPresetFor_Recognized(t *testing.T) {
	for _, name := range Names() {
		p := PresetFor(string(name))
		if p.RadiusScale <= 0 {
			t.Errorf("%s: radius scale should be positive, got %f", name, p.RadiusScale)
		}
		if p.Speed <= 0 {
			t.Errorf("%s: speed should be positive, got %f", name, p.Speed)
		}
	}
}

func TestPresetShape(t *testing.T) {
	idle := PresetFor("idle")
	memory := PresetFor("memory")
	decision := PresetFor("decision")
	profile := PresetFor("profile")
	thinking := PresetFor("thinking")

	if memory.Cohesion <= idle.Cohesion {
		t.Error("memory should collapse inward harder than idle")
	}
	if memory.RadiusScale >= 1.0 {
		t.Errorf("memory radius scale should shrink, got %f", memory.RadiusScale)
	}
	if profile.RadiusScale <= 1.0 {
		t.Errorf("profile radius scale should grow, got %f", profile.RadiusScale)
	}
	if decision.Pulse <= 0 {
		t.Error("decision should pulse")
	}
	if thinking.Chaos <= 0 {
		t.Error("thinking should jitter")
	}
	if idle.Chaos != 0 || idle.Pulse != 0 {
		t.Error("idle should not jitter or pulse")
	}
}

func TestApproach_Betweenness(t *testing.T) {
	active := PresetFor("idle")
	target := PresetFor("decision")

	for frame := 0; frame < 200; frame++ {
		next := active.Approach(target, 0.04)
		for i, v := range next.Fields() {
			prev := active.Fields()[i]
			tgt := target.Fields()[i]
			lo, hi := math.Min(prev, tgt), math.Max(prev, tgt)
			if v < lo-1e-12 || v > hi+1e-12 {
				t.Fatalf("frame %d field %s: %f outside [%f, %f]",
					frame, FieldNames()[i], v, lo, hi)
			}
		}
		active = next
	}
}

func TestApproach_Converges(t *testing.T) {
	starts := []Params{
		{},
		PresetFor("thinking"),
		{Speed: 100, Cohesion: -5, Pulse: 42, RadiusScale: 0.001},
	}
	target := PresetFor("memory")

	for _, active := range starts {
		for frame := 0; frame < 1000; frame++ {
			active = active.Approach(target, 0.04)
		}
		for i, v := range active.Fields() {
			if math.Abs(v-target.Fields()[i]) > 1e-6 {
				t.Errorf("field %s did not converge: %f vs %f",
					FieldNames()[i], v, target.Fields()[i])
			}
		}
	}
}

func TestFieldNames_MatchesFields(t *testing.T) {
	if len(FieldNames()) != len(Params{}.Fields()) {
		t.Fatal("field name count mismatch")
	}
}
