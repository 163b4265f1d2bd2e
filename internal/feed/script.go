package feed

import (
	"context"
	"time"
)

// ScriptStep is one entry in a demo schedule.
type ScriptStep struct {
	Phase   string
	Seconds float64
}

// Script is a looping phase schedule used when no backend is connected.
type Script struct {
	steps []ScriptStep
	total float64
}

// NewScript builds a script from the given steps; steps with non-positive
// durations are dropped. An empty script pins the cell to idle.
func NewScript(steps []ScriptStep) *Script {
	s := &Script{}
	for _, st := range steps {
		if st.Seconds <= 0 {
			continue
		}
		s.steps = append(s.steps, st)
		s.total += st.Seconds
	}
	return s
}

// DefaultScript cycles through every recognized phase, lingering on idle.
func DefaultScript() *Script {
	return NewScript([]ScriptStep{
		{Phase: "idle", Seconds: 6},
		{Phase: "memory", Seconds: 3},
		{Phase: "thinking", Seconds: 5},
		{Phase: "decision", Seconds: 3},
		{Phase: "profile", Seconds: 3},
	})
}

// At returns the scheduled step for an elapsed time, wrapping around the
// schedule's total duration.
func (s *Script) At(elapsed float64) ScriptStep {
	if len(s.steps) == 0 {
		return ScriptStep{Phase: "idle"}
	}
	t := elapsed
	for t >= s.total {
		t -= s.total
	}
	for _, st := range s.steps {
		if t < st.Seconds {
			return st
		}
		t -= st.Seconds
	}
	return s.steps[len(s.steps)-1]
}

// Run drives the cell from the schedule until the context is cancelled.
func (s *Script) Run(ctx context.Context, cell *Cell) {
	start := time.Now()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := s.At(time.Since(start).Seconds())
			cell.Set(st.Phase, st.Phase == "thinking")
		}
	}
}
