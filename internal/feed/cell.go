// Package feed supplies the phase signal that drives the animation: a shared
// mutable cell written by a producer (backend websocket or scripted demo) and
// read fresh by the scheduler at the start of every frame.
package feed

import "sync"

// Cell holds the latest phase label and activity flag. The scheduler reads
// it once per frame; producers overwrite it at arbitrary times, so reads
// always observe the newest value rather than one captured at loop start.
type Cell struct {
	mu       sync.RWMutex
	phase    string
	thinking bool
}

// NewCell starts in the idle phase.
func NewCell() *Cell {
	return &Cell{phase: "idle"}
}

// Set overwrites the current phase and activity flag.
func (c *Cell) Set(phase string, thinking bool) {
	c.mu.Lock()
	c.phase = phase
	c.thinking = thinking
	c.mu.Unlock()
}

// Phase returns the latest phase label and activity flag.
func (c *Cell) Phase() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase, c.thinking
}
