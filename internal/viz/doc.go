// Package viz provides a terminal preview of the presence blob for working
// on presets without a GPU window.
//
// The preview runs the same engine as the GUI, drawn on an ASCII canvas with
// convergence graphs for the active parameters underneath:
//
//	1-5   - force a phase (idle, thinking, memory, decision, profile)
//	Space - pause/resume
//	Q     - quit
//
// The canvas has no blur pass, so the blob appears as its raw discs.
package viz
