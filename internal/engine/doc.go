// Package engine implements the particle model behind the companion's
// presence blob.
//
// The engine owns a fixed population of point masses and an active parameter
// vector that it relaxes toward a phase preset every frame:
//
//   - [Engine.Resize]: reinitializes the particle store when the drawing
//     surface changes size
//   - [Engine.Step]: one smoother step plus one force/integration pass
//   - [Engine.Radius]: the rendered disc radius for a particle, modulated by
//     the shared pulse oscillator and the particle's own breathing cycle
//
// # Force model
//
// Per particle, forces accumulate into velocity in a fixed order: cohesion
// spring toward the surface center, a separation push that only acts inside
// a near-center threshold, a tangential swirl, a two-oscillator wander keyed
// on the particle's phase offset, and uniform chaos jitter. Damping is
// applied once after accumulation, which keeps the spring stable, and the
// position update is scaled by the active speed multiplier. Particles that
// cross the inset bounds are clamped and bounced inelastically.
//
// The engine is single-threaded: all mutation happens inside Step and
// Resize, which the scheduler calls once per display frame.
package engine
