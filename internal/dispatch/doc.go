// Package dispatch orchestrates one complete emission: acquire the lock,
// format into the shared buffer, filter by module and subscriber
// thresholds, deliver in registration order, release.
//
// Emission is best-effort. A lock timeout drops the message silently;
// logging must never block the caller indefinitely or leak failures into
// application control flow. Registration-time operations, by contrast,
// return their errors, since those are configuration mistakes the caller
// can act on.
package dispatch
