// Package sink provides ready-made subscriber implementations: the colored
// console writer, an append-only log file, a bounded in-memory ring, and a
// SQLite-backed store.
//
// Sinks run synchronously on the emitting context, so anything persistent
// or slow must degrade gracefully rather than block. Delivery failures stay
// inside the sink; the dispatch engine has no contract for them.
package sink
