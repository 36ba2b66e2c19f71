// Package config loads and validates the TOML configuration that sizes the
// dispatch engine, enables levels and sinks, and seeds module thresholds.
//
// The embedded sample_config.toml documents every knob; `lantern config
// init` writes it out. Watcher re-applies threshold changes to a running
// engine without a restart.
package config
