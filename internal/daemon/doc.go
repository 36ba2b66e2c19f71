// Package daemon assembles a complete engine runtime for the demo daemon:
// sinks from configuration, sample emitters across several goroutines, the
// Prometheus endpoint, live config re-application, and single-instance
// enforcement through a lock file.
package daemon
