// Package main hosts the Lantern CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into daemon
// runs, level inspection, and configuration scaffolding. It centralizes
// configuration resolution and logging setup so subcommands stay small.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
