// Package main hosts the spritegen CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, applies per-run flag
// overrides, and hands the assembly work to the internal pipeline. Utility
// subcommands cover external tool diagnostics, export format listings, input
// inspection, and configuration scaffolding.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
