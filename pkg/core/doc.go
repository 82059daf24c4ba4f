// Package core is the stable embedding surface for ttlint. It re-exports the
// internal engine's configuration and entrypoints so other programs can run
// the linter without depending on internal packages.
package core
