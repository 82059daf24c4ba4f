package core

import (
	"github.com/ttlint/ttlint/internal/engine"
	"github.com/ttlint/ttlint/internal/lint"
	"github.com/ttlint/ttlint/internal/rules"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Result = engine.Result
type Diagnostic = lint.Diagnostic
type Sink = lint.Sink

// Run lints every configured target and emits diagnostics to sink.
// It is the stable entrypoint for other programs.
func Run(cfg Config, sink Sink) (Result, error) {
	return engine.Run(cfg, sink)
}

// LintBytes runs the scan-and-rewrite engine over an in-memory buffer using
// the built-in rules plus the given user literals. It returns whether any
// diagnostic was emitted and the buffer to persist (the input itself when fix
// is off).
func LintBytes(path string, contents []byte, userPatterns []string, sink Sink, fix bool) (bool, []byte, error) {
	set, err := rules.Compile(userPatterns)
	if err != nil {
		return false, nil, err
	}
	return lint.Bytes(path, contents, set, sink, fix)
}
