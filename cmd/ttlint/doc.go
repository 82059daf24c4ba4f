// Package ttlint provides the command-line interface for the ttlint tool.
// It configures subcommands (check, fix, rules, version), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/ttlint/ttlint/cmd/ttlint"
//	func main() { ttlint.Execute() }
package ttlint
