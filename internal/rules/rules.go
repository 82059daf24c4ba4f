// Package rules defines what ttlint flags: a fixed table of built-in byte
// patterns plus user-supplied literal strings, compiled into a single
// searchable set. The built-ins occupy a stable prefix of the compiled set and
// user literals follow in the order supplied.
package rules

import (
	"fmt"

	"github.com/ttlint/ttlint/internal/match"
)

// Reason identifies why a span was flagged. It replaces positional index
// arithmetic: every rule carries its reason explicitly.
type Reason string

const (
	ReasonConflictStart Reason = "conflict_start"
	ReasonConflictSep   Reason = "conflict_separator"
	ReasonConflictEnd   Reason = "conflict_end"
	ReasonTrailingSpace Reason = "trailing_space"
	ReasonTrailingTab   Reason = "trailing_tab"
	ReasonCarriageRet   Reason = "carriage_return"
	ReasonByteOrderMark Reason = "byte_order_mark"
	ReasonUserPattern   Reason = "user_pattern"
)

// Rule is one searchable pattern. A rule whose pattern begins with a newline
// is line-anchored: it can only match at a line boundary because the newline
// itself is part of the matched bytes.
type Rule struct {
	Reason  Reason
	Pattern []byte
	Message string
}

// Anchored reports whether the rule only matches at line boundaries.
func (r Rule) Anchored() bool {
	return len(r.Pattern) > 0 && r.Pattern[0] == '\n'
}

// EndsInNewline reports whether the matched bytes consume the line's own
// newline, which the rewriter must put back.
func (r Rule) EndsInNewline() bool {
	return len(r.Pattern) > 0 && r.Pattern[len(r.Pattern)-1] == '\n'
}

// Builtins returns the fixed rule table. Order is load-bearing: the compiled
// set places these at indexes 0..5 ahead of any user rules.
func Builtins() []Rule {
	return []Rule{
		{Reason: ReasonConflictStart, Pattern: []byte("\n<<<<<<<"), Message: "merge conflict start marker"},
		{Reason: ReasonConflictSep, Pattern: []byte("\n======="), Message: "merge conflict separator"},
		{Reason: ReasonConflictEnd, Pattern: []byte("\n>>>>>>>"), Message: "merge conflict end marker"},
		{Reason: ReasonTrailingSpace, Pattern: []byte(" \n"), Message: "trailing whitespace"},
		{Reason: ReasonTrailingTab, Pattern: []byte("\t\n"), Message: "trailing whitespace"},
		{Reason: ReasonCarriageRet, Pattern: []byte("\r"), Message: "carriage return"},
	}
}

// Set is a compiled rule list plus the automaton that searches all of its
// patterns in one pass. Immutable after Compile; safe for concurrent use.
type Set struct {
	rules []Rule
	ac    *match.Automaton
}

// Compile builds the searchable set from the built-in table followed by the
// given user literals. A user literal's message is the literal itself.
// Empty literals are a caller error.
func Compile(userPatterns []string) (*Set, error) {
	rs := Builtins()
	for i, p := range userPatterns {
		if p == "" {
			return nil, fmt.Errorf("user pattern %d is empty", i)
		}
		rs = append(rs, Rule{Reason: ReasonUserPattern, Pattern: []byte(p), Message: p})
	}
	pats := make([][]byte, len(rs))
	for i, r := range rs {
		pats[i] = r.Pattern
	}
	ac, err := match.New(pats)
	if err != nil {
		return nil, fmt.Errorf("compile rule set: %w", err)
	}
	return &Set{rules: rs, ac: ac}, nil
}

// Rule returns the rule behind a span reported by Find.
func (s *Set) Rule(i int) Rule {
	return s.rules[i]
}

// Len returns the number of compiled rules, built-ins included.
func (s *Set) Len() int {
	return len(s.rules)
}

// Find reports every non-overlapping rule occurrence in data, left to right.
func (s *Set) Find(data []byte) []match.Span {
	return s.ac.Find(data)
}

// Fingerprint is a stable textual identity for the compiled pattern list,
// used to key the clean-file cache: a cache built under one pattern list must
// not satisfy lookups under another.
func (s *Set) Fingerprint() string {
	out := make([]byte, 0, 64)
	for _, r := range s.rules {
		out = append(out, r.Pattern...)
		out = append(out, 0)
	}
	return string(out)
}
