// Package lint contains the single-pass scan-and-rewrite engine. Given a
// compiled rule set it walks the input bytes once, emits one diagnostic per
// match with a 1-based line/column, and (in fix mode) assembles a rewritten
// buffer with every matched span removed.
//
// A fix pass removes every occurrence found in one scan; it does not iterate.
// Built-in rules cannot reappear mid-buffer after a pass except where a
// trailing-whitespace run is longer than one character (each pass strips the
// final whitespace byte of the run), and a user literal can in principle be
// re-formed by the bytes on either side of an excised span. Re-running until
// clean converges.
package lint

import (
	"bytes"

	"github.com/ttlint/ttlint/internal/rules"
)

// Diagnostic is one reported violation. Line and Col are 1-based and refer to
// the first byte of the offending content (for line-anchored rules, the byte
// after the anchoring newline).
type Diagnostic struct {
	Path    string       `json:"path"`
	Line    int          `json:"line"`
	Col     int          `json:"col"`
	Reason  rules.Reason `json:"rule"`
	Message string       `json:"message"`
}

// Sink receives diagnostics as they are found. A Sink error is fatal to the
// scan: the engine stops and propagates it.
type Sink interface {
	Emit(d Diagnostic) error
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Bytes lints contents and returns whether anything was flagged, plus the
// buffer the caller should persist. With fix off the returned buffer is the
// input itself; with fix on it is the rewritten copy (which callers compare
// against the input to decide whether to write).
//
// A UTF-8 byte-order mark at offset 0 is reported at 1:1 and, in fix mode,
// stripped before the pattern scan runs. Without fix the pattern scan runs
// over the unmodified buffer including the BOM bytes, so line 1 columns can
// differ between fix and no-fix runs of the same file. That asymmetry is
// intentional and pinned by tests.
func Bytes(path string, contents []byte, set *rules.Set, sink Sink, fix bool) (bool, []byte, error) {
	bad := bytes.HasPrefix(contents, bom)
	if bad {
		d := Diagnostic{Path: path, Line: 1, Col: 1, Reason: rules.ReasonByteOrderMark, Message: "UTF-8 byte-order mark"}
		if err := sink.Emit(d); err != nil {
			return false, nil, err
		}
	}
	scan := contents
	if bad && fix {
		scan = contents[len(bom):]
	}
	patBad, fixed, err := scanPatterns(path, scan, set, sink, fix)
	if err != nil {
		return false, nil, err
	}
	return bad || patBad, fixed, nil
}

// cursor is the incremental position state threaded through one scan. It only
// moves forward; line/col always agree with offset for the scanned prefix.
type cursor struct {
	offset int
	line   int
	col    int
}

func scanPatterns(path string, contents []byte, set *rules.Set, sink Sink, fix bool) (bool, []byte, error) {
	bad := false
	var fixed []byte
	if fix {
		fixed = make([]byte, 0, len(contents))
	}
	lastEnd := 0
	cur := cursor{offset: 0, line: 1, col: 1}

	for _, m := range set.Find(contents) {
		rule := set.Rule(m.Pattern)
		pos := m.Start
		if rule.Anchored() {
			// Report at the first byte after the anchoring newline.
			pos++
		}
		bad = true

		gap := contents[cur.offset:pos]
		nlines := bytes.Count(gap, []byte{'\n'})
		sinceNL := 0
		for sinceNL < len(gap) && gap[len(gap)-1-sinceNL] != '\n' {
			sinceNL++
		}
		line := cur.line + nlines
		col := sinceNL + 1
		if nlines == 0 {
			col = sinceNL + cur.col
		}
		cur = cursor{offset: pos, line: line, col: col}

		d := Diagnostic{Path: path, Line: line, Col: col, Reason: rule.Reason, Message: rule.Message}
		if err := sink.Emit(d); err != nil {
			return false, nil, err
		}

		if fix {
			// Copy through pos, not m.Start: for anchored rules this retains
			// the newline the pattern consumed.
			fixed = append(fixed, contents[lastEnd:pos]...)
			if rule.EndsInNewline() {
				fixed = append(fixed, '\n')
			}
			lastEnd = m.End
		}
	}

	if fix {
		fixed = append(fixed, contents[lastEnd:]...)
	} else {
		fixed = contents
	}
	return bad, fixed, nil
}
