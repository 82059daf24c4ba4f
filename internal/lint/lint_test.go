package lint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttlint/ttlint/internal/rules"
)

func mustCompile(t *testing.T, userPatterns ...string) *rules.Set {
	t.Helper()
	set, err := rules.Compile(userPatterns)
	require.NoError(t, err)
	return set
}

func run(t *testing.T, contents string, fix bool, userPatterns ...string) (bool, string, []Diagnostic) {
	t.Helper()
	var c Collector
	bad, fixed, err := Bytes("test.txt", []byte(contents), mustCompile(t, userPatterns...), &c, fix)
	require.NoError(t, err)
	return bad, string(fixed), c.Diagnostics()
}

func TestBytes_CleanInput(t *testing.T) {
	bad, fixed, diags := run(t, "hello world", true)
	assert.False(t, bad)
	assert.Equal(t, "hello world", fixed)
	assert.Empty(t, diags)
}

func TestBytes_CleanInputNoFix(t *testing.T) {
	bad, fixed, _ := run(t, "hello world\n", false)
	assert.False(t, bad)
	assert.Equal(t, "hello world\n", fixed)
}

func TestBytes_BOMStrippedInFixMode(t *testing.T) {
	bad, fixed, diags := run(t, "\xEF\xBB\xBFhello world", true)
	assert.True(t, bad)
	assert.Equal(t, "hello world", fixed)
	require.Len(t, diags, 1)
	assert.Equal(t, Diagnostic{
		Path: "test.txt", Line: 1, Col: 1,
		Reason: rules.ReasonByteOrderMark, Message: "UTF-8 byte-order mark",
	}, diags[0])
}

func TestBytes_BOMReportedWithoutFix(t *testing.T) {
	bad, fixed, diags := run(t, "\xEF\xBB\xBFhello world", false)
	assert.True(t, bad)
	assert.Equal(t, "\xEF\xBB\xBFhello world", fixed, "without fix the buffer passes through")
	require.Len(t, diags, 1)
	assert.Equal(t, rules.ReasonByteOrderMark, diags[0].Reason)
}

// With fix off the pattern pass scans the unmodified buffer including the BOM
// bytes, so columns on line 1 shift by three compared to a fix run. The
// asymmetry is intentional; do not normalize it.
func TestBytes_BOMColumnAsymmetry(t *testing.T) {
	const contents = "\xEF\xBB\xBFa \nrest\n"

	_, _, noFix := run(t, contents, false)
	require.Len(t, noFix, 2)
	assert.Equal(t, 1, noFix[1].Line)
	assert.Equal(t, 5, noFix[1].Col, "BOM bytes counted when fix is off")

	_, fixed, withFix := run(t, contents, true)
	require.Len(t, withFix, 2)
	assert.Equal(t, 1, withFix[1].Line)
	assert.Equal(t, 2, withFix[1].Col, "BOM stripped before the pattern pass")
	assert.Equal(t, "a\nrest\n", fixed)
}

func TestBytes_MergeConflictEndMarker(t *testing.T) {
	bad, fixed, diags := run(t, "some content\n>>>>>>> branch\n", true)
	assert.True(t, bad)
	assert.Equal(t, "some content\n branch\n", fixed, "anchoring newline stays, marker text goes")
	require.Len(t, diags, 1)
	assert.Equal(t, Diagnostic{
		Path: "test.txt", Line: 2, Col: 1,
		Reason: rules.ReasonConflictEnd, Message: "merge conflict end marker",
	}, diags[0])
}

func TestBytes_AllThreeConflictMarkers(t *testing.T) {
	contents := "a\n<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>> branch\n"
	bad, fixed, diags := run(t, contents, true)
	assert.True(t, bad)
	require.Len(t, diags, 3)
	assert.Equal(t, rules.ReasonConflictStart, diags[0].Reason)
	assert.Equal(t, rules.ReasonConflictSep, diags[1].Reason)
	assert.Equal(t, rules.ReasonConflictEnd, diags[2].Reason)
	assert.Equal(t, "a\n HEAD\nours\n\ntheirs\n branch\n", fixed)
}

func TestBytes_MarkersMidLineDoNotMatch(t *testing.T) {
	contents := "some text <<<<<<< HEAD\nmore text ======= here\nand >>>>>>> branch\n"
	bad, _, diags := run(t, contents, false)
	assert.False(t, bad, "markers in the middle of a line must not match")
	assert.Empty(t, diags)
}

func TestBytes_TrailingWhitespace(t *testing.T) {
	contents := "line with trailing space \nline with trailing tab\t\nnext line\n"
	bad, fixed, diags := run(t, contents, true)
	assert.True(t, bad)
	assert.Equal(t, "line with trailing space\nline with trailing tab\nnext line\n", fixed)
	require.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 25, diags[0].Col)
	assert.Equal(t, "trailing whitespace", diags[0].Message)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, 23, diags[1].Col)
	assert.Equal(t, "trailing whitespace", diags[1].Message)
}

func TestBytes_CarriageReturns(t *testing.T) {
	bad, fixed, diags := run(t, "a\r\nb\r\n", true)
	assert.True(t, bad)
	assert.Equal(t, "a\nb\n", fixed)
	require.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 2, diags[0].Col)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, 2, diags[1].Col)
}

func TestBytes_UserPatterns(t *testing.T) {
	contents := "hello FIXME world\nand TODO here\n"
	bad, fixed, diags := run(t, contents, true, "FIXME", "TODO")
	assert.True(t, bad)
	assert.Equal(t, "hello  world\nand  here\n", fixed)
	require.Len(t, diags, 2)
	assert.Equal(t, Diagnostic{
		Path: "test.txt", Line: 1, Col: 7,
		Reason: rules.ReasonUserPattern, Message: "FIXME",
	}, diags[0])
	assert.Equal(t, Diagnostic{
		Path: "test.txt", Line: 2, Col: 5,
		Reason: rules.ReasonUserPattern, Message: "TODO",
	}, diags[1])
}

func TestBytes_MultipleMatchesOnOneLine(t *testing.T) {
	bad, fixed, diags := run(t, "a XX b XX c\n", true, "XX")
	assert.True(t, bad)
	assert.Equal(t, "a  b  c\n", fixed)
	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Col)
	assert.Equal(t, 8, diags[1].Col, "column accumulates across matches on the same line")
}

func TestBytes_NoFixLeavesBufferIntact(t *testing.T) {
	contents := "trailing \nand FIXME\r\n"
	bad, fixed, diags := run(t, contents, false, "FIXME")
	assert.True(t, bad)
	assert.Equal(t, contents, fixed)
	assert.Len(t, diags, 3)
}

func TestBytes_FixIsIdempotentForBuiltins(t *testing.T) {
	fixtures := []string{
		"some content\n>>>>>>> branch\n",
		"line with trailing space \nline with trailing tab\t\nnext line\n",
		"a\r\nb\r\n",
		"a\n<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>> branch\n",
		"\xEF\xBB\xBFhello\n",
	}
	for _, f := range fixtures {
		_, fixed, _ := run(t, f, true)
		bad, again, diags := run(t, fixed, true)
		assert.False(t, bad, "second pass of %q found %+v", f, diags)
		assert.Equal(t, fixed, again)
	}
}

// A fix pass strips the final whitespace byte of a run; a longer run needs
// another pass. Each invocation is a single scan, so this converges instead
// of looping.
func TestBytes_WhitespaceRunsConvergeOverPasses(t *testing.T) {
	buf := "a   \n"
	passes := 0
	for {
		bad, fixed, _ := run(t, buf, true)
		if !bad {
			break
		}
		buf = fixed
		passes++
		require.Less(t, passes, 10)
	}
	assert.Equal(t, "a\n", buf)
	assert.Equal(t, 3, passes)
}

// Incremental line/col bookkeeping must agree with recomputing from the
// start of the buffer for every match.
func TestBytes_PositionsMatchNaiveRecomputation(t *testing.T) {
	fixtures := []string{
		"plain\ntext\n",
		"x \ny\t\nz\r\n",
		"a XX b XX\nXX\n \n\t\n",
		"one\n<<<<<<< h\nmid ======= mid\n=======\n>>>>>>> b\n",
		"no trailing newline XX",
		"\n\n\n \n\n\r\r\n",
	}
	for _, f := range fixtures {
		set := mustCompile(t, "XX")
		contents := []byte(f)
		var c Collector
		_, _, err := Bytes("f.txt", contents, set, &c, false)
		require.NoError(t, err)

		spans := set.Find(contents)
		diags := c.Diagnostics()
		require.Len(t, diags, len(spans), "fixture %q", f)
		for i, sp := range spans {
			pos := sp.Start
			if set.Rule(sp.Pattern).Anchored() {
				pos++
			}
			line, col := naivePosition(contents, pos)
			assert.Equal(t, line, diags[i].Line, "fixture %q match %d", f, i)
			assert.Equal(t, col, diags[i].Col, "fixture %q match %d", f, i)
		}
	}
}

func naivePosition(contents []byte, offset int) (line, col int) {
	line, col = 1, 1
	for _, b := range contents[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

type failingSink struct{ err error }

func (s failingSink) Emit(Diagnostic) error { return s.err }

func TestBytes_SinkErrorAborts(t *testing.T) {
	sinkErr := errors.New("pipe closed")
	_, _, err := Bytes("t", []byte("x \ny \n"), mustCompile(t), failingSink{sinkErr}, false)
	require.ErrorIs(t, err, sinkErr)
}

func TestBytes_SinkErrorOnBOMAborts(t *testing.T) {
	sinkErr := errors.New("pipe closed")
	_, _, err := Bytes("t", []byte("\xEF\xBB\xBFx"), mustCompile(t), failingSink{sinkErr}, false)
	require.ErrorIs(t, err, sinkErr)
}
