package rules

import (
	"testing"
)

func TestBuiltins_TableIsStable(t *testing.T) {
	rs := Builtins()
	if len(rs) != 6 {
		t.Fatalf("expected 6 built-in rules, got %d", len(rs))
	}
	want := []struct {
		reason  Reason
		pattern string
		message string
	}{
		{ReasonConflictStart, "\n<<<<<<<", "merge conflict start marker"},
		{ReasonConflictSep, "\n=======", "merge conflict separator"},
		{ReasonConflictEnd, "\n>>>>>>>", "merge conflict end marker"},
		{ReasonTrailingSpace, " \n", "trailing whitespace"},
		{ReasonTrailingTab, "\t\n", "trailing whitespace"},
		{ReasonCarriageRet, "\r", "carriage return"},
	}
	for i, w := range want {
		if rs[i].Reason != w.reason {
			t.Errorf("rule %d: reason %q, want %q", i, rs[i].Reason, w.reason)
		}
		if string(rs[i].Pattern) != w.pattern {
			t.Errorf("rule %d: pattern %q, want %q", i, rs[i].Pattern, w.pattern)
		}
		if rs[i].Message != w.message {
			t.Errorf("rule %d: message %q, want %q", i, rs[i].Message, w.message)
		}
	}
}

func TestRule_AnchoredAndEndsInNewline(t *testing.T) {
	rs := Builtins()
	anchored := []bool{true, true, true, false, false, false}
	endsNL := []bool{false, false, false, true, true, false}
	for i, r := range rs {
		if r.Anchored() != anchored[i] {
			t.Errorf("rule %d: Anchored=%v, want %v", i, r.Anchored(), anchored[i])
		}
		if r.EndsInNewline() != endsNL[i] {
			t.Errorf("rule %d: EndsInNewline=%v, want %v", i, r.EndsInNewline(), endsNL[i])
		}
	}
}

func TestCompile_UserPatternsFollowBuiltins(t *testing.T) {
	set, err := Compile([]string{"FIXME", "TODO"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if set.Len() != 8 {
		t.Fatalf("expected 8 rules, got %d", set.Len())
	}
	for i, want := range []string{"FIXME", "TODO"} {
		r := set.Rule(6 + i)
		if r.Reason != ReasonUserPattern {
			t.Errorf("user rule %d: reason %q", i, r.Reason)
		}
		if r.Message != want {
			t.Errorf("user rule %d: message %q, want %q", i, r.Message, want)
		}
		if r.Anchored() {
			t.Errorf("user rule %d unexpectedly anchored", i)
		}
	}
}

func TestCompile_RejectsEmptyPattern(t *testing.T) {
	if _, err := Compile([]string{"ok", ""}); err == nil {
		t.Fatal("expected error for empty user pattern")
	}
}

func TestCompile_DuplicatesAllowed(t *testing.T) {
	set, err := Compile([]string{"x", "x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if set.Len() != 8 {
		t.Fatalf("expected 8 rules, got %d", set.Len())
	}
}

func TestFingerprint_DependsOnPatternList(t *testing.T) {
	a, err := Compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile([]string{"FIXME"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := Compile([]string{"FIXME"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("fingerprints should differ when user patterns differ")
	}
	if b.Fingerprint() != c.Fingerprint() {
		t.Fatal("fingerprints should be stable for equal pattern lists")
	}
}

func TestFind_UsesAllRules(t *testing.T) {
	set, err := Compile([]string{"TODO"})
	if err != nil {
		t.Fatal(err)
	}
	spans := set.Find([]byte("a \nTODO\r"))
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if set.Rule(spans[0].Pattern).Reason != ReasonTrailingSpace {
		t.Errorf("span 0: %q", set.Rule(spans[0].Pattern).Reason)
	}
	if set.Rule(spans[1].Pattern).Reason != ReasonUserPattern {
		t.Errorf("span 1: %q", set.Rule(spans[1].Pattern).Reason)
	}
	if set.Rule(spans[2].Pattern).Reason != ReasonCarriageRet {
		t.Errorf("span 2: %q", set.Rule(spans[2].Pattern).Reason)
	}
}
