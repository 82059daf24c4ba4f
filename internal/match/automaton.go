// Package match implements a multi-pattern byte search: given a fixed set of
// patterns it reports every non-overlapping occurrence in one left-to-right
// pass. The automaton is a classic Aho-Corasick trie with failure links.
// Matching is "earliest end wins": at the first input position where any
// pattern ends, that occurrence is reported and the scan resumes immediately
// after it. This package is internal; rule classification lives in
// internal/rules.
package match

import (
	"errors"
	"fmt"
)

// Span is one occurrence of a compiled pattern.
type Span struct {
	Pattern int // index into the pattern list the automaton was built from
	Start   int // byte offset of the first matched byte
	End     int // byte offset one past the last matched byte
}

type node struct {
	next map[byte]int32
	fail int32
	out  []int32 // pattern indexes ending at this node, longest first
}

// Automaton is an immutable compiled search structure. It is safe for
// concurrent use; all scan state lives on the Find stack.
type Automaton struct {
	nodes []node
	plen  []int
}

// New compiles the given patterns. Pattern order is preserved: Span.Pattern
// reported by Find is an index into this slice. Empty patterns are rejected.
func New(patterns [][]byte) (*Automaton, error) {
	a := &Automaton{
		nodes: []node{{next: map[byte]int32{}, fail: 0}},
		plen:  make([]int, len(patterns)),
	}
	for i, p := range patterns {
		if len(p) == 0 {
			return nil, fmt.Errorf("pattern %d is empty", i)
		}
		a.plen[i] = len(p)
		a.insert(int32(i), p)
	}
	if err := a.link(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Automaton) insert(id int32, pat []byte) {
	cur := int32(0)
	for _, b := range pat {
		nxt, ok := a.nodes[cur].next[b]
		if !ok {
			nxt = int32(len(a.nodes))
			a.nodes = append(a.nodes, node{next: map[byte]int32{}})
			a.nodes[cur].next[b] = nxt
		}
		cur = nxt
	}
	a.nodes[cur].out = append(a.nodes[cur].out, id)
}

// link computes failure links breadth-first and merges suffix outputs so each
// node carries every pattern ending there, its own (longest) first.
func (a *Automaton) link() error {
	if len(a.nodes) == 0 {
		return errors.New("automaton has no root")
	}
	queue := make([]int32, 0, len(a.nodes))
	for _, child := range a.nodes[0].next {
		a.nodes[child].fail = 0
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for b, child := range a.nodes[cur].next {
			f := a.step(a.nodes[cur].fail, b)
			if f == child {
				f = 0
			}
			a.nodes[child].fail = f
			a.nodes[child].out = append(a.nodes[child].out, a.nodes[f].out...)
			queue = append(queue, child)
		}
	}
	return nil
}

// step follows the goto function from state on input b, taking failure links
// until a transition exists or the root is reached.
func (a *Automaton) step(state int32, b byte) int32 {
	for {
		if t, ok := a.nodes[state].next[b]; ok {
			return t
		}
		if state == 0 {
			return 0
		}
		state = a.nodes[state].fail
	}
}

// Find reports every non-overlapping occurrence of any pattern in data, in
// increasing start order. When several patterns end at the same position the
// longest one wins (ties go to the lower pattern index). After a match the
// automaton restarts from its root at the match end, so candidate matches
// overlapping a reported one are never surfaced.
func (a *Automaton) Find(data []byte) []Span {
	var out []Span
	state := int32(0)
	for i := 0; i < len(data); i++ {
		state = a.step(state, data[i])
		if n := &a.nodes[state]; len(n.out) > 0 {
			id := int(n.out[0])
			end := i + 1
			out = append(out, Span{Pattern: id, Start: end - a.plen[id], End: end})
			state = 0
		}
	}
	return out
}
