package lint

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// TextSink writes diagnostics as "path:line:col: message" lines. It is safe
// for concurrent use: each diagnostic is written as one line under a lock, so
// parallel file scans never interleave mid-line.
type TextSink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewTextSink returns a sink writing to w. With colorize on, the position
// prefix is bolded and the message colored by rule category.
func NewTextSink(w io.Writer, colorize bool) *TextSink {
	return &TextSink{w: w, color: colorize}
}

var (
	boldText = color.New(color.Bold)
	warnText = color.New(color.FgYellow)
)

func (s *TextSink) Emit(d Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.color {
		_, err = fmt.Fprintf(s.w, "%s %s\n",
			boldText.Sprintf("%s:%d:%d:", d.Path, d.Line, d.Col),
			warnText.Sprint(d.Message))
	} else {
		_, err = fmt.Fprintf(s.w, "%s:%d:%d: %s\n", d.Path, d.Line, d.Col, d.Message)
	}
	return err
}

// Collector accumulates diagnostics in memory, for JSON output and tests.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Emit(d Diagnostic) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
	return nil
}

// Diagnostics returns everything emitted so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Tee forwards each diagnostic to every sink in order, stopping at the first
// error.
type Tee []Sink

func (t Tee) Emit(d Diagnostic) error {
	for _, s := range t {
		if err := s.Emit(d); err != nil {
			return err
		}
	}
	return nil
}
