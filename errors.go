package lux

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Phase identifies which stage of the pipeline produced a diagnostic.
type Phase int

const (
	PhaseScan Phase = iota
	PhaseParse
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseScan:
		return "scan"
	case PhaseParse:
		return "parse"
	case PhaseRuntime:
		return "runtime"
	}
	return "unknown"
}

// Diagnostic is a single line-tagged error reported by the scanner, parser or interpreter.
type Diagnostic struct {
	Phase   Phase
	Line    int
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf(" [Line %d]Error: %s", d.Line, d.Message)
}

// Reporter is the sink every phase reports to. Reporting never stops the phase.
type Reporter interface {
	Report(d Diagnostic)
}

// WriterReporter prints diagnostics to an error stream.
type WriterReporter struct {
	mu sync.Mutex
	W  io.Writer
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{W: w}
}

func (r *WriterReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.W, d.Error())
}

// CollectingReporter records diagnostics in arrival order.
type CollectingReporter struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (r *CollectingReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns a copy of everything reported so far.
func (r *CollectingReporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Len reports how many diagnostics were collected.
func (r *CollectingReporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diagnostics)
}

// Reset drops collected diagnostics.
func (r *CollectingReporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = nil
}

// MultiReporter fans a diagnostic out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// ParseError carries the offending token and the cause of a syntax error.
type ParseError struct {
	Token Token
	Cause string
}

func (e *ParseError) Error() string {
	if e.Token.Type == EOF {
		return e.Cause + " at end"
	}
	return fmt.Sprintf("%s at '%s'", e.Cause, e.Token.Lexeme)
}

// Diagnostic converts the error into its reportable form.
func (e *ParseError) Diagnostic() Diagnostic {
	return Diagnostic{Phase: PhaseParse, Line: e.Token.Line, Message: e.Error()}
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %v\n", i+1, err))
	}
	return sb.String()
}

func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Diagnostics extracts every Diagnostic held by the error.
func (e *MultiError) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, err := range e.Errors {
		if d, ok := err.(Diagnostic); ok {
			out = append(out, d)
		}
	}
	return out
}

func diagnosticsError(diags []Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	me := &MultiError{}
	for _, d := range diags {
		me.Add(d)
	}
	return me
}
