package lib

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	SemanticTypeError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case SemanticTypeError:
		return "type error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Diagnostic is a single compile error tied to a source position. Line and
// column are 0-based like token locations.
type Diagnostic struct {
	File     string
	Location Location
	Kind     ErrorKind
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%s: %s: %s", d.File, d.Location, d.Kind, d.Message)
}

type Reporter interface {
	ReportError(d Diagnostic)
}

// ErrorLog accumulates diagnostics for one compilation. It is safe for
// concurrent use; Count never decreases.
type ErrorLog struct {
	count       atomic.Int64
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

func (l *ErrorLog) ReportError(d Diagnostic) {
	l.mu.Lock()
	l.diagnostics = append(l.diagnostics, d)
	l.mu.Unlock()
	l.count.Add(1)
}

func (l *ErrorLog) Count() int {
	return int(l.count.Load())
}

// Diagnostics returns a copy of everything reported so far, in report order.
func (l *ErrorLog) Diagnostics() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Diagnostic, len(l.diagnostics))
	copy(out, l.diagnostics)
	return out
}

var ErrCompilationFailed = errors.New("compilation failed")

// GateError is returned when a pipeline stage finishes with outstanding
// errors. It unwraps to ErrCompilationFailed.
type GateError struct {
	Stage string
	Count int
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s with %d errors", ErrCompilationFailed, e.Stage, e.Count)
}

func (e *GateError) Unwrap() error {
	return ErrCompilationFailed
}

// sortDiagnostics orders the diagnostics of one file by position. Reports at
// the same position keep their relative order.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Location.Before(diags[j].Location)
	})
}

// diagnosticSink collects diagnostics for a single file.
type diagnosticSink struct {
	file        string
	diagnostics []Diagnostic
}

func (s *diagnosticSink) errorf(kind ErrorKind, loc Location, format string, args ...interface{}) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		File:     s.file,
		Location: loc,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}
