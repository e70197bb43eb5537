// Package diag implements the diagnostics sink: each compilation
// phase reports problems into a shared Sink and keeps going as long
// as invariants allow, so a single run can surface every
// grammar/regex/conflict problem instead of stopping at the first
// one. Only Internal invariant violations abort immediately, via
// panic.
package diag

import (
	"fmt"
	"sort"
)

// Kind taxonomizes a diagnostic.
type Kind int

const (
	Grammar Kind = iota
	Regex
	Conflict
	Internal
)

func (k Kind) String() string {
	switch k {
	case Grammar:
		return "grammar"
	case Regex:
		return "regex"
	case Conflict:
		return "conflict"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Severity distinguishes a warning (generation still succeeds) from an
// error (generation aborts after all phases have reported).
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

// Position is the file/line/column context a diagnostic carries when
// it originates from grammar or regex source text.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" && p.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Pos      Position
}

func (d Diagnostic) String() string {
	sev := "warning"
	if d.Severity == SevError {
		sev = "error"
	}
	if pos := d.Pos.String(); pos != "" {
		return fmt.Sprintf("%s: %s: [%s] %s", pos, sev, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", sev, d.Kind, d.Message)
}

// Sink collects diagnostics across an entire generation run.
type Sink struct {
	diags     []Diagnostic
	maxErrors int // conflict-error abort threshold; 0 = unbounded
}

// NewSink creates an empty sink. maxErrors of 0 disables the
// conflict-count abort threshold.
func NewSink(maxErrors int) *Sink {
	return &Sink{maxErrors: maxErrors}
}

// Errorf records an error-severity diagnostic at no particular source position.
func (s *Sink) Errorf(kind Kind, format string, args ...interface{}) {
	s.add(Diagnostic{Kind: kind, Severity: SevError, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning-severity diagnostic.
func (s *Sink) Warnf(kind Kind, format string, args ...interface{}) {
	s.add(Diagnostic{Kind: kind, Severity: SevWarning, Message: fmt.Sprintf(format, args...)})
}

// ErrorAt/WarnAt attach a source position (used by regexfe).
func (s *Sink) ErrorAt(kind Kind, pos Position, format string, args ...interface{}) {
	s.add(Diagnostic{Kind: kind, Severity: SevError, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) WarnAt(kind Kind, pos Position, format string, args ...interface{}) {
	s.add(Diagnostic{Kind: kind, Severity: SevWarning, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// ConflictErrorCount returns the number of error-severity
// diagnostics of kind Conflict, the count the abort threshold is
// checked against.
func (s *Sink) ConflictErrorCount() int {
	n := 0
	for _, d := range s.diags {
		if d.Kind == Conflict && d.Severity == SevError {
			n++
		}
	}
	return n
}

// ExceedsThreshold reports whether the conflict-error count has passed
// the configured maxErrors (0 = never).
func (s *Sink) ExceedsThreshold() bool {
	return s.maxErrors > 0 && s.ConflictErrorCount() > s.maxErrors
}

// Diagnostics returns every recorded diagnostic, sorted for
// deterministic, byte-identical output across runs.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.File != out[j].Pos.File {
			return out[i].Pos.File < out[j].Pos.File
		}
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Pos.Column < out[j].Pos.Column
	})
	return out
}

// InternalError panics with a location-carrying message. Callers
// pass the invariant that was violated; the panic value is an
// *InvariantViolation so a top-level recover can still map it to exit
// code 2.
func InternalError(where string, format string, args ...interface{}) {
	panic(&InvariantViolation{Where: where, Message: fmt.Sprintf(format, args...)})
}

// InvariantViolation is the panic value raised by InternalError.
type InvariantViolation struct {
	Where   string
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("internal error in %s: %s", e.Where, e.Message)
}
