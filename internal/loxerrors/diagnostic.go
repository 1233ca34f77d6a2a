package loxerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a Diagnostic by the pipeline stage that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindSyntax
	KindResolution
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindResolution:
		return "resolution"
	case KindRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Static reports whether the diagnostic prevents a program from running.
func (k Kind) Static() bool {
	return k == KindSyntax || k == KindResolution
}

// Diagnostic is a flat, printable error record.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Where   string
	Message string
}

// String renders static errors as "[line N] Error at 'x': msg" and runtime
// errors as "msg\n[line N]".
func (d Diagnostic) String() string {
	switch d.Kind {
	case KindRuntime:
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	case KindUnknown:
		return d.Message
	}
	if d.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", d.Line, d.Where, d.Message)
}

type diagnosticError interface {
	error
	Diagnostic() Diagnostic
}

// Diagnostics flattens err, including errors.Join trees, into records in
// the order they were reported. Errors that carry no position become
// KindUnknown records.
func Diagnostics(err error) []Diagnostic {
	var out []Diagnostic
	collectDiagnostics(err, &out)
	return out
}

func collectDiagnostics(err error, out *[]Diagnostic) {
	if err == nil {
		return
	}
	var d diagnosticError
	if joined, ok := err.(unwrapJoinInterface); ok {
		for _, e := range joined.Unwrap() {
			collectDiagnostics(e, out)
		}
		return
	}
	if errors.As(err, &d) {
		*out = append(*out, d.Diagnostic())
		return
	}
	*out = append(*out, Diagnostic{Kind: KindUnknown, Message: err.Error()})
}

// HasStatic reports whether err contains a syntax or resolution error.
func HasStatic(err error) bool {
	for _, d := range Diagnostics(err) {
		if d.Kind.Static() {
			return true
		}
	}
	return false
}
