package loxerrors

import (
	"fmt"
	"io"
)

// ErrReporter is where the CLI sends diagnostics and recovered panics.
type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
}

type errReporter struct {
	w io.Writer
}

func NewErrReporter(w io.Writer) ErrReporter {
	return &errReporter{w: w}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	_, _ = fmt.Fprintf(e.w, "FATAL %v\n", err)
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	_ = WriteDiagnostics(e.w, err)
}

// WriteDiagnostics prints each diagnostic in err followed by a newline:
// one line for a static error, two for a runtime error.
func WriteDiagnostics(w io.Writer, err error) error {
	for _, d := range Diagnostics(err) {
		if _, werr := fmt.Fprintln(w, d.String()); werr != nil {
			return werr
		}
	}
	return nil
}

var _ ErrReporter = (*errReporter)(nil)
