package interpreter

import (
	"io"
	"os"
)

const DefaultMaxCallDepth = 10000

type interpreterOpts struct {
	globals      *Environment
	stdout       io.Writer
	maxCallDepth int
}

var defaultInterpreterOpts = interpreterOpts{
	stdout:       os.Stdout,
	maxCallDepth: DefaultMaxCallDepth,
}

type InterpreterOption func(*interpreterOpts)

// WithGlobals makes the interpreter run against an existing global frame.
// The standard natives are (re)defined in it.
func WithGlobals(globals *Environment) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.globals = globals
	}
}

func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

// WithMaxCallDepth bounds nested calls; non-positive values keep the default.
func WithMaxCallDepth(depth int) InterpreterOption {
	return func(opts *interpreterOpts) {
		if depth > 0 {
			opts.maxCallDepth = depth
		}
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.globals == nil {
		opts.globals = NewEnvironment()
	}

	return &opts
}
