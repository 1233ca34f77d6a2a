package lox

import (
	"io"
	"os"

	"github.com/leonardinius/treelox/internal/interpreter"
)

type sessionOpts struct {
	stdout       io.Writer
	profile      string
	maxCallDepth int
}

var defaultSessionOpts = sessionOpts{
	stdout:       os.Stdout,
	profile:      interpreter.ProfileDefault,
	maxCallDepth: interpreter.DefaultMaxCallDepth,
}

type SessionOption func(*sessionOpts)

// WithStdout redirects `print` output.
func WithStdout(stdout io.Writer) SessionOption {
	return func(opts *sessionOpts) {
		opts.stdout = stdout
	}
}

// WithStrict makes the resolver report unused local variables.
func WithStrict(strict bool) SessionOption {
	return func(opts *sessionOpts) {
		opts.profile = interpreter.ProfileDefault
		if strict {
			opts.profile = interpreter.ProfileStrict
		}
	}
}

func WithMaxCallDepth(depth int) SessionOption {
	return func(opts *sessionOpts) {
		opts.maxCallDepth = depth
	}
}

func newSessionOpts(options ...SessionOption) *sessionOpts {
	opts := defaultSessionOpts
	for _, opt := range options {
		opt(&opts)
	}
	return &opts
}
