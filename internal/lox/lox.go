package lox

import (
	"context"
	"errors"

	"github.com/leonardinius/treelox/internal/interpreter"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/scanner"
)

const (
	ExitOK           = 0
	ExitStaticError  = 65
	ExitRuntimeError = 70
)

// RunResult is the outcome of running one program or REPL line.
type RunResult struct {
	Err             error
	Diagnostics     []loxerrors.Diagnostic
	HadStaticError  bool
	HadRuntimeError bool
	// Value is the value of a trailing expression statement, nil otherwise.
	Value interpreter.Value
}

func newRunResult(value interpreter.Value, err error) RunResult {
	if err == nil {
		return RunResult{Value: value}
	}

	static := loxerrors.HasStatic(err)
	return RunResult{
		Err:             err,
		Diagnostics:     loxerrors.Diagnostics(err),
		HadStaticError:  static,
		HadRuntimeError: !static,
	}
}

func (r RunResult) OK() bool {
	return r.Err == nil
}

// ExitCode maps the result to the conventional process exit status.
func (r RunResult) ExitCode() int {
	switch {
	case r.HadStaticError:
		return ExitStaticError
	case r.HadRuntimeError:
		return ExitRuntimeError
	}
	return ExitOK
}

// Session keeps globals and resolved bindings alive between runs.
type Session struct {
	interpreter interpreter.Interpreter
	resolver    interpreter.Resolver
}

func NewSession(options ...SessionOption) *Session {
	opts := newSessionOpts(options...)

	return &Session{
		interpreter: interpreter.NewInterpreter(
			interpreter.WithStdout(opts.stdout),
			interpreter.WithMaxCallDepth(opts.maxCallDepth),
		),
		resolver: interpreter.NewResolver(opts.profile),
	}
}

// RunLine scans, parses, resolves and executes source against the session
// state. Nothing runs when a static error is found.
func (s *Session) RunLine(ctx context.Context, source string) RunResult {
	statements, err := Parse(source)
	if err != nil {
		return newRunResult(nil, err)
	}

	bindings, err := s.resolver.Resolve(statements)
	if err != nil {
		return newRunResult(nil, err)
	}

	value, err := s.interpreter.Interpret(ctx, statements, bindings)
	return newRunResult(value, err)
}

// RunProgram runs source in a fresh session.
func RunProgram(ctx context.Context, source string, options ...SessionOption) RunResult {
	return NewSession(options...).RunLine(ctx, source)
}

// Parse scans and parses source. Scan errors do not stop parsing, so the
// returned error joins both passes' diagnostics.
func Parse(source string) ([]parser.Stmt, error) {
	tokens, scanErr := scanner.NewScanner(source).Scan()
	statements, parseErr := parser.NewParser(tokens).Parse()

	return statements, errors.Join(scanErr, parseErr)
}
