package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"

	"github.com/leonardinius/treelox/internal/lox"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
)

const (
	ExitUsage   = 64
	ExitNoInput = 66
)

type lineReader interface {
	Readline() (string, error)
	Close() error
}

type LoxApp struct {
	stdin    io.ReadCloser
	stdout   io.Writer
	stderr   io.Writer
	reporter loxerrors.ErrReporter
}

type AppOption func(*LoxApp)

func WithStdin(stdin io.ReadCloser) AppOption {
	return func(app *LoxApp) {
		app.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stdout = stdout
	}
}

// WithStderr redirects diagnostics and usage messages.
func WithStderr(stderr io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stderr = stderr
	}
}

func NewLoxApp(options ...AppOption) *LoxApp {
	app := &LoxApp{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range options {
		opt(app)
	}

	app.reporter = loxerrors.NewErrReporter(app.stderr)
	return app
}

func (app *LoxApp) Main(args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			app.reporter.ReportPanic(fmt.Errorf("%v", r))
			exitCode = lox.ExitRuntimeError
		}
	}()

	flags := flag.NewFlagSet("treelox", flag.ContinueOnError)
	flags.SetOutput(app.stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	strict := flags.Bool("strict", false, "report unused local variables")
	printAst := flags.Bool("ast", false, "print the parsed program and exit")
	flags.Usage = func() {
		fmt.Fprintln(app.stderr, "Usage: treelox [-config file] [-strict] [-ast] [script]")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return lox.ExitOK
		}
		return ExitUsage
	}

	config, code := app.loadConfig(*configPath)
	if code != lox.ExitOK {
		return code
	}
	config.Strict = config.Strict || *strict

	switch {
	case flags.NArg() > 1:
		flags.Usage()
		return ExitUsage
	case *printAst && flags.NArg() == 1:
		return app.printAst(flags.Arg(0))
	case *printAst:
		flags.Usage()
		return ExitUsage
	case flags.NArg() == 1:
		return app.runFile(config, flags.Arg(0))
	default:
		return app.runPrompt(config)
	}
}

func (app *LoxApp) loadConfig(path string) (Config, int) {
	if path == "" {
		return DefaultConfig(), lox.ExitOK
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(app.stderr, err)
		return Config{}, ExitNoInput
	}
	defer f.Close()

	config, err := ParseConfig(f)
	if err != nil {
		fmt.Fprintf(app.stderr, "%s: %v\n", path, err)
		return Config{}, ExitUsage
	}
	return config, lox.ExitOK
}

func (app *LoxApp) sessionOptions(config Config) []lox.SessionOption {
	return []lox.SessionOption{
		lox.WithStdout(app.stdout),
		lox.WithStrict(config.Strict),
		lox.WithMaxCallDepth(config.MaxCallDepth),
	}
}

func (app *LoxApp) runFile(config Config, scriptPath string) int {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintln(app.stderr, err)
		return ExitNoInput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := lox.RunProgram(ctx, string(bytes), app.sessionOptions(config)...)
	if result.Err != nil {
		app.reporter.ReportError(result.Err)
	}
	return result.ExitCode()
}

func (app *LoxApp) printAst(scriptPath string) int {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintln(app.stderr, err)
		return ExitNoInput
	}

	statements, err := lox.Parse(string(bytes))
	if err != nil {
		app.reporter.ReportError(err)
		return lox.ExitStaticError
	}

	fmt.Fprint(app.stdout, parser.NewAstPrinter().PrintProgram(statements))
	return lox.ExitOK
}

func (app *LoxApp) runPrompt(config Config) int {
	rl, err := app.openLineReader(config)
	if err != nil {
		fmt.Fprintln(app.stderr, err)
		return ExitNoInput
	}
	defer rl.Close()

	session := lox.NewSession(app.sessionOptions(config)...)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return lox.ExitOK
		}
		if err != nil {
			fmt.Fprintln(app.stderr, err)
			return ExitNoInput
		}

		app.runLine(session, config, line)
	}
}

func (app *LoxApp) runLine(session *lox.Session, config Config, line string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := session.RunLine(ctx, line)
	if result.Err != nil {
		app.reporter.ReportError(result.Err)
		return
	}
	if config.Echo && result.Value != nil {
		fmt.Fprintln(app.stdout, result.Value)
	}
}

// openLineReader uses readline on a terminal and plain line scanning for piped
// input.
func (app *LoxApp) openLineReader(config Config) (lineReader, error) {
	if f, ok := app.stdin.(*os.File); !ok || !readline.IsTerminal(int(f.Fd())) {
		return newScannerLineReader(app.stdin), nil
	}

	return readline.NewEx(&readline.Config{
		Prompt:      config.Prompt,
		HistoryFile: config.HistoryFile,
		Stdin:       app.stdin,
		Stdout:      app.stdout,
		Stderr:      app.stderr,
	})
}

type scannerLineReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

func newScannerLineReader(r io.ReadCloser) *scannerLineReader {
	return &scannerLineReader{scanner: bufio.NewScanner(r), closer: r}
}

func (s *scannerLineReader) Readline() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scannerLineReader) Close() error {
	return s.closer.Close()
}
