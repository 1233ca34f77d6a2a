package cmd_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/cmd"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(stdin string, args ...string) (int, string, string) {
	stdout := new(strings.Builder)
	stderr := new(strings.Builder)

	app := cmd.NewLoxApp(
		cmd.WithStdin(io.NopCloser(strings.NewReader(stdin))),
		cmd.WithStdout(stdout),
		cmd.WithStderr(stderr),
	)
	code := app.Main(args)
	return code, stdout.String(), stderr.String()
}

func TestRunFile(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		script string
		args   []string
		code   int
		out    string
		errOut string
	}{
		{name: "ok", script: "print 1 + 1;", code: 0, out: "2\n"},
		{name: "bare expression is not echoed", script: "1 + 1;", code: 0},
		{name: "syntax error", script: "print ;", code: 65, errOut: "[line 1] Error at ';': Expect expression.\n"},
		{name: "runtime error", script: "print 1;\nnil();", code: 70, out: "1\n", errOut: "Can only call functions and classes.\n[line 2]\n"},
		{name: "strict flag", script: "{ var x = 1; }", args: []string{"-strict"}, code: 65, errOut: "[line 1] Error at 'x': Local variable is not used.\n"},
		{name: "ast", script: "print -a;", args: []string{"-ast"}, code: 0, out: "(print (- a))\n"},
		{name: "ast syntax error", script: "print", args: []string{"-ast"}, code: 65, errOut: "[line 1] Error at end: Expect expression.\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			path := writeFile(tt, "script.lox", tc.script)

			code, stdout, stderr := runApp("", append(tc.args, path)...)
			assert.Equal(tt, tc.code, code)
			assert.Equal(tt, tc.out, stdout)
			assert.Equal(tt, tc.errOut, stderr)
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	code, _, stderr := runApp("", "a.lox", "b.lox")
	assert.Equal(t, cmd.ExitUsage, code)
	assert.Contains(t, stderr, "Usage: treelox")

	code, _, _ = runApp("", "-unknown")
	assert.Equal(t, cmd.ExitUsage, code)

	code, _, _ = runApp("", "-ast")
	assert.Equal(t, cmd.ExitUsage, code)

	code, _, stderr = runApp("", filepath.Join(t.TempDir(), "missing.lox"))
	assert.Equal(t, cmd.ExitNoInput, code)
	assert.NotEmpty(t, stderr)
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`var a = 1;`,
		`a + 1;`,
		`"text";`,
		`print ;`,
		`b;`,
		`fun f() { return a; }`,
		`f();`,
	}, "\n")

	code, stdout, stderr := runApp(input)
	assert.Equal(t, 0, code)
	assert.Equal(t, "2\ntext\n1\n", stdout)
	assert.Equal(t, "[line 1] Error at ';': Expect expression.\nUndefined variable 'b'.\n[line 1]\n", stderr)
}

func TestPromptConfig(t *testing.T) {
	t.Parallel()

	config := writeFile(t, "config.yaml", "echo: false\nmax_call_depth: 5\n")

	code, stdout, stderr := runApp("1 + 2;\nfun f() { f(); }\nf();\n", "-config", config)
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Stack overflow.\n[line 1]\n", stderr)
}

func TestBadConfig(t *testing.T) {
	t.Parallel()

	config := writeFile(t, "config.yaml", "colour: blue\n")
	code, _, stderr := runApp("", "-config", config)
	assert.Equal(t, cmd.ExitUsage, code)
	assert.Contains(t, stderr, "invalid config")

	code, _, _ = runApp("", "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, cmd.ExitNoInput, code)
}
