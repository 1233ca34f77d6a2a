package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/scanner"
)

func parse(t *testing.T, source string) ([]parser.Stmt, error) {
	t.Helper()

	tokens, err := scanner.NewScanner(source).Scan()
	require.NoError(t, err)

	return parser.NewParser(tokens).Parse()
}

func TestParse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		expected string
	}{
		{"precedence", `1 + 2 * 3;`, "(; (+ 1 (* 2 3)))\n"},
		{"unary-call", `print -a.b(1, 2);`, "(print (- (call (. a b) 1 2)))\n"},
		{"equality", `print 1.5 == nil != !false;`, "(print (!= (== 1.5 nil) (! false)))\n"},
		{"assign-right-assoc", `a = b = 1;`, "(; (= a (= b 1)))\n"},
		{"assign-property", `x.y = 2;`, "(; (= (. x y) 2))\n"},
		{"ternary-right-assoc", `a ? b : c ? d : e;`, "(; (?: a b (?: c d e)))\n"},
		{"ternary-assign", `x = c ? 1 : 2;`, "(; (= x (?: c 1 2)))\n"},
		{"logical", `x = a or b and c;`, "(; (= x (or a (and b c))))\n"},
		{"var", `var a; var b = "s";`, "(var a)\n(var b = \"s\")\n"},
		{
			"for",
			`for (var i = 0; i < 3; i = i + 1) print i;`,
			"(block (var i = 0) (while (< i 3) (print i) (step (= i (+ i 1)))))\n",
		},
		{"for-empty", `for (;;) break;`, "(while true (break))\n"},
		{"while-continue", `while (true) { continue; }`, "(while true (block (continue)))\n"},
		{"if-else", `if (a) print 1; else print 2;`, "(if-else a (print 1) (print 2))\n"},
		{"dangling-else", `if (a) if (b) print 1; else print 2;`, "(if a (if-else b (print 1) (print 2)))\n"},
		{"function", `fun add(a, b) { return a + b; }`, "(fun add (a b) (return (+ a b)))\n"},
		{"return-bare", `fun f() { return; }`, "(fun f () (return))\n"},
		{"lambda", `var f = fun (x) { return x; };`, "(var f = (fun (x) (return x)))\n"},
		{"lambda-statement", `fun () {};`, "(; (fun ()))\n"},
		{"super", `super.m();`, "(; (call (super m)))\n"},
		{"this", `this.a;`, "(; (. this a))\n"},
		{
			"class",
			`class B < A { static make() { return B(); } area { return 1; } init(x) { this.x = x; } }`,
			"(class B < A (static make () (return (call B))) (get area () (return 1)) (method init (x) (; (= (. this x) x))))\n",
		},
		{"loop-in-function-in-loop", `fun f() { while (true) break; }`, "(fun f () (while true (break)))\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			stmts, err := parse(tt, tc.input)
			require.NoError(tt, err)
			assert.Equal(tt, tc.expected, parser.NewAstPrinter().PrintProgram(stmts))
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name  string
		input string
		err   string
	}{
		{"missing-semicolon", `print 1`, "[line 1] Error at end: Expect ';' after value."},
		{"invalid-assignment", `1 = 2;`, "[line 1] Error at '=': Invalid assignment target."},
		{"invalid-assignment-grouping", `(a) = 2;`, "[line 1] Error at '=': Invalid assignment target."},
		{"break-outside-loop", `break;`, "[line 1] Error at 'break': Must be inside a loop to use 'break'."},
		{
			"continue-inside-function-in-loop",
			`while (true) { fun f() { continue; } }`,
			"[line 1] Error at 'continue': Must be inside a loop to use 'continue'.",
		},
		{"unclosed-grouping", `print (1;`, "[line 1] Error at ';': Expect ')' after expression."},
		{"ternary-colon", `a ? b;`, "[line 1] Error at ';': Expect ':' after then branch."},
		{"class-name", `class {}`, "[line 1] Error at '{': Expect class name."},
		{"super-dot", `super;`, "[line 1] Error at ';': Expect '.' after 'super'."},
		{"property-name", `a.;`, "[line 1] Error at ';': Expect property name after '.'."},
		{"function-paren", `fun f {}`, "[line 1] Error at '{': Expect '(' after function name."},
		{"method-body", `class A { m() }`, "[line 1] Error at '}': Expect '{' before method body."},
		{"lambda-paren", `var f = fun x;`, "[line 1] Error at 'x': Expect '(' after 'fun'."},
		{"expect-expression", `print ;`, "[line 1] Error at ';': Expect expression."},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			_, err := parse(tt, tc.input)
			assert.ErrorContains(tt, err, tc.err)
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	t.Parallel()

	stmts, err := parse(t, "var = 1;\nprint 2;\nprint ;")
	require.Error(t, err)

	diags := loxerrors.Diagnostics(err)
	require.Len(t, diags, 2)
	assert.Equal(t, "[line 1] Error at '=': Expect variable name.", diags[0].String())
	assert.Equal(t, "[line 3] Error at ';': Expect expression.", diags[1].String())

	assert.Equal(t, "(print 2)\n", parser.NewAstPrinter().PrintProgram(stmts))
	assert.ErrorIs(t, err, loxerrors.ErrParseUnexpectedToken)
}

func TestParseArgumentLimit(t *testing.T) {
	t.Parallel()

	args := strings.TrimSuffix(strings.Repeat("a, ", parser.MaxArgs+1), ", ")
	_, err := parse(t, "f("+args+");")
	assert.ErrorIs(t, err, loxerrors.ErrParseTooManyArguments)

	_, err = parse(t, "f("+strings.TrimSuffix(strings.Repeat("a, ", parser.MaxArgs), ", ")+");")
	assert.NoError(t, err)

	_, err = parse(t, "fun f("+args+") {}")
	assert.ErrorIs(t, err, loxerrors.ErrParseTooManyParameters)
}
