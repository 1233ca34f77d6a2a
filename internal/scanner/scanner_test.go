package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/scanner"
	"github.com/leonardinius/treelox/internal/token"
)

func TestScanTokens(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		expected []string
		err      string
	}{
		{"empty", "", []string{`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`}, ""},
		{"syntax error", "⌘", nil, "[line 1] Error: Unexpected character."},
		{
			"basic",
			"(){},*+-;",
			[]string{
				`{Type: LEFT_PAREN, Lexeme: "(", Literal: <nil>, Line: 1}`,
				`{Type: RIGHT_PAREN, Lexeme: ")", Literal: <nil>, Line: 1}`,
				`{Type: LEFT_BRACE, Lexeme: "{", Literal: <nil>, Line: 1}`,
				`{Type: RIGHT_BRACE, Lexeme: "}", Literal: <nil>, Line: 1}`,
				`{Type: COMMA, Lexeme: ",", Literal: <nil>, Line: 1}`,
				`{Type: STAR, Lexeme: "*", Literal: <nil>, Line: 1}`,
				`{Type: PLUS, Lexeme: "+", Literal: <nil>, Line: 1}`,
				`{Type: MINUS, Lexeme: "-", Literal: <nil>, Line: 1}`,
				`{Type: SEMICOLON, Lexeme: ";", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bang",
			"!",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bangbang",
			"!!",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bangbangeqeqeqeq",
			"!====",
			[]string{
				`{Type: BANG_EQUAL, Lexeme: "!=", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL_EQUAL, Lexeme: "==", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lt",
			"<",
			[]string{
				`{Type: LESS, Lexeme: "<", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lteq",
			"<=",
			[]string{
				`{Type: LESS_EQUAL, Lexeme: "<=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lteqeqeqeq",
			"<====",
			[]string{
				`{Type: LESS_EQUAL, Lexeme: "<=", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL_EQUAL, Lexeme: "==", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"gt",
			">",
			[]string{
				`{Type: GREATER, Lexeme: ">", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"gteq",
			">=",
			[]string{
				`{Type: GREATER_EQUAL, Lexeme: ">=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"gteqeqeqeq",
			">====",
			[]string{
				`{Type: GREATER_EQUAL, Lexeme: ">=", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL_EQUAL, Lexeme: "==", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"comment",
			"//comment",
			[]string{
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bangcomment",
			"!//comment",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"spaces",
			"! \r\t=",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"string",
			`"string"`,
			[]string{
				`{Type: STRING, Lexeme: "\"string\"", Literal: "string", Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"empty-string",
			`""`,
			[]string{
				`{Type: STRING, Lexeme: "\"\"", Literal: "", Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"string-nl",
			`"string\nstring"`,
			[]string{
				`{Type: STRING, Lexeme: "\"string\\nstring\"", Literal: "string\\nstring", Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-integer",
			`10`,
			[]string{
				`{Type: NUMBER, Lexeme: "10", Literal: 10, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-integer-leading-zeroes",
			`0010`,
			[]string{
				`{Type: NUMBER, Lexeme: "0010", Literal: 10, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-decimal",
			`12.34`,
			[]string{
				`{Type: NUMBER, Lexeme: "12.34", Literal: 12.34, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-decimal-leading-zeroes",
			`0012.34`,
			[]string{
				`{Type: NUMBER, Lexeme: "0012.34", Literal: 12.34, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-dot",
			`12.`,
			[]string{
				`{Type: NUMBER, Lexeme: "12", Literal: 12, Line: 1}`,
				`{Type: DOT, Lexeme: ".", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"identifier",
			`identifier`,
			[]string{
				`{Type: IDENTIFIER, Lexeme: "identifier", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"ternary",
			"a ? b : c",
			[]string{
				`{Type: IDENTIFIER, Lexeme: "a", Literal: <nil>, Line: 1}`,
				`{Type: QUESTION, Lexeme: "?", Literal: <nil>, Line: 1}`,
				`{Type: IDENTIFIER, Lexeme: "b", Literal: <nil>, Line: 1}`,
				`{Type: COLON, Lexeme: ":", Literal: <nil>, Line: 1}`,
				`{Type: IDENTIFIER, Lexeme: "c", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"no-block-comments",
			"/* */",
			[]string{
				`{Type: SLASH, Lexeme: "/", Literal: <nil>, Line: 1}`,
				`{Type: STAR, Lexeme: "*", Literal: <nil>, Line: 1}`,
				`{Type: STAR, Lexeme: "*", Literal: <nil>, Line: 1}`,
				`{Type: SLASH, Lexeme: "/", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lines",
			"a\n// note\nb",
			[]string{
				`{Type: IDENTIFIER, Lexeme: "a", Literal: <nil>, Line: 1}`,
				`{Type: IDENTIFIER, Lexeme: "b", Literal: <nil>, Line: 3}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 3}`,
			},
			"",
		},
		{
			"unterminated-string",
			`"abc`,
			nil,
			"[line 1] Error: Unterminated string.",
		},
		{
			"keyword-prefix",
			`classy orchid`,
			[]string{
				`{Type: IDENTIFIER, Lexeme: "classy", Literal: <nil>, Line: 1}`,
				`{Type: IDENTIFIER, Lexeme: "orchid", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"reserved",
			`and class else false for fun if nil or print return super this true var while break continue static`,
			[]string{
				`{Type: AND, Lexeme: "and", Literal: <nil>, Line: 1}`,
				`{Type: CLASS, Lexeme: "class", Literal: <nil>, Line: 1}`,
				`{Type: ELSE, Lexeme: "else", Literal: <nil>, Line: 1}`,
				`{Type: FALSE, Lexeme: "false", Literal: <nil>, Line: 1}`,
				`{Type: FOR, Lexeme: "for", Literal: <nil>, Line: 1}`,
				`{Type: FUN, Lexeme: "fun", Literal: <nil>, Line: 1}`,
				`{Type: IF, Lexeme: "if", Literal: <nil>, Line: 1}`,
				`{Type: NIL, Lexeme: "nil", Literal: <nil>, Line: 1}`,
				`{Type: OR, Lexeme: "or", Literal: <nil>, Line: 1}`,
				`{Type: PRINT, Lexeme: "print", Literal: <nil>, Line: 1}`,
				`{Type: RETURN, Lexeme: "return", Literal: <nil>, Line: 1}`,
				`{Type: SUPER, Lexeme: "super", Literal: <nil>, Line: 1}`,
				`{Type: THIS, Lexeme: "this", Literal: <nil>, Line: 1}`,
				`{Type: TRUE, Lexeme: "true", Literal: <nil>, Line: 1}`,
				`{Type: VAR, Lexeme: "var", Literal: <nil>, Line: 1}`,
				`{Type: WHILE, Lexeme: "while", Literal: <nil>, Line: 1}`,
				`{Type: BREAK, Lexeme: "break", Literal: <nil>, Line: 1}`,
				`{Type: CONTINUE, Lexeme: "continue", Literal: <nil>, Line: 1}`,
				`{Type: STATIC, Lexeme: "static", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			s := scanner.NewScanner(tc.input)
			tokens, err := s.Scan()
			if tc.err != "" {
				assert.ErrorContainsf(tt, err, tc.err, "expected error %v, got %v", tc.err, err)
			} else {
				tokensAsStrings := make([]string, len(tokens))
				for i, token := range tokens {
					tokensAsStrings[i] = token.GoString()
				}
				assert.Equal(tt, tc.expected, tokensAsStrings)
			}
		})
	}
}

func TestScanContinuesAfterErrors(t *testing.T) {
	t.Parallel()

	tokens, err := scanner.NewScanner("var a = @;\n# print \"open").Scan()
	require.Error(t, err)

	diags := loxerrors.Diagnostics(err)
	require.Len(t, diags, 3)
	assert.Equal(t, "[line 1] Error: Unexpected character.", diags[0].String())
	assert.Equal(t, "[line 2] Error: Unexpected character.", diags[1].String())
	assert.Equal(t, "[line 2] Error: Unterminated string.", diags[2].String())
	assert.ErrorIs(t, err, loxerrors.ErrScanUnterminatedString)

	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []token.TokenType{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.SEMICOLON, token.PRINT, token.EOF,
	}, types)
}
