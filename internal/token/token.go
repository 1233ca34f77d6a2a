package token

import (
	"fmt"
)

// Token is one lexeme together with its decoded literal (a float64 for
// NUMBER, a string for STRING, nil otherwise) and the line it ends on.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func NewToken(t TokenType, lexeme string, literal any, line int) Token {
	return Token{Type: t, Lexeme: lexeme, Literal: literal, Line: line}
}

// NewTokenHeap is NewToken for callers that keep a pointer in the AST.
func NewTokenHeap(t TokenType, lexeme string, literal any, line int) *Token {
	return &Token{Type: t, Lexeme: lexeme, Literal: literal, Line: line}
}

// Where names the token in a diagnostic: "at end" for EOF, "at 'lexeme'"
// otherwise.
func (t Token) Where() string {
	if t.Type == EOF {
		return "at end"
	}
	return "at '" + t.Lexeme + "'"
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %q %v", t.Type, t.Lexeme, t.Literal)
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %#v, Line: %d}", t.Type, t.Lexeme, t.Literal, t.Line)
}

var (
	_ fmt.Stringer   = Token{}
	_ fmt.GoStringer = Token{}
)
