package scanner

import (
	"errors"
	"strconv"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// Scanner turns source text into tokens.
type Scanner interface {
	// Scan returns every token it could recognize, always ending with EOF,
	// and the joined lexical errors, if any.
	Scan() ([]token.Token, error)
}

var (
	singleCharTokens = map[rune]token.TokenType{
		'(': token.LEFT_PAREN,
		')': token.RIGHT_PAREN,
		'{': token.LEFT_BRACE,
		'}': token.RIGHT_BRACE,
		',': token.COMMA,
		'.': token.DOT,
		'-': token.MINUS,
		'+': token.PLUS,
		';': token.SEMICOLON,
		'*': token.STAR,
		'?': token.QUESTION,
		':': token.COLON,
	}

	// Operators that have a two-character form ending in '='.
	equalsSuffixTokens = map[rune][2]token.TokenType{
		'!': {token.BANG, token.BANG_EQUAL},
		'=': {token.EQUAL, token.EQUAL_EQUAL},
		'<': {token.LESS, token.LESS_EQUAL},
		'>': {token.GREATER, token.GREATER_EQUAL},
	}
)

type scanner struct {
	source               []rune
	tokens               []token.Token
	start, current, line int
	errs                 []error
}

// NewScanner returns a new Scanner.
func NewScanner(input string) Scanner {
	return &scanner{source: []rune(input), line: 1}
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))
	return s.tokens, errors.Join(s.errs...)
}

func (s *scanner) scanToken() {
	c := s.advance()

	if tokenType, ok := singleCharTokens[c]; ok {
		s.addToken(tokenType, nil)
		return
	}
	if pair, ok := equalsSuffixTokens[c]; ok {
		if s.match('=') {
			s.addToken(pair[1], nil)
		} else {
			s.addToken(pair[0], nil)
		}
		return
	}

	switch {
	case c == '/' && s.match('/'):
		s.skipLineComment()
	case c == '/':
		s.addToken(token.SLASH, nil)
	case c == ' ' || c == '\r' || c == '\t' || c == '\n':
		// whitespace
	case c == '"':
		s.scanString()
	case isDigit(c):
		s.scanNumber()
	case isAlpha(c):
		s.scanIdentifier()
	default:
		s.reportError(loxerrors.ErrScanUnexpectedCharacter)
	}
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

// advance consumes one rune, counting newlines as it goes.
func (s *scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
	}
	return c
}

func (s *scanner) match(expected rune) bool {
	if s.isAtEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *scanner) lexeme() string {
	return string(s.source[s.start:s.current])
}

func (s *scanner) addToken(tokenType token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(tokenType, s.lexeme(), literal, s.line))
}

func (s *scanner) skipLineComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// scanString reads a raw string literal; there are no escape sequences and
// it may span lines.
func (s *scanner) scanString() {
	for !s.isAtEnd() && s.peek() != '"' {
		s.advance()
	}

	if s.isAtEnd() {
		s.reportError(loxerrors.ErrScanUnterminatedString)
		return
	}
	s.advance()

	s.addToken(token.STRING, string(s.source[s.start+1:s.current-1]))
}

// scanNumber reads an integer or decimal literal. A trailing '.' without a
// digit after it is not part of the number.
func (s *scanner) scanNumber() {
	s.skipDigits()
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		s.skipDigits()
	}

	value, err := strconv.ParseFloat(s.lexeme(), 64)
	if err != nil {
		s.reportError(loxerrors.ErrScanInvalidNumber)
		return
	}
	s.addToken(token.NUMBER, value)
}

func (s *scanner) skipDigits() {
	for isDigit(s.peek()) {
		s.advance()
	}
}

func (s *scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	tokenType, ok := token.Keywords[s.lexeme()]
	if !ok {
		tokenType = token.IDENTIFIER
	}
	s.addToken(tokenType, nil)
}

func (s *scanner) reportError(err error) {
	s.errs = append(s.errs, loxerrors.NewScanError(s.line, err))
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}

var _ Scanner = (*scanner)(nil)
