package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrParseUnexpectedToken                     = errors.New("Expect expression.")
	ErrParseUnexpectedVariableName              = errors.New("Expect variable name.")
	ErrParseUnexpectedSuperClassName            = errors.New("Expect superclass name.")
	ErrParseUnexpectedParameterName             = errors.New("Expect parameter name.")
	ErrParseUnexpectedPropertyName              = errors.New("Expect property name after '.'.")
	ErrParseUnexpectedSuperMethodName           = errors.New("Expect superclass method name.")
	ErrParseInvalidAssignmentTarget             = errors.New("Invalid assignment target.")
	ErrParseExpectedRightParenToken             = errors.New("Expect ')' after expression.")
	ErrParseExpectedRightParenArgsToken         = errors.New("Expect ')' after arguments.")
	ErrParseExpectedRightParenParamsToken       = errors.New("Expect ')' after parameters.")
	ErrParseExpectedLeftParenLambdaToken        = errors.New("Expect '(' after 'fun'.")
	ErrParseExpectedLeftParenIfToken            = errors.New("Expect '(' after 'if'.")
	ErrParseExpectedRightParenIfToken           = errors.New("Expect ')' after if condition.")
	ErrParseExpectedLeftParenWhileToken         = errors.New("Expect '(' after 'while'.")
	ErrParseExpectedRightParenWhileToken        = errors.New("Expect ')' after condition.")
	ErrParseExpectedLeftParenForToken           = errors.New("Expect '(' after 'for'.")
	ErrParseExpectedRightParenForToken          = errors.New("Expect ')' after for clauses.")
	ErrParseExpectedColonTernaryToken           = errors.New("Expect ':' after then branch.")
	ErrParseExpectedDotAfterSuper               = errors.New("Expect '.' after 'super'.")
	ErrParseExpectedLeftBraceClassToken         = errors.New("Expect '{' before class body.")
	ErrParseExpectedRightBraceClassToken        = errors.New("Expect '}' after class body.")
	ErrParseExpectedRightBraceBlockToken        = errors.New("Expect '}' after block.")
	ErrParseExpectedSemicolonAfterPrintValue    = errors.New("Expect ';' after value.")
	ErrParseExpectedSemicolonAfterExpression    = errors.New("Expect ';' after expression.")
	ErrParseExpectedSemicolonAfterVar           = errors.New("Expect ';' after variable declaration.")
	ErrParseExpectedSemicolonAfterLoopCondition = errors.New("Expect ';' after loop condition.")
	ErrParseExpectedSemicolonAfterBreak         = errors.New("Expect ';' after 'break'.")
	ErrParseExpectedSemicolonAfterContinue      = errors.New("Expect ';' after 'continue'.")
	ErrParseExpectedSemicolonAfterReturn        = errors.New("Expect ';' after return value.")
	ErrParseBreakOutsideLoop                    = errors.New("Must be inside a loop to use 'break'.")
	ErrParseContinueOutsideLoop                 = errors.New("Must be inside a loop to use 'continue'.")
	ErrParseTooManyArguments                    = errors.New("Can't have more than 255 arguments.")
	ErrParseTooManyParameters                   = errors.New("Can't have more than 255 parameters.")
)

func ErrParseExpectedIdentifierKindError(kind string) error {
	return fmt.Errorf("Expect %s name.", kind)
}

func ErrParseExpectedLeftParenError(kind string) error {
	return fmt.Errorf("Expect '(' after %s name.", kind)
}

func ErrParseExpectedLeftBraceError(kind string) error {
	return fmt.Errorf("Expect '{' before %s body.", kind)
}

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

type ParserError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (p *ParserError) Error() string {
	return p.Diagnostic().String()
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

// Diagnostic implements diagnosticError.
func (p *ParserError) Diagnostic() Diagnostic {
	return Diagnostic{Kind: KindSyntax, Line: p.tok.Line, Where: p.tok.Where(), Message: p.cause.Error()}
}

var (
	_ error           = (*ParserError)(nil)
	_ unwrapInterface = (*ParserError)(nil)
	_ diagnosticError = (*ParserError)(nil)
)
