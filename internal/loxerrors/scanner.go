package loxerrors

import (
	"errors"
	"fmt"
)

var (
	ErrScanUnexpectedCharacter = errors.New("Unexpected character.")
	ErrScanUnterminatedString  = errors.New("Unterminated string.")
	ErrScanInvalidNumber       = errors.New("Invalid number.")
)

type ScannerError struct {
	line  int
	cause error
}

func NewScanError(line int, cause error) error {
	return &ScannerError{line, cause}
}

// Error implements error.
func (s *ScannerError) Error() string {
	return s.Diagnostic().String()
}

func (s *ScannerError) Unwrap() error {
	return s.cause
}

// Diagnostic implements diagnosticError.
func (s *ScannerError) Diagnostic() Diagnostic {
	return Diagnostic{Kind: KindSyntax, Line: s.line, Message: s.cause.Error()}
}

var (
	_ error           = (*ScannerError)(nil)
	_ unwrapInterface = (*ScannerError)(nil)
	_ diagnosticError = (*ScannerError)(nil)
	_ fmt.Stringer    = Diagnostic{}
)
