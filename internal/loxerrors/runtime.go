package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrRuntimeOperandMustBeNumber           = errors.New("Operand must be a number.")
	ErrRuntimeOperandsMustBeNumbers         = errors.New("Operands must be numbers.")
	ErrRuntimeOperandsMustBeNumbersOrString = errors.New("Operands must be two numbers or two strings, or a string and a number.")
	ErrRuntimeDivisionByZero                = errors.New("Division by zero.")
	ErrRuntimeUndefinedVariable             = errors.New("Undefined variable")
	ErrRuntimeUninitializedVariable         = errors.New("Uninitialized variable")
	ErrRuntimeCalleeMustBeCallable          = errors.New("Can only call functions and classes.")
	ErrRuntimeOnlyInstancesHaveProperties   = errors.New("Only instances have properties.")
	ErrRuntimeOnlyInstancesHaveFields       = errors.New("Only instances have fields.")
	ErrRuntimeSuperClassMustBeClass         = errors.New("Superclass must be a class.")
	ErrRuntimeUndefinedProperty             = errors.New("Undefined property")
	ErrRuntimeStackOverflow                 = errors.New("Stack overflow.")
	ErrRuntimeInterrupted                   = errors.New("Interrupted.")
	ErrRuntimeArraysCantSetProperties       = errors.New("Can't set properties on arrays.")
	ErrRuntimeArrayIndexOutOfRange          = errors.New("Array index out of range.")
	ErrRuntimeArrayInvalidArrayIndex        = errors.New("Invalid array index, must be number.")
	ErrRuntimeArrayInvalidArraySize         = errors.New("Invalid array size, must be non-negative number.")
)

func ErrRuntimeCalleeArityError(expectedArity int, actualArity int) error {
	return fmt.Errorf("Expected %d arguments but got %d.", expectedArity, actualArity)
}

func ErrRuntimeUndefinedPropertyError(name string) error {
	return fmt.Errorf("%w '%s'.", ErrRuntimeUndefinedProperty, name)
}

func ErrRuntimeUndefinedVariableError(name string) error {
	return fmt.Errorf("%w '%s'.", ErrRuntimeUndefinedVariable, name)
}

func ErrRuntimeUninitializedVariableError(name string) error {
	return fmt.Errorf("%w '%s'.", ErrRuntimeUninitializedVariable, name)
}

func NewRuntimeError(tok *token.Token, cause error) error {
	return &RuntimeError{tok, cause}
}

type RuntimeError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (r *RuntimeError) Error() string {
	return r.Diagnostic().String()
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

// Diagnostic implements diagnosticError.
func (r *RuntimeError) Diagnostic() Diagnostic {
	return Diagnostic{Kind: KindRuntime, Line: r.tok.Line, Message: r.cause.Error()}
}

var (
	_ error           = (*RuntimeError)(nil)
	_ unwrapInterface = (*RuntimeError)(nil)
	_ diagnosticError = (*RuntimeError)(nil)
)
