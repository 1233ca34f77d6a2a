package loxerrors

import (
	"errors"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrResolveCantInitVarSelfReference        = errors.New("Can't read local variable in its own initializer.")
	ErrResolveCantDuplicateVariableDefinition = errors.New("Already a variable with this name in this scope.")
	ErrResolveReturnOutsideFunction           = errors.New("Can't return from top-level code.")
	ErrResolveThisOutsideClass                = errors.New("Can't use 'this' outside of a class.")
	ErrResolveThisInStaticMethod              = errors.New("Can't use 'this' in a static method.")
	ErrResolveSuperOutsideClass               = errors.New("Can't use 'super' outside of a class.")
	ErrResolveSuperInClassWithNoSuperclass    = errors.New("Can't use 'super' in a class with no superclass.")
	ErrResolveSuperInStaticMethod             = errors.New("Can't use 'super' in a static method.")
	ErrResolveClassCantInheritFromItself      = errors.New("A class can't inherit from itself.")
	ErrResolveLocalVariableNotUsed            = errors.New("Local variable is not used.")
)

func NewResolveError(tok *token.Token, cause error) error {
	return &ResolverError{tok: tok, cause: cause}
}

// ResolverError is a static scoping error. It belongs to the same failure
// class as syntax errors: the program is never executed.
type ResolverError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (r *ResolverError) Error() string {
	return r.Diagnostic().String()
}

func (r *ResolverError) Unwrap() error {
	return r.cause
}

// Diagnostic implements diagnosticError.
func (r *ResolverError) Diagnostic() Diagnostic {
	return Diagnostic{Kind: KindResolution, Line: r.tok.Line, Where: r.tok.Where(), Message: r.cause.Error()}
}

var (
	_ error           = (*ResolverError)(nil)
	_ unwrapInterface = (*ResolverError)(nil)
	_ diagnosticError = (*ResolverError)(nil)
)
