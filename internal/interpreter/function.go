package interpreter

import (
	"context"
	"fmt"

	"github.com/leonardinius/treelox/internal/parser"
)

type FunctionKind int

const (
	FunctionKindFunction FunctionKind = iota
	FunctionKindLambda
	FunctionKindMethod
	FunctionKindInitializer
	FunctionKindGetter
	FunctionKindStatic
)

// LoxFunction is a user-defined function: a declaration plus the frame that
// was active where it was evaluated. A bound method is a LoxFunction whose
// closure is a frame defining "this".
type LoxFunction struct {
	Fn      *parser.ExprFunction
	Closure *Environment
	Kind    FunctionKind
}

func NewLoxFunction(fn *parser.ExprFunction, closure *Environment, kind FunctionKind) *LoxFunction {
	return &LoxFunction{Fn: fn, Closure: closure, Kind: kind}
}

// Arity implements Callable.
func (l *LoxFunction) Arity() Arity {
	return Arity(len(l.Fn.Parameters))
}

// Call implements Callable.
func (l *LoxFunction) Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error) {
	env := l.Closure.Nest()
	for idx, param := range l.Fn.Parameters {
		env.Define(param.Lexeme, arguments[idx])
	}

	completion, err := interpreter.executeBlock(env, l.Fn.Body)
	if err != nil {
		return nil, err
	}

	if l.Kind == FunctionKindInitializer {
		return l.Closure.GetAt(0, "this"), nil
	}
	if completion.Kind == parser.CompletionReturn && completion.Value != nil {
		return completion.Value, nil
	}
	return NilValue, nil
}

// Bind returns a copy of l with "this" fixed to instance.
func (l *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := l.Closure.Nest()
	env.Define("this", instance)
	return NewLoxFunction(l.Fn, env, l.Kind)
}

func (l *LoxFunction) Name() string {
	if l.Fn.Name == nil {
		return "lambda"
	}
	return l.Fn.Name.Lexeme
}

// Type implements parser.Value.
func (l *LoxFunction) Type() parser.ValueType {
	return parser.ValueCallableType
}

// String implements fmt.Stringer.
func (l *LoxFunction) String() string {
	return fmt.Sprintf("<fn %s>", l.Name())
}

// GoString implements fmt.GoStringer.
func (l *LoxFunction) GoString() string {
	return fmt.Sprintf("<fn:%s/%s>", l.Name(), l.Arity())
}

var (
	_ Callable       = (*LoxFunction)(nil)
	_ fmt.GoStringer = (*LoxFunction)(nil)
)
