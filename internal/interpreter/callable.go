package interpreter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/leonardinius/treelox/internal/parser"
)

type Arity int

func (a Arity) String() string {
	return strconv.Itoa(int(a))
}

type Callable interface {
	Value
	Arity() Arity
	Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error)
}

// NativeFunction is a callable implemented in Go.
type NativeFunction struct {
	name  string
	arity Arity
	fn    func(ctx context.Context, interpreter *interpreter, args []Value) (Value, error)
}

type NativeFunction0 func(ctx context.Context, interpreter *interpreter) (Value, error)
type NativeFunction1 func(ctx context.Context, interpreter *interpreter, arg1 Value) (Value, error)
type NativeFunction2 func(ctx context.Context, interpreter *interpreter, arg1, arg2 Value) (Value, error)

// Native wraps n as a callable value.
func (n NativeFunction0) Native(name string) *NativeFunction {
	return &NativeFunction{name: name, arity: 0, fn: func(ctx context.Context, interpreter *interpreter, _ []Value) (Value, error) {
		return n(ctx, interpreter)
	}}
}

// Native wraps n as a callable value.
func (n NativeFunction1) Native(name string) *NativeFunction {
	return &NativeFunction{name: name, arity: 1, fn: func(ctx context.Context, interpreter *interpreter, args []Value) (Value, error) {
		return n(ctx, interpreter, args[0])
	}}
}

// Native wraps n as a callable value.
func (n NativeFunction2) Native(name string) *NativeFunction {
	return &NativeFunction{name: name, arity: 2, fn: func(ctx context.Context, interpreter *interpreter, args []Value) (Value, error) {
		return n(ctx, interpreter, args[0], args[1])
	}}
}

// Arity implements Callable.
func (n *NativeFunction) Arity() Arity {
	return n.arity
}

// Call implements Callable.
func (n *NativeFunction) Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error) {
	return n.fn(ctx, interpreter, arguments)
}

// Type implements parser.Value.
func (n *NativeFunction) Type() parser.ValueType {
	return parser.ValueCallableType
}

// String implements fmt.Stringer.
func (n *NativeFunction) String() string {
	return "<native fn>"
}

// GoString implements fmt.GoStringer.
func (n *NativeFunction) GoString() string {
	return fmt.Sprintf("<native fn %s/%s>", n.name, n.arity)
}

var (
	_ Callable       = (*NativeFunction)(nil)
	_ fmt.GoStringer = (*NativeFunction)(nil)
)
