package interpreter

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

// StdFnClock returns the wall clock in seconds.
func StdFnClock(_ context.Context, _ *interpreter) (Value, error) {
	return ValueFloat(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}

// MaxArraySize bounds the length accepted by `array(n)`.
const MaxArraySize = 1 << 24

func StdFnCreateArray(_ context.Context, _ *interpreter, arg Value) (Value, error) {
	size, ok := arg.(ValueFloat)
	if !ok || size < 0 || size > MaxArraySize || math.Trunc(float64(size)) != float64(size) {
		return nil, loxerrors.ErrRuntimeArrayInvalidArraySize
	}

	values := make([]Value, int(size))
	for i := range values {
		values[i] = NilValue
	}
	return NewStdArray(values), nil
}

// defineStd installs the native functions every program can see.
func defineStd(globals *Environment) {
	globals.Define("clock", NativeFunction0(StdFnClock).Native("clock"))
	globals.Define("array", NativeFunction1(StdFnCreateArray).Native("array"))
}

// StdArray is a fixed-size array object with `length`, `get(i)` and
// `set(i, v)` members.
type StdArray struct {
	values []Value
}

func NewStdArray(values []Value) *StdArray {
	return &StdArray{values: values}
}

// Get implements PropertyGetter.
func (s *StdArray) Get(_ context.Context, _ *interpreter, name *token.Token) (Value, error) {
	switch name.Lexeme {
	case "length":
		return ValueFloat(len(s.values)), nil
	case "get":
		return NativeFunction1(func(_ context.Context, _ *interpreter, arg1 Value) (Value, error) {
			return s.getAt(name, arg1)
		}).Native("get"), nil
	case "set":
		return NativeFunction2(func(_ context.Context, _ *interpreter, arg1, arg2 Value) (Value, error) {
			return s.setAt(name, arg1, arg2)
		}).Native("set"), nil
	}

	return nil, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedPropertyError(name.Lexeme))
}

// Set implements PropertySetter.
func (s *StdArray) Set(name *token.Token, _ Value) error {
	return loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeArraysCantSetProperties)
}

func (s *StdArray) getAt(name *token.Token, index Value) (Value, error) {
	i, err := s.index(name, index)
	if err != nil {
		return nil, err
	}

	return s.values[i], nil
}

func (s *StdArray) setAt(name *token.Token, index, value Value) (Value, error) {
	i, err := s.index(name, index)
	if err != nil {
		return nil, err
	}

	s.values[i] = value
	return value, nil
}

func (s *StdArray) index(name *token.Token, index Value) (int, error) {
	f, ok := index.(ValueFloat)
	if !ok || math.Trunc(float64(f)) != float64(f) {
		return 0, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeArrayInvalidArrayIndex)
	}

	if f < 0 || f >= ValueFloat(len(s.values)) {
		return 0, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeArrayIndexOutOfRange)
	}
	return int(f), nil
}

// Type implements parser.Value.
func (s *StdArray) Type() parser.ValueType {
	return parser.ValueObjectType
}

// String implements fmt.Stringer.
func (s *StdArray) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// GoString implements fmt.GoStringer.
func (s *StdArray) GoString() string {
	return s.String()
}

var (
	_ Value          = (*StdArray)(nil)
	_ PropertyGetter = (*StdArray)(nil)
	_ PropertySetter = (*StdArray)(nil)
)
