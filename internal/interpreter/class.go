package interpreter

import (
	"context"
	"fmt"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

// PropertyGetter is a value that supports `value.name`.
type PropertyGetter interface {
	Get(ctx context.Context, interpreter *interpreter, name *token.Token) (Value, error)
}

// PropertySetter is a value that supports `value.name = x`.
type PropertySetter interface {
	Set(name *token.Token, value Value) error
}

type LoxClass struct {
	Name string

	// Instance inheritance chain.
	SuperClass *LoxClass

	Methods map[string]*LoxFunction
	Getters map[string]*LoxFunction
	// Static methods are looked up on the class value itself and are never
	// bound to an instance.
	StaticMethods map[string]*LoxFunction
}

func NewLoxClass(name string, superClass *LoxClass, methods, getters, staticMethods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{
		Name:          name,
		SuperClass:    superClass,
		Methods:       methods,
		Getters:       getters,
		StaticMethods: staticMethods,
	}
}

// Arity implements Callable.
func (l *LoxClass) Arity() Arity {
	if init := l.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return Arity(0)
}

// Call implements Callable.
func (l *LoxClass) Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error) {
	instance := NewLoxInstance(l)
	if init := l.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(ctx, interpreter, arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Get implements PropertyGetter. Only static methods are reachable on a class.
func (l *LoxClass) Get(_ context.Context, _ *interpreter, name *token.Token) (Value, error) {
	for cl := l; cl != nil; cl = cl.SuperClass {
		if method, ok := cl.StaticMethods[name.Lexeme]; ok {
			return method, nil
		}
	}

	return nil, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedPropertyError(name.Lexeme))
}

// getMember resolves name for instance, starting at class l: a getter is
// invoked, a method is bound.
func (l *LoxClass) getMember(ctx context.Context, interpreter *interpreter, instance *LoxInstance, name *token.Token) (Value, error) {
	for cl := l; cl != nil; cl = cl.SuperClass {
		if getter, ok := cl.Getters[name.Lexeme]; ok {
			return interpreter.call(ctx, name, getter.Bind(instance), nil)
		}
		if method, ok := cl.Methods[name.Lexeme]; ok {
			return method.Bind(instance), nil
		}
	}

	return nil, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedPropertyError(name.Lexeme))
}

func (l *LoxClass) FindMethod(name string) *LoxFunction {
	for cl := l; cl != nil; cl = cl.SuperClass {
		if method, ok := cl.Methods[name]; ok {
			return method
		}
	}

	return nil
}

// Type implements parser.Value.
func (l *LoxClass) Type() parser.ValueType {
	return parser.ValueClassType
}

// String implements fmt.Stringer.
func (l *LoxClass) String() string {
	return l.Name
}

// GoString implements fmt.GoStringer.
func (l *LoxClass) GoString() string {
	return fmt.Sprintf("<class:%s/%s>", l.Name, l.Arity())
}

type LoxInstance struct {
	Class  *LoxClass
	Fields map[string]Value
}

func NewLoxInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{Class: class, Fields: make(map[string]Value)}
}

// Get implements PropertyGetter. Fields shadow getters, getters shadow
// methods; getters and methods are searched one class at a time up the
// superclass chain.
func (l *LoxInstance) Get(ctx context.Context, interpreter *interpreter, name *token.Token) (Value, error) {
	if value, ok := l.Fields[name.Lexeme]; ok {
		return value, nil
	}

	return l.Class.getMember(ctx, interpreter, l, name)
}

// Set implements PropertySetter.
func (l *LoxInstance) Set(name *token.Token, value Value) error {
	l.Fields[name.Lexeme] = value
	return nil
}

// Type implements parser.Value.
func (l *LoxInstance) Type() parser.ValueType {
	return parser.ValueObjectType
}

// String implements fmt.Stringer.
func (l *LoxInstance) String() string {
	return l.Class.Name + " instance"
}

// GoString implements fmt.GoStringer.
func (l *LoxInstance) GoString() string {
	return fmt.Sprintf("<instance:%s %v>", l.Class.Name, l.Fields)
}

var (
	_ Callable       = (*LoxClass)(nil)
	_ PropertyGetter = (*LoxClass)(nil)
	_ fmt.GoStringer = (*LoxClass)(nil)
)

var (
	_ Value          = (*LoxInstance)(nil)
	_ PropertyGetter = (*LoxInstance)(nil)
	_ PropertySetter = (*LoxInstance)(nil)
	_ fmt.GoStringer = (*LoxInstance)(nil)
)
