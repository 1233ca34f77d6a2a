package interpreter

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// Environment is one scope frame. Frames are shared by pointer between the
// block that created them and every closure that captured them.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{}
}

func (e *Environment) Define(name string, value Value) {
	if e.values == nil {
		e.values = make(map[string]Value)
	}
	e.values[name] = value
}

// Get looks name up by walking the whole chain. It is used for globals,
// which the resolver leaves unannotated.
func (e *Environment) Get(name *token.Token) (Value, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}

	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}

	return nil, e.undefinedVariable(name)
}

func (e *Environment) Assign(name *token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}

	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}

	return e.undefinedVariable(name)
}

// GetAt reads name from the frame distance hops up. The resolver guarantees
// the name is there; a miss is an interpreter bug and panics.
func (e *Environment) GetAt(distance int, name string) Value {
	value, ok := e.ancestor(distance).values[name]
	if !ok {
		panic(fmt.Sprintf("variable '%s' not found %d scopes up", name, distance))
	}
	return value
}

func (e *Environment) AssignAt(distance int, name *token.Token, value Value) {
	frame := e.ancestor(distance)
	if _, ok := frame.values[name.Lexeme]; !ok {
		panic(fmt.Sprintf("variable '%s' not found %d scopes up", name.Lexeme, distance))
	}
	frame.values[name.Lexeme] = value
}

func (e *Environment) Nest() *Environment {
	env := NewEnvironment()
	env.enclosing = e
	return env
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Names lists the names defined in this frame only, sorted.
func (e *Environment) Names() []string {
	names := maps.Keys(e.values)
	slices.Sort(names)
	return names
}

func (e *Environment) ancestor(distance int) *Environment {
	self := e
	for distance > 0 {
		self = self.enclosing
		distance--
	}

	return self
}

func (e *Environment) undefinedVariable(name *token.Token) error {
	return loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedVariableError(name.Lexeme))
}

func (e *Environment) String() string {
	w := new(strings.Builder)

	for self := e; self != nil; self = self.enclosing {
		_, _ = w.WriteString("{")
		for i, k := range self.Names() {
			if i > 0 {
				_, _ = w.WriteString(",")
			}
			_, _ = fmt.Fprintf(w, "%s=%v", k, self.values[k])
		}
		_, _ = w.WriteString("}")
		if self.enclosing != nil {
			_, _ = w.WriteString(" -> ")
		}
	}

	return w.String()
}

var _ fmt.Stringer = (*Environment)(nil)
