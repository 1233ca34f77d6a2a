package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/internal/interpreter"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

func ident(name string) *token.Token {
	return token.NewTokenHeap(token.IDENTIFIER, name, nil, 1)
}

func TestEnvironmentGlobalChain(t *testing.T) {
	t.Parallel()

	globals := interpreter.NewEnvironment()
	globals.Define("a", interpreter.ValueFloat(1))
	local := globals.Nest()

	value, err := local.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, interpreter.ValueFloat(1), value)

	require.NoError(t, local.Assign(ident("a"), interpreter.ValueString("x")))
	assert.Equal(t, interpreter.ValueString("x"), globals.GetAt(0, "a"))

	_, err = local.Get(ident("missing"))
	assert.ErrorIs(t, err, loxerrors.ErrRuntimeUndefinedVariable)
	assert.EqualError(t, err, "Undefined variable 'missing'.\n[line 1]")

	err = local.Assign(ident("missing"), interpreter.NilValue)
	assert.ErrorIs(t, err, loxerrors.ErrRuntimeUndefinedVariable)

	assert.Same(t, globals, local.Enclosing())
}

func TestEnvironmentAt(t *testing.T) {
	t.Parallel()

	outer := interpreter.NewEnvironment()
	outer.Define("a", interpreter.TrueValue)
	inner := outer.Nest().Nest()
	inner.Define("a", interpreter.FalseValue)

	assert.Equal(t, interpreter.FalseValue, inner.GetAt(0, "a"))
	assert.Equal(t, interpreter.TrueValue, inner.GetAt(2, "a"))

	inner.AssignAt(2, ident("a"), interpreter.NilValue)
	assert.Equal(t, interpreter.NilValue, outer.GetAt(0, "a"))

	assert.Panics(t, func() { inner.GetAt(1, "a") })
	assert.Panics(t, func() { inner.AssignAt(1, ident("a"), interpreter.NilValue) })
}

func TestEnvironmentNames(t *testing.T) {
	t.Parallel()

	env := interpreter.NewEnvironment()
	env.Define("b", interpreter.NilValue)
	env.Define("a", interpreter.NilValue)
	env.Nest().Define("c", interpreter.NilValue)

	assert.Equal(t, []string{"a", "b"}, env.Names())
}
