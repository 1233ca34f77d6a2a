package interpreter

import (
	"math"
	"strconv"

	"github.com/leonardinius/treelox/internal/parser"
)

// Value alias, not type redefinition.
type Value = parser.Value

type (
	ValueNil           struct{}
	ValueBool          bool
	ValueFloat         float64
	ValueString        string
	valueUninitialized struct{}
)

var (
	NilValue   = ValueNil{}
	TrueValue  = ValueBool(true)
	FalseValue = ValueBool(false)

	// uninitialized marks a variable declared without an initializer. It is
	// never visible to programs: reading it is a runtime error.
	uninitialized = valueUninitialized{}
)

// Type implements parser.Value.
func (v ValueNil) Type() parser.ValueType {
	return parser.ValueNilType
}

// String implements fmt.Stringer.
func (v ValueNil) String() string {
	return "nil"
}

// Type implements parser.Value.
func (v ValueBool) Type() parser.ValueType {
	return parser.ValueBoolType
}

// String implements fmt.Stringer.
func (v ValueBool) String() string {
	return strconv.FormatBool(bool(v))
}

// Type implements parser.Value.
func (v ValueFloat) Type() parser.ValueType {
	return parser.ValueFloatType
}

// String implements fmt.Stringer. Integral numbers print without a
// fractional part; infinities print as "inf" and "-inf".
func (v ValueFloat) String() string {
	switch f := float64(v); {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// Type implements parser.Value.
func (v ValueString) Type() parser.ValueType {
	return parser.ValueStringType
}

// String implements fmt.Stringer.
func (v ValueString) String() string {
	return string(v)
}

// Type implements parser.Value.
func (v valueUninitialized) Type() parser.ValueType {
	return parser.ValueUninitializedType
}

// String implements fmt.Stringer.
func (v valueUninitialized) String() string {
	return "<uninitialized>"
}

// FromLiteral converts a scanned literal into a runtime value.
func FromLiteral(literal any) Value {
	switch v := literal.(type) {
	case nil:
		return NilValue
	case bool:
		return ValueBool(v)
	case float64:
		return ValueFloat(v)
	case int:
		return ValueFloat(v)
	case string:
		return ValueString(v)
	}
	panic("unexpected literal type")
}

func isTruthy(v Value) bool {
	switch v := v.(type) {
	case ValueNil:
		return false
	case ValueBool:
		return bool(v)
	}
	return true
}

// isEqual compares by value for primitives and by identity for objects.
// Every dynamic Value type is comparable, so interface equality is exact.
func isEqual(a, b Value) bool {
	return a == b
}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueFloat(0)
	_ Value = ValueString("")
	_ Value = valueUninitialized{}
)
