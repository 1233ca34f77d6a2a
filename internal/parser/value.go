package parser

import "fmt"

type ValueType uint

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueFloatType
	ValueStringType
	ValueCallableType
	ValueClassType
	ValueObjectType
	ValueUninitializedType
)

var valueTypeNames = [...]string{
	ValueNilType:           "nil",
	ValueBoolType:          "bool",
	ValueFloatType:         "number",
	ValueStringType:        "string",
	ValueCallableType:      "function",
	ValueClassType:         "class",
	ValueObjectType:        "instance",
	ValueUninitializedType: "uninitialized",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return fmt.Sprintf("ValueType(%d)", uint(t))
}

// Value is a runtime value produced by evaluating an expression.
type Value interface {
	fmt.Stringer
	Type() ValueType
}

type CompletionKind int

const (
	CompletionNormal CompletionKind = iota
	CompletionReturn
	CompletionBreak
	CompletionContinue
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionNormal:
		return "normal"
	case CompletionReturn:
		return "return"
	case CompletionBreak:
		return "break"
	case CompletionContinue:
		return "continue"
	}
	return fmt.Sprintf("CompletionKind(%d)", int(k))
}

// Completion is the outcome of executing a statement. Value is only
// meaningful for CompletionReturn.
type Completion struct {
	Kind  CompletionKind
	Value Value
}

var NormalCompletion = Completion{Kind: CompletionNormal}

func (c Completion) IsNormal() bool {
	return c.Kind == CompletionNormal
}
