package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/maps"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

// Bindings maps a variable-referencing expression to the number of frames
// between its use and its declaration. Expressions missing from the table
// are globals.
type Bindings map[parser.Expr]int

type Interpreter interface {
	// Interpret runs statements against the interpreter's globals. When the
	// last statement is an expression statement its value is returned,
	// otherwise the value is nil. The first runtime error stops execution.
	Interpret(ctx context.Context, statements []parser.Stmt, bindings Bindings) (Value, error)
	Globals() *Environment
}

type interpreter struct {
	globals      *Environment
	env          *Environment
	locals       Bindings
	stdout       io.Writer
	maxCallDepth int
	depth        int
	ctx          context.Context
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	opts := newInterpreterOpts(options...)
	defineStd(opts.globals)

	return &interpreter{
		globals:      opts.globals,
		env:          opts.globals,
		locals:       make(Bindings),
		stdout:       opts.stdout,
		maxCallDepth: opts.maxCallDepth,
	}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, statements []parser.Stmt, bindings Bindings) (Value, error) {
	maps.Copy(i.locals, bindings)

	i.ctx = ctx
	defer func() {
		i.ctx = nil
		i.env = i.globals
		i.depth = 0
	}()

	for idx, stmt := range statements {
		if exprStmt, ok := stmt.(*parser.StmtExpression); ok && idx == len(statements)-1 {
			return i.evaluate(exprStmt.Expression)
		}
		if _, err := i.execute(stmt); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// Globals implements Interpreter.
func (i *interpreter) Globals() *Environment {
	return i.globals
}

// VisitStmtBlock implements parser.StmtVisitor.
func (i *interpreter) VisitStmtBlock(stmtBlock *parser.StmtBlock) (parser.Completion, error) {
	return i.executeBlock(i.env.Nest(), stmtBlock.Statements)
}

// VisitStmtBreak implements parser.StmtVisitor.
func (i *interpreter) VisitStmtBreak(_ *parser.StmtBreak) (parser.Completion, error) {
	return parser.Completion{Kind: parser.CompletionBreak}, nil
}

// VisitStmtClass implements parser.StmtVisitor.
func (i *interpreter) VisitStmtClass(stmtClass *parser.StmtClass) (parser.Completion, error) {
	var superClass *LoxClass
	if stmtClass.SuperClass != nil {
		value, err := i.evaluate(stmtClass.SuperClass)
		if err != nil {
			return parser.NormalCompletion, err
		}

		var ok bool
		if superClass, ok = value.(*LoxClass); !ok {
			return parser.NormalCompletion, loxerrors.NewRuntimeError(stmtClass.SuperClass.Name, loxerrors.ErrRuntimeSuperClassMustBeClass)
		}
	}

	i.env.Define(stmtClass.Name.Lexeme, NilValue)

	closure := i.env
	if superClass != nil {
		closure = i.env.Nest()
		closure.Define("super", superClass)
	}

	methods := make(map[string]*LoxFunction, len(stmtClass.Methods))
	for _, method := range stmtClass.Methods {
		kind := FunctionKindMethod
		if method.Name.Lexeme == "init" {
			kind = FunctionKindInitializer
		}
		methods[method.Name.Lexeme] = NewLoxFunction(method.Fn, closure, kind)
	}

	getters := make(map[string]*LoxFunction, len(stmtClass.Getters))
	for _, getter := range stmtClass.Getters {
		getters[getter.Name.Lexeme] = NewLoxFunction(getter.Fn, closure, FunctionKindGetter)
	}

	staticMethods := make(map[string]*LoxFunction, len(stmtClass.StaticMethods))
	for _, method := range stmtClass.StaticMethods {
		staticMethods[method.Name.Lexeme] = NewLoxFunction(method.Fn, closure, FunctionKindStatic)
	}

	class := NewLoxClass(stmtClass.Name.Lexeme, superClass, methods, getters, staticMethods)
	i.env.Define(stmtClass.Name.Lexeme, class)

	return parser.NormalCompletion, nil
}

// VisitStmtContinue implements parser.StmtVisitor.
func (i *interpreter) VisitStmtContinue(_ *parser.StmtContinue) (parser.Completion, error) {
	return parser.Completion{Kind: parser.CompletionContinue}, nil
}

// VisitStmtExpression implements parser.StmtVisitor.
func (i *interpreter) VisitStmtExpression(stmtExpression *parser.StmtExpression) (parser.Completion, error) {
	_, err := i.evaluate(stmtExpression.Expression)
	return parser.NormalCompletion, err
}

// VisitStmtFunction implements parser.StmtVisitor.
func (i *interpreter) VisitStmtFunction(stmtFunction *parser.StmtFunction) (parser.Completion, error) {
	fn := NewLoxFunction(stmtFunction.Fn, i.env, FunctionKindFunction)
	i.env.Define(stmtFunction.Name.Lexeme, fn)
	return parser.NormalCompletion, nil
}

// VisitStmtIf implements parser.StmtVisitor.
func (i *interpreter) VisitStmtIf(stmtIf *parser.StmtIf) (parser.Completion, error) {
	condition, err := i.evaluate(stmtIf.Condition)
	if err != nil {
		return parser.NormalCompletion, err
	}

	if isTruthy(condition) {
		return i.execute(stmtIf.ThenBranch)
	}
	if stmtIf.ElseBranch != nil {
		return i.execute(stmtIf.ElseBranch)
	}
	return parser.NormalCompletion, nil
}

// VisitStmtPrint implements parser.StmtVisitor.
func (i *interpreter) VisitStmtPrint(stmtPrint *parser.StmtPrint) (parser.Completion, error) {
	value, err := i.evaluate(stmtPrint.Expression)
	if err != nil {
		return parser.NormalCompletion, err
	}

	_, _ = fmt.Fprintln(i.stdout, value.String())
	return parser.NormalCompletion, nil
}

// VisitStmtReturn implements parser.StmtVisitor.
func (i *interpreter) VisitStmtReturn(stmtReturn *parser.StmtReturn) (parser.Completion, error) {
	var value Value = NilValue
	if stmtReturn.Value != nil {
		var err error
		if value, err = i.evaluate(stmtReturn.Value); err != nil {
			return parser.NormalCompletion, err
		}
	}

	return parser.Completion{Kind: parser.CompletionReturn, Value: value}, nil
}

// VisitStmtVar implements parser.StmtVisitor.
func (i *interpreter) VisitStmtVar(stmtVar *parser.StmtVar) (parser.Completion, error) {
	var value Value = uninitialized
	if stmtVar.Initializer != nil {
		var err error
		if value, err = i.evaluate(stmtVar.Initializer); err != nil {
			return parser.NormalCompletion, err
		}
	}

	i.env.Define(stmtVar.Name.Lexeme, value)
	return parser.NormalCompletion, nil
}

// VisitStmtWhile implements parser.StmtVisitor.
func (i *interpreter) VisitStmtWhile(stmtWhile *parser.StmtWhile) (parser.Completion, error) {
	for {
		if err := i.checkInterrupted(stmtWhile.Keyword); err != nil {
			return parser.NormalCompletion, err
		}

		condition, err := i.evaluate(stmtWhile.Condition)
		if err != nil {
			return parser.NormalCompletion, err
		}
		if !isTruthy(condition) {
			return parser.NormalCompletion, nil
		}

		completion, err := i.execute(stmtWhile.Body)
		if err != nil {
			return parser.NormalCompletion, err
		}
		switch completion.Kind {
		case parser.CompletionBreak:
			return parser.NormalCompletion, nil
		case parser.CompletionReturn:
			return completion, nil
		}

		if stmtWhile.Increment != nil {
			if _, err := i.evaluate(stmtWhile.Increment); err != nil {
				return parser.NormalCompletion, err
			}
		}
	}
}

// VisitExprAssign implements parser.ExprVisitor.
func (i *interpreter) VisitExprAssign(exprAssign *parser.ExprAssign) (Value, error) {
	value, err := i.evaluate(exprAssign.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[exprAssign]; ok {
		i.env.AssignAt(distance, exprAssign.Name, value)
	} else if err := i.globals.Assign(exprAssign.Name, value); err != nil {
		return nil, err
	}

	return value, nil
}

// VisitExprBinary implements parser.ExprVisitor.
func (i *interpreter) VisitExprBinary(exprBinary *parser.ExprBinary) (Value, error) {
	left, err := i.evaluate(exprBinary.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(exprBinary.Right)
	if err != nil {
		return nil, err
	}

	operator := exprBinary.Operator
	switch operator.Type {
	case token.EQUAL_EQUAL:
		return ValueBool(isEqual(left, right)), nil
	case token.BANG_EQUAL:
		return ValueBool(!isEqual(left, right)), nil
	case token.PLUS:
		return i.plus(operator, left, right)
	}

	l, r, err := i.numberOperands(operator, left, right)
	if err != nil {
		return nil, err
	}

	switch operator.Type {
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		if r == 0 {
			return nil, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeDivisionByZero)
		}
		return l / r, nil
	case token.GREATER:
		return ValueBool(l > r), nil
	case token.GREATER_EQUAL:
		return ValueBool(l >= r), nil
	case token.LESS:
		return ValueBool(l < r), nil
	case token.LESS_EQUAL:
		return ValueBool(l <= r), nil
	}

	panic(fmt.Sprintf("unexpected binary operator %s", operator.Type))
}

// plus adds numbers and concatenates strings. A string and a number
// concatenate with the number in its printed form, on either side.
func (i *interpreter) plus(operator *token.Token, left, right Value) (Value, error) {
	switch l := left.(type) {
	case ValueFloat:
		switch r := right.(type) {
		case ValueFloat:
			return l + r, nil
		case ValueString:
			return ValueString(l.String()) + r, nil
		}
	case ValueString:
		switch r := right.(type) {
		case ValueString:
			return l + r, nil
		case ValueFloat:
			return l + ValueString(r.String()), nil
		}
	}

	return nil, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbersOrString)
}

// VisitExprCall implements parser.ExprVisitor.
func (i *interpreter) VisitExprCall(exprCall *parser.ExprCall) (Value, error) {
	callee, err := i.evaluate(exprCall.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(exprCall.Arguments))
	for _, argument := range exprCall.Arguments {
		value, err := i.evaluate(argument)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	function, ok := callee.(Callable)
	if !ok {
		return nil, loxerrors.NewRuntimeError(exprCall.Paren, loxerrors.ErrRuntimeCalleeMustBeCallable)
	}

	if arity := function.Arity(); int(arity) != len(arguments) {
		return nil, loxerrors.NewRuntimeError(exprCall.Paren, loxerrors.ErrRuntimeCalleeArityError(int(arity), len(arguments)))
	}

	return i.call(i.ctx, exprCall.Paren, function, arguments)
}

// call invokes function with the depth limit and cancellation checks. Errors
// without a position are attributed to tok.
func (i *interpreter) call(ctx context.Context, tok *token.Token, function Callable, arguments []Value) (Value, error) {
	if err := i.checkInterrupted(tok); err != nil {
		return nil, err
	}
	if i.depth >= i.maxCallDepth {
		return nil, loxerrors.NewRuntimeError(tok, loxerrors.ErrRuntimeStackOverflow)
	}

	i.depth++
	defer func() { i.depth-- }()

	value, err := function.Call(ctx, i, arguments)
	if err != nil {
		var runtimeErr *loxerrors.RuntimeError
		if !errors.As(err, &runtimeErr) {
			err = loxerrors.NewRuntimeError(tok, err)
		}
		return nil, err
	}

	return value, nil
}

// VisitExprFunction implements parser.ExprVisitor. Only lambdas reach it;
// declarations are handled by VisitStmtFunction.
func (i *interpreter) VisitExprFunction(exprFunction *parser.ExprFunction) (Value, error) {
	return NewLoxFunction(exprFunction, i.env, FunctionKindLambda), nil
}

// VisitExprGet implements parser.ExprVisitor.
func (i *interpreter) VisitExprGet(exprGet *parser.ExprGet) (Value, error) {
	object, err := i.evaluate(exprGet.Instance)
	if err != nil {
		return nil, err
	}

	getter, ok := object.(PropertyGetter)
	if !ok {
		return nil, loxerrors.NewRuntimeError(exprGet.Name, loxerrors.ErrRuntimeOnlyInstancesHaveProperties)
	}

	return getter.Get(i.ctx, i, exprGet.Name)
}

// VisitExprGrouping implements parser.ExprVisitor.
func (i *interpreter) VisitExprGrouping(exprGrouping *parser.ExprGrouping) (Value, error) {
	return i.evaluate(exprGrouping.Expression)
}

// VisitExprLiteral implements parser.ExprVisitor.
func (i *interpreter) VisitExprLiteral(exprLiteral *parser.ExprLiteral) (Value, error) {
	return FromLiteral(exprLiteral.Value), nil
}

// VisitExprLogical implements parser.ExprVisitor.
func (i *interpreter) VisitExprLogical(exprLogical *parser.ExprLogical) (Value, error) {
	left, err := i.evaluate(exprLogical.Left)
	if err != nil {
		return nil, err
	}

	if exprLogical.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return i.evaluate(exprLogical.Right)
}

// VisitExprSet implements parser.ExprVisitor.
func (i *interpreter) VisitExprSet(exprSet *parser.ExprSet) (Value, error) {
	object, err := i.evaluate(exprSet.Instance)
	if err != nil {
		return nil, err
	}

	setter, ok := object.(PropertySetter)
	if !ok {
		return nil, loxerrors.NewRuntimeError(exprSet.Name, loxerrors.ErrRuntimeOnlyInstancesHaveFields)
	}

	value, err := i.evaluate(exprSet.Value)
	if err != nil {
		return nil, err
	}

	if err := setter.Set(exprSet.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

// VisitExprSuper implements parser.ExprVisitor.
func (i *interpreter) VisitExprSuper(exprSuper *parser.ExprSuper) (Value, error) {
	distance, ok := i.locals[exprSuper]
	if !ok {
		panic("unresolved 'super' expression")
	}

	superClass := i.env.GetAt(distance, "super").(*LoxClass)
	// "this" is always bound one frame inside the "super" frame.
	instance := i.env.GetAt(distance-1, "this").(*LoxInstance)

	return superClass.getMember(i.ctx, i, instance, exprSuper.Method)
}

// VisitExprTernary implements parser.ExprVisitor.
func (i *interpreter) VisitExprTernary(exprTernary *parser.ExprTernary) (Value, error) {
	condition, err := i.evaluate(exprTernary.Condition)
	if err != nil {
		return nil, err
	}

	if isTruthy(condition) {
		return i.evaluate(exprTernary.Then)
	}
	return i.evaluate(exprTernary.Else)
}

// VisitExprThis implements parser.ExprVisitor.
func (i *interpreter) VisitExprThis(exprThis *parser.ExprThis) (Value, error) {
	return i.lookUpVariable(exprThis.Keyword, exprThis)
}

// VisitExprUnary implements parser.ExprVisitor.
func (i *interpreter) VisitExprUnary(exprUnary *parser.ExprUnary) (Value, error) {
	right, err := i.evaluate(exprUnary.Right)
	if err != nil {
		return nil, err
	}

	switch exprUnary.Operator.Type {
	case token.BANG:
		return ValueBool(!isTruthy(right)), nil
	case token.MINUS:
		number, ok := right.(ValueFloat)
		if !ok {
			return nil, loxerrors.NewRuntimeError(exprUnary.Operator, loxerrors.ErrRuntimeOperandMustBeNumber)
		}
		return -number, nil
	}

	panic(fmt.Sprintf("unexpected unary operator %s", exprUnary.Operator.Type))
}

// VisitExprVariable implements parser.ExprVisitor.
func (i *interpreter) VisitExprVariable(exprVariable *parser.ExprVariable) (Value, error) {
	return i.lookUpVariable(exprVariable.Name, exprVariable)
}

func (i *interpreter) lookUpVariable(name *token.Token, expr parser.Expr) (Value, error) {
	var value Value
	if distance, ok := i.locals[expr]; ok {
		value = i.env.GetAt(distance, name.Lexeme)
	} else {
		var err error
		if value, err = i.globals.Get(name); err != nil {
			return nil, err
		}
	}

	if value == uninitialized {
		return nil, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUninitializedVariableError(name.Lexeme))
	}
	return value, nil
}

func (i *interpreter) numberOperands(operator *token.Token, left, right Value) (ValueFloat, ValueFloat, error) {
	l, lok := left.(ValueFloat)
	r, rok := right.(ValueFloat)
	if !lok || !rok {
		return 0, 0, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbers)
	}
	return l, r, nil
}

func (i *interpreter) checkInterrupted(tok *token.Token) error {
	if i.ctx != nil && i.ctx.Err() != nil {
		return loxerrors.NewRuntimeError(tok, loxerrors.ErrRuntimeInterrupted)
	}
	return nil
}

func (i *interpreter) evaluate(expr parser.Expr) (Value, error) {
	return expr.Accept(i)
}

func (i *interpreter) execute(stmt parser.Stmt) (parser.Completion, error) {
	return stmt.Accept(i)
}

func (i *interpreter) executeBlock(env *Environment, statements []parser.Stmt) (parser.Completion, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		completion, err := i.execute(stmt)
		if err != nil || !completion.IsNormal() {
			return completion, err
		}
	}

	return parser.NormalCompletion, nil
}

var (
	_ parser.ExprVisitor = (*interpreter)(nil)
	_ parser.StmtVisitor = (*interpreter)(nil)
	_ Interpreter        = (*interpreter)(nil)
)
