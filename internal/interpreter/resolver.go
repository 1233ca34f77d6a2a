package interpreter

import (
	"cmp"
	"container/list"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

type Resolver interface {
	// Resolve computes a binding distance for every local variable reference
	// and returns the joined resolution errors.
	Resolve(statements []parser.Stmt) (Bindings, error)
}

type VarState int

const (
	VarStateDeclared VarState = iota
	VarStateDefined
	VarStateRead
)

type FunctionType int

const (
	FnTypeNone FunctionType = iota
	FnTypeLambda
	FnTypeFunction
	FnTypeMethod
	FnTypeStaticMethod
	FnTypeGetter
	FnTypeInitializer
)

type ClassType int

const (
	CTypeNone ClassType = iota
	CTypeClass
	CTypeSubclass
)

const (
	ProfileDefault = "default"
	ProfileStrict  = "strict"
)

type ResolverVariable struct {
	Name  *token.Token
	State VarState
}

type resolver struct {
	bindings        Bindings
	scopes          *list.List
	err             []error
	currentFunction FunctionType
	currentClass    ClassType
	inStaticMethod  bool
	profile         string
}

// profiles lists the errors each profile does not report.
var profiles = map[string][]error{
	ProfileDefault: {
		loxerrors.ErrResolveLocalVariableNotUsed,
	},
	ProfileStrict: {},
}

// NewResolver returns a resolver for the given profile; unknown profiles
// report every error.
func NewResolver(profile string) Resolver {
	return &resolver{
		scopes:          list.New(),
		currentFunction: FnTypeNone,
		currentClass:    CTypeNone,
		profile:         profile,
	}
}

// Resolve implements Resolver.
func (r *resolver) Resolve(statements []parser.Stmt) (Bindings, error) {
	r.err = nil
	r.bindings = make(Bindings)
	r.resolveStmts(statements)
	return r.bindings, errors.Join(r.err...)
}

// VisitStmtBlock implements parser.StmtVisitor.
func (r *resolver) VisitStmtBlock(stmtBlock *parser.StmtBlock) (parser.Completion, error) {
	r.beginScope()
	defer r.endScope()
	r.resolveStmts(stmtBlock.Statements)
	return parser.NormalCompletion, nil
}

// VisitStmtClass implements parser.StmtVisitor.
func (r *resolver) VisitStmtClass(stmtClass *parser.StmtClass) (parser.Completion, error) {
	enclosingClass, enclosingStatic := r.currentClass, r.inStaticMethod
	defer func() { r.currentClass, r.inStaticMethod = enclosingClass, enclosingStatic }()
	r.currentClass = CTypeClass
	r.inStaticMethod = false

	r.declare(stmtClass.Name)
	r.define(stmtClass.Name)

	if stmtClass.SuperClass != nil && stmtClass.Name.Lexeme == stmtClass.SuperClass.Name.Lexeme {
		r.reportError(stmtClass.SuperClass.Name, loxerrors.ErrResolveClassCantInheritFromItself)
	}
	if stmtClass.SuperClass != nil {
		r.currentClass = CTypeSubclass
		r.resolveExpr(stmtClass.SuperClass)

		r.beginScope()
		defer r.endScope()
		r.defineInternal("super")
	}

	// Static methods close over the class's enclosing scope (plus "super"),
	// never over "this".
	r.inStaticMethod = true
	for _, method := range stmtClass.StaticMethods {
		r.resolveFunction(method.Fn, FnTypeStaticMethod)
	}
	r.inStaticMethod = false

	r.beginScope()
	defer r.endScope()
	r.defineInternal("this")

	for _, method := range stmtClass.Methods {
		functionType := FnTypeMethod
		if method.Name.Lexeme == "init" {
			functionType = FnTypeInitializer
		}
		r.resolveFunction(method.Fn, functionType)
	}

	for _, getter := range stmtClass.Getters {
		r.resolveFunction(getter.Fn, FnTypeGetter)
	}

	return parser.NormalCompletion, nil
}

// VisitStmtBreak implements parser.StmtVisitor.
func (r *resolver) VisitStmtBreak(_ *parser.StmtBreak) (parser.Completion, error) {
	return parser.NormalCompletion, nil
}

// VisitStmtContinue implements parser.StmtVisitor.
func (r *resolver) VisitStmtContinue(_ *parser.StmtContinue) (parser.Completion, error) {
	return parser.NormalCompletion, nil
}

// VisitStmtExpression implements parser.StmtVisitor.
func (r *resolver) VisitStmtExpression(stmtExpression *parser.StmtExpression) (parser.Completion, error) {
	r.resolveExpr(stmtExpression.Expression)
	return parser.NormalCompletion, nil
}

// VisitStmtFunction implements parser.StmtVisitor.
func (r *resolver) VisitStmtFunction(stmtFunction *parser.StmtFunction) (parser.Completion, error) {
	r.declare(stmtFunction.Name)
	r.define(stmtFunction.Name)

	r.resolveFunction(stmtFunction.Fn, FnTypeFunction)
	return parser.NormalCompletion, nil
}

// VisitStmtIf implements parser.StmtVisitor.
func (r *resolver) VisitStmtIf(stmtIf *parser.StmtIf) (parser.Completion, error) {
	r.resolveExpr(stmtIf.Condition)
	r.resolveStmt(stmtIf.ThenBranch)
	if stmtIf.ElseBranch != nil {
		r.resolveStmt(stmtIf.ElseBranch)
	}
	return parser.NormalCompletion, nil
}

// VisitStmtPrint implements parser.StmtVisitor.
func (r *resolver) VisitStmtPrint(stmtPrint *parser.StmtPrint) (parser.Completion, error) {
	r.resolveExpr(stmtPrint.Expression)
	return parser.NormalCompletion, nil
}

// VisitStmtReturn implements parser.StmtVisitor.
func (r *resolver) VisitStmtReturn(stmtReturn *parser.StmtReturn) (parser.Completion, error) {
	if r.currentFunction == FnTypeNone {
		r.reportError(stmtReturn.Keyword, loxerrors.ErrResolveReturnOutsideFunction)
	}
	if stmtReturn.Value != nil {
		r.resolveExpr(stmtReturn.Value)
	}
	return parser.NormalCompletion, nil
}

// VisitStmtVar implements parser.StmtVisitor.
func (r *resolver) VisitStmtVar(stmtVar *parser.StmtVar) (parser.Completion, error) {
	r.declare(stmtVar.Name)
	if stmtVar.Initializer != nil {
		r.resolveExpr(stmtVar.Initializer)
	}
	r.define(stmtVar.Name)
	return parser.NormalCompletion, nil
}

// VisitStmtWhile implements parser.StmtVisitor.
func (r *resolver) VisitStmtWhile(stmtWhile *parser.StmtWhile) (parser.Completion, error) {
	r.resolveExpr(stmtWhile.Condition)
	r.resolveStmt(stmtWhile.Body)
	if stmtWhile.Increment != nil {
		r.resolveExpr(stmtWhile.Increment)
	}
	return parser.NormalCompletion, nil
}

// VisitExprAssign implements parser.ExprVisitor.
func (r *resolver) VisitExprAssign(exprAssign *parser.ExprAssign) (Value, error) {
	r.resolveExpr(exprAssign.Value)
	r.resolveLocal(exprAssign, exprAssign.Name, false)
	return NilValue, nil
}

// VisitExprBinary implements parser.ExprVisitor.
func (r *resolver) VisitExprBinary(exprBinary *parser.ExprBinary) (Value, error) {
	r.resolveExpr(exprBinary.Left)
	r.resolveExpr(exprBinary.Right)
	return NilValue, nil
}

// VisitExprCall implements parser.ExprVisitor.
func (r *resolver) VisitExprCall(exprCall *parser.ExprCall) (Value, error) {
	r.resolveExpr(exprCall.Callee)
	for _, arg := range exprCall.Arguments {
		r.resolveExpr(arg)
	}
	return NilValue, nil
}

// VisitExprFunction implements parser.ExprVisitor.
func (r *resolver) VisitExprFunction(exprFunction *parser.ExprFunction) (Value, error) {
	r.resolveFunction(exprFunction, FnTypeLambda)
	return NilValue, nil
}

// VisitExprGet implements parser.ExprVisitor.
func (r *resolver) VisitExprGet(exprGet *parser.ExprGet) (Value, error) {
	r.resolveExpr(exprGet.Instance)
	return NilValue, nil
}

// VisitExprGrouping implements parser.ExprVisitor.
func (r *resolver) VisitExprGrouping(exprGrouping *parser.ExprGrouping) (Value, error) {
	r.resolveExpr(exprGrouping.Expression)
	return NilValue, nil
}

// VisitExprLiteral implements parser.ExprVisitor.
func (r *resolver) VisitExprLiteral(_ *parser.ExprLiteral) (Value, error) {
	return NilValue, nil
}

// VisitExprLogical implements parser.ExprVisitor.
func (r *resolver) VisitExprLogical(exprLogical *parser.ExprLogical) (Value, error) {
	r.resolveExpr(exprLogical.Left)
	r.resolveExpr(exprLogical.Right)
	return NilValue, nil
}

// VisitExprSet implements parser.ExprVisitor.
func (r *resolver) VisitExprSet(exprSet *parser.ExprSet) (Value, error) {
	r.resolveExpr(exprSet.Value)
	r.resolveExpr(exprSet.Instance)
	return NilValue, nil
}

// VisitExprSuper implements parser.ExprVisitor.
func (r *resolver) VisitExprSuper(exprSuper *parser.ExprSuper) (Value, error) {
	switch {
	case r.currentClass == CTypeNone:
		r.reportError(exprSuper.Keyword, loxerrors.ErrResolveSuperOutsideClass)
	case r.inStaticMethod:
		r.reportError(exprSuper.Keyword, loxerrors.ErrResolveSuperInStaticMethod)
	case r.currentClass != CTypeSubclass:
		r.reportError(exprSuper.Keyword, loxerrors.ErrResolveSuperInClassWithNoSuperclass)
	}

	r.resolveLocal(exprSuper, exprSuper.Keyword, true)
	return NilValue, nil
}

// VisitExprTernary implements parser.ExprVisitor.
func (r *resolver) VisitExprTernary(exprTernary *parser.ExprTernary) (Value, error) {
	r.resolveExpr(exprTernary.Condition)
	r.resolveExpr(exprTernary.Then)
	r.resolveExpr(exprTernary.Else)
	return NilValue, nil
}

// VisitExprThis implements parser.ExprVisitor.
func (r *resolver) VisitExprThis(exprThis *parser.ExprThis) (Value, error) {
	switch {
	case r.currentClass == CTypeNone:
		r.reportError(exprThis.Keyword, loxerrors.ErrResolveThisOutsideClass)
	case r.inStaticMethod:
		r.reportError(exprThis.Keyword, loxerrors.ErrResolveThisInStaticMethod)
	}

	r.resolveLocal(exprThis, exprThis.Keyword, true)
	return NilValue, nil
}

// VisitExprUnary implements parser.ExprVisitor.
func (r *resolver) VisitExprUnary(exprUnary *parser.ExprUnary) (Value, error) {
	r.resolveExpr(exprUnary.Right)
	return NilValue, nil
}

// VisitExprVariable implements parser.ExprVisitor.
func (r *resolver) VisitExprVariable(exprVariable *parser.ExprVariable) (Value, error) {
	if state, ok := r.peekScopeVar(exprVariable.Name.Lexeme); ok && state.State == VarStateDeclared {
		r.reportError(exprVariable.Name, loxerrors.ErrResolveCantInitVarSelfReference)
	}
	r.resolveLocal(exprVariable, exprVariable.Name, true)
	return NilValue, nil
}

func (r *resolver) beginScope() {
	r.scopes.PushBack(map[string]*ResolverVariable{})
}

func (r *resolver) endScope() {
	if scope, ok := r.peekScope(); ok {
		var unused []*ResolverVariable
		for _, variable := range scope {
			if variable.State == VarStateDefined {
				unused = append(unused, variable)
			}
		}
		slices.SortFunc(unused, func(a, b *ResolverVariable) int {
			return cmp.Or(cmp.Compare(a.Name.Line, b.Name.Line), cmp.Compare(a.Name.Lexeme, b.Name.Lexeme))
		})
		for _, variable := range unused {
			r.reportError(variable.Name, loxerrors.ErrResolveLocalVariableNotUsed)
		}
	}

	r.scopes.Remove(r.scopes.Back())
}

func (r *resolver) resolveStmts(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt parser.Stmt) {
	_, _ = stmt.Accept(r)
}

func (r *resolver) resolveExpr(expr parser.Expr) {
	_, _ = expr.Accept(r)
}

func (r *resolver) resolveFunction(function *parser.ExprFunction, declaration FunctionType) {
	enclosingFunction := r.currentFunction
	r.beginScope()
	r.currentFunction = declaration

	defer func() { r.currentFunction = enclosingFunction }()
	defer r.endScope()

	for _, param := range function.Parameters {
		r.declare(param)
		r.define(param)
	}

	r.resolveStmts(function.Body)
}

func (r *resolver) resolveLocal(expr parser.Expr, tok *token.Token, isRead bool) {
	depth := r.scopes.Len()
	back := r.scopes.Back()
	for i := range depth {
		scope := r.scopeFromListElem(back)
		if variable, ok := scope[tok.Lexeme]; ok {
			r.bindings[expr] = i

			if isRead {
				variable.State = VarStateRead
			}
			return
		}
		back = back.Prev()
	}
}

func (r *resolver) declare(tok *token.Token) {
	if scope, ok := r.peekScope(); ok {
		if _, ok := scope[tok.Lexeme]; ok {
			r.reportError(tok, loxerrors.ErrResolveCantDuplicateVariableDefinition)
		}
		scope[tok.Lexeme] = &ResolverVariable{Name: tok, State: VarStateDeclared}
	}
}

func (r *resolver) define(tok *token.Token) {
	if scope, ok := r.peekScope(); ok {
		if variable := scope[tok.Lexeme]; variable.State == VarStateDeclared {
			variable.State = VarStateDefined
		}
	}
}

func (r *resolver) defineInternal(name string) {
	if scope, ok := r.peekScope(); ok {
		scope[name] = &ResolverVariable{Name: nil, State: VarStateRead}
	}
}

func (r *resolver) peekScope() (map[string]*ResolverVariable, bool) {
	if r.scopes.Len() == 0 {
		return nil, false
	}
	return r.scopeFromListElem(r.scopes.Back()), true
}

func (r *resolver) peekScopeVar(name string) (*ResolverVariable, bool) {
	if scope, ok := r.peekScope(); ok {
		if value, ok := scope[name]; ok {
			return value, true
		}
	}
	return nil, false
}

func (r *resolver) scopeFromListElem(el *list.Element) map[string]*ResolverVariable {
	return el.Value.(map[string]*ResolverVariable)
}

func (r *resolver) reportError(tok *token.Token, err error) {
	if ignoredErrors, ok := profiles[r.profile]; ok {
		for _, ignoredError := range ignoredErrors {
			if errors.Is(err, ignoredError) {
				return
			}
		}
	}

	r.err = append(r.err, loxerrors.NewResolveError(tok, err))
}

func (r *resolver) String() string {
	w := new(strings.Builder)

	index := 0
	delimiter := ""
	element := r.scopes.Front()
	for element != nil {
		_, _ = fmt.Fprintf(w, "%s%d{%v}", delimiter, index, element.Value.(map[string]*ResolverVariable))
		index++
		element = element.Next()
		delimiter = " ->"
	}

	return fmt.Sprintf("resolver{err: %v, scopes: %s}", r.err, w)
}

var (
	_ parser.ExprVisitor = (*resolver)(nil)
	_ parser.StmtVisitor = (*resolver)(nil)
	_ Resolver           = (*resolver)(nil)
	_ fmt.Stringer       = (*resolver)(nil)
)
