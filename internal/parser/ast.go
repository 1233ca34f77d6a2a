package parser

import "github.com/leonardinius/treelox/internal/token"

// ExprVisitor is implemented by every pass over expressions. Adding a node
// kind adds a method here, so each pass has to handle it.
type ExprVisitor interface {
	VisitExprAssign(exprAssign *ExprAssign) (Value, error)
	VisitExprBinary(exprBinary *ExprBinary) (Value, error)
	VisitExprCall(exprCall *ExprCall) (Value, error)
	VisitExprFunction(exprFunction *ExprFunction) (Value, error)
	VisitExprGet(exprGet *ExprGet) (Value, error)
	VisitExprGrouping(exprGrouping *ExprGrouping) (Value, error)
	VisitExprLiteral(exprLiteral *ExprLiteral) (Value, error)
	VisitExprLogical(exprLogical *ExprLogical) (Value, error)
	VisitExprSet(exprSet *ExprSet) (Value, error)
	VisitExprSuper(exprSuper *ExprSuper) (Value, error)
	VisitExprTernary(exprTernary *ExprTernary) (Value, error)
	VisitExprThis(exprThis *ExprThis) (Value, error)
	VisitExprUnary(exprUnary *ExprUnary) (Value, error)
	VisitExprVariable(exprVariable *ExprVariable) (Value, error)
}

type StmtVisitor interface {
	VisitStmtBlock(stmtBlock *StmtBlock) (Completion, error)
	VisitStmtBreak(stmtBreak *StmtBreak) (Completion, error)
	VisitStmtClass(stmtClass *StmtClass) (Completion, error)
	VisitStmtContinue(stmtContinue *StmtContinue) (Completion, error)
	VisitStmtExpression(stmtExpression *StmtExpression) (Completion, error)
	VisitStmtFunction(stmtFunction *StmtFunction) (Completion, error)
	VisitStmtIf(stmtIf *StmtIf) (Completion, error)
	VisitStmtPrint(stmtPrint *StmtPrint) (Completion, error)
	VisitStmtReturn(stmtReturn *StmtReturn) (Completion, error)
	VisitStmtVar(stmtVar *StmtVar) (Completion, error)
	VisitStmtWhile(stmtWhile *StmtWhile) (Completion, error)
}

type Expr interface {
	Accept(v ExprVisitor) (Value, error)
}

type Stmt interface {
	Accept(v StmtVisitor) (Completion, error)
}

// ExprAssign assigns to a variable. Property assignment is ExprSet.
type ExprAssign struct {
	Name  *token.Token
	Value Expr
}

// Accept implements Expr.
func (e *ExprAssign) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprAssign(e)
}

type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

// Accept implements Expr.
func (e *ExprBinary) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprBinary(e)
}

type ExprCall struct {
	Callee    Expr
	Paren     *token.Token
	Arguments []Expr
}

// Accept implements Expr.
func (e *ExprCall) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprCall(e)
}

// ExprFunction is a function body shared by declarations, methods and
// lambdas. Name is nil for lambdas.
type ExprFunction struct {
	Name       *token.Token
	Parameters []*token.Token
	Body       []Stmt
}

// Accept implements Expr.
func (e *ExprFunction) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprFunction(e)
}

type ExprGet struct {
	Instance Expr
	Name     *token.Token
}

// Accept implements Expr.
func (e *ExprGet) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprGet(e)
}

type ExprGrouping struct {
	Expression Expr
}

// Accept implements Expr.
func (e *ExprGrouping) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprGrouping(e)
}

// ExprLiteral holds a float64, string, bool or nil.
type ExprLiteral struct {
	Value any
}

// Accept implements Expr.
func (e *ExprLiteral) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprLiteral(e)
}

type ExprLogical struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

// Accept implements Expr.
func (e *ExprLogical) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprLogical(e)
}

type ExprSet struct {
	Instance Expr
	Name     *token.Token
	Value    Expr
}

// Accept implements Expr.
func (e *ExprSet) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprSet(e)
}

type ExprSuper struct {
	Keyword *token.Token
	Method  *token.Token
}

// Accept implements Expr.
func (e *ExprSuper) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprSuper(e)
}

type ExprTernary struct {
	Condition Expr
	Question  *token.Token
	Then      Expr
	Else      Expr
}

// Accept implements Expr.
func (e *ExprTernary) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprTernary(e)
}

type ExprThis struct {
	Keyword *token.Token
}

// Accept implements Expr.
func (e *ExprThis) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprThis(e)
}

type ExprUnary struct {
	Operator *token.Token
	Right    Expr
}

// Accept implements Expr.
func (e *ExprUnary) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprUnary(e)
}

type ExprVariable struct {
	Name *token.Token
}

// Accept implements Expr.
func (e *ExprVariable) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprVariable(e)
}

type StmtBlock struct {
	Statements []Stmt
}

// Accept implements Stmt.
func (e *StmtBlock) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtBlock(e)
}

type StmtBreak struct {
	Keyword *token.Token
}

// Accept implements Stmt.
func (e *StmtBreak) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtBreak(e)
}

// StmtClass declares a class. Getters are members declared without a
// parameter list.
type StmtClass struct {
	Name          *token.Token
	SuperClass    *ExprVariable
	Methods       []*StmtFunction
	StaticMethods []*StmtFunction
	Getters       []*StmtFunction
}

// Accept implements Stmt.
func (e *StmtClass) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtClass(e)
}

type StmtContinue struct {
	Keyword *token.Token
}

// Accept implements Stmt.
func (e *StmtContinue) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtContinue(e)
}

type StmtExpression struct {
	Expression Expr
}

// Accept implements Stmt.
func (e *StmtExpression) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtExpression(e)
}

type StmtFunction struct {
	Name *token.Token
	Fn   *ExprFunction
}

// Accept implements Stmt.
func (e *StmtFunction) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtFunction(e)
}

type StmtIf struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

// Accept implements Stmt.
func (e *StmtIf) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtIf(e)
}

type StmtPrint struct {
	Expression Expr
}

// Accept implements Stmt.
func (e *StmtPrint) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtPrint(e)
}

type StmtReturn struct {
	Keyword *token.Token
	Value   Expr
}

// Accept implements Stmt.
func (e *StmtReturn) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtReturn(e)
}

type StmtVar struct {
	Name        *token.Token
	Initializer Expr
}

// Accept implements Stmt.
func (e *StmtVar) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtVar(e)
}

// StmtWhile is a loop. Increment, when set, runs after every iteration of
// Body, including ones cut short by continue. It is the target of for-loop
// desugaring.
type StmtWhile struct {
	Keyword   *token.Token
	Condition Expr
	Body      Stmt
	Increment Expr
}

// Accept implements Stmt.
func (e *StmtWhile) Accept(v StmtVisitor) (Completion, error) {
	return v.VisitStmtWhile(e)
}

var (
	_ Expr = (*ExprAssign)(nil)
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprCall)(nil)
	_ Expr = (*ExprFunction)(nil)
	_ Expr = (*ExprGet)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprLogical)(nil)
	_ Expr = (*ExprSet)(nil)
	_ Expr = (*ExprSuper)(nil)
	_ Expr = (*ExprTernary)(nil)
	_ Expr = (*ExprThis)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprVariable)(nil)
	_ Stmt = (*StmtBlock)(nil)
	_ Stmt = (*StmtBreak)(nil)
	_ Stmt = (*StmtClass)(nil)
	_ Stmt = (*StmtContinue)(nil)
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtFunction)(nil)
	_ Stmt = (*StmtIf)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtReturn)(nil)
	_ Stmt = (*StmtVar)(nil)
	_ Stmt = (*StmtWhile)(nil)
)
