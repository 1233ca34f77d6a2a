package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// AstPrinter renders syntax trees as S-expressions.
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// Print renders a single expression.
func (p *AstPrinter) Print(expr Expr) string {
	out := new(strings.Builder)
	p.expr(out, expr)
	return out.String()
}

// PrintStmt renders a single statement.
func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	out := new(strings.Builder)
	p.stmt(out, stmt)
	return out.String()
}

// PrintProgram renders one statement per line.
func (p *AstPrinter) PrintProgram(stmts []Stmt) string {
	out := new(strings.Builder)
	for _, stmt := range stmts {
		p.stmt(out, stmt)
		_, _ = out.WriteString("\n")
	}
	return out.String()
}

func (p *AstPrinter) expr(out *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		_, _ = out.WriteString("<nil>")
	case *ExprAssign:
		p.parenthesize(out, "=", e.Name.Lexeme, e.Value)
	case *ExprBinary:
		p.parenthesize(out, e.Operator.Lexeme, e.Left, e.Right)
	case *ExprCall:
		parts := []any{e.Callee}
		for _, arg := range e.Arguments {
			parts = append(parts, arg)
		}
		p.parenthesize(out, "call", parts...)
	case *ExprFunction:
		p.function(out, "fun", e)
	case *ExprGet:
		p.parenthesize(out, ".", e.Instance, e.Name.Lexeme)
	case *ExprGrouping:
		p.parenthesize(out, "group", e.Expression)
	case *ExprLiteral:
		_, _ = out.WriteString(literal(e.Value))
	case *ExprLogical:
		p.parenthesize(out, e.Operator.Lexeme, e.Left, e.Right)
	case *ExprSet:
		p.parenthesize(out, "=", &ExprGet{Instance: e.Instance, Name: e.Name}, e.Value)
	case *ExprSuper:
		p.parenthesize(out, "super", e.Method.Lexeme)
	case *ExprTernary:
		p.parenthesize(out, "?:", e.Condition, e.Then, e.Else)
	case *ExprThis:
		_, _ = out.WriteString("this")
	case *ExprUnary:
		p.parenthesize(out, e.Operator.Lexeme, e.Right)
	case *ExprVariable:
		_, _ = out.WriteString(e.Name.Lexeme)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (p *AstPrinter) stmt(out *strings.Builder, stmt Stmt) {
	switch s := stmt.(type) {
	case *StmtBlock:
		p.parenthesize(out, "block", stmtsAsAny(s.Statements)...)
	case *StmtBreak:
		_, _ = out.WriteString("(break)")
	case *StmtClass:
		parts := []any{s.Name.Lexeme}
		if s.SuperClass != nil {
			parts = append(parts, "<", s.SuperClass)
		}
		for _, method := range s.StaticMethods {
			parts = append(parts, member{"static", method})
		}
		for _, method := range s.Getters {
			parts = append(parts, member{"get", method})
		}
		for _, method := range s.Methods {
			parts = append(parts, member{"method", method})
		}
		p.parenthesize(out, "class", parts...)
	case *StmtContinue:
		_, _ = out.WriteString("(continue)")
	case *StmtExpression:
		p.parenthesize(out, ";", s.Expression)
	case *StmtFunction:
		p.function(out, "fun", s.Fn)
	case *StmtIf:
		if s.ElseBranch == nil {
			p.parenthesize(out, "if", s.Condition, s.ThenBranch)
		} else {
			p.parenthesize(out, "if-else", s.Condition, s.ThenBranch, s.ElseBranch)
		}
	case *StmtPrint:
		p.parenthesize(out, "print", s.Expression)
	case *StmtReturn:
		if s.Value == nil {
			_, _ = out.WriteString("(return)")
		} else {
			p.parenthesize(out, "return", s.Value)
		}
	case *StmtVar:
		if s.Initializer == nil {
			p.parenthesize(out, "var", s.Name.Lexeme)
		} else {
			p.parenthesize(out, "var", s.Name.Lexeme, "=", s.Initializer)
		}
	case *StmtWhile:
		if s.Increment == nil {
			p.parenthesize(out, "while", s.Condition, s.Body)
		} else {
			p.parenthesize(out, "while", s.Condition, s.Body, member{"step", s.Increment})
		}
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

type member struct {
	label string
	node  any
}

func (p *AstPrinter) function(out *strings.Builder, label string, fn *ExprFunction) {
	parts := []any{}
	if fn.Name != nil {
		parts = append(parts, fn.Name.Lexeme)
	}
	params := make([]string, len(fn.Parameters))
	for i, param := range fn.Parameters {
		params[i] = param.Lexeme
	}
	parts = append(parts, "("+strings.Join(params, " ")+")")
	parts = append(parts, stmtsAsAny(fn.Body)...)
	p.parenthesize(out, label, parts...)
}

func (p *AstPrinter) parenthesize(out *strings.Builder, name string, parts ...any) {
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, part := range parts {
		_, _ = out.WriteString(" ")
		switch v := part.(type) {
		case string:
			_, _ = out.WriteString(v)
		case Expr:
			p.expr(out, v)
		case Stmt:
			p.stmt(out, v)
		case member:
			if fn, ok := v.node.(*StmtFunction); ok {
				p.function(out, v.label, fn.Fn)
			} else {
				p.parenthesize(out, v.label, v.node)
			}
		default:
			panic(fmt.Sprintf("unexpected node %T", part))
		}
	}
	_, _ = out.WriteString(")")
}

func stmtsAsAny(stmts []Stmt) []any {
	parts := make([]any, len(stmts))
	for i, stmt := range stmts {
		parts[i] = stmt
	}
	return parts
}

func literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprintf("%v", v)
}
