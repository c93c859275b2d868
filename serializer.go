package lux

import (
	"strings"
)

// Format renders statements back to canonical source: four-space
// indentation, one statement per line. Parsing the output yields the same
// tree. for loops come out in their while form.
func Format(stmts []Stmt) string {
	p := &printer{}
	for _, s := range stmts {
		p.line(s)
	}
	return p.sb.String()
}

// FormatExpr renders a single expression.
func FormatExpr(e Expr) string {
	p := &printer{}
	p.expr(e)
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) write(parts ...string) {
	for _, s := range parts {
		p.sb.WriteString(s)
	}
}

func (p *printer) indent() {
	p.sb.WriteString(strings.Repeat("    ", p.depth))
}

func (p *printer) line(s Stmt) {
	p.indent()
	p.stmt(s)
	p.sb.WriteByte('\n')
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *ExpressionStmt:
		p.expr(s.Expression)
		p.write(";")
	case *VarStmt:
		p.write("var ", s.Name.Lexeme)
		if s.Initializer != nil {
			p.write(" = ")
			p.expr(s.Initializer)
		}
		p.write(";")
	case *BlockStmt:
		p.block(s.Statements)
	case *IfStmt:
		p.write("if (")
		p.expr(s.Condition)
		p.write(") ")
		p.stmt(s.Then)
		if s.Else != nil {
			p.write(" else ")
			p.stmt(s.Else)
		}
	case *WhileStmt:
		p.write("while (")
		p.expr(s.Condition)
		p.write(") ")
		p.stmt(s.Body)
	case *FunctionStmt:
		p.write("fun ", s.Name.Lexeme)
		p.function(s)
	case *ReturnStmt:
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.expr(s.Value)
		}
		p.write(";")
	}
}

func (p *printer) block(stmts []Stmt) {
	p.write("{\n")
	p.depth++
	for _, s := range stmts {
		p.line(s)
	}
	p.depth--
	p.indent()
	p.write("}")
}

func (p *printer) function(f *FunctionStmt) {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = param.Lexeme
	}
	p.write("(", strings.Join(params, ", "), ") ")
	p.block(f.Body)
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case *Literal:
		p.write(literalSource(e.Value))
	case *Grouping:
		p.write("(")
		p.expr(e.Expression)
		p.write(")")
	case *Unary:
		p.write(e.Operator.Lexeme)
		p.expr(e.Right)
	case *Binary:
		p.expr(e.Left)
		p.write(" ", e.Operator.Lexeme, " ")
		p.expr(e.Right)
	case *Logical:
		p.expr(e.Left)
		if e.Operator.Type == AND {
			p.write(" and ")
		} else {
			p.write(" or ")
		}
		p.expr(e.Right)
	case *Ternary:
		p.expr(e.Condition)
		p.write(" ? ")
		p.expr(e.Then)
		p.write(" : ")
		p.expr(e.Else)
	case *Variable:
		p.write(e.Name.Lexeme)
	case *Assign:
		p.write(e.Name.Lexeme, " = ")
		p.expr(e.Value)
	case *Call:
		p.expr(e.Callee)
		p.write("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg)
		}
		p.write(")")
	case *Lambda:
		p.write("fun ")
		p.function(e.Declaration)
	}
}

// literalSource is the inverse of scanning a literal token.
func literalSource(v Value) string {
	switch t := v.(type) {
	case nil, NilValue:
		return "nil"
	case String:
		return quoteString(string(t))
	}
	return Display(v)
}
