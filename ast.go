package lux

// Expr is the closed set of expression nodes. Each node exclusively owns its
// children; the interpreter dispatches with a type switch.
type Expr interface {
	exprNode()
}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	stmtNode()
}

type Literal struct {
	Value Value
}

type Grouping struct {
	Expression Expr
}

type Unary struct {
	Operator Token
	Right    Expr
}

type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Ternary is `Condition ? Then : Else`; Question locates errors.
type Ternary struct {
	Condition Expr
	Question  Token
	Then      Expr
	Else      Expr
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	Left     Expr
	Operator Token
	Right    Expr
}

type Variable struct {
	Name Token
}

type Assign struct {
	Name  Token
	Value Expr
}

type Call struct {
	Callee    Expr
	Paren     Token
	Arguments []Expr
}

// Lambda is an anonymous `fun (params) { body }`. Its declaration name is the
// `fun` keyword token.
type Lambda struct {
	Declaration *FunctionStmt
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Ternary) exprNode()  {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Lambda) exprNode()   {}

type ExpressionStmt struct {
	Expression Expr
}

// VarStmt declares Name; Initializer may be nil.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

type IfStmt struct {
	Keyword   Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

type WhileStmt struct {
	Keyword   Token
	Condition Expr
	Body      Stmt
}

type BlockStmt struct {
	Statements []Stmt
}

type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// Anonymous reports whether the declaration came from a lambda expression.
func (f *FunctionStmt) Anonymous() bool {
	return f.Name.Type != IDENTIFIER
}

type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

func (*ExpressionStmt) stmtNode() {}
func (*VarStmt) stmtNode()        {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*BlockStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
