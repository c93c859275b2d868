package lux

const maxArguments = 255

// Parser is a recursive-descent parser over a scanned token slice. A statement
// that fails to parse is reported, skipped up to the next statement boundary,
// and parsing carries on so one pass can report several independent errors.
type Parser struct {
	tokens   []Token
	current  int
	reporter Reporter
	errors   int
}

func NewParser(tokens []Token, reporter Reporter) *Parser {
	if reporter == nil {
		reporter = &CollectingReporter{}
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Type: EOF, Line: line})
	}
	return &Parser{
		tokens:   tokens,
		reporter: reporter,
	}
}

// Parse scans and parses source in one step.
func Parse(source string, reporter Reporter) []Stmt {
	return NewParser(Scan(source, reporter), reporter).Parse()
}

// Parse collects every top-level declaration that parsed cleanly.
func (p *Parser) Parse() []Stmt {
	var statements []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Errors reports how many syntax errors were recovered from.
func (p *Parser) Errors() int {
	return p.errors
}

func (p *Parser) declaration() Stmt {
	stmt, err := p.parseDeclaration()
	if err != nil {
		p.report(err)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) parseDeclaration() (Stmt, error) {
	if p.match(VAR) {
		return p.varDeclaration()
	}
	if p.check(FUN) && p.checkNext(IDENTIFIER) {
		p.advance()
		return p.function()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(IDENTIFIER, "Expected Identifier for Variable")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) function() (Stmt, error) {
	name, err := p.consume(IDENTIFIER, "Expect function name.")
	if err != nil {
		return nil, err
	}
	return p.functionBody(name, "Expect '(' after function name.")
}

// functionBody parses `(params) { body }` for declarations and lambdas alike.
func (p *Parser) functionBody(name Token, openMessage string) (*FunctionStmt, error) {
	if _, err := p.consume(LEFT_PAREN, openMessage); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxArguments {
				p.reportAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(RIGHT_PAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(LEFT_BRACE, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(IF):
		return p.ifStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(FOR):
		return p.forStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(LEFT_BRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	}
	return p.expressionStatement()
}

func (p *Parser) ifStatement() (Stmt, error) {
	keyword := p.previous()
	condition, err := p.parenthesized("if")
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Keyword: keyword, Condition: condition, Then: then}
	if p.match(ELSE) {
		stmt.Else, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	keyword := p.previous()
	condition, err := p.parenthesized("while")
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Keyword: keyword, Condition: condition, Body: body}, nil
}

func (p *Parser) parenthesized(keyword string) (Expr, error) {
	if _, err := p.consume(LEFT_PAREN, "Expect '(' after "+keyword+"."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RIGHT_PAREN, "Expect ')' after "+keyword+" condition."); err != nil {
		return nil, err
	}
	return condition, nil
}

// forStatement desugars `for (init; cond; incr) body` into
// { init; while (cond) { body; incr; } } so no runtime node exists for it.
func (p *Parser) forStatement() (Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(LEFT_PAREN, "Expect '(' after for."); err != nil {
		return nil, err
	}

	var (
		initializer Stmt
		err         error
	)
	switch {
	case p.match(SEMICOLON):
	case p.match(VAR):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition Expr
	if !p.check(SEMICOLON) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(RIGHT_PAREN) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	loopBody := &BlockStmt{Statements: []Stmt{body}}
	if increment != nil {
		loopBody.Statements = append(loopBody.Statements, &ExpressionStmt{Expression: increment})
	}
	if condition == nil {
		condition = &Literal{Value: Boolean(true)}
	}
	keyword.Type = WHILE
	loop := &WhileStmt{Keyword: keyword, Condition: condition, Body: loopBody}

	outer := &BlockStmt{}
	if initializer != nil {
		outer.Statements = append(outer.Statements, initializer)
	}
	outer.Statements = append(outer.Statements, loop)
	return outer, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	if !p.check(SEMICOLON) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

// block parses declarations up to the closing brace; the opening brace is already consumed.
func (p *Parser) block() ([]Stmt, error) {
	var statements []Stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr}, nil
}

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment is right-associative and only accepts a bare variable target.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if !p.match(EQUAL) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if v, ok := expr.(*Variable); ok {
		return &Assign{Name: v.Name, Value: value}, nil
	}
	return nil, p.error(equals, "Invalid Assignment Target")
}

func (p *Parser) ternary() (Expr, error) {
	condition, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(QUESTION) {
		return condition, nil
	}
	question := p.previous()
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(COLON, "Expect ':' in ternary expression."); err != nil {
		return nil, err
	}
	otherwise, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return &Ternary{Condition: condition, Question: question, Then: then, Else: otherwise}, nil
}

func (p *Parser) or() (Expr, error) {
	return p.logical(p.and, OR)
}

func (p *Parser) and() (Expr, error) {
	return p.logical(p.equality, AND)
}

func (p *Parser) logical(operand func() (Expr, error), op TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(op) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, BANG_EQUAL, EQUAL_EQUAL)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.term, GREATER, GREATER_EQUAL, LESS, LESS_EQUAL)
}

func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, MINUS, PLUS)
}

func (p *Parser) factor() (Expr, error) {
	return p.binary(p.unary, SLASH, STAR)
}

// binary left-folds operand (op operand)* into Binary nodes.
func (p *Parser) binary(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: operator, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(LEFT_PAREN) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxArguments {
				p.reportAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(RIGHT_PAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(FALSE, TRUE, NIL, NUMBER, STRING):
		return &Literal{Value: p.previous().Literal}, nil
	case p.match(IDENTIFIER):
		return &Variable{Name: p.previous()}, nil
	case p.match(LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Expression: expr}, nil
	case p.match(FUN):
		decl, err := p.functionBody(p.previous(), "Expect '(' after fun.")
		if err != nil {
			return nil, err
		}
		return &Lambda{Declaration: decl}, nil
	}
	return nil, p.error(p.peek(), "Expect expression.")
}

// synchronize discards tokens until a probable statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, RETURN:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) checkNext(typ TokenType) bool {
	if p.isAtEnd() || p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == typ
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) consume(typ TokenType, message string) (Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return Token{}, p.error(p.peek(), message)
}

func (p *Parser) error(tok Token, cause string) *ParseError {
	return &ParseError{Token: tok, Cause: cause}
}

func (p *Parser) report(err error) {
	p.errors++
	if pe, ok := err.(*ParseError); ok {
		p.reporter.Report(pe.Diagnostic())
		return
	}
	p.reporter.Report(Diagnostic{Phase: PhaseParse, Line: p.peek().Line, Message: err.Error()})
}

// reportAt records a syntax error that does not need recovery.
func (p *Parser) reportAt(tok Token, cause string) {
	p.report(p.error(tok, cause))
}
