package parser

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 语句解析
// ============================================================================

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.LBRACE:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		return block
	case token.SEMICOLON:
		return &ast.EmptyStmt{Semicolon: p.advance()}
	case token.VAR, token.LET:
		return p.parseVarStmt(false)
	case token.CONST:
		if p.peekNext().Type == token.ENUM {
			return p.declStmt(p.parseEnumDecl())
		}
		return p.parseVarStmt(false)
	case token.FUNCTION:
		return p.declStmt(p.parseFuncDecl(p.advance(), false, false))
	case token.CLASS:
		return p.declStmt(p.parseClassDecl(false))
	case token.ENUM:
		return p.declStmt(p.parseEnumDecl())
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.DO:
		return p.parseDoWhileStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.SWITCH:
		return p.parseSwitchStmt()
	case token.THROW:
		return p.parseThrowStmt()
	case token.TRY:
		return p.parseTryStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.DEBUGGER:
		tok := p.advance()
		p.consumeSemicolon()
		return &ast.DebuggerStmt{Token: tok}
	case token.AT:
		p.skipDecorators()
		if p.panicMode {
			return nil
		}
		return p.parseStatement()
	case token.AWAIT:
		// await using x = ...
		if next := p.peekNext(); next.Type == token.IDENT && next.Literal == "using" && !next.NewlineBefore &&
			p.lookAhead(2).Type == token.IDENT && !p.lookAhead(2).NewlineBefore {
			return p.declStmt(p.parseUsingDecl(true))
		}
	case token.IDENT:
		if stmt, ok := p.parseContextualStmt(); ok {
			return stmt
		}
	case token.IMPORT:
		// import(...) 与 import.meta 是表达式
		if next := p.peekNext().Type; next != token.LPAREN && next != token.DOT {
			p.error(i18n.T(i18n.ErrUnexpectedToken, "import"))
			p.panicMode = true
			return nil
		}
	case token.EXPORT:
		p.error(i18n.T(i18n.ErrUnexpectedToken, "export"))
		p.panicMode = true
		return nil
	}

	return p.parseExprStmt()
}

// declStmt 把声明包装为语句，声明解析失败时返回 nil
func (p *Parser) declStmt(decl ast.Declaration) ast.Statement {
	if decl == nil || p.panicMode {
		return nil
	}
	return &ast.DeclStmt{Decl: decl}
}

// parseContextualStmt 处理以上下文关键字开头的语句
//
// 返回 false 表示应按表达式语句解析。
func (p *Parser) parseContextualStmt() (ast.Statement, bool) {
	tok := p.peek()
	next := p.peekNext()

	// 标签语句 label: stmt
	if next.Type == token.COLON {
		return p.parseLabeledStmt(), true
	}

	sameLine := !next.NewlineBefore
	switch tok.Literal {
	case "async":
		if next.Type == token.FUNCTION && sameLine {
			start := p.advance()
			p.advance()
			return p.declStmt(p.parseFuncDecl(start, true, false)), true
		}
	case "interface":
		if next.Type == token.IDENT && sameLine {
			return p.declStmt(p.parseInterfaceDecl()), true
		}
	case "type":
		if next.Type == token.IDENT && sameLine {
			return p.declStmt(p.parseTypeAliasDecl()), true
		}
	case "namespace", "module":
		if next.Type == token.IDENT && sameLine {
			return p.declStmt(p.parseNamespaceDecl()), true
		}
	case "abstract":
		if next.Type == token.CLASS && sameLine {
			p.advance()
			return p.declStmt(p.parseClassDecl(false)), true
		}
	case "declare":
		if sameLine && p.isDeclareTarget(next) {
			return p.declStmt(p.parseDeclareDecl()), true
		}
	case "using":
		if next.Type == token.IDENT && sameLine && next.Literal != "in" && next.Literal != "of" {
			return p.declStmt(p.parseUsingDecl(false)), true
		}
	}
	return nil, false
}

func (p *Parser) parseExprStmt() ast.Statement {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	stmt := &ast.ExprStmt{Expr: expr}
	if p.check(token.SEMICOLON) {
		stmt.Semicolon = p.advance()
		return stmt
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return stmt
}

func (p *Parser) parseVarStmt(declare bool) ast.Statement {
	decl := p.parseVarDecl(declare)
	if decl == nil {
		return nil
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return &ast.DeclStmt{Decl: decl}
}

// parseBlock 解析代码块，块内出错时跳到下一条语句继续
func (p *Parser) parseBlock() *ast.BlockStmt {
	lbrace := p.consume(token.LBRACE, "expected '{'")
	if p.panicMode {
		return nil
	}

	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() && !p.panicMode {
		before := p.current
		stmt := p.parseStatement()
		if p.panicMode {
			// 块内错误恢复：跳到下一个语句或块结束
			if p.current == before {
				p.advance()
			}
			for !p.check(token.RBRACE) && !p.isAtEnd() && !p.checkAny(
				token.IF, token.FOR, token.WHILE, token.DO, token.RETURN, token.TRY,
				token.THROW, token.BREAK, token.CONTINUE, token.SWITCH,
				token.VAR, token.LET, token.CONST, token.FUNCTION, token.CLASS) {
				if p.previous().Type == token.SEMICOLON || p.previous().Type == token.RBRACE {
					break
				}
				p.advance()
			}
			p.panicMode = false
			continue
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	rbrace := p.consume(token.RBRACE, "expected '}'")
	if p.panicMode {
		return nil
	}

	return &ast.BlockStmt{
		LBrace: lbrace,
		Body:   stmts,
		RBrace: rbrace,
	}
}

// parseParenExpr 解析 ( expr )，用于 if / while / switch 等的条件
func (p *Parser) parseParenExpr(keyword string) ast.Expression {
	p.consume(token.LPAREN, "expected '(' after '"+keyword+"'")
	if p.panicMode {
		return nil
	}
	expr := p.parseAllowIn(p.parseExpression)
	if expr == nil {
		return nil
	}
	p.consume(token.RPAREN, "expected ')'")
	if p.panicMode {
		return nil
	}
	return expr
}

// parseSubStatement 解析控制语句的语句体，失败时返回 nil
func (p *Parser) parseSubStatement() ast.Statement {
	if p.isAtEnd() {
		p.error(i18n.T(i18n.ErrExpectedStatement))
		p.panicMode = true
		return nil
	}
	stmt := p.parseStatement()
	if p.panicMode {
		return nil
	}
	return stmt
}

func (p *Parser) parseIfStmt() ast.Statement {
	ifToken := p.advance()
	test := p.parseParenExpr("if")
	if test == nil {
		return nil
	}

	consequent := p.parseSubStatement()
	if consequent == nil {
		return nil
	}

	stmt := &ast.IfStmt{
		IfToken:    ifToken,
		Test:       test,
		Consequent: consequent,
	}
	if p.match(token.ELSE) {
		stmt.Alternate = p.parseSubStatement()
		if stmt.Alternate == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	whileToken := p.advance()
	test := p.parseParenExpr("while")
	if test == nil {
		return nil
	}
	body := p.parseSubStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{WhileToken: whileToken, Test: test, Body: body}
}

func (p *Parser) parseDoWhileStmt() ast.Statement {
	doToken := p.advance()
	body := p.parseSubStatement()
	if body == nil {
		return nil
	}

	p.consume(token.WHILE, "expected 'while' after do body")
	if p.panicMode {
		return nil
	}
	p.consume(token.LPAREN, "expected '(' after 'while'")
	if p.panicMode {
		return nil
	}
	test := p.parseAllowIn(p.parseExpression)
	if test == nil {
		return nil
	}
	rparen := p.consume(token.RPAREN, "expected ')'")
	if p.panicMode {
		return nil
	}
	// do-while 之后的分号总是可以省略
	p.match(token.SEMICOLON)

	return &ast.DoWhileStmt{DoToken: doToken, Body: body, Test: test, RParen: rparen}
}

// parseForStmt 解析 for、for-in、for-of、for await
func (p *Parser) parseForStmt() ast.Statement {
	forToken := p.advance()

	await := false
	if p.check(token.AWAIT) {
		p.advance()
		await = true
	}

	p.consume(token.LPAREN, "expected '(' after 'for'")
	if p.panicMode {
		return nil
	}

	// 初始化部分：in 运算符被禁用，以便识别 for-in
	var init ast.Node
	p.noIn = true
	switch {
	case p.check(token.SEMICOLON):
	case p.checkAny(token.VAR, token.LET, token.CONST):
		decl := p.parseVarDecl(false)
		if decl != nil {
			init = decl
		}
	default:
		expr := p.parseExpression()
		if expr != nil {
			init = expr
		}
	}
	p.noIn = false
	if p.panicMode {
		return nil
	}

	if p.check(token.IN) || p.checkContextual("of") {
		return p.parseForInOf(forToken, await, init)
	}
	if await {
		p.error(i18n.T(i18n.ErrExpectedToken, "'of'"))
		p.panicMode = true
		return nil
	}

	// 普通 for 中的 const 声明必须有初始值
	if decl, ok := init.(*ast.VarDecl); ok {
		p.checkConstInit(decl)
		if p.panicMode {
			return nil
		}
	}
	p.consume(token.SEMICOLON, "expected ';' after for loop initializer")
	if p.panicMode {
		return nil
	}

	stmt := &ast.ForStmt{ForToken: forToken, Init: init}
	if !p.check(token.SEMICOLON) {
		stmt.Test = p.parseExpression()
		if stmt.Test == nil {
			return nil
		}
	}
	p.consume(token.SEMICOLON, "expected ';' after for loop condition")
	if p.panicMode {
		return nil
	}
	if !p.check(token.RPAREN) {
		stmt.Update = p.parseExpression()
		if stmt.Update == nil {
			return nil
		}
	}
	p.consume(token.RPAREN, "expected ')'")
	if p.panicMode {
		return nil
	}

	stmt.Body = p.parseSubStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseForInOf(forToken token.Token, await bool, init ast.Node) ast.Statement {
	isOf := p.checkContextual("of")
	p.advance() // in / of

	// 左侧：单个无初始值的声明，或可赋值的目标
	var left ast.Node
	switch n := init.(type) {
	case *ast.VarDecl:
		if len(n.Decls) != 1 || n.Decls[0].Init != nil {
			p.errorAt(n.Pos(), i18n.T(i18n.ErrForInOfInit))
			p.panicMode = true
			return nil
		}
		left = n
	case ast.Expression:
		switch n.(type) {
		case *ast.ArrayLit, *ast.ObjectLit:
			pat := p.toPattern(n)
			if pat == nil {
				return nil
			}
			left = pat
		default:
			if !isValidAssignTarget(n) {
				p.errorAt(n.Pos(), i18n.T(i18n.ErrInvalidForLHS))
				p.panicMode = true
				return nil
			}
			left = n
		}
	default:
		p.error(i18n.T(i18n.ErrInvalidForLHS))
		p.panicMode = true
		return nil
	}

	var right ast.Expression
	if isOf {
		right = p.parseAssignment()
	} else {
		right = p.parseExpression()
	}
	if right == nil {
		return nil
	}
	p.consume(token.RPAREN, "expected ')'")
	if p.panicMode {
		return nil
	}

	body := p.parseSubStatement()
	if body == nil {
		return nil
	}

	if isOf {
		return &ast.ForOfStmt{ForToken: forToken, Await: await, Left: left, Right: right, Body: body}
	}
	return &ast.ForInStmt{ForToken: forToken, Left: left, Right: right, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	returnToken := p.advance()
	stmt := &ast.ReturnStmt{ReturnToken: returnToken}
	if !p.canInsertSemicolon() {
		stmt.Value = p.parseExpression()
		if stmt.Value == nil {
			return nil
		}
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return stmt
}

// parseOptionalLabel 解析 break / continue 后同一行的标签
func (p *Parser) parseOptionalLabel() *ast.Ident {
	if p.check(token.IDENT) && !p.peek().NewlineBefore {
		tok := p.advance()
		return &ast.Ident{Token: tok, Name: tok.Literal}
	}
	return nil
}

func (p *Parser) parseBreakStmt() ast.Statement {
	breakToken := p.advance()
	stmt := &ast.BreakStmt{BreakToken: breakToken, Label: p.parseOptionalLabel()}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return stmt
}

func (p *Parser) parseContinueStmt() ast.Statement {
	continueToken := p.advance()
	stmt := &ast.ContinueStmt{ContinueToken: continueToken, Label: p.parseOptionalLabel()}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return stmt
}

func (p *Parser) parseLabeledStmt() ast.Statement {
	tok := p.advance()
	p.advance() // 消费 :
	body := p.parseSubStatement()
	if body == nil {
		return nil
	}
	return &ast.LabeledStmt{Label: &ast.Ident{Token: tok, Name: tok.Literal}, Body: body}
}

func (p *Parser) parseSwitchStmt() ast.Statement {
	switchToken := p.advance()
	discriminant := p.parseParenExpr("switch")
	if discriminant == nil {
		return nil
	}
	p.consume(token.LBRACE, "expected '{' after switch")
	if p.panicMode {
		return nil
	}

	stmt := &ast.SwitchStmt{SwitchToken: switchToken, Discriminant: discriminant}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		c := &ast.SwitchCase{CaseToken: p.peek()}
		switch {
		case p.match(token.CASE):
			c.Test = p.parseAllowIn(p.parseExpression)
			if c.Test == nil {
				return nil
			}
		case p.match(token.DEFAULT):
		default:
			p.error(i18n.T(i18n.ErrExpectedCaseDefault))
			p.panicMode = true
			return nil
		}
		p.consume(token.COLON, "expected ':' after case")
		if p.panicMode {
			return nil
		}

		for !p.checkAny(token.CASE, token.DEFAULT, token.RBRACE) && !p.isAtEnd() {
			s := p.parseStatement()
			if p.panicMode {
				return nil
			}
			if s != nil {
				c.Body = append(c.Body, s)
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}

	stmt.RBrace = p.consume(token.RBRACE, "expected '}'")
	if p.panicMode {
		return nil
	}
	return stmt
}

func (p *Parser) parseThrowStmt() ast.Statement {
	throwToken := p.advance()
	if p.peek().NewlineBefore {
		p.error(i18n.T(i18n.ErrNewlineAfterThrow))
		p.panicMode = true
		return nil
	}
	arg := p.parseExpression()
	if arg == nil {
		return nil
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return &ast.ThrowStmt{ThrowToken: throwToken, Argument: arg}
}

func (p *Parser) parseTryStmt() ast.Statement {
	tryToken := p.advance()
	block := p.parseBlock()
	if block == nil {
		return nil
	}

	stmt := &ast.TryStmt{TryToken: tryToken, Block: block}
	if p.match(token.CATCH) {
		// catch 参数可省略：catch { }
		if p.match(token.LPAREN) {
			stmt.Param = p.parseBindingTarget()
			if stmt.Param == nil {
				return nil
			}
			p.parseOptionalTypeAnnotation()
			p.consume(token.RPAREN, "expected ')'")
			if p.panicMode {
				return nil
			}
		}
		stmt.Handler = p.parseBlock()
		if stmt.Handler == nil {
			return nil
		}
	}
	if p.match(token.FINALLY) {
		stmt.Finalizer = p.parseBlock()
		if stmt.Finalizer == nil {
			return nil
		}
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.error(i18n.T(i18n.ErrExpectedToken, "'catch' or 'finally'"))
		p.panicMode = true
		return nil
	}
	return stmt
}

func (p *Parser) parseWithStmt() ast.Statement {
	withToken := p.advance()
	object := p.parseParenExpr("with")
	if object == nil {
		return nil
	}
	body := p.parseSubStatement()
	if body == nil {
		return nil
	}
	return &ast.WithStmt{WithToken: withToken, Object: object, Body: body}
}
