package parser

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 表达式解析 (Pratt Parser / 优先级攀升)
// ============================================================================

// 运算符优先级
const (
	PREC_NONE       = iota
	PREC_ASSIGNMENT // =, +=, -=, ... (右结合)
	PREC_TERNARY    // ?:
	PREC_COALESCE   // ??
	PREC_OR         // ||
	PREC_AND        // &&
	PREC_BIT_OR     // |
	PREC_BIT_XOR    // ^
	PREC_BIT_AND    // &
	PREC_EQUALITY   // ==, !=, ===, !==
	PREC_COMPARISON // <, >, <=, >=, instanceof, in, as, satisfies
	PREC_SHIFT      // <<, >>, >>>
	PREC_TERM       // +, -
	PREC_FACTOR     // *, /, %
	PREC_EXPONENT   // ** (右结合)
	PREC_UNARY      // !, -, +, ~, typeof, void, delete, await
	PREC_POSTFIX    // 后缀 ++, --, 非空断言 !
	PREC_CALL       // (), ., ?., [], 标签模板
	PREC_PRIMARY
)

func (p *Parser) getPrecedence(tok token.Token) int {
	switch tok.Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.STAR_STAR_ASSIGN,
		token.SHL_ASSIGN, token.SHR_ASSIGN, token.USHR_ASSIGN,
		token.BIT_AND_ASSIGN, token.BIT_OR_ASSIGN, token.BIT_XOR_ASSIGN,
		token.AND_ASSIGN, token.OR_ASSIGN, token.NULLISH_ASSIGN:
		return PREC_ASSIGNMENT
	case token.QUESTION:
		return PREC_TERNARY
	case token.NULLISH:
		return PREC_COALESCE
	case token.OR:
		return PREC_OR
	case token.AND:
		return PREC_AND
	case token.BIT_OR:
		return PREC_BIT_OR
	case token.BIT_XOR:
		return PREC_BIT_XOR
	case token.BIT_AND:
		return PREC_BIT_AND
	case token.EQ, token.NE, token.STRICT_EQ, token.STRICT_NE:
		return PREC_EQUALITY
	case token.LT, token.LE, token.GT, token.GE, token.INSTANCEOF:
		return PREC_COMPARISON
	case token.IN:
		if p.noIn {
			return PREC_NONE
		}
		return PREC_COMPARISON
	case token.SHL, token.SHR, token.USHR:
		return PREC_SHIFT
	case token.PLUS, token.MINUS:
		return PREC_TERM
	case token.STAR, token.SLASH, token.PERCENT:
		return PREC_FACTOR
	case token.STAR_STAR:
		return PREC_EXPONENT
	case token.INCREMENT, token.DECREMENT, token.NOT:
		// 受限产生式：后缀运算符前不能换行
		if tok.NewlineBefore {
			return PREC_NONE
		}
		return PREC_POSTFIX
	case token.LPAREN, token.DOT, token.OPTIONAL_CHAIN, token.LBRACKET, token.TEMPLATE:
		return PREC_CALL
	case token.IDENT:
		if !tok.NewlineBefore && (tok.Literal == "as" || tok.Literal == "satisfies") {
			return PREC_COMPARISON
		}
	}
	return PREC_NONE
}

// parseExpression 解析完整表达式（含逗号表达式）
func (p *Parser) parseExpression() ast.Expression {
	expr := p.parseAssignment()
	if expr == nil || !p.check(token.COMMA) {
		return expr
	}

	exprs := []ast.Expression{expr}
	for p.match(token.COMMA) {
		next := p.parseAssignment()
		if next == nil {
			return nil
		}
		exprs = append(exprs, next)
	}
	return &ast.SequenceExpr{Exprs: exprs}
}

// parseAssignment 解析赋值表达式（不含逗号）
func (p *Parser) parseAssignment() ast.Expression {
	// 检查递归深度，防止栈溢出
	p.exprDepth++
	if p.exprDepth > maxExprDepth {
		p.error(i18n.T(i18n.ErrExprTooDeep))
		p.panicMode = true
		p.exprDepth--
		return nil
	}
	defer func() { p.exprDepth-- }()

	return p.parsePrecedence(PREC_ASSIGNMENT)
}

// parseAllowIn 在括号等位置恢复 in 运算符
func (p *Parser) parseAllowIn(parse func() ast.Expression) ast.Expression {
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()
	return parse()
}

func (p *Parser) parsePrecedence(precedence int) ast.Expression {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for !p.panicMode {
		next := p.peek()
		prec := p.getPrecedence(next)
		if precedence > prec {
			break
		}
		if prec != PREC_CALL {
			left = closeChain(left)
		}
		left = p.parseInfixExpr(left)
		if left == nil {
			return nil
		}
	}

	return closeChain(left)
}

// closeChain 访问链结束时，若链中含有 ?. 则用 OptionalChainExpr 包装整条链
func closeChain(expr ast.Expression) ast.Expression {
	for e := expr; ; {
		switch n := e.(type) {
		case *ast.MemberExpr:
			if n.Optional {
				return &ast.OptionalChainExpr{Expr: expr}
			}
			e = n.Object
		case *ast.CallExpr:
			if n.Optional {
				return &ast.OptionalChainExpr{Expr: expr}
			}
			e = n.Callee
		case *ast.NonNullExpr:
			e = n.Expr
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrefixExpr() ast.Expression {
	switch p.peek().Type {
	case token.NUMBER:
		tok := p.advance()
		return &ast.NumberLit{Token: tok, Value: tok.Value.(float64)}
	case token.BIGINT:
		tok := p.advance()
		return &ast.BigIntLit{Token: tok, Digits: tok.Value.(string)}
	case token.STRING:
		tok := p.advance()
		return &ast.StringLit{Token: tok, Value: tok.Value.(string)}
	case token.TEMPLATE:
		return p.parseTemplate()
	case token.REGEXP:
		tok := p.advance()
		re := tok.Value.([2]string)
		return &ast.RegExpLit{Token: tok, Pattern: re[0], Flags: re[1]}
	case token.TRUE:
		return &ast.BoolLit{Token: p.advance(), Value: true}
	case token.FALSE:
		return &ast.BoolLit{Token: p.advance(), Value: false}
	case token.NULL:
		return &ast.NullLit{Token: p.advance()}
	case token.THIS:
		return &ast.ThisExpr{Token: p.advance()}
	case token.SUPER:
		return &ast.SuperExpr{Token: p.advance()}
	case token.IDENT:
		return p.parseIdentOrArrow()
	case token.LPAREN:
		return p.parseGroupOrArrowFunc()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		return p.parseFuncExpr(p.advance(), false)
	case token.CLASS:
		body := p.parseClassBody(false)
		if body == nil {
			return nil
		}
		return &ast.ClassExpr{ClassBody: *body}
	case token.NEW:
		return p.parseNewExpr()
	case token.IMPORT:
		return p.parseImportExpr()
	case token.NOT, token.MINUS, token.PLUS, token.BIT_NOT, token.TYPEOF, token.VOID, token.DELETE:
		return p.parseUnaryExpr()
	case token.INCREMENT, token.DECREMENT:
		return p.parsePrefixIncDec()
	case token.AWAIT:
		awaitTok := p.advance()
		arg := p.parsePrecedence(PREC_UNARY)
		if arg == nil {
			return nil
		}
		return &ast.AwaitExpr{AwaitToken: awaitTok, Argument: arg}
	case token.YIELD:
		return p.parseYieldExpr()
	case token.LT:
		if p.jsx {
			p.error(i18n.T(i18n.ErrJSXUnsupported))
			p.panicMode = true
			return nil
		}
		return p.parseTypeAssertionOrGenericArrow()
	case token.ILLEGAL:
		// 已由词法分析器报告
		p.advance()
		p.panicMode = true
		return nil
	default:
		if p.isAtEnd() {
			p.error(i18n.T(i18n.ErrExpectedExpression))
		} else {
			p.error(i18n.T(i18n.ErrUnexpectedToken, p.peek().Literal))
			// 跳过无效 token，防止无限循环；; 和 } 留给错误恢复
			if !p.checkAny(token.SEMICOLON, token.RBRACE) {
				p.advance()
			}
		}
		p.panicMode = true
		return nil
	}
}

func (p *Parser) parseInfixExpr(left ast.Expression) ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.STAR_STAR,
		token.EQ, token.NE, token.STRICT_EQ, token.STRICT_NE,
		token.LE, token.GT, token.GE, token.INSTANCEOF, token.IN,
		token.AND, token.OR, token.NULLISH,
		token.BIT_AND, token.BIT_OR, token.BIT_XOR, token.SHL, token.SHR, token.USHR:
		return p.parseBinaryExpr(left)
	case token.LT:
		// f<T>(x) 形式的类型实参
		saved := p.current
		if p.skipTypeArguments() && p.checkAny(token.LPAREN, token.TEMPLATE) {
			return left
		}
		p.current = saved
		return p.parseBinaryExpr(left)
	case token.QUESTION:
		return p.parseTernaryExpr(left)
	case token.DOT:
		p.advance()
		return p.parseMemberName(left, false)
	case token.OPTIONAL_CHAIN:
		return p.parseOptionalAccess(left)
	case token.LBRACKET:
		return p.parseIndexExpr(left, false)
	case token.LPAREN:
		return p.parseCallExpr(left, false)
	case token.TEMPLATE:
		quasi := p.parseTemplate()
		if quasi == nil {
			return nil
		}
		return &ast.TaggedTemplateExpr{Tag: left, Quasi: quasi.(*ast.TemplateLit)}
	case token.INCREMENT, token.DECREMENT:
		return p.parsePostfixIncDec(left)
	case token.NOT:
		return &ast.NonNullExpr{Expr: left, Bang: p.advance()}
	case token.IDENT:
		p.advance()
		typ := p.parseType()
		if typ == nil {
			return nil
		}
		if tok.Literal == "as" {
			return &ast.AsExpr{Expr: left, Type: typ}
		}
		return &ast.SatisfiesExpr{Expr: left, Type: typ}
	default:
		if token.IsAssign(tok.Type) {
			return p.parseAssignExpr(left)
		}
		return left
	}
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	op := p.advance()
	prec := p.getPrecedence(op)
	if op.Type == token.STAR_STAR {
		prec-- // 右结合
	}
	right := p.parsePrecedence(prec + 1)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{
		Left:     left,
		Operator: op,
		Right:    right,
	}
}

func (p *Parser) parseAssignExpr(left ast.Expression) ast.Expression {
	op := p.advance()

	var target ast.Node = left
	if op.Type == token.ASSIGN {
		// 解构赋值：把数组/对象字面量改写为模式
		switch left.(type) {
		case *ast.ArrayLit, *ast.ObjectLit:
			target = p.toPattern(left)
			if target == nil {
				return nil
			}
		}
	}
	if !isValidAssignTarget(target) {
		p.errorAt(left.Pos(), i18n.T(i18n.ErrInvalidAssignTarget))
	}

	right := p.parsePrecedence(PREC_ASSIGNMENT)
	if right == nil {
		return nil
	}
	return &ast.AssignExpr{
		Left:     target,
		Operator: op,
		Right:    right,
	}
}

// isValidAssignTarget 检查表达式是否是有效的赋值目标
func isValidAssignTarget(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.Ident, *ast.MemberExpr, *ast.ArrayPattern, *ast.ObjectPattern:
		return true
	case *ast.ParenExpr:
		return isValidAssignTarget(n.Expr)
	case *ast.NonNullExpr:
		return isValidAssignTarget(n.Expr)
	case *ast.AsExpr:
		return isValidAssignTarget(n.Expr)
	case *ast.SatisfiesExpr:
		return isValidAssignTarget(n.Expr)
	case *ast.TypeAssertionExpr:
		return isValidAssignTarget(n.Expr)
	default:
		return false
	}
}

// errorAt 在指定位置报告错误
func (p *Parser) errorAt(pos token.Position, message string) {
	if p.panicMode {
		return
	}
	p.errors = append(p.errors, Error{Pos: pos, Message: message})
}

func (p *Parser) parseTernaryExpr(left ast.Expression) ast.Expression {
	p.advance() // 消费 ?
	then := p.parseAllowIn(p.parseAssignment)
	if then == nil {
		return nil
	}
	p.consume(token.COLON, "expected ':' in conditional expression")
	if p.panicMode {
		return nil
	}
	elseExpr := p.parseAssignment()
	if elseExpr == nil {
		return nil
	}
	return &ast.ConditionalExpr{
		Test:       left,
		Consequent: then,
		Alternate:  elseExpr,
	}
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	op := p.advance()
	operand := p.parsePrecedence(PREC_UNARY)
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpr{
		Operator: op,
		Operand:  operand,
	}
}

func (p *Parser) parsePrefixIncDec() ast.Expression {
	op := p.advance()
	operand := p.parsePrecedence(PREC_UNARY)
	if operand == nil {
		return nil
	}
	if !isValidAssignTarget(operand) {
		p.errorAt(operand.Pos(), i18n.T(i18n.ErrInvalidAssignTarget))
	}
	return &ast.UpdateExpr{
		Operator: op,
		Prefix:   true,
		Operand:  operand,
	}
}

func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	if !isValidAssignTarget(left) {
		p.errorAt(left.Pos(), i18n.T(i18n.ErrInvalidAssignTarget))
	}
	op := p.advance()
	return &ast.UpdateExpr{
		Operator: op,
		Prefix:   false,
		Operand:  left,
	}
}

func (p *Parser) parseYieldExpr() ast.Expression {
	yieldTok := p.advance()
	expr := &ast.YieldExpr{YieldToken: yieldTok}
	if !p.peek().NewlineBefore && p.match(token.STAR) {
		expr.Delegate = true
	}
	if !expr.Delegate && (p.canInsertSemicolon() ||
		p.checkAny(token.RPAREN, token.RBRACKET, token.COMMA, token.COLON)) {
		return expr
	}
	expr.Argument = p.parseAssignment()
	if expr.Argument == nil {
		return nil
	}
	return expr
}

// ============================================================================
// 标识符、分组与箭头函数
// ============================================================================

func (p *Parser) parseIdentOrArrow() ast.Expression {
	tok := p.peek()
	next := p.peekNext()

	if tok.Literal == "async" && !next.NewlineBefore {
		switch next.Type {
		case token.FUNCTION:
			start := p.advance()
			p.advance()
			return p.parseFuncExpr(start, true)
		case token.IDENT:
			// async x => ...
			if p.lookAhead(2).Type == token.ARROW {
				start := p.advance()
				return p.parseSingleParamArrow(start, true)
			}
		case token.LPAREN, token.LT:
			if p.isArrowAhead(p.current + 1) {
				start := p.advance()
				return p.parseArrowFunc(start, true)
			}
		}
	}

	if next.Type == token.ARROW && !next.NewlineBefore {
		return p.parseSingleParamArrow(tok, false)
	}

	p.advance()
	return &ast.Ident{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseSingleParamArrow(start token.Token, async bool) ast.Expression {
	nameTok := p.advance()
	p.advance() // 消费 =>
	param := &ast.Param{Pattern: &ast.Ident{Token: nameTok, Name: nameTok.Literal}}
	body := p.parseArrowBody()
	if body == nil {
		return nil
	}
	return &ast.ArrowFunc{
		Start:  start,
		Async:  async,
		Params: []*ast.Param{param},
		Body:   body,
	}
}

func (p *Parser) parseGroupOrArrowFunc() ast.Expression {
	if p.isArrowAhead(p.current) {
		return p.parseArrowFunc(p.peek(), false)
	}

	lparen := p.advance() // 消费 (
	expr := p.parseAllowIn(p.parseExpression)
	if expr == nil {
		return nil
	}
	rparen := p.expect(token.RPAREN)
	if p.panicMode {
		return nil
	}
	return &ast.ParenExpr{LParen: lparen, Expr: expr, RParen: rparen}
}

// isArrowAhead 从位置 i（指向 ( 或 <）向前扫描，判断是否为箭头函数参数列表
//
// 形式: (params) =>、(params): T =>、<T>(params) =>
func (p *Parser) isArrowAhead(i int) bool {
	if i < len(p.tokens) && p.tokens[i].Type == token.LT {
		i = p.skipBalancedAt(i, token.LT, token.GT)
		if i < 0 || i >= len(p.tokens) || p.tokens[i].Type != token.LPAREN {
			return false
		}
	}

	j := p.skipBalancedAt(i, token.LPAREN, token.RPAREN)
	if j < 0 || j >= len(p.tokens) {
		return false
	}

	switch p.tokens[j].Type {
	case token.ARROW:
		return !p.tokens[j].NewlineBefore
	case token.COLON:
		// 返回类型标注：扫描到同一层的 =>
		depth := 0
		for k := j + 1; k < len(p.tokens); k++ {
			switch p.tokens[k].Type {
			case token.LPAREN, token.LBRACKET, token.LBRACE, token.LT:
				depth++
			case token.RPAREN, token.RBRACKET, token.RBRACE, token.GT:
				if depth == 0 {
					return false
				}
				depth--
			case token.SHR:
				depth -= 2
			case token.ARROW:
				if depth == 0 {
					return true
				}
			case token.SEMICOLON, token.COMMA, token.EOF, token.ASSIGN:
				if depth == 0 {
					return false
				}
			}
		}
	}
	return false
}

// skipBalancedAt 从 tokens[i]（必须是 open）开始跳过配对的括号，返回配对 close 之后的位置
//
// 尖括号中的 >> 与 >>> 计为多个 >。失败返回 -1。
func (p *Parser) skipBalancedAt(i int, open, close token.TokenType) int {
	if i >= len(p.tokens) || p.tokens[i].Type != open {
		return -1
	}
	depth := 0
	for ; i < len(p.tokens); i++ {
		t := p.tokens[i].Type
		switch {
		case t == open:
			depth++
		case t == close:
			depth--
		case close == token.GT && t == token.SHR:
			depth -= 2
		case close == token.GT && t == token.USHR:
			depth -= 3
		case t == token.EOF:
			return -1
		}
		if depth <= 0 {
			if depth < 0 {
				return -1
			}
			return i + 1
		}
	}
	return -1
}

func (p *Parser) parseArrowFunc(start token.Token, async bool) ast.Expression {
	if p.check(token.LT) {
		p.skipTypeParams()
	}
	params := p.parseParams()
	if p.panicMode {
		return nil
	}

	var returnType *ast.TypeNode
	if p.match(token.COLON) {
		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	p.expect(token.ARROW)
	if p.panicMode {
		return nil
	}
	body := p.parseArrowBody()
	if body == nil {
		return nil
	}
	return &ast.ArrowFunc{
		Start:      start,
		Async:      async,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
}

func (p *Parser) parseArrowBody() ast.Node {
	if p.check(token.LBRACE) {
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		return block
	}
	body := p.parseAssignment()
	if body == nil {
		return nil
	}
	return body
}

// parseTypeAssertionOrGenericArrow 解析 <T>expr 或 <T>(x: T) => x
func (p *Parser) parseTypeAssertionOrGenericArrow() ast.Expression {
	if p.isArrowAhead(p.current) {
		return p.parseArrowFunc(p.peek(), false)
	}

	langle := p.peek()
	end := p.skipBalancedAt(p.current, token.LT, token.GT)
	if end < 0 || end-p.current < 3 {
		p.error(i18n.T(i18n.ErrExpectedType))
		p.panicMode = true
		return nil
	}
	// 尖括号内的类型文本，去掉最后一个 >（可能是 >> 的后半）
	first := p.tokens[p.current+1]
	stop := p.tokens[end-1].End()
	stop.Column--
	stop.Offset--
	typ := &ast.TypeNode{
		Start: first.Pos,
		Stop:  stop,
		Text:  p.sourceText(first.Pos, stop),
	}
	p.current = end
	expr := p.parsePrecedence(PREC_UNARY)
	if expr == nil {
		return nil
	}
	return &ast.TypeAssertionExpr{LAngle: langle, Type: typ, Expr: expr}
}

// ============================================================================
// 字面量
// ============================================================================

func (p *Parser) parseTemplate() ast.Expression {
	tok := p.advance()
	tpl := tok.Value.(*token.Template)

	lit := &ast.TemplateLit{Token: tok, Quasis: tpl.Quasis}
	for i, src := range tpl.Exprs {
		expr := p.parseEmbedded(src, tpl.ExprPos[i])
		if expr == nil {
			p.panicMode = true
			return nil
		}
		lit.Exprs = append(lit.Exprs, expr)
	}
	return lit
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lbracket := p.advance() // 消费 [

	var elements []ast.Expression
	for !p.check(token.RBRACKET) && !p.isAtEnd() {
		if p.check(token.COMMA) {
			// 空位 [a, , b]
			p.advance()
			elements = append(elements, nil)
			continue
		}

		var el ast.Expression
		if p.check(token.ELLIPSIS) {
			ellipsis := p.advance()
			arg := p.parseAllowIn(p.parseAssignment)
			if arg == nil {
				return nil
			}
			el = &ast.SpreadElement{Ellipsis: ellipsis, Argument: arg}
		} else {
			el = p.parseAllowIn(p.parseAssignment)
			if el == nil {
				return nil
			}
		}
		elements = append(elements, el)

		if !p.check(token.RBRACKET) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}

	rbracket := p.expect(token.RBRACKET)
	if p.panicMode {
		return nil
	}
	return &ast.ArrayLit{LBracket: lbracket, Elements: elements, RBracket: rbracket}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lbrace := p.advance() // 消费 {

	var props []*ast.Property
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		prop := p.parseProperty()
		if prop == nil {
			return nil
		}
		props = append(props, prop)

		if !p.check(token.RBRACE) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}

	rbrace := p.expect(token.RBRACE)
	if p.panicMode {
		return nil
	}
	return &ast.ObjectLit{LBrace: lbrace, Props: props, RBrace: rbrace}
}

func (p *Parser) parseProperty() *ast.Property {
	if p.check(token.ELLIPSIS) {
		p.advance()
		arg := p.parseAllowIn(p.parseAssignment)
		if arg == nil {
			return nil
		}
		return &ast.Property{Kind: ast.PropSpread, Value: arg}
	}

	start := p.peek()
	kind := ast.PropInit
	async, generator := false, false

	// get / set / async 修饰，后面必须跟属性名
	if start.Type == token.IDENT && p.isPropertyNameStart(p.peekNext()) {
		switch start.Literal {
		case "get":
			kind = ast.PropGetter
			p.advance()
		case "set":
			kind = ast.PropSetter
			p.advance()
		case "async":
			if !p.peekNext().NewlineBefore {
				async = true
				kind = ast.PropMethod
				p.advance()
			}
		}
	}
	if p.match(token.STAR) {
		generator = true
		kind = ast.PropMethod
	}

	key, computed := p.parsePropertyKey()
	if key == nil {
		return nil
	}

	if p.checkAny(token.LPAREN, token.LT) {
		if kind == ast.PropInit {
			kind = ast.PropMethod
		}
		fn := p.parseMethod(start, async, generator)
		if fn == nil {
			return nil
		}
		return &ast.Property{Kind: kind, Key: key, Computed: computed, Value: fn}
	}

	if kind != ast.PropInit {
		p.error(i18n.T(i18n.ErrExpectedToken, "'('"))
		p.panicMode = true
		return nil
	}

	if p.match(token.COLON) {
		value := p.parseAllowIn(p.parseAssignment)
		if value == nil {
			return nil
		}
		return &ast.Property{Kind: ast.PropInit, Key: key, Computed: computed, Value: value}
	}

	// 简写属性 { x } 或解构默认值 { x = 1 }
	ident, ok := key.(*ast.Ident)
	if !ok || computed {
		p.error(i18n.T(i18n.ErrExpectedToken, "':'"))
		p.panicMode = true
		return nil
	}
	if p.check(token.ASSIGN) {
		op := p.advance()
		def := p.parseAllowIn(p.parseAssignment)
		if def == nil {
			return nil
		}
		return &ast.Property{
			Kind:  ast.PropShorthand,
			Key:   key,
			Value: &ast.AssignExpr{Left: ident, Operator: op, Right: def},
		}
	}
	return &ast.Property{Kind: ast.PropShorthand, Key: key, Value: ident}
}

// isPropertyNameStart 判断 token 能否开始一个属性名
func (p *Parser) isPropertyNameStart(tok token.Token) bool {
	switch tok.Type {
	case token.IDENT, token.STRING, token.NUMBER, token.BIGINT, token.LBRACKET, token.PRIVATE_NAME, token.STAR:
		return true
	}
	return token.IsKeyword(tok.Type)
}

// parsePropertyKey 解析属性名：标识符、关键字、字符串、数字或 [计算属性]
func (p *Parser) parsePropertyKey() (ast.Expression, bool) {
	tok := p.peek()
	switch {
	case tok.Type == token.IDENT || tok.Type == token.PRIVATE_NAME || token.IsKeyword(tok.Type):
		p.advance()
		return &ast.Ident{Token: tok, Name: tok.Literal}, false
	case tok.Type == token.STRING:
		p.advance()
		return &ast.StringLit{Token: tok, Value: tok.Value.(string)}, false
	case tok.Type == token.NUMBER:
		p.advance()
		return &ast.NumberLit{Token: tok, Value: tok.Value.(float64)}, false
	case tok.Type == token.BIGINT:
		p.advance()
		return &ast.BigIntLit{Token: tok, Digits: tok.Value.(string)}, false
	case tok.Type == token.LBRACKET:
		p.advance()
		key := p.parseAllowIn(p.parseAssignment)
		if key == nil {
			return nil, false
		}
		p.expect(token.RBRACKET)
		if p.panicMode {
			return nil, false
		}
		return key, true
	}
	p.error(i18n.T(i18n.ErrExpectedPropertyName))
	p.panicMode = true
	return nil, false
}

// ============================================================================
// 成员访问与调用
// ============================================================================

// parseMemberName 解析 . 之后的属性名（允许关键字和 #private）
func (p *Parser) parseMemberName(left ast.Expression, optional bool) ast.Expression {
	tok := p.peek()
	if tok.Type != token.IDENT && tok.Type != token.PRIVATE_NAME && !token.IsKeyword(tok.Type) {
		p.error(i18n.T(i18n.ErrExpectedPropertyName))
		p.panicMode = true
		return nil
	}
	p.advance()
	return &ast.MemberExpr{
		Object:   left,
		Property: &ast.Ident{Token: tok, Name: tok.Literal},
		Optional: optional,
		Stop:     tok,
	}
}

func (p *Parser) parseOptionalAccess(left ast.Expression) ast.Expression {
	p.advance() // 消费 ?.
	switch {
	case p.check(token.LPAREN):
		return p.parseCallExpr(left, true)
	case p.check(token.LBRACKET):
		return p.parseIndexExpr(left, true)
	default:
		return p.parseMemberName(left, true)
	}
}

func (p *Parser) parseIndexExpr(left ast.Expression, optional bool) ast.Expression {
	p.advance() // 消费 [
	index := p.parseAllowIn(p.parseExpression)
	if index == nil {
		return nil
	}
	rbracket := p.expect(token.RBRACKET)
	if p.panicMode {
		return nil
	}
	return &ast.MemberExpr{
		Object:   left,
		Property: index,
		Computed: true,
		Optional: optional,
		Stop:     rbracket,
	}
}

func (p *Parser) parseCallExpr(callee ast.Expression, optional bool) ast.Expression {
	args, rparen := p.parseArguments()
	if p.panicMode {
		return nil
	}
	return &ast.CallExpr{
		Callee:   callee,
		Optional: optional,
		Args:     args,
		RParen:   rparen,
	}
}

// parseArguments 解析调用参数列表 (a, ...b)
func (p *Parser) parseArguments() ([]ast.Expression, token.Token) {
	p.expect(token.LPAREN)
	if p.panicMode {
		return nil, token.Token{}
	}

	var args []ast.Expression
	for !p.check(token.RPAREN) && !p.isAtEnd() {
		var arg ast.Expression
		if p.check(token.ELLIPSIS) {
			ellipsis := p.advance()
			inner := p.parseAllowIn(p.parseAssignment)
			if inner == nil {
				return nil, token.Token{}
			}
			arg = &ast.SpreadElement{Ellipsis: ellipsis, Argument: inner}
		} else {
			arg = p.parseAllowIn(p.parseAssignment)
			if arg == nil {
				return nil, token.Token{}
			}
		}
		args = append(args, arg)

		if !p.check(token.RPAREN) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil, token.Token{}
			}
		}
	}

	rparen := p.expect(token.RPAREN)
	return args, rparen
}

func (p *Parser) parseNewExpr() ast.Expression {
	newTok := p.advance()

	// new.target
	if p.match(token.DOT) {
		prop := p.peek()
		if prop.Type != token.IDENT || prop.Literal != "target" {
			p.error(i18n.T(i18n.ErrExpectedToken, "'target'"))
			p.panicMode = true
			return nil
		}
		p.advance()
		return &ast.MetaProperty{Meta: newTok, Property: &ast.Ident{Token: prop, Name: prop.Literal}}
	}

	// 被构造的表达式只包含成员访问，不包含调用
	var callee ast.Expression
	if p.check(token.NEW) {
		callee = p.parseNewExpr()
	} else {
		callee = p.parsePrefixExpr()
	}
	if callee == nil {
		return nil
	}
	for !p.panicMode {
		if p.check(token.DOT) {
			p.advance()
			callee = p.parseMemberName(callee, false)
		} else if p.check(token.LBRACKET) {
			callee = p.parseIndexExpr(callee, false)
		} else {
			break
		}
		if callee == nil {
			return nil
		}
	}

	if p.check(token.LT) {
		p.skipTypeArguments()
	}

	expr := &ast.NewExpr{NewToken: newTok, Callee: callee, Stop: p.previous()}
	if p.check(token.LPAREN) {
		args, rparen := p.parseArguments()
		if p.panicMode {
			return nil
		}
		expr.Args = args
		expr.Stop = rparen
	}
	return expr
}

// parseImportExpr 解析 import(x) 或 import.meta
func (p *Parser) parseImportExpr() ast.Expression {
	importTok := p.advance()

	if p.match(token.DOT) {
		prop := p.peek()
		if prop.Type != token.IDENT || prop.Literal != "meta" {
			p.error(i18n.T(i18n.ErrExpectedToken, "'meta'"))
			p.panicMode = true
			return nil
		}
		p.advance()
		return &ast.MetaProperty{Meta: importTok, Property: &ast.Ident{Token: prop, Name: prop.Literal}}
	}

	p.expect(token.LPAREN)
	if p.panicMode {
		return nil
	}
	source := p.parseAllowIn(p.parseAssignment)
	if source == nil {
		return nil
	}
	p.match(token.COMMA)
	rparen := p.expect(token.RPAREN)
	if p.panicMode {
		return nil
	}
	return &ast.ImportExpr{ImportToken: importTok, Source: source, RParen: rparen}
}

// ============================================================================
// 模式（解构）
// ============================================================================

// toPattern 把赋值左侧的表达式改写为绑定模式
func (p *Parser) toPattern(expr ast.Expression) ast.Pattern {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.MemberExpr:
		return e
	case *ast.ParenExpr:
		switch e.Expr.(type) {
		case *ast.Ident, *ast.MemberExpr:
			return p.toPattern(e.Expr)
		}
	case *ast.AssignExpr:
		if e.Operator.Type == token.ASSIGN {
			var left ast.Pattern
			if pat, ok := e.Left.(ast.Pattern); ok {
				left = pat
			} else if ex, ok := e.Left.(ast.Expression); ok {
				left = p.toPattern(ex)
			}
			if left == nil {
				return nil
			}
			return &ast.AssignPattern{Left: left, Default: e.Right}
		}
	case *ast.ArrayLit:
		pat := &ast.ArrayPattern{LBracket: e.LBracket, RBracket: e.RBracket}
		for _, el := range e.Elements {
			if el == nil {
				pat.Elements = append(pat.Elements, nil)
				continue
			}
			var sub ast.Pattern
			if spread, ok := el.(*ast.SpreadElement); ok {
				arg := p.toPattern(spread.Argument)
				if arg == nil {
					return nil
				}
				sub = &ast.RestElement{Ellipsis: spread.Ellipsis, Argument: arg}
			} else {
				sub = p.toPattern(el)
				if sub == nil {
					return nil
				}
			}
			pat.Elements = append(pat.Elements, sub)
		}
		return pat
	case *ast.ObjectLit:
		pat := &ast.ObjectPattern{LBrace: e.LBrace, RBrace: e.RBrace}
		for _, prop := range e.Props {
			switch prop.Kind {
			case ast.PropSpread:
				arg := p.toPattern(prop.Value)
				if arg == nil {
					return nil
				}
				pat.Rest = &ast.RestElement{Argument: arg}
			case ast.PropShorthand:
				value := p.toPattern(prop.Value)
				if value == nil {
					return nil
				}
				pat.Props = append(pat.Props, &ast.PatternProp{Key: prop.Key, Value: value, Shorthand: true})
			case ast.PropInit:
				value := p.toPattern(prop.Value)
				if value == nil {
					return nil
				}
				pat.Props = append(pat.Props, &ast.PatternProp{Key: prop.Key, Computed: prop.Computed, Value: value})
			default:
				p.errorAt(prop.Pos(), i18n.T(i18n.ErrInvalidAssignTarget))
				p.panicMode = true
				return nil
			}
		}
		return pat
	}

	p.errorAt(expr.Pos(), i18n.T(i18n.ErrInvalidAssignTarget))
	p.panicMode = true
	return nil
}
