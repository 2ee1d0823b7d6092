package parser

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 模块条目
// ============================================================================

func (p *Parser) parseModuleItem() ast.ModuleItem {
	switch p.peek().Type {
	case token.IMPORT:
		if next := p.peekNext().Type; next != token.LPAREN && next != token.DOT {
			return p.parseImportDecl()
		}
	case token.EXPORT:
		return p.parseExportDecl()
	case token.AT:
		p.skipDecorators()
		if p.panicMode {
			return nil
		}
		return p.parseModuleItem()
	case token.IDENT:
		// declare module "m" { ... }
		if p.checkContextual("declare") && p.peekNext().Literal == "module" &&
			p.lookAhead(2).Type == token.STRING {
			return p.parseAmbientModule()
		}
	}

	stmt := p.parseStatement()
	if stmt == nil || p.panicMode {
		return nil
	}
	return &ast.StmtItem{Stmt: stmt}
}

// parseItemsBlock 解析 namespace / declare module 的条目块
func (p *Parser) parseItemsBlock() ([]ast.ModuleItem, token.Token) {
	p.consume(token.LBRACE, "expected '{'")
	if p.panicMode {
		return nil, token.Token{}
	}

	var items []ast.ModuleItem
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		before := p.current
		item := p.parseModuleItem()
		if p.panicMode {
			if p.current == before {
				p.advance()
			}
			for !p.check(token.RBRACE) && !p.isAtEnd() {
				if p.previous().Type == token.SEMICOLON || p.previous().Type == token.RBRACE {
					break
				}
				p.advance()
			}
			p.panicMode = false
			continue
		}
		if item != nil {
			items = append(items, item)
		}
	}

	rbrace := p.consume(token.RBRACE, "expected '}'")
	return items, rbrace
}

func (p *Parser) parseAmbientModule() ast.ModuleItem {
	declareTok := p.advance() // declare
	p.advance()               // module
	nameTok := p.advance()
	body, rbrace := p.parseItemsBlock()
	if p.panicMode {
		return nil
	}
	return &ast.AmbientModuleDecl{
		DeclareToken: declareTok,
		Name:         &ast.StringLit{Token: nameTok, Value: nameTok.Value.(string)},
		Body:         body,
		RBrace:       rbrace,
	}
}

// parseModuleSource 解析 from 之后的模块说明符
func (p *Parser) parseModuleSource() *ast.StringLit {
	if !p.check(token.STRING) {
		p.error(i18n.T(i18n.ErrExpectedToken, "module specifier"))
		p.panicMode = true
		return nil
	}
	tok := p.advance()
	// 导入属性 with { type: "json" }
	if (p.check(token.WITH) || p.checkContextual("assert")) && !p.peek().NewlineBefore &&
		p.peekNext().Type == token.LBRACE {
		p.advance()
		p.skipBalanced(token.LBRACE, token.RBRACE)
	}
	return &ast.StringLit{Token: tok, Value: tok.Value.(string)}
}

// parseModuleExportName 解析导入导出中的名字，允许关键字（如 default）
func (p *Parser) parseModuleExportName() *ast.Ident {
	tok := p.peek()
	if tok.Type == token.IDENT || token.IsKeyword(tok.Type) {
		p.advance()
		return &ast.Ident{Token: tok, Name: tok.Literal}
	}
	if tok.Type == token.STRING {
		p.advance()
		return &ast.Ident{Token: tok, Name: tok.Value.(string)}
	}
	p.error(i18n.T(i18n.ErrExpectedIdentifier))
	p.panicMode = true
	return nil
}

func (p *Parser) expectFrom() bool {
	if !p.matchContextual("from") {
		p.error(i18n.T(i18n.ErrExpectedToken, "'from'"))
		p.panicMode = true
		return false
	}
	return true
}

func (p *Parser) parseImportDecl() ast.ModuleItem {
	decl := &ast.ImportDecl{ImportToken: p.advance()}

	// import "m"
	if p.check(token.STRING) {
		decl.Source = p.parseModuleSource()
		if decl.Source == nil {
			return nil
		}
		p.consumeSemicolon()
		if p.panicMode {
			return nil
		}
		return decl
	}

	// import type { A } from "m"
	if p.checkContextual("type") {
		next := p.peekNext()
		if next.Type == token.LBRACE || next.Type == token.STAR ||
			(next.Type == token.IDENT && next.Literal != "from") {
			p.advance()
			decl.TypeOnly = true
		}
	}

	if p.check(token.IDENT) {
		tok := p.advance()
		decl.Default = &ast.Ident{Token: tok, Name: tok.Literal}
		if !p.match(token.COMMA) {
			if !p.expectFrom() {
				return nil
			}
			return p.finishImport(decl)
		}
	}

	switch {
	case p.match(token.STAR):
		if !p.matchContextual("as") {
			p.error(i18n.T(i18n.ErrExpectedToken, "'as'"))
			p.panicMode = true
			return nil
		}
		tok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
		if p.panicMode {
			return nil
		}
		decl.Namespace = &ast.Ident{Token: tok, Name: tok.Literal}
	case p.match(token.LBRACE):
		for !p.check(token.RBRACE) && !p.isAtEnd() {
			// 内联 type 修饰符 { type A }
			if p.checkContextual("type") && p.peekNext().Type == token.IDENT {
				p.advance()
			}
			spec := &ast.ImportSpecifier{Imported: p.parseModuleExportName()}
			if spec.Imported == nil {
				return nil
			}
			spec.Local = spec.Imported
			if p.matchContextual("as") {
				tok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
				if p.panicMode {
					return nil
				}
				spec.Local = &ast.Ident{Token: tok, Name: tok.Literal}
			}
			decl.Specifiers = append(decl.Specifiers, spec)
			if !p.check(token.RBRACE) {
				p.expect(token.COMMA)
				if p.panicMode {
					return nil
				}
			}
		}
		p.expect(token.RBRACE)
		if p.panicMode {
			return nil
		}
	default:
		p.error(i18n.T(i18n.ErrUnexpectedToken, p.peek().Literal))
		p.panicMode = true
		return nil
	}

	if !p.expectFrom() {
		return nil
	}
	return p.finishImport(decl)
}

func (p *Parser) finishImport(decl *ast.ImportDecl) ast.ModuleItem {
	decl.Source = p.parseModuleSource()
	if decl.Source == nil {
		return nil
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return decl
}

func (p *Parser) parseExportDecl() ast.ModuleItem {
	exportTok := p.advance()

	switch {
	case p.match(token.DEFAULT):
		return p.parseExportDefault(exportTok)

	case p.match(token.STAR):
		decl := &ast.ExportAllDecl{ExportToken: exportTok}
		if p.matchContextual("as") {
			decl.Alias = p.parseModuleExportName()
			if decl.Alias == nil {
				return nil
			}
		}
		if !p.expectFrom() {
			return nil
		}
		decl.Source = p.parseModuleSource()
		if decl.Source == nil {
			return nil
		}
		p.consumeSemicolon()
		if p.panicMode {
			return nil
		}
		return decl

	case p.check(token.LBRACE) || (p.checkContextual("type") && p.peekNext().Type == token.LBRACE):
		p.matchContextual("type")
		return p.parseExportNamed(exportTok)
	}

	decl := p.parseDeclaration()
	if decl == nil || p.panicMode {
		return nil
	}
	return &ast.ExportDecl{ExportToken: exportTok, Decl: decl}
}

func (p *Parser) parseExportNamed(exportTok token.Token) ast.ModuleItem {
	p.advance() // 消费 {
	decl := &ast.ExportNamedDecl{ExportToken: exportTok}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if p.checkContextual("type") && p.peekNext().Type == token.IDENT {
			p.advance()
		}
		spec := &ast.ExportSpecifier{Local: p.parseModuleExportName()}
		if spec.Local == nil {
			return nil
		}
		spec.Exported = spec.Local
		if p.matchContextual("as") {
			spec.Exported = p.parseModuleExportName()
			if spec.Exported == nil {
				return nil
			}
		}
		decl.Specifiers = append(decl.Specifiers, spec)
		if !p.check(token.RBRACE) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}
	decl.RBrace = p.expect(token.RBRACE)
	if p.panicMode {
		return nil
	}
	if p.matchContextual("from") {
		decl.Source = p.parseModuleSource()
		if decl.Source == nil {
			return nil
		}
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return decl
}

func (p *Parser) parseExportDefault(exportTok token.Token) ast.ModuleItem {
	out := &ast.ExportDefaultDecl{ExportToken: exportTok}

	// 带名字的函数和类是声明，匿名的是表达式
	isAsyncFn := p.checkContextual("async") && p.peekNext().Type == token.FUNCTION && !p.peekNext().NewlineBefore
	switch {
	case p.check(token.FUNCTION) || isAsyncFn:
		i := 1
		if isAsyncFn {
			i = 2
		}
		if p.lookAhead(i).Type == token.STAR {
			i++
		}
		if p.lookAhead(i).Type == token.IDENT {
			out.Decl = p.parseDeclaration()
			if out.Decl == nil || p.panicMode {
				return nil
			}
			return out
		}
	case p.check(token.CLASS):
		if next := p.peekNext(); next.Type == token.IDENT && next.Literal != "extends" && next.Literal != "implements" {
			out.Decl = p.parseDeclaration()
			if out.Decl == nil || p.panicMode {
				return nil
			}
			return out
		}
	case p.checkContextual("interface") || p.checkContextual("abstract"):
		out.Decl = p.parseDeclaration()
		if out.Decl == nil || p.panicMode {
			return nil
		}
		return out
	}

	out.Expr = p.parseAssignment()
	if out.Expr == nil {
		return nil
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return out
}

// parseDeclaration 解析 export 之后的声明
func (p *Parser) parseDeclaration() ast.Declaration {
	tok := p.peek()
	switch tok.Type {
	case token.VAR, token.LET, token.CONST:
		if tok.Type == token.CONST && p.peekNext().Type == token.ENUM {
			return p.parseEnumDecl()
		}
		decl := p.parseVarDecl(false)
		if decl == nil {
			return nil
		}
		p.consumeSemicolon()
		return decl
	case token.FUNCTION:
		return p.parseFuncDecl(p.advance(), false, false)
	case token.CLASS:
		return p.parseClassDecl(false)
	case token.ENUM:
		return p.parseEnumDecl()
	case token.IDENT:
		next := p.peekNext()
		switch tok.Literal {
		case "async":
			if next.Type == token.FUNCTION {
				start := p.advance()
				p.advance()
				return p.parseFuncDecl(start, true, false)
			}
		case "interface":
			return p.parseInterfaceDecl()
		case "type":
			return p.parseTypeAliasDecl()
		case "namespace", "module":
			return p.parseNamespaceDecl()
		case "abstract":
			if next.Type == token.CLASS {
				p.advance()
				return p.parseClassDecl(false)
			}
		case "declare":
			if p.isDeclareTarget(next) {
				return p.parseDeclareDecl()
			}
		}
	}
	p.error(i18n.T(i18n.ErrUnexpectedToken, tok.Literal))
	p.panicMode = true
	return nil
}

// ============================================================================
// 变量声明与绑定模式
// ============================================================================

// parseVarDecl 解析 var / let / const 声明（不消费结尾分号）
func (p *Parser) parseVarDecl(declare bool) *ast.VarDecl {
	decl := &ast.VarDecl{Declare: declare, Kind: p.advance()}

	for {
		name := p.parseBindingTarget()
		if name == nil {
			return nil
		}
		d := &ast.VarDeclarator{Name: name}
		// 明确赋值断言 let x!: T
		if p.check(token.NOT) && !p.peek().NewlineBefore {
			p.advance()
		}
		if p.match(token.COLON) {
			d.Type = p.parseType()
			if d.Type == nil {
				return nil
			}
		}
		if p.match(token.ASSIGN) {
			d.Init = p.parseAssignment()
			if d.Init == nil {
				return nil
			}
		}
		decl.Decls = append(decl.Decls, d)
		if !p.match(token.COMMA) {
			break
		}
	}

	// for 头部的声明由 parseForStmt 检查
	if !p.noIn {
		p.checkConstInit(decl)
		if p.panicMode {
			return nil
		}
	}
	return decl
}

// checkConstInit 检查 const 声明（非 declare）的每个子句都有初始值
func (p *Parser) checkConstInit(decl *ast.VarDecl) {
	if decl.Kind.Type != token.CONST || decl.Declare {
		return
	}
	for _, d := range decl.Decls {
		if d.Init == nil {
			p.errorAt(d.Pos(), i18n.T(i18n.ErrMissingConstInit))
			p.panicMode = true
			return
		}
	}
}

// parseBindingTarget 解析绑定目标：标识符、数组模式或对象模式
func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.peek().Type {
	case token.IDENT:
		tok := p.advance()
		return &ast.Ident{Token: tok, Name: tok.Literal}
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	case token.YIELD, token.AWAIT:
		// 非生成器 / 非异步上下文中可作标识符
		tok := p.advance()
		return &ast.Ident{Token: tok, Name: tok.Literal}
	}
	p.error(i18n.T(i18n.ErrExpectedIdentifier))
	p.panicMode = true
	return nil
}

// parseBindingElement 解析带可选默认值的绑定目标
func (p *Parser) parseBindingElement() ast.Pattern {
	target := p.parseBindingTarget()
	if target == nil {
		return nil
	}
	if p.match(token.ASSIGN) {
		def := p.parseAllowIn(p.parseAssignment)
		if def == nil {
			return nil
		}
		return &ast.AssignPattern{Left: target, Default: def}
	}
	return target
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	pat := &ast.ArrayPattern{LBracket: p.advance()}
	for !p.check(token.RBRACKET) && !p.isAtEnd() {
		if p.match(token.COMMA) {
			pat.Elements = append(pat.Elements, nil)
			continue
		}
		var el ast.Pattern
		if p.check(token.ELLIPSIS) {
			ellipsis := p.advance()
			arg := p.parseBindingTarget()
			if arg == nil {
				return nil
			}
			el = &ast.RestElement{Ellipsis: ellipsis, Argument: arg}
		} else {
			el = p.parseBindingElement()
			if el == nil {
				return nil
			}
		}
		pat.Elements = append(pat.Elements, el)
		if !p.check(token.RBRACKET) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}
	pat.RBracket = p.expect(token.RBRACKET)
	if p.panicMode {
		return nil
	}
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	pat := &ast.ObjectPattern{LBrace: p.advance()}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if p.check(token.ELLIPSIS) {
			ellipsis := p.advance()
			arg := p.parseBindingTarget()
			if arg == nil {
				return nil
			}
			pat.Rest = &ast.RestElement{Ellipsis: ellipsis, Argument: arg}
		} else {
			key, computed := p.parsePropertyKey()
			if key == nil {
				return nil
			}
			prop := &ast.PatternProp{Key: key, Computed: computed}
			if p.match(token.COLON) {
				prop.Value = p.parseBindingElement()
				if prop.Value == nil {
					return nil
				}
			} else {
				ident, ok := key.(*ast.Ident)
				if !ok || computed {
					p.error(i18n.T(i18n.ErrExpectedToken, "':'"))
					p.panicMode = true
					return nil
				}
				prop.Shorthand = true
				prop.Value = ident
				if p.match(token.ASSIGN) {
					def := p.parseAllowIn(p.parseAssignment)
					if def == nil {
						return nil
					}
					prop.Value = &ast.AssignPattern{Left: ident, Default: def}
				}
			}
			pat.Props = append(pat.Props, prop)
		}
		if !p.check(token.RBRACE) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}
	pat.RBrace = p.expect(token.RBRACE)
	if p.panicMode {
		return nil
	}
	return pat
}

// parseUsingDecl 解析 using / await using 声明
func (p *Parser) parseUsingDecl(await bool) ast.Declaration {
	decl := &ast.UsingDecl{Start: p.advance(), Await: await}
	if await {
		p.advance() // using
	}
	for {
		tok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
		if p.panicMode {
			return nil
		}
		d := &ast.VarDeclarator{Name: &ast.Ident{Token: tok, Name: tok.Literal}}
		d.Type = p.parseOptionalTypeAnnotation()
		if p.panicMode {
			return nil
		}
		if p.match(token.ASSIGN) {
			d.Init = p.parseAssignment()
			if d.Init == nil {
				return nil
			}
		}
		decl.Decls = append(decl.Decls, d)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return decl
}

// ============================================================================
// 函数
// ============================================================================

// accessModifiers 参数属性与类成员修饰符
var accessModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"readonly":  true,
	"override":  true,
}

// modifierApplies 判断当前修饰符是否修饰后面的名字，而不是名字本身
func (p *Parser) modifierApplies() bool {
	next := p.peekNext()
	if next.NewlineBefore {
		return false
	}
	switch next.Type {
	case token.LPAREN, token.ASSIGN, token.SEMICOLON, token.COLON, token.QUESTION,
		token.NOT, token.RBRACE, token.RPAREN, token.LT, token.COMMA, token.EOF:
		return false
	}
	return true
}

// parseParams 解析参数列表 (a, b: T = 1, ...rest)
func (p *Parser) parseParams() []*ast.Param {
	p.expect(token.LPAREN)
	if p.panicMode {
		return nil
	}

	var params []*ast.Param
	for !p.check(token.RPAREN) && !p.isAtEnd() {
		p.skipDecorators()
		for p.check(token.IDENT) && accessModifiers[p.peek().Literal] && p.modifierApplies() {
			p.advance()
		}

		// this 参数只是类型标注
		if p.check(token.THIS) {
			p.advance()
			p.parseOptionalTypeAnnotation()
			if p.panicMode {
				return nil
			}
			if !p.check(token.RPAREN) {
				p.expect(token.COMMA)
				if p.panicMode {
					return nil
				}
			}
			continue
		}

		param := &ast.Param{}
		if p.check(token.ELLIPSIS) {
			ellipsis := p.advance()
			arg := p.parseBindingTarget()
			if arg == nil {
				return nil
			}
			param.Pattern = &ast.RestElement{Ellipsis: ellipsis, Argument: arg}
		} else {
			param.Pattern = p.parseBindingTarget()
			if param.Pattern == nil {
				return nil
			}
		}
		if p.match(token.QUESTION) {
			param.Optional = true
		}
		if p.match(token.COLON) {
			param.Type = p.parseType()
			if param.Type == nil {
				return nil
			}
		}
		if p.match(token.ASSIGN) {
			def := p.parseAllowIn(p.parseAssignment)
			if def == nil {
				return nil
			}
			param.Pattern = &ast.AssignPattern{Left: param.Pattern, Default: def}
		}
		params = append(params, param)

		if !p.check(token.RPAREN) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}

	p.expect(token.RPAREN)
	return params
}

// parseFunctionRest 解析函数名之后的部分：[<T>](params)[: R] { body }
//
// optionalBody 为 true 时允许没有函数体（重载签名、抽象方法），此时 Body 为 nil。
func (p *Parser) parseFunctionRest(start token.Token, async, generator, optionalBody bool) *ast.FuncExpr {
	fn := &ast.FuncExpr{Start: start, Async: async, Generator: generator}
	if p.check(token.LT) {
		p.skipTypeParams()
		if p.panicMode {
			return nil
		}
	}
	fn.Params = p.parseParams()
	if p.panicMode {
		return nil
	}
	if p.match(token.COLON) {
		fn.ReturnType = p.parseType()
		if fn.ReturnType == nil {
			return nil
		}
	}
	if !p.check(token.LBRACE) && optionalBody {
		return fn
	}
	fn.Body = p.parseBlock()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parseMethod 解析对象方法，当前 token 为 ( 或 <
func (p *Parser) parseMethod(start token.Token, async, generator bool) *ast.FuncExpr {
	return p.parseFunctionRest(start, async, generator, false)
}

// parseFuncExpr 解析函数表达式，function 关键字已消费
func (p *Parser) parseFuncExpr(start token.Token, async bool) ast.Expression {
	generator := p.match(token.STAR)
	var name *ast.Ident
	if p.check(token.IDENT) {
		tok := p.advance()
		name = &ast.Ident{Token: tok, Name: tok.Literal}
	}
	fn := p.parseFunctionRest(start, async, generator, false)
	if fn == nil {
		return nil
	}
	fn.Name = name
	return fn
}

// parseFuncDecl 解析函数声明，function 关键字已消费
func (p *Parser) parseFuncDecl(start token.Token, async, declare bool) ast.Declaration {
	generator := p.match(token.STAR)
	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
	if p.panicMode {
		return nil
	}

	fn := p.parseFunctionRest(start, async, generator, true)
	if fn == nil {
		return nil
	}

	decl := &ast.FuncDecl{
		Declare:    declare,
		Start:      start,
		Async:      async,
		Generator:  generator,
		Name:       &ast.Ident{Token: nameTok, Name: nameTok.Literal},
		Params:     fn.Params,
		ReturnType: fn.ReturnType,
		Body:       fn.Body,
	}
	if decl.Body == nil {
		// 重载签名或 declare function
		p.consumeSemicolon()
		if p.panicMode {
			return nil
		}
		decl.Stop = p.previous()
	}
	return decl
}

// ============================================================================
// 类
// ============================================================================

func (p *Parser) parseClassDecl(declare bool) ast.Declaration {
	body := p.parseClassBody(true)
	if body == nil {
		return nil
	}
	return &ast.ClassDecl{Declare: declare, ClassBody: *body}
}

// parseClassBody 解析 class [Name] [extends X] [implements Y] { members }
func (p *Parser) parseClassBody(requireName bool) *ast.ClassBody {
	body := &ast.ClassBody{ClassToken: p.advance()}

	if p.check(token.IDENT) && !p.checkContextual("implements") {
		tok := p.advance()
		body.Name = &ast.Ident{Token: tok, Name: tok.Literal}
	} else if requireName {
		p.error(i18n.T(i18n.ErrExpectedIdentifier))
		p.panicMode = true
		return nil
	}
	if p.check(token.LT) {
		p.skipTypeParams()
		if p.panicMode {
			return nil
		}
	}

	if p.match(token.EXTENDS) {
		body.SuperClass = p.parsePrecedence(PREC_CALL)
		if body.SuperClass == nil {
			return nil
		}
		if p.check(token.LT) {
			p.skipTypeArguments()
		}
	}
	if p.matchContextual("implements") {
		for {
			if !p.skipType() {
				p.error(i18n.T(i18n.ErrExpectedType))
				p.panicMode = true
				return nil
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.consume(token.LBRACE, "expected '{' before class body")
	if p.panicMode {
		return nil
	}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			return nil
		}
		if member != nil {
			body.Members = append(body.Members, member)
		}
	}
	body.RBrace = p.consume(token.RBRACE, "expected '}'")
	if p.panicMode {
		return nil
	}
	return body
}

// parseClassMember 解析一个类成员
//
// 只有类型意义的成员（索引签名、重载签名、抽象方法）返回 nil, true。
func (p *Parser) parseClassMember() (*ast.ClassMember, bool) {
	p.skipDecorators()
	if p.panicMode {
		return nil, false
	}

	member := &ast.ClassMember{Start: p.peek()}
	bodiless := false

	for p.check(token.IDENT) && p.modifierApplies() {
		word := p.peek().Literal
		if word == "static" {
			member.Static = true
			// static { ... }
			if p.peekNext().Type == token.LBRACE {
				p.advance()
				member.Kind = ast.MemberStaticBlock
				member.Block = p.parseBlock()
				return member, member.Block != nil
			}
		} else if word == "abstract" || word == "declare" {
			bodiless = true
		} else if !accessModifiers[word] && word != "accessor" {
			break
		}
		p.advance()
	}

	// 索引签名 [key: string]: T
	if p.check(token.LBRACKET) && p.peekNext().Type == token.IDENT && p.lookAhead(2).Type == token.COLON {
		p.skipBalanced(token.LBRACKET, token.RBRACKET)
		p.parseOptionalTypeAnnotation()
		p.consumeSemicolon()
		return nil, !p.panicMode
	}

	async, generator := false, false
	if p.checkContextual("async") && p.modifierApplies() {
		p.advance()
		async = true
	}
	if p.match(token.STAR) {
		generator = true
	}
	member.Kind = ast.MemberMethod
	if (p.checkContextual("get") || p.checkContextual("set")) && p.isPropertyNameStart(p.peekNext()) &&
		!p.peekNext().NewlineBefore {
		if p.advance().Literal == "get" {
			member.Kind = ast.MemberGetter
		} else {
			member.Kind = ast.MemberSetter
		}
	}

	member.Key, member.Computed = p.parsePropertyKey()
	if member.Key == nil {
		return nil, false
	}
	if p.check(token.QUESTION) || (p.check(token.NOT) && !p.peek().NewlineBefore) {
		p.advance()
	}

	if p.checkAny(token.LPAREN, token.LT) {
		if ident, ok := member.Key.(*ast.Ident); ok && ident.Name == "constructor" &&
			!member.Static && member.Kind == ast.MemberMethod {
			member.Kind = ast.MemberConstructor
		}
		fn := p.parseFunctionRest(member.Start, async, generator, true)
		if fn == nil {
			return nil, false
		}
		if fn.Body == nil {
			// 重载签名或抽象方法
			p.consumeSemicolon()
			return nil, !p.panicMode
		}
		member.Value = fn
		return member, true
	}

	if member.Kind != ast.MemberMethod || async || generator {
		p.error(i18n.T(i18n.ErrExpectedToken, "'('"))
		p.panicMode = true
		return nil, false
	}

	// 字段
	member.Kind = ast.MemberField
	if p.match(token.COLON) {
		member.Type = p.parseType()
		if member.Type == nil {
			return nil, false
		}
	}
	if p.match(token.ASSIGN) {
		member.Value = p.parseAllowIn(p.parseAssignment)
		if member.Value == nil {
			return nil, false
		}
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil, false
	}
	if bodiless && member.Value == nil {
		return nil, true
	}
	return member, true
}

// skipDecorators 跳过装饰器 @expr
func (p *Parser) skipDecorators() {
	for p.match(token.AT) {
		if p.parsePrecedence(PREC_CALL) == nil {
			return
		}
	}
}

// ============================================================================
// TypeScript 声明
// ============================================================================

func (p *Parser) parseEnumDecl() ast.Declaration {
	isConst := p.match(token.CONST)
	decl := &ast.EnumDecl{EnumToken: p.expect(token.ENUM), Const: isConst}
	if p.panicMode {
		return nil
	}
	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
	if p.panicMode {
		return nil
	}
	decl.Name = &ast.Ident{Token: nameTok, Name: nameTok.Literal}

	p.consume(token.LBRACE, "expected '{' after enum name")
	if p.panicMode {
		return nil
	}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		member := &ast.EnumMember{}
		tok := p.peek()
		switch {
		case tok.Type == token.IDENT || token.IsKeyword(tok.Type):
			member.Name = &ast.Ident{Token: p.advance(), Name: tok.Literal}
		case tok.Type == token.STRING:
			member.Name = &ast.StringLit{Token: p.advance(), Value: tok.Value.(string)}
		default:
			p.error(i18n.T(i18n.ErrExpectedPropertyName))
			p.panicMode = true
			return nil
		}
		if p.match(token.ASSIGN) {
			member.Init = p.parseAllowIn(p.parseAssignment)
			if member.Init == nil {
				return nil
			}
		}
		decl.Members = append(decl.Members, member)
		if !p.check(token.RBRACE) {
			p.expect(token.COMMA)
			if p.panicMode {
				return nil
			}
		}
	}
	decl.RBrace = p.consume(token.RBRACE, "expected '}'")
	if p.panicMode {
		return nil
	}
	return decl
}

func (p *Parser) parseInterfaceDecl() ast.Declaration {
	decl := &ast.InterfaceDecl{InterfaceToken: p.advance()}
	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
	if p.panicMode {
		return nil
	}
	decl.Name = &ast.Ident{Token: nameTok, Name: nameTok.Literal}
	if p.check(token.LT) {
		p.skipTypeParams()
		if p.panicMode {
			return nil
		}
	}
	if p.match(token.EXTENDS) {
		for {
			if !p.skipType() {
				p.error(i18n.T(i18n.ErrExpectedType))
				p.panicMode = true
				return nil
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if !p.check(token.LBRACE) {
		p.error(i18n.T(i18n.ErrExpectedToken, "'{'"))
		p.panicMode = true
		return nil
	}
	decl.Body = p.parseType()
	if decl.Body == nil {
		return nil
	}
	return decl
}

func (p *Parser) parseTypeAliasDecl() ast.Declaration {
	decl := &ast.TypeAliasDecl{TypeToken: p.advance()}
	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
	if p.panicMode {
		return nil
	}
	decl.Name = &ast.Ident{Token: nameTok, Name: nameTok.Literal}
	if p.check(token.LT) {
		p.skipTypeParams()
		if p.panicMode {
			return nil
		}
	}
	p.expect(token.ASSIGN)
	if p.panicMode {
		return nil
	}
	decl.Type = p.parseType()
	if decl.Type == nil {
		return nil
	}
	p.consumeSemicolon()
	if p.panicMode {
		return nil
	}
	return decl
}

// parseNamespaceDecl 解析 namespace A.B { ... }，也用于 declare global
func (p *Parser) parseNamespaceDecl() ast.Declaration {
	decl := &ast.NamespaceDecl{NamespaceToken: p.advance()}
	if decl.NamespaceToken.Literal == "global" {
		decl.Name = []*ast.Ident{{Token: decl.NamespaceToken, Name: "global"}}
	} else {
		for {
			tok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedIdentifier))
			if p.panicMode {
				return nil
			}
			decl.Name = append(decl.Name, &ast.Ident{Token: tok, Name: tok.Literal})
			if !p.match(token.DOT) {
				break
			}
		}
	}

	decl.Body, decl.RBrace = p.parseItemsBlock()
	if p.panicMode {
		return nil
	}
	return decl
}

// declareTargets declare 之后可以出现的上下文关键字
var declareTargets = map[string]bool{
	"module":    true,
	"namespace": true,
	"global":    true,
	"type":      true,
	"interface": true,
	"abstract":  true,
	"async":     true,
}

func (p *Parser) isDeclareTarget(next token.Token) bool {
	switch next.Type {
	case token.VAR, token.LET, token.CONST, token.FUNCTION, token.CLASS, token.ENUM:
		return true
	case token.IDENT:
		return declareTargets[next.Literal]
	}
	return false
}

// parseDeclareDecl 解析 declare 开头的环境声明
func (p *Parser) parseDeclareDecl() ast.Declaration {
	p.advance() // declare
	tok := p.peek()

	switch tok.Type {
	case token.VAR, token.LET, token.CONST:
		if tok.Type == token.CONST && p.peekNext().Type == token.ENUM {
			return p.parseEnumDecl()
		}
		decl := p.parseVarDecl(true)
		if decl == nil {
			return nil
		}
		p.consumeSemicolon()
		return decl
	case token.FUNCTION:
		return p.parseFuncDecl(p.advance(), false, true)
	case token.CLASS:
		return p.parseClassDecl(true)
	case token.ENUM:
		return p.parseEnumDecl()
	}

	switch tok.Literal {
	case "abstract":
		p.advance()
		return p.parseClassDecl(true)
	case "async":
		start := p.advance()
		p.expect(token.FUNCTION)
		if p.panicMode {
			return nil
		}
		return p.parseFuncDecl(start, true, true)
	case "interface":
		return p.parseInterfaceDecl()
	case "type":
		return p.parseTypeAliasDecl()
	default: // module / namespace / global
		return p.parseNamespaceDecl()
	}
}
