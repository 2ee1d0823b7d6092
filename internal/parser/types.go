package parser

import (
	"strings"

	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 类型标注
// ============================================================================
//
// 类型在转译时被擦除，解析器只需要正确跳过类型并记录源码文本。
// 泛型实参、对象类型、元组类型按括号配对整体跳过。
//
// ============================================================================

// parseType 解析一个类型标注，返回其源码文本
func (p *Parser) parseType() *ast.TypeNode {
	start := p.peek()
	if !p.skipType() {
		if !p.panicMode {
			p.error(i18n.T(i18n.ErrExpectedType))
			p.panicMode = true
		}
		return nil
	}
	stop := p.previous().End()
	return &ast.TypeNode{
		Start: start.Pos,
		Stop:  stop,
		Text:  p.sourceText(start.Pos, stop),
	}
}

// sourceText 按偏移量截取源码，越界时返回空串
func (p *Parser) sourceText(start, stop token.Position) string {
	if start.Offset < 0 || stop.Offset > len(p.source) || start.Offset > stop.Offset {
		return ""
	}
	return strings.TrimSpace(p.source[start.Offset:stop.Offset])
}

// skipType 跳过一个完整类型，含条件类型 T extends U ? X : Y
func (p *Parser) skipType() bool {
	if !p.skipUnionType() {
		return false
	}
	if p.check(token.EXTENDS) && !p.peek().NewlineBefore {
		p.advance()
		if !p.skipUnionType() {
			return false
		}
		p.expect(token.QUESTION)
		if p.panicMode || !p.skipType() {
			return false
		}
		p.expect(token.COLON)
		if p.panicMode {
			return false
		}
		return p.skipType()
	}
	return true
}

func (p *Parser) skipUnionType() bool {
	p.match(token.BIT_OR)
	if !p.skipIntersectionType() {
		return false
	}
	for p.match(token.BIT_OR) {
		if !p.skipIntersectionType() {
			return false
		}
	}
	return true
}

func (p *Parser) skipIntersectionType() bool {
	p.match(token.BIT_AND)
	if !p.skipTypeOperator() {
		return false
	}
	for p.match(token.BIT_AND) {
		if !p.skipTypeOperator() {
			return false
		}
	}
	return true
}

// typeOperators 前缀类型运算符
var typeOperators = map[string]bool{
	"keyof":    true,
	"readonly": true,
	"unique":   true,
	"infer":    true,
	"asserts":  true,
	"abstract": true,
}

func (p *Parser) skipTypeOperator() bool {
	tok := p.peek()
	if tok.Type == token.IDENT && typeOperators[tok.Literal] && p.startsType(p.peekNext()) {
		p.advance()
		return p.skipTypeOperator()
	}
	return p.skipPostfixType()
}

// startsType 判断 token 能否作为类型的开始（且与前一个 token 同行）
func (p *Parser) startsType(tok token.Token) bool {
	if tok.NewlineBefore {
		return false
	}
	switch tok.Type {
	case token.IDENT, token.LBRACE, token.LBRACKET, token.LPAREN, token.STRING, token.NUMBER,
		token.TEMPLATE, token.TYPEOF, token.VOID, token.NULL, token.THIS, token.TRUE, token.FALSE,
		token.NEW, token.LT, token.MINUS:
		return true
	}
	return false
}

// skipPostfixType 跳过 T[]、T[K]
func (p *Parser) skipPostfixType() bool {
	if !p.skipPrimaryType() {
		return false
	}
	for p.check(token.LBRACKET) && !p.peek().NewlineBefore {
		p.advance()
		if p.match(token.RBRACKET) {
			continue
		}
		if !p.skipType() {
			return false
		}
		p.expect(token.RBRACKET)
		if p.panicMode {
			return false
		}
	}
	return true
}

func (p *Parser) skipPrimaryType() bool {
	tok := p.peek()
	switch tok.Type {
	case token.IDENT:
		p.advance()
		// 限定名 A.B.C
		for p.check(token.DOT) {
			p.advance()
			if !p.check(token.IDENT) && !token.IsKeyword(p.peek().Type) {
				return false
			}
			p.advance()
		}
		if p.check(token.LT) && !p.skipTypeArgsInType() {
			return false
		}
		// 类型谓词 x is T
		if p.checkContextual("is") && !p.peek().NewlineBefore {
			p.advance()
			return p.skipType()
		}
		return true

	case token.VOID, token.NULL, token.TRUE, token.FALSE, token.STRING, token.NUMBER,
		token.BIGINT, token.TEMPLATE, token.CONST:
		p.advance()
		return true

	case token.THIS:
		p.advance()
		if p.checkContextual("is") && !p.peek().NewlineBefore {
			p.advance()
			return p.skipType()
		}
		return true

	case token.MINUS:
		// 负数字面量类型 -1
		p.advance()
		if !p.checkAny(token.NUMBER, token.BIGINT) {
			return false
		}
		p.advance()
		return true

	case token.TYPEOF:
		p.advance()
		if p.check(token.IMPORT) {
			return p.skipImportType()
		}
		if !p.checkAny(token.IDENT, token.THIS) {
			return false
		}
		p.advance()
		for p.match(token.DOT) {
			if !p.check(token.IDENT) && !token.IsKeyword(p.peek().Type) {
				return false
			}
			p.advance()
		}
		if p.check(token.LT) {
			return p.skipTypeArgsInType()
		}
		return true

	case token.IMPORT:
		return p.skipImportType()

	case token.LBRACE:
		return p.skipBalanced(token.LBRACE, token.RBRACE)

	case token.LBRACKET:
		return p.skipBalanced(token.LBRACKET, token.RBRACKET)

	case token.LPAREN:
		if p.isArrowAhead(p.current) {
			return p.skipFunctionType()
		}
		p.advance()
		if !p.skipType() {
			return false
		}
		p.expect(token.RPAREN)
		return !p.panicMode

	case token.LT:
		return p.skipFunctionType()

	case token.NEW:
		// 构造器类型 new (...) => T
		p.advance()
		return p.skipFunctionType()
	}
	return false
}

// skipImportType 跳过 import("m").T
func (p *Parser) skipImportType() bool {
	p.advance() // import
	if !p.skipBalanced(token.LPAREN, token.RPAREN) {
		return false
	}
	for p.match(token.DOT) {
		if !p.check(token.IDENT) {
			return false
		}
		p.advance()
	}
	if p.check(token.LT) {
		return p.skipTypeArgsInType()
	}
	return true
}

// skipFunctionType 跳过 [<T>](params) => R
func (p *Parser) skipFunctionType() bool {
	if p.check(token.LT) && !p.skipTypeArgsInType() {
		return false
	}
	if !p.skipBalanced(token.LPAREN, token.RPAREN) {
		return false
	}
	p.expect(token.ARROW)
	if p.panicMode {
		return false
	}
	return p.skipType()
}

// skipBalanced 从当前 token 跳过一对配对的括号
func (p *Parser) skipBalanced(open, close token.TokenType) bool {
	end := p.skipBalancedAt(p.current, open, close)
	if end < 0 {
		return false
	}
	p.current = end
	return true
}

// skipTypeArgsInType 类型上下文中的泛型实参 <...>，一定是类型
func (p *Parser) skipTypeArgsInType() bool {
	return p.skipBalanced(token.LT, token.GT)
}

// skipTypeParams 跳过泛型参数声明 <T extends U = V>
func (p *Parser) skipTypeParams() {
	if !p.skipBalanced(token.LT, token.GT) {
		p.error(i18n.T(i18n.ErrExpectedToken, "'>'"))
		p.panicMode = true
	}
}

// notInTypeArgs 出现在尖括号中即说明是比较表达式而不是类型实参
var notInTypeArgs = map[token.TokenType]bool{
	token.AND:       true,
	token.OR:        true,
	token.NULLISH:   true,
	token.SEMICOLON: true,
	token.ASSIGN:    true,
	token.PLUS:      true,
	token.STAR:      true,
	token.SLASH:     true,
	token.PERCENT:   true,
	token.EQ:        true,
	token.NE:        true,
	token.STRICT_EQ: true,
	token.STRICT_NE: true,
	token.LE:        true,
	token.GE:        true,
	token.NOT:       true,
	token.INCREMENT: true,
	token.DECREMENT: true,
}

// skipTypeArguments 表达式上下文中尝试跳过类型实参 f<T>(x)
//
// 失败时恢复位置并返回 false。
func (p *Parser) skipTypeArguments() bool {
	saved := p.current
	end := p.skipBalancedAt(p.current, token.LT, token.GT)
	if end < 0 {
		return false
	}
	for i := saved + 1; i < end-1; i++ {
		if notInTypeArgs[p.tokens[i].Type] {
			return false
		}
	}
	p.current = end
	return true
}

// parseOptionalTypeAnnotation 解析可选的 : T
func (p *Parser) parseOptionalTypeAnnotation() *ast.TypeNode {
	if !p.match(token.COLON) {
		return nil
	}
	return p.parseType()
}
