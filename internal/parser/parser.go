package parser

import (
	"fmt"

	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/lexer"
	"github.com/tangzhangming/tsrs/internal/token"
)

// Parser 语法分析器
type Parser struct {
	lexer     *lexer.Lexer
	source    string // 完整源码，类型标注按偏移量切片
	tokens    []token.Token
	current   int
	errors    []Error
	filename  string
	panicMode bool // 错误恢复模式标志，用于避免级联报错
	exprDepth int  // 表达式解析深度，防止栈溢出
	noIn      bool // for 初始化部分不允许 in 运算符
	jsx       bool // .jsx / .tsx 文件中 < 开头的表达式按 JSX 报错
}

// maxExprDepth 最大表达式嵌套深度，防止栈溢出
const maxExprDepth = 200

// Error 语法分析错误
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// New 创建一个新的语法分析器
//
// 词法错误会合并到语法错误列表中。
func New(source, filename string) *Parser {
	l := lexer.New(source, filename)
	tokens := l.ScanTokens()

	p := &Parser{
		lexer:    l,
		source:   source,
		tokens:   tokens,
		current:  0,
		filename: filename,
		jsx:      hasJSXExt(filename),
	}
	for _, e := range l.Errors() {
		p.errors = append(p.errors, Error{Pos: e.Pos, Message: e.Message})
	}
	return p
}

func hasJSXExt(filename string) bool {
	n := len(filename)
	return n > 4 && (filename[n-4:] == ".tsx" || filename[n-4:] == ".jsx")
}

// Parse 解析源文件
func (p *Parser) Parse() *ast.Module {
	module := &ast.Module{
		Filename: p.filename,
	}

	for !p.isAtEnd() {
		p.panicMode = false // 每次迭代重置 panicMode

		item := p.parseModuleItem()
		if p.panicMode {
			p.synchronize()
			continue
		}
		if item != nil {
			module.Body = append(module.Body, item)
		}
	}
	module.EOF = p.peek()

	return module
}

// Errors 返回所有语法错误（含词法错误）
func (p *Parser) Errors() []Error {
	return p.errors
}

// HasErrors 检查是否有错误
func (p *Parser) HasErrors() bool {
	return len(p.errors) > 0
}

// ============================================================================
// 辅助方法
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() token.Token {
	return p.lookAhead(1)
}

func (p *Parser) lookAhead(n int) token.Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // 返回EOF
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) checkAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// checkContextual 检查当前 token 是否为指定的上下文关键字（如 of、as、type）
func (p *Parser) checkContextual(word string) bool {
	tok := p.peek()
	return tok.Type == token.IDENT && tok.Literal == word
}

func (p *Parser) matchContextual(word string) bool {
	if p.checkContextual(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(message)
	p.panicMode = true
	return token.Token{} // 返回零值，调用方应检查 panicMode
}

// expect 消费指定 token，失败时报告 "expected 'x'"
func (p *Parser) expect(t token.TokenType) token.Token {
	return p.consume(t, i18n.T(i18n.ErrExpectedToken, "'"+t.String()+"'"))
}

// consumeSemicolon 消费语句结尾的分号，支持自动分号插入
//
// 以下情况允许省略分号：遇到 }、文件结束、或下一个 token 前有换行。
func (p *Parser) consumeSemicolon() {
	if p.match(token.SEMICOLON) {
		return
	}
	if p.check(token.RBRACE) || p.isAtEnd() || p.peek().NewlineBefore {
		return
	}
	p.error(i18n.T(i18n.ErrExpectedToken, "';'"))
	p.panicMode = true
}

// canInsertSemicolon 检查此处是否可以结束一个受限产生式（return、break 等）
func (p *Parser) canInsertSemicolon() bool {
	return p.check(token.SEMICOLON) || p.check(token.RBRACE) || p.isAtEnd() || p.peek().NewlineBefore
}

// maxParseErrors 最大错误数量限制，防止错误爆炸
const maxParseErrors = 50

func (p *Parser) error(message string) {
	// panicMode 下跳过后续错误，避免级联报错
	if p.panicMode {
		return
	}

	pos := p.peek().Pos

	// ILLEGAL token 已由词法分析器报告
	if p.peek().Type == token.ILLEGAL {
		return
	}

	// 避免在同一位置重复报错
	if len(p.errors) > 0 {
		last := p.errors[len(p.errors)-1]
		if last.Pos.Line == pos.Line && last.Pos.Column == pos.Column {
			return
		}
	}

	// 检查是否超过最大错误数量
	if len(p.errors) >= maxParseErrors {
		p.errors = append(p.errors, Error{
			Pos:     pos,
			Message: i18n.T(i18n.ErrTooManyErrors),
		})
		p.panicMode = true
		return
	}

	p.errors = append(p.errors, Error{
		Pos:     pos,
		Message: message,
	})
}

func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		// 分号后是安全点
		if p.previous().Type == token.SEMICOLON {
			return
		}
		// 右大括号后通常是安全点
		if p.previous().Type == token.RBRACE {
			return
		}

		// 新语句/声明的开始是安全的同步点
		switch p.peek().Type {
		case token.CLASS, token.FUNCTION, token.VAR, token.LET, token.CONST,
			token.IF, token.FOR, token.WHILE, token.DO, token.SWITCH,
			token.RETURN, token.TRY, token.THROW, token.BREAK, token.CONTINUE,
			token.IMPORT, token.EXPORT, token.ENUM, token.AT:
			return
		}

		p.advance()
	}
}

// ============================================================================
// 子解析器（模板字符串插值）
// ============================================================================

// parseEmbedded 解析模板插值中的表达式源码
//
// 子解析器的 token 位置被重新映射到外层文件，错误合并到当前解析器。
func (p *Parser) parseEmbedded(src string, base token.Position) ast.Expression {
	l := lexer.New(src, p.filename)
	tokens := l.ScanTokens()
	for i := range tokens {
		tokens[i].Pos = shiftPos(tokens[i].Pos, base)
	}

	sub := &Parser{
		lexer:    l,
		source:   p.source,
		tokens:   tokens,
		filename: p.filename,
		jsx:      p.jsx,
	}
	for _, e := range l.Errors() {
		sub.errors = append(sub.errors, Error{Pos: shiftPos(e.Pos, base), Message: e.Message})
	}

	var expr ast.Expression
	if sub.isAtEnd() {
		sub.error(i18n.T(i18n.ErrExpectedExpression))
	} else {
		expr = sub.parseExpression()
		if !sub.isAtEnd() && !sub.panicMode {
			sub.error(i18n.T(i18n.ErrUnexpectedToken, sub.peek().Literal))
		}
	}

	p.errors = append(p.errors, sub.errors...)
	if sub.HasErrors() {
		return nil
	}
	return expr
}

func shiftPos(pos, base token.Position) token.Position {
	if pos.Line == 1 {
		pos.Column += base.Column - 1
	}
	pos.Line += base.Line - 1
	pos.Offset += base.Offset
	return pos
}
