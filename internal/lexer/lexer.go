package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// 词法分析器负责将 JavaScript / TypeScript 源代码转换为 Token 序列。
//
// 实现要点：
// 1. ASCII 快速路径：大多数源代码字符是 ASCII，避免不必要的 UTF-8 解码
// 2. 每个 token 记录 NewlineBefore，供语法分析器实现自动分号插入
// 3. 正则字面量与除号的歧义由上一个有效 token 决定
// 4. 模板字符串在词法阶段拆分为文本片段和插值表达式源码
//
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	source   string        // 源代码字符串
	filename string        // 源文件名（用于错误报告）
	tokens   []token.Token // 已扫描的 Token 列表

	start       int // 当前 Token 的起始位置（字节偏移）
	current     int // 当前扫描位置（字节偏移）
	line        int // 当前行号（从1开始）
	column      int // 当前列号（从1开始）
	startLine   int // 当前 Token 起始行
	startColumn int // 当前 Token 起始列

	sawNewline bool // 上一个 token 之后是否出现过换行

	errors []Error // 词法错误列表
}

// Error 表示词法分析错误
type Error struct {
	Pos     token.Position // 错误位置
	Message string         // 错误信息
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ============================================================================
// 构造函数
// ============================================================================

// New 创建一个新的词法分析器
//
// 参数:
//   - source: 源代码字符串
//   - filename: 源文件名（用于错误报告）
func New(source, filename string) *Lexer {
	estimatedTokens := len(source) / 5
	if estimatedTokens < 16 {
		estimatedTokens = 16
	}

	return &Lexer{
		source:   source,
		filename: filename,
		tokens:   make([]token.Token, 0, estimatedTokens),
		line:     1,
		column:   1,
	}
}

// ============================================================================
// 公共方法
// ============================================================================

// ScanTokens 扫描所有 tokens
//
// 最后一个 Token 总是 EOF。
func (l *Lexer) ScanTokens() []token.Token {
	l.skipShebang()

	for !l.isAtEnd() {
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}

	l.start = l.current
	l.startLine = l.line
	l.startColumn = l.column
	l.tokens = append(l.tokens, token.Token{
		Type:          token.EOF,
		Pos:           l.currentPos(),
		NewlineBefore: true,
	})

	return l.tokens
}

// Errors 返回所有词法错误
func (l *Lexer) Errors() []Error {
	return l.errors
}

// HasErrors 检查是否有错误
func (l *Lexer) HasErrors() bool {
	return len(l.errors) > 0
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

// scanToken 扫描单个 token
func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {

	// ----------------------------------------------------------
	// 空白字符
	// ----------------------------------------------------------
	case ' ', '\t', '\r', '\v', '\f':
		l.skipWhitespace()

	case '\n':
		l.newLine()
		l.skipWhitespace()

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '{':
		l.addToken(token.LBRACE)
	case '}':
		l.addToken(token.RBRACE)
	case '[':
		l.addToken(token.LBRACKET)
	case ']':
		l.addToken(token.RBRACKET)
	case ',':
		l.addToken(token.COMMA)
	case ';':
		l.addToken(token.SEMICOLON)
	case ':':
		l.addToken(token.COLON)
	case '~':
		l.addToken(token.BIT_NOT)
	case '@':
		l.addToken(token.AT)

	case '.':
		// . 或 ... 或 .5
		if isDigit(l.peek()) {
			l.number()
		} else if l.peekByte() == '.' && l.peekNextByte() == '.' {
			l.advanceByte()
			l.advanceByte()
			l.addToken(token.ELLIPSIS)
		} else {
			l.addToken(token.DOT)
		}

	// ----------------------------------------------------------
	// 运算符
	// ----------------------------------------------------------
	case '=':
		// = == === =>
		if l.match('=') {
			if l.match('=') {
				l.addToken(token.STRICT_EQ)
			} else {
				l.addToken(token.EQ)
			}
		} else if l.match('>') {
			l.addToken(token.ARROW)
		} else {
			l.addToken(token.ASSIGN)
		}

	case '!':
		// ! != !==
		if l.match('=') {
			if l.match('=') {
				l.addToken(token.STRICT_NE)
			} else {
				l.addToken(token.NE)
			}
		} else {
			l.addToken(token.NOT)
		}

	case '+':
		if l.match('+') {
			l.addToken(token.INCREMENT)
		} else if l.match('=') {
			l.addToken(token.PLUS_ASSIGN)
		} else {
			l.addToken(token.PLUS)
		}

	case '-':
		if l.match('-') {
			l.addToken(token.DECREMENT)
		} else if l.match('=') {
			l.addToken(token.MINUS_ASSIGN)
		} else {
			l.addToken(token.MINUS)
		}

	case '*':
		// * *= ** **=
		if l.match('*') {
			if l.match('=') {
				l.addToken(token.STAR_STAR_ASSIGN)
			} else {
				l.addToken(token.STAR_STAR)
			}
		} else if l.match('=') {
			l.addToken(token.STAR_ASSIGN)
		} else {
			l.addToken(token.STAR)
		}

	case '/':
		// 注释、正则或除号
		if l.match('/') {
			l.lineComment()
		} else if l.match('*') {
			l.blockComment()
		} else if l.regexpAllowed() {
			l.regexp()
		} else if l.match('=') {
			l.addToken(token.SLASH_ASSIGN)
		} else {
			l.addToken(token.SLASH)
		}

	case '%':
		if l.match('=') {
			l.addToken(token.PERCENT_ASSIGN)
		} else {
			l.addToken(token.PERCENT)
		}

	case '<':
		// < <= << <<=
		if l.match('<') {
			if l.match('=') {
				l.addToken(token.SHL_ASSIGN)
			} else {
				l.addToken(token.SHL)
			}
		} else if l.match('=') {
			l.addToken(token.LE)
		} else {
			l.addToken(token.LT)
		}

	case '>':
		// > >= >> >>= >>> >>>=
		if l.match('>') {
			if l.match('>') {
				if l.match('=') {
					l.addToken(token.USHR_ASSIGN)
				} else {
					l.addToken(token.USHR)
				}
			} else if l.match('=') {
				l.addToken(token.SHR_ASSIGN)
			} else {
				l.addToken(token.SHR)
			}
		} else if l.match('=') {
			l.addToken(token.GE)
		} else {
			l.addToken(token.GT)
		}

	case '&':
		// & && &= &&=
		if l.match('&') {
			if l.match('=') {
				l.addToken(token.AND_ASSIGN)
			} else {
				l.addToken(token.AND)
			}
		} else if l.match('=') {
			l.addToken(token.BIT_AND_ASSIGN)
		} else {
			l.addToken(token.BIT_AND)
		}

	case '|':
		// | || |= ||=
		if l.match('|') {
			if l.match('=') {
				l.addToken(token.OR_ASSIGN)
			} else {
				l.addToken(token.OR)
			}
		} else if l.match('=') {
			l.addToken(token.BIT_OR_ASSIGN)
		} else {
			l.addToken(token.BIT_OR)
		}

	case '^':
		if l.match('=') {
			l.addToken(token.BIT_XOR_ASSIGN)
		} else {
			l.addToken(token.BIT_XOR)
		}

	case '?':
		// ? ?. ?? ??=
		// a?.5:b 中的 ?. 不是可选链
		if l.peekByte() == '.' && !isDigit(rune(l.peekNextByte())) {
			l.advanceByte()
			l.addToken(token.OPTIONAL_CHAIN)
		} else if l.match('?') {
			if l.match('=') {
				l.addToken(token.NULLISH_ASSIGN)
			} else {
				l.addToken(token.NULLISH)
			}
		} else {
			l.addToken(token.QUESTION)
		}

	// ----------------------------------------------------------
	// 字符串与模板
	// ----------------------------------------------------------
	case '"', '\'':
		l.string(ch)
	case '`':
		l.template()

	case '#':
		if isAlpha(l.peek()) {
			l.privateName()
		} else {
			l.error(i18n.T(i18n.ErrUnexpectedChar, ch))
		}

	// ----------------------------------------------------------
	// 默认：标识符、数字或非法字符
	// ----------------------------------------------------------
	default:
		if isDigit(ch) {
			l.number()
		} else if isAlpha(ch) {
			l.identifier()
		} else if ch == '\u00a0' || ch == '\ufeff' || unicode.IsSpace(ch) {
			if ch == '\u2028' || ch == '\u2029' {
				l.newLine()
			}
		} else {
			l.error(i18n.T(i18n.ErrUnexpectedChar, ch))
		}
	}
}

// ============================================================================
// 空白与注释
// ============================================================================

// skipShebang 跳过文件开头的 #! 行
func (l *Lexer) skipShebang() {
	if strings.HasPrefix(l.source, "#!") {
		for !l.isAtEnd() && l.peekByte() != '\n' {
			l.advance()
		}
	}
}

// skipWhitespace 批量跳过连续的空白字符
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peekByte() {
		case ' ', '\t', '\r', '\v', '\f':
			l.advanceByte()
		case '\n':
			l.advanceByte()
			l.newLine()
		default:
			return
		}
	}
}

// lineComment 处理单行注释 //
func (l *Lexer) lineComment() {
	for !l.isAtEnd() && l.peekByte() != '\n' {
		l.advance()
	}
}

// blockComment 处理多行注释 /* */，不支持嵌套
//
// 跨行的块注释对 ASI 而言等同于换行。
func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peekByte() == '*' && l.peekNextByte() == '/' {
			l.advanceByte()
			l.advanceByte()
			return
		}
		if l.peekByte() == '\n' {
			l.advanceByte()
			l.newLine()
			continue
		}
		l.advance()
	}
	l.error(i18n.T(i18n.ErrUnterminatedComment))
}

// ============================================================================
// 字符串处理
// ============================================================================

// string 处理字符串字面量 '...' 或 "..."
//
// 快速路径：不含转义字符时直接切片。
func (l *Lexer) string(quote rune) {
	startOffset := l.current

	scanPos := l.current
	hasEscape := false
	for scanPos < len(l.source) {
		b := l.source[scanPos]
		if b == '\\' {
			hasEscape = true
			break
		}
		if b == byte(quote) || b == '\n' {
			break
		}
		scanPos++
	}

	if !hasEscape {
		for l.current < scanPos {
			l.advance()
		}
		if l.isAtEnd() || l.peekByte() == '\n' {
			l.error(i18n.T(i18n.ErrUnterminatedString))
			return
		}
		value := l.source[startOffset:l.current]
		l.advance()
		l.addTokenWithValue(token.STRING, value)
		return
	}

	var sb strings.Builder
	sb.Grow(scanPos - startOffset + 16)

	for !l.isAtEnd() {
		ch := l.peek()
		if ch == quote {
			break
		}
		if ch == '\n' {
			l.error(i18n.T(i18n.ErrUnterminatedString))
			return
		}
		if ch == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
			l.escape(&sb)
			continue
		}
		sb.WriteRune(l.advance())
	}

	if l.isAtEnd() {
		l.error(i18n.T(i18n.ErrUnterminatedString))
		return
	}

	l.advance()
	l.addTokenWithValue(token.STRING, sb.String())
}

// escape 处理反斜杠之后的转义序列，结果写入 sb
func (l *Lexer) escape(sb *strings.Builder) {
	escaped := l.advance()
	switch escaped {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\r':
		// 行继续：\ 后跟 CRLF
		l.match('\n')
		l.newLine()
	case '\n':
		l.newLine()
	case 'x':
		if code, ok := l.hexEscape(2); ok {
			sb.WriteRune(code)
		}
	case 'u':
		if l.match('{') {
			start := l.current
			for !l.isAtEnd() && isHexDigit(l.peek()) {
				l.advance()
			}
			digits := l.source[start:l.current]
			if !l.match('}') || digits == "" {
				l.error(i18n.T(i18n.ErrInvalidEscape, "\\u{"+digits))
				return
			}
			code, err := strconv.ParseUint(digits, 16, 32)
			if err != nil || code > unicode.MaxRune {
				l.error(i18n.T(i18n.ErrInvalidEscape, "\\u{"+digits+"}"))
				return
			}
			sb.WriteRune(rune(code))
			return
		}
		code, ok := l.hexEscape(4)
		if !ok {
			return
		}
		// 代理对 \uD83D\uDE00 合成一个码点
		if code >= 0xD800 && code < 0xDC00 {
			if low, ok := l.lowSurrogate(); ok {
				code = utf16.DecodeRune(code, low)
			}
		}
		sb.WriteRune(code)
	default:
		sb.WriteRune(escaped)
	}
}

// hexEscape 读取固定位数的十六进制转义
func (l *Lexer) hexEscape(digits int) (rune, bool) {
	start := l.current
	for i := 0; i < digits; i++ {
		if !isHexDigit(l.peek()) {
			l.error(i18n.T(i18n.ErrInvalidEscape, l.source[start-2:l.current]))
			return 0, false
		}
		l.advance()
	}
	code, _ := strconv.ParseUint(l.source[start:l.current], 16, 32)
	return rune(code), true
}

// lowSurrogate 读取紧跟高代理项的 \uDC00-\uDFFF，不匹配时不消耗输入
//
// 单独出现的代理项没有对应的 Unicode 标量值，写入时变为 U+FFFD。
func (l *Lexer) lowSurrogate() (rune, bool) {
	rest := l.source[l.current:]
	if len(rest) < 6 || rest[0] != '\\' || rest[1] != 'u' {
		return 0, false
	}
	code, err := strconv.ParseUint(rest[2:6], 16, 32)
	if err != nil || code < 0xDC00 || code > 0xDFFF {
		return 0, false
	}
	for i := 0; i < 6; i++ {
		l.advanceByte()
	}
	return rune(code), true
}

// template 处理模板字符串 `text ${expr} text`
//
// 插值表达式只记录源码和位置，嵌套的大括号、字符串和模板会被正确跳过。
func (l *Lexer) template() {
	tpl := &token.Template{}
	var sb strings.Builder

	for {
		if l.isAtEnd() {
			l.error(i18n.T(i18n.ErrUnterminatedTemplate))
			return
		}

		ch := l.peek()
		switch {
		case ch == '`':
			l.advance()
			tpl.Quasis = append(tpl.Quasis, sb.String())
			l.addTokenWithValue(token.TEMPLATE, tpl)
			return

		case ch == '\\':
			l.advance()
			if l.isAtEnd() {
				continue
			}
			l.escape(&sb)

		case ch == '$' && l.peekNextByte() == '{':
			l.advanceByte()
			l.advanceByte()
			tpl.Quasis = append(tpl.Quasis, sb.String())
			sb.Reset()

			pos := token.Position{
				Filename: l.filename,
				Line:     l.line,
				Column:   l.column,
				Offset:   l.current,
			}
			exprStart := l.current
			if !l.skipInterpolation() {
				l.error(i18n.T(i18n.ErrUnterminatedTemplate))
				return
			}
			tpl.Exprs = append(tpl.Exprs, l.source[exprStart:l.current-1])
			tpl.ExprPos = append(tpl.ExprPos, pos)

		case ch == '\n':
			l.advance()
			l.newLine()
			sb.WriteByte('\n')

		default:
			sb.WriteRune(l.advance())
		}
	}
}

// skipInterpolation 跳过 ${ 之后直到匹配 } 的源码（含匹配的 }）
func (l *Lexer) skipInterpolation() bool {
	depth := 1
	for !l.isAtEnd() {
		ch := l.advance()
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return true
			}
		case '\n':
			l.newLine()
		case '"', '\'':
			for !l.isAtEnd() && l.peek() != ch && l.peekByte() != '\n' {
				if l.advance() == '\\' {
					l.advance()
				}
			}
			l.advance()
		case '`':
			// 嵌套模板：简单跳过到匹配的反引号
			for !l.isAtEnd() && l.peek() != '`' {
				c := l.advance()
				if c == '\\' {
					l.advance()
				} else if c == '\n' {
					l.newLine()
				}
			}
			l.advance()
		}
	}
	return false
}

// privateName 处理私有名称 #name
func (l *Lexer) privateName() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(token.PRIVATE_NAME)
}

// ============================================================================
// 正则字面量
// ============================================================================

// regexpAllowed 根据上一个 token 判断 / 是否开始一个正则字面量
func (l *Lexer) regexpAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}
	switch l.tokens[len(l.tokens)-1].Type {
	case token.IDENT, token.PRIVATE_NAME, token.NUMBER, token.BIGINT, token.STRING,
		token.TEMPLATE, token.REGEXP, token.RPAREN, token.RBRACKET, token.RBRACE,
		token.THIS, token.SUPER, token.NULL, token.TRUE, token.FALSE,
		token.INCREMENT, token.DECREMENT:
		return false
	}
	return true
}

// regexp 处理正则字面量 /body/flags
//
// Value 为 [2]string{body, flags}。
func (l *Lexer) regexp() {
	bodyStart := l.current
	inClass := false
	for {
		if l.isAtEnd() || l.peekByte() == '\n' {
			l.error(i18n.T(i18n.ErrUnterminatedRegExp))
			return
		}
		ch := l.advance()
		if ch == '\\' {
			l.advance()
			continue
		}
		if ch == '[' {
			inClass = true
		} else if ch == ']' {
			inClass = false
		} else if ch == '/' && !inClass {
			break
		}
	}
	body := l.source[bodyStart : l.current-1]
	flagStart := l.current
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addTokenWithValue(token.REGEXP, [2]string{body, l.source[flagStart:l.current]})
}

// ============================================================================
// 数字处理
// ============================================================================

// number 处理数字字面量
//
// 支持以下格式：
//   - 十进制：123 1_000 .5 3.14 1e10 2E-3
//   - 十六进制 0x1F、八进制 0o17、二进制 0b1010
//   - 大整数后缀：10n 0xFFn
//
// NUMBER 的 Value 为 float64，BIGINT 的 Value 为去掉分隔符和后缀的数字文本。
func (l *Lexer) number() {
	first := l.source[l.start]

	if first == '0' {
		var base int
		switch l.peekByte() {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			l.advanceByte()
			l.radixNumber(base)
			return
		}
	}

	if first != '.' {
		l.digits(isDigit)
		if l.peekByte() == '.' {
			l.advanceByte()
			l.digits(isDigit)
		}
	} else {
		l.digits(isDigit)
	}

	isFloat := strings.ContainsRune(l.source[l.start:l.current], '.')

	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		isFloat = true
		l.advanceByte()
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advanceByte()
		}
		if !isDigit(l.peek()) {
			l.error(i18n.T(i18n.ErrInvalidExponent))
			return
		}
		l.digits(isDigit)
	}

	if !isFloat && l.match('n') {
		l.finishBigInt(l.source[l.start : l.current-1])
		return
	}

	if isAlpha(l.peek()) {
		l.error(i18n.T(i18n.ErrIdentAfterNumber))
		return
	}

	literal := l.source[l.start:l.current]
	value, err := strconv.ParseFloat(strings.ReplaceAll(literal, "_", ""), 64)
	if err != nil && !isRangeErr(err) {
		l.error(i18n.T(i18n.ErrInvalidNumber, literal))
		return
	}
	l.addTokenWithValue(token.NUMBER, value)
}

// radixNumber 处理 0x / 0o / 0b 前缀的整数
func (l *Lexer) radixNumber(base int) {
	digitStart := l.current
	l.digits(func(ch rune) bool { return digitVal(ch) < base })
	digits := strings.ReplaceAll(l.source[digitStart:l.current], "_", "")

	if digits == "" {
		l.error(i18n.T(i18n.ErrInvalidNumber, l.source[l.start:l.current]))
		return
	}

	if l.match('n') {
		l.finishBigInt(l.source[l.start : l.current-1])
		return
	}

	if isAlphaNumeric(l.peek()) {
		l.error(i18n.T(i18n.ErrIdentAfterNumber))
		return
	}

	// 超出 uint64 时逐位累加为 float64
	var value float64
	if u, err := strconv.ParseUint(digits, base, 64); err == nil {
		value = float64(u)
	} else {
		for _, ch := range digits {
			value = value*float64(base) + float64(digitVal(ch))
		}
	}
	l.addTokenWithValue(token.NUMBER, value)
}

// finishBigInt 生成 BIGINT token
func (l *Lexer) finishBigInt(digits string) {
	l.addTokenWithValue(token.BIGINT, strings.ReplaceAll(digits, "_", ""))
}

// digits 读取满足 accept 的数字序列，允许 _ 分隔符（不能出现在开头）
func (l *Lexer) digits(accept func(rune) bool) {
	for {
		ch := l.peek()
		if accept(ch) {
			l.advance()
			continue
		}
		if ch == '_' && l.current > l.start && accept(rune(l.peekNextByte())) {
			l.advanceByte()
			continue
		}
		return
	}
}

func isRangeErr(err error) bool {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err == strconv.ErrRange
	}
	return false
}

// ============================================================================
// 标识符处理
// ============================================================================

// identifier 处理标识符和关键字
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(token.LookupIdent(l.source[l.start:l.current]))
}

// ============================================================================
// 底层字符操作
// ============================================================================

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance 前进一个字符并返回它（支持 UTF-8，ASCII 走快速路径）
func (l *Lexer) advance() rune {
	if l.current >= len(l.source) {
		return 0
	}

	b := l.source[l.current]
	if b < utf8.RuneSelf {
		l.current++
		l.column++
		return rune(b)
	}

	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	l.column++
	return r
}

// advanceByte 前进一个字节（调用者保证当前字符是 ASCII）
func (l *Lexer) advanceByte() {
	l.current++
	l.column++
}

func (l *Lexer) peek() rune {
	if l.current >= len(l.source) {
		return 0
	}
	b := l.source[l.current]
	if b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) peekByte() byte {
	if l.current >= len(l.source) {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNextByte() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// match 如果当前字符匹配则前进
func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

// ============================================================================
// 位置追踪
// ============================================================================

func (l *Lexer) newLine() {
	l.line++
	l.column = 1
	l.sawNewline = true
}

// currentPos 获取当前 token 的起始位置
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.startLine,
		Column:   l.startColumn,
		Offset:   l.start,
	}
}

// ============================================================================
// Token 生成
// ============================================================================

func (l *Lexer) addToken(tokenType token.TokenType) {
	l.addTokenWithValue(tokenType, nil)
}

func (l *Lexer) addTokenWithValue(tokenType token.TokenType, value interface{}) {
	l.tokens = append(l.tokens, token.Token{
		Type:          tokenType,
		Literal:       l.source[l.start:l.current],
		Value:         value,
		Pos:           l.currentPos(),
		NewlineBefore: l.sawNewline,
	})
	l.sawNewline = false
}

// ============================================================================
// 错误处理
// ============================================================================

// error 记录一个词法错误并生成 ILLEGAL token，扫描继续进行
func (l *Lexer) error(message string) {
	l.errors = append(l.errors, Error{
		Pos:     l.currentPos(),
		Message: message,
	})
	l.addToken(token.ILLEGAL)
}

// ============================================================================
// 字符分类函数
// ============================================================================

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// digitVal 返回数字字符的值，非数字返回一个大于任何进制的值
func digitVal(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return math.MaxInt8
}

// isAlpha 判断是否可以作为标识符开头（字母、_、$ 或 Unicode 字母）
func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		ch == '_' || ch == '$' ||
		(ch >= utf8.RuneSelf && unicode.IsLetter(ch))
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}
