package rsparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 词法单元
// ============================================================================

type kind int

const (
	tEOF kind = iota
	tIdent
	tInt
	tFloat
	tString
	tPunct
)

type tok struct {
	kind kind
	text string // 标识符、数字、标点的原文；字符串为反转义后的内容
	pos  token.Position
}

func (t tok) is(text string) bool {
	return (t.kind == tPunct || t.kind == tIdent) && t.text == text
}

// 按长度降序，最长匹配
var puncts = []string{
	"<<=", ">>=", "..=",
	"::", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "..", "->", "=>",
	";", ",", ".", "(", ")", "{", "}", "[", "]", "#", "!", "=", "<", ">",
	"+", "-", "*", "/", "%", "&", "|", "^", ":",
}

// Error Rust 源码解析错误
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

type lexer struct {
	src      string
	filename string
	offset   int
	line     int
	col      int
}

func newLexer(src, filename string) *lexer {
	return &lexer{src: src, filename: filename, line: 1, col: 1}
}

func (l *lexer) pos() token.Position {
	return token.Position{Filename: l.filename, Line: l.line, Column: l.col, Offset: l.offset}
}

func (l *lexer) peekByte(n int) byte {
	if l.offset+n < len(l.src) {
		return l.src[l.offset+n]
	}
	return 0
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.offset < len(l.src); i++ {
		if l.src[l.offset] == '\n' {
			l.line++
			l.col = 1
		} else if l.src[l.offset]&0xC0 != 0x80 {
			l.col++
		}
		l.offset++
	}
}

// skipSpace 跳过空白和注释
func (l *lexer) skipSpace() error {
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.advance(1)
		case c == '/' && l.peekByte(1) == '/':
			for l.offset < len(l.src) && l.src[l.offset] != '\n' {
				l.advance(1)
			}
		case c == '/' && l.peekByte(1) == '*':
			start := l.pos()
			l.advance(2)
			for {
				if l.offset >= len(l.src) {
					return Error{start, "unterminated block comment"}
				}
				if l.src[l.offset] == '*' && l.peekByte(1) == '/' {
					l.advance(2)
					break
				}
				l.advance(1)
			}
		default:
			return nil
		}
	}
	return nil
}

// tokenize 把源码切分为 token，末尾附 EOF
func (l *lexer) tokenize() ([]tok, error) {
	var toks []tok
	for {
		if err := l.skipSpace(); err != nil {
			return nil, err
		}
		start := l.pos()
		if l.offset >= len(l.src) {
			return append(toks, tok{kind: tEOF, pos: start}), nil
		}

		c := l.src[l.offset]
		switch {
		case isIdentStart(c):
			end := l.offset
			for end < len(l.src) && isIdentPart(l.src[end]) {
				end++
			}
			toks = append(toks, tok{kind: tIdent, text: l.src[l.offset:end], pos: start})
			l.advance(end - l.offset)

		case c >= '0' && c <= '9':
			t := l.number()
			t.pos = start
			toks = append(toks, t)

		case c == '"':
			s, err := l.str()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok{kind: tString, text: s, pos: start})

		default:
			matched := false
			for _, p := range puncts {
				if strings.HasPrefix(l.src[l.offset:], p) {
					toks = append(toks, tok{kind: tPunct, text: p, pos: start})
					l.advance(len(p))
					matched = true
					break
				}
			}
			if !matched {
				r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
				return nil, Error{start, fmt.Sprintf("unexpected character '%c'", r)}
			}
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// number 整数或浮点数；0..10 中的点不属于数字
func (l *lexer) number() tok {
	start := l.offset
	end := start
	for end < len(l.src) && (isDigit(l.src[end]) || l.src[end] == '_') {
		end++
	}
	float := false
	if end+1 < len(l.src) && l.src[end] == '.' && isDigit(l.src[end+1]) {
		float = true
		end++
		for end < len(l.src) && (isDigit(l.src[end]) || l.src[end] == '_') {
			end++
		}
	}
	if end < len(l.src) && (l.src[end] == 'e' || l.src[end] == 'E') {
		next := end + 1
		if next < len(l.src) && (l.src[next] == '+' || l.src[next] == '-') {
			next++
		}
		if next < len(l.src) && isDigit(l.src[next]) {
			float = true
			end = next
			for end < len(l.src) && isDigit(l.src[end]) {
				end++
			}
		}
	}
	text := l.src[start:end]
	l.advance(end - start)
	if float {
		return tok{kind: tFloat, text: text}
	}
	return tok{kind: tInt, text: text}
}

// str 读取字符串字面量并反转义
func (l *lexer) str() (string, error) {
	start := l.pos()
	l.advance(1)
	var sb strings.Builder
	for {
		if l.offset >= len(l.src) {
			return "", Error{start, "unterminated string literal"}
		}
		c := l.src[l.offset]
		if c == '"' {
			l.advance(1)
			return sb.String(), nil
		}
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(l.src[l.offset:])
			sb.WriteRune(r)
			l.advance(size)
			continue
		}

		escPos := l.pos()
		l.advance(1)
		switch l.peekByte(0) {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case 'x':
			if l.offset+3 > len(l.src) {
				return "", Error{escPos, "invalid escape sequence"}
			}
			v, err := strconv.ParseUint(l.src[l.offset+1:l.offset+3], 16, 8)
			if err != nil || v > 0x7f {
				return "", Error{escPos, "invalid escape sequence"}
			}
			sb.WriteByte(byte(v))
			l.advance(2)
		case 'u':
			end := strings.IndexByte(l.src[l.offset:], '}')
			if l.peekByte(1) != '{' || end < 0 {
				return "", Error{escPos, "invalid unicode escape"}
			}
			v, err := strconv.ParseUint(l.src[l.offset+2:l.offset+end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", Error{escPos, "invalid unicode escape"}
			}
			sb.WriteRune(rune(v))
			l.advance(end)
		case '\n':
			// 续行：跳过换行和下一行开头的空白
			for l.offset+1 < len(l.src) && unicode.IsSpace(rune(l.src[l.offset+1])) {
				l.advance(1)
			}
		default:
			return "", Error{escPos, "invalid escape sequence"}
		}
		l.advance(1)
	}
}
