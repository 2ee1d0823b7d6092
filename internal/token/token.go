package token

import "fmt"

// ============================================================================
// Token 类型定义
// ============================================================================
//
// TokenType 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（ILLEGAL, EOF）
// 2. 字面量（标识符、数字、字符串、模板、正则）
// 3. 运算符（算术、比较、逻辑、位运算、赋值）
// 4. 分隔符（括号、逗号、分号等）
// 5. 保留关键字
//
// 上下文关键字（of、as、type、async 等）在词法阶段仍是 IDENT，
// 由语法分析器根据字面量判断。
//
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	ILLEGAL TokenType = iota // 非法字符
	EOF                      // 文件结束

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	IDENT        // 标识符
	PRIVATE_NAME // #name
	NUMBER       // 数字字面量
	BIGINT       // 大整数字面量 10n
	STRING       // 字符串字面量
	TEMPLATE     // 模板字符串 `...${}...`
	REGEXP       // 正则字面量 /.../flags

	// ----------------------------------------------------------
	// 算术运算符
	// ----------------------------------------------------------
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	STAR_STAR // **
	INCREMENT // ++
	DECREMENT // --

	// ----------------------------------------------------------
	// 赋值运算符
	// ----------------------------------------------------------
	ASSIGN           // =
	PLUS_ASSIGN      // +=
	MINUS_ASSIGN     // -=
	STAR_ASSIGN      // *=
	SLASH_ASSIGN     // /=
	PERCENT_ASSIGN   // %=
	STAR_STAR_ASSIGN // **=
	SHL_ASSIGN       // <<=
	SHR_ASSIGN       // >>=
	USHR_ASSIGN      // >>>=
	BIT_AND_ASSIGN   // &=
	BIT_OR_ASSIGN    // |=
	BIT_XOR_ASSIGN   // ^=
	AND_ASSIGN       // &&=
	OR_ASSIGN        // ||=
	NULLISH_ASSIGN   // ??=

	// ----------------------------------------------------------
	// 比较运算符
	// ----------------------------------------------------------
	EQ        // ==
	NE        // !=
	STRICT_EQ // ===
	STRICT_NE // !==
	LT        // <
	LE        // <=
	GT        // >
	GE        // >=

	// ----------------------------------------------------------
	// 逻辑运算符
	// ----------------------------------------------------------
	AND     // &&
	OR      // ||
	NOT     // !
	NULLISH // ??

	// ----------------------------------------------------------
	// 位运算符
	// ----------------------------------------------------------
	BIT_AND // &
	BIT_OR  // |
	BIT_XOR // ^
	BIT_NOT // ~
	SHL     // <<
	SHR     // >>
	USHR    // >>>

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LPAREN         // (
	RPAREN         // )
	LBRACE         // {
	RBRACE         // }
	LBRACKET       // [
	RBRACKET       // ]
	COMMA          // ,
	DOT            // .
	ELLIPSIS       // ...
	SEMICOLON      // ;
	COLON          // :
	QUESTION       // ?
	OPTIONAL_CHAIN // ?.
	ARROW          // =>
	AT             // @

	// ----------------------------------------------------------
	// 关键字
	// ----------------------------------------------------------
	keywordBeg

	VAR        // var
	LET        // let
	CONST      // const
	FUNCTION   // function
	CLASS      // class
	EXTENDS    // extends
	RETURN     // return
	IF         // if
	ELSE       // else
	WHILE      // while
	DO         // do
	FOR        // for
	IN         // in
	BREAK      // break
	CONTINUE   // continue
	SWITCH     // switch
	CASE       // case
	DEFAULT    // default
	THROW      // throw
	TRY        // try
	CATCH      // catch
	FINALLY    // finally
	NEW        // new
	DELETE     // delete
	TYPEOF     // typeof
	VOID       // void
	INSTANCEOF // instanceof
	THIS       // this
	SUPER      // super
	NULL       // null
	TRUE       // true
	FALSE      // false
	IMPORT     // import
	EXPORT     // export
	WITH       // with
	DEBUGGER   // debugger
	YIELD      // yield
	AWAIT      // await
	ENUM       // enum

	keywordEnd
)

// ============================================================================
// Token 名称映射
// ============================================================================

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:        "IDENT",
	PRIVATE_NAME: "PRIVATE_NAME",
	NUMBER:       "NUMBER",
	BIGINT:       "BIGINT",
	STRING:       "STRING",
	TEMPLATE:     "TEMPLATE",
	REGEXP:       "REGEXP",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	STAR_STAR: "**",
	INCREMENT: "++",
	DECREMENT: "--",

	ASSIGN:           "=",
	PLUS_ASSIGN:      "+=",
	MINUS_ASSIGN:     "-=",
	STAR_ASSIGN:      "*=",
	SLASH_ASSIGN:     "/=",
	PERCENT_ASSIGN:   "%=",
	STAR_STAR_ASSIGN: "**=",
	SHL_ASSIGN:       "<<=",
	SHR_ASSIGN:       ">>=",
	USHR_ASSIGN:      ">>>=",
	BIT_AND_ASSIGN:   "&=",
	BIT_OR_ASSIGN:    "|=",
	BIT_XOR_ASSIGN:   "^=",
	AND_ASSIGN:       "&&=",
	OR_ASSIGN:        "||=",
	NULLISH_ASSIGN:   "??=",

	EQ:        "==",
	NE:        "!=",
	STRICT_EQ: "===",
	STRICT_NE: "!==",
	LT:        "<",
	LE:        "<=",
	GT:        ">",
	GE:        ">=",

	AND:     "&&",
	OR:      "||",
	NOT:     "!",
	NULLISH: "??",

	BIT_AND: "&",
	BIT_OR:  "|",
	BIT_XOR: "^",
	BIT_NOT: "~",
	SHL:     "<<",
	SHR:     ">>",
	USHR:    ">>>",

	LPAREN:         "(",
	RPAREN:         ")",
	LBRACE:         "{",
	RBRACE:         "}",
	LBRACKET:       "[",
	RBRACKET:       "]",
	COMMA:          ",",
	DOT:            ".",
	ELLIPSIS:       "...",
	SEMICOLON:      ";",
	COLON:          ":",
	QUESTION:       "?",
	OPTIONAL_CHAIN: "?.",
	ARROW:          "=>",
	AT:             "@",

	VAR:        "var",
	LET:        "let",
	CONST:      "const",
	FUNCTION:   "function",
	CLASS:      "class",
	EXTENDS:    "extends",
	RETURN:     "return",
	IF:         "if",
	ELSE:       "else",
	WHILE:      "while",
	DO:         "do",
	FOR:        "for",
	IN:         "in",
	BREAK:      "break",
	CONTINUE:   "continue",
	SWITCH:     "switch",
	CASE:       "case",
	DEFAULT:    "default",
	THROW:      "throw",
	TRY:        "try",
	CATCH:      "catch",
	FINALLY:    "finally",
	NEW:        "new",
	DELETE:     "delete",
	TYPEOF:     "typeof",
	VOID:       "void",
	INSTANCEOF: "instanceof",
	THIS:       "this",
	SUPER:      "super",
	NULL:       "null",
	TRUE:       "true",
	FALSE:      "false",
	IMPORT:     "import",
	EXPORT:     "export",
	WITH:       "with",
	DEBUGGER:   "debugger",
	YIELD:      "yield",
	AWAIT:      "await",
	ENUM:       "enum",
}

// keywords 保留关键字表
var keywords map[string]TokenType

func init() {
	keywords = make(map[string]TokenType, keywordEnd-keywordBeg)
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		keywords[tokenNames[t]] = t
	}
}

// LookupIdent 查找标识符是否为关键字
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword 检查是否为关键字
func IsKeyword(t TokenType) bool {
	return t > keywordBeg && t < keywordEnd
}

// IsAssign 检查是否为赋值运算符（含复合赋值）
func IsAssign(t TokenType) bool {
	return t >= ASSIGN && t <= NULLISH_ASSIGN
}

// String 返回 TokenType 的字符串表示
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Filename string // 文件名
	Line     int    // 行号 (从1开始)
	Column   int    // 列号 (从1开始)
	Offset   int    // 字节偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "filename:line:column"
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid 检查位置是否有效
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元
//
// NewlineBefore 记录该 token 与前一个 token 之间是否有换行，
// 语法分析器据此实现自动分号插入（ASI）。
type Token struct {
	Type          TokenType   // Token 类型
	Literal       string      // 原始字面量
	Value         interface{} // 解析后的值 (数字、字符串、模板)
	Pos           Position    // 位置信息
	NewlineBefore bool        // 前面是否有换行
}

// End 返回 token 结束位置（仅对单行 token 精确）
func (t Token) End() Position {
	end := t.Pos
	end.Column += len(t.Literal)
	end.Offset += len(t.Literal)
	return end
}

// String 返回 Token 的字符串表示（用于调试）
func (t Token) String() string {
	switch t.Type {
	case IDENT, PRIVATE_NAME, NUMBER, BIGINT, STRING, TEMPLATE, REGEXP:
		return fmt.Sprintf("%s(%s) at %s", t.Type, t.Literal, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Type, t.Pos)
	}
}

// ============================================================================
// 模板字符串
// ============================================================================

// Template 模板字符串 token 的解析值
//
// Quasis 比 Exprs 多一个元素：`a${x}b` => Quasis ["a", "b"], Exprs ["x"]。
// Exprs 保存表达式的原始源码，由语法分析器再次解析。
type Template struct {
	Quasis  []string   // 文本片段（已处理转义）
	Exprs   []string   // 插值表达式源码
	ExprPos []Position // 每个插值表达式的起始位置
}

// New 创建一个新的 Token
func New(tokenType TokenType, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Pos:     pos,
	}
}
