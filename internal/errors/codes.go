// Package errors 提供 tsrs 的诊断系统：错误码、格式化与报告
package errors

import (
	"sort"
	"strings"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
	LevelHelp                 // 帮助
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// 语法错误码 (E 开头)
// ============================================================================

const (
	E0001 = "E0001" // 语法错误
	E0002 = "E0002" // 意外的字符
	E0003 = "E0003" // 未闭合的字符串
	E0004 = "E0004" // 未闭合的注释
	E0005 = "E0005" // 无效的数字
	E0006 = "E0006" // 期望的 token
	E0007 = "E0007" // 意外的 token
	E0008 = "E0008" // 未闭合的模板字面量
	E0009 = "E0009" // 未闭合的正则表达式
	E0010 = "E0010" // 无效的转义序列
	E0011 = "E0011" // 无效的赋值目标
	E0012 = "E0012" // const 缺少初始值
	E0013 = "E0013" // 不支持 JSX
	E0014 = "E0014" // 期望表达式
	E0015 = "E0015" // 期望标识符
)

// ============================================================================
// 转译错误码 (T 开头)
// ============================================================================

const (
	// T0001-T0099: 不支持的语法结构
	T0001 = "T0001" // 不支持的表达式
	T0002 = "T0002" // 不支持的语句
	T0003 = "T0003" // 不支持的声明
	T0004 = "T0004" // 不支持的模块项
	T0005 = "T0005" // 不支持的运算符
	T0006 = "T0006" // 不支持的调用形式
	T0007 = "T0007" // 不支持的赋值目标
	T0008 = "T0008" // 不支持的绑定模式
	T0009 = "T0009" // 不支持的字面量
	T0010 = "T0010" // 环境声明

	// T0100-T0199: 前置条件不满足
	T0100 = "T0100" // else 分支形状
	T0101 = "T0101" // 缺少初始值
	T0103 = "T0103" // 语句用作表达式
)

// ============================================================================
// 驱动错误码 (D 开头)
// ============================================================================

const (
	D0001 = "D0001" // 输入文件不存在
	D0002 = "D0002" // 输出目录不存在
	D0003 = "D0003" // 读取失败
	D0004 = "D0004" // 写入失败
	D0005 = "D0005" // 配置无效
	D0006 = "D0006" // 解析失败
)

// ============================================================================
// 错误码信息
// ============================================================================

// ErrorInfo 错误码信息
type ErrorInfo struct {
	Code      string // 错误码
	Level     Level  // 错误级别
	MessageID string // i18n 消息 ID
	Category  string // 错误分类
	DocURL    string // 文档链接（可选）
}

// syntaxErrors 语法错误码信息表
var syntaxErrors = map[string]ErrorInfo{
	E0001: {E0001, LevelError, i18n.ErrSyntax, "syntax", ""},
	E0002: {E0002, LevelError, i18n.ErrUnexpectedChar, "syntax", ""},
	E0003: {E0003, LevelError, i18n.ErrUnterminatedString, "syntax", ""},
	E0004: {E0004, LevelError, i18n.ErrUnterminatedComment, "syntax", ""},
	E0005: {E0005, LevelError, i18n.ErrInvalidNumber, "syntax", ""},
	E0006: {E0006, LevelError, i18n.ErrExpectedToken, "syntax", ""},
	E0007: {E0007, LevelError, i18n.ErrUnexpectedToken, "syntax", ""},
	E0008: {E0008, LevelError, i18n.ErrUnterminatedTemplate, "syntax", ""},
	E0009: {E0009, LevelError, i18n.ErrUnterminatedRegExp, "syntax", ""},
	E0010: {E0010, LevelError, i18n.ErrInvalidEscape, "syntax", ""},
	E0011: {E0011, LevelError, i18n.ErrInvalidAssignTarget, "syntax", ""},
	E0012: {E0012, LevelError, i18n.ErrMissingConstInit, "syntax", ""},
	E0013: {E0013, LevelError, i18n.ErrJSXUnsupported, "syntax", ""},
	E0014: {E0014, LevelError, i18n.ErrExpectedExpression, "syntax", ""},
	E0015: {E0015, LevelError, i18n.ErrExpectedIdentifier, "syntax", ""},
}

// transpileErrors 转译错误码信息表
var transpileErrors = map[string]ErrorInfo{
	T0001: {T0001, LevelError, i18n.ErrUnsupportedExpr, "unsupported", ""},
	T0002: {T0002, LevelError, i18n.ErrUnsupportedStmt, "unsupported", ""},
	T0003: {T0003, LevelError, i18n.ErrUnsupportedDecl, "unsupported", ""},
	T0004: {T0004, LevelError, i18n.ErrUnsupportedItem, "unsupported", ""},
	T0005: {T0005, LevelError, i18n.ErrUnsupportedOperator, "unsupported", ""},
	T0006: {T0006, LevelError, i18n.ErrUnsupportedCall, "unsupported", ""},
	T0007: {T0007, LevelError, i18n.ErrUnsupportedTarget, "unsupported", ""},
	T0008: {T0008, LevelError, i18n.ErrUnsupportedPattern, "unsupported", ""},
	T0009: {T0009, LevelError, i18n.ErrUnsupportedLiteral, "unsupported", ""},
	T0010: {T0010, LevelError, i18n.ErrAmbientDecl, "unsupported", ""},

	T0100: {T0100, LevelError, i18n.ErrElseArmShape, "precondition", ""},
	T0101: {T0101, LevelError, i18n.ErrMissingInitializer, "precondition", ""},
	T0103: {T0103, LevelError, i18n.ErrStmtAsExpr, "precondition", ""},
}

// driverErrors 驱动错误码信息表
var driverErrors = map[string]ErrorInfo{
	D0001: {D0001, LevelError, i18n.ErrInputNotFound, "io", ""},
	D0002: {D0002, LevelError, i18n.ErrOutputDirMissing, "io", ""},
	D0003: {D0003, LevelError, i18n.ErrReadFailed, "io", ""},
	D0004: {D0004, LevelError, i18n.ErrWriteFailed, "io", ""},
	D0005: {D0005, LevelError, i18n.ErrConfigInvalid, "config", ""},
	D0006: {D0006, LevelError, i18n.ErrParseFailedFor, "syntax", ""},
}

// GetErrorInfo 按错误码查找信息
func GetErrorInfo(code string) (ErrorInfo, bool) {
	switch {
	case IsSyntaxError(code):
		info, ok := syntaxErrors[code]
		return info, ok
	case IsTranspileError(code):
		info, ok := transpileErrors[code]
		return info, ok
	case IsDriverError(code):
		info, ok := driverErrors[code]
		return info, ok
	}
	return ErrorInfo{}, false
}

// IsSyntaxError 检查是否为语法错误码
func IsSyntaxError(code string) bool {
	return strings.HasPrefix(code, "E")
}

// IsTranspileError 检查是否为转译错误码
func IsTranspileError(code string) bool {
	return strings.HasPrefix(code, "T")
}

// IsDriverError 检查是否为驱动错误码
func IsDriverError(code string) bool {
	return strings.HasPrefix(code, "D")
}

// CodeForMessageID 反查消息 ID 对应的错误码，找不到时返回空串
func CodeForMessageID(msgID string) string {
	for _, table := range []map[string]ErrorInfo{syntaxErrors, transpileErrors, driverErrors} {
		for _, code := range sortedCodes(table) {
			if table[code].MessageID == msgID {
				return code
			}
		}
	}
	return ""
}

func sortedCodes(table map[string]ErrorInfo) []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
