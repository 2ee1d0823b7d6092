package errors

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

// ============================================================================
// 错误标签
// ============================================================================

// Label 代码标签（用于标注错误位置）
type Label struct {
	Line    int    // 行号（1-based）
	Column  int    // 列号（1-based）
	Length  int    // 标注长度
	Message string // 标签消息
	Primary bool   // 是否为主要标签
}

// ============================================================================
// 编译错误
// ============================================================================

// CompileError 一条诊断，语法错误、转译错误与驱动错误共用
type CompileError struct {
	Code      string   // 错误码 (T0001)
	Level     Level    // 错误级别
	Message   string   // 主消息
	File      string   // 文件路径
	Line      int      // 行号
	Column    int      // 列号
	EndColumn int      // 结束列，0 表示只标注一个字符
	Labels    []Label  // 代码标签
	Hints     []string // 修复建议
	Notes     []string // 附加说明
}

// New 按错误码创建诊断，消息由错误码表中的消息 ID 翻译得到
func New(code, file string, line, column int, args ...interface{}) *CompileError {
	err := &CompileError{
		Code:   code,
		Level:  LevelError,
		File:   file,
		Line:   line,
		Column: column,
	}
	if info, ok := GetErrorInfo(code); ok {
		err.Level = info.Level
		err.Message = i18n.T(info.MessageID, args...)
	}
	return err
}

// Error 实现 error 接口
func (e *CompileError) Error() string {
	if e.File == "" {
		return e.Message
	}
	if e.Line <= 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// WithHint 追加修复建议
func (e *CompileError) WithHint(hint string) *CompileError {
	e.Hints = append(e.Hints, hint)
	return e
}

// WithNote 追加附加说明
func (e *CompileError) WithNote(note string) *CompileError {
	e.Notes = append(e.Notes, note)
	return e
}

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器，输出 rustc 风格的诊断
type Formatter struct {
	Colors     bool // 是否使用颜色
	ShowSource bool // 是否显示源代码
	ShowHints  bool // 是否显示修复建议
	MaxContext int  // 错误行之前显示的上下文行数
	TabWidth   int  // Tab 宽度
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:     ColorsEnabled(),
		ShowSource: true,
		ShowHints:  true,
		MaxContext: 0,
		TabWidth:   4,
	}
}

// FormatCompileError 格式化单条诊断
func (f *Formatter) FormatCompileError(err *CompileError, sourceLines []string) string {
	var sb strings.Builder

	// 错误头: error[T0001]: unsupported expression: template literal
	levelStr := f.colorize(err.Level.String(), f.levelColor(err.Level))
	if err.Code != "" {
		levelStr += f.colorize(fmt.Sprintf("[%s]", err.Code), f.levelColor(err.Level))
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", levelStr, err.Message))

	// 位置: --> main.ts:5:12
	if err.File != "" {
		arrow := f.colorize("-->", ColorCyan)
		loc := err.File
		if err.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", err.File, err.Line, err.Column)
		}
		sb.WriteString(fmt.Sprintf(" %s %s\n", arrow, f.colorize(loc, ColorCyan)))
	}

	// 显示源代码
	if f.ShowSource && err.Line > 0 && err.Line <= len(sourceLines) {
		sb.WriteString(f.formatSourceContext(sourceLines, err.Line, err.Column, err.EndColumn, err.Labels))
	}

	// 修复建议
	if f.ShowHints {
		for _, hint := range err.Hints {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = help:", ColorCyan), hint))
		}
	}

	// 附加说明
	for _, note := range err.Notes {
		sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = note:", ColorCyan), note))
	}

	return sb.String()
}

// formatSourceContext 格式化源代码上下文
func (f *Formatter) formatSourceContext(lines []string, errorLine, startCol, endCol int, labels []Label) string {
	var sb strings.Builder

	first := errorLine - f.MaxContext
	if first < 1 {
		first = 1
	}
	lineNumWidth := len(fmt.Sprintf("%d", errorLine))
	for _, label := range labels {
		if w := len(fmt.Sprintf("%d", label.Line)); w > lineNumWidth {
			lineNumWidth = w
		}
	}

	pipe := f.colorize(" |", ColorBlue)
	sb.WriteString(f.colorize(strings.Repeat(" ", lineNumWidth)+" |", ColorBlue) + "\n")

	for n := first; n <= errorLine; n++ {
		lineNum := f.colorize(fmt.Sprintf("%*d", lineNumWidth, n), ColorBlue)
		sb.WriteString(fmt.Sprintf("%s%s %s\n", lineNum, pipe, f.expandTabs(lines[n-1])))
	}

	// 错误标注
	line := lines[errorLine-1]
	if endCol <= startCol {
		endCol = startCol + 1
	}
	actualCol := f.calculateActualColumn(line, startCol)
	underline := strings.Repeat(" ", lineNumWidth+3+actualCol) +
		f.colorize(strings.Repeat("^", endCol-startCol), f.levelColor(LevelError))
	sb.WriteString(underline + "\n")

	// 其他行上的标签
	for _, label := range labels {
		if label.Line == errorLine || label.Line <= 0 || label.Line > len(lines) {
			continue
		}
		text := lines[label.Line-1]
		lineNum := f.colorize(fmt.Sprintf("%*d", lineNumWidth, label.Line), ColorBlue)
		sb.WriteString(fmt.Sprintf("%s%s %s\n", lineNum, pipe, f.expandTabs(text)))

		length := label.Length
		if length < 1 {
			length = 1
		}
		mark := strings.Repeat("^", length)
		if label.Message != "" {
			mark += " " + label.Message
		}
		col := f.calculateActualColumn(text, label.Column)
		sb.WriteString(strings.Repeat(" ", lineNumWidth+3+col) + f.colorize(mark, f.labelColor(label.Primary)) + "\n")
	}

	return sb.String()
}

// expandTabs 展开 Tab 为空格
func (f *Formatter) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", f.TabWidth))
}

// calculateActualColumn 计算列前的显示宽度（考虑 Tab）
func (f *Formatter) calculateActualColumn(line string, col int) int {
	if col <= 0 {
		return 0
	}
	actual := 0
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			actual += f.TabWidth
		} else {
			actual++
		}
	}
	return actual
}

// levelColor 获取错误级别对应的颜色
func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorBoldRed
	case LevelWarning:
		return ColorBoldYellow
	case LevelNote:
		return ColorCyan
	case LevelHelp:
		return ColorGreen
	default:
		return ColorWhite
	}
}

// labelColor 获取标签颜色
func (f *Formatter) labelColor(primary bool) Color {
	if primary {
		return ColorRed
	}
	return ColorBlue
}

// colorize 着色字符串
func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return paint(s, color)
}

// ============================================================================
// 简便方法
// ============================================================================

// FormatCompileErrors 格式化多条诊断，末尾附错误计数
func (f *Formatter) FormatCompileErrors(errs []*CompileError, sourceCache map[string][]string) string {
	var sb strings.Builder

	count := 0
	for i, err := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.FormatCompileError(err, sourceCache[err.File]))
		if err.Level == LevelError {
			count++
		}
	}

	if count > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.colorize(LevelError.String(), f.levelColor(LevelError)))
		sb.WriteString(": " + i18n.T(i18n.MsgErrorCount, count) + "\n")
	}

	return sb.String()
}

// ============================================================================
// 全局格式化器
// ============================================================================

var defaultFormatter = NewFormatter()

// SetDefaultFormatter 设置默认格式化器
func SetDefaultFormatter(f *Formatter) {
	defaultFormatter = f
}

// GetDefaultFormatter 获取默认格式化器
func GetDefaultFormatter() *Formatter {
	return defaultFormatter
}

// Format 使用默认格式化器格式化诊断
func Format(err *CompileError, sourceLines []string) string {
	return defaultFormatter.FormatCompileError(err, sourceLines)
}
