package errors

import (
	"os"
	"strings"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBoldRed
	ColorBoldGreen
	ColorBoldYellow
	ColorBoldBlue
	ColorBoldWhite
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:      "\033[0m",
	ColorRed:        "\033[31m",
	ColorGreen:      "\033[32m",
	ColorYellow:     "\033[33m",
	ColorBlue:       "\033[34m",
	ColorMagenta:    "\033[35m",
	ColorCyan:       "\033[36m",
	ColorWhite:      "\033[37m",
	ColorBoldRed:    "\033[1;31m",
	ColorBoldGreen:  "\033[1;32m",
	ColorBoldYellow: "\033[1;33m",
	ColorBoldBlue:   "\033[1;34m",
	ColorBoldWhite:  "\033[1;37m",
}

// colorsEnabled 是否启用颜色
var colorsEnabled = detectColorSupport()

// detectColorSupport 检测标准错误输出是否支持颜色
func detectColorSupport() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	term := os.Getenv("TERM")
	if term == "dumb" {
		return false
	}

	// 不是终端（重定向到文件或管道）
	fileInfo, err := os.Stderr.Stat()
	if err != nil || fileInfo.Mode()&os.ModeCharDevice == 0 {
		return false
	}

	// Windows 控制台需要打开虚拟终端处理
	if !enableVirtualTerminal() {
		return false
	}

	if os.Getenv("COLORTERM") != "" || os.Getenv("WT_SESSION") != "" {
		return true
	}

	colorTerms := []string{"xterm", "screen", "tmux", "vt100", "linux", "ansi", "cygwin"}
	for _, ct := range colorTerms {
		if strings.Contains(strings.ToLower(term), ct) {
			return true
		}
	}

	// 较新的 Windows 控制台没有 TERM
	return term == ""
}

// EnableColors 启用颜色
func EnableColors() {
	colorsEnabled = true
}

// DisableColors 禁用颜色
func DisableColors() {
	colorsEnabled = false
}

// ColorsEnabled 检查颜色是否启用
func ColorsEnabled() bool {
	return colorsEnabled
}

// SetColorsEnabled 设置颜色启用状态
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// Colorize 按全局设置着色字符串
func Colorize(s string, color Color) string {
	if !colorsEnabled {
		return s
	}
	return paint(s, color)
}

func paint(s string, color Color) string {
	code, ok := ansiCodes[color]
	if !ok {
		return s
	}
	return code + s + ansiCodes[ColorReset]
}

// Red 红色
func Red(s string) string {
	return Colorize(s, ColorRed)
}

// Green 绿色
func Green(s string) string {
	return Colorize(s, ColorGreen)
}

// Yellow 黄色
func Yellow(s string) string {
	return Colorize(s, ColorYellow)
}

// Cyan 青色
func Cyan(s string) string {
	return Colorize(s, ColorCyan)
}

// BoldRed 加粗红色
func BoldRed(s string) string {
	return Colorize(s, ColorBoldRed)
}

// BoldGreen 加粗绿色
func BoldGreen(s string) string {
	return Colorize(s, ColorBoldGreen)
}

// Strip 移除 ANSI 颜色代码
func Strip(s string) string {
	result := s
	for _, code := range ansiCodes {
		result = strings.ReplaceAll(result, code, "")
	}
	return result
}
