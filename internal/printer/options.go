package printer

import (
	"fmt"
	"strings"
)

// Options 打印选项
type Options struct {
	// 缩进设置
	IndentStyle string // "tabs" 或 "spaces"
	IndentSize  int    // 空格数（当使用 spaces 时）

	// 其他
	RemoveTrailingSpace bool // 移除行尾空格
	EnsureNewlineAtEOF  bool // 确保文件末尾有换行符
}

// DefaultOptions 返回默认打印选项（K&R 风格 + 4空格缩进）
func DefaultOptions() *Options {
	return &Options{
		IndentStyle:         "spaces",
		IndentSize:          4,
		RemoveTrailingSpace: true,
		EnsureNewlineAtEOF:  true,
	}
}

// IndentString 返回一级缩进
func (o *Options) IndentString() string {
	if o.IndentStyle == "tabs" {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentSize)
}

// Validate 检查选项是否合法
func (o *Options) Validate() error {
	switch o.IndentStyle {
	case "spaces":
		if o.IndentSize < 1 || o.IndentSize > 16 {
			return fmt.Errorf("indent_size must be between 1 and 16, got %d", o.IndentSize)
		}
	case "tabs":
	default:
		return fmt.Errorf("indent_style must be \"spaces\" or \"tabs\", got %q", o.IndentStyle)
	}
	return nil
}
