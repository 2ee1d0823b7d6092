package errors

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

// ============================================================================
// 错误报告器
// ============================================================================

// Reporter 错误报告器，收集诊断并输出到 Writer
//
// 可被多个 goroutine 同时使用。
type Reporter struct {
	mu          sync.Mutex
	formatter   *Formatter
	out         io.Writer
	sourceCache map[string][]string // 源代码缓存
	errors      []*CompileError
	warnings    []*CompileError
}

// NewReporter 创建输出到标准错误的报告器
func NewReporter() *Reporter {
	return NewReporterTo(os.Stderr)
}

// NewReporterTo 创建输出到指定 Writer 的报告器
func NewReporterTo(out io.Writer) *Reporter {
	return &Reporter{
		formatter:   NewFormatter(),
		out:         out,
		sourceCache: make(map[string][]string),
	}
}

// SetFormatter 设置格式化器
func (r *Reporter) SetFormatter(f *Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatter = f
}

// LoadSource 加载源文件
func (r *Reporter) LoadSource(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadSource(filename)
}

func (r *Reporter) loadSource(filename string) error {
	if _, ok := r.sourceCache[filename]; ok {
		return nil // 已加载
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	r.sourceCache[filename] = lines
	return nil
}

// SetSource 设置源代码（用于测试或内存中的源代码）
func (r *Reporter) SetSource(filename string, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourceCache[filename] = strings.Split(content, "\n")
}

// GetSourceLine 获取源代码行
func (r *Reporter) GetSourceLine(filename string, line int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lines, ok := r.sourceCache[filename]; ok {
		if line > 0 && line <= len(lines) {
			return lines[line-1]
		}
	}
	return ""
}

// ============================================================================
// 报告诊断
// ============================================================================

// ReportError 报告一条诊断
func (r *Reporter) ReportError(err *CompileError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err.File != "" {
		_ = r.loadSource(err.File) // 读不到源码时只输出错误头
	}

	// 生成修复建议
	if len(err.Hints) == 0 {
		err.Hints = GetSuggestions(err.Code, map[string]interface{}{
			"file": err.File,
			"line": err.Line,
		})
	}

	if err.Level == LevelWarning {
		r.warnings = append(r.warnings, err)
	} else {
		r.errors = append(r.errors, err)
	}

	io.WriteString(r.out, r.formatter.FormatCompileError(err, r.sourceCache[err.File]))
}

// ReportWarning 报告警告
func (r *Reporter) ReportWarning(err *CompileError) {
	err.Level = LevelWarning
	r.ReportError(err)
}

// ReportSimple 报告简单错误（从现有错误信息转换）
func (r *Reporter) ReportSimple(file string, line, col int, message string) {
	r.ReportError(&CompileError{
		Code:    InferErrorCode(message),
		Level:   LevelError,
		Message: message,
		File:    file,
		Line:    line,
		Column:  col,
	})
}

// InferErrorCode 从已翻译的词法 / 语法错误消息推断错误码
//
// 按当前语言的消息模板前缀匹配，匹配不到时返回 E0001。
func InferErrorCode(message string) string {
	best, bestLen := E0001, 0
	for _, code := range sortedCodes(syntaxErrors) {
		info := syntaxErrors[code]
		if code == E0001 {
			continue
		}
		prefix := i18n.T(info.MessageID)
		if i := strings.Index(prefix, "%"); i >= 0 {
			prefix = prefix[:i]
		}
		if prefix != "" && strings.HasPrefix(message, prefix) && len(prefix) > bestLen {
			best, bestLen = code, len(prefix)
		}
	}
	return best
}

// ============================================================================
// 状态查询
// ============================================================================

// HasErrors 是否有错误
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0
}

// ErrorCount 错误数量
func (r *Reporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

// WarningCount 警告数量
func (r *Reporter) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

// Errors 获取所有错误，按文件和位置排序
func (r *Reporter) Errors() []*CompileError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*CompileError(nil), r.errors...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Summary 输出错误计数，没有错误时不输出
func (r *Reporter) Summary() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.errors); n > 0 {
		label := r.formatter.colorize(LevelError.String(), r.formatter.levelColor(LevelError))
		io.WriteString(r.out, label+": "+i18n.T(i18n.MsgErrorCount, n)+"\n")
	}
}

// Clear 清空错误和警告
func (r *Reporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = nil
	r.warnings = nil
}
