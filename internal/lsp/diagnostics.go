package lsp

import (
	"strings"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/tsrs/internal/batch"
	diag "github.com/tangzhangming/tsrs/internal/errors"
)

// diagnosticSource 诊断来源名
const diagnosticSource = "tsrs"

// getDiagnostics 转译文档并收集诊断，转译成功时返回空列表
func (s *Server) getDiagnostics(doc *Document) []protocol.Diagnostic {
	topts, popts := s.options()
	_, err := doc.transpile(topts, popts)

	diagnostics := []protocol.Diagnostic{}
	for _, ce := range batch.Diagnostics(err) {
		diagnostics = append(diagnostics, ToDiagnostic(ce, doc.Lines))
	}
	return diagnostics
}

// ToDiagnostic 将 CompileError 转换为 LSP 诊断
//
// lines 为源码按行分割的内容，用于在没有结束列时估计标注范围，可为 nil。
func ToDiagnostic(ce *diag.CompileError, lines []string) protocol.Diagnostic {
	line := ce.Line - 1 // LSP 行号从 0 开始
	if line < 0 {
		line = 0
	}
	start := ce.Column - 1
	if start < 0 {
		start = 0
	}
	lineText := ""
	if line < len(lines) {
		lineText = lines[line]
	}

	// 诊断列按字符计数，换算为字节偏移后再转为 UTF-16 列
	startOff := runeOffset(lineText, start)
	var endOff int
	if ce.EndColumn > ce.Column {
		endOff = runeOffset(lineText, ce.EndColumn-1)
	} else {
		endOff = wordEnd(lineText, startOff)
	}

	message := ce.Message
	for _, hint := range ce.Hints {
		message += "\nhelp: " + hint
	}

	d := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(utf16Column(lineText, startOff))},
			End:   protocol.Position{Line: uint32(line), Character: uint32(utf16Column(lineText, endOff))},
		},
		Severity: severityOf(ce.Level),
		Source:   diagnosticSource,
		Message:  message,
	}
	if ce.Code != "" {
		d.Code = ce.Code
	}
	return d
}

// wordEnd 从字节偏移 start 起标注一个标识符，不是标识符时标注一个字符
func wordEnd(lineText string, start int) int {
	if start >= len(lineText) {
		return start + 1
	}
	end := start
	for end < len(lineText) && isWordChar(lineText[end]) {
		end++
	}
	if end == start {
		_, size := utf8.DecodeRuneInString(lineText[start:])
		end = start + size
	}
	return end
}

func severityOf(level diag.Level) protocol.DiagnosticSeverity {
	switch level {
	case diag.LevelWarning:
		return protocol.DiagnosticSeverityWarning
	case diag.LevelNote:
		return protocol.DiagnosticSeverityInformation
	case diag.LevelHelp:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

// summarize 诊断的单行文字，用于预览结果
func summarize(ce *diag.CompileError) string {
	var b strings.Builder
	if ce.Code != "" {
		b.WriteString("[" + ce.Code + "] ")
	}
	b.WriteString(ce.Message)
	return b.String()
}
