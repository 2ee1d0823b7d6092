package lsp

import (
	"strings"
	"sync"
	"unicode/utf16"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/tsrs/internal/batch"
	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/transpiler"
)

// maxDocumentSize 超过此大小的文档不做转译
const maxDocumentSize = 500 * 1024

// Document 表示一个打开的文档
type Document struct {
	URI     string
	Path    string
	Content string
	Version int
	Lines   []string // 按行分割的内容

	// 缓存的转译结果，Err 非 nil 时 Output 为空
	Output string
	Err    error

	// 是否需要重新转译
	dirty bool
}

// DocumentManager 文档管理器
type DocumentManager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewDocumentManager 创建文档管理器
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*Document),
	}
}

// Open 打开文档
func (dm *DocumentManager) Open(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:     uri,
		Path:    uriToPath(uri),
		Content: content,
		Version: version,
		Lines:   splitLines(content),
		dirty:   true,
	}
	dm.documents[uri] = doc
	return doc
}

// Close 关闭文档
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.documents, uri)
}

// Get 获取文档
func (dm *DocumentManager) Get(uri string) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.documents[uri]
}

// UpdateContent 以完整内容替换文档
func (dm *DocumentManager) UpdateContent(uri, content string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.documents[uri]
	if !ok {
		return
	}
	doc.setContent(content)
	doc.Version++
}

// ApplyChange 应用一次变更，Range 省略时为完整替换
func (dm *DocumentManager) ApplyChange(uri string, change protocol.TextDocumentContentChangeEvent, version int) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.documents[uri]
	if !ok {
		return
	}

	isFullReplace := change.Range == (protocol.Range{}) && change.RangeLength == 0
	if isFullReplace {
		doc.setContent(change.Text)
	} else {
		doc.setContent(applyTextEdit(doc.Content, change.Range, change.Text))
	}
	doc.Version = version
}

// GetAll 获取所有文档
func (dm *DocumentManager) GetAll() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.documents))
	for _, doc := range dm.documents {
		docs = append(docs, doc)
	}
	return docs
}

// Invalidate 标记所有文档需要重新转译（选项变化时）
func (dm *DocumentManager) Invalidate() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, doc := range dm.documents {
		doc.dirty = true
	}
}

func (doc *Document) setContent(content string) {
	doc.Content = content
	doc.Lines = splitLines(content)
	doc.dirty = true
}

// transpile 转译文档，结果缓存到下一次内容变化
func (doc *Document) transpile(topts *transpiler.Options, popts *printer.Options) (string, error) {
	if !doc.dirty {
		return doc.Output, doc.Err
	}
	doc.dirty = false

	if len(doc.Content) > maxDocumentSize {
		doc.Output, doc.Err = "", nil
		return "", nil
	}
	doc.Output, doc.Err = batch.TranspileSource(doc.Content, doc.Path, topts, popts)
	return doc.Output, doc.Err
}

// GetLine 获取指定行（0 起）
func (doc *Document) GetLine(line int) string {
	if line < 0 || line >= len(doc.Lines) {
		return ""
	}
	return doc.Lines[line]
}

// splitLines 将内容按行分割
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// applyTextEdit 应用文本编辑，越界位置收缩到行尾
//
// LSP 位置的 Character 以 UTF-16 code unit 计数。
func applyTextEdit(content string, rang protocol.Range, newText string) string {
	lines := splitLines(content)

	clampLine := func(n int) int {
		if n >= len(lines) {
			n = len(lines) - 1
		}
		if n < 0 {
			n = 0
		}
		return n
	}
	startLine := clampLine(int(rang.Start.Line))
	endLine := clampLine(int(rang.End.Line))
	startLineText := lines[startLine]
	endLineText := lines[endLine]
	startChar := byteOffset(startLineText, int(rang.Start.Character))
	endChar := byteOffset(endLineText, int(rang.End.Character))
	if startLine == endLine && endChar < startChar {
		endChar = startChar
	}

	var result strings.Builder
	for i := 0; i < startLine; i++ {
		result.WriteString(lines[i])
		result.WriteString("\n")
	}
	result.WriteString(startLineText[:startChar])
	result.WriteString(newText)
	result.WriteString(endLineText[endChar:])
	for i := endLine + 1; i < len(lines); i++ {
		result.WriteString("\n")
		result.WriteString(lines[i])
	}
	return result.String()
}

// ============================================================================
// 列换算
// ============================================================================
//
// LSP 列为 UTF-16 code unit，词法分析器的列为字符（rune），
// 字符串切片使用字节偏移。

// byteOffset UTF-16 列转换为行内字节偏移，落在字符中间时取下一个字符边界，
// 越界时收缩到行尾
func byteOffset(line string, char int) int {
	units := 0
	for i, r := range line {
		if units >= char {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// runeOffset 字符列（0 起）转换为字节偏移，超出行尾的部分逐个计入
func runeOffset(line string, col int) int {
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line) + col - n
}

// utf16Column 字节偏移转换为 UTF-16 列，超出行尾的部分逐个计入
func utf16Column(line string, off int) int {
	if off > len(line) {
		return utf16Column(line, len(line)) + off - len(line)
	}
	units := 0
	for _, r := range line[:off] {
		units += utf16.RuneLen(r)
	}
	return units
}

// isWordChar 判断是否是标识符字符
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '$'
}
