package lsp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	diag "github.com/tangzhangming/tsrs/internal/errors"
)

// ============================================================================
// Document Manager Tests
// ============================================================================

func TestDocumentManager(t *testing.T) {
	dm := NewDocumentManager()

	doc := dm.Open("file:///src/main.ts", "const a = 1;\nlet b = 2;", 1)
	if doc.Path != "/src/main.ts" {
		t.Errorf("expected path '/src/main.ts', got '%s'", doc.Path)
	}
	if doc.GetLine(1) != "let b = 2;" {
		t.Errorf("expected second line, got '%s'", doc.GetLine(1))
	}
	if doc.GetLine(5) != "" {
		t.Errorf("expected empty line out of range")
	}

	dm.UpdateContent("file:///src/main.ts", "const c = 3;")
	if got := dm.Get("file:///src/main.ts"); got.Version != 2 || got.Content != "const c = 3;" {
		t.Errorf("unexpected document after update: version %d content %q", got.Version, got.Content)
	}

	if dm.Get("file:///other.ts") != nil {
		t.Error("expected nil for unopened document")
	}

	dm.Close("file:///src/main.ts")
	if dm.Get("file:///src/main.ts") != nil {
		t.Error("expected document to be removed after close")
	}
}

func TestApplyChange(t *testing.T) {
	dm := NewDocumentManager()
	dm.Open("file:///a.ts", "let a = 1;\nlet b = 2;", 1)

	dm.ApplyChange("file:///a.ts", protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 8},
			End:   protocol.Position{Line: 1, Character: 9},
		},
		Text: "42",
	}, 2)
	doc := dm.Get("file:///a.ts")
	if doc.Content != "let a = 1;\nlet b = 42;" || doc.Version != 2 {
		t.Errorf("unexpected incremental result: %q (version %d)", doc.Content, doc.Version)
	}

	dm.ApplyChange("file:///a.ts", protocol.TextDocumentContentChangeEvent{Text: "x;"}, 3)
	if doc.Content != "x;" {
		t.Errorf("expected full replace, got %q", doc.Content)
	}
}

func TestApplyTextEdit(t *testing.T) {
	pos := func(line, char uint32) protocol.Position {
		return protocol.Position{Line: line, Character: char}
	}
	tests := []struct {
		name    string
		content string
		rang    protocol.Range
		text    string
		want    string
	}{
		{"replace", "let a = 1;", protocol.Range{Start: pos(0, 4), End: pos(0, 5)}, "b", "let b = 1;"},
		{"insert", "ab", protocol.Range{Start: pos(0, 1), End: pos(0, 1)}, "X", "aXb"},
		{"delete across lines", "a\nb\nc", protocol.Range{Start: pos(0, 1), End: pos(2, 0)}, "", "ac"},
		{"insert line", "a\nc", protocol.Range{Start: pos(1, 0), End: pos(1, 0)}, "b\n", "a\nb\nc"},
		{"clamp past end", "abc", protocol.Range{Start: pos(0, 10), End: pos(3, 10)}, "!", "abc!"},
		// Character 按 UTF-16 code unit 计数
		{"after two-byte rune", "\"\u00e9\";x", protocol.Range{Start: pos(0, 4), End: pos(0, 5)}, "y", "\"\u00e9\";y"},
		{"insert after two-byte rune", "\"\u00e9\";x", protocol.Range{Start: pos(0, 2), End: pos(0, 2)}, "z", "\"\u00e9z\";x"},
		{"after surrogate pair", "a\U0001F600b", protocol.Range{Start: pos(0, 3), End: pos(0, 4)}, "c", "a\U0001F600c"},
		{"inside surrogate pair", "a\U0001F600b", protocol.Range{Start: pos(0, 2), End: pos(0, 2)}, "X", "a\U0001F600Xb"},
		{"second line", "\u4e2d\n\u4e2dx", protocol.Range{Start: pos(1, 1), End: pos(1, 2)}, "y", "\u4e2d\n\u4e2dy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyTextEdit(tt.content, tt.rang, tt.text); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 1},
		{"a", 1},
		{"a\nb", 2},
		{"a\r\nb\r\n", 3},
		{"a\rb", 2},
	}

	for _, tt := range tests {
		if got := splitLines(tt.input); len(got) != tt.want {
			t.Errorf("splitLines(%q): expected %d lines, got %d", tt.input, tt.want, len(got))
		}
	}
}

func TestUriToPath(t *testing.T) {
	if got := uriToPath("file:///home/user/a.ts"); got != "/home/user/a.ts" {
		t.Errorf("expected '/home/user/a.ts', got '%s'", got)
	}
	if got := uriToPath("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Errorf("expected non-file URI unchanged, got '%s'", got)
	}
}

// ============================================================================
// Diagnostics Tests
// ============================================================================

func TestToDiagnostic(t *testing.T) {
	doc := NewDocumentManager().Open("file:///a.ts", "let value = x;", 1)

	tests := []struct {
		name      string
		err       *diag.CompileError
		wantStart uint32
		wantEnd   uint32
		severity  protocol.DiagnosticSeverity
	}{
		{"explicit range", &diag.CompileError{Code: "T0009", Line: 1, Column: 5, EndColumn: 10}, 4, 9, protocol.DiagnosticSeverityError},
		{"word", &diag.CompileError{Code: "E0001", Line: 1, Column: 5}, 4, 9, protocol.DiagnosticSeverityError},
		{"punctuation", &diag.CompileError{Line: 1, Column: 14, Level: diag.LevelWarning}, 13, 14, protocol.DiagnosticSeverityWarning},
		{"no position", &diag.CompileError{Message: "boom"}, 0, 3, protocol.DiagnosticSeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ToDiagnostic(tt.err, doc.Lines)
			if d.Range.Start.Character != tt.wantStart || d.Range.End.Character != tt.wantEnd {
				t.Errorf("expected range %d-%d, got %d-%d",
					tt.wantStart, tt.wantEnd, d.Range.Start.Character, d.Range.End.Character)
			}
			if d.Severity != tt.severity {
				t.Errorf("expected severity %v, got %v", tt.severity, d.Severity)
			}
			if d.Source != "tsrs" {
				t.Errorf("expected source 'tsrs', got '%s'", d.Source)
			}
		})
	}

	// 诊断列按字符计数，LSP 列按 UTF-16 计数
	lines := []string{"\"\U0001F600\" + x;"}
	wide := []struct {
		err       *diag.CompileError
		wantStart uint32
		wantEnd   uint32
	}{
		{&diag.CompileError{Line: 1, Column: 7}, 7, 8},
		{&diag.CompileError{Line: 1, Column: 1, EndColumn: 4}, 0, 4},
		{&diag.CompileError{Line: 1, Column: 2}, 1, 3},
	}
	for _, tt := range wide {
		d := ToDiagnostic(tt.err, lines)
		if d.Range.Start.Character != tt.wantStart || d.Range.End.Character != tt.wantEnd {
			t.Errorf("column %d: expected range %d-%d, got %d-%d", tt.err.Column,
				tt.wantStart, tt.wantEnd, d.Range.Start.Character, d.Range.End.Character)
		}
	}

	d := ToDiagnostic(&diag.CompileError{Message: "unsupported", Hints: []string{"rewrite it"}}, nil)
	if d.Message != "unsupported\nhelp: rewrite it" {
		t.Errorf("expected hint in message, got %q", d.Message)
	}
}

// ============================================================================
// Server Tests
// ============================================================================

type rpcMessage struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// session 把一组消息分帧写入，运行服务器直到输入结束，返回服务器发出的所有消息
func session(t *testing.T, msgs ...interface{}) []rpcMessage {
	t.Helper()
	var in bytes.Buffer
	for _, m := range msgs {
		content, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		fmt.Fprintf(&in, "Content-Length: %d\r\n\r\n%s", len(content), content)
	}

	var out bytes.Buffer
	if err := NewServer(&in, &out, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	reader := NewServer(&out, io.Discard, nil)
	var replies []rpcMessage
	for {
		content, err := reader.readMessage()
		if err == io.EOF {
			return replies
		}
		if err != nil {
			t.Fatalf("read reply: %v", err)
		}
		var m rpcMessage
		if err := json.Unmarshal(content, &m); err != nil {
			t.Fatalf("decode reply: %v", err)
		}
		replies = append(replies, m)
	}
}

func request(id int, method string, params interface{}) map[string]interface{} {
	return map[string]interface{}{"jsonrpc": "2.0", "id": id, "method": method, "params": params}
}

func notification(method string, params interface{}) map[string]interface{} {
	return map[string]interface{}{"jsonrpc": "2.0", "method": method, "params": params}
}

func didOpen(docURI, text string) map[string]interface{} {
	return notification("textDocument/didOpen", map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": docURI, "languageId": "typescript", "version": 1, "text": text},
	})
}

func didChange(docURI string, version int, text string) map[string]interface{} {
	return notification("textDocument/didChange", map[string]interface{}{
		"textDocument":   map[string]interface{}{"uri": docURI, "version": version},
		"contentChanges": []map[string]interface{}{{"text": text}},
	})
}

func diagnosticsOf(t *testing.T, m rpcMessage) protocol.PublishDiagnosticsParams {
	t.Helper()
	if m.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected publishDiagnostics, got %q", m.Method)
	}
	var p protocol.PublishDiagnosticsParams
	if err := json.Unmarshal(m.Params, &p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestServerDiagnostics(t *testing.T) {
	const docURI = "file:///work/main.ts"
	replies := session(t,
		request(1, "initialize", map[string]interface{}{}),
		notification("initialized", map[string]interface{}{}),
		didOpen(docURI, "const a = 1;"),
		didChange(docURI, 2, "const a = 1;\nswitch (a) {}"),
		didChange(docURI, 3, "let = ;"),
		notification("textDocument/didClose", map[string]interface{}{"textDocument": map[string]interface{}{"uri": docURI}}),
		request(2, "shutdown", nil),
		notification("exit", nil),
	)

	if len(replies) != 6 {
		t.Fatalf("expected 6 replies, got %d", len(replies))
	}
	if string(replies[0].ID) != "1" || !strings.Contains(string(replies[0].Result), `"textDocumentSync"`) {
		t.Errorf("unexpected initialize reply: %s", replies[0].Result)
	}

	if p := diagnosticsOf(t, replies[1]); len(p.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics for valid source, got %+v", p.Diagnostics)
	}

	p := diagnosticsOf(t, replies[2])
	if len(p.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", p.Diagnostics)
	}
	d := p.Diagnostics[0]
	if d.Code != "T0002" || d.Range.Start.Line != 1 || d.Range.Start.Character != 0 {
		t.Errorf("unexpected switch diagnostic: %+v", d)
	}
	if p.Version != 2 {
		t.Errorf("expected version 2, got %d", p.Version)
	}

	if p := diagnosticsOf(t, replies[3]); len(p.Diagnostics) == 0 {
		t.Errorf("expected syntax diagnostics")
	}
	if p := diagnosticsOf(t, replies[4]); len(p.Diagnostics) != 0 {
		t.Errorf("expected diagnostics cleared on close, got %+v", p.Diagnostics)
	}
	if string(replies[5].ID) != "2" || replies[5].Error != nil {
		t.Errorf("unexpected shutdown reply: %+v", replies[5])
	}
}

func TestServerPreviewUsesProjectConfig(t *testing.T) {
	root := t.TempDir()
	toml := "[transpile]\nnumber_mode = \"float\"\n"
	if err := os.WriteFile(filepath.Join(root, "tsrs.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	docURI := string(uri.File(filepath.Join(root, "src", "main.ts")))
	preview := map[string]interface{}{"textDocument": map[string]interface{}{"uri": docURI}}

	replies := session(t,
		request(1, "initialize", map[string]interface{}{"rootUri": string(uri.File(root))}),
		didOpen(docURI, "const a = 1;"),
		request(2, methodPreview, preview),
		didChange(docURI, 2, "const r = /x/;"),
		request(3, methodPreview, preview),
		request(4, methodPreview, map[string]interface{}{"textDocument": map[string]interface{}{"uri": "file:///nope.ts"}}),
	)

	if len(replies) != 6 {
		t.Fatalf("expected 6 replies, got %d", len(replies))
	}

	var ok PreviewResult
	if err := json.Unmarshal(replies[2].Result, &ok); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ok.Output, "let a = 1.0;") || len(ok.Errors) != 0 {
		t.Errorf("expected float output, got %+v", ok)
	}

	var failed PreviewResult
	if err := json.Unmarshal(replies[4].Result, &failed); err != nil {
		t.Fatal(err)
	}
	if failed.Output != "" || len(failed.Errors) != 1 || !strings.HasPrefix(failed.Errors[0], "[T0009] ") {
		t.Errorf("expected unsupported literal error, got %+v", failed)
	}
	if failed.Version != 2 {
		t.Errorf("expected version 2, got %d", failed.Version)
	}

	if replies[5].Error == nil || replies[5].Error.Code != codeInvalidParams {
		t.Errorf("expected invalid params for unopened document, got %+v", replies[5])
	}
}

func TestServerNotInitialized(t *testing.T) {
	replies := session(t,
		request(1, methodPreview, map[string]interface{}{}),
		request(2, "initialize", map[string]interface{}{}),
		request(3, "textDocument/hover", map[string]interface{}{}),
	)

	if len(replies) != 3 {
		t.Fatalf("expected 3 replies, got %d", len(replies))
	}
	if replies[0].Error == nil || replies[0].Error.Code != codeNotInitialized {
		t.Errorf("expected not initialized error, got %+v", replies[0])
	}
	if replies[2].Error == nil || replies[2].Error.Code != codeMethodNotFound {
		t.Errorf("expected method not found, got %+v", replies[2])
	}
}

func TestReadMessageErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing length", "X-Other: 1\r\n\r\n{}", "missing Content-Length"},
		{"bad length", "Content-Length: abc\r\n\r\n", "invalid Content-Length"},
		{"short body", "Content-Length: 10\r\n\r\n{}", "unexpected EOF"},
		{"huge length", "Content-Length: 99999999999\r\n\r\n{}", "unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(strings.NewReader(tt.input), io.Discard, nil)
			_, err := s.readMessage()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestReadMessageTooLarge(t *testing.T) {
	body := strings.Repeat(" ", maxMessageSize+1)
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%sContent-Length: 2\r\n\r\n{}", len(body), body)
	s := NewServer(strings.NewReader(input), io.Discard, nil)

	if _, err := s.readMessage(); err == nil || !strings.Contains(err.Error(), "exceeds limit") {
		t.Fatalf("expected size limit error, got %v", err)
	}
	msg, err := s.readMessage()
	if err != nil || string(msg) != "{}" {
		t.Errorf("expected next message '{}', got %q (%v)", msg, err)
	}
}
