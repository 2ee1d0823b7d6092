package lsp

import (
	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"

	"github.com/tangzhangming/tsrs/internal/batch"
)

// methodPreview 返回打开文档转译结果的自定义请求
const methodPreview = "tsrs/preview"

// PreviewParams tsrs/preview 请求参数
type PreviewParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// PreviewResult tsrs/preview 响应
//
// 转译失败时 Output 为空，Errors 为每条诊断的单行文字。
type PreviewResult struct {
	URI     protocol.DocumentURI `json:"uri"`
	Version int                  `json:"version"`
	Output  string               `json:"output"`
	Errors  []string             `json:"errors,omitempty"`
}

func (s *Server) handlePreview(id json.RawMessage, params json.RawMessage) {
	var p PreviewParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeInvalidParams, "Invalid params")
		return
	}

	doc := s.documents.Get(string(p.TextDocument.URI))
	if doc == nil {
		s.sendError(id, codeInvalidParams, "Document not open: "+string(p.TextDocument.URI))
		return
	}

	topts, popts := s.options()
	output, err := doc.transpile(topts, popts)

	result := PreviewResult{
		URI:     p.TextDocument.URI,
		Version: doc.Version,
		Output:  output,
	}
	for _, ce := range batch.Diagnostics(err) {
		result.Errors = append(result.Errors, summarize(ce))
	}
	s.sendResult(id, result)
}
