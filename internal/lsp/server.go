// Package lsp 实现 tsrs 的语言服务器
//
// 服务器随编辑实时转译打开的 TypeScript/JavaScript 文档，把语法错误和不支持的
// 语法结构作为诊断发布，并通过 tsrs/preview 请求返回生成的 Rust 代码。
package lsp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tangzhangming/tsrs/internal/config"
	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/transpiler"
)

// Version 服务器版本
const Version = "0.1.0"

// maxMessageSize 单条消息的上限，JSON 转义后的文档可能比原文大数倍
const maxMessageSize = 8 * maxDocumentSize

// JSON-RPC 错误码
const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeNotInitialized = -32002
)

// Server LSP 服务器
type Server struct {
	// 文档管理
	documents *DocumentManager

	// 工作区根目录与其中的项目配置
	workspaceRoot string
	config        *config.Config
	configMu      sync.RWMutex

	logger *zap.Logger

	// 输入输出
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex

	// 服务器状态
	initialized atomic.Bool
	shutdown    atomic.Bool
	exited      atomic.Bool
}

// NewServer 创建 LSP 服务器，logger 可为 nil
func NewServer(in io.Reader, out io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		documents: NewDocumentManager(),
		config:    config.Default(),
		logger:    logger,
		reader:    bufio.NewReader(in),
		writer:    out,
	}
}

// Run 启动 LSP 服务器主循环，输入结束或收到 exit 通知时返回
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("tsrs language server started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Warn("read message failed", zap.Error(err))
			if err == io.ErrUnexpectedEOF {
				return nil
			}
			continue
		}

		s.handleMessage(ctx, msg)

		if s.exited.Load() {
			s.logger.Info("server exit", zap.Bool("clean", s.shutdown.Load()))
			return nil
		}
	}
}

// readMessage 读取一条 Content-Length 分帧的消息
func (s *Server) readMessage() ([]byte, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line != "" {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line = strings.TrimSpace(line)

		if line == "" {
			// 头部结束
			break
		}

		if strings.HasPrefix(line, "Content-Length:") {
			lengthStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %s", lengthStr)
			}
		}
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	if contentLength > maxMessageSize {
		// 跳过消息体，保持后续消息的分帧
		if _, err := io.CopyN(io.Discard, s.reader, int64(contentLength)); err != nil {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("message of %d bytes exceeds limit of %d bytes", contentLength, maxMessageSize)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	s.logger.Debug("received", zap.ByteString("message", content))
	return content, nil
}

// sendMessage 发送一条消息
func (s *Server) sendMessage(msg interface{}) error {
	content, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("sending", zap.ByteString("message", content))

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	if _, err := io.WriteString(s.writer, header); err != nil {
		return err
	}
	_, err = s.writer.Write(content)
	return err
}

// handleMessage 处理收到的消息
func (s *Server) handleMessage(ctx context.Context, msg []byte) {
	var baseMsg struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id,omitempty"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.Unmarshal(msg, &baseMsg); err != nil {
		s.logger.Warn("invalid message", zap.Error(err))
		s.sendError(json.RawMessage("null"), codeParseError, "Parse error")
		return
	}

	// 初始化之前只接受 initialize 和 exit
	if !s.initialized.Load() && baseMsg.Method != "initialize" && baseMsg.Method != "exit" {
		if baseMsg.ID != nil {
			s.sendError(baseMsg.ID, codeNotInitialized, "Server not initialized")
		}
		return
	}

	switch baseMsg.Method {
	case "initialize":
		s.handleInitialize(baseMsg.ID, baseMsg.Params)
	case "initialized":
		s.logger.Debug("client initialized")
	case "shutdown":
		s.handleShutdown(baseMsg.ID)
	case "exit":
		s.exited.Store(true)
	case "textDocument/didOpen":
		s.handleDidOpen(baseMsg.Params)
	case "textDocument/didChange":
		s.handleDidChange(baseMsg.Params)
	case "textDocument/didClose":
		s.handleDidClose(baseMsg.Params)
	case "textDocument/didSave":
		s.handleDidSave(baseMsg.Params)
	case "workspace/didChangeWatchedFiles":
		s.handleDidChangeWatchedFiles(baseMsg.Params)
	case methodPreview:
		s.handlePreview(baseMsg.ID, baseMsg.Params)
	case "$/cancelRequest", "$/setTrace":
		// 请求都是同步处理的，无需取消
	default:
		s.logger.Debug("unknown method", zap.String("method", baseMsg.Method))
		if baseMsg.ID != nil {
			s.sendError(baseMsg.ID, codeMethodNotFound, "Method not found: "+baseMsg.Method)
		}
	}
}

// handleInitialize 处理初始化请求
func (s *Server) handleInitialize(id json.RawMessage, params json.RawMessage) {
	var initParams protocol.InitializeParams
	if err := json.Unmarshal(params, &initParams); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	if initParams.RootURI != "" {
		s.workspaceRoot = uriToPath(string(initParams.RootURI))
		s.loadConfig()
	}
	s.logger.Info("initialize", zap.String("workspace", s.workspaceRoot))

	result := map[string]interface{}{
		"capabilities": map[string]interface{}{
			// 文档同步：增量同步
			"textDocumentSync": map[string]interface{}{
				"openClose": true,
				"change":    2, // TextDocumentSyncKindIncremental
				"save": map[string]interface{}{
					"includeText": true,
				},
			},
			"experimental": map[string]interface{}{
				"rustPreviewProvider": true,
			},
		},
		"serverInfo": map[string]interface{}{
			"name":    "tsrsls",
			"version": Version,
		},
	}

	s.initialized.Store(true)
	s.sendResult(id, result)
}

// handleShutdown 处理关闭请求
func (s *Server) handleShutdown(id json.RawMessage) {
	s.logger.Info("shutdown requested")
	s.shutdown.Store(true)
	s.sendResult(id, nil)
}

// handleDidOpen 处理文档打开
func (s *Server) handleDidOpen(params json.RawMessage) {
	var p protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Warn("invalid didOpen params", zap.Error(err))
		return
	}

	docURI := string(p.TextDocument.URI)
	s.logger.Debug("document opened", zap.String("uri", docURI))

	s.documents.Open(docURI, p.TextDocument.Text, int(p.TextDocument.Version))
	s.publishDiagnostics(docURI)
}

// handleDidChange 处理文档变更
func (s *Server) handleDidChange(params json.RawMessage) {
	var p protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Warn("invalid didChange params", zap.Error(err))
		return
	}

	docURI := string(p.TextDocument.URI)
	for _, change := range p.ContentChanges {
		s.documents.ApplyChange(docURI, change, int(p.TextDocument.Version))
	}
	s.publishDiagnostics(docURI)
}

// handleDidClose 处理文档关闭，同时清除诊断
func (s *Server) handleDidClose(params json.RawMessage) {
	var p protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Warn("invalid didClose params", zap.Error(err))
		return
	}

	s.logger.Debug("document closed", zap.String("uri", string(p.TextDocument.URI)))
	s.documents.Close(string(p.TextDocument.URI))

	s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         p.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
}

// handleDidSave 处理文档保存
func (s *Server) handleDidSave(params json.RawMessage) {
	var p protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Warn("invalid didSave params", zap.Error(err))
		return
	}

	docURI := string(p.TextDocument.URI)
	if p.Text != "" {
		s.documents.UpdateContent(docURI, p.Text)
	}
	s.publishDiagnostics(docURI)
}

// handleDidChangeWatchedFiles 项目配置变化时重新加载并刷新所有诊断
func (s *Server) handleDidChangeWatchedFiles(params json.RawMessage) {
	var p protocol.DidChangeWatchedFilesParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Warn("invalid didChangeWatchedFiles params", zap.Error(err))
		return
	}

	reload := false
	for _, change := range p.Changes {
		if filepath.Base(uriToPath(string(change.URI))) == config.ConfigFileName {
			reload = true
		}
	}
	if !reload || s.workspaceRoot == "" {
		return
	}

	s.loadConfig()
	s.documents.Invalidate()
	for _, doc := range s.documents.GetAll() {
		s.publishDiagnostics(doc.URI)
	}
}

// loadConfig 从工作区加载 tsrs.toml，失败时保留默认配置
func (s *Server) loadConfig() {
	cfg, root, err := config.Resolve("", s.workspaceRoot)
	if err != nil {
		s.logger.Warn("load config failed", zap.String("workspace", s.workspaceRoot), zap.Error(err))
		cfg = config.Default()
	} else {
		s.logger.Info("config loaded", zap.String("root", root))
	}

	s.configMu.Lock()
	s.config = cfg
	s.configMu.Unlock()
}

// options 当前配置下的转译与打印选项
func (s *Server) options() (*transpiler.Options, *printer.Options) {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config.TranspileOptions(), s.config.PrinterOptions()
}

// publishDiagnostics 发布诊断信息
func (s *Server) publishDiagnostics(docURI string) {
	doc := s.documents.Get(docURI)
	if doc == nil {
		return
	}

	diagnostics := s.getDiagnostics(doc)

	s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(docURI),
		Version:     uint32(doc.Version),
		Diagnostics: diagnostics,
	})
}

// sendResult 发送成功响应
func (s *Server) sendResult(id json.RawMessage, result interface{}) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	if err := s.sendMessage(response); err != nil {
		s.logger.Warn("send result failed", zap.Error(err))
	}
}

// sendError 发送错误响应
func (s *Server) sendError(id json.RawMessage, code int, message string) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	if err := s.sendMessage(response); err != nil {
		s.logger.Warn("send error failed", zap.Error(err))
	}
}

// sendNotification 发送通知
func (s *Server) sendNotification(method string, params interface{}) {
	notification := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	if err := s.sendMessage(notification); err != nil {
		s.logger.Warn("send notification failed", zap.String("method", method), zap.Error(err))
	}
}

// uriToPath 将 URI 转换为文件路径，非 file URI 原样返回
func uriToPath(docURI string) string {
	if !strings.HasPrefix(docURI, uri.FileScheme+"://") {
		return docURI
	}
	u, err := uri.Parse(docURI)
	if err != nil {
		return docURI
	}
	return u.Filename()
}
