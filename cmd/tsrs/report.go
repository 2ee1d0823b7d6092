package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/tangzhangming/tsrs/internal/batch"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/lsp"
)

// reportErrors 输出流水线错误
//
// jsonOut 为 true 时按文件分组，以 LSP publishDiagnostics 参数的形式输出 JSON 到标准输出。
func (a *app) reportErrors(err error, jsonOut bool) {
	diags := batch.Diagnostics(err)
	if jsonOut {
		a.writeJSON(diags)
		return
	}

	r := diag.NewReporterTo(a.stderr)
	for _, d := range diags {
		r.ReportError(d)
	}
	r.Summary()
}

// writeJSON 输出诊断 JSON，没有诊断时输出空数组
func (a *app) writeJSON(diags []*diag.CompileError) {
	files := []protocol.PublishDiagnosticsParams{}
	index := map[string]int{}
	lines := map[string][]string{}

	for _, d := range diags {
		i, ok := index[d.File]
		if !ok {
			i = len(files)
			index[d.File] = i
			files = append(files, protocol.PublishDiagnosticsParams{
				URI:         fileURI(d.File),
				Diagnostics: []protocol.Diagnostic{},
			})
			if data, err := os.ReadFile(d.File); err == nil {
				lines[d.File] = strings.Split(string(data), "\n")
			}
		}
		files[i].Diagnostics = append(files[i].Diagnostics, lsp.ToDiagnostic(d, lines[d.File]))
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return
	}
	a.stdout.Write(append(data, '\n'))
}

func fileURI(path string) protocol.DocumentURI {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return protocol.DocumentURI(uri.File(path))
}

// driverError 以驱动错误码构造诊断
func driverError(code, file string, args ...interface{}) *diag.CompileError {
	return diag.New(code, file, 0, 0, args...)
}

// readInput 读取输入文件，文件不存在为 D0001，其他读取失败为 D0003
func readInput(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", driverError(diag.D0001, filename, filename)
		}
		return "", driverError(diag.D0003, filename, filename, err)
	}
	return string(data), nil
}
