// Package transpiler 把 JS/TS 语法树改写为 Rust 语法树
//
// 转译按模块、语句、声明、表达式四层递归进行，遇到第一个不支持的结构立即返回
// *Error，不产生部分输出。Transpiler 不保存跨调用的可变状态，可在多个 goroutine
// 中同时转译不同的模块。
package transpiler

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/rsast"
)

// Transpiler 转译器
type Transpiler struct {
	opts *Options
}

// New 创建转译器，opts 为 nil 时使用默认选项
func New(opts *Options) *Transpiler {
	return &Transpiler{opts: opts.withDefaults()}
}

// Options 返回生效的选项副本
func (t *Transpiler) Options() Options {
	return *t.opts
}

// TranspileModule 使用默认选项转译模块
func TranspileModule(m *ast.Module) (*rsast.File, error) {
	return New(nil).Module(m)
}
