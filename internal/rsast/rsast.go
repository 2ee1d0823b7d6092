// Package rsast 定义转译输出使用的 Rust 语法树子集
package rsast

import "strconv"

// ============================================================================
// 基础接口
// ============================================================================

// Node 所有 Rust 语法树节点
type Node interface {
	rsNode()
}

// Item 顶层项：use、fn
type Item interface {
	Node
	itemNode()
}

// Stmt 语句：let、表达式语句、项语句
type Stmt interface {
	Node
	stmtNode()
}

// Expr 表达式
type Expr interface {
	Node
	exprNode()
}

// Lit 字面量
type Lit interface {
	Node
	litNode()
}

// File 一个 Rust 源文件
type File struct {
	Items []Item
}

func (f *File) rsNode() {}

// Block { stmts }
type Block struct {
	Stmts []Stmt
}

func (b *Block) rsNode() {}

// ============================================================================
// 项
// ============================================================================

// Attribute 外部属性 #[path(args)]
//
// Args 为空时输出 #[path]。
type Attribute struct {
	Path string
	Args []string
}

func (a *Attribute) rsNode() {}

// UseItem use a::b::*;
type UseItem struct {
	Path []string
	Glob bool // 末尾为 ::*
}

func (i *UseItem) rsNode()   {}
func (i *UseItem) itemNode() {}

// FnItem 无参数、无返回值的函数
type FnItem struct {
	Attrs []*Attribute
	Name  string
	Body  *Block
}

func (i *FnItem) rsNode()   {}
func (i *FnItem) itemNode() {}

// ============================================================================
// 语句
// ============================================================================

// PatIdent 标识符模式，可带 mut
type PatIdent struct {
	Name    string
	Mutable bool
}

func (p *PatIdent) rsNode() {}

// LocalStmt let [mut] name = init;
type LocalStmt struct {
	Pat  *PatIdent
	Init Expr
}

func (s *LocalStmt) rsNode()   {}
func (s *LocalStmt) stmtNode() {}

// ExprStmt 表达式语句，Semi 为 false 时没有结尾分号（块尾表达式或块状表达式）
type ExprStmt struct {
	X    Expr
	Semi bool
}

func (s *ExprStmt) rsNode()   {}
func (s *ExprStmt) stmtNode() {}

// ItemStmt 出现在语句位置的项
type ItemStmt struct {
	Item Item
}

func (s *ItemStmt) rsNode()   {}
func (s *ItemStmt) stmtNode() {}

// ============================================================================
// 字面量
// ============================================================================

// LitStr 字符串字面量，Value 为未转义的内容
type LitStr struct {
	Value string
}

// LitBool true / false
type LitBool struct {
	Value bool
}

// LitInt 整数字面量，Digits 为十进制数字（不含符号）
type LitInt struct {
	Digits string
}

// LitFloat 浮点字面量，Text 一定含有小数点或指数
type LitFloat struct {
	Text string
}

func (l *LitStr) rsNode()   {}
func (l *LitBool) rsNode()  {}
func (l *LitInt) rsNode()   {}
func (l *LitFloat) rsNode() {}

func (l *LitStr) litNode()   {}
func (l *LitBool) litNode()  {}
func (l *LitInt) litNode()   {}
func (l *LitFloat) litNode() {}

// ============================================================================
// 表达式
// ============================================================================

// LitExpr 字面量表达式
type LitExpr struct {
	Lit Lit
}

// PathExpr a::b::c，单段时即为变量引用
type PathExpr struct {
	Segments []string
}

// UnaryExpr -x、!x
type UnaryExpr struct {
	Op UnOp
	X  Expr
}

// BinaryExpr left op right
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// AssignExpr left = right
type AssignExpr struct {
	Left  Expr
	Right Expr
}

// AssignOpExpr 复合赋值 left op= right
type AssignOpExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// MethodCallExpr receiver.method(args)
type MethodCallExpr struct {
	Receiver Expr
	Method   string
	Args     []Expr
}

// CallExpr func(args)
type CallExpr struct {
	Func Expr
	Args []Expr
}

// ParenExpr (x)
type ParenExpr struct {
	X Expr
}

// BlockExpr { ... }
type BlockExpr struct {
	Block *Block
}

// IfExpr if cond { then } else <else>
//
// Else 为 nil、*BlockExpr 或 *IfExpr。
type IfExpr struct {
	Cond Expr
	Then *Block
	Else Expr
}

// WhileExpr while cond { body }
type WhileExpr struct {
	Cond Expr
	Body *Block
}

// LoopExpr loop { body }
type LoopExpr struct {
	Body *Block
}

// ForLoopExpr for pat in iter { body }
type ForLoopExpr struct {
	Pat  *PatIdent
	Iter Expr
	Body *Block
}

// RangeExpr start..end 或 start..=end
type RangeExpr struct {
	Start  Expr
	End    Expr
	Closed bool
}

// ReturnExpr return [x]
type ReturnExpr struct {
	X Expr // 可为 nil
}

// BreakExpr break
type BreakExpr struct{}

// ContinueExpr continue
type ContinueExpr struct{}

// MacroExpr name!(args)
type MacroExpr struct {
	Name string
	Args []Expr
}

func (e *LitExpr) rsNode()        {}
func (e *PathExpr) rsNode()       {}
func (e *UnaryExpr) rsNode()      {}
func (e *BinaryExpr) rsNode()     {}
func (e *AssignExpr) rsNode()     {}
func (e *AssignOpExpr) rsNode()   {}
func (e *MethodCallExpr) rsNode() {}
func (e *CallExpr) rsNode()       {}
func (e *ParenExpr) rsNode()      {}
func (e *BlockExpr) rsNode()      {}
func (e *IfExpr) rsNode()         {}
func (e *WhileExpr) rsNode()      {}
func (e *LoopExpr) rsNode()       {}
func (e *ForLoopExpr) rsNode()    {}
func (e *RangeExpr) rsNode()      {}
func (e *ReturnExpr) rsNode()     {}
func (e *BreakExpr) rsNode()      {}
func (e *ContinueExpr) rsNode()   {}
func (e *MacroExpr) rsNode()      {}

func (e *LitExpr) exprNode()        {}
func (e *PathExpr) exprNode()       {}
func (e *UnaryExpr) exprNode()      {}
func (e *BinaryExpr) exprNode()     {}
func (e *AssignExpr) exprNode()     {}
func (e *AssignOpExpr) exprNode()   {}
func (e *MethodCallExpr) exprNode() {}
func (e *CallExpr) exprNode()       {}
func (e *ParenExpr) exprNode()      {}
func (e *BlockExpr) exprNode()      {}
func (e *IfExpr) exprNode()         {}
func (e *WhileExpr) exprNode()      {}
func (e *LoopExpr) exprNode()       {}
func (e *ForLoopExpr) exprNode()    {}
func (e *RangeExpr) exprNode()      {}
func (e *ReturnExpr) exprNode()     {}
func (e *BreakExpr) exprNode()      {}
func (e *ContinueExpr) exprNode()   {}
func (e *MacroExpr) exprNode()      {}

// ============================================================================
// 构造辅助
// ============================================================================

// Ident 单段路径
func Ident(name string) *PathExpr {
	return &PathExpr{Segments: []string{name}}
}

// Str 字符串字面量表达式
func Str(s string) *LitExpr {
	return &LitExpr{Lit: &LitStr{Value: s}}
}

// Bool 布尔字面量表达式
func Bool(v bool) *LitExpr {
	return &LitExpr{Lit: &LitBool{Value: v}}
}

// Int 整数字面量表达式，负数输出为 -n
func Int(v int64) Expr {
	if v < 0 {
		// MinInt64 取负会溢出，按无符号数取绝对值
		return &UnaryExpr{Op: Neg, X: &LitExpr{Lit: &LitInt{Digits: strconv.FormatUint(uint64(-(v+1))+1, 10)}}}
	}
	return &LitExpr{Lit: &LitInt{Digits: strconv.FormatInt(v, 10)}}
}

// Semi 把表达式包装为带分号的语句
func Semi(x Expr) *ExprStmt {
	return &ExprStmt{X: x, Semi: true}
}

// BlockLike 判断表达式是否以块结尾（if、while、loop、for、块）
//
// 这类表达式作为语句时分号可省略。
func BlockLike(x Expr) bool {
	switch x.(type) {
	case *BlockExpr, *IfExpr, *WhileExpr, *LoopExpr, *ForLoopExpr:
		return true
	}
	return false
}
