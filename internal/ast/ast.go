package ast

import (
	"strings"

	"github.com/tangzhangming/tsrs/internal/token"
)

// Node 是所有 AST 节点的基接口
type Node interface {
	Pos() token.Position // 返回节点在源代码中的位置
	End() token.Position // 返回节点结束位置
	String() string      // 返回节点的字符串表示（用于调试）
}

// Expression 表示一个表达式节点
type Expression interface {
	Node
	exprNode()
}

// Statement 表示一个语句节点
type Statement interface {
	Node
	stmtNode()
}

// Declaration 表示一个声明节点
type Declaration interface {
	Node
	declNode()
}

// Pattern 表示绑定模式（变量声明、参数、解构赋值的左侧）
type Pattern interface {
	Node
	patternNode()
}

// ModuleItem 表示模块顶层条目：语句或模块声明
type ModuleItem interface {
	Node
	moduleItemNode()
}

// ============================================================================
// 类型标注
// ============================================================================

// TypeNode TypeScript 类型标注
//
// 类型在转译中被擦除，这里只保留原始源码文本。
type TypeNode struct {
	Start token.Position
	Stop  token.Position
	Text  string
}

func (t *TypeNode) Pos() token.Position { return t.Start }
func (t *TypeNode) End() token.Position { return t.Stop }
func (t *TypeNode) String() string      { return t.Text }

func typeSuffix(t *TypeNode) string {
	if t == nil {
		return ""
	}
	return ": " + t.Text
}

// ============================================================================
// 模块
// ============================================================================

// Module 一个源文件
type Module struct {
	Filename string
	Body     []ModuleItem
	EOF      token.Token
}

func (m *Module) Pos() token.Position {
	if len(m.Body) > 0 {
		return m.Body[0].Pos()
	}
	return token.Position{Filename: m.Filename, Line: 1, Column: 1}
}
func (m *Module) End() token.Position { return m.EOF.Pos }
func (m *Module) String() string {
	var sb strings.Builder
	for _, item := range m.Body {
		sb.WriteString(item.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// StmtItem 顶层语句
type StmtItem struct {
	Stmt Statement
}

func (s *StmtItem) Pos() token.Position { return s.Stmt.Pos() }
func (s *StmtItem) End() token.Position { return s.Stmt.End() }
func (s *StmtItem) String() string      { return s.Stmt.String() }
func (s *StmtItem) moduleItemNode()     {}

// ImportSpecifier import { a as b } 中的单项
type ImportSpecifier struct {
	Imported *Ident
	Local    *Ident
}

func (s *ImportSpecifier) String() string {
	if s.Local == nil || s.Local.Name == s.Imported.Name {
		return s.Imported.Name
	}
	return s.Imported.Name + " as " + s.Local.Name
}

// ImportDecl import 声明
//
//	import x from "m"
//	import * as ns from "m"
//	import { a, b as c } from "m"
//	import "m"
type ImportDecl struct {
	ImportToken token.Token
	TypeOnly    bool
	Default     *Ident
	Namespace   *Ident
	Specifiers  []*ImportSpecifier
	Source      *StringLit
}

func (d *ImportDecl) Pos() token.Position { return d.ImportToken.Pos }
func (d *ImportDecl) End() token.Position { return d.Source.End() }
func (d *ImportDecl) String() string {
	var parts []string
	if d.Default != nil {
		parts = append(parts, d.Default.Name)
	}
	if d.Namespace != nil {
		parts = append(parts, "* as "+d.Namespace.Name)
	}
	if len(d.Specifiers) > 0 {
		var specs []string
		for _, s := range d.Specifiers {
			specs = append(specs, s.String())
		}
		parts = append(parts, "{ "+strings.Join(specs, ", ")+" }")
	}
	if len(parts) == 0 {
		return "import " + d.Source.String() + ";"
	}
	return "import " + strings.Join(parts, ", ") + " from " + d.Source.String() + ";"
}
func (d *ImportDecl) moduleItemNode() {}

// ExportDecl export 后跟声明：export const x = 1
type ExportDecl struct {
	ExportToken token.Token
	Decl        Declaration
}

func (d *ExportDecl) Pos() token.Position { return d.ExportToken.Pos }
func (d *ExportDecl) End() token.Position { return d.Decl.End() }
func (d *ExportDecl) String() string      { return "export " + d.Decl.String() }
func (d *ExportDecl) moduleItemNode()     {}

// ExportDefaultDecl export default，Decl 与 Expr 二者有其一
type ExportDefaultDecl struct {
	ExportToken token.Token
	Decl        Declaration
	Expr        Expression
}

func (d *ExportDefaultDecl) Pos() token.Position { return d.ExportToken.Pos }
func (d *ExportDefaultDecl) End() token.Position {
	if d.Decl != nil {
		return d.Decl.End()
	}
	return d.Expr.End()
}
func (d *ExportDefaultDecl) String() string {
	if d.Decl != nil {
		return "export default " + d.Decl.String()
	}
	return "export default " + d.Expr.String() + ";"
}
func (d *ExportDefaultDecl) moduleItemNode() {}

// ExportSpecifier export { a as b } 中的单项
type ExportSpecifier struct {
	Local    *Ident
	Exported *Ident
}

func (s *ExportSpecifier) String() string {
	if s.Exported == nil || s.Exported.Name == s.Local.Name {
		return s.Local.Name
	}
	return s.Local.Name + " as " + s.Exported.Name
}

// ExportNamedDecl export { a, b as c } [from "m"]
type ExportNamedDecl struct {
	ExportToken token.Token
	Specifiers  []*ExportSpecifier
	Source      *StringLit
	RBrace      token.Token
}

func (d *ExportNamedDecl) Pos() token.Position { return d.ExportToken.Pos }
func (d *ExportNamedDecl) End() token.Position {
	if d.Source != nil {
		return d.Source.End()
	}
	return d.RBrace.End()
}
func (d *ExportNamedDecl) String() string {
	var specs []string
	for _, s := range d.Specifiers {
		specs = append(specs, s.String())
	}
	result := "export { " + strings.Join(specs, ", ") + " }"
	if d.Source != nil {
		result += " from " + d.Source.String()
	}
	return result + ";"
}
func (d *ExportNamedDecl) moduleItemNode() {}

// ExportAllDecl export * [as ns] from "m"
type ExportAllDecl struct {
	ExportToken token.Token
	Alias       *Ident
	Source      *StringLit
}

func (d *ExportAllDecl) Pos() token.Position { return d.ExportToken.Pos }
func (d *ExportAllDecl) End() token.Position { return d.Source.End() }
func (d *ExportAllDecl) String() string {
	if d.Alias != nil {
		return "export * as " + d.Alias.Name + " from " + d.Source.String() + ";"
	}
	return "export * from " + d.Source.String() + ";"
}
func (d *ExportAllDecl) moduleItemNode() {}

// AmbientModuleDecl declare module "m" { ... }
type AmbientModuleDecl struct {
	DeclareToken token.Token
	Name         *StringLit
	Body         []ModuleItem
	RBrace       token.Token
}

func (d *AmbientModuleDecl) Pos() token.Position { return d.DeclareToken.Pos }
func (d *AmbientModuleDecl) End() token.Position { return d.RBrace.End() }
func (d *AmbientModuleDecl) String() string {
	return "declare module " + d.Name.String() + " " + itemsBlock(d.Body)
}
func (d *AmbientModuleDecl) moduleItemNode() {}

func itemsBlock(items []ModuleItem) string {
	if len(items) == 0 {
		return "{}"
	}
	var parts []string
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// ============================================================================
// 声明
// ============================================================================

// VarDeclarator 单个声明子句：name[: T] [= init]
type VarDeclarator struct {
	Name Pattern
	Type *TypeNode
	Init Expression // 可为 nil
}

func (d *VarDeclarator) Pos() token.Position { return d.Name.Pos() }
func (d *VarDeclarator) End() token.Position {
	if d.Init != nil {
		return d.Init.End()
	}
	if d.Type != nil {
		return d.Type.End()
	}
	return d.Name.End()
}
func (d *VarDeclarator) String() string {
	result := d.Name.String() + typeSuffix(d.Type)
	if d.Init != nil {
		result += " = " + d.Init.String()
	}
	return result
}

// VarDecl var / let / const 声明
type VarDecl struct {
	Declare bool        // declare var x: T
	Kind    token.Token // VAR、LET 或 CONST
	Decls   []*VarDeclarator
}

func (d *VarDecl) Pos() token.Position { return d.Kind.Pos }
func (d *VarDecl) End() token.Position {
	if len(d.Decls) > 0 {
		return d.Decls[len(d.Decls)-1].End()
	}
	return d.Kind.End()
}
func (d *VarDecl) String() string {
	var parts []string
	for _, decl := range d.Decls {
		parts = append(parts, decl.String())
	}
	prefix := ""
	if d.Declare {
		prefix = "declare "
	}
	return prefix + d.Kind.Literal + " " + strings.Join(parts, ", ") + ";"
}
func (d *VarDecl) declNode() {}

// Param 函数参数
type Param struct {
	Pattern  Pattern // Ident、解构模式、RestElement 或 AssignPattern
	Type     *TypeNode
	Optional bool
}

func (p *Param) String() string {
	result := p.Pattern.String()
	if p.Optional {
		result += "?"
	}
	return result + typeSuffix(p.Type)
}

func paramList(params []*Param) string {
	var parts []string
	for _, p := range params {
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FuncDecl 函数声明
type FuncDecl struct {
	Declare    bool
	Start      token.Token // function 或 async
	Async      bool
	Generator  bool
	Name       *Ident
	Params     []*Param
	ReturnType *TypeNode
	Body       *BlockStmt // declare function 时为 nil
	Stop       token.Token
}

func (d *FuncDecl) Pos() token.Position { return d.Start.Pos }
func (d *FuncDecl) End() token.Position {
	if d.Body != nil {
		return d.Body.End()
	}
	return d.Stop.End()
}
func (d *FuncDecl) String() string {
	var sb strings.Builder
	if d.Async {
		sb.WriteString("async ")
	}
	sb.WriteString("function")
	if d.Generator {
		sb.WriteString("*")
	}
	sb.WriteString(" " + d.Name.Name + paramList(d.Params) + typeSuffix(d.ReturnType))
	if d.Body != nil {
		sb.WriteString(" " + d.Body.String())
	} else {
		sb.WriteString(";")
	}
	return sb.String()
}
func (d *FuncDecl) declNode() {}

// MemberKind 类成员种类
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberGetter
	MemberSetter
	MemberConstructor
	MemberStaticBlock
)

// ClassMember 类成员
type ClassMember struct {
	Start    token.Token
	Kind     MemberKind
	Static   bool
	Key      Expression // Ident、StringLit、NumberLit 或计算属性
	Computed bool
	Type     *TypeNode
	Value    Expression // 字段初始值或方法（*FuncExpr）
	Block    *BlockStmt // static { }
}

func (m *ClassMember) String() string {
	var sb strings.Builder
	if m.Static {
		sb.WriteString("static ")
	}
	if m.Kind == MemberStaticBlock {
		sb.WriteString(m.Block.String())
		return sb.String()
	}
	switch m.Kind {
	case MemberGetter:
		sb.WriteString("get ")
	case MemberSetter:
		sb.WriteString("set ")
	}
	key := m.Key.String()
	if m.Computed {
		key = "[" + key + "]"
	}
	sb.WriteString(key)
	if fn, ok := m.Value.(*FuncExpr); ok && m.Kind != MemberField {
		sb.WriteString(paramList(fn.Params) + typeSuffix(fn.ReturnType) + " " + fn.Body.String())
		return sb.String()
	}
	sb.WriteString(typeSuffix(m.Type))
	if m.Value != nil {
		sb.WriteString(" = " + m.Value.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// ClassBody 类声明与类表达式共用的部分
type ClassBody struct {
	ClassToken token.Token
	Name       *Ident // 类表达式可为 nil
	SuperClass Expression
	Members    []*ClassMember
	RBrace     token.Token
}

func (c *ClassBody) String() string {
	var sb strings.Builder
	sb.WriteString("class")
	if c.Name != nil {
		sb.WriteString(" " + c.Name.Name)
	}
	if c.SuperClass != nil {
		sb.WriteString(" extends " + c.SuperClass.String())
	}
	sb.WriteString(" {")
	for _, m := range c.Members {
		sb.WriteString(" " + m.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// ClassDecl 类声明
type ClassDecl struct {
	Declare bool
	ClassBody
}

func (d *ClassDecl) Pos() token.Position { return d.ClassToken.Pos }
func (d *ClassDecl) End() token.Position { return d.RBrace.End() }
func (d *ClassDecl) String() string      { return d.ClassBody.String() }
func (d *ClassDecl) declNode()           {}

// UsingDecl using / await using 声明
type UsingDecl struct {
	Start token.Token
	Await bool
	Decls []*VarDeclarator
}

func (d *UsingDecl) Pos() token.Position { return d.Start.Pos }
func (d *UsingDecl) End() token.Position {
	if len(d.Decls) > 0 {
		return d.Decls[len(d.Decls)-1].End()
	}
	return d.Start.End()
}
func (d *UsingDecl) String() string {
	var parts []string
	for _, decl := range d.Decls {
		parts = append(parts, decl.String())
	}
	prefix := "using "
	if d.Await {
		prefix = "await using "
	}
	return prefix + strings.Join(parts, ", ") + ";"
}
func (d *UsingDecl) declNode() {}

// InterfaceDecl interface 声明，接口体保留为类型文本
type InterfaceDecl struct {
	InterfaceToken token.Token
	Name           *Ident
	Body           *TypeNode
}

func (d *InterfaceDecl) Pos() token.Position { return d.InterfaceToken.Pos }
func (d *InterfaceDecl) End() token.Position { return d.Body.End() }
func (d *InterfaceDecl) String() string {
	return "interface " + d.Name.Name + " " + d.Body.Text
}
func (d *InterfaceDecl) declNode() {}

// TypeAliasDecl type X = T
type TypeAliasDecl struct {
	TypeToken token.Token
	Name      *Ident
	Type      *TypeNode
}

func (d *TypeAliasDecl) Pos() token.Position { return d.TypeToken.Pos }
func (d *TypeAliasDecl) End() token.Position { return d.Type.End() }
func (d *TypeAliasDecl) String() string {
	return "type " + d.Name.Name + " = " + d.Type.Text + ";"
}
func (d *TypeAliasDecl) declNode() {}

// EnumMember 枚举成员
type EnumMember struct {
	Name Expression // Ident 或 StringLit
	Init Expression
}

// EnumDecl [const] enum E { A, B = 2 }
type EnumDecl struct {
	EnumToken token.Token
	Const     bool
	Name      *Ident
	Members   []*EnumMember
	RBrace    token.Token
}

func (d *EnumDecl) Pos() token.Position { return d.EnumToken.Pos }
func (d *EnumDecl) End() token.Position { return d.RBrace.End() }
func (d *EnumDecl) String() string {
	var parts []string
	for _, m := range d.Members {
		if m.Init != nil {
			parts = append(parts, m.Name.String()+" = "+m.Init.String())
		} else {
			parts = append(parts, m.Name.String())
		}
	}
	prefix := "enum "
	if d.Const {
		prefix = "const enum "
	}
	return prefix + d.Name.Name + " { " + strings.Join(parts, ", ") + " }"
}
func (d *EnumDecl) declNode() {}

// NamespaceDecl namespace A.B { ... }
type NamespaceDecl struct {
	NamespaceToken token.Token
	Name           []*Ident
	Body           []ModuleItem
	RBrace         token.Token
}

func (d *NamespaceDecl) Pos() token.Position { return d.NamespaceToken.Pos }
func (d *NamespaceDecl) End() token.Position { return d.RBrace.End() }
func (d *NamespaceDecl) String() string {
	var names []string
	for _, n := range d.Name {
		names = append(names, n.Name)
	}
	return "namespace " + strings.Join(names, ".") + " " + itemsBlock(d.Body)
}
func (d *NamespaceDecl) declNode() {}
