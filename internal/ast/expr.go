package ast

import (
	"strconv"
	"strings"

	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 字面量
// ============================================================================

// StringLit 字符串字面量，Value 是处理转义后的内容
type StringLit struct {
	Token token.Token
	Value string
}

func (e *StringLit) Pos() token.Position { return e.Token.Pos }
func (e *StringLit) End() token.Position { return e.Token.End() }
func (e *StringLit) String() string      { return strconv.Quote(e.Value) }
func (e *StringLit) exprNode()           {}

// NumberLit 数字字面量，JS 中所有数字都是 float64
type NumberLit struct {
	Token token.Token
	Value float64
}

func (e *NumberLit) Pos() token.Position { return e.Token.Pos }
func (e *NumberLit) End() token.Position { return e.Token.End() }
func (e *NumberLit) String() string      { return e.Token.Literal }
func (e *NumberLit) exprNode()           {}

// BoolLit 布尔字面量
type BoolLit struct {
	Token token.Token
	Value bool
}

func (e *BoolLit) Pos() token.Position { return e.Token.Pos }
func (e *BoolLit) End() token.Position { return e.Token.End() }
func (e *BoolLit) String() string      { return strconv.FormatBool(e.Value) }
func (e *BoolLit) exprNode()           {}

// NullLit null
type NullLit struct {
	Token token.Token
}

func (e *NullLit) Pos() token.Position { return e.Token.Pos }
func (e *NullLit) End() token.Position { return e.Token.End() }
func (e *NullLit) String() string      { return "null" }
func (e *NullLit) exprNode()           {}

// BigIntLit 大整数字面量 10n
type BigIntLit struct {
	Token  token.Token
	Digits string
}

func (e *BigIntLit) Pos() token.Position { return e.Token.Pos }
func (e *BigIntLit) End() token.Position { return e.Token.End() }
func (e *BigIntLit) String() string      { return e.Digits + "n" }
func (e *BigIntLit) exprNode()           {}

// RegExpLit 正则字面量
type RegExpLit struct {
	Token   token.Token
	Pattern string
	Flags   string
}

func (e *RegExpLit) Pos() token.Position { return e.Token.Pos }
func (e *RegExpLit) End() token.Position { return e.Token.End() }
func (e *RegExpLit) String() string      { return "/" + e.Pattern + "/" + e.Flags }
func (e *RegExpLit) exprNode()           {}

// TemplateLit 模板字符串，len(Quasis) == len(Exprs)+1
type TemplateLit struct {
	Token  token.Token
	Quasis []string
	Exprs  []Expression
}

func (e *TemplateLit) Pos() token.Position { return e.Token.Pos }
func (e *TemplateLit) End() token.Position { return e.Token.End() }
func (e *TemplateLit) String() string {
	var sb strings.Builder
	sb.WriteByte('`')
	for i, q := range e.Quasis {
		sb.WriteString(q)
		if i < len(e.Exprs) {
			sb.WriteString("${" + e.Exprs[i].String() + "}")
		}
	}
	sb.WriteByte('`')
	return sb.String()
}
func (e *TemplateLit) exprNode() {}

// TaggedTemplateExpr tag`...`
type TaggedTemplateExpr struct {
	Tag   Expression
	Quasi *TemplateLit
}

func (e *TaggedTemplateExpr) Pos() token.Position { return e.Tag.Pos() }
func (e *TaggedTemplateExpr) End() token.Position { return e.Quasi.End() }
func (e *TaggedTemplateExpr) String() string      { return e.Tag.String() + e.Quasi.String() }
func (e *TaggedTemplateExpr) exprNode()           {}

// ============================================================================
// 标识符与基本表达式
// ============================================================================

// Ident 标识符，同时可作为绑定模式使用
//
// 私有名称 #x 作为成员属性时也用 Ident 表示，Name 包含 #。
type Ident struct {
	Token token.Token
	Name  string
}

func (e *Ident) Pos() token.Position { return e.Token.Pos }
func (e *Ident) End() token.Position { return e.Token.End() }
func (e *Ident) String() string      { return e.Name }
func (e *Ident) exprNode()           {}
func (e *Ident) patternNode()        {}

// ThisExpr this
type ThisExpr struct {
	Token token.Token
}

func (e *ThisExpr) Pos() token.Position { return e.Token.Pos }
func (e *ThisExpr) End() token.Position { return e.Token.End() }
func (e *ThisExpr) String() string      { return "this" }
func (e *ThisExpr) exprNode()           {}

// SuperExpr super
type SuperExpr struct {
	Token token.Token
}

func (e *SuperExpr) Pos() token.Position { return e.Token.Pos }
func (e *SuperExpr) End() token.Position { return e.Token.End() }
func (e *SuperExpr) String() string      { return "super" }
func (e *SuperExpr) exprNode()           {}

// ArrayLit 数组字面量，空位用 nil 表示
type ArrayLit struct {
	LBracket token.Token
	Elements []Expression
	RBracket token.Token
}

func (e *ArrayLit) Pos() token.Position { return e.LBracket.Pos }
func (e *ArrayLit) End() token.Position { return e.RBracket.End() }
func (e *ArrayLit) String() string      { return "[" + exprList(e.Elements) + "]" }
func (e *ArrayLit) exprNode()           {}

// PropKind 对象属性种类
type PropKind int

const (
	PropInit      PropKind = iota // key: value
	PropShorthand                 // { x }
	PropMethod                    // m() {}
	PropGetter                    // get x() {}
	PropSetter                    // set x(v) {}
	PropSpread                    // ...obj
)

// Property 对象字面量的属性
type Property struct {
	Kind     PropKind
	Key      Expression // PropSpread 时为 nil
	Computed bool
	Value    Expression // 方法时为 *FuncExpr
}

func (p *Property) Pos() token.Position {
	if p.Key != nil {
		return p.Key.Pos()
	}
	return p.Value.Pos()
}

func (p *Property) String() string {
	if p.Kind == PropSpread {
		return "..." + p.Value.String()
	}
	key := p.Key.String()
	if p.Computed {
		key = "[" + key + "]"
	}
	switch p.Kind {
	case PropShorthand:
		return key
	case PropMethod, PropGetter, PropSetter:
		fn := p.Value.(*FuncExpr)
		prefix := ""
		if p.Kind == PropGetter {
			prefix = "get "
		} else if p.Kind == PropSetter {
			prefix = "set "
		}
		return prefix + key + paramList(fn.Params) + " " + fn.Body.String()
	}
	return key + ": " + p.Value.String()
}

// ObjectLit 对象字面量
type ObjectLit struct {
	LBrace token.Token
	Props  []*Property
	RBrace token.Token
}

func (e *ObjectLit) Pos() token.Position { return e.LBrace.Pos }
func (e *ObjectLit) End() token.Position { return e.RBrace.End() }
func (e *ObjectLit) String() string {
	if len(e.Props) == 0 {
		return "{}"
	}
	var parts []string
	for _, p := range e.Props {
		parts = append(parts, p.String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
func (e *ObjectLit) exprNode() {}

// ============================================================================
// 函数与类
// ============================================================================

// FuncExpr 函数表达式，也用于对象方法和类方法
type FuncExpr struct {
	Start      token.Token
	Async      bool
	Generator  bool
	Name       *Ident // 可为 nil
	Params     []*Param
	ReturnType *TypeNode
	Body       *BlockStmt
}

func (e *FuncExpr) Pos() token.Position { return e.Start.Pos }
func (e *FuncExpr) End() token.Position { return e.Body.End() }
func (e *FuncExpr) String() string {
	var sb strings.Builder
	if e.Async {
		sb.WriteString("async ")
	}
	sb.WriteString("function")
	if e.Generator {
		sb.WriteString("*")
	}
	if e.Name != nil {
		sb.WriteString(" " + e.Name.Name)
	}
	sb.WriteString(paramList(e.Params) + typeSuffix(e.ReturnType) + " " + e.Body.String())
	return sb.String()
}
func (e *FuncExpr) exprNode() {}

// ArrowFunc 箭头函数，Body 为 *BlockStmt 或 Expression
type ArrowFunc struct {
	Start      token.Token
	Async      bool
	Params     []*Param
	ReturnType *TypeNode
	Body       Node
}

func (e *ArrowFunc) Pos() token.Position { return e.Start.Pos }
func (e *ArrowFunc) End() token.Position { return e.Body.End() }
func (e *ArrowFunc) String() string {
	prefix := ""
	if e.Async {
		prefix = "async "
	}
	return prefix + paramList(e.Params) + typeSuffix(e.ReturnType) + " => " + e.Body.String()
}
func (e *ArrowFunc) exprNode() {}

// ClassExpr 类表达式
type ClassExpr struct {
	ClassBody
}

func (e *ClassExpr) Pos() token.Position { return e.ClassToken.Pos }
func (e *ClassExpr) End() token.Position { return e.RBrace.End() }
func (e *ClassExpr) String() string      { return e.ClassBody.String() }
func (e *ClassExpr) exprNode()           {}

// ============================================================================
// 运算表达式
// ============================================================================

// UnaryExpr 一元表达式：- + ! ~ typeof void delete
type UnaryExpr struct {
	Operator token.Token
	Operand  Expression
}

func (e *UnaryExpr) Pos() token.Position { return e.Operator.Pos }
func (e *UnaryExpr) End() token.Position { return e.Operand.End() }
func (e *UnaryExpr) String() string {
	if token.IsKeyword(e.Operator.Type) {
		return e.Operator.Literal + " " + e.Operand.String()
	}
	return e.Operator.Literal + e.Operand.String()
}
func (e *UnaryExpr) exprNode() {}

// UpdateExpr ++ / --
type UpdateExpr struct {
	Operator token.Token
	Prefix   bool
	Operand  Expression
}

func (e *UpdateExpr) Pos() token.Position {
	if e.Prefix {
		return e.Operator.Pos
	}
	return e.Operand.Pos()
}
func (e *UpdateExpr) End() token.Position {
	if e.Prefix {
		return e.Operand.End()
	}
	return e.Operator.End()
}
func (e *UpdateExpr) String() string {
	if e.Prefix {
		return e.Operator.Literal + e.Operand.String()
	}
	return e.Operand.String() + e.Operator.Literal
}
func (e *UpdateExpr) exprNode() {}

// BinaryExpr 二元表达式（含逻辑运算、in、instanceof）
type BinaryExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *BinaryExpr) Pos() token.Position { return e.Left.Pos() }
func (e *BinaryExpr) End() token.Position { return e.Right.End() }
func (e *BinaryExpr) String() string {
	return e.Left.String() + " " + e.Operator.Literal + " " + e.Right.String()
}
func (e *BinaryExpr) exprNode() {}

// AssignExpr 赋值表达式
//
// Left 为 Expression（标识符、成员访问）或 Pattern（解构赋值）。
type AssignExpr struct {
	Left     Node
	Operator token.Token
	Right    Expression
}

func (e *AssignExpr) Pos() token.Position { return e.Left.Pos() }
func (e *AssignExpr) End() token.Position { return e.Right.End() }
func (e *AssignExpr) String() string {
	return e.Left.String() + " " + e.Operator.Literal + " " + e.Right.String()
}
func (e *AssignExpr) exprNode() {}

// ConditionalExpr test ? consequent : alternate
type ConditionalExpr struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (e *ConditionalExpr) Pos() token.Position { return e.Test.Pos() }
func (e *ConditionalExpr) End() token.Position { return e.Alternate.End() }
func (e *ConditionalExpr) String() string {
	return e.Test.String() + " ? " + e.Consequent.String() + " : " + e.Alternate.String()
}
func (e *ConditionalExpr) exprNode() {}

// CallExpr 函数调用，Optional 表示 f?.()
type CallExpr struct {
	Callee   Expression
	Optional bool
	Args     []Expression
	RParen   token.Token
}

func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }
func (e *CallExpr) End() token.Position { return e.RParen.End() }
func (e *CallExpr) String() string {
	opt := ""
	if e.Optional {
		opt = "?."
	}
	return e.Callee.String() + opt + "(" + exprList(e.Args) + ")"
}
func (e *CallExpr) exprNode() {}

// NewExpr new Callee(args)
type NewExpr struct {
	NewToken token.Token
	Callee   Expression
	Args     []Expression
	Stop     token.Token
}

func (e *NewExpr) Pos() token.Position { return e.NewToken.Pos }
func (e *NewExpr) End() token.Position { return e.Stop.End() }
func (e *NewExpr) String() string {
	return "new " + e.Callee.String() + "(" + exprList(e.Args) + ")"
}
func (e *NewExpr) exprNode() {}

// MemberExpr 成员访问：obj.prop、obj[expr]、obj?.prop
type MemberExpr struct {
	Object   Expression
	Property Expression // 非计算属性时为 *Ident
	Computed bool
	Optional bool
	Stop     token.Token
}

func (e *MemberExpr) Pos() token.Position { return e.Object.Pos() }
func (e *MemberExpr) End() token.Position { return e.Stop.End() }
func (e *MemberExpr) String() string {
	dot := "."
	if e.Optional {
		dot = "?."
	}
	if e.Computed {
		if e.Optional {
			return e.Object.String() + "?.[" + e.Property.String() + "]"
		}
		return e.Object.String() + "[" + e.Property.String() + "]"
	}
	return e.Object.String() + dot + e.Property.String()
}
func (e *MemberExpr) exprNode()    {}
func (e *MemberExpr) patternNode() {}

// OptionalChainExpr 包含 ?. 的完整访问链
type OptionalChainExpr struct {
	Expr Expression
}

func (e *OptionalChainExpr) Pos() token.Position { return e.Expr.Pos() }
func (e *OptionalChainExpr) End() token.Position { return e.Expr.End() }
func (e *OptionalChainExpr) String() string      { return e.Expr.String() }
func (e *OptionalChainExpr) exprNode()           {}

// SequenceExpr 逗号表达式 a, b
type SequenceExpr struct {
	Exprs []Expression
}

func (e *SequenceExpr) Pos() token.Position { return e.Exprs[0].Pos() }
func (e *SequenceExpr) End() token.Position { return e.Exprs[len(e.Exprs)-1].End() }
func (e *SequenceExpr) String() string      { return exprList(e.Exprs) }
func (e *SequenceExpr) exprNode()           {}

// ParenExpr 括号表达式
type ParenExpr struct {
	LParen token.Token
	Expr   Expression
	RParen token.Token
}

func (e *ParenExpr) Pos() token.Position { return e.LParen.Pos }
func (e *ParenExpr) End() token.Position { return e.RParen.End() }
func (e *ParenExpr) String() string      { return "(" + e.Expr.String() + ")" }
func (e *ParenExpr) exprNode()           {}

// SpreadElement ...expr（数组元素或调用参数）
type SpreadElement struct {
	Ellipsis token.Token
	Argument Expression
}

func (e *SpreadElement) Pos() token.Position { return e.Ellipsis.Pos }
func (e *SpreadElement) End() token.Position { return e.Argument.End() }
func (e *SpreadElement) String() string      { return "..." + e.Argument.String() }
func (e *SpreadElement) exprNode()           {}

// YieldExpr yield [*] [expr]
type YieldExpr struct {
	YieldToken token.Token
	Delegate   bool
	Argument   Expression // 可为 nil
}

func (e *YieldExpr) Pos() token.Position { return e.YieldToken.Pos }
func (e *YieldExpr) End() token.Position {
	if e.Argument != nil {
		return e.Argument.End()
	}
	return e.YieldToken.End()
}
func (e *YieldExpr) String() string {
	result := "yield"
	if e.Delegate {
		result += "*"
	}
	if e.Argument != nil {
		result += " " + e.Argument.String()
	}
	return result
}
func (e *YieldExpr) exprNode() {}

// AwaitExpr await expr
type AwaitExpr struct {
	AwaitToken token.Token
	Argument   Expression
}

func (e *AwaitExpr) Pos() token.Position { return e.AwaitToken.Pos }
func (e *AwaitExpr) End() token.Position { return e.Argument.End() }
func (e *AwaitExpr) String() string      { return "await " + e.Argument.String() }
func (e *AwaitExpr) exprNode()           {}

// MetaProperty new.target / import.meta
type MetaProperty struct {
	Meta     token.Token
	Property *Ident
}

func (e *MetaProperty) Pos() token.Position { return e.Meta.Pos }
func (e *MetaProperty) End() token.Position { return e.Property.End() }
func (e *MetaProperty) String() string      { return e.Meta.Literal + "." + e.Property.Name }
func (e *MetaProperty) exprNode()           {}

// ImportExpr 动态导入 import(source)
type ImportExpr struct {
	ImportToken token.Token
	Source      Expression
	RParen      token.Token
}

func (e *ImportExpr) Pos() token.Position { return e.ImportToken.Pos }
func (e *ImportExpr) End() token.Position { return e.RParen.End() }
func (e *ImportExpr) String() string      { return "import(" + e.Source.String() + ")" }
func (e *ImportExpr) exprNode()           {}

// ============================================================================
// TypeScript 表达式
// ============================================================================

// AsExpr expr as T
type AsExpr struct {
	Expr Expression
	Type *TypeNode
}

func (e *AsExpr) Pos() token.Position { return e.Expr.Pos() }
func (e *AsExpr) End() token.Position { return e.Type.End() }
func (e *AsExpr) String() string      { return e.Expr.String() + " as " + e.Type.Text }
func (e *AsExpr) exprNode()           {}

// SatisfiesExpr expr satisfies T
type SatisfiesExpr struct {
	Expr Expression
	Type *TypeNode
}

func (e *SatisfiesExpr) Pos() token.Position { return e.Expr.Pos() }
func (e *SatisfiesExpr) End() token.Position { return e.Type.End() }
func (e *SatisfiesExpr) String() string      { return e.Expr.String() + " satisfies " + e.Type.Text }
func (e *SatisfiesExpr) exprNode()           {}

// NonNullExpr expr!
type NonNullExpr struct {
	Expr Expression
	Bang token.Token
}

func (e *NonNullExpr) Pos() token.Position { return e.Expr.Pos() }
func (e *NonNullExpr) End() token.Position { return e.Bang.End() }
func (e *NonNullExpr) String() string      { return e.Expr.String() + "!" }
func (e *NonNullExpr) exprNode()           {}

// TypeAssertionExpr <T>expr
type TypeAssertionExpr struct {
	LAngle token.Token
	Type   *TypeNode
	Expr   Expression
}

func (e *TypeAssertionExpr) Pos() token.Position { return e.LAngle.Pos }
func (e *TypeAssertionExpr) End() token.Position { return e.Expr.End() }
func (e *TypeAssertionExpr) String() string      { return "<" + e.Type.Text + ">" + e.Expr.String() }
func (e *TypeAssertionExpr) exprNode()           {}

// ============================================================================
// JSX
// ============================================================================

// JSXAttr JSX 属性 name={value}
type JSXAttr struct {
	Name  string
	Value Expression // 可为 nil
}

// JSXElement <Name attrs>children</Name>
type JSXElement struct {
	Start    token.Token
	Name     string
	Attrs    []*JSXAttr
	Children []Expression
	Stop     token.Token
}

func (e *JSXElement) Pos() token.Position { return e.Start.Pos }
func (e *JSXElement) End() token.Position { return e.Stop.End() }
func (e *JSXElement) String() string {
	var sb strings.Builder
	sb.WriteString("<" + e.Name)
	for _, a := range e.Attrs {
		sb.WriteString(" " + a.Name)
		if a.Value != nil {
			sb.WriteString("={" + a.Value.String() + "}")
		}
	}
	sb.WriteString(">")
	for _, c := range e.Children {
		sb.WriteString(c.String())
	}
	sb.WriteString("</" + e.Name + ">")
	return sb.String()
}
func (e *JSXElement) exprNode() {}

// JSXFragment <>children</>
type JSXFragment struct {
	Start    token.Token
	Children []Expression
	Stop     token.Token
}

func (e *JSXFragment) Pos() token.Position { return e.Start.Pos }
func (e *JSXFragment) End() token.Position { return e.Stop.End() }
func (e *JSXFragment) String() string {
	var sb strings.Builder
	sb.WriteString("<>")
	for _, c := range e.Children {
		sb.WriteString(c.String())
	}
	sb.WriteString("</>")
	return sb.String()
}
func (e *JSXFragment) exprNode() {}

// ============================================================================
// 绑定模式
// ============================================================================

// ArrayPattern [a, , b]，空位用 nil 表示
type ArrayPattern struct {
	LBracket token.Token
	Elements []Pattern
	RBracket token.Token
}

func (p *ArrayPattern) Pos() token.Position { return p.LBracket.Pos }
func (p *ArrayPattern) End() token.Position { return p.RBracket.End() }
func (p *ArrayPattern) String() string {
	var parts []string
	for _, el := range p.Elements {
		if el == nil {
			parts = append(parts, "")
		} else {
			parts = append(parts, el.String())
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (p *ArrayPattern) patternNode() {}

// PatternProp 对象模式中的属性 key: value
type PatternProp struct {
	Key       Expression
	Computed  bool
	Value     Pattern
	Shorthand bool
}

func (p *PatternProp) String() string {
	if p.Shorthand {
		return p.Value.String()
	}
	key := p.Key.String()
	if p.Computed {
		key = "[" + key + "]"
	}
	return key + ": " + p.Value.String()
}

// ObjectPattern { a, b: c, ...rest }
type ObjectPattern struct {
	LBrace token.Token
	Props  []*PatternProp
	Rest   *RestElement
	RBrace token.Token
}

func (p *ObjectPattern) Pos() token.Position { return p.LBrace.Pos }
func (p *ObjectPattern) End() token.Position { return p.RBrace.End() }
func (p *ObjectPattern) String() string {
	var parts []string
	for _, prop := range p.Props {
		parts = append(parts, prop.String())
	}
	if p.Rest != nil {
		parts = append(parts, p.Rest.String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
func (p *ObjectPattern) patternNode() {}

// RestElement ...rest
type RestElement struct {
	Ellipsis token.Token
	Argument Pattern
}

func (p *RestElement) Pos() token.Position { return p.Ellipsis.Pos }
func (p *RestElement) End() token.Position { return p.Argument.End() }
func (p *RestElement) String() string      { return "..." + p.Argument.String() }
func (p *RestElement) patternNode()        {}

// AssignPattern 带默认值的模式 a = 1
type AssignPattern struct {
	Left    Pattern
	Default Expression
}

func (p *AssignPattern) Pos() token.Position { return p.Left.Pos() }
func (p *AssignPattern) End() token.Position { return p.Default.End() }
func (p *AssignPattern) String() string      { return p.Left.String() + " = " + p.Default.String() }
func (p *AssignPattern) patternNode()        {}

// ============================================================================
// 辅助函数
// ============================================================================

func exprList(exprs []Expression) string {
	var parts []string
	for _, e := range exprs {
		if e == nil {
			parts = append(parts, "")
		} else {
			parts = append(parts, e.String())
		}
	}
	return strings.Join(parts, ", ")
}
