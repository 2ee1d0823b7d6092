package ast

import (
	"strings"

	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 语句节点
// ============================================================================

// BlockStmt 代码块 { ... }
type BlockStmt struct {
	LBrace token.Token
	Body   []Statement
	RBrace token.Token
}

func (s *BlockStmt) Pos() token.Position { return s.LBrace.Pos }
func (s *BlockStmt) End() token.Position { return s.RBrace.End() }
func (s *BlockStmt) String() string {
	if len(s.Body) == 0 {
		return "{}"
	}
	var parts []string
	for _, stmt := range s.Body {
		parts = append(parts, stmt.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
func (s *BlockStmt) stmtNode() {}

// EmptyStmt 空语句 ;
type EmptyStmt struct {
	Semicolon token.Token
}

func (s *EmptyStmt) Pos() token.Position { return s.Semicolon.Pos }
func (s *EmptyStmt) End() token.Position { return s.Semicolon.End() }
func (s *EmptyStmt) String() string      { return ";" }
func (s *EmptyStmt) stmtNode()           {}

// DebuggerStmt debugger;
type DebuggerStmt struct {
	Token token.Token
}

func (s *DebuggerStmt) Pos() token.Position { return s.Token.Pos }
func (s *DebuggerStmt) End() token.Position { return s.Token.End() }
func (s *DebuggerStmt) String() string      { return "debugger;" }
func (s *DebuggerStmt) stmtNode()           {}

// WithStmt with (obj) body
type WithStmt struct {
	WithToken token.Token
	Object    Expression
	Body      Statement
}

func (s *WithStmt) Pos() token.Position { return s.WithToken.Pos }
func (s *WithStmt) End() token.Position { return s.Body.End() }
func (s *WithStmt) String() string {
	return "with (" + s.Object.String() + ") " + s.Body.String()
}
func (s *WithStmt) stmtNode() {}

// ReturnStmt return [value];
type ReturnStmt struct {
	ReturnToken token.Token
	Value       Expression // 可为 nil
}

func (s *ReturnStmt) Pos() token.Position { return s.ReturnToken.Pos }
func (s *ReturnStmt) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.ReturnToken.End()
}
func (s *ReturnStmt) String() string {
	if s.Value != nil {
		return "return " + s.Value.String() + ";"
	}
	return "return;"
}
func (s *ReturnStmt) stmtNode() {}

// LabeledStmt label: body
type LabeledStmt struct {
	Label *Ident
	Body  Statement
}

func (s *LabeledStmt) Pos() token.Position { return s.Label.Pos() }
func (s *LabeledStmt) End() token.Position { return s.Body.End() }
func (s *LabeledStmt) String() string      { return s.Label.Name + ": " + s.Body.String() }
func (s *LabeledStmt) stmtNode()           {}

// BreakStmt break [label];
type BreakStmt struct {
	BreakToken token.Token
	Label      *Ident
}

func (s *BreakStmt) Pos() token.Position { return s.BreakToken.Pos }
func (s *BreakStmt) End() token.Position {
	if s.Label != nil {
		return s.Label.End()
	}
	return s.BreakToken.End()
}
func (s *BreakStmt) String() string {
	if s.Label != nil {
		return "break " + s.Label.Name + ";"
	}
	return "break;"
}
func (s *BreakStmt) stmtNode() {}

// ContinueStmt continue [label];
type ContinueStmt struct {
	ContinueToken token.Token
	Label         *Ident
}

func (s *ContinueStmt) Pos() token.Position { return s.ContinueToken.Pos }
func (s *ContinueStmt) End() token.Position {
	if s.Label != nil {
		return s.Label.End()
	}
	return s.ContinueToken.End()
}
func (s *ContinueStmt) String() string {
	if s.Label != nil {
		return "continue " + s.Label.Name + ";"
	}
	return "continue;"
}
func (s *ContinueStmt) stmtNode() {}

// IfStmt if (test) consequent [else alternate]
type IfStmt struct {
	IfToken    token.Token
	Test       Expression
	Consequent Statement
	Alternate  Statement // 可为 nil
}

func (s *IfStmt) Pos() token.Position { return s.IfToken.Pos }
func (s *IfStmt) End() token.Position {
	if s.Alternate != nil {
		return s.Alternate.End()
	}
	return s.Consequent.End()
}
func (s *IfStmt) String() string {
	result := "if (" + s.Test.String() + ") " + s.Consequent.String()
	if s.Alternate != nil {
		result += " else " + s.Alternate.String()
	}
	return result
}
func (s *IfStmt) stmtNode() {}

// SwitchCase case test: / default:
type SwitchCase struct {
	CaseToken token.Token
	Test      Expression // default 时为 nil
	Body      []Statement
}

// SwitchStmt switch (x) { ... }
type SwitchStmt struct {
	SwitchToken  token.Token
	Discriminant Expression
	Cases        []*SwitchCase
	RBrace       token.Token
}

func (s *SwitchStmt) Pos() token.Position { return s.SwitchToken.Pos }
func (s *SwitchStmt) End() token.Position { return s.RBrace.End() }
func (s *SwitchStmt) String() string {
	var sb strings.Builder
	sb.WriteString("switch (" + s.Discriminant.String() + ") {")
	for _, c := range s.Cases {
		if c.Test != nil {
			sb.WriteString(" case " + c.Test.String() + ":")
		} else {
			sb.WriteString(" default:")
		}
		for _, stmt := range c.Body {
			sb.WriteString(" " + stmt.String())
		}
	}
	sb.WriteString(" }")
	return sb.String()
}
func (s *SwitchStmt) stmtNode() {}

// ThrowStmt throw expr;
type ThrowStmt struct {
	ThrowToken token.Token
	Argument   Expression
}

func (s *ThrowStmt) Pos() token.Position { return s.ThrowToken.Pos }
func (s *ThrowStmt) End() token.Position { return s.Argument.End() }
func (s *ThrowStmt) String() string      { return "throw " + s.Argument.String() + ";" }
func (s *ThrowStmt) stmtNode()           {}

// TryStmt try {} catch (e) {} finally {}
type TryStmt struct {
	TryToken  token.Token
	Block     *BlockStmt
	Param     Pattern    // catch 参数，可为 nil
	Handler   *BlockStmt // 可为 nil
	Finalizer *BlockStmt // 可为 nil
}

func (s *TryStmt) Pos() token.Position { return s.TryToken.Pos }
func (s *TryStmt) End() token.Position {
	if s.Finalizer != nil {
		return s.Finalizer.End()
	}
	if s.Handler != nil {
		return s.Handler.End()
	}
	return s.Block.End()
}
func (s *TryStmt) String() string {
	result := "try " + s.Block.String()
	if s.Handler != nil {
		result += " catch "
		if s.Param != nil {
			result += "(" + s.Param.String() + ") "
		}
		result += s.Handler.String()
	}
	if s.Finalizer != nil {
		result += " finally " + s.Finalizer.String()
	}
	return result
}
func (s *TryStmt) stmtNode() {}

// WhileStmt while (test) body
type WhileStmt struct {
	WhileToken token.Token
	Test       Expression
	Body       Statement
}

func (s *WhileStmt) Pos() token.Position { return s.WhileToken.Pos }
func (s *WhileStmt) End() token.Position { return s.Body.End() }
func (s *WhileStmt) String() string {
	return "while (" + s.Test.String() + ") " + s.Body.String()
}
func (s *WhileStmt) stmtNode() {}

// DoWhileStmt do body while (test);
type DoWhileStmt struct {
	DoToken token.Token
	Body    Statement
	Test    Expression
	RParen  token.Token
}

func (s *DoWhileStmt) Pos() token.Position { return s.DoToken.Pos }
func (s *DoWhileStmt) End() token.Position { return s.RParen.End() }
func (s *DoWhileStmt) String() string {
	return "do " + s.Body.String() + " while (" + s.Test.String() + ");"
}
func (s *DoWhileStmt) stmtNode() {}

// ForStmt for (init; test; update) body
//
// Init 为 *VarDecl 或 Expression，可为 nil。
type ForStmt struct {
	ForToken token.Token
	Init     Node
	Test     Expression // 可为 nil
	Update   Expression // 可为 nil
	Body     Statement
}

func (s *ForStmt) Pos() token.Position { return s.ForToken.Pos }
func (s *ForStmt) End() token.Position { return s.Body.End() }
func (s *ForStmt) String() string {
	var init, test, update string
	if s.Init != nil {
		init = strings.TrimSuffix(s.Init.String(), ";")
	}
	if s.Test != nil {
		test = " " + s.Test.String()
	}
	if s.Update != nil {
		update = " " + s.Update.String()
	}
	return "for (" + init + ";" + test + ";" + update + ") " + s.Body.String()
}
func (s *ForStmt) stmtNode() {}

// ForInStmt for (left in right) body
//
// Left 为 *VarDecl 或 Pattern。
type ForInStmt struct {
	ForToken token.Token
	Left     Node
	Right    Expression
	Body     Statement
}

func (s *ForInStmt) Pos() token.Position { return s.ForToken.Pos }
func (s *ForInStmt) End() token.Position { return s.Body.End() }
func (s *ForInStmt) String() string {
	return "for (" + strings.TrimSuffix(s.Left.String(), ";") + " in " + s.Right.String() + ") " + s.Body.String()
}
func (s *ForInStmt) stmtNode() {}

// ForOfStmt for [await] (left of right) body
type ForOfStmt struct {
	ForToken token.Token
	Await    bool
	Left     Node
	Right    Expression
	Body     Statement
}

func (s *ForOfStmt) Pos() token.Position { return s.ForToken.Pos }
func (s *ForOfStmt) End() token.Position { return s.Body.End() }
func (s *ForOfStmt) String() string {
	prefix := "for ("
	if s.Await {
		prefix = "for await ("
	}
	return prefix + strings.TrimSuffix(s.Left.String(), ";") + " of " + s.Right.String() + ") " + s.Body.String()
}
func (s *ForOfStmt) stmtNode() {}

// DeclStmt 声明语句
type DeclStmt struct {
	Decl Declaration
}

func (s *DeclStmt) Pos() token.Position { return s.Decl.Pos() }
func (s *DeclStmt) End() token.Position { return s.Decl.End() }
func (s *DeclStmt) String() string      { return s.Decl.String() }
func (s *DeclStmt) stmtNode()           {}

// ExprStmt 表达式语句
type ExprStmt struct {
	Expr      Expression
	Semicolon token.Token // ASI 插入时为零值
}

func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (s *ExprStmt) End() token.Position { return s.Expr.End() }
func (s *ExprStmt) String() string      { return s.Expr.String() + ";" }
func (s *ExprStmt) stmtNode()           {}
