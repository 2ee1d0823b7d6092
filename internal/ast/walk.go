package ast

// ============================================================================
// 语法树遍历
// ============================================================================

// Inspect 深度优先遍历语法树
//
// 对每个节点先调用 f(node)；f 返回 true 时继续访问子节点，
// 子节点访问完毕后调用 f(nil)。
func Inspect(node Node, f func(Node) bool) {
	if isNilNode(node) || !f(node) {
		return
	}

	walkChildren(node, f)
	f(nil)
}

func isNilNode(node Node) bool {
	if node == nil {
		return true
	}
	// 接口内的 nil 指针
	switch n := node.(type) {
	case *Ident:
		return n == nil
	case *BlockStmt:
		return n == nil
	case *StringLit:
		return n == nil
	case *TypeNode:
		return n == nil
	case *VarDecl:
		return n == nil
	case *TemplateLit:
		return n == nil
	case *RestElement:
		return n == nil
	case *FuncExpr:
		return n == nil
	}
	return false
}

func walkExprs(exprs []Expression, f func(Node) bool) {
	for _, e := range exprs {
		if e != nil {
			Inspect(e, f)
		}
	}
}

func walkStmts(stmts []Statement, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

func walkItems(items []ModuleItem, f func(Node) bool) {
	for _, item := range items {
		Inspect(item, f)
	}
}

func walkParams(params []*Param, f func(Node) bool) {
	for _, p := range params {
		Inspect(p.Pattern, f)
	}
}

func walkDeclarators(decls []*VarDeclarator, f func(Node) bool) {
	for _, d := range decls {
		Inspect(d.Name, f)
		if d.Init != nil {
			Inspect(d.Init, f)
		}
	}
}

func walkClass(c *ClassBody, f func(Node) bool) {
	if c.Name != nil {
		Inspect(c.Name, f)
	}
	if c.SuperClass != nil {
		Inspect(c.SuperClass, f)
	}
	for _, m := range c.Members {
		if m.Key != nil {
			Inspect(m.Key, f)
		}
		if m.Value != nil {
			Inspect(m.Value, f)
		}
		if m.Block != nil {
			Inspect(m.Block, f)
		}
	}
}

func walkChildren(node Node, f func(Node) bool) {
	switch n := node.(type) {
	// 模块
	case *Module:
		walkItems(n.Body, f)
	case *StmtItem:
		Inspect(n.Stmt, f)
	case *ImportDecl:
		Inspect(n.Source, f)
	case *ExportDecl:
		Inspect(n.Decl, f)
	case *ExportDefaultDecl:
		if n.Decl != nil {
			Inspect(n.Decl, f)
		} else {
			Inspect(n.Expr, f)
		}
	case *ExportNamedDecl, *ExportAllDecl:
		// 无子表达式
	case *AmbientModuleDecl:
		walkItems(n.Body, f)

	// 声明
	case *VarDecl:
		walkDeclarators(n.Decls, f)
	case *UsingDecl:
		walkDeclarators(n.Decls, f)
	case *FuncDecl:
		Inspect(n.Name, f)
		walkParams(n.Params, f)
		Inspect(n.Body, f)
	case *ClassDecl:
		walkClass(&n.ClassBody, f)
	case *InterfaceDecl, *TypeAliasDecl:
		// 类型在转译中被擦除
	case *EnumDecl:
		for _, m := range n.Members {
			if m.Init != nil {
				Inspect(m.Init, f)
			}
		}
	case *NamespaceDecl:
		walkItems(n.Body, f)

	// 语句
	case *BlockStmt:
		walkStmts(n.Body, f)
	case *EmptyStmt, *DebuggerStmt:
	case *WithStmt:
		Inspect(n.Object, f)
		Inspect(n.Body, f)
	case *ReturnStmt:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *LabeledStmt:
		Inspect(n.Body, f)
	case *BreakStmt, *ContinueStmt:
	case *IfStmt:
		Inspect(n.Test, f)
		Inspect(n.Consequent, f)
		if n.Alternate != nil {
			Inspect(n.Alternate, f)
		}
	case *SwitchStmt:
		Inspect(n.Discriminant, f)
		for _, c := range n.Cases {
			if c.Test != nil {
				Inspect(c.Test, f)
			}
			walkStmts(c.Body, f)
		}
	case *ThrowStmt:
		Inspect(n.Argument, f)
	case *TryStmt:
		Inspect(n.Block, f)
		if n.Param != nil {
			Inspect(n.Param, f)
		}
		Inspect(n.Handler, f)
		Inspect(n.Finalizer, f)
	case *WhileStmt:
		Inspect(n.Test, f)
		Inspect(n.Body, f)
	case *DoWhileStmt:
		Inspect(n.Body, f)
		Inspect(n.Test, f)
	case *ForStmt:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
		if n.Test != nil {
			Inspect(n.Test, f)
		}
		if n.Update != nil {
			Inspect(n.Update, f)
		}
		Inspect(n.Body, f)
	case *ForInStmt:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
		Inspect(n.Body, f)
	case *ForOfStmt:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
		Inspect(n.Body, f)
	case *DeclStmt:
		Inspect(n.Decl, f)
	case *ExprStmt:
		Inspect(n.Expr, f)

	// 表达式
	case *TemplateLit:
		walkExprs(n.Exprs, f)
	case *TaggedTemplateExpr:
		Inspect(n.Tag, f)
		Inspect(n.Quasi, f)
	case *ArrayLit:
		walkExprs(n.Elements, f)
	case *ObjectLit:
		for _, p := range n.Props {
			if p.Key != nil && p.Kind != PropShorthand {
				Inspect(p.Key, f)
			}
			Inspect(p.Value, f)
		}
	case *FuncExpr:
		if n.Name != nil {
			Inspect(n.Name, f)
		}
		walkParams(n.Params, f)
		Inspect(n.Body, f)
	case *ArrowFunc:
		walkParams(n.Params, f)
		Inspect(n.Body, f)
	case *ClassExpr:
		walkClass(&n.ClassBody, f)
	case *UnaryExpr:
		Inspect(n.Operand, f)
	case *UpdateExpr:
		Inspect(n.Operand, f)
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *AssignExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *ConditionalExpr:
		Inspect(n.Test, f)
		Inspect(n.Consequent, f)
		Inspect(n.Alternate, f)
	case *CallExpr:
		Inspect(n.Callee, f)
		walkExprs(n.Args, f)
	case *NewExpr:
		Inspect(n.Callee, f)
		walkExprs(n.Args, f)
	case *MemberExpr:
		Inspect(n.Object, f)
		if n.Computed {
			Inspect(n.Property, f)
		}
	case *OptionalChainExpr:
		Inspect(n.Expr, f)
	case *SequenceExpr:
		walkExprs(n.Exprs, f)
	case *ParenExpr:
		Inspect(n.Expr, f)
	case *SpreadElement:
		Inspect(n.Argument, f)
	case *YieldExpr:
		if n.Argument != nil {
			Inspect(n.Argument, f)
		}
	case *AwaitExpr:
		Inspect(n.Argument, f)
	case *ImportExpr:
		Inspect(n.Source, f)
	case *AsExpr:
		Inspect(n.Expr, f)
	case *SatisfiesExpr:
		Inspect(n.Expr, f)
	case *NonNullExpr:
		Inspect(n.Expr, f)
	case *TypeAssertionExpr:
		Inspect(n.Expr, f)
	case *JSXElement:
		for _, a := range n.Attrs {
			if a.Value != nil {
				Inspect(a.Value, f)
			}
		}
		walkExprs(n.Children, f)
	case *JSXFragment:
		walkExprs(n.Children, f)

	// 模式
	case *ArrayPattern:
		for _, el := range n.Elements {
			if el != nil {
				Inspect(el, f)
			}
		}
	case *ObjectPattern:
		for _, p := range n.Props {
			if p.Computed {
				Inspect(p.Key, f)
			}
			Inspect(p.Value, f)
		}
		Inspect(n.Rest, f)
	case *RestElement:
		Inspect(n.Argument, f)
	case *AssignPattern:
		Inspect(n.Left, f)
		Inspect(n.Default, f)
	}
}

// ============================================================================
// 调试输出
// ============================================================================

// Dump 以缩进树形式输出语法树，每行一个节点
func Dump(node Node) string {
	var out []byte
	depth := 0
	// 模块项包装节点不单独输出，printed 记录每层是否输出过
	var printed []bool
	Inspect(node, func(n Node) bool {
		if n == nil {
			if printed[len(printed)-1] {
				depth--
			}
			printed = printed[:len(printed)-1]
			return false
		}
		if _, ok := n.(*StmtItem); ok {
			printed = append(printed, false)
			return true
		}
		printed = append(printed, true)
		for i := 0; i < depth; i++ {
			out = append(out, "  "...)
		}
		out = append(out, KindOf(n)...)
		if detail := dumpDetail(n); detail != "" {
			out = append(out, ' ')
			out = append(out, detail...)
		}
		out = append(out, " @ "...)
		out = append(out, n.Pos().String()...)
		out = append(out, '\n')
		depth++
		return true
	})
	return string(out)
}

func dumpDetail(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return n.Name
	case *StringLit, *NumberLit, *BoolLit, *BigIntLit, *RegExpLit:
		return n.String()
	case *UnaryExpr:
		return n.Operator.Literal
	case *UpdateExpr:
		return n.Operator.Literal
	case *BinaryExpr:
		return n.Operator.Literal
	case *AssignExpr:
		return n.Operator.Literal
	}
	return ""
}
