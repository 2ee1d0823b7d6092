package ast

// KindOf 返回节点的语法种类名称，用于错误信息
func KindOf(node Node) string {
	switch n := node.(type) {
	// 模块
	case *Module:
		return "module"
	case *StmtItem:
		return KindOf(n.Stmt)
	case *ImportDecl:
		return "import declaration"
	case *ExportDecl:
		return "export declaration"
	case *ExportDefaultDecl:
		return "export default declaration"
	case *ExportNamedDecl:
		return "named export"
	case *ExportAllDecl:
		return "export all declaration"
	case *AmbientModuleDecl:
		return "ambient module declaration"

	// 声明
	case *VarDecl:
		return n.Kind.Literal + " declaration"
	case *FuncDecl:
		return "function declaration"
	case *ClassDecl:
		return "class declaration"
	case *UsingDecl:
		return "using declaration"
	case *InterfaceDecl:
		return "interface declaration"
	case *TypeAliasDecl:
		return "type alias declaration"
	case *EnumDecl:
		return "enum declaration"
	case *NamespaceDecl:
		return "namespace declaration"

	// 语句
	case *BlockStmt:
		return "block statement"
	case *EmptyStmt:
		return "empty statement"
	case *DebuggerStmt:
		return "debugger statement"
	case *WithStmt:
		return "with statement"
	case *ReturnStmt:
		return "return statement"
	case *LabeledStmt:
		return "labeled statement"
	case *BreakStmt:
		return "break statement"
	case *ContinueStmt:
		return "continue statement"
	case *IfStmt:
		return "if statement"
	case *SwitchStmt:
		return "switch statement"
	case *ThrowStmt:
		return "throw statement"
	case *TryStmt:
		return "try statement"
	case *WhileStmt:
		return "while statement"
	case *DoWhileStmt:
		return "do-while statement"
	case *ForStmt:
		return "for statement"
	case *ForInStmt:
		return "for-in statement"
	case *ForOfStmt:
		return "for-of statement"
	case *DeclStmt:
		return KindOf(n.Decl)
	case *ExprStmt:
		return "expression statement"

	// 字面量
	case *StringLit:
		return "string literal"
	case *NumberLit:
		return "number literal"
	case *BoolLit:
		return "boolean literal"
	case *NullLit:
		return "null literal"
	case *BigIntLit:
		return "bigint literal"
	case *RegExpLit:
		return "regular expression literal"
	case *TemplateLit:
		return "template literal"
	case *TaggedTemplateExpr:
		return "tagged template"

	// 表达式
	case *Ident:
		return "identifier"
	case *ThisExpr:
		return "this expression"
	case *SuperExpr:
		return "super expression"
	case *ArrayLit:
		return "array literal"
	case *ObjectLit:
		return "object literal"
	case *FuncExpr:
		return "function expression"
	case *ArrowFunc:
		return "arrow function"
	case *ClassExpr:
		return "class expression"
	case *UnaryExpr:
		return "unary expression"
	case *UpdateExpr:
		return "update expression"
	case *BinaryExpr:
		return "binary expression"
	case *AssignExpr:
		return "assignment expression"
	case *ConditionalExpr:
		return "conditional expression"
	case *CallExpr:
		return "call expression"
	case *NewExpr:
		return "new expression"
	case *MemberExpr:
		return "member expression"
	case *OptionalChainExpr:
		return "optional chain"
	case *SequenceExpr:
		return "sequence expression"
	case *ParenExpr:
		return "parenthesized expression"
	case *SpreadElement:
		return "spread element"
	case *YieldExpr:
		return "yield expression"
	case *AwaitExpr:
		return "await expression"
	case *MetaProperty:
		return "meta property"
	case *ImportExpr:
		return "dynamic import"
	case *AsExpr:
		return "as expression"
	case *SatisfiesExpr:
		return "satisfies expression"
	case *NonNullExpr:
		return "non-null assertion"
	case *TypeAssertionExpr:
		return "type assertion"
	case *JSXElement:
		return "JSX element"
	case *JSXFragment:
		return "JSX fragment"

	// 模式
	case *ArrayPattern:
		return "array pattern"
	case *ObjectPattern:
		return "object pattern"
	case *RestElement:
		return "rest element"
	case *AssignPattern:
		return "default value pattern"

	case *TypeNode:
		return "type annotation"
	}
	return "unknown node"
}
