package i18n

// 消息 ID 常量
//
// ID 按 "模块.名称" 命名，与 errors 包中错误码表的 MessageID 一致。
const (
	// ========== 词法分析器 ==========
	ErrUnexpectedChar       = "lexer.unexpected_char"
	ErrUnterminatedComment  = "lexer.unterminated_comment"
	ErrUnterminatedString   = "lexer.unterminated_string"
	ErrUnterminatedTemplate = "lexer.unterminated_template"
	ErrUnterminatedRegExp   = "lexer.unterminated_regexp"
	ErrInvalidEscape        = "lexer.invalid_escape"
	ErrInvalidExponent      = "lexer.invalid_exponent"
	ErrInvalidNumber        = "lexer.invalid_number"
	ErrIdentAfterNumber     = "lexer.ident_after_number"

	// ========== 语法分析器 ==========
	ErrSyntax               = "error.syntax"
	ErrExpectedToken        = "parser.expected_token"
	ErrUnexpectedToken      = "parser.unexpected_token"
	ErrExpectedExpression   = "parser.expected_expression"
	ErrExpectedStatement    = "parser.expected_statement"
	ErrExpectedIdentifier   = "parser.expected_identifier"
	ErrExpectedPropertyName = "parser.expected_property_name"
	ErrExpectedType         = "parser.expected_type"
	ErrExpectedCaseDefault  = "parser.expected_case_default"
	ErrInvalidAssignTarget  = "parser.invalid_assign_target"
	ErrMissingConstInit     = "parser.missing_const_init"
	ErrInvalidForLHS        = "parser.invalid_for_lhs"
	ErrForInOfInit          = "parser.for_in_of_init"
	ErrNewlineAfterThrow    = "parser.newline_after_throw"
	ErrJSXUnsupported       = "parser.jsx_unsupported"
	ErrExprTooDeep          = "parser.expr_too_deep"
	ErrTooManyErrors        = "parser.too_many_errors"

	// ========== 转译器 ==========
	ErrUnsupportedExpr     = "transpile.unsupported_expr"
	ErrUnsupportedStmt     = "transpile.unsupported_stmt"
	ErrUnsupportedDecl     = "transpile.unsupported_decl"
	ErrUnsupportedItem     = "transpile.unsupported_item"
	ErrUnsupportedOperator = "transpile.unsupported_operator"
	ErrUnsupportedCall     = "transpile.unsupported_call"
	ErrUnsupportedTarget   = "transpile.unsupported_target"
	ErrUnsupportedPattern  = "transpile.unsupported_pattern"
	ErrUnsupportedLiteral  = "transpile.unsupported_literal"
	ErrAmbientDecl         = "transpile.ambient_decl"
	ErrElseArmShape        = "transpile.else_arm_shape"
	ErrMissingInitializer  = "transpile.missing_initializer"
	ErrStmtAsExpr          = "transpile.stmt_as_expr"
	ErrTranspileFailed     = "transpile.failed"
	ErrTranspileFailedFor  = "transpile.failed_for"

	// ========== 驱动程序 ==========
	ErrInputNotFound    = "driver.input_not_found"
	ErrOutputDirMissing = "driver.output_dir_missing"
	ErrReadFailed       = "driver.read_failed"
	ErrWriteFailed      = "driver.write_failed"
	ErrConfigInvalid    = "driver.config_invalid"
	ErrParseFailed      = "driver.parse_failed"
	ErrParseFailedFor   = "driver.parse_failed_for"
	ErrBuildFailed      = "driver.build_failed"
	ErrProjectExists    = "driver.project_exists"

	// ========== 建议 ==========
	HintRewriteAsMethodCall = "suggestion.rewrite_as_method_call"
	HintUseIdentTarget      = "suggestion.use_ident_target"
	HintAddInitializer      = "suggestion.add_initializer"
	HintSplitElseArm        = "suggestion.split_else_arm"
	HintUseWhileLoop        = "suggestion.use_while_loop"
	HintUseIfChain          = "suggestion.use_if_chain"
	HintMoveToStatement     = "suggestion.move_to_statement"
	HintCheckPath           = "suggestion.check_path"
	HintCreateDir           = "suggestion.create_dir"
	HintRunInit             = "suggestion.run_init"

	// ========== 汇总 ==========
	MsgErrorCount = "summary.error_count"
)
