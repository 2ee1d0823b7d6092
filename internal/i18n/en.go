package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrUnexpectedChar:       "unexpected character '%c'",
	ErrUnterminatedComment:  "unterminated block comment",
	ErrUnterminatedString:   "unterminated string literal",
	ErrUnterminatedTemplate: "unterminated template literal",
	ErrUnterminatedRegExp:   "unterminated regular expression literal",
	ErrInvalidEscape:        "invalid escape sequence: %s",
	ErrInvalidExponent:      "invalid number: expected exponent",
	ErrInvalidNumber:        "invalid numeric literal: %s",
	ErrIdentAfterNumber:     "an identifier cannot immediately follow a numeric literal",

	// ========== Parser ==========
	ErrSyntax:               "syntax error",
	ErrExpectedToken:        "expected %s",
	ErrUnexpectedToken:      "unexpected token: %s",
	ErrExpectedExpression:   "expected expression",
	ErrExpectedStatement:    "expected statement",
	ErrExpectedIdentifier:   "expected identifier",
	ErrExpectedPropertyName: "expected property name",
	ErrExpectedType:         "expected type",
	ErrExpectedCaseDefault:  "expected 'case' or 'default'",
	ErrInvalidAssignTarget:  "invalid assignment target",
	ErrMissingConstInit:     "'const' declarations must be initialized",
	ErrInvalidForLHS:        "invalid left-hand side in for-in/for-of loop",
	ErrForInOfInit:          "for-in/for-of loop variable cannot have an initializer",
	ErrNewlineAfterThrow:    "line break is not allowed after 'throw'",
	ErrJSXUnsupported:       "JSX syntax is not supported",
	ErrExprTooDeep:          "expression nesting is too deep",
	ErrTooManyErrors:        "too many syntax errors, giving up",

	// ========== Transpiler ==========
	ErrUnsupportedExpr:     "unsupported expression: %s",
	ErrUnsupportedStmt:     "unsupported statement: %s",
	ErrUnsupportedDecl:     "unsupported declaration: %s",
	ErrUnsupportedItem:     "unsupported module item: %s",
	ErrUnsupportedOperator: "unsupported operator: %s",
	ErrUnsupportedCall:     "unsupported call shape: %s",
	ErrUnsupportedTarget:   "unsupported assignment target: %s",
	ErrUnsupportedPattern:  "unsupported binding pattern: %s",
	ErrUnsupportedLiteral:  "unsupported literal: %s",
	ErrAmbientDecl:         "ambient declaration has no runtime form: %s",
	ErrElseArmShape:        "else branch must reduce to exactly one expression, got %s",
	ErrMissingInitializer:  "variable '%s' has no initializer",
	ErrStmtAsExpr:          "statement cannot be used as an expression: %s",
	ErrTranspileFailed:     "transpilation failed",
	ErrTranspileFailedFor:  "transpilation failed for %s",

	// ========== Driver ==========
	ErrInputNotFound:    "input file not found: %s",
	ErrOutputDirMissing: "output directory does not exist: %s",
	ErrReadFailed:       "failed to read %s: %v",
	ErrWriteFailed:      "failed to write %s: %v",
	ErrConfigInvalid:    "invalid configuration %s: %v",
	ErrParseFailed:      "parsing failed",
	ErrParseFailedFor:   "parsing failed for %s: %d error(s)",
	ErrBuildFailed:      "build failed: %d of %d file(s) had errors",
	ErrProjectExists:    "project file already exists: %s",

	// ========== Suggestions ==========
	HintRewriteAsMethodCall: "only plain and method calls are supported; bind the callee to a name first",
	HintUseIdentTarget:      "assign to a plain variable; member and index targets are not supported",
	HintAddInitializer:      "give the variable an initial value where it is declared",
	HintSplitElseArm:        "move the extra statements into a block so the else branch is a single expression",
	HintUseWhileLoop:        "rewrite the loop as a while loop",
	HintUseIfChain:          "rewrite the switch as an if / else if chain",
	HintMoveToStatement:     "move this into its own statement",
	HintCheckPath:           "check that the path exists and is readable",
	HintCreateDir:           "create the directory first",
	HintRunInit:             "run 'tsrs init' to create a project file",

	// ========== Summary ==========
	MsgErrorCount: "aborting due to %d previous error(s)",
}
