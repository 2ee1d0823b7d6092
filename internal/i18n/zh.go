package i18n

var messagesZH = map[string]string{
	// ========== 词法分析器 ==========
	ErrUnexpectedChar:       "意外的字符 '%c'",
	ErrUnterminatedComment:  "未闭合的块注释",
	ErrUnterminatedString:   "未闭合的字符串字面量",
	ErrUnterminatedTemplate: "未闭合的模板字面量",
	ErrUnterminatedRegExp:   "未闭合的正则表达式字面量",
	ErrInvalidEscape:        "无效的转义序列: %s",
	ErrInvalidExponent:      "无效的数字: 缺少指数",
	ErrInvalidNumber:        "无效的数字字面量: %s",
	ErrIdentAfterNumber:     "数字字面量后不能紧跟标识符",

	// ========== 语法分析器 ==========
	ErrSyntax:               "语法错误",
	ErrExpectedToken:        "期望 %s",
	ErrUnexpectedToken:      "意外的 token: %s",
	ErrExpectedExpression:   "期望表达式",
	ErrExpectedStatement:    "期望语句",
	ErrExpectedIdentifier:   "期望标识符",
	ErrExpectedPropertyName: "期望属性名",
	ErrExpectedType:         "期望类型",
	ErrExpectedCaseDefault:  "期望 'case' 或 'default'",
	ErrInvalidAssignTarget:  "无效的赋值目标",
	ErrMissingConstInit:     "'const' 声明必须初始化",
	ErrInvalidForLHS:        "for-in/for-of 循环的左侧无效",
	ErrForInOfInit:          "for-in/for-of 循环变量不能有初始值",
	ErrNewlineAfterThrow:    "'throw' 之后不允许换行",
	ErrJSXUnsupported:       "不支持 JSX 语法",
	ErrExprTooDeep:          "表达式嵌套过深",
	ErrTooManyErrors:        "语法错误过多，停止解析",

	// ========== 转译器 ==========
	ErrUnsupportedExpr:     "不支持的表达式: %s",
	ErrUnsupportedStmt:     "不支持的语句: %s",
	ErrUnsupportedDecl:     "不支持的声明: %s",
	ErrUnsupportedItem:     "不支持的模块项: %s",
	ErrUnsupportedOperator: "不支持的运算符: %s",
	ErrUnsupportedCall:     "不支持的调用形式: %s",
	ErrUnsupportedTarget:   "不支持的赋值目标: %s",
	ErrUnsupportedPattern:  "不支持的绑定模式: %s",
	ErrUnsupportedLiteral:  "不支持的字面量: %s",
	ErrAmbientDecl:         "环境声明没有运行时形式: %s",
	ErrElseArmShape:        "else 分支必须归约为恰好一个表达式，实际为 %s",
	ErrMissingInitializer:  "变量 '%s' 没有初始值",
	ErrStmtAsExpr:          "语句不能用作表达式: %s",
	ErrTranspileFailed:     "转译失败",
	ErrTranspileFailedFor:  "转译 %s 失败",

	// ========== 驱动程序 ==========
	ErrInputNotFound:    "找不到输入文件: %s",
	ErrOutputDirMissing: "输出目录不存在: %s",
	ErrReadFailed:       "读取 %s 失败: %v",
	ErrWriteFailed:      "写入 %s 失败: %v",
	ErrConfigInvalid:    "配置文件 %s 无效: %v",
	ErrParseFailed:      "解析失败",
	ErrParseFailedFor:   "解析 %s 失败: %d 个错误",
	ErrBuildFailed:      "构建失败: %d/%d 个文件出错",
	ErrProjectExists:    "项目文件已存在: %s",

	// ========== 建议 ==========
	HintRewriteAsMethodCall: "只支持普通调用和方法调用，请先把被调用者绑定到一个名字",
	HintUseIdentTarget:      "请赋值给普通变量，成员和下标目标不受支持",
	HintAddInitializer:      "在声明处给变量一个初始值",
	HintSplitElseArm:        "把多余的语句放进块中，使 else 分支成为单个表达式",
	HintUseWhileLoop:        "改写为 while 循环",
	HintUseIfChain:          "把 switch 改写为 if / else if 链",
	HintMoveToStatement:     "把它移到单独的语句中",
	HintCheckPath:           "检查路径是否存在且可读",
	HintCreateDir:           "先创建该目录",
	HintRunInit:             "运行 'tsrs init' 创建项目文件",

	// ========== 汇总 ==========
	MsgErrorCount: "由于之前的 %d 个错误而中止",
}
