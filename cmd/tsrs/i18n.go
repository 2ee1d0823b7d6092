package main

import (
	"os"
	"runtime"
	"strings"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// Messages 命令行界面文字
type Messages struct {
	// 版本信息
	VersionTitle string
	VersionDesc  string

	// 帮助信息
	HelpUsage    string
	HelpCommands string
	HelpOptions  string
	HelpExamples string

	// 命令描述
	CmdParseTS   string
	CmdParseRS   string
	CmdTranspile string
	CmdBuild     string
	CmdInit      string
	CmdVersion   string
	CmdHelp      string

	// 选项
	OptTokens  string
	OptConfig  string
	OptJSON    string
	OptVerbose string
	OptJobs    string
	OptNoCache string
	OptName    string
	OptLang    string

	// 错误信息
	ErrNoInput     string
	ErrUnknownCmd  string
	ErrDidYouMean  string
	ErrLexer       string
	ErrParser      string
	ErrGetWorkDir  string
	ErrCreateFile  string
	ErrCreateDir   string
	ErrCacheFailed string

	// 成功信息
	SuccessTranspiled string
	SuccessBuild      string
	SuccessUpToDate   string

	// 初始化
	InitDesc      string
	InitCreating  string
	InitSuccess   string
	InitNextSteps string
}

// 英文消息
var messagesEN = Messages{
	VersionTitle: "tsrs v%s",
	VersionDesc:  "A JavaScript/TypeScript to Rust source-to-source transpiler",

	HelpUsage:    "Usage:",
	HelpCommands: "Commands:",
	HelpOptions:  "Options:",
	HelpExamples: "Examples:",

	CmdParseTS:   "Parse a JS/TS file and print its AST",
	CmdParseRS:   "Parse a Rust file and print its syntax tree",
	CmdTranspile: "Transpile one file to Rust",
	CmdBuild:     "Transpile every source file of a project",
	CmdInit:      "Create a new project",
	CmdVersion:   "Show version information",
	CmdHelp:      "Show this help message",

	OptTokens:  "Print the token stream instead of the AST",
	OptConfig:  "Path to tsrs.toml (default: search upwards)",
	OptJSON:    "Print diagnostics as JSON",
	OptVerbose: "Verbose output",
	OptJobs:    "Number of parallel workers (0: one per CPU)",
	OptNoCache: "Do not use the build cache",
	OptName:    "Project name",
	OptLang:    "Set language (en/zh)",

	ErrNoInput:     "Error: no input file specified",
	ErrUnknownCmd:  "Unknown command: %s",
	ErrDidYouMean:  "Did you mean '%s'?",
	ErrLexer:       "Lexer errors:",
	ErrParser:      "Parser errors:",
	ErrGetWorkDir:  "Error getting working directory: %v",
	ErrCreateFile:  "Error creating file: %v",
	ErrCreateDir:   "Error creating directory: %v",
	ErrCacheFailed: "Warning: build cache unavailable: %v",

	SuccessTranspiled: "✓ %s -> %s",
	SuccessBuild:      "✓ %d file(s) transpiled, %d up to date (%s)",
	SuccessUpToDate:   "✓ nothing to transpile in %s",

	InitDesc:      "Create tsrs.toml, the src directory and the ts_std shim crate in the given directory.",
	InitCreating:  "Creating %s",
	InitSuccess:   "✓ Project '%s' created",
	InitNextSteps: "Next steps:",
}

// 中文消息
var messagesZH = Messages{
	VersionTitle: "tsrs v%s",
	VersionDesc:  "JavaScript/TypeScript 到 Rust 的源码转译器",

	HelpUsage:    "用法:",
	HelpCommands: "命令:",
	HelpOptions:  "选项:",
	HelpExamples: "示例:",

	CmdParseTS:   "解析 JS/TS 文件并打印 AST",
	CmdParseRS:   "解析 Rust 文件并打印语法树",
	CmdTranspile: "把单个文件转译为 Rust",
	CmdBuild:     "转译项目中的所有源文件",
	CmdInit:      "创建新项目",
	CmdVersion:   "显示版本信息",
	CmdHelp:      "显示帮助信息",

	OptTokens:  "打印词法单元而不是 AST",
	OptConfig:  "tsrs.toml 路径（默认向上查找）",
	OptJSON:    "以 JSON 输出诊断",
	OptVerbose: "详细输出",
	OptJobs:    "并行任务数（0 表示每个 CPU 一个）",
	OptNoCache: "不使用构建缓存",
	OptName:    "项目名称",
	OptLang:    "设置语言 (en/zh)",

	ErrNoInput:     "错误: 未指定输入文件",
	ErrUnknownCmd:  "未知命令: %s",
	ErrDidYouMean:  "你是不是想输入 '%s'？",
	ErrLexer:       "词法分析错误:",
	ErrParser:      "语法分析错误:",
	ErrGetWorkDir:  "获取工作目录错误: %v",
	ErrCreateFile:  "创建文件错误: %v",
	ErrCreateDir:   "创建目录错误: %v",
	ErrCacheFailed: "警告: 构建缓存不可用: %v",

	SuccessTranspiled: "✓ %s -> %s",
	SuccessBuild:      "✓ 转译 %d 个文件，%d 个无变化 (%s)",
	SuccessUpToDate:   "✓ %s 中没有需要转译的文件",

	InitDesc:      "在指定目录创建 tsrs.toml、src 目录和 ts_std 运行时 crate。",
	InitCreating:  "创建 %s",
	InitSuccess:   "✓ 项目 '%s' 创建成功",
	InitNextSteps: "下一步:",
}

// 当前消息
var msg = messagesEN

// 当前语言
var currentLang = LangEnglish

// InitLanguage 初始化语言设置
// 优先级: 命令行参数 > 环境变量 TSRS_LANG > 操作系统语言 > 默认英文
func InitLanguage(langOverride string) {
	if langOverride != "" {
		setLanguage(langOverride)
		return
	}

	if envLang := os.Getenv("TSRS_LANG"); envLang != "" {
		setLanguage(envLang)
		return
	}

	if detectChineseOS() {
		setLanguage("zh")
		return
	}

	setLanguage("en")
}

// setLanguage 设置命令行和内部模块的语言，无法识别时使用英文
func setLanguage(lang string) {
	switch l, _ := i18n.ParseLanguage(lang); l {
	case i18n.LangChinese:
		currentLang = LangChinese
		msg = messagesZH
	default:
		currentLang = LangEnglish
		msg = messagesEN
	}
	i18n.SetLanguage(i18n.Language(currentLang))
}

// detectChineseOS 检测操作系统是否为中文环境
func detectChineseOS() bool {
	if runtime.GOOS == "windows" && detectWindowsChinese() {
		return true
	}

	// Unix/Linux/Mac: 检查环境变量
	for _, v := range []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"} {
		if val := os.Getenv(v); val != "" {
			// LANGUAGE 可以是 zh_CN:en_US 形式的列表，取第一项
			lang, _ := i18n.ParseLanguage(strings.Split(val, ":")[0])
			return lang == i18n.LangChinese
		}
	}
	return false
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	return currentLang
}

// Msg 获取当前消息对象
func Msg() *Messages {
	return &msg
}
