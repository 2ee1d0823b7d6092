// Package config 读取和生成 tsrs.toml 项目配置
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/transpiler"
)

// 常量定义
const (
	ConfigFileName  = "tsrs.toml"   // 配置文件名
	DefaultCacheDir = ".tsrs-cache" // 默认缓存目录
)

// Config 项目配置
type Config struct {
	Project   ProjectConfig   `toml:"project"`
	Transpile TranspileConfig `toml:"transpile"`
	Printer   PrinterConfig   `toml:"printer"`
	Build     BuildConfig     `toml:"build"`
}

// ProjectConfig 项目信息
type ProjectConfig struct {
	// Name 项目名
	Name string `toml:"name"`

	// SourceDir 源码目录（相对配置文件）
	SourceDir string `toml:"source_dir"`

	// OutDir 输出目录（相对配置文件）
	OutDir string `toml:"out_dir"`
}

// TranspileConfig 转译选项
type TranspileConfig struct {
	ShimCrate  string   `toml:"shim_crate"`
	Entry      string   `toml:"entry"`
	Allow      []string `toml:"allow"`
	NumberMode string   `toml:"number_mode"`
}

// PrinterConfig 输出格式
type PrinterConfig struct {
	IndentStyle string `toml:"indent_style"`
	IndentSize  int    `toml:"indent_size"`
}

// BuildConfig 批量构建选项
type BuildConfig struct {
	Workers  int    `toml:"workers"` // 0 表示 CPU 核数
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// Default 返回默认配置
func Default() *Config {
	topts := transpiler.DefaultOptions()
	popts := printer.DefaultOptions()
	return &Config{
		Project: ProjectConfig{
			Name:      "my-app",
			SourceDir: "src",
			OutDir:    "out",
		},
		Transpile: TranspileConfig{
			ShimCrate:  topts.ShimCrate,
			Entry:      topts.EntryName,
			Allow:      topts.AllowLints,
			NumberMode: string(topts.NumberMode),
		},
		Printer: PrinterConfig{
			IndentStyle: popts.IndentStyle,
			IndentSize:  popts.IndentSize,
		},
		Build: BuildConfig{
			Cache:    true,
			CacheDir: DefaultCacheDir,
		},
	}
}

// LoadConfig 从文件加载配置，未出现的键取默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Validate 检查配置取值，错误信息包含出错的键
func (c *Config) Validate() error {
	if _, err := transpiler.ParseNumberMode(c.Transpile.NumberMode); err != nil {
		return fmt.Errorf("transpile.number_mode: %w", err)
	}
	if strings.TrimSpace(c.Transpile.ShimCrate) == "" {
		return fmt.Errorf("transpile.shim_crate: must not be empty")
	}
	if strings.TrimSpace(c.Transpile.Entry) == "" {
		return fmt.Errorf("transpile.entry: must not be empty")
	}
	popts := c.PrinterOptions()
	if err := popts.Validate(); err != nil {
		return fmt.Errorf("printer: %w", err)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers: must be >= 0, got %d", c.Build.Workers)
	}
	return nil
}

// TranspileOptions 转为转译器选项
func (c *Config) TranspileOptions() *transpiler.Options {
	mode, err := transpiler.ParseNumberMode(c.Transpile.NumberMode)
	if err != nil {
		mode = transpiler.NumberInfer
	}
	return &transpiler.Options{
		ShimCrate:  c.Transpile.ShimCrate,
		EntryName:  c.Transpile.Entry,
		AllowLints: append([]string{}, c.Transpile.Allow...),
		NumberMode: mode,
	}
}

// PrinterOptions 转为打印器选项
func (c *Config) PrinterOptions() *printer.Options {
	opts := printer.DefaultOptions()
	if c.Printer.IndentStyle != "" {
		opts.IndentStyle = c.Printer.IndentStyle
	}
	if c.Printer.IndentSize != 0 {
		opts.IndentSize = c.Printer.IndentSize
	}
	return opts
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	// 生成带注释的配置文件内容
	content := generateConfigWithComments(c)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateConfigWithComments 生成带注释的配置文件内容
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	sb.WriteString("[project]\n")
	sb.WriteString("# 项目名\n")
	sb.WriteString(fmt.Sprintf("name = %q\n", c.Project.Name))
	sb.WriteString("# TS/JS 源码目录\n")
	sb.WriteString(fmt.Sprintf("source_dir = %q\n", c.Project.SourceDir))
	sb.WriteString("# Rust 输出目录\n")
	sb.WriteString(fmt.Sprintf("out_dir = %q\n\n", c.Project.OutDir))

	sb.WriteString("[transpile]\n")
	sb.WriteString("# 运行时垫片 crate\n")
	sb.WriteString(fmt.Sprintf("shim_crate = %q\n", c.Transpile.ShimCrate))
	sb.WriteString("# 入口函数名\n")
	sb.WriteString(fmt.Sprintf("entry = %q\n", c.Transpile.Entry))
	sb.WriteString("# 入口函数上的 #[allow(...)]\n")
	sb.WriteString(fmt.Sprintf("allow = %s\n", quoteList(c.Transpile.Allow)))
	sb.WriteString("# 数字字面量：infer（整数值输出整数）或 float\n")
	sb.WriteString(fmt.Sprintf("number_mode = %q\n\n", c.Transpile.NumberMode))

	sb.WriteString("[printer]\n")
	sb.WriteString("# spaces 或 tabs\n")
	sb.WriteString(fmt.Sprintf("indent_style = %q\n", c.Printer.IndentStyle))
	sb.WriteString(fmt.Sprintf("indent_size = %d\n\n", c.Printer.IndentSize))

	sb.WriteString("[build]\n")
	sb.WriteString("# 并行数，0 表示 CPU 核数\n")
	sb.WriteString(fmt.Sprintf("workers = %d\n", c.Build.Workers))
	sb.WriteString("# 跳过未变化的文件\n")
	sb.WriteString(fmt.Sprintf("cache = %t\n", c.Build.Cache))
	sb.WriteString(fmt.Sprintf("cache_dir = %q\n", c.Build.CacheDir))

	return sb.String()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// GenerateDefault 生成默认配置
// dir 是项目目录路径，用于生成默认的项目名
func GenerateDefault(dir string) *Config {
	config := Default()
	config.Project.Name = sanitizeName(filepath.Base(dir))
	return config
}

// sanitizeName 清理项目名，结果可用作 Rust crate 名
func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, ".", "-")

	// 移除非法字符
	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}

	s := strings.Trim(result.String(), "-_")
	if s == "" {
		return "my-app"
	}
	return s
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	// 如果是文件，从其所在目录开始
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	var dir string
	if info.IsDir() {
		dir = startPath
	} else {
		dir = filepath.Dir(startPath)
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Resolve 查找并加载配置，找不到时返回默认配置和起始目录
//
// explicit 非空时直接加载该文件。返回的 root 为配置文件所在目录。
func Resolve(explicit, startPath string) (config *Config, root string, err error) {
	path := explicit
	if path == "" {
		path = FindConfigFile(startPath)
	}
	if path == "" {
		root = startPath
		if info, statErr := os.Stat(startPath); statErr == nil && !info.IsDir() {
			root = filepath.Dir(startPath)
		}
		return Default(), root, nil
	}

	config, err = LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return config, filepath.Dir(path), nil
}

// SourceDir 源码目录的绝对路径
func (c *Config) SourceDir(root string) string {
	return filepath.Join(root, c.Project.SourceDir)
}

// OutDir 输出目录的绝对路径
func (c *Config) OutDir(root string) string {
	return filepath.Join(root, c.Project.OutDir)
}

// CacheDir 缓存目录的绝对路径
func (c *Config) CacheDir(root string) string {
	dir := c.Build.CacheDir
	if dir == "" {
		dir = DefaultCacheDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
