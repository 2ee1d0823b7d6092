package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tangzhangming/tsrs/internal/batch"
	"github.com/tangzhangming/tsrs/internal/config"
	diag "github.com/tangzhangming/tsrs/internal/errors"
)

// cmdTranspile 转译单个文件，失败时不写输出
func (a *app) cmdTranspile(args []string) int {
	m := Msg()
	fs := a.newFlagSet("transpile", "[options] <file> [output]")
	configPath := fs.String("config", "", m.OptConfig)
	jsonOut := fs.Bool("json", false, m.OptJSON)
	verbose := fs.Bool("v", false, m.OptVerbose)
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if !a.requireInput(fs) {
		return 1
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	input := fs.Arg(0)
	output := fs.Arg(1)
	if output == "" {
		output = defaultOutput(input)
	}

	fail := func(err error) int {
		a.reportErrors(err, *jsonOut)
		return 1
	}

	source, err := readInput(input)
	if err != nil {
		return fail(err)
	}
	if err := checkOutputDir(output); err != nil {
		return fail(err)
	}

	cfg, root, err := loadConfig(*configPath, input)
	if err != nil {
		return fail(err)
	}
	logger.Debug("config resolved", zap.String("root", root), zap.String("number_mode", cfg.Transpile.NumberMode))

	start := time.Now()
	rust, err := batch.TranspileSource(source, input, cfg.TranspileOptions(), cfg.PrinterOptions())
	if err != nil {
		logger.Debug("transpile failed", zap.String("file", input), zap.Error(err))
		return fail(err)
	}
	if err := os.WriteFile(output, []byte(rust), 0644); err != nil {
		return fail(driverError(diag.D0004, output, output, err))
	}
	logger.Info("transpiled",
		zap.String("input", input),
		zap.String("output", output),
		zap.Duration("elapsed", time.Since(start)))

	if *jsonOut {
		a.writeJSON(nil)
	} else {
		fmt.Fprintf(a.stdout, m.SuccessTranspiled+"\n", input, output)
	}
	return 0
}

// defaultOutput 输入文件扩展名改为 .rs
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".rs"
}

// checkOutputDir 输出目录必须已存在
func checkOutputDir(output string) error {
	dir := filepath.Dir(output)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return driverError(diag.D0002, dir, dir)
	}
	return nil
}

// loadConfig 加载 explicit 指定或从 start 向上找到的 tsrs.toml，失败为 D0005
func loadConfig(explicit, start string) (*config.Config, string, error) {
	path := explicit
	if path == "" {
		path = config.FindConfigFile(start)
	}
	cfg, root, err := config.Resolve(path, start)
	if err != nil {
		return nil, "", driverError(diag.D0005, path, path, err)
	}
	return cfg, root, nil
}
