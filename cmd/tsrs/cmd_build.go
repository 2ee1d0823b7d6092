package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/tangzhangming/tsrs/internal/batch"
	"github.com/tangzhangming/tsrs/internal/cache"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/i18n"
)

// cmdBuild 并行转译项目源码目录下的所有文件
func (a *app) cmdBuild(args []string) int {
	m := Msg()
	fs := a.newFlagSet("build", "[options] [dir]")
	configPath := fs.String("config", "", m.OptConfig)
	jobs := fs.Int("j", 0, m.OptJobs)
	noCache := fs.Bool("no-cache", false, m.OptNoCache)
	verbose := fs.Bool("v", false, m.OptVerbose)
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		a.reportErrors(driverError(diag.D0001, dir, dir), false)
		return 1
	}

	cfg, root, err := loadConfig(*configPath, dir)
	if err != nil {
		a.reportErrors(err, false)
		return 1
	}

	srcDir, outDir := cfg.SourceDir(root), cfg.OutDir(root)
	if _, err := os.Stat(srcDir); err != nil {
		a.reportErrors(driverError(diag.D0001, srcDir, srcDir), false)
		return 1
	}
	sources, err := batch.Collect(srcDir, outDir)
	if err != nil {
		a.reportErrors(driverError(diag.D0003, srcDir, srcDir, err), false)
		return 1
	}
	if len(sources) == 0 {
		fmt.Fprintf(a.stdout, m.SuccessUpToDate+"\n", srcDir)
		return 0
	}

	opts := batch.Options{
		Transpile: cfg.TranspileOptions(),
		Printer:   cfg.PrinterOptions(),
		Workers:   cfg.Build.Workers,
		Logger:    logger,
	}
	if flagSet(fs, "j") {
		opts.Workers = *jobs
	}
	if cfg.Build.Cache && !*noCache {
		cm, err := cache.NewCacheManager(cfg.CacheDir(root))
		if err != nil {
			fmt.Fprintf(a.stderr, m.ErrCacheFailed+"\n", err)
		} else {
			opts.Cache = cm
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("build started",
		zap.String("source_dir", srcDir),
		zap.String("out_dir", outDir),
		zap.Int("files", len(sources)))

	stats, err := batch.Run(ctx, sources, opts)
	if err != nil {
		a.reportErrors(err, false)
		fmt.Fprintln(a.stderr, i18n.T(i18n.ErrBuildFailed, stats.Failed, stats.Total))
		return 1
	}

	fmt.Fprintf(a.stdout, m.SuccessBuild+"\n", stats.Transpiled, stats.Cached, stats.Elapsed.Round(time.Millisecond))
	return 0
}

// flagSet 判断参数是否在命令行中显式给出
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
