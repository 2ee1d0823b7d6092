// Package batch 并行转译多个源文件
//
// 每个文件独立转译，任务在文件之间可被 context 取消。失败的文件不写输出，
// 所有失败以 multierr 组合返回。
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/tsrs/internal/cache"
	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/transpiler"
)

// Job 一个转译任务
type Job struct {
	Input  string
	Output string
}

// Options 批量转译选项
type Options struct {
	Transpile *transpiler.Options
	Printer   *printer.Options
	Workers   int                 // 0 表示 CPU 核数
	Cache     *cache.CacheManager // 可为 nil
	Logger    *zap.Logger         // 可为 nil
}

// Stats 批量转译统计
type Stats struct {
	Total      int
	Transpiled int
	Cached     int
	Failed     int
	Elapsed    time.Duration
}

// FileError 单个文件的失败
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// sourceExts 参与批量转译的扩展名
var sourceExts = map[string]bool{".ts": true, ".js": true, ".mts": true, ".mjs": true}

// Collect 收集 srcDir 下的源文件，输出路径保持相对结构并改为 .rs
//
// 类型声明文件 .d.ts 不参与转译。
func Collect(srcDir, outDir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != srcDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if !sourceExts[filepath.Ext(name)] || strings.HasSuffix(name, ".d.ts") {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{
			Input:  path,
			Output: filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".rs"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}
	return jobs, nil
}

// Run 并行执行任务
//
// 返回的错误按任务顺序组合了每个失败文件的 *FileError；context 取消时还包含
// ctx.Err()，未开始的任务不再执行。
func Run(ctx context.Context, jobs []Job, opts Options) (Stats, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	fingerprint := opts.Transpile.Fingerprint()

	var (
		transpiled atomic.Int64
		cached     atomic.Int64
		failed     atomic.Int64
		errs       = make([]error, len(jobs))
		wg         sync.WaitGroup
	)

	queue := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				job := jobs[i]
				t0 := time.Now()
				hit, err := runJob(job, opts, fingerprint)
				if err != nil {
					failed.Inc()
					errs[i] = &FileError{Path: job.Input, Err: err}
					logger.Debug("transpile failed", zap.String("file", job.Input), zap.Error(err))
					continue
				}
				if hit {
					cached.Inc()
				} else {
					transpiled.Inc()
				}
				logger.Debug("transpiled",
					zap.String("file", job.Input),
					zap.String("output", job.Output),
					zap.Bool("cached", hit),
					zap.Duration("elapsed", time.Since(t0)))
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range jobs {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case queue <- i:
		}
	}
	close(queue)
	wg.Wait()

	if opts.Cache != nil {
		if err := opts.Cache.Save(); err != nil {
			logger.Warn("cache save failed", zap.Error(err))
		}
	}

	stats := Stats{
		Total:      len(jobs),
		Transpiled: int(transpiled.Load()),
		Cached:     int(cached.Load()),
		Failed:     int(failed.Load()),
		Elapsed:    time.Since(start),
	}
	logger.Info("batch finished",
		zap.Int("total", stats.Total),
		zap.Int("transpiled", stats.Transpiled),
		zap.Int("cached", stats.Cached),
		zap.Int("failed", stats.Failed),
		zap.Duration("elapsed", stats.Elapsed))

	return stats, multierr.Append(multierr.Combine(errs...), ctxErr)
}

// runJob 转译单个文件，返回是否命中缓存
func runJob(job Job, opts Options, fingerprint string) (bool, error) {
	source, err := os.ReadFile(job.Input)
	if err != nil {
		return false, err
	}

	if opts.Cache != nil {
		if out, ok := opts.Cache.Lookup(job.Input, source, fingerprint); ok {
			return true, writeIfChanged(job.Output, out)
		}
	}

	out, err := TranspileSource(string(source), job.Input, opts.Transpile, opts.Printer)
	if err != nil {
		return false, err
	}
	if err := writeIfChanged(job.Output, out); err != nil {
		return false, err
	}
	if opts.Cache != nil {
		if err := opts.Cache.Store(job.Input, source, fingerprint, out); err != nil {
			return false, err
		}
	}
	return false, nil
}

// writeIfChanged 内容相同时不改写输出文件
func writeIfChanged(path, content string) error {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, []byte(content)) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
