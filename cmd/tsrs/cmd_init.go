package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tangzhangming/tsrs/internal/config"
	"github.com/tangzhangming/tsrs/internal/i18n"
)

// cmdInit 初始化新项目：tsrs.toml、src/main.ts 和运行时 crate
//
// 已存在的源文件和运行时文件不会被覆盖。
func (a *app) cmdInit(args []string) int {
	m := Msg()
	fs := a.newFlagSet("init", "[options] [dir]")
	name := fs.String("name", "", m.OptName)
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, m.HelpUsage+" tsrs init [options] [dir]")
		fmt.Fprintln(a.stderr)
		fmt.Fprintln(a.stderr, m.InitDesc)
		fmt.Fprintln(a.stderr)
		fmt.Fprintln(a.stderr, m.HelpOptions)
		fs.PrintDefaults()
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	dir := fs.Arg(0)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(a.stderr, m.ErrGetWorkDir+"\n", err)
			return 1
		}
		dir = wd
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(a.stderr, m.ErrCreateDir+"\n", err)
		return 1
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintln(a.stderr, i18n.T(i18n.ErrProjectExists, configPath))
		return 1
	}

	cfg := config.GenerateDefault(dir)
	if *name != "" {
		cfg.Project.Name = *name
	}

	fmt.Fprintf(a.stdout, m.InitCreating+"\n", config.ConfigFileName)
	if err := cfg.Save(configPath); err != nil {
		fmt.Fprintf(a.stderr, m.ErrCreateFile+"\n", err)
		return 1
	}

	shim := cfg.Transpile.ShimCrate
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(cfg.Project.SourceDir, "main.ts"), mainTemplate},
		{filepath.Join(shim, "Cargo.toml"), fmt.Sprintf(shimCargoTemplate, shim)},
		{filepath.Join(shim, "src", "lib.rs"), shimLibTemplate},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.path)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		fmt.Fprintf(a.stdout, m.InitCreating+"\n", filepath.ToSlash(f.path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fmt.Fprintf(a.stderr, m.ErrCreateDir+"\n", err)
			return 1
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			fmt.Fprintf(a.stderr, m.ErrCreateFile+"\n", err)
			return 1
		}
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, m.InitSuccess+"\n", cfg.Project.Name)
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, m.InitNextSteps)
	fmt.Fprintln(a.stdout, "  tsrs build")
	return 0
}

const mainTemplate = `const greeting = "Hello, tsrs!";
console.log(greeting);
`

const shimCargoTemplate = `[package]
name = %q
version = "0.1.0"
edition = "2021"

[dependencies]
`

// shimLibTemplate 生成代码中 console.log 的运行时实现
const shimLibTemplate = `use std::fmt::Display;

pub struct Console {}

impl Console {
    pub fn log<T: Display>(&self, value: T) {
        println!("{}", value);
    }
}

#[allow(non_upper_case_globals)]
pub const console: Console = Console {};
`
