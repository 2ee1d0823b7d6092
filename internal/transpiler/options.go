package transpiler

import (
	"fmt"
	"strings"
)

// NumberMode 数字字面量的输出方式
type NumberMode string

const (
	// NumberInfer 整数值输出为整数字面量，其余输出为浮点字面量
	NumberInfer NumberMode = "infer"
	// NumberFloat 所有数字都输出为浮点字面量（1.0）
	NumberFloat NumberMode = "float"
)

// Options 转译选项
type Options struct {
	ShimCrate  string     // 运行时垫片 crate，生成 use <shim>::*;
	EntryName  string     // 入口函数名
	AllowLints []string   // 入口函数上的 #[allow(...)]
	NumberMode NumberMode // 数字字面量模式
}

// DefaultOptions 返回默认转译选项
func DefaultOptions() *Options {
	return &Options{
		ShimCrate:  "ts_std",
		EntryName:  "main",
		AllowLints: []string{"clippy::all"},
		NumberMode: NumberInfer,
	}
}

// ParseNumberMode 解析配置中的数字模式
func ParseNumberMode(s string) (NumberMode, error) {
	switch NumberMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", NumberInfer:
		return NumberInfer, nil
	case NumberFloat:
		return NumberFloat, nil
	}
	return "", fmt.Errorf("unknown number mode %q (want infer or float)", s)
}

// withDefaults 补全未设置的字段，不修改调用者的选项
func (o *Options) withDefaults() *Options {
	def := DefaultOptions()
	if o == nil {
		return def
	}
	out := *o
	if out.ShimCrate == "" {
		out.ShimCrate = def.ShimCrate
	}
	if out.EntryName == "" {
		out.EntryName = def.EntryName
	}
	if out.AllowLints == nil {
		out.AllowLints = def.AllowLints
	}
	out.AllowLints = append([]string(nil), out.AllowLints...)
	if out.NumberMode == "" {
		out.NumberMode = def.NumberMode
	}
	return &out
}

// Fingerprint 选项指纹，输出相同的选项指纹相同
//
// 缓存用它区分不同选项下生成的结果。
func (o *Options) Fingerprint() string {
	n := o.withDefaults()
	return fmt.Sprintf("shim=%s;entry=%s;allow=%s;number=%s",
		n.ShimCrate, n.EntryName, strings.Join(n.AllowLints, ","), n.NumberMode)
}
