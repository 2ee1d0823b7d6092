//go:build !windows

package errors

// enableVirtualTerminal 类 Unix 终端原生支持 ANSI 转义序列
func enableVirtualTerminal() bool {
	return true
}
