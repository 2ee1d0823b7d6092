//go:build windows

package errors

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVirtualTerminal 为控制台打开 ANSI 转义序列处理（Windows 10 1511+）
func enableVirtualTerminal() bool {
	handle := windows.Handle(os.Stderr.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
