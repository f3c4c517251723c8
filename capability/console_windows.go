//go:build windows

package capability

import (
	"golang.org/x/sys/windows"
)

const codePageUTF8 = 65001

var procGetConsoleOutputCP = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetConsoleOutputCP")

func consoleUTF8(uintptr) (bool, bool) {
	if err := procGetConsoleOutputCP.Find(); err != nil {
		return false, false
	}
	cp, _, _ := procGetConsoleOutputCP.Call()
	return cp == codePageUTF8, true
}

// enableVirtualTerminal turns on ANSI sequence processing for the console
// behind fd. It reports false when the console refuses, which happens on
// consoles older than Windows 10.
func enableVirtualTerminal(fd uintptr) bool {
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
