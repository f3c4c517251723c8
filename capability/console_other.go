//go:build !windows

package capability

// consoleUTF8 has no console code page to consult outside Windows; the
// locale decides.
func consoleUTF8(uintptr) (utf8 bool, known bool) {
	return false, false
}

// enableVirtualTerminal is a no-op: Unix terminals interpret ANSI sequences.
func enableVirtualTerminal(uintptr) bool {
	return true
}
