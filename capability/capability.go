// Package capability resolves what the terminal behind an output stream can
// display: whether it is interactive, whether it renders UTF-8, whether ANSI
// colors and control sequences may be emitted, and how many columns it has.
//
// Detection follows the usual conventions:
//
//   - NO_COLOR (non-empty) disables color, see https://no-color.org
//   - CLICOLOR_FORCE (set and not "0") forces color unless NO_COLOR is set
//   - color requires a terminal otherwise, and TERM=dumb disables it
//   - UTF-8 is assumed for anything that is not a terminal (files, pipes);
//     for terminals the locale (LC_ALL, LC_CTYPE, LANG) decides, or the
//     console output code page on Windows
//   - the width comes from the window size, then COLUMNS, then a default of
//     80 columns for terminals and 120 otherwise
package capability

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when a terminal does not report its size.
	DefaultTerminalWidth = 80
	// DefaultFileWidth is used for streams that are not terminals.
	DefaultFileWidth = 120
)

// Capabilities is what a renderer needs to know about its output stream.
type Capabilities struct {
	IsTTY   bool `json:"is_tty" yaml:"is_tty"`
	Unicode bool `json:"unicode" yaml:"unicode"`
	Color   bool `json:"color" yaml:"color"`
	Width   int  `json:"width" yaml:"width"`
}

// Probe performs capability detection. The zero value is not usable; start
// from DefaultProbe and replace the hooks that need faking.
type Probe struct {
	// LookupEnv reads an environment variable.
	LookupEnv func(key string) (string, bool)
	// IsTerminal reports whether fd is an interactive terminal.
	IsTerminal func(fd uintptr) bool
	// TerminalWidth queries the column count of the terminal behind fd.
	TerminalWidth func(fd uintptr) (int, error)
}

// DefaultProbe returns a Probe backed by the process environment and the OS.
func DefaultProbe() Probe {
	return Probe{
		LookupEnv: os.LookupEnv,
		IsTerminal: func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		TerminalWidth: func(fd uintptr) (int, error) {
			w, _, err := term.GetSize(int(fd))
			return w, err
		},
	}
}

// Detect resolves the capabilities of w with DefaultProbe.
func Detect(w io.Writer) Capabilities {
	return DefaultProbe().Detect(w)
}

type fder interface {
	Fd() uintptr
}

// Detect resolves the capabilities of w. Writers without a file descriptor
// are treated as non-interactive files.
func (p Probe) Detect(w io.Writer) Capabilities {
	f, ok := w.(fder)
	if !ok {
		return Capabilities{
			Unicode: true,
			Color:   p.colorOverride() == colorForced,
			Width:   DefaultFileWidth,
		}
	}

	fd := f.Fd()
	tty := p.IsTerminal(fd)
	return Capabilities{
		IsTTY:   tty,
		Unicode: p.supportsUTF8(fd, tty),
		Color:   p.supportsColor(fd, tty),
		Width:   p.width(fd, tty),
	}
}

type colorDecision int

const (
	colorUndecided colorDecision = iota
	colorDisabled
	colorForced
)

func (p Probe) colorOverride() colorDecision {
	if v, ok := p.LookupEnv("NO_COLOR"); ok && v != "" {
		return colorDisabled
	}
	if v, ok := p.LookupEnv("CLICOLOR_FORCE"); ok && v != "0" {
		return colorForced
	}
	return colorUndecided
}

func (p Probe) supportsColor(fd uintptr, tty bool) bool {
	switch p.colorOverride() {
	case colorDisabled:
		return false
	case colorForced:
		return true
	}
	if !tty {
		return false
	}
	if v, _ := p.LookupEnv("TERM"); v == "dumb" {
		return false
	}
	return enableVirtualTerminal(fd)
}

func (p Probe) supportsUTF8(fd uintptr, tty bool) bool {
	if !tty {
		return true
	}
	if utf8, known := consoleUTF8(fd); known {
		return utf8
	}
	// The first locale variable that is set wins, except that a non UTF-8
	// LC_CTYPE still lets LANG decide.
	for i, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v, ok := p.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		if hasUTF8(v) {
			return true
		}
		if i == 0 {
			return false
		}
	}
	return false
}

func (p Probe) width(fd uintptr, tty bool) int {
	if tty && p.TerminalWidth != nil {
		if w, err := p.TerminalWidth(fd); err == nil && w > 0 {
			return w
		}
	}
	if v, ok := p.LookupEnv("COLUMNS"); ok {
		if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && w > 0 {
			return w
		}
	}
	if tty {
		return DefaultTerminalWidth
	}
	return DefaultFileWidth
}

// hasUTF8 matches "utf8" and "utf-8" anywhere in s, ignoring case, as found
// in locale names such as en_US.UTF-8 or C.utf8.
func hasUTF8(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "utf8") || strings.Contains(s, "utf-8")
}
