package render

// Profile selects the glyph and escape sequence set a frame is drawn with.
type Profile int

const (
	// ASCII draws with brackets, '=' and '>' and emits no escape sequences.
	ASCII Profile = iota
	// Unicode draws with box-drawing glyphs, colors, a braille spinner and
	// cursor/erase control sequences.
	Unicode
)

func (p Profile) String() string {
	switch p {
	case Unicode:
		return "unicode"
	default:
		return "ascii"
	}
}

// SelectProfile picks Unicode only when the stream handles both UTF-8 and
// ANSI escapes; anything less falls back to ASCII.
func SelectProfile(unicode, color bool) Profile {
	if unicode && color {
		return Unicode
	}
	return ASCII
}

const (
	escReset      = "\x1b[0m"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	escEraseLine  = "\x1b[2K"

	colorRunning   = "\x1b[38;5;197m"
	colorComplete  = "\x1b[38;5;70m"
	colorEmpty     = "\x1b[38;5;237m"
	colorElapsed   = "\x1b[33m"
	colorRemaining = "\x1b[36m"
)

type glyphs struct {
	lineStart string
	lineEnd   string

	barPrefix string
	barSuffix string
	fill      string
	halfFill  string
	halfEmpty string
	empty     string
	ellipsis  string

	spinner []string

	fillColor     string
	completeColor string
	emptyColor    string
	elapsedColor  string
	remainColor   string
	reset         string
}

var unicodeGlyphs = glyphs{
	lineStart: escHideCursor + "\r" + escEraseLine,
	lineEnd:   escShowCursor + "\n",

	fill:      "━",
	halfFill:  "╸",
	halfEmpty: "╺",
	empty:     "━",
	ellipsis:  "…",

	spinner: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇"},

	fillColor:     colorRunning,
	completeColor: colorComplete,
	emptyColor:    colorEmpty,
	elapsedColor:  colorElapsed,
	remainColor:   colorRemaining,
	reset:         escReset,
}

var asciiGlyphs = glyphs{
	lineStart: "\r",
	lineEnd:   "\n",

	barPrefix: "[",
	barSuffix: "]",
	fill:      "=",
	halfFill:  ">",
	halfEmpty: " ",
	empty:     " ",
	ellipsis:  "...",
}

func (p Profile) glyphs() *glyphs {
	if p == Unicode {
		return &unicodeGlyphs
	}
	return &asciiGlyphs
}

// SpinnerFrames returns the number of spinner frames of the profile; 0 means
// the profile has no spinner.
func (p Profile) SpinnerFrames() int {
	return len(p.glyphs().spinner)
}

// ShowCursor returns the sequence that makes the cursor visible again after
// a frame hid it, or "" when the profile never hides it.
func (p Profile) ShowCursor() string {
	if p == Unicode {
		return escShowCursor
	}
	return ""
}
