// Package render draws progress bar frames.
//
// Render is a pure function of its Input: the same input always yields the
// same bytes. A frame has the fixed layout
//
//	[control] [spinner ]? [description ]? prefix FILLED EMPTY suffix " NNN% " [elapsed < remaining] [newline]?
//
// The bar resolves fill at half-cell granularity: with B cells there are 2B
// fill levels, the odd ones drawn with a half-filled head glyph.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultBarWidth is the number of cells of the bar itself.
const DefaultBarWidth = 40

// placeholder is shown for a time that cannot be computed.
const placeholder = "--:--:--"

// Input is everything a frame depends on.
type Input struct {
	Profile Profile

	// Percent is clamped to [0, 100] before drawing.
	Percent  float64
	Finished bool

	// Updates picks the spinner frame; negative values show the first frame.
	Updates int64

	// Elapsed and Remaining are in seconds. Remaining is only drawn when
	// HasRemaining is set.
	Elapsed      float64
	Remaining    float64
	HasRemaining bool

	Description string

	// BarWidth is the cell count of the bar, DefaultBarWidth when zero.
	BarWidth int
	// TerminalWidth bounds the frame width by shortening the description;
	// zero disables fitting.
	TerminalWidth int
}

// Fill describes how many cells of a bar are filled.
type Fill struct {
	HalfCells int
	Full      int
	HasHalf   bool
	Empty     int
}

// Cells computes the half-cell fill of a bar of width cells at percent.
func Cells(percent float64, width int) Fill {
	percent = ClampPercent(percent)
	half := int(math.Floor(percent * float64(2*width) / 100))
	if half > 2*width {
		half = 2 * width
	}
	full := half / 2
	return Fill{
		HalfCells: half,
		Full:      full,
		HasHalf:   half%2 == 1,
		Empty:     width - full,
	}
}

// ClampPercent bounds p to [0, 100], mapping NaN to 0.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Render builds one frame.
func Render(in Input) string {
	g := in.Profile.glyphs()
	width := in.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}
	percent := ClampPercent(in.Percent)
	fill := Cells(percent, width)

	spinner := ""
	if len(g.spinner) > 0 {
		idx := int64(0)
		if in.Updates > 0 {
			idx = in.Updates % int64(len(g.spinner))
		}
		spinner = g.spinner[idx]
	}

	elapsed := placeholder
	if in.Elapsed >= 0 {
		elapsed = FormatClock(in.Elapsed)
	}
	remaining := placeholder
	if in.HasRemaining {
		remaining = FormatClock(in.Remaining)
	}
	percentText := fmt.Sprintf(" %3d%% ", int(percent))

	description := fitDescription(in, g, spinner, width, percentText, elapsed, remaining)

	var b strings.Builder
	b.WriteString(g.lineStart)
	if spinner != "" {
		b.WriteString(spinner)
		b.WriteByte(' ')
	}
	if description != "" {
		b.WriteString(description)
		b.WriteByte(' ')
	}

	b.WriteString(g.barPrefix)

	fillColor := g.fillColor
	if in.Finished {
		fillColor = g.completeColor
	}
	if fill.Full > 0 || fill.HasHalf {
		b.WriteString(fillColor)
		b.WriteString(strings.Repeat(g.fill, fill.Full))
		if fill.HasHalf {
			b.WriteString(g.halfFill)
		}
		b.WriteString(g.reset)
	}

	emptyRun := fill.Empty
	if fill.HasHalf {
		// The half-filled head takes the first empty cell.
		emptyRun--
	}
	if emptyRun > 0 {
		b.WriteString(g.emptyColor)
		if !fill.HasHalf {
			b.WriteString(g.halfEmpty)
			emptyRun--
		}
		b.WriteString(strings.Repeat(g.empty, emptyRun))
		b.WriteString(g.reset)
	}

	b.WriteString(g.barSuffix)
	b.WriteString(percentText)

	b.WriteByte('[')
	b.WriteString(g.elapsedColor)
	b.WriteString(elapsed)
	b.WriteString(g.reset)
	b.WriteString(" < ")
	b.WriteString(g.remainColor)
	b.WriteString(remaining)
	b.WriteString(g.reset)
	b.WriteByte(']')

	if in.Finished {
		b.WriteString(g.lineEnd)
	}
	return b.String()
}

// fitDescription shortens the description so the visible frame is no wider
// than the terminal. It returns "" when there is no room at all.
func fitDescription(in Input, g *glyphs, spinner string, width int, percentText, elapsed, remaining string) string {
	if in.Description == "" || in.TerminalWidth <= 0 {
		return in.Description
	}

	fixed := runewidth.StringWidth(g.barPrefix) + width + runewidth.StringWidth(g.barSuffix) +
		len(percentText) + len("[ < ]") + len(elapsed) + len(remaining)
	if spinner != "" {
		fixed += runewidth.StringWidth(spinner) + 1
	}

	room := in.TerminalWidth - fixed - 1
	if runewidth.StringWidth(in.Description) <= room {
		return in.Description
	}
	if room <= runewidth.StringWidth(g.ellipsis) {
		return ""
	}
	return runewidth.Truncate(in.Description, room, g.ellipsis)
}

// FormatClock formats seconds as zero-padded HH:MM:SS, truncating fractions.
// Negative and non-finite values yield the placeholder.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 || seconds > math.MaxInt32*3600.0 {
		return placeholder
	}
	s := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
