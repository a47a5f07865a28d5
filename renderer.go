package termline

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderer draws the active line and program output with ANSI escape sequences.
//
// Output records are printed above the prompt, which is then redrawn. The cursor
// column is computed from display widths, so wide characters keep the cursor in
// place, and the zero-width markers of user segments are never written.
type renderer struct {
	output      io.Writer    // Target output writer (typically stdout or colorable wrapper)
	colorScheme *ColorScheme // Color configuration for themed rendering
}

func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	if colorScheme == nil {
		colorScheme = ThemeDefault
	}
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
	}
}

// displayText returns what a segment shows on screen: its content without zero-width
// markers.
func displayText(s *Segment) string {
	return strings.ReplaceAll(s.Content(), string(ZeroWidthSpace), "")
}

// cursorColumn returns the screen column of the selection on line, or -1 when the
// cursor is not on it.
func cursorColumn(line *Line, sel *Selection) int {
	col := 0
	for _, s := range line.segments {
		if s == sel.Segment() {
			offset := min(max(sel.Offset(), 0), s.Len())
			before := strings.ReplaceAll(string(s.content[:offset]), string(ZeroWidthSpace), "")
			return col + runewidth.StringWidth(before)
		}
		col += runewidth.StringWidth(displayText(s))
	}
	return -1
}

// renderLine redraws line in place and positions the cursor.
func (r *renderer) renderLine(line *Line, sel *Selection) error {
	var b strings.Builder
	b.WriteString("\r\x1b[K")

	for i, s := range line.segments {
		var color Color
		switch {
		case i == 0:
			color = r.colorScheme.Prompt
		case i == 1:
			color = r.colorScheme.Command
		default:
			color = r.colorScheme.Argument
		}
		b.WriteString(color.ToANSI())
		b.WriteString(displayText(s))
		b.WriteString(Reset())
	}

	b.WriteString("\r")
	if col := cursorColumn(line, sel); col > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", col)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// renderSubmitted leaves line in the transcript and moves to a fresh row.
func (r *renderer) renderSubmitted(line *Line) error {
	if err := r.renderLine(line, &Selection{}); err != nil {
		return err
	}
	_, err := io.WriteString(r.output, "\r\n")
	return err
}

// renderRecord prints one output record on its own rows, replacing the prompt row.
func (r *renderer) renderRecord(rec Record) error {
	if rec.Kind == RecordClear {
		_, err := io.WriteString(r.output, "\x1b[2J\x1b[H")
		return err
	}

	var b strings.Builder
	b.WriteString("\r\x1b[K")
	b.WriteString(r.recordColor(rec).ToANSI())
	if rec.Target != "" {
		fmt.Fprintf(&b, "[%s] ", rec.Target)
	}
	b.WriteString(strings.ReplaceAll(rec.Text, "\n", "\r\n"))
	b.WriteString(Reset())
	b.WriteString("\r\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *renderer) recordColor(rec Record) Color {
	switch rec.Kind {
	case RecordWarning:
		return r.colorScheme.Warning
	case RecordError:
		return r.colorScheme.Error
	case RecordInfo:
		return r.colorScheme.Info
	case RecordFreeform:
		// The first known style wins
		for _, style := range rec.Styles {
			if c, ok := r.colorScheme.Lookup(style); ok {
				return c
			}
		}
	}
	return r.colorScheme.Text
}

// newline writes an empty row.
func (r *renderer) newline() error {
	_, err := io.WriteString(r.output, "\r\n")
	return err
}
