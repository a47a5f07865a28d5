package termline

import (
	"slices"
	"strings"
)

// Line is one logical command: a locked prompt segment followed by one or more user
// segments. The first user segment is the command token, the rest are arguments.
type Line struct {
	sf       *surface
	segments []*Segment
}

// newLine builds a line from a prompt label and the user texts of its tokens.
// At least one (possibly empty) user segment is always created.
func newLine(sf *surface, label string, texts ...string) *Line {
	if len(texts) == 0 {
		texts = []string{""}
	}
	l := &Line{sf: sf, segments: make([]*Segment, 0, len(texts)+1)}
	l.segments = append(l.segments, newPromptSegment(sf, label))
	for _, text := range texts {
		l.segments = append(l.segments, newUserSegment(sf, text))
	}
	return l
}

// Segments returns all segments, prompt first.
func (l *Line) Segments() []*Segment {
	return slices.Clone(l.segments)
}

// Spans returns the raw content of every segment, prompt first. This is the
// observable structure of the line.
func (l *Line) Spans() []string {
	spans := make([]string, len(l.segments))
	for i, s := range l.segments {
		spans[i] = s.Content()
	}
	return spans
}

// Texts returns the user text of every user segment.
func (l *Line) Texts() []string {
	texts := make([]string, 0, len(l.segments)-1)
	for _, s := range l.segments[1:] {
		texts = append(texts, s.Text())
	}
	return texts
}

// String reconstructs the command line: user texts joined by single spaces.
func (l *Line) String() string {
	return strings.Join(l.Texts(), " ")
}

// Prompt returns the locked prompt segment.
func (l *Line) Prompt() *Segment {
	return l.segments[0]
}

// CommandSegment returns the command token.
func (l *Line) CommandSegment() *Segment {
	return l.segments[1]
}

// LastSegment returns the last user segment.
func (l *Line) LastSegment() *Segment {
	return l.segments[len(l.segments)-1]
}

// Lock makes every segment of the line read-only.
func (l *Line) Lock() {
	for _, s := range l.segments {
		s.Lock()
	}
}

// ActiveSegment returns the user segment holding the cursor, or nil when the cursor
// is not on this line.
func (l *Line) ActiveSegment() *Segment {
	active := l.sf.sel.segment
	if active == nil || active.kind != SegmentUser || l.indexOf(active) < 0 {
		return nil
	}
	return active
}

func (l *Line) indexOf(seg *Segment) int {
	return slices.Index(l.segments, seg)
}

// PreviousSegment returns the user segment before seg, or nil for the command token.
func (l *Line) PreviousSegment(seg *Segment) *Segment {
	i := l.indexOf(seg)
	if i <= 1 {
		return nil
	}
	return l.segments[i-1]
}

// NextSegment returns the user segment after seg, or nil for the last segment.
func (l *Line) NextSegment(seg *Segment) *Segment {
	i := l.indexOf(seg)
	if i < 0 || i+1 >= len(l.segments) {
		return nil
	}
	return l.segments[i+1]
}

// InsertArgumentAfter creates a user segment holding text directly after seg.
// Passing the prompt segment inserts a new command token.
func (l *Line) InsertArgumentAfter(seg *Segment, text string) *Segment {
	i := l.indexOf(seg)
	if i < 0 {
		l.sf.invariant("insert after a segment that is not on the line")
		return nil
	}
	created := newUserSegment(l.sf, text)
	l.segments = slices.Insert(l.segments, i+1, created)
	return created
}

// RemoveSegment removes a user segment. The prompt and the last remaining user
// segment cannot be removed.
func (l *Line) RemoveSegment(seg *Segment) bool {
	i := l.indexOf(seg)
	if i <= 0 || len(l.segments) <= 2 {
		return false
	}
	l.segments = slices.Delete(l.segments, i, i+1)
	if l.sf.sel.segment == seg {
		l.sf.sel.Clear()
	}
	return true
}

// JoinWithPrevious appends the user text of seg to the previous segment, removes
// seg and places the cursor at the junction.
func (l *Line) JoinWithPrevious(seg *Segment) bool {
	prev := l.PreviousSegment(seg)
	if prev == nil {
		return false
	}
	junction := prev.Len()
	prev.Append(seg.Text())
	if !l.RemoveSegment(seg) {
		return false
	}
	prev.PlaceCursor(junction)
	return true
}

// relabel replaces the prompt label of the line.
func (l *Line) relabel(label string) {
	l.segments[0].relabel(label)
}

// Tokenize splits a command line into segment texts. Every run of spaces is cut at
// its first space; the remaining spaces of the run lead the next token, so joining
// the tokens with single spaces restores s exactly. A trailing space yields a
// trailing empty token.
func Tokenize(s string) []string {
	parts := strings.Split(s, " ")
	tokens := make([]string, 0, len(parts))
	pending := 0
	for i, part := range parts {
		if part == "" && i < len(parts)-1 {
			pending++
			continue
		}
		tokens = append(tokens, strings.Repeat(" ", pending)+part)
		pending = 0
	}
	return tokens
}
