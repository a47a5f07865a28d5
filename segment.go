package termline

import (
	"fmt"
	"log/slog"
	"unicode"
)

// ZeroWidthSpace is the non-rendering marker stored after the leading space of every
// user segment.
const ZeroWidthSpace = '\u200B'

// BaseLength is the length of the fixed " " + ZeroWidthSpace prefix of a user segment.
const BaseLength = 2

// SegmentKind distinguishes the locked prompt label from user-editable tokens.
type SegmentKind int

// Segment kinds
const (
	SegmentPrompt SegmentKind = iota
	SegmentUser
)

// Position classifies the cursor offset relative to a user segment.
type Position int

// Cursor positions, see Segment.Position.
const (
	PositionNone Position = iota
	PositionTrueStart
	PositionUserStart
	PositionFalseStart
	PositionMiddle
	PositionEnd
)

func (p Position) String() string {
	switch p {
	case PositionTrueStart:
		return "TrueStart"
	case PositionUserStart:
		return "UserStart"
	case PositionFalseStart:
		return "FalseStart"
	case PositionMiddle:
		return "Middle"
	case PositionEnd:
		return "End"
	default:
		return "None"
	}
}

// Selection is the cursor shared by every segment of an editor surface.
// A collapsed selection has start == end.
type Selection struct {
	segment *Segment
	start   int
	end     int
}

// Segment returns the segment holding the selection, or nil.
func (s *Selection) Segment() *Segment {
	return s.segment
}

// Offset returns the start offset of the selection within its segment.
func (s *Selection) Offset() int {
	return s.start
}

// IsRange reports whether more than one character is selected.
func (s *Selection) IsRange() bool {
	return s.segment != nil && s.end != s.start
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.segment = nil
	s.start, s.end = 0, 0
}

// SetRange selects [start, end) within seg. Range selections are read but never
// transformed by the editor: gestures act on the start offset.
func (s *Selection) SetRange(seg *Segment, start, end int) {
	if start > end {
		start, end = end, start
	}
	s.segment = seg
	s.start, s.end = start, end
}

func (s *Selection) collapse(seg *Segment, offset int) {
	s.segment = seg
	s.start, s.end = offset, offset
}

// surface is the editing document: the selection plus the diagnostics sink that
// segments report invariant violations to.
type surface struct {
	sel    Selection
	logger *slog.Logger
	strict bool
}

func newSurface(logger *slog.Logger, strict bool) *surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &surface{logger: logger, strict: strict}
}

// invariant reports a condition that correct gesture handling never produces.
// In strict mode it panics.
func (sf *surface) invariant(msg string, args ...any) {
	sf.logger.Error(msg, args...)
	if sf.strict {
		panic(fmt.Sprintf("termline: invariant violated: %s %v", msg, args))
	}
}

// Segment is one span of a line: the prompt label or a user token.
type Segment struct {
	kind    SegmentKind
	content []rune
	locked  bool
	sf      *surface
}

func newPromptSegment(sf *surface, label string) *Segment {
	s := &Segment{kind: SegmentPrompt, content: []rune(label), sf: sf}
	s.Lock()
	return s
}

func newUserSegment(sf *surface, text string) *Segment {
	return &Segment{kind: SegmentUser, content: userContent(text), sf: sf}
}

func userContent(text string) []rune {
	content := make([]rune, 0, BaseLength+len(text))
	content = append(content, ' ', ZeroWidthSpace)
	return append(content, []rune(text)...)
}

// Kind returns the segment kind.
func (s *Segment) Kind() SegmentKind {
	return s.kind
}

// Lock makes the segment read-only.
func (s *Segment) Lock() {
	s.locked = true
}

// Unlock makes the segment editable again. Prompt segments stay locked.
func (s *Segment) Unlock() {
	if s.kind == SegmentPrompt {
		return
	}
	s.locked = false
}

// Locked reports whether the segment rejects edits.
func (s *Segment) Locked() bool {
	return s.locked
}

// Content returns the raw content, including the fixed prefix of user segments.
func (s *Segment) Content() string {
	return string(s.content)
}

// Len returns the raw content length in runes.
func (s *Segment) Len() int {
	return len(s.content)
}

// Text returns the user-visible value: the prompt label, or the content of a user
// segment without its fixed prefix.
func (s *Segment) Text() string {
	if s.kind == SegmentPrompt {
		return string(s.content)
	}
	if len(s.content) < BaseLength {
		s.sf.invariant("user segment lost its prefix", "content", string(s.content))
		return ""
	}
	return string(s.content[BaseLength:])
}

// Empty reports whether nothing has been entered into the segment.
func (s *Segment) Empty() bool {
	return s.kind == SegmentUser && len(s.content) == BaseLength
}

// Populated reports whether the segment holds any non-whitespace user text.
func (s *Segment) Populated() bool {
	if s.kind != SegmentUser {
		return false
	}
	for _, r := range s.content[BaseLength:] {
		if !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// Active reports whether the selection is inside this segment.
func (s *Segment) Active() bool {
	return s.sf.sel.segment == s
}

// Position classifies the cursor offset within this segment. It returns
// PositionNone when the selection is elsewhere or absent.
func (s *Segment) Position() Position {
	if s.kind != SegmentUser || s.sf.sel.segment != s {
		return PositionNone
	}

	offset := s.sf.sel.start
	switch {
	case offset == 0:
		return PositionTrueStart
	case offset <= BaseLength:
		return PositionUserStart
	case offset > len(s.content):
		s.sf.logger.Warn("cursor offset is greater than the segment length",
			"offset", offset, "length", len(s.content))
		return PositionNone
	case onlyWhitespace(s.content[BaseLength:offset]):
		return PositionFalseStart
	case offset == len(s.content):
		return PositionEnd
	default:
		return PositionMiddle
	}
}

func onlyWhitespace(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// cursorOffset returns the selection offset if it lies in this segment.
func (s *Segment) cursorOffset() (int, bool) {
	if s.sf.sel.segment != s {
		return 0, false
	}
	offset := s.sf.sel.start
	if offset < 0 || offset > len(s.content) {
		s.sf.invariant("cursor offset out of range", "offset", offset, "length", len(s.content))
		return 0, false
	}
	return offset, true
}

func (s *Segment) editable() bool {
	if s.locked {
		s.sf.invariant("edit of a locked segment", "content", string(s.content))
		return false
	}
	return true
}

// Split truncates the segment at the cursor and returns the removed suffix verbatim.
// The fixed prefix is never split off.
func (s *Segment) Split() string {
	if !s.editable() {
		return ""
	}
	offset, ok := s.cursorOffset()
	if !ok {
		return ""
	}
	offset = max(offset, BaseLength)
	suffix := string(s.content[offset:])
	s.content = append([]rune(nil), s.content[:offset]...)
	return suffix
}

// Append adds raw text to the end of the segment. The cursor does not move.
func (s *Segment) Append(text string) {
	if !s.editable() {
		return
	}
	s.content = append(s.content, []rune(text)...)
}

// Prepend splices text directly after the fixed prefix and places the cursor one
// rune into the inserted text.
func (s *Segment) Prepend(text string) {
	if !s.editable() {
		return
	}
	runes := []rune(text)
	content := userContent(text)
	s.content = append(content, s.content[BaseLength:]...)
	s.PlaceCursor(BaseLength + min(1, len(runes)))
}

// ReplaceText replaces the whole user text and moves the cursor to the end.
func (s *Segment) ReplaceText(text string) {
	if !s.editable() {
		return
	}
	s.content = userContent(text)
	s.PlaceCursorAtEnd()
}

// InsertAtCursorPosition splices text at the cursor and advances the cursor past it.
// It refuses to insert before the user start.
func (s *Segment) InsertAtCursorPosition(text string) {
	pos := s.Position()
	if pos == PositionNone || pos == PositionTrueStart {
		s.sf.logger.Warn("refusing to insert before the user start", "position", pos.String())
		return
	}
	if !s.editable() {
		return
	}
	offset := max(s.sf.sel.start, BaseLength)
	runes := []rune(text)
	content := make([]rune, 0, len(s.content)+len(runes))
	content = append(content, s.content[:offset]...)
	content = append(content, runes...)
	s.content = append(content, s.content[offset:]...)
	s.PlaceCursor(offset + len(runes))
}

// deleteBeforeCursor removes the rune preceding the cursor, never touching the prefix.
func (s *Segment) deleteBeforeCursor() bool {
	if !s.editable() {
		return false
	}
	offset, ok := s.cursorOffset()
	if !ok || offset <= BaseLength {
		return false
	}
	s.content = append(s.content[:offset-1], s.content[offset:]...)
	s.PlaceCursor(offset - 1)
	return true
}

// relabel replaces the text of a prompt segment.
func (s *Segment) relabel(label string) {
	if s.kind != SegmentPrompt {
		s.sf.invariant("relabel of a user segment")
		return
	}
	s.content = []rune(label)
}

// PlaceCursor collapses the selection at offset within this segment.
func (s *Segment) PlaceCursor(offset int) {
	if offset < 0 || offset > len(s.content) {
		s.sf.invariant("cursor placed outside the segment", "offset", offset, "length", len(s.content))
		offset = min(max(offset, 0), len(s.content))
	}
	s.sf.sel.collapse(s, offset)
}

// PlaceCursorAtTrueStart places the cursor before the fixed leading space.
func (s *Segment) PlaceCursorAtTrueStart() {
	s.PlaceCursor(0)
}

// PlaceCursorAtUserStart places the cursor right after the fixed prefix.
func (s *Segment) PlaceCursorAtUserStart() {
	s.PlaceCursor(BaseLength)
}

// PlaceCursorAtEnd places the cursor after the last rune.
func (s *Segment) PlaceCursorAtEnd() {
	s.PlaceCursor(len(s.content))
}
