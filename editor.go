package termline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode"
)

// GestureKind is an editing gesture delivered to the Editor.
type GestureKind int

// Editing gestures
const (
	GestureChar GestureKind = iota
	GestureSpace
	GestureBackspace
	GestureLeft
	GestureRight
	GestureUp
	GestureDown
	GestureEnter
	GesturePaste
	GestureTab
)

func (k GestureKind) String() string {
	switch k {
	case GestureChar:
		return "char"
	case GestureSpace:
		return "space"
	case GestureBackspace:
		return "backspace"
	case GestureLeft:
		return "left"
	case GestureRight:
		return "right"
	case GestureUp:
		return "up"
	case GestureDown:
		return "down"
	case GestureEnter:
		return "enter"
	case GesturePaste:
		return "paste"
	case GestureTab:
		return "tab"
	default:
		return "unknown"
	}
}

// Gesture is one input event. Rune is set for GestureChar, Text for GesturePaste.
type Gesture struct {
	Kind GestureKind
	Rune rune
	Text string
}

// Dispatcher runs submitted command lines.
type Dispatcher interface {
	ProcessCommand(ctx context.Context, line string) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, line string) error

// ProcessCommand calls f.
func (f DispatcherFunc) ProcessCommand(ctx context.Context, line string) error {
	return f(ctx, line)
}

// EditorConfig holds the collaborators of an Editor. Nil fields get defaults:
// an in-memory history, an empty completer and the default logger.
type EditorConfig struct {
	PromptLabel    string
	History        History
	Completer      *AutoCompleter
	Reader         *Reader
	Dispatcher     Dispatcher
	Logger         *slog.Logger
	Context        context.Context
	QuoteMultiWord bool // Wrap completions containing spaces in double quotes
	Strict         bool // Panic on invariant violations

	// OnDispatched is called on the dispatch goroutine after a command finishes.
	OnDispatched func(line string, err error)
}

// Editor is the line-editing state machine. It owns the transcript of lines and
// the selection, and applies gestures to the active line.
type Editor struct {
	sf           *surface
	label        string
	lines        []*Line
	line         *Line
	history      History
	recall       historyRecall
	completion   completion
	reader       *Reader
	dispatcher   Dispatcher
	ctx          context.Context
	logger       *slog.Logger
	quote        bool
	onDispatched func(string, error)
	wg           sync.WaitGroup
}

// NewEditor creates an editor with one fresh line and the cursor at its user start.
func NewEditor(config EditorConfig) *Editor {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.History == nil {
		config.History = NewMemoryHistory(DefaultHistoryLimit)
	}
	if config.Completer == nil {
		config.Completer = NewAutoCompleter()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	e := &Editor{
		sf:           newSurface(config.Logger, config.Strict),
		label:        config.PromptLabel,
		history:      config.History,
		recall:       historyRecall{history: config.History},
		completion:   completion{completer: config.Completer},
		reader:       config.Reader,
		dispatcher:   config.Dispatcher,
		ctx:          config.Context,
		logger:       config.Logger,
		quote:        config.QuoteMultiWord,
		onDispatched: config.OnDispatched,
	}
	e.appendLine()
	return e
}

// Lines returns the transcript: every submitted line followed by the active one.
func (e *Editor) Lines() []*Line {
	return append([]*Line(nil), e.lines...)
}

// ActiveLine returns the line being edited.
func (e *Editor) ActiveLine() *Line {
	return e.line
}

// Selection returns the editor's cursor.
func (e *Editor) Selection() *Selection {
	return &e.sf.sel
}

// History returns the history backend.
func (e *Editor) History() History {
	return e.history
}

// PromptLabel returns the label used for new lines.
func (e *Editor) PromptLabel() string {
	return e.label
}

// SetPromptLabel changes the label of the active line and of every line created
// afterwards.
func (e *Editor) SetPromptLabel(label string) {
	e.label = label
	e.line.relabel(label)
}

// Recalling reports whether the active line shows a history entry.
func (e *Editor) Recalling() bool {
	return e.recall.recalling()
}

// Wait blocks until every dispatched command has returned.
func (e *Editor) Wait() {
	e.wg.Wait()
}

// Type feeds text as character and space gestures.
func (e *Editor) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			e.Handle(Gesture{Kind: GestureSpace})
			continue
		}
		e.Handle(Gesture{Kind: GestureChar, Rune: r})
	}
}

// Handle applies one gesture to the active line.
func (e *Editor) Handle(g Gesture) {
	if g.Kind != GestureTab {
		e.completion.detach()
	}

	switch g.Kind {
	case GestureChar:
		if g.Rune == ' ' {
			e.space()
			return
		}
		e.insertChar(g.Rune)
	case GestureSpace:
		e.space()
	case GestureBackspace:
		e.backspace()
	case GestureLeft:
		e.left()
	case GestureRight:
		e.right()
	case GestureUp:
		e.historyUp()
	case GestureDown:
		e.historyDown()
	case GestureEnter:
		e.enter()
	case GesturePaste:
		e.paste(g.Text)
	case GestureTab:
		e.complete()
	default:
		e.logger.Warn("unknown gesture", "kind", int(g.Kind))
	}
}

// active returns the segment holding the cursor and its position, or nil when the
// cursor is lost.
func (e *Editor) active() (*Segment, Position) {
	seg := e.line.ActiveSegment()
	if seg == nil {
		e.logger.Warn("no active segment on the line")
		return nil, PositionNone
	}
	pos := seg.Position()
	if pos == PositionNone {
		e.logger.Warn("cursor position is unavailable")
		return nil, PositionNone
	}
	return seg, pos
}

func (e *Editor) insertChar(r rune) {
	if !unicode.IsPrint(r) || r == ZeroWidthSpace {
		return
	}
	seg, _ := e.active()
	if seg == nil {
		return
	}
	e.recall.detach()
	seg.InsertAtCursorPosition(string(r))
}

func (e *Editor) space() {
	seg, pos := e.active()
	if seg == nil {
		return
	}
	e.recall.detach()

	switch pos {
	case PositionTrueStart:
		// Nothing may precede the fixed leading space.
	case PositionUserStart, PositionFalseStart:
		seg.InsertAtCursorPosition(" ")
	case PositionEnd:
		e.line.InsertArgumentAfter(seg, "").PlaceCursorAtUserStart()
	case PositionMiddle:
		suffix := seg.Split()
		e.line.InsertArgumentAfter(seg, suffix).PlaceCursorAtUserStart()
	}
}

func (e *Editor) backspace() {
	seg, pos := e.active()
	if seg == nil {
		return
	}
	e.recall.detach()

	switch pos {
	case PositionTrueStart, PositionUserStart:
		prev := e.line.PreviousSegment(seg)
		if prev == nil {
			// The command token has nothing to merge into.
			return
		}
		switch {
		case seg.Empty():
			e.line.RemoveSegment(seg)
			prev.PlaceCursorAtEnd()
		case seg.Populated():
			e.line.JoinWithPrevious(seg)
		}
	default:
		seg.deleteBeforeCursor()
	}
}

func (e *Editor) left() {
	seg, pos := e.active()
	if seg == nil {
		return
	}
	if pos == PositionTrueStart || pos == PositionUserStart {
		if prev := e.line.PreviousSegment(seg); prev != nil {
			prev.PlaceCursorAtEnd()
		}
		return
	}
	seg.PlaceCursor(e.sf.sel.Offset() - 1)
}

func (e *Editor) right() {
	seg, _ := e.active()
	if seg == nil {
		return
	}
	offset := e.sf.sel.Offset()
	if offset >= seg.Len() {
		if next := e.line.NextSegment(seg); next != nil {
			next.PlaceCursorAtUserStart()
		}
		return
	}
	seg.PlaceCursor(offset + 1)
}

func (e *Editor) historyUp() {
	entry, ok := e.recall.older()
	if !ok {
		return
	}
	e.replaceLine(entry)
}

func (e *Editor) historyDown() {
	entry, ok := e.recall.newer()
	if !ok {
		return
	}
	e.replaceLine(entry)
}

// replaceLine swaps the active line for a fresh one holding command, with the
// cursor at its end.
func (e *Editor) replaceLine(command string) {
	line := newLine(e.sf, e.label, Tokenize(command)...)
	e.lines[len(e.lines)-1] = line
	e.line = line
	line.LastSegment().PlaceCursorAtEnd()
}

func (e *Editor) appendLine() {
	line := newLine(e.sf, e.label)
	e.lines = append(e.lines, line)
	e.line = line
	line.CommandSegment().PlaceCursorAtUserStart()
}

func (e *Editor) enter() {
	command := e.line.String()
	e.line.Lock()
	e.recall.detach()

	switch {
	case e.reader != nil && e.reader.Pending():
		e.reader.Respond(command)
	case strings.TrimSpace(command) != "":
		if e.history.Len() == 0 || e.history.Get(0) != command {
			e.history.Push(command)
		}
		e.dispatch(command)
	}

	e.appendLine()
}

func (e *Editor) dispatch(command string) {
	if e.dispatcher == nil {
		return
	}
	ctx := e.ctx
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		err := e.dispatcher.ProcessCommand(ctx, command)
		if err != nil {
			e.logger.Error("command failed", "command", command, "error", err)
		}
		if e.onDispatched != nil {
			e.onDispatched(command, err)
		}
	}()
}

func (e *Editor) complete() {
	seg, _ := e.active()
	if seg == nil || seg != e.line.CommandSegment() {
		return
	}
	suggestion := e.completion.next(seg.Text())
	if suggestion == "" {
		return
	}
	e.recall.detach()
	if e.quote && strings.ContainsAny(suggestion, " \t") {
		suggestion = `"` + suggestion + `"`
	}
	seg.ReplaceText(suggestion)
}

// normalizePaste flattens line breaks and tabs into spaces and drops zero-width
// markers, since a line holds a single row of space-separated tokens.
func normalizePaste(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		switch {
		case r == ZeroWidthSpace:
			return -1
		case r == '\n', r == '\r', r == '\t':
			return ' '
		case !unicode.IsPrint(r):
			return -1
		}
		return r
	}, text)
}

func (e *Editor) paste(text string) {
	text = normalizePaste(text)
	if text == "" {
		return
	}
	seg, pos := e.active()
	if seg == nil {
		return
	}
	e.recall.detach()
	tokens := Tokenize(text)

	atStart := pos == PositionTrueStart || pos == PositionUserStart
	if atStart && !seg.Empty() {
		if len(tokens) == 1 {
			seg.Prepend(text)
			seg.PlaceCursor(BaseLength + len([]rune(text)))
			return
		}
		// Each token becomes its own segment ahead of the current one.
		anchor := e.line.segments[e.line.indexOf(seg)-1]
		for _, token := range tokens {
			anchor = e.line.InsertArgumentAfter(anchor, token)
		}
		seg.PlaceCursorAtUserStart()
		return
	}

	// The first token joins the text before the cursor, the last one the text after.
	tail := seg.Split()
	last := len(tokens) - 1
	if last == 0 {
		seg.Append(tokens[0] + tail)
		seg.PlaceCursor(seg.Len() - len([]rune(tail)))
		return
	}
	seg.Append(tokens[0])
	anchor := seg
	for _, token := range tokens[1:last] {
		anchor = e.line.InsertArgumentAfter(anchor, token)
	}
	end := e.line.InsertArgumentAfter(anchor, tokens[last]+tail)
	end.PlaceCursor(BaseLength + len([]rune(tokens[last])))
}
