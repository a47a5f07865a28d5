package termline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLabel = "termline>"

// span returns the raw content of a user segment holding text.
func span(text string) string {
	return " " + zw + text
}

type recordingDispatcher struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (d *recordingDispatcher) ProcessCommand(_ context.Context, line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, line)
	return d.err
}

func (d *recordingDispatcher) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lines...)
}

func newTestEditor(t *testing.T, config EditorConfig) *Editor {
	t.Helper()
	if config.PromptLabel == "" {
		config.PromptLabel = testLabel
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	config.Strict = true
	return NewEditor(config)
}

func press(e *Editor, kinds ...GestureKind) {
	for _, kind := range kinds {
		e.Handle(Gesture{Kind: kind})
	}
}

func repeat(kind GestureKind, n int) []GestureKind {
	kinds := make([]GestureKind, n)
	for i := range kinds {
		kinds[i] = kind
	}
	return kinds
}

// assertCursor checks the selection offset and the content of the segment holding it.
func assertCursor(t *testing.T, e *Editor, offset int, content string) {
	t.Helper()
	sel := e.Selection()
	require.NotNil(t, sel.Segment(), "selection lost")
	assert.Equal(t, offset, sel.Offset(), "cursor offset")
	assert.Equal(t, content, sel.Segment().Content(), "active segment")
}

// assertLine checks the spans of the active line.
func assertLine(t *testing.T, e *Editor, spans ...string) {
	t.Helper()
	assert.Equal(t, spans, e.ActiveLine().Spans())
}

func TestEditorInitialization(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})

	assert.Len(t, e.Lines(), 1)
	assertLine(t, e, testLabel, span(""))
	assertCursor(t, e, 2, span(""))
	assert.Equal(t, testLabel, e.PromptLabel())
}

func TestEditorInitialCursorNoOps(t *testing.T) {
	t.Parallel()

	for _, kind := range []GestureKind{GestureLeft, GestureRight, GestureBackspace, GestureUp, GestureDown, GestureTab} {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			e := newTestEditor(t, EditorConfig{})
			press(e, kind)

			assertCursor(t, e, 2, span(""))
			assertLine(t, e, testLabel, span(""))
		})
	}
}

func TestEditorEnterOnEmptyLine(t *testing.T) {
	t.Parallel()

	d := &recordingDispatcher{}
	e := newTestEditor(t, EditorConfig{Dispatcher: d})
	press(e, GestureEnter)
	e.Wait()

	assert.Len(t, e.Lines(), 2)
	assertCursor(t, e, 2, span(""))
	assert.Empty(t, d.Lines())
	assert.Equal(t, 0, e.History().Len())
}

func TestEditorSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(e *Editor)
		wantOff int
		wantSeg string
		want    []string
	}{
		{
			name:    "initial cursor pads the command",
			setup:   func(e *Editor) { press(e, GestureSpace) },
			wantOff: 3,
			wantSeg: span(" "),
			want:    []string{testLabel, span(" ")},
		},
		{
			name:    "after a command opens an argument",
			setup:   func(e *Editor) { e.Type("command ") },
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("command"), span("")},
		},
		{
			name:    "after an argument opens another argument",
			setup:   func(e *Editor) { e.Type("command arg1 ") },
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("command"), span("arg1"), span("")},
		},
		{
			name: "at the start of a command pads it",
			setup: func(e *Editor) {
				e.Type("command")
				e.ActiveLine().CommandSegment().PlaceCursorAtUserStart()
				press(e, GestureSpace)
			},
			wantOff: 3,
			wantSeg: span(" command"),
			want:    []string{testLabel, span(" command")},
		},
		{
			name: "in the middle of a command splits it",
			setup: func(e *Editor) {
				e.Type("command")
				e.ActiveLine().CommandSegment().PlaceCursor(5)
				press(e, GestureSpace)
			},
			wantOff: 2,
			wantSeg: span("mand"),
			want:    []string{testLabel, span("com"), span("mand")},
		},
		{
			name: "at the true start does nothing",
			setup: func(e *Editor) {
				e.Type("command")
				e.ActiveLine().CommandSegment().PlaceCursorAtTrueStart()
				press(e, GestureSpace)
			},
			wantOff: 0,
			wantSeg: span("command"),
			want:    []string{testLabel, span("command")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEditor(t, EditorConfig{})
			tt.setup(e)

			assertCursor(t, e, tt.wantOff, tt.wantSeg)
			assertLine(t, e, tt.want...)
		})
	}
}

func TestEditorBackspace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(e *Editor)
		wantOff int
		wantSeg string
		want    []string
	}{
		{
			name:    "initial cursor does nothing",
			setup:   func(e *Editor) { press(e, GestureBackspace) },
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("")},
		},
		{
			name:    "through leading whitespace",
			setup:   func(e *Editor) { press(e, GestureSpace, GestureBackspace) },
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("")},
		},
		{
			name: "through a single character command",
			setup: func(e *Editor) {
				e.Type("c")
				press(e, GestureBackspace)
			},
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("")},
		},
		{
			name: "through a multi character command",
			setup: func(e *Editor) {
				e.Type("com")
				press(e, repeat(GestureBackspace, 3)...)
			},
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("")},
		},
		{
			name: "from an empty argument removes it",
			setup: func(e *Editor) {
				e.Type("command a")
				press(e, GestureBackspace, GestureBackspace)
			},
			wantOff: 9,
			wantSeg: span("command"),
			want:    []string{testLabel, span("command")},
		},
		{
			name: "in leading whitespace of a populated argument keeps it",
			setup: func(e *Editor) {
				e.Type("command a")
				e.ActiveLine().LastSegment().PlaceCursorAtUserStart()
				press(e, GestureSpace, GestureBackspace)
			},
			wantOff: 2,
			wantSeg: span("a"),
			want:    []string{testLabel, span("command"), span("a")},
		},
		{
			name: "in leading whitespace of an emptied argument keeps it",
			setup: func(e *Editor) {
				e.Type("command a")
				e.ActiveLine().LastSegment().PlaceCursorAtUserStart()
				press(e, GestureSpace)
				e.ActiveLine().LastSegment().PlaceCursor(4)
				press(e, GestureBackspace, GestureBackspace)
			},
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("command"), span("")},
		},
		{
			name: "from a populated argument joins it",
			setup: func(e *Editor) {
				e.Type("command arg")
				e.ActiveLine().LastSegment().PlaceCursorAtUserStart()
				press(e, GestureBackspace)
			},
			wantOff: 9,
			wantSeg: span("commandarg"),
			want:    []string{testLabel, span("commandarg")},
		},
		{
			name: "from the true start of a populated argument joins it",
			setup: func(e *Editor) {
				e.Type("command arg")
				e.ActiveLine().LastSegment().PlaceCursorAtTrueStart()
				press(e, GestureBackspace)
			},
			wantOff: 9,
			wantSeg: span("commandarg"),
			want:    []string{testLabel, span("commandarg")},
		},
		{
			name: "at the start of a whitespace only argument does nothing",
			setup: func(e *Editor) {
				e.Type("command ")
				press(e, GestureSpace, GestureLeft, GestureBackspace)
			},
			wantOff: 2,
			wantSeg: span(" "),
			want:    []string{testLabel, span("command"), span(" ")},
		},
		{
			name: "in the middle deletes one character",
			setup: func(e *Editor) {
				e.Type("command")
				e.ActiveLine().CommandSegment().PlaceCursor(5)
				press(e, GestureBackspace)
			},
			wantOff: 4,
			wantSeg: span("comand"),
			want:    []string{testLabel, span("comand")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEditor(t, EditorConfig{})
			tt.setup(e)

			assertCursor(t, e, tt.wantOff, tt.wantSeg)
			assertLine(t, e, tt.want...)
		})
	}
}

func TestEditorArrowsAcrossSegments(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})
	e.Type("command arg")
	assertCursor(t, e, 5, span("arg"))

	press(e, repeat(GestureLeft, 3)...)
	assertCursor(t, e, 2, span("arg"))

	press(e, GestureLeft)
	assertCursor(t, e, 9, span("command"))

	press(e, GestureRight)
	assertCursor(t, e, 2, span("arg"))

	press(e, GestureRight)
	assertCursor(t, e, 3, span("arg"))
	assertLine(t, e, testLabel, span("command"), span("arg"))
}

func TestEditorArrowsAreIdempotentAtBoundaries(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})
	e.Type("cmd a b")

	press(e, repeat(GestureRight, 10)...)
	assertCursor(t, e, 3, span("b"))

	for range 5 {
		press(e, GestureRight)
		assertCursor(t, e, 3, span("b"))
	}

	// 2 moves per argument plus the junctions, then well past the start
	press(e, repeat(GestureLeft, 30)...)
	assertCursor(t, e, 2, span("cmd"))

	for range 5 {
		press(e, GestureLeft)
		assertCursor(t, e, 2, span("cmd"))
	}
	assertLine(t, e, testLabel, span("cmd"), span("a"), span("b"))
}

func newHistoryEditor(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor(t, EditorConfig{})
	for _, command := range []string{"hello world", "echo my message", "test", "test"} {
		e.Type(command)
		press(e, GestureEnter)
	}
	return e
}

func TestEditorHistoryRecall(t *testing.T) {
	t.Parallel()

	hello := []string{testLabel, span("hello"), span("world")}
	echo := []string{testLabel, span("echo"), span("my"), span("message")}
	test := []string{testLabel, span("test")}
	empty := []string{testLabel, span("")}

	tests := []struct {
		name    string
		keys    []GestureKind
		wantOff int
		wantSeg string
		want    []string
	}{
		{name: "up once", keys: []GestureKind{GestureUp}, wantOff: 6, wantSeg: span("test"), want: test},
		{name: "up twice", keys: repeat(GestureUp, 2), wantOff: 9, wantSeg: span("message"), want: echo},
		{name: "up three times", keys: repeat(GestureUp, 3), wantOff: 7, wantSeg: span("world"), want: hello},
		{name: "sweep past the oldest entry", keys: repeat(GestureUp, 4), wantOff: 7, wantSeg: span("world"), want: hello},
		{name: "down from start", keys: []GestureKind{GestureDown}, wantOff: 2, wantSeg: span(""), want: empty},
		{name: "up once down once", keys: []GestureKind{GestureUp, GestureDown}, wantOff: 2, wantSeg: span(""), want: empty},
		{name: "up twice down once", keys: []GestureKind{GestureUp, GestureUp, GestureDown}, wantOff: 6, wantSeg: span("test"), want: test},
		{
			name:    "up three times down once",
			keys:    []GestureKind{GestureUp, GestureUp, GestureUp, GestureDown},
			wantOff: 9,
			wantSeg: span("message"),
			want:    echo,
		},
		{
			name:    "full sweep",
			keys:    append(repeat(GestureUp, 3), repeat(GestureDown, 3)...),
			wantOff: 2,
			wantSeg: span(""),
			want:    empty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newHistoryEditor(t)
			press(e, tt.keys...)

			assertCursor(t, e, tt.wantOff, tt.wantSeg)
			assertLine(t, e, tt.want...)
			assert.Len(t, e.Lines(), 5, "recall replaces the active line")
		})
	}
}

func TestEditorHistoryDeduplicatesConsecutiveEntries(t *testing.T) {
	t.Parallel()

	e := newHistoryEditor(t)
	h := e.History()

	require.Equal(t, 3, h.Len())
	assert.Equal(t, "test", h.Get(0))
	assert.Equal(t, "echo my message", h.Get(1))
	assert.Equal(t, "hello world", h.Get(2))
}

func TestEditorHistoryClampRoundTrip(t *testing.T) {
	t.Parallel()

	e := newHistoryEditor(t)
	n := e.History().Len() + 5

	press(e, repeat(GestureUp, n)...)
	assertLine(t, e, testLabel, span("hello"), span("world"))

	press(e, repeat(GestureDown, n)...)
	assertLine(t, e, testLabel, span(""))
	assertCursor(t, e, 2, span(""))
	assert.False(t, e.Recalling())
}

func TestEditorHistoryClampAfterLimitShrinks(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	wide := NewStorageHistory(store, 10, discardLogger())
	for _, command := range []string{"a", "b", "c", "d", "e"} {
		wide.Push(command)
	}

	e := newTestEditor(t, EditorConfig{History: NewStorageHistory(store, 2, discardLogger())})
	var seen []string
	for range 6 {
		press(e, GestureUp)
		seen = append(seen, e.ActiveLine().String())
	}
	assert.Equal(t, []string{"e", "d", "d", "d", "d", "d"}, seen)
}

func TestEditorTypingDetachesRecall(t *testing.T) {
	t.Parallel()

	e := newHistoryEditor(t)
	press(e, GestureUp, GestureUp)
	require.True(t, e.Recalling())

	e.Type("!")
	assert.False(t, e.Recalling())
	assertLine(t, e, testLabel, span("echo"), span("my"), span("message!"))
	assert.Equal(t, 3, e.History().Len(), "stored history is untouched")

	press(e, GestureUp)
	assertLine(t, e, testLabel, span("test"))
}

func TestEditorEditingDetachesRecall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		gesture Gesture
		want    []string
	}{
		{name: "backspace", gesture: Gesture{Kind: GestureBackspace}, want: []string{testLabel, span("tes")}},
		{name: "space", gesture: Gesture{Kind: GestureSpace}, want: []string{testLabel, span("test"), span("")}},
		{name: "paste", gesture: Gesture{Kind: GesturePaste, Text: "x"}, want: []string{testLabel, span("testx")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newHistoryEditor(t)
			press(e, GestureUp)
			require.True(t, e.Recalling())

			e.Handle(tt.gesture)
			assert.False(t, e.Recalling())
			assertLine(t, e, tt.want...)

			// Recall starts over from the newest entry.
			press(e, GestureUp)
			assertLine(t, e, testLabel, span("test"))
		})
	}
}

func TestEditorRecallRoundTrip(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})
	e.Type("echo my message")
	press(e, GestureEnter, GestureUp)

	assertLine(t, e, testLabel, span("echo"), span("my"), span("message"))
	assertCursor(t, e, 9, span("message"))
}

func TestEditorEnterDispatches(t *testing.T) {
	t.Parallel()

	d := &recordingDispatcher{err: errors.New("boom")}
	var (
		mu         sync.Mutex
		dispatched []string
		errs       []error
	)
	e := newTestEditor(t, EditorConfig{
		Dispatcher: d,
		OnDispatched: func(line string, err error) {
			mu.Lock()
			defer mu.Unlock()
			dispatched = append(dispatched, line)
			errs = append(errs, err)
		},
	})

	e.Type("echo hello")
	press(e, GestureEnter)
	e.Wait()

	assert.Equal(t, []string{"echo hello"}, d.Lines())
	assert.Equal(t, "echo hello", e.History().Get(0))

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, []string{testLabel, span("echo"), span("hello")}, lines[0].Spans())
	for _, s := range lines[0].Segments() {
		assert.True(t, s.Locked(), "submitted lines are locked")
	}
	assertLine(t, e, testLabel, span(""))
	assertCursor(t, e, 2, span(""))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"echo hello"}, dispatched)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "boom")
}

func TestEditorEnterSkipsBlankLines(t *testing.T) {
	t.Parallel()

	d := &recordingDispatcher{}
	e := newTestEditor(t, EditorConfig{Dispatcher: d})

	press(e, GestureSpace, GestureSpace, GestureEnter)
	e.Wait()

	assert.Empty(t, d.Lines())
	assert.Equal(t, 0, e.History().Len())
	assert.Len(t, e.Lines(), 2)
}

func TestEditorEnterDispatchesDuplicates(t *testing.T) {
	t.Parallel()

	d := &recordingDispatcher{}
	e := newTestEditor(t, EditorConfig{Dispatcher: d})

	for range 2 {
		e.Type("ls")
		press(e, GestureEnter)
	}
	e.Wait()

	assert.Equal(t, []string{"ls", "ls"}, d.Lines())
	assert.Equal(t, 1, e.History().Len())
}

func TestEditorEnterAnswersPendingRead(t *testing.T) {
	t.Parallel()

	d := &recordingDispatcher{}
	reader := NewReader(5 * time.Millisecond)
	e := newTestEditor(t, EditorConfig{Dispatcher: d, Reader: reader})

	type result struct {
		value string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := reader.Read(context.Background(), "name?")
		done <- result{v, err}
	}()
	require.Eventually(t, reader.Pending, time.Second, time.Millisecond)

	e.Type("bob")
	press(e, GestureEnter)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, "bob", r.value)
	case <-time.After(time.Second):
		t.Fatal("read did not return")
	}
	e.Wait()

	assert.Empty(t, d.Lines(), "answers are not dispatched")
	assert.Equal(t, 0, e.History().Len(), "answers are not recorded")
}

func TestEditorInputDemo(t *testing.T) {
	t.Parallel()

	reader := NewReader(5 * time.Millisecond)
	writer := NewWriter()
	var (
		mu      sync.Mutex
		records []Record
	)
	writer.Subscribe(func(rec Record) {
		mu.Lock()
		defer mu.Unlock()
		records = append(records, rec)
	})

	history := NewMemoryHistory(DefaultHistoryLimit)
	shell := NewShell(ShellConfig{PromptPrefix: "termline", PromptSuffix: ">", Writer: writer, History: history})
	require.NoError(t, shell.AddCommand(NewInputDemoCommand(reader, writer)))

	e := newTestEditor(t, EditorConfig{Dispatcher: shell, Reader: reader, History: history})
	e.Type("input-demo")
	press(e, GestureEnter)

	answers := []string{"", "test", ""}
	for _, answer := range answers {
		require.Eventually(t, reader.Pending, time.Second, time.Millisecond)
		e.Type(answer)
		press(e, GestureEnter)
		require.Eventually(t, func() bool { return !reader.Pending() }, time.Second, time.Millisecond)
	}
	e.Wait()

	assertCursor(t, e, 2, span(""))
	assertLine(t, e, testLabel, span(""))

	mu.Lock()
	require.Len(t, records, 3)
	assert.Equal(t, Record{Kind: RecordEcho, Text: "What is your name? (no answer)"}, records[0])
	assert.Equal(t, Record{Kind: RecordEcho, Text: "What is your quest? test"}, records[1])
	assert.Equal(t, Record{Kind: RecordEcho, Text: "What is your favorite color? (no answer)"}, records[2])
	mu.Unlock()

	press(e, GestureUp)
	assertCursor(t, e, 12, span("input-demo"))
	assertLine(t, e, testLabel, span("input-demo"))
}

func TestEditorTypeAheadAnswersStayWithTheReader(t *testing.T) {
	t.Parallel()

	reader := NewReader(200 * time.Millisecond)
	writer := NewWriter()
	records := collectRecords(writer)

	history := NewMemoryHistory(DefaultHistoryLimit)
	shell := NewShell(ShellConfig{PromptPrefix: "termline", PromptSuffix: ">", Writer: writer, History: history})
	require.NoError(t, shell.AddCommand(NewInputDemoCommand(reader, writer)))

	e := newTestEditor(t, EditorConfig{Dispatcher: shell, Reader: reader, History: history})
	e.Type("input-demo")
	press(e, GestureEnter)
	require.Eventually(t, reader.Pending, time.Second, time.Millisecond)

	// Both answers land before the reader polls.
	e.Type("arthur")
	press(e, GestureEnter)
	e.Type("history")
	press(e, GestureEnter)

	require.Eventually(t, func() bool {
		return reader.Label() == "What is your favorite color?"
	}, 2*time.Second, time.Millisecond)
	e.Type("blue")
	press(e, GestureEnter)
	e.Wait()

	assert.Equal(t, 1, history.Len())
	assert.Equal(t, "input-demo", history.Get(0))
	assert.False(t, reader.Pending())
	assert.Equal(t, []Record{
		{Kind: RecordEcho, Text: "What is your name? arthur"},
		{Kind: RecordEcho, Text: "What is your quest? history"},
		{Kind: RecordEcho, Text: "What is your favorite color? blue"},
	}, *records)
}

func TestEditorPaste(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(e *Editor)
		text    string
		wantOff int
		wantSeg string
		want    []string
	}{
		{
			name:    "tokens into an empty line",
			text:    "command arg1 arg2",
			wantOff: 6,
			wantSeg: span("arg2"),
			want:    []string{testLabel, span("command"), span("arg1"), span("arg2")},
		},
		{
			name:    "extra interior spaces stay in the final token",
			text:    "command arg1  arg2",
			wantOff: 7,
			wantSeg: span(" arg2"),
			want:    []string{testLabel, span("command"), span("arg1"), span(" arg2")},
		},
		{
			name:    "line breaks become spaces",
			text:    "echo\nhi\r\n",
			wantOff: 2,
			wantSeg: span(""),
			want:    []string{testLabel, span("echo"), span("hi"), span("")},
		},
		{
			name: "single token into the middle",
			setup: func(e *Editor) {
				e.Type("command")
				e.ActiveLine().CommandSegment().PlaceCursor(5)
			},
			text:    "XY",
			wantOff: 7,
			wantSeg: span("comXYmand"),
			want:    []string{testLabel, span("comXYmand")},
		},
		{
			name: "tokens into the middle",
			setup: func(e *Editor) {
				e.Type("command")
				e.ActiveLine().CommandSegment().PlaceCursor(5)
			},
			text:    "a b",
			wantOff: 3,
			wantSeg: span("bmand"),
			want:    []string{testLabel, span("coma"), span("bmand")},
		},
		{
			name: "single token at the start of a token",
			setup: func(e *Editor) {
				e.Type("cmd arg")
				e.ActiveLine().LastSegment().PlaceCursorAtUserStart()
			},
			text:    "pre",
			wantOff: 5,
			wantSeg: span("prearg"),
			want:    []string{testLabel, span("cmd"), span("prearg")},
		},
		{
			name: "tokens ahead of the command",
			setup: func(e *Editor) {
				e.Type("cmd")
				e.ActiveLine().CommandSegment().PlaceCursorAtUserStart()
			},
			text:    "a b",
			wantOff: 2,
			wantSeg: span("cmd"),
			want:    []string{testLabel, span("a"), span("b"), span("cmd")},
		},
		{
			name: "only zero width spaces",
			setup: func(e *Editor) {
				e.Type("cmd")
			},
			text:    zw + zw,
			wantOff: 5,
			wantSeg: span("cmd"),
			want:    []string{testLabel, span("cmd")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEditor(t, EditorConfig{})
			if tt.setup != nil {
				tt.setup(e)
			}
			e.Handle(Gesture{Kind: GesturePaste, Text: tt.text})

			assertCursor(t, e, tt.wantOff, tt.wantSeg)
			assertLine(t, e, tt.want...)
		})
	}
}

func TestEditorTabCompletion(t *testing.T) {
	t.Parallel()

	options := []string{"start", "stop", "pause", "rewind", "fast forward"}

	t.Run("cycles over the typed prefix", func(t *testing.T) {
		t.Parallel()
		e := newTestEditor(t, EditorConfig{Completer: NewAutoCompleter(options...), QuoteMultiWord: true})
		e.Type("st")

		press(e, GestureTab)
		assertCursor(t, e, 7, span("start"))
		press(e, GestureTab)
		assertCursor(t, e, 6, span("stop"))
		press(e, GestureTab)
		assertCursor(t, e, 7, span("start"))
	})

	t.Run("quotes multi word options", func(t *testing.T) {
		t.Parallel()
		e := newTestEditor(t, EditorConfig{Completer: NewAutoCompleter(options...), QuoteMultiWord: true})

		press(e, GestureTab)
		assertLine(t, e, testLabel, span(`"fast forward"`))
		press(e, GestureTab)
		assertLine(t, e, testLabel, span("pause"))
	})

	t.Run("leaves multi word options bare when disabled", func(t *testing.T) {
		t.Parallel()
		e := newTestEditor(t, EditorConfig{Completer: NewAutoCompleter(options...)})

		press(e, GestureTab)
		assertLine(t, e, testLabel, span("fast forward"))
	})

	t.Run("editing restarts the cycle", func(t *testing.T) {
		t.Parallel()
		e := newTestEditor(t, EditorConfig{Completer: NewAutoCompleter(options...)})
		e.Type("st")
		press(e, GestureTab, GestureTab, GestureBackspace)
		assertLine(t, e, testLabel, span("sto"))

		press(e, GestureTab)
		assertLine(t, e, testLabel, span("stop"))
	})

	t.Run("no match leaves the command alone", func(t *testing.T) {
		t.Parallel()
		e := newTestEditor(t, EditorConfig{Completer: NewAutoCompleter(options...)})
		e.Type("zz")
		press(e, GestureTab)
		assertCursor(t, e, 4, span("zz"))
	})

	t.Run("arguments are not completed", func(t *testing.T) {
		t.Parallel()
		e := newTestEditor(t, EditorConfig{Completer: NewAutoCompleter(options...)})
		e.Type("play st")
		press(e, GestureTab)
		assertLine(t, e, testLabel, span("play"), span("st"))
	})
}

func TestEditorSetPromptLabel(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})
	e.Type("demo")
	e.SetPromptLabel("demo>")
	assertLine(t, e, "demo>", span("demo"))

	press(e, GestureEnter)
	assertLine(t, e, "demo>", span(""))
	assert.Equal(t, "demo>", e.Lines()[0].Prompt().Text())
}

func TestEditorCharacterGestures(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})
	e.Handle(Gesture{Kind: GestureChar, Rune: 'a'})
	e.Handle(Gesture{Kind: GestureChar, Rune: '\x01'})
	e.Handle(Gesture{Kind: GestureChar, Rune: ZeroWidthSpace})
	e.Handle(Gesture{Kind: GestureChar, Rune: ' '})
	e.Handle(Gesture{Kind: GestureChar, Rune: 'b'})

	assertLine(t, e, testLabel, span("a"), span("b"))
}

func TestEditorLostCursor(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t, EditorConfig{})
	e.Type("ls")
	e.Selection().Clear()

	for _, kind := range []GestureKind{GestureSpace, GestureBackspace, GestureLeft, GestureRight, GestureTab} {
		e.Handle(Gesture{Kind: kind})
	}
	e.Handle(Gesture{Kind: GestureChar, Rune: 'x'})
	e.Handle(Gesture{Kind: GesturePaste, Text: "y"})

	assertLine(t, e, testLabel, span("ls"))
	assert.Nil(t, e.Selection().Segment())
}
