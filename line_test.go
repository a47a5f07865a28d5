package termline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Parallel()

	l := newLine(newTestSurface(true), "termline>")
	assert.Equal(t, []string{"termline>", " " + zw}, l.Spans())
	assert.Equal(t, "", l.String())
	assert.Same(t, l.CommandSegment(), l.LastSegment())
	assert.Equal(t, SegmentPrompt, l.Prompt().Kind())

	l = newLine(newTestSurface(true), "demo>", "echo", "my", "message")
	assert.Equal(t, []string{"demo>", " " + zw + "echo", " " + zw + "my", " " + zw + "message"}, l.Spans())
	assert.Equal(t, []string{"echo", "my", "message"}, l.Texts())
	assert.Equal(t, "echo my message", l.String())
	assert.Len(t, l.Segments(), 4)
}

func TestLineActiveSegment(t *testing.T) {
	t.Parallel()

	sf := newTestSurface(true)
	l := newLine(sf, ">", "a", "b")
	other := newLine(sf, ">", "c")

	assert.Nil(t, l.ActiveSegment())

	l.LastSegment().PlaceCursorAtEnd()
	assert.Same(t, l.LastSegment(), l.ActiveSegment())
	assert.Nil(t, other.ActiveSegment())

	sf.sel.collapse(l.Prompt(), 0)
	assert.Nil(t, l.ActiveSegment(), "the prompt never holds the cursor")
}

func TestLineNeighbors(t *testing.T) {
	t.Parallel()

	l := newLine(newTestSurface(true), ">", "cmd", "a1", "a2")
	segs := l.Segments()

	assert.Nil(t, l.PreviousSegment(segs[1]), "the command token has no previous user segment")
	assert.Same(t, segs[1], l.PreviousSegment(segs[2]))
	assert.Same(t, segs[3], l.NextSegment(segs[2]))
	assert.Nil(t, l.NextSegment(segs[3]))
}

func TestLineInsertArgumentAfter(t *testing.T) {
	t.Parallel()

	l := newLine(newTestSurface(true), ">", "cmd", "last")

	created := l.InsertArgumentAfter(l.CommandSegment(), "mid")
	require.NotNil(t, created)
	assert.Equal(t, []string{"cmd", "mid", "last"}, l.Texts())

	first := l.InsertArgumentAfter(l.Prompt(), "new")
	assert.Same(t, first, l.CommandSegment())
	assert.Equal(t, "new cmd mid last", l.String())
}

func TestLineRemoveSegment(t *testing.T) {
	t.Parallel()

	sf := newTestSurface(true)
	l := newLine(sf, ">", "cmd", "arg")

	assert.False(t, l.RemoveSegment(l.Prompt()))

	arg := l.LastSegment()
	arg.PlaceCursorAtEnd()
	assert.True(t, l.RemoveSegment(arg))
	assert.Nil(t, sf.sel.Segment(), "removing the active segment drops the cursor")
	assert.Equal(t, []string{"cmd"}, l.Texts())

	assert.False(t, l.RemoveSegment(l.CommandSegment()), "the last user segment stays")
	assert.Len(t, l.Segments(), 2)
}

func TestLineJoinWithPrevious(t *testing.T) {
	t.Parallel()

	sf := newTestSurface(true)
	l := newLine(sf, ">", "command", "arg")

	assert.False(t, l.JoinWithPrevious(l.CommandSegment()))

	require.True(t, l.JoinWithPrevious(l.LastSegment()))
	assert.Equal(t, []string{">", " " + zw + "commandarg"}, l.Spans())
	assert.Same(t, l.CommandSegment(), sf.sel.Segment())
	assert.Equal(t, 9, sf.sel.Offset())
}

func TestLineLock(t *testing.T) {
	t.Parallel()

	l := newLine(newTestSurface(false), ">", "a", "b")
	l.Lock()
	for _, s := range l.Segments() {
		assert.True(t, s.Locked())
	}
}

func TestLineRelabel(t *testing.T) {
	t.Parallel()

	l := newLine(newTestSurface(true), "termline>", "x")
	l.relabel("demo>")
	assert.Equal(t, "demo>", l.Prompt().Text())
	assert.Equal(t, "x", l.String())
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{""}},
		{name: "single token", input: "echo", want: []string{"echo"}},
		{name: "three tokens", input: "echo my message", want: []string{"echo", "my", "message"}},
		{name: "interior spaces lead the next token", input: "command arg1  arg2", want: []string{"command", "arg1", " arg2"}},
		{name: "leading space", input: " ls", want: []string{" ls"}},
		{name: "trailing space", input: "ls ", want: []string{"ls", ""}},
		{name: "long run", input: "a    b", want: []string{"a", "   b"}},
		{name: "only spaces", input: "  ", want: []string{"  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, strings.Join(got, " "), "tokens must join back to the input")
		})
	}
}
