package termline

import (
	"io"
	"sync"
)

// mockTerminal implements terminalInterface for tests.
//
// Input is a pre-configured rune sequence; once it is consumed ReadRune returns io.EOF.
// A key listed in pauses blocks until the matching channel is closed, so tests can
// let dispatched commands catch up before the rest of the input is read.
type mockTerminal struct {
	mu           sync.Mutex
	input        []rune
	inputPos     int
	rawMode      bool
	closed       bool
	terminalSize [2]int
	pauses       map[int]<-chan struct{}
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
		pauses:       make(map[int]<-chan struct{}),
	}
}

// pauseAt makes the read of the rune at index wait for release.
func (m *mockTerminal) pauseAt(index int, release <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses[index] = release
}

func (m *mockTerminal) SetRaw() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = false
	return nil
}

func (m *mockTerminal) isRaw() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rawMode
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	m.mu.Lock()
	release, paused := m.pauses[m.inputPos]
	m.mu.Unlock()
	if paused {
		<-release
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
