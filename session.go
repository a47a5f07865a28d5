package termline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// Session runs an Editor on a terminal: it reads keys, turns them into gestures,
// dispatches submitted lines to its Shell and renders the line and program output.
type Session struct {
	mu sync.Mutex // guards the editor and the renderer

	config        Config
	logger        *slog.Logger
	output        io.Writer
	terminal      terminalInterface
	renderer      *renderer
	keyMap        *KeyMap
	history       History
	completer     *AutoCompleter
	reader        *Reader
	writer        *Writer
	shell         *Shell
	editor        *Editor
	readClipboard func() (string, error)
}

// NewSession creates a session on the controlling terminal.
//
// Example:
//
//	s, err := termline.NewSession(termline.NewConfig(termline.WithPromptPrefix("app")))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	err = s.Run()
//	if errors.Is(err, termline.ErrEOF) || errors.Is(err, termline.ErrInterrupted) {
//		return
//	}
func NewSession(config Config) (*Session, error) {
	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}
	s, err := newSession(config, terminal, newOutput())
	if err != nil {
		terminal.Close()
		return nil, err
	}
	return s, nil
}

func newSession(config Config, terminal terminalInterface, output io.Writer) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}

	history, err := NewHistory(config.History, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create history: %w", err)
	}

	s := &Session{
		config:        config,
		logger:        config.Logger,
		output:        output,
		terminal:      terminal,
		renderer:      newRenderer(output, config.ColorScheme()),
		keyMap:        config.KeyMap,
		history:       history,
		completer:     NewAutoCompleter(),
		reader:        NewReader(config.InputPollInterval),
		writer:        NewWriter(),
		readClipboard: clipboard.ReadAll,
	}
	s.shell = NewShell(ShellConfig{
		PromptPrefix: config.PromptPrefix,
		PromptSuffix: config.PromptSuffix,
		Writer:       s.writer,
		History:      history,
		Completer:    s.completer,
		Logger:       config.Logger,
	})
	s.editor = NewEditor(EditorConfig{
		PromptLabel:    s.shell.PromptLabel(),
		History:        history,
		Completer:      s.completer,
		Reader:         s.reader,
		Dispatcher:     s.shell,
		Logger:         config.Logger,
		QuoteMultiWord: config.QuoteMultiWordComplete,
		Strict:         config.Strict,
		OnDispatched:   s.dispatched,
	})

	s.writer.Subscribe(s.printRecord)
	s.reader.Subscribe(s.inputRequested)

	if err := s.shell.AddCommand(NewInputDemoCommand(s.reader, s.writer)); err != nil {
		return nil, err
	}
	return s, nil
}

// Shell returns the command dispatcher.
func (s *Session) Shell() *Shell { return s.shell }

// Reader returns the input request channel.
func (s *Session) Reader() *Reader { return s.reader }

// Writer returns the output channel.
func (s *Session) Writer() *Writer { return s.writer }

// Editor returns the line editor. Drive it only while Run is not active.
func (s *Session) Editor() *Editor { return s.editor }

// History returns the history backend.
func (s *Session) History() History { return s.history }

func (s *Session) printRecord(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.renderer.renderRecord(rec); err != nil {
		s.logger.Warn("failed to render output", "error", err)
		return
	}
	s.redraw()
}

func (s *Session) inputRequested(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == "" {
		label = s.shell.PromptLabel()
	}
	s.editor.SetPromptLabel(label)
	s.redraw()
}

func (s *Session) dispatched(line string, err error) {
	if err != nil {
		s.writer.Error(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reader.Pending() {
		s.editor.SetPromptLabel(s.shell.PromptLabel())
	}
	if s.config.NewlineBetweenCommands {
		if err := s.renderer.newline(); err != nil {
			s.logger.Warn("failed to render output", "error", err)
		}
	}
	s.logger.Debug("command finished", "line", line)
	s.redraw()
}

// print writes raw terminal output.
func (s *Session) print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.output, text); err != nil {
		s.logger.Warn("failed to write output", "error", err)
	}
}

// redraw renders the active line. The caller holds s.mu.
func (s *Session) redraw() {
	if err := s.renderer.renderLine(s.editor.ActiveLine(), s.editor.Selection()); err != nil {
		s.logger.Warn("failed to render line", "error", err)
	}
}

// Run starts the input loop with a background context.
func (s *Session) Run() error {
	return s.RunWithContext(context.Background())
}

// RunWithContext reads keys until Ctrl+C (ErrInterrupted), Ctrl+D on an empty line
// or end of input (ErrEOF), or ctx is done. Commands still running when the loop
// ends are cancelled and waited for.
func (s *Session) RunWithContext(ctx context.Context) error {
	if err := s.terminal.SetRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if err := s.terminal.Restore(); err != nil {
			s.logger.Warn("failed to restore terminal state", "error", err)
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.editor.Wait()
	}()

	s.print("\x1b[?2004h") // enable bracketed paste
	defer s.print("\x1b[?2004l")

	if w, h, err := s.terminal.Size(); err == nil {
		s.logger.Debug("terminal ready", "width", w, "height", h)
	}

	s.mu.Lock()
	s.editor.ctx = runCtx
	s.redraw()
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r, _, err := s.terminal.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEOF
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		action := s.keyMap.GetAction(r)
		if r == '\x1b' {
			seq, err := s.readEscapeSequence()
			if err != nil {
				continue
			}
			action = s.keyMap.GetSequenceAction(seq)
		}

		if err := s.handle(r, action); err != nil {
			return err
		}
	}
}

func (s *Session) handle(r rune, action KeyAction) error {
	switch action {
	case ActionCancel:
		s.print("^C\r\n")
		return ErrInterrupted
	case ActionEOF:
		s.mu.Lock()
		empty := s.editor.ActiveLine().String() == ""
		s.mu.Unlock()
		if empty {
			s.print("\r\n")
			return ErrEOF
		}
		return nil
	case ActionPaste:
		text, err := s.readClipboard()
		if err != nil {
			s.logger.Warn("failed to read clipboard", "error", err)
			return nil
		}
		s.apply(Gesture{Kind: GesturePaste, Text: text})
		return nil
	case ActionBracketedPaste:
		text, err := s.readBracketedPaste()
		if err != nil {
			return fmt.Errorf("failed to read paste: %w", err)
		}
		s.apply(Gesture{Kind: GesturePaste, Text: text})
		return nil
	}

	if kind, ok := action.gesture(); ok {
		s.apply(Gesture{Kind: kind})
		return nil
	}
	if r == ' ' {
		s.apply(Gesture{Kind: GestureSpace})
		return nil
	}
	if r >= 32 && r != 127 && r != '\x1b' {
		s.apply(Gesture{Kind: GestureChar, Rune: r})
	}
	return nil
}

// apply runs one gesture and redraws. Enter leaves the submitted line on screen.
func (s *Session) apply(g Gesture) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.Kind == GestureEnter {
		submitted := s.editor.ActiveLine()
		s.editor.Handle(g)
		if err := s.renderer.renderSubmitted(submitted); err != nil {
			s.logger.Warn("failed to render line", "error", err)
		}
	} else {
		s.editor.Handle(g)
	}
	s.redraw()
}

func (s *Session) readEscapeSequence() (string, error) {
	seq := make([]rune, 0, 10)
	for range 10 { // Limit to prevent infinite loop
		r, _, err := s.terminal.ReadRune()
		if err != nil {
			return "", err
		}
		seq = append(seq, r)

		str := string(seq)
		if len(seq) == 2 && (seq[0] == '[' || seq[0] == 'O') && seq[1] >= 'A' && seq[1] <= 'Z' {
			return str, nil
		}
		if strings.HasSuffix(str, "~") && len(str) >= 3 {
			return str, nil
		}
		if len(seq) >= 3 && (seq[len(seq)-1] < '0' || seq[len(seq)-1] > '9') && seq[len(seq)-1] != ';' {
			return str, nil
		}
	}
	return string(seq), nil
}

// readBracketedPaste reads pasted text up to the end-of-paste sequence.
func (s *Session) readBracketedPaste() (string, error) {
	var b strings.Builder
	for {
		r, _, err := s.terminal.ReadRune()
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
		if text, ok := strings.CutSuffix(b.String(), bracketedPasteEnd); ok {
			return text, nil
		}
	}
}

// Close releases the terminal.
func (s *Session) Close() error {
	s.print("\x1b[?25h") // Show cursor
	if s.terminal != nil {
		return s.terminal.Close()
	}
	return nil
}
