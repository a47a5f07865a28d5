// Package termline provides a segmented command-line editor for terminal shells.
//
// Instead of editing one flat buffer, termline keeps the line as an ordered list of
// segments: a locked prompt label followed by a command token and zero or more
// argument tokens. Typing a space at the end of a token opens a new argument,
// a space in the middle of a token splits it, and backspacing at the start of an
// argument joins it back onto its predecessor. Command history recall, cycling
// tab completion and an input-request channel for running commands are built in.
//
// Key Features:
//
//   - Segment-aware editing: split, join, pad and navigate tokens with plain keys
//   - Command history with memory, file, session and OS keyring backends
//   - Prefix-cycling tab completion over the commands of the current program
//   - Programs: sub-shells with their own prompt, welcome and exit command
//   - Input requests: a running command can ask the user for more input
//   - Bracketed paste and Ctrl+V clipboard paste with tokenization
//   - YAML configuration under the XDG config directory
//
// Quick Start:
//
//	package main
//
//	import (
//		"log"
//		"github.com/nao1215/termline"
//	)
//
//	func main() {
//		s, err := termline.NewSession(termline.DefaultConfig())
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer s.Close()
//
//		s.Shell().Register(termline.NewDemoProgram(s.Writer()))
//		if err := s.Run(); err != nil {
//			log.Println(err)
//		}
//	}
//
// Embedding the editor:
//
// The Editor does not need a terminal. It can be driven with gestures directly,
// which is how the tests exercise it:
//
//	e := termline.NewEditor(termline.EditorConfig{PromptLabel: "demo>"})
//	e.Type("echo hello")
//	e.Handle(termline.Gesture{Kind: termline.GestureEnter})
//
// Every user segment stores its content as one space, a zero-width space and the
// user text. The fixed two-rune prefix keeps cursor placement stable at the start of
// an empty token; Segment.Text returns the user text without it.
//
// Key Bindings:
//
//   - Enter: Submit the line (or answer a pending input request)
//   - Space: Open, split or pad tokens depending on the cursor position
//   - Backspace: Delete, remove an empty argument or join with the previous token
//   - Left/Right: Move within and across tokens
//   - Up/Down: Recall older/newer history entries
//   - Tab: Cycle completions for the command token
//   - Ctrl+V or bracketed paste: Paste and tokenize text
//   - Ctrl+C: Interrupt and return ErrInterrupted
//   - Ctrl+D: Return ErrEOF when the line is empty
//
// Thread Safety:
//
// An Editor must be driven from one goroutine. Submitted commands are dispatched on
// their own goroutine; Shell, Reader, Writer, AutoCompleter and the History backends
// are safe for concurrent use. Session serializes editor access between the input
// loop and dispatch callbacks.
package termline
