// Package main provides a shell-like file explorer example using termline programs.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nao1215/termline"
)

// explorer is a modal program whose prompt follows the working directory.
type explorer struct {
	termline.BaseProgram
	writer *termline.Writer
}

func newExplorer(writer *termline.Writer) *explorer {
	return &explorer{
		BaseProgram: termline.NewBaseProgram(termline.ProgramParams{
			Name:     "explorer",
			Run:      "explore",
			Welcome:  "Commands: ls [path], cd <path>, cat <file>, pwd. Anything else runs as an external command.",
			Farewell: "Leaving the file explorer.",
		}),
		writer: writer,
	}
}

// PromptPrefix shows the current directory, such as "shell:termline".
func (e *explorer) PromptPrefix() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "shell:unknown"
	}
	return "shell:" + filepath.Base(cwd)
}

func (e *explorer) Completions() []string {
	return []string{"ls", "cd", "cat", "pwd"}
}

func (e *explorer) ProcessCommand(ctx context.Context, line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	cmd, args := words[0], words[1:]

	switch cmd {
	case "pwd":
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		e.writer.Echo(cwd)

	case "ls":
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Contents of %s:", path)
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				name += "/"
			}
			b.WriteString("\n  " + name)
		}
		e.writer.Echo(b.String())

	case "cd":
		if len(args) == 0 {
			e.writer.Warn("cd requires a directory argument")
			return nil
		}
		if err := os.Chdir(args[0]); err != nil {
			return err
		}

	case "cat":
		if len(args) == 0 {
			e.writer.Warn("cat requires a file argument")
			return nil
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		// Limit output for large files
		if len(content) > 1000 {
			e.writer.Echo(string(content[:1000]))
			e.writer.Info("... (truncated)")
			return nil
		}
		e.writer.Echo(string(content))

	default:
		// #nosec G204 - This is an example program that intentionally executes user input
		output, err := exec.CommandContext(ctx, cmd, args...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("executing %q: %w", cmd, err)
		}
		e.writer.Echo(strings.TrimRight(string(output), "\n"))
	}
	return nil
}

func main() {
	s, err := termline.NewSession(termline.NewConfig(
		termline.WithMemoryHistory(1000),
		termline.WithNewlineBetweenCommands(true),
	))
	if err != nil {
		log.Fatalf("failed to create session: %v", err)
	}
	defer s.Close()

	w := s.Writer()
	for _, p := range []termline.Program{
		termline.NewDemoProgram(w),
		termline.NewSplitDemoProgram(w),
		newExplorer(w),
	} {
		if err := s.Shell().Register(p); err != nil {
			log.Fatalf("failed to register %s: %v", p.Name(), err)
		}
	}

	w.Info("Type 'help' to list commands, 'explore' to browse files, 'input-demo' to answer questions.")
	w.Info("Use Tab to complete commands and Up/Down to walk history. Ctrl+D exits.")

	if err := s.Run(); err != nil && !errors.Is(err, termline.ErrEOF) && !errors.Is(err, termline.ErrInterrupted) {
		log.Printf("Error: %v\n", err)
	}
}
