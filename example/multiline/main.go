// Package main demonstrates collecting several lines of input from a command.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/termline"
)

func main() {
	s, err := termline.NewSession(termline.NewConfig(termline.WithPromptPrefix("multi")))
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	reader, writer := s.Reader(), s.Writer()
	err = s.Shell().AddCommand(termline.Command{
		Name:        "note",
		Description: "write a note line by line, finish with an empty line",
		Run: func(ctx context.Context, _ []string) error {
			var lines []string
			for {
				line, err := reader.Read(ctx, fmt.Sprintf("%3d:", len(lines)+1))
				if err != nil {
					return err
				}
				if strings.TrimSpace(line) == "" {
					break
				}
				lines = append(lines, line)
			}

			var b strings.Builder
			b.WriteString("--- Your note ---")
			for i, line := range lines {
				fmt.Fprintf(&b, "\n%3d: %s", i+1, line)
			}
			fmt.Fprintf(&b, "\nTotal lines: %d", len(lines))
			fmt.Fprintf(&b, "\nTotal characters: %d", len(strings.Join(lines, "\n")))
			b.WriteString("\n--- End of note ---")
			writer.Echo(b.String())
			return nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Multiline Input Example")
	fmt.Println("Type 'note' and enter one line per prompt; an empty line finishes the note")
	fmt.Println("Press Ctrl+D to exit")
	fmt.Println()

	if err := s.Run(); err != nil && !errors.Is(err, termline.ErrEOF) && !errors.Is(err, termline.ErrInterrupted) {
		log.Printf("Error: %v\n", err)
	}
}
