// Package main demonstrates tab completion of the command token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/nao1215/termline"
)

// player is a modal program offering its own completions.
type player struct {
	termline.BaseProgram
	writer *termline.Writer
	state  string
}

func newPlayer(writer *termline.Writer) *player {
	return &player{
		BaseProgram: termline.NewBaseProgram(termline.ProgramParams{
			Name:    "player",
			Welcome: "Press Tab to cycle through the player controls. 'exit' leaves the player.",
		}),
		writer: writer,
		state:  "stopped",
	}
}

func (p *player) Completions() []string {
	return []string{"start", "stop", "pause", "rewind", "fast forward", "status"}
}

func (p *player) ProcessCommand(_ context.Context, line string) error {
	// Multi-word completions arrive quoted
	if unquoted, err := strconv.Unquote(line); err == nil {
		line = unquoted
	}

	switch strings.ToLower(line) {
	case "start":
		p.state = "playing"
	case "stop":
		p.state = "stopped"
	case "pause":
		p.state = "paused"
	case "rewind":
		p.state = "rewinding"
	case "fast forward":
		p.state = "fast forwarding"
	case "status":
	default:
		p.writer.Warn(fmt.Sprintf("unknown control %q", line))
		return nil
	}
	p.writer.Freeform("player is "+p.state, termline.StyleInfo)
	return nil
}

func main() {
	s, err := termline.NewSession(termline.NewConfig(
		termline.WithTheme("dracula"),
		termline.WithQuoteMultiWordCompletions(true),
	))
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if err := s.Shell().Register(newPlayer(s.Writer())); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Autocomplete Example")
	fmt.Println("Press Tab on an empty prompt to cycle through every command")
	fmt.Println("Type a prefix such as 'h' and press Tab to cycle through the matches")
	fmt.Println("Enter 'player' to try completions of a program")
	fmt.Println()

	if err := s.Run(); err != nil && !errors.Is(err, termline.ErrEOF) && !errors.Is(err, termline.ErrInterrupted) {
		log.Printf("Error: %v\n", err)
	}
}
