// Package main demonstrates basic usage of the termline library.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/termline"
)

func main() {
	// Create a session with default settings: "termline>" prompt, in-memory history
	s, err := termline.NewSession(termline.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if err := s.Shell().Register(termline.NewDemoProgram(s.Writer())); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Basic termline Example")
	fmt.Println("Type 'help' to list commands, 'demo' to enter the demo program")
	fmt.Println("Press Ctrl+D to exit")
	fmt.Println()

	err = s.Run()
	switch {
	case errors.Is(err, termline.ErrEOF), errors.Is(err, termline.ErrInterrupted):
		fmt.Println("Goodbye!")
	case err != nil:
		log.Printf("Error: %v\n", err)
	}
}
