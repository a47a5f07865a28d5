package termline

import (
	"context"
	"fmt"
	"strings"
)

// DemoProgram answers every command with "Hello World!".
type DemoProgram struct {
	BaseProgram
	writer *Writer
}

// NewDemoProgram creates the demo program, entered with "demo".
func NewDemoProgram(writer *Writer) *DemoProgram {
	return &DemoProgram{
		BaseProgram: NewBaseProgram(ProgramParams{
			Name:    "demo",
			Welcome: "Welcome to the demo program! All commands will result in 'Hello World!'",
		}),
		writer: writer,
	}
}

// ProcessCommand echoes "Hello World!".
func (p *DemoProgram) ProcessCommand(_ context.Context, _ string) error {
	p.writer.Echo("Hello World!")
	return nil
}

// SplitDemoTarget is the output area the split demo writes its banner to.
const SplitDemoTarget = "top"

// SplitDemoProgram showcases writing to a separate output area.
type SplitDemoProgram struct {
	BaseProgram
	writer *Writer
}

// NewSplitDemoProgram creates the split screen demo, entered with "split".
func NewSplitDemoProgram(writer *Writer) *SplitDemoProgram {
	return &SplitDemoProgram{
		BaseProgram: NewBaseProgram(ProgramParams{
			Name:     "split-demo",
			Run:      "split",
			Welcome:  "Welcome to the split screen demo! This layout displays program content in the top area. Type 'exit' to stop the program.",
			Farewell: "Thank you for using the split screen demo. Goodbye!",
		}),
		writer: writer,
	}
}

// Start fills the top area.
func (p *SplitDemoProgram) Start(_ context.Context) error {
	p.writer.FreeformTo(SplitDemoTarget, "split-demo", "prompt")
	p.writer.FreeformTo(SplitDemoTarget, "Content written here stays apart from the command output.", "info")
	return nil
}

// ProcessCommand explains that the demo takes no input.
func (p *SplitDemoProgram) ProcessCommand(_ context.Context, _ string) error {
	p.writer.Echo("Apologies! This program doesn't handle any user input and is only designed to showcase a layout.")
	return nil
}

// inputDemoQuestions are asked in order by the input-demo command.
var inputDemoQuestions = []string{
	"What is your name?",
	"What is your quest?",
	"What is your favorite color?",
}

// NewInputDemoCommand creates the input-demo command, which asks three questions
// through reader and echoes the answers. Empty answers are accepted.
func NewInputDemoCommand(reader *Reader, writer *Writer) Command {
	return Command{
		Name:        "input-demo",
		Description: "answer three questions",
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				writer.Warn("input-demo takes no arguments")
				return nil
			}
			answers := make([]string, 0, len(inputDemoQuestions))
			for _, question := range inputDemoQuestions {
				answer, err := reader.Read(ctx, question)
				if err != nil {
					return fmt.Errorf("failed to read answer: %w", err)
				}
				answers = append(answers, strings.TrimSpace(answer))
			}
			for i, question := range inputDemoQuestions {
				answer := answers[i]
				if answer == "" {
					answer = "(no answer)"
				}
				writer.Echo(question + " " + answer)
			}
			return nil
		},
	}
}
