package termline

import "context"

// Program is a modal sub-shell. Typing its run command enters the program: the prompt
// prefix changes and every line is routed to ProcessCommand until the exit command.
type Program interface {
	Name() string
	RunCommand() string
	ExitCommand() string
	PromptPrefix() string
	Welcome() string
	Farewell() string
	ProcessCommand(ctx context.Context, line string) error
}

// Completions is implemented by programs that offer tab completion for their
// commands.
type Completions interface {
	Completions() []string
}

// Starter is implemented by programs that produce output when entered, after the
// welcome message.
type Starter interface {
	Start(ctx context.Context) error
}

// ProgramParams describes a program. Empty Run and Prompt default to Name, an empty
// Exit defaults to "exit".
type ProgramParams struct {
	Name     string
	Prompt   string
	Run      string
	Exit     string
	Welcome  string
	Farewell string
}

// BaseProgram implements the descriptive half of Program. Embed it and add
// ProcessCommand.
type BaseProgram struct {
	params ProgramParams
}

// NewBaseProgram fills in defaults for params.
func NewBaseProgram(params ProgramParams) BaseProgram {
	if params.Run == "" {
		params.Run = params.Name
	}
	if params.Prompt == "" {
		params.Prompt = params.Name
	}
	if params.Exit == "" {
		params.Exit = "exit"
	}
	return BaseProgram{params: params}
}

// Name returns the program name.
func (p BaseProgram) Name() string { return p.params.Name }

// RunCommand returns the command that enters the program.
func (p BaseProgram) RunCommand() string { return p.params.Run }

// ExitCommand returns the command that leaves the program.
func (p BaseProgram) ExitCommand() string { return p.params.Exit }

// PromptPrefix returns the prompt prefix shown while the program runs.
func (p BaseProgram) PromptPrefix() string { return p.params.Prompt }

// Welcome returns the message printed on entry.
func (p BaseProgram) Welcome() string { return p.params.Welcome }

// Farewell returns the message printed on exit.
func (p BaseProgram) Farewell() string { return p.params.Farewell }

// Command is a one-shot shell command.
type Command struct {
	Name        string
	Description string
	Run         func(ctx context.Context, args []string) error
}
