package termline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ErrDuplicateCommand is returned when a command or program name is already taken.
var ErrDuplicateCommand = errors.New("command already registered")

// ShellConfig holds the collaborators of a Shell.
type ShellConfig struct {
	PromptPrefix string
	PromptSuffix string
	Writer       *Writer
	History      History
	Completer    *AutoCompleter
	Logger       *slog.Logger
}

// Shell dispatches submitted lines to built-in commands, registered commands and
// modal programs. It implements Dispatcher.
type Shell struct {
	run sync.Mutex // serializes command execution

	mu        sync.RWMutex
	prefix    string
	suffix    string
	writer    *Writer
	history   History
	completer *AutoCompleter
	logger    *slog.Logger
	commands  map[string]Command
	programs  map[string]Program
	current   Program
}

// NewShell creates a shell with the help, clear, history and echo built-ins.
func NewShell(config ShellConfig) *Shell {
	if config.Writer == nil {
		config.Writer = NewWriter()
	}
	if config.History == nil {
		config.History = NewDisabledHistory(0)
	}
	if config.Completer == nil {
		config.Completer = NewAutoCompleter()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Shell{
		prefix:    config.PromptPrefix,
		suffix:    config.PromptSuffix,
		writer:    config.Writer,
		history:   config.History,
		completer: config.Completer,
		logger:    config.Logger,
		commands:  make(map[string]Command),
		programs:  make(map[string]Program),
	}

	for _, cmd := range []Command{
		{Name: "help", Description: "list available commands", Run: s.help},
		{Name: "clear", Description: "clear the screen", Run: s.clear},
		{Name: "history", Description: "show or clear command history", Run: s.showHistory},
		{Name: "echo", Description: "print the arguments", Run: s.echo},
	} {
		s.commands[cmd.Name] = cmd
	}
	s.refreshCompletions()
	return s
}

// Writer returns the output channel of the shell.
func (s *Shell) Writer() *Writer {
	return s.writer
}

// AddCommand registers a one-shot command.
func (s *Shell) AddCommand(cmd Command) error {
	if cmd.Name == "" || cmd.Run == nil {
		return errors.New("command needs a name and a run function")
	}
	s.mu.Lock()
	if s.taken(cmd.Name) {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", cmd.Name, ErrDuplicateCommand)
	}
	s.commands[cmd.Name] = cmd
	s.mu.Unlock()

	s.refreshCompletions()
	return nil
}

// Register adds a modal program, entered with its run command.
func (s *Shell) Register(p Program) error {
	run := p.RunCommand()
	if run == "" {
		return fmt.Errorf("program %q has no run command", p.Name())
	}
	s.mu.Lock()
	if s.taken(run) {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", run, ErrDuplicateCommand)
	}
	s.programs[run] = p
	s.mu.Unlock()

	s.refreshCompletions()
	s.logger.Debug("program registered", "name", p.Name(), "run", run)
	return nil
}

func (s *Shell) taken(name string) bool {
	_, isCommand := s.commands[name]
	_, isProgram := s.programs[name]
	return isCommand || isProgram
}

// Current returns the running program, or nil at the top level.
func (s *Shell) Current() Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// PromptLabel returns the prompt for the current context, such as "termline>" or
// "demo>" while the demo program runs.
func (s *Shell) PromptLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current != nil {
		return s.current.PromptPrefix() + s.suffix
	}
	return s.prefix + s.suffix
}

// Names returns the commands available in the current context, sorted.
func (s *Shell) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current != nil {
		names := []string{s.current.ExitCommand()}
		if c, ok := s.current.(Completions); ok {
			names = append(names, c.Completions()...)
		}
		slices.Sort(names)
		return slices.Compact(names)
	}

	names := make([]string, 0, len(s.commands)+len(s.programs))
	for name := range s.commands {
		names = append(names, name)
	}
	for run := range s.programs {
		names = append(names, run)
	}
	slices.Sort(names)
	return names
}

func (s *Shell) refreshCompletions() {
	s.completer.SetOptions(s.Names())
}

// ProcessCommand runs one submitted line. Unknown commands and bad arguments are
// reported through the writer; only failures of the command itself are returned.
func (s *Shell) ProcessCommand(ctx context.Context, line string) error {
	s.run.Lock()
	defer s.run.Unlock()

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if p := s.Current(); p != nil {
		if trimmed == p.ExitCommand() {
			s.leave(p)
			return nil
		}
		if err := p.ProcessCommand(ctx, trimmed); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		return nil
	}

	name, rest, _ := strings.Cut(trimmed, " ")
	args := strings.Fields(rest)

	s.mu.RLock()
	cmd, isCommand := s.commands[name]
	p, isProgram := s.programs[name]
	s.mu.RUnlock()

	switch {
	case isCommand:
		if err := cmd.Run(ctx, args); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	case isProgram:
		return s.enter(ctx, p)
	default:
		s.writer.Warn("command not found: " + name)
	}
	return nil
}

func (s *Shell) enter(ctx context.Context, p Program) error {
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	s.refreshCompletions()
	s.logger.Debug("entered program", "name", p.Name())

	if welcome := p.Welcome(); welcome != "" {
		s.writer.Info(welcome)
	}
	if starter, ok := p.(Starter); ok {
		if err := starter.Start(ctx); err != nil {
			return fmt.Errorf("failed to start %s: %w", p.Name(), err)
		}
	}
	return nil
}

func (s *Shell) leave(p Program) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.refreshCompletions()
	s.logger.Debug("left program", "name", p.Name())

	if farewell := p.Farewell(); farewell != "" {
		s.writer.Info(farewell)
	}
}

func (s *Shell) help(_ context.Context, _ []string) error {
	s.writer.Info(s.usage())
	return nil
}

func (s *Shell) usage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Available commands:")
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-12s %s", name, s.commands[name].Description)
	}

	if len(s.programs) > 0 {
		b.WriteString("\nPrograms:")
		runs := make([]string, 0, len(s.programs))
		for run := range s.programs {
			runs = append(runs, run)
		}
		slices.Sort(runs)
		for _, run := range runs {
			p := s.programs[run]
			fmt.Fprintf(&b, "\n  %-12s starts %s, leave with %q", run, p.Name(), p.ExitCommand())
		}
	}
	return b.String()
}

func (s *Shell) clear(_ context.Context, _ []string) error {
	s.writer.Clear()
	return nil
}

func (s *Shell) showHistory(_ context.Context, args []string) error {
	switch {
	case len(args) == 1 && args[0] == "clear":
		s.history.Clear()
		s.writer.Info("history cleared")
		return nil
	case len(args) > 0:
		s.writer.Warn("usage: history [clear]")
		return nil
	}

	n := s.history.Len()
	if n == 0 {
		s.writer.Info("history is empty")
		return nil
	}
	var b strings.Builder
	for i := n - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(n - i))
		b.WriteString("  ")
		b.WriteString(s.history.Get(i))
	}
	s.writer.Echo(b.String())
	return nil
}

func (s *Shell) echo(_ context.Context, args []string) error {
	s.writer.Echo(strings.Join(args, " "))
	return nil
}
