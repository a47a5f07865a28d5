package termline

import (
	"slices"
	"strings"
	"sync"
)

// AutoCompleter cycles through the options that start with the user's input.
//
// Options are kept sorted. Each call with the same input returns the next match,
// wrapping around; a different input restarts at the first match.
//
// Example:
//
//	ac := termline.NewAutoCompleter("stop", "start", "pause")
//	ac.GetNextOption("st") // "start"
//	ac.GetNextOption("st") // "stop"
//	ac.GetNextOption("st") // "start"
type AutoCompleter struct {
	mu        sync.Mutex
	options   []string
	index     int
	lastInput string
}

// NewAutoCompleter creates a completer over options.
func NewAutoCompleter(options ...string) *AutoCompleter {
	ac := &AutoCompleter{}
	ac.SetOptions(options)
	return ac
}

// SetOptions replaces the options with a sorted copy and restarts cycling.
func (ac *AutoCompleter) SetOptions(options []string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.options = slices.Sorted(slices.Values(options))
	ac.index = 0
	ac.lastInput = ""
}

// Options returns a copy of the sorted options.
func (ac *AutoCompleter) Options() []string {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return slices.Clone(ac.options)
}

// Reset drops all options and cycling state.
func (ac *AutoCompleter) Reset() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.options = nil
	ac.index = 0
	ac.lastInput = ""
}

// GetNextOption returns the next option starting with input, or "" if none does.
// An empty input cycles through every option.
func (ac *AutoCompleter) GetNextOption(input string) string {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if input != ac.lastInput {
		ac.index = 0
		ac.lastInput = input
	}

	candidates := ac.options
	if input != "" {
		candidates = make([]string, 0, len(ac.options))
		for _, option := range ac.options {
			if strings.HasPrefix(option, input) {
				candidates = append(candidates, option)
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	if ac.index >= len(candidates) {
		ac.index = 0
	}
	result := candidates[ac.index]
	ac.index++
	return result
}

// completion adapts an AutoCompleter to the command token: consecutive Tab presses
// keep cycling over the prefix typed before the first one.
type completion struct {
	completer *AutoCompleter
	prefix    string
	cycling   bool
}

func (c *completion) next(current string) string {
	if c.completer == nil {
		return ""
	}
	if !c.cycling {
		c.prefix = strings.TrimLeft(current, " ")
		c.cycling = true
	}
	return c.completer.GetNextOption(c.prefix)
}

func (c *completion) detach() {
	c.cycling = false
	c.prefix = ""
}
