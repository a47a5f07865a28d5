package termline

// KeyAction represents the action to perform when a key is pressed
type KeyAction int

// Key action constants define the actions that can be performed when keys are pressed
const (
	ActionNone KeyAction = iota
	ActionSubmit
	ActionCancel
	ActionEOF
	ActionMoveLeft
	ActionMoveRight
	ActionHistoryUp
	ActionHistoryDown
	ActionDeleteChar
	ActionComplete
	ActionPaste
	ActionBracketedPaste
)

// bracketedPasteEnd terminates text delivered after the "[200~" sequence.
const bracketedPasteEnd = "\x1b[201~"

// KeyMap holds the key binding configuration
type KeyMap struct {
	bindings  map[rune]KeyAction
	sequences map[string]KeyAction
}

// NewDefaultKeyMap creates the default key bindings.
//
// Default key bindings:
//   - Enter/Return: Submit the line
//   - Ctrl+C: Cancel (interrupt)
//   - Ctrl+D: EOF on an empty line
//   - Tab: Cycle completions of the command token
//   - Backspace: Delete backwards, remove or join tokens
//   - Ctrl+V: Paste from the system clipboard
//   - Left/Right arrows: Move within and across tokens
//   - Up/Down arrows: Navigate history
//   - Bracketed paste: Paste text sent by the terminal
//
// Example:
//
//	keyMap := termline.NewDefaultKeyMap()
//	// Ctrl+P and Ctrl+N walk history like emacs
//	keyMap.Bind('\x10', termline.ActionHistoryUp)
//	keyMap.Bind('\x0E', termline.ActionHistoryDown)
//
//	config := termline.NewConfig(termline.WithKeyMap(keyMap))
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}

	// Default key bindings
	km.bindings['\r'] = ActionSubmit
	km.bindings['\n'] = ActionSubmit
	km.bindings['\x03'] = ActionCancel // Ctrl+C
	km.bindings['\x04'] = ActionEOF    // Ctrl+D
	km.bindings['\t'] = ActionComplete
	km.bindings['\x7f'] = ActionDeleteChar // Backspace
	km.bindings['\b'] = ActionDeleteChar   // Backspace
	km.bindings['\x16'] = ActionPaste      // Ctrl+V

	// Escape sequences
	km.sequences["[A"] = ActionHistoryUp
	km.sequences["[B"] = ActionHistoryDown
	km.sequences["[C"] = ActionMoveRight
	km.sequences["[D"] = ActionMoveLeft
	km.sequences["OA"] = ActionHistoryUp
	km.sequences["OB"] = ActionHistoryDown
	km.sequences["OC"] = ActionMoveRight
	km.sequences["OD"] = ActionMoveLeft
	km.sequences["[200~"] = ActionBracketedPaste

	return km
}

// Bind adds or updates a key binding for a single character.
func (km *KeyMap) Bind(key rune, action KeyAction) {
	km.bindings[key] = action
}

// BindSequence adds or updates an escape sequence binding.
// The sequence should not include the initial ESC character.
func (km *KeyMap) BindSequence(seq string, action KeyAction) {
	km.sequences[seq] = action
}

// GetAction returns the action for a key, or ActionNone if not bound
func (km *KeyMap) GetAction(key rune) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	if action, exists := km.bindings[key]; exists {
		return action
	}
	return ActionNone
}

// GetSequenceAction returns the action for an escape sequence, or ActionNone if not bound
func (km *KeyMap) GetSequenceAction(seq string) KeyAction {
	if km == nil || km.sequences == nil {
		return ActionNone
	}
	if action, exists := km.sequences[seq]; exists {
		return action
	}
	return ActionNone
}

// gesture maps an editing action to the editor gesture it triggers.
func (a KeyAction) gesture() (GestureKind, bool) {
	switch a {
	case ActionSubmit:
		return GestureEnter, true
	case ActionMoveLeft:
		return GestureLeft, true
	case ActionMoveRight:
		return GestureRight, true
	case ActionHistoryUp:
		return GestureUp, true
	case ActionHistoryDown:
		return GestureDown, true
	case ActionDeleteChar:
		return GestureBackspace, true
	case ActionComplete:
		return GestureTab, true
	default:
		return 0, false
	}
}
