package termline

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color scheme roles, usable as Freeform record styles.
const (
	StylePrompt   = "prompt"
	StyleCommand  = "command"
	StyleArgument = "argument"
	StyleInfo     = "info"
	StyleWarning  = "warning"
	StyleError    = "error"
	StyleText     = "text"
)

// ColorScheme defines the color of every role the terminal renders.
type ColorScheme struct {
	Name     string `yaml:"name"`
	Prompt   Color  `yaml:"prompt"`
	Command  Color  `yaml:"command"`
	Argument Color  `yaml:"argument"`
	Info     Color  `yaml:"info"`
	Warning  Color  `yaml:"warning"`
	Error    Color  `yaml:"error"`
	Text     Color  `yaml:"text"`
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `yaml:"r"`
	G    uint8 `yaml:"g"`
	B    uint8 `yaml:"b"`
	Bold bool  `yaml:"bold"`
}

// ThemeDefault is the default color scheme: emerald prompt, violet command, slate
// arguments.
var ThemeDefault = &ColorScheme{
	Name:     "default",
	Prompt:   Color{R: 52, G: 211, B: 153, Bold: true},
	Command:  Color{R: 167, G: 139, B: 250, Bold: true},
	Argument: Color{R: 148, G: 163, B: 184},
	Info:     Color{R: 34, G: 211, B: 238},
	Warning:  Color{R: 250, G: 204, B: 21},
	Error:    Color{R: 248, G: 113, B: 113, Bold: true},
	Text:     Color{R: 248, G: 250, B: 252},
}

// ThemeDark is a dark theme with light blue prompt and off-white text
var ThemeDark = &ColorScheme{
	Name:     "dark",
	Prompt:   Color{R: 102, G: 217, B: 239, Bold: true},
	Command:  Color{R: 189, G: 147, B: 249, Bold: true},
	Argument: Color{R: 248, G: 248, B: 242},
	Info:     Color{R: 80, G: 250, B: 123},
	Warning:  Color{R: 255, G: 184, B: 108},
	Error:    Color{R: 255, G: 85, B: 85, Bold: true},
	Text:     Color{R: 248, G: 248, B: 242},
}

// ThemeLight is a light theme with blue prompt and dark gray text
var ThemeLight = &ColorScheme{
	Name:     "light",
	Prompt:   Color{R: 0, G: 119, B: 187, Bold: true},
	Command:  Color{R: 111, G: 66, B: 193, Bold: true},
	Argument: Color{R: 88, G: 96, B: 105},
	Info:     Color{R: 3, G: 102, B: 214},
	Warning:  Color{R: 176, G: 136, B: 0},
	Error:    Color{R: 215, G: 58, B: 73, Bold: true},
	Text:     Color{R: 36, G: 41, B: 46},
}

// ThemeSolarizedDark is the Solarized Dark color scheme
var ThemeSolarizedDark = &ColorScheme{
	Name:     "solarized-dark",
	Prompt:   Color{R: 133, G: 153, B: 0, Bold: true},
	Command:  Color{R: 38, G: 139, B: 210, Bold: true},
	Argument: Color{R: 147, G: 161, B: 161},
	Info:     Color{R: 42, G: 161, B: 152},
	Warning:  Color{R: 181, G: 137, B: 0},
	Error:    Color{R: 220, G: 50, B: 47, Bold: true},
	Text:     Color{R: 253, G: 246, B: 227},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:     "accessible",
	Prompt:   Color{R: 0, G: 114, B: 178, Bold: true},
	Command:  Color{R: 230, G: 159, B: 0, Bold: true},
	Argument: Color{R: 255, G: 255, B: 255},
	Info:     Color{R: 86, G: 180, B: 233},
	Warning:  Color{R: 240, G: 228, B: 66},
	Error:    Color{R: 213, G: 94, B: 0, Bold: true},
	Text:     Color{R: 255, G: 255, B: 255},
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &ColorScheme{
	Name:     "dracula",
	Prompt:   Color{R: 255, G: 121, B: 198, Bold: true},
	Command:  Color{R: 139, G: 233, B: 253, Bold: true},
	Argument: Color{R: 248, G: 248, B: 242},
	Info:     Color{R: 80, G: 250, B: 123},
	Warning:  Color{R: 241, G: 250, B: 140},
	Error:    Color{R: 255, G: 85, B: 85, Bold: true},
	Text:     Color{R: 248, G: 248, B: 242},
}

// Themes lists the built-in color schemes by name.
var Themes = map[string]*ColorScheme{
	ThemeDefault.Name:       ThemeDefault,
	ThemeDark.Name:          ThemeDark,
	ThemeLight.Name:         ThemeLight,
	ThemeSolarizedDark.Name: ThemeSolarizedDark,
	ThemeAccessible.Name:    ThemeAccessible,
	ThemeDracula.Name:       ThemeDracula,
}

// Lookup returns the color of a role, see the Style constants.
func (cs *ColorScheme) Lookup(role string) (Color, bool) {
	switch role {
	case StylePrompt:
		return cs.Prompt, true
	case StyleCommand:
		return cs.Command, true
	case StyleArgument:
		return cs.Argument, true
	case StyleInfo:
		return cs.Info, true
	case StyleWarning:
		return cs.Warning, true
	case StyleError:
		return cs.Error, true
	case StyleText:
		return cs.Text, true
	default:
		return Color{}, false
	}
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// UnmarshalYAML accepts either a mapping with r, g, b and bold keys or a
// "#rrggbb" string, optionally followed by " bold".
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		value, bold := strings.CutSuffix(strings.TrimSpace(node.Value), " bold")
		parsed, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		parsed.Bold = bold
		*c = parsed
		return nil
	}

	type plain Color
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
