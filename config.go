package termline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration of a Session. It can be built with options or
// loaded from a YAML file.
type Config struct {
	PromptPrefix           string        `yaml:"prompt_prefix"`
	PromptSuffix           string        `yaml:"prompt_suffix"`
	Theme                  string        `yaml:"theme,omitempty"`
	Style                  *ColorScheme  `yaml:"style,omitempty"` // Overrides Theme when set
	History                HistoryConfig `yaml:"history"`
	NewlineBetweenCommands bool          `yaml:"newline_between_commands"`
	QuoteMultiWordComplete bool          `yaml:"quote_multi_word_autocompletes"`
	InputPollInterval      time.Duration `yaml:"input_poll_interval"`
	Strict                 bool          `yaml:"strict"`

	KeyMap *KeyMap      `yaml:"-"` // Key bindings (nil for default)
	Logger *slog.Logger `yaml:"-"` // Diagnostics (nil discards)
}

// Option represents a configuration option for a Session
type Option func(*Config)

// DefaultConfig returns the default configuration: a "termline>" prompt, in-memory
// history of 50 entries and quoted multi-word completions.
func DefaultConfig() Config {
	return Config{
		PromptPrefix:           "termline",
		PromptSuffix:           ">",
		Theme:                  ThemeDefault.Name,
		History:                DefaultHistoryConfig(),
		QuoteMultiWordComplete: true,
		InputPollInterval:      DefaultInputPollInterval,
	}
}

// NewConfig returns the default configuration with options applied.
func NewConfig(options ...Option) Config {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}
	return config
}

// WithPromptPrefix sets the prompt prefix, such as "termline" in "termline>".
func WithPromptPrefix(prefix string) Option {
	return func(c *Config) {
		c.PromptPrefix = prefix
	}
}

// WithPromptSuffix sets the string printed after the prompt prefix.
func WithPromptSuffix(suffix string) Option {
	return func(c *Config) {
		c.PromptSuffix = suffix
	}
}

// WithHistory sets the history configuration.
//
// Example:
//
//	config := termline.NewConfig(termline.WithHistory(termline.HistoryConfig{
//		Enabled: true,
//		Method:  termline.HistoryMethodLocal,
//		Limit:   200,
//	}))
func WithHistory(history HistoryConfig) Option {
	return func(c *Config) {
		c.History = history
	}
}

// WithMemoryHistory keeps up to limit entries in memory.
func WithMemoryHistory(limit int) Option {
	return func(c *Config) {
		c.History = HistoryConfig{Enabled: true, Method: HistoryMethodMemory, Limit: limit}
	}
}

// WithLocalHistory persists up to limit entries under dir. An empty dir selects
// the XDG config directory.
func WithLocalHistory(dir string, limit int) Option {
	return func(c *Config) {
		c.History = HistoryConfig{Enabled: true, Method: HistoryMethodLocal, Limit: limit, Dir: dir}
	}
}

// WithoutHistory disables history.
func WithoutHistory() Option {
	return func(c *Config) {
		c.History.Enabled = false
	}
}

// WithTheme selects a built-in color scheme by name, see Themes.
func WithTheme(name string) Option {
	return func(c *Config) {
		c.Theme = name
	}
}

// WithColorScheme sets a custom color scheme.
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.Style = colorScheme
	}
}

// WithKeyMap sets custom key bindings.
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithStrict makes editor invariant violations panic.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithInputPollInterval sets how often pending input requests check for a response.
func WithInputPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.InputPollInterval = interval
	}
}

// WithQuoteMultiWordCompletions controls whether completions containing spaces are
// wrapped in double quotes.
func WithQuoteMultiWordCompletions(quote bool) Option {
	return func(c *Config) {
		c.QuoteMultiWordComplete = quote
	}
}

// WithNewlineBetweenCommands prints an empty line after every command's output.
func WithNewlineBetweenCommands(newline bool) Option {
	return func(c *Config) {
		c.NewlineBetweenCommands = newline
	}
}

// ColorScheme resolves the color scheme: Style, then the named Theme, then the default.
func (c Config) ColorScheme() *ColorScheme {
	if c.Style != nil {
		return c.Style
	}
	if cs, ok := Themes[c.Theme]; ok {
		return cs
	}
	return ThemeDefault
}

// Validate reports configuration values no session can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Style == nil && c.Theme != "" {
		if _, ok := Themes[c.Theme]; !ok {
			errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
		}
	}
	switch c.History.Method {
	case "", HistoryMethodMemory, HistoryMethodSession, HistoryMethodLocal, HistoryMethodKeyring:
	default:
		errs = append(errs, fmt.Errorf("unknown history method %q", c.History.Method))
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history limit must not be negative, got %d", c.History.Limit))
	}
	if c.InputPollInterval < 0 {
		errs = append(errs, fmt.Errorf("input poll interval must not be negative, got %s", c.InputPollInterval))
	}
	return errors.Join(errs...)
}

// DefaultConfigPath returns ~/.config/termline/config.yaml, or
// $XDG_CONFIG_HOME/termline/config.yaml if XDG_CONFIG_HOME is set.
func DefaultConfigPath() string {
	dir := GetDefaultHistoryDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig. A missing
// file yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	expanded, err := expandPath(path)
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return config, nil
}

// SaveConfig writes config to path as YAML, creating parent directories.
func SaveConfig(path string, config Config) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
