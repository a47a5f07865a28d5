package termline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// History methods
const (
	HistoryMethodMemory  = "memory"
	HistoryMethodSession = "session"
	HistoryMethodLocal   = "local"
	HistoryMethodKeyring = "keyring"
)

// DefaultHistoryLimit is the number of entries kept when no limit is configured.
const DefaultHistoryLimit = 50

// historyStorageKey is the key the storage-backed history lives under.
const historyStorageKey = "termline-history"

// History is an append-only, bounded log of submitted command lines.
// Get(0) is the most recent entry; out-of-range indexes return "".
type History interface {
	Push(command string)
	Get(index int) string
	Len() int
	Clear()
	Limit() int
}

// HistoryConfig holds all history-related configuration.
//
// Method selects the backend:
//   - "memory" (default): bounded in-memory log
//   - "session": key-value store that lives as long as the process
//   - "local": JSON file under Dir (default: XDG config directory)
//   - "keyring": the operating system keyring
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Method  string `yaml:"method"`
	Limit   int    `yaml:"limit"`
	Dir     string `yaml:"dir,omitempty"`
}

// DefaultHistoryConfig returns a default history configuration
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Enabled: true,
		Method:  HistoryMethodMemory,
		Limit:   DefaultHistoryLimit,
	}
}

// GetDefaultHistoryDir returns the default directory of the "local" history method.
// Returns ~/.config/termline or $XDG_CONFIG_HOME/termline if XDG_CONFIG_HOME is set.
func GetDefaultHistoryDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "termline")
}

// NewHistory creates the history backend described by config.
func NewHistory(config HistoryConfig, logger *slog.Logger) (History, error) {
	if config.Limit <= 0 {
		config.Limit = DefaultHistoryLimit
	}
	if !config.Enabled {
		return NewDisabledHistory(config.Limit), nil
	}

	switch config.Method {
	case "", HistoryMethodMemory:
		return NewMemoryHistory(config.Limit), nil
	case HistoryMethodSession:
		return NewStorageHistory(NewMemoryStore(), config.Limit, logger), nil
	case HistoryMethodLocal:
		dir := config.Dir
		if dir == "" {
			dir = GetDefaultHistoryDir()
		}
		store, err := NewFileStore(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		return NewStorageHistory(store, config.Limit, logger), nil
	case HistoryMethodKeyring:
		return NewStorageHistory(NewKeyringStore(""), config.Limit, logger), nil
	default:
		return nil, fmt.Errorf("unknown history method %q", config.Method)
	}
}

// MemoryHistory keeps history in memory. Oldest entries are evicted first once the
// limit is reached.
type MemoryHistory struct {
	mu      sync.RWMutex
	limit   int
	entries []string
}

// NewMemoryHistory creates an in-memory history holding at most limit entries.
func NewMemoryHistory(limit int) *MemoryHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &MemoryHistory{limit: limit}
}

// Push appends a command, evicting the oldest entry when full.
func (h *MemoryHistory) Push(command string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = appendBounded(h.entries, command, h.limit)
}

// Get returns the entry index steps back from the most recent one.
func (h *MemoryHistory) Get(index int) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return entryAt(h.entries, index, h.limit)
}

// Len returns the number of stored entries.
func (h *MemoryHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *MemoryHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Limit returns the capacity.
func (h *MemoryHistory) Limit() int {
	return h.limit
}

// StorageHistory keeps history as a JSON array in a key-value Store, so the log
// survives as long as the store does.
type StorageHistory struct {
	mu     sync.Mutex
	store  Store
	limit  int
	logger *slog.Logger
}

// NewStorageHistory creates a history persisted in store.
func NewStorageHistory(store Store, limit int, logger *slog.Logger) *StorageHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StorageHistory{store: store, limit: limit, logger: logger}
}

func (h *StorageHistory) load() []string {
	item, ok, err := h.store.GetItem(historyStorageKey)
	if err != nil {
		h.logger.Warn("failed to read history", "error", err)
		return nil
	}
	if !ok || item == "" {
		return nil
	}
	var entries []string
	if err := json.Unmarshal([]byte(item), &entries); err != nil {
		h.logger.Warn("discarding unreadable history", "error", err)
		return nil
	}
	// A store written with a larger limit keeps only its newest entries.
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}
	return entries
}

func (h *StorageHistory) save(entries []string) {
	data, err := json.Marshal(entries)
	if err != nil {
		h.logger.Warn("failed to encode history", "error", err)
		return
	}
	if err := h.store.SetItem(historyStorageKey, string(data)); err != nil {
		h.logger.Warn("failed to write history", "error", err)
	}
}

// Push appends a command, evicting the oldest entry when full.
func (h *StorageHistory) Push(command string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.save(appendBounded(h.load(), command, h.limit))
}

// Get returns the entry index steps back from the most recent one.
func (h *StorageHistory) Get(index int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return entryAt(h.load(), index, h.limit)
}

// Len returns the number of stored entries.
func (h *StorageHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.load())
}

// Clear removes the stored log.
func (h *StorageHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.RemoveItem(historyStorageKey); err != nil {
		h.logger.Warn("failed to clear history", "error", err)
	}
}

// Limit returns the capacity.
func (h *StorageHistory) Limit() int {
	return h.limit
}

// DisabledHistory stores nothing.
type DisabledHistory struct {
	limit int
}

// NewDisabledHistory creates a history that ignores every push.
func NewDisabledHistory(limit int) *DisabledHistory {
	return &DisabledHistory{limit: limit}
}

// Push does nothing.
func (h *DisabledHistory) Push(string) {}

// Get always returns "".
func (h *DisabledHistory) Get(int) string { return "" }

// Len always returns 0.
func (h *DisabledHistory) Len() int { return 0 }

// Clear does nothing.
func (h *DisabledHistory) Clear() {}

// Limit returns the configured limit.
func (h *DisabledHistory) Limit() int { return h.limit }

func appendBounded(entries []string, command string, limit int) []string {
	if len(entries) >= limit {
		entries = entries[len(entries)-limit+1:]
	}
	return append(entries, command)
}

func entryAt(entries []string, index, limit int) string {
	if index < 0 || index >= limit || index >= len(entries) {
		return ""
	}
	return entries[len(entries)-index-1]
}

// expandPath expands and validates a file system path
// Supports:
// - Absolute paths: /home/user/.termline
// - Home directory expansion: ~/.termline or ~/config/termline
// - Relative paths: ./.termline or config/termline (converted to absolute)
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand home directory (~)
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = home
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}

	return absPath, nil
}
