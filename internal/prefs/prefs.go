// Package prefs handles Sanctuary user preferences persistence.
// Preferences are flat string keys stored in ~/.config/sanctuary/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Store is a string key-value settings store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Keys persisted by Sanctuary.
const (
	KeyFocusMode          = "focusMode"
	KeyWallpaper          = "study-sanctuary-wallpaper"
	KeyAmbientSound       = "ambientSound"
	KeyAmbientVolume      = "ambientVolume"
	KeySpotifyToken       = "spotify_access_token"
	KeySpotifyTokenExpiry = "spotify_token_expiry"
	KeyTheme              = "theme"
)

const defaultPrefsPath = "~/.config/sanctuary/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// FileStore keeps preferences in memory and rewrites the TOML file on every change.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

var _ Store = (*FileStore)(nil)

// Open reads preferences from the given path. Missing, unreadable or invalid
// files yield an empty store; Open only fails when the path cannot be resolved.
func Open(path string) (*FileStore, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	return &FileStore{path: resolved, values: load(resolved)}, nil
}

func load(path string) map[string]string {
	values := make(map[string]string)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values
		}
		return values // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return values // Graceful degradation
	}

	var raw map[string]any
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return values // Graceful degradation
	}
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			values[key] = v
		case int64, float64, bool:
			values[key] = fmt.Sprint(v)
		}
	}
	return values
}

// Path returns the resolved file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Set stores value under key and persists the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, had := s.values[key]
	if had && previous == value {
		return nil
	}
	s.values[key] = value
	if err := s.saveLocked(); err != nil {
		s.restoreLocked(key, previous, had)
		return err
	}
	return nil
}

// Delete removes key and persists the file.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.values[key]
	if !ok {
		return nil
	}
	delete(s.values, key)
	if err := s.saveLocked(); err != nil {
		s.restoreLocked(key, previous, true)
		return err
	}
	return nil
}

// restoreLocked undoes an in-memory change whose save failed.
func (s *FileStore) restoreLocked(key, previous string, had bool) {
	if had {
		s.values[key] = previous
		return
	}
	delete(s.values, key)
}

func (s *FileStore) saveLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// MemoryStore is a Store that never touches disk.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
