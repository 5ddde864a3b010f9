// Package prefs is a small persistent key-value preference store backed by a
// JSON file. Writes are atomic and serialised across processes with a file
// lock.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// KeyCopyHashtag controls whether copied hex codes keep their leading '#'.
const KeyCopyHashtag = "copy_hashtag"

// DefaultCopyHashtag is the value used when the preference was never set.
const DefaultCopyHashtag = true

// Store reads and writes preferences in a JSON file.
type Store struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// Open returns a store for the file at path. The file is created on first write.
func Open(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// OpenDefault returns a store in the user's configuration directory.
func OpenDefault() *Store {
	return OpenDir("")
}

// OpenDir returns a store for FileName in dir. An empty dir means ConfigDir.
func OpenDir(dir string) *Store {
	if dir == "" {
		dir = ConfigDir()
	}
	return Open(filepath.Join(dir, FileName))
}

// Path returns the preference file path.
func (s *Store) Path() string {
	return s.path
}

// Bool returns the boolean stored under key, or def when it is missing or
// not a boolean.
func (s *Store) Bool(key string, def bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return def, err
	}
	return boolValue(values, key, def), nil
}

// SetBool stores a boolean under key.
func (s *Store) SetBool(key string, v bool) error {
	return s.update(func(values map[string]any) {
		values[key] = v
	})
}

// Toggle flips the boolean under key (starting from def) and returns the new value.
func (s *Store) Toggle(key string, def bool) (bool, error) {
	var next bool
	err := s.update(func(values map[string]any) {
		next = !boolValue(values, key, def)
		values[key] = next
	})
	return next, err
}

// CopyHashtag reports whether copies should include the '#'.
func (s *Store) CopyHashtag() (bool, error) {
	return s.Bool(KeyCopyHashtag, DefaultCopyHashtag)
}

// SetCopyHashtag sets the copy-hashtag preference.
func (s *Store) SetCopyHashtag(v bool) error {
	return s.SetBool(KeyCopyHashtag, v)
}

// ToggleCopyHashtag flips the copy-hashtag preference.
func (s *Store) ToggleCopyHashtag() (bool, error) {
	return s.Toggle(KeyCopyHashtag, DefaultCopyHashtag)
}

func boolValue(values map[string]any, key string, def bool) bool {
	if b, ok := values[key].(bool); ok {
		return b
	}
	return def
}

func (s *Store) update(fn func(map[string]any)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock preferences: %w", err)
	}
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	fn(values)
	return s.save(values)
}

// load reads the file; a missing file yields an empty map.
func (s *Store) load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	values := map[string]any{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}
	return values, nil
}

// save writes to a temp file and renames it over the real one.
func (s *Store) save(values map[string]any) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}
