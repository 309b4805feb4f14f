package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"floatshot/src/hotkey"
)

// ErrNoHotkey means no usable hotkey is stored; the caller should prompt.
var ErrNoHotkey = errors.New("settings: no saved hotkey")

// Store persists the single hotkey setting as {"hotkey": "..."}.
type Store struct {
	path string
}

type record struct {
	Hotkey any `json:"hotkey"`
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the normalized stored hotkey. A missing, unreadable or corrupt
// file, or a value that is not a non-empty string, yields ErrNoHotkey wrapped
// with the cause.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHotkey, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", ErrNoHotkey, s.path, err)
	}

	value, ok := rec.Hotkey.(string)
	if !ok {
		return "", fmt.Errorf("%w: hotkey field is %T", ErrNoHotkey, rec.Hotkey)
	}
	normalized := hotkey.Normalize(value)
	if normalized == "" {
		return "", fmt.Errorf("%w: hotkey field is blank", ErrNoHotkey)
	}
	return normalized, nil
}

// Save overwrites the stored hotkey unconditionally.
func (s *Store) Save(combo string) error {
	data, err := json.Marshal(record{Hotkey: hotkey.Normalize(combo)})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) isOwnFile(name string) bool {
	return filepath.Clean(name) == filepath.Clean(s.path)
}
