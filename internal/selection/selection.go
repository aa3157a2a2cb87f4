// Package selection persists the pinned group name between mrls runs.
//
// The state is one plain-text file holding exactly the group name.
// Presence of the file is itself the signal: no file means no pin.
// Concurrent mrls runs race on it last-writer-wins, which is accepted for
// a short-lived interactive tool.
package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrConflictingOptions is returned when pinning and clearing are requested
// in the same invocation.
var ErrConflictingOptions = errors.New("don't mix --use and --all")

// Store reads and writes the pin state file.
type Store struct {
	path string
}

// NewStore returns a Store over the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Pinned returns the pinned group name and whether a pin exists.
func (s *Store) Pinned() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read pin file: %w", err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Pin writes name as the pinned group, replacing any previous pin.
// The write goes through a temp file and rename so a crashed run never
// leaves a truncated pin behind.
func (s *Store) Pin(name string) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(name), 0o644); err != nil {
		return fmt.Errorf("write pin file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save pin file: %w", err)
	}
	return nil
}

// Clear removes the pin. It reports whether a pin existed; clearing an
// absent pin is a no-op, not an error.
func (s *Store) Clear() (existed bool, err error) {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("clear pin file: %w", err)
	}
	return true, nil
}

// Describe returns a short display form of the state file location,
// shortening the home directory to ~ where possible.
func (s *Store) Describe() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return s.path
	}
	if rel, err := filepath.Rel(home, s.path); err == nil && !strings.HasPrefix(rel, "..") {
		return "~/" + rel
	}
	return s.path
}
