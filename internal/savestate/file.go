package savestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tradenly/poopee-crush/internal/session"
)

// File keeps one indented JSON file per key in a directory.
type File struct {
	dir string
}

// NewFile creates the directory if needed. A leading ~ is expanded.
func NewFile(dir string) (*File, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("savestate: cannot expand home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("savestate: cannot create directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Save writes g to the key's file, replacing it atomically.
func (f *File) Save(_ context.Context, key string, g session.SavedGame) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("savestate: cannot encode save: %w", err)
	}
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("savestate: cannot write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("savestate: cannot replace save: %w", err)
	}
	return nil
}

// Load reads the key's file. A missing file is not an error.
func (f *File) Load(_ context.Context, key string) (*session.SavedGame, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("savestate: cannot read save: %w", err)
	}
	var g session.SavedGame
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("savestate: cannot decode save: %w", err)
	}
	return &g, nil
}

// Clear removes the key's file. Clearing an empty slot is not an error.
func (f *File) Clear(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("savestate: cannot remove save: %w", err)
	}
	return nil
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", ":", "__", "..", "_")

func (f *File) path(key string) string {
	return filepath.Join(f.dir, unsafeName.Replace(key)+".json")
}
