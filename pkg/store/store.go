// Package store keeps board snapshots as JSON files in a directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chazu/vlisp/pkg/graph"
)

// Ext is the file extension of stored boards.
const Ext = ".vlisp.json"

// ErrBadName is returned for board names that are empty or contain path
// separators.
var ErrBadName = errors.New("invalid board name")

// Store reads and writes snapshots under Dir.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir. An empty dir means the working
// directory.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return filepath.Join(s.Dir, name+Ext), nil
}

// Save writes the snapshot as name, replacing any previous board of that
// name. The file is written to a temporary name first and renamed into
// place.
func (s *Store) Save(name string, snap graph.Snapshot) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("store: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Load reads the snapshot stored as name.
func (s *Store) Load(name string) (graph.Snapshot, error) {
	p, err := s.path(name)
	if err != nil {
		return graph.Snapshot{}, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("store: %w", err)
	}
	var snap graph.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return graph.Snapshot{}, fmt.Errorf("store: decode %s: %w", name, err)
	}
	return snap, nil
}

// List returns the names of stored boards, sorted.
func (s *Store) List() ([]string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}
