// Package config persists the doc source registry as a JSON document on disk.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gofrs/flock"

	"github.com/danlester/mcpdoc/internal/sources"
)

// ErrConfigCorrupt is returned when the config file exists but cannot be
// parsed as a JSON array of doc sources. Callers treat this as fatal: the
// process must not start from a config it cannot read faithfully.
var ErrConfigCorrupt = errors.New("config file must contain a list of doc sources")

// Store reads and writes the persisted doc source list. The file is a single
// JSON array of doc source objects, written with 2-space indentation and
// non-ASCII characters preserved unescaped. An advisory file lock guards each
// load and save against concurrent processes sharing the file.
//
// A Store with an empty path has persistence disabled: Load returns nothing
// and Save does nothing.
type Store struct {
	path string
}

// NewStore creates a store for the given config path. An empty path disables
// persistence.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Enabled reports whether the store has a backing file.
func (s *Store) Enabled() bool {
	return s.path != ""
}

// Path returns the backing file path ("" when persistence is disabled).
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted doc sources. A missing file is not an error: the
// store creates it with an empty list and returns an empty slice. A file that
// cannot be parsed as a doc source array fails with ErrConfigCorrupt.
func (s *Store) Load() ([]sources.DocSource, error) {
	if !s.Enabled() {
		return nil, nil
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock config file %s: %w", s.path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
		return []sources.DocSource{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", s.path, err)
	}

	var loaded []sources.DocSource
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, s.path, err)
	}
	return loaded, nil
}

// Save writes the full snapshot, replacing the previous contents. The
// in-memory registry is the source of truth; a failed save leaves the caller
// with applied-but-unpersisted state and must be surfaced to them.
func (s *Store) Save(snapshot []sources.DocSource) error {
	if !s.Enabled() {
		return nil
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock config file %s: %w", s.path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	return s.write(snapshot)
}

func (s *Store) write(snapshot []sources.DocSource) error {
	if snapshot == nil {
		snapshot = []sources.DocSource{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode doc sources: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.path, err)
	}
	return nil
}
