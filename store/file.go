package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// collectionFile persists one JSON-encoded collection. Writes go to a sibling
// temporary path and are renamed over the target, so a reader never observes
// a partially written file. An advisory flock serializes concurrent processes
// (a CLI invocation and an MCP invocation may race on the same files); every
// operation holds the lock across its full read-mutate-write cycle.
type collectionFile struct {
	path string
	flk  *flock.Flock
}

func newCollectionFile(path string) (*collectionFile, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &collectionFile{
		path: path,
		flk:  flock.New(path + ".lock"),
	}, nil
}

func (f *collectionFile) lock() error {
	if err := f.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock %s: %w", f.path, err)
	}
	return nil
}

func (f *collectionFile) unlock() {
	_ = f.flk.Unlock()
}

// load reads the collection into v. A missing file leaves v at its zero
// value; it is not an error.
func (f *collectionFile) load(v interface{}) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from %s: %w", f.path, err)
	}
	return nil
}

// save serializes v and atomically replaces the target file.
func (f *collectionFile) save(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data for %s: %w", f.path, err)
	}

	tempPath := f.path + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempPath, f.path, err)
	}
	return nil
}

func (f *collectionFile) close() error {
	if f.flk != nil {
		return f.flk.Unlock()
	}
	return nil
}
