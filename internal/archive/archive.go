package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
)

// Archive tracks identifiers (URLs, video IDs, file paths) that have already
// been processed so batch runs and enrichment passes never redo work. The
// on-disk format is a flat JSON array.
type Archive struct {
	path string

	mu      sync.Mutex
	entries map[string]struct{}
}

// Load reads the archive at path, creating an empty one when the file does
// not exist yet.
func Load(path string) (*Archive, error) {
	a := &Archive{
		path:    path,
		entries: make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return a, nil
		}
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse archive %s: %w", path, err)
	}
	for _, entry := range list {
		a.entries[entry] = struct{}{}
	}
	return a, nil
}

// Contains reports whether the identifier was already processed
func (a *Archive) Contains(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.entries[id]
	return ok
}

// Add records an identifier and persists the archive. Safe for concurrent
// use by download workers.
func (a *Archive) Add(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.entries[id]; ok {
		return nil
	}
	a.entries[id] = struct{}{}
	return a.save()
}

// Len returns the number of recorded identifiers
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// save writes the archive to disk. Caller must hold the mutex.
func (a *Archive) save() error {
	list := make([]string, 0, len(a.entries))
	for entry := range a.entries {
		list = append(list, entry)
	}
	sort.Strings(list)

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write archive %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		return fmt.Errorf("replace archive %s: %w", a.path, err)
	}
	return nil
}
