package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// MarkerStore persists per-item reaction markers across sessions. Each item
// has at most one chosen kind plus a fire-once "shared" flag. With an empty
// path the store is memory only, which tests and one-shot CLI calls use.
type MarkerStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewMarkerStore loads markers from path, tolerating a missing file.
// A corrupt file is discarded rather than surfaced, a stale marker is
// advisory state and never worth failing startup over.
func NewMarkerStore(path string) (*MarkerStore, error) {
	s := &MarkerStore{path: path, entries: make(map[string]string)}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading marker file: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = make(map[string]string)
	}
	return s, nil
}

func markerKey(itemID string) string { return "reaction_" + itemID }
func sharedKey(itemID string) string { return "shared_" + itemID }

// Chosen returns the locally recorded kind for an item, or KindNone.
func (s *MarkerStore) Chosen(itemID string) domain.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Kind(s.entries[markerKey(itemID)])
}

// SetChosen records the chosen kind for an item. KindNone clears the marker.
func (s *MarkerStore) SetChosen(itemID string, kind domain.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == domain.KindNone {
		delete(s.entries, markerKey(itemID))
	} else {
		s.entries[markerKey(itemID)] = string(kind)
	}
	return s.persistLocked()
}

// Shared reports whether the share action already fired for an item.
func (s *MarkerStore) Shared(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[sharedKey(itemID)] == "1"
}

// MarkShared latches the share flag for an item. It never unlatches.
func (s *MarkerStore) MarkShared(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sharedKey(itemID)] = "1"
	return s.persistLocked()
}

// persistLocked writes the marker map atomically via tmp file and rename.
func (s *MarkerStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding markers: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".markers-*")
	if err != nil {
		return fmt.Errorf("creating marker tmp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing markers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing marker tmp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing marker file: %w", err)
	}
	return nil
}
