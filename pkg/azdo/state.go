package azdo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// StateStore is the local record of every resource this client believes exists
// remotely, keyed by kind and then by resource id. It is loaded once at
// construction and flushed to disk after every mutation (write-through), so a
// crash between two operations loses at most the in-flight one.
//
// The on-disk file is plain indented JSON, human-diffable by design. It is not
// safe for concurrent writers: run exactly one client per state file.
type StateStore struct {
	path      string
	resources map[string]map[string]map[string]interface{}
}

// NewStateStore loads the state file at path, or starts empty when the file
// does not exist yet. An empty path keeps all state in memory only.
func NewStateStore(path string) (*StateStore, error) {
	store := &StateStore{
		path:      path,
		resources: make(map[string]map[string]map[string]interface{}),
	}

	if path == "" {
		return store, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	err = json.Unmarshal(data, &store.resources)
	if err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}

	return store, nil
}

// Upsert records the serialized resource under (kind, id) and flushes.
func (s *StateStore) Upsert(kind Kind, id string, doc map[string]interface{}) error {
	byID, ok := s.resources[string(kind)]
	if !ok {
		byID = make(map[string]map[string]interface{})
		s.resources[string(kind)] = byID
	}

	byID[id] = doc

	return s.flush()
}

// Remove deletes the entry under (kind, id) and flushes. Removing an absent
// entry is a no-op.
func (s *StateStore) Remove(kind Kind, id string) error {
	byID, ok := s.resources[string(kind)]
	if !ok {
		return nil
	}

	if _, tracked := byID[id]; !tracked {
		return nil
	}

	delete(byID, id)

	if len(byID) == 0 {
		delete(s.resources, string(kind))
	}

	return s.flush()
}

// Get returns the serialized resource stored under (kind, id).
func (s *StateStore) Get(kind Kind, id string) (map[string]interface{}, bool) {
	byID, ok := s.resources[string(kind)]
	if !ok {
		return nil, false
	}

	doc, ok := byID[id]

	return doc, ok
}

// IDs returns every tracked id for a kind.
func (s *StateStore) IDs(kind Kind) []string {
	byID := s.resources[string(kind)]
	ids := make([]string, 0, len(byID))

	for id := range byID {
		ids = append(ids, id)
	}

	return ids
}

// Resource decodes the tracked entry under (kind, id) back into a typed
// resource.
func (s *StateStore) Resource(kind Kind, id string) (Resource, error) {
	doc, ok := s.Get(kind, id)
	if !ok {
		return nil, &NotFoundError{Kind: kind}
	}

	return DecodeState(kind, doc)
}

func (s *StateStore) flush() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.resources, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}

	err = os.WriteFile(s.path, append(data, '\n'), 0o600)
	if err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}

	return nil
}
