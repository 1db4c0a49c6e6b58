package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tvoss/image-measure-go/domain/measure"
)

const sessionCacheSize = 128

// Session is the persisted payload of one measured path.
type Session struct {
	Points      []measure.Point     `json:"points"`
	Closed      bool                `json:"closed"`
	Scale       measure.Scale       `json:"scale"`
	Measurement measure.Measurement `json:"measurement"`
}

// SessionStore persists sessions to a single JSON file. The full dataset
// is rewritten on every change; a small LRU cache fronts reads so repeat
// lookups skip the file. Sufficient for development and small workloads.
type SessionStore struct {
	path  string
	mu    sync.Mutex
	cache *lru.Cache[string, Session]
}

// NewSessionStore opens (or creates) the store backed by path.
func NewSessionStore(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	cache, err := lru.New[string, Session](sessionCacheSize)
	if err != nil {
		return nil, err
	}
	s := &SessionStore{path: path, cache: cache}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(map[string]Session{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SessionStore) read() (map[string]Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	out := map[string]Session{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SessionStore) write(payload map[string]Session) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Save stores or replaces the session under id.
func (s *SessionStore) Save(id string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.read()
	if err != nil {
		return err
	}
	payload[id] = sess
	if err := s.write(payload); err != nil {
		return err
	}
	s.cache.Add(id, sess)
	return nil
}

// Load returns the session stored under id.
func (s *SessionStore) Load(id string) (Session, bool, error) {
	if sess, ok := s.cache.Get(id); ok {
		return sess, true, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.read()
	if err != nil {
		return Session{}, false, err
	}
	sess, ok := payload[id]
	if ok {
		s.cache.Add(id, sess)
	}
	return sess, ok, nil
}

// Delete removes the session under id, if present.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := payload[id]; !ok {
		return nil
	}
	delete(payload, id)
	s.cache.Remove(id)
	return s.write(payload)
}

// List returns all stored sessions keyed by id.
func (s *SessionStore) List() (map[string]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}
