package artifactstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests. It records every call
// so publication behavior (cleanup attempts, overwrite refusal) can be
// asserted.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	Uploads   []string
	Deletes   []string
	Probes    []string
	FailProbe bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(_ context.Context, path string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploads = append(s.Uploads, path)
	if _, ok := s.objects[path]; ok {
		return ErrObjectExists
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[path] = cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deletes = append(s.Deletes, path)
	delete(s.objects, path)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Probes = append(s.Probes, path)
	if s.FailProbe {
		return false, nil
	}
	_, ok := s.objects[path]
	return ok, nil
}

func (s *MemoryStore) PublicURL(path string) string {
	return "https://cdn.test/documents/" + path
}

// Object returns a stored object's bytes.
func (s *MemoryStore) Object(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	return data, ok
}
