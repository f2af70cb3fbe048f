package kv

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a Store backed by a map. Used in tests and available
// as a throwaway backend when no store path is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Get(slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}

	data := make([]byte, len(v))
	copy(data, v)
	return data, nil
}

func (s *MemoryStore) Put(slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(data))
	copy(v, data)
	s.slots[slot] = v
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
