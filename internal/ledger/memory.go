package ledger

import (
	"sync"

	"github.com/sliink/chaincore/internal/model"
)

// MemoryStore is a map backed Store
type MemoryStore struct {
	entries map[string]model.Transaction
	mutex   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]model.Transaction),
	}
}

func (s *MemoryStore) Get(id string) (*model.Transaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	tx, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &tx, nil
}

func (s *MemoryStore) Put(tx *model.Transaction) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries[tx.ID] = *tx
	return nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) List() ([]*model.Transaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	result := make([]*model.Transaction, 0, len(s.entries))
	for _, tx := range s.entries {
		tx := tx
		result = append(result, &tx)
	}
	sortByID(result)
	return result, nil
}

func (s *MemoryStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries = make(map[string]model.Transaction)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Size returns the number of entries
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.entries)
}
