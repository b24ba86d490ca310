package repository

import (
	"context"
	"sync"

	"github.com/tempizhere/shortdash/internal/models"
)

// MemorySnapshotStore хранит коллекции ссылок в памяти процесса
type MemorySnapshotStore struct {
	snapshots map[string][]models.LinkRecord
	mutex     sync.RWMutex
}

// NewMemorySnapshotStore создаёт пустое хранилище коллекций
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snapshots: make(map[string][]models.LinkRecord)}
}

// Put сохраняет копию коллекции
func (s *MemorySnapshotStore) Put(_ context.Context, userID string, links []models.LinkRecord) error {
	if userID == "" {
		return ErrEmptyID
	}
	stored := make([]models.LinkRecord, len(links))
	copy(stored, links)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.snapshots[userID] = stored
	return nil
}

// Get возвращает копию сохранённой коллекции
func (s *MemorySnapshotStore) Get(_ context.Context, userID string) ([]models.LinkRecord, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	stored, ok := s.snapshots[userID]
	if !ok {
		return nil, false, nil
	}
	links := make([]models.LinkRecord, len(stored))
	copy(links, stored)
	return links, true, nil
}
