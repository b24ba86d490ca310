package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
)

// MemoryRepository реализует интерфейс Repository с использованием map
type MemoryRepository struct {
	sessions map[string]models.Session
	settings map[string]models.ThemeSettings
	mutex    sync.RWMutex
}

// NewMemoryRepository создаёт новый экземпляр MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]models.Session),
		settings: make(map[string]models.ThemeSettings),
	}
}

// SaveSession сохраняет сессию в памяти
func (r *MemoryRepository) SaveSession(_ context.Context, s models.Session) error {
	if s.ID == "" {
		return ErrEmptyID
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sessions[s.ID] = s
	return nil
}

// GetSession возвращает сессию по ID
func (r *MemoryRepository) GetSession(_ context.Context, id string) (models.Session, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s, ok := r.sessions[id]
	return s, ok, nil
}

// DeleteSession удаляет сессию
func (r *MemoryRepository) DeleteSession(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, id)
	return nil
}

// CountSessions возвращает число сессий
func (r *MemoryRepository) CountSessions(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sessions), nil
}

// SaveSettings сохраняет настройки пользователя
func (r *MemoryRepository) SaveSettings(_ context.Context, userID string, s models.ThemeSettings) error {
	if userID == "" {
		return ErrEmptyID
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.settings[userID] = s
	return nil
}

// GetSettings возвращает настройки пользователя
func (r *MemoryRepository) GetSettings(_ context.Context, userID string) (models.ThemeSettings, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s, ok := r.settings[userID]
	return s, ok, nil
}

// DeleteExpiredSessions удаляет истёкшие сессии
func (r *MemoryRepository) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
