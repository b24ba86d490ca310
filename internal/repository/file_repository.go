package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
)

const (
	opPutSession    = "put_session"
	opDeleteSession = "delete_session"
	opPutSettings   = "put_settings"
)

// fileRecord представляет одну строку журнала в JSON-файле
type fileRecord struct {
	Op        string                `json:"op"`
	SessionID string                `json:"session_id,omitempty"`
	Session   *models.Session       `json:"session,omitempty"`
	UserID    string                `json:"user_id,omitempty"`
	Settings  *models.ThemeSettings `json:"settings,omitempty"`
}

// FileRepository реализует интерфейс Repository поверх журнала в файле.
// Каждое изменение дописывается в конец файла, при открытии журнал проигрывается заново.
type FileRepository struct {
	sessions map[string]models.Session
	settings map[string]models.ThemeSettings
	filePath string
	logger   *zap.Logger
	mutex    sync.RWMutex
}

// NewFileRepository создаёт новый экземпляр FileRepository
func NewFileRepository(filePath string, logger *zap.Logger) (*FileRepository, error) {
	repo := &FileRepository{
		sessions: make(map[string]models.Session),
		settings: make(map[string]models.ThemeSettings),
		filePath: filePath,
		logger:   logger,
	}

	// Создаём директорию, если не существует
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, err
	}
	defer file.Close()

	// Читаем журнал построчно
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record fileRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			repo.logger.Warn("Skipping invalid JSON line", zap.String("line", scanner.Text()), zap.Error(err))
			continue
		}
		repo.apply(record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return repo, nil
}

// apply применяет запись журнала к состоянию в памяти
func (r *FileRepository) apply(record fileRecord) {
	switch record.Op {
	case opPutSession:
		if record.Session != nil {
			r.sessions[record.Session.ID] = *record.Session
		}
	case opDeleteSession:
		delete(r.sessions, record.SessionID)
	case opPutSettings:
		if record.Settings != nil {
			r.settings[record.UserID] = *record.Settings
		}
	default:
		r.logger.Warn("Skipping unknown journal operation", zap.String("op", record.Op))
	}
}

// appendRecord дописывает запись в конец файла
func (r *FileRepository) appendRecord(record fileRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	file, err := os.OpenFile(r.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(data)
	return err
}

// SaveSession сохраняет сессию в памяти и в файле
func (r *FileRepository) SaveSession(_ context.Context, s models.Session) error {
	if s.ID == "" {
		return ErrEmptyID
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.appendRecord(fileRecord{Op: opPutSession, Session: &s}); err != nil {
		r.logger.Error("Failed to write session", zap.String("session_id", s.ID), zap.Error(err))
		return err
	}
	r.sessions[s.ID] = s
	return nil
}

// GetSession возвращает сессию по ID
func (r *FileRepository) GetSession(_ context.Context, id string) (models.Session, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s, ok := r.sessions[id]
	return s, ok, nil
}

// DeleteSession удаляет сессию и записывает это в журнал
func (r *FileRepository) DeleteSession(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return nil
	}
	if err := r.appendRecord(fileRecord{Op: opDeleteSession, SessionID: id}); err != nil {
		r.logger.Error("Failed to write session removal", zap.String("session_id", id), zap.Error(err))
		return err
	}
	delete(r.sessions, id)
	return nil
}

// CountSessions возвращает число сессий
func (r *FileRepository) CountSessions(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sessions), nil
}

// SaveSettings сохраняет настройки пользователя в памяти и в файле
func (r *FileRepository) SaveSettings(_ context.Context, userID string, s models.ThemeSettings) error {
	if userID == "" {
		return ErrEmptyID
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.appendRecord(fileRecord{Op: opPutSettings, UserID: userID, Settings: &s}); err != nil {
		r.logger.Error("Failed to write settings", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	r.settings[userID] = s
	return nil
}

// GetSettings возвращает настройки пользователя
func (r *FileRepository) GetSettings(_ context.Context, userID string) (models.ThemeSettings, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s, ok := r.settings[userID]
	return s, ok, nil
}

// DeleteExpiredSessions удаляет истёкшие сессии и записывает удаление каждой в журнал
func (r *FileRepository) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if !s.Expired(now) {
			continue
		}
		if err := r.appendRecord(fileRecord{Op: opDeleteSession, SessionID: id}); err != nil {
			r.logger.Error("Failed to write session removal", zap.String("session_id", id), zap.Error(err))
			return removed, err
		}
		delete(r.sessions, id)
		removed++
	}
	return removed, nil
}
