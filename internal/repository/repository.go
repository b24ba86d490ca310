// Package repository содержит хранилища сессий дашборда, настроек оформления
// и последних загруженных коллекций ссылок.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// ErrEmptyID возвращается при попытке сохранить сессию или настройки без идентификатора
var ErrEmptyID = errors.New("empty ID")

// Repository определяет интерфейс хранилища сессий и настроек
type Repository interface {
	// SaveSession сохраняет или обновляет сессию
	SaveSession(ctx context.Context, s models.Session) error
	// GetSession возвращает сессию по ID и флаг существования
	GetSession(ctx context.Context, id string) (models.Session, bool, error)
	// DeleteSession удаляет сессию; удаление отсутствующей сессии не ошибка
	DeleteSession(ctx context.Context, id string) error
	// CountSessions возвращает число активных сессий
	CountSessions(ctx context.Context) (int, error)
	// SaveSettings сохраняет настройки оформления пользователя
	SaveSettings(ctx context.Context, userID string, s models.ThemeSettings) error
	// GetSettings возвращает настройки пользователя и флаг существования
	GetSettings(ctx context.Context, userID string) (models.ThemeSettings, bool, error)
	// DeleteExpiredSessions удаляет сессии, истёкшие к моменту now, и возвращает их число
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// SnapshotStore хранит последнюю успешно загруженную коллекцию ссылок пользователя
type SnapshotStore interface {
	// Put заменяет сохранённую коллекцию
	Put(ctx context.Context, userID string, links []models.LinkRecord) error
	// Get возвращает сохранённую коллекцию и флаг существования
	Get(ctx context.Context, userID string) ([]models.LinkRecord, bool, error)
}

// Database определяет интерфейс для работы с базой данных
type Database interface {
	// PingContext проверяет соединение с базой данных
	PingContext(ctx context.Context) error
	// Close закрывает соединение с базой данных
	Close() error
	// ExecContext выполняет SQL-команду без возврата результатов
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	// QueryRowContext выполняет SQL-запрос и возвращает одну строку результата
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
