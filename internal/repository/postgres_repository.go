package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
)

// PostgresRepository реализует интерфейс Repository с использованием PostgreSQL
type PostgresRepository struct {
	db     Database
	logger *zap.Logger
}

// NewPostgresRepository создаёт новый экземпляр PostgresRepository
func NewPostgresRepository(db Database, logger *zap.Logger) (*PostgresRepository, error) {
	if db == nil {
		return nil, errors.New("database is not configured")
	}
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}, nil
}

// SaveSession сохраняет сессию; повторное сохранение обновляет токен API
func (r *PostgresRepository) SaveSession(ctx context.Context, s models.Session) error {
	if s.ID == "" {
		return ErrEmptyID
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, user_email, user_name, api_token, created_at, expires_at) VALUES ($1, $2, $3, $4, $5, $6, $7) "+
			"ON CONFLICT (id) DO UPDATE SET api_token = EXCLUDED.api_token, expires_at = EXCLUDED.expires_at",
		s.ID, s.User.ID, s.User.Email, s.User.Name, s.APIToken, s.CreatedAt,
		sql.NullTime{Time: s.ExpiresAt, Valid: !s.ExpiresAt.IsZero()})
	if err != nil {
		r.logger.Error("Failed to save session to database", zap.String("session_id", s.ID), zap.Error(err))
		return err
	}
	return nil
}

// GetSession возвращает сессию по ID
func (r *PostgresRepository) GetSession(ctx context.Context, id string) (models.Session, bool, error) {
	s := models.Session{ID: id}
	var expiresAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, user_email, user_name, api_token, created_at, expires_at FROM sessions WHERE id = $1", id).
		Scan(&s.User.ID, &s.User.Email, &s.User.Name, &s.APIToken, &s.CreatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get session from database", zap.String("session_id", id), zap.Error(err))
		return models.Session{}, false, err
	}
	if expiresAt.Valid {
		s.ExpiresAt = expiresAt.Time
	}
	return s, true, nil
}

// DeleteSession удаляет сессию
func (r *PostgresRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id), zap.Error(err))
		return err
	}
	return nil
}

// CountSessions возвращает число сессий
func (r *PostgresRepository) CountSessions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		r.logger.Error("Failed to count sessions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// SaveSettings сохраняет настройки пользователя в JSONB-колонке
func (r *PostgresRepository) SaveSettings(ctx context.Context, userID string, s models.ThemeSettings) error {
	if userID == "" {
		return ErrEmptyID
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO user_settings (user_id, settings, updated_at) VALUES ($1, $2, NOW()) "+
			"ON CONFLICT (user_id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = NOW()",
		userID, data)
	if err != nil {
		r.logger.Error("Failed to save settings", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// GetSettings возвращает настройки пользователя
func (r *PostgresRepository) GetSettings(ctx context.Context, userID string) (models.ThemeSettings, bool, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, "SELECT settings FROM user_settings WHERE user_id = $1", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ThemeSettings{}, false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get settings", zap.String("user_id", userID), zap.Error(err))
		return models.ThemeSettings{}, false, err
	}
	var s models.ThemeSettings
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Failed to decode stored settings", zap.String("user_id", userID), zap.Error(err))
		return models.ThemeSettings{}, false, err
	}
	return s, true, nil
}

// DeleteExpiredSessions удаляет истёкшие сессии
func (r *PostgresRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1", now)
	if err != nil {
		r.logger.Error("Failed to delete expired sessions", zap.Error(err))
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}
