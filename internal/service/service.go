// Package service реализует сценарии дашборда: вход через удалённый API сокращателя,
// хранение сессий и настроек, построение представления списка ссылок и выгрузку.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/tempizhere/shortdash/internal/client"
	"github.com/tempizhere/shortdash/internal/config"
	"github.com/tempizhere/shortdash/internal/models"
	"github.com/tempizhere/shortdash/internal/repository"
	"github.com/tempizhere/shortdash/internal/view"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=service

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrEmptyURL         = errors.New("empty URL")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidToken     = errors.New("invalid token")
)

// LinkAPI описывает удалённый API сокращателя ссылок
type LinkAPI interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Register(ctx context.Context, creds models.Credentials) (string, error)
	Me(ctx context.Context, token string) (models.User, error)
	ListLinks(ctx context.Context, token string) ([]models.LinkRecord, error)
	CreateLink(ctx context.Context, token string, req models.CreateLinkRequest) (models.LinkRecord, error)
	DashboardAnalytics(ctx context.Context, token string) (models.DashboardAnalytics, error)
	LinkAnalytics(ctx context.Context, token, id string) (models.Analytics, error)
}

// AuthResult возвращается после успешного входа или регистрации
type AuthResult struct {
	Session  models.Session
	Token    string
	Settings models.ThemeSettings
}

// LinkSet содержит коллекцию ссылок пользователя.
// Stale означает, что API недоступен и возвращена последняя сохранённая коллекция.
type LinkSet struct {
	Links []models.LinkRecord
	Stale bool
}

// ViewResult содержит ссылки после фильтрации и сортировки
type ViewResult struct {
	Links []models.LinkRecord
	Total int
	Stale bool
}

// Service реализует логику дашборда
type Service struct {
	api       LinkAPI
	repo      repository.Repository
	snapshots repository.SnapshotStore
	jwtSecret []byte
	cookieTTL time.Duration
	exportLoc *time.Location
	newID     func() string
	now       func() time.Time
	logger    *zap.Logger
}

// NewService создаёт новый экземпляр Service
func NewService(api LinkAPI, repo repository.Repository, snapshots repository.SnapshotStore, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	loc, err := time.LoadLocation(cfg.ExportTimezone)
	if err != nil {
		return nil, fmt.Errorf("export timezone: %w", err)
	}
	newID, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	return &Service{
		api:       api,
		repo:      repo,
		snapshots: snapshots,
		jwtSecret: []byte(cfg.JWTSecret),
		cookieTTL: cfg.CookieTTL,
		exportLoc: loc,
		newID:     newID,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// CookieTTL возвращает срок жизни сессионной куки
func (s *Service) CookieTTL() time.Duration {
	return s.cookieTTL
}

// Now возвращает текущее время по часам сервиса
func (s *Service) Now() time.Time {
	return s.now()
}

// Login выполняет вход в удалённый API и открывает сессию дашборда
func (s *Service) Login(ctx context.Context, creds models.Credentials) (AuthResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return AuthResult{}, ErrEmptyCredentials
	}
	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return AuthResult{}, err
	}
	return s.openSession(ctx, token)
}

// Register регистрирует пользователя в удалённом API и открывает сессию дашборда
func (s *Service) Register(ctx context.Context, creds models.Credentials) (AuthResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return AuthResult{}, ErrEmptyCredentials
	}
	token, err := s.api.Register(ctx, creds)
	if err != nil {
		return AuthResult{}, err
	}
	return s.openSession(ctx, token)
}

func (s *Service) openSession(ctx context.Context, apiToken string) (AuthResult, error) {
	user, err := s.api.Me(ctx, apiToken)
	if err != nil {
		return AuthResult{}, err
	}
	session := models.Session{
		ID:        s.newID(),
		User:      user,
		APIToken:  apiToken,
		CreatedAt: s.now().UTC(),
		ExpiresAt: s.now().UTC().Add(s.cookieTTL),
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return AuthResult{}, err
	}
	token, err := s.GenerateJWT(session.ID)
	if err != nil {
		return AuthResult{}, err
	}
	settings, err := s.Settings(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	s.logger.Info("Session opened", zap.String("session_id", session.ID), zap.String("user_id", user.ID))
	return AuthResult{Session: session, Token: token, Settings: settings}, nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}

// GenerateJWT создаёт JWT с ID сессии
func (s *Service) GenerateJWT(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cookieTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseJWT проверяет JWT и извлекает ID сессии
func (s *Service) ParseJWT(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	// Срок действия проверяется по часам сервиса
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || !claims.VerifyExpiresAt(s.now(), true) {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Session возвращает открытую сессию по ID
func (s *Service) Session(ctx context.Context, sessionID string) (models.Session, error) {
	session, ok, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
			s.logger.Warn("Failed to delete expired session", zap.String("session_id", sessionID), zap.Error(err))
		}
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// SessionCount удаляет истёкшие сессии и возвращает число открытых
func (s *Service) SessionCount(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int("count", removed))
	}
	return s.repo.CountSessions(ctx)
}

// Links загружает коллекцию ссылок пользователя.
// Если API недоступен, возвращается последняя сохранённая коллекция с флагом Stale.
// Отказ в доступе не подменяется сохранённой коллекцией.
func (s *Service) Links(ctx context.Context, session models.Session) (LinkSet, error) {
	links, err := s.api.ListLinks(ctx, session.APIToken)
	if err == nil {
		if err := s.snapshots.Put(ctx, session.User.ID, links); err != nil {
			s.logger.Warn("Failed to store links snapshot", zap.String("user_id", session.User.ID), zap.Error(err))
		}
		return LinkSet{Links: links}, nil
	}
	if errors.Is(err, client.ErrUnauthorized) {
		return LinkSet{}, err
	}

	s.logger.Error("Failed to fetch links, using last known collection",
		zap.String("user_id", session.User.ID), zap.Error(err))
	cached, _, cacheErr := s.snapshots.Get(ctx, session.User.ID)
	if cacheErr != nil {
		s.logger.Warn("Failed to read links snapshot", zap.String("user_id", session.User.ID), zap.Error(cacheErr))
	}
	if cached == nil {
		cached = []models.LinkRecord{}
	}
	return LinkSet{Links: cached, Stale: true}, nil
}

// View возвращает ссылки пользователя после поиска, фильтрации и сортировки
func (s *Service) View(ctx context.Context, session models.Session, q view.Query) (ViewResult, error) {
	set, err := s.Links(ctx, session)
	if err != nil {
		return ViewResult{}, err
	}
	q.Now = s.now()
	links := view.ComputeView(set.Links, q)
	return ViewResult{Links: links, Total: len(set.Links), Stale: set.Stale}, nil
}

// Export записывает текущее представление в CSV и возвращает имя файла выгрузки
func (s *Service) Export(ctx context.Context, session models.Session, q view.Query, w io.Writer) (string, error) {
	result, err := s.View(ctx, session, q)
	if err != nil {
		return "", err
	}
	if err := view.ExportCSV(w, result.Links, s.exportLoc); err != nil {
		return "", err
	}
	return view.ExportFilename(s.now().In(s.exportLoc)), nil
}

// CreateLink создаёт короткую ссылку и добавляет её в начало сохранённой коллекции
func (s *Service) CreateLink(ctx context.Context, session models.Session, req models.CreateLinkRequest) (models.LinkRecord, error) {
	req.OriginalURL = strings.TrimSpace(req.OriginalURL)
	if req.OriginalURL == "" {
		return models.LinkRecord{}, ErrEmptyURL
	}
	u, err := url.ParseRequestURI(req.OriginalURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.LinkRecord{}, ErrInvalidURL
	}

	link, err := s.api.CreateLink(ctx, session.APIToken, req)
	if err != nil {
		return models.LinkRecord{}, err
	}

	cached, _, err := s.snapshots.Get(ctx, session.User.ID)
	if err != nil {
		s.logger.Warn("Failed to read links snapshot", zap.String("user_id", session.User.ID), zap.Error(err))
		return link, nil
	}
	updated := make([]models.LinkRecord, 0, len(cached)+1)
	updated = append(updated, link)
	updated = append(updated, cached...)
	if err := s.snapshots.Put(ctx, session.User.ID, updated); err != nil {
		s.logger.Warn("Failed to store links snapshot", zap.String("user_id", session.User.ID), zap.Error(err))
	}
	return link, nil
}

// Tags возвращает все теги коллекции в порядке первого появления
func (s *Service) Tags(ctx context.Context, session models.Session) ([]models.TagCount, error) {
	set, err := s.Links(ctx, session)
	if err != nil {
		return nil, err
	}
	return view.TagCounts(set.Links), nil
}

// Stats возвращает сводку по коллекции ссылок
func (s *Service) Stats(ctx context.Context, session models.Session) (models.DashboardStats, error) {
	set, err := s.Links(ctx, session)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return view.Stats(set.Links, s.now()), nil
}

// Analytics возвращает аналитику дашборда из удалённого API
func (s *Service) Analytics(ctx context.Context, session models.Session) (models.DashboardAnalytics, error) {
	return s.api.DashboardAnalytics(ctx, session.APIToken)
}

// LinkAnalytics возвращает аналитику одной ссылки
func (s *Service) LinkAnalytics(ctx context.Context, session models.Session, id string) (models.Analytics, error) {
	if id == "" {
		return models.Analytics{}, repository.ErrEmptyID
	}
	return s.api.LinkAnalytics(ctx, session.APIToken, id)
}

// Settings возвращает настройки оформления пользователя или значения по умолчанию
func (s *Service) Settings(ctx context.Context, userID string) (models.ThemeSettings, error) {
	settings, ok, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return models.ThemeSettings{}, err
	}
	if !ok {
		return models.DefaultThemeSettings(), nil
	}
	return settings, nil
}

// UpdateSettings применяет частичное обновление настроек и сохраняет результат
func (s *Service) UpdateSettings(ctx context.Context, userID string, patch models.ThemeSettingsPatch) (models.ThemeSettings, error) {
	current, err := s.Settings(ctx, userID)
	if err != nil {
		return models.ThemeSettings{}, err
	}
	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return models.ThemeSettings{}, err
	}
	if err := s.repo.SaveSettings(ctx, userID, updated); err != nil {
		return models.ThemeSettings{}, err
	}
	return updated, nil
}
