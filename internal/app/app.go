// Package app содержит HTTP-обработчики дашборда и маршрутизацию.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/shortdash/internal/client"
	"github.com/tempizhere/shortdash/internal/log"
	"github.com/tempizhere/shortdash/internal/middleware"
	"github.com/tempizhere/shortdash/internal/models"
	"github.com/tempizhere/shortdash/internal/repository"
	"github.com/tempizhere/shortdash/internal/service"
	"go.uber.org/zap"
)

// maxBodySize ограничивает размер тела входящего запроса
const maxBodySize = 1 << 20

// App содержит хендлеры и зависимости
type App struct {
	svc    *service.Service
	db     repository.Database
	logger *zap.Logger
}

// NewApp создаёт новое приложение; db может быть nil, если PostgreSQL не используется
func NewApp(svc *service.Service, db repository.Database, logger *zap.Logger) *App {
	return &App{svc: svc, db: db, logger: logger}
}

// HandlePing проверяет доступность хранилища
func (a *App) HandlePing(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.PingContext(ctx); err != nil {
			a.logger.Error("Database ping failed", zap.Error(err))
			http.Error(w, "Database connection failed", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// HandleLogin обрабатывает POST /api/auth/login
func (a *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	a.handleAuth(w, r, a.svc.Login)
}

// HandleRegister обрабатывает POST /api/auth/register
func (a *App) HandleRegister(w http.ResponseWriter, r *http.Request) {
	a.handleAuth(w, r, a.svc.Register)
}

func (a *App) handleAuth(w http.ResponseWriter, r *http.Request, auth func(context.Context, models.Credentials) (service.AuthResult, error)) {
	var creds models.Credentials
	if !a.decodeJSON(w, r, &creds) {
		return
	}
	res, err := auth(r.Context(), creds)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    res.Token,
		Expires:  a.svc.Now().Add(a.svc.CookieTTL()),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.writeJSONResponse(w, http.StatusOK, AuthResponse{
		User:     res.Session.User,
		Token:    res.Token,
		Settings: newSettingsResponse(res.Settings),
	})
}

// HandleLogout закрывает сессию и удаляет куку
func (a *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := a.svc.Logout(r.Context(), session.ID); err != nil {
		a.writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe возвращает пользователя текущей сессии и его настройки
func (a *App) HandleMe(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	settings, err := a.svc.Settings(r.Context(), session.User.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, AuthResponse{
		User:     session.User,
		Settings: newSettingsResponse(settings),
	})
}

// HandleListURLs обрабатывает GET /api/urls
func (a *App) HandleListURLs(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	q, err := ParseViewQuery(r.URL.Query())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	res, err := a.svc.View(r.Context(), session, q)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, ListResponse{
		Data:  newLinkResponses(res.Links, a.svc.Now()),
		Count: len(res.Links),
		Total: res.Total,
		Stale: res.Stale,
	})
}

// HandleCreateURL обрабатывает POST /api/urls
func (a *App) HandleCreateURL(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}
	var req models.CreateLinkRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	link, err := a.svc.CreateLink(r.Context(), session, req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusCreated, newLinkResponse(link, a.svc.Now()))
}

// HandleExport отдаёт текущее представление списка в виде CSV-файла
func (a *App) HandleExport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	q, err := ParseViewQuery(r.URL.Query())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	filename, err := a.svc.Export(r.Context(), session, q, &buf)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		a.logger.Warn("Failed to write export", zap.Error(err))
	}
}

// HandleLinkAnalytics обрабатывает GET /api/urls/{id}/analytics
func (a *App) HandleLinkAnalytics(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	analytics, err := a.svc.LinkAnalytics(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, analytics)
}

// HandleTags возвращает теги коллекции с числом ссылок
func (a *App) HandleTags(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	tags, err := a.svc.Tags(r.Context(), session)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, tags)
}

// HandleStats возвращает сводку по коллекции ссылок
func (a *App) HandleStats(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	stats, err := a.svc.Stats(r.Context(), session)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, stats)
}

// HandleAnalytics возвращает аналитику дашборда
func (a *App) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	analytics, err := a.svc.Analytics(r.Context(), session)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, analytics)
}

// HandleGetSettings возвращает настройки оформления
func (a *App) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	settings, err := a.svc.Settings(r.Context(), session.User.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, newSettingsResponse(settings))
}

// HandleUpdateSettings частично обновляет настройки оформления
func (a *App) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var patch models.ThemeSettingsPatch
	if !a.decodeJSON(w, r, &patch) {
		return
	}
	settings, err := a.svc.UpdateSettings(r.Context(), session.User.ID, patch)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, newSettingsResponse(settings))
}

// HandleInternalStats возвращает число открытых сессий
func (a *App) HandleInternalStats(w http.ResponseWriter, r *http.Request) {
	count, err := a.svc.SessionCount(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, InternalStatsResponse{Sessions: count})
}

// decodeJSON читает тело запроса в v и пишет ошибку 400 при неудаче
func (a *App) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		a.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return false
	}
	return true
}

// writeError сопоставляет ошибку с кодом ответа
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr *client.APIError
		valErr *models.ValidationError
	)
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, service.ErrEmptyCredentials),
		errors.Is(err, service.ErrEmptyURL),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, repository.ErrEmptyID):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &valErr):
		status, message = http.StatusBadRequest, valErr.Error()
	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		status, message = apiErr.StatusCode, apiErr.Message
	case errors.As(err, &apiErr), errors.Is(err, client.ErrInvalidPayload):
		status, message = http.StatusBadGateway, "Upstream API error"
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "Upstream API timeout"
	}

	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context(), a.logger).Error("Request failed",
			zap.String("uri", r.RequestURI), zap.Int("status", status), zap.Error(err))
	}
	a.writeJSONResponse(w, status, errorResponse{Error: message})
}

// writeJSONResponse пишет JSON-ответ с проверкой ошибок
func (a *App) writeJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		a.logger.Warn("Failed to write response", zap.Error(err))
	}
}
