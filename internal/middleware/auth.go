package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
)

// SessionCookieName задаёт имя куки с JWT сессии дашборда
const SessionCookieName = "dash_session"

// SessionKey для хранения сессии в контексте
type SessionKey struct{}

// SessionResolver проверяет JWT и находит открытую сессию
type SessionResolver interface {
	ParseJWT(token string) (string, error)
	Session(ctx context.Context, sessionID string) (models.Session, error)
}

// AuthMiddleware требует действующую сессию: JWT берётся из куки dash_session
// или из заголовка Authorization: Bearer
func AuthMiddleware(resolver SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			sessionID, err := resolver.ParseJWT(token)
			if err != nil {
				logger.Warn("Invalid JWT token", zap.Error(err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			session, err := resolver.Session(r.Context(), sessionID)
			if err != nil {
				logger.Warn("Session is not available", zap.String("session_id", sessionID), zap.Error(err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Добавляем сессию в контекст
			ctx := context.WithValue(r.Context(), SessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest извлекает JWT из куки или заголовка Authorization
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetSession извлекает сессию из контекста
func GetSession(r *http.Request) (models.Session, bool) {
	session, ok := r.Context().Value(SessionKey{}).(models.Session)
	return session, ok
}
