package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/shortdash/internal/config"
	"github.com/tempizhere/shortdash/internal/models"
	"github.com/tempizhere/shortdash/internal/repository"
	"github.com/tempizhere/shortdash/internal/service"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (*service.Service, string) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	session := models.Session{
		ID:        "sess-1",
		User:      models.User{ID: "u1", Email: "user@example.com"},
		APIToken:  "api-token",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.SaveSession(context.Background(), session))

	svc, err := service.NewService(nil, repo, repository.NewMemorySnapshotStore(), config.Default(), zap.NewNop())
	require.NoError(t, err)

	token, err := svc.GenerateJWT(session.ID)
	require.NoError(t, err)
	return svc, token
}

func TestAuthMiddleware(t *testing.T) {
	svc, token := newAuthService(t)
	orphan, err := svc.GenerateJWT("missing-session")
	require.NoError(t, err)

	tests := []struct {
		name           string
		prepare        func(r *http.Request)
		expectedStatus int
	}{
		{
			name: "Cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No token",
			prepare:        func(*http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Invalid token",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Closed session",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+orphan)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.Session
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				session, ok := GetSession(r)
				assert.True(t, ok)
				got = session
			})

			req := httptest.NewRequest(http.MethodGet, "/api/urls", nil)
			tt.prepare(req)
			rr := httptest.NewRecorder()

			AuthMiddleware(svc, zap.NewNop())(handler).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "u1", got.User.ID)
				assert.Equal(t, "api-token", got.APIToken)
			}
		})
	}
}

func TestGetSession_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := GetSession(req)
	assert.False(t, ok)
}

func TestTokenFromRequest_CookiePreferred(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-cookie", TokenFromRequest(req))
}
