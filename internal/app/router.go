package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/shortdash/internal/middleware"
	"go.uber.org/zap"
)

// NewRouter регистрирует маршруты дашборда
func NewRouter(a *App, trustedSubnet string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.GzipMiddleware)

	r.Get("/ping", a.HandlePing)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", a.HandleLogin)
		r.Post("/auth/register", a.HandleRegister)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(a.svc, logger))

			r.Post("/auth/logout", a.HandleLogout)
			r.Get("/me", a.HandleMe)
			r.Get("/urls", a.HandleListURLs)
			r.Post("/urls", a.HandleCreateURL)
			r.Get("/urls/export", a.HandleExport)
			r.Get("/urls/{id}/analytics", a.HandleLinkAnalytics)
			r.Get("/tags", a.HandleTags)
			r.Get("/stats", a.HandleStats)
			r.Get("/analytics", a.HandleAnalytics)
			r.Get("/settings", a.HandleGetSettings)
			r.Put("/settings", a.HandleUpdateSettings)
		})

		r.Route("/internal", func(r chi.Router) {
			r.Use(middleware.TrustedSubnetMiddleware(trustedSubnet, logger))
			r.Get("/stats", a.HandleInternalStats)
		})
	})

	return r
}
