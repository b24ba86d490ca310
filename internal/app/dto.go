package app

import (
	"time"

	"github.com/tempizhere/shortdash/internal/models"
)

// LinkResponse описывает ссылку в ответе API дашборда; пароль наружу не передаётся
type LinkResponse struct {
	ID          string     `json:"id"`
	OriginalURL string     `json:"originalUrl"`
	ShortURL    string     `json:"shortUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	IsPrivate   bool       `json:"isPrivate"`
	HasPassword bool       `json:"hasPassword"`
	IsExpired   bool       `json:"isExpired"`
	Tags        []string   `json:"tags"`
	Clicks      int64      `json:"clicks"`
}

// ListResponse содержит страницу списка ссылок
type ListResponse struct {
	Data  []LinkResponse `json:"data"`
	Count int            `json:"count"`
	Total int            `json:"total"`
	Stale bool           `json:"stale"`
}

// SettingsResponse содержит настройки оформления и готовые CSS-переменные
type SettingsResponse struct {
	Settings     models.ThemeSettings `json:"settings"`
	CSSVariables map[string]string    `json:"cssVariables"`
}

// AuthResponse возвращается после входа, регистрации и в /api/me
type AuthResponse struct {
	User     models.User      `json:"user"`
	Token    string           `json:"token,omitempty"`
	Settings SettingsResponse `json:"settings"`
}

// InternalStatsResponse содержит служебную статистику
type InternalStatsResponse struct {
	Sessions int `json:"sessions"`
}

// errorResponse описывает ошибку в JSON
type errorResponse struct {
	Error string `json:"error"`
}

func newLinkResponse(l models.LinkRecord, now time.Time) LinkResponse {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	return LinkResponse{
		ID:          l.ID,
		OriginalURL: l.OriginalURL,
		ShortURL:    l.ShortURL,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
		IsPrivate:   l.IsPrivate,
		HasPassword: l.Password != "",
		IsExpired:   l.IsExpired(now),
		Tags:        tags,
		Clicks:      l.Clicks,
	}
}

func newLinkResponses(links []models.LinkRecord, now time.Time) []LinkResponse {
	resp := make([]LinkResponse, len(links))
	for i, l := range links {
		resp[i] = newLinkResponse(l, now)
	}
	return resp
}

func newSettingsResponse(s models.ThemeSettings) SettingsResponse {
	return SettingsResponse{Settings: s, CSSVariables: s.CSSVariables()}
}
