// Package proto содержит типы сообщений и описание gRPC сервиса дашборда.
// Сообщения передаются в JSON через кодек JSONCodec.
package proto

// ListLinksRequest содержит параметры представления списка ссылок
type ListLinksRequest struct {
	Search      string   `json:"search,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ShowExpired *bool    `json:"show_expired,omitempty"`
	ShowPrivate *bool    `json:"show_private,omitempty"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Sort        string   `json:"sort,omitempty"`
	Order       string   `json:"order,omitempty"`
}

// Link представляет ссылку в ответе; время в формате RFC3339
type Link struct {
	ID          string   `json:"id"`
	OriginalURL string   `json:"original_url"`
	ShortURL    string   `json:"short_url"`
	CreatedAt   string   `json:"created_at"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	IsPrivate   bool     `json:"is_private"`
	HasPassword bool     `json:"has_password"`
	IsExpired   bool     `json:"is_expired"`
	Tags        []string `json:"tags"`
	Clicks      int64    `json:"clicks"`
}

// ListLinksResponse содержит отфильтрованные и отсортированные ссылки
type ListLinksResponse struct {
	Links []*Link `json:"links"`
	Total int32   `json:"total"`
	Stale bool    `json:"stale"`
}

// ExportLinksResponse содержит CSV-выгрузку и имя файла
type ExportLinksResponse struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// GetStatsRequest представляет запрос служебной статистики
type GetStatsRequest struct{}

// GetStatsResponse содержит число открытых сессий
type GetStatsResponse struct {
	Sessions int32 `json:"sessions"`
}

// ListTagsRequest представляет запрос списка тегов
type ListTagsRequest struct{}

// TagCount содержит тег и число помеченных им ссылок
type TagCount struct {
	Name     string `json:"name"`
	URLCount int32  `json:"url_count"`
}

// ListTagsResponse содержит теги в порядке первого появления
type ListTagsResponse struct {
	Tags []*TagCount `json:"tags"`
}

// GetSettingsRequest представляет запрос настроек оформления
type GetSettingsRequest struct{}

// GetSettingsResponse содержит настройки оформления и CSS-переменные
type GetSettingsResponse struct {
	Theme          string            `json:"theme"`
	ColorScheme    string            `json:"color_scheme"`
	FontSize       string            `json:"font_size"`
	ReducedMotion  bool              `json:"reduced_motion"`
	RoundedCorners bool              `json:"rounded_corners"`
	CSSVariables   map[string]string `json:"css_variables"`
}
