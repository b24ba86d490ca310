package models

// NamedCount используется для браузеров и источников переходов
type NamedCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DeviceCount содержит число переходов с устройства данного типа
type DeviceCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// LocationCount содержит число переходов из страны
type LocationCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// DailyCount содержит число переходов за день
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Analytics содержит разбивку переходов по одной ссылке
type Analytics struct {
	Browsers  []NamedCount    `json:"browsers"`
	Devices   []DeviceCount   `json:"devices"`
	Locations []LocationCount `json:"locations"`
}

// TopLink описывает ссылку из рейтинга самых посещаемых
type TopLink struct {
	ID          string `json:"id"`
	OriginalURL string `json:"originalUrl"`
	ShortURL    string `json:"shortUrl"`
	Title       string `json:"title,omitempty"`
	Clicks      int64  `json:"clicks"`
}

// DashboardAnalytics содержит сводную аналитику, рассчитанную удалённым API
type DashboardAnalytics struct {
	ClicksByDay []DailyCount `json:"clicksByDay"`
	Referrers   []NamedCount `json:"referrers"`
	TopURLs     []TopLink    `json:"topUrls"`
	TotalURLs   int64        `json:"totalUrls"`
	TotalClicks int64        `json:"totalClicks"`
}

// DashboardStats содержит счётчики, которые дашборд считает по загруженным ссылкам
type DashboardStats struct {
	TotalURLs   int   `json:"totalUrls"`
	TotalClicks int64 `json:"totalClicks"`
	ActiveLinks int   `json:"activeLinks"`
}

// TagCount содержит тег и число ссылок, помеченных им
type TagCount struct {
	Name     string `json:"name"`
	URLCount int    `json:"urlCount"`
}
