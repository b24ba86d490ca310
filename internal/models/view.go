package models

import (
	"fmt"
	"strings"
	"time"
)

// SortKey определяет поле ссылки, по которому сортируется список
type SortKey string

const (
	SortByID          SortKey = "id"
	SortByOriginalURL SortKey = "originalUrl"
	SortByShortURL    SortKey = "shortUrl"
	SortByCreatedAt   SortKey = "createdAt"
	SortByExpiresAt   SortKey = "expiresAt"
	SortByClicks      SortKey = "clicks"
)

// SortDirection задаёт направление сортировки
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

var sortKeys = map[SortKey]struct{}{
	SortByID:          {},
	SortByOriginalURL: {},
	SortByShortURL:    {},
	SortByCreatedAt:   {},
	SortByExpiresAt:   {},
	SortByClicks:      {},
}

// ParseSortKey преобразует строку в SortKey
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(s)
	if _, ok := sortKeys[key]; !ok {
		return "", &ValidationError{Field: "sort", Reason: fmt.Sprintf("unknown key %q", s)}
	}
	return key, nil
}

// ParseSortDirection преобразует строку в SortDirection без учёта регистра
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(s)) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", &ValidationError{Field: "order", Reason: fmt.Sprintf("unknown direction %q", s)}
}

// SortConfig содержит активный ключ и направление сортировки
type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortConfig возвращает сортировку по умолчанию: сначала новые
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortByCreatedAt, Direction: Descending}
}

// DateRange ограничивает дату создания ссылки; каждая граница необязательна
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// FilterConfig содержит булевы фильтры и диапазон дат
type FilterConfig struct {
	ShowExpired bool      `json:"showExpired"`
	ShowPrivate bool      `json:"showPrivate"`
	DateRange   DateRange `json:"dateRange"`
}

// DefaultFilterConfig возвращает фильтры, которые ничего не скрывают
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{ShowExpired: true, ShowPrivate: true}
}
