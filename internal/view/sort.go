package view

import (
	"cmp"
	"slices"

	"github.com/tempizhere/shortdash/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortRecords сортирует срез на месте, сохраняя порядок равных элементов
func sortRecords(records []models.LinkRecord, sc models.SortConfig) {
	if len(records) < 2 {
		return
	}
	// Collator хранит внутренний буфер, поэтому создаётся на каждый вызов
	col := collate.New(language.Und)
	sign := 1
	if sc.Direction == models.Descending {
		sign = -1
	}
	slices.SortStableFunc(records, func(a, b models.LinkRecord) int {
		return sign * compareBy(sc.Key, a, b, col)
	})
}

// compareBy сравнивает две записи по ключу. Неизвестный ключ оставляет порядок без изменений.
func compareBy(key models.SortKey, a, b models.LinkRecord, col *collate.Collator) int {
	switch key {
	case models.SortByID:
		return col.CompareString(a.ID, b.ID)
	case models.SortByOriginalURL:
		return col.CompareString(a.OriginalURL, b.OriginalURL)
	case models.SortByShortURL:
		return col.CompareString(a.ShortURL, b.ShortURL)
	case models.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case models.SortByExpiresAt:
		return compareExpiry(a, b)
	case models.SortByClicks:
		return cmp.Compare(a.Clicks, b.Clicks)
	}
	return 0
}

// compareExpiry считает отсутствие даты истечения самым поздним значением
func compareExpiry(a, b models.LinkRecord) int {
	switch {
	case a.ExpiresAt == nil && b.ExpiresAt == nil:
		return 0
	case a.ExpiresAt == nil:
		return 1
	case b.ExpiresAt == nil:
		return -1
	}
	return a.ExpiresAt.Compare(*b.ExpiresAt)
}
