// Package view реализует преобразование списка ссылок для отображения в дашборде:
// поиск, фильтрацию по тегам, сроку действия, видимости и дате создания,
// устойчивую сортировку и выгрузку результата в CSV.
//
// Все функции пакета чистые: они не читают часы, окружение и не меняют входные данные.
// Текущее время передаётся явно через Query.Now.
package view

import (
	"strings"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
)

// Query содержит параметры представления, выбранные пользователем
type Query struct {
	Search string
	Tags   []string
	Filter models.FilterConfig
	Sort   models.SortConfig
	Now    time.Time
}

// DefaultQuery возвращает параметры, с которыми открывается список
func DefaultQuery() Query {
	return Query{
		Filter: models.DefaultFilterConfig(),
		Sort:   models.DefaultSortConfig(),
	}
}

// ComputeView возвращает отфильтрованные и отсортированные ссылки.
// Входной срез не изменяется; результат всегда новый срез.
func ComputeView(records []models.LinkRecord, q Query) []models.LinkRecord {
	search := strings.ToLower(q.Search)

	result := make([]models.LinkRecord, 0, len(records))
	for _, r := range records {
		if matches(r, search, q) {
			result = append(result, r)
		}
	}

	sortRecords(result, q.Sort)
	return result
}

// matches проверяет запись всеми активными фильтрами
func matches(r models.LinkRecord, search string, q Query) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(r.OriginalURL), search) &&
		!strings.Contains(strings.ToLower(r.ShortURL), search) {
		return false
	}
	if len(q.Tags) > 0 && !r.HasTags(q.Tags) {
		return false
	}
	if !q.Filter.ShowExpired && r.IsExpired(q.Now) {
		return false
	}
	if !q.Filter.ShowPrivate && r.IsPrivate {
		return false
	}
	if start := q.Filter.DateRange.Start; start != nil && r.CreatedAt.Before(*start) {
		return false
	}
	if end := q.Filter.DateRange.End; end != nil && r.CreatedAt.After(*end) {
		return false
	}
	return true
}

// NextSort возвращает сортировку после выбора колонки key:
// повторный выбор активной колонки по возрастанию переключает на убывание,
// любой другой выбор включает сортировку по возрастанию.
func NextSort(current models.SortConfig, key models.SortKey) models.SortConfig {
	if current.Key == key && current.Direction == models.Ascending {
		return models.SortConfig{Key: key, Direction: models.Descending}
	}
	return models.SortConfig{Key: key, Direction: models.Ascending}
}

// AllTags возвращает все теги коллекции без повторов в порядке первого появления
func AllTags(records []models.LinkRecord) []string {
	counts := TagCounts(records)
	tags := make([]string, len(counts))
	for i, c := range counts {
		tags[i] = c.Name
	}
	return tags
}

// TagCounts возвращает теги в порядке первого появления с числом ссылок для каждого.
// Повтор тега в одной ссылке учитывается один раз.
func TagCounts(records []models.LinkRecord) []models.TagCount {
	index := make(map[string]int)
	counts := make([]models.TagCount, 0)
	for _, r := range records {
		counted := make(map[string]struct{}, len(r.Tags))
		for _, tag := range r.Tags {
			if _, ok := counted[tag]; ok {
				continue
			}
			counted[tag] = struct{}{}
			i, ok := index[tag]
			if !ok {
				i = len(counts)
				index[tag] = i
				counts = append(counts, models.TagCount{Name: tag})
			}
			counts[i].URLCount++
		}
	}
	return counts
}

// Stats считает сводные показатели по коллекции
func Stats(records []models.LinkRecord, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{TotalURLs: len(records)}
	for _, r := range records {
		stats.TotalClicks += r.Clicks
		if !r.IsExpired(now) {
			stats.ActiveLinks++
		}
	}
	return stats
}
