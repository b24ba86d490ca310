package app

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
	"github.com/tempizhere/shortdash/internal/view"
)

const dateLayout = "2006-01-02"

// ParseViewQuery разбирает параметры списка ссылок:
// q, tag (повторяемый или через запятую), showExpired, showPrivate,
// start, end (YYYY-MM-DD или RFC3339), sort, order.
// Дата без времени означает полночь UTC.
func ParseViewQuery(values url.Values) (view.Query, error) {
	q := view.DefaultQuery()
	q.Search = strings.TrimSpace(values.Get("q"))
	q.Tags = parseTags(values["tag"])

	var err error
	if q.Filter.ShowExpired, err = parseBool(values, "showExpired", q.Filter.ShowExpired); err != nil {
		return view.Query{}, err
	}
	if q.Filter.ShowPrivate, err = parseBool(values, "showPrivate", q.Filter.ShowPrivate); err != nil {
		return view.Query{}, err
	}
	if q.Filter.DateRange.Start, err = parseDate(values, "start"); err != nil {
		return view.Query{}, err
	}
	if q.Filter.DateRange.End, err = parseDate(values, "end"); err != nil {
		return view.Query{}, err
	}

	if s := values.Get("sort"); s != "" {
		if q.Sort.Key, err = models.ParseSortKey(s); err != nil {
			return view.Query{}, err
		}
		q.Sort.Direction = models.Ascending
	}
	if o := values.Get("order"); o != "" {
		if q.Sort.Direction, err = models.ParseSortDirection(o); err != nil {
			return view.Query{}, err
		}
	}
	return q, nil
}

func parseTags(raw []string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseBool(values url.Values, name string, def bool) (bool, error) {
	v := values.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &models.ValidationError{Field: name, Reason: "must be true or false"}
	}
	return b, nil
}

func parseDate(values url.Values, name string) (*time.Time, error) {
	v := values.Get(name)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, &models.ValidationError{Field: name, Reason: "must be YYYY-MM-DD or RFC3339"}
	}
	return &t, nil
}
