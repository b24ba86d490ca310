package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
)

// flexibleID принимает идентификатор как строку или как число
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = flexibleID(n.String())
	return nil
}

// linkWire описывает ссылку в том виде, в котором её присылает API.
// Старые поля shortCode и clickCount используются, только если канонических нет.
type linkWire struct {
	ID          flexibleID `json:"id"`
	OriginalURL string     `json:"originalUrl"`
	ShortURL    string     `json:"shortUrl"`
	ShortCode   string     `json:"shortCode"`
	CreatedAt   string     `json:"createdAt"`
	ExpiresAt   *string    `json:"expiresAt"`
	IsPrivate   bool       `json:"isPrivate"`
	Password    string     `json:"password"`
	Tags        []string   `json:"tags"`
	Clicks      *int64     `json:"clicks"`
	ClickCount  *int64     `json:"clickCount"`
}

// toRecord переводит ответ API в LinkRecord и проверяет обязательные поля
func (w linkWire) toRecord() (models.LinkRecord, error) {
	r := models.LinkRecord{
		ID:          string(w.ID),
		OriginalURL: w.OriginalURL,
		ShortURL:    w.ShortURL,
		IsPrivate:   w.IsPrivate,
		Password:    w.Password,
		Tags:        w.Tags,
	}
	if r.ShortURL == "" {
		r.ShortURL = w.ShortCode
	}
	switch {
	case w.Clicks != nil:
		r.Clicks = *w.Clicks
	case w.ClickCount != nil:
		r.Clicks = *w.ClickCount
	}

	if w.CreatedAt != "" {
		created, err := parseTime(w.CreatedAt)
		if err != nil {
			return models.LinkRecord{}, &models.ValidationError{Field: "createdAt", Reason: err.Error()}
		}
		r.CreatedAt = created
	}
	if w.ExpiresAt != nil && *w.ExpiresAt != "" {
		expires, err := parseTime(*w.ExpiresAt)
		if err != nil {
			return models.LinkRecord{}, &models.ValidationError{Field: "expiresAt", Reason: err.Error()}
		}
		r.ExpiresAt = &expires
	}

	if err := r.Validate(); err != nil {
		return models.LinkRecord{}, err
	}
	return r, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime разбирает дату в одном из форматов, которые встречаются в ответах API
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

// decodeLink разбирает одну ссылку, которая может быть обёрнута в {"data": ...}
func decodeLink(body []byte) (models.LinkRecord, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.LinkRecord{}, err
	}
	raw := body
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		raw = envelope.Data
	}

	var w linkWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.LinkRecord{}, err
	}
	return w.toRecord()
}

// errMissingField возвращает ошибку об отсутствующем поле ответа
func errMissingField(name string) error {
	return errors.New("missing field " + name)
}
