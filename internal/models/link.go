// Package models содержит типы данных дашборда: ссылки, параметры представления списка,
// настройки темы, сессии и аналитику.
package models

import (
	"fmt"
	"time"
)

// ValidationError возвращается, когда запись не проходит проверку обязательных полей
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LinkRecord представляет одну сокращённую ссылку с метаданными и счётчиком переходов
type LinkRecord struct {
	ID          string     `json:"id"`
	OriginalURL string     `json:"originalUrl"`
	ShortURL    string     `json:"shortUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	IsPrivate   bool       `json:"isPrivate"`
	Password    string     `json:"password,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Clicks      int64      `json:"clicks"`
}

// Validate проверяет наличие обязательных полей
func (l LinkRecord) Validate() error {
	switch {
	case l.ID == "":
		return &ValidationError{Field: "id", Reason: "required"}
	case l.OriginalURL == "":
		return &ValidationError{Field: "originalUrl", Reason: "required"}
	case l.ShortURL == "":
		return &ValidationError{Field: "shortUrl", Reason: "required"}
	case l.CreatedAt.IsZero():
		return &ValidationError{Field: "createdAt", Reason: "required"}
	case l.Clicks < 0:
		return &ValidationError{Field: "clicks", Reason: "must be non-negative"}
	}
	return nil
}

// IsExpired сообщает, истёк ли срок действия ссылки к моменту now.
// Ссылка без даты истечения не истекает никогда.
func (l LinkRecord) IsExpired(now time.Time) bool {
	if l.ExpiresAt == nil || now.IsZero() {
		return false
	}
	return l.ExpiresAt.Before(now)
}

// HasTags сообщает, содержит ли ссылка все перечисленные теги
func (l LinkRecord) HasTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, tag := range l.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CreateLinkRequest описывает запрос на создание короткой ссылки
type CreateLinkRequest struct {
	OriginalURL string     `json:"originalUrl"`
	CustomCode  string     `json:"customCode,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	IsPrivate   bool       `json:"isPrivate"`
	Password    string     `json:"password,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}
