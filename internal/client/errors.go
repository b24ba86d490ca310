package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidPayload означает, что ответ API не соответствует ожидаемой схеме
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrUnauthorized означает, что токен API отсутствует или отозван
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound означает, что запрошенный объект не найден
	ErrNotFound = errors.New("not found")
)

// APIError возвращается, когда API ответило статусом вне диапазона 2xx
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// Is позволяет сравнивать APIError с ErrUnauthorized и ErrNotFound через errors.Is
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// PayloadError возвращается, когда тело ответа не удалось разобрать
type PayloadError struct {
	Endpoint string
	Err      error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Endpoint, ErrInvalidPayload, e.Err)
}

// Unwrap возвращает ErrInvalidPayload и исходную ошибку
func (e *PayloadError) Unwrap() []error {
	return []error{ErrInvalidPayload, e.Err}
}
