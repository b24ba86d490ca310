// Package client содержит HTTP-клиент удалённого API сервиса сокращения ссылок.
// Ответы API разбираются в типы пакета models; несоответствие схеме
// возвращается как *PayloadError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tempizhere/shortdash/internal/log"
	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
)

// maxBodySize ограничивает размер читаемого ответа
const maxBodySize = 10 << 20

// Client выполняет запросы к API от имени пользователя дашборда
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New создаёт клиент API с таймаутом на каждый запрос
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Login обменивает email и пароль на токен API
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/login", models.Credentials{Email: creds.Email, Password: creds.Password})
}

// Register создаёт аккаунт и возвращает токен API
func (c *Client) Register(ctx context.Context, creds models.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds models.Credentials) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path, "", creds)
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &PayloadError{Endpoint: path, Err: err}
	}
	if resp.Token == "" {
		return "", &PayloadError{Endpoint: path, Err: errMissingField("token")}
	}
	return resp.Token, nil
}

// Me возвращает пользователя, которому принадлежит токен
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	const path = "/auth/me"
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return models.User{}, err
	}
	var resp struct {
		User *struct {
			ID    flexibleID `json:"id"`
			Email string     `json:"email"`
			Name  string     `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.User{}, &PayloadError{Endpoint: path, Err: err}
	}
	if resp.User == nil || resp.User.ID == "" {
		return models.User{}, &PayloadError{Endpoint: path, Err: errMissingField("user.id")}
	}
	return models.User{ID: string(resp.User.ID), Email: resp.User.Email, Name: resp.User.Name}, nil
}

// ListLinks загружает все ссылки пользователя.
// Записи без обязательных полей пропускаются с предупреждением в логе.
func (c *Client) ListLinks(ctx context.Context, token string) ([]models.LinkRecord, error) {
	const path = "/urls"
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data *[]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &PayloadError{Endpoint: path, Err: err}
	}
	if resp.Data == nil {
		return nil, &PayloadError{Endpoint: path, Err: errMissingField("data")}
	}

	logger := log.FromContext(ctx, c.logger)
	links := make([]models.LinkRecord, 0, len(*resp.Data))
	for i, raw := range *resp.Data {
		var w linkWire
		if err := json.Unmarshal(raw, &w); err != nil {
			logger.Warn("Skipping malformed link record", zap.Int("index", i), zap.Error(err))
			continue
		}
		link, err := w.toRecord()
		if err != nil {
			logger.Warn("Skipping invalid link record", zap.Int("index", i), zap.String("id", string(w.ID)), zap.Error(err))
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

// CreateLink создаёт короткую ссылку и возвращает её
func (c *Client) CreateLink(ctx context.Context, token string, req models.CreateLinkRequest) (models.LinkRecord, error) {
	const path = "/urls"
	body, err := c.do(ctx, http.MethodPost, path, token, req)
	if err != nil {
		return models.LinkRecord{}, err
	}
	link, err := decodeLink(body)
	if err != nil {
		return models.LinkRecord{}, &PayloadError{Endpoint: path, Err: err}
	}
	return link, nil
}

// DashboardAnalytics возвращает сводную аналитику пользователя
func (c *Client) DashboardAnalytics(ctx context.Context, token string) (models.DashboardAnalytics, error) {
	const path = "/analytics/dashboard"
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return models.DashboardAnalytics{}, err
	}
	var resp struct {
		Data *models.DashboardAnalytics `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.DashboardAnalytics{}, &PayloadError{Endpoint: path, Err: err}
	}
	if resp.Data == nil {
		return models.DashboardAnalytics{}, &PayloadError{Endpoint: path, Err: errMissingField("data")}
	}
	return *resp.Data, nil
}

// LinkAnalytics возвращает разбивку переходов по одной ссылке
func (c *Client) LinkAnalytics(ctx context.Context, token, id string) (models.Analytics, error) {
	path := "/urls/" + url.PathEscape(id) + "/analytics"
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return models.Analytics{}, err
	}
	var analytics models.Analytics
	if err := json.Unmarshal(body, &analytics); err != nil {
		return models.Analytics{}, &PayloadError{Endpoint: path, Err: err}
	}
	return analytics, nil
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := log.RequestID(ctx); id != "" {
		req.Header.Set(log.RequestIDHeader, id)
	}
	logger := log.FromContext(ctx, c.logger)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("API request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage достаёт текст ошибки из тела ответа
func errorMessage(body []byte) string {
	var resp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err == nil {
		if resp.Message != "" {
			return resp.Message
		}
		if resp.Error != "" {
			return resp.Error
		}
	}
	return strings.TrimSpace(string(body))
}
