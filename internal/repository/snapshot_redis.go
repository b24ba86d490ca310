package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
)

// RedisSnapshotStore хранит коллекции ссылок в Redis в виде JSON с TTL
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSnapshotStore создаёт хранилище поверх готового клиента Redis
func NewRedisSnapshotStore(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// maskedPassword заменяет пароль ссылки, восстановленной из Redis
const maskedPassword = "********"

// snapshotRecord хранит ссылку без пароля; Protected сохраняет признак защиты паролем
type snapshotRecord struct {
	models.LinkRecord
	Protected bool `json:"protected,omitempty"`
}

func encodeSnapshot(links []models.LinkRecord) ([]byte, error) {
	records := make([]snapshotRecord, len(links))
	for i, l := range links {
		records[i] = snapshotRecord{LinkRecord: l, Protected: l.Password != ""}
		records[i].Password = ""
	}
	return json.Marshal(records)
}

func decodeSnapshot(data []byte) ([]models.LinkRecord, error) {
	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	links := make([]models.LinkRecord, len(records))
	for i, r := range records {
		links[i] = r.LinkRecord
		links[i].Password = ""
		if r.Protected {
			links[i].Password = maskedPassword
		}
	}
	return links, nil
}

func (s *RedisSnapshotStore) key(userID string) string {
	return s.prefix + "snapshot:" + userID
}

// Put сохраняет коллекцию пользователя
func (s *RedisSnapshotStore) Put(ctx context.Context, userID string, links []models.LinkRecord) error {
	if userID == "" {
		return ErrEmptyID
	}
	data, err := encodeSnapshot(links)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to store snapshot in Redis", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get возвращает коллекцию пользователя, если она ещё не истекла
func (s *RedisSnapshotStore) Get(ctx context.Context, userID string) ([]models.LinkRecord, bool, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read snapshot from Redis", zap.String("user_id", userID), zap.Error(err))
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	links, err := decodeSnapshot(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return links, true, nil
}
