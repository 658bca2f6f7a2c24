package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/pkg/config"
)

// HistoryKey is the Redis list holding run history, newest entry first
const HistoryKey = "signal-pulse:history"

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisHistory keeps run history in a capped Redis list
type RedisHistory struct {
	client redis.UniversalClient
	key    string
	limit  int
}

// NewRedisHistory creates a history capped at limit entries
func NewRedisHistory(client redis.UniversalClient, limit int) *RedisHistory {
	return &RedisHistory{client: client, key: HistoryKey, limit: limit}
}

// Append pushes an entry and trims the list in one transaction
func (rh *RedisHistory) Append(ctx context.Context, entry entities.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	_, err = rh.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, rh.key, payload)
		pipe.LTrim(ctx, rh.key, 0, int64(rh.limit-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first
func (rh *RedisHistory) Recent(ctx context.Context, n int) ([]entities.HistoryEntry, error) {
	if n <= 0 {
		return []entities.HistoryEntry{}, nil
	}

	values, err := rh.client.LRange(ctx, rh.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := make([]entities.HistoryEntry, 0, len(values))
	for _, v := range values {
		var entry entities.HistoryEntry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
