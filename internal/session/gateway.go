// Package session runs the results pipeline of a play session and persists
// its state through a key-value gateway.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Keys used by the pipeline.
const (
	KeyStats        = "stats"
	KeyAchievements = "achievements"
	KeyPerformance  = "performance"
)

// ErrNotFound is returned by a Gateway for a missing key.
var ErrNotFound = errors.New("key not found")

// Gateway stores raw JSON values by key.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Get decodes the value stored under key. It returns fallback when the key is
// missing, the value cannot be decoded or the gateway fails.
func Get[T any](ctx context.Context, gw Gateway, key string, fallback T, logger *zap.Logger) T {
	raw, err := gw.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("failed to load value", zap.String("key", key), zap.Error(err))
		}
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("discarding unreadable value", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return v
}

// Set encodes value under key. Failures are logged and dropped.
func Set[T any](ctx context.Context, gw Gateway, key string, value T, logger *zap.Logger) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := gw.Save(ctx, key, raw); err != nil {
		logger.Warn("failed to save value", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes key. Failures are logged and dropped.
func Remove(ctx context.Context, gw Gateway, key string, logger *zap.Logger) {
	if err := gw.Remove(ctx, key); err != nil {
		logger.Warn("failed to remove value", zap.String("key", key), zap.Error(err))
	}
}
