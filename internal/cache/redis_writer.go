package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// TTL constants
const (
	ParsedGameTTL = 24 * time.Hour
	DateIndexTTL  = 48 * time.Hour
)

// RedisWriter handles writing parsed games to Redis
type RedisWriter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisWriter creates a new Redis writer. A zero ttl falls back to
// ParsedGameTTL.
func NewRedisWriter(client *redis.Client, ttl time.Duration) *RedisWriter {
	if ttl <= 0 {
		ttl = ParsedGameTTL
	}
	return &RedisWriter{
		client: client,
		ttl:    ttl,
	}
}

// WriteGame stores a parsed game keyed by its game pk and adds it to
// the per-date index
func (w *RedisWriter) WriteGame(ctx context.Context, game *models.Game) error {
	key := fmt.Sprintf("transcript:game:%d", game.Context.GamePK)

	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("marshaling game: %w", err)
	}

	indexKey := fmt.Sprintf("transcript:games:%s", game.Context.Date)

	pipe := w.client.Pipeline()
	pipe.Set(ctx, key, data, w.ttl)
	pipe.RPush(ctx, indexKey, game.Context.GamePK)
	pipe.Expire(ctx, indexKey, DateIndexTTL)

	_, err = pipe.Exec(ctx)
	return err
}

// ReadGame retrieves a parsed game by game pk
func (w *RedisWriter) ReadGame(ctx context.Context, gamePK int) (*models.Game, error) {
	key := fmt.Sprintf("transcript:game:%d", gamePK)

	data, err := w.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var game models.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("unmarshaling game: %w", err)
	}

	return &game, nil
}

// ReadGamesForDate retrieves the game pks parsed for a calendar date
func (w *RedisWriter) ReadGamesForDate(ctx context.Context, date string) ([]string, error) {
	indexKey := fmt.Sprintf("transcript:games:%s", date)

	return w.client.LRange(ctx, indexKey, 0, -1).Result()
}
