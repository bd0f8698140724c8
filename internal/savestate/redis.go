package savestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tradenly/poopee-crush/internal/session"
)

// RedisConfig selects the server and the lifetime of a parked game.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// DefaultRedisConfig returns a local server with week-long saves.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:   "localhost:6379",
		Prefix: "crush:save:",
		TTL:    7 * 24 * time.Hour,
	}
}

// Redis stores each save as a JSON string value with a TTL, so abandoned
// games expire on their own.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("savestate: cannot reach redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// Save stores g under key and refreshes its TTL.
func (r *Redis) Save(ctx context.Context, key string, g session.SavedGame) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("savestate: cannot encode save: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("savestate: redis set: %w", err)
	}
	return nil
}

// Load returns the save under key, or nil when the key is absent or expired.
func (r *Redis) Load(ctx context.Context, key string) (*session.SavedGame, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("savestate: redis get: %w", err)
	}
	var g session.SavedGame
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("savestate: cannot decode save: %w", err)
	}
	return &g, nil
}

// Clear deletes the key.
func (r *Redis) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("savestate: redis del: %w", err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
