package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/podium/internal/domain/report"
)

// KeyPrefix namespaces report keys in Redis.
const KeyPrefix = "podium:report:"

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TTL         time.Duration // zero keeps entries until evicted by Redis
	DialTimeout time.Duration
}

// DefaultRedisConfig returns settings for a local Redis.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:        "localhost:6379",
		TTL:         10 * time.Minute,
		DialTimeout: 5 * time.Second,
	}
}

// Redis stores reports as JSON strings.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultRedisConfig().DialTimeout
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	ttl := cfg.TTL
	if ttl < 0 {
		ttl = 0
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (c *Redis) Get(ctx context.Context, key string) (report.Report, bool, error) {
	if key == "" {
		return report.Report{}, false, ErrKeyEmpty
	}
	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return report.Report{}, false, nil
		}
		return report.Report{}, false, err
	}

	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return report.Report{}, false, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return r, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, r report.Report) error {
	if key == "" {
		return ErrKeyEmpty
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return c.client.Set(ctx, KeyPrefix+key, data, c.ttl).Err()
}

// Len counts report keys with SCAN. It returns 0 if Redis is unreachable.
func (c *Redis) Len(ctx context.Context) int {
	n := 0
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if iter.Err() != nil {
		return 0
	}
	return n
}

func (c *Redis) Close() error {
	return c.client.Close()
}
