// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"runtime"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size" validate:"min=1"`

	// WorkerCount sets the number of ranking workers.
	WorkerCount int `koanf:"worker_count" validate:"min=1"`

	// DedupeSize sets how many submission keys are remembered.
	DedupeSize int `koanf:"dedupe_size" validate:"min=1"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit" validate:"min=1"`

	// CacheBackend selects the report cache: memory, redis or none.
	CacheBackend string `koanf:"cache_backend" validate:"oneof=memory redis none"`

	// CacheSize bounds the memory cache.
	CacheSize int `koanf:"cache_size" validate:"min=1"`

	// Redis settings, used when CacheBackend is redis.
	RedisAddr     string `koanf:"redis_addr" validate:"required_if=CacheBackend redis"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db" validate:"min=0,max=15"`

	// CacheTTLSeconds expires cached reports; zero keeps them until evicted.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds" validate:"min=0"`

	// CurrentYear pins the reference year for ongoing tenures; zero follows the clock.
	CurrentYear int `koanf:"current_year" validate:"min=0,max=2200"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           100_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          50_000,
		MaxLeaderboardLimit: 100,
		CacheBackend:        CacheMemory,
		CacheSize:           1024,
		RedisAddr:           "localhost:6379",
		CacheTTLSeconds:     3600,
	}
}
