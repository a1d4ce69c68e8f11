package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Settings selects and sizes a cache backend.
type Settings struct {
	Backend string
	Size    int
	Redis   RedisConfig
}

// New builds the cache named by s.Backend. An empty name means memory.
func New(ctx context.Context, s Settings) (Cache, error) {
	switch s.Backend {
	case "", BackendMemory:
		return NewMemory(s.Size), nil
	case BackendRedis:
		r, err := NewRedis(ctx, s.Redis)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendNone:
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
	}
}

// TTL converts a seconds value from configuration.
func TTL(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
