package cache

import (
	"context"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/okian/podium/internal/domain/report"
)

// DefaultSize is the number of reports the memory cache keeps by default.
const DefaultSize = 1024

// Memory is a bounded in-process LRU of reports. Reports are copied on the
// way in and out, so callers own what they pass and receive.
type Memory struct {
	mu  sync.Mutex
	lru *lru.Cache
}

// NewMemory returns an LRU holding at most size reports. A non-positive size
// uses DefaultSize.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	return &Memory{lru: lru.New(size)}
}

func (m *Memory) Get(_ context.Context, key string) (report.Report, bool, error) {
	if key == "" {
		return report.Report{}, false, ErrKeyEmpty
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.lru.Get(key)
	if !ok {
		return report.Report{}, false, nil
	}
	return v.(report.Report).Clone(), true, nil
}

func (m *Memory) Set(_ context.Context, key string, r report.Report) error {
	if key == "" {
		return ErrKeyEmpty
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Add(key, r.Clone())
	return nil
}

func (m *Memory) Len(context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Clear()
	return nil
}
