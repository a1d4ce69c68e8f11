// Package cache memoizes analysis reports keyed by profile fingerprint.
package cache

import (
	"context"

	"github.com/okian/podium/internal/domain/report"
)

// Cache stores reports by content key. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the cached report and true, or false on a miss.
	Get(ctx context.Context, key string) (report.Report, bool, error)
	Set(ctx context.Context, key string, r report.Report) error
	Len(ctx context.Context) int
	Close() error
}

// Noop never stores anything. It backs the "none" cache backend.
type Noop struct{}

// NewNoop returns a cache that always misses.
func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) (report.Report, bool, error) {
	return report.Report{}, false, nil
}

func (Noop) Set(context.Context, string, report.Report) error { return nil }

func (Noop) Len(context.Context) int { return 0 }

func (Noop) Close() error { return nil }
