// Package worker ranks queued profile submissions on the XP leaderboard.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/podium/internal/adapters/mq/queue"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/report"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	defaultShutdownTimeout  = 30 * time.Second
)

// ErrNilProfile is returned for a submission without a profile.
var ErrNilProfile = errors.New("submission has no profile")

// Submission is what workers read off the queue.
type Submission = queue.Submission

// Analyzer computes the report for a profile.
type Analyzer interface {
	Analyze(ctx context.Context, p *model.Profile) (report.Report, error)
}

// Updater stores a profile's standing.
type Updater interface {
	Upsert(ctx context.Context, s repository.Standing) (bool, error)
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Submission
}

// InMemoryWorker analyses submissions and writes standings.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	updater  Updater
	name     string
	pool     *Pool

	done   chan struct{}
	logger logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, analyzer Analyzer, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		analyzer: analyzer,
		updater:  updater,
		name:     "worker",
		done:     make(chan struct{}),
		logger:   logger.Get(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes submissions until the queue is closed and drained or ctx
// is canceled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for sub := range w.queue.Dequeue(ctx) {
		w.setBusy(true)
		if err := w.Process(ctx, sub); err != nil {
			w.logger.Error(ctx, "error processing submission",
				logger.String("submission_id", sub.ID),
				logger.Error(err),
			)
		}
		w.setBusy(false)
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) setBusy(busy bool) {
	if w.pool != nil {
		w.pool.setBusy(busy)
	}
}

// Process analyses one submission and upserts its standing.
func (w *InMemoryWorker) Process(ctx context.Context, sub Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if sub.Profile == nil {
		w.fail("nil_profile")
		return fmt.Errorf("submission %s: %w", sub.ID, ErrNilProfile)
	}

	r, err := w.analyzer.Analyze(ctx, sub.Profile)
	if err != nil {
		w.fail("analysis_error")
		return fmt.Errorf("analyze profile %s: %w", sub.Profile.ID, err)
	}

	changed, err := w.updater.Upsert(ctx, repository.Standing{
		ProfileID:      sub.Profile.ID,
		XP:             r.Progression.XP,
		Level:          r.Progression.Level,
		Title:          r.Progression.Title,
		UnlockedBadges: r.UnlockedBadges,
		Fingerprint:    sub.Fingerprint,
		UpdatedAt:      time.Now().UTC(),
	})
	if err != nil {
		w.fail("leaderboard_error")
		return fmt.Errorf("leaderboard update for %s: %w", sub.Profile.ID, err)
	}

	metrics.RecordSubmissionProcessed()
	if w.pool != nil {
		w.pool.processed.Add(1)
	}
	w.logger.Debug(ctx, "submission ranked",
		logger.String("profile_id", sub.Profile.ID),
		logger.Int("xp", r.Progression.XP),
		logger.Bool("changed", changed),
	)
	return nil
}

func (w *InMemoryWorker) fail(kind string) {
	metrics.RecordWorkerError()
	metrics.RecordErrorByComponent("worker", kind)
	metrics.RecordErrorByType(kind, "high")
}

// Pool manages multiple workers.
type Pool struct {
	workers         []*InMemoryWorker
	queue           Queue
	shutdownTimeout time.Duration
	logger          logger.Logger

	busy      atomic.Int64
	processed atomic.Int64
	started   atomic.Bool
	startOnce sync.Once
}

// NewPool creates a worker pool. A non-positive workerCount uses twice the
// CPU count.
func NewPool(workerCount int, q Queue, analyzer Analyzer, updater Updater, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers:         make([]*InMemoryWorker, workerCount),
		queue:           q,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("worker-pool")

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(q, analyzer, updater,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
		)
		w.pool = p
		p.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(workerCount)
	return p
}

// Start starts all workers in the pool. Calling it twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.started.Store(true)
		for _, w := range p.workers {
			go w.Run(ctx)
		}
		p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
	})
}

func (p *Pool) setBusy(busy bool) {
	var n int64
	if busy {
		n = p.busy.Add(1)
	} else {
		n = p.busy.Add(-1)
	}
	metrics.UpdateWorkerActiveCount(int(n))
	metrics.UpdateWorkerIdleCount(len(p.workers) - int(n))
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Busy returns the number of workers currently processing.
func (p *Pool) Busy() int {
	return int(p.busy.Load())
}

// Processed returns how many submissions were ranked.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// Shutdown closes the queue, lets workers drain it and waits up to the
// shutdown timeout or ctx, whichever ends first.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	if !p.started.Load() {
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.shutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-waitCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("worker pool shutdown: %w", waitCtx.Err())
		}
	}
	return nil
}
