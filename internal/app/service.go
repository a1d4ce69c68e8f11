// Package service wires the analytics engines to the report cache, the
// submission queue and the XP leaderboard. It implements the dependencies
// required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/cache"
	"github.com/okian/podium/internal/adapters/mq/queue"
	"github.com/okian/podium/internal/adapters/mq/worker"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/fingerprint"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/rarity"
	"github.com/okian/podium/internal/domain/report"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Analysis sources used for metrics.
const (
	SourceSync  = "sync"
	SourceAsync = "async"
)

// Submission statuses.
const (
	StatusAccepted  = "accepted"
	StatusDuplicate = "duplicate"
)

const (
	defaultQueueSize             = 100000
	defaultSystemMetricsInterval = 10 * time.Second
)

// SubmitResult describes what happened to a submitted profile.
type SubmitResult struct {
	Status      string `json:"status"`
	ProfileID   string `json:"profile_id"`
	Fingerprint string `json:"fingerprint"`
}

// asyncAnalyzer adapts the service to worker.Analyzer so queued analyses are
// counted separately from synchronous ones.
type asyncAnalyzer struct {
	svc *Service
}

func (a asyncAnalyzer) Analyze(ctx context.Context, p *model.Profile) (report.Report, error) {
	return a.svc.analyze(ctx, p, SourceAsync)
}

// Service implements the API dependencies for the analytics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	cache       cache.Cache
	ownsCache   bool
	leaderboard *repository.TreapStore
	deduper     dedupe.Deduper
	queue       *queue.InMemoryQueue
	pool        *worker.Pool

	// Configuration
	workerCount           int
	queueSize             int
	dedupeSize            int
	currentYear           int
	systemMetricsInterval time.Duration

	// State
	started bool
	cancel  context.CancelFunc
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a new Service. Analyze and Card work right away; queue and
// leaderboard operations need Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:           runtime.NumCPU() * 2,
		queueSize:             defaultQueueSize,
		dedupeSize:            dedupe.DefaultMaxSize,
		systemMetricsInterval: defaultSystemMetricsInterval,
		logger:                logger.Get(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		s.cache = cache.NewMemory(cache.DefaultSize)
		s.ownsCache = true
	}
	s.logger = s.logger.Named("service")
	return s
}

// Start initializes the queue, the leaderboard and the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting analytics service...")

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.stopCh = make(chan struct{})

	s.leaderboard = repository.NewTreapStore(runCtx)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, asyncAnalyzer{svc: s}, s.leaderboard,
		worker.WithPoolLogger(s.logger),
	)
	s.pool.Start(runCtx)
	s.startSystemMetrics()

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop drains the queue and shuts the background components down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping analytics service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	close(s.stopCh)
	s.wg.Wait()
	s.cancel()
	_ = s.leaderboard.Close()

	if s.ownsCache {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn(ctx, "closing report cache", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "analytics service stopped")
}

// Analyze returns the full report for p, served from the cache when the same
// snapshot was analysed before.
func (s *Service) Analyze(ctx context.Context, p *model.Profile) (report.Report, error) {
	return s.analyze(ctx, p, SourceSync)
}

func (s *Service) analyze(ctx context.Context, p *model.Profile, source string) (report.Report, error) {
	if p == nil || p.ID == "" {
		return report.Report{}, ErrInvalidProfile
	}

	fp, err := fingerprint.Of(p)
	if err != nil {
		return report.Report{}, fmt.Errorf("fingerprint profile %s: %w", p.ID, err)
	}
	year := s.year()
	key := fingerprint.Key(p.ID, fp) + ":" + strconv.Itoa(year)

	cached, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheError()
		s.logger.Warn(ctx, "report cache read failed",
			logger.String("profile_id", p.ID),
			logger.Error(err),
		)
	case ok:
		metrics.RecordCacheHit()
		return cached, nil
	default:
		metrics.RecordCacheMiss()
	}

	start := time.Now()
	r := report.Build(p, report.WithCurrentYear(year))
	metrics.RecordAnalysis(source, float64(time.Since(start).Microseconds())/1000)
	recordReport(r)

	if err := s.cache.Set(ctx, key, r); err != nil {
		metrics.RecordCacheError()
		s.logger.Warn(ctx, "report cache write failed",
			logger.String("profile_id", p.ID),
			logger.Error(err),
		)
	}
	return r, nil
}

func recordReport(r report.Report) {
	for _, b := range r.Badges {
		if b.Unlocked {
			metrics.RecordBadgeUnlock(b.ID)
		}
	}
	for _, c := range r.Cards {
		metrics.RecordCard(string(c.Rarity))
	}
	metrics.RecordProfileXP(r.Progression.XP)
}

// Card returns the rarity card of one achievement of p.
func (s *Service) Card(ctx context.Context, p *model.Profile, achievementID string) (rarity.Card, error) {
	r, err := s.Analyze(ctx, p)
	if err != nil {
		return rarity.Card{}, err
	}
	c, ok := r.Card(achievementID)
	if !ok {
		return rarity.Card{}, fmt.Errorf("%w: %s", ErrAchievementNotFound, achievementID)
	}
	return c, nil
}

// Submit queues p for asynchronous ranking. Re-submitting an unchanged
// snapshot is reported as a duplicate and not queued again.
func (s *Service) Submit(ctx context.Context, p *model.Profile) (SubmitResult, error) {
	if p == nil || p.ID == "" {
		return SubmitResult{}, ErrInvalidProfile
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return SubmitResult{}, ErrNotStarted
	}

	fp, err := fingerprint.Of(p)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("fingerprint profile %s: %w", p.ID, err)
	}
	res := SubmitResult{ProfileID: p.ID, Fingerprint: fp}
	key := fingerprint.Key(p.ID, fp)

	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordSubmissionDuplicate()
		s.logger.Debug(ctx, "duplicate submission",
			logger.String("profile_id", p.ID),
			logger.String("fingerprint", fp),
		)
		res.Status = StatusDuplicate
		return res, nil
	}

	sub := model.Submission{ID: key, Fingerprint: fp, Profile: p.Clone()}
	if !s.queue.Enqueue(ctx, sub) {
		s.deduper.Unrecord(ctx, key)
		metrics.RecordSubmissionRejected()
		return SubmitResult{}, ErrBackpressure
	}

	metrics.RecordSubmissionAccepted()
	res.Status = StatusAccepted
	return res, nil
}

// TopN returns the top n leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.leaderboard.TopN(ctx, n)
}

// Rank returns the leaderboard entry of a profile.
func (s *Service) Rank(ctx context.Context, profileID string) (repository.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return repository.Entry{}, ErrNotStarted
	}
	return s.leaderboard.Rank(ctx, profileID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"cachedReports": s.cache.Len(ctx),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalProfiles := s.leaderboard.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalProfiles"] = totalProfiles
		stats["processed"] = s.pool.Processed()
		stats["busyWorkers"] = s.pool.Busy()
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateLeaderboardSize(totalProfiles)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

func (s *Service) year() int {
	if s.currentYear > 0 {
		return s.currentYear
	}
	return time.Now().Year()
}

func (s *Service) startSystemMetrics() {
	stop := s.stopCh
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.systemMetricsInterval)
		defer ticker.Stop()

		var lastNumGC uint32
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				lastNumGC = sampleRuntime(lastNumGC)
			}
		}
	}()
}

// sampleRuntime publishes heap and goroutine gauges plus the GC pauses
// that happened since lastNumGC.
func sampleRuntime(lastNumGC uint32) uint32 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	metrics.UpdateSystemMemoryUsage(ms.HeapAlloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	pending := ms.NumGC - lastNumGC
	if pending > uint32(len(ms.PauseNs)) {
		pending = uint32(len(ms.PauseNs))
	}
	for i := uint32(0); i < pending; i++ {
		idx := (ms.NumGC - i + uint32(len(ms.PauseNs)) - 1) % uint32(len(ms.PauseNs))
		metrics.RecordSystemGCPauseTime(float64(ms.PauseNs[idx]) / 1e6)
	}
	return ms.NumGC
}
