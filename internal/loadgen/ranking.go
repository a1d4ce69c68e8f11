package loadgen

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// retrieveRankings polls /rank for every profile until it is ranked or the
// settle timeout passes. Unranked profiles are missing from the result.
func retrieveRankings(ctx context.Context, cfg *Config, client *HTTPClient, profiles []*Profile, stats *Stats) map[string]Entry {
	log := logger.Get()
	log.Info(ctx, "retrieving rankings",
		logger.Int("profiles", len(profiles)),
		logger.String("settleTimeout", cfg.SettleTimeout.String()),
	)

	settleCtx, cancel := context.WithTimeout(ctx, cfg.SettleTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		rankings = make(map[string]Entry, len(profiles))
		missing  atomic.Int64
	)

	idChan := make(chan string, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idChan {
				entry, err := waitForRank(settleCtx, client, id)
				if err != nil {
					missing.Add(1)
					if cfg.Verbose {
						log.Warn(ctx, "profile not ranked", logger.String("profile_id", id), logger.Error(err))
					}
					continue
				}
				mu.Lock()
				rankings[id] = entry
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(idChan)
		for _, p := range profiles {
			select {
			case <-settleCtx.Done():
				return
			case idChan <- p.ID:
			}
		}
	}()
	wg.Wait()

	stats.Ranked = len(rankings)
	log.Info(ctx, "ranking retrieval completed",
		logger.Int("ranked", len(rankings)),
		logger.Int64("missing", missing.Load()),
	)
	return rankings
}

// waitForRank polls one profile until the service ranks it.
func waitForRank(ctx context.Context, client *HTTPClient, id string) (Entry, error) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		var entry Entry
		err := client.getJSON(ctx, "/rank/"+url.PathEscape(id), &entry)
		if err == nil {
			return entry, nil
		}
		select {
		case <-ctx.Done():
			return Entry{}, fmt.Errorf("rank %s: %w (last error: %v)", id, ctx.Err(), err)
		case <-ticker.C:
		}
	}
}

// getLeaderboard retrieves the top N leaderboard entries.
func getLeaderboard(ctx context.Context, cfg *Config, client *HTTPClient, stats *Stats) ([]Entry, error) {
	var leaderboard []Entry
	if err := client.getJSON(ctx, fmt.Sprintf("/leaderboard?limit=%d", cfg.TopN), &leaderboard); err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	stats.LeaderboardEntries = len(leaderboard)
	logger.Get().Info(ctx, "retrieved leaderboard", logger.Int("entries", len(leaderboard)))
	return leaderboard, nil
}
