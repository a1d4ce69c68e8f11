package loadgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/podium/internal/domain/report"
	"github.com/okian/podium/pkg/logger"
)

// verifyLeaderboard checks ordering and dense ranks of a TopN response.
func verifyLeaderboard(leaderboard []Entry) error {
	if len(leaderboard) == 0 {
		return fmt.Errorf("%w: empty leaderboard", ErrVerification)
	}
	if leaderboard[0].Rank != 1 {
		return fmt.Errorf("%w: first entry has rank %d", ErrVerification, leaderboard[0].Rank)
	}
	for i := 1; i < len(leaderboard); i++ {
		prev, cur := leaderboard[i-1], leaderboard[i]
		switch {
		case cur.XP > prev.XP:
			return fmt.Errorf("%w: entry %d has more XP than entry %d", ErrVerification, i, i-1)
		case cur.XP == prev.XP && cur.Rank != prev.Rank:
			return fmt.Errorf("%w: tied entries %d and %d have ranks %d and %d", ErrVerification, i-1, i, prev.Rank, cur.Rank)
		case cur.XP == prev.XP && cur.ProfileID < prev.ProfileID:
			return fmt.Errorf("%w: tied entries %d and %d are not ordered by id", ErrVerification, i-1, i)
		case cur.XP < prev.XP && cur.Rank != prev.Rank+1:
			return fmt.Errorf("%w: entry %d has rank %d after rank %d", ErrVerification, i, cur.Rank, prev.Rank)
		}
	}
	return nil
}

// verifyRankings checks that /rank and /leaderboard agree on XP.
func verifyRankings(rankings map[string]Entry, leaderboard []Entry) error {
	for _, e := range leaderboard {
		r, ok := rankings[e.ProfileID]
		if !ok {
			continue
		}
		if r.XP != e.XP {
			return fmt.Errorf("%w: %s has %d XP on the leaderboard and %d by rank", ErrVerification, e.ProfileID, e.XP, r.XP)
		}
	}
	return nil
}

// verifySamples re-analyses up to cfg.Samples ranked profiles synchronously
// and compares the XP with the ranked standing.
func verifySamples(ctx context.Context, cfg *Config, client *HTTPClient, profiles []*Profile, rankings map[string]Entry, stats *Stats) error {
	var errs []error
	checked := 0
	for _, p := range profiles {
		if checked >= cfg.Samples {
			break
		}
		entry, ok := rankings[p.ID]
		if !ok {
			continue
		}
		checked++

		status, body, err := client.Post(ctx, "/analyze", p)
		if err != nil {
			errs = append(errs, fmt.Errorf("analyze %s: %w", p.ID, err))
			continue
		}
		var r report.Report
		if status != http.StatusOK {
			errs = append(errs, fmt.Errorf("analyze %s: HTTP %d: %s", p.ID, status, string(body)))
			continue
		}
		if err := json.Unmarshal(body, &r); err != nil {
			errs = append(errs, fmt.Errorf("analyze %s: %w", p.ID, err))
			continue
		}
		if r.Progression.XP != entry.XP {
			errs = append(errs, fmt.Errorf("%w: %s analysed at %d XP but ranked at %d", ErrVerification, p.ID, r.Progression.XP, entry.XP))
		}
	}
	stats.SamplesChecked = checked
	logger.Get().Info(ctx, "sample verification completed",
		logger.Int("checked", checked),
		logger.Int("errors", len(errs)),
	)
	return errors.Join(errs...)
}
