package loadgen

import (
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Profiles      int           // Number of careers to generate
	TopN          int           // Number of leaderboard entries to fetch
	Samples       int           // Careers re-analysed to cross-check XP
	Workers       int           // Number of concurrent submitters
	Timeout       time.Duration // HTTP request timeout
	SettleTimeout time.Duration // How long to wait for workers to rank everything
	Seed          uint64        // Generator seed; zero picks a random one
	OutputFile    string        // Optional JSON dump of generated careers
	Verbose       bool          // Enable verbose logging
}

// Profile is the career payload sent to the service.
type Profile = model.Profile

// Entry is a leaderboard entry as returned by the service.
type Entry = repository.Entry

// AckResponse represents the response from a profile submission.
type AckResponse struct {
	Status      string `json:"status"`
	Duplicate   bool   `json:"duplicate"`
	ProfileID   string `json:"profile_id"`
	Fingerprint string `json:"fingerprint"`
}

// Stats holds run statistics.
type Stats struct {
	ProfilesGenerated  int
	Submitted          int
	Accepted           int
	Duplicate          int
	Rejected           int
	Failed             int
	Ranked             int
	LeaderboardEntries int
	SamplesChecked     int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
