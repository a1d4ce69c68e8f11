// Package repository keeps the XP leaderboard of analysed profiles.
package repository

import (
	"context"
	"time"
)

// Standing is what the leaderboard stores for one profile.
type Standing struct {
	ProfileID      string    `json:"profile_id"`
	XP             int       `json:"xp"`
	Level          int       `json:"level"`
	Title          string    `json:"title"`
	UnlockedBadges int       `json:"unlocked_badges"`
	Fingerprint    string    `json:"fingerprint"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Entry is a leaderboard row.
type Entry struct {
	Rank int `json:"rank"`
	Standing
}

// Store provides read/write access to the ranking state.
type Store interface {
	// Upsert replaces the profile's standing. It reports whether the
	// ordering data (XP) changed or the profile is new.
	Upsert(ctx context.Context, s Standing) (bool, error)

	// Rank returns the dense rank and standing of a profile.
	// Returns ErrNotFound if the profile is unknown.
	Rank(ctx context.Context, profileID string) (Entry, error)

	// TopN returns the top-N entries ordered by XP desc, profile id asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of ranked profiles.
	Count(ctx context.Context) int
}
