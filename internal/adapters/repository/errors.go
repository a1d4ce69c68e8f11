package repository

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrNotFound     = errors.New("profile not ranked")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrInvalidID    = errors.New("empty profile id")
)
