package service

import "errors"

var (
	// ErrNotStarted is returned by queue and leaderboard operations before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrBackpressure is returned when the submission queue is full or closed.
	ErrBackpressure = errors.New("submission queue is full")
	// ErrInvalidProfile is returned for nil or anonymous profiles.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrAchievementNotFound is returned by Card for unknown achievement ids.
	ErrAchievementNotFound = errors.New("achievement not found")
)
