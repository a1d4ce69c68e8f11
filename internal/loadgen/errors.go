package loadgen

import "errors"

var (
	// ErrUnhealthy is returned when the service health check fails.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrVerification is returned when the leaderboard disagrees with the analyses.
	ErrVerification = errors.New("verification failed")
)
