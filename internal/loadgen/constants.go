package loadgen

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	DefaultSettleTimeout = 2 * time.Minute
	PollInterval         = 250 * time.Millisecond
	PercentageMultiplier = 100
)
