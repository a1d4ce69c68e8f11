package loadgen

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/podium/pkg/logger"
)

// Default configuration constants.
const (
	defaultProfiles    = 10000
	defaultTopN        = 50
	defaultSamples     = 25
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunDeadline = 10 * time.Minute
)

// NewCommand builds the loadgen root command.
func NewCommand() *cobra.Command {
	cfg := &Config{}
	var (
		deadline time.Duration
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Generate careers, rank them and verify the leaderboard",
		Long: `Generates random careers, submits them to POST /profiles concurrently,
waits for the workers to rank them, then checks that GET /leaderboard is
ordered by XP with dense ranks and that a sample of careers re-analysed via
POST /analyze carry the same XP they were ranked with.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if cfg.Verbose {
				logLevel = "debug"
			}
			return logger.SetLevelString(logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer func() { _ = logger.Sync() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), deadline)
			defer cancel()

			_, err := Run(ctx, cfg)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	f.IntVar(&cfg.Profiles, "profiles", defaultProfiles, "Number of careers to generate and submit")
	f.IntVar(&cfg.TopN, "top", defaultTopN, "Number of leaderboard entries to fetch")
	f.IntVar(&cfg.Samples, "samples", defaultSamples, "Number of careers re-analysed to cross-check XP")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.DurationVar(&cfg.SettleTimeout, "settle", DefaultSettleTimeout, "How long to wait for every career to be ranked")
	f.DurationVar(&deadline, "deadline", defaultRunDeadline, "Overall run deadline")
	f.Uint64Var(&cfg.Seed, "seed", 0, "Generator seed (0 picks a random one)")
	f.StringVar(&cfg.OutputFile, "output", "", "Write the generated careers to this JSON file")
	f.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}
