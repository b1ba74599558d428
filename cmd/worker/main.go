package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"flowz-server/internal/adapter/repo"
	"flowz-server/internal/domain"
	"flowz-server/internal/infra"
)

// Batch jobs stream over a single HTTP response. When the serving process
// dies mid-run the job row stays in running forever, so this worker sweeps
// jobs whose updated_at went stale and marks them failed.
const (
	sweepInterval    = time.Minute
	abandonedAfter   = 10 * time.Minute
	shutdownDeadline = 5 * time.Second
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	jobs := repo.NewBatchJobRepository(runner)

	if err := run(ctx, jobs, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func run(ctx context.Context, jobs domain.BatchJobRepository, logger infra.Logger) error {
	logger.Info().
		Dur("interval", sweepInterval).
		Dur("abandoned_after", abandonedAfter).
		Msg("worker: started")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		sweepCtx, cancel := context.WithTimeout(ctx, shutdownDeadline)
		swept, err := jobs.FailAbandoned(sweepCtx, abandonedAfter)
		cancel()
		if err != nil {
			logger.Error().Err(err).Msg("worker: sweep failed")
			continue
		}
		if swept > 0 {
			logger.Info().Int64("jobs", swept).Msg("worker: marked abandoned jobs failed")
		}
	}
}
