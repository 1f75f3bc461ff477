package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/rag-admin/rag-admin/internal/app"
	"github.com/rag-admin/rag-admin/internal/officials"
	"github.com/rag-admin/rag-admin/internal/platform/cache"
	"github.com/rag-admin/rag-admin/internal/platform/db"
	"github.com/rag-admin/rag-admin/internal/shared"
	"github.com/rag-admin/rag-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	officialsRepo := officials.NewRedisRepository(redisClient)
	statusStore := officials.NewStatusStore(redisClient)
	idempotencyStore := shared.NewIdempotencyStore(pool)

	syncJob := jobs.NewOfficialsSyncJob(
		jobs.StaticSource{Roster: officials.DefaultRoster()},
		officialsRepo,
		statusStore,
		idempotencyStore,
		logger,
	)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Sync:      syncJob,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
