package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rag-admin/rag-admin/internal/app"
	"github.com/rag-admin/rag-admin/internal/audit"
	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/knowledge"
	"github.com/rag-admin/rag-admin/internal/observability"
	"github.com/rag-admin/rag-admin/internal/officials"
	"github.com/rag-admin/rag-admin/internal/platform/cache"
	"github.com/rag-admin/rag-admin/internal/platform/db"
	"github.com/rag-admin/rag-admin/internal/prompts"
	"github.com/rag-admin/rag-admin/internal/rbac"
	"github.com/rag-admin/rag-admin/internal/shared"
	"github.com/rag-admin/rag-admin/internal/users"
	"github.com/rag-admin/rag-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

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

	sessionManager := shared.NewSessionManager(redisClient, "rag_admin_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	directory, err := auth.NewDirectory(auth.DefaultSeeds())
	if err != nil {
		logger.Error("seed user directory", slog.Any("error", err))
		os.Exit(1)
	}
	authService := auth.NewService(directory)

	tokenIssuer, err := auth.NewTokenIssuer(cfg.AuthTokenSecret, cfg.AuthTokenTTL)
	if err != nil {
		logger.Error("init token issuer", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	authHandler := auth.NewHandler(logger, tokenIssuer, csrfManager, metrics)

	auditLogger := shared.NewAuditLogger(dbpool)
	idempotencyStore := shared.NewIdempotencyStore(dbpool)
	guard := rbac.Middleware{Logger: logger}

	promptsRepo := prompts.NewMemoryRepository(prompts.DefaultSeeds())
	promptsService := prompts.NewService(promptsRepo, auditLogger, logger)
	promptsHandler := prompts.NewHandler(logger, promptsService, guard)

	officialsRepo := officials.NewRedisRepository(redisClient)
	if err := officialsRepo.Seed(ctx, officials.DefaultRoster()); err != nil {
		logger.Warn("seed officials roster", slog.Any("error", err))
	}
	statusStore := officials.NewStatusStore(redisClient)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	officialsService := officials.NewService(officialsRepo, auditLogger, jobsClient, idempotencyStore, statusStore, logger)
	officialsHandler := officials.NewHandler(logger, officialsService, guard)

	knowledgeRepo := knowledge.NewMemoryRepository(knowledge.DefaultSeeds())
	knowledgeService := knowledge.NewService(knowledgeRepo, auditLogger, logger)
	knowledgeHandler := knowledge.NewHandler(logger, knowledgeService, guard)

	auditService := audit.NewService(audit.NewPgRepository(dbpool))
	auditHandler := audit.NewHandler(logger, auditService, guard)

	usersService := users.NewService(directory)
	usersHandler := users.NewHandler(logger, usersService, guard)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Redis:          redisClient,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		AuthService:    authService,
		TokenIssuer:    tokenIssuer,
		Metrics:        metrics,

		AuthHandler:      authHandler,
		PromptsHandler:   promptsHandler,
		OfficialsHandler: officialsHandler,
		KnowledgeHandler: knowledgeHandler,
		AuditHandler:     auditHandler,
		UsersHandler:     usersHandler,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
