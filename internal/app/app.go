package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/haeun-dev/seaturtle-soup/internal/ai"
	"github.com/haeun-dev/seaturtle-soup/internal/config"
	"github.com/haeun-dev/seaturtle-soup/internal/db/repository"
	"github.com/haeun-dev/seaturtle-soup/internal/logging"
	"github.com/haeun-dev/seaturtle-soup/internal/problem"
	"github.com/haeun-dev/seaturtle-soup/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, optional Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("problem cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; problem cache disabled")
	}

	queries := repository.New(pool)
	problemRepo := repository.NewProblemRepository(queries)
	promptRepo := repository.NewPromptRepository(queries)

	aiClient := ai.NewClient(ai.Config{
		APIURL:      cfg.AI.APIURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.HTTPTimeout,
	}, logger)
	aiSvc := ai.NewService(promptRepo, aiClient, logger)

	var cache *problem.Cache
	if redisClient != nil {
		cache = problem.NewCache(redisClient, cfg.Redis.CacheTTL)
	}

	problemSvc := newProblemService(problemRepo, aiSvc, cache, logger)
	problemHandler := problem.NewHTTPHandler(problemSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, problemHandler)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// newProblemService keeps the nil-cache case from turning into a typed-nil
// interface inside the service.
func newProblemService(repo *repository.ProblemRepository, aiSvc *ai.Service, cache *problem.Cache, logger zerolog.Logger) *problem.Service {
	if cache == nil {
		return problem.NewService(repo, aiSvc, nil, logger)
	}
	return problem.NewService(repo, aiSvc, cache, logger)
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
