package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/orangesnowtech/dxi-reactions/internal/config"
	"github.com/orangesnowtech/dxi-reactions/internal/logging"
	"github.com/orangesnowtech/dxi-reactions/internal/postgres"
	"github.com/orangesnowtech/dxi-reactions/internal/reaction"
	"github.com/orangesnowtech/dxi-reactions/internal/redis"
	"github.com/orangesnowtech/dxi-reactions/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "variant", cfg.Variant, "store", cfg.StoreBackend)

	pool := setupDB(cfg)
	defer pool.Close()

	content := postgres.NewContentRepo(pool)

	var (
		store       reaction.Store
		redisClient *goredis.Client
	)
	switch cfg.StoreBackend {
	case config.StoreRedis:
		redisClient = setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()
		store = redis.NewReactionStore(redisClient)
	case config.StoreMemory:
		// Single-instance mode, counts do not survive a restart.
		store = reaction.NewInMemoryStore()
	}

	svc := reaction.NewService(store, content, cfg.Variant, cfg.ContentWriteToken)

	// Pass nil explicitly for the memory backend to avoid a typed-nil interface.
	var srv *server.Server
	if redisClient != nil {
		srv = server.NewServer(cfg, svc, content, redisClient, pool)
	} else {
		srv = server.NewServer(cfg, svc, content, nil, pool)
	}

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
