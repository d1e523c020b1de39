package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	gol "github.com/op/go-logging"

	"songlist/config"
	"songlist/handlers"
	"songlist/logging"
	"songlist/models"
	"songlist/server"
	"songlist/store"
)

func main() {
	if err := run(); err != nil {
		gol.MustGetLogger("main").Fatalf("%v", err)
	}
}

// run owns every resource it opens; it returns instead of exiting so that
// deferred cleanup always happens.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	songs, createdStatus, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	h := handlers.NewSongHandler(songs, createdStatus, log)
	app := server.New(h, server.Config{PublicDir: cfg.PublicDir, AccessLog: os.Stdout})

	log.Infof("Starting server at %s (store: %s)", cfg.ServerAddress, cfg.Store)
	if err := serve(ctx, app, cfg.ServerAddress); err != nil {
		return err
	}
	log.Info("Graceful shutdown complete.")
	return nil
}

// serve listens on addr until ctx is done, then shuts app down.
func serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	return nil
}

// openStore builds the configured backend along with the status a
// successful POST answers with and a func releasing its connections.
func openStore(ctx context.Context, cfg config.Config, log *gol.Logger) (store.SongStore, int, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := store.NewPool(ctx, store.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DBMaxConns,
			IdleTimeout: cfg.DBIdleTimeout,
		}, log)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to start postgresql database: %w", err)
		}
		if err := store.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, 0, nil, err
		}
		return store.NewPostgres(pool), fiber.StatusCreated, pool.Close, nil

	case config.StoreRedis:
		r, err := store.NewRedisFromConfig(store.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			Database: cfg.RedisDB,
			Key:      cfg.RedisKey,
		})
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to start redis: %w", err)
		}
		if err := r.Seed(ctx, models.SeedSongs()); err != nil {
			_ = r.Close()
			return nil, 0, nil, fmt.Errorf("failed to seed redis: %w", err)
		}
		return r, fiber.StatusCreated, func() { _ = r.Close() }, nil

	default:
		return store.NewMemory(models.SeedSongs()), fiber.StatusOK, func() {}, nil
	}
}
