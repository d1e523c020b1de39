package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	gol "github.com/op/go-logging"
)

// PoolConfig bounds the Postgres connection pool.
type PoolConfig struct {
	DatabaseURL string
	MaxConns    int32
	IdleTimeout time.Duration
}

// NewPool connects a pgx pool. Connection lifecycle events are logged at
// DEBUG; nothing depends on them.
func NewPool(ctx context.Context, cfg PoolConfig, log *gol.Logger) (*pgxpool.Pool, error) {
	pcfg, err := poolConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connect pool: %w", err)
	}
	return pool, nil
}

func poolConfig(cfg PoolConfig, log *gol.Logger) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.IdleTimeout > 0 {
		pcfg.MaxConnIdleTime = cfg.IdleTimeout
	}

	pcfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		log.Debugf("pool: connected (pid %d)", conn.PgConn().PID())
		return nil
	}
	pcfg.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		log.Debugf("pool: acquire (pid %d)", conn.PgConn().PID())
		return true
	}
	pcfg.AfterRelease = func(conn *pgx.Conn) bool {
		log.Debugf("pool: release (pid %d)", conn.PgConn().PID())
		return true
	}
	return pcfg, nil
}
