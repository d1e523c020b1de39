package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	gol "github.com/op/go-logging"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate creates the songs table and inserts the seed rows, skipping
// migrations that were already applied.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *gol.Logger) error {
	provider, db, err := newMigrationProvider(pool)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		log.Infof("migration %d (%s) applied in %s", r.Source.Version, r.Source.Path, r.Duration)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newMigrationProvider opens a database/sql handle on the pool's connection
// settings. The caller closes the returned *sql.DB.
func newMigrationProvider(pool *pgxpool.Pool) (*goose.Provider, *sql.DB, error) {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, nil, err
	}

	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, db, nil
}
