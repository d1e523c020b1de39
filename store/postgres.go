package store

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"songlist/models"
)

// Querier is the subset of *pgxpool.Pool the Postgres store uses.
// It can be replaced in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

var (
	_ Querier   = (*pgxpool.Pool)(nil)
	_ SongStore = (*Postgres)(nil)
)

const (
	listSongsQuery  = `SELECT artist, track, rank, published FROM songs`
	insertSongQuery = `INSERT INTO songs (artist, track, rank, published) VALUES ($1, $2, $3, $4)`
)

// Postgres stores songs in the songs table. Row order of List is whatever
// the server returns; no ORDER BY is applied.
type Postgres struct {
	db Querier
}

func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) List(ctx context.Context) ([]models.Song, error) {
	rows, err := p.db.Query(ctx, listSongsQuery)
	if err != nil {
		return nil, unavailable("list songs", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.Artist, &song.Track, &song.Rank, &song.Published); err != nil {
			return nil, unavailable("scan song", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate songs", err)
	}

	return songs, nil
}

func (p *Postgres) Append(ctx context.Context, song models.Song) error {
	_, err := p.db.Exec(ctx, insertSongQuery, song.Artist, song.Track, song.Rank, song.Published)
	if err != nil {
		return unavailable("insert song", err)
	}
	return nil
}
