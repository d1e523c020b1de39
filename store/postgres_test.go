package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"songlist/models"
)

type execCall struct {
	sql  string
	args []interface{}
}

// fakeDB records statements and serves canned rows.
type fakeDB struct {
	rows     [][]interface{}
	queryErr error
	scanErr  error
	iterErr  error
	execErr  error

	queries []string
	execs   []execCall
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{rows: f.rows, pos: -1, scanErr: f.scanErr, iterErr: f.iterErr}, nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	if f.execErr != nil {
		return nil, f.execErr
	}
	return pgconn.CommandTag("INSERT 0 1"), nil
}

type fakeRows struct {
	rows    [][]interface{}
	pos     int
	scanErr error
	iterErr error
	closed  bool
}

func (r *fakeRows) Close()                                         { r.closed = true }
func (r *fakeRows) Err() error                                     { return r.iterErr }
func (r *fakeRows) CommandTag() pgconn.CommandTag                  { return nil }
func (r *fakeRows) FieldDescriptions() []pgproto3.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                            { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]interface{}, error) { return r.rows[r.pos], nil }

func (r *fakeRows) Scan(dest ...interface{}) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func songRow(s models.Song) []interface{} {
	return []interface{}{s.Artist, s.Track, s.Rank, s.Published}
}

func TestPostgres_List(t *testing.T) {
	db := &fakeDB{}
	for _, s := range models.SeedSongs() {
		db.rows = append(db.rows, songRow(s))
	}
	p := NewPostgres(db)

	songs, err := p.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.SeedSongs(), songs)
	require.Equal(t, []string{listSongsQuery}, db.queries)
}

func TestPostgres_ListEmpty(t *testing.T) {
	p := NewPostgres(&fakeDB{})

	songs, err := p.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, songs)
	require.Empty(t, songs)
}

func TestPostgres_ListErrors(t *testing.T) {
	driverErr := errors.New("connection refused")
	cases := map[string]*fakeDB{
		"query": {queryErr: driverErr},
		"scan":  {rows: [][]interface{}{songRow(models.SeedSongs()[0])}, scanErr: driverErr},
		"iter":  {iterErr: driverErr},
	}
	for name, db := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewPostgres(db).List(context.Background())
			require.ErrorIs(t, err, ErrStorageUnavailable)
			require.ErrorIs(t, err, driverErr)
		})
	}
}

func TestPostgres_AppendBindsParameters(t *testing.T) {
	db := &fakeDB{}
	p := NewPostgres(db)
	song := models.Song{
		Artist:    "Robert'); DROP TABLE songs; --",
		Track:     "B",
		Rank:      1,
		Published: "1/1/2020",
	}

	require.NoError(t, p.Append(context.Background(), song))
	require.Len(t, db.execs, 1)
	require.Equal(t, insertSongQuery, db.execs[0].sql)
	require.NotContains(t, db.execs[0].sql, song.Artist)
	require.Equal(t, []interface{}{song.Artist, "B", 1, "1/1/2020"}, db.execs[0].args)
}

func TestPostgres_AppendError(t *testing.T) {
	driverErr := errors.New("too many connections")
	p := NewPostgres(&fakeDB{execErr: driverErr})

	err := p.Append(context.Background(), models.Song{Artist: "A"})
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, driverErr)
}
