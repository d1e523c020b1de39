package store

import (
	"context"
	"errors"
	"fmt"

	"songlist/models"
)

// ErrStorageUnavailable covers every failure to read or write the backing
// store: connection, query and encoding errors alike.
var ErrStorageUnavailable = errors.New("storage unavailable")

// SongStore owns the song collection.
type SongStore interface {
	List(ctx context.Context) ([]models.Song, error)
	Append(ctx context.Context, song models.Song) error
}

// unavailable wraps err so that both errors.Is(err, ErrStorageUnavailable)
// and errors.Is(err, <driver error>) hold.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
