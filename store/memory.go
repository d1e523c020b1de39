package store

import (
	"context"
	"sync"

	"songlist/models"
)

var _ SongStore = (*Memory)(nil)

// Memory keeps songs in an in-process slice, in insertion order.
type Memory struct {
	mu    sync.RWMutex
	songs []models.Song
}

// NewMemory returns a Memory store holding a copy of seed.
func NewMemory(seed []models.Song) *Memory {
	songs := make([]models.Song, len(seed))
	copy(songs, seed)
	return &Memory{songs: songs}
}

func (m *Memory) List(ctx context.Context) ([]models.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	songs := make([]models.Song, len(m.songs))
	copy(songs, m.songs)
	return songs, nil
}

func (m *Memory) Append(ctx context.Context, song models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.songs = append(m.songs, song)
	return nil
}
