package store

import (
	"context"
	"encoding/json"
	"fmt"

	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"songlist/models"
)

var _ SongStore = (*Redis)(nil)

// Redis keeps songs as JSON documents in a Redis list, in insertion order.
type Redis struct {
	client redis.UniversalClient
	key    string
}

// NewRedis returns a store backed by the list at key. The client is usually
// obtained from fiber's redis storage via Conn().
func NewRedis(client redis.UniversalClient, key string) *Redis {
	return &Redis{client: client, key: key}
}

// seedScript pushes ARGV onto KEYS[1] and then sets the KEYS[2] marker,
// unless the marker already exists. A failed RPUSH aborts the script
// before the marker is written, so the next Seed tries again.
var seedScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
	return 0
end
if #ARGV > 0 then
	redis.call('RPUSH', KEYS[1], unpack(ARGV))
end
redis.call('SET', KEYS[2], 1)
return 1
`)

// Seed pushes seed onto the list the first time it succeeds for this key.
func (r *Redis) Seed(ctx context.Context, seed []models.Song) error {
	values := make([]interface{}, 0, len(seed))
	for _, song := range seed {
		b, err := json.Marshal(song)
		if err != nil {
			return fmt.Errorf("encode seed song: %w", err)
		}
		values = append(values, b)
	}

	keys := []string{r.key, r.seededKey()}
	if err := seedScript.Run(ctx, r.client, keys, values...).Err(); err != nil {
		return unavailable("seed songs", err)
	}
	return nil
}

func (r *Redis) seededKey() string {
	return r.key + ":seeded"
}

func (r *Redis) List(ctx context.Context) ([]models.Song, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, unavailable("list songs", err)
	}

	songs := make([]models.Song, 0, len(raw))
	for _, item := range raw {
		var song models.Song
		if err := json.Unmarshal([]byte(item), &song); err != nil {
			return nil, unavailable("decode song", err)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func (r *Redis) Append(ctx context.Context, song models.Song) error {
	b, err := json.Marshal(song)
	if err != nil {
		return unavailable("encode song", err)
	}
	if err := r.client.RPush(ctx, r.key, b).Err(); err != nil {
		return unavailable("append song", err)
	}
	return nil
}

// RedisConfig locates the Redis server.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	Database int
	Key      string
}

// NewRedisFromConfig dials Redis through fiber's redis storage and returns
// a store on its connection. It fails if the server does not answer a ping.
func NewRedisFromConfig(cfg RedisConfig) (r *Redis, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("connect redis at %s:%d: %v", cfg.Host, cfg.Port, p)
		}
	}()

	storage := fiberredis.New(fiberredis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		Database: cfg.Database,
	})
	return NewRedis(storage.Conn(), cfg.Key), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
