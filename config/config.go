package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gol "github.com/op/go-logging"
)

var log = gol.MustGetLogger("config")

// Store backends selectable with SONG_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds everything main needs to wire the server.
type Config struct {
	ServerAddress string
	Store         string
	PublicDir     string
	LogLevel      string

	DatabaseURL   string
	DBMaxConns    int32
	DBIdleTimeout time.Duration

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

// Load reads .env (if any) and the environment. Unset variables fall back
// to defaults with a warning; malformed ones are an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warning("No .env file found")
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		log.Warningf("%s environment variable not set, using %q", key, def)
		return def
	}
	optional := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		ServerAddress: env("SERVER_ADDRESS", ":3000"),
		Store:         env("SONG_STORE", StoreMemory),
		PublicDir:     optional("PUBLIC_DIR", "./public"),
		LogLevel:      optional("LOG_LEVEL", "INFO"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		RedisKey:      optional("REDIS_KEY", "songs"),
	}

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		cfg.DatabaseURL = env("DATABASE_URL", "postgres://postgres:postgres@db:5432/songs?sslmode=disable")
	case StoreRedis:
		cfg.RedisHost = env("REDIS_HOST", "redis")
	default:
		return Config{}, fmt.Errorf("SONG_STORE must be one of %s, %s, %s; got %q",
			StoreMemory, StorePostgres, StoreRedis, cfg.Store)
	}

	maxConns, err := strconv.ParseInt(optional("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil || maxConns <= 0 {
		return Config{}, fmt.Errorf("'DB_MAX_CONNS' must be a positive integer")
	}
	cfg.DBMaxConns = int32(maxConns)

	cfg.DBIdleTimeout, err = time.ParseDuration(optional("DB_IDLE_TIMEOUT", "30s"))
	if err != nil || cfg.DBIdleTimeout <= 0 {
		return Config{}, fmt.Errorf("'DB_IDLE_TIMEOUT' must be a positive duration")
	}

	cfg.RedisPort, err = strconv.Atoi(optional("REDIS_PORT", "6379"))
	if err != nil || cfg.RedisPort <= 0 {
		return Config{}, fmt.Errorf("'REDIS_PORT' must be a positive integer")
	}

	cfg.RedisDB, err = strconv.Atoi(optional("REDIS_DB", "0"))
	if err != nil || cfg.RedisDB < 0 {
		return Config{}, fmt.Errorf("'REDIS_DB' must be a non-negative integer")
	}

	return cfg, nil
}
