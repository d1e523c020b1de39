// Package server assembles the Fiber application serving the song list.
package server

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"songlist/handlers"
	"songlist/middleware"
)

// Config controls the outer surface of the app.
type Config struct {
	// PublicDir holds the browser page. Skipped if it does not exist.
	PublicDir string
	// AccessLog receives one line per request. nil disables it.
	AccessLog io.Writer
}

// New returns an app serving /songs through h.
func New(h *handlers.SongHandler, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "songlist",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: cfg.AccessLog}))
	}
	app.Use(middleware.RequestID)

	h.Register(app)

	if cfg.PublicDir != "" {
		if fi, err := os.Stat(cfg.PublicDir); err == nil && fi.IsDir() {
			app.Static("/", cfg.PublicDir)
		}
	}
	return app
}
