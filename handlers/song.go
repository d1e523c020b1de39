package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	gol "github.com/op/go-logging"

	"songlist/middleware"
	"songlist/models"
	"songlist/store"
)

// SongHandler serves the song list. It keeps no state between requests;
// everything lives in Store.
type SongHandler struct {
	store         store.SongStore
	createdStatus int
	log           *gol.Logger
}

// NewSongHandler returns a handler over s. createdStatus is what a
// successful POST answers with: 200 for the in-memory store, 201 for
// persisted ones.
func NewSongHandler(s store.SongStore, createdStatus int, log *gol.Logger) *SongHandler {
	return &SongHandler{store: s, createdStatus: createdStatus, log: log}
}

// Register mounts GET and POST /songs on r.
func (h *SongHandler) Register(r fiber.Router) {
	r.Get("/songs", h.GetSongs)
	r.Post("/songs", h.CreateSong)
}

// GetSongs answers with every stored song as a JSON array.
func (h *SongHandler) GetSongs(c *fiber.Ctx) error {
	songs, err := h.store.List(c.UserContext())
	if err != nil {
		h.log.Errorf("[%s] failed to list songs: %v", middleware.GetRequestID(c), err)
		c.Status(fiber.StatusInternalServerError)
		return nil
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return c.JSON(songs)
}

// CreateSong appends the song in the JSON or form body. Fields are stored
// as sent; missing ones are stored as zero values. An empty body, or one
// whose content type carries no fields, appends an all-zero song. Only a
// body that is present but cannot be decoded is rejected.
func (h *SongHandler) CreateSong(c *fiber.Ctx) error {
	var song models.Song
	if len(c.Body()) > 0 {
		err := c.BodyParser(&song)
		switch {
		case err == nil:
		case errors.Is(err, fiber.ErrUnprocessableEntity):
			song = models.Song{}
		default:
			h.log.Warningf("[%s] undecodable song body: %v", middleware.GetRequestID(c), err)
			c.Status(fiber.StatusBadRequest)
			return nil
		}
	}

	if err := h.store.Append(c.UserContext(), song); err != nil {
		h.log.Errorf("[%s] failed to add song: %v", middleware.GetRequestID(c), err)
		c.Status(fiber.StatusInternalServerError)
		return nil
	}

	c.Status(h.createdStatus)
	return nil
}
