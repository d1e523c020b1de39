package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the Locals key holding the id assigned to each request.
const RequestIDKey = "requestID"

// RequestID gives every request a random id so that handler log lines can
// be correlated. The id stays server side; no header is written.
func RequestID(c *fiber.Ctx) error {
	c.Locals(RequestIDKey, uuid.NewString())
	return c.Next()
}

// GetRequestID returns the id assigned by RequestID, or "-" if the
// middleware did not run.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return "-"
}
