package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/service"
)

// errorPayload is the JSON error body: {"error": "..."}. Validation
// messages are safe for clients; internal detail stays in the logs.
type errorPayload struct {
	Error string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for faults raised outside the route handlers (unknown routes,
// body-limit rejections, panics recovered by middleware).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			// The framework body limit trips before the per-file ceiling
			return writeError(c, status, service.ErrPayloadTooLarge.Error())
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "Too many requests")
		default:
			return writeError(c, status, "Server error")
		}
	}
}
