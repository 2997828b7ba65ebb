package server

import (
	"errors"
	"strconv"

	"habitkit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseIDParam parses a positive integer path parameter. Anything else is a
// validation failure, not a lookup miss.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid id: must be a positive integer")
	}
	return uint(id), nil
}

// statusForError maps an AppError code to its HTTP status. Unknown errors
// surface as opaque 500s.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}
