package server

import (
	"time"

	"habitkit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetToday handles GET /today: the caller's habits scheduled for today's
// weekday with their completion status for today's date. Read-only; an
// authenticated caller always gets a 200, possibly with an empty list.
func (s *Server) GetToday(c *fiber.Ctx) error {
	today, err := s.habitService.Today(c.Context(), currentUserID(c), time.Now())
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(today)
}
