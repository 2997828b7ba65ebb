package server

import (
	"time"

	"habitkit/internal/middleware"
	"habitkit/internal/models"
	"habitkit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateHabit handles POST /habits: validate the payload and persist the
// habit with zeroed streaks and one schedule row per weekday.
func (s *Server) CreateHabit(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Days []int  `json:"days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	habit, err := s.habitService.CreateHabit(c.Context(), service.CreateHabitInput{
		UserID: currentUserID(c),
		Name:   req.Name,
		Days:   req.Days,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.HabitOperations.WithLabelValues("create").Inc()
	return c.Status(fiber.StatusCreated).JSON(habit)
}

// GetHabits handles GET /habits: every habit the caller owns, empty list
// included.
func (s *Server) GetHabits(c *fiber.Ctx) error {
	habits, err := s.habitService.ListHabits(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(habits)
}

// DeleteHabit handles DELETE /habits/:id. A malformed id is a 400; a
// well-formed id that matches nothing the caller owns is a 404.
func (s *Server) DeleteHabit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.habitService.DeleteHabit(c.Context(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.HabitOperations.WithLabelValues("delete").Inc()
	return c.JSON(fiber.Map{
		"message": "Habit deleted",
	})
}

// CheckHabit handles POST /habits/:id/check: mark the habit completed for
// today and advance its streak.
func (s *Server) CheckHabit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	habit, err := s.habitService.CheckHabit(c.Context(), id, currentUserID(c), time.Now())
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.HabitOperations.WithLabelValues("check").Inc()
	return c.JSON(habit)
}

// UncheckHabit handles POST /habits/:id/uncheck: remove today's completion
// and step the current streak back down.
func (s *Server) UncheckHabit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	habit, err := s.habitService.UncheckHabit(c.Context(), id, currentUserID(c), time.Now())
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.HabitOperations.WithLabelValues("uncheck").Inc()
	return c.JSON(habit)
}
