// Package service contains the business rules layered over the repositories.
package service

import (
	"context"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/repository"
	"habitkit/internal/validation"
)

// HabitService implements the habit lifecycle: create, list, delete, daily
// status, and check/uncheck of today's completions.
type HabitService struct {
	habitRepo repository.HabitRepository
}

// CreateHabitInput is the validated payload for a new habit.
type CreateHabitInput struct {
	UserID uint
	Name   string
	Days   []int
}

// TodayHabit is one row of the daily status view: a habit scheduled for the
// day with its completion flag and streak counters.
type TodayHabit struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Done            bool   `json:"done"`
	CurrentSequence int    `json:"current_sequence"`
	HighestSequence int    `json:"highest_sequence"`
}

// NewHabitService returns a new HabitService.
func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

// DateKey formats a time as the YYYY-MM-DD key used by completion rows.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// CreateHabit validates the payload and persists the habit with zeroed
// streak counters and one schedule row per weekday. Validation happens
// before any insert, so a rejected payload leaves no rows behind.
func (s *HabitService) CreateHabit(ctx context.Context, in CreateHabitInput) (*models.Habit, error) {
	if err := validation.ValidateHabit(in.Name, in.Days); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	weekdays := make([]models.HabitWeekday, 0, len(in.Days))
	for _, d := range in.Days {
		weekdays = append(weekdays, models.HabitWeekday{Weekday: d})
	}

	habit := &models.Habit{
		UserID:   in.UserID,
		Name:     in.Name,
		Weekdays: weekdays,
	}
	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, err
	}

	habit.PopulateDays()
	return habit, nil
}

// ListHabits returns every habit the user owns. A user with no habits gets
// an empty slice, never an error.
func (s *HabitService) ListHabits(ctx context.Context, userID uint) ([]models.Habit, error) {
	habits, err := s.habitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range habits {
		habits[i].PopulateDays()
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

// DeleteHabit removes an owned habit and cascades its schedule and
// completion rows. A habit owned by someone else reports not found.
func (s *HabitService) DeleteHabit(ctx context.Context, habitID, userID uint) error {
	return s.habitRepo.DeleteOwned(ctx, habitID, userID)
}

// Today computes the user's habits scheduled on now's weekday with their
// completion status for now's calendar date.
func (s *HabitService) Today(ctx context.Context, userID uint, now time.Time) ([]TodayHabit, error) {
	habits, err := s.habitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	done, err := s.habitRepo.CompletedIDs(ctx, userID, DateKey(now))
	if err != nil {
		return nil, err
	}

	weekday := int(now.Weekday())
	today := []TodayHabit{}
	for i := range habits {
		if !habits[i].ScheduledOn(weekday) {
			continue
		}
		today = append(today, TodayHabit{
			ID:              habits[i].ID,
			Name:            habits[i].Name,
			Done:            done[habits[i].ID],
			CurrentSequence: habits[i].CurrentSequence,
			HighestSequence: habits[i].HighestSequence,
		})
	}
	return today, nil
}

// CheckHabit marks an owned habit as completed for now's date and advances
// the streak counters in one transaction. The habit must be scheduled on
// now's weekday and not already checked.
func (s *HabitService) CheckHabit(ctx context.Context, habitID, userID uint, now time.Time) (*models.Habit, error) {
	habit, err := s.habitRepo.GetOwned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if !habit.ScheduledOn(int(now.Weekday())) {
		return nil, models.NewValidationError("Habit is not scheduled for today")
	}

	date := DateKey(now)
	checked, err := s.habitRepo.IsCompleted(ctx, habit.ID, date)
	if err != nil {
		return nil, err
	}
	if checked {
		return nil, models.NewValidationError("Habit already checked today")
	}

	if err := s.habitRepo.Complete(ctx, habit, date); err != nil {
		return nil, err
	}
	habit.PopulateDays()
	return habit, nil
}

// UncheckHabit reverses a check for now's date: the completion row goes away
// and the current streak steps back down. The historical best is monotone.
func (s *HabitService) UncheckHabit(ctx context.Context, habitID, userID uint, now time.Time) (*models.Habit, error) {
	habit, err := s.habitRepo.GetOwned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	date := DateKey(now)
	checked, err := s.habitRepo.IsCompleted(ctx, habit.ID, date)
	if err != nil {
		return nil, err
	}
	if !checked {
		return nil, models.NewValidationError("Habit is not checked today")
	}

	if err := s.habitRepo.Uncomplete(ctx, habit, date); err != nil {
		return nil, err
	}
	habit.PopulateDays()
	return habit, nil
}
