package repository

import (
	"context"
	"errors"

	"habitkit/internal/models"
	"habitkit/internal/observability"

	"gorm.io/gorm"
)

// HabitRepository defines persistence operations for habits, their weekday
// schedule rows, and their per-date completion records. Every lookup and
// mutation is scoped by the owning user at the query boundary.
type HabitRepository interface {
	Create(ctx context.Context, habit *models.Habit) error
	ListByUser(ctx context.Context, userID uint) ([]models.Habit, error)
	GetOwned(ctx context.Context, id, userID uint) (*models.Habit, error)
	DeleteOwned(ctx context.Context, id, userID uint) error

	Complete(ctx context.Context, habit *models.Habit, date string) error
	Uncomplete(ctx context.Context, habit *models.Habit, date string) error
	IsCompleted(ctx context.Context, habitID uint, date string) (bool, error)
	CompletedIDs(ctx context.Context, userID uint, date string) (map[uint]bool, error)
}

type habitRepository struct {
	db *gorm.DB
}

// NewHabitRepository returns a new HabitRepository implementation.
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

// Create inserts the habit and its weekday schedule rows. GORM persists the
// Weekdays association inside the same transaction as the habit row, so a
// failed insert leaves no partial schedule behind.
func (r *habitRepository) Create(ctx context.Context, habit *models.Habit) error {
	defer observability.TrackQuery("create", "habits")()
	if err := r.db.WithContext(ctx).Create(habit).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *habitRepository) ListByUser(ctx context.Context, userID uint) ([]models.Habit, error) {
	defer observability.TrackQuery("list", "habits")()
	var habits []models.Habit
	if err := r.db.WithContext(ctx).
		Preload("Weekdays").
		Where("user_id = ?", userID).
		Order("id").
		Find(&habits).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return habits, nil
}

// GetOwned fetches a habit by id filtered by owner. A habit that exists but
// belongs to someone else is indistinguishable from one that does not exist.
func (r *habitRepository) GetOwned(ctx context.Context, id, userID uint) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.WithContext(ctx).
		Preload("Weekdays").
		Where("id = ? AND user_id = ?", id, userID).
		First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Habit", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &habit, nil
}

// DeleteOwned removes the habit and all of its weekday and completion rows in
// one transaction; either everything goes or nothing does.
func (r *habitRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	defer observability.TrackQuery("delete", "habits")()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Habit", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitWeekday{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.DayHabit{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&habit).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// Complete records a completion for the date and advances the streak
// counters atomically. HighestSequence tracks the best streak ever reached.
func (r *habitRepository) Complete(ctx context.Context, habit *models.Habit, date string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.DayHabit{HabitID: habit.ID, Date: date}).Error; err != nil {
			return models.NewInternalError(err)
		}
		habit.CurrentSequence++
		if habit.CurrentSequence > habit.HighestSequence {
			habit.HighestSequence = habit.CurrentSequence
		}
		if err := tx.Model(&models.Habit{}).Where("id = ?", habit.ID).Updates(map[string]interface{}{
			"current_sequence": habit.CurrentSequence,
			"highest_sequence": habit.HighestSequence,
		}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// Uncomplete removes the completion row for the date and steps the current
// streak back down. HighestSequence is monotone and never lowered.
func (r *habitRepository) Uncomplete(ctx context.Context, habit *models.Habit, date string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ? AND date = ?", habit.ID, date).Delete(&models.DayHabit{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if habit.CurrentSequence > 0 {
			habit.CurrentSequence--
		}
		if err := tx.Model(&models.Habit{}).Where("id = ?", habit.ID).
			Update("current_sequence", habit.CurrentSequence).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *habitRepository) IsCompleted(ctx context.Context, habitID uint, date string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DayHabit{}).
		Where("habit_id = ? AND date = ?", habitID, date).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// CompletedIDs returns the set of the user's habit ids completed on the date.
func (r *habitRepository) CompletedIDs(ctx context.Context, userID uint, date string) (map[uint]bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.DayHabit{}).
		Joins("JOIN habits ON habits.id = day_habits.habit_id").
		Where("habits.user_id = ? AND day_habits.date = ?", userID, date).
		Pluck("day_habits.habit_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	done := make(map[uint]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}
