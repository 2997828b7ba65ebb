package repository

import (
	"context"
	"errors"
	"testing"

	"habitkit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHabitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitWeekday{},
		&models.DayHabit{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createHabit(t *testing.T, repo HabitRepository, userID uint, name string, days []int) *models.Habit {
	t.Helper()
	weekdays := make([]models.HabitWeekday, 0, len(days))
	for _, d := range days {
		weekdays = append(weekdays, models.HabitWeekday{Weekday: d})
	}
	habit := &models.Habit{UserID: userID, Name: name, Weekdays: weekdays}
	require.NoError(t, repo.Create(context.Background(), habit))
	return habit
}

func TestHabitRepository_Create(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)

	habit := createHabit(t, repo, 1, "Drink water", []int{1, 3, 5})
	require.NotZero(t, habit.ID)

	var weekdayCount int64
	require.NoError(t, db.Model(&models.HabitWeekday{}).
		Where("habit_id = ?", habit.ID).Count(&weekdayCount).Error)
	assert.EqualValues(t, 3, weekdayCount)

	var stored models.Habit
	require.NoError(t, db.First(&stored, habit.ID).Error)
	assert.Equal(t, 0, stored.CurrentSequence)
	assert.Equal(t, 0, stored.HighestSequence)
}

func TestHabitRepository_ListByUser(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	first := createHabit(t, repo, 1, "Read", []int{2})
	second := createHabit(t, repo, 1, "Run", []int{4, 6})
	createHabit(t, repo, 2, "Someone else's", []int{0})

	habits, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, habits, 2)

	assert.Equal(t, first.ID, habits[0].ID)
	assert.Equal(t, second.ID, habits[1].ID)
	assert.Len(t, habits[0].Weekdays, 1)
	assert.Len(t, habits[1].Weekdays, 2)

	habits, err = repo.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestHabitRepository_GetOwned(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := createHabit(t, repo, 1, "Read", []int{2, 4})

	got, err := repo.GetOwned(ctx, habit.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, habit.ID, got.ID)
	assert.Len(t, got.Weekdays, 2)

	// Another user's lookup of the same id must be indistinguishable from a
	// missing habit.
	_, err = repo.GetOwned(ctx, habit.ID, 2)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	_, err = repo.GetOwned(ctx, 9999, 1)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestHabitRepository_DeleteOwned(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := createHabit(t, repo, 1, "Read", []int{1, 2})
	require.NoError(t, repo.Complete(ctx, habit, "2025-03-12"))

	t.Run("unowned delete leaves rows intact", func(t *testing.T) {
		err := repo.DeleteOwned(ctx, habit.ID, 2)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)

		var count int64
		require.NoError(t, db.Model(&models.Habit{}).Where("id = ?", habit.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("owned delete cascades schedule and completions", func(t *testing.T) {
		require.NoError(t, repo.DeleteOwned(ctx, habit.ID, 1))

		var habits, weekdays, completions int64
		require.NoError(t, db.Model(&models.Habit{}).Where("id = ?", habit.ID).Count(&habits).Error)
		require.NoError(t, db.Model(&models.HabitWeekday{}).Where("habit_id = ?", habit.ID).Count(&weekdays).Error)
		require.NoError(t, db.Model(&models.DayHabit{}).Where("habit_id = ?", habit.ID).Count(&completions).Error)
		assert.Zero(t, habits)
		assert.Zero(t, weekdays)
		assert.Zero(t, completions)
	})
}

func TestHabitRepository_CompleteAndUncomplete(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := createHabit(t, repo, 1, "Read", []int{1})

	require.NoError(t, repo.Complete(ctx, habit, "2025-03-12"))
	assert.Equal(t, 1, habit.CurrentSequence)
	assert.Equal(t, 1, habit.HighestSequence)

	done, err := repo.IsCompleted(ctx, habit.ID, "2025-03-12")
	require.NoError(t, err)
	assert.True(t, done)

	done, err = repo.IsCompleted(ctx, habit.ID, "2025-03-13")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, repo.Complete(ctx, habit, "2025-03-13"))
	assert.Equal(t, 2, habit.CurrentSequence)
	assert.Equal(t, 2, habit.HighestSequence)

	// Unchecking steps the current streak down but never the historical best.
	require.NoError(t, repo.Uncomplete(ctx, habit, "2025-03-13"))
	assert.Equal(t, 1, habit.CurrentSequence)
	assert.Equal(t, 2, habit.HighestSequence)

	done, err = repo.IsCompleted(ctx, habit.ID, "2025-03-13")
	require.NoError(t, err)
	assert.False(t, done)

	var stored models.Habit
	require.NoError(t, db.First(&stored, habit.ID).Error)
	assert.Equal(t, 1, stored.CurrentSequence)
	assert.Equal(t, 2, stored.HighestSequence)
}

func TestHabitRepository_Uncomplete_FloorsAtZero(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := createHabit(t, repo, 1, "Read", []int{1})

	require.NoError(t, repo.Uncomplete(ctx, habit, "2025-03-12"))
	assert.Equal(t, 0, habit.CurrentSequence)

	var stored models.Habit
	require.NoError(t, db.First(&stored, habit.ID).Error)
	assert.Equal(t, 0, stored.CurrentSequence)
}

func TestHabitRepository_CompletedIDs(t *testing.T) {
	t.Parallel()

	db := setupHabitTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	mine := createHabit(t, repo, 1, "Read", []int{1})
	alsoMine := createHabit(t, repo, 1, "Run", []int{1})
	theirs := createHabit(t, repo, 2, "Swim", []int{1})

	require.NoError(t, repo.Complete(ctx, mine, "2025-03-12"))
	require.NoError(t, repo.Complete(ctx, theirs, "2025-03-12"))
	require.NoError(t, repo.Complete(ctx, alsoMine, "2025-03-11"))

	done, err := repo.CompletedIDs(ctx, 1, "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{mine.ID: true}, done)

	done, err = repo.CompletedIDs(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	assert.Empty(t, done)
}
