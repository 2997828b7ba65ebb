package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"habitkit/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHabit_AuthRequired(t *testing.T) {
	t.Parallel()

	app, _ := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Read", "days": []int{1}}, ""))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Read", "days": []int{1}}, uuid.New().String()))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCreateHabit(t *testing.T) {
	t.Parallel()

	app, db := newTestServer(t)
	user := createTestUser(t, db, "secret123")
	token := createTestSession(t, db, user.ID)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty weekday set persists nothing", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Read", "days": []int{}}, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Habit{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Read", "days": []int{8}}, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty name", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "", "days": []int{1}}, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("valid payload", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Drink water", "days": []int{1, 3, 5}}, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var habit models.Habit
		decodeJSON(t, resp, &habit)
		assert.NotZero(t, habit.ID)
		assert.Equal(t, "Drink water", habit.Name)
		assert.Equal(t, user.ID, habit.UserID)
		assert.Equal(t, []int{1, 3, 5}, habit.Days)
		assert.Equal(t, 0, habit.CurrentSequence)
		assert.Equal(t, 0, habit.HighestSequence)

		var weekdayCount int64
		require.NoError(t, db.Model(&models.HabitWeekday{}).
			Where("habit_id = ?", habit.ID).Count(&weekdayCount).Error)
		assert.EqualValues(t, 3, weekdayCount)
	})
}

func TestGetHabits(t *testing.T) {
	t.Parallel()

	app, db := newTestServer(t)
	user := createTestUser(t, db, "secret123")
	token := createTestSession(t, db, user.ID)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/habits", nil, ""))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty list", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/habits", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var habits []models.Habit
		decodeJSON(t, resp, &habits)
		assert.Empty(t, habits)
	})

	t.Run("only the caller's habits", func(t *testing.T) {
		other := createTestUser(t, db, "secret123")
		otherToken := createTestSession(t, db, other.ID)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Mine", "days": []int{2}}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp, err = app.Test(jsonRequest(t, http.MethodPost, "/habits",
			map[string]interface{}{"name": "Theirs", "days": []int{4}}, otherToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/habits", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var habits []models.Habit
		decodeJSON(t, resp, &habits)
		require.Len(t, habits, 1)
		assert.Equal(t, "Mine", habits[0].Name)
		assert.Equal(t, []int{2}, habits[0].Days)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Parallel()

	app, db := newTestServer(t)
	user := createTestUser(t, db, "secret123")
	token := createTestSession(t, db, user.ID)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/habits/1", nil, ""))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/habits/abc", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("zero id", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/habits/0", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/habits/9999", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("someone else's habit", func(t *testing.T) {
		other := createTestUser(t, db, "secret123")
		theirs := &models.Habit{UserID: other.ID, Name: "Theirs",
			Weekdays: []models.HabitWeekday{{Weekday: 1}}}
		require.NoError(t, db.Create(theirs).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodDelete,
			"/habits/"+itoa(theirs.ID), nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Habit{}).Where("id = ?", theirs.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("owned habit cascades", func(t *testing.T) {
		mine := &models.Habit{UserID: user.ID, Name: "Mine",
			Weekdays: []models.HabitWeekday{{Weekday: 1}, {Weekday: 3}}}
		require.NoError(t, db.Create(mine).Error)
		require.NoError(t, db.Create(&models.DayHabit{HabitID: mine.ID, Date: "2025-03-12"}).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodDelete,
			"/habits/"+itoa(mine.ID), nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var habits, weekdays, completions int64
		require.NoError(t, db.Model(&models.Habit{}).Where("id = ?", mine.ID).Count(&habits).Error)
		require.NoError(t, db.Model(&models.HabitWeekday{}).Where("habit_id = ?", mine.ID).Count(&weekdays).Error)
		require.NoError(t, db.Model(&models.DayHabit{}).Where("habit_id = ?", mine.ID).Count(&completions).Error)
		assert.Zero(t, habits)
		assert.Zero(t, weekdays)
		assert.Zero(t, completions)
	})
}

func TestCheckAndUncheckHabit(t *testing.T) {
	t.Parallel()

	app, db := newTestServer(t)
	user := createTestUser(t, db, "secret123")
	token := createTestSession(t, db, user.ID)

	// Scheduled every day so the handler's time.Now() always matches.
	daily := &models.Habit{UserID: user.ID, Name: "Daily", Weekdays: allWeekdays()}
	require.NoError(t, db.Create(daily).Error)

	t.Run("check records today's completion", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			"/habits/"+itoa(daily.ID)+"/check", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var habit models.Habit
		decodeJSON(t, resp, &habit)
		assert.Equal(t, 1, habit.CurrentSequence)
		assert.Equal(t, 1, habit.HighestSequence)

		var count int64
		require.NoError(t, db.Model(&models.DayHabit{}).
			Where("habit_id = ? AND date = ?", daily.ID, time.Now().Format("2006-01-02")).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("double check rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			"/habits/"+itoa(daily.ID)+"/check", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("uncheck reverses the completion, best streak stays", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			"/habits/"+itoa(daily.ID)+"/uncheck", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var habit models.Habit
		decodeJSON(t, resp, &habit)
		assert.Equal(t, 0, habit.CurrentSequence)
		assert.Equal(t, 1, habit.HighestSequence)
	})

	t.Run("uncheck without a completion rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			"/habits/"+itoa(daily.ID)+"/uncheck", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("check a habit not scheduled today", func(t *testing.T) {
		tomorrow := (int(time.Now().Weekday()) + 1) % 7
		offDay := &models.Habit{UserID: user.ID, Name: "Off day",
			Weekdays: []models.HabitWeekday{{Weekday: tomorrow}}}
		require.NoError(t, db.Create(offDay).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			"/habits/"+itoa(offDay.ID)+"/check", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("check someone else's habit", func(t *testing.T) {
		other := createTestUser(t, db, "secret123")
		theirs := &models.Habit{UserID: other.ID, Name: "Theirs", Weekdays: allWeekdays()}
		require.NoError(t, db.Create(theirs).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			"/habits/"+itoa(theirs.ID)+"/check", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
