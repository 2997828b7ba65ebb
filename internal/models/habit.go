package models

import "time"

// Habit is a recurring task owned by one user, scheduled on a subset of
// weekdays and tracked with a current and historical-best completion streak.
// CurrentSequence never exceeds HighestSequence.
type Habit struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Name            string         `gorm:"not null" json:"name"`
	CurrentSequence int            `gorm:"not null;default:0" json:"current_sequence"`
	HighestSequence int            `gorm:"not null;default:0" json:"highest_sequence"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Weekdays        []HabitWeekday `gorm:"foreignKey:HabitID" json:"-"`

	// Days mirrors Weekdays as plain integers for API payloads.
	Days []int `gorm:"-" json:"days"`
}

// PopulateDays fills Days from the loaded Weekdays rows.
func (h *Habit) PopulateDays() {
	h.Days = make([]int, 0, len(h.Weekdays))
	for _, wd := range h.Weekdays {
		h.Days = append(h.Days, wd.Weekday)
	}
}

// ScheduledOn reports whether the habit recurs on the given weekday (0=Sunday).
func (h *Habit) ScheduledOn(weekday int) bool {
	for _, wd := range h.Weekdays {
		if wd.Weekday == weekday {
			return true
		}
	}
	return false
}

// HabitWeekday is one schedule row: the habit recurs on Weekday (0=Sunday
// through 6=Saturday, matching time.Weekday).
type HabitWeekday struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	HabitID uint `gorm:"not null;index" json:"-"`
	Weekday int  `gorm:"not null" json:"weekday"`
}

// DayHabit records that a habit was completed on one calendar date.
// Date is stored as YYYY-MM-DD to stay timezone- and driver-neutral.
type DayHabit struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	HabitID uint   `gorm:"not null;index" json:"habit_id"`
	Date    string `gorm:"size:10;not null;index" json:"date"`
}
