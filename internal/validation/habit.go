// Package validation contains request payload validation rules.
package validation

import "fmt"

// Weekday codes follow time.Weekday: 0=Sunday through 6=Saturday.
const (
	minWeekday = 0
	maxWeekday = 6
)

// ValidateHabitName rejects empty habit names.
func ValidateHabitName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ValidateHabitDays rejects an empty weekday set and any value outside 0-6.
func ValidateHabitDays(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("at least one weekday is required")
	}
	for _, d := range days {
		if d < minWeekday || d > maxWeekday {
			return fmt.Errorf("invalid weekday %d: must be between %d (Sunday) and %d (Saturday)", d, minWeekday, maxWeekday)
		}
	}
	return nil
}

// ValidateHabit checks a full create payload: non-empty name, non-empty set
// of recognized weekday codes.
func ValidateHabit(name string, days []int) error {
	if err := ValidateHabitName(name); err != nil {
		return err
	}
	return ValidateHabitDays(days)
}
