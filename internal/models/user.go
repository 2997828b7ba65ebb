// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Passwords are stored bcrypt-hashed
// and never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Image     string    `json:"image"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Habits    []Habit   `gorm:"foreignKey:UserID" json:"habits,omitempty"`
}
