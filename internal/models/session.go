package models

import "time"

// Session binds an opaque bearer token to one user. The token carries no
// claims; validity means the row exists. There is no expiry column, so a
// session lives until logout deletes the row.
type Session struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
