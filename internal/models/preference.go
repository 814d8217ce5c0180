package models

import "time"

// Preference holds a user's non-critical UI settings
type Preference struct {
	UserID       string    `json:"user_id" gorm:"primaryKey;type:varchar(64)"`
	MusicStopped bool      `json:"music_stopped" gorm:"not null;default:false"`
	Volume       float64   `json:"volume" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the Preference model
func (Preference) TableName() string {
	return "preferences"
}

// All returns every model managed by migrations
func All() []any {
	return []any{&Bookmark{}, &BookmarkTag{}, &Preference{}}
}
