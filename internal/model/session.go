package model

import "time"

// Session is the server-side half of a browser login. The cookie only
// carries ID.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Token     string    `gorm:"type:text;not null"`
	UserJSON  string    `gorm:"column:user_json;type:text;not null"`
	Flash     string    `gorm:"type:text"`
	FlashKind string    `gorm:"size:16"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
