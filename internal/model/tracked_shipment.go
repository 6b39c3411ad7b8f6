package model

import "time"

// TrackedShipment remembers the last status observed for a tracking number
// that at least one visitor asked to be notified about.
type TrackedShipment struct {
	TrackingNumber string    `gorm:"primaryKey;size:32"`
	Status         string    `gorm:"size:128;not null;default:''"`
	ObservedAt     time.Time `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
