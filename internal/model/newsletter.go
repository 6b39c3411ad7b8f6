package model

import "time"

// Subscriber is a newsletter mailing list entry.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Active       bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// SubscribeInput is the public newsletter signup form.
type SubscribeInput struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

// Campaign is a newsletter sent to all active subscribers.
type Campaign struct {
	Subject string `json:"subject" form:"subject" binding:"required,notblank"`
	Body    string `json:"body" form:"body" binding:"required,notblank"`
}

// CampaignResult is what the backend reports after sending.
type CampaignResult struct {
	Recipients int `json:"recipients"`
}
