package model

import "time"

// Donation is a recorded contribution.
type Donation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DonationInput is the public donation form.
type DonationInput struct {
	Name     string  `json:"name" form:"name" binding:"required,notblank"`
	Email    string  `json:"email" form:"email" binding:"required,email"`
	Amount   float64 `json:"amount" form:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" form:"currency"`
	Message  string  `json:"message,omitempty" form:"message"`
}
