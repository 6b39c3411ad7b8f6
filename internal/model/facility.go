package model

// Facility is a shipping or warehouse location.
type Facility struct {
	ID         string `json:"id"`
	Name       string `json:"name" form:"name" binding:"required,notblank"`
	Address    string `json:"address" form:"address" binding:"required,notblank"`
	City       string `json:"city" form:"city" binding:"required,notblank"`
	State      string `json:"state,omitempty" form:"state"`
	Country    string `json:"country" form:"country" binding:"required,notblank"`
	PostalCode string `json:"postalCode,omitempty" form:"postal_code"`
	Phone      string `json:"phone,omitempty" form:"phone"`
	Email      string `json:"email,omitempty" form:"email" binding:"omitempty,email"`
	Active     bool   `json:"isActive" form:"active"`
}
