package model

// ContactMessage is submitted from the public contact page.
type ContactMessage struct {
	Name    string `json:"name" form:"name" binding:"required,notblank"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Subject string `json:"subject" form:"subject" binding:"required,notblank"`
	Message string `json:"message" form:"message" binding:"required,notblank"`
}
