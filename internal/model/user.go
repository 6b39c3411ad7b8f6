package model

// User is the profile the backend returns on login.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResult is the backend's login response.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
