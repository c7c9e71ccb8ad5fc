package models

import "strings"

// User mirrors the backend user profile and is cached in the session.
type User struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role,omitempty"`
	Status      string    `json:"status,omitempty"`
	Balance     float64   `json:"balance,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AuthResult is the data of a login or registration response. Registration carries no token.
type AuthResult struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// ProfileUpdate is the PUT /users/{id} body.
type ProfileUpdate struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// PasswordChange is the PUT /users/{id}/password body.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
