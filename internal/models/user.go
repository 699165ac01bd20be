package models

import "time"

type User struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // never serialized
	Role            string    `json:"role"`
	FullName        string    `json:"full_name"`
	IsActive        bool      `json:"is_active"`
	MfaEmailEnabled bool      `json:"mfa_email_enabled"`
	CreatedAt       time.Time `json:"created_at"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AccountSummary is what a successful login returns; never the full row.
type AccountSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

func (u *User) Summary() *AccountSummary {
	return &AccountSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName,
	}
}
