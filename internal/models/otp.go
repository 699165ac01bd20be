package models

import "time"

// OTPCode is one issued code. Rows are never deleted: superseded and
// consumed codes keep used_at set, expired ones just sit until a
// maintenance job removes them.
type OTPCode struct {
	ID        int64      `json:"id"`
	UserID    int        `json:"user_id"`
	CodeHash  string     `json:"-"` // sha256 hex of the 6-digit code
	Purpose   string     `json:"purpose"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

const OTPPurposeMfa = "mfa"
