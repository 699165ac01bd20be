package models

import "time"

type Payment struct {
	ID           int       `json:"id"`
	EnrollmentID int       `json:"enrollment_id"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"` // pending / paid / refunded
	ReceiptPath  string    `json:"receipt_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
