package models

import "time"

type Program struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Degree      string    `json:"degree"` // bachelor / master / phd
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
