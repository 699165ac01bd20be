package models

import "time"

type Course struct {
	ID           int       `json:"id"`
	ProgramID    int       `json:"program_id"`
	InstructorID int       `json:"instructor_id"`
	Code         string    `json:"code"` // e.g. CS101
	Title        string    `json:"title"`
	Credits      int       `json:"credits"`
	Capacity     int       `json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
}
