package models

import "time"

const (
	EnrollmentNew       = "new"
	EnrollmentConfirmed = "confirmed"
	EnrollmentCompleted = "completed"
	EnrollmentCancelled = "cancelled"
)

type Enrollment struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	CourseID  int       `json:"course_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
