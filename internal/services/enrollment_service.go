package services

import (
	"errors"
	"log"

	"uniportal/internal/models"
	"uniportal/internal/repositories"
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrCourseFull         = errors.New("course is full")
	ErrBadTransition      = errors.New("illegal status transition")
)

// legal enrollment status transitions
var enrollmentTransitions = map[string][]string{
	models.EnrollmentNew:       {models.EnrollmentConfirmed, models.EnrollmentCancelled},
	models.EnrollmentConfirmed: {models.EnrollmentCompleted, models.EnrollmentCancelled},
}

func canTransition(from, to string) bool {
	for _, s := range enrollmentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CourseGetter is the slice of the course repository enrollment needs.
type CourseGetter interface {
	GetByID(id int) (*models.Course, error)
}

type EnrollmentService struct {
	Repo    repositories.EnrollmentRepository
	Courses CourseGetter
	Users   repositories.UserRepository
	Emails  EmailService
}

func NewEnrollmentService(repo repositories.EnrollmentRepository, courses CourseGetter, users repositories.UserRepository, emails EmailService) *EnrollmentService {
	return &EnrollmentService{Repo: repo, Courses: courses, Users: users, Emails: emails}
}

// Enroll is idempotent: an existing non-cancelled enrollment for the
// same student and course is returned as-is.
func (s *EnrollmentService) Enroll(studentID, courseID int) (*models.Enrollment, error) {
	course, err := s.Courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	existing, err := s.Repo.GetByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != models.EnrollmentCancelled {
		return existing, nil
	}

	if course.Capacity > 0 {
		taken, err := s.Repo.GetCountByCourse(courseID)
		if err != nil {
			return nil, err
		}
		if taken >= course.Capacity {
			return nil, ErrCourseFull
		}
	}

	e := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    models.EnrollmentNew,
	}
	if err := s.Repo.Create(e); err != nil {
		return nil, err
	}
	log.Printf("[enrollments][enroll] student_id=%d course_id=%d enrollment_id=%d", studentID, courseID, e.ID)
	return e, nil
}

func (s *EnrollmentService) UpdateStatus(id int, status string) (*models.Enrollment, error) {
	e, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEnrollmentNotFound
	}
	if !canTransition(e.Status, status) {
		return nil, ErrBadTransition
	}
	if err := s.Repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	e.Status = status

	// confirmation notice is fire-and-forget
	if status == models.EnrollmentConfirmed && s.Emails != nil && s.Users != nil {
		if student, err := s.Users.GetByID(e.StudentID); err == nil && student != nil {
			title := ""
			if course, err := s.Courses.GetByID(e.CourseID); err == nil && course != nil {
				title = course.Title
			}
			if err := s.Emails.SendEnrollmentConfirmation(student.Email, title); err != nil {
				log.Printf("[enrollments][confirm] email failed enrollment_id=%d: %v", e.ID, err)
			}
		}
	}
	return e, nil
}

func (s *EnrollmentService) GetByID(id int) (*models.Enrollment, error) {
	return s.Repo.GetByID(id)
}

func (s *EnrollmentService) ListByStudent(studentID, limit, offset int) ([]*models.Enrollment, error) {
	return s.Repo.ListByStudent(studentID, limit, offset)
}

func (s *EnrollmentService) ListByCourse(courseID, limit, offset int) ([]*models.Enrollment, error) {
	return s.Repo.ListByCourse(courseID, limit, offset)
}
