package services

import (
	"uniportal/internal/authz"
	"uniportal/internal/models"
	"uniportal/internal/repositories"
)

type Summary struct {
	Admins      int     `json:"admins"`
	Instructors int     `json:"instructors"`
	Students    int     `json:"students"`
	Programs    int     `json:"programs"`
	Courses     int     `json:"courses"`
	Enrollments int     `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
}

type AnalyticsService struct {
	Users       repositories.UserRepository
	Programs    *repositories.ProgramRepository
	Courses     *repositories.CourseRepository
	Enrollments repositories.EnrollmentRepository
	Payments    *repositories.PaymentRepository
}

func NewAnalyticsService(
	users repositories.UserRepository,
	programs *repositories.ProgramRepository,
	courses *repositories.CourseRepository,
	enrollments repositories.EnrollmentRepository,
	payments *repositories.PaymentRepository,
) *AnalyticsService {
	return &AnalyticsService{
		Users:       users,
		Programs:    programs,
		Courses:     courses,
		Enrollments: enrollments,
		Payments:    payments,
	}
}

func (s *AnalyticsService) GetSummary() (*Summary, error) {
	out := &Summary{}
	var err error
	if out.Admins, err = s.Users.GetCountByRole(authz.RoleAdmin); err != nil {
		return nil, err
	}
	if out.Instructors, err = s.Users.GetCountByRole(authz.RoleInstructor); err != nil {
		return nil, err
	}
	if out.Students, err = s.Users.GetCountByRole(authz.RoleStudent); err != nil {
		return nil, err
	}
	if out.Programs, err = s.Programs.GetCount(); err != nil {
		return nil, err
	}
	if out.Courses, err = s.Courses.GetCount(); err != nil {
		return nil, err
	}
	if out.Enrollments, err = s.Enrollments.GetCount(); err != nil {
		return nil, err
	}
	if out.Revenue, err = s.Payments.GetTotalPaid(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AnalyticsService) FilterEnrollments(status string, courseID, limit, offset int) ([]*models.Enrollment, error) {
	return s.Enrollments.Filter(status, courseID, limit, offset)
}
