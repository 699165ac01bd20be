package services

import (
	"errors"
	"fmt"

	"uniportal/internal/models"
	"uniportal/internal/repositories"
)

type CourseService struct {
	Repo     *repositories.CourseRepository
	Programs *repositories.ProgramRepository
}

func NewCourseService(repo *repositories.CourseRepository, programs *repositories.ProgramRepository) *CourseService {
	return &CourseService{Repo: repo, Programs: programs}
}

func (s *CourseService) Create(c *models.Course) error {
	if c.Code == "" || c.Title == "" {
		return fmt.Errorf("course code and title are required")
	}
	if s.Programs != nil {
		p, err := s.Programs.GetByID(c.ProgramID)
		if err != nil {
			return err
		}
		if p == nil {
			return errors.New("program not found")
		}
	}
	if c.Credits <= 0 {
		c.Credits = 3
	}
	return s.Repo.Create(c)
}

func (s *CourseService) GetByID(id int) (*models.Course, error) {
	return s.Repo.GetByID(id)
}

func (s *CourseService) List(limit, offset int) ([]*models.Course, error) {
	return s.Repo.List(limit, offset)
}

func (s *CourseService) ListByInstructor(instructorID, limit, offset int) ([]*models.Course, error) {
	return s.Repo.ListByInstructor(instructorID, limit, offset)
}

func (s *CourseService) Update(c *models.Course) error {
	return s.Repo.Update(c)
}

func (s *CourseService) Delete(id int) error {
	return s.Repo.Delete(id)
}
