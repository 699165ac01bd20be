package services

import (
	"fmt"

	"uniportal/internal/models"
	"uniportal/internal/repositories"
)

type ProgramService struct {
	Repo *repositories.ProgramRepository
}

func NewProgramService(repo *repositories.ProgramRepository) *ProgramService {
	return &ProgramService{Repo: repo}
}

func (s *ProgramService) Create(p *models.Program) error {
	if p.Name == "" {
		return fmt.Errorf("program name is required")
	}
	if p.Degree == "" {
		p.Degree = "bachelor"
	}
	return s.Repo.Create(p)
}

func (s *ProgramService) GetByID(id int) (*models.Program, error) {
	return s.Repo.GetByID(id)
}

func (s *ProgramService) List(limit, offset int) ([]*models.Program, error) {
	return s.Repo.List(limit, offset)
}

func (s *ProgramService) Update(p *models.Program) error {
	return s.Repo.Update(p)
}

func (s *ProgramService) Delete(id int) error {
	return s.Repo.Delete(id)
}
