package services

import (
	"fmt"
	"log"
	"strings"

	"uniportal/internal/authz"
	"uniportal/internal/models"
	"uniportal/internal/repositories"
)

type UserService interface {
	Register(user *models.User, password string) error
	GetByID(id int) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)
	GetCountByRole(role string) (int, error)
	SetActive(id int, active bool) error
}

type userService struct {
	repo   repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService) UserService {
	return &userService{repo: repo, emails: emails, auth: auth}
}

func (s *userService) Register(user *models.User, password string) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if user.Username == "" || user.Email == "" {
		return fmt.Errorf("username and email are required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if !authz.IsValidRole(user.Role) {
		return fmt.Errorf("unknown role %q", user.Role)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.IsActive = true

	if err := s.repo.Create(user); err != nil {
		return err
	}

	// welcome email must never fail the registration
	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			log.Printf("[users][register] welcome email failed for %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) Update(user *models.User) error {
	if !authz.IsValidRole(user.Role) {
		return fmt.Errorf("unknown role %q", user.Role)
	}
	return s.repo.Update(user)
}

func (s *userService) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *userService) List(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) GetCount() (int, error) {
	return s.repo.GetCount()
}

func (s *userService) GetCountByRole(role string) (int, error) {
	return s.repo.GetCountByRole(role)
}

func (s *userService) SetActive(id int, active bool) error {
	return s.repo.SetActive(id, active)
}
