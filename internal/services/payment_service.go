package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"uniportal/internal/models"
	"uniportal/internal/pdf"
	"uniportal/internal/repositories"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentService struct {
	Repo        *repositories.PaymentRepository
	Enrollments repositories.EnrollmentRepository
	Receipts    pdf.ReceiptGenerator
}

func NewPaymentService(repo *repositories.PaymentRepository, enrollments repositories.EnrollmentRepository, receipts pdf.ReceiptGenerator) *PaymentService {
	return &PaymentService{Repo: repo, Enrollments: enrollments, Receipts: receipts}
}

func (s *PaymentService) Record(enrollmentID int, amount float64, currency string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if currency == "" {
		currency = "USD"
	}

	e, err := s.Enrollments.GetByID(enrollmentID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEnrollmentNotFound
	}

	p := &models.Payment{
		EnrollmentID: enrollmentID,
		Amount:       amount,
		Currency:     currency,
		Status:       "paid",
	}

	// receipt generation failure must not fail the payment itself
	if s.Receipts != nil {
		path, err := s.Receipts.GenerateReceipt(pdf.ReceiptData{
			EnrollmentID: enrollmentID,
			StudentID:    e.StudentID,
			Amount:       amount,
			Currency:     currency,
			PaidAt:       time.Now(),
		})
		if err != nil {
			log.Printf("[payments][record] receipt generation failed enrollment_id=%d: %v", enrollmentID, err)
		} else {
			p.ReceiptPath = path
		}
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	log.Printf("[payments][record] ok payment_id=%d enrollment_id=%d amount=%.2f %s", p.ID, enrollmentID, amount, currency)
	return p, nil
}

func (s *PaymentService) GetByID(id int) (*models.Payment, error) {
	return s.Repo.GetByID(id)
}

func (s *PaymentService) ListByEnrollment(enrollmentID int) ([]*models.Payment, error) {
	return s.Repo.ListByEnrollment(enrollmentID)
}

func (s *PaymentService) Refund(id int) error {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPaymentNotFound
	}
	return s.Repo.UpdateStatus(id, "refunded")
}
