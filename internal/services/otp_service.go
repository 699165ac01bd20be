package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"uniportal/internal/models"
	"uniportal/internal/repositories"
)

var (
	ErrCodeIncorrect = errors.New("Incorrect code.")
	ErrCodeUsed      = errors.New("Code already used.")
	ErrCodeExpired   = errors.New("Code expired.")
	// ErrDeliveryFailed means the code row was persisted but the email
	// did not go out; a resend supersedes it.
	ErrDeliveryFailed = errors.New("failed to deliver code")
)

// minCodeTTL is the floor applied to requested TTLs.
const minCodeTTL = 60 * time.Second

// OTPService issues and verifies single-use 6-digit codes scoped to a
// user and a purpose tag. Only the sha256 of a code is stored.
type OTPService struct {
	Repo   repositories.OTPRepository
	Users  repositories.UserRepository
	Emails EmailService
}

func NewOTPService(repo repositories.OTPRepository, users repositories.UserRepository, emails EmailService) *OTPService {
	return &OTPService{Repo: repo, Users: users, Emails: emails}
}

// generateCode returns a uniformly random code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Issue supersedes any live code for (user, purpose), persists a new one
// and emails it. The row stays valid even when delivery fails.
func (s *OTPService) Issue(userID int, purpose string, ttl time.Duration) error {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.Email == "" {
		return fmt.Errorf("no delivery address for user %d", userID)
	}

	if err := s.Repo.InvalidateActive(userID, purpose); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if ttl < minCodeTTL {
		ttl = minCodeTTL
	}
	rec := &models.OTPCode{
		UserID:    userID,
		CodeHash:  hashCode(code),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}
	if _, err := s.Repo.Create(rec); err != nil {
		return err
	}

	if err := s.Emails.SendOtpEmail(user.Email, code); err != nil {
		log.Printf("[otp][issue] delivery failed user_id=%d purpose=%s: %v", userID, purpose, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Printf("[otp][issue] ok user_id=%d purpose=%s expires_at=%s", userID, purpose, rec.ExpiresAt.Format(time.RFC3339))
	return nil
}

// Verify matches by exact hash, so a missing row and a wrong code are
// the same failure. A matching row fails on used_at, then on expiry,
// and is otherwise consumed.
func (s *OTPService) Verify(userID int, code, purpose string) error {
	if code == "" {
		return ErrCodeIncorrect
	}
	rec, err := s.Repo.GetByCodeHash(userID, purpose, hashCode(code))
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrCodeIncorrect
	}
	if rec.UsedAt != nil {
		return ErrCodeUsed
	}
	if time.Now().After(rec.ExpiresAt) {
		return ErrCodeExpired
	}
	if err := s.Repo.MarkUsed(rec.ID); err != nil {
		return err
	}
	log.Printf("[otp][verify] ok user_id=%d purpose=%s", userID, purpose)
	return nil
}
