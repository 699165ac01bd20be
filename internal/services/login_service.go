package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"uniportal/internal/models"
	"uniportal/internal/repositories"
	"uniportal/internal/token"
)

var (
	// same message for unknown user and wrong password
	ErrInvalidCredentials = errors.New("Invalid username or password")
	// deliberately distinct: at this point the password already matched
	ErrAccountDisabled = errors.New("Account is disabled")
	ErrNoPendingLogin  = errors.New("Session expired, please log in again.")
)

// how long an emailed login code stays valid
const mfaCodeTTL = 10 * time.Minute

type LoginResult struct {
	RequiresMfa bool
	Token       string // pending token when RequiresMfa, session token otherwise
	User        *models.AccountSummary
}

// LoginService drives credential verification and the optional OTP
// challenge up to a promoted session.
type LoginService struct {
	Users repositories.UserRepository
	Auth  AuthService
	OTP   *OTPService
	Codec *token.Codec
}

func NewLoginService(users repositories.UserRepository, auth AuthService, otp *OTPService, codec *token.Codec) *LoginService {
	return &LoginService{Users: users, Auth: auth, OTP: otp, Codec: codec}
}

func (s *LoginService) Login(identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := s.Users.GetByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Printf("[auth][login] unknown identifier=%q", identifier)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Printf("[auth][login] disabled account user_id=%d", user.ID)
		return nil, ErrAccountDisabled
	}
	if !s.Auth.CheckPassword(user.PasswordHash, password) {
		log.Printf("[auth][login] password mismatch user_id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	if user.MfaEmailEnabled {
		if err := s.OTP.Issue(user.ID, models.OTPPurposeMfa, mfaCodeTTL); err != nil {
			// the code row survives a delivery failure; the user can hit
			// resend, so the challenge still proceeds
			if !errors.Is(err, ErrDeliveryFailed) {
				return nil, err
			}
			log.Printf("[auth][login] otp delivery failed user_id=%d: %v", user.ID, err)
		}
		pending, err := s.Codec.IssuePending(user.ID)
		if err != nil {
			return nil, err
		}
		log.Printf("[auth][login] mfa challenge issued user_id=%d", user.ID)
		return &LoginResult{RequiresMfa: true, Token: pending}, nil
	}

	session, err := s.Codec.IssueSession(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	log.Printf("[auth][login] success user_id=%d role=%s", user.ID, user.Role)
	return &LoginResult{Token: session, User: user.Summary()}, nil
}

// ResendMfa supersedes the previous code for the subject of a live
// pending token.
func (s *LoginService) ResendMfa(userID int) error {
	return s.OTP.Issue(userID, models.OTPPurposeMfa, mfaCodeTTL)
}

// VerifyMfa promotes a pending login to a full session. On failure the
// pending state stays intact so the client may retry or resend.
func (s *LoginService) VerifyMfa(userID int, code string) (*LoginResult, error) {
	if err := s.OTP.Verify(userID, code, models.OTPPurposeMfa); err != nil {
		return nil, err
	}

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrAccountDisabled
	}

	session, err := s.Codec.IssueSession(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	log.Printf("[auth][mfa] verified user_id=%d role=%s", user.ID, user.Role)
	return &LoginResult{Token: session, User: user.Summary()}, nil
}
