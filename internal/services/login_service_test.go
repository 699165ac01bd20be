package services

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"uniportal/internal/models"
	"uniportal/internal/token"
)

type loginFixture struct {
	svc   *LoginService
	users *memUserRepo
	otps  *memOTPRepo
	mail  *fakeMailer
	codec *token.Codec
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()
	users := newMemUserRepo()
	otps := newMemOTPRepo()
	mail := &fakeMailer{}
	codec := token.NewCodec("test-secret")
	otp := NewOTPService(otps, users, mail)
	return &loginFixture{
		svc:   NewLoginService(users, NewAuthService(), otp, codec),
		users: users,
		otps:  otps,
		mail:  mail,
		codec: codec,
	}
}

func (f *loginFixture) addUser(t *testing.T, username, password string, mfa, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		Username:        username,
		Email:           username + "@example.edu",
		PasswordHash:    string(hash),
		Role:            "student",
		FullName:        "Test User",
		IsActive:        active,
		MfaEmailEnabled: mfa,
	}
	if err := f.users.Create(u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestLoginWithoutMfa(t *testing.T) {
	f := newLoginFixture(t)
	f.addUser(t, "ama.owusu", "correct horse", false, true)

	res, err := f.svc.Login("ama.owusu", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.RequiresMfa {
		t.Fatal("mfa not enabled but challenge requested")
	}
	if res.User == nil || res.User.Username != "ama.owusu" || res.User.Role != "student" {
		t.Fatalf("unexpected summary: %+v", res.User)
	}

	claims := f.codec.Parse(res.Token)
	if claims == nil || claims.Kind != token.KindSession {
		t.Fatal("expected a full session token")
	}
	if claims.Role != "student" {
		t.Fatalf("token role = %q", claims.Role)
	}
	wantExp := time.Now().Add(token.SessionTTL)
	if d := claims.ExpiresAt.Time.Sub(wantExp); d < -time.Minute || d > time.Minute {
		t.Fatalf("session expiry off by %s", d)
	}
}

func TestLoginByEmail(t *testing.T) {
	f := newLoginFixture(t)
	f.addUser(t, "ama.owusu", "correct horse", false, true)

	if _, err := f.svc.Login("ama.owusu@example.edu", "correct horse"); err != nil {
		t.Fatalf("Login by email: %v", err)
	}
}

func TestLoginWithMfa(t *testing.T) {
	f := newLoginFixture(t)
	f.addUser(t, "kwame.mensah", "correct horse", true, true)

	res, err := f.svc.Login("kwame.mensah", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.RequiresMfa {
		t.Fatal("expected an mfa challenge")
	}
	// no account fields before the second factor
	if res.User != nil {
		t.Fatalf("identity leaked with pending login: %+v", res.User)
	}

	claims := f.codec.Parse(res.Token)
	if claims == nil || claims.Kind != token.KindMfaPending {
		t.Fatal("expected a pending token")
	}

	// exactly one issuance
	if n := len(f.mail.otpCodes); n != 1 {
		t.Fatalf("otp issued %d times, want 1", n)
	}
	rec := f.otps.last()
	if rec == nil || rec.Purpose != models.OTPPurposeMfa {
		t.Fatalf("unexpected otp record: %+v", rec)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newLoginFixture(t)
	f.addUser(t, "ama.owusu", "correct horse", false, true)

	// unknown user and wrong password are the same failure
	if _, err := f.svc.Login("nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
	if _, err := f.svc.Login("ama.owusu", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newLoginFixture(t)
	f.addUser(t, "ama.owusu", "correct horse", false, false)

	_, err := f.svc.Login("ama.owusu", "correct horse")
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("Login = %v, want ErrAccountDisabled", err)
	}
}

func TestLoginMfaDeliveryFailureStillChallenges(t *testing.T) {
	f := newLoginFixture(t)
	f.addUser(t, "kwame.mensah", "correct horse", true, true)
	f.mail.fail = true

	res, err := f.svc.Login("kwame.mensah", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.RequiresMfa || res.Token == "" {
		t.Fatal("challenge must proceed; the code row survives for a resend")
	}
}

func TestVerifyMfaPromotesSession(t *testing.T) {
	f := newLoginFixture(t)
	u := f.addUser(t, "kwame.mensah", "correct horse", true, true)

	if _, err := f.svc.Login("kwame.mensah", "correct horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	res, err := f.svc.VerifyMfa(u.ID, f.mail.lastCode())
	if err != nil {
		t.Fatalf("VerifyMfa: %v", err)
	}
	claims := f.codec.Parse(res.Token)
	if claims == nil || claims.Kind != token.KindSession || claims.Role != "student" {
		t.Fatal("expected a promoted session token")
	}
	if res.User == nil || res.User.ID != u.ID {
		t.Fatalf("unexpected summary: %+v", res.User)
	}
}

func TestVerifyMfaWrongCode(t *testing.T) {
	f := newLoginFixture(t)
	u := f.addUser(t, "kwame.mensah", "correct horse", true, true)

	if _, err := f.svc.Login("kwame.mensah", "correct horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := f.svc.VerifyMfa(u.ID, "000000"); !errors.Is(err, ErrCodeIncorrect) {
		t.Fatalf("VerifyMfa = %v, want ErrCodeIncorrect", err)
	}
	// record untouched; the real code still works
	if f.otps.last().UsedAt != nil {
		t.Fatal("failed verify must not consume the code")
	}
	if _, err := f.svc.VerifyMfa(u.ID, f.mail.lastCode()); err != nil {
		t.Fatalf("retry with real code: %v", err)
	}
}

func TestResendMfaSupersedes(t *testing.T) {
	f := newLoginFixture(t)
	u := f.addUser(t, "kwame.mensah", "correct horse", true, true)

	if _, err := f.svc.Login("kwame.mensah", "correct horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	first := f.mail.lastCode()

	if err := f.svc.ResendMfa(u.ID); err != nil {
		t.Fatalf("ResendMfa: %v", err)
	}
	if _, err := f.svc.VerifyMfa(u.ID, first); !errors.Is(err, ErrCodeUsed) {
		t.Fatalf("old code after resend = %v, want ErrCodeUsed", err)
	}
	if _, err := f.svc.VerifyMfa(u.ID, f.mail.lastCode()); err != nil {
		t.Fatalf("resent code: %v", err)
	}
}
