package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"uniportal/internal/models"
)

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: map[int]*models.User{}}
}

func (r *memUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByIdentifier(identifier string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*models.User, error) { return nil, nil }
func (r *memUserRepo) GetCount() (int, error)                         { return len(r.byID), nil }

func (r *memUserRepo) GetCountByRole(role string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) SetActive(id int, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.IsActive = active
	}
	return nil
}

type memOTPRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*models.OTPCode
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{nextID: 1}
}

func (r *memOTPRepo) Create(code *models.OTPCode) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code.ID = r.nextID
	r.nextID++
	code.CreatedAt = time.Now()
	r.rows = append(r.rows, code)
	return code.ID, nil
}

func (r *memOTPRepo) GetByCodeHash(userID int, purpose, codeHash string) (*models.OTPCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		c := r.rows[i]
		if c.UserID == userID && c.Purpose == purpose && c.CodeHash == codeHash {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memOTPRepo) InvalidateActive(userID int, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, c := range r.rows {
		if c.UserID == userID && c.Purpose == purpose && c.UsedAt == nil {
			t := now
			c.UsedAt = &t
		}
	}
	return nil
}

func (r *memOTPRepo) MarkUsed(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.ID == id {
			t := time.Now()
			c.UsedAt = &t
		}
	}
	return nil
}

func (r *memOTPRepo) last() *models.OTPCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rows) == 0 {
		return nil
	}
	return r.rows[len(r.rows)-1]
}

type fakeMailer struct {
	mu       sync.Mutex
	fail     bool
	otpCodes []string // codes handed to SendOtpEmail, in order
}

func (m *fakeMailer) SendOtpEmail(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.otpCodes = append(m.otpCodes, code)
	return nil
}

func (m *fakeMailer) SendWelcomeEmail(email, fullName string) error { return nil }

func (m *fakeMailer) SendEnrollmentConfirmation(email, courseTitle string) error { return nil }

func (m *fakeMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.otpCodes) == 0 {
		return ""
	}
	return m.otpCodes[len(m.otpCodes)-1]
}

func newOTPFixture(t *testing.T) (*OTPService, *memOTPRepo, *memUserRepo, *fakeMailer, *models.User) {
	t.Helper()
	users := newMemUserRepo()
	u := &models.User{Username: "kwame.mensah", Email: "kwame.mensah@example.edu", Role: "student", IsActive: true}
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}
	otps := newMemOTPRepo()
	mail := &fakeMailer{}
	return NewOTPService(otps, users, mail), otps, users, mail, u
}

func TestOTPIssueStoresHashNotCode(t *testing.T) {
	svc, otps, _, mail, u := newOTPFixture(t)

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	code := mail.lastCode()
	if len(code) != 6 {
		t.Fatalf("delivered code %q is not 6 digits", code)
	}
	rec := otps.last()
	if rec == nil {
		t.Fatal("no otp record persisted")
	}
	if rec.CodeHash == code {
		t.Fatal("raw code stored instead of its hash")
	}
	if len(rec.CodeHash) != 64 {
		t.Fatalf("code hash %q is not sha256 hex", rec.CodeHash)
	}
	if rec.Purpose != models.OTPPurposeMfa {
		t.Fatalf("purpose = %q", rec.Purpose)
	}
}

func TestOTPVerifyHappyPathThenReplay(t *testing.T) {
	svc, otps, _, mail, u := newOTPFixture(t)

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	code := mail.lastCode()

	if err := svc.Verify(u.ID, code, models.OTPPurposeMfa); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	if otps.last().UsedAt == nil {
		t.Fatal("used_at not set after successful verify")
	}

	// a code is never accepted twice
	if err := svc.Verify(u.ID, code, models.OTPPurposeMfa); !errors.Is(err, ErrCodeUsed) {
		t.Fatalf("second Verify = %v, want ErrCodeUsed", err)
	}
}

func TestOTPVerifyWrongCode(t *testing.T) {
	svc, otps, _, _, u := newOTPFixture(t)

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := svc.Verify(u.ID, "000000", models.OTPPurposeMfa); !errors.Is(err, ErrCodeIncorrect) {
		t.Fatalf("Verify = %v, want ErrCodeIncorrect", err)
	}
	if otps.last().UsedAt != nil {
		t.Fatal("wrong guess must not consume the record")
	}
}

func TestOTPVerifyEmptyCode(t *testing.T) {
	svc, _, _, _, u := newOTPFixture(t)
	if err := svc.Verify(u.ID, "", models.OTPPurposeMfa); !errors.Is(err, ErrCodeIncorrect) {
		t.Fatalf("Verify(\"\") = %v, want ErrCodeIncorrect", err)
	}
}

func TestOTPExpiryBoundary(t *testing.T) {
	svc, otps, _, mail, u := newOTPFixture(t)

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 600*time.Second); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	code := mail.lastCode()
	rec := otps.last()

	// one second of validity left: still accepted
	rec.ExpiresAt = time.Now().Add(time.Second)
	if err := svc.Verify(u.ID, code, models.OTPPurposeMfa); err != nil {
		t.Fatalf("Verify just before expiry: %v", err)
	}

	// past expiry: rejected as expired, not as wrong
	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 600*time.Second); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	code = mail.lastCode()
	rec = otps.last()
	rec.ExpiresAt = time.Now().Add(-time.Second)
	if err := svc.Verify(u.ID, code, models.OTPPurposeMfa); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("Verify past expiry = %v, want ErrCodeExpired", err)
	}
}

func TestOTPReissueSupersedes(t *testing.T) {
	svc, _, _, mail, u := newOTPFixture(t)

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	first := mail.lastCode()

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute); err != nil {
		t.Fatalf("reissue: %v", err)
	}
	second := mail.lastCode()

	// the old code dies on reissue even though its TTL has not passed
	if err := svc.Verify(u.ID, first, models.OTPPurposeMfa); !errors.Is(err, ErrCodeUsed) {
		t.Fatalf("old code Verify = %v, want ErrCodeUsed", err)
	}
	if err := svc.Verify(u.ID, second, models.OTPPurposeMfa); err != nil {
		t.Fatalf("new code Verify: %v", err)
	}
}

func TestOTPTTLFloor(t *testing.T) {
	svc, otps, _, _, u := newOTPFixture(t)

	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 5*time.Second); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	rec := otps.last()
	if until := time.Until(rec.ExpiresAt); until < 59*time.Second {
		t.Fatalf("ttl floor not applied, expires in %s", until)
	}
}

func TestOTPDeliveryFailureKeepsRecord(t *testing.T) {
	svc, otps, _, mail, u := newOTPFixture(t)
	mail.fail = true

	err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute)
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("Issue = %v, want ErrDeliveryFailed", err)
	}
	rec := otps.last()
	if rec == nil || rec.UsedAt != nil {
		t.Fatal("record must persist and stay live after a delivery failure")
	}
}

func TestOTPIssueWithoutAddress(t *testing.T) {
	svc, _, users, _, _ := newOTPFixture(t)
	u := &models.User{Username: "noemail", Role: "student", IsActive: true}
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}
	if err := svc.Issue(u.ID, models.OTPPurposeMfa, 10*time.Minute); err == nil {
		t.Fatal("Issue must fail for a user without a delivery address")
	}
}
