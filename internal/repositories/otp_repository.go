package repositories

import (
	"database/sql"
	"fmt"

	"uniportal/internal/models"
)

type OTPRepository interface {
	Create(code *models.OTPCode) (int64, error)
	// GetByCodeHash finds the newest code matching the exact hash for
	// this user and purpose, consumed or not.
	GetByCodeHash(userID int, purpose, codeHash string) (*models.OTPCode, error)
	// InvalidateActive marks every unconsumed code for (user, purpose)
	// as used. Called before each new issue so at most one live code
	// exists per flow.
	InvalidateActive(userID int, purpose string) error
	MarkUsed(id int64) error
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Create(code *models.OTPCode) (int64, error) {
	const q = `
		INSERT INTO otp_codes (user_id, code_hash, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		code.UserID, code.CodeHash, code.Purpose, code.ExpiresAt,
	).Scan(&code.ID, &code.CreatedAt); err != nil {
		return 0, fmt.Errorf("create otp code: %w", err)
	}
	return code.ID, nil
}

func (r *otpRepository) GetByCodeHash(userID int, purpose, codeHash string) (*models.OTPCode, error) {
	const q = `
		SELECT id, user_id, code_hash, purpose, expires_at, created_at, used_at
		FROM otp_codes
		WHERE user_id = $1 AND purpose = $2 AND code_hash = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, userID, purpose, codeHash)

	c := &models.OTPCode{}
	var usedAt sql.NullTime
	if err := row.Scan(&c.ID, &c.UserID, &c.CodeHash, &c.Purpose, &c.ExpiresAt, &c.CreatedAt, &usedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp by hash: %w", err)
	}
	if usedAt.Valid {
		c.UsedAt = &usedAt.Time
	}
	return c, nil
}

func (r *otpRepository) InvalidateActive(userID int, purpose string) error {
	const q = `
		UPDATE otp_codes SET used_at = NOW()
		WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL
	`
	if _, err := r.DB.Exec(q, userID, purpose); err != nil {
		return fmt.Errorf("invalidate otp codes: %w", err)
	}
	return nil
}

func (r *otpRepository) MarkUsed(id int64) error {
	if _, err := r.DB.Exec(`UPDATE otp_codes SET used_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark otp used: %w", err)
	}
	return nil
}
