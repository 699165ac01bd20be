package repositories

import (
	"database/sql"
	"fmt"

	"uniportal/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	const q = `
		INSERT INTO payments (enrollment_id, amount, currency, status, receipt_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		p.EnrollmentID, p.Amount, p.Currency, p.Status, p.ReceiptPath,
	).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(id int) (*models.Payment, error) {
	const q = `
		SELECT id, enrollment_id, amount, currency, status, receipt_path, created_at
		FROM payments WHERE id = $1
	`
	p := &models.Payment{}
	if err := r.DB.QueryRow(q, id).Scan(
		&p.ID, &p.EnrollmentID, &p.Amount, &p.Currency, &p.Status, &p.ReceiptPath, &p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) ListByEnrollment(enrollmentID int) ([]*models.Payment, error) {
	const q = `
		SELECT id, enrollment_id, amount, currency, status, receipt_path, created_at
		FROM payments WHERE enrollment_id = $1 ORDER BY id DESC
	`
	rows, err := r.DB.Query(q, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(
			&p.ID, &p.EnrollmentID, &p.Amount, &p.Currency, &p.Status, &p.ReceiptPath, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepository) UpdateStatus(id int, status string) error {
	if _, err := r.DB.Exec(`UPDATE payments SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetTotalPaid() (float64, error) {
	var total float64
	if err := r.DB.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'paid'`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}
