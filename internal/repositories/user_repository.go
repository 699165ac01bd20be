package repositories

import (
	"database/sql"
	"fmt"

	"uniportal/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByIdentifier(identifier string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)
	GetCountByRole(role string) (int, error)
	SetActive(id int, active bool) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, username, email, password_hash, role, full_name, is_active, mfa_email_enabled, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.FullName, &u.IsActive, &u.MfaEmailEnabled, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (username, email, password_hash, role, full_name, is_active, mfa_email_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.Username, user.Email, user.PasswordHash, user.Role,
		user.FullName, user.IsActive, user.MfaEmailEnabled,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(q, id))
}

// GetByIdentifier matches either username or email, exactly as stored.
func (r *userRepository) GetByIdentifier(identifier string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return scanUser(r.DB.QueryRow(q, identifier))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET username = $1, email = $2, role = $3, full_name = $4,
		    is_active = $5, mfa_email_enabled = $6
		WHERE id = $7
	`
	if _, err := r.DB.Exec(q,
		user.Username, user.Email, user.Role, user.FullName,
		user.IsActive, user.MfaEmailEnabled, user.ID,
	); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.FullName, &u.IsActive, &u.MfaEmailEnabled, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return c, nil
}

func (r *userRepository) GetCountByRole(role string) (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&c); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return c, nil
}

func (r *userRepository) SetActive(id int, active bool) error {
	if _, err := r.DB.Exec(`UPDATE users SET is_active = $1 WHERE id = $2`, active, id); err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}
