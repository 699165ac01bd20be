package repositories

import (
	"database/sql"
	"fmt"

	"uniportal/internal/models"
)

type ProgramRepository struct {
	DB *sql.DB
}

func NewProgramRepository(db *sql.DB) *ProgramRepository {
	return &ProgramRepository{DB: db}
}

func (r *ProgramRepository) Create(p *models.Program) error {
	const q = `
		INSERT INTO programs (name, degree, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, p.Name, p.Degree, p.Description).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create program: %w", err)
	}
	return nil
}

func (r *ProgramRepository) GetByID(id int) (*models.Program, error) {
	const q = `SELECT id, name, degree, description, created_at FROM programs WHERE id = $1`
	p := &models.Program{}
	if err := r.DB.QueryRow(q, id).Scan(&p.ID, &p.Name, &p.Degree, &p.Description, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	return p, nil
}

func (r *ProgramRepository) List(limit, offset int) ([]*models.Program, error) {
	const q = `SELECT id, name, degree, description, created_at FROM programs ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var out []*models.Program
	for rows.Next() {
		p := &models.Program{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Degree, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProgramRepository) Update(p *models.Program) error {
	const q = `UPDATE programs SET name = $1, degree = $2, description = $3 WHERE id = $4`
	if _, err := r.DB.Exec(q, p.Name, p.Degree, p.Description, p.ID); err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	return nil
}

func (r *ProgramRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM programs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}

func (r *ProgramRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM programs`).Scan(&c); err != nil {
		return 0, fmt.Errorf("count programs: %w", err)
	}
	return c, nil
}
