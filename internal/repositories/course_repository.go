package repositories

import (
	"database/sql"
	"fmt"

	"uniportal/internal/models"
)

type CourseRepository struct {
	DB *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

const courseColumns = `id, program_id, instructor_id, code, title, credits, capacity, created_at`

func (r *CourseRepository) Create(c *models.Course) error {
	const q = `
		INSERT INTO courses (program_id, instructor_id, code, title, credits, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		c.ProgramID, c.InstructorID, c.Code, c.Title, c.Credits, c.Capacity,
	).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *CourseRepository) GetByID(id int) (*models.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c := &models.Course{}
	if err := r.DB.QueryRow(q, id).Scan(
		&c.ID, &c.ProgramID, &c.InstructorID, &c.Code, &c.Title, &c.Credits, &c.Capacity, &c.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) List(limit, offset int) ([]*models.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryCourses(q, limit, offset)
}

func (r *CourseRepository) ListByInstructor(instructorID, limit, offset int) ([]*models.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses WHERE instructor_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.queryCourses(q, instructorID, limit, offset)
}

func (r *CourseRepository) queryCourses(q string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(
			&c.ID, &c.ProgramID, &c.InstructorID, &c.Code, &c.Title, &c.Credits, &c.Capacity, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Update(c *models.Course) error {
	const q = `
		UPDATE courses
		SET program_id = $1, instructor_id = $2, code = $3, title = $4, credits = $5, capacity = $6
		WHERE id = $7
	`
	if _, err := r.DB.Exec(q,
		c.ProgramID, c.InstructorID, c.Code, c.Title, c.Credits, c.Capacity, c.ID,
	); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

func (r *CourseRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (r *CourseRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&c); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return c, nil
}
