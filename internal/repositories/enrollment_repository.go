package repositories

import (
	"database/sql"
	"fmt"

	"uniportal/internal/models"
)

type EnrollmentRepository interface {
	Create(e *models.Enrollment) error
	GetByID(id int) (*models.Enrollment, error)
	GetByStudentAndCourse(studentID, courseID int) (*models.Enrollment, error)
	ListByStudent(studentID, limit, offset int) ([]*models.Enrollment, error)
	ListByCourse(courseID, limit, offset int) ([]*models.Enrollment, error)
	Filter(status string, courseID, limit, offset int) ([]*models.Enrollment, error)
	UpdateStatus(id int, status string) error
	GetCount() (int, error)
	GetCountByCourse(courseID int) (int, error)
}

type enrollmentRepository struct {
	DB *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &enrollmentRepository{DB: db}
}

const enrollmentColumns = `id, student_id, course_id, status, created_at, updated_at`

func (r *enrollmentRepository) Create(e *models.Enrollment) error {
	const q = `
		INSERT INTO enrollments (student_id, course_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q, e.StudentID, e.CourseID, e.Status).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) GetByID(id int) (*models.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	return r.scanOne(r.DB.QueryRow(q, id))
}

// GetByStudentAndCourse backs the duplicate-enroll check.
func (r *enrollmentRepository) GetByStudentAndCourse(studentID, courseID int) (*models.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 AND course_id = $2 ORDER BY id DESC LIMIT 1`
	return r.scanOne(r.DB.QueryRow(q, studentID, courseID))
}

func (r *enrollmentRepository) scanOne(row *sql.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	if err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan enrollment: %w", err)
	}
	return e, nil
}

func (r *enrollmentRepository) ListByStudent(studentID, limit, offset int) ([]*models.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	return r.query(q, studentID, limit, offset)
}

func (r *enrollmentRepository) ListByCourse(courseID, limit, offset int) ([]*models.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE course_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	return r.query(q, courseID, limit, offset)
}

// Filter backs the analytics listing; empty status and zero courseID
// mean "any".
func (r *enrollmentRepository) Filter(status string, courseID, limit, offset int) ([]*models.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollments
		WHERE ($1 = '' OR status = $1) AND ($2 = 0 OR course_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.query(q, status, courseID, limit, offset)
}

func (r *enrollmentRepository) query(q string, args ...interface{}) ([]*models.Enrollment, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var out []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan enrollment row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *enrollmentRepository) UpdateStatus(id int, status string) error {
	const q = `UPDATE enrollments SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.DB.Exec(q, status, id); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM enrollments`).Scan(&c); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return c, nil
}

func (r *enrollmentRepository) GetCountByCourse(courseID int) (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status != 'cancelled'`, courseID).Scan(&c); err != nil {
		return 0, fmt.Errorf("count enrollments by course: %w", err)
	}
	return c, nil
}
