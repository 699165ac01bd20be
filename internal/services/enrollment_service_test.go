package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"uniportal/internal/models"
)

type memEnrollmentRepo struct {
	mu     sync.Mutex
	nextID int
	rows   []*models.Enrollment
}

func newMemEnrollmentRepo() *memEnrollmentRepo {
	return &memEnrollmentRepo{nextID: 1}
}

func (r *memEnrollmentRepo) Create(e *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.rows = append(r.rows, e)
	return nil
}

func (r *memEnrollmentRepo) GetByID(id int) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memEnrollmentRepo) GetByStudentAndCourse(studentID, courseID int) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		e := r.rows[i]
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memEnrollmentRepo) ListByStudent(studentID, limit, offset int) ([]*models.Enrollment, error) {
	return nil, nil
}

func (r *memEnrollmentRepo) ListByCourse(courseID, limit, offset int) ([]*models.Enrollment, error) {
	return nil, nil
}

func (r *memEnrollmentRepo) Filter(status string, courseID, limit, offset int) ([]*models.Enrollment, error) {
	return nil, nil
}

func (r *memEnrollmentRepo) UpdateStatus(id int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID == id {
			e.Status = status
			e.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *memEnrollmentRepo) GetCount() (int, error) { return len(r.rows), nil }

func (r *memEnrollmentRepo) GetCountByCourse(courseID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.rows {
		if e.CourseID == courseID && e.Status != models.EnrollmentCancelled {
			n++
		}
	}
	return n, nil
}

type fakeCourses struct {
	byID map[int]*models.Course
}

func (f *fakeCourses) GetByID(id int) (*models.Course, error) {
	return f.byID[id], nil
}

func newEnrollmentFixture() (*EnrollmentService, *memEnrollmentRepo) {
	repo := newMemEnrollmentRepo()
	courses := &fakeCourses{byID: map[int]*models.Course{
		1: {ID: 1, Title: "Algorithms", Capacity: 2},
		2: {ID: 2, Title: "Databases"},
	}}
	return NewEnrollmentService(repo, courses, nil, nil), repo
}

func TestEnroll(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	e, err := svc.Enroll(10, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if e.Status != models.EnrollmentNew {
		t.Fatalf("status = %q", e.Status)
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	if _, err := svc.Enroll(10, 99); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Enroll = %v, want ErrCourseNotFound", err)
	}
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc, repo := newEnrollmentFixture()

	first, err := svc.Enroll(10, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	second, err := svc.Enroll(10, 1)
	if err != nil {
		t.Fatalf("second Enroll: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("duplicate enrollment created: %d and %d", first.ID, second.ID)
	}
	if n, _ := repo.GetCount(); n != 1 {
		t.Fatalf("%d rows, want 1", n)
	}
}

func TestEnrollCapacity(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	if _, err := svc.Enroll(10, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Enroll(11, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Enroll(12, 1); !errors.Is(err, ErrCourseFull) {
		t.Fatalf("Enroll over capacity = %v, want ErrCourseFull", err)
	}

	// course 2 has no capacity limit
	for s := 20; s < 25; s++ {
		if _, err := svc.Enroll(s, 2); err != nil {
			t.Fatalf("unlimited course: %v", err)
		}
	}
}

func TestEnrollmentTransitions(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	e, err := svc.Enroll(10, 1)
	if err != nil {
		t.Fatal(err)
	}

	// new -> completed skips confirmation
	if _, err := svc.UpdateStatus(e.ID, models.EnrollmentCompleted); !errors.Is(err, ErrBadTransition) {
		t.Fatalf("new->completed = %v, want ErrBadTransition", err)
	}

	if _, err := svc.UpdateStatus(e.ID, models.EnrollmentConfirmed); err != nil {
		t.Fatalf("new->confirmed: %v", err)
	}
	if _, err := svc.UpdateStatus(e.ID, models.EnrollmentCompleted); err != nil {
		t.Fatalf("confirmed->completed: %v", err)
	}
	// completed is terminal
	if _, err := svc.UpdateStatus(e.ID, models.EnrollmentCancelled); !errors.Is(err, ErrBadTransition) {
		t.Fatalf("completed->cancelled = %v, want ErrBadTransition", err)
	}
}
