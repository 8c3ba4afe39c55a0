package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

// ClassRepository persists classes and their student rosters. Students carry
// a JSONB payload whose keys are never validated against the class columns.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// CreateClass inserts a class with the default column set when none given.
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now().UTC()
	}
	if len(class.Columns) == 0 {
		class.Columns = pq.StringArray(models.DefaultClassColumns)
	}

	const query = `INSERT INTO classes (id, name, columns, created_at) VALUES (:id, :name, :columns, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// ListClasses returns all classes, newest first.
func (r *ClassRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, columns, created_at FROM classes ORDER BY created_at DESC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// GetClass returns one class by id.
func (r *ClassRepository) GetClass(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, name, columns, created_at FROM classes WHERE id = $1 LIMIT 1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return &class, nil
}

// UpdateColumns replaces the column list. Existing student payloads are
// deliberately not rewritten.
func (r *ClassRepository) UpdateColumns(ctx context.Context, id string, columns []string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE classes SET columns = $2 WHERE id = $1`, id, pq.StringArray(columns))
	if err != nil {
		return fmt.Errorf("update class columns: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check class update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateStudent inserts a roster entry.
func (r *ClassRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO students (id, class_id, data, created_at) VALUES (:id, :class_id, :data, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// ListStudents returns a class's roster.
func (r *ClassRepository) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	const query = `SELECT id, class_id, data, created_at FROM students WHERE class_id = $1 ORDER BY created_at ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// GetStudent returns one student by id.
func (r *ClassRepository) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, class_id, data, created_at FROM students WHERE id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &student, nil
}

// UpdateStudentData fully replaces the payload.
func (r *ClassRepository) UpdateStudentData(ctx context.Context, id string, data models.StudentData) error {
	res, err := r.db.ExecContext(ctx, `UPDATE students SET data = $2 WHERE id = $1`, id, data)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check student update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteStudent removes a roster entry. Missing ids are a no-op success.
func (r *ClassRepository) DeleteStudent(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
