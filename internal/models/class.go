package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// DefaultClassColumns is the column set assigned to a freshly created class.
var DefaultClassColumns = []string{"registerNo", "name", "phone"}

// Class groups students under an ordered, mutable list of column names.
// Editing the column list never migrates existing student payloads; readers
// must tolerate key-set mismatches.
type Class struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Columns   pq.StringArray `db:"columns" json:"columns"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// StudentData is the dynamic per-student payload stored as JSONB. Its shape
// is expected to match the parent class's current columns but is never
// validated against it.
type StudentData map[string]string

// Value implements driver.Valuer.
func (d StudentData) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *StudentData) Scan(src interface{}) error {
	if src == nil {
		*d = StudentData{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported student data type %T", src)
	}
	return json.Unmarshal(raw, d)
}

// Student references exactly one class at creation time; the reference is
// not re-validated afterwards and class deletion does not cascade.
type Student struct {
	ID        string      `db:"id" json:"id"`
	ClassID   string      `db:"class_id" json:"classId"`
	Data      StudentData `db:"data" json:"data"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
}

// CreateClassRequest is the payload for creating a class.
type CreateClassRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateColumnsRequest replaces a class's column list.
type UpdateColumnsRequest struct {
	Columns []string `json:"columns" validate:"required,min=1"`
}

// CreateStudentRequest is the payload for adding a student to a class.
type CreateStudentRequest struct {
	ClassID string      `json:"classId" validate:"required"`
	Data    StudentData `json:"data" validate:"required"`
}

// UpdateStudentRequest fully replaces a student's data payload.
type UpdateStudentRequest struct {
	Data StudentData `json:"data" validate:"required"`
}
