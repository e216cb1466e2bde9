package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JtmAssignment ties a teacher, subject and class to a teaching-hour
// allocation within an academic year.
type JtmAssignment struct {
	ID             string    `db:"id" json:"id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	ClassID        string    `db:"class_id" json:"class_id"`
	AllocatedHours int       `db:"allocated_hours" json:"allocated_hours"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// JtmAssignmentDetail is the joined view including display names.
type JtmAssignmentDetail struct {
	JtmAssignment
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	ClassName   string `db:"class_name" json:"class_name"`
}

// JtmAssignmentFilter narrows assignment list queries.
type JtmAssignmentFilter struct {
	AcademicYearID string
	TeacherID      string
	ClassID        string
	SubjectID      string
}

// TaskAssignment ties a teacher to an additional duty within an academic year.
type TaskAssignment struct {
	ID             string    `db:"id" json:"id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	TaskID         string    `db:"task_id" json:"task_id"`
	Description    *string   `db:"description" json:"description,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// TaskAssignmentDetail is the joined view including task name and weight.
type TaskAssignmentDetail struct {
	TaskAssignment
	TeacherName  string          `db:"teacher_name" json:"teacher_name"`
	TaskName     string          `db:"task_name" json:"task_name"`
	JPEquivalent decimal.Decimal `db:"jp_equivalent" json:"jp_equivalent"`
}

// TaskAssignmentFilter narrows task assignment list queries.
type TaskAssignmentFilter struct {
	AcademicYearID string
	TeacherID      string
}
