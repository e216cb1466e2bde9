package models

import "time"

// SkDocument is a rendered decree assigning duties to a teacher for an
// academic year. The body is plain text produced by template substitution.
type SkDocument struct {
	ID             string    `db:"id" json:"id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	Number         string    `db:"number" json:"number"`
	Title          string    `db:"title" json:"title"`
	Body           string    `db:"body" json:"body"`
	IssuedDate     time.Time `db:"issued_date" json:"issued_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
