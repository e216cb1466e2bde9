package models

import "time"

// Class represents one rombongan belajar (parallel section) within an academic year.
type Class struct {
	ID             string    `db:"id" json:"id"`
	Grade          int       `db:"grade" json:"grade"`
	Rombel         string    `db:"rombel" json:"rombel"`
	Name           string    `db:"name" json:"name"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	AcademicYearID string
	Grade          int
	Search         string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
