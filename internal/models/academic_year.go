package models

import "time"

// AcademicYear models one semester of a school year together with its
// curriculum-wide teaching-hour ceiling.
type AcademicYear struct {
	ID                  string    `db:"id" json:"id"`
	Year                string    `db:"year" json:"year"`
	Semester            int       `db:"semester" json:"semester"`
	Curriculum          string    `db:"curriculum" json:"curriculum"`
	TotalTimeAllocation int       `db:"total_time_allocation" json:"total_time_allocation"`
	IsActive            bool      `db:"is_active" json:"is_active"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// AcademicYearFilter defines filters supported by list endpoints.
type AcademicYearFilter struct {
	Year      string
	Semester  int
	IsActive  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
