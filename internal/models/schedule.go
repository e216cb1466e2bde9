package models

import "time"

// ScheduleEntry places one JTM assignment into a day/period slot. Entries
// are produced by the placeholder generator and mirrored into Redis.
type ScheduleEntry struct {
	ID             string    `db:"id" json:"id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	ClassID        string    `db:"class_id" json:"class_id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	Day            int       `db:"day" json:"day"`
	Period         int       `db:"period" json:"period"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ClassTimetable is the cached per-class view of generated entries.
type ClassTimetable struct {
	ClassID        string          `json:"class_id"`
	AcademicYearID string          `json:"academic_year_id"`
	Entries        []ScheduleEntry `json:"entries"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
