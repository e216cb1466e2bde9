package models

import "github.com/shopspring/decimal"

// WorkloadStatus classifies a teacher's total workload against the
// statutory minimum and maximum weekly teaching hours.
type WorkloadStatus string

const (
	WorkloadStatusKurang WorkloadStatus = "kurang"
	WorkloadStatusLayak  WorkloadStatus = "layak"
	WorkloadStatusLebih  WorkloadStatus = "lebih"
)

// Valid reports whether the status is one of the known classifications.
func (s WorkloadStatus) Valid() bool {
	switch s {
	case WorkloadStatusKurang, WorkloadStatusLayak, WorkloadStatusLebih:
		return true
	}
	return false
}

// WorkloadItemKind tags a workload detail row by its origin.
type WorkloadItemKind string

const (
	WorkloadItemJTM  WorkloadItemKind = "jtm"
	WorkloadItemTask WorkloadItemKind = "task"
)

// WorkloadItem is one contributing row in a teacher's workload breakdown.
type WorkloadItem struct {
	Kind        WorkloadItemKind `json:"kind"`
	SubjectName string           `json:"subject_name,omitempty"`
	ClassName   string           `json:"class_name,omitempty"`
	TaskName    string           `json:"task_name,omitempty"`
	Hours       decimal.Decimal  `json:"hours"`
}

// TeacherWorkload is the derived workload view for one teacher in one
// academic year. It is recomputed on every request and never persisted.
type TeacherWorkload struct {
	TeacherID           string          `json:"teacher_id"`
	TeacherName         string          `json:"teacher_name"`
	AcademicYearID      string          `json:"academic_year_id"`
	TotalJTMHours       int             `json:"total_jtm_hours"`
	TotalTaskEquivalent decimal.Decimal `json:"total_task_equivalent"`
	TotalWorkload       decimal.Decimal `json:"total_workload"`
	Status              WorkloadStatus  `json:"status"`
	Details             []WorkloadItem  `json:"details"`
}

// WorkloadSummaryStatistics aggregates workloads across an academic year.
type WorkloadSummaryStatistics struct {
	TotalTeachers   int             `json:"total_teachers"`
	LayakCount      int             `json:"layak_count"`
	LebihCount      int             `json:"lebih_count"`
	KurangCount     int             `json:"kurang_count"`
	AverageWorkload decimal.Decimal `json:"average_workload"`
}

// WorkloadDetailSummary is the summary block of a detailed breakdown.
type WorkloadDetailSummary struct {
	TotalJTM        int             `json:"total_jtm"`
	TotalTasks      decimal.Decimal `json:"total_tasks"`
	TotalWorkload   decimal.Decimal `json:"total_workload"`
	Status          WorkloadStatus  `json:"status"`
	MinimumRequired int             `json:"minimum_required"`
	SurplusDeficit  decimal.Decimal `json:"surplus_deficit"`
}

// WorkloadDetail carries teacher identity, the raw assignment rows and a
// computed summary.
type WorkloadDetail struct {
	Teacher        Teacher                `json:"teacher"`
	AcademicYearID string                 `json:"academic_year_id"`
	JTMAssignments []JtmAssignmentDetail  `json:"jtm_assignments"`
	TaskRows       []TaskAssignmentDetail `json:"task_assignments"`
	Summary        WorkloadDetailSummary  `json:"summary"`
}

// ClassSubjectAllocation is a per-subject slice of a class's allocation.
type ClassSubjectAllocation struct {
	SubjectID       string `json:"subject_id"`
	SubjectName     string `json:"subject_name"`
	AllocatedHours  int    `json:"allocated_hours"`
	CurriculumHours int    `json:"curriculum_hours"`
}

// ClassAllocationProgress compares a class's cumulative JTM allocation
// against the academic year's curriculum ceiling.
type ClassAllocationProgress struct {
	ClassID            string                   `json:"class_id"`
	ClassName          string                   `json:"class_name"`
	Grade              int                      `json:"grade"`
	Rombel             string                   `json:"rombel"`
	Subjects           []ClassSubjectAllocation `json:"subjects"`
	TotalAllocated     int                      `json:"total_allocated"`
	CurriculumLimit    int                      `json:"curriculum_limit"`
	ProgressPercentage float64                  `json:"progress_percentage"`
}
