package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

// Statutory weekly teaching-hour bounds. Exactly MIN and exactly MAX both
// classify as layak.
const (
	DefaultMinimumWeeklyHours = 24
	DefaultMaximumWeeklyHours = 40
)

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type jtmAssignmentLister interface {
	List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error)
	DistinctTeacherIDs(ctx context.Context, academicYearID string) ([]string, error)
}

type taskAssignmentLister interface {
	List(ctx context.Context, filter models.TaskAssignmentFilter) ([]models.TaskAssignmentDetail, error)
	DistinctTeacherIDs(ctx context.Context, academicYearID string) ([]string, error)
}

// WorkloadService recomputes teacher workloads from persisted assignments on
// every call. An unknown academic year is not an error here: no rows match,
// so the sums are zero. Allocation progress reporting behaves differently by
// requiring the year; see AllocationReportService.
type WorkloadService struct {
	teachers teacherReader
	jtm      jtmAssignmentLister
	tasks    taskAssignmentLister
	minHours int
	maxHours int
	logger   *zap.Logger
}

// NewWorkloadService creates a workload service instance.
func NewWorkloadService(teachers teacherReader, jtm jtmAssignmentLister, tasks taskAssignmentLister, minHours, maxHours int, logger *zap.Logger) *WorkloadService {
	if minHours <= 0 {
		minHours = DefaultMinimumWeeklyHours
	}
	if maxHours <= 0 {
		maxHours = DefaultMaximumWeeklyHours
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadService{
		teachers: teachers,
		jtm:      jtm,
		tasks:    tasks,
		minHours: minHours,
		maxHours: maxHours,
		logger:   logger,
	}
}

// Classify maps a total workload onto its status band.
func (s *WorkloadService) Classify(total decimal.Decimal) models.WorkloadStatus {
	switch {
	case total.LessThan(decimal.NewFromInt(int64(s.minHours))):
		return models.WorkloadStatusKurang
	case total.LessThanOrEqual(decimal.NewFromInt(int64(s.maxHours))):
		return models.WorkloadStatusLayak
	default:
		return models.WorkloadStatusLebih
	}
}

// ComputeWorkload sums a teacher's JTM hours and duty equivalents for one
// academic year. The teacher must exist; the academic year need not.
func (s *WorkloadService) ComputeWorkload(ctx context.Context, teacherID, academicYearID string) (*models.TeacherWorkload, error) {
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Teacher with id %s not found", teacherID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	jtmRows, err := s.jtm.List(ctx, models.JtmAssignmentFilter{TeacherID: teacherID, AcademicYearID: academicYearID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jtm assignments")
	}
	taskRows, err := s.tasks.List(ctx, models.TaskAssignmentFilter{TeacherID: teacherID, AcademicYearID: academicYearID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list task assignments")
	}

	totalJTM := 0
	details := make([]models.WorkloadItem, 0, len(jtmRows)+len(taskRows))
	for _, row := range jtmRows {
		totalJTM += row.AllocatedHours
		details = append(details, models.WorkloadItem{
			Kind:        models.WorkloadItemJTM,
			SubjectName: row.SubjectName,
			ClassName:   row.ClassName,
			Hours:       decimal.NewFromInt(int64(row.AllocatedHours)),
		})
	}

	totalTasks := decimal.Zero
	for _, row := range taskRows {
		totalTasks = totalTasks.Add(row.JPEquivalent)
		details = append(details, models.WorkloadItem{
			Kind:     models.WorkloadItemTask,
			TaskName: row.TaskName,
			Hours:    row.JPEquivalent,
		})
	}

	total := decimal.NewFromInt(int64(totalJTM)).Add(totalTasks)

	return &models.TeacherWorkload{
		TeacherID:           teacher.ID,
		TeacherName:         teacher.FullName,
		AcademicYearID:      academicYearID,
		TotalJTMHours:       totalJTM,
		TotalTaskEquivalent: totalTasks,
		TotalWorkload:       total,
		Status:              s.Classify(total),
		Details:             details,
	}, nil
}

// ComputeAllWorkloads computes workloads for every teacher with at least one
// assignment in the academic year. Teachers without assignments are excluded
// entirely rather than listed with zero workloads.
func (s *WorkloadService) ComputeAllWorkloads(ctx context.Context, academicYearID string) ([]models.TeacherWorkload, error) {
	jtmIDs, err := s.jtm.DistinctTeacherIDs(ctx, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jtm teacher ids")
	}
	taskIDs, err := s.tasks.DistinctTeacherIDs(ctx, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list task teacher ids")
	}

	seen := make(map[string]struct{}, len(jtmIDs)+len(taskIDs))
	teacherIDs := make([]string, 0, len(jtmIDs)+len(taskIDs))
	for _, id := range jtmIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		teacherIDs = append(teacherIDs, id)
	}
	for _, id := range taskIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		teacherIDs = append(teacherIDs, id)
	}

	workloads := make([]models.TeacherWorkload, 0, len(teacherIDs))
	for _, teacherID := range teacherIDs {
		workload, err := s.ComputeWorkload(ctx, teacherID, academicYearID)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, *workload)
	}
	return workloads, nil
}

// FilterByStatus returns only the workloads whose status matches exactly.
func (s *WorkloadService) FilterByStatus(ctx context.Context, academicYearID string, status models.WorkloadStatus) ([]models.TeacherWorkload, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown workload status %q", status))
	}
	workloads, err := s.ComputeAllWorkloads(ctx, academicYearID)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.TeacherWorkload, 0, len(workloads))
	for _, workload := range workloads {
		if workload.Status == status {
			filtered = append(filtered, workload)
		}
	}
	return filtered, nil
}

// SummaryStatistics aggregates workloads across an academic year. The
// average is exactly zero when no teacher participates.
func (s *WorkloadService) SummaryStatistics(ctx context.Context, academicYearID string) (*models.WorkloadSummaryStatistics, error) {
	workloads, err := s.ComputeAllWorkloads(ctx, academicYearID)
	if err != nil {
		return nil, err
	}

	stats := &models.WorkloadSummaryStatistics{
		TotalTeachers:   len(workloads),
		AverageWorkload: decimal.Zero,
	}
	if len(workloads) == 0 {
		return stats, nil
	}

	sum := decimal.Zero
	for _, workload := range workloads {
		sum = sum.Add(workload.TotalWorkload)
		switch workload.Status {
		case models.WorkloadStatusLayak:
			stats.LayakCount++
		case models.WorkloadStatusLebih:
			stats.LebihCount++
		case models.WorkloadStatusKurang:
			stats.KurangCount++
		}
	}
	stats.AverageWorkload = sum.DivRound(decimal.NewFromInt(int64(len(workloads))), 2)
	return stats, nil
}

// WorkloadDetail returns teacher identity, the raw assignment rows and a
// summary block including the signed surplus or deficit against the minimum.
func (s *WorkloadService) WorkloadDetail(ctx context.Context, teacherID, academicYearID string) (*models.WorkloadDetail, error) {
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Teacher with id %s not found", teacherID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	jtmRows, err := s.jtm.List(ctx, models.JtmAssignmentFilter{TeacherID: teacherID, AcademicYearID: academicYearID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jtm assignments")
	}
	taskRows, err := s.tasks.List(ctx, models.TaskAssignmentFilter{TeacherID: teacherID, AcademicYearID: academicYearID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list task assignments")
	}

	totalJTM := 0
	for _, row := range jtmRows {
		totalJTM += row.AllocatedHours
	}
	totalTasks := decimal.Zero
	for _, row := range taskRows {
		totalTasks = totalTasks.Add(row.JPEquivalent)
	}
	total := decimal.NewFromInt(int64(totalJTM)).Add(totalTasks)

	return &models.WorkloadDetail{
		Teacher:        *teacher,
		AcademicYearID: academicYearID,
		JTMAssignments: jtmRows,
		TaskRows:       taskRows,
		Summary: models.WorkloadDetailSummary{
			TotalJTM:        totalJTM,
			TotalTasks:      totalTasks,
			TotalWorkload:   total,
			Status:          s.Classify(total),
			MinimumRequired: s.minHours,
			SurplusDeficit:  total.Sub(decimal.NewFromInt(int64(s.minHours))),
		},
	}, nil
}
