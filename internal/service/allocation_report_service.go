package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

type classByYearLister interface {
	ListByAcademicYear(ctx context.Context, academicYearID string) ([]models.Class, error)
}

type classAllocationLister interface {
	List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error)
}

type subjectAllocationReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// AllocationReportService compares each class's cumulative JTM allocation to
// the academic year's curriculum ceiling. Unlike workload aggregation, the
// academic year must exist here: the report is anchored to its ceiling.
type AllocationReportService struct {
	years    academicYearReader
	classes  classByYearLister
	jtm      classAllocationLister
	subjects subjectAllocationReader
	logger   *zap.Logger
}

// NewAllocationReportService creates a reporter instance.
func NewAllocationReportService(years academicYearReader, classes classByYearLister, jtm classAllocationLister, subjects subjectAllocationReader, logger *zap.Logger) *AllocationReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationReportService{
		years:    years,
		classes:  classes,
		jtm:      jtm,
		subjects: subjects,
		logger:   logger,
	}
}

// AllocationProgress reports per-class allocation against the curriculum
// ceiling. Classes without any assignment are included with zero progress.
func (s *AllocationReportService) AllocationProgress(ctx context.Context, academicYearID string) ([]models.ClassAllocationProgress, error) {
	year, err := s.years.FindByID(ctx, academicYearID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Academic year with id %s not found", academicYearID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}

	classes, err := s.classes.ListByAcademicYear(ctx, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}

	progress := make([]models.ClassAllocationProgress, 0, len(classes))
	for _, class := range classes {
		rows, err := s.jtm.List(ctx, models.JtmAssignmentFilter{ClassID: class.ID, AcademicYearID: academicYearID})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jtm assignments")
		}

		subjects := make([]models.ClassSubjectAllocation, 0, len(rows))
		totalAllocated := 0
		for _, row := range rows {
			curriculumHours := 0
			if subject, err := s.subjects.FindByID(ctx, row.SubjectID); err == nil {
				curriculumHours = subject.TimeAllocation
			} else if err != sql.ErrNoRows {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
			}
			subjects = append(subjects, models.ClassSubjectAllocation{
				SubjectID:       row.SubjectID,
				SubjectName:     row.SubjectName,
				AllocatedHours:  row.AllocatedHours,
				CurriculumHours: curriculumHours,
			})
			totalAllocated += row.AllocatedHours
		}

		percentage := 0.0
		if year.TotalTimeAllocation > 0 {
			percentage = math.Round(float64(totalAllocated)/float64(year.TotalTimeAllocation)*100*100) / 100
		}

		progress = append(progress, models.ClassAllocationProgress{
			ClassID:            class.ID,
			ClassName:          class.Name,
			Grade:              class.Grade,
			Rombel:             class.Rombel,
			Subjects:           subjects,
			TotalAllocated:     totalAllocated,
			CurriculumLimit:    year.TotalTimeAllocation,
			ProgressPercentage: percentage,
		})
	}
	return progress, nil
}
