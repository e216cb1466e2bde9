package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

type academicYearReader interface {
	FindByID(ctx context.Context, id string) (*models.AcademicYear, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type jtmAssignmentRepo interface {
	List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error)
	SumAllocatedByClass(ctx context.Context, classID, academicYearID string) (int, error)
	Exists(ctx context.Context, academicYearID, teacherID, subjectID, classID string) (bool, error)
	Create(ctx context.Context, assignment *models.JtmAssignment) error
	Delete(ctx context.Context, id string) error
}

type scheduleCacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

type validationRecorder interface {
	RecordValidation(valid bool)
}

// JtmAssignmentRequest is the payload for both validation and creation.
type JtmAssignmentRequest struct {
	AcademicYearID string `json:"academic_year_id" validate:"required"`
	TeacherID      string `json:"teacher_id" validate:"required"`
	SubjectID      string `json:"subject_id" validate:"required"`
	ClassID        string `json:"class_id" validate:"required"`
	AllocatedHours int    `json:"allocated_hours" validate:"required,gt=0"`
}

// ValidationResult collects advisory findings for a proposed assignment.
// Errors block, warnings do not.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// JtmAssignmentService manages teaching-hour allocations. Validation and
// creation are deliberately decoupled: Validate is a read-only advisory
// check, Create performs its own narrower existence checks and never re-runs
// the ceiling or duplicate logic.
type JtmAssignmentService struct {
	years       academicYearReader
	teachers    teacherReader
	subjects    subjectReader
	classes     classReader
	assignments jtmAssignmentRepo
	cache       scheduleCacheInvalidator
	metrics     validationRecorder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewJtmAssignmentService creates a service instance.
func NewJtmAssignmentService(
	years academicYearReader,
	teachers teacherReader,
	subjects subjectReader,
	classes classReader,
	assignments jtmAssignmentRepo,
	cache scheduleCacheInvalidator,
	metrics validationRecorder,
	validate *validator.Validate,
	logger *zap.Logger,
) *JtmAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JtmAssignmentService{
		years:       years,
		teachers:    teachers,
		subjects:    subjects,
		classes:     classes,
		assignments: assignments,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Validate pre-flight-checks a proposed assignment without writing anything.
// Unexpected store failures collapse into a single synthetic error entry so
// callers always receive the structured result shape.
func (s *JtmAssignmentService) Validate(ctx context.Context, req JtmAssignmentRequest) (*ValidationResult, error) {
	result := &ValidationResult{Errors: []string{}, Warnings: []string{}}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordValidation(result.IsValid)
		}
	}()

	year, err := s.years.FindByID(ctx, req.AcademicYearID)
	if err != nil {
		if err == sql.ErrNoRows {
			result.Errors = append(result.Errors, fmt.Sprintf("Academic year with id %s not found", req.AcademicYearID))
			return result, nil
		}
		s.logger.Warn("allocation validation query failed", zap.Error(err))
		result.Errors = append(result.Errors, "Validation failed due to system error")
		return result, nil
	}

	currentTotal, err := s.assignments.SumAllocatedByClass(ctx, req.ClassID, req.AcademicYearID)
	if err != nil {
		s.logger.Warn("allocation validation query failed", zap.Error(err))
		result.Errors = append(result.Errors, "Validation failed due to system error")
		return result, nil
	}

	newTotal := currentTotal + req.AllocatedHours
	limit := year.TotalTimeAllocation
	if newTotal > limit {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Total allocation (%d hours) exceeds curriculum limit (%d hours) for this class", newTotal, limit))
	} else if newTotal*10 > limit*9 {
		// Within the ceiling but past 90% of it.
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Total allocation (%d hours) is approaching curriculum limit (%d hours)", newTotal, limit))
	}

	exists, err := s.assignments.Exists(ctx, req.AcademicYearID, req.TeacherID, req.SubjectID, req.ClassID)
	if err != nil {
		s.logger.Warn("allocation validation query failed", zap.Error(err))
		result.Errors = []string{"Validation failed due to system error"}
		result.Warnings = result.Warnings[:0]
		return result, nil
	}
	if exists {
		result.Errors = append(result.Errors, "This teacher is already assigned to teach this subject in this class")
	}

	result.IsValid = len(result.Errors) == 0
	return result, nil
}

// List returns assignments matching the filter.
func (s *JtmAssignmentService) List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jtm assignments")
	}
	return assignments, nil
}

// Create persists a new assignment. It verifies every referenced entity
// exists with a distinct not-found message per entity, but does not repeat
// the advisory ceiling and duplicate checks from Validate.
func (s *JtmAssignmentService) Create(ctx context.Context, req JtmAssignmentRequest) (*models.JtmAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid jtm assignment payload")
	}

	if _, err := s.years.FindByID(ctx, req.AcademicYearID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Academic year with id %s not found", req.AcademicYearID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Teacher with id %s not found", req.TeacherID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Subject with id %s not found", req.SubjectID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Class with id %s not found", req.ClassID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	assignment := &models.JtmAssignment{
		AcademicYearID: req.AcademicYearID,
		TeacherID:      req.TeacherID,
		SubjectID:      req.SubjectID,
		ClassID:        req.ClassID,
		AllocatedHours: req.AllocatedHours,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create jtm assignment")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "schedule:"+req.AcademicYearID+":*"); err != nil {
			s.logger.Warn("schedule cache invalidation failed", zap.String("academic_year_id", req.AcademicYearID), zap.Error(err))
		}
	}
	return assignment, nil
}

// Remove deletes an assignment.
func (s *JtmAssignmentService) Remove(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("JTM assignment with id %s not found", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete jtm assignment")
	}
	return nil
}
