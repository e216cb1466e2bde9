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

type additionalTaskReader interface {
	FindByID(ctx context.Context, id string) (*models.AdditionalTask, error)
}

type taskAssignmentRepo interface {
	List(ctx context.Context, filter models.TaskAssignmentFilter) ([]models.TaskAssignmentDetail, error)
	Exists(ctx context.Context, academicYearID, teacherID, taskID string) (bool, error)
	Create(ctx context.Context, assignment *models.TaskAssignment) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskAssignmentRequest describes the duty assignment payload.
type CreateTaskAssignmentRequest struct {
	AcademicYearID string  `json:"academic_year_id" validate:"required"`
	TeacherID      string  `json:"teacher_id" validate:"required"`
	TaskID         string  `json:"task_id" validate:"required"`
	Description    *string `json:"description"`
}

// TaskAssignmentService manages additional-duty assignments.
type TaskAssignmentService struct {
	years       academicYearReader
	teachers    teacherReader
	tasks       additionalTaskReader
	assignments taskAssignmentRepo
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTaskAssignmentService creates a service instance.
func NewTaskAssignmentService(
	years academicYearReader,
	teachers teacherReader,
	tasks additionalTaskReader,
	assignments taskAssignmentRepo,
	validate *validator.Validate,
	logger *zap.Logger,
) *TaskAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskAssignmentService{
		years:       years,
		teachers:    teachers,
		tasks:       tasks,
		assignments: assignments,
		validator:   validate,
		logger:      logger,
	}
}

// List returns duty assignments matching the filter.
func (s *TaskAssignmentService) List(ctx context.Context, filter models.TaskAssignmentFilter) ([]models.TaskAssignmentDetail, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list task assignments")
	}
	return assignments, nil
}

// Assign ties a teacher to an additional duty for an academic year.
func (s *TaskAssignmentService) Assign(ctx context.Context, req CreateTaskAssignmentRequest) (*models.TaskAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task assignment payload")
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
	if _, err := s.tasks.FindByID(ctx, req.TaskID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Additional task with id %s not found", req.TaskID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load additional task")
	}

	exists, err := s.assignments.Exists(ctx, req.AcademicYearID, req.TeacherID, req.TaskID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task assignment uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already holds this additional task in this academic year")
	}

	assignment := &models.TaskAssignment{
		AcademicYearID: req.AcademicYearID,
		TeacherID:      req.TeacherID,
		TaskID:         req.TaskID,
		Description:    req.Description,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task assignment")
	}
	return assignment, nil
}

// Remove deletes a duty assignment.
func (s *TaskAssignmentService) Remove(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Task assignment with id %s not found", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task assignment")
	}
	return nil
}
