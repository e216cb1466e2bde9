package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

type additionalTaskRepository interface {
	List(ctx context.Context, filter models.AdditionalTaskFilter) ([]models.AdditionalTask, int, error)
	FindByID(ctx context.Context, id string) (*models.AdditionalTask, error)
	Create(ctx context.Context, task *models.AdditionalTask) error
	Update(ctx context.Context, task *models.AdditionalTask) error
	Delete(ctx context.Context, id string) error
}

// CreateAdditionalTaskRequest describes the duty creation payload. The
// jp_equivalent comes in as a string so the 2-decimal precision survives
// JSON transport.
type CreateAdditionalTaskRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	JPEquivalent string  `json:"jp_equivalent" validate:"required"`
}

// UpdateAdditionalTaskRequest describes the duty update payload.
type UpdateAdditionalTaskRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	JPEquivalent string  `json:"jp_equivalent" validate:"required"`
}

// AdditionalTaskService manages additional duty definitions.
type AdditionalTaskService struct {
	repo      additionalTaskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdditionalTaskService creates a service instance.
func NewAdditionalTaskService(repo additionalTaskRepository, validate *validator.Validate, logger *zap.Logger) *AdditionalTaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdditionalTaskService{repo: repo, validator: validate, logger: logger}
}

func parseJPEquivalent(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, appErrors.Clone(appErrors.ErrValidation, "jp_equivalent must be a decimal number")
	}
	if !value.IsPositive() {
		return decimal.Zero, appErrors.Clone(appErrors.ErrValidation, "jp_equivalent must be positive")
	}
	return value.Round(2), nil
}

// List returns paginated additional tasks.
func (s *AdditionalTaskService) List(ctx context.Context, filter models.AdditionalTaskFilter) ([]models.AdditionalTask, *models.Pagination, error) {
	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list additional tasks")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return tasks, pagination, nil
}

// Get returns an additional task by ID.
func (s *AdditionalTaskService) Get(ctx context.Context, id string) (*models.AdditionalTask, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Additional task with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load additional task")
	}
	return task, nil
}

// Create adds a new additional task with a positive 2-decimal weight.
func (s *AdditionalTaskService) Create(ctx context.Context, req CreateAdditionalTaskRequest) (*models.AdditionalTask, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid additional task payload")
	}
	weight, err := parseJPEquivalent(req.JPEquivalent)
	if err != nil {
		return nil, err
	}

	task := &models.AdditionalTask{
		Name:         req.Name,
		Description:  req.Description,
		JPEquivalent: weight,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create additional task")
	}
	return task, nil
}

// Update persists mutable task fields.
func (s *AdditionalTaskService) Update(ctx context.Context, id string, req UpdateAdditionalTaskRequest) (*models.AdditionalTask, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid additional task payload")
	}
	weight, err := parseJPEquivalent(req.JPEquivalent)
	if err != nil {
		return nil, err
	}

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Name = req.Name
	task.Description = req.Description
	task.JPEquivalent = weight
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update additional task")
	}
	return task, nil
}

// Delete removes an additional task.
func (s *AdditionalTaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete additional task")
	}
	return nil
}
