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

type academicYearRepository interface {
	List(ctx context.Context, filter models.AcademicYearFilter) ([]models.AcademicYear, int, error)
	FindByID(ctx context.Context, id string) (*models.AcademicYear, error)
	FindActive(ctx context.Context) (*models.AcademicYear, error)
	ExistsByYearAndSemester(ctx context.Context, year string, semester int, excludeID string) (bool, error)
	Create(ctx context.Context, year *models.AcademicYear) error
	Update(ctx context.Context, year *models.AcademicYear) error
	SetActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// CreateAcademicYearRequest describes payload for creating academic years.
type CreateAcademicYearRequest struct {
	Year                string `json:"year" validate:"required"`
	Semester            int    `json:"semester" validate:"required,oneof=1 2"`
	Curriculum          string `json:"curriculum" validate:"required"`
	TotalTimeAllocation int    `json:"total_time_allocation" validate:"required,gt=0"`
	IsActive            bool   `json:"is_active"`
}

// UpdateAcademicYearRequest updates mutable fields on an academic year.
type UpdateAcademicYearRequest struct {
	Year                string `json:"year" validate:"required"`
	Semester            int    `json:"semester" validate:"required,oneof=1 2"`
	Curriculum          string `json:"curriculum" validate:"required"`
	TotalTimeAllocation int    `json:"total_time_allocation" validate:"required,gt=0"`
}

// AcademicYearService orchestrates academic year workflows.
type AcademicYearService struct {
	repo      academicYearRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicYearService creates a new service instance.
func NewAcademicYearService(repo academicYearRepository, validate *validator.Validate, logger *zap.Logger) *AcademicYearService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicYearService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated academic years.
func (s *AcademicYearService) List(ctx context.Context, filter models.AcademicYearFilter) ([]models.AcademicYear, *models.Pagination, error) {
	years, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic years")
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
	return years, pagination, nil
}

// Get returns an academic year by ID.
func (s *AcademicYearService) Get(ctx context.Context, id string) (*models.AcademicYear, error) {
	year, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Academic year with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	return year, nil
}

// GetActive returns the currently active academic year.
func (s *AcademicYearService) GetActive(ctx context.Context) (*models.AcademicYear, error) {
	year, err := s.repo.FindActive(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "active academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active academic year")
	}
	return year, nil
}

// Create adds a new academic year ensuring label uniqueness and a positive
// curriculum ceiling.
func (s *AcademicYearService) Create(ctx context.Context, req CreateAcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic year payload")
	}

	exists, err := s.repo.ExistsByYearAndSemester(ctx, req.Year, req.Semester, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check academic year uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "academic year with this label and semester already exists")
	}

	year := &models.AcademicYear{
		Year:                req.Year,
		Semester:            req.Semester,
		Curriculum:          req.Curriculum,
		TotalTimeAllocation: req.TotalTimeAllocation,
	}
	if err := s.repo.Create(ctx, year); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create academic year")
	}
	if req.IsActive {
		if err := s.repo.SetActive(ctx, year.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate academic year")
		}
		year.IsActive = true
	}
	return year, nil
}

// Update persists mutable academic year fields.
func (s *AcademicYearService) Update(ctx context.Context, id string, req UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic year payload")
	}

	year, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByYearAndSemester(ctx, req.Year, req.Semester, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check academic year uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "academic year with this label and semester already exists")
	}

	year.Year = req.Year
	year.Semester = req.Semester
	year.Curriculum = req.Curriculum
	year.TotalTimeAllocation = req.TotalTimeAllocation
	if err := s.repo.Update(ctx, year); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update academic year")
	}
	return year, nil
}

// SetActive activates one year and deactivates the rest atomically.
func (s *AcademicYearService) SetActive(ctx context.Context, id string) (*models.AcademicYear, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate academic year")
	}
	return s.Get(ctx, id)
}

// Delete removes an academic year.
func (s *AcademicYearService) Delete(ctx context.Context, id string) error {
	year, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if year.IsActive {
		return appErrors.Clone(appErrors.ErrConflict, "cannot delete the active academic year")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete academic year")
	}
	return nil
}
