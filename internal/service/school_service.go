package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

type schoolRepository interface {
	Get(ctx context.Context) (*models.School, error)
	Upsert(ctx context.Context, school *models.School) error
}

// UpsertSchoolRequest describes the school profile payload.
type UpsertSchoolRequest struct {
	Name           string `json:"name" validate:"required"`
	NPSN           string `json:"npsn" validate:"required"`
	Address        string `json:"address" validate:"required"`
	HeadmasterName string `json:"headmaster_name" validate:"required"`
	HeadmasterNIP  string `json:"headmaster_nip" validate:"required"`
}

// SchoolService manages the singleton school profile.
type SchoolService struct {
	repo      schoolRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSchoolService creates a service instance.
func NewSchoolService(repo schoolRepository, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{repo: repo, validator: validate, logger: logger}
}

// Get returns the school profile.
func (s *SchoolService) Get(ctx context.Context) (*models.School, error) {
	school, err := s.repo.Get(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school profile")
	}
	return school, nil
}

// Upsert creates the profile on first save and updates it afterwards.
func (s *SchoolService) Upsert(ctx context.Context, req UpsertSchoolRequest) (*models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload")
	}

	school, err := s.repo.Get(ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school profile")
	}
	if school == nil {
		school = &models.School{}
	}

	school.Name = req.Name
	school.NPSN = req.NPSN
	school.Address = req.Address
	school.HeadmasterName = req.HeadmasterName
	school.HeadmasterNIP = req.HeadmasterNIP
	if err := s.repo.Upsert(ctx, school); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save school profile")
	}
	return school, nil
}
