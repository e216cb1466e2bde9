package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

// SchoolRepository persists the single school profile row.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository constructs the repository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// Get returns the school profile.
func (r *SchoolRepository) Get(ctx context.Context) (*models.School, error) {
	const query = `SELECT * FROM schools ORDER BY created_at ASC LIMIT 1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query); err != nil {
		return nil, err
	}
	return &school, nil
}

// Upsert creates the profile on first save and updates it afterwards.
func (r *SchoolRepository) Upsert(ctx context.Context, school *models.School) error {
	now := time.Now().UTC()
	school.UpdatedAt = now
	if school.ID == "" {
		school.ID = uuid.NewString()
		school.CreatedAt = now
		const insert = `INSERT INTO schools (id, name, npsn, address, headmaster_name, headmaster_nip, created_at, updated_at)
			VALUES (:id, :name, :npsn, :address, :headmaster_name, :headmaster_nip, :created_at, :updated_at)`
		if _, err := r.db.NamedExecContext(ctx, insert, school); err != nil {
			return fmt.Errorf("create school profile: %w", err)
		}
		return nil
	}
	const update = `UPDATE schools
		SET name = :name, npsn = :npsn, address = :address,
		    headmaster_name = :headmaster_name, headmaster_nip = :headmaster_nip, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, update, school); err != nil {
		return fmt.Errorf("update school profile: %w", err)
	}
	return nil
}
