package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

// ScheduleRepository persists generated schedule entries.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ReplaceForYear swaps every entry for the academic year with the supplied
// set inside one transaction so readers never observe a half-written run.
func (r *ScheduleRepository) ReplaceForYear(ctx context.Context, academicYearID string, entries []models.ScheduleEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule replace tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE academic_year_id = $1`, academicYearID); err != nil {
		return fmt.Errorf("clear schedule entries: %w", err)
	}

	const insert = `INSERT INTO schedule_entries (id, academic_year_id, class_id, subject_id, teacher_id, day, period, created_at)
		VALUES (:id, :academic_year_id, :class_id, :subject_id, :teacher_id, :day, :period, :created_at)`
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].CreatedAt.IsZero() {
			entries[i].CreatedAt = now
		}
		if _, err = tx.NamedExecContext(ctx, insert, entries[i]); err != nil {
			return fmt.Errorf("insert schedule entry: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule replace tx: %w", err)
	}
	return nil
}

// ListByClass returns the generated entries for one class ordered by slot.
func (r *ScheduleRepository) ListByClass(ctx context.Context, classID string) ([]models.ScheduleEntry, error) {
	const query = `SELECT * FROM schedule_entries WHERE class_id = $1 ORDER BY day ASC, period ASC`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}
