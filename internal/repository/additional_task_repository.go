package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

// AdditionalTaskRepository persists additional duty definitions.
type AdditionalTaskRepository struct {
	db *sqlx.DB
}

// NewAdditionalTaskRepository constructs the repository.
func NewAdditionalTaskRepository(db *sqlx.DB) *AdditionalTaskRepository {
	return &AdditionalTaskRepository{db: db}
}

// List returns additional tasks matching the filter with a total count.
func (r *AdditionalTaskRepository) List(ctx context.Context, filter models.AdditionalTaskFilter) ([]models.AdditionalTask, int, error) {
	base := "FROM additional_tasks WHERE 1=1"
	var args []interface{}

	if filter.Search != "" {
		base += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "jp_equivalent": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "name"
	}
	order := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		order = "DESC"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count additional tasks: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	query := fmt.Sprintf("SELECT * %s ORDER BY %s %s LIMIT $%d OFFSET $%d", base, sortBy, order, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	var tasks []models.AdditionalTask
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list additional tasks: %w", err)
	}
	return tasks, total, nil
}

// FindByID loads one additional task.
func (r *AdditionalTaskRepository) FindByID(ctx context.Context, id string) (*models.AdditionalTask, error) {
	const query = `SELECT * FROM additional_tasks WHERE id = $1`
	var task models.AdditionalTask
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new additional task.
func (r *AdditionalTaskRepository) Create(ctx context.Context, task *models.AdditionalTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	const query = `INSERT INTO additional_tasks (id, name, description, jp_equivalent, created_at, updated_at)
		VALUES (:id, :name, :description, :jp_equivalent, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create additional task: %w", err)
	}
	return nil
}

// Update persists mutable task fields.
func (r *AdditionalTaskRepository) Update(ctx context.Context, task *models.AdditionalTask) error {
	task.UpdatedAt = time.Now().UTC()
	const query = `UPDATE additional_tasks SET name = :name, description = :description, jp_equivalent = :jp_equivalent, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update additional task: %w", err)
	}
	return nil
}

// Delete removes an additional task permanently.
func (r *AdditionalTaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM additional_tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete additional task: %w", err)
	}
	return nil
}
