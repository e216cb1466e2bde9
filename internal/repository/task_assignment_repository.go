package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

// TaskAssignmentRepository persists additional-duty assignments.
type TaskAssignmentRepository struct {
	db *sqlx.DB
}

// NewTaskAssignmentRepository constructs the repository.
func NewTaskAssignmentRepository(db *sqlx.DB) *TaskAssignmentRepository {
	return &TaskAssignmentRepository{db: db}
}

// List returns task assignments joined with the duty name and weight.
func (r *TaskAssignmentRepository) List(ctx context.Context, filter models.TaskAssignmentFilter) ([]models.TaskAssignmentDetail, error) {
	base := `
SELECT ta.id, ta.academic_year_id, ta.teacher_id, ta.task_id, ta.description, ta.created_at,
       t.full_name AS teacher_name, at.name AS task_name, at.jp_equivalent
FROM task_assignments ta
JOIN teachers t ON t.id = ta.teacher_id
JOIN additional_tasks at ON at.id = ta.task_id
WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.AcademicYearID != "" {
		conditions = append(conditions, fmt.Sprintf("ta.academic_year_id = $%d", len(args)+1))
		args = append(args, filter.AcademicYearID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("ta.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ta.created_at ASC"

	var assignments []models.TaskAssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list task assignments: %w", err)
	}
	return assignments, nil
}

// Exists checks if the (year, teacher, task) tuple already exists.
func (r *TaskAssignmentRepository) Exists(ctx context.Context, academicYearID, teacherID, taskID string) (bool, error) {
	const query = `SELECT 1 FROM task_assignments WHERE academic_year_id = $1 AND teacher_id = $2 AND task_id = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, academicYearID, teacherID, taskID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check task assignment: %w", err)
	}
	return true, nil
}

// DistinctTeacherIDs lists teacher ids with at least one duty assignment in
// the academic year.
func (r *TaskAssignmentRepository) DistinctTeacherIDs(ctx context.Context, academicYearID string) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM task_assignments WHERE academic_year_id = $1 ORDER BY teacher_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, academicYearID); err != nil {
		return nil, fmt.Errorf("list task teacher ids: %w", err)
	}
	return ids, nil
}

// Create inserts a new task assignment.
func (r *TaskAssignmentRepository) Create(ctx context.Context, assignment *models.TaskAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO task_assignments (id, academic_year_id, teacher_id, task_id, description, created_at)
		VALUES (:id, :academic_year_id, :teacher_id, :task_id, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create task assignment: %w", err)
	}
	return nil
}

// Delete removes a task assignment.
func (r *TaskAssignmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted task assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
