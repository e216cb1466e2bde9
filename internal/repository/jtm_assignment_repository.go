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

// JtmAssignmentRepository persists teaching-hour allocations.
type JtmAssignmentRepository struct {
	db *sqlx.DB
}

// NewJtmAssignmentRepository constructs the repository.
func NewJtmAssignmentRepository(db *sqlx.DB) *JtmAssignmentRepository {
	return &JtmAssignmentRepository{db: db}
}

// List returns assignments joined with display names, filtered by any
// combination of teacher, class, subject and academic year. Rows come back
// in insertion order so workload breakdowns stay stable.
func (r *JtmAssignmentRepository) List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error) {
	base := `
SELECT ja.id, ja.academic_year_id, ja.teacher_id, ja.subject_id, ja.class_id, ja.allocated_hours, ja.created_at,
       t.full_name AS teacher_name, s.name AS subject_name, c.name AS class_name
FROM jtm_assignments ja
JOIN teachers t ON t.id = ja.teacher_id
JOIN subjects s ON s.id = ja.subject_id
JOIN classes c ON c.id = ja.class_id
WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.AcademicYearID != "" {
		conditions = append(conditions, fmt.Sprintf("ja.academic_year_id = $%d", len(args)+1))
		args = append(args, filter.AcademicYearID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("ja.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("ja.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("ja.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ja.created_at ASC"

	var assignments []models.JtmAssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list jtm assignments: %w", err)
	}
	return assignments, nil
}

// SumAllocatedByClass returns the cumulative allocated hours for a class in
// an academic year, 0 when there are no rows.
func (r *JtmAssignmentRepository) SumAllocatedByClass(ctx context.Context, classID, academicYearID string) (int, error) {
	const query = `SELECT COALESCE(SUM(allocated_hours), 0) FROM jtm_assignments WHERE class_id = $1 AND academic_year_id = $2`
	var total int
	if err := r.db.GetContext(ctx, &total, query, classID, academicYearID); err != nil {
		return 0, fmt.Errorf("sum allocated hours: %w", err)
	}
	return total, nil
}

// Exists checks if the (year, teacher, subject, class) tuple already exists.
func (r *JtmAssignmentRepository) Exists(ctx context.Context, academicYearID, teacherID, subjectID, classID string) (bool, error) {
	const query = `SELECT 1 FROM jtm_assignments WHERE academic_year_id = $1 AND teacher_id = $2 AND subject_id = $3 AND class_id = $4 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, academicYearID, teacherID, subjectID, classID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check jtm assignment: %w", err)
	}
	return true, nil
}

// DistinctTeacherIDs lists the teacher ids with at least one JTM assignment
// in the academic year.
func (r *JtmAssignmentRepository) DistinctTeacherIDs(ctx context.Context, academicYearID string) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM jtm_assignments WHERE academic_year_id = $1 ORDER BY teacher_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, academicYearID); err != nil {
		return nil, fmt.Errorf("list jtm teacher ids: %w", err)
	}
	return ids, nil
}

// Create inserts a new assignment.
func (r *JtmAssignmentRepository) Create(ctx context.Context, assignment *models.JtmAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO jtm_assignments (id, academic_year_id, teacher_id, subject_id, class_id, allocated_hours, created_at)
		VALUES (:id, :academic_year_id, :teacher_id, :subject_id, :class_id, :allocated_hours, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create jtm assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment.
func (r *JtmAssignmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jtm_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete jtm assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted jtm assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
