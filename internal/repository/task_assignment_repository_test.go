package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

func TestTaskAssignmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskAssignmentRepository(db)

	created := time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "academic_year_id", "teacher_id", "task_id", "description", "created_at", "teacher_name", "task_name", "jp_equivalent"}).
		AddRow("ta-1", "year-1", "teacher-1", "task-1", nil, created, "Budi Santoso", "Wali Kelas", "2.00")

	mock.ExpectQuery(regexp.QuoteMeta("FROM task_assignments ta")).
		WithArgs("year-1").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.TaskAssignmentFilter{AcademicYearID: "year-1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ta-1", items[0].ID)
	assert.Equal(t, "Wali Kelas", items[0].TaskName)
	assert.True(t, items[0].JPEquivalent.Equal(decimal.RequireFromString("2.00")))
}

func TestTaskAssignmentRepositoryExistsNone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM task_assignments")).
		WithArgs("year-1", "teacher-1", "task-1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.Exists(context.Background(), "year-1", "teacher-1", "task-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTaskAssignmentRepositoryDistinctTeacherIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"teacher_id"}).
		AddRow("teacher-2").
		AddRow("teacher-3")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT teacher_id FROM task_assignments WHERE academic_year_id = $1 ORDER BY teacher_id")).
		WithArgs("year-1").
		WillReturnRows(rows)

	ids, err := repo.DistinctTeacherIDs(context.Background(), "year-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"teacher-2", "teacher-3"}, ids)
}

func TestTaskAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO task_assignments")).
		WithArgs(sqlmock.AnyArg(), "year-1", "teacher-1", "task-1", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.TaskAssignment{
		AcademicYearID: "year-1",
		TeacherID:      "teacher-1",
		TaskID:         "task-1",
	}
	err := repo.Create(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.ID)
}

func TestTaskAssignmentRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM task_assignments WHERE id = $1")).
		WithArgs("ta-99").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ta-99")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
