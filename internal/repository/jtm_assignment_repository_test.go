package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestJtmAssignmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	created := time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "academic_year_id", "teacher_id", "subject_id", "class_id", "allocated_hours", "created_at", "teacher_name", "subject_name", "class_name"}).
		AddRow("ja-1", "year-1", "teacher-1", "subject-1", "class-1", 4, created, "Budi Santoso", "Matematika", "7A")

	mock.ExpectQuery(regexp.QuoteMeta("FROM jtm_assignments ja")).
		WithArgs("year-1", "teacher-1").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.JtmAssignmentFilter{
		AcademicYearID: "year-1",
		TeacherID:      "teacher-1",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ja-1", items[0].ID)
	assert.Equal(t, 4, items[0].AllocatedHours)
	assert.Equal(t, "Matematika", items[0].SubjectName)
	assert.Equal(t, "7A", items[0].ClassName)
}

func TestJtmAssignmentRepositoryListUnfiltered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "academic_year_id", "teacher_id", "subject_id", "class_id", "allocated_hours", "created_at", "teacher_name", "subject_name", "class_name"})

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY ja.created_at ASC")).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.JtmAssignmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestJtmAssignmentRepositorySumAllocatedByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(allocated_hours), 0) FROM jtm_assignments WHERE class_id = $1 AND academic_year_id = $2")).
		WithArgs("class-1", "year-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(22))

	total, err := repo.SumAllocatedByClass(context.Background(), "class-1", "year-1")
	require.NoError(t, err)
	assert.Equal(t, 22, total)
}

func TestJtmAssignmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM jtm_assignments")).
		WithArgs("year-1", "teacher-1", "subject-1", "class-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "year-1", "teacher-1", "subject-1", "class-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestJtmAssignmentRepositoryExistsNone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM jtm_assignments")).
		WithArgs("year-1", "teacher-1", "subject-1", "class-1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.Exists(context.Background(), "year-1", "teacher-1", "subject-1", "class-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestJtmAssignmentRepositoryDistinctTeacherIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"teacher_id"}).
		AddRow("teacher-1").
		AddRow("teacher-2")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT teacher_id FROM jtm_assignments WHERE academic_year_id = $1 ORDER BY teacher_id")).
		WithArgs("year-1").
		WillReturnRows(rows)

	ids, err := repo.DistinctTeacherIDs(context.Background(), "year-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"teacher-1", "teacher-2"}, ids)
}

func TestJtmAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jtm_assignments")).
		WithArgs(sqlmock.AnyArg(), "year-1", "teacher-1", "subject-1", "class-1", 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.JtmAssignment{
		AcademicYearID: "year-1",
		TeacherID:      "teacher-1",
		SubjectID:      "subject-1",
		ClassID:        "class-1",
		AllocatedHours: 4,
	}
	err := repo.Create(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.ID)
	assert.False(t, assignment.CreatedAt.IsZero())
}

func TestJtmAssignmentRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJtmAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jtm_assignments WHERE id = $1")).
		WithArgs("ja-99").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ja-99")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
