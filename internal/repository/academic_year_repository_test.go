package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

func TestAcademicYearRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicYearRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM academic_years WHERE 1=1 AND year = $1")).
		WithArgs("2026/2027").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "year", "semester", "curriculum", "total_time_allocation", "is_active", "created_at", "updated_at"}).
		AddRow("year-1", "2026/2027", 1, "Kurikulum Merdeka", 38, true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY year DESC, semester ASC LIMIT $2 OFFSET $3")).
		WithArgs("2026/2027", 20, 0).
		WillReturnRows(rows)

	years, total, err := repo.List(context.Background(), models.AcademicYearFilter{Year: "2026/2027"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, years, 1)
	assert.Equal(t, "year-1", years[0].ID)
	assert.Equal(t, 38, years[0].TotalTimeAllocation)
	assert.True(t, years[0].IsActive)
}

func TestAcademicYearRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicYearRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM academic_years WHERE id = $1")).
		WithArgs("year-99").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "year-99")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAcademicYearRepositoryExistsByYearAndSemester(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicYearRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM academic_years WHERE year = $1 AND semester = $2 AND id <> $3")).
		WithArgs("2026/2027", 1, "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByYearAndSemester(context.Background(), "2026/2027", 1, "")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAcademicYearRepositorySetActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicYearRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE academic_years SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE AND id <> $2")).
		WithArgs(sqlmock.AnyArg(), "year-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE academic_years SET is_active = TRUE, updated_at = $2 WHERE id = $1")).
		WithArgs("year-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetActive(context.Background(), "year-2")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicYearRepositorySetActiveRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicYearRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE academic_years SET is_active = FALSE")).
		WithArgs(sqlmock.AnyArg(), "year-2").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SetActive(context.Background(), "year-2")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicYearRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicYearRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO academic_years")).
		WithArgs(sqlmock.AnyArg(), "2026/2027", 1, "Kurikulum Merdeka", 38, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	year := &models.AcademicYear{
		Year:                "2026/2027",
		Semester:            1,
		Curriculum:          "Kurikulum Merdeka",
		TotalTimeAllocation: 38,
	}
	err := repo.Create(context.Background(), year)
	require.NoError(t, err)
	assert.NotEmpty(t, year.ID)
}
