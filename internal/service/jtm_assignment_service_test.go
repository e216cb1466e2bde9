package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

type mockYearReader struct {
	items map[string]*models.AcademicYear
	err   error
}

func (m *mockYearReader) FindByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	if m.err != nil {
		return nil, m.err
	}
	if year, ok := m.items[id]; ok {
		cp := *year
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockSubjectReader struct {
	items map[string]*models.Subject
}

func (m *mockSubjectReader) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	if subject, ok := m.items[id]; ok {
		cp := *subject
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockClassReader struct {
	items map[string]*models.Class
}

func (m *mockClassReader) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if class, ok := m.items[id]; ok {
		cp := *class
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockJtmRepo struct {
	classTotals map[string]int
	sumErr      error
	exists      bool
	existsErr   error
	created     []*models.JtmAssignment
	createErr   error
	deleteErr   error
}

func (m *mockJtmRepo) List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error) {
	return nil, nil
}

func (m *mockJtmRepo) SumAllocatedByClass(ctx context.Context, classID, academicYearID string) (int, error) {
	if m.sumErr != nil {
		return 0, m.sumErr
	}
	return m.classTotals[classID], nil
}

func (m *mockJtmRepo) Exists(ctx context.Context, academicYearID, teacherID, subjectID, classID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockJtmRepo) Create(ctx context.Context, assignment *models.JtmAssignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	assignment.ID = "generated"
	m.created = append(m.created, assignment)
	return nil
}

func (m *mockJtmRepo) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

type mockCacheInvalidator struct {
	patterns []string
}

func (m *mockCacheInvalidator) Invalidate(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

func validRequest() JtmAssignmentRequest {
	return JtmAssignmentRequest{
		AcademicYearID: "y1",
		TeacherID:      "t1",
		SubjectID:      "s1",
		ClassID:        "c1",
		AllocatedHours: 12,
	}
}

func yearWithCeiling(limit int) *mockYearReader {
	return &mockYearReader{items: map[string]*models.AcademicYear{
		"y1": {ID: "y1", Year: "2025/2026", Semester: 1, TotalTimeAllocation: limit},
	}}
}

func newJtmService(years *mockYearReader, repo *mockJtmRepo) *JtmAssignmentService {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Siti Aminah"},
	}}
	subjects := &mockSubjectReader{items: map[string]*models.Subject{
		"s1": {ID: "s1", Name: "Matematika", TimeAllocation: 5},
	}}
	classes := &mockClassReader{items: map[string]*models.Class{
		"c1": {ID: "c1", Name: "7A", Grade: 7, Rombel: "A", AcademicYearID: "y1"},
	}}
	return NewJtmAssignmentService(years, teachers, subjects, classes, repo, nil, nil, validator.New(), zap.NewNop())
}

type mockValidationRecorder struct {
	outcomes []bool
}

func (m *mockValidationRecorder) RecordValidation(valid bool) {
	m.outcomes = append(m.outcomes, valid)
}

func TestValidatePassesUnderCeiling(t *testing.T) {
	repo := &mockJtmRepo{classTotals: map[string]int{"c1": 10}}
	svc := newJtmService(yearWithCeiling(38), repo)

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateCeilingExceeded(t *testing.T) {
	repo := &mockJtmRepo{classTotals: map[string]int{"c1": 38}}
	svc := newJtmService(yearWithCeiling(38), repo)

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Total allocation (50 hours) exceeds curriculum limit (38 hours) for this class", result.Errors[0])
	assert.Empty(t, result.Warnings)
}

func TestValidateApproachingCeilingWarns(t *testing.T) {
	// 23 + 12 = 35 of 38: above the 90% band but within the ceiling.
	repo := &mockJtmRepo{classTotals: map[string]int{"c1": 23}}
	svc := newJtmService(yearWithCeiling(38), repo)

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Total allocation (35 hours) is approaching curriculum limit (38 hours)", result.Warnings[0])
}

func TestValidateDuplicateAssignment(t *testing.T) {
	repo := &mockJtmRepo{exists: true}
	svc := newJtmService(yearWithCeiling(38), repo)

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "This teacher is already assigned to teach this subject in this class", result.Errors[0])
}

func TestValidateUnknownAcademicYear(t *testing.T) {
	svc := newJtmService(&mockYearReader{}, &mockJtmRepo{})

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Academic year with id y1 not found", result.Errors[0])
}

func TestValidateSystemErrorMasksDetails(t *testing.T) {
	repo := &mockJtmRepo{sumErr: errors.New("connection refused")}
	svc := newJtmService(yearWithCeiling(38), repo)

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Validation failed due to system error"}, result.Errors)
}

func TestValidateExistsErrorResetsFindings(t *testing.T) {
	// 23+12=35 of 38 produces a warning first; the duplicate-check failure
	// must wipe it and leave only the synthetic error.
	repo := &mockJtmRepo{
		classTotals: map[string]int{"c1": 23},
		existsErr:   errors.New("connection refused"),
	}
	svc := newJtmService(yearWithCeiling(38), repo)

	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Validation failed due to system error"}, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestCreateSkipsCeilingAndDuplicateChecks(t *testing.T) {
	// Even an over-ceiling duplicate is persisted: Create only verifies the
	// referenced entities exist.
	repo := &mockJtmRepo{classTotals: map[string]int{"c1": 100}, exists: true}
	svc := newJtmService(yearWithCeiling(38), repo)

	assignment, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "generated", assignment.ID)
	require.Len(t, repo.created, 1)
}

func TestCreateUnknownEntities(t *testing.T) {
	svc := newJtmService(yearWithCeiling(38), &mockJtmRepo{})

	cases := []struct {
		mutate  func(*JtmAssignmentRequest)
		message string
	}{
		{func(r *JtmAssignmentRequest) { r.AcademicYearID = "nope" }, "Academic year with id nope not found"},
		{func(r *JtmAssignmentRequest) { r.TeacherID = "nope" }, "Teacher with id nope not found"},
		{func(r *JtmAssignmentRequest) { r.SubjectID = "nope" }, "Subject with id nope not found"},
		{func(r *JtmAssignmentRequest) { r.ClassID = "nope" }, "Class with id nope not found"},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.message)
	}
}

func TestCreateRejectsNonPositiveHours(t *testing.T) {
	svc := newJtmService(yearWithCeiling(38), &mockJtmRepo{})

	req := validRequest()
	req.AllocatedHours = 0
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCreateInvalidatesScheduleCache(t *testing.T) {
	repo := &mockJtmRepo{}
	cache := &mockCacheInvalidator{}
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{"t1": {ID: "t1"}}}
	subjects := &mockSubjectReader{items: map[string]*models.Subject{"s1": {ID: "s1"}}}
	classes := &mockClassReader{items: map[string]*models.Class{"c1": {ID: "c1"}}}
	svc := NewJtmAssignmentService(yearWithCeiling(38), teachers, subjects, classes, repo, cache, nil, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, cache.patterns, 1)
	assert.Equal(t, "schedule:y1:*", cache.patterns[0])
}

func TestValidateRecordsOutcome(t *testing.T) {
	recorder := &mockValidationRecorder{}
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{"t1": {ID: "t1"}}}
	subjects := &mockSubjectReader{items: map[string]*models.Subject{"s1": {ID: "s1"}}}
	classes := &mockClassReader{items: map[string]*models.Class{"c1": {ID: "c1"}}}

	repo := &mockJtmRepo{classTotals: map[string]int{"c1": 10}}
	svc := NewJtmAssignmentService(yearWithCeiling(38), teachers, subjects, classes, repo, nil, recorder, validator.New(), zap.NewNop())
	result, err := svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, result.IsValid)

	repo.classTotals["c1"] = 38
	result, err = svc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, result.IsValid)

	// Unknown year also counts as an invalid run.
	_, err = svc.Validate(context.Background(), JtmAssignmentRequest{
		AcademicYearID: "missing", TeacherID: "t1", SubjectID: "s1", ClassID: "c1", AllocatedHours: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, false}, recorder.outcomes)
}
