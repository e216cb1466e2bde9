package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

type mockScheduleRepo struct {
	replacedYear string
	replaced     []models.ScheduleEntry
	byClass      map[string][]models.ScheduleEntry
}

func (m *mockScheduleRepo) ReplaceForYear(ctx context.Context, academicYearID string, entries []models.ScheduleEntry) error {
	m.replacedYear = academicYearID
	m.replaced = entries
	return nil
}

func (m *mockScheduleRepo) ListByClass(ctx context.Context, classID string) ([]models.ScheduleEntry, error) {
	return m.byClass[classID], nil
}

type mockScheduleCache struct {
	stored   map[string]*models.ClassTimetable
	patterns []string
}

func (m *mockScheduleCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	timetable, ok := m.stored[key]
	if !ok {
		return false, nil
	}
	if out, ok := dest.(*models.ClassTimetable); ok {
		*out = *timetable
	}
	return true, nil
}

func (m *mockScheduleCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.stored == nil {
		m.stored = make(map[string]*models.ClassTimetable)
	}
	if timetable, ok := value.(*models.ClassTimetable); ok {
		m.stored[key] = timetable
	}
	return nil
}

func (m *mockScheduleCache) Invalidate(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

func newScheduleService(years *mockYearReader, repo *mockScheduleRepo, cache *mockScheduleCache, jtm *mockClassAllocationLister, classes []models.Class, cfg ScheduleConfig) *ScheduleService {
	classByID := &mockClassReader{items: map[string]*models.Class{}}
	for i := range classes {
		classByID.items[classes[i].ID] = &classes[i]
	}
	return NewScheduleService(
		years,
		&mockClassYearLister{classes: classes},
		classByID,
		jtm,
		repo,
		cache,
		cfg,
		zap.NewNop(),
	)
}

func TestGenerateFillsGridSequentially(t *testing.T) {
	years := &mockYearReader{items: map[string]*models.AcademicYear{"y1": {ID: "y1"}}}
	jtm := &mockClassAllocationLister{rowsByClass: map[string][]models.JtmAssignmentDetail{
		"c1": {
			classJtmRow("c1", "s1", "Matematika", 3),
			classJtmRow("c1", "s2", "IPA", 2),
		},
	}}
	repo := &mockScheduleRepo{}
	cache := &mockScheduleCache{}
	classes := []models.Class{{ID: "c1", Name: "7A", AcademicYearID: "y1"}}
	svc := newScheduleService(years, repo, cache, jtm, classes, ScheduleConfig{PeriodsPerDay: 2, SchoolDays: 2})

	result, err := svc.Generate(context.Background(), "y1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Classes)
	assert.Equal(t, 4, result.Entries)
	assert.Equal(t, 1, result.SkippedHours)

	require.Len(t, repo.replaced, 4)
	assert.Equal(t, "y1", repo.replacedYear)

	// First subject occupies day 1 fully plus the first slot of day 2.
	assert.Equal(t, "s1", repo.replaced[0].SubjectID)
	assert.Equal(t, 1, repo.replaced[0].Day)
	assert.Equal(t, 1, repo.replaced[0].Period)
	assert.Equal(t, 1, repo.replaced[1].Day)
	assert.Equal(t, 2, repo.replaced[1].Period)
	assert.Equal(t, "s1", repo.replaced[2].SubjectID)
	assert.Equal(t, 2, repo.replaced[2].Day)
	assert.Equal(t, 1, repo.replaced[2].Period)
	assert.Equal(t, "s2", repo.replaced[3].SubjectID)
	assert.Equal(t, 2, repo.replaced[3].Day)
	assert.Equal(t, 2, repo.replaced[3].Period)

	assert.Equal(t, []string{"schedule:y1:*"}, cache.patterns)
	require.Contains(t, cache.stored, "schedule:y1:c1")
	assert.Len(t, cache.stored["schedule:y1:c1"].Entries, 4)
}

func TestGenerateUnknownYear(t *testing.T) {
	svc := newScheduleService(&mockYearReader{}, &mockScheduleRepo{}, &mockScheduleCache{}, &mockClassAllocationLister{}, nil, ScheduleConfig{})

	_, err := svc.Generate(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Academic year with id missing not found")
}

func TestGetByClassServesFromCache(t *testing.T) {
	cached := &models.ClassTimetable{
		ClassID:        "c1",
		AcademicYearID: "y1",
		Entries:        []models.ScheduleEntry{{ClassID: "c1", SubjectID: "s1", Day: 1, Period: 1}},
	}
	cache := &mockScheduleCache{stored: map[string]*models.ClassTimetable{"schedule:y1:c1": cached}}
	repo := &mockScheduleRepo{byClass: map[string][]models.ScheduleEntry{
		"c1": {{ClassID: "c1", SubjectID: "stale", Day: 5, Period: 8}},
	}}
	classes := []models.Class{{ID: "c1", Name: "7A", AcademicYearID: "y1"}}
	svc := newScheduleService(&mockYearReader{}, repo, cache, &mockClassAllocationLister{}, classes, ScheduleConfig{})

	timetable, err := svc.GetByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, timetable.Entries, 1)
	assert.Equal(t, "s1", timetable.Entries[0].SubjectID)
}

func TestGetByClassFallsBackToStore(t *testing.T) {
	cache := &mockScheduleCache{}
	repo := &mockScheduleRepo{byClass: map[string][]models.ScheduleEntry{
		"c1": {{ClassID: "c1", SubjectID: "s1", Day: 1, Period: 1}},
	}}
	classes := []models.Class{{ID: "c1", Name: "7A", AcademicYearID: "y1"}}
	svc := newScheduleService(&mockYearReader{}, repo, cache, &mockClassAllocationLister{}, classes, ScheduleConfig{})

	timetable, err := svc.GetByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, timetable.Entries, 1)
	assert.Equal(t, "y1", timetable.AcademicYearID)

	// Miss backfills the cache for the next read.
	assert.Contains(t, cache.stored, "schedule:y1:c1")
}

func TestGetByClassUnknownClass(t *testing.T) {
	svc := newScheduleService(&mockYearReader{}, &mockScheduleRepo{}, &mockScheduleCache{}, &mockClassAllocationLister{}, nil, ScheduleConfig{})

	_, err := svc.GetByClass(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Class with id missing not found")
}
