package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

type scheduleRepository interface {
	ReplaceForYear(ctx context.Context, academicYearID string, entries []models.ScheduleEntry) error
	ListByClass(ctx context.Context, classID string) ([]models.ScheduleEntry, error)
}

type scheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// ScheduleConfig governs the placeholder layout grid and cache TTL.
type ScheduleConfig struct {
	PeriodsPerDay int
	SchoolDays    int
	CacheTTL      time.Duration
}

// GenerateScheduleResult summarises one generation run.
type GenerateScheduleResult struct {
	AcademicYearID string    `json:"academic_year_id"`
	Classes        int       `json:"classes"`
	Entries        int       `json:"entries"`
	SkippedHours   int       `json:"skipped_hours"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ScheduleService lays JTM assignments into day/period slots. The layout is a
// sequential placeholder grid, not a constraint solver: assignments fill each
// class week in creation order and hours beyond the grid are skipped.
type ScheduleService struct {
	years       academicYearReader
	classes     classByYearLister
	classByID   classReader
	assignments classAllocationLister
	repo        scheduleRepository
	cache       scheduleCache
	cfg         ScheduleConfig
	logger      *zap.Logger
}

// NewScheduleService wires schedule dependencies.
func NewScheduleService(
	years academicYearReader,
	classes classByYearLister,
	classByID classReader,
	assignments classAllocationLister,
	repo scheduleRepository,
	cache scheduleCache,
	cfg ScheduleConfig,
	logger *zap.Logger,
) *ScheduleService {
	if cfg.PeriodsPerDay <= 0 {
		cfg.PeriodsPerDay = 8
	}
	if cfg.SchoolDays <= 0 {
		cfg.SchoolDays = 5
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		years:       years,
		classes:     classes,
		classByID:   classByID,
		assignments: assignments,
		repo:        repo,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
	}
}

// Generate rebuilds every class timetable for the academic year and refreshes
// the per-class cache entries.
func (s *ScheduleService) Generate(ctx context.Context, academicYearID string) (*GenerateScheduleResult, error) {
	if _, err := s.years.FindByID(ctx, academicYearID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Academic year with id %s not found", academicYearID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}

	classes, err := s.classes.ListByAcademicYear(ctx, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}

	generatedAt := time.Now().UTC()
	var entries []models.ScheduleEntry
	skipped := 0
	timetables := make(map[string]*models.ClassTimetable, len(classes))

	for _, class := range classes {
		assignments, err := s.assignments.List(ctx, models.JtmAssignmentFilter{
			AcademicYearID: academicYearID,
			ClassID:        class.ID,
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
		}

		timetable := &models.ClassTimetable{
			ClassID:        class.ID,
			AcademicYearID: academicYearID,
			GeneratedAt:    generatedAt,
		}
		day, period := 1, 1
		for _, assignment := range assignments {
			for h := 0; h < assignment.AllocatedHours; h++ {
				if day > s.cfg.SchoolDays {
					skipped++
					continue
				}
				entry := models.ScheduleEntry{
					AcademicYearID: academicYearID,
					ClassID:        class.ID,
					SubjectID:      assignment.SubjectID,
					TeacherID:      assignment.TeacherID,
					Day:            day,
					Period:         period,
				}
				entries = append(entries, entry)
				timetable.Entries = append(timetable.Entries, entry)
				period++
				if period > s.cfg.PeriodsPerDay {
					period = 1
					day++
				}
			}
		}
		timetables[class.ID] = timetable
	}

	if err := s.repo.ReplaceForYear(ctx, academicYearID, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule entries")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "schedule:"+academicYearID+":*"); err != nil {
			s.logger.Warn("schedule cache invalidation failed", zap.String("academic_year_id", academicYearID), zap.Error(err))
		}
		for classID, timetable := range timetables {
			key := scheduleCacheKey(academicYearID, classID)
			if err := s.cache.Set(ctx, key, timetable, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	if skipped > 0 {
		s.logger.Warn("schedule generation dropped overflow hours",
			zap.String("academic_year_id", academicYearID),
			zap.Int("skipped_hours", skipped))
	}

	return &GenerateScheduleResult{
		AcademicYearID: academicYearID,
		Classes:        len(classes),
		Entries:        len(entries),
		SkippedHours:   skipped,
		GeneratedAt:    generatedAt,
	}, nil
}

// GetByClass returns the class timetable, serving from cache when available.
func (s *ScheduleService) GetByClass(ctx context.Context, classID string) (*models.ClassTimetable, error) {
	class, err := s.classByID.FindByID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Class with id %s not found", classID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	key := scheduleCacheKey(class.AcademicYearID, classID)
	if s.cache != nil {
		var cached models.ClassTimetable
		hit, err := s.cache.Get(ctx, key, &cached)
		if err == nil && hit {
			return &cached, nil
		}
	}

	entries, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule entries")
	}
	timetable := &models.ClassTimetable{
		ClassID:        classID,
		AcademicYearID: class.AcademicYearID,
		Entries:        entries,
		GeneratedAt:    time.Now().UTC(),
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, timetable, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return timetable, nil
}

func scheduleCacheKey(academicYearID, classID string) string {
	return "schedule:" + academicYearID + ":" + classID
}
