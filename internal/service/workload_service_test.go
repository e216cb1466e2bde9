package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

type mockTeacherReader struct {
	items map[string]*models.Teacher
	err   error
}

func (m *mockTeacherReader) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	if teacher, ok := m.items[id]; ok {
		cp := *teacher
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockJtmLister struct {
	rows    map[string][]models.JtmAssignmentDetail
	ids     []string
	listErr error
	idsErr  error
}

func (m *mockJtmLister) List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows[filter.TeacherID], nil
}

func (m *mockJtmLister) DistinctTeacherIDs(ctx context.Context, academicYearID string) ([]string, error) {
	if m.idsErr != nil {
		return nil, m.idsErr
	}
	return m.ids, nil
}

type mockTaskLister struct {
	rows    map[string][]models.TaskAssignmentDetail
	ids     []string
	listErr error
}

func (m *mockTaskLister) List(ctx context.Context, filter models.TaskAssignmentFilter) ([]models.TaskAssignmentDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows[filter.TeacherID], nil
}

func (m *mockTaskLister) DistinctTeacherIDs(ctx context.Context, academicYearID string) ([]string, error) {
	return m.ids, nil
}

func jtmRow(teacherID, subject, class string, hours int) models.JtmAssignmentDetail {
	return models.JtmAssignmentDetail{
		JtmAssignment: models.JtmAssignment{
			TeacherID:      teacherID,
			AllocatedHours: hours,
		},
		SubjectName: subject,
		ClassName:   class,
	}
}

func taskRow(teacherID, task, equivalent string) models.TaskAssignmentDetail {
	return models.TaskAssignmentDetail{
		TaskAssignment: models.TaskAssignment{TeacherID: teacherID},
		TaskName:       task,
		JPEquivalent:   decimal.RequireFromString(equivalent),
	}
}

func newWorkloadService(teachers *mockTeacherReader, jtm *mockJtmLister, tasks *mockTaskLister) *WorkloadService {
	return NewWorkloadService(teachers, jtm, tasks, 0, 0, zap.NewNop())
}

func TestClassifyBoundaries(t *testing.T) {
	svc := newWorkloadService(&mockTeacherReader{}, &mockJtmLister{}, &mockTaskLister{})

	cases := []struct {
		total    string
		expected models.WorkloadStatus
	}{
		{"0", models.WorkloadStatusKurang},
		{"23.9999", models.WorkloadStatusKurang},
		{"24", models.WorkloadStatusLayak},
		{"30", models.WorkloadStatusLayak},
		{"40", models.WorkloadStatusLayak},
		{"40.0001", models.WorkloadStatusLebih},
		{"45", models.WorkloadStatusLebih},
	}
	for _, tc := range cases {
		status := svc.Classify(decimal.RequireFromString(tc.total))
		assert.Equal(t, tc.expected, status, "total %s", tc.total)
	}
}

func TestComputeWorkloadSumsJTMAndTasks(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Siti Aminah"},
	}}
	jtm := &mockJtmLister{rows: map[string][]models.JtmAssignmentDetail{
		"t1": {
			jtmRow("t1", "Matematika", "7A", 12),
			jtmRow("t1", "Matematika", "8B", 8),
		},
	}}
	tasks := &mockTaskLister{rows: map[string][]models.TaskAssignmentDetail{
		"t1": {taskRow("t1", "Wali Kelas", "4.00")},
	}}
	svc := newWorkloadService(teachers, jtm, tasks)

	workload, err := svc.ComputeWorkload(context.Background(), "t1", "y1")
	require.NoError(t, err)
	assert.Equal(t, 20, workload.TotalJTMHours)
	assert.True(t, workload.TotalTaskEquivalent.Equal(decimal.RequireFromString("4.00")))
	assert.True(t, workload.TotalWorkload.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, models.WorkloadStatusLayak, workload.Status)

	// JTM rows precede task rows in the breakdown.
	require.Len(t, workload.Details, 3)
	assert.Equal(t, models.WorkloadItemJTM, workload.Details[0].Kind)
	assert.Equal(t, models.WorkloadItemJTM, workload.Details[1].Kind)
	assert.Equal(t, models.WorkloadItemTask, workload.Details[2].Kind)
	assert.Equal(t, "Wali Kelas", workload.Details[2].TaskName)
}

func TestComputeWorkloadDecimalSumExact(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Budi Santoso"},
	}}
	tasks := &mockTaskLister{rows: map[string][]models.TaskAssignmentDetail{
		"t1": {
			taskRow("t1", "Pembina OSIS", "0.10"),
			taskRow("t1", "Pembina Pramuka", "0.20"),
		},
	}}
	svc := newWorkloadService(teachers, &mockJtmLister{}, tasks)

	workload, err := svc.ComputeWorkload(context.Background(), "t1", "y1")
	require.NoError(t, err)
	assert.True(t, workload.TotalTaskEquivalent.Equal(decimal.RequireFromString("0.30")),
		"got %s", workload.TotalTaskEquivalent)
}

func TestComputeWorkloadUnknownTeacher(t *testing.T) {
	svc := newWorkloadService(&mockTeacherReader{}, &mockJtmLister{}, &mockTaskLister{})

	_, err := svc.ComputeWorkload(context.Background(), "missing", "y1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Teacher with id missing not found")
}

func TestComputeWorkloadUnknownYearYieldsZeroSums(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Siti Aminah"},
	}}
	svc := newWorkloadService(teachers, &mockJtmLister{}, &mockTaskLister{})

	workload, err := svc.ComputeWorkload(context.Background(), "t1", "no-such-year")
	require.NoError(t, err)
	assert.Equal(t, 0, workload.TotalJTMHours)
	assert.True(t, workload.TotalWorkload.IsZero())
	assert.Equal(t, models.WorkloadStatusKurang, workload.Status)
	assert.Empty(t, workload.Details)
}

func TestComputeAllWorkloadsDeduplicatesUnion(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Guru Satu"},
		"t2": {ID: "t2", FullName: "Guru Dua"},
		"t3": {ID: "t3", FullName: "Guru Tiga"},
	}}
	jtm := &mockJtmLister{ids: []string{"t1", "t2"}}
	tasks := &mockTaskLister{ids: []string{"t2", "t3"}}
	svc := newWorkloadService(teachers, jtm, tasks)

	workloads, err := svc.ComputeAllWorkloads(context.Background(), "y1")
	require.NoError(t, err)
	require.Len(t, workloads, 3)
	assert.Equal(t, "t1", workloads[0].TeacherID)
	assert.Equal(t, "t2", workloads[1].TeacherID)
	assert.Equal(t, "t3", workloads[2].TeacherID)
}

func TestComputeAllWorkloadsEmptyYear(t *testing.T) {
	svc := newWorkloadService(&mockTeacherReader{}, &mockJtmLister{}, &mockTaskLister{})

	workloads, err := svc.ComputeAllWorkloads(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, workloads)
}

func TestFilterByStatus(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Guru Satu"},
		"t2": {ID: "t2", FullName: "Guru Dua"},
	}}
	jtm := &mockJtmLister{
		ids: []string{"t1", "t2"},
		rows: map[string][]models.JtmAssignmentDetail{
			"t1": {jtmRow("t1", "IPA", "7A", 10)},
			"t2": {jtmRow("t2", "IPS", "8A", 45)},
		},
	}
	svc := newWorkloadService(teachers, jtm, &mockTaskLister{})

	kurang, err := svc.FilterByStatus(context.Background(), "y1", models.WorkloadStatusKurang)
	require.NoError(t, err)
	require.Len(t, kurang, 1)
	assert.Equal(t, "t1", kurang[0].TeacherID)

	lebih, err := svc.FilterByStatus(context.Background(), "y1", models.WorkloadStatusLebih)
	require.NoError(t, err)
	require.Len(t, lebih, 1)
	assert.Equal(t, "t2", lebih[0].TeacherID)

	layak, err := svc.FilterByStatus(context.Background(), "y1", models.WorkloadStatusLayak)
	require.NoError(t, err)
	assert.Empty(t, layak)
}

func TestFilterByStatusRejectsUnknownStatus(t *testing.T) {
	svc := newWorkloadService(&mockTeacherReader{}, &mockJtmLister{}, &mockTaskLister{})

	_, err := svc.FilterByStatus(context.Background(), "y1", models.WorkloadStatus("banyak"))
	require.Error(t, err)
}

func TestSummaryStatistics(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Guru Satu"},
		"t2": {ID: "t2", FullName: "Guru Dua"},
	}}
	jtm := &mockJtmLister{
		ids: []string{"t1", "t2"},
		rows: map[string][]models.JtmAssignmentDetail{
			"t1": {jtmRow("t1", "IPA", "7A", 24)},
			"t2": {jtmRow("t2", "IPS", "8A", 10)},
		},
	}
	svc := newWorkloadService(teachers, jtm, &mockTaskLister{})

	stats, err := svc.SummaryStatistics(context.Background(), "y1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTeachers)
	assert.Equal(t, 1, stats.LayakCount)
	assert.Equal(t, 1, stats.KurangCount)
	assert.Equal(t, 0, stats.LebihCount)
	assert.True(t, stats.AverageWorkload.Equal(decimal.NewFromInt(17)), "got %s", stats.AverageWorkload)
}

func TestSummaryStatisticsEmptyYearAverageIsZero(t *testing.T) {
	svc := newWorkloadService(&mockTeacherReader{}, &mockJtmLister{}, &mockTaskLister{})

	stats, err := svc.SummaryStatistics(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalTeachers)
	assert.True(t, stats.AverageWorkload.IsZero())
}

func TestWorkloadDetailSurplusDeficit(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Siti Aminah"},
	}}
	jtm := &mockJtmLister{rows: map[string][]models.JtmAssignmentDetail{
		"t1": {jtmRow("t1", "Matematika", "7A", 20)},
	}}
	tasks := &mockTaskLister{rows: map[string][]models.TaskAssignmentDetail{
		"t1": {taskRow("t1", "Wali Kelas", "4.00")},
	}}
	svc := newWorkloadService(teachers, jtm, tasks)

	detail, err := svc.WorkloadDetail(context.Background(), "t1", "y1")
	require.NoError(t, err)
	assert.Equal(t, 20, detail.Summary.TotalJTM)
	assert.True(t, detail.Summary.TotalWorkload.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, models.WorkloadStatusLayak, detail.Summary.Status)
	assert.Equal(t, 24, detail.Summary.MinimumRequired)
	assert.True(t, detail.Summary.SurplusDeficit.IsZero())
	require.Len(t, detail.JTMAssignments, 1)
	require.Len(t, detail.TaskRows, 1)
}

func TestComputeWorkloadStoreFailure(t *testing.T) {
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Siti Aminah"},
	}}
	jtm := &mockJtmLister{listErr: errors.New("connection reset")}
	svc := newWorkloadService(teachers, jtm, &mockTaskLister{})

	_, err := svc.ComputeWorkload(context.Background(), "t1", "y1")
	require.Error(t, err)
}
