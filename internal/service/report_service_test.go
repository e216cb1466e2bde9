package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	"github.com/akademika-id/siap-smp-api/pkg/export"
)

type mockWorkloadAggregator struct {
	workloads []models.TeacherWorkload
	stats     *models.WorkloadSummaryStatistics
}

func (m *mockWorkloadAggregator) ComputeAllWorkloads(ctx context.Context, academicYearID string) ([]models.TeacherWorkload, error) {
	return m.workloads, nil
}

func (m *mockWorkloadAggregator) SummaryStatistics(ctx context.Context, academicYearID string) (*models.WorkloadSummaryStatistics, error) {
	return m.stats, nil
}

type captureCSVRenderer struct {
	dataset export.Dataset
}

func (r *captureCSVRenderer) Render(data export.Dataset) ([]byte, error) {
	r.dataset = data
	return []byte("csv-bytes"), nil
}

type capturePDFRenderer struct {
	dataset export.Dataset
	title   string
}

func (r *capturePDFRenderer) Render(data export.Dataset, title string) ([]byte, error) {
	r.dataset = data
	r.title = title
	return []byte("pdf-bytes"), nil
}

func reportFixtures() (*mockYearReader, *mockWorkloadAggregator) {
	years := &mockYearReader{items: map[string]*models.AcademicYear{
		"y1": {ID: "y1", Year: "2026/2027", Semester: 1},
	}}
	aggregator := &mockWorkloadAggregator{
		workloads: []models.TeacherWorkload{
			{
				TeacherName:         "Budi Santoso",
				TotalJTMHours:       22,
				TotalTaskEquivalent: decimal.RequireFromString("2.00"),
				TotalWorkload:       decimal.RequireFromString("24.00"),
				Status:              models.WorkloadStatusLayak,
			},
			{
				TeacherName:         "Siti Aminah",
				TotalJTMHours:       10,
				TotalTaskEquivalent: decimal.Zero,
				TotalWorkload:       decimal.NewFromInt(10),
				Status:              models.WorkloadStatusKurang,
			},
		},
		stats: &models.WorkloadSummaryStatistics{
			TotalTeachers:   2,
			LayakCount:      1,
			KurangCount:     1,
			AverageWorkload: decimal.RequireFromString("17.00"),
		},
	}
	return years, aggregator
}

func TestParseReportFormat(t *testing.T) {
	format, err := ParseReportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ReportFormatCSV, format)

	format, err = ParseReportFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, ReportFormatPDF, format)

	_, err = ParseReportFormat("xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported report format "xlsx"`)
}

func TestWorkloadRecapCSV(t *testing.T) {
	years, aggregator := reportFixtures()
	csv := &captureCSVRenderer{}
	svc := NewReportService(years, aggregator, csv, &capturePDFRenderer{}, zap.NewNop())

	file, err := svc.WorkloadRecap(context.Background(), "y1", ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "workload-recap-2026-2027-s1.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, []byte("csv-bytes"), file.Payload)

	assert.Equal(t, []string{"No", "Nama Guru", "JTM", "Ekuivalen Tugas", "Total Beban", "Status"}, csv.dataset.Headers)
	require.Len(t, csv.dataset.Rows, 3)
	assert.Equal(t, []string{"1", "Budi Santoso", "22", "2.00", "24.00", "layak"}, csv.dataset.Rows[0])
	assert.Equal(t, []string{"2", "Siti Aminah", "10", "0.00", "10.00", "kurang"}, csv.dataset.Rows[1])

	footer := csv.dataset.Rows[2]
	assert.Equal(t, "Rata-rata (2 guru)", footer[1])
	assert.Equal(t, "17.00", footer[4])
	assert.Equal(t, "layak=1 lebih=0 kurang=1", footer[5])
}

func TestWorkloadRecapPDF(t *testing.T) {
	years, aggregator := reportFixtures()
	pdf := &capturePDFRenderer{}
	svc := NewReportService(years, aggregator, &captureCSVRenderer{}, pdf, zap.NewNop())

	file, err := svc.WorkloadRecap(context.Background(), "y1", ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "workload-recap-2026-2027-s1.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "Rekap Beban Kerja Guru 2026/2027 Semester 1", pdf.title)
}

func TestWorkloadRecapUnknownYear(t *testing.T) {
	svc := NewReportService(&mockYearReader{}, &mockWorkloadAggregator{}, &captureCSVRenderer{}, &capturePDFRenderer{}, zap.NewNop())

	_, err := svc.WorkloadRecap(context.Background(), "missing", ReportFormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Academic year with id missing not found")
}
