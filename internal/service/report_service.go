package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/export"
)

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ParseReportFormat normalises a query-string format value.
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch ReportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ReportFormatCSV, "":
		return ReportFormatCSV, nil
	case ReportFormatPDF:
		return ReportFormatPDF, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", raw))
}

// ReportFile is a rendered export ready to stream to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

type workloadAggregator interface {
	ComputeAllWorkloads(ctx context.Context, academicYearID string) ([]models.TeacherWorkload, error)
	SummaryStatistics(ctx context.Context, academicYearID string) (*models.WorkloadSummaryStatistics, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportService renders workload recap exports for an academic year.
type ReportService struct {
	years     academicYearReader
	workloads workloadAggregator
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(years academicYearReader, workloads workloadAggregator, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{years: years, workloads: workloads, csv: csv, pdf: pdf, logger: logger}
}

// WorkloadRecap renders the per-teacher workload recap for the year.
func (s *ReportService) WorkloadRecap(ctx context.Context, academicYearID string, format ReportFormat) (*ReportFile, error) {
	year, err := s.years.FindByID(ctx, academicYearID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Academic year with id %s not found", academicYearID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}

	workloads, err := s.workloads.ComputeAllWorkloads(ctx, academicYearID)
	if err != nil {
		return nil, err
	}
	stats, err := s.workloads.SummaryStatistics(ctx, academicYearID)
	if err != nil {
		return nil, err
	}

	dataset := buildWorkloadDataset(workloads, stats)
	title := fmt.Sprintf("Rekap Beban Kerja Guru %s Semester %d", year.Year, year.Semester)
	slug := strings.ReplaceAll(year.Year, "/", "-")

	switch format {
	case ReportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("workload-recap-%s-s%d.pdf", slug, year.Semester),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	case ReportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("workload-recap-%s-s%d.csv", slug, year.Semester),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
}

func buildWorkloadDataset(workloads []models.TeacherWorkload, stats *models.WorkloadSummaryStatistics) export.Dataset {
	rows := make([][]string, 0, len(workloads)+1)
	for i, w := range workloads {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			w.TeacherName,
			fmt.Sprintf("%d", w.TotalJTMHours),
			w.TotalTaskEquivalent.StringFixed(2),
			w.TotalWorkload.StringFixed(2),
			string(w.Status),
		})
	}
	if stats != nil {
		rows = append(rows, []string{
			"",
			fmt.Sprintf("Rata-rata (%d guru)", stats.TotalTeachers),
			"",
			"",
			stats.AverageWorkload.StringFixed(2),
			fmt.Sprintf("layak=%d lebih=%d kurang=%d", stats.LayakCount, stats.LebihCount, stats.KurangCount),
		})
	}
	return export.Dataset{
		Headers: []string{"No", "Nama Guru", "JTM", "Ekuivalen Tugas", "Total Beban", "Status"},
		Rows:    rows,
	}
}
