package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
)

type skDocumentRepository interface {
	Create(ctx context.Context, doc *models.SkDocument) error
	FindByID(ctx context.Context, id string) (*models.SkDocument, error)
	ListByAcademicYear(ctx context.Context, academicYearID string) ([]models.SkDocument, error)
	CountByAcademicYear(ctx context.Context, academicYearID string) (int, error)
}

type schoolReader interface {
	Get(ctx context.Context) (*models.School, error)
}

type workloadComputer interface {
	ComputeWorkload(ctx context.Context, teacherID, academicYearID string) (*models.TeacherWorkload, error)
}

type documentRenderer interface {
	RenderDocument(title, body string) ([]byte, error)
}

// defaultSkTemplate is the decree body used when the request carries none.
const defaultSkTemplate = `SURAT KEPUTUSAN KEPALA {{school_name}}
Nomor: {{number}}

TENTANG
PEMBAGIAN TUGAS MENGAJAR DAN TUGAS TAMBAHAN
TAHUN PELAJARAN {{year}} SEMESTER {{semester}}

Kepala {{school_name}} menetapkan bahwa:

Nama: {{teacher_name}}
NIP: {{teacher_nip}}

diberi tugas mengajar dan tugas tambahan dengan rincian sebagai berikut:

{{workload_rows}}

Jumlah jam tatap muka: {{total_jtm}} jam
Ekuivalen tugas tambahan: {{total_task}} jam
Total beban kerja: {{total_workload}} jam ({{status}})

Ditetapkan di {{school_address}}
Pada tanggal {{issued_date}}

Kepala Sekolah,

{{headmaster_name}}
NIP. {{headmaster_nip}}`

// GenerateSkRequest asks for a decree for one teacher in one academic year.
type GenerateSkRequest struct {
	AcademicYearID string `json:"academic_year_id" validate:"required"`
	TeacherID      string `json:"teacher_id" validate:"required"`
	Title          string `json:"title"`
	Template       string `json:"template"`
}

// SkService renders teacher duty decrees by placeholder substitution and
// stores the resulting documents.
type SkService struct {
	repo         skDocumentRepository
	school       schoolReader
	teachers     teacherReader
	years        academicYearReader
	workloads    workloadComputer
	pdf          documentRenderer
	numberPrefix string
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewSkService wires decree generation dependencies.
func NewSkService(
	repo skDocumentRepository,
	school schoolReader,
	teachers teacherReader,
	years academicYearReader,
	workloads workloadComputer,
	pdf documentRenderer,
	numberPrefix string,
	validate *validator.Validate,
	logger *zap.Logger,
) *SkService {
	if numberPrefix == "" {
		numberPrefix = "421.3"
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkService{
		repo:         repo,
		school:       school,
		teachers:     teachers,
		years:        years,
		workloads:    workloads,
		pdf:          pdf,
		numberPrefix: numberPrefix,
		validator:    validate,
		logger:       logger,
	}
}

// Generate builds and stores the decree document.
func (s *SkService) Generate(ctx context.Context, req GenerateSkRequest) (*models.SkDocument, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decree payload")
	}

	year, err := s.years.FindByID(ctx, req.AcademicYearID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Academic year with id %s not found", req.AcademicYearID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Teacher with id %s not found", req.TeacherID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	school, err := s.school.Get(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "school profile must be set before generating decrees")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school profile")
	}

	workload, err := s.workloads.ComputeWorkload(ctx, req.TeacherID, req.AcademicYearID)
	if err != nil {
		return nil, err
	}

	seq, err := s.repo.CountByAcademicYear(ctx, req.AcademicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to determine decree sequence")
	}
	issued := time.Now().UTC()
	number := fmt.Sprintf("%s/%03d/%d", s.numberPrefix, seq+1, issued.Year())

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("SK Pembagian Tugas %s Semester %d", year.Year, year.Semester)
	}
	template := req.Template
	if template == "" {
		template = defaultSkTemplate
	}

	doc := &models.SkDocument{
		AcademicYearID: req.AcademicYearID,
		TeacherID:      req.TeacherID,
		Number:         number,
		Title:          title,
		Body:           renderSkBody(template, school, teacher, year, workload, number, issued),
		IssuedDate:     issued,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store decree")
	}
	s.logger.Info("decree generated",
		zap.String("sk_document_id", doc.ID),
		zap.String("teacher_id", req.TeacherID),
		zap.String("number", number))
	return doc, nil
}

// Get returns a stored decree.
func (s *SkService) Get(ctx context.Context, id string) (*models.SkDocument, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("SK document with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load decree")
	}
	return doc, nil
}

// ListByAcademicYear returns decrees issued for an academic year.
func (s *SkService) ListByAcademicYear(ctx context.Context, academicYearID string) ([]models.SkDocument, error) {
	docs, err := s.repo.ListByAcademicYear(ctx, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list decrees")
	}
	return docs, nil
}

// RenderPDF renders a stored decree to PDF bytes.
func (s *SkService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.pdf == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "pdf renderer unavailable")
	}
	payload, err := s.pdf.RenderDocument(doc.Title, doc.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render decree pdf")
	}
	return payload, nil
}

func renderSkBody(template string, school *models.School, teacher *models.Teacher, year *models.AcademicYear, workload *models.TeacherWorkload, number string, issued time.Time) string {
	nip := "-"
	if teacher.NIP != nil && *teacher.NIP != "" {
		nip = *teacher.NIP
	}
	replacer := strings.NewReplacer(
		"{{school_name}}", school.Name,
		"{{school_address}}", school.Address,
		"{{headmaster_name}}", school.HeadmasterName,
		"{{headmaster_nip}}", school.HeadmasterNIP,
		"{{teacher_name}}", teacher.FullName,
		"{{teacher_nip}}", nip,
		"{{year}}", year.Year,
		"{{semester}}", fmt.Sprintf("%d", year.Semester),
		"{{number}}", number,
		"{{issued_date}}", issued.Format("2 January 2006"),
		"{{workload_rows}}", formatWorkloadRows(workload.Details),
		"{{total_jtm}}", fmt.Sprintf("%d", workload.TotalJTMHours),
		"{{total_task}}", workload.TotalTaskEquivalent.StringFixed(2),
		"{{total_workload}}", workload.TotalWorkload.StringFixed(2),
		"{{status}}", string(workload.Status),
	)
	return replacer.Replace(template)
}

func formatWorkloadRows(items []models.WorkloadItem) string {
	if len(items) == 0 {
		return "- (tidak ada penugasan)"
	}
	rows := make([]string, 0, len(items))
	for i, item := range items {
		switch item.Kind {
		case models.WorkloadItemTask:
			rows = append(rows, fmt.Sprintf("%d. Tugas tambahan %s (%s jam)", i+1, item.TaskName, item.Hours.StringFixed(2)))
		default:
			rows = append(rows, fmt.Sprintf("%d. Mengajar %s kelas %s (%s jam)", i+1, item.SubjectName, item.ClassName, item.Hours.StringFixed(0)))
		}
	}
	return strings.Join(rows, "\n")
}
