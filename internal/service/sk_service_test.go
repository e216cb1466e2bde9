package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

type mockSkRepo struct {
	created *models.SkDocument
	items   map[string]*models.SkDocument
	count   int
}

func (m *mockSkRepo) Create(ctx context.Context, doc *models.SkDocument) error {
	doc.ID = "sk-1"
	m.created = doc
	return nil
}

func (m *mockSkRepo) FindByID(ctx context.Context, id string) (*models.SkDocument, error) {
	if doc, ok := m.items[id]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSkRepo) ListByAcademicYear(ctx context.Context, academicYearID string) ([]models.SkDocument, error) {
	var docs []models.SkDocument
	for _, doc := range m.items {
		if doc.AcademicYearID == academicYearID {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (m *mockSkRepo) CountByAcademicYear(ctx context.Context, academicYearID string) (int, error) {
	return m.count, nil
}

type mockSchoolReader struct {
	school *models.School
}

func (m *mockSchoolReader) Get(ctx context.Context) (*models.School, error) {
	if m.school == nil {
		return nil, sql.ErrNoRows
	}
	cp := *m.school
	return &cp, nil
}

type mockWorkloadComputer struct {
	workload *models.TeacherWorkload
	err      error
}

func (m *mockWorkloadComputer) ComputeWorkload(ctx context.Context, teacherID, academicYearID string) (*models.TeacherWorkload, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.workload, nil
}

type mockDocRenderer struct {
	title string
	body  string
}

func (m *mockDocRenderer) RenderDocument(title, body string) ([]byte, error) {
	m.title = title
	m.body = body
	return []byte("%PDF-1.4 stub"), nil
}

func skTestFixtures() (*mockSkRepo, *mockSchoolReader, *mockTeacherReader, *mockYearReader, *mockWorkloadComputer) {
	nip := "197001011990031001"
	repo := &mockSkRepo{items: map[string]*models.SkDocument{}}
	school := &mockSchoolReader{school: &models.School{
		Name:           "SMP Negeri 1 Bandung",
		Address:        "Bandung",
		HeadmasterName: "Dra. Sri Mulyani",
		HeadmasterNIP:  "196501011990032001",
	}}
	teachers := &mockTeacherReader{items: map[string]*models.Teacher{
		"t1": {ID: "t1", FullName: "Budi Santoso", NIP: &nip},
	}}
	years := &mockYearReader{items: map[string]*models.AcademicYear{
		"y1": {ID: "y1", Year: "2026/2027", Semester: 1},
	}}
	workloads := &mockWorkloadComputer{workload: &models.TeacherWorkload{
		TeacherID:           "t1",
		TeacherName:         "Budi Santoso",
		AcademicYearID:      "y1",
		TotalJTMHours:       22,
		TotalTaskEquivalent: decimal.RequireFromString("2.00"),
		TotalWorkload:       decimal.RequireFromString("24.00"),
		Status:              models.WorkloadStatusLayak,
		Details: []models.WorkloadItem{
			{Kind: models.WorkloadItemJTM, SubjectName: "Matematika", ClassName: "7A", Hours: decimal.NewFromInt(22)},
			{Kind: models.WorkloadItemTask, TaskName: "Wali Kelas", Hours: decimal.RequireFromString("2.00")},
		},
	}}
	return repo, school, teachers, years, workloads
}

func TestGenerateSkSubstitutesPlaceholders(t *testing.T) {
	repo, school, teachers, years, workloads := skTestFixtures()
	repo.count = 4
	pdf := &mockDocRenderer{}
	svc := NewSkService(repo, school, teachers, years, workloads, pdf, "", nil, zap.NewNop())

	doc, err := svc.Generate(context.Background(), GenerateSkRequest{AcademicYearID: "y1", TeacherID: "t1"})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, "SK Pembagian Tugas 2026/2027 Semester 1", doc.Title)
	assert.True(t, strings.HasPrefix(doc.Number, "421.3/005/"), "number %q", doc.Number)

	body := doc.Body
	assert.NotContains(t, body, "{{")
	assert.Contains(t, body, "SMP Negeri 1 Bandung")
	assert.Contains(t, body, "Budi Santoso")
	assert.Contains(t, body, "NIP: 197001011990031001")
	assert.Contains(t, body, "1. Mengajar Matematika kelas 7A (22 jam)")
	assert.Contains(t, body, "2. Tugas tambahan Wali Kelas (2.00 jam)")
	assert.Contains(t, body, "Jumlah jam tatap muka: 22 jam")
	assert.Contains(t, body, "Total beban kerja: 24.00 jam (layak)")
	assert.Contains(t, body, "Dra. Sri Mulyani")
}

func TestGenerateSkWithoutAssignments(t *testing.T) {
	repo, school, teachers, years, workloads := skTestFixtures()
	workloads.workload.Details = nil
	svc := NewSkService(repo, school, teachers, years, workloads, &mockDocRenderer{}, "", nil, zap.NewNop())

	doc, err := svc.Generate(context.Background(), GenerateSkRequest{AcademicYearID: "y1", TeacherID: "t1"})
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "- (tidak ada penugasan)")
}

func TestGenerateSkCustomTitleAndPrefix(t *testing.T) {
	repo, school, teachers, years, workloads := skTestFixtures()
	svc := NewSkService(repo, school, teachers, years, workloads, &mockDocRenderer{}, "800", nil, zap.NewNop())

	doc, err := svc.Generate(context.Background(), GenerateSkRequest{
		AcademicYearID: "y1",
		TeacherID:      "t1",
		Title:          "SK Khusus",
	})
	require.NoError(t, err)
	assert.Equal(t, "SK Khusus", doc.Title)
	assert.True(t, strings.HasPrefix(doc.Number, "800/001/"), "number %q", doc.Number)
}

func TestGenerateSkRequiresSchoolProfile(t *testing.T) {
	repo, _, teachers, years, workloads := skTestFixtures()
	svc := NewSkService(repo, &mockSchoolReader{}, teachers, years, workloads, &mockDocRenderer{}, "", nil, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerateSkRequest{AcademicYearID: "y1", TeacherID: "t1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "school profile must be set before generating decrees")
}

func TestGenerateSkUnknownTeacher(t *testing.T) {
	repo, school, _, years, workloads := skTestFixtures()
	svc := NewSkService(repo, school, &mockTeacherReader{}, years, workloads, &mockDocRenderer{}, "", nil, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerateSkRequest{AcademicYearID: "y1", TeacherID: "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Teacher with id ghost not found")
}

func TestGenerateSkRejectsEmptyRequest(t *testing.T) {
	repo, school, teachers, years, workloads := skTestFixtures()
	svc := NewSkService(repo, school, teachers, years, workloads, &mockDocRenderer{}, "", nil, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerateSkRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid decree payload")
}

func TestRenderSkPDF(t *testing.T) {
	repo, school, teachers, years, workloads := skTestFixtures()
	repo.items["sk-1"] = &models.SkDocument{ID: "sk-1", Title: "SK Pembagian Tugas", Body: "isi surat"}
	pdf := &mockDocRenderer{}
	svc := NewSkService(repo, school, teachers, years, workloads, pdf, "", nil, zap.NewNop())

	payload, err := svc.RenderPDF(context.Background(), "sk-1")
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
	assert.Equal(t, "SK Pembagian Tugas", pdf.title)
	assert.Equal(t, "isi surat", pdf.body)
}

func TestGetSkMissing(t *testing.T) {
	repo, school, teachers, years, workloads := skTestFixtures()
	svc := NewSkService(repo, school, teachers, years, workloads, &mockDocRenderer{}, "", nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "sk-99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SK document with id sk-99 not found")
}
