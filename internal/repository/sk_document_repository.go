package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika-id/siap-smp-api/internal/models"
)

// SkDocumentRepository persists rendered decree documents.
type SkDocumentRepository struct {
	db *sqlx.DB
}

// NewSkDocumentRepository constructs the repository.
func NewSkDocumentRepository(db *sqlx.DB) *SkDocumentRepository {
	return &SkDocumentRepository{db: db}
}

// Create inserts a rendered document.
func (r *SkDocumentRepository) Create(ctx context.Context, doc *models.SkDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO sk_documents (id, academic_year_id, teacher_id, number, title, body, issued_date, created_at)
		VALUES (:id, :academic_year_id, :teacher_id, :number, :title, :body, :issued_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create sk document: %w", err)
	}
	return nil
}

// FindByID loads one document.
func (r *SkDocumentRepository) FindByID(ctx context.Context, id string) (*models.SkDocument, error) {
	const query = `SELECT * FROM sk_documents WHERE id = $1`
	var doc models.SkDocument
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByAcademicYear returns documents issued for an academic year.
func (r *SkDocumentRepository) ListByAcademicYear(ctx context.Context, academicYearID string) ([]models.SkDocument, error) {
	const query = `SELECT * FROM sk_documents WHERE academic_year_id = $1 ORDER BY issued_date DESC, number ASC`
	var docs []models.SkDocument
	if err := r.db.SelectContext(ctx, &docs, query, academicYearID); err != nil {
		return nil, fmt.Errorf("list sk documents: %w", err)
	}
	return docs, nil
}

// CountByAcademicYear is used for sequential document numbering.
func (r *SkDocumentRepository) CountByAcademicYear(ctx context.Context, academicYearID string) (int, error) {
	const query = `SELECT COUNT(*) FROM sk_documents WHERE academic_year_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, academicYearID); err != nil {
		return 0, fmt.Errorf("count sk documents: %w", err)
	}
	return count, nil
}
