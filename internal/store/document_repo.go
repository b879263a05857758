package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"parsify/internal/domain"
	"parsify/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a SQLite-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.ParsedDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now().UTC()

	query := `INSERT INTO parsed_documents (
		id, processor, supplier_name, receipt_date,
		total_amount, currency, line_item_count, raw_data, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Processor, doc.SupplierName, doc.ReceiptDate,
		doc.TotalAmount, doc.Currency, doc.LineItemCount, []byte(doc.RawData), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParsedDocument, error) {
	var doc domain.ParsedDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM parsed_documents WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, offset, limit int) ([]domain.ParsedDocument, int, error) {
	if limit <= 0 {
		limit = 50
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM parsed_documents"); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	docs := []domain.ParsedDocument{}
	err := r.db.SelectContext(ctx, &docs,
		`SELECT id, processor, supplier_name, receipt_date, total_amount,
			currency, line_item_count, created_at
		FROM parsed_documents
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM parsed_documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
