// Package port defines the interfaces between the HTTP/CLI surface and the
// infrastructure behind it.
package port

import (
	"context"

	"github.com/google/uuid"

	"parsify/internal/domain"
)

// DocumentRepository persists parse results.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.ParsedDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParsedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.ParsedDocument, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
