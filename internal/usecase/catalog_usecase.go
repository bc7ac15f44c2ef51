package usecase

import (
	"context"
	"time"

	"librarium/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddBookInput defines the data required to register a catalog book.
type AddBookInput struct {
	ISBN        string          `json:"ISBN" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Author      string          `json:"author" validate:"required"`
	Genre       string          `json:"genre" validate:"required"`
	Copies      int             `json:"copies" validate:"gte=0"`
	Publication time.Time       `json:"publication" validate:"required"`
	Fine        decimal.Decimal `json:"fine"`
}

// UpdateBookInput defines the mutable fields of a book. The ISBN is
// immutable once registered.
type UpdateBookInput struct {
	Name        string          `json:"name" validate:"required"`
	Author      string          `json:"author" validate:"required"`
	Genre       string          `json:"genre" validate:"required"`
	Copies      int             `json:"copies" validate:"gte=0"`
	Publication time.Time       `json:"publication" validate:"required"`
	Fine        decimal.Decimal `json:"fine"`
}

// CatalogUsecase manages book records and their inventory counts.
type CatalogUsecase interface {
	// List returns the whole catalog. Store failures are swallowed: the
	// caller always receives a (possibly empty) slice, never an error.
	List(ctx context.Context) []*entity.Book

	// Add registers a new book, enforcing ISBN uniqueness.
	Add(ctx context.Context, input *AddBookInput) (*entity.Book, error)

	// Update overwrites the mutable fields of the book with the given id.
	Update(ctx context.Context, id uuid.UUID, input *UpdateBookInput) error

	// Delete removes the book with the given id from the catalog.
	Delete(ctx context.Context, id uuid.UUID) error
}
