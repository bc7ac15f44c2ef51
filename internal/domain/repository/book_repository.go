// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"librarium/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookNotFound is returned when a catalog book is not found.
var ErrBookNotFound = errors.New("book not found")

// BookRepository defines the standard operations for catalog persistence.
type BookRepository interface {
	// FindByID retrieves a single book by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// FindByISBN retrieves a single book by its ISBN.
	FindByISBN(ctx context.Context, isbn string) (*entity.Book, error)

	// List retrieves the whole catalog.
	List(ctx context.Context) ([]*entity.Book, error)

	// Create persists a new book record.
	Create(ctx context.Context, book *entity.Book) error

	// Update modifies an existing book record, including its copy count.
	Update(ctx context.Context, book *entity.Book) error

	// Delete removes a book record by its ID. Loan history referencing the
	// book's ISBN is left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
