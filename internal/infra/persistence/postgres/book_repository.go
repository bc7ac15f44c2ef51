package postgres

import (
	"context"

	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	"librarium/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookRepository implements the repository.BookRepository interface using GORM.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

// FindByID retrieves a single book by its unique ID.
func (repo *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var bookM model.BookModel
	if err := repo.db.WithContext(ctx).First(&bookM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book by id")
	}

	return toBookDomain(&bookM), nil
}

// FindByISBN retrieves a single book by its ISBN.
func (repo *bookRepository) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	var bookM model.BookModel
	if err := repo.db.WithContext(ctx).First(&bookM, "isbn = ?", isbn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book by isbn")
	}

	return toBookDomain(&bookM), nil
}

// List retrieves the whole catalog in insertion order.
func (repo *bookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	var bookModels []*model.BookModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&bookModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(bookModels))
	for _, bookM := range bookModels {
		books = append(books, toBookDomain(bookM))
	}

	return books, nil
}

// Create persists a new book record.
func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateISBN.WrapMessage("ISBN already in the catalog")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required book information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("book copies cannot be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Update modifies an existing book record, including its copy count.
func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Save(bookM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateISBN.WrapMessage("ISBN already in the catalog")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("book copies cannot be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update book")
	}

	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Delete removes a book record by its ID. Loan history referencing the
// book's ISBN is left untouched.
func (repo *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.BookModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// toBookDomain converts a GORM BookModel to a domain Book entity.
func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	return &entity.Book{
		ID:          data.ID,
		ISBN:        data.ISBN,
		Name:        data.Name,
		Author:      data.Author,
		Genre:       data.Genre,
		Copies:      data.Copies,
		Publication: data.Publication,
		Fine:        data.Fine,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromBookDomain converts a domain Book entity to a GORM BookModel for persistence.
func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	return &model.BookModel{
		ID:          data.ID,
		ISBN:        data.ISBN,
		Name:        data.Name,
		Author:      data.Author,
		Genre:       data.Genre,
		Copies:      data.Copies,
		Publication: data.Publication,
		Fine:        data.Fine,
	}
}
