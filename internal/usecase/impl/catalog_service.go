package impl

import (
	"context"
	"log/slog"

	deliverycontext "librarium/internal/delivery/context"
	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	bookRepo  repository.BookRepository
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	bookRepo repository.BookRepository,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		bookRepo:  bookRepo,
		logger:    logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the whole catalog. Store failures are swallowed: the
// caller always gets a slice, possibly empty.
func (srv *catalogService) List(ctx context.Context) []*entity.Book {
	books, err := srv.bookRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Warn("Listing catalog failed, returning empty view", slog.Any("error", err))

		return []*entity.Book{}
	}

	return books
}

// Add registers a new book. The ISBN pre-check and the insert run in
// one transaction so the store's unique index backs the check.
func (srv *catalogService) Add(ctx context.Context, input *usecase.AddBookInput) (*entity.Book, error) {
	srv.log(ctx).Info("Adding book to catalog", slog.String("isbn", input.ISBN))

	// The fine is a decimal, so the struct-tag validation on the input
	// cannot range-check it.
	if input.Fine.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("fine must not be negative")
	}

	var added *entity.Book
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()

		if _, findErr := bookRepo.FindByISBN(ctx, input.ISBN); findErr == nil {
			return domainerrors.ErrDuplicateISBN.WrapMessage("ISBN already in the catalog")
		} else if !errors.Is(findErr, repository.ErrBookNotFound) {
			return errors.Wrap(findErr, "failed to check ISBN uniqueness")
		}

		book := &entity.Book{
			ISBN:        input.ISBN,
			Name:        input.Name,
			Author:      input.Author,
			Genre:       input.Genre,
			Copies:      input.Copies,
			Publication: input.Publication,
			Fine:        input.Fine,
		}
		if createErr := bookRepo.Create(ctx, book); createErr != nil {
			return errors.Wrap(createErr, "failed to create book")
		}
		added = book

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to add book", slog.String("isbn", input.ISBN), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute book registration transaction")
	}

	return added, nil
}

// Update overwrites the mutable fields of the book. The ISBN stays as
// registered.
func (srv *catalogService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateBookInput) error {
	srv.log(ctx).Info("Updating book", slog.Any("bookID", id))

	if input.Fine.IsNegative() {
		return domainerrors.ErrValidationFailed.WrapMessage("fine must not be negative")
	}

	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrBookNotFound.WrapMessage("no book with this id")
		}

		return errors.Wrap(err, "failed to find book")
	}

	book.Name = input.Name
	book.Author = input.Author
	book.Genre = input.Genre
	book.Copies = input.Copies
	book.Publication = input.Publication
	book.Fine = input.Fine

	if err := srv.bookRepo.Update(ctx, book); err != nil {
		return errors.Wrap(err, "failed to persist book update")
	}

	return nil
}

// Delete removes the book from the catalog.
func (srv *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting book", slog.Any("bookID", id))

	if err := srv.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrBookNotFound.WrapMessage("no book with this id")
		}

		return errors.Wrap(err, "failed to delete book")
	}

	return nil
}
