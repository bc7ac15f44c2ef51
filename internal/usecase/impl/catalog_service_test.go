package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	mockRepo "librarium/internal/mocks/repository"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service   usecase.CatalogUsecase
	txManager *mockRepo.MockTransactionManager
	bookRepo  *mockRepo.MockBookRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	bookRepo := mockRepo.NewMockBookRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCatalogService(txManager, bookRepo, logger)

	return catalogServiceFixtures{
		service:   service,
		txManager: txManager,
		bookRepo:  bookRepo,
	}
}

func addBookInput() *usecase.AddBookInput {
	return &usecase.AddBookInput{
		ISBN:        "978-0134190440",
		Name:        "The Go Programming Language",
		Author:      "Donovan and Kernighan",
		Genre:       "Programming",
		Copies:      3,
		Publication: time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC),
		Fine:        decimal.NewFromFloat(1.50),
	}
}

func TestCatalogService_Add_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	input := addBookInput()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockBookRepo := mockRepo.NewMockBookRepository(t)

			mockFactory.EXPECT().BookRepo().Return(mockBookRepo)

			mockBookRepo.EXPECT().
				FindByISBN(ctx, input.ISBN).
				Return(nil, repository.ErrBookNotFound)
			mockBookRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Book")).
				Run(func(ctx context.Context, book *entity.Book) {
					book.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	book, err := fx.service.Add(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, input.ISBN, book.ISBN)
	assert.Equal(t, 3, book.Copies)
	assert.True(t, book.Fine.Equal(decimal.NewFromFloat(1.50)))
}

func TestCatalogService_Add_DuplicateISBN(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	input := addBookInput()
	existing := &entity.Book{ID: uuid.New(), ISBN: input.ISBN}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockBookRepo := mockRepo.NewMockBookRepository(t)

			mockFactory.EXPECT().BookRepo().Return(mockBookRepo)

			mockBookRepo.EXPECT().
				FindByISBN(ctx, input.ISBN).
				Return(existing, nil)

			return fn(mockFactory)
		})

	book, err := fx.service.Add(ctx, input)

	assert.Nil(t, book)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateISBN))
}

func TestCatalogService_Update_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	book := &entity.Book{ID: uuid.New(), ISBN: "978-0134190440", Name: "Old title", Copies: 1}
	input := &usecase.UpdateBookInput{
		Name:        "New title",
		Author:      "Donovan and Kernighan",
		Genre:       "Programming",
		Copies:      5,
		Publication: time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC),
		Fine:        decimal.NewFromFloat(2.00),
	}

	fx.bookRepo.EXPECT().FindByID(ctx, book.ID).Return(book, nil)
	fx.bookRepo.EXPECT().Update(ctx, book).Return(nil)

	err := fx.service.Update(ctx, book.ID, input)

	require.NoError(t, err)
	assert.Equal(t, "New title", book.Name)
	assert.Equal(t, 5, book.Copies)
	// The ISBN is immutable once registered.
	assert.Equal(t, "978-0134190440", book.ISBN)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.bookRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrBookNotFound)

	err := fx.service.Update(ctx, id, &usecase.UpdateBookInput{Name: "x", Author: "y", Genre: "z"})

	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.bookRepo.EXPECT().Delete(ctx, id).Return(repository.ErrBookNotFound)

	err := fx.service.Delete(ctx, id)

	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
}

func TestCatalogService_List_SwallowsStoreError(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.bookRepo.EXPECT().List(ctx).Return(nil, errors.New("connection reset"))

	books := fx.service.List(ctx)

	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestCatalogService_List_ReturnsCatalog(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	catalog := []*entity.Book{
		{ID: uuid.New(), ISBN: "978-0134190440"},
		{ID: uuid.New(), ISBN: "978-0135957059"},
	}

	fx.bookRepo.EXPECT().List(ctx).Return(catalog, nil)

	books := fx.service.List(ctx)

	assert.Equal(t, catalog, books)
}

func TestCatalogService_Add_NegativeFine(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	input := addBookInput()
	input.Fine = decimal.NewFromFloat(-0.50)

	book, err := fx.service.Add(ctx, input)

	assert.Nil(t, book)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestCatalogService_Update_NegativeFine(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	input := &usecase.UpdateBookInput{
		Name:   "x",
		Author: "y",
		Genre:  "z",
		Fine:   decimal.NewFromInt(-1),
	}

	err := fx.service.Update(ctx, uuid.New(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.bookRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
