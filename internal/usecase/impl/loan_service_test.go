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
	mockSvc "librarium/internal/mocks/service"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// loanServiceFixtures holds all test dependencies for loan service tests.
type loanServiceFixtures struct {
	service      usecase.LoanUsecase
	txManager    *mockRepo.MockTransactionManager
	identityRepo *mockRepo.MockIdentityRepository
	clock        *mockSvc.MockClock
}

func createTestLoanService(t *testing.T) loanServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	clock := mockSvc.NewMockClock(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewLoanService(LoanServiceParams{
		TxManager:    txManager,
		IdentityRepo: identityRepo,
		Clock:        clock,
		Logger:       logger,
	})

	return loanServiceFixtures{
		service:      service,
		txManager:    txManager,
		identityRepo: identityRepo,
		clock:        clock,
	}
}

func testCustomer(email string) *entity.Identity {
	return &entity.Identity{
		ID:    uuid.New(),
		Email: email,
		Customer: &entity.CustomerProfile{
			RoleProfile: entity.RoleProfile{Role: entity.RoleCustomer, Name: "Maria"},
			Loans:       []*entity.Loan{},
		},
	}
}

func TestLoanService_RegisterLoan_Success(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	customer := testCustomer("maria@example.com")
	book := &entity.Book{ID: uuid.New(), ISBN: "978-0134190440", Name: "The Go Programming Language", Copies: 3}
	input := &usecase.RegisterLoanInput{Username: customer.Email, ISBN: book.ISBN}

	fx.clock.EXPECT().Now().Return(now)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)
			mockBookRepo := mockRepo.NewMockBookRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)
			mockFactory.EXPECT().BookRepo().Return(mockBookRepo)

			mockIdentityRepo.EXPECT().FindByEmail(ctx, customer.Email).Return(customer, nil)
			mockBookRepo.EXPECT().FindByISBN(ctx, book.ISBN).Return(book, nil)
			mockIdentityRepo.EXPECT().Update(ctx, customer).Return(nil)
			mockBookRepo.EXPECT().Update(ctx, book).Return(nil)

			return fn(mockFactory)
		})

	loan, err := fx.service.RegisterLoan(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, loan)
	assert.NotEmpty(t, loan.ID)
	assert.Equal(t, book.ISBN, loan.ISBN)
	assert.True(t, loan.State)
	assert.Equal(t, now, loan.StartDate)
	assert.Equal(t, now.Add(entity.LoanPeriod), loan.EndDate)
	assert.Equal(t, 2, book.Copies)
	require.Len(t, customer.Customer.Loans, 1)
	assert.Same(t, loan, customer.Customer.Loans[0])
}

func TestLoanService_RegisterLoan_CustomerNotFound(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	input := &usecase.RegisterLoanInput{Username: "ghost@example.com", ISBN: "978-0134190440"}

	fx.clock.EXPECT().Now().Return(now).Maybe()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)
			mockBookRepo := mockRepo.NewMockBookRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)
			mockFactory.EXPECT().BookRepo().Return(mockBookRepo)

			mockIdentityRepo.EXPECT().
				FindByEmail(ctx, input.Username).
				Return(nil, repository.ErrIdentityNotFound)

			return fn(mockFactory)
		})

	loan, err := fx.service.RegisterLoan(ctx, input)

	assert.Nil(t, loan)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))
}

func TestLoanService_RegisterLoan_BookNotFoundLeavesCustomerUnmutated(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	customer := testCustomer("maria@example.com")
	input := &usecase.RegisterLoanInput{Username: customer.Email, ISBN: "978-0000000000"}

	fx.clock.EXPECT().Now().Return(now).Maybe()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)
			mockBookRepo := mockRepo.NewMockBookRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)
			mockFactory.EXPECT().BookRepo().Return(mockBookRepo)

			mockIdentityRepo.EXPECT().FindByEmail(ctx, customer.Email).Return(customer, nil)
			mockBookRepo.EXPECT().
				FindByISBN(ctx, input.ISBN).
				Return(nil, repository.ErrBookNotFound)

			return fn(mockFactory)
		})

	loan, err := fx.service.RegisterLoan(ctx, input)

	assert.Nil(t, loan)
	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
	assert.Empty(t, customer.Customer.Loans)
}

func TestLoanService_CloseLoan_FlipsOnlyMatchingLoan(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	customer := testCustomer("maria@example.com")
	target := &entity.Loan{ID: uuid.NewString(), ISBN: "978-0134190440", State: true}
	other := &entity.Loan{ID: uuid.NewString(), ISBN: "978-0135957059", State: true}
	customer.Customer.Loans = []*entity.Loan{other, target}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)

			mockIdentityRepo.EXPECT().FindByEmail(ctx, customer.Email).Return(customer, nil)
			mockIdentityRepo.EXPECT().Update(ctx, customer).Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.CloseLoan(ctx, customer.Email, target.ID)

	require.NoError(t, err)
	assert.False(t, target.State)
	assert.True(t, other.State)
	assert.Len(t, customer.Customer.Loans, 2)
}

func TestLoanService_CloseLoan_LoanNotFound(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	customer := testCustomer("maria@example.com")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)

			mockIdentityRepo.EXPECT().FindByEmail(ctx, customer.Email).Return(customer, nil)

			return fn(mockFactory)
		})

	err := fx.service.CloseLoan(ctx, customer.Email, uuid.NewString())

	assert.True(t, errors.Is(err, domainerrors.ErrLoanNotFound))
}

func TestLoanService_ListByCustomer_ReturnsHistoryInOrder(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	customer := testCustomer("maria@example.com")
	first := &entity.Loan{ID: uuid.NewString(), ISBN: "978-0134190440", State: false}
	second := &entity.Loan{ID: uuid.NewString(), ISBN: "978-0135957059", State: true}
	customer.Customer.Loans = []*entity.Loan{first, second}

	fx.identityRepo.EXPECT().FindByEmail(ctx, customer.Email).Return(customer, nil)

	loans, err := fx.service.ListByCustomer(ctx, customer.Email)

	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Same(t, first, loans[0])
	assert.Same(t, second, loans[1])
}

func TestLoanService_ListByCustomer_NotACustomer(t *testing.T) {
	fx := createTestLoanService(t)

	ctx := context.Background()
	identity := &entity.Identity{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Admin: &entity.RoleProfile{Role: entity.RoleAdmin},
	}

	fx.identityRepo.EXPECT().FindByEmail(ctx, identity.Email).Return(identity, nil)

	loans, err := fx.service.ListByCustomer(ctx, identity.Email)

	assert.Nil(t, loans)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))
}
