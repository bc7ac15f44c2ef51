package impl

import (
	"context"
	"log/slog"

	deliverycontext "librarium/internal/delivery/context"
	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	"librarium/internal/domain/service"
	"librarium/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// loanService implements the LoanUsecase interface.
type loanService struct {
	txManager    repository.TransactionManager
	identityRepo repository.IdentityRepository
	clock        service.Clock
	logger       *slog.Logger
}

// LoanServiceParams holds dependencies for the loan service, injected by Fx.
type LoanServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	IdentityRepo repository.IdentityRepository
	Clock        service.Clock
	Logger       *slog.Logger
}

// NewLoanService is the constructor for loanService.
func NewLoanService(params LoanServiceParams) usecase.LoanUsecase {
	return &loanService{
		txManager:    params.TxManager,
		identityRepo: params.IdentityRepo,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

func (srv *loanService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterLoan opens a loan for the customer against the book. Both
// writes, appending the loan to the customer's history and decrementing
// the book's copy count, happen in one transaction: either both land or
// neither does. A missing customer or book leaves both records unmutated.
func (srv *loanService) RegisterLoan(ctx context.Context, input *usecase.RegisterLoanInput) (*entity.Loan, error) {
	srv.log(ctx).Info("Registering loan", slog.String("username", input.Username), slog.String("isbn", input.ISBN))

	var opened *entity.Loan
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()
		bookRepo := repoFactory.BookRepo()

		identity, findErr := identityRepo.FindByEmail(ctx, input.Username)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound.WrapMessage("no customer with this username")
			}

			return errors.Wrap(findErr, "failed to find customer")
		}
		if identity.Customer == nil {
			return domainerrors.ErrIdentityNotFound.WrapMessage("identity does not hold the customer role")
		}

		book, findErr := bookRepo.FindByISBN(ctx, input.ISBN)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrBookNotFound) {
				return domainerrors.ErrBookNotFound.WrapMessage("no book with this ISBN")
			}

			return errors.Wrap(findErr, "failed to find book")
		}

		loan := entity.NewLoan(input.ISBN, srv.clock.Now())
		identity.Customer.Loans = append(identity.Customer.Loans, loan)
		book.Copies--

		if updateErr := identityRepo.Update(ctx, identity); updateErr != nil {
			return errors.Wrap(updateErr, "failed to append loan to customer history")
		}
		if updateErr := bookRepo.Update(ctx, book); updateErr != nil {
			return errors.Wrap(updateErr, "failed to decrement book copies")
		}
		opened = loan

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to register loan", slog.String("username", input.Username), slog.String("isbn", input.ISBN), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute loan registration transaction")
	}

	srv.log(ctx).Debug("Loan opened", slog.String("loanID", opened.ID), slog.String("isbn", opened.ISBN))

	return opened, nil
}

// CloseLoan flips the matching loan's state to returned. Only the
// matching loan changes; the rest of the history and the book's copy
// count stay untouched.
func (srv *loanService) CloseLoan(ctx context.Context, email, loanID string) error {
	srv.log(ctx).Info("Closing loan", slog.String("email", email), slog.String("loanID", loanID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		identity, findErr := identityRepo.FindByEmail(ctx, email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound.WrapMessage("no customer with this email")
			}

			return errors.Wrap(findErr, "failed to find customer")
		}
		if identity.Customer == nil {
			return domainerrors.ErrIdentityNotFound.WrapMessage("identity does not hold the customer role")
		}

		loan := identity.Customer.FindLoan(loanID)
		if loan == nil {
			return domainerrors.ErrLoanNotFound.WrapMessage("no loan with this id in the customer's history")
		}
		loan.Close()

		if updateErr := identityRepo.Update(ctx, identity); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist loan state")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to close loan", slog.String("email", email), slog.String("loanID", loanID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute loan close transaction")
	}

	return nil
}

// ListByCustomer returns the customer's loan history in creation order.
func (srv *loanService) ListByCustomer(ctx context.Context, email string) ([]*entity.Loan, error) {
	identity, err := srv.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrIdentityNotFound.WrapMessage("no customer with this email")
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}
	if identity.Customer == nil {
		return nil, domainerrors.ErrIdentityNotFound.WrapMessage("identity does not hold the customer role")
	}

	return identity.Customer.Loans, nil
}
