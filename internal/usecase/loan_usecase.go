package usecase

import (
	"context"

	"librarium/internal/domain/entity"
)

// RegisterLoanInput defines the data required to open a loan.
type RegisterLoanInput struct {
	Username string `json:"username" validate:"required,email"`
	ISBN     string `json:"ISBN" validate:"required"`
}

// LoanUsecase is the state machine governing a loan's lifecycle. Opening
// a loan decrements the book's copy count in the same transaction;
// closing a loan flips its state and deliberately leaves the copy count
// untouched.
type LoanUsecase interface {
	// RegisterLoan opens a loan for the customer identified by username
	// (email) against the book identified by ISBN.
	RegisterLoan(ctx context.Context, input *RegisterLoanInput) (*entity.Loan, error)

	// CloseLoan marks the matching loan as returned.
	CloseLoan(ctx context.Context, email, loanID string) error

	// ListByCustomer returns the customer's loan history in creation order.
	ListByCustomer(ctx context.Context, email string) ([]*entity.Loan, error)
}
