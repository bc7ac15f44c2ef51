package handler

import (
	"log/slog"
	"net/http"

	"librarium/internal/delivery/http/response"
	"librarium/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LoanHandler holds dependencies for loan lifecycle handlers.
type LoanHandler struct {
	uc     usecase.LoanUsecase
	logger *slog.Logger
}

// NewLoanHandler is the constructor for LoanHandler, injected by Fx.
func NewLoanHandler(uc usecase.LoanUsecase, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register opens a loan for a customer against a catalog book. The loan
// and the decremented copy count commit together.
func (h *LoanHandler) Register(c echo.Context) error {
	var input *usecase.RegisterLoanInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid loan input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	loan, err := h.uc.RegisterLoan(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, loan, "Loan registered successfully")
}

// Close marks the matching loan as returned. The book's copy count is
// deliberately left untouched.
func (h *LoanHandler) Close(c echo.Context) error {
	email := c.Param("email")
	loanID := c.Param("id")

	if err := h.uc.CloseLoan(c.Request().Context(), email, loanID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Loan closed successfully")
}

// ListByCustomer returns the customer's loan history in creation order.
func (h *LoanHandler) ListByCustomer(c echo.Context) error {
	loans, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loans, "Loans retrieved successfully")
}
