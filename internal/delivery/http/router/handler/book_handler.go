package handler

import (
	"log/slog"
	"net/http"

	"librarium/internal/delivery/http/response"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookHandler holds dependencies for catalog handlers.
type BookHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewBookHandler is the constructor for BookHandler, injected by Fx.
func NewBookHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the whole catalog. Store failures surface as an empty
// list, never as an error.
func (h *BookHandler) List(c echo.Context) error {
	books := h.uc.List(c.Request().Context())

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

// Add registers a new book in the catalog.
func (h *BookHandler) Add(c echo.Context) error {
	var input *usecase.AddBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.uc.Add(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, book, "Book registered successfully")
}

// Update overwrites the mutable fields of a book. The ISBN is immutable.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid book id")
	}

	var input *usecase.UpdateBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Update(c.Request().Context(), id, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Book updated successfully")
}

// Delete removes a book from the catalog. Loan history keeps its plain
// ISBN reference.
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid book id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Book deleted successfully")
}
