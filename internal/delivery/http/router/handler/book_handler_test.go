package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"librarium/internal/delivery/http/validator"
	"librarium/internal/domain/entity"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogStub is a minimal CatalogUsecase implementation for handler tests.
type catalogStub struct {
	books     []*entity.Book
	added     *usecase.AddBookInput
	deletedID uuid.UUID
}

func (s *catalogStub) List(ctx context.Context) []*entity.Book {
	return s.books
}

func (s *catalogStub) Add(ctx context.Context, input *usecase.AddBookInput) (*entity.Book, error) {
	s.added = input

	return &entity.Book{ID: uuid.New(), ISBN: input.ISBN, Name: input.Name}, nil
}

func (s *catalogStub) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateBookInput) error {
	return nil
}

func (s *catalogStub) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id

	return nil
}

func newBookTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestBookHandler_List(t *testing.T) {
	stub := &catalogStub{books: []*entity.Book{{ISBN: "978-0134190440", Name: "The Go Programming Language"}}}
	handler := NewBookHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newBookTestContext(t, http.MethodGet, "/books", "")

	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "978-0134190440")
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestBookHandler_Add(t *testing.T) {
	stub := &catalogStub{}
	handler := NewBookHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	body := `{"ISBN":"978-0134190440","name":"The Go Programming Language","author":"Donovan","genre":"programming","copies":3,"publication":"2015-10-26T00:00:00Z","fine":"1.50"}`
	c, rec := newBookTestContext(t, http.MethodPost, "/books", body)

	require.NoError(t, handler.Add(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.added)
	assert.Equal(t, "978-0134190440", stub.added.ISBN)
	assert.Equal(t, 3, stub.added.Copies)
}

func TestBookHandler_Add_MissingRequiredFields(t *testing.T) {
	stub := &catalogStub{}
	handler := NewBookHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, _ := newBookTestContext(t, http.MethodPost, "/books", `{"name":"incomplete"}`)

	err := handler.Add(c)
	require.Error(t, err)
	assert.Nil(t, stub.added)
}

func TestBookHandler_Delete_InvalidID(t *testing.T) {
	stub := &catalogStub{}
	handler := NewBookHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newBookTestContext(t, http.MethodDelete, "/books/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, stub.deletedID)
}

func TestBookHandler_Delete(t *testing.T) {
	stub := &catalogStub{}
	handler := NewBookHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	id := uuid.New()
	c, rec := newBookTestContext(t, http.MethodDelete, "/books/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, stub.deletedID)
}
