package handler

import (
	"log/slog"
	"net/http"

	"librarium/internal/delivery/http/response"
	"librarium/internal/domain/entity"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// directoryHandler is the role-agnostic core shared by the customer,
// employee and admin handlers. Each concrete handler pins the role so
// the route table stays explicit.
type directoryHandler struct {
	uc     usecase.DirectoryUsecase
	logger *slog.Logger
	role   entity.Role
}

// registeredProfile is the projection returned after registration. The
// stored credential hash never leaves the service.
type registeredProfile struct {
	ID       uuid.UUID   `json:"_id"`
	Username string      `json:"username"`
	Role     entity.Role `json:"rol"`
}

// Register creates one identity holding exactly this handler's role.
func (h *directoryHandler) Register(c echo.Context) error {
	var input *usecase.RegisterProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	identity, err := h.uc.Register(c.Request().Context(), h.role, input)
	if err != nil {
		return errors.WithStack(err)
	}

	registered := &registeredProfile{
		ID:       identity.ID,
		Username: identity.Email,
		Role:     h.role,
	}

	return response.Success(c, http.StatusCreated, registered, "Profile registered successfully")
}

// List returns every identity holding this handler's role.
func (h *directoryHandler) List(c echo.Context) error {
	profiles := h.uc.List(c.Request().Context(), h.role)

	return response.Success(c, http.StatusOK, profiles, "Profiles retrieved successfully")
}

// Update mutates the mutable fields of the role profile selected by email.
func (h *directoryHandler) Update(c echo.Context) error {
	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Update(c.Request().Context(), h.role, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile updated successfully")
}

// Delete removes the whole identity by its store id.
func (h *directoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid identity id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile deleted successfully")
}

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	directoryHandler
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.DirectoryUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{directoryHandler{uc: uc, logger: logger, role: entity.RoleCustomer}}
}

// Get returns one customer's profile with its loan history.
func (h *CustomerHandler) Get(c echo.Context) error {
	identity, err := h.uc.GetCustomer(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	profile := &usecase.ProfileView{
		ID:             identity.ID,
		Username:       identity.Email,
		Role:           entity.RoleCustomer,
		Name:           identity.Customer.Name,
		LastName:       identity.Customer.LastName,
		DocumentType:   identity.Customer.DocumentType,
		DocumentNumber: identity.Customer.DocumentNumber,
		Cellphone:      identity.Customer.Cellphone,
		Address:        identity.Customer.Address,
		Birthday:       identity.Customer.Birthday,
		Loans:          identity.Customer.Loans,
	}

	return response.Success(c, http.StatusOK, profile, "Customer retrieved successfully")
}

// EmployeeHandler serves the employee directory.
type EmployeeHandler struct {
	directoryHandler
}

// NewEmployeeHandler is the constructor for EmployeeHandler, injected by Fx.
func NewEmployeeHandler(uc usecase.DirectoryUsecase, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{directoryHandler{uc: uc, logger: logger, role: entity.RoleEmployee}}
}

// AdminHandler serves the admin directory.
type AdminHandler struct {
	directoryHandler
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.DirectoryUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{directoryHandler{uc: uc, logger: logger, role: entity.RoleAdmin}}
}
