package usecase

import (
	"context"
	"time"

	"librarium/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterProfileInput defines the data required to register an identity
// with a single role profile.
type RegisterProfileInput struct {
	Email          string    `json:"email" validate:"required,email"`
	Secret         string    `json:"password" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	LastName       string    `json:"lastName" validate:"required"`
	DocumentType   string    `json:"documentType" validate:"required"`
	DocumentNumber string    `json:"documentNumber" validate:"required"`
	Cellphone      string    `json:"cellphone"`
	Address        string    `json:"address"`
	Birthday       time.Time `json:"birthday" validate:"required"`
}

// UpdateProfileInput defines the mutable fields of a role profile. The
// email selects the identity and is itself immutable, as is the role tag.
type UpdateProfileInput struct {
	Email          string    `json:"email" validate:"required,email"`
	Name           string    `json:"name" validate:"required"`
	LastName       string    `json:"lastName" validate:"required"`
	DocumentType   string    `json:"documentType" validate:"required"`
	DocumentNumber string    `json:"documentNumber" validate:"required"`
	Cellphone      string    `json:"cellphone"`
	Address        string    `json:"address"`
	Birthday       time.Time `json:"birthday" validate:"required"`
}

// ProfileView is the flat projection returned by List: the identity id,
// the email as username, and the role profile's own fields spread out.
// Store internals (secret hash) are excluded.
type ProfileView struct {
	ID             uuid.UUID      `json:"_id"`
	Username       string         `json:"username"`
	Role           entity.Role    `json:"rol"`
	Name           string         `json:"name"`
	LastName       string         `json:"lastName"`
	DocumentType   string         `json:"documentType"`
	DocumentNumber string         `json:"documentNumber"`
	Cellphone      string         `json:"cellphone"`
	Address        string         `json:"address"`
	Birthday       time.Time      `json:"birthday"`
	Loans          []*entity.Loan `json:"loans,omitempty"` // Populated for customers only.
}

// DirectoryUsecase is the role-scoped CRUD and validation orchestration
// over the identity store. One implementation serves all three role
// populations; handlers pin the role.
type DirectoryUsecase interface {
	// Register creates one identity with exactly one role profile
	// populated. It enforces global email uniqueness and role-scoped
	// document number uniqueness, and gates employee registration on age.
	Register(ctx context.Context, role entity.Role, input *RegisterProfileInput) (*entity.Identity, error)

	// Update mutates the mutable fields of the identity's role profile in
	// place. The identity is selected by email, scoped to the role.
	Update(ctx context.Context, role entity.Role, input *UpdateProfileInput) error

	// Delete removes the whole identity by its store id, regardless of
	// which roles it holds.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the flat projection of every identity holding the
	// role. Store failures are swallowed: the caller always receives a
	// (possibly empty) slice, never an error.
	List(ctx context.Context, role entity.Role) []*ProfileView

	// GetCustomer returns the identity holding the customer role for the
	// given email, including its loan history.
	GetCustomer(ctx context.Context, email string) (*entity.Identity, error)
}
