// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"librarium/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdentityNotFound is a domain-specific error returned when an identity is not found.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository defines the standard operations for identity persistence.
// The application layer will depend on this interface, not the concrete implementation.
type IdentityRepository interface {
	// FindByID retrieves a single identity by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByEmail retrieves a single identity by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// FindByDocumentNumber retrieves the identity holding the given role
	// whose profile carries the document number. The lookup is scoped to
	// one role population; the same number may exist in another role.
	FindByDocumentNumber(ctx context.Context, role entity.Role, documentNumber string) (*entity.Identity, error)

	// ListByRole retrieves every identity holding the given role profile.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error)

	// Create persists a new identity entity, including its role profiles.
	Create(ctx context.Context, identity *entity.Identity) error

	// Update modifies an existing identity entity in place, including its
	// role profiles and embedded loans.
	Update(ctx context.Context, identity *entity.Identity) error

	// Delete removes the whole identity record regardless of which roles it holds.
	Delete(ctx context.Context, id uuid.UUID) error
}
