// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "librarium/internal/delivery/context"
	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	"librarium/internal/domain/service"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minimumEmployeeAge is the age gate for employee registration, in years.
// Exactly 18 passes; anything below fails.
const minimumEmployeeAge = 18

// hoursPerYear uses the 365.25-day year so the gate stays leap-aware.
const hoursPerYear = 24 * 365.25

// directoryService implements the DirectoryUsecase interface for all
// three role populations.
type directoryService struct {
	txManager    repository.TransactionManager
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	clock        service.Clock
	logger       *slog.Logger
}

// DirectoryServiceParams holds dependencies for the directory service, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	Clock        service.Clock
	Logger       *slog.Logger
}

// NewDirectoryService is the constructor for directoryService. It receives all dependencies as interfaces.
func NewDirectoryService(params DirectoryServiceParams) usecase.DirectoryUsecase {
	return &directoryService{
		txManager:    params.TxManager,
		identityRepo: params.IdentityRepo,
		hasher:       params.Hasher,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *directoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates one identity carrying exactly one role profile.
// Email uniqueness is global; document number uniqueness is scoped to
// the role's population. The check-then-create pair runs inside one
// transaction so the store's unique indexes back the pre-checks.
func (srv *directoryService) Register(ctx context.Context, role entity.Role, input *usecase.RegisterProfileInput) (*entity.Identity, error) {
	srv.log(ctx).Info("Registering identity", slog.Any("role", role), slog.String("email", input.Email))

	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	if role == entity.RoleEmployee {
		if yearsBetween(input.Birthday, srv.clock.Now()) < minimumEmployeeAge {
			srv.log(ctx).Warn("Employee registration rejected by age gate", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUnderageEmployee, "employee registration rejected")
		}
	}

	secretHash, err := srv.hasher.Hash(input.Secret)
	if err != nil {
		srv.log(ctx).Error("Failed to hash secret during registration", slog.Any("role", role), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrSecretHashFailed, "failed to hash secret during registration")
	}

	var registered *entity.Identity
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		if _, findErr := identityRepo.FindByEmail(ctx, input.Email); findErr == nil {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
		} else if !errors.Is(findErr, repository.ErrIdentityNotFound) {
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		if _, findErr := identityRepo.FindByDocumentNumber(ctx, role, input.DocumentNumber); findErr == nil {
			return domainerrors.ErrDuplicateDocumentNumber.WrapMessage("document number already registered for this role")
		} else if !errors.Is(findErr, repository.ErrIdentityNotFound) {
			return errors.Wrap(findErr, "failed to check document number uniqueness")
		}

		identity := buildIdentity(role, input, secretHash)
		if createErr := identityRepo.Create(ctx, identity); createErr != nil {
			return errors.Wrap(createErr, "failed to create identity during registration")
		}
		registered = identity

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.Any("role", role), slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute identity registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("role", role), slog.Any("identityID", registered.ID))

	return registered, nil
}

// Update mutates every mutable field of the role profile in place. The
// email and role tag stay untouched, and so does the customer's loan
// history: the loans sequence only grows or flips states, never shrinks.
func (srv *directoryService) Update(ctx context.Context, role entity.Role, input *usecase.UpdateProfileInput) error {
	srv.log(ctx).Info("Updating identity profile", slog.Any("role", role), slog.String("email", input.Email))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		identity, findErr := identityRepo.FindByEmail(ctx, input.Email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound.WrapMessage("no identity with this email")
			}

			return errors.Wrap(findErr, "failed to find identity")
		}

		profile := identity.ProfileFor(role)
		if profile == nil {
			return domainerrors.ErrIdentityNotFound.WrapMessage("identity does not hold this role")
		}

		profile.Name = input.Name
		profile.LastName = input.LastName
		profile.DocumentType = input.DocumentType
		profile.DocumentNumber = input.DocumentNumber
		profile.Cellphone = input.Cellphone
		profile.Address = input.Address
		profile.Birthday = input.Birthday

		if updateErr := identityRepo.Update(ctx, identity); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist profile update")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update identity profile", slog.Any("role", role), slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute profile update transaction")
	}

	return nil
}

// Delete removes the whole identity record, whichever roles it holds.
func (srv *directoryService) Delete(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting identity", slog.Any("identityID", id))

	// Single operation - use direct repository instance.
	if err := srv.identityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return domainerrors.ErrIdentityNotFound.WrapMessage("no identity with this id")
		}

		return errors.Wrap(err, "failed to delete identity")
	}

	return nil
}

// List projects every identity holding the role into the flat view. Any
// store failure is swallowed: callers always get a slice, possibly empty.
func (srv *directoryService) List(ctx context.Context, role entity.Role) []*usecase.ProfileView {
	identities, err := srv.identityRepo.ListByRole(ctx, role)
	if err != nil {
		srv.log(ctx).Warn("Listing role population failed, returning empty view", slog.Any("role", role), slog.Any("error", err))

		return []*usecase.ProfileView{}
	}

	views := make([]*usecase.ProfileView, 0, len(identities))
	for _, identity := range identities {
		if view := projectProfile(identity, role); view != nil {
			views = append(views, view)
		}
	}

	return views
}

// GetCustomer returns the identity holding the customer role for the
// given email, loan history included.
func (srv *directoryService) GetCustomer(ctx context.Context, email string) (*entity.Identity, error) {
	identity, err := srv.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrIdentityNotFound.WrapMessage("no identity with this email")
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	if identity.Customer == nil {
		return nil, domainerrors.ErrIdentityNotFound.WrapMessage("identity does not hold the customer role")
	}

	return identity, nil
}

// yearsBetween measures the age of a birthday at the reference instant,
// in fractional years.
func yearsBetween(birthday, now time.Time) float64 {
	return now.Sub(birthday).Hours() / hoursPerYear
}

func buildIdentity(role entity.Role, input *usecase.RegisterProfileInput, secretHash string) *entity.Identity {
	profile := entity.RoleProfile{
		Role:           role,
		SecretHash:     secretHash,
		Name:           input.Name,
		LastName:       input.LastName,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		Cellphone:      input.Cellphone,
		Address:        input.Address,
		Birthday:       input.Birthday,
	}

	identity := &entity.Identity{Email: input.Email}
	switch role {
	case entity.RoleAdmin:
		identity.Admin = &profile
	case entity.RoleEmployee:
		identity.Employee = &profile
	case entity.RoleCustomer:
		identity.Customer = &entity.CustomerProfile{RoleProfile: profile, Loans: []*entity.Loan{}}
	}

	return identity
}

func projectProfile(identity *entity.Identity, role entity.Role) *usecase.ProfileView {
	profile := identity.ProfileFor(role)
	if profile == nil {
		return nil
	}

	view := &usecase.ProfileView{
		ID:             identity.ID,
		Username:       identity.Email,
		Role:           profile.Role,
		Name:           profile.Name,
		LastName:       profile.LastName,
		DocumentType:   profile.DocumentType,
		DocumentNumber: profile.DocumentNumber,
		Cellphone:      profile.Cellphone,
		Address:        profile.Address,
		Birthday:       profile.Birthday,
	}
	if role == entity.RoleCustomer {
		view.Loans = identity.Customer.Loans
	}

	return view
}
