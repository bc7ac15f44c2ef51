// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	"librarium/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// identityRepository implements the repository.IdentityRepository interface using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
// It returns the repository as a repository.IdentityRepository interface, adhering to dependency inversion.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// withProfiles preloads the three role profiles and the customer's loan
// history in insertion order.
func (repo *identityRepository) withProfiles(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("AdminProfile").
		Preload("EmployeeProfile").
		Preload("CustomerProfile.Loans", func(db *gorm.DB) *gorm.DB {
			return db.Order("loans.created_at ASC")
		}).
		Preload("CustomerProfile")
}

// FindByID retrieves a single identity by its unique ID, preloading its role profiles.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var identityM model.IdentityModel
	if err := repo.withProfiles(ctx).First(&identityM, "id = ?", id).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find identity by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toIdentityDomain(&identityM), nil
}

// FindByEmail retrieves a single identity by its email address, preloading its role profiles.
func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	if err := repo.withProfiles(ctx).First(&identityM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by email")
	}

	return toIdentityDomain(&identityM), nil
}

// FindByDocumentNumber retrieves the identity whose profile in the given
// role's table carries the document number. The lookup hits one per-role
// table only, so the same number may live in another role's population.
func (repo *identityRepository) FindByDocumentNumber(ctx context.Context, role entity.Role, documentNumber string) (*entity.Identity, error) {
	var identityID uuid.UUID
	var err error

	switch role {
	case entity.RoleAdmin:
		var profile model.AdminProfileModel
		err = repo.db.WithContext(ctx).First(&profile, "document_number = ?", documentNumber).Error
		identityID = profile.IdentityID
	case entity.RoleEmployee:
		var profile model.EmployeeProfileModel
		err = repo.db.WithContext(ctx).First(&profile, "document_number = ?", documentNumber).Error
		identityID = profile.IdentityID
	case entity.RoleCustomer:
		var profile model.CustomerProfileModel
		err = repo.db.WithContext(ctx).First(&profile, "document_number = ?", documentNumber).Error
		identityID = profile.IdentityID
	default:
		return nil, repository.ErrIdentityNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by document number")
	}

	return repo.FindByID(ctx, identityID)
}

// ListByRole retrieves every identity holding the given role profile.
func (repo *identityRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error) {
	var table string
	switch role {
	case entity.RoleAdmin:
		table = model.AdminProfileModel{}.TableName()
	case entity.RoleEmployee:
		table = model.EmployeeProfileModel{}.TableName()
	case entity.RoleCustomer:
		table = model.CustomerProfileModel{}.TableName()
	default:
		return []*entity.Identity{}, nil
	}

	var identityModels []*model.IdentityModel
	err := repo.withProfiles(ctx).
		Joins("JOIN "+table+" ON "+table+".identity_id = identities.id").
		Order("identities.created_at ASC").
		Find(&identityModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list identities by role")
	}

	identities := make([]*entity.Identity, 0, len(identityModels))
	for _, identityM := range identityModels {
		identities = append(identities, toIdentityDomain(identityM))
	}

	return identities, nil
}

// Create persists a new identity entity, including its role profiles.
// GORM's Create with associations inserts into identities and the
// populated per-role profile tables together.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	// Map the pure domain entity to a GORM persistence model.
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Create(identityM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email or document number already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required identity information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("profile references an unknown identity")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	// Update the identity entity with the generated ID and timestamps
	identity.ID = identityM.ID
	identity.CreatedAt = identityM.CreatedAt
	identity.UpdatedAt = identityM.UpdatedAt
	syncProfileIdentityIDs(identity, identityM)

	return nil
}

// Update modifies an existing identity entity in place, including its
// role profiles and embedded loans.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)

	// Use Session with FullSaveAssociations to update nested associations
	if err := repo.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateDocumentNumber.WrapMessage("document number already registered for this role")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required identity information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("loan references an unknown customer profile")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update identity")
	}

	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

// Delete removes the whole identity record, its role profiles and the
// loan history hanging off the customer profile.
func (repo *identityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The association delete below only reaches the identity's own
		// associations, the three profile rows. Loans sit one level
		// deeper under the customer profile and must go first, also to
		// satisfy their foreign key.
		if err := tx.Delete(&model.LoanModel{}, "customer_id = ?", id).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete loan history")
		}

		result := tx.Select(clause.Associations).Delete(&model.IdentityModel{ID: id})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete identity")
		}
		if result.RowsAffected == 0 {
			return repository.ErrIdentityNotFound
		}

		return nil
	})
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toIdentityDomain converts a GORM IdentityModel to a domain Identity entity.
func toIdentityDomain(data *model.IdentityModel) *entity.Identity {
	if data == nil {
		return nil
	}

	identity := &entity.Identity{
		ID:        data.ID,
		Email:     data.Email,
		Customer:  toCustomerProfileDomain(data.ID, data.CustomerProfile),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.AdminProfile != nil {
		identity.Admin = toRoleProfileDomain(data.ID, entity.RoleAdmin, &data.AdminProfile.ProfileColumns)
	}
	if data.EmployeeProfile != nil {
		identity.Employee = toRoleProfileDomain(data.ID, entity.RoleEmployee, &data.EmployeeProfile.ProfileColumns)
	}

	return identity
}

// fromIdentityDomain converts a domain Identity entity to a GORM IdentityModel for persistence.
func fromIdentityDomain(data *entity.Identity) *model.IdentityModel {
	if data == nil {
		return nil
	}

	identityM := &model.IdentityModel{
		ID:    data.ID,
		Email: data.Email,
	}

	if data.Admin != nil {
		identityM.AdminProfile = &model.AdminProfileModel{
			IdentityID:     data.ID,
			ProfileColumns: fromRoleProfileDomain(data.Admin),
		}
	}
	if data.Employee != nil {
		identityM.EmployeeProfile = &model.EmployeeProfileModel{
			IdentityID:     data.ID,
			ProfileColumns: fromRoleProfileDomain(data.Employee),
		}
	}
	if data.Customer != nil {
		loans := make([]*model.LoanModel, 0, len(data.Customer.Loans))
		for _, loan := range data.Customer.Loans {
			loans = append(loans, &model.LoanModel{
				ID:         loan.ID,
				CustomerID: data.ID,
				ISBN:       loan.ISBN,
				StartDate:  loan.StartDate,
				EndDate:    loan.EndDate,
				State:      loan.State,
				CreatedAt:  loan.CreatedAt,
			})
		}
		identityM.CustomerProfile = &model.CustomerProfileModel{
			IdentityID:     data.ID,
			ProfileColumns: fromRoleProfileDomain(&data.Customer.RoleProfile),
			Loans:          loans,
		}
	}

	return identityM
}

func toRoleProfileDomain(identityID uuid.UUID, role entity.Role, columns *model.ProfileColumns) *entity.RoleProfile {
	if columns == nil {
		return nil
	}

	return &entity.RoleProfile{
		IdentityID:     identityID,
		Role:           role,
		SecretHash:     columns.SecretHash,
		Name:           columns.Name,
		LastName:       columns.LastName,
		DocumentType:   columns.DocumentType,
		DocumentNumber: columns.DocumentNumber,
		Cellphone:      columns.Cellphone,
		Address:        columns.Address,
		Birthday:       columns.Birthday,
		UpdatedAt:      columns.UpdatedAt,
	}
}

func toCustomerProfileDomain(identityID uuid.UUID, data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	loans := make([]*entity.Loan, 0, len(data.Loans))
	for _, loanM := range data.Loans {
		loans = append(loans, &entity.Loan{
			ID:        loanM.ID,
			ISBN:      loanM.ISBN,
			StartDate: loanM.StartDate,
			EndDate:   loanM.EndDate,
			State:     loanM.State,
			CreatedAt: loanM.CreatedAt,
		})
	}

	profile := toRoleProfileDomain(identityID, entity.RoleCustomer, &data.ProfileColumns)

	return &entity.CustomerProfile{
		RoleProfile: *profile,
		Loans:       loans,
	}
}

func fromRoleProfileDomain(data *entity.RoleProfile) model.ProfileColumns {
	return model.ProfileColumns{
		SecretHash:     data.SecretHash,
		Name:           data.Name,
		LastName:       data.LastName,
		DocumentType:   data.DocumentType,
		DocumentNumber: data.DocumentNumber,
		Cellphone:      data.Cellphone,
		Address:        data.Address,
		Birthday:       data.Birthday,
		UpdatedAt:      data.UpdatedAt,
	}
}

func syncProfileIdentityIDs(identity *entity.Identity, identityM *model.IdentityModel) {
	if identity.Admin != nil && identityM.AdminProfile != nil {
		identity.Admin.IdentityID = identityM.ID
		identity.Admin.UpdatedAt = identityM.AdminProfile.UpdatedAt
	}
	if identity.Employee != nil && identityM.EmployeeProfile != nil {
		identity.Employee.IdentityID = identityM.ID
		identity.Employee.UpdatedAt = identityM.EmployeeProfile.UpdatedAt
	}
	if identity.Customer != nil && identityM.CustomerProfile != nil {
		identity.Customer.IdentityID = identityM.ID
		identity.Customer.UpdatedAt = identityM.CustomerProfile.UpdatedAt
	}
}
