package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"librarium/internal/domain/entity"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	mockRepo "librarium/internal/mocks/repository"
	mockSvc "librarium/internal/mocks/service"
	"librarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	identityRepo *mockRepo.MockIdentityRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(identityRepo, hasher, tokenService, logger)

	return authServiceFixtures{
		service:      service,
		identityRepo: identityRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	identity := &entity.Identity{
		ID:       uuid.New(),
		Email:    "clerk@example.com",
		Employee: &entity.RoleProfile{Role: entity.RoleEmployee, SecretHash: "employee_hash"},
	}
	input := &usecase.LoginInput{Username: identity.Email, Secret: "Password123!"}

	fx.identityRepo.EXPECT().FindByEmail(ctx, input.Username).Return(identity, nil)
	fx.hasher.EXPECT().Check(input.Secret, "employee_hash").Return(true)
	fx.tokenService.EXPECT().GenerateToken(identity.ID, string(entity.RoleEmployee)).Return("signed.jwt", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, output.Role)
	assert.Equal(t, "signed.jwt", output.AccessToken)
}

func TestAuthService_Login_ResolvesHighestPriorityRole(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	identity := &entity.Identity{
		ID:       uuid.New(),
		Email:    "multi@example.com",
		Admin:    &entity.RoleProfile{Role: entity.RoleAdmin, SecretHash: "admin_hash"},
		Customer: &entity.CustomerProfile{RoleProfile: entity.RoleProfile{Role: entity.RoleCustomer, SecretHash: "customer_hash"}},
	}
	input := &usecase.LoginInput{Username: identity.Email, Secret: "AdminSecret!"}

	fx.identityRepo.EXPECT().FindByEmail(ctx, input.Username).Return(identity, nil)
	fx.hasher.EXPECT().Check(input.Secret, "admin_hash").Return(true)
	fx.tokenService.EXPECT().GenerateToken(identity.ID, string(entity.RoleAdmin)).Return("signed.jwt", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, output.Role)
}

func TestAuthService_Login_NoFallthroughOnMismatch(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	// The secret matches the customer profile, but the admin profile is
	// present and outranks it. Resolution stops at the admin mismatch and
	// never consults the customer profile.
	identity := &entity.Identity{
		ID:       uuid.New(),
		Email:    "multi@example.com",
		Admin:    &entity.RoleProfile{Role: entity.RoleAdmin, SecretHash: "admin_hash"},
		Customer: &entity.CustomerProfile{RoleProfile: entity.RoleProfile{Role: entity.RoleCustomer, SecretHash: "customer_hash"}},
	}
	input := &usecase.LoginInput{Username: identity.Email, Secret: "CustomerSecret!"}

	fx.identityRepo.EXPECT().FindByEmail(ctx, input.Username).Return(identity, nil)
	fx.hasher.EXPECT().Check(input.Secret, "admin_hash").Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fx.hasher.AssertNotCalled(t, "Check", input.Secret, "customer_hash")
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Username: "ghost@example.com", Secret: "whatever"}

	fx.identityRepo.EXPECT().FindByEmail(ctx, input.Username).Return(nil, repository.ErrIdentityNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_NoProfiles(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	identity := &entity.Identity{ID: uuid.New(), Email: "empty@example.com"}
	input := &usecase.LoginInput{Username: identity.Email, Secret: "whatever"}

	fx.identityRepo.EXPECT().FindByEmail(ctx, input.Username).Return(identity, nil)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
