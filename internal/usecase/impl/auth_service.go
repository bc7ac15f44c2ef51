package impl

import (
	"context"
	"log/slog"

	deliverycontext "librarium/internal/delivery/context"
	domainerrors "librarium/internal/domain/errors"
	"librarium/internal/domain/repository"
	"librarium/internal/domain/service"
	"librarium/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	identityRepo repository.IdentityRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		identityRepo: identityRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login resolves a username/secret pair against the identity's
// credential profile. The resolver picks the single highest-priority
// role profile present on the identity (admin, then employee, then
// customer) and checks the secret against that profile only; it never
// falls through to a lower-priority profile on a mismatch. Every
// failure mode collapses into the same invalid-credentials error so
// the response does not leak which part failed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identity, err := srv.identityRepo.FindByEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Info("Login rejected, unknown username", slog.String("username", input.Username))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown username")
		}

		return nil, errors.Wrap(err, "failed to look up identity for login")
	}

	profile := identity.CredentialProfile()
	if profile == nil {
		srv.log(ctx).Warn("Login rejected, identity holds no role profile", slog.Any("identityID", identity.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("identity holds no role profile")
	}

	if !srv.hasher.Check(input.Secret, profile.SecretHash) {
		srv.log(ctx).Info("Login rejected, secret mismatch", slog.String("username", input.Username), slog.Any("role", profile.Role))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("secret mismatch")
	}

	token, err := srv.tokenService.GenerateToken(identity.ID, string(profile.Role))
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("identityID", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Debug("Login resolved", slog.Any("identityID", identity.ID), slog.Any("role", profile.Role))

	return &usecase.LoginOutput{Role: profile.Role, AccessToken: token}, nil
}
