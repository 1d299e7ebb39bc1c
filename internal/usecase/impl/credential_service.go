// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "credential/internal/delivery/context"
	domainerrors "credential/internal/domain/errors"
	"credential/internal/domain/repository"
	"credential/internal/domain/service"
	"credential/internal/errors"
	"credential/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOrDefault(ctx, srv.logger)
}

// SignUp registers a user after checking that the email is not taken.
// The store may still reject a concurrent registration of the same email; that
// surfaces as ErrDuplicateUser as well.
func (srv *credentialService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.UserOutput, error) {
	if err := srv.validateInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting sign up", slog.String("email", input.Email))

	existing, err := srv.userRepo.Find(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to look up users during sign up", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find users during sign up")
	}

	if len(existing) > 0 {
		srv.log(ctx).Warn("Sign up rejected, email already in use", slog.String("email", input.Email))

		return nil, domainerrors.ErrDuplicateUser.WrapMessage("sign up failed")
	}

	record, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during sign up", slog.Any("error", err))

		return nil, errors.Wrap(errors.Join(domainerrors.ErrPasswordHashFailed, err), "failed to hash password during sign up")
	}

	user, err := srv.userRepo.Create(ctx, input.Email, record)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateUser) {
			srv.log(ctx).Warn("Sign up lost a concurrent registration race", slog.String("email", input.Email))
		} else {
			srv.log(ctx).Error("Failed to create user during sign up", slog.String("email", input.Email), slog.Any("error", err))
		}

		return nil, errors.Wrap(err, "failed to create user during sign up")
	}

	srv.log(ctx).Debug("Sign up completed", slog.Any("userID", user.ID))

	return &usecase.UserOutput{User: user}, nil
}

// SignIn checks the password against the first user registered under the email.
func (srv *credentialService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.UserOutput, error) {
	if err := srv.validateInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Starting sign in", slog.String("email", input.Email))

	users, err := srv.userRepo.Find(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to look up users during sign in", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find users during sign in")
	}

	if len(users) == 0 {
		srv.log(ctx).Warn("Sign in failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrUserNotFound))

		return nil, domainerrors.ErrUserNotFound.WrapMessage("sign in failed")
	}

	user := users[0]

	matched, err := srv.hasher.Verify(ctx, input.Password, user.PasswordRecord)
	if err != nil {
		srv.log(ctx).Error("Failed to verify password during sign in", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(errors.Join(domainerrors.ErrPasswordHashFailed, err), "failed to verify password during sign in")
	}

	if !matched {
		srv.log(ctx).Warn("Sign in failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("sign in failed")
	}

	srv.log(ctx).Debug("User signed in successfully", slog.Any("userID", user.ID))

	return &usecase.UserOutput{User: user}, nil
}

func (srv *credentialService) validateInput(input any) error {
	if err := srv.validate.Struct(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return nil
}
