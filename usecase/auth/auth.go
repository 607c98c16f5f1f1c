package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/password"
	"github.com/fastygo/todo/repository"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type UseCase struct {
	users  repository.UserRepository
	hasher password.Hasher
	logger *zap.Logger
}

func New(users repository.UserRepository, hasher password.Hasher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = password.NewBcrypt(0)
	}
	return &UseCase{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates an account. Missing fields yield domain.ErrMissingFields and
// a taken username or email yields a CONFLICT error.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "hash password", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate returns the user matching the credentials, or domain.ErrInvalidCredentials.
func (uc *UseCase) Authenticate(ctx context.Context, username, plain string) (*domain.User, error) {
	if username == "" || plain == "" {
		return nil, domain.ErrCredentialsRequired
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !uc.hasher.Check(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
