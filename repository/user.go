package repository

import (
	"context"

	"github.com/fastygo/todo/domain"
)

type UserRepository interface {
	// Create inserts the user and fills ID and CreatedAt. Duplicate username or email yields domain.ErrUserConflict.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
