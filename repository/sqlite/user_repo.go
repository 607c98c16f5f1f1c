package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates a SQLite-backed user repository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}

	record := userRecord{
		Username: user.Username,
		Password: user.PasswordHash,
		Email:    user.Email,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.WrapError(domain.ErrCodeConflict, domain.ErrUserConflict.Message, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	user.ID = record.ID
	user.CreatedAt = record.CreatedAt
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return record.toDomain(), nil
}
