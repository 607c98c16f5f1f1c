package repository

import (
	"context"

	"github.com/fastygo/todo/domain"
)

// TaskFilter scopes a listing. UserID is mandatory; zero-valued optional fields are ignored.
type TaskFilter struct {
	UserID    int64
	Priority  domain.Priority
	Completed *bool
}

type TaskRepository interface {
	// List returns the owner's tasks, newest first.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Delete removes the task only when owned by userID and reports the affected row count.
	Delete(ctx context.Context, id, userID int64) (int64, error)
	// ToggleCompletion flips the completed flag and returns the new value.
	ToggleCompletion(ctx context.Context, id, userID int64) (bool, error)
}
