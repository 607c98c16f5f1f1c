package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListTasks returns the owner's tasks, newest first. Unknown priorities are ignored
// and behave exactly like no filter.
func (uc *UseCase) ListTasks(ctx context.Context, userID int64, priority string) ([]domain.Task, error) {
	filter := repository.TaskFilter{UserID: userID}
	if p, ok := domain.ParsePriority(priority); ok {
		filter.Priority = p
	}
	return uc.tasks.List(ctx, filter)
}

// ListByStatus returns the owner's completed or active tasks, newest first.
func (uc *UseCase) ListByStatus(ctx context.Context, userID int64, completed bool) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{UserID: userID, Completed: &completed})
}

// CreateTask stores a new task for its owner. Only the title is required.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	task.Completed = false
	return uc.tasks.Create(ctx, task)
}

// DeleteTask removes an owned task. Unknown or foreign ids are a no-op.
func (uc *UseCase) DeleteTask(ctx context.Context, id, userID int64) (int64, error) {
	affected, err := uc.tasks.Delete(ctx, id, userID)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		uc.logger.Debug("delete matched no task", zap.Int64("task_id", id), zap.Int64("user_id", userID))
	}
	return affected, nil
}

// ToggleCompletion flips an owned task between complete and incomplete.
func (uc *UseCase) ToggleCompletion(ctx context.Context, id, userID int64) (bool, error) {
	return uc.tasks.ToggleCompletion(ctx, id, userID)
}
