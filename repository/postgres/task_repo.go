package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT id, user_id, title, COALESCE(description, ''), COALESCE(due_date, ''), COALESCE(priority, ''), completed, created_at
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR priority = $2)
	  AND ($3::boolean IS NULL OR completed = $3)
	ORDER BY created_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, string(filter.Priority), filter.Completed)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (title, description, due_date, priority, user_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, completed, created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.Title,
		nullString(task.Description),
		nullString(task.DueDate),
		nullString(task.Priority),
		task.UserID,
	).Scan(&task.ID, &task.Completed, &task.CreatedAt); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete task: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *taskRepository) ToggleCompletion(ctx context.Context, id, userID int64) (bool, error) {
	const query = `
	UPDATE tasks
	SET completed = NOT completed
	WHERE id = $1 AND user_id = $2
	RETURNING completed
	`

	var completed bool
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(&completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrTaskNotFound
		}
		return false, fmt.Errorf("toggle task: %w", err)
	}
	return completed, nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Completed,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
