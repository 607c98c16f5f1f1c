package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.Priority != "" {
		q = q.Where("priority = ?", string(filter.Priority))
	}
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	var records []taskRecord
	if err := q.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, rec.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	record := taskRecord{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		UserID:      task.UserID,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	task.ID = record.ID
	task.Completed = record.Completed
	task.CreatedAt = record.CreatedAt
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&taskRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *taskRepository) ToggleCompletion(ctx context.Context, id, userID int64) (bool, error) {
	const query = `UPDATE tasks SET completed = NOT completed WHERE id = ? AND user_id = ? RETURNING completed`

	rows, err := r.db.WithContext(ctx).Raw(query, id, userID).Rows()
	if err != nil {
		return false, fmt.Errorf("toggle task: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, fmt.Errorf("toggle task: %w", err)
		}
		return false, domain.ErrTaskNotFound
	}

	var completed bool
	if err := rows.Scan(&completed); err != nil {
		return false, fmt.Errorf("toggle task: %w", err)
	}
	return completed, rows.Err()
}
