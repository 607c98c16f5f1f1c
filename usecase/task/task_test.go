package task

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

// fakeTasks keeps tasks in insertion order; higher ids are newer.
type fakeTasks struct {
	tasks  []domain.Task
	nextID int64
	last   repository.TaskFilter
}

func (f *fakeTasks) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	f.last = filter
	var out []domain.Task
	for _, t := range f.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Priority != "" && t.Priority != string(filter.Priority) {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	f.nextID++
	task.ID = f.nextID
	f.tasks = append(f.tasks, *task)
	return task, nil
}

func (f *fakeTasks) Delete(_ context.Context, id, userID int64) (int64, error) {
	for i, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTasks) ToggleCompletion(_ context.Context, id, userID int64) (bool, error) {
	for i, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			f.tasks[i].Completed = !t.Completed
			return f.tasks[i].Completed, nil
		}
	}
	return false, domain.ErrTaskNotFound
}

func seed(t *testing.T, uc *UseCase, userID int64, titles map[string]string) {
	t.Helper()
	for title, priority := range titles {
		if _, err := uc.CreateTask(context.Background(), &domain.Task{UserID: userID, Title: title, Priority: priority}); err != nil {
			t.Fatalf("CreateTask(%s) error = %v", title, err)
		}
	}
}

func TestListTasksPriorityFilter(t *testing.T) {
	repo := &fakeTasks{}
	uc := New(repo, nil)
	seed(t, uc, 1, map[string]string{"a": "low", "b": "high", "c": ""})

	tests := []struct {
		priority string
		want     int
	}{
		{priority: "", want: 3},
		{priority: "low", want: 1},
		{priority: "high", want: 1},
		{priority: "medium", want: 0},
		{priority: "urgent", want: 3},
		{priority: "LOW", want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			got, err := uc.ListTasks(context.Background(), 1, tt.priority)
			if err != nil {
				t.Fatalf("ListTasks() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ListTasks(%q) returned %d tasks, want %d", tt.priority, len(got), tt.want)
			}
		})
	}
}

func TestInvalidPriorityMatchesNoFilter(t *testing.T) {
	repo := &fakeTasks{}
	uc := New(repo, nil)
	ctx := context.Background()

	if _, err := uc.ListTasks(ctx, 1, "bogus"); err != nil {
		t.Fatal(err)
	}
	invalid := repo.last
	if _, err := uc.ListTasks(ctx, 1, ""); err != nil {
		t.Fatal(err)
	}
	if invalid != repo.last {
		t.Errorf("invalid filter %+v differs from no filter %+v", invalid, repo.last)
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	uc := New(&fakeTasks{}, nil)
	if _, err := uc.CreateTask(context.Background(), &domain.Task{UserID: 1}); !errors.Is(err, domain.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := uc.CreateTask(context.Background(), nil); !errors.Is(err, domain.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired for nil task, got %v", err)
	}
}

func TestToggleAndStatusLists(t *testing.T) {
	repo := &fakeTasks{}
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, &domain.Task{UserID: 1, Title: "Buy milk", Priority: "low", Completed: true})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if created.Completed {
		t.Fatal("new tasks start incomplete")
	}

	status, err := uc.ToggleCompletion(ctx, created.ID, 1)
	if err != nil || !status {
		t.Fatalf("ToggleCompletion() = %v, %v", status, err)
	}

	done, _ := uc.ListByStatus(ctx, 1, true)
	active, _ := uc.ListByStatus(ctx, 1, false)
	if len(done) != 1 || len(active) != 0 {
		t.Errorf("completed=%d active=%d, want 1 and 0", len(done), len(active))
	}

	status, err = uc.ToggleCompletion(ctx, created.ID, 1)
	if err != nil || status {
		t.Fatalf("second ToggleCompletion() = %v, %v", status, err)
	}

	if _, err := uc.ToggleCompletion(ctx, created.ID, 2); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	repo := &fakeTasks{}
	uc := New(repo, nil)
	ctx := context.Background()
	created, _ := uc.CreateTask(ctx, &domain.Task{UserID: 1, Title: "x"})

	for i, want := range []int64{1, 0} {
		affected, err := uc.DeleteTask(ctx, created.ID, 1)
		if err != nil || affected != want {
			t.Errorf("delete #%d = %d, %v; want %d, nil", i+1, affected, err, want)
		}
	}
}
