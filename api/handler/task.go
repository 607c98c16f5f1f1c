package handler

import (
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/api/view"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, views *view.Renderer, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, views, logger),
		uc:          uc,
	}
}

// Index lists all of the user's tasks, optionally narrowed to one priority.
// GET / and GET /filter/{priority}
func (h *TaskHandler) Index(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	priority := pathValue(ctx, "priority")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, identity.UserID, priority)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	data := transport.TaskListPage{
		Page:  h.page(ctx, "My Tasks", "home"),
		Tasks: tasks,
	}
	if p, ok := domain.ParsePriority(priority); ok {
		data.CurrentFilter = string(p)
	}
	h.render(ctx, view.PageIndex, data)
}

// Active lists tasks that are not completed.
// GET /active
func (h *TaskHandler) Active(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	h.byStatus(ctx, identity, false, "Active Tasks", "active")
}

// Completed lists completed tasks.
// GET /completed
func (h *TaskHandler) Completed(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	h.byStatus(ctx, identity, true, "Completed Tasks", "completed")
}

func (h *TaskHandler) byStatus(ctx *fasthttp.RequestCtx, identity domain.Identity, completed bool, title, active string) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListByStatus(stdCtx, identity.UserID, completed)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	h.render(ctx, view.PageTasks, transport.TaskListPage{
		Page:  h.page(ctx, title, active),
		Tasks: tasks,
	})
}

// Submit creates a task from the form.
// POST /submit
func (h *TaskHandler) Submit(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	form := transport.TaskForm{
		Title:       formValue(ctx, "title"),
		Description: formValue(ctx, "description"),
		DueDate:     formValue(ctx, "due_date"),
		Priority:    formValue(ctx, "priority"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.CreateTask(stdCtx, &domain.Task{
		UserID:      identity.UserID,
		Title:       form.Title,
		Description: form.Description,
		DueDate:     form.DueDate,
		Priority:    form.Priority,
	})
	switch {
	case err == nil:
		h.notify(ctx, domain.FlashSuccess, "Task added successfully!", "/success")
	case errors.Is(err, domain.ErrTitleRequired):
		h.notify(ctx, domain.FlashError, "Title is required!", "/")
	default:
		h.fail(ctx, err)
	}
}

// Success confirms a created task.
// GET /success
func (h *TaskHandler) Success(ctx *fasthttp.RequestCtx, _ domain.Identity) {
	h.render(ctx, view.PageSuccess, h.page(ctx, "Task added", "home"))
}

// Delete removes a task. Unknown ids still report success.
// POST /delete/{id}
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.NotFound()
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.DeleteTask(stdCtx, id, identity.UserID); err != nil {
		h.fail(ctx, err)
		return
	}
	h.notify(ctx, domain.FlashSuccess, "Task deleted successfully!", "/")
}

// Complete toggles a task between complete and incomplete.
// POST /complete/{id}
func (h *TaskHandler) Complete(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.NotFound()
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completed, err := h.uc.ToggleCompletion(stdCtx, id, identity.UserID)
	switch {
	case err == nil:
		state := "incomplete"
		if completed {
			state = "complete"
		}
		h.notify(ctx, domain.FlashSuccess, "Task marked as "+state+"!", "/")
	case errors.Is(err, domain.ErrTaskNotFound):
		h.notify(ctx, domain.FlashError, "Task not found!", "/")
	default:
		h.fail(ctx, err)
	}
}
