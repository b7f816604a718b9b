package repository

import (
	"context"
	"errors"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

// ErrNotOwned is returned when a task or conversation exists but belongs to
// another user. Callers must not reveal the difference from sql.ErrNoRows.
var ErrNotOwned = errors.New("resource owned by another user")

// TaskRepository is the task store. Every method is scoped to userID; a
// missing task yields sql.ErrNoRows and a foreign one ErrNotOwned.
type TaskRepository interface {
	Create(ctx context.Context, userID, title string) (model.Task, error)
	List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error)
	GetByID(ctx context.Context, userID string, taskID int64) (model.Task, error)
	UpdateTitle(ctx context.Context, userID string, taskID int64, title string) (model.Task, error)
	SetStatus(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error)
	Delete(ctx context.Context, userID string, taskID int64) error
}
