package tool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
)

// Executor runs the fixed task tools against a task store. Every call
// returns a Result; nothing escapes as an error or panic.
type Executor struct {
	store  repository.TaskRepository
	logger *slog.Logger
}

func NewExecutor(store repository.TaskRepository, logger *slog.Logger) *Executor {
	return &Executor{store: store, logger: logger}
}

func (e *Executor) SchemaFor(name Name) (Schema, error) {
	return SchemaFor(name)
}

func (e *Executor) AllSchemas() []Schema {
	return AllSchemas()
}

func (e *Executor) Execute(ctx context.Context, name string, args Arguments) (result Result) {
	toolName, err := ParseName(name)
	if err != nil {
		return Failure(fmt.Sprintf("Tool '%s' not found", name))
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool panicked", "tool", name, "panic", r)
			result = Failure(fmt.Sprintf("Error executing tool '%s': %v", name, r))
		}
	}()

	result, err = e.dispatch(ctx, toolName, args)
	if err != nil {
		e.logger.Error("tool failed", "tool", name, "user_id", args.UserID, "error", err)
		return Failure(fmt.Sprintf("Error executing tool '%s': %v", name, err))
	}
	return result
}

func (e *Executor) dispatch(ctx context.Context, name Name, args Arguments) (Result, error) {
	switch name {
	case AddTask:
		return e.addTask(ctx, args)
	case ListTasks:
		return e.listTasks(ctx, args)
	case CompleteTask:
		return e.completeTask(ctx, args)
	case DeleteTask:
		return e.deleteTask(ctx, args)
	case UpdateTask:
		return e.updateTask(ctx, args)
	default:
		return Failure(fmt.Sprintf("Tool '%s' not found", name)), nil
	}
}

func (e *Executor) addTask(ctx context.Context, args Arguments) (Result, error) {
	if args.Title == nil {
		return Result{}, missingArgument("title")
	}
	title, err := model.NormalizeTitle(*args.Title)
	if err != nil {
		return Failure(fmt.Sprintf("Invalid title: %v", err)), nil
	}

	task, err := e.store.Create(ctx, args.UserID, title)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully added task '%s'", task.Title),
		TaskID:  WithTaskID(task.ID),
	}, nil
}

func (e *Executor) listTasks(ctx context.Context, args Arguments) (Result, error) {
	filter := model.StatusFilter(args.StatusFilter)
	if !filter.IsValid() {
		return Failure(fmt.Sprintf("Invalid status filter '%s'", args.StatusFilter)), nil
	}

	tasks, err := e.store.List(ctx, args.UserID, filter)
	if err != nil {
		return Result{}, err
	}

	count := len(tasks)
	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %d task(s)", count),
		Tasks:   summarize(tasks),
		Count:   &count,
	}, nil
}

func (e *Executor) completeTask(ctx context.Context, args Arguments) (Result, error) {
	if args.TaskID == nil {
		return Result{}, missingArgument("task_id")
	}
	taskID := *args.TaskID

	task, err := e.store.GetByID(ctx, args.UserID, taskID)
	if err != nil {
		return e.lookupFailure(args.UserID, taskID, err)
	}
	if task.Status == model.TaskStatusCompleted {
		return Result{
			Success: true,
			Message: fmt.Sprintf("Task '%s' is already completed", task.Title),
			TaskID:  WithTaskID(task.ID),
		}, nil
	}

	task, err = e.store.SetStatus(ctx, args.UserID, taskID, model.TaskStatusCompleted)
	if err != nil {
		return e.lookupFailure(args.UserID, taskID, err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully marked task '%s' as completed", task.Title),
		TaskID:  WithTaskID(task.ID),
	}, nil
}

func (e *Executor) deleteTask(ctx context.Context, args Arguments) (Result, error) {
	if args.TaskID == nil {
		return Result{}, missingArgument("task_id")
	}
	taskID := *args.TaskID

	task, err := e.store.GetByID(ctx, args.UserID, taskID)
	if err != nil {
		return e.lookupFailure(args.UserID, taskID, err)
	}
	if err := e.store.Delete(ctx, args.UserID, taskID); err != nil {
		return e.lookupFailure(args.UserID, taskID, err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully deleted task '%s'", task.Title),
		TaskID:  WithTaskID(taskID),
	}, nil
}

func (e *Executor) updateTask(ctx context.Context, args Arguments) (Result, error) {
	if args.TaskID == nil {
		return Result{}, missingArgument("task_id")
	}
	if args.Title == nil {
		return Result{}, missingArgument("title")
	}
	title, err := model.NormalizeTitle(*args.Title)
	if err != nil {
		return Failure(fmt.Sprintf("Invalid title: %v", err)), nil
	}

	task, err := e.store.UpdateTitle(ctx, args.UserID, *args.TaskID, title)
	if err != nil {
		return e.lookupFailure(args.UserID, *args.TaskID, err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully updated task to '%s'", task.Title),
		TaskID:  WithTaskID(task.ID),
	}, nil
}

// lookupFailure turns a missing or foreign task into the same failed Result;
// any other store error is passed back to Execute.
func (e *Executor) lookupFailure(userID string, taskID int64, err error) (Result, error) {
	switch {
	case errors.Is(err, repository.ErrNotOwned):
		e.logger.Warn("task access denied", "user_id", userID, "task_id", taskID)
	case errors.Is(err, sql.ErrNoRows):
	default:
		return Result{}, err
	}
	return Failure(fmt.Sprintf("Task with ID %d not found", taskID)), nil
}

func missingArgument(name string) error {
	return fmt.Errorf("missing required argument %q", name)
}
