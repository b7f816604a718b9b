package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
)

type CreateTaskInput struct {
	Title string
}

// UpdateTaskInput applies only the fields that are set.
type UpdateTaskInput struct {
	Title  *string
	Status *model.TaskStatus
}

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	title, err := model.NormalizeTitle(input.Title)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, userID, title)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	if !filter.IsValid() {
		return nil, fmt.Errorf("%w: invalid status filter %q", ErrInvalidInput, filter)
	}

	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID string, taskID int64) (model.Task, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, storeError("failed to get task", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID string, taskID int64, input UpdateTaskInput) (model.Task, error) {
	if input.Title == nil && input.Status == nil {
		return model.Task{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *input.Status)
	}

	var title string
	if input.Title != nil {
		normalized, err := model.NormalizeTitle(*input.Title)
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		title = normalized
	}

	var task model.Task
	var err error
	if input.Title != nil {
		task, err = s.repo.UpdateTitle(ctx, userID, taskID, title)
		if err != nil {
			return model.Task{}, storeError("failed to update task", err)
		}
	}
	if input.Status != nil {
		task, err = s.repo.SetStatus(ctx, userID, taskID, *input.Status)
		if err != nil {
			return model.Task{}, storeError("failed to update task status", err)
		}
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID string, taskID int64) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		return storeError("failed to delete task", err)
	}
	return nil
}

// ToggleComplete flips a task between pending and completed.
func (s *TaskService) ToggleComplete(ctx context.Context, userID string, taskID int64) (model.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, storeError("failed to get task", err)
	}

	next := model.TaskStatusCompleted
	if existing.Status == model.TaskStatusCompleted {
		next = model.TaskStatusPending
	}

	updated, err := s.repo.SetStatus(ctx, userID, taskID, next)
	if err != nil {
		return model.Task{}, storeError("failed to update task status", err)
	}
	return updated, nil
}

// storeError hides whether a task is missing or owned by someone else.
func storeError(msg string, err error) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrNotOwned) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
