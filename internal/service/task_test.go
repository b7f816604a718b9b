package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
	"github.com/jaekwang-park/todo-chat-api/internal/service"
)

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     service.CreateTaskInput
		repoErr   error
		wantTitle string
		wantErr   string
	}{
		{name: "success", input: service.CreateTaskInput{Title: "Buy groceries"}, wantTitle: "Buy groceries"},
		{name: "trims title", input: service.CreateTaskInput{Title: "  Buy groceries  "}, wantTitle: "Buy groceries"},
		{name: "empty title", input: service.CreateTaskInput{Title: "   "}, wantErr: "invalid input"},
		{name: "repo error", input: service.CreateTaskInput{Title: "Buy groceries"}, repoErr: fmt.Errorf("db error"), wantErr: "failed to create task"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				createFn: func(ctx context.Context, userID, title string) (model.Task, error) {
					if tt.repoErr != nil {
						return model.Task{}, tt.repoErr
					}
					task := sampleTask()
					task.Title = title
					return task, nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.Create(context.Background(), "user-1", tt.input)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !containsStr(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("expected title=%q, got %q", tt.wantTitle, got.Title)
			}
		})
	}
}

func TestTaskService_List(t *testing.T) {
	tests := []struct {
		name    string
		filter  model.StatusFilter
		repoErr error
		wantErr error
	}{
		{name: "all", filter: model.StatusFilterAll},
		{name: "default", filter: ""},
		{name: "pending", filter: model.StatusFilterPending},
		{name: "invalid filter", filter: "archived", wantErr: service.ErrInvalidInput},
		{name: "repo error", filter: model.StatusFilterAll, repoErr: fmt.Errorf("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter model.StatusFilter
			repo := &mockTaskRepo{
				listFn: func(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
					gotFilter = filter
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return []model.Task{sampleTask()}, nil
				},
			}
			svc := service.NewTaskService(repo)
			tasks, err := svc.List(context.Background(), "user-1", tt.filter)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.repoErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tasks) != 1 {
				t.Errorf("expected 1 task, got %d", len(tasks))
			}
			if gotFilter != tt.filter {
				t.Errorf("expected filter %q passed through, got %q", tt.filter, gotFilter)
			}
		})
	}
}

func TestTaskService_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"success", nil, nil},
		{"not found", fmt.Errorf("task 1: %w", sql.ErrNoRows), service.ErrNotFound},
		{"not owned", fmt.Errorf("task 1: %w", repository.ErrNotOwned), service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				getByIDFn: func(ctx context.Context, userID string, taskID int64) (model.Task, error) {
					if tt.repoErr != nil {
						return model.Task{}, tt.repoErr
					}
					return sampleTask(), nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.GetByID(context.Background(), "user-1", 1)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != 1 {
				t.Errorf("expected id=1, got %d", got.ID)
			}
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	title := "Updated title"
	emptyTitle := " "
	completed := model.TaskStatusCompleted
	bogus := model.TaskStatus("done")

	tests := []struct {
		name       string
		input      service.UpdateTaskInput
		updateErr  error
		wantErr    string
		wantTitle  string
		wantStatus model.TaskStatus
	}{
		{name: "title", input: service.UpdateTaskInput{Title: &title}, wantTitle: title, wantStatus: model.TaskStatusPending},
		{name: "status", input: service.UpdateTaskInput{Status: &completed}, wantTitle: "Buy groceries", wantStatus: completed},
		{name: "both", input: service.UpdateTaskInput{Title: &title, Status: &completed}, wantTitle: title, wantStatus: completed},
		{name: "nothing", input: service.UpdateTaskInput{}, wantErr: "nothing to update"},
		{name: "empty title", input: service.UpdateTaskInput{Title: &emptyTitle}, wantErr: "invalid input"},
		{name: "invalid status", input: service.UpdateTaskInput{Status: &bogus}, wantErr: "invalid input"},
		{name: "not owned", input: service.UpdateTaskInput{Title: &title}, updateErr: repository.ErrNotOwned, wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := sampleTask()
			repo := &mockTaskRepo{
				updateTitleFn: func(ctx context.Context, userID string, taskID int64, title string) (model.Task, error) {
					if tt.updateErr != nil {
						return model.Task{}, tt.updateErr
					}
					current.Title = title
					return current, nil
				},
				setStatusFn: func(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error) {
					current.Status = status
					return current, nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.Update(context.Background(), "user-1", 1, tt.input)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !containsStr(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("expected title=%q, got %q", tt.wantTitle, got.Title)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("expected status=%s, got %s", tt.wantStatus, got.Status)
			}
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"success", nil, nil},
		{"not found", sql.ErrNoRows, service.ErrNotFound},
		{"not owned", repository.ErrNotOwned, service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				deleteFn: func(ctx context.Context, userID string, taskID int64) error {
					return tt.repoErr
				},
			}
			svc := service.NewTaskService(repo)
			err := svc.Delete(context.Background(), "user-1", 1)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("repo error", func(t *testing.T) {
		repo := &mockTaskRepo{
			deleteFn: func(ctx context.Context, userID string, taskID int64) error {
				return fmt.Errorf("db error")
			},
		}
		err := service.NewTaskService(repo).Delete(context.Background(), "user-1", 1)
		if err == nil || errors.Is(err, service.ErrNotFound) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestTaskService_ToggleComplete(t *testing.T) {
	tests := []struct {
		name string
		from model.TaskStatus
		want model.TaskStatus
	}{
		{"pending to completed", model.TaskStatusPending, model.TaskStatusCompleted},
		{"completed to pending", model.TaskStatusCompleted, model.TaskStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				getByIDFn: func(ctx context.Context, userID string, taskID int64) (model.Task, error) {
					task := sampleTask()
					task.Status = tt.from
					return task, nil
				},
				setStatusFn: func(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error) {
					task := sampleTask()
					task.Status = status
					return task, nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.ToggleComplete(context.Background(), "user-1", 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != tt.want {
				t.Errorf("expected status=%s, got %s", tt.want, got.Status)
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		repo := &mockTaskRepo{
			getByIDFn: func(ctx context.Context, userID string, taskID int64) (model.Task, error) {
				return model.Task{}, sql.ErrNoRows
			},
		}
		_, err := service.NewTaskService(repo).ToggleComplete(context.Background(), "user-1", 1)
		if !errors.Is(err, service.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
