package agent_test

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/llm"
	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory repository.TaskRepository with the same
// ownership semantics as the SQL implementation.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]model.Task
	order  []int64
	writes int
}

func newMemStore() *memStore {
	return &memStore{tasks: map[int64]model.Task{}}
}

func (s *memStore) lookup(userID string, taskID int64) (model.Task, error) {
	t, ok := s.tasks[taskID]
	if !ok {
		return model.Task{}, fmt.Errorf("task %d: %w", taskID, sql.ErrNoRows)
	}
	if t.UserID != userID {
		return model.Task{}, fmt.Errorf("task %d: %w", taskID, repository.ErrNotOwned)
	}
	return t, nil
}

func (s *memStore) Create(ctx context.Context, userID, title string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := time.Now().UTC()
	t := model.Task{ID: s.nextID, UserID: userID, Title: title, Status: model.TaskStatusPending, CreatedAt: now, UpdatedAt: now}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	s.writes++
	return t, nil
}

func (s *memStore) List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Task{}
	for _, id := range s.order {
		t, ok := s.tasks[id]
		if !ok || t.UserID != userID {
			continue
		}
		if st := filter.Status(); st != nil && t.Status != *st {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *memStore) GetByID(ctx context.Context, userID string, taskID int64) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(userID, taskID)
}

func (s *memStore) UpdateTitle(ctx context.Context, userID string, taskID int64, title string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.lookup(userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	t.Title = title
	s.tasks[taskID] = t
	s.writes++
	return t, nil
}

func (s *memStore) SetStatus(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.lookup(userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	t.Status = status
	s.tasks[taskID] = t
	s.writes++
	return t, nil
}

func (s *memStore) Delete(ctx context.Context, userID string, taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lookup(userID, taskID); err != nil {
		return err
	}
	delete(s.tasks, taskID)
	s.writes++
	return nil
}

// recordingExecutor captures calls without running anything.
type recordingExecutor struct {
	calls  []string
	args   []tool.Arguments
	result tool.Result
}

func (r *recordingExecutor) Execute(ctx context.Context, name string, args tool.Arguments) tool.Result {
	r.calls = append(r.calls, name)
	r.args = append(r.args, args)
	return r.result
}

func (r *recordingExecutor) AllSchemas() []tool.Schema {
	return tool.AllSchemas()
}

// fakeLLM returns scripted responses and records the requests it saw.
type fakeLLM struct {
	completeFn func(ctx context.Context, req llm.Request) (llm.Response, error)
	requests   []llm.Request
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	f.requests = append(f.requests, req)
	return f.completeFn(ctx, req)
}

func respondWith(content string, calls ...llm.ToolCall) *fakeLLM {
	return &fakeLLM{completeFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
		return llm.Response{Content: content, ToolCalls: calls}, nil
	}}
}

func call(name, args string) llm.ToolCall {
	return llm.ToolCall{ID: "call_" + name, Name: name, Arguments: args}
}
