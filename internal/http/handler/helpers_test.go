package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/agent"
	"github.com/jaekwang-park/todo-chat-api/internal/cognito"
	"github.com/jaekwang-park/todo-chat-api/internal/middleware"
	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

type mockTaskRepo struct {
	createFn      func(ctx context.Context, userID, title string) (model.Task, error)
	listFn        func(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error)
	getByIDFn     func(ctx context.Context, userID string, taskID int64) (model.Task, error)
	updateTitleFn func(ctx context.Context, userID string, taskID int64, title string) (model.Task, error)
	setStatusFn   func(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error)
	deleteFn      func(ctx context.Context, userID string, taskID int64) error
}

func (m *mockTaskRepo) Create(ctx context.Context, userID, title string) (model.Task, error) {
	return m.createFn(ctx, userID, title)
}
func (m *mockTaskRepo) List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	return m.listFn(ctx, userID, filter)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, userID string, taskID int64) (model.Task, error) {
	return m.getByIDFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) UpdateTitle(ctx context.Context, userID string, taskID int64, title string) (model.Task, error) {
	return m.updateTitleFn(ctx, userID, taskID, title)
}
func (m *mockTaskRepo) SetStatus(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error) {
	return m.setStatusFn(ctx, userID, taskID, status)
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID string, taskID int64) error {
	return m.deleteFn(ctx, userID, taskID)
}

type mockConversationRepo struct {
	createFn       func(ctx context.Context, userID string) (model.Conversation, error)
	getByIDFn      func(ctx context.Context, conversationID int64) (model.Conversation, error)
	touchFn        func(ctx context.Context, conversationID int64) error
	appendFn       func(ctx context.Context, msg model.Message) (model.Message, error)
	listMessagesFn func(ctx context.Context, conversationID int64) ([]model.Message, error)
}

func (m *mockConversationRepo) Create(ctx context.Context, userID string) (model.Conversation, error) {
	return m.createFn(ctx, userID)
}
func (m *mockConversationRepo) GetByID(ctx context.Context, conversationID int64) (model.Conversation, error) {
	return m.getByIDFn(ctx, conversationID)
}
func (m *mockConversationRepo) Touch(ctx context.Context, conversationID int64) error {
	return m.touchFn(ctx, conversationID)
}
func (m *mockConversationRepo) AppendMessage(ctx context.Context, msg model.Message) (model.Message, error) {
	return m.appendFn(ctx, msg)
}
func (m *mockConversationRepo) ListMessages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	return m.listMessagesFn(ctx, conversationID)
}

type mockUserRepo struct {
	getOrCreateFn func(ctx context.Context, id, email string) (model.User, error)
	getByIDFn     func(ctx context.Context, id string) (model.User, error)
}

func (m *mockUserRepo) GetOrCreate(ctx context.Context, id, email string) (model.User, error) {
	return m.getOrCreateFn(ctx, id, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return m.getByIDFn(ctx, id)
}

type mockOrchestrator struct {
	processFn func(ctx context.Context, userID, message string, history []agent.Turn) (agent.Reply, error)
}

func (m *mockOrchestrator) ProcessMessage(ctx context.Context, userID, message string, history []agent.Turn) (agent.Reply, error) {
	return m.processFn(ctx, userID, message, history)
}

type mockIdentityProvider struct {
	signUpFn        func(ctx context.Context, input cognito.SignUpInput) (cognito.SignUpOutput, error)
	confirmSignUpFn func(ctx context.Context, input cognito.ConfirmSignUpInput) error
	loginFn         func(ctx context.Context, input cognito.LoginInput) (cognito.Tokens, error)
	refreshFn       func(ctx context.Context, input cognito.RefreshInput) (cognito.Tokens, error)
}

func (m *mockIdentityProvider) SignUp(ctx context.Context, input cognito.SignUpInput) (cognito.SignUpOutput, error) {
	return m.signUpFn(ctx, input)
}
func (m *mockIdentityProvider) ConfirmSignUp(ctx context.Context, input cognito.ConfirmSignUpInput) error {
	return m.confirmSignUpFn(ctx, input)
}
func (m *mockIdentityProvider) Login(ctx context.Context, input cognito.LoginInput) (cognito.Tokens, error) {
	return m.loginFn(ctx, input)
}
func (m *mockIdentityProvider) Refresh(ctx context.Context, input cognito.RefreshInput) (cognito.Tokens, error) {
	return m.refreshFn(ctx, input)
}

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleTask() model.Task {
	return model.Task{
		ID:        1,
		UserID:    "user-1",
		Title:     "Buy groceries",
		Status:    model.TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve routes one request through a mux holding only pattern, as the
// authenticated caller userID.
func serve(pattern string, h http.HandlerFunc, method, target, body, userID string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}
