package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jaekwang-park/todo-chat-api/internal/agent"
	"github.com/jaekwang-park/todo-chat-api/internal/http/handler"
	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/service"
)

const (
	chatPattern     = "POST /api/v1/users/{user_id}/chat"
	messagesPattern = "GET /api/v1/users/{user_id}/conversations/{conversation_id}/messages"
)

// newChatRepo owns conversation 7 for user-1 and 8 for user-2; new
// conversations get id 10.
func newChatRepo() *mockConversationRepo {
	return &mockConversationRepo{
		createFn: func(ctx context.Context, userID string) (model.Conversation, error) {
			return model.Conversation{ID: 10, UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
		},
		getByIDFn: func(ctx context.Context, id int64) (model.Conversation, error) {
			switch id {
			case 7:
				return model.Conversation{ID: 7, UserID: "user-1"}, nil
			case 8:
				return model.Conversation{ID: 8, UserID: "user-2"}, nil
			}
			return model.Conversation{}, sql.ErrNoRows
		},
		touchFn: func(ctx context.Context, id int64) error { return nil },
		appendFn: func(ctx context.Context, msg model.Message) (model.Message, error) {
			return msg, nil
		},
		listMessagesFn: func(ctx context.Context, id int64) ([]model.Message, error) {
			return []model.Message{
				{ID: 2, ConversationID: id, Role: model.RoleAssistant, Content: "Done", Timestamp: now.Add(1)},
				{ID: 1, ConversationID: id, Role: model.RoleUser, Content: "add milk", Timestamp: now},
			}, nil
		},
	}
}

func newChatHandler(repo *mockConversationRepo, orch *mockOrchestrator) *handler.ChatHandler {
	return handler.NewChatHandler(service.NewChatService(repo, orch))
}

func TestChatHandler_Chat(t *testing.T) {
	okOrchestrator := &mockOrchestrator{
		processFn: func(ctx context.Context, userID, message string, history []agent.Turn) (agent.Reply, error) {
			return agent.Reply{Response: "Successfully added task 'milk'", ToolCalls: []string{"add_task"}}, nil
		},
	}
	failingOrchestrator := &mockOrchestrator{
		processFn: func(ctx context.Context, userID, message string, history []agent.Turn) (agent.Reply, error) {
			return agent.Reply{}, errors.New("provider timeout")
		},
	}

	tests := []struct {
		name       string
		body       string
		orch       *mockOrchestrator
		wantStatus int
		wantCode   string
		wantConvID int64
	}{
		{name: "new conversation", body: `{"message":"add milk"}`, orch: okOrchestrator, wantStatus: http.StatusOK, wantConvID: 10},
		{name: "existing conversation", body: `{"message":"add milk","conversation_id":7}`, orch: okOrchestrator, wantStatus: http.StatusOK, wantConvID: 7},
		{name: "empty message", body: `{"message":"  "}`, orch: okOrchestrator, wantStatus: http.StatusBadRequest, wantCode: "INVALID_INPUT"},
		{name: "unknown conversation", body: `{"message":"hi","conversation_id":99}`, orch: okOrchestrator, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "foreign conversation", body: `{"message":"hi","conversation_id":8}`, orch: okOrchestrator, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "orchestrator failure", body: `{"message":"hi"}`, orch: failingOrchestrator, wantStatus: http.StatusInternalServerError, wantCode: "PROCESSING_ERROR"},
		{name: "invalid json", body: `{"message":`, orch: okOrchestrator, wantStatus: http.StatusBadRequest, wantCode: "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newChatHandler(newChatRepo(), tt.orch)
			w := serve(chatPattern, h.Chat, http.MethodPost, "/api/v1/users/user-1/chat", tt.body, "user-1")

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				got := decodeError(t, w)
				if got.Code != tt.wantCode {
					t.Errorf("expected code=%s, got %s", tt.wantCode, got.Code)
				}
				if tt.wantCode == "PROCESSING_ERROR" && got.Message != "Error processing message" {
					t.Errorf("unexpected message %q", got.Message)
				}
				return
			}

			var out service.ChatOutput
			if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if out.ConversationID != tt.wantConvID {
				t.Errorf("expected conversation_id=%d, got %d", tt.wantConvID, out.ConversationID)
			}
			if out.Response != "Successfully added task 'milk'" {
				t.Errorf("unexpected response %q", out.Response)
			}
			if len(out.ToolCalls) != 1 || out.ToolCalls[0] != "add_task" {
				t.Errorf("unexpected tool calls %v", out.ToolCalls)
			}
		})
	}
}

func TestChatHandler_Messages(t *testing.T) {
	tests := []struct {
		name       string
		convID     string
		wantStatus int
	}{
		{"own conversation", "7", http.StatusOK},
		{"foreign conversation", "8", http.StatusForbidden},
		{"unknown conversation", "99", http.StatusNotFound},
		{"invalid id", "seven", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newChatHandler(newChatRepo(), &mockOrchestrator{})
			w := serve(messagesPattern, h.Messages, http.MethodGet,
				"/api/v1/users/user-1/conversations/"+tt.convID+"/messages", "", "user-1")

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var entries []struct {
				ID      int64  `json:"id"`
				Role    string `json:"role"`
				Content string `json:"content"`
			}
			if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if len(entries) != 2 || entries[0].ID != 1 || entries[1].ID != 2 {
				t.Errorf("expected chronological entries, got %+v", entries)
			}
		})
	}
}
