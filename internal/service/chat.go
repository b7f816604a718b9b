package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jaekwang-park/todo-chat-api/internal/agent"
	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
)

// Orchestrator produces the assistant's reply to one user message.
type Orchestrator interface {
	ProcessMessage(ctx context.Context, userID, message string, history []agent.Turn) (agent.Reply, error)
}

type ChatInput struct {
	Message        string
	ConversationID *int64
}

type ChatOutput struct {
	ConversationID int64    `json:"conversation_id"`
	Response       string   `json:"response"`
	ToolCalls      []string `json:"tool_calls"`
}

type ChatService struct {
	conversations repository.ConversationRepository
	orchestrator  Orchestrator
}

func NewChatService(conversations repository.ConversationRepository, orchestrator Orchestrator) *ChatService {
	return &ChatService{conversations: conversations, orchestrator: orchestrator}
}

// Chat runs one conversational turn and persists both sides of it. The user
// message is stored before the model is called, so it survives a failed turn.
func (s *ChatService) Chat(ctx context.Context, userID string, input ChatInput) (ChatOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return ChatOutput{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	conv, err := s.conversationFor(ctx, userID, input.ConversationID)
	if err != nil {
		return ChatOutput{}, err
	}

	stored, err := s.conversations.ListMessages(ctx, conv.ID)
	if err != nil {
		return ChatOutput{}, fmt.Errorf("failed to load history: %w", err)
	}
	history := agent.PromptTurns(agent.FormatHistory(stored))

	if _, err := s.conversations.AppendMessage(ctx, model.Message{
		ConversationID: conv.ID,
		Role:           model.RoleUser,
		Content:        message,
	}); err != nil {
		return ChatOutput{}, fmt.Errorf("failed to store user message: %w", err)
	}

	reply, err := s.orchestrator.ProcessMessage(ctx, userID, message, history)
	if err != nil {
		return ChatOutput{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	assistant := model.Message{
		ConversationID: conv.ID,
		Role:           model.RoleAssistant,
		Content:        reply.Response,
	}
	if len(reply.ToolCalls) > 0 {
		if assistant.ToolCalls, err = encodeJSON(reply.ToolCalls); err != nil {
			return ChatOutput{}, err
		}
		if assistant.ToolResponses, err = encodeJSON(reply.ToolResults); err != nil {
			return ChatOutput{}, err
		}
	}
	if _, err := s.conversations.AppendMessage(ctx, assistant); err != nil {
		return ChatOutput{}, fmt.Errorf("failed to store assistant message: %w", err)
	}
	if err := s.conversations.Touch(ctx, conv.ID); err != nil {
		return ChatOutput{}, fmt.Errorf("failed to update conversation: %w", err)
	}

	toolCalls := reply.ToolCalls
	if toolCalls == nil {
		toolCalls = []string{}
	}
	return ChatOutput{
		ConversationID: conv.ID,
		Response:       reply.Response,
		ToolCalls:      toolCalls,
	}, nil
}

// History returns a conversation's messages in chronological order.
func (s *ChatService) History(ctx context.Context, userID string, conversationID int64) ([]agent.HistoryEntry, error) {
	conv, err := s.ownedConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	stored, err := s.conversations.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return agent.FormatHistory(stored), nil
}

func (s *ChatService) conversationFor(ctx context.Context, userID string, conversationID *int64) (model.Conversation, error) {
	if conversationID == nil {
		conv, err := s.conversations.Create(ctx, userID)
		if err != nil {
			return model.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
		}
		return conv, nil
	}
	return s.ownedConversation(ctx, userID, *conversationID)
}

func (s *ChatService) ownedConversation(ctx context.Context, userID string, conversationID int64) (model.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Conversation{}, fmt.Errorf("%w: conversation not found", ErrNotFound)
		}
		return model.Conversation{}, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conv.UserID != userID {
		return model.Conversation{}, fmt.Errorf("%w: access denied to this conversation", ErrForbidden)
	}
	return conv, nil
}

func encodeJSON(v any) (*string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool history: %w", err)
	}
	s := string(b)
	return &s, nil
}
