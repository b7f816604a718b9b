package repository

import (
	"context"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

// ConversationRepository stores conversations and their append-only messages.
// GetByID is not user-scoped: ownership is checked by the caller so that a
// foreign conversation can be reported as forbidden.
type ConversationRepository interface {
	Create(ctx context.Context, userID string) (model.Conversation, error)
	GetByID(ctx context.Context, conversationID int64) (model.Conversation, error)
	Touch(ctx context.Context, conversationID int64) error
	AppendMessage(ctx context.Context, msg model.Message) (model.Message, error)
	ListMessages(ctx context.Context, conversationID int64) ([]model.Message, error)
}
