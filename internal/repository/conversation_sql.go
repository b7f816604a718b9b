package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

const (
	conversationColumns = `id, user_id, created_at, updated_at`
	messageColumns      = `id, conversation_id, role, content, tool_calls, tool_responses, timestamp`
)

type SQLConversationRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLConversation(db *sql.DB) *SQLConversationRepository {
	return &SQLConversationRepository{db: db, now: utcNow}
}

func (r *SQLConversationRepository) Create(ctx context.Context, userID string) (model.Conversation, error) {
	query := `
		INSERT INTO conversations (user_id, created_at, updated_at)
		VALUES ($1, $2, $2)
		RETURNING ` + conversationColumns

	row := r.db.QueryRowContext(ctx, query, userID, r.now())
	return scanConversation(row)
}

func (r *SQLConversationRepository) GetByID(ctx context.Context, conversationID int64) (model.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, conversationID)
	return scanConversation(row)
}

func (r *SQLConversationRepository) Touch(ctx context.Context, conversationID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = $1 WHERE id = $2`, r.now(), conversationID)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLConversationRepository) AppendMessage(ctx context.Context, msg model.Message) (model.Message, error) {
	if !msg.Role.IsValid() {
		return model.Message{}, fmt.Errorf("invalid message role %q", msg.Role)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = r.now()
	}

	query := `
		INSERT INTO messages (conversation_id, role, content, tool_calls, tool_responses, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + messageColumns

	row := r.db.QueryRowContext(ctx, query,
		msg.ConversationID, string(msg.Role), msg.Content,
		nullString(msg.ToolCalls), nullString(msg.ToolResponses), msg.Timestamp,
	)
	return scanMessage(row)
}

func (r *SQLConversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1
		ORDER BY timestamp, id`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

func scanConversation(row scannable) (model.Conversation, error) {
	var c model.Conversation
	var createdAt, updatedAt timestamp
	if err := row.Scan(&c.ID, &c.UserID, &createdAt, &updatedAt); err != nil {
		return model.Conversation{}, fmt.Errorf("failed to scan conversation: %w", err)
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}

func scanMessage(row scannable) (model.Message, error) {
	var m model.Message
	var toolCalls, toolResponses sql.NullString
	var ts timestamp
	err := row.Scan(
		&m.ID, &m.ConversationID, &m.Role, &m.Content,
		&toolCalls, &toolResponses, &ts,
	)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to scan message: %w", err)
	}
	if toolCalls.Valid {
		m.ToolCalls = &toolCalls.String
	}
	if toolResponses.Valid {
		m.ToolResponses = &toolResponses.String
	}
	m.Timestamp = ts.Time
	return m, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ ConversationRepository = (*SQLConversationRepository)(nil)
