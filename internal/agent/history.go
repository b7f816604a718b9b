package agent

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

// HistoryEntry is a persisted message prepared for clients. ToolCalls and
// ToolResponses hold decoded JSON, or the stored text when it is not JSON.
type HistoryEntry struct {
	ID            int64      `json:"id"`
	Role          model.Role `json:"role"`
	Content       string     `json:"content"`
	Timestamp     time.Time  `json:"timestamp"`
	ToolCalls     any        `json:"tool_calls,omitempty"`
	ToolResponses any        `json:"tool_responses,omitempty"`
}

// FormatHistory orders messages by timestamp, keeping the input order for ties.
func FormatHistory(messages []model.Message) []HistoryEntry {
	sorted := make([]model.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	entries := make([]HistoryEntry, 0, len(sorted))
	for _, m := range sorted {
		entries = append(entries, HistoryEntry{
			ID:            m.ID,
			Role:          m.Role,
			Content:       m.Content,
			Timestamp:     m.Timestamp,
			ToolCalls:     decodeStored(m.ToolCalls),
			ToolResponses: decodeStored(m.ToolResponses),
		})
	}
	return entries
}

// PromptTurns drops everything the model does not need from the history.
func PromptTurns(entries []HistoryEntry) []Turn {
	turns := make([]Turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, Turn{Role: string(e.Role), Content: e.Content})
	}
	return turns
}

func decodeStored(raw *string) any {
	if raw == nil || *raw == "" {
		return nil
	}
	if !json.Valid([]byte(*raw)) {
		return *raw
	}
	var v any
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		return *raw
	}
	return v
}
