package tool

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Arguments is the decoded argument payload of a tool call. Optional fields
// are pointers so a missing argument can be told apart from a zero value.
type Arguments struct {
	UserID       string  `json:"user_id"`
	Title        *string `json:"title,omitempty"`
	TaskID       *int64  `json:"task_id,omitempty"`
	StatusFilter string  `json:"status_filter,omitempty"`
}

// DecodeArguments parses the JSON argument string a model produced. An empty
// payload decodes to zero Arguments.
func DecodeArguments(payload string) (Arguments, error) {
	var args Arguments
	if strings.TrimSpace(payload) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(payload), &args); err != nil {
		return Arguments{}, fmt.Errorf("failed to decode tool arguments: %w", err)
	}
	return args, nil
}

// WithTitle and WithTaskID build optional arguments inline.
func WithTitle(title string) *string { return &title }

func WithTaskID(id int64) *int64 { return &id }
