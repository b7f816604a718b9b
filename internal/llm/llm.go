// Package llm talks to an OpenAI-compatible chat completion provider.
package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// ToolDefinition is a function the model may call; Parameters is a JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is one function invocation requested by the model. Arguments is
// the raw JSON string the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type Request struct {
	Messages   []Message
	Tools      []ToolDefinition
	ToolChoice string
}

type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Client performs a single non-streaming completion.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
