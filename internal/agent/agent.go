// Package agent resolves task intents, either directly from typed requests
// or from free text through a language model, into tool executions.
package agent

import (
	"context"

	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

// ToolExecutor runs a named tool. Implementations must always return a Result.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args tool.Arguments) tool.Result
}

// ToolCatalog is a ToolExecutor that can also describe its tools to a model.
type ToolCatalog interface {
	ToolExecutor
	AllSchemas() []tool.Schema
}
