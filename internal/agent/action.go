package agent

import (
	"context"
	"fmt"

	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

type ActionKind string

const (
	ActionAdd      ActionKind = "add"
	ActionUpdate   ActionKind = "update"
	ActionDelete   ActionKind = "delete"
	ActionComplete ActionKind = "complete"
)

type ActionParams struct {
	Title  string `json:"title,omitempty"`
	TaskID int64  `json:"task_id,omitempty"`
}

// ActionAgent performs task mutations with fixed tool names.
type ActionAgent struct {
	tools ToolExecutor
}

func NewActionAgent(tools ToolExecutor) *ActionAgent {
	return &ActionAgent{tools: tools}
}

func (a *ActionAgent) Add(ctx context.Context, userID, title string) tool.Result {
	return a.tools.Execute(ctx, string(tool.AddTask), tool.Arguments{
		UserID: userID,
		Title:  tool.WithTitle(title),
	})
}

func (a *ActionAgent) Update(ctx context.Context, userID string, taskID int64, title string) tool.Result {
	return a.tools.Execute(ctx, string(tool.UpdateTask), tool.Arguments{
		UserID: userID,
		TaskID: tool.WithTaskID(taskID),
		Title:  tool.WithTitle(title),
	})
}

func (a *ActionAgent) Delete(ctx context.Context, userID string, taskID int64) tool.Result {
	return a.tools.Execute(ctx, string(tool.DeleteTask), tool.Arguments{
		UserID: userID,
		TaskID: tool.WithTaskID(taskID),
	})
}

func (a *ActionAgent) Complete(ctx context.Context, userID string, taskID int64) tool.Result {
	return a.tools.Execute(ctx, string(tool.CompleteTask), tool.Arguments{
		UserID: userID,
		TaskID: tool.WithTaskID(taskID),
	})
}

// ExecuteAction dispatches a generic action request. Unknown kinds fail
// without reaching the executor.
func (a *ActionAgent) ExecuteAction(ctx context.Context, kind ActionKind, userID string, params ActionParams) tool.Result {
	switch kind {
	case ActionAdd:
		return a.Add(ctx, userID, params.Title)
	case ActionUpdate:
		return a.Update(ctx, userID, params.TaskID, params.Title)
	case ActionDelete:
		return a.Delete(ctx, userID, params.TaskID)
	case ActionComplete:
		return a.Complete(ctx, userID, params.TaskID)
	default:
		return tool.Failure(fmt.Sprintf("Action '%s' not supported", kind))
	}
}
