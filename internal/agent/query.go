package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

// QueryAgent reads and filters task lists.
type QueryAgent struct {
	tools ToolExecutor
}

func NewQueryAgent(tools ToolExecutor) *QueryAgent {
	return &QueryAgent{tools: tools}
}

// List defaults an empty filter to all.
func (q *QueryAgent) List(ctx context.Context, userID string, filter model.StatusFilter) tool.Result {
	if filter == "" {
		filter = model.StatusFilterAll
	}
	return q.tools.Execute(ctx, string(tool.ListTasks), tool.Arguments{
		UserID:       userID,
		StatusFilter: string(filter),
	})
}

func (q *QueryAgent) Pending(ctx context.Context, userID string) tool.Result {
	return q.List(ctx, userID, model.StatusFilterPending)
}

func (q *QueryAgent) Completed(ctx context.Context, userID string) tool.Result {
	return q.List(ctx, userID, model.StatusFilterCompleted)
}

func (q *QueryAgent) All(ctx context.Context, userID string) tool.Result {
	return q.List(ctx, userID, model.StatusFilterAll)
}

// Search matches term against task titles case-insensitively, keeping the
// order of the underlying list. A failed list is returned unchanged.
func (q *QueryAgent) Search(ctx context.Context, userID, term string, filter model.StatusFilter) tool.Result {
	listed := q.List(ctx, userID, filter)
	if !listed.Success {
		return listed
	}

	needle := strings.ToLower(term)
	matches := make([]tool.TaskSummary, 0, len(listed.Tasks))
	for _, t := range listed.Tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			matches = append(matches, t)
		}
	}

	count := len(matches)
	return tool.Result{
		Success: true,
		Message: fmt.Sprintf("Found %d matching task(s)", count),
		Tasks:   matches,
		Count:   &count,
	}
}
