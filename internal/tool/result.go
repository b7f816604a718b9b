package tool

import "github.com/jaekwang-park/todo-chat-api/internal/model"

// TaskSummary is the per-task view carried in list results.
type TaskSummary struct {
	ID     int64            `json:"id"`
	Title  string           `json:"title"`
	Status model.TaskStatus `json:"status"`
}

// Result is returned by every tool invocation, successful or not.
type Result struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	TaskID  *int64        `json:"task_id,omitempty"`
	Tasks   []TaskSummary `json:"tasks,omitempty"`
	Count   *int          `json:"count,omitempty"`
}

func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

func summarize(tasks []model.Task) []TaskSummary {
	out := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskSummary{ID: t.ID, Title: t.Title, Status: t.Status})
	}
	return out
}
