package handler

import (
	"net/http"

	"github.com/jaekwang-park/todo-chat-api/internal/agent"
	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

// AgentHandler exposes the action and query agents directly. Tool outcomes,
// including failures, are returned as tool results with status 200.
type AgentHandler struct {
	actions *agent.ActionAgent
	queries *agent.QueryAgent
}

func NewAgentHandler(actions *agent.ActionAgent, queries *agent.QueryAgent) *AgentHandler {
	return &AgentHandler{actions: actions, queries: queries}
}

type actionRequest struct {
	Action string `json:"action"`
	TaskID int64  `json:"task_id"`
	Title  string `json:"title"`
}

type searchResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Tasks   []tool.TaskSummary `json:"tasks"`
	Count   int                `json:"count"`
}

// Search handles GET /api/v1/users/{user_id}/tasks/search?q=&status=
func (h *AgentHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	result := h.queries.Search(r.Context(), userID, q.Get("q"), model.StatusFilter(q.Get("status")))

	resp := searchResponse{
		Success: result.Success,
		Message: result.Message,
		Tasks:   result.Tasks,
	}
	if resp.Tasks == nil {
		resp.Tasks = []tool.TaskSummary{}
	}
	if result.Count != nil {
		resp.Count = *result.Count
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *AgentHandler) Action(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}

	var req actionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Action == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "action is required")
		return
	}

	result := h.actions.ExecuteAction(r.Context(), agent.ActionKind(req.Action), userID, agent.ActionParams{
		Title:  req.Title,
		TaskID: req.TaskID,
	})
	WriteJSON(w, http.StatusOK, result)
}
