package handler

import (
	"net/http"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
	"github.com/jaekwang-park/todo-chat-api/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	Title  *string            `json:"title,omitempty"`
	Status *model.TaskStatus `json:"status,omitempty"`
}

// List handles GET /api/v1/users/{user_id}/tasks?status=
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}

	filter := model.StatusFilter(r.URL.Query().Get("status"))
	tasks, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.svc.Create(r.Context(), userID, service.CreateTaskInput{Title: req.Title})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id")
	if !ok {
		return
	}

	task, err := h.svc.GetByID(r.Context(), userID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.svc.Update(r.Context(), userID, taskID, service.UpdateTaskInput{
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete toggles a task between pending and completed.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id")
	if !ok {
		return
	}

	task, err := h.svc.ToggleComplete(r.Context(), userID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}
