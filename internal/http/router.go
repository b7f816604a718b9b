package http

import (
	"net/http"

	"github.com/jaekwang-park/todo-chat-api/internal/agent"
	"github.com/jaekwang-park/todo-chat-api/internal/http/handler"
	"github.com/jaekwang-park/todo-chat-api/internal/service"
)

// Services is everything the router exposes. Auth may be nil when no
// identity provider is configured; the auth endpoints then answer 503.
type Services struct {
	DB      handler.Pinger
	Tasks   *service.TaskService
	Users   *service.UserService
	Chat    *service.ChatService
	Auth    *service.AuthService
	Actions *agent.ActionAgent
	Queries *agent.QueryAgent
}

func NewRouter(svc Services) http.Handler {
	mux := http.NewServeMux()

	// Health check stays outside /api/v1 for load balancer probes
	mux.Handle("/health", handler.NewHealthHandler(svc.DB))

	if svc.Auth != nil {
		auth := handler.NewAuthHandler(svc.Auth)
		mux.HandleFunc("POST /api/v1/auth/signup", auth.SignUp)
		mux.HandleFunc("POST /api/v1/auth/confirm-signup", auth.ConfirmSignUp)
		mux.HandleFunc("POST /api/v1/auth/login", auth.Login)
		mux.HandleFunc("POST /api/v1/auth/refresh", auth.Refresh)
	} else {
		mux.HandleFunc("/api/v1/auth/", func(w http.ResponseWriter, r *http.Request) {
			handler.WriteError(w, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "authentication provider is not configured")
		})
	}

	users := handler.NewUserHandler(svc.Users)
	mux.HandleFunc("GET /api/v1/users/{user_id}", users.Get)

	tasks := handler.NewTaskHandler(svc.Tasks)
	mux.HandleFunc("GET /api/v1/users/{user_id}/tasks", tasks.List)
	mux.HandleFunc("POST /api/v1/users/{user_id}/tasks", tasks.Create)
	mux.HandleFunc("GET /api/v1/users/{user_id}/tasks/{task_id}", tasks.Get)
	mux.HandleFunc("PUT /api/v1/users/{user_id}/tasks/{task_id}", tasks.Update)
	mux.HandleFunc("DELETE /api/v1/users/{user_id}/tasks/{task_id}", tasks.Delete)
	mux.HandleFunc("PATCH /api/v1/users/{user_id}/tasks/{task_id}/complete", tasks.Complete)

	agents := handler.NewAgentHandler(svc.Actions, svc.Queries)
	mux.HandleFunc("GET /api/v1/users/{user_id}/tasks/search", agents.Search)
	mux.HandleFunc("POST /api/v1/users/{user_id}/actions", agents.Action)

	chat := handler.NewChatHandler(svc.Chat)
	mux.HandleFunc("POST /api/v1/users/{user_id}/chat", chat.Chat)
	mux.HandleFunc("GET /api/v1/users/{user_id}/conversations/{conversation_id}/messages", chat.Messages)

	return mux
}
