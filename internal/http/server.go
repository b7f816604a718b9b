package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the router behind request id, recovery, logging and auth.
// The write timeout leaves room for a language model round trip.
func NewServer(port string, logger *slog.Logger, svc Services, auth *middleware.Auth) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      NewHandler(logger, svc, auth),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// NewHandler returns the full middleware chain around the router.
func NewHandler(logger *slog.Logger, svc Services, auth *middleware.Auth) http.Handler {
	router := auth.Middleware(NewRouter(svc))
	return middleware.RequestID(middleware.Recovery(logger)(middleware.Logging(logger)(router)))
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
