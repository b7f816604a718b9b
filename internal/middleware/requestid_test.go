package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-chat-api/internal/middleware"
)

func TestRequestID(t *testing.T) {
	clientID := uuid.NewString()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generated when absent", "", false},
		{"reuses valid client id", clientID, true},
		{"replaces malformed id", "not-a-uuid; drop table", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.RequestIDFrom(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			middleware.RequestID(inner).ServeHTTP(w, req)

			got := w.Header().Get(middleware.RequestIDHeader)
			if got != seen {
				t.Errorf("header %q does not match context %q", got, seen)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("expected uuid request id, got %q", got)
			}
			if tt.wantSame && got != tt.incoming {
				t.Errorf("expected %q to be reused, got %q", tt.incoming, got)
			}
			if !tt.wantSame && got == tt.incoming {
				t.Errorf("expected a fresh id, got %q", got)
			}
		})
	}
}
