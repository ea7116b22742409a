package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", status: http.StatusServiceUnavailable, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			r := chi.NewRouter()
			r.Use(chimiddleware.RequestID)
			r.Use(Logger(log))
			r.Get("/api/menu/{id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/menu/item1", nil)
			req.Header.Set(RequestIDHeader, "abc")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get(RequestIDHeader); got != "abc" {
				t.Errorf("%s = %q, want abc", RequestIDHeader, got)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["request_id"] != "abc" {
				t.Errorf("request_id = %v, want abc", entry["request_id"])
			}
			if entry["route"] != "/api/menu/{id}" {
				t.Errorf("route = %v, want /api/menu/{id}", entry["route"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
		})
	}
}
