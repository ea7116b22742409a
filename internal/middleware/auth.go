package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/gorilla/sessions"
)

// staffTypes may use staff endpoints
var staffTypes = map[string]bool{models.UserTypeStaff: true, models.UserTypeTeacher: true}

// RequireStaff rejects requests without a staff or teacher login
func RequireStaff(store sessions.Store, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CurrentIdentity(store, r)
			if !ok || !staffTypes[id.UserType] {
				logger.Warn("unauthorized staff request", "path", r.URL.Path, "user_type", id.UserType)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				body := map[string]string{"error": "Unauthorized"}
				if reqID := w.Header().Get(RequestIDHeader); reqID != "" {
					body["requestId"] = reqID
				}
				_ = json.NewEncoder(w).Encode(body)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
