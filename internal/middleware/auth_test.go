package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/canteen/pkg/logger"
)

const testSecret = "test-session-secret-0123456789ab"

// loginCookie returns a session cookie for the given identity
func loginCookie(t *testing.T, id Identity) *http.Cookie {
	t.Helper()
	store := NewSessionStore(testSecret, time.Hour, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/staff_login", nil)
	if err := StartSession(store, w, req, id); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestRequireStaff(t *testing.T) {
	store := NewSessionStore(testSecret, time.Hour, false)

	// Create a test handler that returns 200 OK
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	// Wrap with auth middleware
	authHandler := RequireStaff(store, logger.Discard())(testHandler)

	tests := []struct {
		name           string
		cookie         *http.Cookie
		expectedStatus int
	}{
		{
			name:           "staff session",
			cookie:         loginCookie(t, Identity{UserID: "chef@slps.one", UserType: "staff"}),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "teacher session",
			cookie:         loginCookie(t, Identity{UserID: "t1@slps.one", UserType: "teacher"}),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "student session",
			cookie:         loginCookie(t, Identity{UserID: "S100", UserType: "student"}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no session",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "tampered cookie",
			cookie:         &http.Cookie{Name: SessionName, Value: "not-a-signed-value"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "success" {
					t.Errorf("body = %s, want success", w.Body.String())
				}
			}
		})
	}
}

func TestEndSession(t *testing.T) {
	store := NewSessionStore(testSecret, time.Hour, false)
	cookie := loginCookie(t, Identity{UserID: "chef@slps.one", UserType: "staff"})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	if _, ok := CurrentIdentity(store, req); !ok {
		t.Fatal("expected identity before logout")
	}

	w := httptest.NewRecorder()
	if err := EndSession(store, w, req); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expired session cookie, got %+v", cookies)
	}
}
