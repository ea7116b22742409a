package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/canteen/internal/middleware"
	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/Lixing-Zhang/canteen/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const testSessionSecret = "test-session-secret-0123456789ab"

// testAccounts holds a single staff account, chef@slps.one / Pass@0001
func testAccounts(t *testing.T) map[string]string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Pass@0001"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return map[string]string{"chef@slps.one": string(hash)}
}

func TestAuthHandler_StaffLogin(t *testing.T) {
	store := middleware.NewSessionStore(testSessionSecret, time.Hour, false)
	handler := NewAuthHandler(service.NewStaffAuthenticator(testAccounts(t), "slps.one"), store, logger.Discard())

	tests := []struct {
		name            string
		requestBody     interface{}
		expectedStatus  int
		expectedMessage string
		expectedStaffID string
	}{
		{
			name:            "full staff id",
			requestBody:     map[string]string{"staffId": "chef@slps.one", "password": "Pass@0001"},
			expectedStatus:  http.StatusOK,
			expectedStaffID: "chef@slps.one",
		},
		{
			name:            "bare staff id gets domain",
			requestBody:     map[string]string{"staffId": "chef", "password": "Pass@0001"},
			expectedStatus:  http.StatusOK,
			expectedStaffID: "chef@slps.one",
		},
		{
			name:            "wrong password",
			requestBody:     map[string]string{"staffId": "chef", "password": "nope"},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid Staff ID or Password",
		},
		{
			name:            "unknown staff",
			requestBody:     map[string]string{"staffId": "ghost", "password": "Pass@0001"},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid Staff ID or Password",
		},
		{
			name:            "missing password",
			requestBody:     map[string]string{"staffId": "chef"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Missing fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/staff_login", encodeBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			handler.StaffLogin(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			var resp staffLoginResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if tt.expectedStatus != http.StatusOK {
				if resp.Success {
					t.Error("expected success: false")
				}
				if resp.Message != tt.expectedMessage {
					t.Errorf("message = %q, want %q", resp.Message, tt.expectedMessage)
				}
				if len(w.Result().Cookies()) != 0 {
					t.Error("rejected login must not set a session cookie")
				}
				return
			}

			if !resp.Success || resp.User == nil {
				t.Fatalf("expected success with user, got %+v", resp)
			}
			if resp.User.StaffID != tt.expectedStaffID || resp.User.Type != "staff" {
				t.Errorf("user = %+v", resp.User)
			}

			cookies := w.Result().Cookies()
			if len(cookies) != 1 || cookies[0].Name != middleware.SessionName {
				t.Fatalf("expected session cookie, got %+v", cookies)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	store := middleware.NewSessionStore(testSessionSecret, time.Hour, false)
	handler := NewAuthHandler(service.NewStaffAuthenticator(testAccounts(t), "slps.one"), store, logger.Discard())

	w := httptest.NewRecorder()
	handler.Logout(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}
