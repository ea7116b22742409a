package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/repository"
	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/Lixing-Zhang/canteen/pkg/logger"
)

func TestMenuHandler_ListMenu(t *testing.T) {
	handler := NewMenuHandler(service.NewMenuService(repository.NewInMemoryMenuRepository()), logger.Discard())

	w := httptest.NewRecorder()
	handler.ListMenu(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 7 {
		t.Fatalf("expected 7 items, got %d", len(items))
	}
	if items[0].ID != "item1" || items[0].SoldOut {
		t.Errorf("first item = %+v", items[0])
	}
}

func TestMenuHandler_UpdateMenuItem(t *testing.T) {
	repo := repository.NewInMemoryMenuRepository()
	handler := NewMenuHandler(service.NewMenuService(repo), logger.Discard())

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedError  string
		wantSoldOut    bool
	}{
		{
			name:           "mark sold out",
			requestBody:    map[string]interface{}{"itemId": "item3", "soldOut": true},
			expectedStatus: http.StatusOK,
			wantSoldOut:    true,
		},
		{
			name:           "mark available",
			requestBody:    map[string]interface{}{"itemId": "item3", "soldOut": false},
			expectedStatus: http.StatusOK,
			wantSoldOut:    false,
		},
		{
			name:           "missing soldOut",
			requestBody:    map[string]interface{}{"itemId": "item3"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing itemId or soldOut",
		},
		{
			name:           "missing itemId",
			requestBody:    map[string]interface{}{"soldOut": true},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing itemId or soldOut",
		},
		{
			name:           "unknown item",
			requestBody:    map[string]interface{}{"itemId": "item42", "soldOut": true},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Menu item item42 not found",
		},
		{
			name:           "invalid JSON",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/menu/update", encodeBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			handler.UpdateMenuItem(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedError != "" {
				if got := decodeError(t, w); got != tt.expectedError {
					t.Errorf("error = %q, want %q", got, tt.expectedError)
				}
				return
			}

			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["status"] != "success" {
				t.Errorf("status field = %q, want success", resp["status"])
			}

			item, err := repo.GetByID(req.Context(), "item3")
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if item.SoldOut != tt.wantSoldOut {
				t.Errorf("soldOut = %v, want %v", item.SoldOut, tt.wantSoldOut)
			}
		})
	}
}
