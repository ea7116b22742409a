package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/service"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListMenu handles GET /api/menu
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		h.logger.Error("failed to list menu", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// UpdateMenuItem handles POST /api/menu/update
// - 200: {"status": "success"}
// - 400: missing itemId or soldOut
// - 404: unknown item
func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var update models.MenuUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("failed to decode menu update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	err := h.service.SetSoldOut(r.Context(), update)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingFields):
		WriteError(w, http.StatusBadRequest, "Missing itemId or soldOut", h.logger)
		return
	case errors.Is(err, service.ErrItemNotFound):
		h.logger.Info("menu item not found", "item_id", update.ItemID)
		WriteError(w, http.StatusNotFound, "Menu item "+update.ItemID+" not found", h.logger)
		return
	default:
		h.logger.Error("failed to update menu item", "item_id", update.ItemID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("menu item updated", "item_id", update.ItemID, "sold_out", *update.SoldOut)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"}, h.logger)
}
