package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/service"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	menu   *service.MenuService
	orders *service.OrderService
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(menu *service.MenuService, orders *service.OrderService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		menu:   menu,
		orders: orders,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	MenuItems int    `json:"menuItems"`
	Orders    int    `json:"orders"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.menu.ListMenu(ctx)
	if err != nil {
		h.logger.Error("health check: menu unavailable", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"}, h.logger)
		return
	}

	count, err := h.orders.CountOrders(ctx)
	if err != nil {
		h.logger.Error("health check: orders unavailable", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", MenuItems: len(items)}, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		MenuItems: len(items),
		Orders:    count,
	}, h.logger)
}
