package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// PlaceOrderResponse is returned for an accepted order
type PlaceOrderResponse struct {
	Success bool           `json:"success"`
	OrderID models.OrderID `json:"orderId"`
}

// PlaceOrder handles POST /api/orders/place
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	// Validate and create order
	order, err := h.orderService.PlaceOrder(r.Context(), req)
	if err != nil {
		h.log.Warn("failed to place order", "error", err)

		var itemErr *service.ItemError
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			WriteError(w, http.StatusBadRequest, "No items in order", h.log)
		case errors.Is(err, service.ErrInvalidQuantity):
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case errors.As(err, &itemErr):
			WriteError(w, http.StatusBadRequest, itemErr.Error(), h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, PlaceOrderResponse{Success: true, OrderID: order.OrderID}, h.log)
	h.log.Info("order placed successfully", "order_id", order.OrderID, "items_count", len(order.Items))
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string][]models.Order{"orders": orders}, h.log)
}

// UpdateStatus handles POST /api/orders/update_status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode status update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	err := h.orderService.UpdateStatus(r.Context(), req.OrderID, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingFields):
		WriteError(w, http.StatusBadRequest, "Missing orderId or status", h.log)
		return
	case errors.Is(err, service.ErrOrderNotFound):
		h.log.Info("order not found", "order_id", req.OrderID)
		WriteError(w, http.StatusNotFound, "Order not found", h.log)
		return
	default:
		h.log.Error("failed to update order status", "order_id", req.OrderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	h.log.Info("order status updated", "order_id", req.OrderID, "status", req.Status)
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true}, h.log)
}
