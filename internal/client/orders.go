package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/models"
)

const (
	pathOrders       = "/api/orders"
	pathPlaceOrder   = "/api/orders/place"
	pathUpdateStatus = "/api/orders/update_status"
)

// PlaceOrder submits an order and returns the server-assigned id. The order
// is any JSON-encodable record, usually a models.OrderRequest or a
// json.RawMessage, and is sent as it is.
//
// Unlike the other operations PlaceOrder reports failure as an error: an
// *APIError whose message is the backend's "error" field (or a generic
// fallback) for rejected orders, the wrapped transport error when the
// request never completed, and ErrMalformedResponse for an unreadable
// success body.
func (c *Client) PlaceOrder(ctx context.Context, order any) (models.OrderID, error) {
	id, err := c.placeOrder(ctx, order)
	if err != nil {
		c.log.Error("error placing order", "error", err)
		return "", err
	}

	c.log.Info("order placed successfully", "order_id", id)
	return id, nil
}

func (c *Client) placeOrder(ctx context.Context, order any) (models.OrderID, error) {
	resp, err := c.do(ctx, request{method: http.MethodPost, path: pathPlaceOrder, body: order})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", readAPIError(resp, placeOrderFallback)
	}

	var result struct {
		OrderID models.OrderID `json:"orderId"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return "", fmt.Errorf("failed to read order confirmation: %w", err)
	}
	return result.OrderID, nil
}

// FetchOrders lists all orders for staff. The request carries the client's
// cookies. On any failure, or when the response has no "orders" field,
// Value is an empty slice.
func (c *Client) FetchOrders(ctx context.Context) Outcome[[]models.Order] {
	orders, err := c.fetchOrders(ctx)
	if err != nil {
		c.log.Error("error fetching orders", "error", err)
		return failed([]models.Order{}, err)
	}

	c.log.Debug("orders loaded", "count", len(orders))
	return succeeded(orders)
}

func (c *Client) fetchOrders(ctx context.Context) ([]models.Order, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: pathOrders, credentialed: true})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp.StatusCode)
	}

	var result struct {
		Orders []models.Order `json:"orders"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	if result.Orders == nil {
		result.Orders = []models.Order{}
	}
	return result.Orders, nil
}

// UpdateOrderStatus changes an order's status. Value is the backend's
// "success" flag, false on any failure.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID models.OrderID, status models.OrderStatus) Outcome[bool] {
	ok, err := c.updateOrderStatus(ctx, orderID, status)
	if err != nil {
		c.log.Error("error updating order status", "order_id", orderID, "status", status, "error", err)
		return failed(false, err)
	}
	return succeeded(ok)
}

func (c *Client) updateOrderStatus(ctx context.Context, orderID models.OrderID, status models.OrderStatus) (bool, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   pathUpdateStatus,
		body:   models.StatusUpdate{OrderID: orderID, Status: status},
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return false, statusError(resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return false, err
	}
	return result.Success, nil
}
