package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus is the kitchen-side state of an order. The backend treats it
// as an opaque string; these are the values the staff view uses.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusUnable    OrderStatus = "unable"
)

// OrderID is the server-assigned order identifier. The backend may encode it
// as a JSON string or number.
type OrderID string

// UnmarshalJSON accepts both "12" and 12
func (id *OrderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OrderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order id must be a string or number: %w", err)
	}
	*id = OrderID(n.String())
	return nil
}

// OrderLine is one dish and its quantity
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
}

// OrderRequest represents an order placed by a student or teacher. The
// client submits any JSON record as an order; this is the shape the backend
// reads from it.
type OrderRequest struct {
	Items      []OrderLine `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	UserID     string      `json:"userId,omitempty"`
	UserName   string      `json:"userName,omitempty"`
	UserClass  string      `json:"userClass,omitempty"`
}

// Order represents a stored order as listed for staff
type Order struct {
	OrderID    OrderID     `json:"orderId"`
	Timestamp  string      `json:"timestamp"`
	UserID     string      `json:"userId"`
	UserName   string      `json:"userName"`
	UserClass  string      `json:"userClass"`
	Items      []OrderLine `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`

	Extra Extra `json:"-"`
}

type orderFields Order

// UnmarshalJSON keeps members without a typed field in Extra
func (o *Order) UnmarshalJSON(data []byte) error {
	var fields orderFields
	extra, err := decodeRecord(data, &fields)
	if err != nil {
		return err
	}
	*o = Order(fields)
	o.Extra = extra
	return nil
}

// MarshalJSON writes the typed members followed by Extra
func (o Order) MarshalJSON() ([]byte, error) {
	return encodeRecord(orderFields(o), o.Extra)
}

// ItemsSummary renders the items as "Name x 2, Other x 1"
func (o Order) ItemsSummary() string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, fmt.Sprintf("%s x %d", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

// StatusUpdate is the body of an order status change
type StatusUpdate struct {
	OrderID OrderID     `json:"orderId"`
	Status  OrderStatus `json:"status"`
}
