package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Lixing-Zhang/canteen/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// TimestampLayout is how order timestamps are rendered
const TimestampLayout = "2006-01-02 15:04:05"

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id models.OrderID, status models.OrderStatus) error
	Count(ctx context.Context) (int, error)
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage.
// Order ids are assigned sequentially starting at 1.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	now    func() time.Time
}

// NewInMemoryOrderRepository creates an empty order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		now: time.Now,
	}
}

// Create stores the order, assigning its id and timestamp
func (r *InMemoryOrderRepository) Create(ctx context.Context, order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.OrderID = models.OrderID(strconv.Itoa(len(r.orders) + 1))
	order.Timestamp = r.now().Format(TimestampLayout)
	order.Items = append([]models.OrderLine(nil), order.Items...)

	r.orders = append(r.orders, order)
	return order, nil
}

// GetAll returns all orders, oldest first
func (r *InMemoryOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, len(r.orders))
	copy(orders, r.orders)
	return orders, nil
}

// UpdateStatus sets the status of an existing order
func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id models.OrderID, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].OrderID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}

// Count returns the number of stored orders
func (r *InMemoryOrderRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders), nil
}
