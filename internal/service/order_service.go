package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/repository"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrUnknownItem     = errors.New("unknown menu item")
	ErrSoldOut         = errors.New("sold out")
	ErrMissingFields   = errors.New("missing required fields")
	ErrOrderNotFound   = errors.New("order not found")
)

// ItemError names the menu item an order was rejected for
type ItemError struct {
	Name string
	Err  error
}

func (e *ItemError) Error() string {
	if errors.Is(e.Err, ErrSoldOut) {
		return fmt.Sprintf("%s is sold out", e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Name)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// OrderService handles order business logic
type OrderService struct {
	menuRepo  repository.MenuRepository
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(menuRepo repository.MenuRepository, orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
	}
}

// PlaceOrder validates the request against the menu and stores a pending order
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	// Validate request
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, line := range req.Items {
		// A missing quantity means one
		if line.Quantity == 0 {
			line.Quantity = 1
		}
		if line.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}

		item, err := s.menuRepo.GetByName(ctx, line.Name)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return nil, &ItemError{Name: line.Name, Err: ErrUnknownItem}
			}
			return nil, fmt.Errorf("failed to look up menu item: %w", err)
		}
		if item.SoldOut {
			return nil, &ItemError{Name: item.Name, Err: ErrSoldOut}
		}

		lines = append(lines, models.OrderLine{Name: item.Name, Quantity: line.Quantity})
	}

	order, err := s.orderRepo.Create(ctx, models.Order{
		UserID:     req.UserID,
		UserName:   req.UserName,
		UserClass:  req.UserClass,
		Items:      lines,
		TotalPrice: req.TotalPrice,
		Status:     "Pending",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	return &order, nil
}

// ListOrders returns every order with its status lower-cased for display
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Status = models.OrderStatus(strings.ToLower(string(orders[i].Status)))
	}
	return orders, nil
}

// UpdateStatus stores a new status, capitalized the way staff see it
func (s *OrderService) UpdateStatus(ctx context.Context, id models.OrderID, status models.OrderStatus) error {
	if strings.TrimSpace(string(id)) == "" || strings.TrimSpace(string(status)) == "" {
		return ErrMissingFields
	}

	err := s.orderRepo.UpdateStatus(ctx, id, capitalize(status))
	if errors.Is(err, repository.ErrOrderNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// CountOrders returns the number of stored orders
func (s *OrderService) CountOrders(ctx context.Context) (int, error) {
	return s.orderRepo.Count(ctx)
}

func capitalize(status models.OrderStatus) models.OrderStatus {
	s := strings.ToLower(strings.TrimSpace(string(status)))
	if s == "" {
		return ""
	}
	return models.OrderStatus(strings.ToUpper(s[:1]) + s[1:])
}
