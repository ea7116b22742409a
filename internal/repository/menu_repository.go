package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Lixing-Zhang/canteen/internal/models"
)

var (
	ErrItemNotFound = errors.New("menu item not found")
)

// MenuRepository defines the interface for menu data access
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	GetByName(ctx context.Context, name string) (*models.MenuItem, error)
	SetSoldOut(ctx context.Context, id string, soldOut bool) error
}

// InMemoryMenuRepository implements MenuRepository with in-memory storage
type InMemoryMenuRepository struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

// DefaultMenu is the canteen's standard menu
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "item1", Name: "Veggie Burger", Price: 80, Benefits: "Rich in fiber and vitamins", Image: "/static/images/veggie_burger_vegeta.jpg"},
		{ID: "item2", Name: "Paneer Pizza Slice", Price: 100, Benefits: "Good source of calcium and protein", Image: "/static/images/pizza.jpg"},
		{ID: "item3", Name: "Fresh Fruit Salad", Price: 60, Benefits: "Packed with essential nutrients", Image: "/static/images/chilli_potato.jpg"},
		{ID: "item4", Name: "Veg Spring Rolls (6 pcs)", Price: 90, Benefits: "Healthy and delicious snack", Image: "/static/images/samosa.jpg"},
		{ID: "item5", Name: "Chocolate Milkshake", Price: 70, Benefits: "Energy booster!", Image: "/static/images/chocolate_milkshake.jpg"},
		{ID: "item6", Name: "Chai", Price: 30, Benefits: "Warm and refreshing Indian tea", Image: "/static/images/chai.jpg"},
		{ID: "item7", Name: "Coffee", Price: 40, Benefits: "Strong and aromatic coffee", Image: "/static/images/coffee.jpg"},
	}
}

// NewInMemoryMenuRepository creates a repository seeded with items, or with
// the default menu when items is empty
func NewInMemoryMenuRepository(items ...models.MenuItem) *InMemoryMenuRepository {
	if len(items) == 0 {
		items = DefaultMenu()
	}
	seeded := make([]models.MenuItem, len(items))
	copy(seeded, items)

	return &InMemoryMenuRepository{
		items: seeded,
	}
}

// GetAll returns all menu items in menu order
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// GetByID returns a menu item by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id = strings.TrimSpace(id)
	for _, item := range r.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

// GetByName returns a menu item by its display name, ignoring case
func (r *InMemoryMenuRepository) GetByName(ctx context.Context, name string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

// SetSoldOut updates the sold-out flag of an item
func (r *InMemoryMenuRepository) SetSoldOut(ctx context.Context, id string, soldOut bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = strings.TrimSpace(id)
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].SoldOut = soldOut
			return nil
		}
	}
	return ErrItemNotFound
}
