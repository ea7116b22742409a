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
	ErrItemNotFound = errors.New("menu item not found")
)

// MenuService handles business logic for the menu
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// ListMenu returns all menu items
func (s *MenuService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.GetAll(ctx)
}

// SetSoldOut applies a sold-out toggle. Both fields must be present.
func (s *MenuService) SetSoldOut(ctx context.Context, update models.MenuUpdate) error {
	if strings.TrimSpace(update.ItemID) == "" || update.SoldOut == nil {
		return ErrMissingFields
	}

	err := s.repo.SetSoldOut(ctx, update.ItemID, *update.SoldOut)
	if errors.Is(err, repository.ErrItemNotFound) {
		return fmt.Errorf("item %s: %w", update.ItemID, ErrItemNotFound)
	}
	return err
}
