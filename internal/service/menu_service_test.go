package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/repository"
)

func TestMenuService_SetSoldOut(t *testing.T) {
	menuService := NewMenuService(repository.NewInMemoryMenuRepository())
	ctx := context.Background()
	soldOut := true

	tests := []struct {
		name    string
		update  models.MenuUpdate
		wantErr error
	}{
		{name: "existing item", update: models.MenuUpdate{ItemID: "item2", SoldOut: &soldOut}},
		{name: "missing sold out flag", update: models.MenuUpdate{ItemID: "item2"}, wantErr: ErrMissingFields},
		{name: "missing item id", update: models.MenuUpdate{SoldOut: &soldOut}, wantErr: ErrMissingFields},
		{name: "unknown item", update: models.MenuUpdate{ItemID: "item99", SoldOut: &soldOut}, wantErr: ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := menuService.SetSoldOut(ctx, tt.update)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("SetSoldOut() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetSoldOut() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	items, _ := menuService.ListMenu(ctx)
	for _, item := range items {
		if item.ID == "item2" && !item.SoldOut {
			t.Error("expected item2 to be sold out")
		}
	}
}
