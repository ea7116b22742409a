package client

import (
	"context"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/models"
)

const (
	pathMenu       = "/api/menu"
	pathMenuUpdate = "/api/menu/update"
)

// FetchMenu returns the menu. On any failure Value is an empty slice.
func (c *Client) FetchMenu(ctx context.Context) Outcome[[]models.MenuItem] {
	items, err := c.fetchMenu(ctx)
	if err != nil {
		c.log.Error("error fetching menu items", "error", err)
		return failed([]models.MenuItem{}, err)
	}

	c.log.Debug("menu items fetched", "count", len(items))
	return succeeded(items)
}

func (c *Client) fetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: pathMenu})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp.StatusCode)
	}

	var items []models.MenuItem
	if err := decodeJSON(resp, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

// UpdateMenuItem marks a menu item sold out or available again. Value is
// true only when the backend answers {"status": "success"}.
func (c *Client) UpdateMenuItem(ctx context.Context, itemID string, soldOut bool) Outcome[bool] {
	ok, err := c.updateMenuItem(ctx, itemID, soldOut)
	if err != nil {
		c.log.Error("error updating menu item", "item_id", itemID, "sold_out", soldOut, "error", err)
		return failed(false, err)
	}
	return succeeded(ok)
}

func (c *Client) updateMenuItem(ctx context.Context, itemID string, soldOut bool) (bool, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   pathMenuUpdate,
		body:   models.MenuUpdate{ItemID: itemID, SoldOut: &soldOut},
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		apiErr := readAPIError(resp, updateMenuFallback)
		c.log.Warn("menu update failed", "status", apiErr.StatusCode, "message", apiErr.Message)
		return false, apiErr
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return false, err
	}
	return result.Status == "success", nil
}
