package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/canteen/internal/handlers"
	"github.com/Lixing-Zhang/canteen/internal/middleware"
	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/repository"
	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/Lixing-Zhang/canteen/internal/storage"
	"github.com/Lixing-Zhang/canteen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newCanteenServer(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Pass@0001"), bcrypt.MinCost)
	require.NoError(t, err)

	menuRepo := repository.NewInMemoryMenuRepository()
	router, err := handlers.NewRouter(handlers.Dependencies{
		Menu:   service.NewMenuService(menuRepo),
		Orders: service.NewOrderService(menuRepo, repository.NewInMemoryOrderRepository()),
		Auth:   service.NewStaffAuthenticator(map[string]string{"chef@slps.one": string(hash)}, "slps.one"),
		Store:  middleware.NewSessionStore("e2e-session-secret-0123456789abc", time.Hour, false),
		Logger: logger.Discard(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestEndToEnd_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	jar, err := NewStoreJar(storage.NewMemoryStore(), logger.Discard())
	require.NoError(t, err)

	c, err := New(newCanteenServer(t), WithCookieJar(jar), WithLogger(logger.Discard()))
	require.NoError(t, err)

	menu := c.FetchMenu(ctx)
	require.True(t, menu.OK())
	require.Len(t, menu.Value, 7)

	// Staff marks chai sold out; the mutation is open by default
	require.True(t, c.UpdateMenuItem(ctx, "item6", true).Value)

	_, err = c.PlaceOrder(ctx, models.OrderRequest{Items: []models.OrderLine{{Name: "Chai", Quantity: 1}}})
	require.Error(t, err)
	assert.Equal(t, "Chai is sold out", err.Error())

	_, err = c.PlaceOrder(ctx, models.OrderRequest{})
	require.Error(t, err)
	assert.Equal(t, "No items in order", err.Error())

	id, err := c.PlaceOrder(ctx, models.OrderRequest{
		Items:      []models.OrderLine{{Name: "Coffee", Quantity: 2}},
		TotalPrice: 80,
		UserName:   "Asha",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderID("1"), id)

	// Listing needs a staff session
	orders := c.FetchOrders(ctx)
	assert.False(t, orders.OK())
	assert.Empty(t, orders.Value)

	user, err := c.StaffLogin(ctx, "chef", "Pass@0001")
	require.NoError(t, err)
	assert.Equal(t, "chef@slps.one", user.StaffID)
	assert.Equal(t, "chef@slps.one", user.ID())
	assert.True(t, user.IsStaff())

	orders = c.FetchOrders(ctx)
	require.True(t, orders.OK(), "error: %v", orders.Err)
	require.Len(t, orders.Value, 1)
	assert.Equal(t, models.StatusPending, orders.Value[0].Status)
	assert.Equal(t, "Coffee x 2", orders.Value[0].ItemsSummary())

	assert.True(t, c.UpdateOrderStatus(ctx, id, models.StatusDelivered).Value)
	assert.False(t, c.UpdateOrderStatus(ctx, "42", models.StatusDelivered).Value)

	orders = c.FetchOrders(ctx)
	require.Len(t, orders.Value, 1)
	assert.Equal(t, models.StatusDelivered, orders.Value[0].Status)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, health.Orders)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.FetchOrders(ctx).OK())
}

func TestEndToEnd_BadStaffLogin(t *testing.T) {
	c, err := New(newCanteenServer(t), WithLogger(logger.Discard()))
	require.NoError(t, err)

	_, err = c.StaffLogin(context.Background(), "chef", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid Staff ID or Password", err.Error())
}
