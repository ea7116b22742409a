package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/models"
)

const (
	pathStaffLogin = "/staff_login"
	pathHealth     = "/api/health"

	// LogoutPath is where a cleared session navigates to
	LogoutPath = "/logout"
)

// StaffLogin signs a staff member in and returns the user record the backend
// answered with. The server session cookie is kept in the client's jar and
// sent on credentialed requests afterwards.
func (c *Client) StaffLogin(ctx context.Context, staffID, password string) (*models.UserSession, error) {
	resp, err := c.do(ctx, request{
		method:       http.MethodPost,
		path:         pathStaffLogin,
		body:         map[string]string{"staffId": staffID, "password": password},
		credentialed: true,
	})
	if err != nil {
		c.log.Error("error logging in", "staff_id", staffID, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Error   string             `json:"error"`
		User    models.UserSession `json:"user"`
	}
	decodeErr := decodeJSON(resp, &result)

	if !isSuccess(resp.StatusCode) || !result.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: loginFallback}
		switch {
		case result.Message != "":
			apiErr.Message = result.Message
		case result.Error != "":
			apiErr.Message = result.Error
		}
		c.log.Warn("staff login rejected", "staff_id", staffID, "status", resp.StatusCode)
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	c.log.Info("staff login successful", "staff_id", result.User.ID())
	return &result.User, nil
}

// Navigate issues a credentialed GET to a page such as the logout endpoint,
// the way a browser would follow a link. Redirect answers count as success.
func (c *Client) Navigate(ctx context.Context, target string) error {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: target, credentialed: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode)
	}
	return nil
}

// Logout ends the server-side session
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Navigate(ctx, LogoutPath); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// HealthStatus is the backend health report
type HealthStatus struct {
	Status    string `json:"status"`
	MenuItems int    `json:"menuItems"`
	Orders    int    `json:"orders"`
}

// Health checks the backend. Unhealthy answers (503) still decode.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: pathHealth})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health HealthStatus
	if err := decodeJSON(resp, &health); err != nil {
		if !isSuccess(resp.StatusCode) {
			return nil, statusError(resp.StatusCode)
		}
		return nil, err
	}
	return &health, nil
}
