package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/middleware"
	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/gorilla/sessions"
)

// AuthHandler handles staff login and logout
type AuthHandler struct {
	auth   *service.StaffAuthenticator
	store  sessions.Store
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.StaffAuthenticator, store sessions.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		store:  store,
		logger: logger,
	}
}

type staffLoginRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

type staffUser struct {
	StaffID string `json:"staffId"`
	Type    string `json:"type"`
}

type staffLoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	User    *staffUser `json:"user,omitempty"`
}

// StaffLogin handles POST /staff_login
func (h *AuthHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req staffLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, staffLoginResponse{Message: "Invalid request body"}, h.logger)
		return
	}

	staffID, err := h.auth.Authenticate(r.Context(), req.StaffID, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingFields):
		WriteJSON(w, http.StatusBadRequest, staffLoginResponse{Message: "Missing fields"}, h.logger)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		h.logger.Warn("staff login failed", "staff_id", h.auth.NormalizeStaffID(req.StaffID))
		WriteJSON(w, http.StatusUnauthorized, staffLoginResponse{Message: "Invalid Staff ID or Password"}, h.logger)
		return
	default:
		h.logger.Error("staff login error", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	identity := middleware.Identity{UserID: staffID, UserType: models.UserTypeStaff}
	if err := middleware.StartSession(h.store, w, r, identity); err != nil {
		h.logger.Error("failed to save session", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("staff login successful", "staff_id", staffID)
	WriteJSON(w, http.StatusOK, staffLoginResponse{
		Success: true,
		User:    &staffUser{StaffID: staffID, Type: models.UserTypeStaff},
	}, h.logger)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := middleware.CurrentIdentity(h.store, r); ok {
		h.logger.Info("user logged out", "user_id", id.UserID)
	}
	if err := middleware.EndSession(h.store, w, r); err != nil {
		h.logger.Warn("failed to clear session", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
