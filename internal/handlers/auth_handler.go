package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"famlink/internal/service"
	"famlink/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, "invalid_argument", verr.Error(), nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email_taken", "An account with this email already exists", nil)
		default:
			respondError(w, http.StatusInternalServerError, "internal", "Failed to create account", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, toUserView(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "Invalid email or password", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Login failed", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  toUserView(user),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, toUserView(user))
}

// UpdateDeviceToken handles PUT /api/auth/device-token. An empty token
// unregisters the device.
func (h *AuthHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		DeviceToken string `json:"deviceToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	if err := h.authService.UpdateDeviceToken(user.ID, req.DeviceToken); err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "Failed to update device token", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
