package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"kasrah-cms/internal/config"
	"kasrah-cms/internal/middleware"
	"kasrah-cms/internal/session"
)

// AuthHandler manages the admin login session.
type AuthHandler struct {
	admin config.AdminConfig
	sm    session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(admin config.AdminConfig, sm session.Manager) *AuthHandler {
	return &AuthHandler{admin: admin, sm: sm}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginHandler checks the submitted credentials against the configured admin
// account and stores the admin subject in the session.
func (h *AuthHandler) loginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}

	if h.admin.Username == "" || h.admin.Password == "" {
		return &middleware.AppError{Error: errors.New("admin credentials not configured"), Message: "Login disabled", Code: http.StatusServiceUnavailable}
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.admin.Password)) == 1
	if !userOK || !passOK {
		return &middleware.AppError{Error: errors.New("bad credentials"), Message: "Invalid username or password", Code: http.StatusUnauthorized}
	}

	h.sm.Put(r.Context(), "user_subject", "admin")
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "username": req.Username})
	return nil
}

// logoutHandler destroys the current session.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sm.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to end session", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	return nil
}

// statusHandler reports whether the current session is authenticated.
func (h *AuthHandler) statusHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	subject := h.sm.GetString(r.Context(), "user_subject")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": subject != "",
		"username":      subject,
	})
	return nil
}
