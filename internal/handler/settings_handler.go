package handler

import (
	"errors"
	"net/http"

	"kasrah-cms/internal/logger"
	"kasrah-cms/internal/middleware"
	"kasrah-cms/internal/service"
)

// SettingsHandler holds the dependencies for the settings handlers.
type SettingsHandler struct {
	settingsService service.SettingsServicer
	log             logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss service.SettingsServicer, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{settingsService: ss, log: log}
}

// getHandler returns all site settings as a flat key/value map. The public
// frontend reads branding values (colors, site name) from here.
func (h *SettingsHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	values, err := h.settingsService.GetAllSettings(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to retrieve settings", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, values)
	return nil
}

// updateHandler upserts the submitted settings and triggers a full site
// regeneration so every generated page reflects the new branding.
func (h *SettingsHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	if len(values) == 0 {
		return &middleware.AppError{Error: errors.New("empty settings payload"), Message: "No settings provided", Code: http.StatusBadRequest}
	}

	if err := h.settingsService.UpdateSettings(r.Context(), values); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to update settings", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	return nil
}
