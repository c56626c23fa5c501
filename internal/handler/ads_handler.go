package handler

import (
	"errors"
	"net/http"
	"strconv"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/middleware"
	"kasrah-cms/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdsHandler holds the dependencies for the advertisement handlers.
type AdsHandler struct {
	adsService service.AdsServicer
}

// NewAdsHandler creates a new AdsHandler.
func NewAdsHandler(as service.AdsServicer) *AdsHandler {
	return &AdsHandler{adsService: as}
}

// activeHandler serves active advertisements to the public frontend,
// optionally filtered by position.
func (h *AdsHandler) activeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	position := r.URL.Query().Get("position")
	ads, err := h.adsService.ListActiveAds(r.Context(), position)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdPosition) {
			return &middleware.AppError{Error: err, Message: "Invalid ad position", Code: http.StatusBadRequest}
		}
		return &middleware.AppError{Error: err, Message: "Failed to retrieve ads", Code: http.StatusInternalServerError}
	}
	if ads == nil {
		ads = []*data.Advertisement{}
	}
	respondJSON(w, http.StatusOK, ads)
	return nil
}

// adminListHandler returns every advertisement including inactive ones.
func (h *AdsHandler) adminListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ads, err := h.adsService.ListAds(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to retrieve ads", Code: http.StatusInternalServerError}
	}
	if ads == nil {
		ads = []*data.Advertisement{}
	}
	respondJSON(w, http.StatusOK, ads)
	return nil
}

// createHandler stores a new advertisement.
func (h *AdsHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var ad data.Advertisement
	if err := decodeJSON(r, &ad); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	created, err := h.adsService.CreateAd(r.Context(), &ad)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdPosition) {
			return &middleware.AppError{Error: err, Message: "Invalid ad position", Code: http.StatusBadRequest}
		}
		return &middleware.AppError{Error: err, Message: "Failed to create ad", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusCreated, created)
	return nil
}

// updateHandler applies changes to an existing advertisement.
func (h *AdsHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid ad ID", Code: http.StatusBadRequest}
	}

	var ad data.Advertisement
	if err := decodeJSON(r, &ad); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	ad.ID = id

	updated, err := h.adsService.UpdateAd(r.Context(), &ad)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdNotFound):
			return &middleware.AppError{Error: err, Message: "Ad not found", Code: http.StatusNotFound}
		case errors.Is(err, service.ErrInvalidAdPosition):
			return &middleware.AppError{Error: err, Message: "Invalid ad position", Code: http.StatusBadRequest}
		default:
			return &middleware.AppError{Error: err, Message: "Failed to update ad", Code: http.StatusInternalServerError}
		}
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}

// deleteHandler removes an advertisement.
func (h *AdsHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid ad ID", Code: http.StatusBadRequest}
	}
	if err := h.adsService.DeleteAd(r.Context(), id); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to delete ad", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	return nil
}
