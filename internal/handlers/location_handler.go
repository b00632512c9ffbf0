package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"famlink/internal/service"
)

// LocationHandler handles location feed HTTP requests
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// RecordEntry handles POST /api/families/{familyID}/locations
func (h *LocationHandler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Label     string  `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	entry, err := h.locationService.RecordEntry(user, familyID, req.Latitude, req.Longitude, req.Label)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		}
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /api/families/{familyID}/locations
func (h *LocationHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.locationService.ListEntries(user, familyID, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to list location entries", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
