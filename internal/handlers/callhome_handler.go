package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"famlink/internal/service"
)

// CallHomeHandler handles call-home HTTP requests
type CallHomeHandler struct {
	callHomeService *service.CallHomeService
}

// NewCallHomeHandler creates a new call-home handler
func NewCallHomeHandler(callHomeService *service.CallHomeService) *CallHomeHandler {
	return &CallHomeHandler{callHomeService: callHomeService}
}

// Request handles POST /api/families/{familyID}/call-home
func (h *CallHomeHandler) Request(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		TargetUserID int64 `json:"targetUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TargetUserID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_argument", "A target user is required", nil)
		return
	}

	request, err := h.callHomeService.Request(r.Context(), user, familyID, req.TargetUserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "Requester and target must both be family members", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to create call-home request", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, toCallHomeView(request))
}

// Respond handles POST /api/families/{familyID}/call-home/respond. The
// authenticated user answers their own pending request.
func (h *CallHomeHandler) Respond(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	request, err := h.callHomeService.Respond(r.Context(), user, familyID, req.Accept)
	if err != nil {
		if errors.Is(err, service.ErrCallHomeNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "No call-home request for you in this family", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to respond to call-home request", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, toCallHomeView(request))
}
