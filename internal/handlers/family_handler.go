package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"famlink/internal/service"
)

// FamilyHandler handles family and membership HTTP requests
type FamilyHandler struct {
	familyService  *service.FamilyService
	removalService *service.RemovalService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService, removalService *service.RemovalService) *FamilyHandler {
	return &FamilyHandler{
		familyService:  familyService,
		removalService: removalService,
	}
}

// pathID parses a numeric path segment, returning 0 when absent or
// malformed
func pathID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// CreateFamily handles POST /api/families
func (h *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	family, err := h.familyService.CreateFamily(req.Name, user)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyMember) {
			respondError(w, http.StatusConflict, "already_member", "You already belong to a family", nil)
		} else {
			respondError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		}
		return
	}

	respondJSON(w, http.StatusCreated, toFamilyView(family))
}

// GetFamily handles GET /api/families/{familyID}
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	if err := h.familyService.VerifyFamilyAccess(user.ID, familyID); err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to verify family access", err)
		}
		return
	}

	detail, err := h.familyService.GetFamilyWithMembers(familyID)
	if err != nil {
		if errors.Is(err, service.ErrFamilyNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Family not found", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to get family", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, toFamilyDetailView(detail))
}

// RemoveMember handles DELETE /api/families/{familyID}/members/{userID}.
// It removes the member and all their family-scoped data atomically;
// the caller must be the member themselves or hold a parent or guardian
// role in the family.
func (h *FamilyHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")
	userID := pathID(r, "userID")

	message, err := h.removalService.RemoveMember(user, familyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			respondError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
		case errors.Is(err, service.ErrInvalidArgument):
			respondError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		case errors.Is(err, service.ErrNotAuthorized):
			respondError(w, http.StatusForbidden, "forbidden", "You are not allowed to remove this member", nil)
		case errors.Is(err, service.ErrFamilyNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Family not found", nil)
		default:
			respondError(w, http.StatusInternalServerError, "internal", "Failed to remove member", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}
