package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"famlink/internal/service"
	"famlink/internal/validation"
)

// InvitationHandler handles invitation HTTP requests
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Invite handles POST /api/families/{familyID}/invitations
func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	invitation, err := h.invitationService.Invite(r.Context(), user, familyID, req.Email)
	if err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, "invalid_argument", verr.Error(), nil)
		case errors.Is(err, service.ErrNotFamilyMember):
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		case errors.Is(err, service.ErrFamilyNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Family not found", nil)
		default:
			respondError(w, http.StatusInternalServerError, "internal", "Failed to create invitation", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, toInvitationView(invitation))
}

// ListInvitations handles GET /api/families/{familyID}/invitations
func (h *InvitationHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	invitations, err := h.invitationService.ListFamilyInvitations(user.ID, familyID)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to list invitations", err)
		}
		return
	}

	views := make([]invitationView, 0, len(invitations))
	for i := range invitations {
		views = append(views, toInvitationView(&invitations[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// Accept handles POST /api/invitations/accept
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_argument", "A join code is required", nil)
		return
	}

	family, err := h.invitationService.Accept(req.Code, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Invitation not found", nil)
		case errors.Is(err, service.ErrInvitationNotPending), errors.Is(err, service.ErrInvitationExpired):
			respondError(w, http.StatusConflict, "invitation_unavailable", "This invitation is no longer valid", nil)
		case errors.Is(err, service.ErrAlreadyMember):
			respondError(w, http.StatusConflict, "already_member", "You already belong to a family", nil)
		default:
			respondError(w, http.StatusInternalServerError, "internal", "Failed to accept invitation", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, toFamilyView(family))
}

// Decline handles POST /api/invitations/decline
func (h *InvitationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_argument", "A join code is required", nil)
		return
	}

	if err := h.invitationService.Decline(req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Invitation not found", nil)
		case errors.Is(err, service.ErrInvitationNotPending):
			respondError(w, http.StatusConflict, "invitation_unavailable", "This invitation is no longer valid", nil)
		default:
			respondError(w, http.StatusInternalServerError, "internal", "Failed to decline invitation", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
