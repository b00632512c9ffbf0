package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"famlink/internal/service"
)

// MessageHandler handles family chat HTTP requests
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage handles POST /api/families/{familyID}/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	id, err := h.messageService.SendMessage(user, familyID, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// ListMessages handles GET /api/families/{familyID}/messages with
// optional before and limit query parameters for paging backwards
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")
	beforeID, _ := strconv.ParseInt(r.URL.Query().Get("before"), 10, 64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.messageService.ListMessages(user, familyID, beforeID, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "internal", "Failed to list messages", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
