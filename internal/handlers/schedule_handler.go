package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"famlink/internal/service"
)

// ScheduleHandler handles task and event HTTP requests
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func respondScheduleError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFamilyMember):
		respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
	case errors.Is(err, service.ErrTaskNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Task not found", nil)
	case errors.Is(err, service.ErrEventNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Event not found", nil)
	default:
		respondError(w, http.StatusInternalServerError, "internal", "Failed to "+action, err)
	}
}

// CreateTask handles POST /api/families/{familyID}/tasks
func (h *ScheduleHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		Title      string     `json:"title"`
		Notes      string     `json:"notes"`
		AssigneeID *int64     `json:"assigneeId"`
		DueAt      *time.Time `json:"dueAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	task, err := h.scheduleService.CreateTask(user, familyID, req.Title, req.Notes, req.AssigneeID, req.DueAt)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "Creator and assignee must both be family members", nil)
		} else {
			respondError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		}
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// ListTasks handles GET /api/families/{familyID}/tasks
func (h *ScheduleHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	tasks, err := h.scheduleService.ListTasks(user, familyID)
	if err != nil {
		respondScheduleError(w, "list tasks", err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// SetTaskDone handles PUT /api/tasks/{taskID}/done
func (h *ScheduleHandler) SetTaskDone(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	taskID := pathID(r, "taskID")

	var req struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	task, err := h.scheduleService.SetTaskDone(user, taskID, req.Done)
	if err != nil {
		respondScheduleError(w, "update task", err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{taskID}
func (h *ScheduleHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	taskID := pathID(r, "taskID")

	if err := h.scheduleService.DeleteTask(user, taskID); err != nil {
		respondScheduleError(w, "delete task", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CreateEvent handles POST /api/families/{familyID}/events
func (h *ScheduleHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	var req struct {
		Title    string    `json:"title"`
		Location string    `json:"location"`
		StartsAt time.Time `json:"startsAt"`
		EndsAt   time.Time `json:"endsAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", "Invalid request body", nil)
		return
	}

	event, err := h.scheduleService.CreateEvent(user, familyID, req.Title, req.Location, req.StartsAt, req.EndsAt)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			respondError(w, http.StatusForbidden, "forbidden", "You are not a member of this family", nil)
		} else {
			respondError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		}
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /api/families/{familyID}/events
func (h *ScheduleHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	familyID := pathID(r, "familyID")

	events, err := h.scheduleService.ListEvents(user, familyID)
	if err != nil {
		respondScheduleError(w, "list events", err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// DeleteEvent handles DELETE /api/events/{eventID}
func (h *ScheduleHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	eventID := pathID(r, "eventID")

	if err := h.scheduleService.DeleteEvent(user, eventID); err != nil {
		respondScheduleError(w, "delete event", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
