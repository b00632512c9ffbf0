package repository

import (
	"database/sql"
	"fmt"

	"famlink/internal/database"
	"famlink/internal/models"
)

// EventRepository handles database operations for family events
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, family_id, creator_id, title, location, starts_at, ends_at, created_at, updated_at`

// CreateEvent creates a new event and returns it with its generated ID
func (r *EventRepository) CreateEvent(event *models.Event) (*models.Event, error) {
	query := `INSERT INTO events (family_id, creator_id, title, location, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query,
		event.FamilyID, event.CreatorID, event.Title, event.Location, event.StartsAt, event.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return r.GetEventByID(id)
}

// GetEventByID retrieves an event by ID, or nil if absent
func (r *EventRepository) GetEventByID(eventID int64) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = ?"
	var event models.Event
	err := r.db.QueryRow(query, eventID).Scan(
		&event.ID, &event.FamilyID, &event.CreatorID, &event.Title, &event.Location,
		&event.StartsAt, &event.EndsAt, &event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return &event, nil
}

// ListFamilyEvents retrieves all events in a family ordered by start time
func (r *EventRepository) ListFamilyEvents(familyID int64) ([]models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE family_id = ? ORDER BY starts_at ASC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.FamilyID, &event.CreatorID, &event.Title, &event.Location,
			&event.StartsAt, &event.EndsAt, &event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// UpdateEvent updates an event's mutable fields
func (r *EventRepository) UpdateEvent(event *models.Event) error {
	query := `UPDATE events SET title = ?, location = ?, starts_at = ?, ends_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	_, err := r.db.Exec(query, event.Title, event.Location, event.StartsAt, event.EndsAt, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent deletes an event by ID
func (r *EventRepository) DeleteEvent(eventID int64) error {
	if _, err := r.db.Exec("DELETE FROM events WHERE id = ?", eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
