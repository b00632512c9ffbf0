package repository

import (
	"fmt"
	"time"

	"famlink/internal/database"
	"famlink/internal/models"
)

// LocationRepository handles database operations for the activity feed
type LocationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *database.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// CreateEntry appends a location entry and returns its generated ID
func (r *LocationRepository) CreateEntry(entry *models.LocationEntry) (int64, error) {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	query := `INSERT INTO location_entries (family_id, user_id, latitude, longitude, label, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query,
		entry.FamilyID, entry.UserID, entry.Latitude, entry.Longitude, entry.Label, entry.RecordedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create location entry: %w", err)
	}
	entry.ID = id
	return id, nil
}

// ListFamilyEntries retrieves the most recent entries for a family
func (r *LocationRepository) ListFamilyEntries(familyID int64, limit int) ([]models.LocationEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, family_id, user_id, latitude, longitude, label, recorded_at
		FROM location_entries WHERE family_id = ? ORDER BY recorded_at DESC LIMIT ?`
	rows, err := r.db.Query(query, familyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query location entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LocationEntry
	for rows.Next() {
		var entry models.LocationEntry
		if err := rows.Scan(
			&entry.ID, &entry.FamilyID, &entry.UserID,
			&entry.Latitude, &entry.Longitude, &entry.Label, &entry.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountUserEntries counts a user's entries within a family
func (r *LocationRepository) CountUserEntries(familyID, userID int64) (int, error) {
	query := "SELECT COUNT(*) FROM location_entries WHERE family_id = ? AND user_id = ?"
	var count int
	if err := r.db.QueryRow(query, familyID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count location entries: %w", err)
	}
	return count, nil
}
