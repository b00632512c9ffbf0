package repository

import (
	"database/sql"
	"fmt"

	"famlink/internal/database"
	"famlink/internal/models"
)

// CallHomeRepository handles database operations for call-home requests
type CallHomeRepository struct {
	db *database.DB
}

// NewCallHomeRepository creates a new call-home repository
func NewCallHomeRepository(db *database.DB) *CallHomeRepository {
	return &CallHomeRepository{db: db}
}

// ReplaceRequest stores a call-home request, replacing any earlier one
// for the same target within the family, and returns the stored request
func (r *CallHomeRepository) ReplaceRequest(familyID, targetUserID, requesterID int64) (*models.CallHomeRequest, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "DELETE FROM call_home_requests WHERE family_id = ? AND target_user_id = ?"
	if _, err := tx.Exec(query, familyID, targetUserID); err != nil {
		return nil, fmt.Errorf("failed to clear previous request: %w", err)
	}

	query = "INSERT INTO call_home_requests (family_id, target_user_id, requester_id, status) VALUES (?, ?, ?, ?)"
	if _, err := tx.Exec(query, familyID, targetUserID, requesterID, models.CallHomeRequested); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit request: %w", err)
	}

	return r.GetRequest(familyID, targetUserID)
}

// GetRequest retrieves the request targeting a user, or nil if absent
func (r *CallHomeRepository) GetRequest(familyID, targetUserID int64) (*models.CallHomeRequest, error) {
	query := `SELECT family_id, target_user_id, requester_id, status, created_at
		FROM call_home_requests WHERE family_id = ? AND target_user_id = ?`
	var req models.CallHomeRequest
	err := r.db.QueryRow(query, familyID, targetUserID).Scan(
		&req.FamilyID, &req.TargetUserID, &req.RequesterID, &req.Status, &req.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get call-home request: %w", err)
	}
	return &req, nil
}

// UpdateStatus transitions a request to the given status
func (r *CallHomeRepository) UpdateStatus(familyID, targetUserID int64, status string) error {
	query := "UPDATE call_home_requests SET status = ? WHERE family_id = ? AND target_user_id = ?"
	if _, err := r.db.Exec(query, status, familyID, targetUserID); err != nil {
		return fmt.Errorf("failed to update call-home status: %w", err)
	}
	return nil
}
