package repository

import (
	"database/sql"
	"fmt"
	"time"

	"famlink/internal/database"
	"famlink/internal/models"

	"github.com/google/uuid"
)

// InvitationRepository handles database operations for invitations
type InvitationRepository struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *database.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

const invitationColumns = `id, family_id, sender_id, email, code, status, created_at, expires_at`

// CreateInvitation creates a new pending invitation
func (r *InvitationRepository) CreateInvitation(familyID, senderID int64, email, code string, ttl time.Duration) (*models.Invitation, error) {
	inv := &models.Invitation{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		SenderID:  senderID,
		Email:     email,
		Code:      code,
		Status:    models.InvitationPending,
		CreatedAt: time.Now().UTC(),
	}
	inv.ExpiresAt = inv.CreatedAt.Add(ttl)

	query := `INSERT INTO invitations (id, family_id, sender_id, email, code, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		inv.ID, inv.FamilyID, inv.SenderID, inv.Email, inv.Code, inv.Status, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return inv, nil
}

// GetInvitationByCode retrieves an invitation by its join code, or nil if absent
func (r *InvitationRepository) GetInvitationByCode(code string) (*models.Invitation, error) {
	query := "SELECT " + invitationColumns + " FROM invitations WHERE code = ?"
	return scanInvitation(r.db.QueryRow(query, code))
}

// GetInvitationByID retrieves an invitation by ID, or nil if absent
func (r *InvitationRepository) GetInvitationByID(id string) (*models.Invitation, error) {
	query := "SELECT " + invitationColumns + " FROM invitations WHERE id = ?"
	return scanInvitation(r.db.QueryRow(query, id))
}

// ListFamilyInvitations retrieves all invitations for a family, newest first
func (r *InvitationRepository) ListFamilyInvitations(familyID int64) ([]models.Invitation, error) {
	query := "SELECT " + invitationColumns + " FROM invitations WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()
	return collectInvitations(rows)
}

// ListAllInvitations retrieves every invitation record for the sweep
func (r *InvitationRepository) ListAllInvitations() ([]models.Invitation, error) {
	query := "SELECT " + invitationColumns + " FROM invitations"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()
	return collectInvitations(rows)
}

// UpdateStatus transitions an invitation to the given status
func (r *InvitationRepository) UpdateStatus(id, status string) error {
	query := "UPDATE invitations SET status = ? WHERE id = ?"
	if _, err := r.db.Exec(query, status, id); err != nil {
		return fmt.Errorf("failed to update invitation status: %w", err)
	}
	return nil
}

// ApplySweep applies a sweep's scheduled changes as one transaction:
// full deletion for terminal invitations, a status-only update to
// EXPIRED for stale pending ones. All changes apply or none do.
func (r *InvitationRepository) ApplySweep(deleteIDs, expireIDs []string) error {
	if len(deleteIDs) == 0 && len(expireIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin sweep transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range deleteIDs {
		if _, err := tx.Exec("DELETE FROM invitations WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete invitation %s: %w", id, err)
		}
	}
	for _, id := range expireIDs {
		if _, err := tx.Exec("UPDATE invitations SET status = ? WHERE id = ?", models.InvitationExpired, id); err != nil {
			return fmt.Errorf("failed to expire invitation %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sweep: %w", err)
	}
	return nil
}

func scanInvitation(row *sql.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(
		&inv.ID, &inv.FamilyID, &inv.SenderID, &inv.Email,
		&inv.Code, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}
	return &inv, nil
}

func collectInvitations(rows *sql.Rows) ([]models.Invitation, error) {
	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.FamilyID, &inv.SenderID, &inv.Email,
			&inv.Code, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}
