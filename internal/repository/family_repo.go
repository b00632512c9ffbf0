package repository

import (
	"database/sql"
	"fmt"
	"time"

	"famlink/internal/database"
	"famlink/internal/models"
)

// FamilyRepository handles database operations for families and membership
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamily creates a new family and adds the creator as a parent
func (r *FamilyRepository) CreateFamily(name string, creatorUserID int64) (*models.Family, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	familyID, err := tx.ExecReturningID("INSERT INTO families (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	if err := addMemberTx(tx, familyID, creatorUserID, models.RoleParent); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Family{
		ID:        familyID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetFamilyByID retrieves a family by ID, or nil if absent
func (r *FamilyRepository) GetFamilyByID(familyID int64) (*models.Family, error) {
	query := "SELECT id, name, created_at, updated_at FROM families WHERE id = ?"
	family := &models.Family{}
	err := r.db.QueryRow(query, familyID).Scan(
		&family.ID, &family.Name, &family.CreatedAt, &family.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

// AddMember adds a user to a family and stamps the user's affiliation fields
func (r *FamilyRepository) AddMember(familyID, userID int64, role string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := addMemberTx(tx, familyID, userID, role); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func addMemberTx(tx *database.Tx, familyID, userID int64, role string) error {
	query := "INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)"
	if _, err := tx.Exec(query, familyID, userID, role); err != nil {
		return fmt.Errorf("failed to add family member: %w", err)
	}

	query = "UPDATE users SET family_id = ?, family_role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := tx.Exec(query, familyID, role, userID); err != nil {
		return fmt.Errorf("failed to update user affiliation: %w", err)
	}
	return nil
}

// IsMember checks if a user is a member of a family
func (r *FamilyRepository) IsMember(userID, familyID int64) (bool, error) {
	query := "SELECT COUNT(*) FROM family_members WHERE user_id = ? AND family_id = ?"
	var count int
	if err := r.db.QueryRow(query, userID, familyID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check family membership: %w", err)
	}
	return count > 0, nil
}

// GetMemberRole returns a member's role within a family, or "" if not a member
func (r *FamilyRepository) GetMemberRole(userID, familyID int64) (string, error) {
	query := "SELECT role FROM family_members WHERE user_id = ? AND family_id = ?"
	var role string
	err := r.db.QueryRow(query, userID, familyID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get member role: %w", err)
	}
	return role, nil
}

// GetFamilyMembers retrieves all members of a family with user details
func (r *FamilyRepository) GetFamilyMembers(familyID int64) ([]models.FamilyMember, []models.User, error) {
	query := `
		SELECT fm.id, fm.family_id, fm.user_id, fm.role, fm.joined_at,
		       u.id, u.email, u.name, u.created_at
		FROM family_members fm
		INNER JOIN users u ON fm.user_id = u.id
		WHERE fm.family_id = ?
		ORDER BY fm.joined_at ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var members []models.FamilyMember
	var users []models.User
	for rows.Next() {
		var member models.FamilyMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.FamilyID, &member.UserID, &member.Role, &member.JoinedAt,
			&user.ID, &user.Email, &user.Name, &user.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, member)
		users = append(users, user)
	}

	return members, users, rows.Err()
}

// RemoveMemberCascade excises a user from a family in one transaction:
// the membership row, the user's affiliation fields, and every dependent
// record the user owns within the family (location entries, call-home
// requests as target or requester, tasks as creator or assignee, events
// as creator). Returns false without writing when the user is already
// fully absent, making repeated removal an idempotent no-op.
func (r *FamilyRepository) RemoveMemberCascade(familyID, userID int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	changed := false

	steps := []struct {
		query string
		args  []interface{}
	}{
		{"DELETE FROM family_members WHERE family_id = ? AND user_id = ?",
			[]interface{}{familyID, userID}},
		{"UPDATE users SET family_id = NULL, family_role = NULL, device_token = NULL, last_activity_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND family_id = ?",
			[]interface{}{userID, familyID}},
		{"DELETE FROM location_entries WHERE family_id = ? AND user_id = ?",
			[]interface{}{familyID, userID}},
		{"DELETE FROM call_home_requests WHERE family_id = ? AND (target_user_id = ? OR requester_id = ?)",
			[]interface{}{familyID, userID, userID}},
		{"DELETE FROM tasks WHERE family_id = ? AND (creator_id = ? OR assignee_id = ?)",
			[]interface{}{familyID, userID, userID}},
		{"DELETE FROM events WHERE family_id = ? AND creator_id = ?",
			[]interface{}{familyID, userID}},
	}

	for _, step := range steps {
		result, err := tx.Exec(step.query, step.args...)
		if err != nil {
			return false, fmt.Errorf("failed to apply removal step: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n > 0 {
			changed = true
		}
	}

	if !changed {
		// Nothing to patch; the deferred rollback discards the empty write
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit removal: %w", err)
	}
	return true, nil
}
