package repository

import (
	"database/sql"
	"fmt"

	"famlink/internal/database"
	"famlink/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, family_id, family_role, device_token, last_activity_id, created_at, updated_at`

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	query := "INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by ID, or nil if absent
func (r *UserRepository) GetUserByID(userID int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, userID))
}

// GetUserByEmail retrieves a user by email, or nil if absent
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// UpdateDeviceToken stores the user's push token; an empty token clears it
func (r *UserRepository) UpdateDeviceToken(userID int64, token string) error {
	var value interface{}
	if token != "" {
		value = token
	}
	query := "UPDATE users SET device_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, value, userID); err != nil {
		return fmt.Errorf("failed to update device token: %w", err)
	}
	return nil
}

// SetLastActivity records the user's most recent location entry
func (r *UserRepository) SetLastActivity(userID, entryID int64) error {
	query := "UPDATE users SET last_activity_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, entryID, userID); err != nil {
		return fmt.Errorf("failed to set last activity: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var familyID, lastActivityID sql.NullInt64
	var familyRole, deviceToken sql.NullString

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&familyID, &familyRole, &deviceToken, &lastActivityID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if familyID.Valid {
		user.FamilyID = &familyID.Int64
	}
	if familyRole.Valid {
		user.FamilyRole = &familyRole.String
	}
	if deviceToken.Valid {
		user.DeviceToken = &deviceToken.String
	}
	if lastActivityID.Valid {
		user.LastActivityID = &lastActivityID.Int64
	}

	return &user, nil
}
