package repository

import (
	"fmt"

	"famlink/internal/database"
	"famlink/internal/models"
)

// MessageRepository handles database operations for family chat
type MessageRepository struct {
	db *database.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *database.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage appends a chat message and returns its generated ID
func (r *MessageRepository) CreateMessage(familyID, senderID int64, body string) (int64, error) {
	query := "INSERT INTO messages (family_id, sender_id, body) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, senderID, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create message: %w", err)
	}
	return id, nil
}

// ListMessagesBefore retrieves up to limit messages older than beforeID,
// newest first. A beforeID of 0 starts from the newest message.
func (r *MessageRepository) ListMessagesBefore(familyID, beforeID int64, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT id, family_id, sender_id, body, created_at FROM messages
		WHERE family_id = ?`
	args := []interface{}{familyID}
	if beforeID > 0 {
		query += " AND id < ?"
		args = append(args, beforeID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.FamilyID, &msg.SenderID, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
