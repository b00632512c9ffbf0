package models

import "time"

// Message is one entry in a family's chat
type Message struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	SenderID  int64     `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
