package models

import "time"

// Task is a family-scoped to-do item with an optional assignee
type Task struct {
	ID         int64      `json:"id"`
	FamilyID   int64      `json:"family_id"`
	CreatorID  int64      `json:"creator_id"`
	AssigneeID *int64     `json:"assignee_id,omitempty"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	Done       bool       `json:"done"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
