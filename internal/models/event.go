package models

import "time"

// Event is a family-scoped calendar entry
type Event struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	CreatorID int64     `json:"creator_id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
