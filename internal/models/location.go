package models

import "time"

// LocationEntry is one point in a family member's activity feed
type LocationEntry struct {
	ID         int64     `json:"id"`
	FamilyID   int64     `json:"family_id"`
	UserID     int64     `json:"user_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Label      string    `json:"label"`
	RecordedAt time.Time `json:"recorded_at"`
}
