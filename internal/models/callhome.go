package models

import "time"

// Call-home request statuses
const (
	CallHomeRequested = "REQUESTED"
	CallHomeAccepted  = "ACCEPTED"
	CallHomeRejected  = "REJECTED"
)

// CallHomeRequest is a transient request from one family member asking
// another to return home. Keyed by target user within a family, so a
// re-request replaces any earlier one.
type CallHomeRequest struct {
	FamilyID     int64     `json:"family_id"`
	TargetUserID int64     `json:"target_user_id"`
	RequesterID  int64     `json:"requester_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
