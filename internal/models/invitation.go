package models

import "time"

// Invitation statuses. PENDING is the only non-terminal state: a stale
// PENDING invitation is first marked EXPIRED by the sweep and deleted by
// a later sweep pass, so clients can observe the EXPIRED state for one
// sweep period before the record disappears.
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationDeclined = "DECLINED"
	InvitationExpired  = "EXPIRED"
)

// Invitation is a time-bounded, single-use join offer from a family to a
// prospective member, identified by a short human-enterable code
type Invitation struct {
	ID        string    `json:"id"`
	FamilyID  int64     `json:"family_id"`
	SenderID  int64     `json:"sender_id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsTerminal reports whether the status can no longer change
func (i *Invitation) IsTerminal() bool {
	return IsTerminalInvitationStatus(i.Status)
}

// IsStale reports whether a pending invitation has outlived the TTL at
// the given instant
func (i *Invitation) IsStale(now time.Time, ttl time.Duration) bool {
	return i.Status == InvitationPending && i.CreatedAt.Before(now.Add(-ttl))
}

// IsTerminalInvitationStatus reports whether a status value is terminal
func IsTerminalInvitationStatus(status string) bool {
	switch status {
	case InvitationAccepted, InvitationDeclined, InvitationExpired:
		return true
	}
	return false
}

// IsKnownInvitationStatus reports whether a status value is one the
// lifecycle defines
func IsKnownInvitationStatus(status string) bool {
	return status == InvitationPending || IsTerminalInvitationStatus(status)
}
