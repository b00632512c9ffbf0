package models

import "time"

// Family roles a member can hold
const (
	RoleParent   = "parent"
	RoleGuardian = "guardian"
	RoleChild    = "child"
)

// User represents an account in the system. FamilyID, FamilyRole,
// DeviceToken and LastActivityID are affiliation fields: they are nulled
// out when the user leaves a family, while the record itself persists.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Name           string     `json:"name"`
	FamilyID       *int64     `json:"family_id,omitempty"`
	FamilyRole     *string    `json:"family_role,omitempty"`
	DeviceToken    *string    `json:"-"`
	LastActivityID *int64     `json:"last_activity_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CanManageFamily reports whether the role may act on other members
func CanManageFamily(role string) bool {
	return role == RoleParent || role == RoleGuardian
}
