package models

import (
	"testing"
	"time"
)

func TestInvitationIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{InvitationPending, false},
		{InvitationAccepted, true},
		{InvitationDeclined, true},
		{InvitationExpired, true},
		{"SOMETHING_ELSE", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			inv := Invitation{Status: tt.status}
			if got := inv.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestInvitationIsStale(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ttl := 48 * time.Hour

	tests := []struct {
		name      string
		status    string
		createdAt time.Time
		want      bool
	}{
		{"fresh pending", InvitationPending, now.Add(-time.Hour), false},
		{"exactly at ttl", InvitationPending, now.Add(-ttl), false},
		{"past ttl", InvitationPending, now.Add(-ttl - time.Second), true},
		{"old but accepted", InvitationAccepted, now.Add(-100 * time.Hour), false},
		{"old but expired", InvitationExpired, now.Add(-100 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invitation{Status: tt.status, CreatedAt: tt.createdAt}
			if got := inv.IsStale(now, ttl); got != tt.want {
				t.Errorf("IsStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsKnownInvitationStatus(t *testing.T) {
	for _, status := range []string{InvitationPending, InvitationAccepted, InvitationDeclined, InvitationExpired} {
		if !IsKnownInvitationStatus(status) {
			t.Errorf("IsKnownInvitationStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"", "pending", "CANCELLED"} {
		if IsKnownInvitationStatus(status) {
			t.Errorf("IsKnownInvitationStatus(%q) = true", status)
		}
	}
}

func TestCanManageFamily(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleParent, true},
		{RoleGuardian, true},
		{RoleChild, false},
		{"", false},
		{"admin", false},
	}

	for _, tt := range tests {
		if got := CanManageFamily(tt.role); got != tt.want {
			t.Errorf("CanManageFamily(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
