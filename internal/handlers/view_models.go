package handlers

import (
	"time"

	"famlink/internal/models"
)

// userView is the wire shape of a user, without credential fields
type userView struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	FamilyID   *int64 `json:"familyId,omitempty"`
	FamilyRole string `json:"familyRole,omitempty"`
}

func toUserView(user *models.User) userView {
	view := userView{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		FamilyID: user.FamilyID,
	}
	if user.FamilyRole != nil {
		view.FamilyRole = *user.FamilyRole
	}
	return view
}

type familyView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFamilyView(family *models.Family) familyView {
	return familyView{ID: family.ID, Name: family.Name, CreatedAt: family.CreatedAt}
}

type memberView struct {
	UserID   int64     `json:"userId"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type familyDetailView struct {
	familyView
	Members []memberView `json:"members"`
}

func toFamilyDetailView(detail *models.FamilyWithMembers) familyDetailView {
	view := familyDetailView{
		familyView: toFamilyView(&detail.Family),
		Members:    make([]memberView, 0, len(detail.Members)),
	}
	names := make(map[int64]string, len(detail.Users))
	for _, user := range detail.Users {
		names[user.ID] = user.Name
	}
	for _, member := range detail.Members {
		view.Members = append(view.Members, memberView{
			UserID:   member.UserID,
			Name:     names[member.UserID],
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		})
	}
	return view
}

type invitationView struct {
	ID        string    `json:"id"`
	FamilyID  int64     `json:"familyId"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toInvitationView(inv *models.Invitation) invitationView {
	return invitationView{
		ID:        inv.ID,
		FamilyID:  inv.FamilyID,
		Email:     inv.Email,
		Code:      inv.Code,
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt,
		ExpiresAt: inv.ExpiresAt,
	}
}

type callHomeView struct {
	FamilyID     int64     `json:"familyId"`
	TargetUserID int64     `json:"targetUserId"`
	RequesterID  int64     `json:"requesterId"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toCallHomeView(req *models.CallHomeRequest) callHomeView {
	return callHomeView{
		FamilyID:     req.FamilyID,
		TargetUserID: req.TargetUserID,
		RequesterID:  req.RequesterID,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt,
	}
}
