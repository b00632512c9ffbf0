package service

import (
	"errors"
	"testing"

	"famlink/internal/models"
)

func TestCreateFamilyMakesCreatorParent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFamilyService(env.familyRepo)

	creator := env.createUser(t, "creator@example.com", "Creator")
	family, err := svc.CreateFamily("The Smiths", creator)
	if err != nil {
		t.Fatalf("CreateFamily failed: %v", err)
	}

	role, err := svc.GetMemberRole(creator.ID, family.ID)
	if err != nil {
		t.Fatalf("GetMemberRole failed: %v", err)
	}
	if role != models.RoleParent {
		t.Errorf("Creator role = %s, want parent", role)
	}

	got := env.reload(t, creator.ID)
	if got.FamilyID == nil || *got.FamilyID != family.ID {
		t.Errorf("Creator FamilyID = %v, want %d", got.FamilyID, family.ID)
	}

	// A user already in a family cannot create another
	if _, err := svc.CreateFamily("Second Family", got); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("Second CreateFamily err = %v, want ErrAlreadyMember", err)
	}
}

func TestGetFamilyWithMembers(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFamilyService(env.familyRepo)

	creator := env.createUser(t, "creator@example.com", "Creator")
	family := env.createFamily(t, "The Smiths", creator)
	kid := env.createUser(t, "kid@example.com", "Kid")
	env.addMember(t, family, kid, models.RoleChild)

	detail, err := svc.GetFamilyWithMembers(family.ID)
	if err != nil {
		t.Fatalf("GetFamilyWithMembers failed: %v", err)
	}
	if len(detail.Members) != 2 {
		t.Errorf("Members = %d, want 2", len(detail.Members))
	}
	if len(detail.Users) != 2 {
		t.Errorf("Users = %d, want 2", len(detail.Users))
	}

	if _, err := svc.GetFamilyWithMembers(family.ID + 999); !errors.Is(err, ErrFamilyNotFound) {
		t.Errorf("Unknown family err = %v, want ErrFamilyNotFound", err)
	}
}

func TestVerifyFamilyAccess(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFamilyService(env.familyRepo)

	creator := env.createUser(t, "creator@example.com", "Creator")
	family := env.createFamily(t, "The Smiths", creator)
	outsider := env.createUser(t, "outsider@example.com", "Outsider")

	if err := svc.VerifyFamilyAccess(creator.ID, family.ID); err != nil {
		t.Errorf("Member access denied: %v", err)
	}
	if err := svc.VerifyFamilyAccess(outsider.ID, family.ID); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Outsider access err = %v, want ErrNotFamilyMember", err)
	}
}
