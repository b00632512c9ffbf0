package service

import (
	"errors"
	"fmt"

	"famlink/internal/models"
	"famlink/internal/repository"
)

var (
	ErrFamilyNotFound  = errors.New("family not found")
	ErrNotFamilyMember = errors.New("user is not a member of this family")
	ErrAlreadyMember   = errors.New("user already belongs to a family")
)

// FamilyService handles family and membership business logic
type FamilyService struct {
	familyRepo *repository.FamilyRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(familyRepo *repository.FamilyRepository) *FamilyService {
	return &FamilyService{familyRepo: familyRepo}
}

// CreateFamily creates a new family with the creator as a parent
func (s *FamilyService) CreateFamily(name string, creator *models.User) (*models.Family, error) {
	if name == "" {
		return nil, errors.New("family name is required")
	}
	if creator.FamilyID != nil {
		return nil, ErrAlreadyMember
	}

	family, err := s.familyRepo.CreateFamily(name, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}
	return family, nil
}

// GetFamily retrieves a family by ID
func (s *FamilyService) GetFamily(familyID int64) (*models.Family, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	return family, nil
}

// GetFamilyWithMembers retrieves a family and its member roster
func (s *FamilyService) GetFamilyWithMembers(familyID int64) (*models.FamilyWithMembers, error) {
	family, err := s.GetFamily(familyID)
	if err != nil {
		return nil, err
	}

	members, users, err := s.familyRepo.GetFamilyMembers(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}

	return &models.FamilyWithMembers{
		Family:  *family,
		Members: members,
		Users:   users,
	}, nil
}

// VerifyFamilyAccess checks if a user is a member of a family
func (s *FamilyService) VerifyFamilyAccess(userID, familyID int64) error {
	isMember, err := s.familyRepo.IsMember(userID, familyID)
	if err != nil {
		return fmt.Errorf("failed to verify family access: %w", err)
	}
	if !isMember {
		return ErrNotFamilyMember
	}
	return nil
}

// GetMemberRole returns a user's role within a family, or "" if not a member
func (s *FamilyService) GetMemberRole(userID, familyID int64) (string, error) {
	role, err := s.familyRepo.GetMemberRole(userID, familyID)
	if err != nil {
		return "", fmt.Errorf("failed to get member role: %w", err)
	}
	return role, nil
}
