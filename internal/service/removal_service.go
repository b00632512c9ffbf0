package service

import (
	"errors"
	"fmt"
	"log"

	"famlink/internal/models"
	"famlink/internal/repository"
	"famlink/internal/security"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotAuthorized   = errors.New("not authorized for this family")
)

// RemovalService removes a member from a family together with all of
// the member's family-scoped data. Removals within one family are
// serialized so a concurrent removal cannot resurrect data written by
// an interleaved read-modify-write.
type RemovalService struct {
	familyRepo *repository.FamilyRepository
	familyLock *security.KeyedMutex
}

// NewRemovalService creates a new removal service
func NewRemovalService(familyRepo *repository.FamilyRepository) *RemovalService {
	return &RemovalService{
		familyRepo: familyRepo,
		familyLock: security.NewKeyedMutex(),
	}
}

// RemoveMember removes userID from familyID and deletes the member's
// location history, call-home requests, tasks, and events in a single
// transaction: either all of it goes or none of it does. The caller may
// remove themselves; removing anyone else requires a parent or guardian
// role in that family.
//
// Removing a user who is not a member succeeds as a no-op, so retries
// of a removal that already went through are harmless.
func (s *RemovalService) RemoveMember(caller *models.User, familyID, userID int64) (string, error) {
	if caller == nil {
		return "", ErrUnauthenticated
	}
	if familyID <= 0 {
		return "", fmt.Errorf("%w: familyId is required", ErrInvalidArgument)
	}
	if userID <= 0 {
		return "", fmt.Errorf("%w: userId is required", ErrInvalidArgument)
	}

	if caller.ID != userID {
		role, err := s.familyRepo.GetMemberRole(caller.ID, familyID)
		if err != nil {
			return "", fmt.Errorf("failed to check caller role: %w", err)
		}
		if !models.CanManageFamily(role) {
			return "", ErrNotAuthorized
		}
	}

	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return "", fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return "", ErrFamilyNotFound
	}

	unlock := s.familyLock.Lock(familyID)
	defer unlock()

	changed, err := s.familyRepo.RemoveMemberCascade(familyID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to remove member: %w", err)
	}

	if !changed {
		log.Printf("Remove member: nothing to remove: family=%d user=%d", familyID, userID)
		return fmt.Sprintf("User %d is not a member of family %q; nothing to remove", userID, family.Name), nil
	}

	log.Printf("Removed member: family=%d user=%d caller=%d", familyID, userID, caller.ID)
	return fmt.Sprintf("User %d removed from family %q", userID, family.Name), nil
}
