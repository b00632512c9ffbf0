package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"famlink/internal/credentials"
	"famlink/internal/models"
	"famlink/internal/repository"
	"famlink/internal/validation"
)

var (
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrInvitationExpired    = errors.New("invitation has expired")
)

// InvitationService handles the invitation lifecycle: creation with a
// short join code, accept/decline, and the periodic sweep that expires
// stale invitations and deletes terminal ones.
type InvitationService struct {
	invitationRepo *repository.InvitationRepository
	familyRepo     *repository.FamilyRepository
	emailService   *EmailService
	ttl            time.Duration
}

// NewInvitationService creates a new invitation service
func NewInvitationService(invitationRepo *repository.InvitationRepository, familyRepo *repository.FamilyRepository, emailService *EmailService, ttl time.Duration) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		familyRepo:     familyRepo,
		emailService:   emailService,
		ttl:            ttl,
	}
}

// Invite creates a pending invitation from a family member to an email
// address and sends the join code by email. Email delivery is
// best-effort: a failed send leaves the invitation usable and is only
// logged.
func (s *InvitationService) Invite(ctx context.Context, sender *models.User, familyID int64, email string) (*models.Invitation, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	isMember, err := s.familyRepo.IsMember(sender.ID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotFamilyMember
	}

	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	code, err := s.uniqueJoinCode()
	if err != nil {
		return nil, err
	}

	invitation, err := s.invitationRepo.CreateInvitation(familyID, sender.ID, email, code, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	if err := s.emailService.SendInvitationEmail(ctx, email, sender.Name, family.Name, code); err != nil {
		log.Printf("Failed to send invitation email: invitation=%s error=%v", invitation.ID, err)
	}

	return invitation, nil
}

// uniqueJoinCode generates a join code, retrying on the rare collision
func (s *InvitationService) uniqueJoinCode() (string, error) {
	const maxRetries = 10
	for i := 0; i < maxRetries; i++ {
		code, err := credentials.GenerateJoinCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		existing, err := s.invitationRepo.GetInvitationByCode(code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code uniqueness: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique join code")
}

// Accept joins the user to the inviting family and marks the invitation
// ACCEPTED. An invitation past its TTL is flipped to EXPIRED instead,
// leaving deletion to the sweep.
func (s *InvitationService) Accept(code string, user *models.User) (*models.Family, error) {
	invitation, err := s.invitationRepo.GetInvitationByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}
	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}
	if invitation.IsStale(time.Now(), s.ttl) {
		if err := s.invitationRepo.UpdateStatus(invitation.ID, models.InvitationExpired); err != nil {
			return nil, fmt.Errorf("failed to expire invitation: %w", err)
		}
		return nil, ErrInvitationExpired
	}
	if user.FamilyID != nil {
		return nil, ErrAlreadyMember
	}

	family, err := s.familyRepo.GetFamilyByID(invitation.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	if err := s.familyRepo.AddMember(family.ID, user.ID, models.RoleParent); err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	if err := s.invitationRepo.UpdateStatus(invitation.ID, models.InvitationAccepted); err != nil {
		return nil, fmt.Errorf("failed to mark invitation accepted: %w", err)
	}

	return family, nil
}

// Decline marks a pending invitation DECLINED
func (s *InvitationService) Decline(code string) error {
	invitation, err := s.invitationRepo.GetInvitationByCode(code)
	if err != nil {
		return fmt.Errorf("failed to look up invitation: %w", err)
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}
	if invitation.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}

	if err := s.invitationRepo.UpdateStatus(invitation.ID, models.InvitationDeclined); err != nil {
		return fmt.Errorf("failed to mark invitation declined: %w", err)
	}
	return nil
}

// ListFamilyInvitations retrieves a family's invitations for a member
func (s *InvitationService) ListFamilyInvitations(callerID, familyID int64) ([]models.Invitation, error) {
	isMember, err := s.familyRepo.IsMember(callerID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotFamilyMember
	}

	invitations, err := s.invitationRepo.ListFamilyInvitations(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// SweepResult summarizes one sweep pass
type SweepResult struct {
	Deleted int
	Expired int
	Skipped int
}

// Sweep scans every invitation and normalizes its lifecycle state:
// terminal invitations (ACCEPTED, DECLINED, EXPIRED) are deleted,
// pending ones older than the TTL get a status-only update to EXPIRED,
// and fresh pending ones are untouched. Malformed records are skipped
// with a warning rather than failing the pass. All scheduled changes
// apply in a single transaction; a pass with nothing to change writes
// nothing.
//
// A stale pending invitation therefore takes two passes to disappear:
// the first expires it, the next deletes it. Clients get one sweep
// period to observe the EXPIRED state.
func (s *InvitationService) Sweep(now time.Time) (*SweepResult, error) {
	invitations, err := s.invitationRepo.ListAllInvitations()
	if err != nil {
		return nil, fmt.Errorf("failed to load invitations: %w", err)
	}
	if len(invitations) == 0 {
		return &SweepResult{}, nil
	}

	result := &SweepResult{}
	var deleteIDs, expireIDs []string

	for _, inv := range invitations {
		if inv.Status == "" || inv.CreatedAt.IsZero() {
			log.Printf("Sweep: skipping malformed invitation: id=%s status=%q", inv.ID, inv.Status)
			result.Skipped++
			continue
		}

		switch {
		case inv.IsTerminal():
			deleteIDs = append(deleteIDs, inv.ID)
		case inv.Status == models.InvitationPending:
			if inv.IsStale(now, s.ttl) {
				expireIDs = append(expireIDs, inv.ID)
			}
		default:
			log.Printf("Sweep: unknown invitation status: id=%s status=%q", inv.ID, inv.Status)
			result.Skipped++
		}
	}

	if err := s.invitationRepo.ApplySweep(deleteIDs, expireIDs); err != nil {
		return nil, fmt.Errorf("failed to apply sweep: %w", err)
	}

	result.Deleted = len(deleteIDs)
	result.Expired = len(expireIDs)
	return result, nil
}
