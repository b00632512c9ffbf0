package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"famlink/internal/models"
	"famlink/internal/repository"
)

// LocationService records member location check-ins and maintains each
// user's pointer to their latest entry
type LocationService struct {
	locationRepo  *repository.LocationRepository
	userRepo      *repository.UserRepository
	familyService *FamilyService
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo *repository.LocationRepository, userRepo *repository.UserRepository, familyService *FamilyService) *LocationService {
	return &LocationService{
		locationRepo:  locationRepo,
		userRepo:      userRepo,
		familyService: familyService,
	}
}

// RecordEntry appends a location check-in for the caller and updates
// their last-activity pointer. A failed pointer update is logged but
// does not lose the entry.
func (s *LocationService) RecordEntry(caller *models.User, familyID int64, latitude, longitude float64, label string) (*models.LocationEntry, error) {
	if latitude < -90 || latitude > 90 {
		return nil, errors.New("latitude out of range")
	}
	if longitude < -180 || longitude > 180 {
		return nil, errors.New("longitude out of range")
	}
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}

	entry := &models.LocationEntry{
		FamilyID:   familyID,
		UserID:     caller.ID,
		Latitude:   latitude,
		Longitude:  longitude,
		Label:      label,
		RecordedAt: time.Now().UTC(),
	}
	id, err := s.locationRepo.CreateEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record location entry: %w", err)
	}

	if err := s.userRepo.SetLastActivity(caller.ID, id); err != nil {
		log.Printf("Failed to update last activity: user=%d entry=%d error=%v", caller.ID, id, err)
	}

	return entry, nil
}

// ListEntries retrieves a family's recent location entries for a member
func (s *LocationService) ListEntries(caller *models.User, familyID int64, limit int) ([]models.LocationEntry, error) {
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}
	return s.locationRepo.ListFamilyEntries(familyID, limit)
}
