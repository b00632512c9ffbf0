package service

import (
	"path/filepath"
	"testing"

	"famlink/internal/database"
	"famlink/internal/models"
	"famlink/internal/repository"
)

// testEnv wires repositories against a throwaway SQLite database
type testEnv struct {
	db             *database.DB
	userRepo       *repository.UserRepository
	familyRepo     *repository.FamilyRepository
	invitationRepo *repository.InvitationRepository
	callHomeRepo   *repository.CallHomeRepository
	taskRepo       *repository.TaskRepository
	eventRepo      *repository.EventRepository
	locationRepo   *repository.LocationRepository
	messageRepo    *repository.MessageRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &testEnv{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		familyRepo:     repository.NewFamilyRepository(db),
		invitationRepo: repository.NewInvitationRepository(db),
		callHomeRepo:   repository.NewCallHomeRepository(db),
		taskRepo:       repository.NewTaskRepository(db),
		eventRepo:      repository.NewEventRepository(db),
		locationRepo:   repository.NewLocationRepository(db),
		messageRepo:    repository.NewMessageRepository(db),
	}
}

// createUser creates a user account directly through the repository
func (env *testEnv) createUser(t *testing.T, email, name string) *models.User {
	t.Helper()
	user, err := env.userRepo.CreateUser(email, "not-a-real-hash", name)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

// createFamily creates a family with the given user as a parent member
func (env *testEnv) createFamily(t *testing.T, name string, creator *models.User) *models.Family {
	t.Helper()
	family, err := env.familyRepo.CreateFamily(name, creator.ID)
	if err != nil {
		t.Fatalf("Failed to create family %s: %v", name, err)
	}
	return family
}

// addMember joins a user to a family with the given role
func (env *testEnv) addMember(t *testing.T, family *models.Family, user *models.User, role string) {
	t.Helper()
	if err := env.familyRepo.AddMember(family.ID, user.ID, role); err != nil {
		t.Fatalf("Failed to add member %d to family %d: %v", user.ID, family.ID, err)
	}
}

// reload fetches the current state of a user record
func (env *testEnv) reload(t *testing.T, userID int64) *models.User {
	t.Helper()
	user, err := env.userRepo.GetUserByID(userID)
	if err != nil {
		t.Fatalf("Failed to reload user %d: %v", userID, err)
	}
	if user == nil {
		t.Fatalf("User %d not found", userID)
	}
	return user
}

// disabledEmailService returns an email service that never talks to SES
func disabledEmailService(t *testing.T) *EmailService {
	t.Helper()
	emailService, err := NewEmailService("", "", "", "")
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}
	return emailService
}
