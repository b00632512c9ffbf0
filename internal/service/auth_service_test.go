package service

import (
	"errors"
	"testing"
	"time"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.userRepo, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register("parent@example.com", "supersecret", "Parent")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "parent@example.com" {
		t.Errorf("Email = %s, want parent@example.com", user.Email)
	}
	if user.PasswordHash == "supersecret" {
		t.Error("Password stored in plaintext")
	}

	// Duplicate registration is rejected
	if _, err := svc.Register("parent@example.com", "supersecret", "Parent"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Duplicate register: err = %v, want ErrEmailTaken", err)
	}

	token, loggedIn, err := svc.Login("parent@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("Login returned empty token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login user ID = %d, want %d", loggedIn.ID, user.ID)
	}

	// The token round-trips back to the same user
	fromToken, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if fromToken.ID != user.ID {
		t.Errorf("Token user ID = %d, want %d", fromToken.ID, user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	if _, err := svc.Register("parent@example.com", "supersecret", "Parent"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "parent@example.com", "wrongpass"},
		{"unknown email", "nobody@example.com", "supersecret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	tests := []struct {
		name     string
		email    string
		password string
		display  string
	}{
		{"bad email", "not-an-email", "supersecret", "Parent"},
		{"short password", "parent@example.com", "short", "Parent"},
		{"empty name", "parent@example.com", "supersecret", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.email, tt.password, tt.display); err == nil {
				t.Error("Register succeeded with invalid input")
			}
		})
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) succeeded", token)
		}
	}
}

func TestUpdateDeviceToken(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register("parent@example.com", "supersecret", "Parent")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.UpdateDeviceToken(user.ID, "device-123"); err != nil {
		t.Fatalf("UpdateDeviceToken failed: %v", err)
	}
	got := env.reload(t, user.ID)
	if got.DeviceToken == nil || *got.DeviceToken != "device-123" {
		t.Errorf("DeviceToken = %v, want device-123", got.DeviceToken)
	}

	// An empty token unregisters the device
	if err := svc.UpdateDeviceToken(user.ID, ""); err != nil {
		t.Fatalf("UpdateDeviceToken with empty token failed: %v", err)
	}
	got = env.reload(t, user.ID)
	if got.DeviceToken != nil {
		t.Errorf("DeviceToken = %v, want nil after unregister", got.DeviceToken)
	}
}
