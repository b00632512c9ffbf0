package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	userID, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseTokenRejections(t *testing.T) {
	valid, err := CreateToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}
	expired, err := CreateToken("secret", 42, -time.Hour)
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other-secret", valid},
		{"expired token", "secret", expired},
		{"empty token", "secret", ""},
		{"garbage token", "secret", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
