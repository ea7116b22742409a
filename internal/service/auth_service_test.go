package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestStaffAuthenticator(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Pass@0001"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	auth := NewStaffAuthenticator(map[string]string{"chef@slps.one": string(hash)}, "slps.one")
	ctx := context.Background()

	tests := []struct {
		name     string
		staffID  string
		password string
		wantID   string
		wantErr  error
	}{
		{name: "full id", staffID: "chef@slps.one", password: "Pass@0001", wantID: "chef@slps.one"},
		{name: "bare id gets domain", staffID: "Chef", password: "Pass@0001", wantID: "chef@slps.one"},
		{name: "wrong password", staffID: "chef", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown staff", staffID: "ghost", password: "Pass@0001", wantErr: ErrInvalidCredentials},
		{name: "missing password", staffID: "chef", password: "", wantErr: ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := auth.Authenticate(ctx, tt.staffID, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() unexpected error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("Authenticate() id = %s, want %s", id, tt.wantID)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")); err != nil {
		t.Errorf("hash does not match password: %v", err)
	}
}
