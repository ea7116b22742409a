package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid staff id or password")
)

// HashPassword returns a bcrypt hash suitable for STAFF_ACCOUNTS
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// StaffAuthenticator checks staff ids against bcrypt password hashes
type StaffAuthenticator struct {
	accounts map[string]string
	domain   string
}

// NewStaffAuthenticator creates an authenticator. Staff ids without an
// "@" get "@"+domain appended before lookup.
func NewStaffAuthenticator(accounts map[string]string, domain string) *StaffAuthenticator {
	copied := make(map[string]string, len(accounts))
	for id, hash := range accounts {
		copied[strings.ToLower(id)] = hash
	}
	return &StaffAuthenticator{
		accounts: copied,
		domain:   domain,
	}
}

// NormalizeStaffID appends the staff domain to bare ids
func (a *StaffAuthenticator) NormalizeStaffID(staffID string) string {
	staffID = strings.ToLower(strings.TrimSpace(staffID))
	if staffID != "" && a.domain != "" && !strings.Contains(staffID, "@") {
		staffID += "@" + a.domain
	}
	return staffID
}

// Authenticate returns the normalized staff id when the password matches
func (a *StaffAuthenticator) Authenticate(ctx context.Context, staffID, password string) (string, error) {
	if strings.TrimSpace(staffID) == "" || password == "" {
		return "", ErrMissingFields
	}

	id := a.NormalizeStaffID(staffID)
	hash, ok := a.accounts[id]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return id, nil
}
