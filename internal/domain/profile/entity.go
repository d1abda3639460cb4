package profile

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidProfile = errors.New("profile: invalid")
	ErrNotFound       = errors.New("profile: not found")
)

// Role gates the admin surface.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Profile mirrors the auth provider's user record plus our role field.
// ID equals the Firebase uid; the auth provider, not this service, owns
// credentials and sessions.
type Profile struct {
	ID          string    `json:"id" firestore:"id"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Role        Role      `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// New validates and returns a Profile. Role defaults to customer.
func New(id, email, displayName string, role Role, now time.Time) (Profile, error) {
	if role == "" {
		role = RoleCustomer
	}
	p := Profile{
		ID:          strings.TrimSpace(id),
		Email:       strings.TrimSpace(email),
		DisplayName: strings.TrimSpace(displayName),
		Role:        role,
		CreatedAt:   now.UTC(),
	}
	if p.ID == "" {
		return Profile{}, ErrInvalidProfile
	}
	if p.Role != RoleAdmin && p.Role != RoleCustomer {
		return Profile{}, ErrInvalidProfile
	}
	return p, nil
}

// CheckoutName is the value used to prefill the checkout draft: display
// name when present, otherwise the local part of the email.
func (p Profile) CheckoutName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if at := strings.IndexByte(p.Email, '@'); at > 0 {
		return p.Email[:at]
	}
	return p.Email
}
