package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	profiledom "sabordigital/internal/domain/profile"
)

var (
	ErrProfileInvalidArgument = errors.New("profile_usecase: invalid argument")
)

// ProfileUsecase serves the signed-in customer's own profile, creating it
// on first access so the checkout form can prefill the name field.
type ProfileUsecase struct {
	repo  profiledom.Repository
	clock Clock
}

func NewProfileUsecase(repo profiledom.Repository) *ProfileUsecase {
	return &ProfileUsecase{repo: repo, clock: systemClock{}}
}

// NewProfileUsecaseWithClock is useful for tests.
func NewProfileUsecaseWithClock(repo profiledom.Repository, clock Clock) *ProfileUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ProfileUsecase{repo: repo, clock: clock}
}

// Me resolves the profile for the verified identity. A first-time caller
// gets a customer profile persisted from the token claims; an existing
// profile is returned as stored (the role field is never touched here).
func (uc *ProfileUsecase) Me(ctx context.Context, uid, email, displayName string) (profiledom.Profile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return profiledom.Profile{}, ErrProfileInvalidArgument
	}

	p, err := uc.repo.GetByID(ctx, uid)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, profiledom.ErrNotFound) {
		return profiledom.Profile{}, err
	}

	p, err = profiledom.New(uid, email, displayName, profiledom.RoleCustomer, uc.clock.Now())
	if err != nil {
		return profiledom.Profile{}, err
	}
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return profiledom.Profile{}, err
	}
	log.Printf("[profile_usecase] profile created uid=%q role=%s", p.ID, p.Role)
	return p, nil
}
