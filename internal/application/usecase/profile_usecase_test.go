package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profiledom "sabordigital/internal/domain/profile"
)

// memProfileRepo is an in-memory profile.Repository fake.
type memProfileRepo struct {
	profiles map[string]profiledom.Profile
	upserts  int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]profiledom.Profile{}}
}

func (r *memProfileRepo) GetByID(_ context.Context, id string) (profiledom.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return profiledom.Profile{}, profiledom.ErrNotFound
	}
	return p, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p profiledom.Profile) error {
	r.upserts++
	r.profiles[p.ID] = p
	return nil
}

func TestProfileMe_FirstAccessCreatesCustomer(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewProfileUsecaseWithClock(repo, fixedClock{testTime})

	p, err := uc.Me(context.Background(), "uid-1", "ana@example.com", "Ana Souza")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", p.ID)
	assert.Equal(t, profiledom.RoleCustomer, p.Role)
	assert.Equal(t, "Ana Souza", p.CheckoutName())
	assert.Equal(t, 1, repo.upserts)

	stored, err := repo.GetByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, testTime, stored.CreatedAt)
}

func TestProfileMe_ExistingProfileKeepsRole(t *testing.T) {
	repo := newMemProfileRepo()
	repo.profiles["uid-adm"] = profiledom.Profile{
		ID: "uid-adm", Email: "chef@example.com", Role: profiledom.RoleAdmin, CreatedAt: testTime,
	}
	uc := NewProfileUsecaseWithClock(repo, fixedClock{testTime})

	p, err := uc.Me(context.Background(), "uid-adm", "chef@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, profiledom.RoleAdmin, p.Role)
	assert.Equal(t, 0, repo.upserts, "existing profile must not be rewritten")
	// no display name stored: prefill falls back to the email local part
	assert.Equal(t, "chef", p.CheckoutName())
}

func TestProfileMe_EmptyUID(t *testing.T) {
	uc := NewProfileUsecaseWithClock(newMemProfileRepo(), fixedClock{testTime})
	_, err := uc.Me(context.Background(), "  ", "x@example.com", "X")
	assert.True(t, errors.Is(err, ErrProfileInvalidArgument))
}
