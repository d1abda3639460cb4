package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "sabordigital/internal/domain/cart"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memCartRepo is an in-memory cart.Repository fake.
type memCartRepo struct {
	carts   map[string]*cartdom.Cart
	deletes int
	failGet error
	failPut error
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *memCartRepo) GetBySessionID(_ context.Context, sessionID string) (*cartdom.Cart, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	c, ok := r.carts[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	return &cp, nil
}

func (r *memCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	if r.failPut != nil {
		return r.failPut
	}
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	r.carts[c.ID] = &cp
	return nil
}

func (r *memCartRepo) DeleteBySessionID(_ context.Context, sessionID string) error {
	r.deletes++
	delete(r.carts, sessionID)
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
}

func newCartUC(repo cartdom.Repository) *CartUsecase {
	return NewCartUsecaseWithClock(repo, fixedClock{testTime}, sequentialIDs())
}

func TestAddItemMergesByMenuItemID(t *testing.T) {
	repo := newMemCartRepo()
	uc := newCartUC(repo)
	ctx := context.Background()

	// Scenario A: add qty=2 then qty=1 of the same menu item
	c, m, err := uc.AddItem(ctx, "s1", "1", "X", 1000, 2, "")
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeAdded, m.Outcome)
	assert.Equal(t, "X", m.ItemName)
	require.Len(t, c.Items, 1)

	c, m, err = uc.AddItem(ctx, "s1", "1", "X", 1000, 1, "")
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeUpdated, m.Outcome)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, int64(3000), c.TotalCents())

	// mirrored to the store
	stored, err := repo.GetBySessionID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestAddItemRejectsBadQty(t *testing.T) {
	uc := newCartUC(newMemCartRepo())

	_, _, err := uc.AddItem(context.Background(), "s1", "1", "X", 1000, 0, "")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestGetUnknownSessionYieldsEmptyCart(t *testing.T) {
	uc := newCartUC(newMemCartRepo())

	c, err := uc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
}

func TestGetDegradesToEmptyOnStorageError(t *testing.T) {
	repo := newMemCartRepo()
	repo.failGet = errors.New("backend down")
	uc := newCartUC(repo)

	c, err := uc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestMutationsSurviveMirrorFailure(t *testing.T) {
	repo := newMemCartRepo()
	repo.failPut = errors.New("write refused")
	uc := newCartUC(repo)

	c, m, err := uc.AddItem(context.Background(), "s1", "1", "X", 1000, 2, "")
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeAdded, m.Outcome)
	assert.Equal(t, 2, c.TotalItems())
}

func TestSetQuantityBelowFloorSkipsPersist(t *testing.T) {
	repo := newMemCartRepo()
	uc := newCartUC(repo)
	ctx := context.Background()

	c, _, err := uc.AddItem(ctx, "s1", "1", "X", 1000, 2, "")
	require.NoError(t, err)
	lineID := c.Items[0].ID

	c, m, err := uc.SetQuantity(ctx, "s1", lineID, 0)
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeNone, m.Outcome)
	assert.Equal(t, 2, c.Items[0].Quantity)

	stored, _ := repo.GetBySessionID(ctx, "s1")
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestRemoveItemThenClear(t *testing.T) {
	repo := newMemCartRepo()
	uc := newCartUC(repo)
	ctx := context.Background()

	c, _, err := uc.AddItem(ctx, "s1", "1", "X", 1000, 1, "")
	require.NoError(t, err)
	_, _, err = uc.AddItem(ctx, "s1", "2", "Y", 500, 2, "")
	require.NoError(t, err)

	_, m, err := uc.RemoveItem(ctx, "s1", c.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeRemoved, m.Outcome)
	assert.Equal(t, "X", m.ItemName)

	// removing an unknown line is silent
	_, m, err = uc.RemoveItem(ctx, "s1", "ghost")
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeNone, m.Outcome)

	c, m, err = uc.Clear(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cartdom.OutcomeCleared, m.Outcome)
	assert.True(t, c.IsEmpty())

	stored, _ := repo.GetBySessionID(ctx, "s1")
	assert.True(t, stored.IsEmpty())
}
