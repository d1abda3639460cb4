package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func TestNew_Validates(t *testing.T) {
	it, err := New("item-1", "Picanha Grelhada", "300g com farofa", 2000, "", "Pratos", true, testTime)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), it.PriceCents)
	assert.True(t, it.IsAvailable)

	_, err = New("item-2", "", "", 2000, "", "", true, testTime)
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = New("item-3", "Suco", "", -1, "", "", true, testTime)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestEffectivePriceCents_PrefersPromotion(t *testing.T) {
	it, err := New("item-1", "Picanha Grelhada", "", 2000, "", "Pratos", true, testTime)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), it.EffectivePriceCents())

	promo := int64(1500)
	it.PromotionalPriceCents = &promo
	assert.Equal(t, int64(1500), it.EffectivePriceCents())
}

func TestApply_PartialPatch(t *testing.T) {
	it, err := New("item-1", "Picanha Grelhada", "300g", 2000, "", "Pratos", true, testTime)
	require.NoError(t, err)

	name := "Picanha Premium"
	price := int64(2500)
	updated, err := it.Apply(Patch{Name: &name, PriceCents: &price})
	require.NoError(t, err)

	assert.Equal(t, "Picanha Premium", updated.Name)
	assert.Equal(t, int64(2500), updated.PriceCents)
	// untouched fields survive
	assert.Equal(t, "300g", updated.Description)
	assert.Equal(t, "Pratos", updated.Category)
}

func TestApply_NegativePromoClearsPromotion(t *testing.T) {
	promo := int64(1500)
	it, err := New("item-1", "Picanha Grelhada", "", 2000, "", "Pratos", true, testTime)
	require.NoError(t, err)
	it.PromotionalPriceCents = &promo

	clear := int64(-1)
	updated, err := it.Apply(Patch{PromotionalPriceCents: &clear})
	require.NoError(t, err)
	assert.Nil(t, updated.PromotionalPriceCents)
	assert.Equal(t, int64(2000), updated.EffectivePriceCents())
}

func TestApply_InvalidPatchRejected(t *testing.T) {
	it, err := New("item-1", "Picanha Grelhada", "", 2000, "", "Pratos", true, testTime)
	require.NoError(t, err)

	empty := "   "
	_, err = it.Apply(Patch{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidItem)
}
