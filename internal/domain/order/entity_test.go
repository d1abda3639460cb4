package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func orderFixture(t *testing.T, isDelivery bool) Order {
	t.Helper()
	addr := AddressSnapshot{}
	if isDelivery {
		addr = AddressSnapshot{Street: "Rua A, 1", City: "Recife", ZipCode: "50000-000"}
	}
	o, err := New(
		"order-1", "session-1", "Maria", "83999990000",
		[]ItemSnapshot{
			{MenuItemID: "1", Name: "X", PriceCents: 2000, Qty: 2},
			{MenuItemID: "2", Name: "Y", PriceCents: 500, Qty: 1},
		},
		1000, isDelivery, addr, "pix", "", t0,
	)
	require.NoError(t, err)
	return o
}

func TestNewComputesAmounts(t *testing.T) {
	o := orderFixture(t, true)
	assert.Equal(t, int64(4500), o.SubtotalCents)
	assert.Equal(t, int64(1000), o.DeliveryFeeCents)
	assert.Equal(t, int64(5500), o.TotalCents)
	assert.Equal(t, StatusPending, o.Status)
}

func TestNewPickupZeroesFee(t *testing.T) {
	o := orderFixture(t, false)
	assert.Equal(t, int64(0), o.DeliveryFeeCents)
	assert.Equal(t, o.SubtotalCents, o.TotalCents)
}

func TestNewRequiresAddressForDelivery(t *testing.T) {
	_, err := New("o", "s", "M", "83", []ItemSnapshot{{MenuItemID: "1", PriceCents: 100, Qty: 1}},
		1000, true, AddressSnapshot{}, "pix", "", t0)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNewRequiresItems(t *testing.T) {
	_, err := New("o", "s", "M", "83", nil, 0, false, AddressSnapshot{}, "pix", "", t0)
	assert.ErrorIs(t, err, ErrInvalidItems)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestWithStatus(t *testing.T) {
	o := orderFixture(t, false)

	o2, err := o.WithStatus(StatusProcessing, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, o2.Status)
	assert.Equal(t, t0.Add(time.Hour), o2.UpdatedAt)

	_, err = o2.WithStatus(StatusPending, t0.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = o2.WithStatus("shipped", t0)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pendente", StatusLabel(StatusPending))
	assert.Equal(t, "Em Preparo", StatusLabel(StatusProcessing))
	assert.Equal(t, "Concluído", StatusLabel(StatusCompleted))
	assert.Equal(t, "Cancelado", StatusLabel(StatusCancelled))
}
