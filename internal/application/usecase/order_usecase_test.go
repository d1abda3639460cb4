package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "sabordigital/internal/domain/order"
)

func seedOrder(t *testing.T, repo *memOrderRepo, id string, status orderdom.Status, createdAt time.Time) {
	t.Helper()
	o, err := orderdom.New(id, "s1", "Maria", "83999990000",
		[]orderdom.ItemSnapshot{{MenuItemID: "1", Name: "X", PriceCents: 2000, Qty: 2}},
		0, false, orderdom.AddressSnapshot{}, "pix", "", createdAt)
	require.NoError(t, err)
	o.Status = status
	repo.orders[id] = o
}

func TestUpdateStatusBuildsNotification(t *testing.T) {
	repo := newMemOrderRepo()
	seedOrder(t, repo, "o1", orderdom.StatusPending, testTime)
	uc := NewOrderUsecaseWithClock(repo, fixedClock{testTime.Add(time.Hour)})

	res, err := uc.UpdateStatus(context.Background(), "o1", orderdom.StatusProcessing)
	require.NoError(t, err)

	assert.Equal(t, orderdom.StatusProcessing, res.Order.Status)
	assert.Contains(t, res.Message, "*Em Preparo*")
	assert.Contains(t, res.WhatsAppLink, "https://wa.me/83999990000?text=")

	stored, _ := repo.GetByID(context.Background(), "o1")
	assert.Equal(t, orderdom.StatusProcessing, stored.Status)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	repo := newMemOrderRepo()
	seedOrder(t, repo, "o1", orderdom.StatusCompleted, testTime)
	uc := NewOrderUsecaseWithClock(repo, fixedClock{testTime})

	_, err := uc.UpdateStatus(context.Background(), "o1", orderdom.StatusPending)
	assert.ErrorIs(t, err, orderdom.ErrInvalidTransition)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	uc := NewOrderUsecaseWithClock(newMemOrderRepo(), fixedClock{testTime})

	_, err := uc.UpdateStatus(context.Background(), "ghost", orderdom.StatusProcessing)
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
}

func TestDashboardCountsTodayOnly(t *testing.T) {
	repo := newMemOrderRepo()
	seedOrder(t, repo, "o1", orderdom.StatusPending, testTime)
	seedOrder(t, repo, "o2", orderdom.StatusCompleted, testTime.Add(time.Hour))
	seedOrder(t, repo, "o3", orderdom.StatusCancelled, testTime.Add(2*time.Hour))
	seedOrder(t, repo, "old", orderdom.StatusCompleted, testTime.Add(-48*time.Hour))

	uc := NewOrderUsecaseWithClock(repo, fixedClock{testTime.Add(3 * time.Hour)})

	sum, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TodayOrders)
	assert.Equal(t, 1, sum.CountsByStatus["pending"])
	assert.Equal(t, 1, sum.CountsByStatus["completed"])
	assert.Equal(t, 1, sum.CountsByStatus["cancelled"])
	// cancelled orders do not count toward revenue
	assert.Equal(t, int64(8000), sum.TodayRevenueCents)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newMemOrderRepo()
	seedOrder(t, repo, "o1", orderdom.StatusPending, testTime)
	seedOrder(t, repo, "o2", orderdom.StatusCompleted, testTime)

	uc := NewOrderUsecaseWithClock(repo, fixedClock{testTime})

	res, err := uc.List(context.Background(), OrderListQuery{Status: "pending"}, orderdom.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "o1", res.Items[0].ID)

	all, err := uc.List(context.Background(), OrderListQuery{Status: "all"}, orderdom.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestListFiltersByDateRangeAndSearch(t *testing.T) {
	repo := newMemOrderRepo()
	seedOrder(t, repo, "o-old", orderdom.StatusCompleted, testTime.Add(-72*time.Hour))
	seedOrder(t, repo, "o-today", orderdom.StatusPending, testTime)

	uc := NewOrderUsecaseWithClock(repo, fixedClock{testTime})

	from := testTime.Add(-time.Hour)
	to := testTime.Add(time.Hour)
	res, err := uc.List(context.Background(), OrderListQuery{CreatedFrom: &from, CreatedTo: &to}, orderdom.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "o-today", res.Items[0].ID)

	// seedOrder names every customer Maria; search is case-insensitive
	byName, err := uc.List(context.Background(), OrderListQuery{Search: "mar"}, orderdom.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, byName.Items, 2)

	none, err := uc.List(context.Background(), OrderListQuery{Search: "pedro"}, orderdom.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestDashboardPagesThroughBusyDay(t *testing.T) {
	repo := newMemOrderRepo()
	for i := 0; i < dashboardPageSize+150; i++ {
		seedOrder(t, repo, fmt.Sprintf("o%d", i), orderdom.StatusPending, testTime.Add(time.Duration(i)*time.Second))
	}

	uc := NewOrderUsecaseWithClock(repo, fixedClock{testTime.Add(time.Hour)})

	sum, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dashboardPageSize+150, sum.TodayOrders)
	assert.Equal(t, dashboardPageSize+150, sum.CountsByStatus["pending"])
	assert.Equal(t, int64(dashboardPageSize+150)*4000, sum.TodayRevenueCents)
}
