package adminHandler

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "sabordigital/internal/application/usecase"
	orderdom "sabordigital/internal/domain/order"
)

var orderTestTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// memOrderRepo is an in-memory order.Repository fake.
type memOrderRepo struct {
	orders map[string]orderdom.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]orderdom.Order{}}
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) List(_ context.Context, f orderdom.Filter, page orderdom.Page) (orderdom.PageResult, error) {
	var out []orderdom.Order
	for _, o := range r.orders {
		if f.Query != "" && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(f.Query)) {
			continue
		}
		if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && !o.CreatedAt.Before(*f.CreatedTo) {
			continue
		}
		if len(f.Statuses) > 0 {
			hit := false
			for _, s := range f.Statuses {
				if o.Status == s {
					hit = true
				}
			}
			if !hit {
				continue
			}
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	total := len(out)
	if page.PerPage > 0 {
		start := (page.Number - 1) * page.PerPage
		if start < 0 {
			start = 0
		}
		if start > total {
			start = total
		}
		end := start + page.PerPage
		if end > total {
			end = total
		}
		out = out[start:end]
	}
	return orderdom.PageResult{Items: out, TotalCount: total}, nil
}

func (r *memOrderRepo) Count(ctx context.Context, f orderdom.Filter) (int, error) {
	res, err := r.List(ctx, f, orderdom.Page{})
	return res.TotalCount, err
}

func (r *memOrderRepo) Create(_ context.Context, o orderdom.Order) error {
	if _, ok := r.orders[o.ID]; ok {
		return orderdom.ErrConflict
	}
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status orderdom.Status, updatedAt time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.orders[id] = o
	return nil
}

func seedOrder(t *testing.T, repo *memOrderRepo, id, name string, status orderdom.Status, createdAt time.Time) {
	t.Helper()
	o, err := orderdom.New(id, "s1", name, "83999990000",
		[]orderdom.ItemSnapshot{{MenuItemID: "1", Name: "X", PriceCents: 2000, Qty: 1}},
		0, false, orderdom.AddressSnapshot{}, "pix", "", createdAt)
	require.NoError(t, err)
	o.Status = status
	repo.orders[id] = o
}

func newOrderServer(t *testing.T) (http.Handler, *memOrderRepo) {
	t.Helper()
	repo := newMemOrderRepo()
	return NewOrderAdminHandler(usecase.NewOrderUsecase(repo)), repo
}

func TestOrderAdminListFiltersByDateRange(t *testing.T) {
	h, repo := newOrderServer(t)
	seedOrder(t, repo, "o-old", "Maria", orderdom.StatusCompleted, orderTestTime.Add(-72*time.Hour))
	seedOrder(t, repo, "o-mid", "Joana", orderdom.StatusPending, orderTestTime)
	seedOrder(t, repo, "o-new", "Pedro", orderdom.StatusPending, orderTestTime.Add(48*time.Hour))

	from := orderTestTime.Add(-time.Hour).Format(time.RFC3339)
	to := orderTestTime.Add(time.Hour).Format(time.RFC3339)
	rec := doAdmin(t, h, http.MethodGet, "/admin/orders?createdFrom="+from+"&createdTo="+to, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAdminBody(t, rec)
	require.Equal(t, float64(1), body["totalCount"])
	items := body["items"].([]any)
	assert.Equal(t, "o-mid", items[0].(map[string]any)["id"])
}

func TestOrderAdminListSearchesCustomerName(t *testing.T) {
	h, repo := newOrderServer(t)
	seedOrder(t, repo, "o1", "Maria Silva", orderdom.StatusPending, orderTestTime)
	seedOrder(t, repo, "o2", "Pedro Souza", orderdom.StatusPending, orderTestTime.Add(time.Minute))

	rec := doAdmin(t, h, http.MethodGet, "/admin/orders?q=maria", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAdminBody(t, rec)
	require.Equal(t, float64(1), body["totalCount"])
	items := body["items"].([]any)
	assert.Equal(t, "o1", items[0].(map[string]any)["id"])
}

func TestOrderAdminListCombinesStatusAndDate(t *testing.T) {
	h, repo := newOrderServer(t)
	seedOrder(t, repo, "o1", "Maria", orderdom.StatusPending, orderTestTime)
	seedOrder(t, repo, "o2", "Maria", orderdom.StatusCompleted, orderTestTime)
	seedOrder(t, repo, "o3", "Maria", orderdom.StatusPending, orderTestTime.Add(-72*time.Hour))

	from := orderTestTime.Add(-time.Hour).Format(time.RFC3339)
	rec := doAdmin(t, h, http.MethodGet, "/admin/orders?status=pending&createdFrom="+from, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAdminBody(t, rec)
	require.Equal(t, float64(1), body["totalCount"])
	items := body["items"].([]any)
	assert.Equal(t, "o1", items[0].(map[string]any)["id"])
}

func TestOrderAdminListRejectsBadDate(t *testing.T) {
	h, _ := newOrderServer(t)

	rec := doAdmin(t, h, http.MethodGet, "/admin/orders?createdFrom=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeAdminBody(t, rec)["error"], "RFC3339")
}

func TestOrderAdminUpdateStatus(t *testing.T) {
	h, repo := newOrderServer(t)
	seedOrder(t, repo, "o1", "Maria", orderdom.StatusPending, orderTestTime)

	rec := doAdmin(t, h, http.MethodPut, "/admin/orders/o1/status", map[string]string{"status": "processing"})

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := repo.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusProcessing, stored.Status)
}
