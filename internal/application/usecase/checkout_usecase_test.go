package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabordigital/internal/domain/checkout"
	orderdom "sabordigital/internal/domain/order"
)

// memOrderRepo is an in-memory order.Repository fake.
type memOrderRepo struct {
	orders     map[string]orderdom.Order
	created    []string
	failCreate error
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
		if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && !o.CreatedAt.Before(*f.CreatedTo) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(f.Query)) {
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
		n := page.Number
		if n <= 0 {
			n = 1
		}
		start := (n - 1) * page.PerPage
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
	if r.failCreate != nil {
		return r.failCreate
	}
	if _, ok := r.orders[o.ID]; ok {
		return orderdom.ErrConflict
	}
	r.orders[o.ID] = o
	r.created = append(r.created, o.ID)
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

func validDraft(method checkout.DeliveryMethod) checkout.Draft {
	return checkout.Draft{
		Name:           "Maria",
		Phone:          "83999990000",
		DeliveryMethod: method,
		Address:        "Rua A, 1",
		City:           "Recife",
		ZipCode:        "50000-000",
		PaymentMethod:  checkout.PaymentPix,
	}
}

func seedCart(t *testing.T, carts *memCartRepo) {
	t.Helper()
	uc := newCartUC(carts)
	_, _, err := uc.AddItem(context.Background(), "s1", "1", "Picanha", 2000, 2, "")
	require.NoError(t, err)
}

func newCheckoutUC(carts *memCartRepo, orders *memOrderRepo) *CheckoutUsecase {
	n := 0
	return NewCheckoutUsecase(carts, orders, 1000, "5583986147817").
		WithClock(fixedClock{testTime}, func() string { n++; return "order-1" })
}

func TestSubmitDeliveryHappyPath(t *testing.T) {
	carts := newMemCartRepo()
	orders := newMemOrderRepo()
	seedCart(t, carts)

	res, fieldErrs, err := newCheckoutUC(carts, orders).Submit(context.Background(), "s1", validDraft(checkout.DeliveryMethodDelivery))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	assert.Equal(t, "order-1", res.OrderID)
	assert.Equal(t, int64(5000), res.TotalCents) // 40.00 + 10.00 fee
	assert.Contains(t, res.Summary, "*Taxa de Entrega:* R$ 10.00")
	assert.Contains(t, res.Summary, "*Total:* R$ 50.00")
	assert.Contains(t, res.WhatsAppLink, "https://wa.me/5583986147817?text=")

	stored, err := orders.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusPending, stored.Status)
	assert.True(t, stored.IsDelivery)

	// Scenario D: cart deleted after successful submit
	assert.Equal(t, 1, carts.deletes)
	c, err := carts.GetBySessionID(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestSubmitPickupSkipsFee(t *testing.T) {
	carts := newMemCartRepo()
	orders := newMemOrderRepo()
	seedCart(t, carts)

	res, fieldErrs, err := newCheckoutUC(carts, orders).Submit(context.Background(), "s1", validDraft(checkout.DeliveryMethodPickup))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	assert.Equal(t, int64(4000), res.TotalCents)
	assert.Contains(t, res.Summary, "*Retirada no Local*")
	assert.NotContains(t, res.Summary, "Taxa de Entrega")
}

func TestSubmitValidationFailureLeavesCartUntouched(t *testing.T) {
	carts := newMemCartRepo()
	orders := newMemOrderRepo()
	seedCart(t, carts)

	// Scenario C: delivery with empty address
	d := validDraft(checkout.DeliveryMethodDelivery)
	d.Address = ""

	_, fieldErrs, err := newCheckoutUC(carts, orders).Submit(context.Background(), "s1", d)
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "address", fieldErrs[0].Field)

	assert.Empty(t, orders.created)
	c, _ := carts.GetBySessionID(context.Background(), "s1")
	assert.Equal(t, 2, c.TotalItems())
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	carts := newMemCartRepo()
	orders := newMemOrderRepo()

	_, _, err := newCheckoutUC(carts, orders).Submit(context.Background(), "s1", validDraft(checkout.DeliveryMethodPickup))
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestSubmitPersistFailureKeepsCart(t *testing.T) {
	carts := newMemCartRepo()
	orders := newMemOrderRepo()
	orders.failCreate = errors.New("backend down")
	seedCart(t, carts)

	_, _, err := newCheckoutUC(carts, orders).Submit(context.Background(), "s1", validDraft(checkout.DeliveryMethodPickup))
	require.Error(t, err)

	c, _ := carts.GetBySessionID(context.Background(), "s1")
	assert.Equal(t, 2, c.TotalItems())
}

type recordingNotifier struct {
	calls int
	fail  bool
}

func (n *recordingNotifier) NotifyNewOrder(context.Context, orderdom.Order, string) error {
	n.calls++
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

func TestSubmitNotifierIsBestEffort(t *testing.T) {
	carts := newMemCartRepo()
	orders := newMemOrderRepo()
	seedCart(t, carts)

	n := &recordingNotifier{fail: true}
	uc := newCheckoutUC(carts, orders).WithNotifier(n)

	_, fieldErrs, err := uc.Submit(context.Background(), "s1", validDraft(checkout.DeliveryMethodPickup))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, 1, n.calls)
}
