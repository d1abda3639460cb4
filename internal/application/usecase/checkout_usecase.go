package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	cartdom "sabordigital/internal/domain/cart"
	"sabordigital/internal/domain/checkout"
	orderdom "sabordigital/internal/domain/order"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
)

// OrderNotifier tells the restaurant about a new order (mail, etc.).
// Implementations must be best-effort: notification errors are logged dead
// ends, never propagated into the checkout flow.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, o orderdom.Order, summary string) error
}

// SubmitResult is what a successful checkout hands back to the client.
type SubmitResult struct {
	OrderID      string `json:"orderId"`
	Summary      string `json:"summary"`
	WhatsAppLink string `json:"whatsappLink"`
	TotalCents   int64  `json:"totalCents"`
}

// CheckoutUsecase drives the Filling -> Submitting -> Complete flow:
// validate the draft, persist the order, clear the cart, return the
// messaging handoff. Validation failures return field errors and leave the
// cart untouched (the form stays open).
type CheckoutUsecase struct {
	carts  cartdom.Repository
	orders orderdom.Repository
	clock  Clock
	newID  func() string

	deliveryFeeCents int64
	restaurantPhone  string

	notifier OrderNotifier // optional
}

func NewCheckoutUsecase(carts cartdom.Repository, orders orderdom.Repository, deliveryFeeCents int64, restaurantPhone string) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:            carts,
		orders:           orders,
		clock:            systemClock{},
		newID:            uuid.NewString,
		deliveryFeeCents: deliveryFeeCents,
		restaurantPhone:  restaurantPhone,
	}
}

// WithNotifier attaches the best-effort new-order notifier.
func (uc *CheckoutUsecase) WithNotifier(n OrderNotifier) *CheckoutUsecase {
	uc.notifier = n
	return uc
}

// WithClock is useful for tests.
func (uc *CheckoutUsecase) WithClock(clock Clock, newID func() string) *CheckoutUsecase {
	if clock != nil {
		uc.clock = clock
	}
	if newID != nil {
		uc.newID = newID
	}
	return uc
}

// Submit finalizes the order for sessionID from the given draft.
//
// Outcomes:
//   - (result, nil, nil): order persisted, cart cleared, handoff ready
//   - (zero, fieldErrs, nil): draft invalid; cart untouched
//   - (zero, nil, err): empty cart (checkout.ErrEmptyCart) or persist
//     failure; cart untouched
func (uc *CheckoutUsecase) Submit(ctx context.Context, sessionID string, d checkout.Draft) (SubmitResult, []checkout.FieldError, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return SubmitResult{}, nil, ErrCheckoutInvalidArgument
	}

	c, err := uc.carts.GetBySessionID(ctx, sid)
	if err != nil {
		return SubmitResult{}, nil, err
	}
	if c.IsEmpty() {
		return SubmitResult{}, nil, checkout.ErrEmptyCart
	}

	d.Normalize()
	if fieldErrs := d.Validate(); len(fieldErrs) > 0 {
		return SubmitResult{}, fieldErrs, nil
	}

	now := uc.clock.Now()

	snapshots := make([]orderdom.ItemSnapshot, 0, len(c.Items))
	for _, li := range c.Items {
		snapshots = append(snapshots, orderdom.ItemSnapshot{
			MenuItemID: li.MenuItemID,
			Name:       li.Name,
			PriceCents: li.PriceCents,
			Qty:        li.Quantity,
		})
	}

	o, err := orderdom.New(
		uc.newID(), sid,
		d.Name, d.Phone,
		snapshots,
		uc.deliveryFeeCents,
		d.IsDelivery(),
		orderdom.AddressSnapshot{Street: d.Address, City: d.City, ZipCode: d.ZipCode},
		string(d.PaymentMethod),
		d.Notes,
		now,
	)
	if err != nil {
		return SubmitResult{}, nil, err
	}

	// Persist first; only a stored order may clear the cart. The order id is
	// the idempotency key, so a duplicate submit cannot double-write.
	if err := uc.orders.Create(ctx, o); err != nil {
		return SubmitResult{}, nil, err
	}

	summary := checkout.Summary(c.Items, d, uc.deliveryFeeCents)

	if err := uc.carts.DeleteBySessionID(ctx, sid); err != nil {
		// order exists; an uncleared cart is the lesser failure
		log.Printf("[checkout_usecase] WARN: cart clear failed session=%q order=%q err=%v", sid, o.ID, err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyNewOrder(ctx, o, summary); err != nil {
			log.Printf("[checkout_usecase] WARN: order notification failed order=%q err=%v", o.ID, err)
		}
	}

	log.Printf("[checkout_usecase] order submitted session=%q order=%q total=%d delivery=%t", sid, o.ID, o.TotalCents, o.IsDelivery)

	return SubmitResult{
		OrderID:      o.ID,
		Summary:      summary,
		WhatsAppLink: checkout.WhatsAppLink(uc.restaurantPhone, summary),
		TotalCents:   o.TotalCents,
	}, nil, nil
}
