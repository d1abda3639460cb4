package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdom "sabordigital/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase coordinates cart operations. Every mutation is mirrored to the
// repository; mirror failures are logged and swallowed so a flaky store
// degrades the session instead of blocking it. The returned cart is always
// the authoritative post-mutation state.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
	newID func() string
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
		newID: uuid.NewString,
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock, newID func() string) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &CartUsecase{repo: repo, clock: clock, newID: newID}
}

// Get returns the cart for the session. A missing or unreadable stored cart
// rehydrates as an empty one; Get never fails under normal use.
func (uc *CartUsecase) Get(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		log.Printf("[cart_usecase] WARN: load failed session=%q err=%v (treating as empty cart)", sid, err)
		c = nil
	}
	if c == nil {
		return cartdom.NewCart(sid, nil, uc.clock.Now())
	}
	return c, nil
}

// AddItem merges qty into the session cart per the one-line-per-menu-item
// invariant. qty must be >= 1.
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID, menuItemID, name string, priceCents int64, qty int, imageURL string) (*cartdom.Cart, cartdom.Mutation, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(menuItemID) == "" || qty < 1 {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, sid)
	if err != nil {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, err
	}

	m, err := c.Add(uc.newID(), menuItemID, name, priceCents, qty, imageURL, uc.clock.Now())
	if err != nil {
		return nil, m, err
	}

	uc.persist(ctx, c)
	return c, m, nil
}

// SetQuantity sets the quantity for a line. qty < 1 is a no-op (floor is 1).
func (uc *CartUsecase) SetQuantity(ctx context.Context, sessionID, lineID string, qty int) (*cartdom.Cart, cartdom.Mutation, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(lineID) == "" {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, sid)
	if err != nil {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, err
	}

	m, err := c.SetQuantity(lineID, qty, uc.clock.Now())
	if err != nil {
		return nil, m, err
	}

	if m.Outcome != cartdom.OutcomeNone {
		uc.persist(ctx, c)
	}
	return c, m, nil
}

// RemoveItem deletes a line; removing an absent line is a silent no-op.
func (uc *CartUsecase) RemoveItem(ctx context.Context, sessionID, lineID string) (*cartdom.Cart, cartdom.Mutation, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(lineID) == "" {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, sid)
	if err != nil {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, err
	}

	m, err := c.Remove(lineID, uc.clock.Now())
	if err != nil {
		return nil, m, err
	}

	if m.Outcome != cartdom.OutcomeNone {
		uc.persist(ctx, c)
	}
	return c, m, nil
}

// Clear empties the session cart.
func (uc *CartUsecase) Clear(ctx context.Context, sessionID string) (*cartdom.Cart, cartdom.Mutation, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, sid)
	if err != nil {
		return nil, cartdom.Mutation{Outcome: cartdom.OutcomeNone}, err
	}

	m := c.Clear(uc.clock.Now())
	uc.persist(ctx, c)
	return c, m, nil
}

// persist mirrors the cart best-effort.
func (uc *CartUsecase) persist(ctx context.Context, c *cartdom.Cart) {
	if err := uc.repo.Upsert(ctx, c); err != nil {
		log.Printf("[cart_usecase] WARN: mirror failed session=%q err=%v", c.ID, err)
	}
}
