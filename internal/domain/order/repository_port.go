package order

import (
	"context"
	"errors"
	"time"
)

// Filter narrows List/Count results. Zero value means "everything".
type Filter struct {
	SessionID string
	Statuses  []Status

	// Query matches the customer name, case-insensitive substring.
	Query string

	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Page is 1-based pagination. PerPage <= 0 means no limit: every adapter
// returns the full filtered set.
type Page struct {
	Number  int
	PerPage int
}

// PageResult carries one page plus the unpaged total.
type PageResult struct {
	Items      []Order
	TotalCount int
}

// Repository defines the persistence port for Order.
type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)

	// List returns orders newest-first.
	List(ctx context.Context, filter Filter, page Page) (PageResult, error)
	Count(ctx context.Context, filter Filter) (int, error)

	// Create writes a new order. The order id doubles as the idempotency
	// key: creating an id that already exists returns ErrConflict.
	Create(ctx context.Context, o Order) error

	// UpdateStatus persists a status change.
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}

// Standard repository errors
var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: conflict")
)
