package order

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Snapshot structs (stored in Order)
// ========================================

// ItemSnapshot is stored inside Order.Items. Prices are frozen at checkout
// time; later menu edits must not change past orders.
type ItemSnapshot struct {
	MenuItemID string `json:"menuItemId" firestore:"menuItemId"`
	Name       string `json:"name" firestore:"name"`
	PriceCents int64  `json:"priceCents" firestore:"priceCents"`
	Qty        int    `json:"qty" firestore:"qty"`
}

// AddressSnapshot is the delivery destination frozen at checkout time.
// Empty for pickup orders.
type AddressSnapshot struct {
	Street  string `json:"street" firestore:"street"`
	City    string `json:"city" firestore:"city"`
	ZipCode string `json:"zipCode" firestore:"zipCode"`
}

// ========================================
// Status
// ========================================

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// StatusLabel returns the customer-facing label for a status.
func StatusLabel(s Status) string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusProcessing:
		return "Em Preparo"
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}

// CanTransition reports whether from -> to is an allowed status move.
// pending -> processing -> completed; cancelled from any non-terminal state.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusProcessing || to == StatusCancelled
	case StatusProcessing:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// ========================================
// Entity
// ========================================

type Order struct {
	ID        string `json:"id" firestore:"id"`
	SessionID string `json:"sessionId" firestore:"sessionId"`

	CustomerName  string `json:"customerName" firestore:"customerName"`
	CustomerPhone string `json:"customerPhone" firestore:"customerPhone"`

	Items []ItemSnapshot `json:"items" firestore:"items"`

	SubtotalCents    int64 `json:"subtotalCents" firestore:"subtotalCents"`
	DeliveryFeeCents int64 `json:"deliveryFeeCents" firestore:"deliveryFeeCents"`
	TotalCents       int64 `json:"totalCents" firestore:"totalCents"`

	IsDelivery bool            `json:"isDelivery" firestore:"isDelivery"`
	Address    AddressSnapshot `json:"address" firestore:"address"`

	PaymentMethod string `json:"paymentMethod" firestore:"paymentMethod"`
	Notes         string `json:"notes" firestore:"notes"`

	Status    Status    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID         = errors.New("order: invalid id")
	ErrInvalidItems      = errors.New("order: invalid items")
	ErrInvalidAmounts    = errors.New("order: invalid amounts")
	ErrInvalidAddress    = errors.New("order: invalid address")
	ErrInvalidStatus     = errors.New("order: invalid status")
	ErrInvalidTransition = errors.New("order: invalid status transition")
	ErrInvalidCreatedAt  = errors.New("order: invalid createdAt")
)

// ========================================
// Constructor
// ========================================

// New builds a pending order. Amounts are recomputed from the snapshots and
// must reconcile with the fee.
func New(
	id string,
	sessionID string,
	customerName string,
	customerPhone string,
	items []ItemSnapshot,
	deliveryFeeCents int64,
	isDelivery bool,
	address AddressSnapshot,
	paymentMethod string,
	notes string,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		ID:        strings.TrimSpace(id),
		SessionID: strings.TrimSpace(sessionID),

		CustomerName:  strings.TrimSpace(customerName),
		CustomerPhone: strings.TrimSpace(customerPhone),

		Items: normalizeItems(items),

		DeliveryFeeCents: deliveryFeeCents,
		IsDelivery:       isDelivery,
		Address:          normalizeAddress(address),

		PaymentMethod: strings.TrimSpace(paymentMethod),
		Notes:         strings.TrimSpace(notes),

		Status:    StatusPending,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}

	if !isDelivery {
		o.DeliveryFeeCents = 0
	}
	for _, it := range o.Items {
		o.SubtotalCents += it.PriceCents * int64(it.Qty)
	}
	o.TotalCents = o.SubtotalCents + o.DeliveryFeeCents

	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// WithStatus returns a copy with the status changed, enforcing the allowed
// transitions.
func (o Order) WithStatus(to Status, now time.Time) (Order, error) {
	switch to {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
	default:
		return Order{}, ErrInvalidStatus
	}
	if !CanTransition(o.Status, to) {
		return Order{}, ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = now.UTC()
	return o, nil
}

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if len(o.Items) < 1 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if it.MenuItemID == "" || it.Qty < 1 || it.PriceCents < 0 {
			return ErrInvalidItems
		}
	}
	if o.SubtotalCents < 0 || o.DeliveryFeeCents < 0 {
		return ErrInvalidAmounts
	}
	if o.TotalCents != o.SubtotalCents+o.DeliveryFeeCents {
		return ErrInvalidAmounts
	}
	if o.IsDelivery && (o.Address.Street == "" || o.Address.City == "" || o.Address.ZipCode == "") {
		return ErrInvalidAddress
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeItems(items []ItemSnapshot) []ItemSnapshot {
	out := make([]ItemSnapshot, 0, len(items))
	for _, it := range items {
		it.MenuItemID = strings.TrimSpace(it.MenuItemID)
		it.Name = strings.TrimSpace(it.Name)
		if it.MenuItemID == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

func normalizeAddress(a AddressSnapshot) AddressSnapshot {
	return AddressSnapshot{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		ZipCode: strings.TrimSpace(a.ZipCode),
	}
}
