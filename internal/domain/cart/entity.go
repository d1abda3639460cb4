package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// LineItem represents one distinct menu item plus its quantity within a cart.
// Uniqueness is defined by MenuItemID; ID identifies the line itself and is
// generated once when the line is first added.
type LineItem struct {
	ID         string `json:"id" firestore:"id"`
	MenuItemID string `json:"menuItemId" firestore:"menuItemId"`
	Name       string `json:"name" firestore:"name"`
	PriceCents int64  `json:"priceCents" firestore:"priceCents"`
	Quantity   int    `json:"quantity" firestore:"quantity"`
	ImageURL   string `json:"imageUrl" firestore:"imageUrl"`
}

// SubtotalCents is PriceCents x Quantity.
func (li LineItem) SubtotalCents() int64 {
	return li.PriceCents * int64(li.Quantity)
}

// Outcome tells the caller what a mutation actually did, so the HTTP layer
// can translate it into user-visible feedback instead of guessing.
type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeUpdated Outcome = "updated"
	OutcomeRemoved Outcome = "removed"
	OutcomeCleared Outcome = "cleared"
	OutcomeNone    Outcome = "none"
)

// Mutation is the result of a cart mutation.
type Mutation struct {
	Outcome  Outcome `json:"outcome"`
	ItemName string  `json:"itemName,omitempty"`
}

// Cart represents one customer session's cart document.
//   - docId = sessionID (Firestore) / storage key (local file)
//   - Items keep insertion order; at most one line per menuItemId.
type Cart struct {
	// ID is the session identifier (Firestore docId).
	ID string `json:"id" firestore:"id"`

	Items []LineItem `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// NewCart creates a new cart for a session.
// items can be nil (treated as empty).
func NewCart(id string, items []LineItem, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges qty into the line for menuItemID, or appends a new line using
// lineID as the fresh identifier. qty must be >= 1.
func (c *Cart) Add(lineID, menuItemID, name string, priceCents int64, qty int, imageURL string, now time.Time) (Mutation, error) {
	if c == nil {
		return Mutation{Outcome: OutcomeNone}, ErrInvalidCart
	}

	mid := strings.TrimSpace(menuItemID)
	nm := strings.TrimSpace(name)
	if mid == "" || nm == "" || qty < 1 || priceCents < 0 {
		return Mutation{Outcome: OutcomeNone}, ErrInvalidCart
	}

	if idx := findByMenuItemID(c.Items, mid); idx >= 0 {
		c.Items[idx].Quantity += qty
		c.touch(now)
		if err := c.validate(); err != nil {
			return Mutation{Outcome: OutcomeNone}, err
		}
		return Mutation{Outcome: OutcomeUpdated, ItemName: c.Items[idx].Name}, nil
	}

	lid := strings.TrimSpace(lineID)
	if lid == "" {
		return Mutation{Outcome: OutcomeNone}, ErrInvalidCart
	}
	c.Items = append(c.Items, LineItem{
		ID:         lid,
		MenuItemID: mid,
		Name:       nm,
		PriceCents: priceCents,
		Quantity:   qty,
		ImageURL:   strings.TrimSpace(imageURL),
	})
	c.touch(now)
	if err := c.validate(); err != nil {
		return Mutation{Outcome: OutcomeNone}, err
	}
	return Mutation{Outcome: OutcomeAdded, ItemName: nm}, nil
}

// Remove deletes the line identified by lineID.
// Removing an absent line is a silent no-op.
func (c *Cart) Remove(lineID string, now time.Time) (Mutation, error) {
	if c == nil {
		return Mutation{Outcome: OutcomeNone}, ErrInvalidCart
	}

	lid := strings.TrimSpace(lineID)
	idx := findByLineID(c.Items, lid)
	if idx < 0 {
		return Mutation{Outcome: OutcomeNone}, nil
	}

	name := c.Items[idx].Name
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch(now)
	if err := c.validate(); err != nil {
		return Mutation{Outcome: OutcomeNone}, err
	}
	return Mutation{Outcome: OutcomeRemoved, ItemName: name}, nil
}

// SetQuantity sets the quantity for lineID.
// The quantity floor is 1: qty < 1 is a no-op (removal goes through Remove).
// An unknown lineID is also a no-op.
func (c *Cart) SetQuantity(lineID string, qty int, now time.Time) (Mutation, error) {
	if c == nil {
		return Mutation{Outcome: OutcomeNone}, ErrInvalidCart
	}
	if qty < 1 {
		return Mutation{Outcome: OutcomeNone}, nil
	}

	idx := findByLineID(c.Items, strings.TrimSpace(lineID))
	if idx < 0 {
		return Mutation{Outcome: OutcomeNone}, nil
	}

	c.Items[idx].Quantity = qty
	c.touch(now)
	if err := c.validate(); err != nil {
		return Mutation{Outcome: OutcomeNone}, err
	}
	return Mutation{Outcome: OutcomeUpdated, ItemName: c.Items[idx].Name}, nil
}

// Clear empties the collection.
func (c *Cart) Clear(now time.Time) Mutation {
	if c == nil {
		return Mutation{Outcome: OutcomeNone}
	}
	c.Items = []LineItem{}
	c.touch(now)
	return Mutation{Outcome: OutcomeCleared}
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, li := range c.Items {
		total += li.Quantity
	}
	return total
}

// TotalCents is the sum of line subtotals.
func (c *Cart) TotalCents() int64 {
	if c == nil {
		return 0
	}
	var total int64
	for _, li := range c.Items {
		total += li.SubtotalCents()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}

	if len(c.Items) == 0 {
		return nil
	}

	// merge duplicate menuItemIds and drop unusable lines, preserving order
	c.Items = normalizeAndMerge(c.Items)

	for _, li := range c.Items {
		if strings.TrimSpace(li.ID) == "" || strings.TrimSpace(li.MenuItemID) == "" {
			return ErrInvalidCart
		}
		if li.Quantity < 1 || li.PriceCents < 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findByMenuItemID(items []LineItem, menuItemID string) int {
	for i := range items {
		if items[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

func findByLineID(items []LineItem, lineID string) int {
	if lineID == "" {
		return -1
	}
	for i := range items {
		if items[i].ID == lineID {
			return i
		}
	}
	return -1
}

func cloneItems(src []LineItem) []LineItem {
	if len(src) == 0 {
		return []LineItem{}
	}
	dst := make([]LineItem, len(src))
	copy(dst, src)
	return dst
}

// normalizeAndMerge trims ids, merges duplicate menuItemIds (first line wins,
// quantities summed) and keeps first-seen order.
func normalizeAndMerge(src []LineItem) []LineItem {
	out := make([]LineItem, 0, len(src))
	seen := make(map[string]int, len(src))

	for _, li := range src {
		li.ID = strings.TrimSpace(li.ID)
		li.MenuItemID = strings.TrimSpace(li.MenuItemID)
		li.Name = strings.TrimSpace(li.Name)
		if li.MenuItemID == "" {
			continue
		}
		if at, ok := seen[li.MenuItemID]; ok {
			out[at].Quantity += li.Quantity
			continue
		}
		seen[li.MenuItemID] = len(out)
		out = append(out, li)
	}
	return out
}
