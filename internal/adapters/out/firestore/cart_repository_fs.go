package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	cartdom "sabordigital/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: sessionID (docId is the source of truth)
// - fields: items(array), createdAt, updatedAt
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetBySessionID returns (nil, nil) if not found (nil policy). A stored doc
// whose shape no longer matches the schema decodes to whatever lines are
// still readable; completely malformed items yield an empty cart rather
// than an error.
func (r *CartRepositoryFS) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_fs: sessionID is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	data := snap.Data()

	createdAt := asTime(data["createdAt"])
	updatedAt := asTime(data["updatedAt"])
	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	items := decodeCartItems(data["items"])

	c, err := cartdom.NewCart(sid, items, createdAt)
	if err != nil {
		// unreadable stored state falls back to an empty cart
		return cartdom.NewCart(sid, nil, now)
	}
	c.UpdatedAt = updatedAt
	return c, nil
}

// Upsert overwrites the full doc by docId = cart.ID (simple & predictable).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= sessionID) as docId")
	}

	_, err := r.col().Doc(sid).Set(ctx, map[string]any{
		"id":        sid,
		"items":     encodeCartItems(c.Items),
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	})
	return err
}

func (r *CartRepositoryFS) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_fs: sessionID is empty")
	}

	_, err := r.col().Doc(sid).Delete(ctx)
	return err
}

// ------------------------------------------------------------
// doc codec
// ------------------------------------------------------------

func encodeCartItems(items []cartdom.LineItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, li := range items {
		out = append(out, map[string]any{
			"id":         li.ID,
			"menuItemId": li.MenuItemID,
			"name":       li.Name,
			"priceCents": li.PriceCents,
			"quantity":   li.Quantity,
			"imageUrl":   li.ImageURL,
		})
	}
	return out
}

func decodeCartItems(v any) []cartdom.LineItem {
	raw := asSlice(v)
	out := make([]cartdom.LineItem, 0, len(raw))
	for _, e := range raw {
		m := asMap(e)
		if m == nil {
			continue
		}
		li := cartdom.LineItem{
			ID:         asString(m["id"]),
			MenuItemID: asString(m["menuItemId"]),
			Name:       asString(m["name"]),
			PriceCents: asInt64(m["priceCents"]),
			Quantity:   asInt(m["quantity"]),
			ImageURL:   asString(m["imageUrl"]),
		}
		if li.ID == "" || li.MenuItemID == "" || li.Quantity < 1 || li.PriceCents < 0 {
			continue
		}
		out = append(out, li)
	}
	return out
}
