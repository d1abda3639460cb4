package cart

import "context"

// Repository is the persistence port for Cart.
//
// Storage design (Firestore):
// - collection: carts
// - docId: sessionID
// - fields: id, items(array), createdAt, updatedAt
//
// The local-file adapter stores one JSON array per session under a fixed
// path and must tolerate malformed data by returning an empty cart.
type Repository interface {
	// GetBySessionID returns the cart for the session.
	// Not-found policy: return (nil, nil) and let the application layer
	// treat nil as "empty cart".
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)

	// Upsert saves the cart (create or update), overwriting the stored
	// document wholesale.
	Upsert(ctx context.Context, c *Cart) error

	// DeleteBySessionID deletes the cart for the session (e.g. after
	// checkout).
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
