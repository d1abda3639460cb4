package menu

import "context"

// Filter narrows List results. Zero value means "everything".
type Filter struct {
	Category      string
	OnlyAvailable bool
}

// Repository is the persistence port for menu items.
//
// Storage design (Firestore):
// - collection: menu_items
// - docId: item id
type Repository interface {
	GetByID(ctx context.Context, id string) (Item, error)

	// List returns items matching the filter, ordered by category then name.
	List(ctx context.Context, filter Filter) ([]Item, error)

	Create(ctx context.Context, it Item) error
	Update(ctx context.Context, it Item) error
	Delete(ctx context.Context, id string) error
}
