package theme

import "context"

// Repository is the persistence port for appearance settings.
//
// Storage design (Firestore):
// - collection: theme_settings
// - docId: "default" (single document today; per-restaurant ids later)
type Repository interface {
	// Get returns the stored settings, or ErrNotFound when none were saved.
	Get(ctx context.Context, id string) (Settings, error)

	// Upsert overwrites the settings document.
	Upsert(ctx context.Context, s Settings) error
}
