package profile

import "context"

// Repository is the persistence port for profiles.
//
// Storage design (Firestore):
// - collection: profiles
// - docId: Firebase uid
type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
