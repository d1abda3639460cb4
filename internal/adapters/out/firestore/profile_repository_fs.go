package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	profiledom "sabordigital/internal/domain/profile"
)

// ProfileRepositoryFS implements profile.Repository using Firestore.
//
// Collection design:
// - collection: profiles
// - docId: Firebase uid
type ProfileRepositoryFS struct {
	Client *firestore.Client
}

func NewProfileRepositoryFS(client *firestore.Client) *ProfileRepositoryFS {
	return &ProfileRepositoryFS{Client: client}
}

func (r *ProfileRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("profiles")
}

func (r *ProfileRepositoryFS) GetByID(ctx context.Context, id string) (profiledom.Profile, error) {
	if r == nil || r.Client == nil {
		return profiledom.Profile{}, errors.New("profile_repository_fs: firestore client is nil")
	}

	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return profiledom.Profile{}, profiledom.ErrNotFound
		}
		return profiledom.Profile{}, err
	}

	data := snap.Data()
	p := profiledom.Profile{
		ID:          snap.Ref.ID,
		Email:       asString(data["email"]),
		DisplayName: asString(data["displayName"]),
		Role:        profiledom.Role(asString(data["role"])),
		CreatedAt:   asTime(data["createdAt"]),
	}
	if p.Role == "" {
		p.Role = profiledom.RoleCustomer
	}
	return p, nil
}

func (r *ProfileRepositoryFS) Upsert(ctx context.Context, p profiledom.Profile) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}

	_, err := r.col().Doc(p.ID).Set(ctx, map[string]any{
		"id":          p.ID,
		"email":       p.Email,
		"displayName": p.DisplayName,
		"role":        string(p.Role),
		"createdAt":   p.CreatedAt,
	})
	return err
}
