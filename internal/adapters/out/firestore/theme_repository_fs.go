package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	themedom "sabordigital/internal/domain/theme"
)

// ThemeRepositoryFS implements theme.Repository using Firestore.
//
// Collection design:
// - collection: theme_settings
// - docId: settings id (the storefront uses "default")
type ThemeRepositoryFS struct {
	Client *firestore.Client
}

func NewThemeRepositoryFS(client *firestore.Client) *ThemeRepositoryFS {
	return &ThemeRepositoryFS{Client: client}
}

func (r *ThemeRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("theme_settings")
}

func (r *ThemeRepositoryFS) Get(ctx context.Context, id string) (themedom.Settings, error) {
	if r == nil || r.Client == nil {
		return themedom.Settings{}, errors.New("theme_repository_fs: firestore client is nil")
	}

	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return themedom.Settings{}, themedom.ErrNotFound
		}
		return themedom.Settings{}, err
	}

	data := snap.Data()
	s := themedom.Settings{
		ID:              snap.Ref.ID,
		PrimaryColor:    asString(data["primaryColor"]),
		SecondaryColor:  asString(data["secondaryColor"]),
		AccentColor:     asString(data["accentColor"]),
		TextColor:       asString(data["textColor"]),
		FontFamily:      asString(data["fontFamily"]),
		BackgroundImage: asString(data["backgroundImage"]),
		LogoURL:         asString(data["logoUrl"]),
		CreatedAt:       asTime(data["createdAt"]),
		UpdatedAt:       asTime(data["updatedAt"]),
	}
	return s, nil
}

func (r *ThemeRepositoryFS) Upsert(ctx context.Context, s themedom.Settings) error {
	if r == nil || r.Client == nil {
		return errors.New("theme_repository_fs: firestore client is nil")
	}

	_, err := r.col().Doc(s.ID).Set(ctx, map[string]any{
		"id":              s.ID,
		"primaryColor":    s.PrimaryColor,
		"secondaryColor":  s.SecondaryColor,
		"accentColor":     s.AccentColor,
		"textColor":       s.TextColor,
		"fontFamily":      s.FontFamily,
		"backgroundImage": s.BackgroundImage,
		"logoUrl":         s.LogoURL,
		"createdAt":       s.CreatedAt,
		"updatedAt":       s.UpdatedAt,
	})
	return err
}
