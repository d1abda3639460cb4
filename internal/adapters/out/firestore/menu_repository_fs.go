package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	menudom "sabordigital/internal/domain/menu"
)

// MenuRepositoryFS implements menu.Repository using Firestore.
//
// Collection design:
// - collection: menu_items
// - docId: item id
//
// Filtering happens in memory: the catalog is small and this keeps the
// collection free of composite-index requirements.
type MenuRepositoryFS struct {
	Client *firestore.Client
}

func NewMenuRepositoryFS(client *firestore.Client) *MenuRepositoryFS {
	return &MenuRepositoryFS{Client: client}
}

func (r *MenuRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("menu_items")
}

func (r *MenuRepositoryFS) GetByID(ctx context.Context, id string) (menudom.Item, error) {
	if r == nil || r.Client == nil {
		return menudom.Item{}, errors.New("menu_repository_fs: firestore client is nil")
	}

	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return menudom.Item{}, menudom.ErrNotFound
		}
		return menudom.Item{}, err
	}

	it := decodeMenuItem(snap.Data())
	it.ID = snap.Ref.ID
	return it, nil
}

func (r *MenuRepositoryFS) List(ctx context.Context, filter menudom.Filter) ([]menudom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("menu_repository_fs: firestore client is nil")
	}

	iter := r.col().Documents(ctx)
	defer iter.Stop()

	items := make([]menudom.Item, 0, 32)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		it := decodeMenuItem(snap.Data())
		it.ID = snap.Ref.ID

		if filter.OnlyAvailable && !it.IsAvailable {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *MenuRepositoryFS) Create(ctx context.Context, it menudom.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("menu_repository_fs: firestore client is nil")
	}
	_, err := r.col().Doc(it.ID).Create(ctx, encodeMenuItem(it))
	return err
}

func (r *MenuRepositoryFS) Update(ctx context.Context, it menudom.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("menu_repository_fs: firestore client is nil")
	}
	_, err := r.col().Doc(it.ID).Set(ctx, encodeMenuItem(it))
	if isNotFound(err) {
		return menudom.ErrNotFound
	}
	return err
}

func (r *MenuRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("menu_repository_fs: firestore client is nil")
	}
	_, err := r.col().Doc(strings.TrimSpace(id)).Delete(ctx)
	return err
}

// ------------------------------------------------------------
// doc codec
// ------------------------------------------------------------

func encodeMenuItem(it menudom.Item) map[string]any {
	doc := map[string]any{
		"id":          it.ID,
		"name":        it.Name,
		"description": it.Description,
		"priceCents":  it.PriceCents,
		"imageUrl":    it.ImageURL,
		"category":    it.Category,
		"isAvailable": it.IsAvailable,
		"createdAt":   it.CreatedAt,
	}
	if it.PromotionalPriceCents != nil {
		doc["promotionalPriceCents"] = *it.PromotionalPriceCents
	}
	return doc
}

func decodeMenuItem(data map[string]any) menudom.Item {
	it := menudom.Item{
		ID:          asString(data["id"]),
		Name:        asString(data["name"]),
		Description: asString(data["description"]),
		PriceCents:  asInt64(data["priceCents"]),
		ImageURL:    asString(data["imageUrl"]),
		Category:    asString(data["category"]),
		IsAvailable: asBool(data["isAvailable"]),
		CreatedAt:   asTime(data["createdAt"]),
	}
	if v, ok := data["promotionalPriceCents"]; ok && v != nil {
		p := asInt64(v)
		it.PromotionalPriceCents = &p
	}
	return it
}
