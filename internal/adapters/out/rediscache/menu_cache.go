// Package rediscache decorates repositories with a Redis read-through
// cache. The storefront menu is read on every page load but changes only
// when an admin edits it, so cached reads with write-time invalidation
// keep Firestore traffic flat.
package rediscache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	menudom "sabordigital/internal/domain/menu"
)

const (
	menuKeyPrefix = "menu:item:"
	menuListKey   = "menu:list"
	menuTTL       = 5 * time.Minute
)

// MenuCache implements menu.Repository around an inner repository.
// Cache failures degrade to the inner repository; they are logged, never
// surfaced.
type MenuCache struct {
	inner menudom.Repository
	rdb   *redis.Client
}

func NewMenuCache(inner menudom.Repository, rdb *redis.Client) *MenuCache {
	return &MenuCache{inner: inner, rdb: rdb}
}

func (c *MenuCache) GetByID(ctx context.Context, id string) (menudom.Item, error) {
	key := menuKeyPrefix + id
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var it menudom.Item
		if err := json.Unmarshal(raw, &it); err == nil {
			return it, nil
		}
	} else if err != redis.Nil {
		log.Printf("[menu_cache] WARN: get %s: %v", key, err)
	}

	it, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return menudom.Item{}, err
	}
	c.set(ctx, key, it)
	return it, nil
}

func (c *MenuCache) List(ctx context.Context, filter menudom.Filter) ([]menudom.Item, error) {
	// Only the unfiltered catalog is cached; filtered views are served
	// from it in memory.
	if raw, err := c.rdb.Get(ctx, menuListKey).Bytes(); err == nil {
		var items []menudom.Item
		if err := json.Unmarshal(raw, &items); err == nil {
			return applyFilter(items, filter), nil
		}
	} else if err != redis.Nil {
		log.Printf("[menu_cache] WARN: get %s: %v", menuListKey, err)
	}

	items, err := c.inner.List(ctx, menudom.Filter{})
	if err != nil {
		return nil, err
	}
	c.set(ctx, menuListKey, items)
	return applyFilter(items, filter), nil
}

func (c *MenuCache) Create(ctx context.Context, it menudom.Item) error {
	if err := c.inner.Create(ctx, it); err != nil {
		return err
	}
	c.invalidate(ctx, it.ID)
	return nil
}

func (c *MenuCache) Update(ctx context.Context, it menudom.Item) error {
	if err := c.inner.Update(ctx, it); err != nil {
		return err
	}
	c.invalidate(ctx, it.ID)
	return nil
}

func (c *MenuCache) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *MenuCache) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, menuTTL).Err(); err != nil {
		log.Printf("[menu_cache] WARN: set %s: %v", key, err)
	}
}

func (c *MenuCache) invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, menuKeyPrefix+id, menuListKey).Err(); err != nil {
		log.Printf("[menu_cache] WARN: invalidate %s: %v", id, err)
	}
}

func applyFilter(items []menudom.Item, f menudom.Filter) []menudom.Item {
	out := make([]menudom.Item, 0, len(items))
	for _, it := range items {
		if f.OnlyAvailable && !it.IsAvailable {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		out = append(out, it)
	}
	return out
}
