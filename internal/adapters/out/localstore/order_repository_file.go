package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	orderdom "sabordigital/internal/domain/order"
)

// OrderRepositoryFile implements order.Repository on a single JSON file.
// It exists so a local run without Firestore can still take checkouts;
// production deployments use the Firestore or Postgres repository.
type OrderRepositoryFile struct {
	path string

	mu sync.Mutex
}

func NewOrderRepositoryFile(path string) *OrderRepositoryFile {
	return &OrderRepositoryFile{path: strings.TrimSpace(path)}
}

func (r *OrderRepositoryFile) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if err := r.check(ctx); err != nil {
		return orderdom.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.load()
	o, ok := store[strings.TrimSpace(id)]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *OrderRepositoryFile) List(ctx context.Context, filter orderdom.Filter, page orderdom.Page) (orderdom.PageResult, error) {
	if err := r.check(ctx); err != nil {
		return orderdom.PageResult{}, err
	}

	r.mu.Lock()
	store := r.load()
	r.mu.Unlock()

	matched := make([]orderdom.Order, 0, len(store))
	for _, o := range store {
		if matchesFilter(o, filter) {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start, end := clampPage(total, page)
	return orderdom.PageResult{Items: matched[start:end], TotalCount: total}, nil
}

func (r *OrderRepositoryFile) Count(ctx context.Context, filter orderdom.Filter) (int, error) {
	res, err := r.List(ctx, filter, orderdom.Page{Number: 1, PerPage: 0})
	if err != nil {
		return 0, err
	}
	return res.TotalCount, nil
}

func (r *OrderRepositoryFile) Create(ctx context.Context, o orderdom.Order) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("order_repository_file: order id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.load()
	if _, ok := store[o.ID]; ok {
		return orderdom.ErrConflict
	}
	store[o.ID] = o
	return r.save(store)
}

func (r *OrderRepositoryFile) UpdateStatus(ctx context.Context, id string, status orderdom.Status, updatedAt time.Time) error {
	if err := r.check(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.load()
	o, ok := store[strings.TrimSpace(id)]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	store[o.ID] = o
	return r.save(store)
}

func (r *OrderRepositoryFile) check(ctx context.Context) error {
	if r == nil || r.path == "" {
		return errors.New("order_repository_file: path is empty")
	}
	return ctx.Err()
}

func (r *OrderRepositoryFile) load() map[string]orderdom.Order {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[order_repository_file] WARN: read %s failed: %v", r.path, err)
		}
		return map[string]orderdom.Order{}
	}

	var store map[string]orderdom.Order
	if err := json.Unmarshal(raw, &store); err != nil {
		log.Printf("[order_repository_file] WARN: decode %s failed, starting empty: %v", r.path, err)
		return map[string]orderdom.Order{}
	}
	if store == nil {
		store = map[string]orderdom.Order{}
	}
	return store
}

func (r *OrderRepositoryFile) save(store map[string]orderdom.Order) error {
	raw, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, raw, 0o644)
}

func matchesFilter(o orderdom.Order, f orderdom.Filter) bool {
	if f.SessionID != "" && o.SessionID != f.SessionID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if o.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(f.Query)) {
		return false
	}
	if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && !o.CreatedAt.Before(*f.CreatedTo) {
		return false
	}
	return true
}

func clampPage(total int, page orderdom.Page) (int, int) {
	if page.PerPage <= 0 {
		return 0, total
	}
	num := page.Number
	if num < 1 {
		num = 1
	}
	start := (num - 1) * page.PerPage
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	return start, end
}
