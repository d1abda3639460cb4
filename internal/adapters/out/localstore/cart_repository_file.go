// Package localstore persists carts to a JSON file on disk. It backs
// single-instance deployments that run without Firestore; every mutation
// rewrites the whole file, mirroring how a browser rewrites a storage key.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	cartdom "sabordigital/internal/domain/cart"
)

// CartRepositoryFile implements cart.Repository on a single JSON file.
//
// The file holds a map of sessionId -> cart. A missing or malformed file
// is treated as an empty store: cart state is reconstructible, so a
// corrupt snapshot must never take the storefront down.
type CartRepositoryFile struct {
	path string

	mu sync.Mutex
}

func NewCartRepositoryFile(path string) *CartRepositoryFile {
	return &CartRepositoryFile{path: strings.TrimSpace(path)}
}

func (r *CartRepositoryFile) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	if r == nil || r.path == "" {
		return nil, errors.New("cart_repository_file: path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.load()
	c, ok := store[strings.TrimSpace(sessionID)]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *CartRepositoryFile) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.path == "" {
		return errors.New("cart_repository_file: path is empty")
	}
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return errors.New("cart_repository_file: cart id is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.load()
	store[c.ID] = c
	return r.save(store)
}

func (r *CartRepositoryFile) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if r == nil || r.path == "" {
		return errors.New("cart_repository_file: path is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.load()
	if _, ok := store[strings.TrimSpace(sessionID)]; !ok {
		return nil
	}
	delete(store, strings.TrimSpace(sessionID))
	return r.save(store)
}

// load reads the snapshot. Any read or decode failure yields an empty
// store; the next save overwrites the bad snapshot.
func (r *CartRepositoryFile) load() map[string]*cartdom.Cart {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[cart_repository_file] WARN: read %s failed: %v", r.path, err)
		}
		return map[string]*cartdom.Cart{}
	}

	var store map[string]*cartdom.Cart
	if err := json.Unmarshal(raw, &store); err != nil {
		log.Printf("[cart_repository_file] WARN: decode %s failed, starting empty: %v", r.path, err)
		return map[string]*cartdom.Cart{}
	}
	if store == nil {
		store = map[string]*cartdom.Cart{}
	}
	for id, c := range store {
		if c == nil {
			delete(store, id)
		}
	}
	return store
}

// save writes via a temp file and rename so readers never see a half
// written snapshot.
func (r *CartRepositoryFile) save(store map[string]*cartdom.Cart) error {
	raw, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".carts-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, r.path)
}
