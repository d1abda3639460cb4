package menu

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidItem = errors.New("menu: invalid item")
	ErrNotFound    = errors.New("menu: not found")
)

// Item is one catalog entry of the restaurant menu.
type Item struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`
	PriceCents  int64  `json:"priceCents" firestore:"priceCents"`

	// PromotionalPriceCents, when set, replaces PriceCents for customers.
	PromotionalPriceCents *int64 `json:"promotionalPriceCents,omitempty" firestore:"promotionalPriceCents"`

	ImageURL    string    `json:"imageUrl" firestore:"imageUrl"`
	Category    string    `json:"category" firestore:"category"`
	IsAvailable bool      `json:"isAvailable" firestore:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// Patch represents partial updates to Item fields. A nil field means
// "no change"; a non-nil PromotionalPriceCents pointing at a negative value
// clears the promotion.
type Patch struct {
	Name                  *string
	Description           *string
	PriceCents            *int64
	PromotionalPriceCents *int64
	ImageURL              *string
	Category              *string
	IsAvailable           *bool
}

// New validates and returns an Item.
func New(id, name, description string, priceCents int64, imageURL, category string, available bool, now time.Time) (Item, error) {
	it := Item{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		PriceCents:  priceCents,
		ImageURL:    strings.TrimSpace(imageURL),
		Category:    strings.TrimSpace(category),
		IsAvailable: available,
		CreatedAt:   now.UTC(),
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Validate checks invariants shared by create and update paths.
func (it Item) Validate() error {
	if it.ID == "" || it.Name == "" {
		return ErrInvalidItem
	}
	if it.PriceCents < 0 {
		return ErrInvalidItem
	}
	if it.PromotionalPriceCents != nil && *it.PromotionalPriceCents < 0 {
		return ErrInvalidItem
	}
	if it.CreatedAt.IsZero() {
		return ErrInvalidItem
	}
	return nil
}

// EffectivePriceCents is the price customers pay: the promotional price when
// one is set, the list price otherwise.
func (it Item) EffectivePriceCents() int64 {
	if it.PromotionalPriceCents != nil {
		return *it.PromotionalPriceCents
	}
	return it.PriceCents
}

// Apply merges a patch into the item, returning the patched copy.
func (it Item) Apply(p Patch) (Item, error) {
	if p.Name != nil {
		it.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		it.Description = strings.TrimSpace(*p.Description)
	}
	if p.PriceCents != nil {
		it.PriceCents = *p.PriceCents
	}
	if p.PromotionalPriceCents != nil {
		if *p.PromotionalPriceCents < 0 {
			it.PromotionalPriceCents = nil
		} else {
			v := *p.PromotionalPriceCents
			it.PromotionalPriceCents = &v
		}
	}
	if p.ImageURL != nil {
		it.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.Category != nil {
		it.Category = strings.TrimSpace(*p.Category)
	}
	if p.IsAvailable != nil {
		it.IsAvailable = *p.IsAvailable
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}
