package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	menudom "sabordigital/internal/domain/menu"
)

var (
	ErrMenuInvalidArgument = errors.New("menu_usecase: invalid argument")
)

// MenuUsecase serves the public catalog and the admin CRUD surface.
type MenuUsecase struct {
	repo  menudom.Repository
	clock Clock
	newID func() string
}

func NewMenuUsecase(repo menudom.Repository) *MenuUsecase {
	return &MenuUsecase{repo: repo, clock: systemClock{}, newID: uuid.NewString}
}

// NewMenuUsecaseWithClock is useful for tests.
func NewMenuUsecaseWithClock(repo menudom.Repository, clock Clock, newID func() string) *MenuUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &MenuUsecase{repo: repo, clock: clock, newID: newID}
}

// ListPublic returns available items, optionally narrowed to a category.
func (uc *MenuUsecase) ListPublic(ctx context.Context, category string) ([]menudom.Item, error) {
	return uc.repo.List(ctx, menudom.Filter{
		Category:      strings.TrimSpace(category),
		OnlyAvailable: true,
	})
}

// ListAll returns every item for the admin screen.
func (uc *MenuUsecase) ListAll(ctx context.Context) ([]menudom.Item, error) {
	return uc.repo.List(ctx, menudom.Filter{})
}

func (uc *MenuUsecase) Get(ctx context.Context, id string) (menudom.Item, error) {
	if strings.TrimSpace(id) == "" {
		return menudom.Item{}, ErrMenuInvalidArgument
	}
	return uc.repo.GetByID(ctx, strings.TrimSpace(id))
}

// Create builds and persists a new menu item.
func (uc *MenuUsecase) Create(ctx context.Context, name, description string, priceCents int64, imageURL, category string, available bool) (menudom.Item, error) {
	it, err := menudom.New(uc.newID(), name, description, priceCents, imageURL, category, available, uc.clock.Now())
	if err != nil {
		return menudom.Item{}, err
	}
	if err := uc.repo.Create(ctx, it); err != nil {
		return menudom.Item{}, err
	}
	return it, nil
}

// Update applies a patch to an existing item.
func (uc *MenuUsecase) Update(ctx context.Context, id string, p menudom.Patch) (menudom.Item, error) {
	it, err := uc.Get(ctx, id)
	if err != nil {
		return menudom.Item{}, err
	}
	patched, err := it.Apply(p)
	if err != nil {
		return menudom.Item{}, err
	}
	if err := uc.repo.Update(ctx, patched); err != nil {
		return menudom.Item{}, err
	}
	return patched, nil
}

func (uc *MenuUsecase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMenuInvalidArgument
	}
	return uc.repo.Delete(ctx, strings.TrimSpace(id))
}
