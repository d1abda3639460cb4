package usecase

import (
	"context"
	"errors"

	themedom "sabordigital/internal/domain/theme"
)

// ThemeUsecase serves appearance settings: customers read them on load,
// admins overwrite them.
type ThemeUsecase struct {
	repo  themedom.Repository
	clock Clock
}

func NewThemeUsecase(repo themedom.Repository) *ThemeUsecase {
	return &ThemeUsecase{repo: repo, clock: systemClock{}}
}

// Get returns the stored settings, falling back to the default appearance
// when none were ever saved.
func (uc *ThemeUsecase) Get(ctx context.Context) (themedom.Settings, error) {
	s, err := uc.repo.Get(ctx, "default")
	if err != nil {
		if errors.Is(err, themedom.ErrNotFound) {
			return themedom.Default(uc.clock.Now()), nil
		}
		return themedom.Settings{}, err
	}
	return s, nil
}

// Update validates and overwrites the settings document.
func (uc *ThemeUsecase) Update(ctx context.Context, s themedom.Settings) (themedom.Settings, error) {
	s.ID = "default"
	s.UpdatedAt = uc.clock.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.UpdatedAt
	}
	if err := s.Validate(); err != nil {
		return themedom.Settings{}, err
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return themedom.Settings{}, err
	}
	return s, nil
}
