package theme

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidSettings = errors.New("theme: invalid settings")
	ErrNotFound        = errors.New("theme: not found")
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Settings is the storefront appearance configuration the admin edits.
type Settings struct {
	ID string `json:"id" firestore:"id"`

	PrimaryColor   string `json:"primaryColor" firestore:"primaryColor"`
	SecondaryColor string `json:"secondaryColor" firestore:"secondaryColor"`
	AccentColor    string `json:"accentColor" firestore:"accentColor"`
	TextColor      string `json:"textColor" firestore:"textColor"`
	FontFamily     string `json:"fontFamily" firestore:"fontFamily"`

	BackgroundImage string `json:"backgroundImage" firestore:"backgroundImage"`
	LogoURL         string `json:"logoUrl" firestore:"logoUrl"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Default returns the appearance used before an admin ever saved one.
func Default(now time.Time) Settings {
	return Settings{
		ID:             "default",
		PrimaryColor:   "#1E1E1E",
		SecondaryColor: "#000000",
		AccentColor:    "#E6B325",
		TextColor:      "#FFFFFF",
		FontFamily:     "Inter",
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
}

// Validate checks color fields; image fields are free-form URLs.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrInvalidSettings
	}
	for _, c := range []string{s.PrimaryColor, s.SecondaryColor, s.AccentColor, s.TextColor} {
		if !hexColorRe.MatchString(strings.TrimSpace(c)) {
			return ErrInvalidSettings
		}
	}
	if strings.TrimSpace(s.FontFamily) == "" {
		return ErrInvalidSettings
	}
	return nil
}
