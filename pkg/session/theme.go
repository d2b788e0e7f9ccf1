package session

import (
	"strings"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Theme is the colour scheme of the site chrome.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme parses "light" or "dark". An empty string is light.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case "", ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", errors.NewValidationError("theme", s, "must be light or dark")
}
