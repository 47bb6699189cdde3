// Package state holds the two per-session UI states of the site, the
// display theme and the language/direction pair, together with the root
// document attributes they are mirrored onto.
//
// States are owned by the provider that creates them and reach the rest of
// a request only through context accessors. Every mutation goes through a
// Toggle method, which runs the registered change handlers before it
// returns.
package state

import "fmt"

// Theme is the display mode.
type Theme string

const (
	// ThemeLight is the default display mode.
	ThemeLight Theme = "light"
	// ThemeDark is the alternate display mode.
	ThemeDark Theme = "dark"
)

// ParseTheme converts a stored value into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Other returns the mode a toggle switches to.
func (t Theme) Other() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}

// ThemeChangeHandler is called after the theme changes.
type ThemeChangeHandler func(oldMode, newMode Theme)

// ThemeState holds the current display mode.
type ThemeState struct {
	mode     Theme
	handlers []ThemeChangeHandler
}

// NewThemeState creates a theme state. Invalid initial values start light.
func NewThemeState(initial Theme) *ThemeState {
	if _, err := ParseTheme(string(initial)); err != nil {
		initial = ThemeLight
	}
	return &ThemeState{mode: initial}
}

// Mode returns the current display mode.
func (s *ThemeState) Mode() Theme {
	return s.mode
}

// Toggle flips light and dark and returns the new mode.
func (s *ThemeState) Toggle() Theme {
	old := s.mode
	s.mode = old.Other()
	for _, h := range s.handlers {
		h(old, s.mode)
	}
	return s.mode
}

// OnChange registers a handler run by every Toggle.
func (s *ThemeState) OnChange(h ThemeChangeHandler) {
	s.handlers = append(s.handlers, h)
}
