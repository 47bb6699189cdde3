package state

import "github.com/kfs-ai/faculty-web/internal/i18n"

// Store persists the two preference flags between sessions. Load returns
// false when nothing is stored.
type Store interface {
	Load(key string) (string, bool)
	Save(key, value string)
}

// Store keys.
const (
	ThemeKey    = "theme"
	LanguageKey = "lang"
)

// RestoreTheme loads the stored theme, falling back on missing or corrupt
// values.
func RestoreTheme(store Store, fallback Theme) Theme {
	raw, ok := store.Load(ThemeKey)
	if !ok {
		return fallback
	}
	mode, err := ParseTheme(raw)
	if err != nil {
		return fallback
	}
	return mode
}

// RestoreLanguage loads the stored language, reporting false on missing
// or corrupt values.
func RestoreLanguage(store Store) (i18n.Language, bool) {
	raw, ok := store.Load(LanguageKey)
	if !ok {
		return "", false
	}
	lang, err := i18n.ParseLanguage(raw)
	if err != nil {
		return "", false
	}
	return lang, true
}

// PersistTheme saves the theme on every toggle.
func PersistTheme(s *ThemeState, store Store) {
	s.OnChange(func(_, mode Theme) {
		store.Save(ThemeKey, mode.String())
	})
}

// PersistLocale saves the language on every toggle.
func PersistLocale(s *LocaleState, store Store) {
	s.OnChange(func(_, l Locale) {
		store.Save(LanguageKey, l.Language.String())
	})
}
