package state

import (
	"fmt"

	"github.com/kfs-ai/faculty-web/internal/i18n"
)

// Locale is a language with the direction it implies. Build it with
// LocaleFor so the two never disagree.
type Locale struct {
	Language  i18n.Language
	Direction i18n.Direction
}

// LocaleFor returns the locale of lang.
func LocaleFor(lang i18n.Language) Locale {
	return Locale{Language: lang, Direction: i18n.DirectionOf(lang)}
}

// LocaleEngine is the translation engine whose active catalog follows the
// locale state.
type LocaleEngine interface {
	SetActiveLocale(code string) error
}

// LocaleChangeHandler is called after the locale changes.
type LocaleChangeHandler func(oldLocale, newLocale Locale)

// LocaleState holds the current language and its derived direction.
type LocaleState struct {
	current  Locale
	engine   LocaleEngine
	handlers []LocaleChangeHandler
}

// NewLocaleState creates a locale state and points the engine at lang.
// The engine must accept both site languages.
func NewLocaleState(lang i18n.Language, engine LocaleEngine) (*LocaleState, error) {
	if engine == nil {
		return nil, fmt.Errorf("locale state: nil engine")
	}
	if err := engine.SetActiveLocale(lang.Other().String()); err != nil {
		return nil, fmt.Errorf("locale state: %w", err)
	}
	if err := engine.SetActiveLocale(lang.String()); err != nil {
		return nil, fmt.Errorf("locale state: %w", err)
	}
	return &LocaleState{current: LocaleFor(lang), engine: engine}, nil
}

// Language returns the current language.
func (s *LocaleState) Language() i18n.Language {
	return s.current.Language
}

// Direction returns the direction of the current language.
func (s *LocaleState) Direction() i18n.Direction {
	return s.current.Direction
}

// Locale returns the current language and direction together.
func (s *LocaleState) Locale() Locale {
	return s.current
}

// Toggle switches between English and Arabic. The engine is switched first,
// then language and direction are replaced in one assignment.
func (s *LocaleState) Toggle() Locale {
	old := s.current
	next := LocaleFor(old.Language.Other())
	if err := s.engine.SetActiveLocale(next.Language.String()); err != nil {
		// NewLocaleState verified the engine accepts both languages.
		panic(fmt.Sprintf("locale state: engine rejected %q: %v", next.Language, err))
	}
	s.current = next
	for _, h := range s.handlers {
		h(old, next)
	}
	return next
}

// OnChange registers a handler run by every Toggle.
func (s *LocaleState) OnChange(h LocaleChangeHandler) {
	s.handlers = append(s.handlers, h)
}
