package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfs-ai/faculty-web/internal/i18n"
)

type fakeEngine struct {
	active  string
	reject  map[string]bool
	history []string
}

func (e *fakeEngine) SetActiveLocale(code string) error {
	if e.reject[code] {
		return i18n.ErrUnsupportedLanguage
	}
	e.active = code
	e.history = append(e.history, code)
	return nil
}

type memoryStore map[string]string

func (m memoryStore) Load(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memoryStore) Save(key, value string) {
	m[key] = value
}

func TestParseTheme(t *testing.T) {
	for _, valid := range []string{"light", "dark"} {
		mode, err := ParseTheme(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, mode.String())
	}
	for _, invalid := range []string{"", "Dark", "sepia"} {
		_, err := ParseTheme(invalid)
		assert.Error(t, err, "value %q", invalid)
	}
}

func TestThemeToggleParity(t *testing.T) {
	for n := 0; n <= 9; n++ {
		s := NewThemeState(ThemeLight)
		for i := 0; i < n; i++ {
			s.Toggle()
		}
		want := ThemeLight
		if n%2 == 1 {
			want = ThemeDark
		}
		assert.Equal(t, want, s.Mode(), "after %d toggles", n)
	}
}

func TestThemeModeDoesNotMutate(t *testing.T) {
	s := NewThemeState(ThemeDark)
	for i := 0; i < 3; i++ {
		assert.Equal(t, ThemeDark, s.Mode())
	}
}

func TestNewThemeStateRejectsUnknownInitial(t *testing.T) {
	assert.Equal(t, ThemeLight, NewThemeState(Theme("sepia")).Mode())
}

func TestThemeToggleRunsHandlersAfterFlip(t *testing.T) {
	s := NewThemeState(ThemeLight)
	var seen []Theme
	s.OnChange(func(oldMode, newMode Theme) {
		assert.Equal(t, ThemeLight, oldMode)
		assert.Equal(t, newMode, s.Mode(), "handler ran before the flip")
		seen = append(seen, newMode)
	})

	got := s.Toggle()
	assert.Equal(t, ThemeDark, got)
	assert.Equal(t, []Theme{ThemeDark}, seen)
}

func TestNewLocaleState(t *testing.T) {
	engine := &fakeEngine{}
	s, err := NewLocaleState(i18n.Arabic, engine)
	require.NoError(t, err)

	assert.Equal(t, i18n.Arabic, s.Language())
	assert.Equal(t, i18n.RTL, s.Direction())
	assert.Equal(t, "ar", engine.active)
}

func TestNewLocaleStateRequiresBothLanguages(t *testing.T) {
	engine := &fakeEngine{reject: map[string]bool{"ar": true}}
	_, err := NewLocaleState(i18n.English, engine)
	assert.True(t, errors.Is(err, i18n.ErrUnsupportedLanguage))

	_, err = NewLocaleState(i18n.English, nil)
	assert.Error(t, err)
}

func TestLocaleDirectionInvariant(t *testing.T) {
	for _, start := range i18n.Languages {
		s, err := NewLocaleState(start, &fakeEngine{})
		require.NoError(t, err)

		check := func() {
			l := s.Locale()
			assert.Equal(t, l.Language == i18n.Arabic, l.Direction == i18n.RTL,
				"language %q with direction %q", l.Language, l.Direction)
			assert.Equal(t, s.Direction(), i18n.DirectionOf(s.Language()))
		}

		s.OnChange(func(_, l Locale) {
			assert.Equal(t, i18n.DirectionOf(l.Language), l.Direction)
			check()
		})

		check()
		for i := 0; i < 7; i++ {
			s.Toggle()
			check()
		}
	}
}

func TestLocaleRoundTrip(t *testing.T) {
	s, err := NewLocaleState(i18n.English, &fakeEngine{})
	require.NoError(t, err)

	before := s.Locale()
	mid := s.Toggle()
	assert.Equal(t, LocaleFor(i18n.Arabic), mid)
	after := s.Toggle()
	assert.Equal(t, before, after)
}

func TestLocaleToggleSwitchesEngineFirst(t *testing.T) {
	engine := &fakeEngine{}
	s, err := NewLocaleState(i18n.English, engine)
	require.NoError(t, err)

	s.OnChange(func(_, l Locale) {
		assert.Equal(t, l.Language.String(), engine.active)
	})
	s.Toggle()
	assert.Equal(t, "ar", engine.active)
}

func TestDocumentBind(t *testing.T) {
	theme := NewThemeState(ThemeLight)
	locale, err := NewLocaleState(i18n.English, &fakeEngine{})
	require.NoError(t, err)

	doc := &Document{}
	doc.Bind(theme, locale)
	assert.Equal(t, map[string]string{"lang": "en", "dir": "ltr", "data-theme": "light"}, doc.Attributes())

	locale.Toggle()
	theme.Toggle()
	assert.Equal(t, map[string]string{"lang": "ar", "dir": "rtl", "data-theme": "dark"}, doc.Attributes())
	assert.Equal(t, `lang="ar" dir="rtl" data-theme="dark"`, string(doc.HTMLAttributes()))
}

func TestProvidersFailFast(t *testing.T) {
	ctx := context.Background()

	_, err := ThemeFrom(ctx)
	assert.ErrorIs(t, err, ErrNoThemeProvider)

	_, err = LocaleFrom(ctx)
	assert.ErrorIs(t, err, ErrNoLocaleProvider)

	_, err = DocumentFrom(ctx)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestProvidersMounted(t *testing.T) {
	theme := NewThemeState(ThemeDark)
	locale, err := NewLocaleState(i18n.Arabic, &fakeEngine{})
	require.NoError(t, err)
	doc := &Document{}

	ctx := WithDocument(WithLocale(WithTheme(context.Background(), theme), locale), doc)

	gotTheme, err := ThemeFrom(ctx)
	require.NoError(t, err)
	assert.Same(t, theme, gotTheme)

	gotLocale, err := LocaleFrom(ctx)
	require.NoError(t, err)
	assert.Same(t, locale, gotLocale)

	gotDoc, err := DocumentFrom(ctx)
	require.NoError(t, err)
	assert.Same(t, doc, gotDoc)
}

func TestRestoreTheme(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		want   Theme
	}{
		{"missing", map[string]string{}, ThemeLight},
		{"stored dark", map[string]string{ThemeKey: "dark"}, ThemeDark},
		{"corrupt", map[string]string{ThemeKey: "purple"}, ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RestoreTheme(memoryStore(tt.stored), ThemeLight))
		})
	}
}

func TestRestoreLanguage(t *testing.T) {
	lang, ok := RestoreLanguage(memoryStore{LanguageKey: "ar"})
	assert.True(t, ok)
	assert.Equal(t, i18n.Arabic, lang)

	_, ok = RestoreLanguage(memoryStore{LanguageKey: "klingon"})
	assert.False(t, ok)

	_, ok = RestoreLanguage(memoryStore{})
	assert.False(t, ok)
}

func TestPersistOnToggle(t *testing.T) {
	store := memoryStore{}

	theme := NewThemeState(RestoreTheme(store, ThemeLight))
	PersistTheme(theme, store)
	theme.Toggle()
	assert.Equal(t, "dark", store[ThemeKey])

	locale, err := NewLocaleState(i18n.English, &fakeEngine{})
	require.NoError(t, err)
	PersistLocale(locale, store)
	locale.Toggle()
	assert.Equal(t, "ar", store[LanguageKey])

	// a fresh session restores what was saved
	assert.Equal(t, ThemeDark, RestoreTheme(store, ThemeLight))
	lang, ok := RestoreLanguage(store)
	assert.True(t, ok)
	assert.Equal(t, i18n.Arabic, lang)
}
