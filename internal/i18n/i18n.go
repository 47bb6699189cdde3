package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed translations/*.json
var translationsFS embed.FS

// ErrUnsupportedLanguage is returned for language codes outside the catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Catalog holds the translated strings of every supported language.
type Catalog struct {
	translations map[Language]map[string]interface{}
	defaultLang  Language
	mu           sync.RWMutex
}

// LoadCatalog loads the embedded translation files.
func LoadCatalog(defaultLang Language) (*Catalog, error) {
	return LoadCatalogFS(translationsFS, defaultLang)
}

// LoadCatalogFS loads translations/<code>.json files from fsys. Every
// supported language must have a file.
func LoadCatalogFS(fsys fs.FS, defaultLang Language) (*Catalog, error) {
	if _, ok := SupportedLanguages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language: %w: %q", ErrUnsupportedLanguage, defaultLang)
	}

	c := &Catalog{
		translations: make(map[Language]map[string]interface{}),
		defaultLang:  defaultLang,
	}

	err := fs.WalkDir(fsys, "translations", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}

		lang, err := ParseLanguage(strings.TrimSuffix(path.Base(p), ".json"))
		if err != nil {
			// Catalogs for languages the site does not offer are ignored.
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read translation file %s: %w", p, err)
		}

		var translations map[string]interface{}
		if err := json.Unmarshal(content, &translations); err != nil {
			return fmt.Errorf("failed to parse translation file %s: %w", p, err)
		}

		c.translations[lang] = translations
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, lang := range Languages {
		if _, ok := c.translations[lang]; !ok {
			return nil, fmt.Errorf("missing translation file for %q", lang)
		}
	}

	return c, nil
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() Language {
	return c.defaultLang
}

// Supports reports whether the catalog has translations for code.
func (c *Catalog) Supports(code string) bool {
	lang, err := ParseLanguage(code)
	if err != nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.translations[lang]
	return ok
}

// Lookup returns the translation for key in lang without any fallback.
func (c *Catalog) Lookup(lang Language, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	str, ok := getNestedValue(c.translations[lang], key).(string)
	return str, ok
}

// T translates a key to the specified language. Missing keys fall back to
// the default language, then to the key itself.
func (c *Catalog) T(lang Language, key string, args ...interface{}) string {
	str, ok := c.Lookup(lang, key)
	if !ok && lang != c.defaultLang {
		str, ok = c.Lookup(c.defaultLang, key)
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(str, args...)
	}
	return str
}

// Keys returns all translation keys for a language in dot notation, sorted.
func (c *Catalog) Keys(lang Language) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := []string{}
	extractKeys(c.translations[lang], "", &keys)
	sort.Strings(keys)
	return keys
}

// MissingKeys returns, per language, the keys another language defines
// but this one does not.
func (c *Catalog) MissingKeys() map[Language][]string {
	all := make(map[string]struct{})
	perLang := make(map[Language]map[string]struct{}, len(Languages))
	for _, lang := range Languages {
		set := make(map[string]struct{})
		for _, key := range c.Keys(lang) {
			set[key] = struct{}{}
			all[key] = struct{}{}
		}
		perLang[lang] = set
	}

	missing := make(map[Language][]string)
	for _, lang := range Languages {
		for key := range all {
			if _, ok := perLang[lang][key]; !ok {
				missing[lang] = append(missing[lang], key)
			}
		}
		sort.Strings(missing[lang])
	}
	for lang, keys := range missing {
		if len(keys) == 0 {
			delete(missing, lang)
		}
	}
	return missing
}

// getNestedValue retrieves a nested value from a map using dot notation
func getNestedValue(m map[string]interface{}, key string) interface{} {
	if m == nil {
		return nil
	}

	var current interface{} = m
	for _, k := range strings.Split(key, ".") {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = currentMap[k]
		if current == nil {
			return nil
		}
	}
	return current
}

// extractKeys recursively extracts all keys from nested maps
func extractKeys(m map[string]interface{}, prefix string, keys *[]string) {
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nestedMap, ok := value.(map[string]interface{}); ok {
			extractKeys(nestedMap, fullKey, keys)
		} else {
			*keys = append(*keys, fullKey)
		}
	}
}
