package i18n

import (
	"fmt"
	"strings"
)

// Language is one of the two site languages.
type Language string

const (
	// English is the left-to-right site language.
	English Language = "en"
	// Arabic is the right-to-left site language.
	Arabic Language = "ar"
)

// Direction represents text direction
type Direction string

const (
	// LTR represents left-to-right text direction
	LTR Direction = "ltr"
	// RTL represents right-to-left text direction
	RTL Direction = "rtl"
)

// Languages lists the supported languages in switcher order.
var Languages = []Language{English, Arabic}

// LanguageConfig contains configuration for each language
type LanguageConfig struct {
	Code       Language  `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	Direction  Direction `json:"direction"`
	Digits     string    `json:"digits"`
}

// SupportedLanguages contains configuration for all supported languages
var SupportedLanguages = map[Language]LanguageConfig{
	English: {
		Code:       English,
		Name:       "English",
		NativeName: "English",
		Direction:  LTR,
		Digits:     "0123456789",
	},
	Arabic: {
		Code:       Arabic,
		Name:       "Arabic",
		NativeName: "العربية",
		Direction:  RTL,
		Digits:     "٠١٢٣٤٥٦٧٨٩", // Arabic-Indic digits
	},
}

// ParseLanguage converts a language code into a Language. Region subtags
// are ignored ("ar-EG" is Arabic).
func ParseLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
	}
	lang := Language(code)
	if _, ok := SupportedLanguages[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}

// Other returns the language a toggle switches to.
func (l Language) Other() Language {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Config returns the language configuration, falling back to English.
func (l Language) Config() LanguageConfig {
	if config, ok := SupportedLanguages[l]; ok {
		return config
	}
	return SupportedLanguages[English]
}

// DirectionOf returns the text direction for a language
func DirectionOf(l Language) Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// IsRTL checks if a language is right-to-left
func IsRTL(l Language) bool {
	return DirectionOf(l) == RTL
}

// LocalizeDigits converts Western digits to the language's digit set.
func LocalizeDigits(s string, l Language) string {
	config := l.Config()
	if config.Digits == "0123456789" {
		return s
	}

	digits := []rune(config.Digits)
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, char := range s {
		if char >= '0' && char <= '9' {
			b.WriteRune(digits[char-'0'])
			continue
		}
		// Arabic thousands separator
		if char == ',' {
			b.WriteRune('٬')
			continue
		}
		b.WriteRune(char)
	}
	return b.String()
}
