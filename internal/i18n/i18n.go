// Package i18n holds the UI translation tables and locale negotiation.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is the locale used when nothing else matches.
const DefaultLocale = "en"

// Bundle is an immutable set of translation tables.
type Bundle struct {
	def       string
	tables    map[string]map[string]string
	supported []string
	matcher   language.Matcher
}

// Load reads the embedded translation tables. def names the fallback locale
// and must be one of them.
func Load(def string) (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		raw, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", name, err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("failed to decode locale %s: %w", name, err)
		}
		tables[strings.TrimSuffix(name, ".yaml")] = table
	}

	return NewBundle(def, tables)
}

// NewBundle builds a bundle from in-memory tables.
func NewBundle(def string, tables map[string]map[string]string) (*Bundle, error) {
	if _, ok := tables[def]; !ok {
		return nil, fmt.Errorf("default locale %q has no translation table", def)
	}

	// The default goes first so the matcher falls back to it.
	supported := []string{def}
	for locale := range tables {
		if locale != def {
			supported = append(supported, locale)
		}
	}
	slices.Sort(supported[1:])

	tags := make([]language.Tag, len(supported))
	for i, locale := range supported {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		tags[i] = tag
	}

	return &Bundle{
		def:       def,
		tables:    tables,
		supported: supported,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Default returns the fallback locale.
func (b *Bundle) Default() string { return b.def }

// Supported returns the known locales, default first.
func (b *Bundle) Supported() []string { return append([]string(nil), b.supported...) }

// Resolve picks the locale for a request. Candidates are tried in order: the
// first value of the `lang` query parameter, the `lang` cookie, then the
// Accept-Language header. Missing, malformed or unsupported candidates are
// skipped; when none match, the default locale is used.
func (b *Bundle) Resolve(query []string, cookie, acceptLanguage string) string {
	if len(query) > 0 {
		if locale, ok := b.match(query[0]); ok {
			return locale
		}
	}
	if locale, ok := b.match(cookie); ok {
		return locale
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := b.matcher.Match(tags...); conf != language.No {
				return b.supported[idx]
			}
		}
	}
	return b.def
}

func (b *Bundle) match(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if _, ok := b.tables[raw]; ok {
		return raw, true
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return b.supported[idx], true
}

// Translator returns a translator for locale. Unknown locales translate as
// the default locale.
func (b *Bundle) Translator(locale string) *Translator {
	if _, ok := b.tables[locale]; !ok {
		locale = b.def
	}
	return &Translator{bundle: b, locale: locale}
}

// Translator looks up UI strings for one locale.
type Translator struct {
	bundle *Bundle
	locale string
}

// Locale returns the translator's locale.
func (t *Translator) Locale() string { return t.locale }

// Text returns the string for key, falling back to the default locale and
// then to the key itself.
func (t *Translator) Text(key string) string {
	if s, ok := t.bundle.tables[t.locale][key]; ok {
		return s
	}
	if s, ok := t.bundle.tables[t.bundle.def][key]; ok {
		return s
	}
	return key
}
