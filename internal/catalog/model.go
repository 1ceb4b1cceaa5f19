package catalog

import "github.com/vk/aplab/internal/locator"

// Catalog is the format-agnostic representation of the topic manifest.
type Catalog struct {
	Categories []*Category
}

// Category is one `category` block.
type Category struct {
	Label  string
	Names  map[string]string // locale -> display name
	Topics []*Topic
}

// Topic is one `topic` block inside a category.
type Topic struct {
	Label   string
	Locator locator.Locator
	Names   map[string]string // locale -> display name
	Source  string            // file:line of the declaring block
}

// Name returns the display name for locale, or the label when the
// manifest has no translation for it.
func (c *Category) Name(locale string) string {
	return displayName(c.Label, c.Names, locale)
}

// Name returns the display name for locale, or the label when the
// manifest has no translation for it.
func (t *Topic) Name(locale string) string {
	return displayName(t.Label, t.Names, locale)
}

func displayName(label string, names map[string]string, locale string) string {
	if name, ok := names[locale]; ok && name != "" {
		return name
	}
	return label
}
