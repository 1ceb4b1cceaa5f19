package registry

import (
	"github.com/vk/aplab/internal/catalog"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
)

// Module is the interface every lesson module implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the ordered catalog index and the page table for a single
// application instance.
type Registry struct {
	catalog    *catalog.Catalog
	categories []string
	byLabel    map[string]*catalog.Category
	topics     map[string]map[string]*catalog.Topic

	pages map[string]page.Page // Key: locator string
}

// Entry is one navigable topic.
type Entry struct {
	Category string
	Topic    string
	Locator  locator.Locator
}

// New indexes a parsed catalog. The page table starts empty.
func New(cat *catalog.Catalog) *Registry {
	r := &Registry{
		catalog: cat,
		byLabel: make(map[string]*catalog.Category, len(cat.Categories)),
		topics:  make(map[string]map[string]*catalog.Topic, len(cat.Categories)),
		pages:   make(map[string]page.Page),
	}
	for _, c := range cat.Categories {
		r.categories = append(r.categories, c.Label)
		r.byLabel[c.Label] = c
		byTopic := make(map[string]*catalog.Topic, len(c.Topics))
		for _, t := range c.Topics {
			byTopic[t.Label] = t
		}
		r.topics[c.Label] = byTopic
	}
	return r
}

// Catalog returns the catalog the registry was built from.
func (r *Registry) Catalog() *catalog.Catalog { return r.catalog }

// Categories returns every category label in declaration order.
func (r *Registry) Categories() []string {
	return append([]string(nil), r.categories...)
}

// Topics returns the topic labels of a category in declaration order.
func (r *Registry) Topics(category string) ([]string, error) {
	c, ok := r.byLabel[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: category, Suggestion: suggest(category, r.categories)}
	}
	out := make([]string, len(c.Topics))
	for i, t := range c.Topics {
		out[i] = t.Label
	}
	return out, nil
}

// Locator returns the locator a topic maps to.
func (r *Registry) Locator(category, topic string) (locator.Locator, error) {
	t, err := r.topic(category, topic)
	if err != nil {
		return locator.Locator{}, err
	}
	return t.Locator, nil
}

func (r *Registry) topic(category, topic string) (*catalog.Topic, error) {
	byTopic, ok := r.topics[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: category, Suggestion: suggest(category, r.categories)}
	}
	t, ok := byTopic[topic]
	if !ok {
		labels, _ := r.Topics(category)
		return nil, &UnknownTopicError{Category: category, Topic: topic, Suggestion: suggest(topic, labels)}
	}
	return t, nil
}

// Entries returns every topic in catalog order.
func (r *Registry) Entries() []Entry {
	var out []Entry
	for _, c := range r.catalog.Categories {
		for _, t := range c.Topics {
			out = append(out, Entry{Category: c.Label, Topic: t.Label, Locator: t.Locator})
		}
	}
	return out
}

// Default returns the first topic of the first category.
func (r *Registry) Default() Entry {
	c := r.catalog.Categories[0]
	return Entry{Category: c.Label, Topic: c.Topics[0].Label, Locator: c.Topics[0].Locator}
}

// DisplayName returns the localised name of a topic, or of the category
// itself when topic is empty. Unknown labels are returned unchanged.
func (r *Registry) DisplayName(category, topic, locale string) string {
	if topic == "" {
		if c, ok := r.byLabel[category]; ok {
			return c.Name(locale)
		}
		return category
	}
	if t, err := r.topic(category, topic); err == nil {
		return t.Name(locale)
	}
	return topic
}
