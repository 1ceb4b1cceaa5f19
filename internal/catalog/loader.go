package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/locator"
)

//go:embed catalog.hcl
var defaultManifest []byte

// DefaultFilename is the name reported in diagnostics for the embedded manifest.
const DefaultFilename = "catalog.hcl"

// fileRoot decodes the top level of a manifest file.
type fileRoot struct {
	Categories []*hclCategory `hcl:"category,block"`
}

type hclCategory struct {
	Label  string            `hcl:"label,label"`
	I18n   map[string]string `hcl:"i18n,optional"`
	Topics []*hclTopic       `hcl:"topic,block"`
	Range  hcl.Range         `hcl:",def_range"`
}

type hclTopic struct {
	Label   string            `hcl:"label,label"`
	Locator string            `hcl:"locator"`
	I18n    map[string]string `hcl:"i18n,optional"`
	Range   hcl.Range         `hcl:",def_range"`
}

// Default parses the embedded manifest.
func Default(ctx context.Context) (*Catalog, error) {
	return Parse(ctx, defaultManifest, DefaultFilename)
}

// Parse decodes a manifest and checks its structural invariants: at least
// one category, unique labels within each scope, unique well-formed locators.
func Parse(ctx context.Context, src []byte, filename string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loader started.", "file", filename)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	cat, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", filename, err)
	}

	logger.Debug("Catalog loaded.", "categories", len(cat.Categories), "topics", cat.TopicCount())
	return cat, nil
}

func translate(root *fileRoot) (*Catalog, error) {
	if len(root.Categories) == 0 {
		return nil, fmt.Errorf("no categories declared")
	}

	cat := &Catalog{Categories: make([]*Category, 0, len(root.Categories))}
	seenCategories := make(map[string]hcl.Range)
	seenLocators := make(map[string]hcl.Range)

	for _, hc := range root.Categories {
		if prev, dup := seenCategories[hc.Label]; dup {
			return nil, fmt.Errorf("%s: duplicate category %q (first declared at %s)", hc.Range, hc.Label, prev)
		}
		seenCategories[hc.Label] = hc.Range

		if len(hc.Topics) == 0 {
			return nil, fmt.Errorf("%s: category %q declares no topics", hc.Range, hc.Label)
		}

		category := &Category{
			Label:  hc.Label,
			Names:  hc.I18n,
			Topics: make([]*Topic, 0, len(hc.Topics)),
		}

		seenTopics := make(map[string]hcl.Range)
		for _, ht := range hc.Topics {
			if prev, dup := seenTopics[ht.Label]; dup {
				return nil, fmt.Errorf("%s: duplicate topic %q in category %q (first declared at %s)", ht.Range, ht.Label, hc.Label, prev)
			}
			seenTopics[ht.Label] = ht.Range

			loc, err := locator.Parse(ht.Locator)
			if err != nil {
				return nil, fmt.Errorf("%s: topic %q: %w", ht.Range, ht.Label, err)
			}
			if prev, dup := seenLocators[loc.String()]; dup {
				return nil, fmt.Errorf("%s: locator %q already used at %s", ht.Range, loc, prev)
			}
			seenLocators[loc.String()] = ht.Range

			category.Topics = append(category.Topics, &Topic{
				Label:   ht.Label,
				Locator: loc,
				Names:   ht.I18n,
				Source:  fmt.Sprintf("%s:%d", ht.Range.Filename, ht.Range.Start.Line),
			})
		}

		cat.Categories = append(cat.Categories, category)
	}

	return cat, nil
}

// TopicCount returns the number of topics across all categories.
func (c *Catalog) TopicCount() int {
	n := 0
	for _, category := range c.Categories {
		n += len(category.Topics)
	}
	return n
}
