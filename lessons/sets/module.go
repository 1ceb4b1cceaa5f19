// Package sets is lesson 3.3: unique values, membership and set algebra.
package sets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t03_data_structures.t03_sets"

const collectionSlot = "sticker_collection"

var stickers = []string{"🐱", "🐶", "🦊", "🐼", "🐸", "🦁", "🐧", "🐙"}

// draws is the fixed order in which packs reveal stickers.
var draws = []int{3, 0, 3, 5, 2, 0, 7, 4, 5, 1, 3, 6}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("3.3 Sets in Python")
	pc.Markdown(`
		### Collections Without Duplicates 🎯

		A set stores each value at most once and has no order. Sets are
		great for removing duplicates and checking membership quickly.
	`)
	pc.Code(`
		colors = {"red", "green", "red"}
		print(colors)          # {'green', 'red'}
		print("red" in colors) # True
	`)

	tabs := pc.Tabs("🧹 Removing Duplicates", "🔀 Set Operations", "🏷️ Sticker Collection")
	dedupe(tabs[0])
	operations(tabs[1])
	return collection(pc, tabs[2])
}

// splitItems splits comma-separated input, trimming blanks.
func splitItems(raw string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// unique returns the distinct items in first-seen order.
func unique(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

func dedupe(s *ui.Surface) {
	s.Markdown("### 🧹 From List to Set")
	items := splitItems(s.TextInput("Guest list (comma separated):", "Ann, Bob, Ann, Cid, Bob, Ann"))
	u := unique(items)
	s.Code(fmt.Sprintf(`
		guests = %s
		set(guests)  # %s
	`, pyfmt.Strings(items), pyfmt.Set(u)))

	cols := s.Columns(2)
	cols[0].Metric("len(guests)", fmt.Sprint(len(items)), "")
	cols[1].Metric("len(set(guests))", fmt.Sprint(len(u)), fmt.Sprintf("-%d duplicates", len(items)-len(u)))

	probe := strings.TrimSpace(s.TextInput("Check membership of:", "Bob"))
	if slices.Contains(u, probe) {
		s.Success(fmt.Sprintf("%s in guests  # True", pyfmt.Str(probe)))
	} else {
		s.Info(fmt.Sprintf("%s in guests  # False", pyfmt.Str(probe)))
	}
}

// algebra holds the results of the four binary set operations.
type algebra struct {
	Union, Intersection, Difference, Symmetric []string
}

func compute(a, b []string) algebra {
	var r algebra
	for _, x := range a {
		r.Union = append(r.Union, x)
		if slices.Contains(b, x) {
			r.Intersection = append(r.Intersection, x)
		} else {
			r.Difference = append(r.Difference, x)
			r.Symmetric = append(r.Symmetric, x)
		}
	}
	for _, x := range b {
		if !slices.Contains(a, x) {
			r.Union = append(r.Union, x)
			r.Symmetric = append(r.Symmetric, x)
		}
	}
	return r
}

func operations(s *ui.Surface) {
	s.Markdown(`
		### 🔀 Set Operations

		- **a.union(b)**: in a or b
		- **a.intersection(b)**: in both
		- **a.difference(b)**: in a but not in b
		- **a.symmetric_difference(b)**: in exactly one of them
	`)
	cols := s.Columns(2)
	a := unique(splitItems(cols[0].TextInput("Set a:", "python, go, rust, java")))
	b := unique(splitItems(cols[1].TextInput("Set b:", "go, java, kotlin")))
	r := compute(a, b)

	s.Code(fmt.Sprintf(`
		a = %s
		b = %s

		a | b  # %s
		a & b  # %s
		a - b  # %s
		a ^ b  # %s
	`, pyfmt.Set(a), pyfmt.Set(b), pyfmt.Set(r.Union), pyfmt.Set(r.Intersection), pyfmt.Set(r.Difference), pyfmt.Set(r.Symmetric)))

	s.Chart(chart.Bar("Size of each result",
		[]string{"a | b", "a & b", "a - b", "a ^ b"},
		[]float64{float64(len(r.Union)), float64(len(r.Intersection)), float64(len(r.Difference)), float64(len(r.Symmetric))}))

	switch {
	case len(r.Intersection) == 0:
		s.Info("a.isdisjoint(b) is True: the sets share nothing.")
	case len(r.Difference) == 0:
		s.Info("a.issubset(b) is True: every item of a is also in b.")
	}
}

func collection(pc *page.Context, s *ui.Surface) error {
	s.Markdown(`
		### 🏷️ Sticker Collection

		Open sticker packs and add them to your collection set. Duplicates
		don't grow a set, so how many packs does it take to collect them all?
	`)
	sess := pc.Session()
	owned, err := sess.Strings(collectionSlot, nil)
	if err != nil {
		return err
	}
	packs, err := sess.Int("sticker_packs", 0)
	if err != nil {
		return err
	}

	cols := s.Columns(2)
	open := cols[0].Button("🎁 Open a pack")
	reset := cols[1].Button("🗑️ Start a new album")
	var got string
	switch {
	case open:
		got = stickers[draws[packs%len(draws)]]
		packs++
		if !slices.Contains(owned, got) {
			owned = append(owned, got)
		}
	case reset:
		owned, packs = []string{}, 0
	}
	if open || reset {
		if err := sess.SetStrings(collectionSlot, owned); err != nil {
			return err
		}
		if err := sess.SetInt("sticker_packs", packs); err != nil {
			return err
		}
	}

	if got != "" {
		s.Code(fmt.Sprintf("collection.add(%s)", pyfmt.Str(got)))
	}
	s.Code("collection = " + pyfmt.Set(owned))
	s.Chart(chart.Gauge("Stickers collected", float64(len(owned)), 0, float64(len(stickers))))
	s.Metric("Packs opened", fmt.Sprint(packs), "")
	if len(owned) == len(stickers) {
		s.Success(fmt.Sprintf("Album complete after %d packs!", packs))
	}
	return nil
}
