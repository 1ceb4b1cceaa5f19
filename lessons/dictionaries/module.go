// Package dictionaries is lesson 3.2: key/value pairs, lookups, updates and
// iteration.
package dictionaries

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t03_data_structures.t02_dictionaries"

const (
	bookSlot  = "phone_book"
	orderSlot = "phone_book_order"
	statsSlot = "phone_book_stats"
)

var defaultBook = map[string]string{"Ada": "555-0100", "Grace": "555-0199"}

// lookupStats counts phone book lookups.
type lookupStats struct {
	Hits   int `cty:"hits"`
	Misses int `cty:"misses"`
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("3.2 Dictionaries in Python")
	pc.Markdown(`
		### Looking Things Up by Name 📖

		A dictionary maps **keys** to **values**, like a real dictionary
		maps words to their meanings.
	`)
	pc.Code(`
		ages = {"Ada": 36, "Alan": 41}
		print(ages["Ada"])   # 36
		ages["Grace"] = 85   # add a new pair
	`)

	tabs := pc.Tabs("📞 Phone Book", "🔤 Word Counter", "🔁 Iterating")
	if err := phoneBook(pc, tabs[0]); err != nil {
		return err
	}
	wordCounter(tabs[1])
	iterating(tabs[2])
	return nil
}

// insertionOrder keeps order consistent with book: known keys in their
// recorded order, then any keys missing from the record in sorted order.
func insertionOrder(order []string, book map[string]string) []string {
	out := make([]string, 0, len(book))
	for _, k := range order {
		if _, ok := book[k]; ok && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(book)) {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

func phoneBook(pc *page.Context, s *ui.Surface) error {
	s.Markdown("### 📞 Phone Book")
	sess := pc.Session()
	book, err := sess.StringMap(bookSlot, defaultBook)
	if err != nil {
		return err
	}
	order, err := sess.Strings(orderSlot, slices.Sorted(maps.Keys(defaultBook)))
	if err != nil {
		return err
	}
	stats, err := session.Load(sess, statsSlot, lookupStats{})
	if err != nil {
		return err
	}

	cols := s.Columns(2)
	name := strings.TrimSpace(cols[0].TextInput("Name:", "Ada"))
	number := strings.TrimSpace(cols[0].TextInput("Number:", "555-0123"))
	save := cols[0].Button("book[name] = number")
	lookup := cols[0].Button("book.get(name)")
	remove := cols[0].Button("del book[name]")
	reset := cols[0].Button("Reset phone book")

	changed := false
	switch {
	case save:
		if name == "" {
			cols[1].Error("A key cannot be empty here.")
			break
		}
		_, existed := book[name]
		book[name] = number
		order = append(order, name)
		changed = true
		if existed {
			cols[1].Info(fmt.Sprintf("Updated %s. Keys are unique, so the old value was replaced.", pyfmt.Str(name)))
		} else {
			cols[1].Success(fmt.Sprintf("Added %s.", pyfmt.Str(name)))
		}
	case lookup:
		if v, ok := book[name]; ok {
			stats.Hits++
			cols[1].Code(fmt.Sprintf("book.get(%s)  # %s", pyfmt.Str(name), pyfmt.Str(v)))
		} else {
			stats.Misses++
			cols[1].Code(fmt.Sprintf("book.get(%s)  # None", pyfmt.Str(name)))
			cols[1].Warning(fmt.Sprintf("book[%s] would raise KeyError.", pyfmt.Str(name)))
		}
		if err := session.Store(sess, statsSlot, stats); err != nil {
			return err
		}
	case remove:
		if _, ok := book[name]; !ok {
			cols[1].Error(fmt.Sprintf("KeyError: %s", pyfmt.Str(name)))
			break
		}
		delete(book, name)
		changed = true
	case reset:
		book = maps.Clone(defaultBook)
		order = slices.Sorted(maps.Keys(defaultBook))
		changed = true
	}

	order = insertionOrder(order, book)
	if changed {
		if err := sess.SetStringMap(bookSlot, book); err != nil {
			return err
		}
		if err := sess.SetStrings(orderSlot, order); err != nil {
			return err
		}
	}

	values := make(map[string]string, len(book))
	for k, v := range book {
		values[k] = pyfmt.Str(v)
	}
	cols[1].Code("book = " + pyfmt.Dict(order, values))
	m := s.Columns(3)
	m[0].Metric("len(book)", fmt.Sprint(len(book)), "")
	m[1].Metric("Lookups found", fmt.Sprint(stats.Hits), "")
	m[2].Metric("Lookups missed", fmt.Sprint(stats.Misses), "")
	return nil
}

// countWords returns word frequencies and the words in first-seen order.
func countWords(text string, ignoreCase bool) (map[string]int, []string) {
	counts := map[string]int{}
	var order []string
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, w := range words {
		if ignoreCase {
			w = strings.ToLower(w)
		}
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}
	return counts, order
}

func wordCounter(s *ui.Surface) {
	s.Markdown(`
		### 🔤 Counting Words

		Dictionaries are perfect for counting: each word is a key and its
		count is the value.
	`)
	s.Code(`
		counts = {}
		for word in text.split():
		    counts[word] = counts.get(word, 0) + 1
	`)
	text := s.TextArea("Text:", "the cat sat on the mat and the dog sat too")
	ignoreCase := s.Checkbox("Ignore case", true)

	counts, order := countWords(text, ignoreCase)
	if len(order) == 0 {
		s.Info("Type some words to count them.")
		return
	}
	values := make(map[string]string, len(counts))
	for k, v := range counts {
		values[k] = fmt.Sprint(v)
	}
	s.Code("counts = " + pyfmt.Dict(order, values))

	top := slices.Clone(order)
	slices.SortStableFunc(top, func(a, b string) int { return counts[b] - counts[a] })
	if len(top) > 10 {
		top = top[:10]
	}
	heights := make([]float64, len(top))
	for i, w := range top {
		heights[i] = float64(counts[w])
	}
	s.Chart(chart.Bar("Most common words", top, heights))
}

func iterating(s *ui.Surface) {
	s.Markdown("### 🔁 Looping Over a Dictionary")
	scores := map[string]int{"Ada": 92, "Alan": 85, "Grace": 97, "Linus": 78}
	keys := []string{"Ada", "Alan", "Grace", "Linus"}
	values := make(map[string]string, len(scores))
	for k, v := range scores {
		values[k] = fmt.Sprint(v)
	}
	s.Code("scores = " + pyfmt.Dict(keys, values))

	method := s.Radio("Loop over:", []string{"scores.keys()", "scores.values()", "scores.items()"})
	var lines []string
	for _, k := range keys {
		switch method {
		case "scores.keys()":
			lines = append(lines, k)
		case "scores.values()":
			lines = append(lines, fmt.Sprint(scores[k]))
		default:
			lines = append(lines, fmt.Sprintf("%s %d", k, scores[k]))
		}
	}
	loopVar := map[string]string{
		"scores.keys()":   "key",
		"scores.values()": "value",
		"scores.items()":  "key, value",
	}[method]
	s.Code(fmt.Sprintf("for %s in %s:\n    print(%s)", loopVar, method, loopVar))
	s.CodeLang("text", strings.Join(lines, "\n"))

	minScore := s.Slider("Keep scores of at least:", 0, 100, 85)
	kept := []string{}
	keptValues := map[string]string{}
	for _, k := range keys {
		if scores[k] >= minScore {
			kept = append(kept, k)
			keptValues[k] = values[k]
		}
	}
	s.Code(fmt.Sprintf("{k: v for k, v in scores.items() if v >= %d}\n# %s", minScore, pyfmt.Dict(kept, keptValues)))
}
