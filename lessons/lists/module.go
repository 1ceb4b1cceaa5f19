// Package lists is lesson 3.1: creating, indexing, slicing and changing
// lists.
package lists

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t03_data_structures.t01_lists"

const cartSlot = "shopping_list"

var defaultCart = []string{"milk", "eggs", "bread"}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("3.1 Lists in Python")
	pc.Markdown(`
		### Ordered Collections 📋

		A list keeps many values in order. Lists are written with square
		brackets and can be changed after they are created.
	`)
	pc.Code(`
		colors = ["red", "green", "blue"]
		print(colors[0])   # red
		print(len(colors)) # 3
	`)

	tabs := pc.Tabs("🛒 Changing Lists", "✂️ Slicing", "📊 Sorting", "⚡ Comprehensions")
	if err := shopping(pc, tabs[0]); err != nil {
		return err
	}
	slicing(tabs[1])
	sorting(tabs[2])
	comprehensions(tabs[3])
	return nil
}

// pyIndex resolves a possibly negative Python index against length n.
func pyIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func shopping(pc *page.Context, s *ui.Surface) error {
	s.Markdown("### 🛒 Shopping List")
	sess := pc.Session()
	cart, err := sess.Strings(cartSlot, defaultCart)
	if err != nil {
		return err
	}

	cols := s.Columns(2)
	item := cols[0].TextInput("Item:", "apples")
	pos := cols[0].Int("Position:", 0)
	appendClicked := cols[0].Button("append(item)")
	insertClicked := cols[0].Button("insert(position, item)")
	removeClicked := cols[0].Button("remove(item)")
	popClicked := cols[0].Button("pop(position)")
	resetClicked := cols[0].Button("Reset list")

	var call string
	var problem string
	item = strings.TrimSpace(item)
	switch {
	case appendClicked:
		if item == "" {
			problem = "Type an item first."
			break
		}
		cart = append(cart, item)
		call = fmt.Sprintf("cart.append(%s)", pyfmt.Str(item))
	case insertClicked:
		if item == "" {
			problem = "Type an item first."
			break
		}
		i := pos
		if i < 0 {
			i = max(i+len(cart), 0)
		}
		i = min(i, len(cart))
		cart = slices.Insert(cart, i, item)
		call = fmt.Sprintf("cart.insert(%d, %s)", pos, pyfmt.Str(item))
	case removeClicked:
		i := slices.Index(cart, item)
		if i < 0 {
			problem = fmt.Sprintf("ValueError: list.remove(x): %s not in list", pyfmt.Str(item))
			break
		}
		cart = slices.Delete(cart, i, i+1)
		call = fmt.Sprintf("cart.remove(%s)", pyfmt.Str(item))
	case popClicked:
		i, ok := pyIndex(pos, len(cart))
		if !ok {
			problem = "IndexError: pop index out of range"
			break
		}
		call = fmt.Sprintf("cart.pop(%d)  # returns %s", pos, pyfmt.Str(cart[i]))
		cart = slices.Delete(cart, i, i+1)
	case resetClicked:
		cart = slices.Clone(defaultCart)
		call = "cart = " + pyfmt.Strings(cart)
	}
	if call != "" {
		if err := sess.SetStrings(cartSlot, cart); err != nil {
			return err
		}
	}

	if problem != "" {
		cols[1].Error(problem)
	}
	if call != "" {
		cols[1].Code(call)
	}
	cols[1].Code("cart = " + pyfmt.Strings(cart))
	cols[1].Metric("len(cart)", fmt.Sprint(len(cart)), "")
	if len(cart) > 0 {
		rows := make([][]string, len(cart))
		for i, c := range cart {
			rows[i] = []string{strconv.Itoa(i), strconv.Itoa(i - len(cart)), c}
		}
		s.Table([]string{"Index", "Negative index", "Item"}, rows)
	}
	return nil
}

// pySlice returns items[start:stop:step] with Python's clamping rules. A nil
// bound means "omitted".
func pySlice(items []string, start, stop *int, step int) []string {
	n := len(items)
	out := []string{}
	if step == 0 || n == 0 {
		return out
	}
	clamp := func(p *int, def, lo, hi int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += n
		}
		return max(lo, min(v, hi))
	}
	if step > 0 {
		a, b := clamp(start, 0, 0, n), clamp(stop, n, 0, n)
		for i := a; i < b; i += step {
			out = append(out, items[i])
		}
		return out
	}
	a, b := clamp(start, n-1, -1, n-1), clamp(stop, -1, -1, n-1)
	for i := a; i > b; i += step {
		out = append(out, items[i])
	}
	return out
}

// bound parses an optional slice bound.
func bound(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("slice indices must be integers, got %s", pyfmt.Str(raw))
	}
	return &v, nil
}

func fmtBound(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func slicing(s *ui.Surface) {
	s.Markdown(`
		### ✂️ Slicing: list[start:stop:step]

		Leave a box empty to omit that part of the slice.
	`)
	letters := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	s.Code("letters = " + pyfmt.Strings(letters))

	cols := s.Columns(3)
	rawStart := cols[0].TextInput("start", "1")
	rawStop := cols[1].TextInput("stop", "6")
	rawStep := cols[2].TextInput("step", "")

	start, err := bound(rawStart)
	if err != nil {
		s.Error("TypeError: " + err.Error())
		return
	}
	stop, err := bound(rawStop)
	if err != nil {
		s.Error("TypeError: " + err.Error())
		return
	}
	step := 1
	if p, err := bound(rawStep); err != nil {
		s.Error("TypeError: " + err.Error())
		return
	} else if p != nil {
		step = *p
	}
	if step == 0 {
		s.Error("ValueError: slice step cannot be zero")
		return
	}

	expr := fmt.Sprintf("letters[%s:%s", fmtBound(start), fmtBound(stop))
	if strings.TrimSpace(rawStep) != "" {
		expr += ":" + strconv.Itoa(step)
	}
	expr += "]"
	s.Code(fmt.Sprintf("%s  # %s", expr, pyfmt.Strings(pySlice(letters, start, stop, step))))
}

func parseNumbers(raw string) ([]float64, error) {
	var out []float64
	for _, f := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", pyfmt.Str(f))
		}
		out = append(out, v)
	}
	return out, nil
}

func sorting(s *ui.Surface) {
	s.Markdown("### 📊 Sorting a List")
	raw := s.TextInput("Numbers:", "42, 7, 19, 3, 25, 11")
	reverse := s.Checkbox("reverse=True", false)

	numbers, err := parseNumbers(raw)
	if err != nil {
		s.Error("ValueError: " + err.Error())
		return
	}
	if len(numbers) == 0 {
		s.Info("Enter a few numbers to sort.")
		return
	}
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	if reverse {
		slices.Reverse(sorted)
	}

	formatted := func(vs []float64) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = pyfmt.Number(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	s.Code(fmt.Sprintf(`
		numbers = %s
		sorted(numbers, reverse=%s)  # %s
	`, formatted(numbers), pyfmt.Bool(reverse), formatted(sorted)))

	cols := s.Columns(2)
	labels := make([]string, len(numbers))
	for i := range numbers {
		labels[i] = strconv.Itoa(i)
	}
	cols[0].Chart(chart.Bar("Before", labels, numbers))
	cols[1].Chart(chart.Bar("After", labels, sorted))

	sum := 0.0
	for _, v := range numbers {
		sum += v
	}
	stats := s.Columns(3)
	stats[0].Metric("min()", pyfmt.Number(slices.Min(numbers)), "")
	stats[1].Metric("max()", pyfmt.Number(slices.Max(numbers)), "")
	stats[2].Metric("sum()", pyfmt.Number(sum), "")
}

// comprehension evaluates [f(x) for x in range(1, n+1) if cond(x)].
func comprehension(n int, transform, filter string) []int {
	var out []int
	for x := 1; x <= n; x++ {
		switch filter {
		case "x % 2 == 0":
			if x%2 != 0 {
				continue
			}
		case "x % 2 == 1":
			if x%2 != 1 {
				continue
			}
		case "x > 5":
			if x <= 5 {
				continue
			}
		}
		switch transform {
		case "x * 2":
			out = append(out, x*2)
		case "x ** 2":
			out = append(out, x*x)
		default:
			out = append(out, x)
		}
	}
	return out
}

func comprehensions(s *ui.Surface) {
	s.Markdown(`
		### ⚡ List Comprehensions

		A comprehension builds a new list from a loop in a single line.
	`)
	n := s.Slider("range(1, n + 1) with n =", 1, 20, 10)
	transform := s.Select("Expression:", []string{"x", "x * 2", "x ** 2"})
	filter := s.Select("Condition:", []string{"(none)", "x % 2 == 0", "x % 2 == 1", "x > 5"})

	cond := ""
	if filter != "(none)" {
		cond = " if " + filter
	}
	result := comprehension(n, transform, filter)
	s.Code(fmt.Sprintf("[%s for x in range(1, %d)%s]\n# %s", transform, n+1, cond, pyfmt.Ints(result)))
}
