// Package datatypes is lesson 1.2: strings, numbers, booleans and how to tell
// which type a value has.
package datatypes

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/expr"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t01_basics.t02_data_types"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

const secret = "secret123"

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("1.2 Data Types in Python")
	pc.Markdown(`
		### Understanding Data Types in Python 🎯

		Just like we have different types of measurements in real life
		(temperature in degrees, weight in kilograms, text in letters),
		Python uses different types to store different kinds of data.
	`)

	tabs := pc.Tabs("📝 Text (Strings)", "🔢 Numbers", "✅ Booleans", "🔍 Type Detective")
	stringsTab(tabs[0])
	numbersTab(tabs[1])
	booleansTab(tabs[2])
	detectiveTab(tabs[3])
	return nil
}

func stringsTab(s *ui.Surface) {
	s.Markdown(`
		### Text Data (Strings) 📝

		Strings store text: names, messages, addresses, whole documents.
	`)
	text := s.TextInput("Type any text:", "Hello, Python!")

	first, last := "", ""
	if text != "" {
		r, _ := utf8.DecodeRuneInString(text)
		first = string(r)
		r, _ = utf8.DecodeLastRuneInString(text)
		last = string(r)
	}

	cols := s.Columns(2)
	cols[0].Markdown("#### Your String Properties:")
	cols[0].Code(fmt.Sprintf(`
		text = %s
		len(text)     # %d
		type(text)    # <class 'str'>
		text.upper()  # %s
		text.lower()  # %s
		text[0]       # %s
		text[-1]      # %s
	`, pyfmt.Str(text), utf8.RuneCountInString(text), pyfmt.Str(strings.ToUpper(text)),
		pyfmt.Str(strings.ToLower(text)), pyfmt.Str(first), pyfmt.Str(last)))
	cols[1].Markdown(`
		#### Common String Uses:
		- 👤 User names
		- 📧 Email addresses
		- 📝 Messages
		- 📚 Document text
	`)

	if text != "" {
		s.Markdown("#### Character Positions (Index)")
		s.Chart(indexChart(text))
		s.Markdown(`
			- Each character has a position number (index)
			- The first character is at index 0
			- The last character is at index -1
			- Spaces and punctuation count as characters
		`)
	}

	ex := s.Expander("🎯 Practice with Strings", false)
	name := ex.TextInput("Enter a name:", "Alice")
	age := ex.Int("Enter age:", 25, ui.Range(0, 150))
	city := ex.TextInput("Enter city:", "New York")
	msg := fmt.Sprintf("Hello, %s! You are %d years old and live in %s.", name, age, city)
	ex.Success(msg)
	ex.Code(fmt.Sprintf(`
		len(message)          # %d
		len(message.split())  # %d
		"Hello" in message    # %s
	`, utf8.RuneCountInString(msg), len(strings.Fields(msg)), pyfmt.Bool(strings.Contains(msg, "Hello"))))
}

// indexChart shows each character of text above its index. Long strings are
// cut to keep the chart readable.
func indexChart(text string) chart.Figure {
	const maxChars = 30
	var chars []string
	var indexes []string
	var x []any
	var ones, zeros []any
	i := 0
	for _, r := range text {
		if i == maxChars {
			break
		}
		chars = append(chars, string(r))
		indexes = append(indexes, fmt.Sprint(i))
		x = append(x, i)
		ones = append(ones, 1)
		zeros = append(zeros, 0)
		i++
	}
	hidden := false
	return chart.Figure{
		Data: []chart.Trace{
			{Type: "scatter", Mode: "text", X: x, Y: ones, Text: chars, Name: "character"},
			{Type: "scatter", Mode: "text", X: x, Y: zeros, Text: indexes, Name: "index"},
		},
		Layout: chart.Layout{
			Title:      "String Characters and Their Positions (Index)",
			Height:     200,
			ShowLegend: &hidden,
			XAxis:      &chart.Axis{Visible: &hidden},
			YAxis:      &chart.Axis{Visible: &hidden, Range: []float64{-0.5, 1.5}},
		},
	}
}

// maxSquarable keeps number ** 2 within int64.
const maxSquarable = 1_000_000_000

func numbersTab(s *ui.Surface) {
	s.Markdown(`
		### Numbers in Python 🔢

		- **int**: whole numbers such as -5, 0, 42 (counting, indexes)
		- **float**: numbers with a decimal point such as 3.14 or 2.0 (measurements)
	`)

	cols := s.Columns(2)
	n := cols[0].Int("Enter a whole number:", 42, ui.Range(-maxSquarable, maxSquarable))
	cols[0].Code(fmt.Sprintf(`
		number = %d    # <class 'int'>
		number * 2     # %d
		number ** 2    # %d
		number // 2    # %d
		number %% 2     # %d
	`, n, n*2, n*n, floorDiv(n, 2), floorMod(n, 2)))

	f := cols[1].Number("Enter a decimal number:", 3.14)
	cols[1].Code(fmt.Sprintf(`
		number = %s       # <class 'float'>
		round(number, 2)  # %s
		f"{number:.2e}"   # '%.2e'
		number * 100      # %s
	`, pyfmt.Float(f), pyfmt.Float(math.Round(f*100)/100), f, pyfmt.Float(f*100)))

	s.Markdown("### 📏 Interactive Number Line")
	lo, hi := s.RangeSlider("Select range:", -10, 10, -5, 5)
	var marks []chart.Mark
	for i := lo; i <= hi; i++ {
		marks = append(marks, chart.Mark{Value: float64(i), Color: chart.PrimaryBlue})
	}
	s.Chart(chart.NumberLine(float64(lo), float64(hi), marks...))
	s.Markdown("Whole numbers (integers) are marked; numbers grow from left to right.")
}

// floorDiv and floorMod follow Python's rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func booleansTab(s *ui.Surface) {
	s.Markdown(`
		### Boolean Values (True/False) ✅

		Booleans can only be **True** or **False**. Think of them as yes/no
		switches for checking conditions and controlling program flow.
	`)

	cols := s.Columns(2)
	active := cols[0].Checkbox("Is Active?", true)
	admin := cols[0].Checkbox("Is Admin?", false)
	cols[0].Code(fmt.Sprintf(`
		is_active = %s
		is_admin = %s
		type(is_active)  # <class 'bool'>
	`, pyfmt.Bool(active), pyfmt.Bool(admin)))
	cols[1].Code(fmt.Sprintf(`
		is_active and is_admin  # %s
		is_active or is_admin   # %s
		not is_active           # %s
	`, pyfmt.Bool(active && admin), pyfmt.Bool(active || admin), pyfmt.Bool(!active)))

	s.Markdown("### 📊 Boolean Logic Table")
	var rows [][]string
	for _, a := range []bool{true, false} {
		for _, b := range []bool{true, false} {
			rows = append(rows, []string{pyfmt.Bool(a), pyfmt.Bool(b), pyfmt.Bool(a && b), pyfmt.Bool(a || b), pyfmt.Bool(!a)})
		}
	}
	s.Table([]string{"A", "B", "A and B", "A or B", "not A"}, rows)

	ex := s.Expander("🎯 Boolean Practice: a tiny login system", false)
	entered := ex.TextInput("Enter password:", "", ui.Password(), ui.Help("Hint: "+secret))
	correct := entered == secret
	ex.Code(fmt.Sprintf(`
		password_correct = %s
		can_login = password_correct and is_active   # %s
		has_admin_access = password_correct and is_admin  # %s
	`, pyfmt.Bool(correct), pyfmt.Bool(correct && active), pyfmt.Bool(correct && admin)))
}

func detectiveTab(s *ui.Surface) {
	s.Markdown(`
		### 🔍 Type Detective

		Type a value and find out which type Python would give it. Try 42,
		3.5, "hello", true or [1, 2, 3].
	`)
	src := s.TextInput("Value:", `"hello"`)
	res, err := expr.Evaluate(src)
	if err != nil {
		s.Warning(fmt.Sprintf("That is not a value I can inspect: %v", err))
		return
	}
	s.Metric("type", expr.TypeName(res.Value), "")
	s.Code(fmt.Sprintf("type(%s)  # <class '%s'>", expr.Format(res.Value), expr.TypeName(res.Value)))
}
