// Package variables is lesson 1.1: creating, changing and naming variables.
package variables

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t01_basics.t01_variables"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// keywords are the reserved words of Python 3.
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true, "yield": true,
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("1.1 Variables in Python")
	pc.Markdown(`
		### What is a Variable? 📦

		A variable is like a labelled box where you can store information.
		You give the box a **name**, put a **value** in it, and later you can
		look inside or replace what is stored.
	`)
	pc.Code(`
		name = "John"     # a text value
		age = 25          # a whole number
		height = 1.75     # a decimal number
	`)

	pc.Subheader("1️⃣ Create Your First Variables")
	cols := pc.Columns(2)
	name := cols[0].TextInput("Enter your name:", "John")
	age := cols[0].Int("Enter your age:", 25, ui.Range(0, 150))
	height := cols[0].Number("Enter your height (in cm):", 170, ui.Range(0, 300))

	cols[1].Markdown("#### Variables Created:")
	cols[1].Code(fmt.Sprintf(`
		name = %s
		age = %d
		height = %s
	`, pyfmt.Str(name), age, pyfmt.Float(height)))
	cols[1].Markdown("#### Variable Types:")
	cols[1].Code(fmt.Sprintf(`
		type(name)    # <class 'str'>   -> %s
		type(age)     # <class 'int'>   -> %d
		type(height)  # <class 'float'> -> %s
	`, pyfmt.Str(name), age, pyfmt.Float(height)))

	if err := counter(pc); err != nil {
		return err
	}
	if err := gameScore(pc); err != nil {
		return err
	}
	naming(pc)
	practice(pc)
	return nil
}

func counter(pc *page.Context) error {
	pc.Subheader("2️⃣ Changing Variable Values")
	pc.Markdown("Variables can change! Use the buttons to update the **counter** variable.")

	sess := pc.Session()
	count, err := sess.Int("counter", 0)
	if err != nil {
		return err
	}
	history, err := sess.FloatMap("counter_history", nil)
	if err != nil {
		return err
	}

	cols := pc.Columns(2)
	cols[0].Markdown("#### Control Panel")
	inc := cols[0].Button("➕ Increase Counter")
	dec := cols[0].Button("➖ Decrease Counter")
	reset := cols[0].Button("🔄 Reset Counter")
	op := ""
	switch {
	case inc:
		count++
		op = "counter = counter + 1"
	case dec:
		count--
		op = "counter = counter - 1"
	case reset:
		count = 0
		op = "counter = 0"
	}
	if op != "" {
		if err := sess.SetInt("counter", count); err != nil {
			return err
		}
		history[fmt.Sprintf("%03d", len(history))] = float64(count)
		if err := sess.SetFloatMap("counter_history", history); err != nil {
			return err
		}
	}

	cols[1].Markdown("#### Variable State")
	cols[1].Metric("counter", fmt.Sprint(count), op)

	if len(history) > 1 {
		x, y := series(history)
		pc.Chart(chart.Line("Counter value after each change", x, y))
	}
	return nil
}

// series orders a history map by its zero-padded keys.
func series(history map[string]float64) ([]float64, []float64) {
	x := make([]float64, 0, len(history))
	y := make([]float64, 0, len(history))
	for i := 0; i < len(history); i++ {
		v, ok := history[fmt.Sprintf("%03d", i)]
		if !ok {
			break
		}
		x = append(x, float64(i))
		y = append(y, v)
	}
	return x, y
}

func gameScore(pc *page.Context) error {
	pc.Markdown("### 🎮 Real-world Example: Game Score")
	score, err := session.Load(pc.Session(), "game_score", 0)
	if err != nil {
		return err
	}

	cols := pc.Columns(2)
	cols[0].Markdown("#### Game Actions")
	hit := cols[0].Button("🎯 Hit Target (+10 points)")
	star := cols[0].Button("⭐ Collect Star (+5 points)")
	miss := cols[0].Button("❌ Miss Target (-3 points)")
	newGame := cols[0].Button("🔄 New Game")
	var last string
	switch {
	case hit:
		score += 10
		last = "score += 10"
	case star:
		score += 5
		last = "score += 5"
	case miss:
		score -= 3
		last = "score -= 3"
	case newGame:
		score = 0
		last = "score = 0"
	}
	if last != "" {
		if err := session.Store(pc.Session(), "game_score", score); err != nil {
			return err
		}
	}

	cols[1].Markdown("#### Score Variable")
	code := fmt.Sprintf("score = %d", score)
	if last != "" {
		code = last + "\n" + code
	}
	cols[1].Code(code)
	if score >= 50 {
		cols[1].Success("🏆 High score!")
	}
	return nil
}

// checkName explains whether name is a valid Python variable name.
func checkName(name string) (bool, string) {
	switch {
	case name == "":
		return false, "A variable name cannot be empty."
	case keywords[name]:
		return false, fmt.Sprintf("%q is a reserved keyword in Python.", name)
	case name[0] >= '0' && name[0] <= '9':
		return false, "A variable name cannot start with a number."
	case strings.Contains(name, " "):
		return false, "A variable name cannot contain spaces. Use underscores instead."
	case !identifier.MatchString(name):
		return false, "Only letters, numbers and underscores are allowed."
	case name != strings.ToLower(name):
		return true, "Valid, but Python style prefers lowercase snake_case names."
	}
	return true, "Great variable name!"
}

func naming(pc *page.Context) {
	pc.Subheader("3️⃣ Variable Naming Rules")
	pc.Markdown(`
		- ✅ Start with a letter or underscore
		- ✅ Use only letters, numbers and underscores
		- ❌ No spaces or special characters
		- ❌ Cannot be a Python keyword (if, for, while, ...)
	`)

	candidate := pc.TextInput("Try creating a variable name:", "my_variable")
	ok, why := checkName(candidate)
	if !ok {
		pc.Error("❌ " + why)
		return
	}
	if strings.HasPrefix(why, "Valid,") {
		pc.Warning("⚠️ " + why)
	} else {
		pc.Success("✅ " + why)
	}
	pc.Code(fmt.Sprintf("%s = \"some value\"", candidate))
}

func practice(pc *page.Context) {
	pc.Markdown("### 🎯 Practice Exercise")
	ex := pc.Expander("Describe a car with variables", false)
	brand := ex.TextInput("Car brand:", "Toyota")
	year := ex.Int("Car year:", 2020, ui.Range(1900, 2030))
	price := ex.Number("Car price ($):", 25000, ui.Range(0, 1000000))

	if ex.Button("Check Your Variables") {
		ex.Code(fmt.Sprintf(`
			car_brand = %s
			car_year = %d
			car_price = %s

			print(f"This {car_year} {car_brand} costs ${car_price:,.2f}")
		`, pyfmt.Str(brand), year, pyfmt.Float(price)))
		age := 2024 - year
		if age < 0 {
			age = 0
		}
		ex.Success(fmt.Sprintf("Well done! Your %s is about %d years old.", brand, age))
	}
}
