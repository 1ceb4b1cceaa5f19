// Package operations is lesson 1.3: arithmetic, comparison, logical and
// assignment operators.
package operations

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/expr"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t01_basics.t03_operations"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("1.3 Operations in Python")
	pc.Markdown(`
		### Understanding Python Operations 🔧

		Just like a calculator has different buttons for different operations,
		Python has various operators to perform different tasks.
	`)

	tabs := pc.Tabs("➕ Arithmetic", "⚖️ Comparison", "🔄 Logical", "📝 Assignment")
	arithmetic(tabs[0])
	comparison(tabs[1])
	logical(tabs[2])
	return assignment(pc, tabs[3])
}

func arithmetic(s *ui.Surface) {
	s.Markdown(`
		### Arithmetic Operations

		Addition (+), subtraction (-), multiplication (*), division (/),
		power (**), integer division (//) and remainder (%).
	`)

	s.Markdown("### 🧮 Interactive Calculator")
	cols := s.Columns(2)
	a := cols[0].Number("First Number:", 10)
	b := cols[0].Number("Second Number:", 3)

	cols[1].Markdown("#### Results:")
	cols[1].Code(calculator(a, b))

	s.Markdown(`
		### 📚 Order of Operations (PEMDAS)

		1. **P**arentheses
		2. **E**xponents
		3. **M**ultiplication and **D**ivision (left to right)
		4. **A**ddition and **S**ubtraction (left to right)
	`)
	explorer(s)

	s.Markdown("### 📊 Operation Visualization")
	op := s.Select("Select operation to visualize:", []string{"Addition", "Subtraction", "Multiplication"})
	x := s.Slider("First number:", -10, 10, 5)
	y := s.Slider("Second number:", -10, 10, 3)
	s.Chart(visualize(op, x, y))
}

func calculator(a, b float64) string {
	undefined := "undefined"
	div, floor, mod := undefined, undefined, undefined
	if b != 0 {
		div = pyfmt.Float(a / b)
		floor = pyfmt.Float(math.Floor(a / b))
		mod = pyfmt.Float(a - math.Floor(a/b)*b)
	}
	fa, fb := pyfmt.Float(a), pyfmt.Float(b)
	return ui.Dedent(fmt.Sprintf(`
		# Basic Operations:
		%[1]s + %[2]s = %[3]s
		%[1]s - %[2]s = %[4]s
		%[1]s * %[2]s = %[5]s
		%[1]s / %[2]s = %[6]s

		# Advanced Operations:
		%[1]s ** %[2]s = %[7]s   (power)
		%[1]s // %[2]s = %[8]s   (integer division)
		%[1]s %% %[2]s = %[9]s   (remainder)
	`, fa, fb, pyfmt.Float(a+b), pyfmt.Float(a-b), pyfmt.Float(a*b), div,
		pyfmt.Float(math.Pow(a, b)), floor, mod))
}

var (
	andWord   = regexp.MustCompile(`\band\b`)
	orWord    = regexp.MustCompile(`\bor\b`)
	notWord   = regexp.MustCompile(`\bnot\b`)
	trueWord  = regexp.MustCompile(`\bTrue\b`)
	falseWord = regexp.MustCompile(`\bFalse\b`)

	stringLiteral = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// toExpression rewrites Python's word operators and boolean literals into the
// symbolic forms the evaluator understands. String literals are left alone.
func toExpression(src string) string {
	var b strings.Builder
	last := 0
	for _, loc := range stringLiteral.FindAllStringIndex(src, -1) {
		b.WriteString(symbolic(src[last:loc[0]]))
		b.WriteString(src[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(symbolic(src[last:]))
	return b.String()
}

func symbolic(src string) string {
	src = andWord.ReplaceAllString(src, "&&")
	src = orWord.ReplaceAllString(src, "||")
	src = notWord.ReplaceAllString(src, "!")
	src = trueWord.ReplaceAllString(src, "true")
	return falseWord.ReplaceAllString(src, "false")
}

func explorer(s *ui.Surface) {
	s.Markdown("### 🎮 Order of Operations Explorer")
	src := s.TextInput("Enter a mathematical expression:", "2 + 3 * 4",
		ui.Help("Numbers, + - * / // %, comparisons, and/or/not and parentheses"))
	if strings.Contains(src, "**") {
		s.Warning("The explorer does not support ** (power). Try multiplication instead.")
		return
	}

	res, err := expr.Evaluate(toExpression(src))
	if err != nil {
		s.Error(fmt.Sprintf("Please enter a valid expression: %v", err))
		return
	}
	s.Success(fmt.Sprintf("Result: %s", res.PythonString()))
	if len(res.Steps) > 0 {
		s.Markdown("#### Steps:")
		lines := make([]string, len(res.Steps))
		for i, step := range res.Steps {
			lines[i] = fmt.Sprintf("%d. %s", i+1, step.PythonString())
		}
		s.Text(strings.Join(lines, "\n"))
	}
}

func visualize(op string, x, y int) chart.Figure {
	var result int
	var marks []chart.Mark
	switch op {
	case "Subtraction":
		result = x - y
	case "Multiplication":
		result = x * y
	default:
		result = x + y
	}
	marks = append(marks,
		chart.Mark{Value: float64(x), Label: fmt.Sprintf("first: %d", x), Color: chart.PrimaryBlue},
		chart.Mark{Value: float64(y), Label: fmt.Sprintf("second: %d", y), Color: chart.PrimaryGreen},
		chart.Mark{Value: float64(result), Label: fmt.Sprintf("result: %d", result), Color: chart.AccentError},
	)
	lo, hi := -10.0, 10.0
	lo = math.Min(lo, float64(result))
	hi = math.Max(hi, float64(result))
	fig := chart.NumberLine(lo, hi, marks...)
	fig.Layout.Title = fmt.Sprintf("%s: %d and %d gives %d", op, x, y, result)
	return fig
}

var comparators = []string{"==", "!=", ">", "<", ">=", "<="}

func compare(a float64, op string, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	}
	return false
}

func comparison(s *ui.Surface) {
	s.Markdown(`
		### Comparison Operations ⚖️

		Comparison operators compare values and return True or False.
	`)

	cols := s.Columns(2)
	a := cols[0].Int("First Value:", 10)
	op := cols[0].Select("Select comparison operator:", comparators)
	b := cols[0].Int("Second Value:", 5)
	result := compare(float64(a), op, float64(b))
	cols[1].Markdown("#### Result:")
	cols[1].Code(fmt.Sprintf("%d %s %d\nResult: %s\nType: bool", a, op, b, pyfmt.Bool(result)))

	fig := chart.Bar(fmt.Sprintf("Comparison: %d %s %d = %s", a, op, b, pyfmt.Bool(result)),
		[]string{"First Value", "Second Value"}, []float64{float64(a), float64(b)})
	s.Chart(fig)

	s.Markdown("### 🔄 Chained Comparisons")
	value := s.Slider("Select a value:", 0, 100, 50)
	lo, hi := s.RangeSlider("Allowed range:", 0, 100, 30, 70)
	in := lo <= value && value <= hi
	s.Code(fmt.Sprintf("%d <= %d <= %d\nResult: %s", lo, value, hi, pyfmt.Bool(in)))

	ex := s.Expander("🎯 Grade Calculator", false)
	score := ex.Slider("Enter test score (0-100):", 0, 100, 75)
	ex.Code(fmt.Sprintf(`
		score = %d
		grade = %s

		score >= 90  # %s
		score >= 80  # %s
		score >= 70  # %s
		score >= 60  # %s
	`, score, pyfmt.Str(grade(score)), pyfmt.Bool(score >= 90), pyfmt.Bool(score >= 80),
		pyfmt.Bool(score >= 70), pyfmt.Bool(score >= 60)))
}

func grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	}
	return "F"
}

func logical(s *ui.Surface) {
	s.Markdown(`
		### Logical Operations 🔄

		- **and**: both conditions must be True
		- **or**: at least one condition must be True
		- **not**: reverses the condition
	`)

	cols := s.Columns(2)
	c1 := cols[0].Checkbox("Condition 1", true)
	op := cols[0].Select("Select logical operator:", []string{"AND", "OR", "NOT"})
	c2 := cols[0].Checkbox("Condition 2", false)

	var result bool
	var header []string
	var rows [][]string
	switch op {
	case "AND":
		result = c1 && c2
		header = []string{"A", "B", "A and B"}
		for _, a := range []bool{true, false} {
			for _, b := range []bool{true, false} {
				rows = append(rows, []string{pyfmt.Bool(a), pyfmt.Bool(b), pyfmt.Bool(a && b)})
			}
		}
	case "OR":
		result = c1 || c2
		header = []string{"A", "B", "A or B"}
		for _, a := range []bool{true, false} {
			for _, b := range []bool{true, false} {
				rows = append(rows, []string{pyfmt.Bool(a), pyfmt.Bool(b), pyfmt.Bool(a || b)})
			}
		}
	default:
		result = !c1
		header = []string{"A", "not A"}
		rows = [][]string{{"True", "False"}, {"False", "True"}}
	}
	cols[1].Markdown("#### Result:")
	cols[1].Code(fmt.Sprintf("Condition 1: %s\nOperator: %s\nCondition 2: %s\nResult: %s",
		pyfmt.Bool(c1), op, pyfmt.Bool(c2), pyfmt.Bool(result)))

	s.Markdown("### 📑 Truth Table")
	s.Table(header, rows)

	ex := s.Expander("🌟 User Access Control", false)
	loggedIn := ex.Checkbox("User is logged in", true)
	admin := ex.Checkbox("User is admin", false)
	perm := ex.Checkbox("User has permission", true)
	canEdit := loggedIn && (admin || perm)
	ex.Code(fmt.Sprintf(`
		can_edit = is_logged_in and (is_admin or has_permission)
		can_edit = %s and (%s or %s)
		can_edit = %s
	`, pyfmt.Bool(loggedIn), pyfmt.Bool(admin), pyfmt.Bool(perm), pyfmt.Bool(canEdit)))
}

var compound = []string{"+=", "-=", "*=", "/=", "//=", "%=", "**="}

// apply performs a compound assignment. ok is false when the operation is
// undefined, e.g. division by zero.
func apply(value float64, op string, amount float64) (float64, bool) {
	switch op {
	case "+=":
		return value + amount, true
	case "-=":
		return value - amount, true
	case "*=":
		return value * amount, true
	case "**=":
		r := math.Pow(value, amount)
		return r, !math.IsInf(r, 0) && !math.IsNaN(r)
	}
	if amount == 0 {
		return value, false
	}
	switch op {
	case "/=":
		return value / amount, true
	case "//=":
		return math.Floor(value / amount), true
	case "%=":
		return value - math.Floor(value/amount)*amount, true
	}
	return value, false
}

func assignment(pc *page.Context, s *ui.Surface) error {
	s.Markdown(`
		### Assignment Operations 📝

		Assignment operators store values in variables. Compound operators
		like += combine an operation with the assignment.
	`)
	s.Code(`
		x = 10          # basic assignment
		a, b = 1, 2     # multiple assignment
		a, b = b, a     # swap values
		x = y = z = 0   # same value for several variables
	`)

	sess := pc.Session()
	value, err := sess.Float("variable_value", 10)
	if err != nil {
		return err
	}
	history, err := session.Load(sess, "value_history", []float64{value})
	if err != nil {
		return err
	}

	s.Markdown("### 🎮 Compound Assignment Explorer")
	cols := s.Columns(2)
	op := cols[0].Select("Select compound operation:", compound)
	amount := cols[0].Number("Amount:", 2)
	before := value
	if cols[1].Button("Apply Operation") {
		next, ok := apply(value, op, amount)
		if !ok {
			cols[1].Error("That operation is undefined for this amount.")
		} else {
			value = next
			history = append(history, value)
			if err := sess.SetFloat("variable_value", value); err != nil {
				return err
			}
			if err := session.Store(sess, "value_history", history); err != nil {
				return err
			}
		}
	}
	if cols[1].Button("Reset Value") {
		value = 10
		history = []float64{value}
		sess.Delete("variable_value")
		sess.Delete("value_history")
	}
	cols[0].Code(fmt.Sprintf("value = %s", pyfmt.Number(value)))
	cols[1].Code(fmt.Sprintf(`
		# Before:
		value = %s

		# Operation:
		value %s %s

		# Equivalent to:
		value = value %s %s
	`, pyfmt.Number(before), op, pyfmt.Number(amount), strings.TrimSuffix(op, "="), pyfmt.Number(amount)))

	x := make([]float64, len(history))
	for i := range history {
		x[i] = float64(i)
	}
	s.Chart(chart.Line("Value Changes Over Operations", x, history))
	return nil
}
