// Package functions is lesson 2.3: defining and calling functions,
// parameters, return values and scope.
package functions

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t02_control_flow.t03_functions"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("2.3 Functions in Python")
	pc.Markdown(`
		### Reusable Blocks of Code 🧩

		A function is a named recipe: you write it once with **def** and
		call it as often as you like.
	`)
	pc.Code(`
		def greet(name):
		    return "Hello, " + name + "!"

		message = greet("Ada")
	`)

	tabs := pc.Tabs("🛠️ Define & Call", "📐 Parameters", "🔁 Recursion", "🔭 Scope")
	defineAndCall(tabs[0])
	parameters(tabs[1])
	recursion(tabs[2])
	scope(tabs[3])
	return callCounter(pc)
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// signature validates a function name and comma-separated parameter list and
// returns the cleaned parameters.
func signature(name, params string) ([]string, error) {
	if !identifier.MatchString(name) {
		return nil, fmt.Errorf("%q is not a valid function name", name)
	}
	var out []string
	seen := map[string]bool{}
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !identifier.MatchString(p) {
			return nil, fmt.Errorf("%q is not a valid parameter name", p)
		}
		if seen[p] {
			return nil, fmt.Errorf("duplicate argument %q in function definition", p)
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

func defineAndCall(s *ui.Surface) {
	s.Markdown("### 🛠️ Build a Function")
	cols := s.Columns(2)
	name := cols[0].TextInput("Function name:", "add")
	params := cols[0].TextInput("Parameters (comma separated):", "a, b")
	op := cols[0].Select("Body returns:", []string{"sum", "product", "largest"})

	args, err := signature(name, params)
	if err != nil {
		cols[1].Error("SyntaxError: " + err.Error())
		return
	}
	body := "None"
	if len(args) > 0 {
		switch op {
		case "sum":
			body = strings.Join(args, " + ")
		case "product":
			body = strings.Join(args, " * ")
		case "largest":
			body = "max(" + strings.Join(args, ", ") + ")"
		}
	}
	cols[1].Code(fmt.Sprintf(`
		def %s(%s):
		    return %s
	`, name, strings.Join(args, ", "), body))

	s.Markdown("#### 📞 Call it")
	values := make([]float64, len(args))
	for i, a := range args {
		values[i] = s.Number(fmt.Sprintf("Argument %s:", a), float64(i+2), ui.Key("arg_"+a))
	}
	call := make([]string, len(values))
	for i, v := range values {
		call[i] = pyfmt.Number(v)
	}
	s.Code(fmt.Sprintf("%s(%s)  # returns %s", name, strings.Join(call, ", "), result(op, values)))
}

// result computes what the built function returns for the given arguments.
func result(op string, values []float64) string {
	if len(values) == 0 {
		return "None"
	}
	acc := values[0]
	allInts := true
	for _, v := range values {
		if v != math.Trunc(v) {
			allInts = false
		}
	}
	for _, v := range values[1:] {
		switch op {
		case "sum":
			acc += v
		case "product":
			acc *= v
		case "largest":
			acc = math.Max(acc, v)
		}
	}
	if allInts {
		return pyfmt.Number(acc)
	}
	return pyfmt.Float(acc)
}

// area computes a shape's area; the page shows the matching Python with a
// default argument.
func area(shape string, a, b float64) float64 {
	switch shape {
	case "rectangle":
		return a * b
	case "triangle":
		return a * b / 2
	case "circle":
		return math.Pi * a * a
	}
	return 0
}

func parameters(s *ui.Surface) {
	s.Markdown(`
		### 📐 Parameters and Default Values

		Parameters can have default values. Arguments can be passed by
		position or by name.
	`)
	s.Code(`
		import math

		def area(shape, a, b=1):
		    if shape == "rectangle":
		        return a * b
		    elif shape == "triangle":
		        return a * b / 2
		    elif shape == "circle":
		        return math.pi * a ** 2
	`)
	shape := s.Radio("Shape:", []string{"rectangle", "triangle", "circle"})
	a := s.FloatSlider("a:", 0, 10, 3)
	useDefault := s.Checkbox("Leave b at its default", false)
	b := 1.0
	call := fmt.Sprintf("area(%s, %s)", pyfmt.Str(shape), pyfmt.Float(a))
	if !useDefault && shape != "circle" {
		b = s.FloatSlider("b:", 0, 10, 4)
		call = fmt.Sprintf("area(%s, %s, b=%s)", pyfmt.Str(shape), pyfmt.Float(a), pyfmt.Float(b))
	}
	s.Code(fmt.Sprintf("%s  # returns %s", call, pyfmt.Float(math.Round(area(shape, a, b)*100)/100)))
}

// factorialTrace returns the calls made by a recursive factorial(n) and the
// result.
func factorialTrace(n int) ([]string, int) {
	if n <= 1 {
		return []string{"factorial(1) = 1"}, 1
	}
	calls, sub := factorialTrace(n - 1)
	v := n * sub
	return append([]string{fmt.Sprintf("factorial(%d) = %d * factorial(%d)", n, n, n-1)}, calls...), v
}

func recursion(s *ui.Surface) {
	s.Markdown(`
		### 🔁 A Function That Calls Itself

		Recursion needs a **base case** that stops the calls.
	`)
	s.Code(`
		def factorial(n):
		    if n <= 1:
		        return 1
		    return n * factorial(n - 1)
	`)
	n := s.Slider("n:", 1, 12, 5)
	calls, v := factorialTrace(n)
	s.CodeLang("text", strings.Join(calls, "\n"))
	s.Metric(fmt.Sprintf("factorial(%d)", n), fmt.Sprint(v), "")

	labels := make([]string, n)
	values := make([]float64, n)
	acc := 1.0
	for i := 1; i <= n; i++ {
		acc *= float64(i)
		labels[i-1] = fmt.Sprint(i)
		values[i-1] = acc
	}
	s.Chart(chart.Bar("n! grows very fast", labels, values))
}

func scope(s *ui.Surface) {
	s.Markdown(`
		### 🔭 Local and Global Variables

		Variables created inside a function only exist while it runs.
	`)
	useGlobal := s.Checkbox("Declare `global x` inside the function", false)
	x := s.Slider("Value assigned inside the function:", 0, 100, 42)

	decl := ""
	outside := 10
	if useGlobal {
		decl = "\n    global x"
		outside = x
	}
	s.Code(fmt.Sprintf("x = 10\n\ndef change():%s\n    x = %d\n\nchange()\nprint(x)  # %d", decl, x, outside))
	if useGlobal {
		s.Warning("With global, the function changes the x outside it.")
	} else {
		s.Info("Without global, the function creates its own local x.")
	}
}

func callCounter(pc *page.Context) error {
	pc.Divider()
	pc.Subheader("📞 Call Counter")
	pc.Markdown("Each press calls `say_hello()` once more.")

	calls, err := pc.Session().Int("function_calls", 0)
	if err != nil {
		return err
	}
	call := pc.Button("Call say_hello()")
	reset := pc.Button("Reset calls")
	if call || reset {
		calls++
		if reset {
			calls = 0
		}
		if err := pc.Session().SetInt("function_calls", calls); err != nil {
			return err
		}
	}
	pc.Code(strings.TrimSpace(strings.Repeat("say_hello()  # Hello!\n", min(calls, 10))))
	pc.Metric("Times called", fmt.Sprint(calls), "")
	return nil
}
