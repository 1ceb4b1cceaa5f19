// Package loops is lesson 2.2: for loops, while loops, break and continue.
package loops

import (
	"fmt"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t02_control_flow.t02_loops"

// maxIterations caps every simulated loop on the page.
const maxIterations = 200

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("2.2 Loops in Python")
	pc.Markdown(`
		### Doing Things Again and Again 🔁

		A loop repeats a block of code. Python has two kinds:

		- **for** loops go through every item of a sequence
		- **while** loops keep going as long as a condition is True
	`)

	tabs := pc.Tabs("🔢 For Loops", "⏳ While Loops", "⛔ Break & Continue", "👣 Step Through")
	forLoops(tabs[0])
	whileLoops(tabs[1])
	breakContinue(tabs[2])
	return stepThrough(pc, tabs[3])
}

// pyRange returns the values of Python's range(start, stop, step), capped at
// maxIterations. A zero step yields nothing.
func pyRange(start, stop, step int) []int {
	var out []int
	switch {
	case step > 0:
		for i := start; i < stop && len(out) < maxIterations; i += step {
			out = append(out, i)
		}
	case step < 0:
		for i := start; i > stop && len(out) < maxIterations; i += step {
			out = append(out, i)
		}
	}
	return out
}

func forLoops(s *ui.Surface) {
	s.Markdown("### 🔢 The range() Function")
	cols := s.Columns(3)
	start := cols[0].Int("start", 0, ui.Range(-20, 20))
	stop := cols[1].Int("stop", 10, ui.Range(-20, 20))
	step := cols[2].Int("step", 1, ui.Range(-5, 5))

	if step == 0 {
		s.Error("ValueError: range() arg 3 must not be zero")
		return
	}
	values := pyRange(start, stop, step)
	s.Code(fmt.Sprintf(`
		for i in range(%d, %d, %d):
		    print(i)

		# list(range(%d, %d, %d)) == %s
	`, start, stop, step, start, stop, step, pyfmt.Ints(values)))
	if len(values) == 0 {
		s.Warning("The range is empty, so the loop body never runs.")
		return
	}
	s.Markdownf("The loop body runs **%d** times.", len(values))

	x := make([]float64, len(values))
	y := make([]float64, len(values))
	for i, v := range values {
		x[i] = float64(i + 1)
		y[i] = float64(v)
	}
	s.Chart(chart.Line("Value of i on each iteration", x, y))

	s.Markdown("### 🍎 Looping Over a List")
	raw := s.TextInput("Fruits (comma separated):", "apple, banana, cherry")
	var fruits []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fruits = append(fruits, f)
		}
	}
	var out strings.Builder
	for i, f := range fruits {
		fmt.Fprintf(&out, "%d %s\n", i, f)
	}
	s.Code(fmt.Sprintf(`
		fruits = %s
		for index, fruit in enumerate(fruits):
		    print(index, fruit)
	`, pyfmt.Strings(fruits)))
	if out.Len() > 0 {
		s.CodeLang("text", out.String())
	}
}

// savings simulates a while loop that deposits monthly until goal is
// reached. The returned balances start with the initial amount.
func savings(initial, monthly, rate, goal float64) []float64 {
	balances := []float64{initial}
	balance := initial
	for balance < goal && len(balances) <= maxIterations {
		balance = balance*(1+rate/100) + monthly
		balances = append(balances, balance)
	}
	return balances
}

func whileLoops(s *ui.Surface) {
	s.Markdown(`
		### ⏳ Saving Up

		A while loop is handy when you don't know in advance how many
		repetitions you need.
	`)
	cols := s.Columns(2)
	initial := cols[0].Number("Starting amount ($):", 100, ui.Range(0, 10000))
	monthly := cols[0].Number("Monthly deposit ($):", 50, ui.Range(0, 1000))
	rate := cols[1].FloatSlider("Monthly interest (%):", 0, 5, 1)
	goal := cols[1].Number("Goal ($):", 1000, ui.Range(0, 100000))

	s.Code(fmt.Sprintf(`
		balance = %s
		months = 0
		while balance < %s:
		    balance = balance * (1 + %s / 100) + %s
		    months += 1
	`, pyfmt.Number(initial), pyfmt.Number(goal), pyfmt.Number(rate), pyfmt.Number(monthly)))

	balances := savings(initial, monthly, rate, goal)
	months := len(balances) - 1
	if balances[months] < goal {
		s.Error(fmt.Sprintf("After %d months the goal is still not reached. This loop might never end!", months))
		return
	}
	s.Metric("Months needed", fmt.Sprint(months), "")
	x := make([]float64, len(balances))
	for i := range x {
		x[i] = float64(i)
	}
	s.Chart(chart.Line("Balance after each pass of the loop", x, balances))
}

// filterLoop runs the break/continue example over 1..n and returns the
// printed numbers and the number at which the loop stopped (0 if it ran to
// the end).
func filterLoop(n, skip, stopAt int) (printed []int, stoppedAt int) {
	for i := 1; i <= n; i++ {
		if stopAt > 0 && i == stopAt {
			return printed, i
		}
		if skip > 0 && i%skip == 0 {
			continue
		}
		printed = append(printed, i)
	}
	return printed, 0
}

func breakContinue(s *ui.Surface) {
	s.Markdown(`
		### ⛔ Break and Continue

		- **continue** skips the rest of the current iteration
		- **break** leaves the loop immediately
	`)
	n := s.Slider("Loop from 1 to:", 1, 30, 15)
	skip := s.Slider("Skip multiples of (0 = never):", 0, 10, 3)
	stopAt := s.Slider("Break when i equals (0 = never):", 0, 30, 12)

	printed, stopped := filterLoop(n, skip, stopAt)
	code := []string{fmt.Sprintf("for i in range(1, %d):", n+1)}
	if stopAt > 0 {
		code = append(code, fmt.Sprintf("    if i == %d:", stopAt), "        break")
	}
	if skip > 0 {
		code = append(code, fmt.Sprintf("    if i %% %d == 0:", skip), "        continue")
	}
	s.Code(strings.Join(append(code, "    print(i)"), "\n"))
	s.Markdownf("Printed: `%s`", pyfmt.Ints(printed))
	if stopped > 0 {
		s.Warning(fmt.Sprintf("The loop hit break at i = %d.", stopped))
	} else {
		s.Success("The loop ran to the end without break.")
	}
}

func stepThrough(pc *page.Context, s *ui.Surface) error {
	s.Markdown(`
		### 👣 Step Through a Loop

		Press **Next iteration** to run the loop one step at a time and
		watch the variables change.
	`)
	s.Code(`
		numbers = [4, 8, 15, 16, 23, 42]
		total = 0
		for n in numbers:
		    total += n
	`)
	numbers := []int{4, 8, 15, 16, 23, 42}

	sess := pc.Session()
	step, err := sess.Int("loop_step", 0)
	if err != nil {
		return err
	}
	cols := s.Columns(2)
	next := cols[0].Button("▶️ Next iteration")
	restart := cols[1].Button("⏮️ Restart")
	switch {
	case restart:
		step = 0
	case next && step < len(numbers):
		step++
	}
	if next || restart {
		if err := sess.SetInt("loop_step", step); err != nil {
			return err
		}
	}

	total := 0
	rows := make([][]string, 0, step)
	for i := range step {
		total += numbers[i]
		rows = append(rows, []string{fmt.Sprint(i + 1), fmt.Sprint(numbers[i]), fmt.Sprint(total)})
	}
	if len(rows) > 0 {
		s.Table([]string{"Iteration", "n", "total"}, rows)
	}
	if step == len(numbers) {
		s.Success(fmt.Sprintf("The loop is finished: total = %d", total))
	} else {
		s.Info(fmt.Sprintf("Next up: n = %d", numbers[step]))
	}
	return nil
}
