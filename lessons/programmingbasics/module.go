// Package programmingbasics is lesson 0.1: what programming is, algorithmic
// thinking and the input/process/output flow.
package programmingbasics

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t00_fundamentals.t01_programming_basics"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

var sandwichSteps = []string{
	"Locate the bread bag",
	"Check if bread bag is open",
	"Get a plate",
	"Take bread from the bag",
	"Place bread on plate",
	"Put ingredients on the bread",
	"Close the sandwich",
	"Cut the sandwich",
}

const notChosen = "(choose a step)"

// scrambled is the order the steps are offered in.
var scrambled = []string{
	sandwichSteps[5], sandwichSteps[2], sandwichSteps[7], sandwichSteps[0],
	sandwichSteps[4], sandwichSteps[1], sandwichSteps[6], sandwichSteps[3],
}

type tea struct {
	temp, minutes int
}

var teas = map[string]tea{
	"Black Tea":  {temp: 90, minutes: 3},
	"Green Tea":  {temp: 80, minutes: 2},
	"Herbal Tea": {temp: 95, minutes: 4},
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("0. Introduction to Programming and Algorithmic Thinking")
	pc.Markdown(`
		Before diving into Python, let's understand the fundamentals of programming
		and how to think like a programmer. This will make learning any programming
		language much easier!
	`)

	tabs := pc.Tabs("🧠 What is Programming?", "🔄 Algorithmic Thinking", "🎯 Problem Solving")
	whatIsProgramming(tabs[0])
	algorithms(tabs[1])
	return problemSolving(pc, tabs[2])
}

func whatIsProgramming(s *ui.Surface) {
	s.Markdown(`
		## What is Programming? 🤔

		Imagine you're teaching a very intelligent robot to do tasks. This robot:

		- ✅ Is incredibly fast and accurate
		- ✅ Never gets tired
		- ✅ Follows instructions perfectly
		- ❌ But can't understand context or guess what you mean

		Programming is writing these instructions in a way the computer can understand.
	`)

	robot := s.Expander("🤖 Robot Instructions Example", false)
	robot.Markdown(`
		### Make a Sandwich Challenge

		The robot needs **exact, ordered instructions**. Choose what it should do
		at each step.
	`)
	options := append([]string{notChosen}, scrambled...)
	var picked []string
	for i := range sandwichSteps {
		step := robot.Select(fmt.Sprintf("Step %d:", i+1), options, ui.Key(fmt.Sprintf("sandwich_step_%d", i+1)))
		if step != notChosen {
			picked = append(picked, step)
		}
	}
	switch {
	case len(picked) == 0:
	case slices.Equal(picked, sandwichSteps):
		robot.Success("🎉 Perfect! You considered every step and put them in a logical order. This is exactly how we think when programming!")
	case len(picked) < len(sandwichSteps):
		var missing []string
		for _, step := range sandwichSteps {
			if !slices.Contains(picked, step) {
				missing = append(missing, step)
			}
		}
		robot.Warning("Missing steps: " + strings.Join(missing, ", "))
	default:
		robot.Error("Steps are in the wrong order. Start with preparation steps and think about what depends on what.")
	}

	s.Markdown(`
		### How Programs Work 🔄

		Every program follows a basic flow:

		1. 📥 **INPUT**: get data or information
		2. ⚙️ **PROCESS**: do something with it
		3. 📤 **OUTPUT**: show or save the result
	`)
	s.Chart(chart.FlowChart([]string{"INPUT", "PROCESS", "OUTPUT"}))

	try := s.Expander("🎮 Interactive Program Example", true)
	cols := try.Columns(2)
	name := cols[0].TextInput("👤 Enter your name:", "", ui.Placeholder("Type your name here..."))
	if name != "" {
		cols[0].Success(fmt.Sprintf("Hello, %s! Welcome to programming! 🎉", name))
		cols[1].Markdown("#### How it works:")
		cols[1].Code(fmt.Sprintf(`
			# 1. INPUT
			name = %q

			# 2. PROCESS
			greeting = f"Hello, {name}!"

			# 3. OUTPUT
			print(greeting)
		`, name))
	}

	s.Subheader("👨‍💻 Your First Python Code")
	s.CodeEditorWithExamples([]ui.Example{
		{Name: "Hello World", Code: `
# The classic first program
print("Hello, World!")
print("I'm learning Python!")
`},
		{Name: "Simple Math", Code: `
# Python as a calculator
number1 = 10
number2 = 5

print(f"Addition: {number1} + {number2} = {number1 + number2}")
print(f"Multiplication: {number1} x {number2} = {number1 * number2}")
`},
	}, 400)
}

func algorithms(s *ui.Surface) {
	s.Markdown(`
		## Algorithmic Thinking 🧮

		An algorithm is a step-by-step procedure to solve a problem, like a detailed recipe.

		1. 📥 **Input**: starting materials or data
		2. 📝 **Steps**: clear, ordered instructions
		3. 🎯 **Decisions**: handling different situations
		4. 📤 **Output**: the final result
	`)

	choice := s.Select("Choose an algorithm to explore:", []string{"🫖 Making Tea", "🔢 Finding Largest Number"})
	if choice == "🔢 Finding Largest Number" {
		largest(s)
		return
	}

	names := []string{"Black Tea", "Green Tea", "Herbal Tea"}
	cols := s.Columns(2)
	kind := cols[0].Select("Select tea type:", names)
	want := teas[kind]
	temp := cols[0].Slider("Water temperature (°C):", 40, 100, want.temp, ui.Key("tea_temp"))
	steep := cols[0].Slider("Steeping time (minutes):", 0, 7, want.minutes, ui.Key("tea_time"))

	tempOK := temp >= want.temp-5
	timeOK := steep >= want.minutes
	cols[1].Markdownf(`
		#### Requirements for %s:
		- Ideal temperature: %d°C
		- Ideal steeping time: %d minutes

		Temperature: %s

		Steep time: %s
	`, kind, want.temp, want.minutes, tick(tempOK), tick(timeOK))
	if tempOK && timeOK {
		cols[1].Success("Perfect cup of tea! 🫖")
	} else {
		cols[1].Warning("Adjust parameters for better tea")
	}

	s.Markdown("#### The Algorithm:")
	s.Code(fmt.Sprintf(`
		def make_tea(tea_type, water_temp, steep_time):
		    required_temp = %d
		    required_time = %d

		    if water_temp < required_temp - 5:
		        return "Water too cold"
		    if steep_time < required_time:
		        return "Need more steeping time"
		    return "Perfect cup of tea!"

		print(make_tea(%q, %d, %d))
	`, want.temp, want.minutes, kind, temp, steep))
}

func largest(s *ui.Surface) {
	raw := s.TextInput("Enter numbers separated by commas:", "3, 17, 8, 42, 5")
	nums, err := parseInts(raw)
	if err != nil {
		s.Error(err.Error())
		return
	}
	if len(nums) == 0 {
		s.Info("Enter at least one number.")
		return
	}

	var rows [][]string
	best := nums[0]
	rows = append(rows, []string{"1", fmt.Sprint(nums[0]), fmt.Sprint(best), "start with the first number"})
	for i, n := range nums[1:] {
		note := "keep current"
		if n > best {
			best = n
			note = "new largest!"
		}
		rows = append(rows, []string{fmt.Sprint(i + 2), fmt.Sprint(n), fmt.Sprint(best), note})
	}
	s.Table([]string{"Step", "Number", "Largest so far", "Decision"}, rows)
	s.Success(fmt.Sprintf("The largest number is %d", best))

	labels := make([]string, len(nums))
	values := make([]float64, len(nums))
	for i, n := range nums {
		labels[i] = fmt.Sprintf("#%d", i+1)
		values[i] = float64(n)
	}
	s.Chart(chart.Bar("Numbers examined", labels, values))
}

func problemSolving(pc *page.Context, s *ui.Surface) error {
	s.Markdown(`
		## Problem Solving 🎯

		1. **Understand** the problem: what goes in, what should come out?
		2. **Break it down** into smaller steps
		3. **Solve** each step
		4. **Test** with different inputs
	`)

	done, err := pc.Session().Strings("fundamentals_done", nil)
	if err != nil {
		return err
	}
	stages := []string{"Understand", "Break it down", "Solve", "Test"}
	stage := s.Radio("Which stage are you working on?", stages)
	if s.Button("✅ Mark stage as done") && !slices.Contains(done, stage) {
		done = append(done, stage)
		if err := pc.Session().SetStrings("fundamentals_done", done); err != nil {
			return err
		}
	}
	if s.Button("🔄 Start over") {
		done = nil
		pc.Session().Delete("fundamentals_done")
	}

	progress := float64(len(done)) / float64(len(stages)) * 100
	s.Chart(chart.Gauge("Progress (%)", progress, 0, 100))
	if len(done) == len(stages) {
		s.Success("You walked through the whole problem-solving process!")
	} else if len(done) > 0 {
		s.Info("Done so far: " + strings.Join(done, ", "))
	}
	return nil
}

func parseInts(raw string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number", field)
		}
		out = append(out, n)
	}
	return out, nil
}

func tick(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
